package middleware

import (
	"bytes"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func TestRequestLogger(t *testing.T) {
	logs := &bytes.Buffer{}
	logger := slog.New(slog.NewTextHandler(logs, nil))

	r := gin.New()
	r.Use(RequestLogger(logger), Metrics())
	r.GET("/refunds/:id", func(c *gin.Context) { c.String(http.StatusOK, "ok") })
	r.GET("/boom", func(c *gin.Context) { c.Status(http.StatusInternalServerError) })

	tests := []struct {
		path  string
		level string
		route string
	}{
		{path: "/refunds/123", level: "level=INFO", route: "route=/refunds/:id"},
		{path: "/missing", level: "level=WARN", route: "route=unmatched"},
		{path: "/boom", level: "level=ERROR", route: "route=/boom"},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			logs.Reset()
			r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, tt.path, nil))

			line := logs.String()
			assert.Contains(t, line, tt.level)
			assert.Contains(t, line, tt.route)
			assert.Contains(t, line, "component=http")
		})
	}
}
