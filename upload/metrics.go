package upload

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	resultSuccess        = "success"
	resultMissingFile    = "missing_file"
	resultInvalid        = "invalid"
	resultStorageFailure = "storage_failure"
)

var (
	uploadsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "refunds_uploads_total",
			Help: "Receipt uploads processed by the pipeline, by outcome",
		},
		[]string{"result"},
	)

	// cleanupFailuresTotal counts transient files that could not be removed and need an operator
	cleanupFailuresTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "refunds_upload_cleanup_failures_total",
			Help: "Transient upload files left on disk because removal failed",
		},
	)
)
