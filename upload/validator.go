package upload

import (
	"errors"
	"fmt"
	"strings"
)

// ErrMissingFile is returned when the request carried no file at all
var ErrMissingFile = errors.New("file is required")

// Rule identifies which declared-metadata check an upload failed
type Rule string

const (
	RuleEmptyFilename   Rule = "empty_filename"
	RuleUnsupportedType Rule = "unsupported_type"
	RuleTooLarge        Rule = "too_large"
)

// ValidationError is a client-caused rejection. Message is safe to show to the user.
type ValidationError struct {
	Rule          Rule
	Message       string
	AcceptedTypes []string // set for RuleUnsupportedType
}

func (e *ValidationError) Error() string {
	return e.Message
}

// IncomingFile is an upload the web layer has already written to the transient area
type IncomingFile struct {
	DeclaredFilename string
	MimeType         string
	Size             int64
	TransientPath    string
}

// Validate checks the declared metadata of file against policy.
// Rules run in a fixed order (missing, empty name, type, size) and the first violation wins.
func Validate(file *IncomingFile, policy Policy) error {
	if file == nil {
		return ErrMissingFile
	}

	if strings.TrimSpace(file.DeclaredFilename) == "" {
		return &ValidationError{
			Rule:    RuleEmptyFilename,
			Message: "File name is required",
		}
	}

	if !policy.Accepts(file.MimeType) {
		return &ValidationError{
			Rule:          RuleUnsupportedType,
			Message:       "Invalid file type. Allowed formats: " + strings.Join(policy.AcceptedMimeTypes, ", "),
			AcceptedTypes: append([]string(nil), policy.AcceptedMimeTypes...),
		}
	}

	if file.Size <= 0 {
		return &ValidationError{
			Rule:    RuleTooLarge,
			Message: "File must not be empty",
		}
	}
	if file.Size > policy.MaxFileSizeBytes {
		return &ValidationError{
			Rule:    RuleTooLarge,
			Message: fmt.Sprintf("The maximum allowed size is %s", formatSize(policy.MaxFileSizeBytes)),
		}
	}

	return nil
}

func formatSize(n int64) string {
	const mb = 1024 * 1024
	if n >= mb && n%mb == 0 {
		return fmt.Sprintf("%d MB", n/mb)
	}
	return fmt.Sprintf("%d bytes", n)
}
