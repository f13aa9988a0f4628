package services

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrNotFound marks failures caused by a payload reference that does not
	// resolve to a stored entity.
	ErrNotFound = errors.New("not found")
	// ErrValidation marks failures caused by malformed or missing payload data.
	ErrValidation = errors.New("validation error")
	// ErrConfiguration marks failures caused by missing or invalid configuration.
	ErrConfiguration = errors.New("configuration error")
	// ErrProvider marks failures surfaced by an external generation or network call.
	ErrProvider = errors.New("provider failure")
	// ErrSimilarityRejected marks generated content that exceeded the duplicate threshold.
	ErrSimilarityRejected = errors.New("similarity rejected")
	// ErrTransient marks failures with no better classification.
	ErrTransient = errors.New("transient failure")
)

// Wrap builds an error message that includes component context while tagging it
// with the provided marker for later classification. The marker should be one
// of the exported sentinel errors above.
func Wrap(marker error, component, operation, message string, err error) error {
	detail := buildDetail(component, operation, message)
	if marker == nil {
		marker = ErrTransient
	}
	if err != nil {
		return fmt.Errorf("%w: %s: %w", marker, detail, err)
	}
	return fmt.Errorf("%w: %s", marker, detail)
}

func buildDetail(component, operation, message string) string {
	parts := make([]string, 0, 3)
	if component = strings.TrimSpace(component); component != "" {
		parts = append(parts, component)
	}
	if operation = strings.TrimSpace(operation); operation != "" {
		parts = append(parts, operation)
	}
	if message = strings.TrimSpace(message); message != "" {
		parts = append(parts, message)
	}
	if len(parts) == 0 {
		return "service failure"
	}
	return strings.Join(parts, ": ")
}
