package errkind

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrConfiguration marks malformed or incomplete manifest metadata.
	ErrConfiguration = errors.New("configuration error")
	// ErrToolNotFound marks an external tool missing from the search path.
	ErrToolNotFound = errors.New("tool not found")
	// ErrCompilation marks a failed UI-to-source conversion.
	ErrCompilation = errors.New("compilation error")
)

// Wrap builds an error message that includes step context while tagging it
// with the provided marker for later classification. The marker should be one
// of the exported sentinel errors above.
func Wrap(marker error, step, operation, message string, err error) error {
	detail := buildDetail(step, operation, message)
	if marker == nil {
		if err != nil {
			return fmt.Errorf("%s: %w", detail, err)
		}
		return errors.New(detail)
	}
	if err != nil {
		return fmt.Errorf("%w: %s: %w", marker, detail, err)
	}
	return fmt.Errorf("%w: %s", marker, detail)
}

// IsFatalToolError reports whether the error indicates a missing external
// tool, which always aborts the pipeline before any artifact is produced.
func IsFatalToolError(err error) bool {
	return errors.Is(err, ErrToolNotFound)
}

func buildDetail(step, operation, message string) string {
	parts := make([]string, 0, 3)
	if step = strings.TrimSpace(step); step != "" {
		parts = append(parts, step)
	}
	if operation = strings.TrimSpace(operation); operation != "" {
		parts = append(parts, operation)
	}
	if message = strings.TrimSpace(message); message != "" {
		parts = append(parts, message)
	}
	if len(parts) == 0 {
		return "build failure"
	}
	return strings.Join(parts, ": ")
}
