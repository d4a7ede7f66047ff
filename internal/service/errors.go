package service

import (
	"fmt"
	"log/slog"

	"github.com/phrazzld/tasks-api/internal/redact"
)

// internalError logs err with redaction and returns it wrapped with msg.
// Use it for failures that are not part of the domain error set.
func internalError(logger *slog.Logger, msg string, err error) error {
	logger.Error(msg, "error", redact.Error(err))
	return fmt.Errorf("%s: %w", msg, err)
}
