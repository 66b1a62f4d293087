package repository

import (
	"errors"
	"fmt"

	"github.com/vcscsvcscs/Healthcare-challenge-GDE-MIT/apps/mobile-core/internal/schema"
	"go.uber.org/zap"
)

// ErrNotFound is returned when a local record does not exist
var ErrNotFound = errors.New("not found")

// decodeResponse validates body against the named schema and decodes it into out.
// Shape violations are logged with the path they came from.
func decodeResponse(validator *schema.Validator, logger *zap.Logger, path, name string, body []byte, out any) error {
	if err := validator.Decode(name, body, out); err != nil {
		logger.Error("backend response failed schema validation",
			zap.Error(err),
			zap.String("path", path),
			zap.String("schema", name),
		)
		return fmt.Errorf("failed to decode %s response: %w", path, err)
	}
	return nil
}
