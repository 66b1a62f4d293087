package export

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"go.uber.org/zap"
)

// FileSink writes reports into a local directory
type FileSink struct {
	dir    string
	logger *zap.Logger
}

// NewFileSink creates the directory if needed
func NewFileSink(dir string, logger *zap.Logger) (*FileSink, error) {
	if dir == "" {
		return nil, fmt.Errorf("export directory is required")
	}
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return nil, fmt.Errorf("failed to create export directory: %w", err)
	}
	return &FileSink{dir: dir, logger: logger}, nil
}

// Upload writes the file and returns its path
func (s *FileSink) Upload(ctx context.Context, filename string, data []byte) (string, error) {
	path := filepath.Join(s.dir, filepath.Base(filename))

	// write then rename so a crash never leaves a truncated report behind
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o600); err != nil {
		return "", fmt.Errorf("failed to write report: %w", err)
	}
	if err := os.Rename(tmp, path); err != nil {
		os.Remove(tmp)
		return "", fmt.Errorf("failed to write report: %w", err)
	}

	s.logger.Info("report written",
		zap.String("path", path),
		zap.Int("size_bytes", len(data)),
	)
	return path, nil
}

// Download reads a report previously written by Upload
func (s *FileSink) Download(ctx context.Context, location string) ([]byte, error) {
	data, err := os.ReadFile(filepath.Join(s.dir, filepath.Base(location)))
	if errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("%s: %w", location, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read report: %w", err)
	}
	return data, nil
}
