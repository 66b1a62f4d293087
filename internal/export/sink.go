// Package export delivers generated report files to a destination.
package export

import (
	"context"
	"errors"
)

// ErrNotFound is returned when a stored report does not exist
var ErrNotFound = errors.New("report not found")

// Sink stores report files and returns where each one was put
type Sink interface {
	Upload(ctx context.Context, filename string, data []byte) (string, error)
	Download(ctx context.Context, location string) ([]byte, error)
}

var (
	_ Sink = (*FileSink)(nil)
	_ Sink = (*BlobSink)(nil)
	_ Sink = (*MemorySink)(nil)
)
