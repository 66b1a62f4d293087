package export

import (
	"bytes"
	"context"
	"fmt"
	"sort"
	"sync"

	"go.uber.org/zap"
)

// MemorySink keeps reports in memory, used when no destination is configured and in tests
type MemorySink struct {
	mu      sync.RWMutex
	reports map[string][]byte
	logger  *zap.Logger
}

// NewMemorySink creates an empty MemorySink
func NewMemorySink(logger *zap.Logger) *MemorySink {
	return &MemorySink{
		reports: make(map[string][]byte),
		logger:  logger,
	}
}

// Upload stores a copy of data under reports/filename
func (s *MemorySink) Upload(ctx context.Context, filename string, data []byte) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	name := fmt.Sprintf("reports/%s", filename)
	s.reports[name] = bytes.Clone(data)

	s.logger.Debug("report kept in memory",
		zap.String("name", name),
		zap.Int("size_bytes", len(data)),
	)
	return name, nil
}

// Download returns a copy of a stored report
func (s *MemorySink) Download(ctx context.Context, location string) ([]byte, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	data, ok := s.reports[location]
	if !ok {
		return nil, fmt.Errorf("%s: %w", location, ErrNotFound)
	}
	return bytes.Clone(data), nil
}

// List returns the stored report names in order
func (s *MemorySink) List() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	names := make([]string, 0, len(s.reports))
	for name := range s.reports {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
