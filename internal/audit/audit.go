package audit

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/vcscsvcscs/Healthcare-challenge-GDE-MIT/apps/mobile-core/internal/storage"
	"go.uber.org/zap"
)

// MaxEntries bounds the on-device trail; the oldest entries are dropped first
const MaxEntries = 500

// OperationType represents the type of operation performed
type OperationType string

const (
	OperationExport OperationType = "EXPORT"
	OperationDelete OperationType = "DELETE"
	OperationReport OperationType = "REPORT"
)

// ResourceType represents the type of resource being accessed
type ResourceType string

const (
	ResourceLocalData ResourceType = "local_data"
	ResourceReport    ResourceType = "report"
	ResourceSession   ResourceType = "session"
)

// Entry is one audit record
type Entry struct {
	ID             string            `json:"id"`
	UserID         int64             `json:"user_id"`
	OperationType  OperationType     `json:"operation_type"`
	ResourceType   ResourceType      `json:"resource_type"`
	ResourceID     string            `json:"resource_id,omitempty"`
	Timestamp      time.Time         `json:"timestamp"`
	AdditionalData map[string]string `json:"additional_data,omitempty"`
}

// Logger appends privacy-relevant operations to the @audit_trail slot
type Logger struct {
	slot   *storage.JSONSlot[[]Entry]
	now    func() time.Time
	logger *zap.Logger
}

// NewLogger creates a new audit logger over store
func NewLogger(store storage.KeyValueStore, logger *zap.Logger) *Logger {
	return &Logger{
		slot:   storage.NewJSONSlot[[]Entry](store, storage.KeyAuditTrail, logger),
		now:    time.Now,
		logger: logger,
	}
}

// Log appends an entry
func (l *Logger) Log(ctx context.Context, entry Entry) error {
	if entry.Timestamp.IsZero() {
		entry.Timestamp = l.now().UTC()
	}
	if entry.ID == "" {
		entry.ID = uuid.New().String()
	}

	l.logger.Info("audit log entry",
		zap.Int64("user_id", entry.UserID),
		zap.String("operation", string(entry.OperationType)),
		zap.String("resource_type", string(entry.ResourceType)),
		zap.String("resource_id", entry.ResourceID),
		zap.Time("timestamp", entry.Timestamp),
	)

	err := l.slot.Update(ctx, func(entries []Entry, _ bool) ([]Entry, error) {
		entries = append(entries, entry)
		if len(entries) > MaxEntries {
			entries = entries[len(entries)-MaxEntries:]
		}
		return entries, nil
	})
	if err != nil {
		l.logger.Error("failed to write audit log",
			zap.Error(err),
			zap.Int64("user_id", entry.UserID),
			zap.String("operation", string(entry.OperationType)),
		)
		return fmt.Errorf("failed to write audit log: %w", err)
	}
	return nil
}

// LogExport records an export of resourceType
func (l *Logger) LogExport(ctx context.Context, userID int64, resourceType ResourceType, resourceID string) error {
	return l.Log(ctx, Entry{
		UserID:        userID,
		OperationType: OperationExport,
		ResourceType:  resourceType,
		ResourceID:    resourceID,
	})
}

// LogDelete records a deletion of resourceType
func (l *Logger) LogDelete(ctx context.Context, userID int64, resourceType ResourceType, additional map[string]string) error {
	return l.Log(ctx, Entry{
		UserID:         userID,
		OperationType:  OperationDelete,
		ResourceType:   resourceType,
		AdditionalData: additional,
	})
}

// Entries returns up to limit entries of userID, newest first. limit <= 0 returns all.
func (l *Logger) Entries(ctx context.Context, userID int64, limit int) []Entry {
	all, _ := l.slot.Load(ctx)

	var out []Entry
	for i := len(all) - 1; i >= 0; i-- {
		if all[i].UserID != userID {
			continue
		}
		out = append(out, all[i])
		if limit > 0 && len(out) == limit {
			break
		}
	}
	return out
}
