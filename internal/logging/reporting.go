package logging

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"sync"
	"time"

	"go.uber.org/zap/zapcore"
)

// Reporter receives error-level log entries
type Reporter interface {
	Report(entry zapcore.Entry)
}

// ReportHook returns a zap hook forwarding error-level entries to the reporter
func ReportHook(r Reporter) func(zapcore.Entry) error {
	return func(entry zapcore.Entry) error {
		if entry.Level >= zapcore.ErrorLevel {
			r.Report(entry)
		}
		return nil
	}
}

// HTTPReporter posts error entries to a remote endpoint
type HTTPReporter struct {
	endpoint   string
	token      string
	httpClient *http.Client
	queue      chan zapcore.Entry
	done       chan struct{}

	mu     sync.Mutex
	closed bool
}

// CloseTimeout bounds how long Close waits for queued entries to be delivered
const CloseTimeout = 5 * time.Second

type reportPayload struct {
	Level     string    `json:"level"`
	Message   string    `json:"message"`
	Caller    string    `json:"caller,omitempty"`
	Stack     string    `json:"stack,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}

// NewHTTPReporter creates a reporter and starts its delivery loop.
// Entries are dropped when the queue is full; logging never blocks on delivery.
func NewHTTPReporter(endpoint, token string) (*HTTPReporter, error) {
	if endpoint == "" {
		return nil, fmt.Errorf("endpoint is required")
	}

	r := &HTTPReporter{
		endpoint:   endpoint,
		token:      token,
		httpClient: &http.Client{Timeout: 10 * time.Second},
		queue:      make(chan zapcore.Entry, 64),
		done:       make(chan struct{}),
	}
	go r.run()

	return r, nil
}

// Report enqueues an entry for delivery. Entries reported after Close are dropped.
func (r *HTTPReporter) Report(entry zapcore.Entry) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.closed {
		return
	}
	select {
	case r.queue <- entry:
	default:
	}
}

// Close stops accepting entries and waits up to CloseTimeout for the queued ones to be sent.
// It is safe to call more than once.
func (r *HTTPReporter) Close() {
	r.mu.Lock()
	if !r.closed {
		r.closed = true
		close(r.queue)
	}
	r.mu.Unlock()

	select {
	case <-r.done:
	case <-time.After(CloseTimeout):
	}
}

func (r *HTTPReporter) run() {
	defer close(r.done)
	for entry := range r.queue {
		_ = r.send(entry)
	}
}

func (r *HTTPReporter) send(entry zapcore.Entry) error {
	payload := reportPayload{
		Level:     entry.Level.String(),
		Message:   entry.Message,
		Stack:     entry.Stack,
		Timestamp: entry.Time,
	}
	if entry.Caller.Defined {
		payload.Caller = entry.Caller.TrimmedPath()
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, r.endpoint, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	if r.token != "" {
		req.Header.Set("Authorization", "Bearer "+r.token)
	}

	resp, err := r.httpClient.Do(req)
	if err != nil {
		return err
	}
	resp.Body.Close()
	return nil
}
