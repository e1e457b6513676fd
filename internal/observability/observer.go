// SPDX-License-Identifier: Apache-2.0

package observability

import (
	"encoding/json"
	"io"
	"sync"
	"time"
)

// Level controls how much operational detail is emitted.
type Level int

const (
	Off     Level = 0
	Metrics Level = 1
	Debug   Level = 2
)

// Observer records per-operation timing and per-file pipeline events as JSON
// lines on its writer. Components receive an observer via SetObserver and
// treat a nil observer as "off".
type Observer struct {
	level  Level
	writer io.Writer
	mu     sync.Mutex
}

// NewObserver creates an observer writing to w at the given level.
func NewObserver(level Level, w io.Writer) *Observer {
	return &Observer{level: level, writer: w}
}

// OperationData is one logged operation record.
type OperationData struct {
	Component  string         `json:"component"`
	Operation  string         `json:"operation"`
	FilePath   string         `json:"file_path,omitempty"`
	DurationMs int64          `json:"duration_ms,omitempty"`
	Success    bool           `json:"success"`
	Error      string         `json:"error,omitempty"`
	MatchCount int            `json:"match_count,omitempty"`
	Metadata   map[string]any `json:"metadata,omitempty"`
}

// StartTiming returns a completion function that logs the operation with its
// elapsed duration.
func (o *Observer) StartTiming(component, operation, filePath string) func(success bool, metadata map[string]any) {
	start := time.Now()
	return func(success bool, metadata map[string]any) {
		o.LogOperation(OperationData{
			Component:  component,
			Operation:  operation,
			FilePath:   filePath,
			DurationMs: time.Since(start).Milliseconds(),
			Success:    success,
			Metadata:   metadata,
		})
	}
}

// LogOperation emits an operation record. Records are only serialized in
// debug mode; metrics mode keeps the call sites cheap no-ops so the pipeline
// can stay instrumented unconditionally.
func (o *Observer) LogOperation(data OperationData) {
	if o == nil || o.level < Debug {
		return
	}
	o.mu.Lock()
	defer o.mu.Unlock()
	json.NewEncoder(o.writer).Encode(data)
}

// FileEvent is the per-file diagnostic the run surface reports: every input
// file produces exactly one, so no file is ever silently dropped.
type FileEvent struct {
	Path    string `json:"path"`
	Size    int64  `json:"size_bytes,omitempty"`
	Outcome string `json:"outcome"` // extracted | skipped | failed
	Reason  string `json:"reason,omitempty"`
	Matches int    `json:"matches,omitempty"`
}

// LogFileEvent emits a per-file diagnostic at metrics level and above.
func (o *Observer) LogFileEvent(ev FileEvent) {
	if o == nil || o.level < Metrics {
		return
	}
	o.mu.Lock()
	defer o.mu.Unlock()
	json.NewEncoder(o.writer).Encode(ev)
}
