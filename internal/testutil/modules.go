package testutil

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/vk/phasegrid/internal/frame"
	"github.com/vk/phasegrid/internal/registry"
)

// NoOpModule registers a single "noop" handler that takes no arguments and
// does nothing. It is useful for pipelines that only exercise ordering.
type NoOpModule struct{}

// Register implements the registry.Module interface.
func (NoOpModule) Register(r *registry.Registry) {
	r.Register("noop", registry.Handler(func(context.Context, *frame.Frame, *struct{}) error {
		return nil
	}))
}

// SimpleModule registers one caller-supplied handler.
type SimpleModule struct {
	Name    string
	Handler *registry.RegisteredHandler
}

// Register implements the registry.Module interface.
func (m *SimpleModule) Register(r *registry.Registry) {
	if m.Name != "" && m.Handler != nil {
		r.Register(m.Name, m.Handler)
	}
}

// ExecutionRecord is one call of the "record" handler.
type ExecutionRecord struct {
	Frame uint64
	Label string
	Start time.Time
	End   time.Time
}

type recordInput struct {
	Label string `phase:"label"`
	Fail  string `phase:"fail,optional"`
}

// RecorderModule registers a "record" handler that remembers every call.
// A non-empty "fail" argument makes the call return that text as an error.
type RecorderModule struct {
	mu      sync.Mutex
	records []ExecutionRecord
}

// Register implements the registry.Module interface.
func (m *RecorderModule) Register(r *registry.Registry) {
	r.Register("record", registry.Handler(func(_ context.Context, f *frame.Frame, in *recordInput) error {
		start := time.Now()
		if in.Fail != "" {
			return errors.New(in.Fail)
		}

		m.mu.Lock()
		defer m.mu.Unlock()
		m.records = append(m.records, ExecutionRecord{Frame: f.Index, Label: in.Label, Start: start, End: time.Now()})
		return nil
	}))
}

// Records returns a copy of every successful call so far.
func (m *RecorderModule) Records() []ExecutionRecord {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]ExecutionRecord, len(m.records))
	copy(out, m.records)
	return out
}

// Labels returns the labels recorded during the given frame, in call order.
func (m *RecorderModule) Labels(frameIndex uint64) []string {
	var labels []string
	for _, rec := range m.Records() {
		if rec.Frame == frameIndex {
			labels = append(labels, rec.Label)
		}
	}
	return labels
}
