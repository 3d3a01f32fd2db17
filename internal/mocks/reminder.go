package mocks

import (
	"context"
	"sync"
)

// EnqueuedReminder is one recorded Enqueue call.
type EnqueuedReminder struct {
	Title   string
	DueDate string
}

// MockReminderEnqueuer implements service.ReminderEnqueuer, recording
// every call. Set Err to make enqueues fail.
type MockReminderEnqueuer struct {
	Err error

	mu       sync.Mutex
	enqueued []EnqueuedReminder
}

// NewMockReminderEnqueuer creates an empty mock enqueuer.
func NewMockReminderEnqueuer() *MockReminderEnqueuer {
	return &MockReminderEnqueuer{}
}

// Enqueue implements service.ReminderEnqueuer.
func (m *MockReminderEnqueuer) Enqueue(ctx context.Context, title, dueDate string) error {
	if m.Err != nil {
		return m.Err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.enqueued = append(m.enqueued, EnqueuedReminder{Title: title, DueDate: dueDate})
	return nil
}

// Enqueued returns a copy of the recorded calls.
func (m *MockReminderEnqueuer) Enqueued() []EnqueuedReminder {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]EnqueuedReminder, len(m.enqueued))
	copy(out, m.enqueued)
	return out
}
