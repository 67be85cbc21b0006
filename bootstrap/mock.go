package bootstrap

import (
	"context"
	"sync"
)

// MockController is a mock implementation of ProcessController for testing.
type MockController struct {
	mu sync.Mutex

	ListenersFunc func(ctx context.Context, port uint32) ([]int32, error)
	TerminateFunc func(ctx context.Context, pid int32) error

	ListenersCalls []uint32
	TerminateCalls []int32
}

// NewMockController creates a MockController that reports an unheld port
// and successful terminations unless the Func fields are set.
func NewMockController() *MockController {
	return &MockController{}
}

// Listeners implements the ProcessController interface.
func (m *MockController) Listeners(ctx context.Context, port uint32) ([]int32, error) {
	m.mu.Lock()
	m.ListenersCalls = append(m.ListenersCalls, port)
	m.mu.Unlock()

	if m.ListenersFunc != nil {
		return m.ListenersFunc(ctx, port)
	}
	return nil, nil
}

// Terminate implements the ProcessController interface.
func (m *MockController) Terminate(ctx context.Context, pid int32) error {
	m.mu.Lock()
	m.TerminateCalls = append(m.TerminateCalls, pid)
	m.mu.Unlock()

	if m.TerminateFunc != nil {
		return m.TerminateFunc(ctx, pid)
	}
	return nil
}
