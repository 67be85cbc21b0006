package migrate

import (
	"context"
	"sync"
)

// MockInspector is a mock implementation of Inspector for testing.
type MockInspector struct {
	mu sync.Mutex

	ColumnExistsFunc   func(ctx context.Context, table, column string) (bool, error)
	TriggerExistsFunc  func(ctx context.Context, name string) (bool, error)
	FunctionExistsFunc func(ctx context.Context, name string) (bool, error)

	ColumnExistsCalls   []ColumnExistsCall
	TriggerExistsCalls  []string
	FunctionExistsCalls []string
}

// ColumnExistsCall records the parameters of a single ColumnExists call.
type ColumnExistsCall struct {
	Table  string
	Column string
}

// NewMockInspector creates a MockInspector whose probes report every
// object as absent unless the corresponding Func field is set.
func NewMockInspector() *MockInspector {
	return &MockInspector{}
}

// ColumnExists implements the Inspector interface.
func (m *MockInspector) ColumnExists(ctx context.Context, table, column string) (bool, error) {
	m.mu.Lock()
	m.ColumnExistsCalls = append(m.ColumnExistsCalls, ColumnExistsCall{Table: table, Column: column})
	m.mu.Unlock()

	if m.ColumnExistsFunc != nil {
		return m.ColumnExistsFunc(ctx, table, column)
	}
	return false, nil
}

// TriggerExists implements the Inspector interface.
func (m *MockInspector) TriggerExists(ctx context.Context, name string) (bool, error) {
	m.mu.Lock()
	m.TriggerExistsCalls = append(m.TriggerExistsCalls, name)
	m.mu.Unlock()

	if m.TriggerExistsFunc != nil {
		return m.TriggerExistsFunc(ctx, name)
	}
	return false, nil
}

// FunctionExists implements the Inspector interface.
func (m *MockInspector) FunctionExists(ctx context.Context, name string) (bool, error) {
	m.mu.Lock()
	m.FunctionExistsCalls = append(m.FunctionExistsCalls, name)
	m.mu.Unlock()

	if m.FunctionExistsFunc != nil {
		return m.FunctionExistsFunc(ctx, name)
	}
	return false, nil
}
