package mocks

import (
	"context"

	"github.com/phrazzld/tasks-api/internal/store"
)

// MockTxRunner implements store.TxRunner without a database.
type MockTxRunner struct {
	RunInTxFn func(ctx context.Context, fn store.TxFn) error

	// Calls counts RunInTx invocations.
	Calls int
}

var _ store.TxRunner = (*MockTxRunner)(nil)

// RunInTx implements store.TxRunner. By default it calls fn with a nil transaction.
func (m *MockTxRunner) RunInTx(ctx context.Context, fn store.TxFn) error {
	m.Calls++
	if m.RunInTxFn != nil {
		return m.RunInTxFn(ctx, fn)
	}
	return fn(ctx, nil)
}
