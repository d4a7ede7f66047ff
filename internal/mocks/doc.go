// Package mocks provides centralized mock implementations for testing.
//
// Each store mock keeps its rows in memory so tests can seed state directly,
// and exposes a function field per method to override behavior:
//
//	accounts := mocks.NewMockAccountStore()
//	accounts.GetByIDFn = func(ctx context.Context, id int64) (*domain.Account, error) {
//	    return nil, errors.New("connection reset")
//	}
//
// WithTx on every store mock returns the mock itself, and MockTxRunner calls
// the unit of work with a nil transaction.
package mocks
