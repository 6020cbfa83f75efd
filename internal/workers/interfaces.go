// Package workers provides the background maintenance workers of the
// sync engine. It defines the Worker interface and a Workers aggregate
// that runs multiple workers in a unified way.
package workers

import "context"

// Worker is the interface implemented by any background worker.
//
// Implementations are expected to block for the duration of their work
// or spawn goroutines internally.
type Worker interface {
	Run()
}

// Pruner is the slice of the snapshot store the prune worker needs.
// Satisfied by [store.SnapshotStore].
type Pruner interface {
	Prune(ctx context.Context, accountID string, keep int) (int, error)
}
