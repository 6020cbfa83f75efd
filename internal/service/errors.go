package service

import "errors"

var (
	// ErrStructuredSnapshotRequired is returned when an operation needs
	// a structured latest snapshot (e.g. conflict resolution) but the
	// account's latest snapshot is an opaque encrypted blob.
	ErrStructuredSnapshotRequired = errors.New("latest snapshot is an opaque blob, structured snapshot required")
)
