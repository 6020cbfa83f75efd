package store

import (
	"context"

	"github.com/lexisync/lexisync/internal/config"
	"github.com/lexisync/lexisync/internal/logger"
)

// Storages aggregates all persistence-layer dependencies handed to the
// service layer. One instance is constructed at startup and passed by
// reference; there is no package-level mutable state.
type Storages struct {
	Snapshots SnapshotStore
	Devices   DeviceRegistry
}

// NewStorages connects to PostgreSQL and wires both repositories over
// the shared connection.
func NewStorages(ctx context.Context, cfg config.Storage, log *logger.Logger) (*Storages, *DB, error) {
	db, err := NewConnectPostgres(ctx, cfg.DB, log)
	if err != nil {
		return nil, nil, err
	}

	return &Storages{
		Snapshots: NewSnapshotRepository(db, log),
		Devices:   NewDeviceRepository(db, log),
	}, db, nil
}
