package service

import (
	"github.com/lexisync/lexisync/internal/config"
	"github.com/lexisync/lexisync/internal/crypto"
	"github.com/lexisync/lexisync/internal/logger"
	"github.com/lexisync/lexisync/internal/store"
)

type Services struct {
	SyncService SyncService
	Merger      RecordMerger
}

func NewServices(storages *store.Storages, codec crypto.Codec, pruner PruneScheduler, cfg config.StructuredConfig, logger *logger.Logger) *Services {
	merger := NewRecordMerger(logger)

	return &Services{
		SyncService: NewSyncService(storages.Snapshots, storages.Devices, merger, codec, pruner, cfg.App, logger),
		Merger:      merger,
	}
}
