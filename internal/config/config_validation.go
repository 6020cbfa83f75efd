// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 LexiSync Authors

package config

// validate checks that the final merged [StructuredConfig] satisfies all
// engine invariants before it is used at startup.
//
// Returns nil if the configuration is valid, or a descriptive error
// otherwise.
func (cfg *StructuredConfig) validate() error {
	if cfg.Storage.DB.DSN == "" {
		return ErrInvalidStorageConfigs
	}

	if cfg.App.TokenSignKey == "" {
		return ErrInvalidAppConfigs
	}

	if cfg.App.SnapshotRetention < 1 {
		return ErrInvalidRetention
	}

	if cfg.App.DeviceInactivityDays < 1 {
		return ErrInvalidInactivityThreshold
	}

	if cfg.Server.HTTPAddress == "" && cfg.Server.GRPCAddress == "" {
		return ErrInvalidServerConfigs
	}

	return nil
}
