package config

import (
	"encoding/json"
	"fmt"
	"os"
	"time"
)

// StructuredJSONConfig mirrors [StructuredConfig] with JSON field names
// matching the deployment config file format. Durations are accepted as
// Go duration strings ("30s", "1m").
type StructuredJSONConfig struct {
	App struct {
		TokenSignKey         string `json:"token_sign_key"`
		TokenIssuer          string `json:"token_issuer"`
		EncryptionKey        string `json:"encryption_key"`
		EncryptionPassphrase string `json:"encryption_passphrase"`
		Environment          string `json:"environment"`
		SnapshotRetention    int    `json:"snapshot_retention"`
		DeviceInactivityDays int    `json:"device_inactivity_days"`
	} `json:"app,omitempty"`

	Storage struct {
		DB struct {
			DSN string `json:"dsn"`
		} `json:"db,omitempty"`
	} `json:"storage,omitempty"`

	Server struct {
		HTTPAddress    string   `json:"http_address"`
		GRPCAddress    string   `json:"grpc_address"`
		RequestTimeout Duration `json:"request_timeout"`
	} `json:"server,omitempty"`

	Workers struct {
		PruneQueueSize     int    `json:"prune_queue_size"`
		PruneRetryAttempts uint64 `json:"prune_retry_attempts"`
	} `json:"workers,omitempty"`
}

func parseJSON(jsonFilePath string) (*StructuredConfig, error) {
	jsonFile, err := os.Open(jsonFilePath)
	if err != nil {
		return nil, fmt.Errorf("error reading a json file: %w", err)
	}
	defer jsonFile.Close()

	var jsonCfg StructuredJSONConfig
	if err := json.NewDecoder(jsonFile).Decode(&jsonCfg); err != nil {
		return nil, fmt.Errorf("error parsing json config: %w", err)
	}

	return jsonCfg.toStructuredConfig(), nil
}

func (j *StructuredJSONConfig) toStructuredConfig() *StructuredConfig {
	return &StructuredConfig{
		App: App{
			TokenSignKey:         j.App.TokenSignKey,
			TokenIssuer:          j.App.TokenIssuer,
			EncryptionKey:        j.App.EncryptionKey,
			EncryptionPassphrase: j.App.EncryptionPassphrase,
			Environment:          j.App.Environment,
			SnapshotRetention:    j.App.SnapshotRetention,
			DeviceInactivityDays: j.App.DeviceInactivityDays,
		},
		Storage: Storage{
			DB: DB{DSN: j.Storage.DB.DSN},
		},
		Server: Server{
			HTTPAddress:    j.Server.HTTPAddress,
			GRPCAddress:    j.Server.GRPCAddress,
			RequestTimeout: time.Duration(j.Server.RequestTimeout),
		},
		Workers: Workers{
			PruneQueueSize:     j.Workers.PruneQueueSize,
			PruneRetryAttempts: j.Workers.PruneRetryAttempts,
		},
	}
}

// Duration is a time.Duration that unmarshals from a JSON string such as
// "30s" or "1m".
type Duration time.Duration

// UnmarshalJSON implements json.Unmarshaler.
func (d *Duration) UnmarshalJSON(data []byte) error {
	var raw string
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("duration must be a string: %w", err)
	}

	parsed, err := time.ParseDuration(raw)
	if err != nil {
		return fmt.Errorf("invalid duration %q: %w", raw, err)
	}

	*d = Duration(parsed)
	return nil
}
