package config

import (
	"time"
)

// StructuredConfig is the top-level configuration container for the sync
// engine. It aggregates all sub-configurations and is populated by
// merging values from environment variables, command-line flags, and an
// optional JSON file.
//
// Struct tags:
//   - envPrefix — prefix applied to all nested env tag lookups (caarlos0/env).
//   - env       — direct environment variable name for scalar fields.
type StructuredConfig struct {
	// App holds engine-level settings: token verification parameters,
	// encryption key material, and sync maintenance policies.
	App App `envPrefix:"APP_"`

	// Storage holds the persistence backend settings.
	Storage Storage `envPrefix:"STORAGE_"`

	// Server holds network address and timeout settings for the HTTP
	// (and optional gRPC) listeners.
	Server Server `envPrefix:"SERVER_"`

	// Workers holds configuration for background maintenance workers.
	Workers Workers `envPrefix:"WORKERS_"`

	// JSONFilePath is the optional path to a JSON configuration file.
	// When non-empty, the file is parsed and merged on top of the values
	// already loaded from environment variables and flags.
	// Populated via the CONFIG environment variable or the -c / -config flag.
	JSONFilePath string `env:"CONFIG"`
}

// App holds engine-level configuration values controlling security and
// sync maintenance behaviour.
type App struct {
	// TokenSignKey is the HMAC secret shared with the external auth
	// service, used to verify incoming session JWTs. Must be kept
	// confidential.
	// Env: APP_TOKEN_SIGN_KEY
	TokenSignKey string `env:"TOKEN_SIGN_KEY"`

	// TokenIssuer is the expected "iss" claim of incoming session
	// tokens, validated on every authenticated request.
	// Env: APP_TOKEN_ISSUER
	TokenIssuer string `env:"TOKEN_ISSUER"`

	// EncryptionKey is the base64-encoded 256-bit key for snapshot
	// encryption, supplied by the external secret-management concern.
	// Env: APP_ENCRYPTION_KEY
	EncryptionKey string `env:"ENCRYPTION_KEY"`

	// EncryptionPassphrase is an alternative to EncryptionKey: when set
	// (and EncryptionKey is empty), the 256-bit key is derived from it
	// with Argon2id at startup.
	// Env: APP_ENCRYPTION_PASSPHRASE
	EncryptionPassphrase string `env:"ENCRYPTION_PASSPHRASE"`

	// Environment selects the runtime mode: "production" or
	// "development". In production the encryption codec fails closed
	// when no key material is configured.
	// Env: APP_ENVIRONMENT
	Environment string `env:"ENVIRONMENT" envDefault:"production"`

	// SnapshotRetention is how many snapshot versions per account are
	// kept after pruning.
	// Env: APP_SNAPSHOT_RETENTION
	SnapshotRetention int `env:"SNAPSHOT_RETENTION" envDefault:"5"`

	// DeviceInactivityDays is the threshold after which an inactive
	// (deactivated) device becomes eligible for physical deletion.
	// Env: APP_DEVICE_INACTIVITY_DAYS
	DeviceInactivityDays int `env:"DEVICE_INACTIVITY_DAYS" envDefault:"90"`
}

// Storage groups the configuration for the persistence backend.
type Storage struct {
	// DB holds the relational database connection settings.
	DB DB `envPrefix:"DB_"`
}

// DB holds the PostgreSQL connection settings.
type DB struct {
	// DSN is the PostgreSQL connection string.
	// Env: STORAGE_DB_DATABASE_URI
	DSN string `env:"DATABASE_URI"`
}

// Server holds transport listener settings.
type Server struct {
	// HTTPAddress is the host:port the REST API listens on.
	// Env: SERVER_ADDRESS
	HTTPAddress string `env:"ADDRESS" envDefault:":8080"`

	// GRPCAddress is the optional host:port for the reserved gRPC
	// listener. Empty disables it.
	// Env: SERVER_GRPC_ADDRESS
	GRPCAddress string `env:"GRPC_ADDRESS"`

	// RequestTimeout bounds the lifetime of a single sync request.
	// Env: SERVER_REQUEST_TIMEOUT
	RequestTimeout time.Duration `env:"REQUEST_TIMEOUT" envDefault:"30s"`
}

// Workers holds configuration for background maintenance workers.
type Workers struct {
	// PruneQueueSize bounds the number of pending prune jobs; further
	// jobs are dropped (pruning is best-effort maintenance).
	// Env: WORKERS_PRUNE_QUEUE_SIZE
	PruneQueueSize int `env:"PRUNE_QUEUE_SIZE" envDefault:"64"`

	// PruneRetryAttempts is how many times a failed prune is retried
	// with backoff before being abandoned.
	// Env: WORKERS_PRUNE_RETRY_ATTEMPTS
	PruneRetryAttempts uint64 `env:"PRUNE_RETRY_ATTEMPTS" envDefault:"3"`
}

// IsProduction reports whether the engine runs in production mode.
func (a App) IsProduction() bool {
	return a.Environment != "development"
}
