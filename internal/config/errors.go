package config

import "errors"

var (
	// ErrInvalidStorageConfigs is returned when no database DSN is
	// configured.
	ErrInvalidStorageConfigs = errors.New("invalid storage configs: database DSN is required")

	// ErrInvalidAppConfigs is returned when the session token
	// verification key is missing.
	ErrInvalidAppConfigs = errors.New("invalid app configs: token sign key is required")

	// ErrInvalidRetention is returned when the snapshot retention count
	// is not a positive number.
	ErrInvalidRetention = errors.New("invalid app configs: snapshot retention must be at least 1")

	// ErrInvalidInactivityThreshold is returned when the device
	// inactivity threshold is not a positive number of days.
	ErrInvalidInactivityThreshold = errors.New("invalid app configs: device inactivity threshold must be at least 1 day")

	// ErrInvalidServerConfigs is returned when neither an HTTP nor a
	// gRPC listen address is configured.
	ErrInvalidServerConfigs = errors.New("invalid server configs: no listen address configured")
)
