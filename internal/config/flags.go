package config

import (
	"flag"
	"time"
)

// ParseFlags parses all configuration flags.
//
// Flags:
//
//	-a server address in format [host]:[port]
//	-grpc-address grpc server address in format [host]:[port]
//	-d database DSN
//	-c/-config json file path with configs
//	-token-sign-key session token verification key
//	-token-issuer expected session token issuer
//	-encryption-key base64 snapshot encryption key
//	-encryption-passphrase passphrase to derive the encryption key from
//	-environment runtime mode: production or development
//	-snapshot-retention snapshot versions kept per account
//	-device-inactivity-days threshold for device cleanup eligibility
//	-request-timeout request timeout (e.g., "30s", "1m")
func ParseFlags() *StructuredConfig {
	var httpAddress, grpcAddress string
	var databaseDSN string
	var jsonConfigPath string
	var tokenSignKey, tokenIssuer string
	var encryptionKey, encryptionPassphrase string
	var environment string
	var snapshotRetention, deviceInactivityDays int
	var requestTimeout time.Duration

	flag.StringVar(&httpAddress, "a", "", "Net address host:port")
	flag.StringVar(&grpcAddress, "grpc-address", "", "Net grpc server address host:port")
	flag.StringVar(&databaseDSN, "d", "", "Database DSN")
	flag.StringVar(&jsonConfigPath, "c", "", "JSON config file path")
	flag.StringVar(&jsonConfigPath, "config", "", "JSON config file path (alias)")
	flag.StringVar(&tokenSignKey, "token-sign-key", "", "Session token verification key")
	flag.StringVar(&tokenIssuer, "token-issuer", "", "Expected session token issuer")
	flag.StringVar(&encryptionKey, "encryption-key", "", "Base64 snapshot encryption key")
	flag.StringVar(&encryptionPassphrase, "encryption-passphrase", "", "Passphrase to derive the encryption key")
	flag.StringVar(&environment, "environment", "", "Runtime mode: production or development")
	flag.IntVar(&snapshotRetention, "snapshot-retention", 0, "Snapshot versions kept per account")
	flag.IntVar(&deviceInactivityDays, "device-inactivity-days", 0, "Inactivity threshold for device cleanup")
	flag.DurationVar(&requestTimeout, "request-timeout", 0, "Request timeout (e.g., 30s, 1m)")

	flag.Parse()

	return &StructuredConfig{
		App: App{
			TokenSignKey:         tokenSignKey,
			TokenIssuer:          tokenIssuer,
			EncryptionKey:        encryptionKey,
			EncryptionPassphrase: encryptionPassphrase,
			Environment:          environment,
			SnapshotRetention:    snapshotRetention,
			DeviceInactivityDays: deviceInactivityDays,
		},
		Storage: Storage{
			DB: DB{
				DSN: databaseDSN,
			},
		},
		Server: Server{
			HTTPAddress:    httpAddress,
			GRPCAddress:    grpcAddress,
			RequestTimeout: requestTimeout,
		},
		JSONFilePath: jsonConfigPath,
	}
}
