package crypto

import "errors"

var (
	// ErrIntegrity is returned by Open when an envelope fails
	// authentication: flipped bits, a truncated blob, or a ciphertext
	// sealed under a different key or namespace.
	ErrIntegrity = errors.New("snapshot envelope failed integrity check")

	// ErrNoKeyMaterial is returned by the constructor when production
	// mode is requested without a configured key or passphrase. The
	// codec fails closed rather than silently generating a throwaway key.
	ErrNoKeyMaterial = errors.New("no encryption key material configured")

	// ErrInvalidKey is returned when the configured key decodes to
	// something other than 32 bytes.
	ErrInvalidKey = errors.New("encryption key must be 32 bytes of base64")
)
