package crypto

// Codec performs authenticated encryption of opaque snapshot payloads.
// The envelope layout is IV ‖ authTag ‖ ciphertext, base64-encoded so it
// can travel through JSON and be stored as text.
//
// Implementations bind every ciphertext to the engine's sync namespace
// via fixed associated data, so an envelope produced here cannot be
// replayed into a different application context.
type Codec interface {
	// Seal encrypts plaintext and returns the base64 envelope.
	Seal(plaintext []byte) ([]byte, error)

	// Open authenticates and decrypts an envelope produced by Seal.
	// Tampered or truncated envelopes fail with [ErrIntegrity]; callers
	// must never fall back to unauthenticated parsing.
	Open(envelope []byte) ([]byte, error)
}
