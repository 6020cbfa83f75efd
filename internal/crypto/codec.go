// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 LexiSync Authors

// Package crypto implements the snapshot encryption codec: AES-256-GCM
// with a random 128-bit IV per call, a 128-bit authentication tag, and
// fixed associated data binding every ciphertext to the sync namespace.
package crypto

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"encoding/base64"
	"fmt"
	"io"

	"golang.org/x/crypto/argon2"

	"github.com/lexisync/lexisync/internal/config"
	"github.com/lexisync/lexisync/internal/logger"
)

const (
	// syncNamespace is the associated-data string sealed into every
	// envelope. It prevents ciphertext reuse across application
	// contexts: a blob sealed for snapshot sync will not open anywhere
	// that authenticates against different associated data.
	syncNamespace = "lexisync/snapshot:v1"

	// kdfSalt domain-separates passphrase-derived keys from any other
	// Argon2id use of the same passphrase.
	kdfSalt = "lexisync/kdf:v1"

	ivSize  = 16 // 128-bit random IV per call
	tagSize = 16 // 128-bit GCM authentication tag
	keySize = 32 // 256-bit AES key
)

// codec is the private implementation of [Codec].
type codec struct {
	aead cipher.AEAD
}

// NewCodec constructs the snapshot [Codec] from configured key material.
//
// Key resolution order:
//  1. cfg.EncryptionKey — base64-encoded 32-byte key from the external
//     secrets provider.
//  2. cfg.EncryptionPassphrase — a 256-bit key is derived via Argon2id
//     (OWASP parameters: 1 iteration, 64 MiB, 4 threads).
//  3. No material: production fails closed with [ErrNoKeyMaterial];
//     development generates an ephemeral key and logs a warning, so
//     snapshots sealed in one process lifetime will not open in the next.
func NewCodec(cfg config.App, log *logger.Logger) (Codec, error) {
	key, err := resolveKey(cfg, log)
	if err != nil {
		return nil, err
	}

	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, fmt.Errorf("error creating AES cipher: %w", err)
	}

	aead, err := cipher.NewGCMWithNonceSize(block, ivSize)
	if err != nil {
		return nil, fmt.Errorf("error creating GCM mode: %w", err)
	}

	return &codec{aead: aead}, nil
}

func resolveKey(cfg config.App, log *logger.Logger) ([]byte, error) {
	switch {
	case cfg.EncryptionKey != "":
		key, err := base64.StdEncoding.DecodeString(cfg.EncryptionKey)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrInvalidKey, err)
		}
		if len(key) != keySize {
			return nil, fmt.Errorf("%w: got %d bytes", ErrInvalidKey, len(key))
		}
		return key, nil

	case cfg.EncryptionPassphrase != "":
		// OWASP-recommended Argon2id parameters, same tuning for every
		// deployment so derived keys are stable across restarts.
		return argon2.IDKey([]byte(cfg.EncryptionPassphrase), []byte(kdfSalt), 1, 64*1024, 4, keySize), nil

	case cfg.IsProduction():
		return nil, ErrNoKeyMaterial

	default:
		log.Warn().
			Str("func", "crypto.resolveKey").
			Msg("NO ENCRYPTION KEY CONFIGURED — using an ephemeral key; sealed snapshots will be unreadable after restart")

		key := make([]byte, keySize)
		if _, err := io.ReadFull(rand.Reader, key); err != nil {
			return nil, fmt.Errorf("error generating ephemeral key: %w", err)
		}
		return key, nil
	}
}

// Seal implements [Codec]. It reads a fresh 16-byte IV from the OS
// CSPRNG, encrypts plaintext under AES-256-GCM with the sync-namespace
// associated data, and packs the result as base64(IV ‖ tag ‖ ciphertext).
func (c *codec) Seal(plaintext []byte) ([]byte, error) {
	iv := make([]byte, ivSize)
	if _, err := io.ReadFull(rand.Reader, iv); err != nil {
		return nil, fmt.Errorf("error generating IV: %w", err)
	}

	// gcm.Seal appends the tag after the ciphertext; the envelope layout
	// wants IV ‖ tag ‖ ciphertext, so split and reorder.
	sealed := c.aead.Seal(nil, iv, plaintext, []byte(syncNamespace))
	ciphertext, tag := sealed[:len(sealed)-tagSize], sealed[len(sealed)-tagSize:]

	raw := make([]byte, 0, ivSize+tagSize+len(ciphertext))
	raw = append(raw, iv...)
	raw = append(raw, tag...)
	raw = append(raw, ciphertext...)

	envelope := make([]byte, base64.StdEncoding.EncodedLen(len(raw)))
	base64.StdEncoding.Encode(envelope, raw)

	return envelope, nil
}

// Open implements [Codec]. It unpacks the base64 envelope, restores the
// ciphertext ‖ tag order GCM expects, and decrypts. Any authentication
// failure — wrong key, flipped bit, truncation, foreign namespace — is
// reported as [ErrIntegrity].
func (c *codec) Open(envelope []byte) ([]byte, error) {
	raw := make([]byte, base64.StdEncoding.DecodedLen(len(envelope)))
	n, err := base64.StdEncoding.Decode(raw, envelope)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid base64: %w", ErrIntegrity, err)
	}
	raw = raw[:n]

	if len(raw) < ivSize+tagSize {
		return nil, fmt.Errorf("%w: envelope too short", ErrIntegrity)
	}

	iv := raw[:ivSize]
	tag := raw[ivSize : ivSize+tagSize]
	ciphertext := raw[ivSize+tagSize:]

	sealed := make([]byte, 0, len(ciphertext)+tagSize)
	sealed = append(sealed, ciphertext...)
	sealed = append(sealed, tag...)

	plaintext, err := c.aead.Open(nil, iv, sealed, []byte(syncNamespace))
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrIntegrity, err)
	}

	return plaintext, nil
}
