// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package crypto

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"encoding/base64"
	"errors"
	"fmt"
	"io"

	"golang.org/x/crypto/argon2"
)

// SaltSize is the length of the key-derivation salt in bytes.
const SaltSize = 16

var (
	ErrEmptySecret = errors.New("cipher secret is empty")
	ErrInvalidSalt = errors.New("invalid cipher salt")
	ErrDecrypt     = errors.New("decryption failed")
)

// KDFParams are the Argon2id tuning parameters.
type KDFParams struct {
	Time    uint32
	Memory  uint32
	Threads uint8
}

// DefaultKDFParams follows the OWASP recommendation for Argon2id:
// one pass over 64 MiB with four lanes.
func DefaultKDFParams() KDFParams {
	return KDFParams{
		Time:    1,
		Memory:  64 * 1024,
		Threads: 4,
	}
}

// SessionCipher is the AES-256-GCM [Cipher] over an Argon2id-derived key.
type SessionCipher struct {
	aead cipher.AEAD
}

// GenerateSalt reads [SaltSize] random bytes from the OS CSPRNG.
func GenerateSalt() ([]byte, error) {
	salt := make([]byte, SaltSize)
	if _, err := io.ReadFull(rand.Reader, salt); err != nil {
		return nil, fmt.Errorf("generate salt: %w", err)
	}
	return salt, nil
}

// NewSessionCipher derives a 256-bit key from secret and salt using the
// default KDF parameters.
func NewSessionCipher(secret string, salt []byte) (*SessionCipher, error) {
	return NewSessionCipherWithParams(secret, salt, DefaultKDFParams())
}

// NewSessionCipherWithParams is [NewSessionCipher] with explicit Argon2id
// parameters.
func NewSessionCipherWithParams(secret string, salt []byte, p KDFParams) (*SessionCipher, error) {
	if secret == "" {
		return nil, ErrEmptySecret
	}
	if len(salt) != SaltSize {
		return nil, fmt.Errorf("%w: want %d bytes, got %d", ErrInvalidSalt, SaltSize, len(salt))
	}

	key := argon2.IDKey([]byte(secret), salt, p.Time, p.Memory, p.Threads, 32)

	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, fmt.Errorf("create cipher: %w", err)
	}
	aead, err := cipher.NewGCM(block)
	if err != nil {
		return nil, fmt.Errorf("create gcm: %w", err)
	}

	return &SessionCipher{aead: aead}, nil
}

// Seal implements [Cipher].
func (c *SessionCipher) Seal(plaintext []byte) (string, error) {
	nonce := make([]byte, c.aead.NonceSize())
	if _, err := io.ReadFull(rand.Reader, nonce); err != nil {
		return "", fmt.Errorf("generate nonce: %w", err)
	}

	blob := c.aead.Seal(nonce, nonce, plaintext, nil)
	return base64.StdEncoding.EncodeToString(blob), nil
}

// Open implements [Cipher].
func (c *SessionCipher) Open(encoded string) ([]byte, error) {
	blob, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		return nil, fmt.Errorf("%w: decode base64: %w", ErrDecrypt, err)
	}

	nonceSize := c.aead.NonceSize()
	if len(blob) < nonceSize {
		return nil, fmt.Errorf("%w: ciphertext too short", ErrDecrypt)
	}

	nonce, ciphertext := blob[:nonceSize], blob[nonceSize:]
	plaintext, err := c.aead.Open(nil, nonce, ciphertext, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrDecrypt, err)
	}

	return plaintext, nil
}
