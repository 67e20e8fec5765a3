// Package crypto protects the session data the client caches on disk.
//
// A [Cipher] is derived from a local secret and a random salt with Argon2id.
// Values are sealed with AES-256-GCM and encoded as base64 of
// nonce || ciphertext, so they can be stored as plain text.
package crypto

//go:generate mockgen -source=interfaces.go -destination=../mock/cipher_mock.go -package=mock

// Cipher seals and opens cached values.
type Cipher interface {
	// Seal encrypts plaintext and returns a base64 blob.
	Seal(plaintext []byte) (string, error)

	// Open decrypts a blob produced by Seal. It returns [ErrDecrypt] when the
	// blob was sealed under another key or has been tampered with.
	Open(blob string) ([]byte, error)
}
