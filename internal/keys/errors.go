// Package keys implements the daltools key store: keypair generation
// (signing + secretbox), detached signing/verification, secretbox
// encrypt/decrypt, and the base64-over-brotli key-file serialization
// format (§4.3).
package keys

import "errors"

var (
	// ErrKeyInvalid is returned when a key file fails to deserialize —
	// truncated buffer, bad type tag, or trailing bytes.
	ErrKeyInvalid = errors.New("keys: invalid key data")
	// ErrSignatureInvalid names the signature-mismatch failure kind.
	// Verify reports a mismatch as a false result and does not return
	// this error.
	ErrSignatureInvalid = errors.New("keys: invalid signature")
	// ErrDecryptFailed is returned when secretbox decryption fails
	// (wrong key, or tampered ciphertext).
	ErrDecryptFailed = errors.New("keys: decryption failed")
)
