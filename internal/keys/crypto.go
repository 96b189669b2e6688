package keys

import (
	"crypto/ed25519"
	"crypto/rand"
	"fmt"
	"sync"

	"golang.org/x/crypto/nacl/secretbox"
)

// cryptoContext is prepended to every signed message for domain
// separation, mirroring the fixed context string the reference
// implementation passes to libhydrogen's sign/secretbox calls (§4.3).
const cryptoContext = "daltools"

const secretboxKeySize = 32
const secretboxNonceSize = 24

var initOnce sync.Once

// init_ runs the process-wide crypto initialization exactly once. The
// underlying primitives (stdlib ed25519, x/crypto secretbox) need no
// runtime setup, but the call is kept as a deliberate no-op hook so the
// idempotent-init contract in §4.3 / §9 ("tests must be able to run in
// any order without re-triggering initialisation cost") has a concrete
// home and a single call site every entry point goes through.
func init_() {
	initOnce.Do(func() {})
}

// PublicKey holds the signing public key half of a data keypair.
type PublicKey struct {
	SignKey ed25519.PublicKey
}

// SecretKey holds the signing private key and secretbox key of a data
// keypair.
type SecretKey struct {
	SignKey    ed25519.PrivateKey
	EncryptKey [secretboxKeySize]byte
}

// GenDataKeypair generates a fresh signing keypair and a fresh secretbox
// key. The public half carries only the signing public key; the secret
// half carries the signing private key followed by the secretbox key,
// matching the reference layout in §3.
func GenDataKeypair() (PublicKey, SecretKey, error) {
	init_()

	pub, priv, err := ed25519.GenerateKey(rand.Reader)
	if err != nil {
		return PublicKey{}, SecretKey{}, fmt.Errorf("keys: generate signing key: %w", err)
	}

	var encKey [secretboxKeySize]byte
	if _, err := rand.Read(encKey[:]); err != nil {
		return PublicKey{}, SecretKey{}, fmt.Errorf("keys: generate secretbox key: %w", err)
	}

	return PublicKey{SignKey: pub}, SecretKey{SignKey: priv, EncryptKey: encKey}, nil
}

// Sign produces a detached signature over data using the secret key's
// signing half.
func Sign(sec SecretKey, data []byte) []byte {
	init_()
	msg := append([]byte(cryptoContext), data...)
	return ed25519.Sign(sec.SignKey, msg)
}

// Verify reports whether sig is a valid detached signature over data
// under pub.
func Verify(pub PublicKey, data, sig []byte) bool {
	init_()
	msg := append([]byte(cryptoContext), data...)
	return ed25519.Verify(pub.SignKey, msg, sig)
}

// Encrypt seals data under the secret key's secretbox key, producing
// nonce‖ciphertext. A fresh random nonce is generated per call.
func Encrypt(sec SecretKey, data []byte) ([]byte, error) {
	init_()

	var nonce [secretboxNonceSize]byte
	if _, err := rand.Read(nonce[:]); err != nil {
		return nil, fmt.Errorf("keys: generate nonce: %w", err)
	}

	out := secretbox.Seal(nonce[:], data, &nonce, &sec.EncryptKey)
	return out, nil
}

// Decrypt opens data previously produced by Encrypt.
func Decrypt(sec SecretKey, data []byte) ([]byte, error) {
	init_()

	if len(data) < secretboxNonceSize {
		return nil, fmt.Errorf("%w: ciphertext too short", ErrDecryptFailed)
	}
	var nonce [secretboxNonceSize]byte
	copy(nonce[:], data[:secretboxNonceSize])

	out, ok := secretbox.Open(nil, data[secretboxNonceSize:], &nonce, &sec.EncryptKey)
	if !ok {
		return nil, ErrDecryptFailed
	}
	return out, nil
}
