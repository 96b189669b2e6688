package keys

import (
	"crypto/ed25519"
	"fmt"

	"github.com/sausagetaste/daltools-go/internal/codec"
	"github.com/sausagetaste/daltools-go/internal/compress"
)

// KeyType tags which half of a keypair a serialized key file holds.
type KeyType int32

const (
	KeyTypeDataPublic KeyType = 0
	KeyTypeDataSecret KeyType = 1
)

const lineWrapWidth = 40

// Metadata carries the human-readable fields stored alongside a key.
type Metadata struct {
	Owner       string
	Email       string
	Description string
	CreatedTime string
}

func (m Metadata) write(w *codec.Writer) {
	w.WriteNTString(m.Owner)
	w.WriteNTString(m.Email)
	w.WriteNTString(m.Description)
	w.WriteNTString(m.CreatedTime)
}

func readMetadata(r *codec.Reader) (Metadata, error) {
	var m Metadata
	var err error
	if m.Owner, err = r.ReadNTString(); err != nil {
		return Metadata{}, err
	}
	if m.Email, err = r.ReadNTString(); err != nil {
		return Metadata{}, err
	}
	if m.Description, err = r.ReadNTString(); err != nil {
		return Metadata{}, err
	}
	if m.CreatedTime, err = r.ReadNTString(); err != nil {
		return Metadata{}, err
	}
	return m, nil
}

func rawToText(raw []byte) (string, error) {
	compressed, err := compress.BrotliCompress(raw)
	if err != nil {
		return "", err
	}

	w := codec.NewWriter()
	w.WriteU64(uint64(len(raw)))
	w.WriteU64(uint64(len(compressed)))
	w.WriteRaw(compressed)

	b64 := compress.Base64Encode(w.Bytes())
	return compress.LineWrap(b64, lineWrapWidth), nil
}

func textToRaw(s string) ([]byte, error) {
	enveloped, err := compress.Base64Decode(s)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrKeyInvalid, err)
	}

	r := codec.NewReader(enveloped)
	rawSize, err := r.ReadU64()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrKeyInvalid, err)
	}
	comSize, err := r.ReadU64()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrKeyInvalid, err)
	}
	comBytes, err := r.ReadRaw(int(comSize))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrKeyInvalid, err)
	}

	raw, err := compress.BrotliDecompress(comBytes, int(rawSize))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrKeyInvalid, err)
	}
	if uint64(len(raw)) != rawSize {
		return nil, fmt.Errorf("%w: raw size mismatch", ErrKeyInvalid)
	}
	return raw, nil
}

// SerializePublicKey writes a public key file: metadata, type tag, signing
// public key bytes, brotli-compressed and base64-encoded with line breaks
// every 40 characters.
func SerializePublicKey(key PublicKey, md Metadata) (string, error) {
	w := codec.NewWriter()
	md.write(w)
	w.WriteI32(int32(KeyTypeDataPublic))
	w.WriteRaw(key.SignKey)
	return rawToText(w.Bytes())
}

// SerializeSecretKey writes a secret key file: metadata, type tag, signing
// private key bytes, then the secretbox key bytes, same envelope as
// SerializePublicKey.
func SerializeSecretKey(key SecretKey, md Metadata) (string, error) {
	w := codec.NewWriter()
	md.write(w)
	w.WriteI32(int32(KeyTypeDataSecret))
	w.WriteRaw(key.SignKey)
	w.WriteRaw(key.EncryptKey[:])
	return rawToText(w.Bytes())
}

// DeserializedKey is the union result of DeserializeKey: exactly one of
// Public or Secret is non-nil, matching the type tag found in the file.
type DeserializedKey struct {
	Type     KeyType
	Metadata Metadata
	Public   *PublicKey
	Secret   *SecretKey
}

// DeserializeKey parses a key file produced by SerializePublicKey or
// SerializeSecretKey. The input is whitespace-tolerant (line breaks and
// any other interspersed whitespace are stripped before base64 decoding).
func DeserializeKey(s string) (DeserializedKey, error) {
	raw, err := textToRaw(s)
	if err != nil {
		return DeserializedKey{}, err
	}

	r := codec.NewReader(raw)
	md, err := readMetadata(r)
	if err != nil {
		return DeserializedKey{}, fmt.Errorf("%w: %v", ErrKeyInvalid, err)
	}

	typeTag, err := r.ReadI32()
	if err != nil {
		return DeserializedKey{}, fmt.Errorf("%w: %v", ErrKeyInvalid, err)
	}

	out := DeserializedKey{Type: KeyType(typeTag), Metadata: md}

	switch KeyType(typeTag) {
	case KeyTypeDataPublic:
		signBytes, err := r.ReadRaw(ed25519.PublicKeySize)
		if err != nil {
			return DeserializedKey{}, fmt.Errorf("%w: %v", ErrKeyInvalid, err)
		}
		out.Public = &PublicKey{SignKey: ed25519.PublicKey(signBytes)}
	case KeyTypeDataSecret:
		signBytes, err := r.ReadRaw(ed25519.PrivateKeySize)
		if err != nil {
			return DeserializedKey{}, fmt.Errorf("%w: %v", ErrKeyInvalid, err)
		}
		encBytes, err := r.ReadRaw(secretboxKeySize)
		if err != nil {
			return DeserializedKey{}, fmt.Errorf("%w: %v", ErrKeyInvalid, err)
		}
		var encKey [secretboxKeySize]byte
		copy(encKey[:], encBytes)
		out.Secret = &SecretKey{SignKey: ed25519.PrivateKey(signBytes), EncryptKey: encKey}
	default:
		return DeserializedKey{}, fmt.Errorf("%w: unknown key type tag %d", ErrKeyInvalid, typeTag)
	}

	if !r.IsEOF() {
		return DeserializedKey{}, fmt.Errorf("%w: trailing bytes after key data", ErrKeyInvalid)
	}

	return out, nil
}
