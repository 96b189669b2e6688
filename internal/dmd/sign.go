package dmd

import "github.com/sausagetaste/daltools-go/internal/keys"

// SignPayload produces a detached signature over an encoded DMD envelope
// (the bytes returned by Encode), using the signing half of sec.
func SignPayload(sec keys.SecretKey, encoded []byte) []byte {
	return keys.Sign(sec, encoded)
}

// VerifyPayload reports whether sig is a valid detached signature over
// an encoded DMD envelope under pub.
func VerifyPayload(pub keys.PublicKey, encoded, sig []byte) bool {
	return keys.Verify(pub, encoded, sig)
}
