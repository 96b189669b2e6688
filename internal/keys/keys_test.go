package keys

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSignVerify(t *testing.T) {
	pub, sec, err := GenDataKeypair()
	require.NoError(t, err)

	msg := []byte("a DMD payload worth signing")
	sig := Sign(sec, msg)
	require.True(t, Verify(pub, msg, sig))

	otherPub, _, err := GenDataKeypair()
	require.NoError(t, err)
	require.False(t, Verify(otherPub, msg, sig))
}

func TestEncryptDecrypt(t *testing.T) {
	_, sec, err := GenDataKeypair()
	require.NoError(t, err)

	msg := []byte("secret payload bytes")
	ct, err := Encrypt(sec, msg)
	require.NoError(t, err)
	require.NotEqual(t, msg, ct)

	pt, err := Decrypt(sec, ct)
	require.NoError(t, err)
	require.Equal(t, msg, pt)
}

func TestKeyFileRoundTrip(t *testing.T) {
	pub, sec, err := GenDataKeypair()
	require.NoError(t, err)

	md := Metadata{Owner: "sung", Email: "sung@example.com", Description: "test key", CreatedTime: "2026-07-30T00:00:00Z"}

	pubText, err := SerializePublicKey(pub, md)
	require.NoError(t, err)
	require.True(t, strings.Contains(pubText, "\n"))
	for _, line := range strings.Split(strings.TrimRight(pubText, "\n"), "\n") {
		require.LessOrEqual(t, len(line), 40)
	}

	parsed, err := DeserializeKey(pubText)
	require.NoError(t, err)
	require.Equal(t, KeyTypeDataPublic, parsed.Type)
	require.Equal(t, md, parsed.Metadata)
	require.Equal(t, pub.SignKey, parsed.Public.SignKey)

	secText, err := SerializeSecretKey(sec, md)
	require.NoError(t, err)
	parsedSec, err := DeserializeKey(secText)
	require.NoError(t, err)
	require.Equal(t, KeyTypeDataSecret, parsedSec.Type)
	require.Equal(t, sec.SignKey, parsedSec.Secret.SignKey)
	require.Equal(t, sec.EncryptKey, parsedSec.Secret.EncryptKey)
}

func TestKeyFileWhitespaceTolerant(t *testing.T) {
	pub, _, err := GenDataKeypair()
	require.NoError(t, err)
	md := Metadata{Owner: "o", Email: "e", Description: "d", CreatedTime: "t"}

	text, err := SerializePublicKey(pub, md)
	require.NoError(t, err)

	noisy := strings.ReplaceAll(text, "\n", "\n  \t")
	parsed, err := DeserializeKey(noisy)
	require.NoError(t, err)
	require.Equal(t, pub.SignKey, parsed.Public.SignKey)
}

func TestDeserializeInvalidBase64Fails(t *testing.T) {
	_, err := DeserializeKey("not even base64 ???")
	require.ErrorIs(t, err, ErrKeyInvalid)
}
