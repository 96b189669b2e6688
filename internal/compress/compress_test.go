package compress

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDeflateRoundTrip(t *testing.T) {
	src := []byte("the quick brown fox jumps over the lazy dog, repeatedly, " +
		"the quick brown fox jumps over the lazy dog")
	c, err := DeflateCompress(src)
	require.NoError(t, err)
	got, err := DeflateDecompress(c, len(src))
	require.NoError(t, err)
	require.Equal(t, src, got)
}

func TestBrotliRoundTrip(t *testing.T) {
	src := []byte("the quick brown fox jumps over the lazy dog, repeatedly, " +
		"the quick brown fox jumps over the lazy dog")
	c, err := BrotliCompress(src)
	require.NoError(t, err)
	got, err := BrotliDecompress(c, len(src))
	require.NoError(t, err)
	require.Equal(t, src, got)
}

func TestEnvelopeRoundTrip(t *testing.T) {
	src := []byte("envelope payload bytes")
	env, err := EnvelopeCompress(src)
	require.NoError(t, err)
	got, err := EnvelopeDecompress(env)
	require.NoError(t, err)
	require.Equal(t, src, got)
}

func TestEnvelopeSizeMismatch(t *testing.T) {
	src := []byte("envelope payload bytes")
	env, err := EnvelopeCompress(src)
	require.NoError(t, err)
	// Corrupt the declared raw size.
	env[0] = 0xFF
	_, err = EnvelopeDecompress(env)
	require.ErrorIs(t, err, ErrCorruptedData)
}

func TestDeflateDecompressRejectsUndersizedHint(t *testing.T) {
	src := []byte("the quick brown fox jumps over the lazy dog, repeatedly")
	c, err := DeflateCompress(src)
	require.NoError(t, err)
	_, err = DeflateDecompress(c, len(src)-1)
	require.ErrorIs(t, err, ErrCorruptedData)
}

func TestBrotliDecompressRejectsUndersizedHint(t *testing.T) {
	src := []byte("the quick brown fox jumps over the lazy dog, repeatedly")
	c, err := BrotliCompress(src)
	require.NoError(t, err)
	_, err = BrotliDecompress(c, len(src)-1)
	require.ErrorIs(t, err, ErrCorruptedData)
}

func TestBase64WhitespaceTolerant(t *testing.T) {
	data := []byte("some arbitrary binary-ish payload \x00\x01\x02")
	enc := Base64Encode(data)
	wrapped := LineWrap(enc, 8)

	got1, err := Base64Decode(enc)
	require.NoError(t, err)
	got2, err := Base64Decode(wrapped)
	require.NoError(t, err)

	require.Equal(t, got1, got2)
	require.Equal(t, data, got1)
}
