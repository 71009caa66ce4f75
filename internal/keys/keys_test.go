package keys

import (
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// uncompressed secp256k1 point: 0x04 marker byte plus two 32-byte coordinates.
var pubKeyPattern = regexp.MustCompile(`^0x04[0-9a-f]{128}$`)

func TestPublicKeyFormat(t *testing.T) {
	s, err := NewSigner()
	require.NoError(t, err)

	assert.Regexp(t, pubKeyPattern, s.PublicKey())
}

func TestSignVerify(t *testing.T) {
	s, err := NewSigner()
	require.NoError(t, err)

	msg := []byte("proof artifact")
	sig := s.Sign(msg)

	assert.True(t, s.Verify(msg, sig))
	assert.False(t, s.Verify([]byte("tampered"), sig))
	assert.False(t, s.Verify(msg, "0xdeadbeef"))
}

func TestSignersAreDistinct(t *testing.T) {
	a, err := NewSigner()
	require.NoError(t, err)
	b, err := NewSigner()
	require.NoError(t, err)

	assert.NotEqual(t, a.PublicKey(), b.PublicKey())
}

func TestDecodeInput(t *testing.T) {
	tests := []struct {
		input   string
		want    string
		wantErr bool
	}{
		{"0xDEADBEEF", "deadbeef", false},
		{"deadbeef", "deadbeef", false},
		{"0x", "", false},
		{"0xzz", "", true},
		{"not hex", "", true},
	}

	for _, tt := range tests {
		got, err := DecodeInput(tt.input)
		if tt.wantErr {
			assert.ErrorIsf(t, err, ErrMalformedInput, "DecodeInput(%q)", tt.input)
			continue
		}
		require.NoErrorf(t, err, "DecodeInput(%q)", tt.input)
		assert.Equal(t, tt.want, got)
	}
}
