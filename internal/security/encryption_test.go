package security

import (
	"crypto/rand"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSealer_SealOpen(t *testing.T) {
	sealer, err := NewSealer("device-secret", nil)
	require.NoError(t, err)

	testCases := []struct {
		name      string
		plaintext string
	}{
		{name: "jwt", plaintext: "eyJhbGciOiJIUzI1NiJ9.eyJzdWIiOiIxIn0.sig"},
		{name: "empty string", plaintext: ""},
		{name: "unicode text", plaintext: "Fáj a fejem"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			sealed, err := sealer.Seal(tc.plaintext)
			require.NoError(t, err)

			if tc.plaintext == "" {
				assert.Empty(t, sealed)
			} else {
				assert.NotEqual(t, tc.plaintext, sealed)
			}

			opened, err := sealer.Open(sealed)
			require.NoError(t, err)
			assert.Equal(t, tc.plaintext, opened)
		})
	}
}

func TestSealer_SameSecretSameKey(t *testing.T) {
	a, err := NewSealer("device-secret", []byte("salt"))
	require.NoError(t, err)
	b, err := NewSealer("device-secret", []byte("salt"))
	require.NoError(t, err)

	sealed, err := a.Seal("token")
	require.NoError(t, err)

	opened, err := b.Open(sealed)
	require.NoError(t, err)
	assert.Equal(t, "token", opened)
}

func TestSealer_WrongSecretFails(t *testing.T) {
	a, err := NewSealer("device-secret", nil)
	require.NoError(t, err)
	b, err := NewSealer("other-secret", nil)
	require.NoError(t, err)

	sealed, err := a.Seal("token")
	require.NoError(t, err)

	_, err = b.Open(sealed)
	assert.Error(t, err)
}

func TestSealer_InvalidInput(t *testing.T) {
	sealer, err := NewSealer("device-secret", nil)
	require.NoError(t, err)

	_, err = sealer.Open("not base64!!")
	assert.Error(t, err)

	_, err = sealer.Open("YWJj")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "too short")
}

func TestNewSealer_Validation(t *testing.T) {
	_, err := NewSealer("", nil)
	assert.Error(t, err)

	_, err = NewSealerWithKey(make([]byte, 16))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "sealing key must be 32 bytes")
}

func TestSealer_DifferentCiphertexts(t *testing.T) {
	key := make([]byte, 32)
	_, err := rand.Read(key)
	require.NoError(t, err)

	sealer, err := NewSealerWithKey(key)
	require.NoError(t, err)

	first, err := sealer.Seal("token")
	require.NoError(t, err)
	second, err := sealer.Seal("token")
	require.NoError(t, err)

	assert.NotEqual(t, first, second, "nonce must differ per seal")
}

func TestProperty_SealOpenRoundTrip(t *testing.T) {
	sealer, err := NewSealer("device-secret", nil)
	require.NoError(t, err)

	properties := gopter.NewProperties(nil)

	properties.Property("open(seal(x)) == x", prop.ForAll(
		func(s string) bool {
			sealed, err := sealer.Seal(s)
			if err != nil {
				return false
			}
			opened, err := sealer.Open(sealed)
			return err == nil && opened == s
		},
		gen.AnyString(),
	))

	properties.TestingRun(t)
}
