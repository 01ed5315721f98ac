package cipher

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestXChaCha(t *testing.T) {
	c, err := New("test-secret")
	require.NoError(t, err)

	opaque, err := c.Encrypt([]byte("4111111111111111"))
	require.NoError(t, err)
	assert.NotContains(t, opaque, "4111111111111111")

	again, err := c.Encrypt([]byte("4111111111111111"))
	require.NoError(t, err)
	assert.NotEqual(t, opaque, again, "nonce must differ per call")

	plain, err := c.Decrypt(opaque)
	require.NoError(t, err)
	assert.Equal(t, "4111111111111111", string(plain))
}

func TestXChaCha_Errors(t *testing.T) {
	_, err := New("")
	assert.Error(t, err)

	c, err := New("one")
	require.NoError(t, err)
	other, err := New("two")
	require.NoError(t, err)

	opaque, err := c.Encrypt([]byte("secret"))
	require.NoError(t, err)

	_, err = other.Decrypt(opaque)
	assert.ErrorIs(t, err, ErrMalformedCiphertext)

	_, err = c.Decrypt("%%%")
	assert.ErrorIs(t, err, ErrMalformedCiphertext)

	_, err = c.Decrypt("AAAA")
	assert.ErrorIs(t, err, ErrMalformedCiphertext)
}
