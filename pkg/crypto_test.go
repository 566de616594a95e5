package pkg

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCrypto_RoundTrip(t *testing.T) {
	c, err := NewCrypto("0123456789abcdef")
	require.NoError(t, err)

	sealed, err := c.Encrypt(`{"username":"li"}`)
	require.NoError(t, err)
	assert.NotContains(t, sealed, "username")

	plain, err := c.Decrypt(sealed)
	require.NoError(t, err)
	assert.Equal(t, `{"username":"li"}`, plain)
}

func TestCrypto_RejectsBadKey(t *testing.T) {
	_, err := NewCrypto("short")
	require.Error(t, err)
}

func TestCrypto_TamperedInput(t *testing.T) {
	c, err := NewCrypto("0123456789abcdef0123456789abcdef")
	require.NoError(t, err)

	_, err = c.Decrypt("AAAA")
	require.Error(t, err)
}

func TestPassRate(t *testing.T) {
	assert.Equal(t, 0.0, PassRate(0, 0))
	assert.Equal(t, 50.0, PassRate(1, 2))
	assert.Equal(t, 33.3, PassRate(1, 3))
}

func TestClamp(t *testing.T) {
	assert.Equal(t, 1, Clamp(-4, 1, 10))
	assert.Equal(t, 10, Clamp(40, 1, 10))
	assert.Equal(t, 5, Clamp(5, 1, 10))
}
