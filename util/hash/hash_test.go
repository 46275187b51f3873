package hash

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestHashAndCheck(t *testing.T) {
	h, err := HashPassword("supersecret")
	require.NoError(t, err)
	require.NotEqual(t, "supersecret", h)

	require.True(t, Check(h, "supersecret"))
	require.False(t, Check(h, "wrong-password"))
}

func TestHashIsSalted(t *testing.T) {
	h1, err := HashPassword("same-input")
	require.NoError(t, err)
	h2, err := HashPassword("same-input")
	require.NoError(t, err)

	require.NotEqual(t, h1, h2)
	require.True(t, Check(h1, "same-input"))
	require.True(t, Check(h2, "same-input"))
}

func TestCheckMalformedHash(t *testing.T) {
	require.False(t, Check("not-a-bcrypt-hash", "anything"))
	require.False(t, Check("", "anything"))
}
