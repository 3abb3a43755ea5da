package password_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/imanshadilshan/work-ora/internal/password"
)

func TestHashAndVerify(t *testing.T) {
	hash, err := password.Hash("s3cret-passw0rd")
	require.NoError(t, err)
	require.True(t, strings.HasPrefix(hash, "$argon2id$"))

	ok, err := password.Verify("s3cret-passw0rd", hash)
	require.NoError(t, err)
	require.True(t, ok)

	ok, err = password.Verify("wrong-password", hash)
	require.NoError(t, err)
	require.False(t, ok)
}

func TestHashIsSalted(t *testing.T) {
	first, err := password.Hash("same-input")
	require.NoError(t, err)
	second, err := password.Hash("same-input")
	require.NoError(t, err)
	require.NotEqual(t, first, second)
}

func TestVerifyRejectsMalformedHash(t *testing.T) {
	for _, encoded := range []string{
		"",
		"plain",
		"$argon2i$v=19$m=65536,t=3,p=2$c2FsdA$aGFzaA",
		"$argon2id$v=19$m=65536$c2FsdA$aGFzaA",
	} {
		_, err := password.Verify("anything", encoded)
		require.Error(t, err, "encoded=%q", encoded)
	}
}
