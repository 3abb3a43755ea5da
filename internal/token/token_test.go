package token_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/imanshadilshan/work-ora/internal/token"
)

func TestSessionTokenRoundTrip(t *testing.T) {
	issuer := token.NewIssuer("unit-test-secret", 15*24*time.Hour, 15*time.Minute)

	raw, err := issuer.SessionToken(42)
	require.NoError(t, err)

	id, err := issuer.VerifySession(raw)
	require.NoError(t, err)
	require.Equal(t, int64(42), id)
}

func TestSessionTokenRejectsWrongSecret(t *testing.T) {
	issuer := token.NewIssuer("secret-a", time.Hour, time.Minute)
	other := token.NewIssuer("secret-b", time.Hour, time.Minute)

	raw, err := issuer.SessionToken(7)
	require.NoError(t, err)

	_, err = other.VerifySession(raw)
	require.Error(t, err)
}

func TestExpiredSessionTokenRejected(t *testing.T) {
	issuer := token.NewIssuer("unit-test-secret", -time.Hour, time.Minute)

	raw, err := issuer.SessionToken(7)
	require.NoError(t, err)

	_, err = issuer.VerifySession(raw)
	require.Error(t, err)
}

func TestResetTokenRoundTrip(t *testing.T) {
	issuer := token.NewIssuer("unit-test-secret", time.Hour, 15*time.Minute)

	raw, err := issuer.ResetToken("a@x.com")
	require.NoError(t, err)

	email, err := issuer.VerifyReset(raw)
	require.NoError(t, err)
	require.Equal(t, "a@x.com", email)
}

func TestSessionTokenIsNotAResetToken(t *testing.T) {
	issuer := token.NewIssuer("unit-test-secret", time.Hour, 15*time.Minute)

	raw, err := issuer.SessionToken(7)
	require.NoError(t, err)

	_, err = issuer.VerifyReset(raw)
	require.Error(t, err)
}
