// Package token signs and verifies the bearer tokens used across the
// API. All tokens are HS256 against a single shared secret; there is no
// refresh or revocation, a token stays valid until it expires.
package token

import (
	"fmt"
	"strconv"
	"time"

	gojose "github.com/go-jose/go-jose/v4"
	gojwt "github.com/go-jose/go-jose/v4/jwt"
)

const resetTokenType = "reset"

// Issuer signs and validates JWTs.
type Issuer struct {
	secret     []byte
	sessionTTL time.Duration
	resetTTL   time.Duration
}

// NewIssuer constructs an Issuer for the shared secret.
func NewIssuer(secret string, sessionTTL, resetTTL time.Duration) *Issuer {
	return &Issuer{secret: []byte(secret), sessionTTL: sessionTTL, resetTTL: resetTTL}
}

type sessionClaims struct {
	ID int64 `json:"id"`
}

type resetClaims struct {
	Email string `json:"email"`
	Type  string `json:"type"`
}

// SessionToken issues a token embedding the account identifier.
func (i *Issuer) SessionToken(userID int64) (string, error) {
	return i.sign(gojwt.Claims{Subject: strconv.FormatInt(userID, 10)}, sessionClaims{ID: userID}, i.sessionTTL)
}

// ResetToken issues a short-lived password-reset token for the email.
func (i *Issuer) ResetToken(email string) (string, error) {
	return i.sign(gojwt.Claims{}, resetClaims{Email: email, Type: resetTokenType}, i.resetTTL)
}

func (i *Issuer) sign(std gojwt.Claims, custom any, ttl time.Duration) (string, error) {
	signer, err := gojose.NewSigner(
		gojose.SigningKey{Algorithm: gojose.HS256, Key: i.secret},
		(&gojose.SignerOptions{}).WithType("JWT"),
	)
	if err != nil {
		return "", fmt.Errorf("new signer: %w", err)
	}

	now := time.Now().UTC()
	std.IssuedAt = gojwt.NewNumericDate(now)
	std.Expiry = gojwt.NewNumericDate(now.Add(ttl))

	signed, err := gojwt.Signed(signer).Claims(std).Claims(custom).Serialize()
	if err != nil {
		return "", fmt.Errorf("serialize jwt: %w", err)
	}
	return signed, nil
}

// VerifySession validates a session token and returns the embedded
// account identifier.
func (i *Issuer) VerifySession(raw string) (int64, error) {
	var custom sessionClaims
	if err := i.verify(raw, &custom); err != nil {
		return 0, err
	}
	if custom.ID == 0 {
		return 0, fmt.Errorf("missing subject claim")
	}
	return custom.ID, nil
}

// VerifyReset validates a password-reset token and returns the email it
// was issued for.
func (i *Issuer) VerifyReset(raw string) (string, error) {
	var custom resetClaims
	if err := i.verify(raw, &custom); err != nil {
		return "", err
	}
	if custom.Type != resetTokenType || custom.Email == "" {
		return "", fmt.Errorf("not a reset token")
	}
	return custom.Email, nil
}

func (i *Issuer) verify(raw string, custom any) error {
	parsed, err := gojwt.ParseSigned(raw, []gojose.SignatureAlgorithm{gojose.HS256})
	if err != nil {
		return fmt.Errorf("parse token: %w", err)
	}

	var std gojwt.Claims
	if err := parsed.Claims(i.secret, &std, custom); err != nil {
		return fmt.Errorf("verify token: %w", err)
	}

	if err := std.Validate(gojwt.Expected{Time: time.Now().UTC()}); err != nil {
		return fmt.Errorf("validate claims: %w", err)
	}
	return nil
}
