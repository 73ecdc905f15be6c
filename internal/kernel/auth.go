package kernel

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Principal is the verified caller identity the gateway attaches to
// every call (spec §6 REST surface: "the core only mandates that the
// gateway attach a verified principal... {user, role}").
type Principal struct {
	User string `json:"user"`
	Role string `json:"role"`
}

// claims is the JWT payload issued by IssueCredential.
type claims struct {
	Principal
	jwt.RegisteredClaims
}

// CredentialIssuer issues and verifies short-lived bearer credentials
// for POST auth. Grounded on the JWT-bearer auth pattern in the
// pack's api-gateway service (token-shaped validation middleware),
// hardened here with real signature verification via
// github.com/golang-jwt/jwt/v5 instead of the pack's format-only check.
type CredentialIssuer struct {
	secret []byte
	ttl    time.Duration
}

// NewCredentialIssuer creates an issuer. ttl == 0 defaults to 1 hour;
// a negative ttl is honored as-is so callers can mint already-expired
// tokens (used by tests).
func NewCredentialIssuer(secret []byte, ttl time.Duration) *CredentialIssuer {
	if ttl == 0 {
		ttl = time.Hour
	}
	return &CredentialIssuer{secret: secret, ttl: ttl}
}

// IssueCredential mints a signed bearer token for principal.
func (ci *CredentialIssuer) IssueCredential(principal Principal) (string, error) {
	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims{
		Principal: principal,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ci.ttl)),
		},
	})
	return token.SignedString(ci.secret)
}

// VerifyCredential validates a bearer token and returns its principal.
func (ci *CredentialIssuer) VerifyCredential(tokenString string) (Principal, error) {
	var c claims
	token, err := jwt.ParseWithClaims(tokenString, &c, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return ci.secret, nil
	})
	if err != nil || !token.Valid {
		return Principal{}, fmt.Errorf("invalid credential: %w", err)
	}
	return c.Principal, nil
}
