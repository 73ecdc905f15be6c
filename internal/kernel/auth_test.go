package kernel

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCredentialIssuer_RoundTrip(t *testing.T) {
	issuer := NewCredentialIssuer([]byte("test-secret"), time.Hour)
	token, err := issuer.IssueCredential(Principal{User: "alice", Role: "operator"})
	require.NoError(t, err)

	principal, err := issuer.VerifyCredential(token)
	require.NoError(t, err)
	assert.Equal(t, "alice", principal.User)
	assert.Equal(t, "operator", principal.Role)
}

func TestCredentialIssuer_RejectsTamperedToken(t *testing.T) {
	issuer := NewCredentialIssuer([]byte("test-secret"), time.Hour)
	token, err := issuer.IssueCredential(Principal{User: "alice", Role: "operator"})
	require.NoError(t, err)

	_, err = issuer.VerifyCredential(token + "x")
	assert.Error(t, err)
}

func TestCredentialIssuer_RejectsWrongSecret(t *testing.T) {
	issuer := NewCredentialIssuer([]byte("secret-a"), time.Hour)
	token, err := issuer.IssueCredential(Principal{User: "alice"})
	require.NoError(t, err)

	other := NewCredentialIssuer([]byte("secret-b"), time.Hour)
	_, err = other.VerifyCredential(token)
	assert.Error(t, err)
}

func TestCredentialIssuer_RejectsExpiredToken(t *testing.T) {
	issuer := NewCredentialIssuer([]byte("test-secret"), -time.Minute)
	token, err := issuer.IssueCredential(Principal{User: "alice"})
	require.NoError(t, err)

	_, err = issuer.VerifyCredential(token)
	assert.Error(t, err)
}
