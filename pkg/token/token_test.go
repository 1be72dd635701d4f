package token

import (
	"encoding/base64"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIssueAndParseRoundTrip(t *testing.T) {
	secret, err := NewSecret()
	require.NoError(t, err)

	signed, expiresAt, err := Issue(secret, "tok-1", "citizen-001", "tax-filing", "deadbeef", []byte{0x02, 0x01}, []string{"read"}, time.Minute)
	require.NoError(t, err)
	assert.NotEmpty(t, signed)
	assert.True(t, expiresAt.After(time.Now()))

	claims, err := ParseAndVerify(secret, signed)
	require.NoError(t, err)
	assert.Equal(t, "tok-1", claims.ID)
	assert.Equal(t, "tax-filing", claims.PolicyID)
	assert.Equal(t, "deadbeef", claims.PolicyHash)
	assert.Equal(t, []string{"read"}, claims.Actions)
}

func TestParseRejectsWrongSecret(t *testing.T) {
	secret, err := NewSecret()
	require.NoError(t, err)
	other, err := NewSecret()
	require.NoError(t, err)

	signed, _, err := Issue(secret, "tok-1", "citizen-001", "tax-filing", "deadbeef", nil, nil, time.Minute)
	require.NoError(t, err)

	_, err = ParseAndVerify(other, signed)
	assert.Error(t, err)
}

func TestParseRejectsExpiredToken(t *testing.T) {
	secret, err := NewSecret()
	require.NoError(t, err)

	signed, _, err := Issue(secret, "tok-1", "citizen-001", "tax-filing", "deadbeef", nil, nil, -time.Second)
	require.NoError(t, err)

	_, err = ParseAndVerify(secret, signed)
	assert.Error(t, err)
}

func TestParseRejectsMalformedToken(t *testing.T) {
	secret, err := NewSecret()
	require.NoError(t, err)

	_, err = ParseAndVerify(secret, "not-a-token")
	assert.Error(t, err)
}

func TestSubjectFingerprintIsStableAndOpaque(t *testing.T) {
	a := SubjectFingerprint("citizen-001")
	b := SubjectFingerprint("citizen-001")
	c := SubjectFingerprint("citizen-002")

	assert.Equal(t, a, b)
	assert.NotEqual(t, a, c)
	assert.Len(t, a, 16)
	assert.NotContains(t, a, "citizen-001")
}

func TestCrossPolicySubstitutionFailsSignature(t *testing.T) {
	secret, err := NewSecret()
	require.NoError(t, err)

	signed, _, err := Issue(secret, "tok-1", "citizen-001", "tax-filing", "deadbeef", nil, []string{"read"}, time.Minute)
	require.NoError(t, err)

	claims, err := ParseAndVerify(secret, signed)
	require.NoError(t, err)
	assert.Equal(t, "tax-filing", claims.PolicyID)

	// Rewrite the payload segment to claim medical-proxy while keeping
	// the original signature: verification must fail.
	parts := strings.Split(signed, ".")
	require.Len(t, parts, 3)
	payload, err := base64.RawURLEncoding.DecodeString(parts[1])
	require.NoError(t, err)
	require.Contains(t, string(payload), `"policy":"tax-filing"`)
	forged := strings.Replace(string(payload), `"policy":"tax-filing"`, `"policy":"medical-proxy"`, 1)
	tampered := parts[0] + "." + base64.RawURLEncoding.EncodeToString([]byte(forged)) + "." + parts[2]

	_, err = ParseAndVerify(secret, tampered)
	assert.Error(t, err)
}
