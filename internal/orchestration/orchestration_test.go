package orchestration

import (
	"encoding/base64"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/govportal/delegation-service/pkg/commitment"
	"github.com/govportal/delegation-service/pkg/group"
	"github.com/govportal/delegation-service/pkg/policy"
	"github.com/govportal/delegation-service/pkg/proof"

	"github.com/govportal/delegation-service/internal/record"
	"github.com/govportal/delegation-service/internal/state"
)

func newTestState(t *testing.T) *state.ServerState {
	t.Helper()

	catalog := policy.NewCatalog(nil)
	require.NoError(t, catalog.Load([]policy.Policy{
		{
			ID:      "tax-filing",
			Visible: []string{"name", "nationalId", "dateOfBirth", "address"},
			Hidden:  []string{"income", "taxId", "employer", "maritalStatus", "dependents", "bankAccount"},
			Actions: []string{"read"},
		},
		{
			ID:      "medical-proxy",
			Visible: []string{"name", "dateOfBirth"},
			Hidden:  []string{"nationalId", "address", "income", "taxId", "employer", "maritalStatus", "dependents", "bankAccount"},
			Actions: []string{"read", "act-on-behalf"},
		},
	}))

	records := record.NewStore(nil)
	require.NoError(t, records.Seed("citizen-001",
		[]string{"name", "nationalId", "dateOfBirth", "address", "income", "taxId", "employer", "maritalStatus", "dependents", "bankAccount"},
		map[string]string{
			"name":          "Jane Citizen",
			"nationalId":    "990101-14-5577",
			"dateOfBirth":   "1999-01-01",
			"address":       "12 Market Street",
			"income":        "54000",
			"taxId":         "TX-8891273",
			"employer":      "Acme Corp",
			"maritalStatus": "single",
			"dependents":    "0",
			"bankAccount":   "IBAN-000111222",
		}))

	s, err := state.New(catalog, records, nil, nil)
	require.NoError(t, err)
	return s
}

func TestIssueUnknownRecordIsNotFound(t *testing.T) {
	s := newTestState(t)
	_, err := Issue(s, "no-such-citizen", "tax-filing", time.Minute)
	require.Error(t, err)
	assert.Equal(t, KindNotFound, err.(*Error).Kind)
}

func TestIssueUnknownPolicyIsInvalidPolicy(t *testing.T) {
	s := newTestState(t)
	_, err := Issue(s, "citizen-001", "no-such-policy", time.Minute)
	require.Error(t, err)
	assert.Equal(t, KindInvalidPolicy, err.(*Error).Kind)
}

func TestIDRenewalScenarioVerifies(t *testing.T) {
	s := newTestState(t)
	issued, err := Issue(s, "citizen-001", "tax-filing", time.Minute)
	require.NoError(t, err)

	dispensed, err := Dispense(s, issued.Token)
	require.NoError(t, err)
	assert.Equal(t, "Jane Citizen", dispensed.FilteredRecord["name"])
	assert.Len(t, dispensed.FilteredRecord, 4)
	assert.Equal(t, []string{"read"}, dispensed.Actions)

	result, err := Verify(s, issued.TokenID, dispensed.Proof)
	require.NoError(t, err)
	assert.True(t, result.Valid)
}

func TestTamperedValueFailsVerify(t *testing.T) {
	s := newTestState(t)
	issued, err := Issue(s, "citizen-001", "tax-filing", time.Minute)
	require.NoError(t, err)

	dispensed, err := Dispense(s, issued.Token)
	require.NoError(t, err)

	for i, o := range dispensed.Proof.Openings {
		if o.Name == "address" {
			dispensed.Proof.Openings[i].Value = "Elsewhere"
		}
	}

	result, err := Verify(s, issued.TokenID, dispensed.Proof)
	require.NoError(t, err)
	assert.False(t, result.Valid)
}

func TestWrongRandomnessFailsVerify(t *testing.T) {
	s := newTestState(t)
	issued, err := Issue(s, "citizen-001", "tax-filing", time.Minute)
	require.NoError(t, err)

	dispensed, err := Dispense(s, issued.Token)
	require.NoError(t, err)

	for i, o := range dispensed.Proof.Openings {
		if o.Name == "nationalId" {
			garbage := make([]byte, len(o.R))
			copy(garbage, o.R)
			garbage[0] ^= 0xFF
			dispensed.Proof.Openings[i].R = garbage
		}
	}

	result, err := Verify(s, issued.TokenID, dispensed.Proof)
	require.NoError(t, err)
	assert.False(t, result.Valid)
}

func TestPolicyHashStableAcrossReissue(t *testing.T) {
	s := newTestState(t)
	first, err := Issue(s, "citizen-001", "tax-filing", time.Minute)
	require.NoError(t, err)
	second, err := Issue(s, "citizen-001", "tax-filing", time.Minute)
	require.NoError(t, err)

	assert.Equal(t, first.PolicyHash, second.PolicyHash)
	assert.NotEqual(t, first.TokenID, second.TokenID)
	assert.NotEqual(t, first.RecordCommitment, second.RecordCommitment)
}

func TestExpiredTokenIsInvalidToken(t *testing.T) {
	s := newTestState(t)
	issued, err := Issue(s, "citizen-001", "tax-filing", time.Millisecond)
	require.NoError(t, err)

	time.Sleep(5 * time.Millisecond)

	_, err = Dispense(s, issued.Token)
	require.Error(t, err)
	assert.Equal(t, KindInvalidToken, err.(*Error).Kind)
}

func TestPolicyNotCoveringRecordIsPolicyRecordMismatch(t *testing.T) {
	s := newTestState(t)

	catalog := s.Catalog
	require.NoError(t, catalog.Load([]policy.Policy{{
		ID:      "partial",
		Visible: []string{"name"},
		Hidden:  []string{"income"},
		Actions: []string{"read"},
	}}))

	issued, err := Issue(s, "citizen-001", "partial", time.Minute)
	require.NoError(t, err)

	_, err = Dispense(s, issued.Token)
	require.Error(t, err)
	assert.Equal(t, KindPolicyRecordMismatch, err.(*Error).Kind)
}

func TestDispenseMalformedTokenIsInvalidToken(t *testing.T) {
	s := newTestState(t)
	_, err := Dispense(s, "not-a-real-token")
	require.Error(t, err)
	assert.Equal(t, KindInvalidToken, err.(*Error).Kind)
}

func TestOmittedVisibleFieldFailsVerify(t *testing.T) {
	// A dishonest server drops the "address" opening (visible under
	// tax-filing) and folds its commitment into hidden_commitment
	// instead. The partition equation C_D == C_H + C_F still holds
	// algebraically, so Verify must reject this independently of that
	// equation by checking the disclosed field set against the policy.
	s := newTestState(t)
	issued, err := Issue(s, "citizen-001", "tax-filing", time.Minute)
	require.NoError(t, err)

	dispensed, err := Dispense(s, issued.Token)
	require.NoError(t, err)

	var dropped proof.Opening
	kept := make([]proof.Opening, 0, len(dispensed.Proof.Openings)-1)
	for _, o := range dispensed.Proof.Openings {
		if o.Name == "address" {
			dropped = o
			continue
		}
		kept = append(kept, o)
	}
	require.NotEmpty(t, dropped.Name, "test fixture must disclose an 'address' opening")

	r, err := group.ScalarFromBytes(dropped.R)
	require.NoError(t, err)
	droppedFC, err := commitment.CommitField(dropped.Name, dropped.Value, &r)
	require.NoError(t, err)

	ch, err := group.Decode(dispensed.Proof.HiddenCommitment)
	require.NoError(t, err)
	foldedCH := group.Add(ch, droppedFC.C)

	dispensed.Proof.Openings = kept
	dispensed.Proof.HiddenCommitment = group.Encode(foldedCH)
	dispensed.Proof.HiddenFieldCount++

	_, err = Verify(s, issued.TokenID, dispensed.Proof)
	require.Error(t, err)
	assert.Equal(t, KindMalformed, err.(*Error).Kind)
}

func TestCrossPolicySubstitutionFailsSignature(t *testing.T) {
	// Capture a token minted for tax-filing, then tamper with its
	// compact-serialization payload segment to claim medical-proxy
	// instead. The signature no longer matches the (altered) payload,
	// so Dispense must reject it as InvalidToken rather than honor the
	// substituted policy.
	s := newTestState(t)
	issued, err := Issue(s, "citizen-001", "tax-filing", time.Minute)
	require.NoError(t, err)

	parts := strings.Split(issued.Token, ".")
	require.Len(t, parts, 3)
	payload, err := base64.RawURLEncoding.DecodeString(parts[1])
	require.NoError(t, err)
	require.Contains(t, string(payload), `"policy":"tax-filing"`)
	forged := strings.Replace(string(payload), `"policy":"tax-filing"`, `"policy":"medical-proxy"`, 1)
	tampered := parts[0] + "." + base64.RawURLEncoding.EncodeToString([]byte(forged)) + "." + parts[2]

	_, err = Dispense(s, tampered)
	require.Error(t, err)
	assert.Equal(t, KindInvalidToken, err.(*Error).Kind)
}
