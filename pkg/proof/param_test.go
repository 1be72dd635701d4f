package proof

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/govportal/delegation-service/pkg/commitment"
	"github.com/govportal/delegation-service/pkg/group"
)

func TestBuildAndVerifyRoundTrip(t *testing.T) {
	rec := commitment.NewRecord(
		[]string{"name", "nationalId", "income"},
		map[string]string{"name": "Jane Citizen", "nationalId": "990101-14-5577", "income": "54000"},
	)
	rc, fcs, err := commitment.CommitRecord(rec)
	require.NoError(t, err)

	hidden := []string{"income"}
	ch := commitment.SubsetCommitment(fcs, hidden)

	visible := []string{"name", "nationalId"}
	var openings []commitment.Opening
	for _, name := range visible {
		fc := fcs[name]
		openings = append(openings, commitment.Opening{Name: fc.Name, Value: fc.Value, R: fc.R})
	}

	p := BuildPartitionProof(rc.CD, ch, openings, len(hidden))
	valid, _, err := Verify(rc.CD, p)
	require.NoError(t, err)
	assert.True(t, valid)
}

func TestVerifyRejectsTamperedOpening(t *testing.T) {
	rec := commitment.NewRecord(
		[]string{"name", "income"},
		map[string]string{"name": "Jane Citizen", "income": "54000"},
	)
	rc, fcs, err := commitment.CommitRecord(rec)
	require.NoError(t, err)

	ch := commitment.SubsetCommitment(fcs, []string{"income"})
	fc := fcs["name"]
	openings := []commitment.Opening{{Name: fc.Name, Value: "Someone Else", R: fc.R}}

	p := BuildPartitionProof(rc.CD, ch, openings, 1)
	valid, _, err := Verify(rc.CD, p)
	require.NoError(t, err)
	assert.False(t, valid)
}

func TestDecodeRejectsMalformedCommitment(t *testing.T) {
	p := PartitionProof{
		RecordCommitment: []byte{0x02, 0x01},
		HiddenCommitment: group.Encode(group.Identity()),
	}
	_, _, _, err := p.Decode()
	assert.Error(t, err)
}

func TestDecodeRejectsMalformedRandomness(t *testing.T) {
	p := PartitionProof{
		RecordCommitment: group.Encode(group.Identity()),
		HiddenCommitment: group.Encode(group.Identity()),
		Openings:         []Opening{{Name: "x", Value: "y", R: []byte{1, 2, 3}}},
	}
	_, _, _, err := p.Decode()
	assert.Error(t, err)
}
