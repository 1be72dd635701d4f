package commitment

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/govportal/delegation-service/pkg/group"
)

func testRecord() Record {
	names := []string{"name", "nationalId", "dateOfBirth", "address", "income", "taxId"}
	values := map[string]string{
		"name":        "Jane Citizen",
		"nationalId":  "990101-14-5577",
		"dateOfBirth": "1999-01-01",
		"address":     "12 Market Street",
		"income":      "54000",
		"taxId":       "TX-8891273",
	}
	return NewRecord(names, values)
}

func TestCommitFieldReproducibility(t *testing.T) {
	r, err := group.RandomScalar()
	require.NoError(t, err)

	fc, err := CommitField("nationalId", "990101-14-5577", &r)
	require.NoError(t, err)

	m := group.HashToScalar(fieldMessageBytes("nationalId", "990101-14-5577"))
	want := group.Add(group.ScalarMul(m, group.Generator()), group.ScalarMul(r, group.H()))
	assert.True(t, group.Equal(want, fc.C))
}

func TestCommitRecordEqualsSumOfFieldCommitments(t *testing.T) {
	rec := testRecord()
	rc, fcs, err := CommitRecord(rec)
	require.NoError(t, err)

	var points []group.Point
	for _, name := range rec.Names {
		points = append(points, fcs[name].C)
	}
	assert.True(t, group.Equal(rc.CD, group.Sum(points...)))
}

func TestSubsetCommitmentHomomorphism(t *testing.T) {
	rec := testRecord()
	rc, fcs, err := CommitRecord(rec)
	require.NoError(t, err)

	visible := []string{"name", "nationalId", "dateOfBirth", "address"}
	hidden := []string{"income", "taxId"}

	cv := SubsetCommitment(fcs, visible)
	ch := SubsetCommitment(fcs, hidden)

	assert.True(t, group.Equal(rc.CD, group.Add(cv, ch)))
}

func TestSubsetCommitmentSkipsUnknownNames(t *testing.T) {
	rec := testRecord()
	_, fcs, err := CommitRecord(rec)
	require.NoError(t, err)

	withExtra := SubsetCommitment(fcs, []string{"name", "not-a-real-field"})
	withoutExtra := SubsetCommitment(fcs, []string{"name"})
	assert.True(t, group.Equal(withExtra, withoutExtra))
}

func TestSubsetCommitmentEmptyIsIdentity(t *testing.T) {
	assert.True(t, SubsetCommitment(map[string]FieldCommitment{}, nil).IsIdentity())
}

func TestVerifyPartitionHonestProof(t *testing.T) {
	rec := testRecord()
	rc, fcs, err := CommitRecord(rec)
	require.NoError(t, err)

	visible := []string{"name", "nationalId", "dateOfBirth", "address"}
	hidden := []string{"income", "taxId"}

	ch := SubsetCommitment(fcs, hidden)
	var openings []Opening
	for _, name := range visible {
		fc := fcs[name]
		openings = append(openings, Opening{Name: fc.Name, Value: fc.Value, R: fc.R})
	}
	cf := RecomputeFromOpenings(openings)

	assert.True(t, VerifyPartition(rc.CD, ch, cf))
}

func TestVerifyPartitionDetectsTamperedValue(t *testing.T) {
	rec := testRecord()
	rc, fcs, err := CommitRecord(rec)
	require.NoError(t, err)

	hidden := []string{"income", "taxId"}
	ch := SubsetCommitment(fcs, hidden)

	fc := fcs["address"]
	tampered := []Opening{{Name: fc.Name, Value: "Elsewhere", R: fc.R}}
	cf := RecomputeFromOpenings(tampered)

	assert.False(t, VerifyPartition(rc.CD, ch, cf))
}

func TestVerifyPartitionDetectsWrongRandomness(t *testing.T) {
	rec := testRecord()
	rc, fcs, err := CommitRecord(rec)
	require.NoError(t, err)

	hidden := []string{"income", "taxId"}
	ch := SubsetCommitment(fcs, hidden)

	fc := fcs["nationalId"]
	freshR, err := group.RandomScalar()
	require.NoError(t, err)

	tampered := []Opening{{Name: fc.Name, Value: fc.Value, R: freshR}}
	cf := RecomputeFromOpenings(tampered)

	assert.False(t, VerifyPartition(rc.CD, ch, cf))
}

func TestEmptyRecordCommitmentIsIdentity(t *testing.T) {
	rc, fcs, err := CommitRecord(NewRecord(nil, map[string]string{}))
	require.NoError(t, err)
	assert.True(t, rc.CD.IsIdentity())
	assert.Empty(t, fcs)

	// A proof with no openings and C_H = identity must verify.
	assert.True(t, VerifyPartition(rc.CD, group.Identity(), RecomputeFromOpenings(nil)))
}

func TestSingleVisibleFieldRecord(t *testing.T) {
	rec := NewRecord([]string{"onlyField"}, map[string]string{"onlyField": "value"})
	rc, fcs, err := CommitRecord(rec)
	require.NoError(t, err)

	ch := SubsetCommitment(fcs, nil)
	assert.True(t, ch.IsIdentity())

	fc := fcs["onlyField"]
	cf := RecomputeFromOpenings([]Opening{{Name: fc.Name, Value: fc.Value, R: fc.R}})
	assert.True(t, VerifyPartition(rc.CD, ch, cf))
}

func TestFieldValueContainingLegacySeparatorDoesNotCollide(t *testing.T) {
	// Prior (corrected) design used a literal "||" separator, which let
	// (name="a", value="b||c") collide with (name="a||b", value="c").
	// The length-prefixed encoding must keep these distinct.
	a, err := CommitField("a", "b||c", nil)
	require.NoError(t, err)
	b, err := CommitField("a||b", "c", nil)
	require.NoError(t, err)

	mA := group.HashToScalar(fieldMessageBytes("a", "b||c"))
	mB := group.HashToScalar(fieldMessageBytes("a||b", "c"))
	assert.False(t, mA.Equal(mB))
	assert.False(t, group.Equal(a.C, b.C))
}
