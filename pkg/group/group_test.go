package group

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRandomScalarInRange(t *testing.T) {
	for i := 0; i < 16; i++ {
		s, err := RandomScalar()
		require.NoError(t, err)
		assert.False(t, s.IsZero())
	}
}

func TestScalarBytesRoundTrip(t *testing.T) {
	s, err := RandomScalar()
	require.NoError(t, err)

	back, err := ScalarFromBytes(s.Bytes())
	require.NoError(t, err)
	assert.True(t, s.Equal(back))
}

func TestHashToScalarDeterministic(t *testing.T) {
	a := HashToScalar([]byte("same input"))
	b := HashToScalar([]byte("same input"))
	c := HashToScalar([]byte("different input"))

	assert.True(t, a.Equal(b))
	assert.False(t, a.Equal(c))
}

func TestScalarZeroScrubsValue(t *testing.T) {
	s, err := RandomScalar()
	require.NoError(t, err)
	require.False(t, s.IsZero())

	s.Zero()
	assert.True(t, s.IsZero())
}

func TestGeneratorEncodeDecodeRoundTrip(t *testing.T) {
	g := Generator()
	encoded := Encode(g)
	assert.Len(t, encoded, 33)

	decoded, err := Decode(encoded)
	require.NoError(t, err)
	assert.True(t, Equal(g, decoded))
}

func TestIdentityEncodeDecodeRoundTrip(t *testing.T) {
	id := Identity()
	encoded := Encode(id)
	assert.Equal(t, []byte{0x00}, encoded)

	decoded, err := Decode(encoded)
	require.NoError(t, err)
	assert.True(t, Equal(id, decoded))
}

func TestAddIdentityIsNoOp(t *testing.T) {
	g := Generator()
	assert.True(t, Equal(g, Add(g, Identity())))
	assert.True(t, Equal(g, Add(Identity(), g)))
}

func TestScalarMulByZeroIsIdentity(t *testing.T) {
	g := Generator()
	zero := ZeroScalar()
	assert.True(t, Equal(Identity(), ScalarMul(zero, g)))
}

func TestScalarMulDistributesOverAdd(t *testing.T) {
	// (a+b)*g == a*g + b*g
	a, err := RandomScalar()
	require.NoError(t, err)
	b, err := RandomScalar()
	require.NoError(t, err)

	g := Generator()
	lhs := ScalarMul(a.Add(b), g)
	rhs := Add(ScalarMul(a, g), ScalarMul(b, g))
	assert.True(t, Equal(lhs, rhs))
}

func TestSumMatchesIterativeAdd(t *testing.T) {
	g := Generator()
	h := H()
	sum := Sum(g, h, g)

	want := Add(Add(g, h), g)
	assert.True(t, Equal(sum, want))
}

func TestHIsDeterministicAndDistinctFromGenerator(t *testing.T) {
	h1 := H()
	h2 := H()
	assert.True(t, Equal(h1, h2))
	assert.False(t, Equal(h1, Generator()))
	assert.False(t, h1.IsIdentity())
}

func TestPointEqualRejectsDifferentPoints(t *testing.T) {
	g := Generator()
	two, err := ScalarFromBytes((func() []byte {
		var b [32]byte
		b[31] = 2
		return b[:]
	})())
	require.NoError(t, err)

	twoG := ScalarMul(two, g)
	assert.False(t, Equal(g, twoG))
}
