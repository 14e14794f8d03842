package diversity

import (
	"errors"
	"math"
	"testing"

	"divindex/domain/abundance"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseIndex(t *testing.T) {
	for _, idx := range AllIndices() {
		parsed, err := ParseIndex(" " + string(idx) + " ")
		require.NoError(t, err)
		assert.Equal(t, idx, parsed)
		assert.NotEmpty(t, idx.Description())
	}

	_, err := ParseIndex("S")
	assert.True(t, errors.Is(err, ErrUnknownIndex))

	_, err = ParseIndex("")
	assert.True(t, errors.Is(err, ErrUnknownIndex))
}

func TestCompute_MatchesDirectCalls(t *testing.T) {
	v := abundance.Vector{5, 2, 5}

	h, _ := Shannon(v)
	got, err := Compute(IndexShannon, v)
	require.NoError(t, err)
	assert.Equal(t, h, got)

	got, err = Compute(IndexRichness, v)
	require.NoError(t, err)
	assert.Equal(t, 3.0, got)

	got, err = Compute(IndexChao1, abundance.Vector{1, 1, 2, 5})
	require.NoError(t, err)
	assert.Equal(t, 4.5, got)

	_, err = Compute(Index("nope"), v)
	assert.True(t, errors.Is(err, ErrUnknownIndex))
}

func TestSummarize_CommunityVector(t *testing.T) {
	// Community of sites A=[5,0,3] and B=[0,2,2].
	v := abundance.Vector{5, 2, 5}
	s := Summarize(v)
	require.Len(t, s.Results, len(AllIndices()))

	want := map[Index]float64{
		IndexShannon:   -(2 * (5.0 / 12) * math.Log(5.0/12)) - (2.0/12)*math.Log(2.0/12),
		IndexSimpson:   1 - (20.0+2.0+20.0)/(12.0*11.0),
		IndexRichness:  3,
		IndexMargalef:  2 / math.Log(12),
		IndexMenhinick: 3 / math.Sqrt(12),
		IndexChao1:     3,
	}
	want[IndexEffectiveShannon] = math.Exp(want[IndexShannon])
	want[IndexPielou] = want[IndexShannon] / math.Log(3)

	for idx, expected := range want {
		r, ok := s.Get(idx)
		require.True(t, ok, idx)
		require.True(t, r.Defined(), "%s: %v", idx, r.Err)
		assert.InDelta(t, expected, r.Value, 1e-12, idx)
	}
}

func TestSummarize_KeepsUndefinedIndices(t *testing.T) {
	s := Summarize(abundance.Vector{1, 0})

	pielou, ok := s.Get(IndexPielou)
	require.True(t, ok)
	assert.False(t, pielou.Defined())
	assert.True(t, errors.Is(pielou.Err, ErrDegenerate))

	richness, _ := s.Get(IndexRichness)
	assert.True(t, richness.Defined())
	assert.Equal(t, 1.0, richness.Value)

	shannon, _ := s.Get(IndexShannon)
	assert.True(t, shannon.Defined())
	assert.Equal(t, 0.0, shannon.Value)

	_, ok = s.Get(Index("missing"))
	assert.False(t, ok)
}
