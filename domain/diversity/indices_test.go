package diversity

import (
	"errors"
	"math"
	"testing"

	"divindex/domain/abundance"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const tolerance = 1e-12

func TestEvenCommunity(t *testing.T) {
	v := abundance.Vector{10, 10, 10, 10}

	assert.Equal(t, 4, Richness(v))

	d, err := Simpson(v)
	require.NoError(t, err)
	assert.InDelta(t, 1-360.0/1560.0, d, tolerance)
	assert.InDelta(t, 0.7692, d, 1e-4)

	h, err := Shannon(v)
	require.NoError(t, err)
	assert.InDelta(t, math.Log(4), h, tolerance)

	j, err := Pielou(v)
	require.NoError(t, err)
	assert.InDelta(t, 1.0, j, tolerance)
}

func TestShannon_PermutationInvariant(t *testing.T) {
	a, err := Shannon(abundance.Vector{3, 5, 2})
	require.NoError(t, err)
	b, err := Shannon(abundance.Vector{5, 2, 3})
	require.NoError(t, err)

	assert.InDelta(t, a, b, tolerance)
	assert.Greater(t, a, 0.0)
}

func TestShannon_ZeroEntriesContributeNothing(t *testing.T) {
	withZeros, err := Shannon(abundance.Vector{0, 3, 0, 3})
	require.NoError(t, err)
	without, err := Shannon(abundance.Vector{3, 3})
	require.NoError(t, err)
	assert.InDelta(t, without, withZeros, tolerance)

	single, err := Shannon(abundance.Vector{0, 7, 0})
	require.NoError(t, err)
	assert.Equal(t, 0.0, single)
}

func TestEffectiveShannon_IsExpOfShannon(t *testing.T) {
	vectors := []abundance.Vector{
		{1},
		{3, 5, 2},
		{10, 10, 10, 10},
		{0, 1, 1, 2, 40},
		{123, 4, 0, 9},
	}
	for _, v := range vectors {
		h, err := Shannon(v)
		require.NoError(t, err)
		e, err := EffectiveShannon(v)
		require.NoError(t, err)
		assert.Equal(t, math.Exp(h), e, "vector %v", v)
	}
}

func TestRichness_MonotoneWhenZerosFilled(t *testing.T) {
	v := abundance.Vector{0, 4, 0, 0, 1}
	prev := Richness(v)
	for i := range v {
		if v[i] != 0 {
			continue
		}
		v[i] = float64(i + 1)
		next := Richness(v)
		assert.GreaterOrEqual(t, next, prev)
		prev = next
	}
	assert.Equal(t, len(v), prev)
}

func TestChao1(t *testing.T) {
	assert.Equal(t, 4.5, Chao1(abundance.Vector{1, 1, 2, 5}))
	// No singletons means no correction.
	assert.Equal(t, 3.0, Chao1(abundance.Vector{2, 2, 5, 0}))
	// Three singletons, no doubletons: 3 + 3*2/2.
	assert.Equal(t, 6.0, Chao1(abundance.Vector{1, 1, 1}))
	assert.Equal(t, 0.0, Chao1(abundance.Vector{}))
}

func TestMargalefAndMenhinick_UseVectorLength(t *testing.T) {
	v := abundance.Vector{5, 2, 5, 0}

	m, err := Margalef(v)
	require.NoError(t, err)
	assert.InDelta(t, 3/math.Log(12), m, tolerance)

	me, err := Menhinick(v)
	require.NoError(t, err)
	assert.InDelta(t, 4/math.Sqrt(12), me, tolerance)
}

func TestDomainErrors(t *testing.T) {
	tests := []struct {
		name string
		fn   func(abundance.Vector) (float64, error)
		v    abundance.Vector
		want error
	}{
		{"shannon empty", Shannon, abundance.Vector{}, ErrEmptyVector},
		{"shannon zero sum", Shannon, abundance.Vector{0, 0}, ErrZeroSum},
		{"shannon negative", Shannon, abundance.Vector{1, -1}, ErrInvalidAbundance},
		{"shannon NaN", Shannon, abundance.Vector{math.NaN()}, ErrInvalidAbundance},
		{"simpson single individual", Simpson, abundance.Vector{1, 0}, ErrDegenerate},
		{"simpson zero sum", Simpson, abundance.Vector{0}, ErrZeroSum},
		{"pielou one species", Pielou, abundance.Vector{9, 0, 0}, ErrDegenerate},
		{"margalef one individual", Margalef, abundance.Vector{0, 1}, ErrDegenerate},
		{"menhinick zero sum", Menhinick, abundance.Vector{0, 0, 0}, ErrZeroSum},
		{"effective shannon inf", EffectiveShannon, abundance.Vector{math.Inf(1)}, ErrInvalidAbundance},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := tt.fn(tt.v)
			require.Error(t, err)
			assert.True(t, errors.Is(err, tt.want), "got %v", err)
		})
	}
}

func TestIsDomainError(t *testing.T) {
	_, err := Pielou(abundance.Vector{3})
	assert.True(t, IsDomainError(err))

	_, err = Shannon(abundance.Vector{-2})
	assert.False(t, IsDomainError(err))

	assert.False(t, IsDomainError(nil))
}
