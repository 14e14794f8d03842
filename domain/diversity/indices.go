// Package diversity implements ecological diversity indices over abundance
// vectors. Every function is pure; undefined cases return a domain error
// instead of dividing by zero.
package diversity

import (
	"math"

	"divindex/domain/abundance"

	"gonum.org/v1/gonum/stat"
)

// total validates v and returns its sum.
func total(v abundance.Vector) (float64, error) {
	if len(v) == 0 {
		return 0, ErrEmptyVector
	}
	n := 0.0
	for i, x := range v {
		if x < 0 || math.IsNaN(x) || math.IsInf(x, 0) {
			return 0, newInvalidAbundanceError(i, x)
		}
		n += x
	}
	return n, nil
}

// nonZeroTotal is total plus the zero-sum guard shared by the ratio indices.
func nonZeroTotal(v abundance.Vector) (float64, error) {
	n, err := total(v)
	if err != nil {
		return 0, err
	}
	if n == 0 {
		return 0, ErrZeroSum
	}
	return n, nil
}

// Shannon returns H = -Σ pᵢ ln pᵢ with pᵢ = vᵢ/Σv. Zero proportions
// contribute nothing, so H >= 0.
func Shannon(v abundance.Vector) (float64, error) {
	n, err := nonZeroTotal(v)
	if err != nil {
		return 0, err
	}
	p := make([]float64, len(v))
	for i, x := range v {
		p[i] = x / n
	}
	return stat.Entropy(p), nil
}

// EffectiveShannon returns exp(H), the effective number of species.
func EffectiveShannon(v abundance.Vector) (float64, error) {
	h, err := Shannon(v)
	if err != nil {
		return 0, err
	}
	return math.Exp(h), nil
}

// Simpson returns D = 1 - Σ vᵢ(vᵢ-1) / (N(N-1)).
func Simpson(v abundance.Vector) (float64, error) {
	n, err := nonZeroTotal(v)
	if err != nil {
		return 0, err
	}
	if n <= 1 {
		return 0, newDegenerateError(IndexSimpson, "requires more than one individual")
	}
	pairs := 0.0
	for _, x := range v {
		pairs += x * (x - 1)
	}
	return 1 - pairs/(n*(n-1)), nil
}

// Richness counts species with a strictly positive abundance.
func Richness(v abundance.Vector) int {
	s := 0
	for _, x := range v {
		if x > 0 {
			s++
		}
	}
	return s
}

// Pielou returns evenness J = H / ln(S), S = richness.
func Pielou(v abundance.Vector) (float64, error) {
	h, err := Shannon(v)
	if err != nil {
		return 0, err
	}
	s := Richness(v)
	if s <= 1 {
		return 0, newDegenerateError(IndexPielou, "requires richness above one")
	}
	return h / math.Log(float64(s)), nil
}

// Margalef returns (S-1)/ln(N). S is the vector length, zero columns included.
func Margalef(v abundance.Vector) (float64, error) {
	n, err := nonZeroTotal(v)
	if err != nil {
		return 0, err
	}
	if n <= 1 {
		return 0, newDegenerateError(IndexMargalef, "requires more than one individual")
	}
	return float64(len(v)-1) / math.Log(n), nil
}

// Menhinick returns S/√N. S is the vector length, zero columns included.
func Menhinick(v abundance.Vector) (float64, error) {
	n, err := nonZeroTotal(v)
	if err != nil {
		return 0, err
	}
	return float64(len(v)) / math.Sqrt(n), nil
}

// Chao1 returns the bias-corrected Chao1 richness estimate
// S + n1(n1-1) / (2(n2+1)), where n1 and n2 count singletons and doubletons.
func Chao1(v abundance.Vector) float64 {
	var n1, n2 float64
	for _, x := range v {
		switch x {
		case 1:
			n1++
		case 2:
			n2++
		}
	}
	return float64(Richness(v)) + n1*(n1-1)/(2*(n2+1))
}
