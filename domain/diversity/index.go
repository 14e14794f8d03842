package diversity

import (
	"fmt"
	"strings"

	"divindex/domain/abundance"
)

// Index identifies a diversity index by its command-line code.
type Index string

const (
	IndexShannon          Index = "H"
	IndexEffectiveShannon Index = "exp_H"
	IndexSimpson          Index = "D"
	IndexRichness         Index = "s"
	IndexPielou           Index = "P"
	IndexMargalef         Index = "M"
	IndexMenhinick        Index = "Me"
	IndexChao1            Index = "chao"
)

type indexInfo struct {
	name        string
	description string
}

var indexCatalog = map[Index]indexInfo{
	IndexShannon:          {"Shannon", "Shannon entropy H = -Σ p ln p"},
	IndexEffectiveShannon: {"Exp_Shannon", "effective number of species exp(H)"},
	IndexSimpson:          {"Simpson", "Simpson diversity 1 - Σ n(n-1) / N(N-1)"},
	IndexRichness:         {"Richness", "number of species present"},
	IndexPielou:           {"Evenness", "Pielou evenness H / ln(S)"},
	IndexMargalef:         {"Margalef", "Margalef richness (S-1) / ln(N)"},
	IndexMenhinick:        {"Menhinick", "Menhinick richness S / √N"},
	IndexChao1:            {"Chao", "Chao1 richness estimate"},
}

// AllIndices returns every supported index in reporting order.
func AllIndices() []Index {
	return []Index{
		IndexShannon,
		IndexEffectiveShannon,
		IndexSimpson,
		IndexRichness,
		IndexPielou,
		IndexMargalef,
		IndexMenhinick,
		IndexChao1,
	}
}

// ParseIndex resolves a command-line code. Codes are case-sensitive
// ("s" and "S" are not the same thing), surrounding blanks are ignored.
func ParseIndex(code string) (Index, error) {
	idx := Index(strings.TrimSpace(code))
	if _, ok := indexCatalog[idx]; !ok {
		return "", fmt.Errorf("%w: %q", ErrUnknownIndex, code)
	}
	return idx, nil
}

// Name returns the label used in printed summaries.
func (i Index) Name() string {
	if info, ok := indexCatalog[i]; ok {
		return info.name
	}
	return string(i)
}

// Description returns a one-line explanation of the index.
func (i Index) Description() string {
	return indexCatalog[i].description
}

func (i Index) String() string { return string(i) }

// Compute evaluates one index for v.
func Compute(idx Index, v abundance.Vector) (float64, error) {
	switch idx {
	case IndexShannon:
		return Shannon(v)
	case IndexEffectiveShannon:
		return EffectiveShannon(v)
	case IndexSimpson:
		return Simpson(v)
	case IndexRichness:
		return float64(Richness(v)), nil
	case IndexPielou:
		return Pielou(v)
	case IndexMargalef:
		return Margalef(v)
	case IndexMenhinick:
		return Menhinick(v)
	case IndexChao1:
		return Chao1(v), nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrUnknownIndex, string(idx))
	}
}

// Result is one index evaluated for one vector. Err is set when the index is
// undefined for the vector; Value is then meaningless.
type Result struct {
	Index Index
	Value float64
	Err   error
}

// Defined reports whether the value can be used.
func (r Result) Defined() bool { return r.Err == nil }

// Summary holds every index for a single vector, in AllIndices order.
type Summary struct {
	Results []Result
}

// Summarize computes all indices for v. Undefined indices are kept with
// their error so that one degenerate index does not hide the others.
func Summarize(v abundance.Vector) Summary {
	indices := AllIndices()
	s := Summary{Results: make([]Result, 0, len(indices))}
	for _, idx := range indices {
		value, err := Compute(idx, v)
		s.Results = append(s.Results, Result{Index: idx, Value: value, Err: err})
	}
	return s
}

// Get returns the result for idx.
func (s Summary) Get(idx Index) (Result, bool) {
	for _, r := range s.Results {
		if r.Index == idx {
			return r, true
		}
	}
	return Result{}, false
}
