package abundance

import (
	"fmt"
	"sort"

	"gonum.org/v1/gonum/floats"
)

// Vector holds non-negative abundance counts, one entry per species column.
type Vector []float64

// Total returns the number of individuals in the vector.
func (v Vector) Total() float64 {
	if len(v) == 0 {
		return 0
	}
	return floats.Sum(v)
}

// Site is one sampling location (one table row).
type Site struct {
	Label  string
	Counts Vector
}

// SkippedCell records a cell that could not be coerced to a count.
// Skipped cells contribute zero to every vector.
type SkippedCell struct {
	Row     int    // 1-based data row
	Species string // column header
	Raw     string
}

// Table is an abundance table: sites by species.
type Table struct {
	Species []string
	Sites   []Site
	Skipped []SkippedCell
}

// NewTable builds a table and checks that every site has one count per species.
func NewTable(species []string, sites []Site) (*Table, error) {
	if len(species) == 0 {
		return nil, fmt.Errorf("abundance table has no species columns")
	}
	for i, s := range sites {
		if len(s.Counts) != len(species) {
			return nil, fmt.Errorf("site %q (row %d) has %d counts, expected %d",
				s.Label, i+1, len(s.Counts), len(species))
		}
	}
	return &Table{Species: species, Sites: sites}, nil
}

// Labels returns the site labels in row order.
func (t *Table) Labels() []string {
	labels := make([]string, len(t.Sites))
	for i, s := range t.Sites {
		labels[i] = s.Label
	}
	return labels
}

// Community returns the column-wise sum across all sites.
func (t *Table) Community() Vector {
	community := make(Vector, len(t.Species))
	for _, s := range t.Sites {
		floats.Add(community, s.Counts)
	}
	return community
}

// SpeciesTotal is the total abundance of one species across all sites.
type SpeciesTotal struct {
	Species string
	Total   float64
}

// RankAbundance returns species ordered by total abundance, highest first.
// Species with equal totals keep their column order.
func (t *Table) RankAbundance() []SpeciesTotal {
	community := t.Community()
	ranked := make([]SpeciesTotal, len(t.Species))
	for i, name := range t.Species {
		ranked[i] = SpeciesTotal{Species: name, Total: community[i]}
	}
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Total > ranked[j].Total
	})
	return ranked
}
