package report

import (
	"math"
	"time"

	"divindex/domain/abundance"
	"divindex/domain/core"
	"divindex/domain/diversity"
)

// Report is the output of one run: per-site values for the selected index,
// the community summary and the rank-abundance series. Sinks only read it.
type Report struct {
	RunID       core.RunID
	Source      string
	Fingerprint core.Hash
	Index       diversity.Index
	CreatedAt   time.Time

	Sites         []SiteResult
	Community     diversity.Summary
	RankAbundance []abundance.SpeciesTotal
	SiteStats     *SiteStats // nil when no site has a defined value
	Skipped       []abundance.SkippedCell
}

// SiteResult holds one site's values.
type SiteResult struct {
	Label    string
	Total    float64
	Richness int
	Chao1    float64
	Value    float64 // selected index; NaN when Err is set
	Err      error
}

// Defined reports whether Value can be plotted.
func (s SiteResult) Defined() bool {
	return s.Err == nil && !math.IsNaN(s.Value)
}

// SiteStats describes the spread of the selected index across sites.
type SiteStats struct {
	Count  int
	Mean   float64
	StdDev float64
	Min    float64
	Max    float64
	Median float64
}

// Labels returns the site labels in row order.
func (r *Report) Labels() []string {
	labels := make([]string, len(r.Sites))
	for i, s := range r.Sites {
		labels[i] = s.Label
	}
	return labels
}

// Values returns the selected index per site.
func (r *Report) Values() []float64 {
	values := make([]float64, len(r.Sites))
	for i, s := range r.Sites {
		values[i] = s.Value
	}
	return values
}
