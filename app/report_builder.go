package app

import (
	"math"

	"divindex/domain/abundance"
	"divindex/domain/core"
	"divindex/domain/diversity"
	"divindex/domain/report"
	"divindex/internal"
	"divindex/internal/errors"

	"github.com/montanaflynn/stats"
)

// BuildReport computes every value the sinks need from a parsed table.
//
// Per site, the selected index is 0 for a site without any individuals and
// NaN (with Err set) when the index is undefined for that site. The
// community summary is computed on the column totals.
func BuildReport(idx diversity.Index, table *abundance.Table, logger *internal.Logger) *report.Report {
	if logger == nil {
		logger = internal.DefaultLogger
	}

	rep := &report.Report{
		RunID:         core.NewRunID(),
		Index:         idx,
		Sites:         make([]report.SiteResult, len(table.Sites)),
		RankAbundance: table.RankAbundance(),
		Skipped:       table.Skipped,
	}

	counts := make([][]float64, len(table.Sites))
	for i, site := range table.Sites {
		counts[i] = site.Counts
		rep.Sites[i] = siteResult(idx, site, logger)
	}
	rep.Fingerprint = core.ComputeTableHash(table.Species, counts)

	community := table.Community()
	rep.Community = diversity.Summarize(community)
	for _, r := range rep.Community.Results {
		if !r.Defined() {
			logger.Warn("community %s is undefined: %v", r.Index.Name(), r.Err)
		}
	}

	rep.SiteStats = siteStats(rep.Sites)
	return rep
}

func siteResult(idx diversity.Index, site abundance.Site, logger *internal.Logger) report.SiteResult {
	res := report.SiteResult{
		Label:    site.Label,
		Total:    site.Counts.Total(),
		Richness: diversity.Richness(site.Counts),
		Chao1:    diversity.Chao1(site.Counts),
	}

	if res.Total == 0 {
		logger.Debug("site %s has no individuals, %s set to 0", site.Label, idx.Name())
		return res
	}

	value, err := diversity.Compute(idx, site.Counts)
	if err != nil {
		res.Value = math.NaN()
		if diversity.IsDomainError(err) {
			logger.Warn("site %s: %v", site.Label, err)
			res.Err = errors.DomainError("site "+site.Label, err)
			return res
		}
		// Counts that are not abundances at all, e.g. negative values from a
		// hand-built table.
		logger.Error("site %s has invalid counts: %v", site.Label, err)
		res.Err = errors.Wrap(errors.WithCode(errors.CodeInvalidInput, err), "site "+site.Label)
		return res
	}
	res.Value = value
	return res
}

// siteStats summarises the defined per-site values.
func siteStats(sites []report.SiteResult) *report.SiteStats {
	values := make([]float64, 0, len(sites))
	for _, s := range sites {
		if s.Defined() && !math.IsInf(s.Value, 0) {
			values = append(values, s.Value)
		}
	}
	if len(values) == 0 {
		return nil
	}

	mean, _ := stats.Mean(values)
	stdDev, _ := stats.StandardDeviation(values)
	lo, _ := stats.Min(values)
	hi, _ := stats.Max(values)
	median, _ := stats.Median(values)

	return &report.SiteStats{
		Count:  len(values),
		Mean:   mean,
		StdDev: stdDev,
		Min:    lo,
		Max:    hi,
		Median: median,
	}
}
