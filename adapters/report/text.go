package report

import (
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"

	"divindex/domain/diversity"
	"divindex/domain/report"
	"divindex/internal/errors"
)

const defaultBarWidth = 40

// TextSink prints the community summary and, optionally, terminal charts.
type TextSink struct {
	w        io.Writer
	styles   Styles
	charts   bool
	barWidth int
}

// TextOption configures a TextSink.
type TextOption func(*TextSink)

// WithCharts toggles the terminal charts after the summary.
func WithCharts(enabled bool) TextOption {
	return func(s *TextSink) { s.charts = enabled }
}

// WithStyles overrides the styles picked from the writer.
func WithStyles(st Styles) TextOption {
	return func(s *TextSink) { s.styles = st }
}

// WithBarWidth sets the maximum bar length in cells.
func WithBarWidth(width int) TextOption {
	return func(s *TextSink) {
		if width > 0 {
			s.barWidth = width
		}
	}
}

// NewTextSink creates a sink writing to w.
func NewTextSink(w io.Writer, opts ...TextOption) *TextSink {
	s := &TextSink{w: w, styles: StylesFor(w), charts: true, barWidth: defaultBarWidth}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Name implements ports.ReportSink.
func (s *TextSink) Name() string { return "text" }

// Write implements ports.ReportSink.
func (s *TextSink) Write(_ context.Context, r *report.Report) error {
	var sb strings.Builder
	s.writeSummary(&sb, r)
	if s.charts {
		s.writeIndexChart(&sb, r)
		s.writeRichnessChart(&sb, r)
		s.writeRankChart(&sb, r)
	}
	if _, err := io.WriteString(s.w, sb.String()); err != nil {
		return errors.IOError("failed to write text report", err)
	}
	return nil
}

// FormatValue renders an index value the way the summary prints it.
func FormatValue(idx diversity.Index, value float64) string {
	if idx == diversity.IndexRichness {
		return strconv.Itoa(int(value))
	}
	return strconv.FormatFloat(value, 'g', -1, 64)
}

// FormatResult renders a result, spelling out undefined values.
func FormatResult(r diversity.Result) string {
	if !r.Defined() {
		return "undefined (" + r.Err.Error() + ")"
	}
	return FormatValue(r.Index, r.Value)
}

func (s *TextSink) writeSummary(sb *strings.Builder, r *report.Report) {
	for _, res := range r.Community.Results {
		value := FormatResult(res)
		if !res.Defined() {
			value = s.styles.Warning.Render(value)
		}
		fmt.Fprintf(sb, "%s: %s\n", res.Index.Name(), value)
	}
	if n := len(r.Skipped); n > 0 {
		sb.WriteString(s.styles.Warning.Render(fmt.Sprintf("(%d non-numeric cells skipped)", n)))
		sb.WriteString("\n")
	}
}

func (s *TextSink) writeIndexChart(sb *strings.Builder, r *report.Report) {
	fmt.Fprintf(sb, "\n%s\n", s.styles.Header.Render(
		fmt.Sprintf("Comparison of %s (%s) for each sampling site", r.Index.Name(), r.Index)))

	labels := r.Labels()
	width := longest(labels)
	peak := maxFinite(r.Values()...)
	for _, site := range r.Sites {
		label := s.styles.Label.Render(padRight(site.Label, width))
		if !site.Defined() {
			fmt.Fprintf(sb, "%s │ %s\n", label, s.styles.Warning.Render("undefined"))
			continue
		}
		bar := s.styles.Index.Render(renderBar(site.Value, peak, s.barWidth))
		fmt.Fprintf(sb, "%s │%s %s\n", label, bar, FormatValue(r.Index, site.Value))
	}
	if st := r.SiteStats; st != nil {
		sb.WriteString(s.styles.Dim.Render(fmt.Sprintf(
			"mean %.4g  sd %.4g  median %.4g  min %.4g  max %.4g  (n=%d)",
			st.Mean, st.StdDev, st.Median, st.Min, st.Max, st.Count)))
		sb.WriteString("\n")
	}
}

func (s *TextSink) writeRichnessChart(sb *strings.Builder, r *report.Report) {
	fmt.Fprintf(sb, "\n%s\n", s.styles.Header.Render("Species richness and Chao value for each location"))

	var all []float64
	for _, site := range r.Sites {
		all = append(all, float64(site.Richness), site.Chao1)
	}
	peak := maxFinite(all...)
	width := longest(r.Labels())

	for _, site := range r.Sites {
		label := s.styles.Label.Render(padRight(site.Label, width))
		blank := padRight("", width)
		fmt.Fprintf(sb, "%s │%s S=%d\n", label,
			s.styles.Richness.Render(renderBar(float64(site.Richness), peak, s.barWidth)), site.Richness)
		fmt.Fprintf(sb, "%s │%s Chao=%s\n", blank,
			s.styles.Chao.Render(renderBar(site.Chao1, peak, s.barWidth)), FormatValue(diversity.IndexChao1, site.Chao1))
	}
}

func (s *TextSink) writeRankChart(sb *strings.Builder, r *report.Report) {
	fmt.Fprintf(sb, "\n%s\n", s.styles.Header.Render("Rank-abundance (log scale)"))

	names := make([]string, len(r.RankAbundance))
	scaled := make([]float64, len(r.RankAbundance))
	for i, sp := range r.RankAbundance {
		names[i] = sp.Species
		scaled[i] = logScale(sp.Total)
	}
	peak := maxFinite(scaled...)
	width := longest(names)

	for i, sp := range r.RankAbundance {
		fmt.Fprintf(sb, "%2d %s │%s %s\n", i+1,
			s.styles.Label.Render(padRight(sp.Species, width)),
			s.styles.Rank.Render(renderBar(scaled[i], peak, s.barWidth)),
			strconv.FormatFloat(sp.Total, 'f', -1, 64))
	}
}
