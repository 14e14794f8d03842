package report

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"divindex/domain/report"
	"divindex/internal/errors"

	"github.com/gomarkdown/markdown"
	"github.com/gomarkdown/markdown/html"
	"github.com/gomarkdown/markdown/parser"
)

// MarkdownSink writes the report as markdown, or as a standalone HTML page
// when the target ends in .html or .htm.
type MarkdownSink struct {
	path string
}

// NewMarkdownSink creates a sink writing to path.
func NewMarkdownSink(path string) *MarkdownSink {
	return &MarkdownSink{path: path}
}

// Name implements ports.ReportSink.
func (s *MarkdownSink) Name() string { return "report " + s.path }

// Write implements ports.ReportSink.
func (s *MarkdownSink) Write(_ context.Context, r *report.Report) error {
	doc := RenderMarkdown(r)

	switch strings.ToLower(filepath.Ext(s.path)) {
	case ".html", ".htm":
		doc = RenderHTML(doc, "Diversity report: "+filepath.Base(r.Source))
	}

	if dir := filepath.Dir(s.path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return errors.IOError("failed to create report directory", err)
		}
	}
	if err := os.WriteFile(s.path, doc, 0o644); err != nil {
		return errors.IOError("failed to write report "+s.path, err)
	}
	return nil
}

// RenderHTML converts a markdown document into a complete HTML page.
func RenderHTML(md []byte, pageTitle string) []byte {
	p := parser.NewWithExtensions(parser.CommonExtensions | parser.Tables)
	renderer := html.NewRenderer(html.RendererOptions{
		Flags: html.CommonFlags | html.CompletePage,
		Title: pageTitle,
	})
	return markdown.ToHTML(md, p, renderer)
}

// RenderMarkdown formats the report as a markdown document.
func RenderMarkdown(r *report.Report) []byte {
	var sb strings.Builder

	fmt.Fprintf(&sb, "# Diversity report\n\n")
	fmt.Fprintf(&sb, "- Source: `%s`\n", r.Source)
	fmt.Fprintf(&sb, "- Run: `%s`\n", r.RunID)
	if !r.CreatedAt.IsZero() {
		fmt.Fprintf(&sb, "- Created: %s\n", r.CreatedAt.UTC().Format(time.RFC3339))
	}
	fmt.Fprintf(&sb, "- Table fingerprint: `%s`\n", r.Fingerprint.Short())
	fmt.Fprintf(&sb, "- Sites: %d, species: %d\n", len(r.Sites), len(r.RankAbundance))
	if n := len(r.Skipped); n > 0 {
		fmt.Fprintf(&sb, "- Skipped non-numeric cells: %d\n", n)
	}

	sb.WriteString("\n## Community\n\n| Index | Code | Value |\n|---|---|---|\n")
	for _, res := range r.Community.Results {
		fmt.Fprintf(&sb, "| %s | `%s` | %s |\n", res.Index.Name(), res.Index, escapeCell(FormatResult(res)))
	}

	fmt.Fprintf(&sb, "\n## Sites (%s)\n\n| Site | Individuals | Richness | Chao1 | %s |\n|---|---|---|---|---|\n",
		r.Index.Name(), r.Index.Name())
	for _, site := range r.Sites {
		value := "undefined"
		if site.Defined() {
			value = FormatValue(r.Index, site.Value)
		}
		fmt.Fprintf(&sb, "| %s | %s | %d | %s | %s |\n",
			escapeCell(site.Label), strconv.FormatFloat(site.Total, 'f', -1, 64),
			site.Richness, strconv.FormatFloat(site.Chao1, 'g', -1, 64), value)
	}
	if st := r.SiteStats; st != nil {
		fmt.Fprintf(&sb, "\nAcross %d sites: mean %.4g, sd %.4g, median %.4g, range %.4g to %.4g.\n",
			st.Count, st.Mean, st.StdDev, st.Median, st.Min, st.Max)
	}

	sb.WriteString("\n## Rank abundance\n\n| Rank | Species | Total |\n|---|---|---|\n")
	for i, sp := range r.RankAbundance {
		fmt.Fprintf(&sb, "| %d | %s | %s |\n", i+1, escapeCell(sp.Species), strconv.FormatFloat(sp.Total, 'f', -1, 64))
	}

	return []byte(sb.String())
}

func escapeCell(s string) string {
	return strings.ReplaceAll(s, "|", `\|`)
}
