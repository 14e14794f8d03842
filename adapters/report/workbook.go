package report

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"divindex/domain/report"
	"divindex/internal/errors"

	"github.com/xuri/excelize/v2"
)

const (
	sitesSheet     = "Sites"
	communitySheet = "Community"
	rankSheet      = "RankAbundance"
	chartsSheet    = "Charts"
)

// WorkbookSink writes the report data and three native charts to an .xlsx file.
type WorkbookSink struct {
	path string
}

// NewWorkbookSink creates a sink writing to path.
func NewWorkbookSink(path string) *WorkbookSink {
	return &WorkbookSink{path: path}
}

// Name implements ports.ReportSink.
func (s *WorkbookSink) Name() string { return "workbook " + s.path }

// Write implements ports.ReportSink.
func (s *WorkbookSink) Write(ctx context.Context, r *report.Report) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", sitesSheet); err != nil {
		return errors.Wrap(err, "failed to prepare workbook")
	}
	for _, name := range []string{communitySheet, rankSheet, chartsSheet} {
		if _, err := f.NewSheet(name); err != nil {
			return errors.Wrapf(err, "failed to add sheet %s", name)
		}
	}

	header, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return errors.Wrap(err, "failed to create header style")
	}

	steps := []func(*excelize.File, *report.Report, int) error{
		writeSitesSheet,
		writeCommunitySheet,
		writeRankSheet,
	}
	for _, step := range steps {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := step(f, r, header); err != nil {
			return errors.Wrap(err, "failed to fill workbook")
		}
	}
	if err := addCharts(f, r); err != nil {
		return errors.Wrap(err, "failed to add charts")
	}

	if idx, err := f.GetSheetIndex(chartsSheet); err == nil {
		f.SetActiveSheet(idx)
	}
	if dir := filepath.Dir(s.path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return errors.IOError("failed to create workbook directory", err)
		}
	}
	if err := f.SaveAs(s.path); err != nil {
		return errors.IOError("failed to save workbook "+s.path, err)
	}
	return nil
}

func writeSitesSheet(f *excelize.File, r *report.Report, header int) error {
	if err := f.SetSheetRow(sitesSheet, "A1", &[]interface{}{
		"No.", "Site", "Total", "Richness", "Chao1", r.Index.Name(),
	}); err != nil {
		return err
	}
	for i, site := range r.Sites {
		var value interface{}
		if site.Defined() {
			value = site.Value
		}
		cell, _ := excelize.CoordinatesToCellName(1, i+2)
		if err := f.SetSheetRow(sitesSheet, cell, &[]interface{}{
			i + 1, site.Label, site.Total, site.Richness, site.Chao1, value,
		}); err != nil {
			return err
		}
	}
	if err := f.SetColWidth(sitesSheet, "B", "B", 18); err != nil {
		return err
	}
	return f.SetRowStyle(sitesSheet, 1, 1, header)
}

func writeCommunitySheet(f *excelize.File, r *report.Report, header int) error {
	if err := f.SetSheetRow(communitySheet, "A1", &[]interface{}{"Index", "Code", "Value", "Note"}); err != nil {
		return err
	}
	for i, res := range r.Community.Results {
		var value interface{}
		note := ""
		if res.Defined() {
			value = res.Value
		} else {
			note = res.Err.Error()
		}
		cell, _ := excelize.CoordinatesToCellName(1, i+2)
		if err := f.SetSheetRow(communitySheet, cell, &[]interface{}{
			res.Index.Name(), string(res.Index), value, note,
		}); err != nil {
			return err
		}
	}
	meta := [][]interface{}{
		{"Run", r.RunID.String()},
		{"Source", r.Source},
		{"Fingerprint", r.Fingerprint.String()},
	}
	for i, row := range meta {
		cell, _ := excelize.CoordinatesToCellName(6, i+1)
		if err := f.SetSheetRow(communitySheet, cell, &row); err != nil {
			return err
		}
	}
	if err := f.SetColWidth(communitySheet, "A", "A", 14); err != nil {
		return err
	}
	return f.SetRowStyle(communitySheet, 1, 1, header)
}

func writeRankSheet(f *excelize.File, r *report.Report, header int) error {
	if err := f.SetSheetRow(rankSheet, "A1", &[]interface{}{"Rank", "Species", "Total", "Plotted"}); err != nil {
		return err
	}
	for i, sp := range r.RankAbundance {
		// A log axis cannot show zero, so the plotted column leaves it blank.
		var plotted interface{}
		if sp.Total > 0 {
			plotted = sp.Total
		}
		cell, _ := excelize.CoordinatesToCellName(1, i+2)
		if err := f.SetSheetRow(rankSheet, cell, &[]interface{}{i + 1, sp.Species, sp.Total, plotted}); err != nil {
			return err
		}
	}
	if err := f.SetColWidth(rankSheet, "B", "B", 24); err != nil {
		return err
	}
	return f.SetRowStyle(rankSheet, 1, 1, header)
}

func title(text string) []excelize.RichTextRun {
	return []excelize.RichTextRun{{Text: text}}
}

func addCharts(f *excelize.File, r *report.Report) error {
	dim := excelize.ChartDimension{Width: 720, Height: 360}
	n := len(r.Sites)

	if n > 0 {
		last := n + 1
		indexChart := &excelize.Chart{
			Type: excelize.Scatter,
			Series: []excelize.ChartSeries{{
				Name:       fmt.Sprintf("%s!$F$1", sitesSheet),
				Categories: fmt.Sprintf("%s!$A$2:$A$%d", sitesSheet, last),
				Values:     fmt.Sprintf("%s!$F$2:$F$%d", sitesSheet, last),
				Marker:     excelize.ChartMarker{Symbol: "circle", Size: 8},
				Line:       excelize.ChartLine{Type: excelize.ChartLineNone},
			}},
			Title:     title("Comparison of Diversity Index for each Sampling Site"),
			XAxis:     excelize.ChartAxis{Title: title("Sampling Sites"), MajorUnit: 1},
			YAxis:     excelize.ChartAxis{Title: title(string(r.Index)), MajorGridLines: true},
			Legend:    excelize.ChartLegend{Position: "none"},
			Dimension: dim,
		}
		if err := f.AddChart(chartsSheet, "A1", indexChart); err != nil {
			return err
		}

		richnessChart := &excelize.Chart{
			Type: excelize.Col,
			Series: []excelize.ChartSeries{
				{
					Name:       fmt.Sprintf("%s!$D$1", sitesSheet),
					Categories: fmt.Sprintf("%s!$B$2:$B$%d", sitesSheet, last),
					Values:     fmt.Sprintf("%s!$D$2:$D$%d", sitesSheet, last),
				},
				{
					Name:       fmt.Sprintf("%s!$E$1", sitesSheet),
					Categories: fmt.Sprintf("%s!$B$2:$B$%d", sitesSheet, last),
					Values:     fmt.Sprintf("%s!$E$2:$E$%d", sitesSheet, last),
				},
			},
			Title:     title("Comparison of Species Richness and Chao Value for each Location"),
			XAxis:     excelize.ChartAxis{Title: title("Location")},
			YAxis:     excelize.ChartAxis{Title: title("Number of Species"), MajorGridLines: true},
			Legend:    excelize.ChartLegend{Position: "bottom"},
			Dimension: dim,
		}
		if err := f.AddChart(chartsSheet, "A20", richnessChart); err != nil {
			return err
		}
	}

	if k := len(r.RankAbundance); k > 0 {
		last := k + 1
		rankChart := &excelize.Chart{
			Type: excelize.Line,
			Series: []excelize.ChartSeries{{
				Name:       fmt.Sprintf("%s!$C$1", rankSheet),
				Categories: fmt.Sprintf("%s!$B$2:$B$%d", rankSheet, last),
				Values:     fmt.Sprintf("%s!$D$2:$D$%d", rankSheet, last),
				Marker:     excelize.ChartMarker{Symbol: "circle", Size: 6},
			}},
			Title:     title("Rank-Abundance plot"),
			XAxis:     excelize.ChartAxis{Title: title("Species")},
			YAxis:     excelize.ChartAxis{Title: title("Species abundances (Log)"), LogBase: 10, MajorGridLines: true},
			Legend:    excelize.ChartLegend{Position: "none"},
			Dimension: dim,
		}
		if err := f.AddChart(chartsSheet, "A39", rankChart); err != nil {
			return err
		}
	}
	return nil
}
