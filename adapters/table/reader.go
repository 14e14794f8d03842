package table

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"divindex/domain/abundance"
	"divindex/internal"
	"divindex/internal/errors"

	"github.com/xuri/excelize/v2"
)

// DataReader reads abundance tables from delimited text or Excel files.
type DataReader struct {
	filePath   string
	fileType   string // "xlsx" or "csv"
	sheet      string
	siteColumn string
	delimiter  rune
	logger     *internal.Logger
}

// Option configures a DataReader.
type Option func(*DataReader)

// WithSheet selects the worksheet for .xlsx input.
func WithSheet(name string) Option {
	return func(r *DataReader) {
		if name != "" {
			r.sheet = name
		}
	}
}

// WithSiteColumn names the column holding site labels. Without it the
// column is detected from common header names.
func WithSiteColumn(name string) Option {
	return func(r *DataReader) { r.siteColumn = strings.TrimSpace(name) }
}

// WithDelimiter overrides the field separator for delimited input.
func WithDelimiter(d rune) Option {
	return func(r *DataReader) { r.delimiter = d }
}

// WithLogger sets the logger.
func WithLogger(l *internal.Logger) Option {
	return func(r *DataReader) { r.logger = l }
}

// NewDataReader creates a reader; the format follows the file extension.
func NewDataReader(filePath string, opts ...Option) *DataReader {
	ext := strings.ToLower(filepath.Ext(filePath))
	r := &DataReader{
		filePath:  filePath,
		fileType:  "csv",
		sheet:     "Sheet1",
		delimiter: ',',
		logger:    internal.DefaultLogger,
	}
	switch ext {
	case ".xlsx", ".xlsm":
		r.fileType = "xlsx"
	case ".tsv":
		r.delimiter = '\t'
	}
	for _, opt := range opts {
		opt(r)
	}
	r.logger = r.logger.With("TableReader")
	return r
}

// Source returns the input path.
func (r *DataReader) Source() string {
	return r.filePath
}

// ReadTable reads the file into an abundance table.
func (r *DataReader) ReadTable(ctx context.Context) (*abundance.Table, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.logger.Debug("reading %s file: %s", r.fileType, r.filePath)

	if _, err := os.Stat(r.filePath); err != nil {
		return nil, errors.IOError(fmt.Sprintf("%s file not found: %s", strings.ToUpper(r.fileType), r.filePath), err)
	}

	var (
		rows [][]string
		err  error
	)
	start := time.Now()
	switch r.fileType {
	case "xlsx":
		rows, err = r.readExcelRows()
	default:
		rows, err = r.readDelimitedRows()
	}
	if err != nil {
		return nil, err
	}
	r.logger.Debug("%s read in %.2fms (%d rows)", r.filePath, float64(time.Since(start).Nanoseconds())/1e6, len(rows))

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return r.processRows(rows)
}

func (r *DataReader) readExcelRows() ([][]string, error) {
	f, err := excelize.OpenFile(r.filePath)
	if err != nil {
		return nil, errors.IOError("failed to open Excel file", err)
	}
	defer f.Close()

	rows, err := f.GetRows(r.sheet)
	if err != nil {
		return nil, errors.IOError(fmt.Sprintf("failed to read sheet %q", r.sheet), err)
	}
	return rows, nil
}

func (r *DataReader) readDelimitedRows() ([][]string, error) {
	file, err := os.Open(r.filePath)
	if err != nil {
		return nil, errors.IOError("failed to open CSV file", err)
	}
	defer file.Close()
	return readDelimited(file, r.delimiter)
}

func readDelimited(src io.Reader, delimiter rune) ([][]string, error) {
	reader := csv.NewReader(src)
	reader.Comma = delimiter
	reader.FieldsPerRecord = -1 // short rows are padded as skipped cells
	reader.TrimLeadingSpace = delimiter != '\t'

	rows, err := reader.ReadAll()
	if err != nil {
		return nil, errors.Wrap(errors.InvalidInput(err.Error()), "failed to parse delimited file")
	}
	return rows, nil
}

// processRows turns raw string rows into a table. The first row is the header.
func (r *DataReader) processRows(rows [][]string) (*abundance.Table, error) {
	rows = dropEmptyRows(rows)
	if len(rows) < 2 {
		return nil, errors.InvalidInput("abundance table must have a header row and at least one data row")
	}

	headers := make([]string, len(rows[0]))
	for i, h := range rows[0] {
		headers[i] = strings.TrimSpace(strings.TrimPrefix(h, "\ufeff"))
	}

	siteIdx, err := r.siteColumnIndex(headers)
	if err != nil {
		return nil, err
	}

	species := make([]string, 0, len(headers))
	columns := make([]int, 0, len(headers))
	for i, h := range headers {
		if i == siteIdx {
			continue
		}
		if h == "" {
			h = "column_" + strconv.Itoa(i+1)
		}
		species = append(species, h)
		columns = append(columns, i)
	}

	sites := make([]abundance.Site, 0, len(rows)-1)
	var skipped []abundance.SkippedCell
	for rowNum, row := range rows[1:] {
		label := strconv.Itoa(rowNum + 1)
		if siteIdx >= 0 && siteIdx < len(row) && strings.TrimSpace(row[siteIdx]) != "" {
			label = strings.TrimSpace(row[siteIdx])
		}

		counts := make(abundance.Vector, len(columns))
		for j, col := range columns {
			raw := ""
			if col < len(row) {
				raw = row[col]
			}
			count, ok := ParseCount(raw)
			if !ok {
				skipped = append(skipped, abundance.SkippedCell{Row: rowNum + 1, Species: species[j], Raw: raw})
				r.logger.Debug("row %d, column %q: skipping non-count value %q", rowNum+1, species[j], raw)
				continue
			}
			counts[j] = count
		}
		sites = append(sites, abundance.Site{Label: label, Counts: counts})
	}

	t, err := abundance.NewTable(species, sites)
	if err != nil {
		return nil, errors.Wrap(errors.InvalidInput(err.Error()), "invalid abundance table")
	}
	t.Skipped = skipped

	if len(skipped) > 0 {
		r.logger.Warn("%d cells could not be read as counts and were treated as zero", len(skipped))
	}
	r.logger.Info("%s: %d sites, %d species, %d skipped cells", filepath.Base(r.filePath), len(sites), len(species), len(skipped))
	return t, nil
}

// dropEmptyRows removes rows without any cells. A row of blank cells is kept:
// it is a site whose cells are all skipped.
func dropEmptyRows(rows [][]string) [][]string {
	out := rows[:0:0]
	for _, row := range rows {
		if len(row) > 0 {
			out = append(out, row)
		}
	}
	return out
}
