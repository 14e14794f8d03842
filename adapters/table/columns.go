package table

import (
	"math"
	"strconv"
	"strings"

	"divindex/internal/errors"
)

// commonSiteColumns are header names treated as site labels, in priority order.
var commonSiteColumns = []string{
	"site",
	"site_id",
	"site_name",
	"location",
	"station",
	"plot",
	"sample",
	"id",
}

// ParseCount coerces a cell to an abundance count. It accepts non-negative
// whole numbers, including forms like "3.0" or "1e2" that spreadsheets emit.
func ParseCount(raw string) (float64, bool) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return 0, false
	}
	if n, err := strconv.ParseUint(s, 10, 64); err == nil {
		return float64(n), true
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) || f < 0 || f != math.Trunc(f) {
		return 0, false
	}
	return f, true
}

// siteColumnIndex returns the index of the site label column, or -1 when
// neither the option nor a known header name selects one. Every other column
// is a species column, however many of its cells fail to parse.
func (r *DataReader) siteColumnIndex(headers []string) (int, error) {
	if r.siteColumn != "" {
		for i, h := range headers {
			if strings.EqualFold(h, r.siteColumn) {
				return i, nil
			}
		}
		return -1, errors.InvalidInput("site column not found in header: " + r.siteColumn)
	}

	for _, name := range commonSiteColumns {
		for i, h := range headers {
			if strings.EqualFold(h, name) {
				r.logger.Debug("using %q as site label column", h)
				return i, nil
			}
		}
	}
	return -1, nil
}
