package ports

import (
	"context"

	"divindex/domain/report"
)

// ReportSink renders a finished report. Sinks are presentation only and must
// not modify the report.
type ReportSink interface {
	Write(ctx context.Context, r *report.Report) error
	Name() string
}
