package app

import (
	"context"
	"time"

	"divindex/domain/diversity"
	"divindex/domain/report"
	"divindex/internal"
	"divindex/internal/errors"
	"divindex/ports"
)

// DiversityService runs the read -> compute -> render pipeline.
type DiversityService struct {
	tables ports.TableProvider
	sinks  []ports.ReportSink
	logger *internal.Logger
	now    func() time.Time
}

// RunRequest selects the index plotted per site.
type RunRequest struct {
	Index diversity.Index
}

// NewDiversityService creates a diversity service
func NewDiversityService(tables ports.TableProvider, logger *internal.Logger, sinks ...ports.ReportSink) *DiversityService {
	if logger == nil {
		logger = internal.DefaultLogger
	}
	return &DiversityService{
		tables: tables,
		sinks:  sinks,
		logger: logger.With("DiversityService"),
		now:    time.Now,
	}
}

// Run reads the table, computes the report and hands it to every sink.
func (s *DiversityService) Run(ctx context.Context, req RunRequest) (*report.Report, error) {
	if _, err := diversity.ParseIndex(string(req.Index)); err != nil {
		return nil, errors.WithCode(errors.CodeInvalidInput, err)
	}

	table, err := s.tables.ReadTable(ctx)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to read abundance table from %s", s.tables.Source())
	}

	rep := BuildReport(req.Index, table, s.logger)
	rep.Source = s.tables.Source()
	rep.CreatedAt = s.now()

	for _, sink := range s.sinks {
		if err := ctx.Err(); err != nil {
			return rep, err
		}
		s.logger.Debug("writing report to %s", sink.Name())
		if err := sink.Write(ctx, rep); err != nil {
			return rep, errors.Wrapf(err, "report sink %s failed", sink.Name())
		}
	}
	return rep, nil
}
