package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"text/tabwriter"

	"divindex/adapters/report"
	"divindex/adapters/table"
	"divindex/app"
	"divindex/domain/diversity"
	"divindex/internal"
	"divindex/internal/config"
	"divindex/internal/errors"
	"divindex/internal/testkit"
	"divindex/ports"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

func main() {
	// A missing .env is fine; the environment still applies.
	_ = godotenv.Load()

	if err := newRootCmd(os.Stdout).ExecuteContext(context.Background()); err != nil {
		fmt.Fprintf(os.Stderr, "Error [%s]: %v\n", errors.GetCode(err), err)
		os.Exit(1)
	}
}

type runFlags struct {
	workbook   string
	report     string
	siteColumn string
	sheet      string
	delimiter  string
	noCharts   bool
	verbose    bool
}

func newRootCmd(stdout io.Writer) *cobra.Command {
	var flags runFlags

	cmd := &cobra.Command{
		Use:   "divindex <input_file> <diversity_index>",
		Short: "Compute ecological diversity indices from a species abundance table",
		Long: `Compute diversity indices for every sampling site (row) of a species
abundance table and for the whole community (column totals).

The table is a CSV, TSV or XLSX file with one column per species. A column
named site, location, station, plot or sample (or the one given with
--site-column) is used for site labels; otherwise sites are numbered 1..n.

Index codes: H, exp_H, D, s, P, M, Me, chao (see "divindex indices").

Example: divindex survey.csv H --workbook charts.xlsx --report report.html`,
		Args:          cobra.ExactArgs(2),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDiversity(cmd, stdout, args[0], args[1], flags)
		},
	}

	cmd.Flags().StringVar(&flags.workbook, "workbook", "", "write data and charts to this .xlsx file (env DIVINDEX_WORKBOOK)")
	cmd.Flags().StringVar(&flags.report, "report", "", "write a .md or .html report (env DIVINDEX_REPORT)")
	cmd.Flags().StringVar(&flags.siteColumn, "site-column", "", "header of the site label column (env DIVINDEX_SITE_COLUMN)")
	cmd.Flags().StringVar(&flags.delimiter, "delimiter", "", `field separator for text input: one character, "tab", "comma" or "semicolon" (env DIVINDEX_DELIMITER)`)
	cmd.Flags().StringVar(&flags.sheet, "sheet", "", "worksheet to read from .xlsx input (env DIVINDEX_SHEET)")
	cmd.Flags().BoolVar(&flags.noCharts, "no-charts", false, "print the summary without terminal charts")
	cmd.Flags().BoolVarP(&flags.verbose, "verbose", "v", false, "debug logging")

	cmd.AddCommand(newIndicesCmd(stdout), newSampleCmd(stdout))
	return cmd
}

func newIndicesCmd(stdout io.Writer) *cobra.Command {
	return &cobra.Command{
		Use:   "indices",
		Short: "List the supported diversity index codes",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			w := tabwriter.NewWriter(stdout, 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "CODE\tNAME\tDESCRIPTION")
			for _, idx := range diversity.AllIndices() {
				fmt.Fprintf(w, "%s\t%s\t%s\n", idx, idx.Name(), idx.Description())
			}
			return w.Flush()
		},
	}
}

func newSampleCmd(stdout io.Writer) *cobra.Command {
	cfg := testkit.DefaultCommunityConfig()

	cmd := &cobra.Command{
		Use:   "sample <output.csv>",
		Short: "Write a synthetic abundance table for trying out the indices",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			gen, err := testkit.NewCommunityGenerator(cfg)
			if err != nil {
				return errors.WithCode(errors.CodeInvalidInput, err)
			}
			table := gen.Generate()
			if err := testkit.WriteCSV(args[0], table); err != nil {
				return errors.IOError("failed to write sample table", err)
			}
			fmt.Fprintf(stdout, "wrote %d sites x %d species to %s\n", len(table.Sites), len(table.Species), args[0])
			return nil
		},
	}

	cmd.Flags().IntVar(&cfg.Sites, "sites", cfg.Sites, "number of sampling sites")
	cmd.Flags().IntVar(&cfg.Species, "species", cfg.Species, "number of species")
	cmd.Flags().Float64Var(&cfg.MeanAbundance, "mean", cfg.MeanAbundance, "expected count of the most abundant species")
	cmd.Flags().Float64Var(&cfg.Dominance, "dominance", cfg.Dominance, "abundance ratio between consecutive ranks")
	cmd.Flags().Float64Var(&cfg.AbsenceRate, "absence", cfg.AbsenceRate, "probability a species is absent from a site")
	cmd.Flags().Uint64Var(&cfg.Seed, "seed", cfg.Seed, "random seed")
	return cmd
}

func runDiversity(cmd *cobra.Command, stdout io.Writer, inputFile, indexCode string, flags runFlags) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	applyFlags(cmd, cfg, flags)
	if err := cfg.Validate(); err != nil {
		return err
	}

	logger := internal.NewLogger(os.Stderr, internal.ParseLogLevel(cfg.LogLevel, internal.LogLevelInfo))
	if flags.verbose {
		logger.SetLevel(internal.LogLevelDebug)
	}

	idx, err := diversity.ParseIndex(indexCode)
	if err != nil {
		return errors.WithCode(errors.CodeInvalidInput, err)
	}

	opts := []table.Option{
		table.WithSheet(cfg.Input.Sheet),
		table.WithSiteColumn(cfg.Input.SiteColumn),
		table.WithLogger(logger),
	}
	if cfg.Input.Delimiter != "" {
		// Validate has already accepted the setting.
		delim, _ := config.ParseDelimiter(cfg.Input.Delimiter)
		opts = append(opts, table.WithDelimiter(delim))
	}
	reader := table.NewDataReader(inputFile, opts...)

	sinks := []ports.ReportSink{report.NewTextSink(stdout, report.WithCharts(cfg.Output.Charts))}
	if cfg.Output.WorkbookPath != "" {
		sinks = append(sinks, report.NewWorkbookSink(cfg.Output.WorkbookPath))
	}
	if cfg.Output.ReportPath != "" {
		sinks = append(sinks, report.NewMarkdownSink(cfg.Output.ReportPath))
	}

	svc := app.NewDiversityService(reader, logger, sinks...)
	rep, err := svc.Run(cmd.Context(), app.RunRequest{Index: idx})
	if err != nil {
		return err
	}
	logger.Debug("run %s finished (%d sites)", rep.RunID, len(rep.Sites))
	return nil
}

// applyFlags lets explicitly set flags override the environment.
func applyFlags(cmd *cobra.Command, cfg *config.Config, flags runFlags) {
	if cmd.Flags().Changed("workbook") {
		cfg.Output.WorkbookPath = flags.workbook
	}
	if cmd.Flags().Changed("report") {
		cfg.Output.ReportPath = flags.report
	}
	if cmd.Flags().Changed("site-column") {
		cfg.Input.SiteColumn = flags.siteColumn
	}
	if cmd.Flags().Changed("delimiter") {
		cfg.Input.Delimiter = flags.delimiter
	}
	if cmd.Flags().Changed("sheet") {
		cfg.Input.Sheet = flags.sheet
	}
	if flags.noCharts {
		cfg.Output.Charts = false
	}
}
