package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/evalkit/confmat/internal/metrics"
	"github.com/evalkit/confmat/internal/projectconfig"
	"github.com/evalkit/confmat/internal/reporting"
	"github.com/evalkit/confmat/internal/source"
	"github.com/spf13/cobra"
)

type reportOptions struct {
	file            string
	interactive     bool
	format          string
	locale          string
	decimals        int
	percentDecimals int
	title           string
	strict          bool

	vp, vn, fp, fn int
}

// cellOverrides holds the matrix cells set explicitly on the command line.
type cellOverrides struct {
	VP, VN, FP, FN *int
}

func (o cellOverrides) apply(c metrics.Counts) metrics.Counts {
	if o.VP != nil {
		c.VP = *o.VP
	}
	if o.VN != nil {
		c.VN = *o.VN
	}
	if o.FP != nil {
		c.FP = *o.FP
	}
	if o.FN != nil {
		c.FN = *o.FN
	}
	return c
}

func newReportCommand() *cobra.Command {
	var opts reportOptions

	cmd := &cobra.Command{
		Use:   "report",
		Short: "Compute and print the metrics for a confusion matrix",
		Long: `Compute accuracy, precision, sensitivity, specificity and F-score for one
confusion matrix and print a labeled report.

The matrix comes from --file, from --interactive, or from .confmat.yaml
(which defaults to the spam-filter example VP=95 VN=950 FP=15 FN=5).
Individual cells set with --vp, --vn, --fp or --fn override it.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return reportCommandE(cmd, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.file, "file", "i", "", "Read the matrix from a YAML or JSON file")
	cmd.Flags().BoolVar(&opts.interactive, "interactive", false, "Prompt for the matrix cells")
	cmd.Flags().StringVarP(&opts.format, "format", "f", projectconfig.DefaultFormat, "Output format: table, json, markdown or html")
	cmd.Flags().StringVar(&opts.locale, "locale", projectconfig.DefaultLocale, "Report language: en or pt-BR")
	cmd.Flags().IntVar(&opts.decimals, "decimals", projectconfig.DefaultDecimals, "Decimal places for ratios")
	cmd.Flags().IntVar(&opts.percentDecimals, "percent-decimals", projectconfig.DefaultPercentDecimals, "Decimal places for percentages")
	cmd.Flags().StringVar(&opts.title, "title", "", "Report title")
	cmd.Flags().BoolVar(&opts.strict, "strict", false, "Reject negative counts")
	cmd.Flags().IntVar(&opts.vp, "vp", 0, "True positives")
	cmd.Flags().IntVar(&opts.vn, "vn", 0, "True negatives")
	cmd.Flags().IntVar(&opts.fp, "fp", 0, "False positives")
	cmd.Flags().IntVar(&opts.fn, "fn", 0, "False negatives")
	cmd.MarkFlagsMutuallyExclusive("file", "interactive")

	return cmd
}

func reportCommandE(cmd *cobra.Command, opts reportOptions) error {
	cfg, err := projectconfig.Load(".")
	if err != nil {
		return err
	}

	flags := cmd.Flags()
	decimals, percentDecimals := cfg.Report.DecimalPlaces()
	renderOpts := reporting.Options{
		Format:          reporting.Format(cfg.Report.Format),
		Locale:          cfg.Report.Locale,
		Decimals:        decimals,
		PercentDecimals: percentDecimals,
	}
	if flags.Changed("format") {
		renderOpts.Format = reporting.Format(opts.format)
	}
	if flags.Changed("locale") {
		renderOpts.Locale = opts.locale
	}
	if flags.Changed("decimals") {
		renderOpts.Decimals = opts.decimals
	}
	if flags.Changed("percent-decimals") {
		renderOpts.PercentDecimals = opts.percentDecimals
	}

	var overrides cellOverrides
	if flags.Changed("vp") {
		overrides.VP = &opts.vp
	}
	if flags.Changed("vn") {
		overrides.VN = &opts.vn
	}
	if flags.Changed("fp") {
		overrides.FP = &opts.fp
	}
	if flags.Changed("fn") {
		overrides.FN = &opts.fn
	}

	src := selectSource(cmd, opts, cfg)
	return runReport(cmd.Context(), cmd.OutOrStdout(), src, reportRun{
		Render:       renderOpts,
		Overrides:    overrides,
		Title:        opts.title,
		DefaultTitle: cfg.Report.Title,
		Strict:       opts.strict,
	})
}

func selectSource(cmd *cobra.Command, opts reportOptions, cfg *projectconfig.ProjectConfig) source.Source {
	switch {
	case opts.file != "":
		slog.Debug("Reading matrix from file", "path", opts.file)
		return source.File{Path: opts.file}
	case opts.interactive:
		slog.Debug("Prompting for matrix")
		// The form goes to stderr so stdout only carries the report.
		return source.Interactive{In: cmd.InOrStdin(), Out: cmd.ErrOrStderr(), Initial: cfg.Matrix.Counts()}
	default:
		slog.Debug("Using configured matrix")
		return source.Static{Matrix: source.Matrix{Counts: cfg.Matrix.Counts()}}
	}
}

// reportRun holds the resolved settings for one report.
type reportRun struct {
	Render    reporting.Options
	Overrides cellOverrides
	// Title wins over the matrix name, which wins over DefaultTitle.
	Title        string
	DefaultTitle string
	Strict       bool
}

func runReport(ctx context.Context, out io.Writer, src source.Source, run reportRun) error {
	renderer, err := reporting.NewRenderer(run.Render)
	if err != nil {
		return err
	}

	m, err := src.Load(ctx)
	if err != nil {
		var invalid *source.InvalidMatrixError
		if errors.As(err, &invalid) {
			return &InvalidInputError{Err: err}
		}
		return fmt.Errorf("loading matrix: %w", err)
	}

	counts := run.Overrides.apply(m.Counts)
	if run.Strict {
		if err := counts.Validate(); err != nil {
			return &InvalidInputError{Err: err}
		}
	}

	result := metrics.Compute(counts)
	slog.Debug("Computed metrics",
		"counts", counts,
		"accuracy", result.Accuracy,
		"precision", result.Precision,
		"sensitivity", result.Sensitivity,
		"specificity", result.Specificity,
		"fScore", result.FScore)

	title := run.Title
	if title == "" {
		title = m.Name
	}
	if title == "" {
		title = run.DefaultTitle
	}
	return renderer.Render(out, reporting.Report{Title: title, Result: result})
}
