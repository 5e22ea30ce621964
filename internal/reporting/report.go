// Package reporting renders confusion matrix metrics as text, JSON,
// Markdown or HTML.
package reporting

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/evalkit/confmat/internal/metrics"
	"github.com/mattn/go-runewidth"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

// Format selects the report output format.
type Format string

const (
	FormatTable    Format = "table"
	FormatJSON     Format = "json"
	FormatMarkdown Format = "markdown"
	FormatHTML     Format = "html"
)

// Formats lists the supported output formats.
var Formats = []Format{FormatTable, FormatJSON, FormatMarkdown, FormatHTML}

const ruleWidth = 50

// Report is a computed result ready for rendering.
type Report struct {
	// Title is the report heading. Empty selects the localized default.
	Title  string
	Result metrics.Result
}

// Options configures a Renderer.
type Options struct {
	Format          Format
	Locale          string
	Decimals        int
	PercentDecimals int
}

// Renderer writes reports in one format and locale.
type Renderer struct {
	opts    Options
	printer *message.Printer
}

// NewRenderer validates opts and returns a Renderer.
func NewRenderer(opts Options) (*Renderer, error) {
	if !isSupportedFormat(opts.Format) {
		return nil, fmt.Errorf("unsupported format %q: must be one of %s", opts.Format, formatList())
	}
	if opts.Decimals < 0 || opts.PercentDecimals < 0 {
		return nil, fmt.Errorf("decimal places must be non-negative")
	}
	p, err := newPrinter(opts.Locale)
	if err != nil {
		return nil, err
	}
	return &Renderer{opts: opts, printer: p}, nil
}

// Render writes rep to w.
func (r *Renderer) Render(w io.Writer, rep Report) error {
	switch r.opts.Format {
	case FormatJSON:
		return r.renderJSON(w, rep)
	case FormatMarkdown:
		_, err := io.WriteString(w, r.markdown(rep))
		return err
	case FormatHTML:
		return r.renderHTML(w, rep)
	default:
		_, err := io.WriteString(w, r.table(rep))
		return err
	}
}

type labeledCount struct {
	label string
	value int
}

type labeledMetric struct {
	label string
	value float64
}

func (r *Renderer) countRows(res metrics.Result) []labeledCount {
	return []labeledCount{
		{r.printer.Sprintf(msgVP), res.VP},
		{r.printer.Sprintf(msgVN), res.VN},
		{r.printer.Sprintf(msgFP), res.FP},
		{r.printer.Sprintf(msgFN), res.FN},
	}
}

func (r *Renderer) metricRows(res metrics.Result) []labeledMetric {
	return []labeledMetric{
		{r.printer.Sprintf(msgAccuracy), res.Accuracy},
		{r.printer.Sprintf(msgPrecision), res.Precision},
		{r.printer.Sprintf(msgSensitivity), res.Sensitivity},
		{r.printer.Sprintf(msgSpecificity), res.Specificity},
		{r.printer.Sprintf(msgFScore), res.FScore},
	}
}

func (r *Renderer) title(rep Report) string {
	if rep.Title != "" {
		return rep.Title
	}
	return r.printer.Sprintf(msgTitle)
}

// ratio formats v with the configured number of decimals, e.g. 0.9812.
func (r *Renderer) ratio(v float64) string {
	return r.printer.Sprintf("%v", number.Decimal(v, number.Scale(r.opts.Decimals)))
}

// percent formats v as a percentage, e.g. 98.12%.
func (r *Renderer) percent(v float64) string {
	return r.printer.Sprintf("%v", number.Decimal(v*100, number.Scale(r.opts.PercentDecimals))) + "%"
}

func (r *Renderer) count(v int) string {
	return r.printer.Sprintf("%d", v)
}

func (r *Renderer) table(rep Report) string {
	var b strings.Builder
	rule := strings.Repeat("=", ruleWidth)

	counts := r.countRows(rep.Result)
	values := r.metricRows(rep.Result)

	width := 0
	for _, c := range counts {
		width = max(width, runewidth.StringWidth(c.label)+1)
	}
	for _, m := range values {
		width = max(width, runewidth.StringWidth(m.label)+1)
	}

	b.WriteString(rule + "\n")
	b.WriteString(strings.ToUpper(r.title(rep)) + "\n")
	b.WriteString(rule + "\n")

	b.WriteString(r.printer.Sprintf(msgMatrix) + ":\n")
	for _, c := range counts {
		fmt.Fprintf(&b, "%s %s\n", padRight(c.label+":", width), r.count(c.value))
	}

	fmt.Fprintf(&b, "\n--- %s ---\n", r.printer.Sprintf(msgResults))
	for _, m := range values {
		fmt.Fprintf(&b, "%s %s (%s)\n", padRight(m.label+":", width), r.ratio(m.value), r.percent(m.value))
	}

	fmt.Fprintf(&b, "\n%s: %s\n", r.printer.Sprintf(msgRating), r.printer.Sprintf(InterpretScore(rep.Result.FScore)))
	b.WriteString(rule + "\n")
	return b.String()
}

func (r *Renderer) markdown(rep Report) string {
	var b strings.Builder
	p := r.printer

	fmt.Fprintf(&b, "## %s\n\n", r.title(rep))

	fmt.Fprintf(&b, "| %s | %s |\n", p.Sprintf(msgCell), p.Sprintf(msgCount))
	b.WriteString("|------|------:|\n")
	for _, c := range r.countRows(rep.Result) {
		fmt.Fprintf(&b, "| %s | %s |\n", c.label, r.count(c.value))
	}
	b.WriteString("\n")

	fmt.Fprintf(&b, "| %s | %s | %s |\n", p.Sprintf(msgMetric), p.Sprintf(msgValue), p.Sprintf(msgPercent))
	b.WriteString("|--------|------:|--------:|\n")
	for _, m := range r.metricRows(rep.Result) {
		fmt.Fprintf(&b, "| %s | %s | %s |\n", m.label, r.ratio(m.value), r.percent(m.value))
	}
	b.WriteString("\n")

	fmt.Fprintf(&b, "**%s:** %s\n", p.Sprintf(msgRating), p.Sprintf(InterpretScore(rep.Result.FScore)))
	return b.String()
}

func (r *Renderer) renderHTML(w io.Writer, rep Report) error {
	md := goldmark.New(goldmark.WithExtensions(extension.Table))

	var buf bytes.Buffer
	if err := md.Convert([]byte(r.markdown(rep)), &buf); err != nil {
		return fmt.Errorf("rendering html: %w", err)
	}
	_, err := buf.WriteTo(w)
	return err
}

// jsonReport is the JSON shape of a report. Metric values are rounded to
// the configured number of decimals.
type jsonReport struct {
	Title string `json:"title"`
	metrics.Result
	Rating string `json:"rating"`
}

func (r *Renderer) renderJSON(w io.Writer, rep Report) error {
	res := rep.Result
	res.Accuracy = metrics.Round(res.Accuracy, r.opts.Decimals)
	res.Precision = metrics.Round(res.Precision, r.opts.Decimals)
	res.Sensitivity = metrics.Round(res.Sensitivity, r.opts.Decimals)
	res.Specificity = metrics.Round(res.Specificity, r.opts.Decimals)
	res.FScore = metrics.Round(res.FScore, r.opts.Decimals)

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(jsonReport{
		Title:  r.title(rep),
		Result: res,
		Rating: r.printer.Sprintf(InterpretScore(rep.Result.FScore)),
	})
}

// padRight pads s with spaces so its terminal display width reaches width.
func padRight(s string, width int) string {
	sw := runewidth.StringWidth(s)
	if sw >= width {
		return s
	}
	return s + strings.Repeat(" ", width-sw)
}

func isSupportedFormat(f Format) bool {
	for _, s := range Formats {
		if f == s {
			return true
		}
	}
	return false
}

func formatList() string {
	names := make([]string, len(Formats))
	for i, f := range Formats {
		names[i] = string(f)
	}
	return strings.Join(names, ", ")
}
