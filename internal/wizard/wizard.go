// Package wizard prompts for the cells of a confusion matrix.
package wizard

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/charmbracelet/huh"
	"github.com/evalkit/confmat/internal/metrics"
	"golang.org/x/term"
)

// RunCountsWizard runs an interactive huh form to collect the four counts.
// Fields are pre-populated from initial; a blank answer keeps that value.
// Without a terminal, each field reads one line of in.
func RunCountsWizard(in io.Reader, out io.Writer, initial metrics.Counts) (metrics.Counts, error) {
	var (
		vp = strconv.Itoa(initial.VP)
		vn = strconv.Itoa(initial.VN)
		fp = strconv.Itoa(initial.FP)
		fn = strconv.Itoa(initial.FN)
	)

	form := huh.NewForm(
		huh.NewGroup(
			countInput("True positives (VP)", "Predicted positive, actually positive", &vp),
			countInput("True negatives (VN)", "Predicted negative, actually negative", &vn),
			countInput("False positives (FP)", "Predicted positive, actually negative (Type I error)", &fp),
			countInput("False negatives (FN)", "Predicted negative, actually positive (Type II error)", &fn),
		),
	).
		WithOutput(out)

	// Use accessible mode for non-TTY input (e.g., tests, piped input).
	if f, ok := in.(*os.File); !ok || !term.IsTerminal(int(f.Fd())) {
		form = form.WithInput(byteReader{in}).WithAccessible(true)
	} else {
		form = form.WithInput(in)
	}

	if err := form.Run(); err != nil {
		return metrics.Counts{}, fmt.Errorf("wizard failed: %w", err)
	}

	return parseAll(vp, vn, fp, fn)
}

func countInput(title, description string, value *string) *huh.Input {
	return huh.NewInput().
		Title(title).
		Description(description).
		Value(value).
		Validate(func(s string) error {
			if strings.TrimSpace(s) == "" {
				return nil
			}
			_, err := ParseCount(s)
			return err
		})
}

// byteReader hands out one byte per Read. Accessible fields each scan the
// input with their own buffer, so reading further would swallow the lines
// meant for the next field.
type byteReader struct {
	r io.Reader
}

func (b byteReader) Read(p []byte) (int, error) {
	if len(p) == 0 {
		return 0, nil
	}
	return b.r.Read(p[:1])
}

// ParseCount parses a single confusion matrix cell: a base-10,
// non-negative integer, surrounding whitespace ignored.
func ParseCount(s string) (int, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, fmt.Errorf("a count is required")
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("%q is not a whole number", s)
	}
	if n < 0 {
		return 0, fmt.Errorf("count must be non-negative, got %d", n)
	}
	return n, nil
}

func parseAll(vp, vn, fp, fn string) (metrics.Counts, error) {
	var c metrics.Counts
	for _, f := range []struct {
		name string
		raw  string
		dst  *int
	}{
		{"vp", vp, &c.VP},
		{"vn", vn, &c.VN},
		{"fp", fp, &c.FP},
		{"fn", fn, &c.FN},
	} {
		n, err := ParseCount(f.raw)
		if err != nil {
			return metrics.Counts{}, fmt.Errorf("%s: %w", f.name, err)
		}
		*f.dst = n
	}
	return c, nil
}
