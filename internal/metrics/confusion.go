// Package metrics computes binary-classification metrics from the four cells
// of a confusion matrix.
//
// Every ratio whose denominator is zero evaluates to 0.0 rather than NaN, so
// an empty matrix (or an empty row/column of one) reports 0% instead of an
// undefined value.
package metrics

import (
	"errors"
	"fmt"
	"math"
)

// ErrNegativeCount is returned by [Counts.Validate] when a cell is negative.
var ErrNegativeCount = errors.New("confusion matrix counts must be non-negative")

// Counts holds the cells of a binary confusion matrix.
type Counts struct {
	VP int `json:"true_positives" yaml:"vp" mapstructure:"vp"`  // predicted positive, actually positive
	VN int `json:"true_negatives" yaml:"vn" mapstructure:"vn"`  // predicted negative, actually negative
	FP int `json:"false_positives" yaml:"fp" mapstructure:"fp"` // predicted positive, actually negative (Type I)
	FN int `json:"false_negatives" yaml:"fn" mapstructure:"fn"` // predicted negative, actually positive (Type II)
}

// ReferenceCounts returns the spam-filter example matrix: 95 spam messages
// caught, 950 legitimate messages passed, 15 legitimate messages flagged and
// 5 spam messages missed.
func ReferenceCounts() Counts {
	return Counts{VP: 95, VN: 950, FP: 15, FN: 5}
}

// Total returns the number of classified samples.
func (c Counts) Total() int {
	return c.VP + c.VN + c.FP + c.FN
}

// Validate reports whether every cell is non-negative. The metric functions
// never call it; callers that want to reject malformed input opt in.
func (c Counts) Validate() error {
	for _, cell := range []struct {
		name  string
		value int
	}{
		{"vp", c.VP},
		{"vn", c.VN},
		{"fp", c.FP},
		{"fn", c.FN},
	} {
		if cell.value < 0 {
			return fmt.Errorf("%w: %s=%d", ErrNegativeCount, cell.name, cell.value)
		}
	}
	return nil
}

// Result holds the metrics derived from a single Counts value.
type Result struct {
	Counts
	Accuracy    float64 `json:"accuracy"`
	Precision   float64 `json:"precision"`
	Sensitivity float64 `json:"sensitivity"`
	Specificity float64 `json:"specificity"`
	FScore      float64 `json:"f_score"`
}

// Compute derives all metrics from c. Precision and sensitivity are computed
// first because the F-score is their harmonic mean.
func Compute(c Counts) Result {
	precision := Precision(c.VP, c.FP)
	sensitivity := Sensitivity(c.VP, c.FN)

	return Result{
		Counts:      c,
		Accuracy:    Accuracy(c.VP, c.VN, c.FP, c.FN),
		Precision:   precision,
		Sensitivity: sensitivity,
		Specificity: Specificity(c.VN, c.FP),
		FScore:      FScore(precision, sensitivity),
	}
}

// Accuracy is the fraction of all predictions that are correct:
// (VP + VN) / (VP + VN + FP + FN).
func Accuracy(vp, vn, fp, fn int) float64 {
	return safeDivide(float64(vp)+float64(vn), float64(vp)+float64(vn)+float64(fp)+float64(fn))
}

// Precision is the fraction of positive predictions that are correct:
// VP / (VP + FP).
func Precision(vp, fp int) float64 {
	return safeDivide(float64(vp), float64(vp)+float64(fp))
}

// Sensitivity is the fraction of actual positives that were found:
// VP / (VP + FN).
func Sensitivity(vp, fn int) float64 {
	return safeDivide(float64(vp), float64(vp)+float64(fn))
}

// Recall is an alias for [Sensitivity].
func Recall(vp, fn int) float64 {
	return Sensitivity(vp, fn)
}

// Specificity is the fraction of actual negatives that were rejected:
// VN / (VN + FP).
func Specificity(vn, fp int) float64 {
	return safeDivide(float64(vn), float64(vn)+float64(fp))
}

// FScore is the harmonic mean of precision and sensitivity. Both arguments
// must come from the same confusion matrix.
func FScore(precision, sensitivity float64) float64 {
	return safeDivide(2*precision*sensitivity, precision+sensitivity)
}

// Round rounds v to the given number of decimal places.
func Round(v float64, places int) float64 {
	scale := math.Pow(10, float64(places))
	return math.Round(v*scale) / scale
}

func safeDivide(num, den float64) float64 {
	if den == 0 {
		return 0.0
	}
	return num / den
}
