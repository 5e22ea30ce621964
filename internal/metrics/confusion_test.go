package metrics

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/sync/errgroup"
)

const epsilon = 1e-9

func TestCompute_ReferenceMatrix(t *testing.T) {
	r := Compute(ReferenceCounts())

	assert.Equal(t, ReferenceCounts(), r.Counts)
	assert.InDelta(t, 1045.0/1065.0, r.Accuracy, epsilon)
	assert.InDelta(t, 95.0/110.0, r.Precision, epsilon)
	assert.InDelta(t, 0.95, r.Sensitivity, epsilon)
	assert.InDelta(t, 950.0/965.0, r.Specificity, epsilon)
	assert.InDelta(t, 190.0/210.0, r.FScore, epsilon)

	assert.Equal(t, 0.9812, Round(r.Accuracy, 4))
	assert.Equal(t, 0.8636, Round(r.Precision, 4))
	assert.Equal(t, 0.95, Round(r.Sensitivity, 4))
	assert.Equal(t, 0.9845, Round(r.Specificity, 4))
	assert.Equal(t, 0.9048, Round(r.FScore, 4))
}

func TestCompute_EmptyMatrix(t *testing.T) {
	r := Compute(Counts{})

	assert.Equal(t, 0.0, r.Accuracy)
	assert.Equal(t, 0.0, r.Precision)
	assert.Equal(t, 0.0, r.Sensitivity)
	assert.Equal(t, 0.0, r.Specificity)
	assert.Equal(t, 0.0, r.FScore)
}

func TestCompute_PerfectClassifier(t *testing.T) {
	r := Compute(Counts{VP: 10, VN: 10})

	assert.Equal(t, 1.0, r.Accuracy)
	assert.Equal(t, 1.0, r.Precision)
	assert.Equal(t, 1.0, r.Sensitivity)
	assert.Equal(t, 1.0, r.Specificity)
	assert.Equal(t, 1.0, r.FScore)
}

func TestZeroDenominator(t *testing.T) {
	tests := []struct {
		name string
		got  float64
	}{
		{"accuracy", Accuracy(0, 0, 0, 0)},
		{"precision", Precision(0, 0)},
		{"sensitivity", Sensitivity(0, 0)},
		{"recall", Recall(0, 0)},
		{"specificity", Specificity(0, 0)},
		{"f_score", FScore(0, 0)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, 0.0, tt.got)
		})
	}
}

func TestPartialMatrices(t *testing.T) {
	tests := []struct {
		name   string
		counts Counts
		expect Result
	}{
		{
			name:   "no positive predictions",
			counts: Counts{VN: 8, FN: 2},
			expect: Result{Accuracy: 0.8, Precision: 0, Sensitivity: 0, Specificity: 1, FScore: 0},
		},
		{
			name:   "no actual negatives",
			counts: Counts{VP: 3, FN: 1},
			expect: Result{Accuracy: 0.75, Precision: 1, Sensitivity: 0.75, Specificity: 0, FScore: 6.0 / 7.0},
		},
		{
			name:   "everything wrong",
			counts: Counts{FP: 4, FN: 6},
			expect: Result{},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Compute(tt.counts)
			assert.InDelta(t, tt.expect.Accuracy, got.Accuracy, epsilon, "accuracy")
			assert.InDelta(t, tt.expect.Precision, got.Precision, epsilon, "precision")
			assert.InDelta(t, tt.expect.Sensitivity, got.Sensitivity, epsilon, "sensitivity")
			assert.InDelta(t, tt.expect.Specificity, got.Specificity, epsilon, "specificity")
			assert.InDelta(t, tt.expect.FScore, got.FScore, epsilon, "f_score")
		})
	}
}

func TestMetricsStayInUnitInterval(t *testing.T) {
	for vp := 0; vp <= 6; vp++ {
		for vn := 0; vn <= 6; vn++ {
			for fp := 0; fp <= 6; fp++ {
				for fn := 0; fn <= 6; fn++ {
					r := Compute(Counts{VP: vp, VN: vn, FP: fp, FN: fn})
					for _, v := range []float64{r.Accuracy, r.Precision, r.Sensitivity, r.Specificity, r.FScore} {
						if v < 0 || v > 1 {
							t.Fatalf("metric %f out of range for vp=%d vn=%d fp=%d fn=%d", v, vp, vn, fp, fn)
						}
					}
				}
			}
		}
	}
}

func TestMetrics_LargeCounts(t *testing.T) {
	const big = math.MaxInt

	assert.InDelta(t, 1.0, Precision(big, 1), 1e-12)
	assert.Equal(t, 0.5, Sensitivity(big, big))
	assert.Equal(t, 0.5, Specificity(big, big))
	assert.Equal(t, 0.5, Accuracy(big, big, big, big))
	assert.Equal(t, 1.0, Accuracy(big, big, 0, 0))

	r := Compute(Counts{VP: big, VN: big, FP: big, FN: big})
	for name, v := range map[string]float64{
		"accuracy":    r.Accuracy,
		"precision":   r.Precision,
		"sensitivity": r.Sensitivity,
		"specificity": r.Specificity,
		"f_score":     r.FScore,
	} {
		assert.GreaterOrEqual(t, v, 0.0, name)
		assert.LessOrEqual(t, v, 1.0, name)
	}
}

func TestSpecificityMirrorsSensitivity(t *testing.T) {
	for a := 0; a <= 20; a++ {
		for b := 0; b <= 20; b++ {
			assert.Equal(t, Sensitivity(a, b), Specificity(a, b), "a=%d b=%d", a, b)
		}
	}
}

func TestFScore_HarmonicMeanIdentity(t *testing.T) {
	for _, p := range []float64{1, 0.5, 0.25, 0.125, 0.75} {
		assert.Equal(t, p, FScore(p, p))
	}
	for _, p := range []float64{0.1, 0.3333333, 0.9048, 0.999} {
		assert.InDelta(t, p, FScore(p, p), 1e-15)
	}
}

func TestFScore_Monotonic(t *testing.T) {
	steps := []float64{0, 0.05, 0.1, 0.25, 0.5, 0.75, 0.9, 1}
	for _, fixed := range steps {
		prevP, prevS := -1.0, -1.0
		for _, v := range steps {
			byPrecision := FScore(v, fixed)
			bySensitivity := FScore(fixed, v)
			assert.GreaterOrEqual(t, byPrecision, prevP, "precision=%f sensitivity=%f", v, fixed)
			assert.GreaterOrEqual(t, bySensitivity, prevS, "precision=%f sensitivity=%f", fixed, v)
			prevP, prevS = byPrecision, bySensitivity
		}
	}
}

func TestCounts_Validate(t *testing.T) {
	require.NoError(t, Counts{}.Validate())
	require.NoError(t, ReferenceCounts().Validate())

	err := Counts{VP: 1, VN: 2, FP: -3, FN: 4}.Validate()
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrNegativeCount))
	assert.Contains(t, err.Error(), "fp=-3")
}

func TestCounts_Total(t *testing.T) {
	assert.Equal(t, 1065, ReferenceCounts().Total())
	assert.Equal(t, 0, Counts{}.Total())
}

func TestCompute_ConcurrentCallers(t *testing.T) {
	want := Compute(ReferenceCounts())

	var g errgroup.Group
	results := make([]Result, 64)
	for i := range results {
		g.Go(func() error {
			results[i] = Compute(ReferenceCounts())
			return nil
		})
	}
	require.NoError(t, g.Wait())

	for _, got := range results {
		assert.Equal(t, want, got)
	}
}

func TestRound(t *testing.T) {
	assert.Equal(t, 0.9812, Round(1045.0/1065.0, 4))
	assert.Equal(t, 98.12, Round(100*1045.0/1065.0, 2))
	assert.Equal(t, 1.0, Round(0.99996, 4))
}
