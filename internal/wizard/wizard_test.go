package wizard

import (
	"bytes"
	"strings"
	"testing"

	"github.com/evalkit/confmat/internal/metrics"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseCount(t *testing.T) {
	tests := []struct {
		input   string
		want    int
		wantErr string
	}{
		{"0", 0, ""},
		{"95", 95, ""},
		{"  950 \n", 950, ""},
		{"", 0, "required"},
		{"   ", 0, "required"},
		{"-1", 0, "non-negative"},
		{"1.5", 0, "not a whole number"},
		{"ten", 0, "not a whole number"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseCount(tt.input)
			if tt.wantErr != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseAll(t *testing.T) {
	c, err := parseAll("95", "950", "15", "5")
	require.NoError(t, err)
	assert.Equal(t, metrics.ReferenceCounts(), c)

	_, err = parseAll("95", "950", "x", "5")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "fp:")
}

func TestRunCountsWizard_ValidInput(t *testing.T) {
	in := strings.NewReader("1\n2\n3\n4\n")
	out := &bytes.Buffer{}

	c, err := RunCountsWizard(in, out, metrics.ReferenceCounts())
	require.NoError(t, err)
	assert.Equal(t, metrics.Counts{VP: 1, VN: 2, FP: 3, FN: 4}, c)
	assert.Contains(t, out.String(), "False negatives (FN)")
}

func TestRunCountsWizard_BlankKeepsInitial(t *testing.T) {
	in := strings.NewReader("\n7\n\n  9 \n")
	out := &bytes.Buffer{}

	c, err := RunCountsWizard(in, out, metrics.ReferenceCounts())
	require.NoError(t, err)
	assert.Equal(t, metrics.Counts{VP: 95, VN: 7, FP: 15, FN: 9}, c)
}

func TestRunCountsWizard_ShortInputKeepsInitial(t *testing.T) {
	in := strings.NewReader("10\n")
	out := &bytes.Buffer{}

	c, err := RunCountsWizard(in, out, metrics.ReferenceCounts())
	require.NoError(t, err)
	assert.Equal(t, metrics.Counts{VP: 10, VN: 950, FP: 15, FN: 5}, c)
}

func TestRunCountsWizard_InvalidAnswerReprompts(t *testing.T) {
	in := strings.NewReader("ten\n10\n20\n-1\n30\n40\n")
	out := &bytes.Buffer{}

	c, err := RunCountsWizard(in, out, metrics.Counts{})
	require.NoError(t, err)
	assert.Equal(t, metrics.Counts{VP: 10, VN: 20, FP: 30, FN: 40}, c)
	assert.Contains(t, out.String(), `"ten" is not a whole number`)
	assert.Contains(t, out.String(), "count must be non-negative")
}

func TestRunCountsWizard_InvalidAnswerAtEOF(t *testing.T) {
	in := strings.NewReader("ten\n")
	out := &bytes.Buffer{}

	_, err := RunCountsWizard(in, out, metrics.ReferenceCounts())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "vp:")
}

func TestByteReader(t *testing.T) {
	r := byteReader{strings.NewReader("12\n")}
	buf := make([]byte, 8)

	n, err := r.Read(buf)
	require.NoError(t, err)
	assert.Equal(t, 1, n)
	assert.Equal(t, byte('1'), buf[0])
}
