// Package source obtains the confusion matrix a report is computed from.
package source

//go:generate go tool mockgen -source=source.go -destination=mock_source.go -package=source

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/evalkit/confmat/internal/metrics"
	"github.com/evalkit/confmat/internal/validation"
	"github.com/evalkit/confmat/internal/wizard"
	"github.com/go-viper/mapstructure/v2"
	"gopkg.in/yaml.v3"
)

// Matrix is a confusion matrix plus an optional display name.
type Matrix struct {
	Name   string
	Counts metrics.Counts
}

// Source produces a single confusion matrix.
type Source interface {
	// Load returns the matrix, or an error if it could not be obtained.
	Load(ctx context.Context) (Matrix, error)
}

// InvalidMatrixError reports schema violations in a matrix file.
type InvalidMatrixError struct {
	Path     string
	Problems []string
}

func (e *InvalidMatrixError) Error() string {
	return fmt.Sprintf("invalid matrix file %s:\n  %s", e.Path, strings.Join(e.Problems, "\n  "))
}

// Static returns a fixed matrix.
type Static struct {
	Matrix Matrix
}

func (s Static) Load(ctx context.Context) (Matrix, error) {
	if err := ctx.Err(); err != nil {
		return Matrix{}, err
	}
	return s.Matrix, nil
}

// File reads a matrix from a YAML or JSON document.
type File struct {
	Path string
}

// fileMatrix mirrors matrix.schema.json.
type fileMatrix struct {
	Name           string `mapstructure:"name"`
	metrics.Counts `mapstructure:",squash"`
}

func (f File) Load(ctx context.Context) (Matrix, error) {
	if err := ctx.Err(); err != nil {
		return Matrix{}, err
	}

	data, err := os.ReadFile(f.Path)
	if err != nil {
		return Matrix{}, fmt.Errorf("reading matrix file: %w", err)
	}
	return decodeMatrix(f.Path, data)
}

func decodeMatrix(path string, data []byte) (Matrix, error) {
	var doc any
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return Matrix{}, fmt.Errorf("parsing %s: %w", path, err)
	}

	if problems := validation.ValidateMatrix(doc); len(problems) > 0 {
		return Matrix{}, &InvalidMatrixError{Path: path, Problems: problems}
	}

	var fm fileMatrix
	if err := mapstructure.Decode(doc, &fm); err != nil {
		return Matrix{}, fmt.Errorf("decoding %s: %w", path, err)
	}

	slog.Debug("Loaded matrix file", "path", path, "name", fm.Name, "counts", fm.Counts)
	return Matrix{Name: fm.Name, Counts: fm.Counts}, nil
}

// Interactive prompts for the matrix on a terminal, starting from Initial.
type Interactive struct {
	In      io.Reader
	Out     io.Writer
	Initial metrics.Counts
}

func (s Interactive) Load(ctx context.Context) (Matrix, error) {
	if err := ctx.Err(); err != nil {
		return Matrix{}, err
	}

	c, err := wizard.RunCountsWizard(s.In, s.Out, s.Initial)
	if err != nil {
		return Matrix{}, err
	}
	return Matrix{Counts: c}, nil
}
