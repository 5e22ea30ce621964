// Package projectconfig provides the ProjectConfig struct and loader for
// .confmat.yaml project-level configuration files.
package projectconfig

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/evalkit/confmat/internal/metrics"
	"gopkg.in/yaml.v3"
)

// FileName is the name of the project configuration file.
const FileName = ".confmat.yaml"

// Default values for project configuration. New() references them and no
// other code should duplicate them.
const (
	DefaultFormat          = "table"
	DefaultLocale          = "en"
	DefaultDecimals        = 4
	DefaultPercentDecimals = 2

	maxWalkUp = 10
)

// MatrixConfig holds the default confusion matrix. Cells are pointers so a
// file that sets only some of them keeps the defaults for the rest.
type MatrixConfig struct {
	VP *int `yaml:"vp,omitempty"`
	VN *int `yaml:"vn,omitempty"`
	FP *int `yaml:"fp,omitempty"`
	FN *int `yaml:"fn,omitempty"`
}

// Counts returns the matrix as metrics.Counts; unset cells are zero.
func (m MatrixConfig) Counts() metrics.Counts {
	return metrics.Counts{
		VP: derefInt(m.VP),
		VN: derefInt(m.VN),
		FP: derefInt(m.FP),
		FN: derefInt(m.FN),
	}
}

// ReportConfig holds report rendering defaults. An empty Title selects the
// localized default heading. The decimal fields are pointers so an explicit
// 0 in the file is kept.
type ReportConfig struct {
	Title           string `yaml:"title,omitempty"`
	Format          string `yaml:"format,omitempty"`
	Locale          string `yaml:"locale,omitempty"`
	Decimals        *int   `yaml:"decimals,omitempty"`
	PercentDecimals *int   `yaml:"percent_decimals,omitempty"`
}

// DecimalPlaces returns the ratio and percentage precision, falling back to
// the defaults for unset fields.
func (r ReportConfig) DecimalPlaces() (ratio, percent int) {
	ratio, percent = DefaultDecimals, DefaultPercentDecimals
	if r.Decimals != nil {
		ratio = *r.Decimals
	}
	if r.PercentDecimals != nil {
		percent = *r.PercentDecimals
	}
	return ratio, percent
}

// ProjectConfig is the top-level configuration loaded from .confmat.yaml.
type ProjectConfig struct {
	Matrix MatrixConfig `yaml:"matrix,omitempty"`
	Report ReportConfig `yaml:"report,omitempty"`
}

// New returns a ProjectConfig with all hard-coded defaults populated.
func New() *ProjectConfig {
	ref := metrics.ReferenceCounts()
	return &ProjectConfig{
		Matrix: MatrixConfig{
			VP: intPtr(ref.VP),
			VN: intPtr(ref.VN),
			FP: intPtr(ref.FP),
			FN: intPtr(ref.FN),
		},
		Report: ReportConfig{
			Format:          DefaultFormat,
			Locale:          DefaultLocale,
			Decimals:        intPtr(DefaultDecimals),
			PercentDecimals: intPtr(DefaultPercentDecimals),
		},
	}
}

// Load finds .confmat.yaml by walking up from startDir (max 10 levels),
// unmarshals it, and fills in missing fields with defaults.
// If no config file is found, returns defaults with a nil error.
// Real I/O errors (e.g. permission denied) are returned to the caller.
func Load(startDir string) (*ProjectConfig, error) {
	cfg := New()

	data, path, err := findConfigFile(startDir)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			slog.Debug("No project config found, using defaults", "startDir", startDir)
			return cfg, nil
		}
		return nil, fmt.Errorf("loading %s: %w", FileName, err)
	}

	var fileCfg ProjectConfig
	if err := yaml.Unmarshal(data, &fileCfg); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}

	slog.Debug("Loaded project config", "path", path)
	mergeConfig(cfg, &fileCfg)
	return cfg, nil
}

// Write stores the default configuration in dir. An existing file is only
// replaced when force is set.
func Write(dir string, force bool) (string, error) {
	p := filepath.Join(dir, FileName)
	if !force {
		if _, err := os.Stat(p); err == nil {
			return "", fmt.Errorf("%s already exists (use --force to overwrite)", p)
		} else if !errors.Is(err, os.ErrNotExist) {
			return "", fmt.Errorf("checking %q: %w", p, err)
		}
	}

	data, err := yaml.Marshal(New())
	if err != nil {
		return "", fmt.Errorf("encoding %s: %w", FileName, err)
	}
	if err := os.WriteFile(p, data, 0o644); err != nil {
		return "", fmt.Errorf("writing %q: %w", p, err)
	}
	return p, nil
}

// findConfigFile walks up from dir looking for .confmat.yaml. Returns
// os.ErrNotExist if no config file is found.
func findConfigFile(dir string) ([]byte, string, error) {
	absDir, err := filepath.Abs(dir)
	if err != nil {
		return nil, "", fmt.Errorf("resolving path %q: %w", dir, err)
	}
	dir = absDir

	for i := 0; i < maxWalkUp; i++ {
		p := filepath.Join(dir, FileName)
		data, err := os.ReadFile(p)
		if err == nil {
			return data, p, nil
		}
		if !errors.Is(err, os.ErrNotExist) {
			return nil, "", fmt.Errorf("reading %q: %w", p, err)
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	return nil, "", os.ErrNotExist
}

// mergeConfig overlays set values from src onto dst.
func mergeConfig(dst, src *ProjectConfig) {
	// Matrix
	if src.Matrix.VP != nil {
		dst.Matrix.VP = src.Matrix.VP
	}
	if src.Matrix.VN != nil {
		dst.Matrix.VN = src.Matrix.VN
	}
	if src.Matrix.FP != nil {
		dst.Matrix.FP = src.Matrix.FP
	}
	if src.Matrix.FN != nil {
		dst.Matrix.FN = src.Matrix.FN
	}

	// Report
	if src.Report.Title != "" {
		dst.Report.Title = src.Report.Title
	}
	if src.Report.Format != "" {
		dst.Report.Format = src.Report.Format
	}
	if src.Report.Locale != "" {
		dst.Report.Locale = src.Report.Locale
	}
	if src.Report.Decimals != nil {
		dst.Report.Decimals = src.Report.Decimals
	}
	if src.Report.PercentDecimals != nil {
		dst.Report.PercentDecimals = src.Report.PercentDecimals
	}
}

func intPtr(v int) *int {
	return &v
}

func derefInt(p *int) int {
	if p == nil {
		return 0
	}
	return *p
}
