// Package config loads application configuration from environment
// variables with sensible defaults, optionally overridden by a YAML
// file. Analysis thresholds are plain configuration inputs: the engine
// is parameterized without code change.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/edupulse/performance-hub/internal/domain/grading"
	"github.com/edupulse/performance-hub/internal/domain/shared"
)

// Config holds all application configuration.
type Config struct {
	// App
	App AppConfig

	// Analysis thresholds and grade bands
	Analysis AnalysisConfig

	// Report output
	Report ReportConfig

	// Observability
	Observability ObservabilityConfig
}

// AppConfig holds general application settings.
type AppConfig struct {
	Name    string
	Version string
}

// AnalysisConfig holds the classifier thresholds with their documented
// defaults and the grade band table.
type AnalysisConfig struct {
	// RiskThreshold flags students whose overall average is below it.
	RiskThreshold float64

	// SubjectFloor flags students with any subject average below it.
	SubjectFloor float64

	// ImprovementEpsilon is the absolute delta for improvement/decline.
	ImprovementEpsilon float64

	// GradeBands is the ordered (min score, letter) threshold table.
	GradeBands []grading.Band
}

// ReportConfig holds report rendering settings.
type ReportConfig struct {
	// TopN is how many standings entries the report shows.
	TopN int

	// MaxAtRisk caps the at-risk table.
	MaxAtRisk int

	// OutputPath is where the report file is written; empty disables
	// the file export.
	OutputPath string
}

// ObservabilityConfig holds logging settings.
type ObservabilityConfig struct {
	LogLevel  string // debug, info, warn, error
	AddCaller bool
}

// Load loads configuration from environment variables.
func Load() (*Config, error) {
	cfg := &Config{
		App: AppConfig{
			Name:    getEnv("APP_NAME", "performance-hub"),
			Version: getEnv("APP_VERSION", "0.1.0"),
		},
		Analysis: AnalysisConfig{
			RiskThreshold:      getEnvFloat("ANALYSIS_RISK_THRESHOLD", 40.0),
			SubjectFloor:       getEnvFloat("ANALYSIS_SUBJECT_FLOOR", 33.0),
			ImprovementEpsilon: getEnvFloat("ANALYSIS_IMPROVEMENT_EPSILON", 5.0),
			GradeBands:         grading.DefaultBands(),
		},
		Report: ReportConfig{
			TopN:       getEnvInt("REPORT_TOP_N", 10),
			MaxAtRisk:  getEnvInt("REPORT_MAX_AT_RISK", 10),
			OutputPath: getEnv("REPORT_OUTPUT_PATH", "students_analysis_report.txt"),
		},
		Observability: ObservabilityConfig{
			LogLevel:  getEnv("LOG_LEVEL", "info"),
			AddCaller: getEnvBool("LOG_ADD_CALLER", true),
		},
	}

	if bands := getEnv("ANALYSIS_GRADE_BANDS", ""); bands != "" {
		parsed, err := ParseBands(bands)
		if err != nil {
			return nil, fmt.Errorf("ANALYSIS_GRADE_BANDS: %w", err)
		}
		cfg.Analysis.GradeBands = parsed
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation: %w", err)
	}

	return cfg, nil
}

// fileConfig mirrors the YAML layout. Only present keys override.
type fileConfig struct {
	Analysis struct {
		RiskThreshold      *float64 `yaml:"risk_threshold"`
		SubjectFloor       *float64 `yaml:"subject_floor"`
		ImprovementEpsilon *float64 `yaml:"improvement_epsilon"`
		GradeBands         []struct {
			MinScore float64 `yaml:"min_score"`
			Letter   string  `yaml:"letter"`
		} `yaml:"grade_bands"`
	} `yaml:"analysis"`
	Report struct {
		TopN       *int    `yaml:"top_n"`
		MaxAtRisk  *int    `yaml:"max_at_risk"`
		OutputPath *string `yaml:"output_path"`
	} `yaml:"report"`
	Log struct {
		Level *string `yaml:"level"`
	} `yaml:"log"`
}

// ApplyFile overrides cfg with the values present in a YAML file.
func (c *Config) ApplyFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config file: %w", err)
	}

	var fc fileConfig
	if err := yaml.Unmarshal(data, &fc); err != nil {
		return fmt.Errorf("parse config file: %w", err)
	}

	if fc.Analysis.RiskThreshold != nil {
		c.Analysis.RiskThreshold = *fc.Analysis.RiskThreshold
	}
	if fc.Analysis.SubjectFloor != nil {
		c.Analysis.SubjectFloor = *fc.Analysis.SubjectFloor
	}
	if fc.Analysis.ImprovementEpsilon != nil {
		c.Analysis.ImprovementEpsilon = *fc.Analysis.ImprovementEpsilon
	}
	if len(fc.Analysis.GradeBands) > 0 {
		bands := make([]grading.Band, 0, len(fc.Analysis.GradeBands))
		for _, b := range fc.Analysis.GradeBands {
			bands = append(bands, grading.Band{MinScore: b.MinScore, Letter: b.Letter})
		}
		c.Analysis.GradeBands = bands
	}
	if fc.Report.TopN != nil {
		c.Report.TopN = *fc.Report.TopN
	}
	if fc.Report.MaxAtRisk != nil {
		c.Report.MaxAtRisk = *fc.Report.MaxAtRisk
	}
	if fc.Report.OutputPath != nil {
		c.Report.OutputPath = *fc.Report.OutputPath
	}
	if fc.Log.Level != nil {
		c.Observability.LogLevel = *fc.Log.Level
	}

	return c.Validate()
}

// Grading converts the analysis section into the classifier config.
func (c *Config) Grading() grading.Config {
	return grading.Config{
		RiskThreshold:      c.Analysis.RiskThreshold,
		SubjectFloor:       c.Analysis.SubjectFloor,
		ImprovementEpsilon: c.Analysis.ImprovementEpsilon,
		Bands:              c.Analysis.GradeBands,
	}
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	var errs []string

	if err := c.Grading().Validate(); err != nil {
		errs = append(errs, err.Error())
	}
	if c.Report.TopN < 1 {
		errs = append(errs, "REPORT_TOP_N must be at least 1")
	}
	if c.Report.MaxAtRisk < 1 {
		errs = append(errs, "REPORT_MAX_AT_RISK must be at least 1")
	}

	if len(errs) > 0 {
		return shared.WrapError("config", "Validate", shared.ErrConfiguration,
			"invalid configuration", fmt.Errorf("%s", strings.Join(errs, "; ")))
	}

	return nil
}

// ParseBands parses a band table from its compact string form, e.g.
// "90:A,80:B,70:C,60:D,0:F".
func ParseBands(s string) ([]grading.Band, error) {
	parts := strings.Split(s, ",")
	bands := make([]grading.Band, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		minStr, letter, found := strings.Cut(p, ":")
		if !found || letter == "" {
			return nil, fmt.Errorf("band %q: want min:letter", p)
		}
		minScore, err := strconv.ParseFloat(strings.TrimSpace(minStr), 64)
		if err != nil {
			return nil, fmt.Errorf("band %q: %w", p, err)
		}
		bands = append(bands, grading.Band{MinScore: minScore, Letter: strings.TrimSpace(letter)})
	}
	if len(bands) == 0 {
		return nil, fmt.Errorf("no bands in %q", s)
	}
	return bands, nil
}

// --- Helper functions for environment variable parsing ---

func getEnv(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}

func getEnvBool(key string, defaultVal bool) bool {
	val := os.Getenv(key)
	if val == "" {
		return defaultVal
	}
	b, err := strconv.ParseBool(val)
	if err != nil {
		return defaultVal
	}
	return b
}

func getEnvInt(key string, defaultVal int) int {
	val := os.Getenv(key)
	if val == "" {
		return defaultVal
	}
	i, err := strconv.Atoi(val)
	if err != nil {
		return defaultVal
	}
	return i
}

func getEnvFloat(key string, defaultVal float64) float64 {
	val := os.Getenv(key)
	if val == "" {
		return defaultVal
	}
	f, err := strconv.ParseFloat(val, 64)
	if err != nil {
		return defaultVal
	}
	return f
}
