// Package grading derives letter grades, at-risk flags, and
// improvement/decline signals from student score aggregates.
//
// All cut points are configuration inputs rather than hardcoded
// literals, so the thresholds can be tuned without code change.
package grading

import (
	"fmt"
	"sort"

	"github.com/edupulse/performance-hub/internal/domain/shared"
)

// ══════════════════════════════════════════════════════════════════════════════
// GRADE BANDS
// ══════════════════════════════════════════════════════════════════════════════

// Band is one (minimum score, letter) pair of the grade threshold table.
// A score belongs to the highest band whose MinScore it reaches, so
// boundary values join the higher band.
type Band struct {
	MinScore float64
	Letter   string
}

// DefaultBands returns the standard threshold table:
// >=90 A, >=80 B, >=70 C, >=60 D, else F.
func DefaultBands() []Band {
	return []Band{
		{90, "A"},
		{80, "B"},
		{70, "C"},
		{60, "D"},
		{0, "F"},
	}
}

// ValidateBands checks that bands form a usable threshold table: at
// least one band, no minimum outside [0, 100], no duplicate minimums,
// and a band with MinScore 0 so the table covers the full score range.
func ValidateBands(bands []Band) error {
	if len(bands) == 0 {
		return shared.NewDomainError("grading", "ValidateBands", shared.ErrBandGap, "no grade bands configured")
	}

	seen := make(map[float64]bool, len(bands))
	coversZero := false
	for _, b := range bands {
		if b.MinScore < 0 || b.MinScore > 100 {
			return shared.NewDomainError("grading", "ValidateBands", shared.ErrThresholdRange,
				fmt.Sprintf("band %q minimum %.2f outside [0, 100]", b.Letter, b.MinScore))
		}
		if seen[b.MinScore] {
			return shared.NewDomainError("grading", "ValidateBands", shared.ErrBandGap,
				fmt.Sprintf("duplicate band minimum %.2f", b.MinScore))
		}
		seen[b.MinScore] = true
		if b.MinScore == 0 {
			coversZero = true
		}
	}
	if !coversZero {
		return shared.NewDomainError("grading", "ValidateBands", shared.ErrBandGap,
			"bands must include a minimum of 0 to cover the full score range")
	}
	return nil
}

// ══════════════════════════════════════════════════════════════════════════════
// TREND
// ══════════════════════════════════════════════════════════════════════════════

// Trend classifies the change between a student's two most recent
// semesters.
type Trend string

const (
	// TrendImproved - the latest overall average rose by more than the
	// improvement epsilon.
	TrendImproved Trend = "IMPROVED"
	// TrendDeclined - the latest overall average fell by more than the
	// improvement epsilon.
	TrendDeclined Trend = "DECLINED"
	// TrendStable - the change stayed within the epsilon.
	TrendStable Trend = "STABLE"
	// TrendInsufficientData - fewer than two distinct semesters exist.
	// Deliberately distinct from STABLE.
	TrendInsufficientData Trend = "INSUFFICIENT_DATA"
)

// String returns the trend label.
func (t Trend) String() string {
	return string(t)
}

// ══════════════════════════════════════════════════════════════════════════════
// CLASSIFIER
// ══════════════════════════════════════════════════════════════════════════════

// Config holds the classifier thresholds with their documented defaults.
type Config struct {
	// RiskThreshold flags a student whose overall average falls below it.
	// Default 40.0.
	RiskThreshold float64

	// SubjectFloor flags a student with any single subject average below
	// it, regardless of the overall average. Default 33.0.
	SubjectFloor float64

	// ImprovementEpsilon is the absolute delta beyond which a semester
	// change counts as improvement or decline. Default 5.0.
	ImprovementEpsilon float64

	// Bands is the grade threshold table, highest minimum first.
	Bands []Band
}

// DefaultConfig returns the documented default thresholds.
func DefaultConfig() Config {
	return Config{
		RiskThreshold:      40.0,
		SubjectFloor:       33.0,
		ImprovementEpsilon: 5.0,
		Bands:              DefaultBands(),
	}
}

// Validate checks the configuration against ConfigurationError rules.
func (c Config) Validate() error {
	if c.RiskThreshold < 0 || c.RiskThreshold > 100 {
		return shared.NewDomainError("grading", "Validate", shared.ErrThresholdRange,
			fmt.Sprintf("risk threshold %.2f outside [0, 100]", c.RiskThreshold))
	}
	if c.SubjectFloor < 0 || c.SubjectFloor > 100 {
		return shared.NewDomainError("grading", "Validate", shared.ErrThresholdRange,
			fmt.Sprintf("subject floor %.2f outside [0, 100]", c.SubjectFloor))
	}
	if c.ImprovementEpsilon < 0 {
		return shared.NewDomainError("grading", "Validate", shared.ErrThresholdRange,
			"improvement epsilon cannot be negative")
	}
	return ValidateBands(c.Bands)
}

// Classifier applies the configured threshold rules. It holds no mutable
// state and is safe for concurrent use.
type Classifier struct {
	cfg   Config
	bands []Band // sorted by MinScore descending
}

// NewClassifier creates a Classifier after validating the configuration.
func NewClassifier(cfg Config) (*Classifier, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	bands := make([]Band, len(cfg.Bands))
	copy(bands, cfg.Bands)
	sort.Slice(bands, func(i, j int) bool {
		return bands[i].MinScore > bands[j].MinScore
	})

	return &Classifier{cfg: cfg, bands: bands}, nil
}

// Grade returns the letter for an overall average. Boundary values join
// the higher band.
func (c *Classifier) Grade(average float64) string {
	for _, band := range c.bands {
		if average >= band.MinScore {
			return band.Letter
		}
	}
	// Unreachable with validated bands (a 0-minimum band always matches),
	// kept so an out-of-range negative average still classifies.
	return c.bands[len(c.bands)-1].Letter
}

// AtRisk reports whether a student is at risk: overall average below the
// risk threshold OR any subject average below the subject floor. The
// rule is a logical OR, so a student strong overall but failing one
// subject is still flagged.
func (c *Classifier) AtRisk(overallAverage float64, subjectAverages []float64) bool {
	if overallAverage < c.cfg.RiskThreshold {
		return true
	}
	for _, avg := range subjectAverages {
		if avg < c.cfg.SubjectFloor {
			return true
		}
	}
	return false
}

// ClassifyTrend compares the two most recent semester averages.
// semesterAverages must be ordered oldest to newest; fewer than two
// entries yields INSUFFICIENT_DATA and a zero delta.
func (c *Classifier) ClassifyTrend(semesterAverages []float64) (Trend, float64) {
	if len(semesterAverages) < 2 {
		return TrendInsufficientData, 0
	}

	latest := semesterAverages[len(semesterAverages)-1]
	previous := semesterAverages[len(semesterAverages)-2]
	delta := latest - previous

	switch {
	case delta > c.cfg.ImprovementEpsilon:
		return TrendImproved, delta
	case delta < -c.cfg.ImprovementEpsilon:
		return TrendDeclined, delta
	default:
		return TrendStable, delta
	}
}

// Letters returns the configured letters ordered from the highest band
// down. Presenters use it for stable distribution output.
func (c *Classifier) Letters() []string {
	letters := make([]string, 0, len(c.bands))
	for _, band := range c.bands {
		letters = append(letters, band.Letter)
	}
	return letters
}

// ══════════════════════════════════════════════════════════════════════════════
// GRADE DISTRIBUTION
// ══════════════════════════════════════════════════════════════════════════════

// GradeBucket holds the count and share of one letter grade.
type GradeBucket struct {
	Count      int
	Percentage float64
}

// GradeDistribution maps letter grade to its bucket. Percentages sum to
// ~100 whenever any grades were counted.
type GradeDistribution map[string]GradeBucket

// Distribution tallies letter grades into buckets. Letters that were
// configured but never earned still appear with a zero bucket.
func (c *Classifier) Distribution(grades []string) GradeDistribution {
	dist := make(GradeDistribution, len(c.bands))
	for _, letter := range c.Letters() {
		dist[letter] = GradeBucket{}
	}

	total := len(grades)
	if total == 0 {
		return dist
	}

	for _, g := range grades {
		bucket := dist[g]
		bucket.Count++
		dist[g] = bucket
	}
	for letter, bucket := range dist {
		bucket.Percentage = float64(bucket.Count) / float64(total) * 100
		dist[letter] = bucket
	}
	return dist
}

// SummarizeGrades derives grades from a stats summary per student and
// tallies them. Convenience used by the section analyzer.
func (c *Classifier) SummarizeGrades(averages []float64) GradeDistribution {
	grades := make([]string, 0, len(averages))
	for _, avg := range averages {
		grades = append(grades, c.Grade(avg))
	}
	return c.Distribution(grades)
}
