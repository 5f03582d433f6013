package analyze

import (
	"sort"
	"time"

	"github.com/edupulse/performance-hub/internal/domain/grading"
	"github.com/edupulse/performance-hub/internal/domain/record"
	"github.com/edupulse/performance-hub/internal/domain/section"
	"github.com/edupulse/performance-hub/internal/domain/stats"
)

// StudentAggregate is the derived view of one student across all of
// that student's semesters.
type StudentAggregate struct {
	// StudentID identifies the student.
	StudentID string

	// Name is the display name from the latest record.
	Name string

	// Section is the section label from the latest record.
	Section string

	// Semesters is the number of distinct semester records observed.
	Semesters int

	// OverallAverage is the mean of all subject scores across all of
	// the student's semesters.
	OverallAverage float64

	// SubjectAverages maps subject to the student's mean in it.
	SubjectAverages map[record.Subject]float64

	// Grade is the letter derived from OverallAverage.
	Grade string

	// Rank is the 1-based position among all students, overall average
	// descending, ties broken by student ID ascending.
	Rank int

	// AtRisk is true when the overall average is below the risk
	// threshold or any subject average is below the subject floor.
	AtRisk bool

	// WeakestSubject is the subject with the lowest average.
	WeakestSubject record.Subject

	// WeakestScore is the average in the weakest subject.
	WeakestScore float64

	// Trend compares the two most recent semesters.
	Trend grading.Trend

	// TrendDelta is latest minus previous semester average; 0 when the
	// trend is INSUFFICIENT_DATA.
	TrendDelta float64
}

// TrendCounts tallies students per trend outcome.
type TrendCounts struct {
	Improved         int
	Declined         int
	Stable           int
	InsufficientData int
}

func (tc *TrendCounts) add(t grading.Trend) {
	switch t {
	case grading.TrendImproved:
		tc.Improved++
	case grading.TrendDeclined:
		tc.Declined++
	case grading.TrendStable:
		tc.Stable++
	default:
		tc.InsufficientData++
	}
}

// AnalysisResult is the immutable bundle returned by one Analyze call.
// It aggregates every derived metric; callers must not mutate it.
type AnalysisResult struct {
	// RunID uniquely identifies this analysis run for logging and the
	// report footer.
	RunID string

	// GeneratedAt is when the analysis ran.
	GeneratedAt time.Time

	// RecordCount and StudentCount size the analyzed dataset.
	RecordCount  int
	StudentCount int

	// OverallStats describes all subject scores of all students.
	OverallStats stats.Summary

	// SemesterStats describes each semester's scores.
	SemesterStats map[int]stats.Summary

	// SubjectStats describes each subject across all semesters.
	SubjectStats map[record.Subject]stats.Summary

	// SemesterComparison compares the two most recent semesters of the
	// cohort; nil when fewer than two semesters exist.
	SemesterComparison *stats.SemesterComparison

	// Sections holds the per-section reports.
	Sections map[string]section.Report

	// Students holds every aggregate in rank order.
	Students []*StudentAggregate

	// GradeDistribution tallies the students' letter grades.
	GradeDistribution grading.GradeDistribution

	// GradeLetters lists the configured letters from the highest band
	// down, for stable distribution output.
	GradeLetters []string

	// TrendCounts tallies trend outcomes across students.
	TrendCounts TrendCounts

	// AtRiskCount is the number of flagged students.
	AtRiskCount int
}

// TopN returns the n best-ranked students. n exceeding the population
// returns everyone.
func (r *AnalysisResult) TopN(n int) []*StudentAggregate {
	if n <= 0 {
		return nil
	}
	if n > len(r.Students) {
		n = len(r.Students)
	}
	return r.Students[:n]
}

// BottomN returns the n worst-ranked students, worst last. n exceeding
// the population returns everyone.
func (r *AnalysisResult) BottomN(n int) []*StudentAggregate {
	if n <= 0 {
		return nil
	}
	if n > len(r.Students) {
		n = len(r.Students)
	}
	return r.Students[len(r.Students)-n:]
}

// AtRisk returns the flagged students in rank order.
func (r *AnalysisResult) AtRisk() []*StudentAggregate {
	var flagged []*StudentAggregate
	for _, s := range r.Students {
		if s.AtRisk {
			flagged = append(flagged, s)
		}
	}
	return flagged
}

// orderByRank sorts aggregates by their assigned rank ascending.
func orderByRank(students []*StudentAggregate) {
	sort.Slice(students, func(i, j int) bool {
		return students[i].Rank < students[j].Rank
	})
}
