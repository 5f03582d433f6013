// Package section compares performance across sections. Each section is
// analyzed independently with the same aggregation and grading logic as
// the full cohort, scoped to the section's records.
package section

import (
	"sort"

	"github.com/edupulse/performance-hub/internal/domain/grading"
	"github.com/edupulse/performance-hub/internal/domain/record"
	"github.com/edupulse/performance-hub/internal/domain/stats"
)

// Report holds the derived metrics of one section.
type Report struct {
	// Section is the group label.
	Section string

	// StudentCount is the number of distinct students in the section.
	StudentCount int

	// Stats describes all subject scores of the section.
	Stats stats.Summary

	// SubjectStats describes each subject within the section.
	SubjectStats map[record.Subject]stats.Summary

	// Grades is the letter-grade distribution of the section's students.
	Grades grading.GradeDistribution
}

// Analyzer groups records by section and derives per-group metrics.
type Analyzer struct {
	aggregator *stats.Aggregator
	classifier *grading.Classifier
}

// NewAnalyzer creates an Analyzer reusing the engine's aggregator and
// classifier.
func NewAnalyzer(aggregator *stats.Aggregator, classifier *grading.Classifier) *Analyzer {
	return &Analyzer{
		aggregator: aggregator,
		classifier: classifier,
	}
}

// Analyze returns a report per observed section. Sections cannot be
// empty (they are derived from the data), and a single-student section
// still yields valid statistics per the N<=1 stddev rule.
func (a *Analyzer) Analyze(records []record.Record) map[string]Report {
	reports := make(map[string]Report)

	for label, group := range record.GroupBySection(records) {
		byStudent := record.GroupByStudent(group)

		averages := make([]float64, 0, len(byStudent))
		for _, studentRecords := range byStudent {
			averages = append(averages, stats.Mean(record.Flatten(studentRecords)))
		}
		// Map iteration order is random; the distribution is order
		// independent but sorting keeps float accumulation reproducible.
		sort.Float64s(averages)

		reports[label] = Report{
			Section:      label,
			StudentCount: len(byStudent),
			Stats:        a.aggregator.OverallStats(group),
			SubjectStats: a.aggregator.SubjectStats(group),
			Grades:       a.classifier.SummarizeGrades(averages),
		}
	}

	return reports
}

// SortedSections returns report keys in ascending order for stable output.
func SortedSections(reports map[string]Report) []string {
	sections := make([]string, 0, len(reports))
	for s := range reports {
		sections = append(sections, s)
	}
	sort.Strings(sections)
	return sections
}
