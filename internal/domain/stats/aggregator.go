package stats

import (
	"sort"

	"github.com/edupulse/performance-hub/internal/domain/record"
)

// Aggregator computes cohort-level descriptive statistics from a set of
// validated Records. It holds no state and is safe for concurrent use.
type Aggregator struct{}

// NewAggregator creates an Aggregator.
func NewAggregator() *Aggregator {
	return &Aggregator{}
}

// OverallStats describes the flattened set of all subject scores of all
// students: every subject-score value is one sample.
func (a *Aggregator) OverallStats(records []record.Record) Summary {
	return Describe(record.Flatten(records))
}

// SemesterStats describes each semester's subject-score values separately.
func (a *Aggregator) SemesterStats(records []record.Record) map[int]Summary {
	result := make(map[int]Summary)
	for semester, group := range record.GroupBySemester(records) {
		result[semester] = Describe(record.Flatten(group))
	}
	return result
}

// SubjectStats describes each subject's values across all students and
// semesters.
func (a *Aggregator) SubjectStats(records []record.Record) map[record.Subject]Summary {
	samples := make(map[record.Subject][]float64, len(record.Subjects()))
	for i := range records {
		for _, subject := range record.Subjects() {
			samples[subject] = append(samples[subject], records[i].Scores[subject])
		}
	}

	result := make(map[record.Subject]Summary, len(samples))
	for subject, values := range samples {
		result[subject] = Describe(values)
	}
	return result
}

// SubjectShift holds the cohort mean of one subject in the two most
// recent semesters and the change between them.
type SubjectShift struct {
	Subject  record.Subject
	Previous float64
	Latest   float64
	Delta    float64
}

// SemesterComparison compares the two most recent semesters of the cohort.
type SemesterComparison struct {
	// PreviousSemester and LatestSemester identify the compared semesters.
	PreviousSemester int
	LatestSemester   int

	// PreviousOverall and LatestOverall are cohort means over all
	// subject scores in each semester.
	PreviousOverall float64
	LatestOverall   float64

	// Delta is LatestOverall - PreviousOverall.
	Delta float64

	// Subjects holds the per-subject shift, in canonical subject order.
	Subjects []SubjectShift
}

// CompareSemesters builds the cohort comparison between the two most
// recent semesters. Returns ok=false when fewer than two distinct
// semesters are present.
func (a *Aggregator) CompareSemesters(records []record.Record) (SemesterComparison, bool) {
	semesters := record.Semesters(records)
	if len(semesters) < 2 {
		return SemesterComparison{}, false
	}

	latest := semesters[len(semesters)-1]
	previous := semesters[len(semesters)-2]

	bySemester := record.GroupBySemester(records)
	prevGroup := bySemester[previous]
	latestGroup := bySemester[latest]

	cmp := SemesterComparison{
		PreviousSemester: previous,
		LatestSemester:   latest,
		PreviousOverall:  Mean(record.Flatten(prevGroup)),
		LatestOverall:    Mean(record.Flatten(latestGroup)),
	}
	cmp.Delta = cmp.LatestOverall - cmp.PreviousOverall

	for _, subject := range record.Subjects() {
		shift := SubjectShift{
			Subject:  subject,
			Previous: subjectMean(prevGroup, subject),
			Latest:   subjectMean(latestGroup, subject),
		}
		shift.Delta = shift.Latest - shift.Previous
		cmp.Subjects = append(cmp.Subjects, shift)
	}

	return cmp, true
}

func subjectMean(records []record.Record, subject record.Subject) float64 {
	values := make([]float64, 0, len(records))
	for i := range records {
		values = append(values, records[i].Scores[subject])
	}
	return Mean(values)
}

// SortedSemesters returns the keys of a semester-stats map, ascending.
// Convenience for presenters that need a stable iteration order.
func SortedSemesters(m map[int]Summary) []int {
	semesters := make([]int, 0, len(m))
	for s := range m {
		semesters = append(semesters, s)
	}
	sort.Ints(semesters)
	return semesters
}
