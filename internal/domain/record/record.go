// Package record contains the canonical in-memory representation of one
// student's scores for one semester, plus grouping helpers over a loaded
// dataset. Records are validated once at the boundary (the Loader), so
// downstream analysis code may assume well-formed input.
package record

import (
	"fmt"
	"sort"

	"github.com/edupulse/performance-hub/internal/domain/shared"
)

// Subject identifies one of the recognized subjects.
type Subject string

// The fixed set of recognized subjects. Every Record must carry a score
// for each of them.
const (
	SubjectMath            Subject = "Math"
	SubjectPhysics         Subject = "Physics"
	SubjectChemistry       Subject = "Chemistry"
	SubjectEnglish         Subject = "English"
	SubjectComputerScience Subject = "Computer Science"
)

// Subjects returns all recognized subjects in canonical order.
func Subjects() []Subject {
	return []Subject{
		SubjectMath,
		SubjectPhysics,
		SubjectChemistry,
		SubjectEnglish,
		SubjectComputerScience,
	}
}

// IsValid reports whether s is a recognized subject.
func (s Subject) IsValid() bool {
	switch s {
	case SubjectMath, SubjectPhysics, SubjectChemistry, SubjectEnglish, SubjectComputerScience:
		return true
	}
	return false
}

// String returns the display name of the subject.
func (s Subject) String() string {
	return string(s)
}

// Score bounds for a single subject score.
const (
	MinScore = 0.0
	MaxScore = 100.0
)

// Record is one student's per-subject scores for one semester.
type Record struct {
	// StudentID is an opaque identifier, stable across semesters.
	StudentID string

	// Name is the display name. Non-authoritative.
	Name string

	// Section is a categorical label ("A", "B", ...) used only for grouping.
	Section string

	// Semester is an ordinal identifier defining temporal ordering.
	Semester int

	// Scores maps each recognized subject to a score in [0, 100].
	Scores map[Subject]float64
}

// Validate checks the Record invariants: non-empty student ID, positive
// semester, and a score in range for every recognized subject.
func (r *Record) Validate() error {
	if r.StudentID == "" {
		return shared.NewDomainError("record", "Validate", shared.ErrMissingField, "student ID cannot be empty")
	}
	if r.Semester < 1 {
		return shared.NewDomainError("record", "Validate", shared.ErrValueOutOfRange, "semester must be positive")
	}
	for _, subject := range Subjects() {
		score, ok := r.Scores[subject]
		if !ok {
			return shared.NewDomainError("record", "Validate", shared.ErrMissingSubject,
				fmt.Sprintf("missing score for %s", subject))
		}
		if score < MinScore || score > MaxScore {
			return shared.NewDomainError("record", "Validate", shared.ErrValueOutOfRange,
				fmt.Sprintf("%s score %.2f outside [%.0f, %.0f]", subject, score, MinScore, MaxScore))
		}
	}
	return nil
}

// Average returns the mean of the record's subject scores.
func (r *Record) Average() float64 {
	if len(r.Scores) == 0 {
		return 0
	}
	var total float64
	for _, subject := range Subjects() {
		total += r.Scores[subject]
	}
	return total / float64(len(Subjects()))
}

// Values returns the record's scores in canonical subject order.
func (r *Record) Values() []float64 {
	values := make([]float64, 0, len(Subjects()))
	for _, subject := range Subjects() {
		values = append(values, r.Scores[subject])
	}
	return values
}

// Clone returns a deep copy of the record.
func (r *Record) Clone() *Record {
	if r == nil {
		return nil
	}
	clone := *r
	clone.Scores = make(map[Subject]float64, len(r.Scores))
	for subject, score := range r.Scores {
		clone.Scores[subject] = score
	}
	return &clone
}

// ══════════════════════════════════════════════════════════════════════════════
// DATASET GROUPING
// ══════════════════════════════════════════════════════════════════════════════

// GroupByStudent groups records by student ID. Each student's records are
// sorted by semester ascending so the latest semester is last.
func GroupByStudent(records []Record) map[string][]Record {
	grouped := make(map[string][]Record)
	for _, r := range records {
		grouped[r.StudentID] = append(grouped[r.StudentID], r)
	}
	for id := range grouped {
		rs := grouped[id]
		sort.SliceStable(rs, func(i, j int) bool {
			return rs[i].Semester < rs[j].Semester
		})
	}
	return grouped
}

// GroupBySemester groups records by semester.
func GroupBySemester(records []Record) map[int][]Record {
	grouped := make(map[int][]Record)
	for _, r := range records {
		grouped[r.Semester] = append(grouped[r.Semester], r)
	}
	return grouped
}

// GroupBySection groups records by section label.
func GroupBySection(records []Record) map[string][]Record {
	grouped := make(map[string][]Record)
	for _, r := range records {
		grouped[r.Section] = append(grouped[r.Section], r)
	}
	return grouped
}

// Semesters returns the distinct semesters present in records, ascending.
func Semesters(records []Record) []int {
	seen := make(map[int]bool)
	var semesters []int
	for _, r := range records {
		if !seen[r.Semester] {
			seen[r.Semester] = true
			semesters = append(semesters, r.Semester)
		}
	}
	sort.Ints(semesters)
	return semesters
}

// Flatten returns every subject score of every record as one flat sample
// slice, in record order and canonical subject order.
func Flatten(records []Record) []float64 {
	values := make([]float64, 0, len(records)*len(Subjects()))
	for i := range records {
		values = append(values, records[i].Values()...)
	}
	return values
}
