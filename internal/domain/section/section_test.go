package section

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/edupulse/performance-hub/internal/domain/grading"
	"github.com/edupulse/performance-hub/internal/domain/record"
	"github.com/edupulse/performance-hub/internal/domain/stats"
)

func newAnalyzer(t *testing.T) *Analyzer {
	t.Helper()
	classifier, err := grading.NewClassifier(grading.DefaultConfig())
	require.NoError(t, err)
	return NewAnalyzer(stats.NewAggregator(), classifier)
}

func makeRecord(id, section string, semester int, score float64) record.Record {
	scores := make(map[record.Subject]float64, 5)
	for _, subject := range record.Subjects() {
		scores[subject] = score
	}
	return record.Record{
		StudentID: id,
		Name:      "Student " + id,
		Section:   section,
		Semester:  semester,
		Scores:    scores,
	}
}

func TestAnalyzer_GroupsBySection(t *testing.T) {
	analyzer := newAnalyzer(t)

	reports := analyzer.Analyze([]record.Record{
		makeRecord("s1", "A", 1, 90),
		makeRecord("s2", "A", 1, 70),
		makeRecord("s3", "B", 1, 50),
	})

	require.Len(t, reports, 2)

	a := reports["A"]
	assert.Equal(t, "A", a.Section)
	assert.Equal(t, 2, a.StudentCount)
	assert.InDelta(t, 80.0, a.Stats.Mean, 1e-9)
	assert.Equal(t, 1, a.Grades["A"].Count)
	assert.Equal(t, 1, a.Grades["C"].Count)

	b := reports["B"]
	assert.Equal(t, 1, b.StudentCount)
	assert.InDelta(t, 50.0, b.Stats.Mean, 1e-9)
}

func TestAnalyzer_SingleStudentSectionHasValidStats(t *testing.T) {
	analyzer := newAnalyzer(t)

	reports := analyzer.Analyze([]record.Record{
		makeRecord("s1", "C", 1, 65),
	})

	rep := reports["C"]
	assert.Equal(t, 1, rep.StudentCount)
	assert.Equal(t, 65.0, rep.Stats.Mean)
	assert.Equal(t, 0.0, rep.Stats.StdDev, "no NaN for a one-student section")
	assert.False(t, rep.Stats.IsEmpty())
}

func TestAnalyzer_CountsDistinctStudentsAcrossSemesters(t *testing.T) {
	analyzer := newAnalyzer(t)

	reports := analyzer.Analyze([]record.Record{
		makeRecord("s1", "A", 1, 60),
		makeRecord("s1", "A", 2, 80),
	})

	rep := reports["A"]
	assert.Equal(t, 1, rep.StudentCount, "two semesters of one student are one student")
	assert.Equal(t, 10, rep.Stats.Count, "but all scores count as samples")
	// The student's overall average (70) grades as C.
	assert.Equal(t, 1, rep.Grades["C"].Count)
}

func TestAnalyzer_PerSubjectStats(t *testing.T) {
	analyzer := newAnalyzer(t)

	r := makeRecord("s1", "A", 1, 50)
	r.Scores[record.SubjectMath] = 100

	reports := analyzer.Analyze([]record.Record{r})

	rep := reports["A"]
	assert.Equal(t, 100.0, rep.SubjectStats[record.SubjectMath].Mean)
	assert.Equal(t, 50.0, rep.SubjectStats[record.SubjectEnglish].Mean)
}

func TestSortedSections(t *testing.T) {
	reports := map[string]Report{"B": {}, "A": {}, "C": {}}

	assert.Equal(t, []string{"A", "B", "C"}, SortedSections(reports))
}
