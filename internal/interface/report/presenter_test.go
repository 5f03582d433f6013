package report

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/edupulse/performance-hub/internal/application/analyze"
	"github.com/edupulse/performance-hub/internal/domain/grading"
	"github.com/edupulse/performance-hub/internal/domain/record"
)

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

func analyzed(t *testing.T, records []record.Record) *analyze.AnalysisResult {
	t.Helper()
	engine, err := analyze.NewEngine(grading.DefaultConfig())
	require.NoError(t, err)
	result, err := engine.Analyze(records)
	require.NoError(t, err)
	return result
}

func TestPresenter_Render_Sections(t *testing.T) {
	result := analyzed(t, []record.Record{
		makeRecord("s1", "A", 1, 92),
		makeRecord("s1", "A", 2, 95),
		makeRecord("s2", "A", 1, 71),
		makeRecord("s2", "A", 2, 60),
		makeRecord("s3", "B", 1, 30),
		makeRecord("s3", "B", 2, 35),
	})

	out := NewPresenter(DefaultOptions()).Render(result)

	for _, want := range []string{
		"STUDENT PERFORMANCE ANALYSIS REPORT",
		"OVERALL STATISTICS",
		"SEMESTER COMPARISON",
		"SUBJECT-WISE PERFORMANCE",
		"GRADE DISTRIBUTION",
		"AT-RISK STUDENTS",
		"TOP 10 STUDENTS",
		"SECTION-WISE ANALYSIS",
		"KEY INSIGHTS",
	} {
		assert.Contains(t, out, want)
	}

	assert.Contains(t, out, result.RunID, "footer carries the run ID")
	assert.Contains(t, out, "Total At-Risk Students: 1")
	assert.Contains(t, out, "s3", "the at-risk student appears in the table")
	assert.Contains(t, out, "Overall Change (S1→S2):")
}

func TestPresenter_Render_SingleSemester(t *testing.T) {
	result := analyzed(t, []record.Record{
		makeRecord("s1", "A", 1, 80),
		makeRecord("s2", "A", 1, 60),
	})

	out := NewPresenter(DefaultOptions()).Render(result)

	assert.Contains(t, out, "no comparison available")
	assert.NotContains(t, out, "Overall Change")
	// Without a comparison the subject table falls back to plain stats.
	assert.Contains(t, out, "StdDev")
}

func TestPresenter_Render_TopNHeading(t *testing.T) {
	result := analyzed(t, []record.Record{
		makeRecord("s1", "A", 1, 80),
		makeRecord("s2", "A", 1, 60),
		makeRecord("s3", "A", 1, 70),
	})

	out := NewPresenter(Options{TopN: 2, MaxAtRisk: 5}).Render(result)

	assert.Contains(t, out, "TOP 2 STUDENTS")
	assert.Contains(t, out, "s1")
	lines := strings.Split(out, "\n")
	for _, line := range lines {
		if strings.HasPrefix(line, "3 ") {
			t.Fatalf("rank 3 should be cut off, got line %q", line)
		}
	}
}

func TestPresenter_Render_AtRiskCap(t *testing.T) {
	records := []record.Record{
		makeRecord("s1", "A", 1, 10),
		makeRecord("s2", "A", 1, 12),
		makeRecord("s3", "A", 1, 14),
	}
	out := NewPresenter(Options{TopN: 10, MaxAtRisk: 2}).Render(analyzed(t, records))

	assert.Contains(t, out, "Total At-Risk Students: 3")
	assert.Contains(t, out, "... and 1 more")
}

func TestPresenter_Save(t *testing.T) {
	result := analyzed(t, []record.Record{makeRecord("s1", "A", 1, 80)})
	path := filepath.Join(t.TempDir(), "report.txt")

	p := NewPresenter(DefaultOptions())
	require.NoError(t, p.Save(result, path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, p.Render(result), string(data))
}

func TestPresenter_Save_BadPath(t *testing.T) {
	result := analyzed(t, []record.Record{makeRecord("s1", "A", 1, 80)})

	err := NewPresenter(DefaultOptions()).Save(result, filepath.Join(t.TempDir(), "missing", "report.txt"))
	assert.Error(t, err)
}
