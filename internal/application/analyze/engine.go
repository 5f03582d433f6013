// Package analyze orchestrates the analysis pipeline: aggregation,
// classification, ranking, and section comparison over one validated
// dataset. A single Analyze call is a pure computation; the result is
// built fresh every time and never mutated afterwards.
package analyze

import (
	"time"

	"github.com/google/uuid"

	"github.com/edupulse/performance-hub/internal/domain/grading"
	"github.com/edupulse/performance-hub/internal/domain/ranking"
	"github.com/edupulse/performance-hub/internal/domain/record"
	"github.com/edupulse/performance-hub/internal/domain/section"
	"github.com/edupulse/performance-hub/internal/domain/shared"
	"github.com/edupulse/performance-hub/internal/domain/stats"
)

// Engine is the single entry point of the analysis pipeline. It is
// immutable after construction and safe for concurrent Analyze calls on
// disjoint inputs.
type Engine struct {
	aggregator *stats.Aggregator
	classifier *grading.Classifier
	sections   *section.Analyzer
}

// NewEngine creates an Engine, validating the grading configuration.
// Invalid thresholds or grade bands yield a configuration error.
func NewEngine(cfg grading.Config) (*Engine, error) {
	classifier, err := grading.NewClassifier(cfg)
	if err != nil {
		return nil, err
	}

	aggregator := stats.NewAggregator()
	return &Engine{
		aggregator: aggregator,
		classifier: classifier,
		sections:   section.NewAnalyzer(aggregator, classifier),
	}, nil
}

// Analyze runs the full pipeline over records. An empty dataset is the
// one input the Engine rejects itself: zero students is a business-rule
// failure, not a parsing failure, so it cannot be delegated to the
// Loader.
func (e *Engine) Analyze(records []record.Record) (*AnalysisResult, error) {
	if len(records) == 0 {
		return nil, shared.ErrNoRecords
	}

	students := e.aggregateStudents(records)

	standings, err := e.rank(students)
	if err != nil {
		return nil, shared.WrapError("engine", "Analyze", shared.ErrInvalidInput, "ranking failed", err)
	}
	for _, s := range students {
		s.Rank = int(standings.GetByID(s.StudentID).Rank)
	}
	orderByRank(students)

	grades := make([]string, 0, len(students))
	trendCounts := TrendCounts{}
	atRiskCount := 0
	for _, s := range students {
		grades = append(grades, s.Grade)
		trendCounts.add(s.Trend)
		if s.AtRisk {
			atRiskCount++
		}
	}

	result := &AnalysisResult{
		RunID:             uuid.NewString(),
		GeneratedAt:       time.Now().UTC(),
		RecordCount:       len(records),
		StudentCount:      len(students),
		OverallStats:      e.aggregator.OverallStats(records),
		SemesterStats:     e.aggregator.SemesterStats(records),
		SubjectStats:      e.aggregator.SubjectStats(records),
		Sections:          e.sections.Analyze(records),
		Students:          students,
		GradeDistribution: e.classifier.Distribution(grades),
		GradeLetters:      e.classifier.Letters(),
		TrendCounts:       trendCounts,
		AtRiskCount:       atRiskCount,
	}

	if cmp, ok := e.aggregator.CompareSemesters(records); ok {
		result.SemesterComparison = &cmp
	}

	return result, nil
}

// aggregateStudents derives one StudentAggregate per student across all
// of that student's semesters.
func (e *Engine) aggregateStudents(records []record.Record) []*StudentAggregate {
	byStudent := record.GroupByStudent(records)

	students := make([]*StudentAggregate, 0, len(byStudent))
	for studentID, studentRecords := range byStudent {
		students = append(students, e.aggregateStudent(studentID, studentRecords))
	}
	return students
}

// aggregateStudent builds the aggregate for one student. studentRecords
// are sorted by semester ascending.
func (e *Engine) aggregateStudent(studentID string, studentRecords []record.Record) *StudentAggregate {
	latest := studentRecords[len(studentRecords)-1]

	overall := stats.Mean(record.Flatten(studentRecords))

	subjectAverages := make(map[record.Subject]float64, len(record.Subjects()))
	subjectValues := make([]float64, 0, len(record.Subjects()))
	weakestSubject := record.Subject("")
	weakestScore := 0.0
	for _, subject := range record.Subjects() {
		values := make([]float64, 0, len(studentRecords))
		for i := range studentRecords {
			values = append(values, studentRecords[i].Scores[subject])
		}
		avg := stats.Mean(values)
		subjectAverages[subject] = avg
		subjectValues = append(subjectValues, avg)
		if weakestSubject == "" || avg < weakestScore {
			weakestSubject = subject
			weakestScore = avg
		}
	}

	trend, delta := e.classifier.ClassifyTrend(semesterAverages(studentRecords))

	return &StudentAggregate{
		StudentID:       studentID,
		Name:            latest.Name,
		Section:         latest.Section,
		Semesters:       len(studentRecords),
		OverallAverage:  overall,
		SubjectAverages: subjectAverages,
		Grade:           e.classifier.Grade(overall),
		AtRisk:          e.classifier.AtRisk(overall, subjectValues),
		WeakestSubject:  weakestSubject,
		WeakestScore:    weakestScore,
		Trend:           trend,
		TrendDelta:      delta,
	}
}

// semesterAverages returns per-semester overall averages, oldest first.
// Records sharing a semester are pooled before averaging.
func semesterAverages(studentRecords []record.Record) []float64 {
	bySemester := record.GroupBySemester(studentRecords)
	semesters := record.Semesters(studentRecords)

	averages := make([]float64, 0, len(semesters))
	for _, s := range semesters {
		averages = append(averages, stats.Mean(record.Flatten(bySemester[s])))
	}
	return averages
}

func (e *Engine) rank(students []*StudentAggregate) (*ranking.Standings, error) {
	entries := make([]ranking.Entry, 0, len(students))
	for _, s := range students {
		entries = append(entries, ranking.Entry{
			StudentID:   s.StudentID,
			DisplayName: s.Name,
			Average:     s.OverallAverage,
		})
	}
	return ranking.Build(entries)
}
