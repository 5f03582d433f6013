// Package report formats analysis results for display. Presenters
// convert the engine's result bundle into a console report; they never
// see a failed analysis, the caller short-circuits on error.
package report

import (
	"fmt"
	"os"
	"strings"

	"github.com/edupulse/performance-hub/internal/application/analyze"
	"github.com/edupulse/performance-hub/internal/domain/record"
	"github.com/edupulse/performance-hub/internal/domain/section"
	"github.com/edupulse/performance-hub/internal/domain/shared"
	"github.com/edupulse/performance-hub/internal/domain/stats"
)

const reportWidth = 70

// Options configures the rendered report.
type Options struct {
	// TopN is how many standings entries to show. Default 10.
	TopN int

	// MaxAtRisk caps the at-risk table. Default 10.
	MaxAtRisk int
}

// DefaultOptions returns the defaults used by the CLI.
func DefaultOptions() Options {
	return Options{TopN: 10, MaxAtRisk: 10}
}

// Presenter renders AnalysisResult into a formatted text report.
type Presenter struct {
	opts Options
}

// NewPresenter creates a Presenter.
func NewPresenter(opts Options) *Presenter {
	if opts.TopN <= 0 {
		opts.TopN = 10
	}
	if opts.MaxAtRisk <= 0 {
		opts.MaxAtRisk = 10
	}
	return &Presenter{opts: opts}
}

// Render produces the full console report.
func (p *Presenter) Render(result *analyze.AnalysisResult) string {
	var sb strings.Builder

	sb.WriteString(rule("="))
	sb.WriteString(center("STUDENT PERFORMANCE ANALYSIS REPORT"))
	sb.WriteString(rule("="))

	p.writeOverall(&sb, result)
	p.writeSemesterComparison(&sb, result)
	p.writeSubjects(&sb, result)
	p.writeGradeDistribution(&sb, result)
	p.writeAtRisk(&sb, result)
	p.writeStandings(&sb, result)
	p.writeSections(&sb, result)
	p.writeInsights(&sb, result)

	sb.WriteString("\n")
	sb.WriteString(rule("="))
	sb.WriteString(fmt.Sprintf("run %s · generated %s\n",
		result.RunID, result.GeneratedAt.Format("2006-01-02 15:04:05 UTC")))

	return sb.String()
}

// Save writes the rendered report to path.
func (p *Presenter) Save(result *analyze.AnalysisResult, path string) error {
	if err := os.WriteFile(path, []byte(p.Render(result)), 0o644); err != nil {
		return shared.WrapError("report", "Save", shared.ErrInvalidInput, "cannot write report", err)
	}
	return nil
}

func (p *Presenter) writeOverall(sb *strings.Builder, result *analyze.AnalysisResult) {
	heading(sb, "OVERALL STATISTICS")
	s := result.OverallStats
	fmt.Fprintf(sb, "Students:             %d\n", result.StudentCount)
	fmt.Fprintf(sb, "Score Samples:        %d\n", s.Count)
	fmt.Fprintf(sb, "Average Score:        %.2f\n", s.Mean)
	fmt.Fprintf(sb, "Median Score:         %.2f\n", s.Median)
	fmt.Fprintf(sb, "Standard Deviation:   %.2f\n", s.StdDev)
	fmt.Fprintf(sb, "Highest Score:        %.2f\n", s.Max)
	fmt.Fprintf(sb, "Lowest Score:         %.2f\n", s.Min)
}

func (p *Presenter) writeSemesterComparison(sb *strings.Builder, result *analyze.AnalysisResult) {
	heading(sb, "SEMESTER COMPARISON")

	for _, semester := range stats.SortedSemesters(result.SemesterStats) {
		s := result.SemesterStats[semester]
		fmt.Fprintf(sb, "Semester %-2d Average:  %.2f  (median %.2f, stddev %.2f)\n",
			semester, s.Mean, s.Median, s.StdDev)
	}

	cmp := result.SemesterComparison
	if cmp == nil {
		sb.WriteString("Only one semester on record; no comparison available.\n")
		return
	}
	fmt.Fprintf(sb, "Overall Change (S%d→S%d): %+.2f\n",
		cmp.PreviousSemester, cmp.LatestSemester, cmp.Delta)
}

func (p *Presenter) writeSubjects(sb *strings.Builder, result *analyze.AnalysisResult) {
	heading(sb, "SUBJECT-WISE PERFORMANCE")

	cmp := result.SemesterComparison
	if cmp != nil {
		fmt.Fprintf(sb, "%-20s %10s %10s %10s\n", "Subject",
			fmt.Sprintf("Sem %d", cmp.PreviousSemester),
			fmt.Sprintf("Sem %d", cmp.LatestSemester), "Change")
		sb.WriteString(rule("-"))
		for _, shift := range cmp.Subjects {
			fmt.Fprintf(sb, "%-20s %10.1f %10.1f %+10.1f\n",
				shift.Subject, shift.Previous, shift.Latest, shift.Delta)
		}
		return
	}

	fmt.Fprintf(sb, "%-20s %10s %10s %10s\n", "Subject", "Average", "Median", "StdDev")
	sb.WriteString(rule("-"))
	for _, subject := range record.Subjects() {
		s := result.SubjectStats[subject]
		fmt.Fprintf(sb, "%-20s %10.1f %10.1f %10.1f\n", subject, s.Mean, s.Median, s.StdDev)
	}
}

func (p *Presenter) writeGradeDistribution(sb *strings.Builder, result *analyze.AnalysisResult) {
	heading(sb, "GRADE DISTRIBUTION")
	fmt.Fprintf(sb, "%-10s %15s %15s\n", "Grade", "Count", "Percentage")
	sb.WriteString(rule("-"))
	for _, letter := range result.GradeLetters {
		bucket := result.GradeDistribution[letter]
		fmt.Fprintf(sb, "%-10s %15d %14.1f%%\n", letter, bucket.Count, bucket.Percentage)
	}
}

func (p *Presenter) writeAtRisk(sb *strings.Builder, result *analyze.AnalysisResult) {
	heading(sb, "AT-RISK STUDENTS")
	flagged := result.AtRisk()
	fmt.Fprintf(sb, "Total At-Risk Students: %d\n", len(flagged))
	if len(flagged) == 0 {
		return
	}

	fmt.Fprintf(sb, "\n%-10s %10s %20s %10s\n", "ID", "Average", "Weakest Subject", "Score")
	sb.WriteString(rule("-"))
	for i, s := range flagged {
		if i >= p.opts.MaxAtRisk {
			fmt.Fprintf(sb, "... and %d more\n", len(flagged)-i)
			break
		}
		fmt.Fprintf(sb, "%-10s %10.1f %20s %10.1f\n",
			s.StudentID, s.OverallAverage, s.WeakestSubject, s.WeakestScore)
	}
}

func (p *Presenter) writeStandings(sb *strings.Builder, result *analyze.AnalysisResult) {
	heading(sb, fmt.Sprintf("TOP %d STUDENTS", p.opts.TopN))
	fmt.Fprintf(sb, "%-10s %-15s %-20s %15s\n", "Rank", "ID", "Name", "Average")
	sb.WriteString(rule("-"))
	for _, s := range result.TopN(p.opts.TopN) {
		fmt.Fprintf(sb, "%-10d %-15s %-20s %15.2f\n", s.Rank, s.StudentID, s.Name, s.OverallAverage)
	}
}

func (p *Presenter) writeSections(sb *strings.Builder, result *analyze.AnalysisResult) {
	heading(sb, "SECTION-WISE ANALYSIS")
	fmt.Fprintf(sb, "%-10s %10s %12s %12s %12s\n", "Section", "Students", "Average", "Std Dev", "Median")
	sb.WriteString(rule("-"))
	for _, label := range section.SortedSections(result.Sections) {
		rep := result.Sections[label]
		fmt.Fprintf(sb, "%-10s %10d %12.2f %12.2f %12.2f\n",
			label, rep.StudentCount, rep.Stats.Mean, rep.Stats.StdDev, rep.Stats.Median)
	}
}

func (p *Presenter) writeInsights(sb *strings.Builder, result *analyze.AnalysisResult) {
	heading(sb, "KEY INSIGHTS")
	tc := result.TrendCounts
	fmt.Fprintf(sb, "- %d students improved significantly\n", tc.Improved)
	fmt.Fprintf(sb, "- %d students declined significantly\n", tc.Declined)
	fmt.Fprintf(sb, "- %d students need additional support\n", result.AtRiskCount)
	if tc.InsufficientData > 0 {
		fmt.Fprintf(sb, "- %d students have too little history for a trend\n", tc.InsufficientData)
	}
}

func rule(ch string) string {
	return strings.Repeat(ch, reportWidth) + "\n"
}

func center(text string) string {
	pad := (reportWidth - len(text)) / 2
	if pad < 0 {
		pad = 0
	}
	return strings.Repeat(" ", pad) + text + "\n"
}

// heading writes a section heading.
func heading(sb *strings.Builder, title string) {
	sb.WriteString("\n")
	sb.WriteString(center(title))
	sb.WriteString(rule("-"))
}
