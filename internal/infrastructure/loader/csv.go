// Package loader reads score datasets from CSV and yields validated
// Records. Validation happens once here, at the boundary: a dataset
// that loads successfully can be handed to the analysis engine without
// further checking.
//
// Expected layout, one row per student-semester:
//
//	student_id,name,section,semester,math,physics,chemistry,english,computer_science
//
// Header names are matched case-insensitively with spaces and
// underscores interchangeable, so "Computer Science" works too.
package loader

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/edupulse/performance-hub/internal/domain/record"
	"github.com/edupulse/performance-hub/internal/domain/shared"
)

// Required non-subject columns.
const (
	colStudentID = "student_id"
	colName      = "name"
	colSection   = "section"
	colSemester  = "semester"
)

// Loader parses CSV datasets into validated Records.
type Loader struct{}

// NewLoader creates a Loader.
func NewLoader() *Loader {
	return &Loader{}
}

// LoadFile opens path and loads it. See Load.
func (l *Loader) LoadFile(path string) ([]record.Record, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, shared.WrapError("loader", "LoadFile", shared.ErrInvalidInput, "cannot open dataset", err)
	}
	defer f.Close()

	return l.Load(f)
}

// Load reads the full CSV stream and returns Records in file order.
// The first malformed row fails the whole load with a ValidationError
// carrying the 1-based data row index and the offending field.
func (l *Loader) Load(r io.Reader) ([]record.Record, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err != nil {
		return nil, shared.WrapError("loader", "Load", shared.ErrInvalidFormat, "cannot read CSV header", err)
	}

	columns, err := mapColumns(header)
	if err != nil {
		return nil, err
	}

	var records []record.Record
	row := 0
	for {
		fields, err := reader.Read()
		if err == io.EOF {
			break
		}
		row++
		if err != nil {
			return nil, shared.NewValidationError(row, "", shared.ErrInvalidFormat, err.Error())
		}

		rec, err := l.parseRow(row, fields, columns)
		if err != nil {
			return nil, err
		}
		records = append(records, *rec)
	}

	return records, nil
}

// columnMap maps logical columns to their index in the header.
type columnMap struct {
	studentID int
	name      int
	section   int
	semester  int
	subjects  map[record.Subject]int
}

func mapColumns(header []string) (*columnMap, error) {
	index := make(map[string]int, len(header))
	for i, h := range header {
		index[normalize(h)] = i
	}

	cols := &columnMap{subjects: make(map[record.Subject]int, len(record.Subjects()))}

	required := map[string]*int{
		colStudentID: &cols.studentID,
		colName:      &cols.name,
		colSection:   &cols.section,
		colSemester:  &cols.semester,
	}
	for name, target := range required {
		i, ok := index[name]
		if !ok {
			return nil, shared.NewDomainError("loader", "Load", shared.ErrMissingField,
				fmt.Sprintf("header is missing column %q", name))
		}
		*target = i
	}

	for _, subject := range record.Subjects() {
		i, ok := index[normalize(subject.String())]
		if !ok {
			return nil, shared.NewDomainError("loader", "Load", shared.ErrMissingSubject,
				fmt.Sprintf("header is missing subject column %q", subject))
		}
		cols.subjects[subject] = i
	}

	return cols, nil
}

func (l *Loader) parseRow(row int, fields []string, cols *columnMap) (*record.Record, error) {
	get := func(i int) string {
		if i >= len(fields) {
			return ""
		}
		return strings.TrimSpace(fields[i])
	}

	studentID := get(cols.studentID)
	if studentID == "" {
		return nil, shared.NewValidationError(row, colStudentID, shared.ErrMissingField, "student ID cannot be empty")
	}

	semesterRaw := get(cols.semester)
	semester, err := strconv.Atoi(semesterRaw)
	if err != nil {
		return nil, shared.NewValidationError(row, colSemester, shared.ErrInvalidFormat,
			fmt.Sprintf("semester %q is not an integer", semesterRaw))
	}
	if semester < 1 {
		return nil, shared.NewValidationError(row, colSemester, shared.ErrValueOutOfRange,
			fmt.Sprintf("semester %d must be positive", semester))
	}

	rec := &record.Record{
		StudentID: studentID,
		Name:      get(cols.name),
		Section:   get(cols.section),
		Semester:  semester,
		Scores:    make(map[record.Subject]float64, len(record.Subjects())),
	}

	for _, subject := range record.Subjects() {
		raw := get(cols.subjects[subject])
		if raw == "" {
			return nil, shared.NewValidationError(row, subject.String(), shared.ErrMissingSubject, "score is missing")
		}
		score, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return nil, shared.NewValidationError(row, subject.String(), shared.ErrInvalidFormat,
				fmt.Sprintf("score %q is not numeric", raw))
		}
		if score < record.MinScore || score > record.MaxScore {
			return nil, shared.NewValidationError(row, subject.String(), shared.ErrValueOutOfRange,
				fmt.Sprintf("score %.2f outside [%.0f, %.0f]", score, record.MinScore, record.MaxScore))
		}
		rec.Scores[subject] = score
	}

	// Record.Validate is a no-op after the field checks above, run as a
	// final guard so the invariant lives in one place.
	if err := rec.Validate(); err != nil {
		return nil, shared.NewValidationError(row, "", shared.ErrValidation, err.Error())
	}

	return rec, nil
}

// normalize lowercases a header name and folds spaces to underscores.
func normalize(name string) string {
	name = strings.ToLower(strings.TrimSpace(name))
	return strings.ReplaceAll(name, " ", "_")
}
