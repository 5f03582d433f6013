package record

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/edupulse/performance-hub/internal/domain/shared"
)

func validRecord() Record {
	return Record{
		StudentID: "s1",
		Name:      "Aigerim",
		Section:   "A",
		Semester:  1,
		Scores: map[Subject]float64{
			SubjectMath:            80,
			SubjectPhysics:         70,
			SubjectChemistry:       60,
			SubjectEnglish:         90,
			SubjectComputerScience: 100,
		},
	}
}

func TestRecord_Validate(t *testing.T) {
	r := validRecord()
	assert.NoError(t, r.Validate())
}

func TestRecord_Validate_Failures(t *testing.T) {
	r := validRecord()
	r.StudentID = ""
	assert.ErrorIs(t, r.Validate(), shared.ErrMissingField)

	r = validRecord()
	r.Semester = 0
	assert.ErrorIs(t, r.Validate(), shared.ErrValueOutOfRange)

	r = validRecord()
	delete(r.Scores, SubjectPhysics)
	assert.ErrorIs(t, r.Validate(), shared.ErrMissingSubject)

	r = validRecord()
	r.Scores[SubjectMath] = 101
	assert.ErrorIs(t, r.Validate(), shared.ErrValueOutOfRange)

	r = validRecord()
	r.Scores[SubjectMath] = -0.5
	assert.ErrorIs(t, r.Validate(), shared.ErrValueOutOfRange)
}

func TestRecord_Average(t *testing.T) {
	r := validRecord()

	assert.InDelta(t, 80.0, r.Average(), 1e-9)
}

func TestRecord_Clone(t *testing.T) {
	r := validRecord()
	clone := r.Clone()

	clone.Scores[SubjectMath] = 0
	assert.Equal(t, 80.0, r.Scores[SubjectMath], "clone must not share the scores map")
}

func TestSubjects(t *testing.T) {
	subjects := Subjects()

	require.Len(t, subjects, 5)
	for _, s := range subjects {
		assert.True(t, s.IsValid())
	}
	assert.False(t, Subject("History").IsValid())
}

func TestGroupByStudent_SortsBySemester(t *testing.T) {
	r1 := validRecord()
	r1.Semester = 2
	r2 := validRecord()
	r2.Semester = 1

	grouped := GroupByStudent([]Record{r1, r2})

	require.Len(t, grouped, 1)
	require.Len(t, grouped["s1"], 2)
	assert.Equal(t, 1, grouped["s1"][0].Semester)
	assert.Equal(t, 2, grouped["s1"][1].Semester)
}

func TestGroupBySection(t *testing.T) {
	r1 := validRecord()
	r2 := validRecord()
	r2.StudentID = "s2"
	r2.Section = "B"

	grouped := GroupBySection([]Record{r1, r2})

	require.Len(t, grouped, 2)
	assert.Len(t, grouped["A"], 1)
	assert.Len(t, grouped["B"], 1)
}

func TestSemesters(t *testing.T) {
	r1 := validRecord()
	r1.Semester = 3
	r2 := validRecord()
	r2.Semester = 1
	r3 := validRecord()
	r3.Semester = 3

	assert.Equal(t, []int{1, 3}, Semesters([]Record{r1, r2, r3}))
}

func TestFlatten(t *testing.T) {
	r := validRecord()

	values := Flatten([]Record{r, r})

	assert.Len(t, values, 10)
	assert.Equal(t, 80.0, values[0], "canonical subject order starts with Math")
}
