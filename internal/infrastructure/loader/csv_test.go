package loader

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/edupulse/performance-hub/internal/domain/record"
	"github.com/edupulse/performance-hub/internal/domain/shared"
)

const header = "student_id,name,section,semester,math,physics,chemistry,english,computer_science\n"

func TestLoader_Load(t *testing.T) {
	csv := header +
		"s1,Aigerim,A,1,80,70,60,90,100\n" +
		"s2,Bekzat,B,1,55.5,60,45,70,65\n"

	records, err := NewLoader().Load(strings.NewReader(csv))
	require.NoError(t, err)
	require.Len(t, records, 2)

	assert.Equal(t, "s1", records[0].StudentID)
	assert.Equal(t, "Aigerim", records[0].Name)
	assert.Equal(t, "A", records[0].Section)
	assert.Equal(t, 1, records[0].Semester)
	assert.Equal(t, 80.0, records[0].Scores[record.SubjectMath])
	assert.Equal(t, 100.0, records[0].Scores[record.SubjectComputerScience])

	assert.Equal(t, 55.5, records[1].Scores[record.SubjectMath])
}

func TestLoader_Load_PreservesFileOrder(t *testing.T) {
	csv := header +
		"s2,B,B,1,50,50,50,50,50\n" +
		"s1,A,A,1,50,50,50,50,50\n"

	records, err := NewLoader().Load(strings.NewReader(csv))
	require.NoError(t, err)

	assert.Equal(t, "s2", records[0].StudentID)
	assert.Equal(t, "s1", records[1].StudentID)
}

func TestLoader_Load_HeaderAliases(t *testing.T) {
	csv := "Student_ID,Name,Section,Semester,Math,Physics,Chemistry,English,Computer Science\n" +
		"s1,Aigerim,A,1,80,70,60,90,100\n"

	records, err := NewLoader().Load(strings.NewReader(csv))
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, 100.0, records[0].Scores[record.SubjectComputerScience])
}

func TestLoader_Load_MissingHeaderColumn(t *testing.T) {
	csv := "student_id,name,section,semester,math,physics,chemistry,english\n" +
		"s1,Aigerim,A,1,80,70,60,90\n"

	_, err := NewLoader().Load(strings.NewReader(csv))
	require.Error(t, err)
	assert.ErrorIs(t, err, shared.ErrMissingSubject)
}

func TestLoader_Load_OutOfRangeScore(t *testing.T) {
	csv := header + "s1,Aigerim,A,1,80,70,60,90,101\n"

	_, err := NewLoader().Load(strings.NewReader(csv))
	require.Error(t, err)

	var verr *shared.ValidationError
	require.True(t, errors.As(err, &verr))
	assert.Equal(t, 1, verr.Row)
	assert.Equal(t, "Computer Science", verr.Field)
	assert.ErrorIs(t, err, shared.ErrValueOutOfRange)
	assert.ErrorIs(t, err, shared.ErrValidation)
}

func TestLoader_Load_NonNumericScore(t *testing.T) {
	csv := header +
		"s1,Aigerim,A,1,80,70,60,90,100\n" +
		"s2,Bekzat,A,1,80,abc,60,90,100\n"

	_, err := NewLoader().Load(strings.NewReader(csv))
	require.Error(t, err)

	var verr *shared.ValidationError
	require.True(t, errors.As(err, &verr))
	assert.Equal(t, 2, verr.Row, "row index counts data rows, not the header")
	assert.Equal(t, "Physics", verr.Field)
	assert.True(t, shared.IsValidation(err))
}

func TestLoader_Load_EmptyStudentID(t *testing.T) {
	csv := header + ",Aigerim,A,1,80,70,60,90,100\n"

	_, err := NewLoader().Load(strings.NewReader(csv))
	require.Error(t, err)

	var verr *shared.ValidationError
	require.True(t, errors.As(err, &verr))
	assert.Equal(t, "student_id", verr.Field)
	assert.ErrorIs(t, err, shared.ErrMissingField)
}

func TestLoader_Load_BadSemester(t *testing.T) {
	csv := header + "s1,Aigerim,A,zero,80,70,60,90,100\n"

	_, err := NewLoader().Load(strings.NewReader(csv))
	assert.ErrorIs(t, err, shared.ErrInvalidFormat)

	csv = header + "s1,Aigerim,A,0,80,70,60,90,100\n"
	_, err = NewLoader().Load(strings.NewReader(csv))
	assert.ErrorIs(t, err, shared.ErrValueOutOfRange)
}

func TestLoader_Load_RaggedRow(t *testing.T) {
	csv := header + "s1,Aigerim,A,1,80,70\n"

	_, err := NewLoader().Load(strings.NewReader(csv))
	require.Error(t, err)
	assert.True(t, shared.IsValidation(err))
}

func TestLoader_Load_NoRows(t *testing.T) {
	records, err := NewLoader().Load(strings.NewReader(header))

	require.NoError(t, err, "an empty dataset is the engine's call, not the loader's")
	assert.Empty(t, records)
}

func TestLoader_LoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "scores.csv")
	content := header + "s1,Aigerim,A,1,80,70,60,90,100\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	records, err := NewLoader().LoadFile(path)
	require.NoError(t, err)
	assert.Len(t, records, 1)
}

func TestLoader_LoadFile_Missing(t *testing.T) {
	_, err := NewLoader().LoadFile(filepath.Join(t.TempDir(), "nope.csv"))

	require.Error(t, err)
	assert.ErrorIs(t, err, shared.ErrInvalidInput)
}
