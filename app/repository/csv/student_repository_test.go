package repository_test

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"student-performance-dashboard/app/apperrors"
	repository "student-performance-dashboard/app/repository/csv"
)

const fullCSV = `Name,Gender,Maths,Science,English,History,Attendance (%),Study Hours/Week
Asha,Female,95,92,88,91,97,10
Ben,Male,82,78,85,80,,4
`

func TestParseStudents(t *testing.T) {
	t.Run("Success: all columns", func(t *testing.T) {
		out, err := repository.ParseStudents(strings.NewReader(fullCSV))
		require.NoError(t, err)
		require.Len(t, out, 2)

		assert.Equal(t, "Asha", out[0].Name)
		assert.Equal(t, "Female", out[0].Gender)
		assert.Equal(t, 95.0, out[0].Maths)
		assert.Equal(t, 91.0, out[0].History)
		require.NotNil(t, out[0].Attendance)
		assert.Equal(t, 97.0, *out[0].Attendance)
		require.NotNil(t, out[0].StudyHours)
		assert.Equal(t, 10.0, *out[0].StudyHours)

		// blank optional cell stays unset
		assert.Nil(t, out[1].Attendance)
		require.NotNil(t, out[1].StudyHours)
		assert.Equal(t, 4.0, *out[1].StudyHours)
	})

	t.Run("Success: optional columns absent", func(t *testing.T) {
		out, err := repository.ParseStudents(strings.NewReader("Name,Gender,Maths,Science,English,History\nCara,Female,70,71,72,73\n"))
		require.NoError(t, err)
		require.Len(t, out, 1)
		assert.Nil(t, out[0].Attendance)
		assert.Nil(t, out[0].StudyHours)
	})

	t.Run("Success: header variants", func(t *testing.T) {
		out, err := repository.ParseStudents(strings.NewReader("name,GENDER,maths,science,english,history,Attendance(%),study_hours/week\nDev,Male,35,40,30,38,55,2\n"))
		require.NoError(t, err)
		require.Len(t, out, 1)
		assert.Equal(t, "Dev", out[0].Name)
		require.NotNil(t, out[0].Attendance)
		assert.Equal(t, 55.0, *out[0].Attendance)
		require.NotNil(t, out[0].StudyHours)
		assert.Equal(t, 2.0, *out[0].StudyHours)
	})

	t.Run("Success: header without rows is an empty table", func(t *testing.T) {
		out, err := repository.ParseStudents(strings.NewReader("Name,Gender,Maths,Science,English,History\n"))
		require.NoError(t, err)
		assert.NotNil(t, out)
		assert.Empty(t, out)
	})

	t.Run("Error: header without rows still needs required columns", func(t *testing.T) {
		_, err := repository.ParseStudents(strings.NewReader("Name,Gender,Maths\n"))
		var mf *apperrors.MissingFieldError
		require.ErrorAs(t, err, &mf)
		assert.Equal(t, "Science", mf.Field)
	})

	t.Run("Success: NA is a valid name", func(t *testing.T) {
		out, err := repository.ParseStudents(strings.NewReader("Name,Gender,Maths,Science,English,History,Attendance (%)\nNA,Female,80,80,80,80,NA\n"))
		require.NoError(t, err)
		require.Len(t, out, 1)
		assert.Equal(t, "NA", out[0].Name)
		assert.Nil(t, out[0].Attendance)
	})

	t.Run("Error: blank name", func(t *testing.T) {
		_, err := repository.ParseStudents(strings.NewReader("Name,Gender,Maths,Science,English,History\n ,Female,80,80,80,80\n"))
		var mf *apperrors.MissingFieldError
		require.ErrorAs(t, err, &mf)
		assert.Equal(t, "Name", mf.Field)
		assert.Equal(t, 1, mf.Row)
	})

	t.Run("Error: non-finite numbers", func(t *testing.T) {
		for _, cell := range []string{"nan", "inf", "-Infinity", "+Inf"} {
			_, err := repository.ParseStudents(strings.NewReader("Name,Gender,Maths,Science,English,History\nGia,Female," + cell + ",80,80,80\n"))
			assert.ErrorIs(t, err, apperrors.ErrInvalidValue, cell)

			_, err = repository.ParseStudents(strings.NewReader("Name,Gender,Maths,Science,English,History,Study Hours/Week\nGia,Female,80,80,80,80," + cell + "\n"))
			assert.ErrorIs(t, err, apperrors.ErrInvalidValue, cell)
		}
	})

	t.Run("Error: missing required column", func(t *testing.T) {
		_, err := repository.ParseStudents(strings.NewReader("Name,Gender,Maths,Science,English\nEve,Female,84,80,79\n"))
		require.Error(t, err)
		assert.ErrorIs(t, err, apperrors.ErrMissingField)

		var mf *apperrors.MissingFieldError
		require.ErrorAs(t, err, &mf)
		assert.Equal(t, "History", mf.Field)
		assert.Equal(t, "missing required field: History", err.Error())
	})

	t.Run("Error: blank required score is not defaulted", func(t *testing.T) {
		_, err := repository.ParseStudents(strings.NewReader("Name,Gender,Maths,Science,English,History\nFarid,Male,91,,90,92\n"))
		var mf *apperrors.MissingFieldError
		require.ErrorAs(t, err, &mf)
		assert.Equal(t, "Science", mf.Field)
		assert.Equal(t, 1, mf.Row)
	})

	t.Run("Error: non-numeric score", func(t *testing.T) {
		_, err := repository.ParseStudents(strings.NewReader("Name,Gender,Maths,Science,English,History\nGia,Female,ninety,80,80,80\n"))
		assert.ErrorIs(t, err, apperrors.ErrInvalidValue)
	})
}

func TestLoadStudents(t *testing.T) {
	t.Run("Success: reads file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "students.csv")
		require.NoError(t, os.WriteFile(path, []byte(fullCSV), 0o644))

		out, err := repository.NewStudentRepository(path).LoadStudents(context.Background())
		require.NoError(t, err)
		assert.Len(t, out, 2)
	})

	t.Run("Error: file not found", func(t *testing.T) {
		_, err := repository.NewStudentRepository(filepath.Join(t.TempDir(), "nope.csv")).LoadStudents(context.Background())
		assert.ErrorIs(t, err, os.ErrNotExist)
	})
}
