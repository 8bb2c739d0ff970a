package repository

import (
	"context"

	"student-performance-dashboard/app/apperrors"
	"student-performance-dashboard/app/models"
)

// StudentSource loads the raw student table from wherever it lives.
type StudentSource interface {
	LoadStudents(ctx context.Context) ([]models.StudentRecord, error)
}

// RawStudent is a row as read from a database, before required fields are
// checked. Nil means the value was absent (NULL or missing key).
type RawStudent struct {
	Name       *string
	Gender     *string
	Maths      *float64
	Science    *float64
	English    *float64
	History    *float64
	Attendance *float64
	StudyHours *float64
}

// ToRecord checks the required fields and returns the typed record. row is
// 1-based and only used in error messages.
func (r RawStudent) ToRecord(row int) (models.StudentRecord, error) {
	if r.Name == nil {
		return models.StudentRecord{}, apperrors.NewMissingFieldError(models.ColName, row)
	}
	if r.Gender == nil {
		return models.StudentRecord{}, apperrors.NewMissingFieldError(models.ColGender, row)
	}

	scores := []struct {
		col string
		v   *float64
	}{
		{models.ColMaths, r.Maths},
		{models.ColScience, r.Science},
		{models.ColEnglish, r.English},
		{models.ColHistory, r.History},
	}
	for _, s := range scores {
		if s.v == nil {
			return models.StudentRecord{}, apperrors.NewMissingFieldError(s.col, row)
		}
	}

	return models.StudentRecord{
		Name:       *r.Name,
		Gender:     *r.Gender,
		Maths:      *r.Maths,
		Science:    *r.Science,
		English:    *r.English,
		History:    *r.History,
		Attendance: r.Attendance,
		StudyHours: r.StudyHours,
	}, nil
}
