package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/lib/pq"

	"student-performance-dashboard/app/apperrors"
	"student-performance-dashboard/app/models"
	base "student-performance-dashboard/app/repository"
)

type StudentRepository interface {
	base.StudentSource
	EnsureSchema(ctx context.Context) error
	InsertStudents(ctx context.Context, records []models.StudentRecord) (int, error)
}

type studentRepository struct {
	db    *sql.DB
	table string
}

func NewStudentRepository(db *sql.DB, table string) StudentRepository {
	if table == "" {
		table = "students"
	}
	return &studentRepository{db: db, table: table}
}

// columnNames maps SQL columns back to dataset columns for error messages.
var columnNames = map[string]string{
	"name":        models.ColName,
	"gender":      models.ColGender,
	"maths":       models.ColMaths,
	"science":     models.ColScience,
	"english":     models.ColEnglish,
	"history":     models.ColHistory,
	"attendance":  models.ColAttendance,
	"study_hours": models.ColStudyHours,
}

func (r *studentRepository) EnsureSchema(ctx context.Context) error {
	query := fmt.Sprintf(`
		CREATE TABLE IF NOT EXISTS %s (
			id          SERIAL PRIMARY KEY,
			name        TEXT NOT NULL,
			gender      TEXT NOT NULL,
			maths       DOUBLE PRECISION NOT NULL,
			science     DOUBLE PRECISION NOT NULL,
			english     DOUBLE PRECISION NOT NULL,
			history     DOUBLE PRECISION NOT NULL,
			attendance  DOUBLE PRECISION,
			study_hours DOUBLE PRECISION,
			created_at  TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)
	`, pq.QuoteIdentifier(r.table))

	_, err := r.db.ExecContext(ctx, query)
	return err
}

func (r *studentRepository) LoadStudents(ctx context.Context) ([]models.StudentRecord, error) {
	query := fmt.Sprintf(`
		SELECT name, gender, maths, science, english, history, attendance, study_hours
		FROM %s
		ORDER BY id
	`, pq.QuoteIdentifier(r.table))

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, translateError(err)
	}
	defer rows.Close()

	var results []models.StudentRecord
	row := 0
	for rows.Next() {
		row++
		var (
			name, gender                     sql.NullString
			maths, science, english, history sql.NullFloat64
			attendance, studyHours           sql.NullFloat64
		)
		if err := rows.Scan(&name, &gender, &maths, &science, &english, &history, &attendance, &studyHours); err != nil {
			return nil, err
		}

		rec, err := base.RawStudent{
			Name:       nullString(name),
			Gender:     nullString(gender),
			Maths:      nullFloat(maths),
			Science:    nullFloat(science),
			English:    nullFloat(english),
			History:    nullFloat(history),
			Attendance: nullFloat(attendance),
			StudyHours: nullFloat(studyHours),
		}.ToRecord(row)
		if err != nil {
			return nil, err
		}
		results = append(results, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return results, nil
}

// InsertStudents copies records into the table in one transaction.
func (r *studentRepository) InsertStudents(ctx context.Context, records []models.StudentRecord) (int, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, err
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx, pq.CopyIn(r.table,
		"name", "gender", "maths", "science", "english", "history", "attendance", "study_hours"))
	if err != nil {
		return 0, err
	}

	for _, rec := range records {
		if _, err := stmt.ExecContext(ctx,
			rec.Name, rec.Gender, rec.Maths, rec.Science, rec.English, rec.History,
			optionalValue(rec.Attendance), optionalValue(rec.StudyHours),
		); err != nil {
			stmt.Close()
			return 0, err
		}
	}
	if _, err := stmt.ExecContext(ctx); err != nil {
		stmt.Close()
		return 0, err
	}
	if err := stmt.Close(); err != nil {
		return 0, err
	}

	if err := tx.Commit(); err != nil {
		return 0, err
	}
	return len(records), nil
}

// translateError turns an undefined-column error into a missing field error.
func translateError(err error) error {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) && pqErr.Code == "42703" {
		// message looks like: column "maths" does not exist
		parts := strings.Split(pqErr.Message, `"`)
		if len(parts) >= 2 {
			if col, ok := columnNames[parts[1]]; ok {
				return apperrors.NewMissingFieldError(col, 0)
			}
		}
		return fmt.Errorf("%w: %s", apperrors.ErrMissingField, pqErr.Message)
	}
	return err
}

func nullString(v sql.NullString) *string {
	if !v.Valid {
		return nil
	}
	s := v.String
	return &s
}

func nullFloat(v sql.NullFloat64) *float64 {
	if !v.Valid {
		return nil
	}
	f := v.Float64
	return &f
}

func optionalValue(v *float64) interface{} {
	if v == nil {
		return nil
	}
	return *v
}
