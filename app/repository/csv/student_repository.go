package repository

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"

	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"

	"student-performance-dashboard/app/apperrors"
	"student-performance-dashboard/app/models"
)

// StudentRepository reads students from a CSV file on disk.
type StudentRepository struct {
	path string
}

func NewStudentRepository(path string) *StudentRepository {
	return &StudentRepository{path: path}
}

func (r *StudentRepository) LoadStudents(ctx context.Context) ([]models.StudentRecord, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	f, err := os.Open(r.path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", r.path, err)
	}
	defer f.Close()

	return ParseStudents(f)
}

// ParseStudents reads a CSV with a header row. Header names are matched
// ignoring case, spaces and underscores, so "Attendance(%)" and
// "attendance (%)" both map to the attendance column. A header without data
// rows is an empty table.
func ParseStudents(rd io.Reader) ([]models.StudentRecord, error) {
	data, err := io.ReadAll(rd)
	if err != nil {
		return nil, fmt.Errorf("failed to read CSV: %w", err)
	}

	df := dataframe.ReadCSV(bytes.NewReader(data),
		dataframe.HasHeader(true),
		dataframe.DetectTypes(false),
		dataframe.DefaultType(series.String),
		dataframe.NaNValues(nil),
	)
	if df.Err != nil {
		header, ok := headerOnly(data)
		if !ok {
			return nil, fmt.Errorf("failed to read CSV: %w", df.Err)
		}
		if _, err := matchColumns(header); err != nil {
			return nil, err
		}
		return []models.StudentRecord{}, nil
	}

	headers, err := matchColumns(df.Names())
	if err != nil {
		return nil, err
	}
	cols := make(map[string][]string, len(headers))
	for col, actual := range headers {
		cols[col] = df.Col(actual).Records()
	}

	records := make([]models.StudentRecord, 0, df.Nrow())
	for i := 0; i < df.Nrow(); i++ {
		row := i + 1
		rec := models.StudentRecord{
			Name:   strings.TrimSpace(cols[models.ColName][i]),
			Gender: strings.TrimSpace(cols[models.ColGender][i]),
		}
		if rec.Name == "" {
			return nil, apperrors.NewMissingFieldError(models.ColName, row)
		}
		if rec.Gender == "" {
			return nil, apperrors.NewMissingFieldError(models.ColGender, row)
		}

		for _, subject := range models.Subjects {
			v, err := required(cols[subject][i], subject, row)
			if err != nil {
				return nil, err
			}
			switch subject {
			case models.ColMaths:
				rec.Maths = v
			case models.ColScience:
				rec.Science = v
			case models.ColEnglish:
				rec.English = v
			case models.ColHistory:
				rec.History = v
			}
		}

		if rec.Attendance, err = optional(cols, models.ColAttendance, i); err != nil {
			return nil, err
		}
		if rec.StudyHours, err = optional(cols, models.ColStudyHours, i); err != nil {
			return nil, err
		}

		records = append(records, rec)
	}

	return records, nil
}

// matchColumns maps each known column to the header that carries it and
// fails on the first missing required column.
func matchColumns(names []string) (map[string]string, error) {
	headers := make(map[string]string, len(names))
	for _, name := range names {
		headers[normalize(name)] = name
	}

	wanted := make([]string, 0, len(models.RequiredColumns)+2)
	wanted = append(wanted, models.RequiredColumns...)
	wanted = append(wanted, models.ColAttendance, models.ColStudyHours)

	out := make(map[string]string, len(wanted))
	for _, col := range wanted {
		if actual, ok := headers[normalize(col)]; ok {
			out[col] = actual
		}
	}
	for _, col := range models.RequiredColumns {
		if _, ok := out[col]; !ok {
			return nil, apperrors.NewMissingFieldError(col, 0)
		}
	}
	return out, nil
}

// headerOnly returns the header of a CSV that has no data rows.
func headerOnly(data []byte) ([]string, bool) {
	rows, err := csv.NewReader(bytes.NewReader(data)).ReadAll()
	if err != nil || len(rows) != 1 {
		return nil, false
	}
	return rows[0], true
}

func normalize(header string) string {
	h := strings.ToLower(strings.TrimSpace(header))
	h = strings.ReplaceAll(h, " ", "")
	return strings.ReplaceAll(h, "_", "")
}

// clean maps the missing-value markers of a numeric cell to "".
func clean(v string) string {
	v = strings.TrimSpace(v)
	switch v {
	case "NaN", "NA":
		return ""
	}
	return v
}

func required(raw, col string, row int) (float64, error) {
	v := clean(raw)
	if v == "" {
		return 0, apperrors.NewMissingFieldError(col, row)
	}
	f, err := parseNumber(v)
	if err != nil {
		return 0, apperrors.NewInvalidValueError(col, row, v)
	}
	return f, nil
}

func optional(cols map[string][]string, col string, i int) (*float64, error) {
	values, ok := cols[col]
	if !ok {
		return nil, nil
	}
	v := clean(values[i])
	if v == "" {
		return nil, nil
	}
	f, err := parseNumber(v)
	if err != nil {
		return nil, apperrors.NewInvalidValueError(col, i+1, v)
	}
	return &f, nil
}

// parseNumber accepts finite decimals only; "nan" and "inf" are rejected.
func parseNumber(v string) (float64, error) {
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return 0, err
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, fmt.Errorf("not a finite number: %s", v)
	}
	return f, nil
}
