package engine

import (
	"fmt"
	"strings"

	"student-performance-dashboard/app/models"
)

// ImputePolicy decides the placeholder used when a source does not supply
// Attendance (%) or Study Hours/Week for a student.
type ImputePolicy struct {
	Name       string
	Attendance float64
	StudyHours float64
}

var (
	// ImputeMidpoint uses the middle of the typical ranges (attendance 50-99%,
	// rounded up to 75; 1-11 study hours).
	ImputeMidpoint = ImputePolicy{Name: "midpoint", Attendance: 75, StudyHours: 6}
	ImputeZero     = ImputePolicy{Name: "zero", Attendance: 0, StudyHours: 0}
)

// ParseImputePolicy resolves a policy by name. Empty selects ImputeMidpoint.
func ParseImputePolicy(name string) (ImputePolicy, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", ImputeMidpoint.Name:
		return ImputeMidpoint, nil
	case ImputeZero.Name:
		return ImputeZero, nil
	}
	return ImputePolicy{}, fmt.Errorf("unknown impute policy %q", name)
}

// gradeThresholds is checked top-down; the first lower bound reached wins.
var gradeThresholds = []struct {
	min   float64
	grade string
}{
	{90, "A+"},
	{80, "A"},
	{70, "B"},
	{60, "C"},
	{50, "D"},
}

const passMark = 40

// GradeFor maps an average to its letter grade. Every real input, NaN
// included, gets exactly one grade.
func GradeFor(avg float64) string {
	for _, t := range gradeThresholds {
		if avg >= t.min {
			return t.grade
		}
	}
	return "F"
}

// ResultFor returns Pass when avg reaches the pass mark.
func ResultFor(avg float64) string {
	if avg >= passMark {
		return models.ResultPass
	}
	return models.ResultFail
}

// EnrichOne derives Total, Average, Grade and Result for a single record.
func EnrichOne(r models.StudentRecord, policy ImputePolicy) models.EnrichedRecord {
	var total float64
	for _, subject := range models.Subjects {
		total += r.Score(subject)
	}
	avg := total / float64(len(models.Subjects))

	out := models.EnrichedRecord{
		Name:       r.Name,
		Gender:     r.Gender,
		Maths:      r.Maths,
		Science:    r.Science,
		English:    r.English,
		History:    r.History,
		Attendance: policy.Attendance,
		StudyHours: policy.StudyHours,
		Total:      total,
		Average:    avg,
		Grade:      GradeFor(avg),
		Result:     ResultFor(avg),
	}

	if r.Attendance != nil {
		out.Attendance = *r.Attendance
	} else {
		out.AttendanceImputed = true
	}
	if r.StudyHours != nil {
		out.StudyHours = *r.StudyHours
	} else {
		out.StudyHoursImputed = true
	}

	return out
}

// Enrich returns one enriched record per input record, in input order.
func Enrich(records []models.StudentRecord, policy ImputePolicy) []models.EnrichedRecord {
	out := make([]models.EnrichedRecord, 0, len(records))
	for _, r := range records {
		out = append(out, EnrichOne(r, policy))
	}
	return out
}
