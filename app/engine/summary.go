package engine

import (
	"sort"

	"github.com/montanaflynn/stats"

	"student-performance-dashboard/app/apperrors"
	"student-performance-dashboard/app/models"
)

// Summarize computes the KPI block. An empty record set yields ErrNoData.
func Summarize(records []models.EnrichedRecord) (models.Summary, error) {
	if len(records) == 0 {
		return models.Summary{}, apperrors.ErrNoData
	}

	mean, err := stats.Mean(column(records, models.ColAverage))
	if err != nil {
		return models.Summary{}, err
	}

	pass := 0
	top := 0
	for i, r := range records {
		if r.Result == models.ResultPass {
			pass++
		}
		// strict comparison keeps the first of equal maxima
		if r.Average > records[top].Average {
			top = i
		}
	}

	n := float64(len(records))
	return models.Summary{
		TotalStudents:   len(records),
		AverageMarks:    mean,
		PassPercentage:  float64(pass) / n * 100,
		FailPercentage:  float64(len(records)-pass) / n * 100,
		TopPerformer:    records[top].Name,
		MostCommonGrade: modalGrade(records),
	}, nil
}

// modalGrade returns the most frequent grade; among equally frequent grades
// the one seen first in the input wins.
func modalGrade(records []models.EnrichedRecord) string {
	counts := make(map[string]int)
	order := make([]string, 0, len(models.Grades))
	for _, r := range records {
		if _, seen := counts[r.Grade]; !seen {
			order = append(order, r.Grade)
		}
		counts[r.Grade]++
	}

	best := order[0]
	for _, g := range order[1:] {
		if counts[g] > counts[best] {
			best = g
		}
	}
	return best
}

// TopN returns up to n records with the highest Average, descending. Equal
// averages keep their input order.
func TopN(records []models.EnrichedRecord, n int) []models.EnrichedRecord {
	if n <= 0 {
		return []models.EnrichedRecord{}
	}

	sorted := make([]models.EnrichedRecord, len(records))
	copy(sorted, records)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Average > sorted[j].Average
	})

	if n < len(sorted) {
		sorted = sorted[:n]
	}
	return sorted
}

// TopStudents ranks TopN output for the top-N table.
func TopStudents(records []models.EnrichedRecord, n int) []models.TopStudent {
	top := TopN(records, n)
	out := make([]models.TopStudent, 0, len(top))
	for i, r := range top {
		out = append(out, models.TopStudent{
			Rank:    i + 1,
			Name:    r.Name,
			Gender:  r.Gender,
			Average: r.Average,
			Grade:   r.Grade,
		})
	}
	return out
}
