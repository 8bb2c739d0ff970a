package engine

import (
	"math"
	"sort"
	"strings"

	"github.com/montanaflynn/stats"

	"student-performance-dashboard/app/apperrors"
	"student-performance-dashboard/app/models"
)

// CorrelationColumns are the columns of the correlation heatmap.
var CorrelationColumns = []string{
	models.ColMaths, models.ColScience, models.ColEnglish, models.ColHistory, models.ColAverage,
}

func column(records []models.EnrichedRecord, name string) stats.Float64Data {
	data := make(stats.Float64Data, 0, len(records))
	for _, r := range records {
		data = append(data, r.Score(name))
	}
	return data
}

// SubjectAverages returns the mean score of each subject, in Subjects order.
func SubjectAverages(records []models.EnrichedRecord) ([]models.SubjectAverage, error) {
	if len(records) == 0 {
		return nil, apperrors.ErrNoData
	}

	out := make([]models.SubjectAverage, 0, len(models.Subjects))
	for _, subject := range models.Subjects {
		mean, err := stats.Mean(column(records, subject))
		if err != nil {
			return nil, err
		}
		out = append(out, models.SubjectAverage{Subject: subject, Average: mean})
	}
	return out, nil
}

// CorrelationMatrix returns pairwise Pearson correlations among the four
// subjects and Average. A column without variance correlates as 0 with the
// others; the diagonal is always 1.
func CorrelationMatrix(records []models.EnrichedRecord) (models.Correlation, error) {
	if len(records) == 0 {
		return models.Correlation{}, apperrors.ErrNoData
	}

	cols := make([]stats.Float64Data, len(CorrelationColumns))
	for i, name := range CorrelationColumns {
		cols[i] = column(records, name)
	}

	values := make([][]float64, len(cols))
	for i := range cols {
		values[i] = make([]float64, len(cols))
		for j := range cols {
			if i == j {
				values[i][j] = 1
				continue
			}
			if j < i {
				values[i][j] = values[j][i]
				continue
			}
			r, err := stats.Correlation(cols[i], cols[j])
			if err != nil {
				return models.Correlation{}, err
			}
			values[i][j] = r
		}
	}

	labels := make([]string, len(CorrelationColumns))
	copy(labels, CorrelationColumns)
	return models.Correlation{Labels: labels, Values: values}, nil
}

// GroupByGender returns the mean Average per Gender in first-appearance order.
func GroupByGender(records []models.EnrichedRecord) ([]models.GenderAverage, error) {
	if len(records) == 0 {
		return nil, apperrors.ErrNoData
	}

	grouped := make(map[string]stats.Float64Data)
	order := make([]string, 0)
	for _, r := range records {
		if _, exists := grouped[r.Gender]; !exists {
			order = append(order, r.Gender)
		}
		grouped[r.Gender] = append(grouped[r.Gender], r.Average)
	}

	out := make([]models.GenderAverage, 0, len(order))
	for _, g := range order {
		mean, err := stats.Mean(grouped[g])
		if err != nil {
			return nil, err
		}
		out = append(out, models.GenderAverage{Gender: g, Average: mean, Count: len(grouped[g])})
	}
	return out, nil
}

// GradeDistribution counts records per grade in threshold order. Grades with
// no records are omitted.
func GradeDistribution(records []models.EnrichedRecord) ([]models.GradeCount, error) {
	if len(records) == 0 {
		return nil, apperrors.ErrNoData
	}

	counts := make(map[string]int)
	for _, r := range records {
		counts[r.Grade]++
	}

	out := make([]models.GradeCount, 0, len(counts))
	for _, g := range models.Grades {
		if counts[g] == 0 {
			continue
		}
		out = append(out, models.GradeCount{
			Grade:      g,
			Count:      counts[g],
			Percentage: float64(counts[g]) / float64(len(records)) * 100,
		})
	}
	return out, nil
}

// AttendanceScatter pairs attendance with average for every record.
func AttendanceScatter(records []models.EnrichedRecord) ([]models.ScatterPoint, error) {
	if len(records) == 0 {
		return nil, apperrors.ErrNoData
	}

	out := make([]models.ScatterPoint, 0, len(records))
	for _, r := range records {
		out = append(out, models.ScatterPoint{
			Name:       r.Name,
			Attendance: r.Attendance,
			Average:    r.Average,
			StudyHours: r.StudyHours,
			Result:     r.Result,
			Grade:      r.Grade,
		})
	}
	return out, nil
}

// StudyHoursTrend returns the mean Average per distinct Study Hours/Week
// value, ascending by hours.
func StudyHoursTrend(records []models.EnrichedRecord) ([]models.StudyHoursPoint, error) {
	if len(records) == 0 {
		return nil, apperrors.ErrNoData
	}

	grouped := make(map[float64]stats.Float64Data)
	for _, r := range records {
		grouped[r.StudyHours] = append(grouped[r.StudyHours], r.Average)
	}

	out := make([]models.StudyHoursPoint, 0, len(grouped))
	for hours, avgs := range grouped {
		mean, err := stats.Mean(avgs)
		if err != nil {
			return nil, err
		}
		out = append(out, models.StudyHoursPoint{StudyHours: hours, Average: mean, Count: len(avgs)})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].StudyHours < out[j].StudyHours })
	return out, nil
}

// AverageTrend lists students by Average ascending; ties keep input order.
func AverageTrend(records []models.EnrichedRecord) ([]models.TrendPoint, error) {
	if len(records) == 0 {
		return nil, apperrors.ErrNoData
	}

	sorted := SortRecords(records, SortAverageAsc)
	out := make([]models.TrendPoint, 0, len(sorted))
	for _, r := range sorted {
		out = append(out, models.TrendPoint{Name: r.Name, Average: r.Average})
	}
	return out, nil
}

// Options returns the sorted distinct grades and genders present in records.
func Options(records []models.EnrichedRecord) models.FilterOptions {
	grades := make(map[string]bool)
	genders := make(map[string]bool)
	for _, r := range records {
		grades[r.Grade] = true
		if r.Gender != "" {
			genders[r.Gender] = true
		}
	}
	return models.FilterOptions{Grades: sortedKeys(grades), Genders: sortedKeys(genders)}
}

func sortedKeys(set map[string]bool) []string {
	out := make([]string, 0, len(set))
	for k := range set {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

// Sort modes accepted by SortRecords.
const (
	SortAverageDesc = "average_desc"
	SortAverageAsc  = "average_asc"
	SortNameAsc     = "name_asc"
)

// SortRecords returns a stably sorted copy. Unknown modes keep input order.
func SortRecords(records []models.EnrichedRecord, mode string) []models.EnrichedRecord {
	sorted := make([]models.EnrichedRecord, len(records))
	copy(sorted, records)

	switch mode {
	case SortAverageDesc:
		sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].Average > sorted[j].Average })
	case SortAverageAsc:
		sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].Average < sorted[j].Average })
	case SortNameAsc:
		sort.SliceStable(sorted, func(i, j int) bool {
			return strings.ToLower(sorted[i].Name) < strings.ToLower(sorted[j].Name)
		})
	}
	return sorted
}

// Round2 rounds to 2 decimal places for display.
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}
