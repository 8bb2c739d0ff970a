package engine_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"student-performance-dashboard/app/apperrors"
	"student-performance-dashboard/app/engine"
	"student-performance-dashboard/app/models"
)

func TestSummarize(t *testing.T) {
	t.Run("Success: example dataset", func(t *testing.T) {
		records := engine.Enrich([]models.StudentRecord{
			student("A", "Female", 90, 90, 90, 90),
			student("B", "Male", 30, 30, 30, 30),
		}, engine.ImputeMidpoint)

		s, err := engine.Summarize(records)
		require.NoError(t, err)
		assert.Equal(t, 2, s.TotalStudents)
		assert.Equal(t, 60.0, s.AverageMarks)
		assert.Equal(t, 50.0, s.PassPercentage)
		assert.Equal(t, 50.0, s.FailPercentage)
		assert.Equal(t, "A", s.TopPerformer)
		// one A+ and one F: first occurrence wins
		assert.Equal(t, "A+", s.MostCommonGrade)
	})

	t.Run("Success: top performer tie keeps first", func(t *testing.T) {
		records := engine.Enrich([]models.StudentRecord{
			student("X", "Female", 70, 70, 70, 70),
			student("Y", "Male", 85, 85, 85, 85),
			student("Z", "Male", 85, 85, 85, 85),
		}, engine.ImputeMidpoint)

		s, err := engine.Summarize(records)
		require.NoError(t, err)
		assert.Equal(t, "Y", s.TopPerformer)
		assert.Equal(t, "A", s.MostCommonGrade)
		assert.Equal(t, 100.0, s.PassPercentage)
		assert.Equal(t, 0.0, s.FailPercentage)
	})

	t.Run("Success: modal grade tie resolved by input order", func(t *testing.T) {
		records := engine.Enrich([]models.StudentRecord{
			student("P", "Female", 55, 55, 55, 55), // D
			student("Q", "Male", 75, 75, 75, 75),   // B
			student("R", "Male", 76, 76, 76, 76),   // B
			student("S", "Female", 52, 52, 52, 52), // D
		}, engine.ImputeMidpoint)

		s, err := engine.Summarize(records)
		require.NoError(t, err)
		assert.Equal(t, "D", s.MostCommonGrade)
	})

	t.Run("Error: empty input returns no data", func(t *testing.T) {
		s, err := engine.Summarize(nil)
		assert.ErrorIs(t, err, apperrors.ErrNoData)
		assert.True(t, apperrors.IsNoData(err))
		assert.Equal(t, models.Summary{}, s)
	})

	t.Run("Error: empty filter result returns no data", func(t *testing.T) {
		_, err := engine.Summarize(engine.Filter(sampleRecords(), engine.Criteria{Gender: "Nobody"}))
		assert.ErrorIs(t, err, apperrors.ErrNoData)
	})
}

func TestTopN(t *testing.T) {
	records := sampleRecords()

	t.Run("Success: top 5 sorted descending", func(t *testing.T) {
		out := engine.TopN(records, 5)
		require.Len(t, out, 5)
		assert.Equal(t, []string{"Farid", "Asha", "Ben", "Eve", "Chloe"}, names(out))
		for i := 1; i < len(out); i++ {
			assert.GreaterOrEqual(t, out[i-1].Average, out[i].Average)
		}
	})

	t.Run("Success: n beyond length returns all records", func(t *testing.T) {
		out := engine.TopN(records, 50)
		assert.Equal(t, []string{"Farid", "Asha", "Ben", "Eve", "Chloe", "Dev"}, names(out))
	})

	t.Run("Success: zero or negative n", func(t *testing.T) {
		assert.Empty(t, engine.TopN(records, 0))
		assert.Empty(t, engine.TopN(records, -3))
	})

	t.Run("Success: empty input", func(t *testing.T) {
		assert.Empty(t, engine.TopN(nil, 5))
	})

	t.Run("Success: input order untouched", func(t *testing.T) {
		engine.TopN(records, 3)
		assert.Equal(t, "Asha", records[0].Name)
	})

	t.Run("Success: ranked rows", func(t *testing.T) {
		out := engine.TopStudents(records, 2)
		require.Len(t, out, 2)
		assert.Equal(t, models.TopStudent{Rank: 1, Name: "Farid", Gender: "Male", Average: 92, Grade: "A+"}, out[0])
		assert.Equal(t, 2, out[1].Rank)
	})
}
