package service_test

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"student-performance-dashboard/app/engine"
	"student-performance-dashboard/app/render"
	"student-performance-dashboard/app/repository/mocks"
	"student-performance-dashboard/app/service"
)

func setupReportServiceTest() (*service.ReportService, *mocks.MockStudentSource) {
	mockSource := new(mocks.MockStudentSource)
	svc := service.NewReportService(mockSource, engine.ImputeMidpoint, render.Options{Width: 400, Height: 300})
	return svc, mockSource
}

func TestBuildReport(t *testing.T) {
	t.Run("Success: whole table", func(t *testing.T) {
		svc, mockSource := setupReportServiceTest()
		mockSource.On("LoadStudents", mock.Anything).Return(sampleStudents(), nil)

		report, err := svc.Build(context.Background(), engine.Criteria{})
		require.NoError(t, err)
		assert.False(t, report.Empty)
		assert.Equal(t, 4, report.Summary.TotalStudents)
		assert.Len(t, report.Subjects, 4)
		assert.Len(t, report.Genders, 2)

		var buf bytes.Buffer
		require.NoError(t, service.WriteText(&buf, report))
		out := buf.String()
		assert.Contains(t, out, "Total Students: 4\n")
		assert.Contains(t, out, "Average Score: 69.94\n")
		assert.Contains(t, out, "Pass %: 75.00\n")
		assert.Contains(t, out, "Fail %: 25.00\n")
		assert.Contains(t, out, "Top Student: Asha\n")
		assert.NotContains(t, out, "Filter:")
		mockSource.AssertExpectations(t)
	})

	t.Run("Success: empty filter prints no data", func(t *testing.T) {
		svc, mockSource := setupReportServiceTest()
		mockSource.On("LoadStudents", mock.Anything).Return(sampleStudents(), nil)

		report, err := svc.Build(context.Background(), engine.Criteria{Grade: "C"})
		require.NoError(t, err)
		assert.True(t, report.Empty)

		var buf bytes.Buffer
		require.NoError(t, service.WriteText(&buf, report))
		assert.Equal(t, "Filter: grade=\"C\" gender=\"\"\nno data\n", buf.String())

		paths, err := svc.WriteCharts(t.TempDir(), report)
		assert.NoError(t, err)
		assert.Empty(t, paths)
	})

	t.Run("Error: source failure", func(t *testing.T) {
		svc, mockSource := setupReportServiceTest()
		mockSource.On("LoadStudents", mock.Anything).Return(nil, errors.New("missing file"))

		_, err := svc.Build(context.Background(), engine.Criteria{})
		assert.Error(t, err)
	})
}

func TestWriteCharts(t *testing.T) {
	svc, mockSource := setupReportServiceTest()
	mockSource.On("LoadStudents", mock.Anything).Return(sampleStudents(), nil)

	report, err := svc.Build(context.Background(), engine.Criteria{Gender: "Female"})
	require.NoError(t, err)

	dir := filepath.Join(t.TempDir(), "report")
	paths, err := svc.WriteCharts(dir, report)
	require.NoError(t, err)
	require.Len(t, paths, len(render.Kinds))

	for _, p := range paths {
		data, err := os.ReadFile(p)
		require.NoError(t, err)
		assert.True(t, bytes.HasPrefix(data, []byte("\x89PNG")), p)
	}
}
