package service_test

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"student-performance-dashboard/app/engine"
	"student-performance-dashboard/app/models"
	"student-performance-dashboard/app/render"
	"student-performance-dashboard/app/repository/mocks"
	"student-performance-dashboard/app/service"
)

// --- SETUP HELPERS ---

func ptr(v float64) *float64 { return &v }

func sampleStudents() []models.StudentRecord {
	return []models.StudentRecord{
		{Name: "Asha", Gender: "Female", Maths: 95, Science: 92, English: 88, History: 91, Attendance: ptr(96), StudyHours: ptr(12)},
		{Name: "Ben", Gender: "Male", Maths: 78, Science: 85, English: 80, History: 82, Attendance: ptr(88), StudyHours: ptr(9)},
		{Name: "Chloe", Gender: "Female", Maths: 70, Science: 72, English: 75, History: 68, Attendance: ptr(81), StudyHours: ptr(7)},
		{Name: "Dev", Gender: "Male", Maths: 35, Science: 40, English: 30, History: 38, Attendance: ptr(55), StudyHours: ptr(2)},
	}
}

func setupDashboardServiceTest(t *testing.T) (*service.DashboardService, *mocks.MockStudentSource, *mocks.MockChartCache) {
	mockSource := new(mocks.MockStudentSource)
	mockCache := new(mocks.MockChartCache)

	mockSource.On("LoadStudents", mock.Anything).Return(sampleStudents(), nil).Once()

	svc := service.NewDashboardService(mockSource, mockCache, engine.ImputeMidpoint, render.Options{Width: 400, Height: 300})
	_, err := svc.Load(context.Background())
	require.NoError(t, err)

	return svc, mockSource, mockCache
}

func setupDashboardApp(svc *service.DashboardService) *fiber.App {
	app := fiber.New()
	app.Get("/kpis", svc.GetKPIs)
	app.Get("/options", svc.GetOptions)
	app.Get("/charts/:kind", svc.GetChartData)
	app.Get("/charts/:kind/png", svc.GetChartPNG)
	app.Get("/top", svc.GetTopStudents)
	app.Get("/students", svc.GetStudents)
	app.Get("/export.csv", svc.ExportCSV)
	app.Get("/export.xlsx", svc.ExportXLSX)
	app.Post("/reload", svc.Reload)
	return app
}

type dataResponse struct {
	Snapshot string            `json:"snapshot"`
	Filter   models.FilterEcho `json:"filter"`
	Data     json.RawMessage   `json:"data"`
	Message  string            `json:"message"`
}

func decode(t *testing.T, resp *http.Response, v interface{}) {
	t.Helper()
	defer resp.Body.Close()
	require.NoError(t, json.NewDecoder(resp.Body).Decode(v))
}
