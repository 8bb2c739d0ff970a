package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"student-performance-dashboard/app/apperrors"
	"student-performance-dashboard/app/engine"
	"student-performance-dashboard/app/models"
	"student-performance-dashboard/app/render"
	base "student-performance-dashboard/app/repository"
	"student-performance-dashboard/logger"
)

// Report is the batch summary of one filtered view.
type Report struct {
	Criteria engine.Criteria
	Records  []models.EnrichedRecord
	Summary  models.Summary
	Subjects []models.SubjectAverage
	Genders  []models.GenderAverage
	Grades   []models.GradeCount
	Empty    bool
}

// ReportService builds the text report and chart files for the CLI.
type ReportService struct {
	source base.StudentSource
	policy engine.ImputePolicy
	chart  render.Options
}

func NewReportService(source base.StudentSource, policy engine.ImputePolicy, chart render.Options) *ReportService {
	return &ReportService{source: source, policy: policy, chart: chart}
}

// Build loads the source and derives every report section for c.
func (s *ReportService) Build(ctx context.Context, c engine.Criteria) (*Report, error) {
	raw, err := s.source.LoadStudents(ctx)
	if err != nil {
		return nil, err
	}

	table := engine.NewTable(raw, s.policy)
	report := &Report{Criteria: c, Records: table.Query(c)}

	report.Summary, err = engine.Summarize(report.Records)
	if errors.Is(err, apperrors.ErrNoData) {
		report.Empty = true
		return report, nil
	}
	if err != nil {
		return nil, err
	}

	if report.Subjects, err = engine.SubjectAverages(report.Records); err != nil {
		return nil, err
	}
	if report.Genders, err = engine.GroupByGender(report.Records); err != nil {
		return nil, err
	}
	if report.Grades, err = engine.GradeDistribution(report.Records); err != nil {
		return nil, err
	}
	return report, nil
}

// WriteText prints the summary block in the order the console report uses.
func WriteText(w io.Writer, r *Report) error {
	var b strings.Builder

	if !r.Criteria.IsEmpty() {
		fmt.Fprintf(&b, "Filter: grade=%q gender=%q\n", r.Criteria.Grade, r.Criteria.Gender)
	}
	if r.Empty {
		b.WriteString("no data\n")
		_, err := io.WriteString(w, b.String())
		return err
	}

	fmt.Fprintf(&b, "Total Students: %d\n", r.Summary.TotalStudents)
	fmt.Fprintf(&b, "Average Score: %.2f\n", r.Summary.AverageMarks)
	fmt.Fprintf(&b, "Pass %%: %.2f\n", r.Summary.PassPercentage)
	fmt.Fprintf(&b, "Fail %%: %.2f\n", r.Summary.FailPercentage)
	fmt.Fprintf(&b, "Top Student: %s\n", r.Summary.TopPerformer)
	fmt.Fprintf(&b, "Most Common Grade: %s\n", r.Summary.MostCommonGrade)
	b.WriteString(strings.Repeat("-", 50) + "\n")

	b.WriteString("Subject Averages:\n")
	for _, s := range r.Subjects {
		fmt.Fprintf(&b, "  %-10s %6.2f\n", s.Subject, s.Average)
	}

	b.WriteString("Gender Averages:\n")
	for _, g := range r.Genders {
		fmt.Fprintf(&b, "  %-10s %6.2f  (%d)\n", g.Gender, g.Average, g.Count)
	}

	b.WriteString("Grade Distribution:\n")
	for _, g := range r.Grades {
		fmt.Fprintf(&b, "  %-10s %3d  %5.1f%%\n", g.Grade, g.Count, g.Percentage)
	}

	_, err := io.WriteString(w, b.String())
	return err
}

// WriteCharts renders every chart kind into dir as <kind>.png and returns
// the written paths. An empty report writes nothing.
func (s *ReportService) WriteCharts(dir string, r *Report) ([]string, error) {
	if r.Empty {
		return nil, nil
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create output dir: %w", err)
	}

	paths := make([]string, 0, len(render.Kinds))
	for _, kind := range render.Kinds {
		path := filepath.Join(dir, kind+".png")
		if err := s.writeChart(path, kind, r.Records); err != nil {
			return paths, fmt.Errorf("render %s: %w", kind, err)
		}
		logger.Debug().Str("chart", kind).Str("path", path).Msg("chart written")
		paths = append(paths, path)
	}
	return paths, nil
}

func (s *ReportService) writeChart(path, kind string, records []models.EnrichedRecord) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := render.Render(f, kind, records, s.chart); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
