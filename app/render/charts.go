package render

import (
	"fmt"
	"io"
	"math"

	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"

	"student-performance-dashboard/app/apperrors"
	"student-performance-dashboard/app/engine"
	"student-performance-dashboard/app/models"
)

// Chart kinds served by the dashboard and written by the report.
const (
	KindSubjects   = "subjects"
	KindGrades     = "grades"
	KindGender     = "gender"
	KindAttendance = "attendance"
	KindStudyHours = "study-hours"
	KindTrend      = "trend"
)

// Kinds lists every renderable chart in report order.
var Kinds = []string{KindSubjects, KindGrades, KindGender, KindStudyHours, KindAttendance, KindTrend}

type Options struct {
	Width  int
	Height int
}

func (o Options) size() (int, int) {
	w, h := o.Width, o.Height
	if w <= 0 {
		w = 1024
	}
	if h <= 0 {
		h = 512
	}
	return w, h
}

var palette = []drawing.Color{
	drawing.ColorFromHex("4F46E5"),
	drawing.ColorFromHex("10B981"),
	drawing.ColorFromHex("F59E0B"),
	drawing.ColorFromHex("EF4444"),
	drawing.ColorFromHex("8B5CF6"),
	drawing.ColorFromHex("06B6D4"),
	drawing.ColorFromHex("EC4899"),
	drawing.ColorFromHex("84CC16"),
}

var (
	passColor = drawing.ColorFromHex("00CC96")
	failColor = drawing.ColorFromHex("EF553B")
)

func colorAt(i int) drawing.Color {
	return palette[i%len(palette)]
}

// Render computes the data for kind from records and writes it as PNG.
// An empty record set returns apperrors.ErrNoData.
func Render(w io.Writer, kind string, records []models.EnrichedRecord, opt Options) error {
	switch kind {
	case KindSubjects:
		data, err := engine.SubjectAverages(records)
		if err != nil {
			return err
		}
		return SubjectBar(w, data, opt)
	case KindGrades:
		data, err := engine.GradeDistribution(records)
		if err != nil {
			return err
		}
		return GradePie(w, data, opt)
	case KindGender:
		data, err := engine.GroupByGender(records)
		if err != nil {
			return err
		}
		return GenderBar(w, data, opt)
	case KindAttendance:
		data, err := engine.AttendanceScatter(records)
		if err != nil {
			return err
		}
		return AttendanceScatter(w, data, opt)
	case KindStudyHours:
		data, err := engine.StudyHoursTrend(records)
		if err != nil {
			return err
		}
		return StudyHoursLine(w, data, opt)
	case KindTrend:
		data, err := engine.AverageTrend(records)
		if err != nil {
			return err
		}
		return AverageTrend(w, data, opt)
	}
	return fmt.Errorf("%w: %s", apperrors.ErrUnknownChart, kind)
}

// IsKind reports whether kind is a renderable chart.
func IsKind(kind string) bool {
	for _, k := range Kinds {
		if k == kind {
			return true
		}
	}
	return false
}

// marksRange covers 0..100, widened when values fall outside it.
func marksRange(values ...float64) *chart.ContinuousRange {
	lo, hi := 0.0, 100.0
	for _, v := range values {
		lo = math.Min(lo, v)
		hi = math.Max(hi, v)
	}
	return &chart.ContinuousRange{Min: lo, Max: hi}
}

// paddedRange never has a zero delta, which go-chart refuses to draw.
func paddedRange(values []float64) *chart.ContinuousRange {
	lo, hi := math.Inf(1), math.Inf(-1)
	for _, v := range values {
		lo = math.Min(lo, v)
		hi = math.Max(hi, v)
	}
	if lo == hi {
		lo, hi = lo-1, hi+1
	}
	return &chart.ContinuousRange{Min: lo, Max: hi}
}

func bar(w io.Writer, title string, bars []chart.Value, opt Options) error {
	if len(bars) == 0 {
		return apperrors.ErrNoData
	}

	values := make([]float64, 0, len(bars))
	for _, b := range bars {
		values = append(values, b.Value)
	}

	width, height := opt.size()
	c := chart.BarChart{
		Title:      title,
		Width:      width,
		Height:     height,
		BarWidth:   60,
		Background: chart.Style{Padding: chart.Box{Top: 40}},
		YAxis:      chart.YAxis{Range: marksRange(values...)},
		Bars:       bars,
	}
	return c.Render(chart.PNG, w)
}

func SubjectBar(w io.Writer, data []models.SubjectAverage, opt Options) error {
	bars := make([]chart.Value, 0, len(data))
	for i, d := range data {
		bars = append(bars, chart.Value{
			Label: d.Subject,
			Value: engine.Round2(d.Average),
			Style: chart.Style{FillColor: colorAt(i), StrokeColor: colorAt(i)},
		})
	}
	return bar(w, "Subject-wise Average Marks", bars, opt)
}

func GenderBar(w io.Writer, data []models.GenderAverage, opt Options) error {
	bars := make([]chart.Value, 0, len(data))
	for i, d := range data {
		bars = append(bars, chart.Value{
			Label: d.Gender,
			Value: engine.Round2(d.Average),
			Style: chart.Style{FillColor: colorAt(i), StrokeColor: colorAt(i)},
		})
	}
	return bar(w, "Gender-wise Average Comparison", bars, opt)
}

func GradePie(w io.Writer, data []models.GradeCount, opt Options) error {
	if len(data) == 0 {
		return apperrors.ErrNoData
	}

	values := make([]chart.Value, 0, len(data))
	for i, d := range data {
		values = append(values, chart.Value{
			Label: fmt.Sprintf("%s (%.1f%%)", d.Grade, d.Percentage),
			Value: float64(d.Count),
			Style: chart.Style{FillColor: colorAt(i)},
		})
	}

	width, height := opt.size()
	c := chart.PieChart{
		Title:  "Grade Distribution",
		Width:  width,
		Height: height,
		Values: values,
	}
	return c.Render(chart.PNG, w)
}

func AttendanceScatter(w io.Writer, data []models.ScatterPoint, opt Options) error {
	if len(data) == 0 {
		return apperrors.ErrNoData
	}

	groups := map[string]*chart.ContinuousSeries{
		models.ResultPass: {Name: models.ResultPass, Style: chart.Style{StrokeWidth: chart.Disabled, DotWidth: 5, DotColor: passColor}},
		models.ResultFail: {Name: models.ResultFail, Style: chart.Style{StrokeWidth: chart.Disabled, DotWidth: 5, DotColor: failColor}},
	}
	xs := make([]float64, 0, len(data))
	ys := make([]float64, 0, len(data))
	for _, p := range data {
		s, ok := groups[p.Result]
		if !ok {
			continue
		}
		s.XValues = append(s.XValues, p.Attendance)
		s.YValues = append(s.YValues, p.Average)
		xs = append(xs, p.Attendance)
		ys = append(ys, p.Average)
	}

	var series []chart.Series
	for _, key := range []string{models.ResultPass, models.ResultFail} {
		if len(groups[key].XValues) > 0 {
			series = append(series, *groups[key])
		}
	}

	return plot(w, "Attendance vs Average Marks", models.ColAttendance, paddedRange(xs), marksRange(ys...), series, opt)
}

func StudyHoursLine(w io.Writer, data []models.StudyHoursPoint, opt Options) error {
	if len(data) == 0 {
		return apperrors.ErrNoData
	}

	xs := make([]float64, 0, len(data))
	ys := make([]float64, 0, len(data))
	for _, p := range data {
		xs = append(xs, p.StudyHours)
		ys = append(ys, p.Average)
	}

	series := []chart.Series{chart.ContinuousSeries{
		Name:    models.ColAverage,
		XValues: xs,
		YValues: ys,
		Style:   chart.Style{StrokeColor: drawing.ColorFromHex("FF6347"), StrokeWidth: 2, DotWidth: 4, DotColor: drawing.ColorFromHex("FF6347")},
	}}
	return plot(w, "Study Hours vs Average Marks", models.ColStudyHours, paddedRange(xs), marksRange(ys...), series, opt)
}

func AverageTrend(w io.Writer, data []models.TrendPoint, opt Options) error {
	if len(data) == 0 {
		return apperrors.ErrNoData
	}

	xs := make([]float64, 0, len(data))
	ys := make([]float64, 0, len(data))
	for i, p := range data {
		xs = append(xs, float64(i+1))
		ys = append(ys, p.Average)
	}

	series := []chart.Series{chart.ContinuousSeries{
		Name:    models.ColAverage,
		XValues: xs,
		YValues: ys,
		Style:   chart.Style{StrokeColor: colorAt(0), StrokeWidth: 2, DotWidth: 3, DotColor: colorAt(0)},
	}}
	return plot(w, "Average Marks Trend by Student", "Students (ascending)", paddedRange(xs), marksRange(ys...), series, opt)
}

func plot(w io.Writer, title, xName string, xr, yr *chart.ContinuousRange, series []chart.Series, opt Options) error {
	if len(series) == 0 {
		return apperrors.ErrNoData
	}

	width, height := opt.size()
	c := chart.Chart{
		Title:      title,
		Width:      width,
		Height:     height,
		Background: chart.Style{Padding: chart.Box{Top: 40, Left: 16, Right: 12, Bottom: 16}},
		XAxis:      chart.XAxis{Name: xName, Range: xr},
		YAxis:      chart.YAxis{Name: models.ColAverage, Range: yr},
		Series:     series,
	}
	c.Elements = []chart.Renderable{chart.Legend(&c)}
	return c.Render(chart.PNG, w)
}
