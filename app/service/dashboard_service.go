package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"math"
	"sync/atomic"

	"github.com/gofiber/fiber/v2"

	"student-performance-dashboard/app/apperrors"
	"student-performance-dashboard/app/engine"
	"student-performance-dashboard/app/export"
	"student-performance-dashboard/app/models"
	"student-performance-dashboard/app/render"
	base "student-performance-dashboard/app/repository"
	cache "student-performance-dashboard/app/repository/redis"
	"student-performance-dashboard/logger"
)

const (
	defaultLimit = 10
	maxLimit     = 100
	defaultTopN  = 5
	noDataMsg    = "no data"
)

// DashboardService serves the filtered views of the current Table snapshot.
type DashboardService struct {
	source base.StudentSource
	cache  cache.ChartCache
	policy engine.ImputePolicy
	chart  render.Options
	table  atomic.Pointer[engine.Table]
}

func NewDashboardService(source base.StudentSource, chartCache cache.ChartCache, policy engine.ImputePolicy, chart render.Options) *DashboardService {
	if chartCache == nil {
		chartCache = cache.NoopCache{}
	}
	return &DashboardService{source: source, cache: chartCache, policy: policy, chart: chart}
}

// Load reads the source and swaps in a new snapshot. On failure the
// previous snapshot stays in place.
func (s *DashboardService) Load(ctx context.Context) (*engine.Table, error) {
	records, err := s.source.LoadStudents(ctx)
	if err != nil {
		return nil, err
	}

	table := engine.NewTable(records, s.policy)
	s.table.Store(table)

	log := logger.With("snapshot", table.ID().String())
	if table.Len() == 0 {
		log.Warn().Msg("student table is empty")
	}
	log.Info().
		Int("rows", table.Len()).
		Str("impute_policy", table.Policy().Name).
		Msg("student table loaded")
	return table, nil
}

// Table returns the current snapshot, or nil before the first Load.
func (s *DashboardService) Table() *engine.Table {
	return s.table.Load()
}

func (s *DashboardService) current() (*engine.Table, error) {
	table := s.table.Load()
	if table == nil {
		return nil, fiber.NewError(fiber.StatusServiceUnavailable, "student table not loaded")
	}
	return table, nil
}

func parseQuery(c *fiber.Ctx) (models.DashboardQuery, error) {
	var query models.DashboardQuery
	if err := c.QueryParser(&query); err != nil {
		return query, fiber.NewError(fiber.StatusBadRequest, "invalid query parameters")
	}

	if query.Page <= 0 {
		query.Page = 1
	}
	if query.Limit <= 0 {
		query.Limit = defaultLimit
	}
	if query.Limit > maxLimit {
		query.Limit = maxLimit
	}
	if query.N <= 0 {
		query.N = defaultTopN
	}
	if query.N > maxLimit {
		query.N = maxLimit
	}
	return query, nil
}

func criteria(q models.DashboardQuery) engine.Criteria {
	return engine.Criteria{Grade: q.Grade, Gender: q.Gender}
}

func respond(c *fiber.Ctx, table *engine.Table, q models.DashboardQuery, data interface{}, err error) error {
	resp := models.DataResponse{
		Snapshot: table.ID().String(),
		Filter:   models.FilterEcho{Grade: q.Grade, Gender: q.Gender},
	}

	if errors.Is(err, apperrors.ErrNoData) {
		resp.Message = noDataMsg
		return c.JSON(resp)
	}
	if err != nil {
		return err
	}

	resp.Data = data
	return c.JSON(resp)
}

// view resolves the snapshot, query and filtered records shared by every
// handler.
func (s *DashboardService) view(c *fiber.Ctx) (*engine.Table, models.DashboardQuery, []models.EnrichedRecord, error) {
	table, err := s.current()
	if err != nil {
		return nil, models.DashboardQuery{}, nil, err
	}
	query, err := parseQuery(c)
	if err != nil {
		return nil, query, nil, err
	}
	return table, query, table.Query(criteria(query)), nil
}

// GetKPIs returns the summary block of the filtered set.
func (s *DashboardService) GetKPIs(c *fiber.Ctx) error {
	table, query, records, err := s.view(c)
	if err != nil {
		return err
	}

	summary, err := engine.Summarize(records)
	return respond(c, table, query, summary, err)
}

// GetOptions lists the grades and genders of the whole table.
func (s *DashboardService) GetOptions(c *fiber.Ctx) error {
	table, err := s.current()
	if err != nil {
		return err
	}
	return c.JSON(models.DataResponse{Snapshot: table.ID().String(), Data: table.Options()})
}

// GetChartData returns the JSON series behind one chart.
func (s *DashboardService) GetChartData(c *fiber.Ctx) error {
	table, query, records, err := s.view(c)
	if err != nil {
		return err
	}

	var data interface{}
	switch kind := c.Params("kind"); kind {
	case render.KindSubjects:
		data, err = engine.SubjectAverages(records)
	case render.KindGrades:
		data, err = engine.GradeDistribution(records)
	case render.KindGender:
		data, err = engine.GroupByGender(records)
	case render.KindAttendance:
		data, err = engine.AttendanceScatter(records)
	case render.KindStudyHours:
		data, err = engine.StudyHoursTrend(records)
	case render.KindTrend:
		data, err = engine.AverageTrend(records)
	case "correlation":
		data, err = engine.CorrelationMatrix(records)
	default:
		return fiber.NewError(fiber.StatusNotFound, fmt.Sprintf("%s: %s", apperrors.ErrUnknownChart, kind))
	}
	return respond(c, table, query, data, err)
}

// GetChartPNG renders one chart as PNG, going through the chart cache.
func (s *DashboardService) GetChartPNG(c *fiber.Ctx) error {
	table, query, records, err := s.view(c)
	if err != nil {
		return err
	}

	kind := c.Params("kind")
	if !render.IsKind(kind) {
		return fiber.NewError(fiber.StatusNotFound, fmt.Sprintf("%s: %s", apperrors.ErrUnknownChart, kind))
	}
	if len(records) == 0 {
		return fiber.NewError(fiber.StatusNotFound, noDataMsg)
	}

	ctx := c.UserContext()
	key := cache.ChartKey(table.ID().String(), kind, query.Grade, query.Gender)
	if png, ok, err := s.cache.Get(ctx, key); err != nil {
		logger.Warn().Err(err).Str("key", key).Msg("chart cache read failed")
	} else if ok {
		c.Set(fiber.HeaderContentType, "image/png")
		return c.Send(png)
	}

	var buf bytes.Buffer
	if err := render.Render(&buf, kind, records, s.chart); err != nil {
		return err
	}
	if err := s.cache.Set(ctx, key, buf.Bytes()); err != nil {
		logger.Warn().Err(err).Str("key", key).Msg("chart cache write failed")
	}

	c.Set(fiber.HeaderContentType, "image/png")
	return c.Send(buf.Bytes())
}

// GetTopStudents returns the top-N table of the filtered set.
func (s *DashboardService) GetTopStudents(c *fiber.Ctx) error {
	table, query, records, err := s.view(c)
	if err != nil {
		return err
	}
	if len(records) == 0 {
		return respond(c, table, query, nil, apperrors.ErrNoData)
	}
	return respond(c, table, query, engine.TopStudents(records, query.N), nil)
}

// GetStudents pages through the filtered enriched table.
func (s *DashboardService) GetStudents(c *fiber.Ctx) error {
	_, query, records, err := s.view(c)
	if err != nil {
		return err
	}

	sorted := engine.SortRecords(records, query.Sort)
	total := len(sorted)
	offset := (query.Page - 1) * query.Limit

	page := []models.EnrichedRecord{}
	if offset < total {
		end := offset + query.Limit
		if end > total {
			end = total
		}
		page = sorted[offset:end]
	}

	return c.JSON(models.PaginatedResponse{
		Data: page,
		Meta: models.PaginationMeta{
			CurrentPage: query.Page,
			TotalPage:   int(math.Ceil(float64(total) / float64(query.Limit))),
			TotalData:   total,
			Limit:       query.Limit,
		},
	})
}

// ExportCSV downloads the filtered set as CSV.
func (s *DashboardService) ExportCSV(c *fiber.Ctx) error {
	_, _, records, err := s.view(c)
	if err != nil {
		return err
	}

	var buf bytes.Buffer
	if err := export.WriteCSV(&buf, records); err != nil {
		return err
	}
	c.Attachment(export.CSVFilename)
	c.Set(fiber.HeaderContentType, "text/csv")
	return c.Send(buf.Bytes())
}

// ExportXLSX downloads the filtered set as an Excel workbook.
func (s *DashboardService) ExportXLSX(c *fiber.Ctx) error {
	_, _, records, err := s.view(c)
	if err != nil {
		return err
	}

	var buf bytes.Buffer
	if err := export.WriteXLSX(&buf, records); err != nil {
		return err
	}
	c.Attachment(export.XLSXFilename)
	c.Set(fiber.HeaderContentType, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	return c.Send(buf.Bytes())
}

// Reload re-reads the source into a new snapshot.
func (s *DashboardService) Reload(c *fiber.Ctx) error {
	table, err := s.Load(c.UserContext())
	if err != nil {
		logger.Error().Err(err).Msg("reload failed, keeping previous snapshot")
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	return c.JSON(fiber.Map{
		"message":  "student table reloaded",
		"snapshot": table.ID().String(),
		"rows":     table.Len(),
		"loadedAt": table.LoadedAt(),
	})
}
