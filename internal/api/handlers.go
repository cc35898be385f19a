package api

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"bazi/internal/almanac"
	"bazi/internal/bazi"
	"bazi/internal/engine"
	"bazi/internal/models"
	"bazi/internal/render"
	"bazi/internal/sexagenary"

	"github.com/araddon/dateparse"
	"github.com/goodsign/monday"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

// Dataset is the view of the mapping cache the handlers need.
type Dataset interface {
	bazi.Mapper
	Ready() bool
	Err() error
	Years() []int
	Stats() engine.Stats
}

type Handler struct {
	calc *bazi.Calculator
	data Dataset
	log  *zap.Logger
}

func NewHandler(calc *bazi.Calculator, data Dataset, log *zap.Logger) *Handler {
	return &Handler{calc: calc, data: data, log: log}
}

func (h *Handler) RegisterRoutes(e *echo.Echo) {
	e.GET("/healthz", h.Health)

	api := e.Group("/api")
	api.POST("/chart", h.PostChart)
	api.GET("/chart", h.GetChart)
	api.GET("/pillars/year/:year", h.GetYearPillar)
	api.GET("/pillars/cycle", h.GetCycle)
	api.GET("/mapping/:date", h.GetMapping)
}

// --- HANDLERS ---
func getPaginationParams(c echo.Context, defaultLimit int) (int, int) {
	limit, err := strconv.Atoi(c.QueryParam("limit"))
	if err != nil || limit <= 0 {
		limit = defaultLimit
	}
	offset, err := strconv.Atoi(c.QueryParam("offset"))
	if err != nil || offset < 0 {
		offset = 0
	}
	return limit, offset
}

// Health is 200 once the dataset is in memory, 503 while it loads and 500
// if loading failed.
func (h *Handler) Health(c echo.Context) error {
	st := h.data.Stats()
	out := models.Health{
		Status: "ok",
		Years:  h.data.Years(),
		Dates:  st.Dates,
		Loads:  st.Loads,
		Hits:   st.Hits,
		Misses: st.Misses,
	}
	if err := h.data.Err(); err != nil {
		out.Status = "failed"
		out.Error = err.Error()
		return c.JSON(http.StatusInternalServerError, out)
	}
	if !h.data.Ready() {
		out.Status = "loading"
		return c.JSON(http.StatusServiceUnavailable, out)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *Handler) PostChart(c echo.Context) error {
	var req models.ChartRequest
	if err := c.Bind(&req); err != nil {
		return h.fail(c, &bazi.ValidationError{Field: "body", Value: "", Reason: "malformed JSON"})
	}
	for _, f := range []struct {
		name string
		v    *int
	}{{"year", req.Year}, {"month", req.Month}, {"day", req.Day}, {"hour", req.Hour}} {
		if f.v == nil {
			return h.fail(c, &bazi.ValidationError{Field: f.name, Value: "", Reason: "required"})
		}
	}
	gender, err := bazi.ParseGender(req.Gender)
	if err != nil {
		return h.fail(c, err)
	}
	return h.chart(c, bazi.Input{
		Year:   *req.Year,
		Month:  *req.Month,
		Day:    *req.Day,
		Hour:   *req.Hour,
		Minute: req.Minute,
		Gender: gender,
	})
}

// GetChart accepts ?date= in any common layout ("1990-05-10", "May 10 1990",
// "1990-05-10 12:30"). hour and minute override the time of day in date.
func (h *Handler) GetChart(c echo.Context) error {
	raw := strings.TrimSpace(c.QueryParam("date"))
	if raw == "" {
		return h.fail(c, &bazi.ValidationError{Field: "date", Value: raw, Reason: "required"})
	}
	t, err := dateparse.ParseIn(raw, almanac.ChinaStandardTime)
	if err != nil {
		return h.fail(c, &bazi.ValidationError{Field: "date", Value: raw, Reason: "unrecognized date"})
	}
	gender, err := bazi.ParseGender(c.QueryParam("gender"))
	if err != nil {
		return h.fail(c, err)
	}

	in := bazi.Input{
		Year:   t.Year(),
		Month:  int(t.Month()),
		Day:    t.Day(),
		Hour:   t.Hour(),
		Minute: t.Minute(),
		Gender: gender,
	}
	if in.Hour, err = intParam(c, "hour", in.Hour); err != nil {
		return h.fail(c, err)
	}
	if in.Minute, err = intParam(c, "minute", in.Minute); err != nil {
		return h.fail(c, err)
	}
	return h.chart(c, in)
}

func (h *Handler) chart(c echo.Context, in bazi.Input) error {
	if err := h.calc.Validate(in); err != nil {
		return h.fail(c, err)
	}
	if !h.data.Ready() {
		return h.notReady(c)
	}

	res, err := h.calc.Calculate(in)
	if err != nil {
		return h.fail(c, err)
	}
	locale := render.ParseLocale(c.QueryParam("locale"))
	return c.JSON(http.StatusOK, chartResponse(res, locale))
}

func (h *Handler) GetYearPillar(c echo.Context) error {
	year, err := strconv.Atoi(c.Param("year"))
	if err != nil {
		return h.fail(c, &bazi.ValidationError{Field: "year", Value: c.Param("year"), Reason: "must be an integer"})
	}
	return c.JSON(http.StatusOK, models.YearPillar{Year: year, PillarView: pillarView(sexagenary.YearPillar(year))})
}

// GetCycle lists the sixty pillars in cycle order, paginated.
func (h *Handler) GetCycle(c echo.Context) error {
	limit, offset := getPaginationParams(c, sexagenary.CycleLength)
	limit = min(limit, sexagenary.CycleLength)
	page := models.Page[models.PillarView]{
		Data:   []models.PillarView{},
		Total:  sexagenary.CycleLength,
		Limit:  limit,
		Offset: offset,
	}
	for i := offset; i < sexagenary.CycleLength && i < offset+limit; i++ {
		page.Data = append(page.Data, pillarView(sexagenary.FromCyclePosition(i)))
	}
	return c.JSON(http.StatusOK, page)
}

// GetMapping exposes the raw table entry for a civil date.
func (h *Handler) GetMapping(c echo.Context) error {
	y, m, d, err := engine.ParseKey(c.Param("date"))
	if err != nil {
		return h.fail(c, &bazi.ValidationError{Field: "date", Value: c.Param("date"), Reason: "want YYYY-MM-DD"})
	}
	if !h.data.Ready() {
		return h.notReady(c)
	}
	e, err := h.data.Mapping(y, m, d)
	if err != nil {
		if errors.Is(err, engine.ErrMappingNotFound) {
			err = &bazi.CoverageError{Year: y, Month: m, Day: d, Err: err}
		}
		return h.fail(c, err)
	}

	out := models.MappingResponse{
		Date:  fmt.Sprintf("%04d-%02d-%02d", y, m, d),
		Day:   sexagenary.FromCyclePosition(e.Day).String(),
		Month: sexagenary.FromCyclePosition(e.Month).String(),
	}
	if e.Term != nil {
		out.Term = &models.TermView{
			Name:   almanac.TermName(e.Term.Index),
			Time:   fmt.Sprintf("%02d:%02d", e.Term.Minute/60, e.Term.Minute%60),
			Minute: e.Term.Minute,
			Opens:  e.Term.Opens(),
		}
		if e.Term.Opens() {
			out.MonthAfter = sexagenary.FromCyclePosition(e.MonthAt(e.Term.Minute)).String()
		}
	}
	return c.JSON(http.StatusOK, out)
}

func intParam(c echo.Context, name string, def int) (int, error) {
	raw := c.QueryParam(name)
	if raw == "" {
		return def, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, &bazi.ValidationError{Field: name, Value: raw, Reason: "must be an integer"}
	}
	return n, nil
}

func chartResponse(res *bazi.Result, locale monday.Locale) models.ChartResponse {
	ch := res.Chart
	return models.ChartResponse{
		Chart: models.ChartView{
			Input:   ch.Input,
			Year:    pillarView(ch.Year),
			Month:   pillarView(ch.Month),
			Day:     pillarView(ch.Day),
			Hour:    pillarView(ch.Hour),
			Stacked: ch.Stacked(),
		},
		Analysis:          res.Analysis,
		DisplayString:     res.Display,
		ChineseCharacters: ch.Compact(),
		English:           render.English(ch),
		BirthLine:         render.BirthLine(ch.Input, locale),
	}
}

func pillarView(p sexagenary.Pillar) models.PillarView {
	return models.PillarView{
		Pillar:   p.String(),
		Pinyin:   p.Pinyin(),
		Stem:     p.Stem().String(),
		Branch:   p.Branch().String(),
		Element:  p.Stem().Element().String(),
		Polarity: p.Stem().Polarity().String(),
		Animal:   p.Branch().Animal(),
		Position: p.Position(),
	}
}
