package api

import (
	"net/http"
	"net/url"
	"strconv"
	"sync/atomic"

	"vgsales/internal/engine"
	"vgsales/internal/export"
	"vgsales/internal/models"

	"github.com/labstack/echo/v4"
)

type Handler struct {
	svc atomic.Pointer[engine.Service]
}

// NewHandler accepts a nil service; the API then answers 503 until
// SetService is called.
func NewHandler(svc *engine.Service) *Handler {
	h := &Handler{}
	if svc != nil {
		h.svc.Store(svc)
	}
	return h
}

func (h *Handler) SetService(svc *engine.Service) {
	h.svc.Store(svc)
}

func (h *Handler) service() (*engine.Service, error) {
	svc := h.svc.Load()
	if svc == nil {
		return nil, errLoading
	}
	return svc, nil
}

func (h *Handler) RegisterRoutes(e *echo.Echo) {
	e.GET("/healthz", h.Health)

	api := e.Group("/api")
	api.GET("/dataset", h.GetDataset)
	api.GET("/dataset/rows", h.GetRows)
	api.GET("/years", h.GetYears)
	api.GET("/sales/yearly", h.GetYearlySales)
	api.GET("/trends", h.GetTrend)
	api.GET("/top", h.GetTop)
	api.GET("/top/games", h.GetTopGames)
	api.GET("/top/genres", h.GetTopGenres)
	api.GET("/top/publishers", h.GetTopPublishers)
	api.GET("/series", h.GetSeries)
	api.GET("/series/:name", h.GetSeriesRows)
	api.GET("/export.xlsx", h.GetExport)
}

// --- HANDLERS ---

func (h *Handler) Health(c echo.Context) error {
	if h.svc.Load() == nil {
		return c.JSON(http.StatusServiceUnavailable, map[string]string{"status": "loading"})
	}
	return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
}

func (h *Handler) GetDataset(c echo.Context) error {
	svc, err := h.service()
	if err != nil {
		return err
	}
	summary, err := svc.Summary()
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, summary)
}

// raw rows, optionally from the trimmed table
func (h *Handler) GetRows(c echo.Context) error {
	svc, err := h.service()
	if err != nil {
		return err
	}
	trimmed, _ := strconv.ParseBool(c.QueryParam("trimmed"))
	limit, offset := getPaginationParams(c, 100)
	rows, total := svc.Rows(trimmed, limit, offset)
	return c.JSON(http.StatusOK, models.Page{Data: rows, Total: total, Limit: limit, Offset: offset})
}

func (h *Handler) GetYears(c echo.Context) error {
	svc, err := h.service()
	if err != nil {
		return err
	}
	yr, err := svc.YearBounds()
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, yr)
}

func (h *Handler) GetYearlySales(c echo.Context) error {
	svc, err := h.service()
	if err != nil {
		return err
	}
	cols, err := salesColumns(c.QueryParam("columns"))
	if err != nil {
		return err
	}
	out, err := svc.YearlySales(cols)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, out)
}

func (h *Handler) GetTrend(c echo.Context) error {
	svc, err := h.service()
	if err != nil {
		return err
	}
	var q trendQuery
	if err := bindQuery(c, &q); err != nil {
		return err
	}
	column, groupBy := engine.FieldGlobalSales, engine.FieldPlatform
	if q.Column != "" {
		column = engine.Field(q.Column)
	}
	if q.GroupBy != "" {
		groupBy = engine.Field(q.GroupBy)
	}
	points, err := svc.Trend(column, groupBy)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, points)
}

func (h *Handler) GetTop(c echo.Context) error {
	svc, err := h.service()
	if err != nil {
		return err
	}
	var q topQuery
	if err := bindQuery(c, &q); err != nil {
		return err
	}
	from, to, k, err := q.window(svc)
	if err != nil {
		return err
	}
	cols, err := salesColumns(q.Columns)
	if err != nil {
		return err
	}
	req := engine.TopKRequest{GroupBy: engine.FieldName, Columns: cols, K: k}
	if q.GroupBy != "" {
		req.GroupBy = engine.Field(q.GroupBy)
	}
	req.WithCount, _ = strconv.ParseBool(q.Count)

	res, err := svc.Top(req, from, to)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, res)
}

// top games per region
func (h *Handler) GetTopGames(c echo.Context) error {
	return h.windowed(c, func(svc *engine.Service, from, to, k int) (models.TopResult, error) {
		return svc.TopGames(from, to, k)
	})
}

// every genre per region; k is ignored
func (h *Handler) GetTopGenres(c echo.Context) error {
	return h.windowed(c, func(svc *engine.Service, from, to, _ int) (models.TopResult, error) {
		return svc.TopGenres(from, to)
	})
}

// top publishers per region, with released-game counts
func (h *Handler) GetTopPublishers(c echo.Context) error {
	return h.windowed(c, func(svc *engine.Service, from, to, k int) (models.TopResult, error) {
		return svc.TopPublishers(from, to, k)
	})
}

func (h *Handler) windowed(c echo.Context, fn func(svc *engine.Service, from, to, k int) (models.TopResult, error)) error {
	svc, err := h.service()
	if err != nil {
		return err
	}
	var q WindowQuery
	if err := bindQuery(c, &q); err != nil {
		return err
	}
	from, to, k, err := q.window(svc)
	if err != nil {
		return err
	}
	res, err := fn(svc, from, to, k)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, res)
}

func (h *Handler) GetSeries(c echo.Context) error {
	svc, err := h.service()
	if err != nil {
		return err
	}
	inf, err := svc.Series()
	if err != nil {
		return err
	}
	withMembers, _ := strconv.ParseBool(c.QueryParam("members"))
	return c.JSON(http.StatusOK, inf.PopularItems(withMembers))
}

func (h *Handler) GetSeriesRows(c echo.Context) error {
	svc, err := h.service()
	if err != nil {
		return err
	}
	name := c.Param("name")
	if unescaped, err := url.PathUnescape(name); err == nil {
		name = unescaped
	}
	rows, err := svc.SeriesRows(name)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, rows)
}

func (h *Handler) GetExport(c echo.Context) error {
	svc, err := h.service()
	if err != nil {
		return err
	}
	var q WindowQuery
	if err := bindQuery(c, &q); err != nil {
		return err
	}
	from, to, k, err := q.window(svc)
	if err != nil {
		return err
	}
	f, err := export.Workbook(svc, from, to, k)
	if err != nil {
		return err
	}
	defer f.Close()

	c.Response().Header().Set(echo.HeaderContentType, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Response().Header().Set(echo.HeaderContentDisposition, `attachment; filename="vgsales.xlsx"`)
	c.Response().WriteHeader(http.StatusOK)
	return f.Write(c.Response())
}
