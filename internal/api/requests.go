package api

import (
	"strconv"
	"strings"

	"vgsales/internal/engine"

	"github.com/labstack/echo/v4"
)

// WindowQuery is the year range and result size most views accept. It is
// exported so echo binds it when embedded.
type WindowQuery struct {
	From string `query:"from" validate:"omitempty,number"`
	To   string `query:"to" validate:"omitempty,number"`
	K    string `query:"k" validate:"omitempty,number"`
}

type topQuery struct {
	WindowQuery
	GroupBy string `query:"group_by" validate:"omitempty,oneof=Name Platform Year Genre Publisher"`
	Columns string `query:"columns"`
	Count   string `query:"count" validate:"omitempty,boolean"`
}

type trendQuery struct {
	Column  string `query:"column" validate:"omitempty,oneof=Global_Sales NA_Sales EU_Sales JP_Sales Other_Sales"`
	GroupBy string `query:"group_by" validate:"omitempty,oneof=Platform Genre Publisher"`
}

func bindQuery(c echo.Context, req interface{}) error {
	if err := c.Bind(req); err != nil {
		return &engine.Error{Code: engine.CodeInvalidParameter, Message: "malformed query", Cause: err}
	}
	if err := c.Validate(req); err != nil {
		return &engine.Error{Code: engine.CodeInvalidParameter, Message: "invalid query", Cause: err}
	}
	return nil
}

// window resolves a missing bound to the dataset's year bounds and a
// missing k to the service default.
func (q WindowQuery) window(svc *engine.Service) (from, to, k int, err error) {
	bounds, err := svc.YearBounds()
	if err != nil {
		return 0, 0, 0, err
	}
	if from, err = intOr(q.From, "from", bounds.Min); err != nil {
		return 0, 0, 0, err
	}
	if to, err = intOr(q.To, "to", bounds.Max); err != nil {
		return 0, 0, 0, err
	}
	if k, err = intOr(q.K, "k", svc.DefaultK()); err != nil {
		return 0, 0, 0, err
	}
	return from, to, k, nil
}

func intOr(s, name string, def int) (int, error) {
	if s == "" {
		return def, nil
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, &engine.Error{Code: engine.CodeInvalidParameter, Message: name + " must be an integer", Cause: err}
	}
	return n, nil
}

// salesColumns parses a comma-separated column list, defaulting to all.
func salesColumns(s string) ([]engine.Field, error) {
	if strings.TrimSpace(s) == "" {
		return engine.SalesColumns, nil
	}
	parts := strings.Split(s, ",")
	cols := make([]engine.Field, 0, len(parts))
	for _, p := range parts {
		f, err := engine.ParseSalesColumn(strings.TrimSpace(p))
		if err != nil {
			return nil, err
		}
		cols = append(cols, f)
	}
	return cols, nil
}

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
