package engine

import (
	"fmt"
	"strings"

	"vgsales/internal/models"
)

const DefaultTopK = 10

// Options configures a Service.
type Options struct {
	Series SeriesOptions
	TopK   int
}

// Service answers the dashboard's questions over one loaded Dataset,
// memoizing derived views in a Cache.
type Service struct {
	data  *Dataset
	cache *Cache
	opts  Options
}

func NewService(data *Dataset, cache *Cache, opts Options) *Service {
	if cache == nil {
		cache = NewCache(nil)
	}
	if opts.TopK < 1 {
		opts.TopK = DefaultTopK
	}
	return &Service{data: data, cache: cache, opts: opts}
}

func (s *Service) Dataset() *Dataset { return s.data }

// DefaultK is the result size used when a caller does not pick one.
func (s *Service) DefaultK() int { return s.opts.TopK }

func (s *Service) table(trimmed bool) *Table {
	if trimmed {
		return s.data.Trimmed
	}
	return s.data.Cleaned
}

func columnsParam(cols []Field) string {
	parts := make([]string, len(cols))
	for i, c := range cols {
		parts[i] = string(c)
	}
	return strings.Join(parts, ",")
}

func (s *Service) YearBounds() (models.YearRange, error) {
	t := s.data.Cleaned
	return GetOrCompute(s.cache, CacheKey{Op: "years", Table: t.Fingerprint()}, func() (models.YearRange, error) {
		return YearBounds(t)
	})
}

func (s *Service) Summary() (models.DatasetSummary, error) {
	t := s.data.Cleaned
	return GetOrCompute(s.cache, CacheKey{Op: "describe", Table: t.Fingerprint()}, func() (models.DatasetSummary, error) {
		return Describe(t)
	})
}

// Rows pages through the cleaned or trimmed table.
func (s *Service) Rows(trimmed bool, limit, offset int) ([]models.Row, int) {
	t := s.table(trimmed)
	return Page(t, limit, offset), t.Len()
}

// Window returns the cleaned rows released in [from, to].
func (s *Service) Window(from, to int) (*Table, error) {
	t := s.data.Cleaned
	key := CacheKey{Op: "window", Table: t.Fingerprint(), Params: fmt.Sprintf("%d-%d", from, to)}
	return GetOrCompute(s.cache, key, func() (*Table, error) {
		return FilterYears(t, from, to)
	})
}

// Top runs a top-K aggregation over the cleaned rows released in [from, to].
func (s *Service) Top(req TopKRequest, from, to int) (models.TopResult, error) {
	if err := req.validate(); err != nil {
		return nil, err
	}
	w, err := s.Window(from, to)
	if err != nil {
		return nil, err
	}
	key := CacheKey{
		Op:     "top",
		Table:  w.Fingerprint(),
		Params: fmt.Sprintf("%s|%s|%d|%t", req.GroupBy, columnsParam(req.Columns), req.K, req.WithCount),
	}
	return GetOrCompute(s.cache, key, func() (models.TopResult, error) {
		return TopK(w, req)
	})
}

func (s *Service) TopGames(from, to, k int) (models.TopResult, error) {
	return s.Top(TopKRequest{GroupBy: FieldName, Columns: SalesColumns, K: k}, from, to)
}

func (s *Service) TopPublishers(from, to, k int) (models.TopResult, error) {
	return s.Top(TopKRequest{GroupBy: FieldPublisher, Columns: SalesColumns, K: k, WithCount: true}, from, to)
}

// TopGenres ranks every genre in the window.
func (s *Service) TopGenres(from, to int) (models.TopResult, error) {
	w, err := s.Window(from, to)
	if err != nil {
		return nil, err
	}
	if w.Len() == 0 {
		return nil, emptyTable("top genres")
	}
	return s.Top(TopKRequest{GroupBy: FieldGenre, Columns: SalesColumns, K: w.Len()}, from, to)
}

func (s *Service) YearlySales(columns []Field) (map[string][]models.YearlyItem, error) {
	t := s.data.Cleaned
	key := CacheKey{Op: "yearly", Table: t.Fingerprint(), Params: columnsParam(columns)}
	return GetOrCompute(s.cache, key, func() (map[string][]models.YearlyItem, error) {
		return YearlySales(t, columns)
	})
}

// Trend is served from the trimmed table so that rare publishers and
// platforms collapse into a single series.
func (s *Service) Trend(column, groupBy Field) ([]models.TrendPoint, error) {
	t := s.data.Trimmed
	key := CacheKey{Op: "trend", Table: t.Fingerprint(), Params: string(column) + "|" + string(groupBy)}
	return GetOrCompute(s.cache, key, func() ([]models.TrendPoint, error) {
		return Trend(t, column, groupBy)
	})
}

func (s *Service) Series() (*SeriesInference, error) {
	t := s.data.Cleaned
	key := CacheKey{Op: "series", Table: t.Fingerprint(), Params: fmt.Sprintf("wrap=%t", s.opts.Series.WrapAround)}
	return GetOrCompute(s.cache, key, func() (*SeriesInference, error) {
		return InferSeries(t, s.opts.Series)
	})
}

func (s *Service) SeriesRows(name string) ([]models.Row, error) {
	inf, err := s.Series()
	if err != nil {
		return nil, err
	}
	return SeriesRows(s.data.Cleaned, inf, name)
}
