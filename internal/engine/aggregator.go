package engine

import (
	"sort"

	"vgsales/internal/models"
)

// TopKRequest describes one group-by-then-top-K aggregation.
type TopKRequest struct {
	GroupBy Field
	Columns []Field
	K       int
	// WithCount carries the number of rows in each group, e.g. the games
	// a publisher released.
	WithCount bool
}

func (req TopKRequest) validate() error {
	if req.K < 1 {
		return invalidParameter("k must be at least 1, got %d", req.K)
	}
	if _, err := ParseGroupField(string(req.GroupBy)); err != nil {
		return err
	}
	if len(req.Columns) == 0 {
		return invalidParameter("at least one sales column is required")
	}
	for _, c := range req.Columns {
		if _, err := ParseSalesColumn(string(c)); err != nil {
			return err
		}
	}
	return nil
}

// encoding maps every row to a dense group ID, assigned in encounter order.
type encoding struct {
	ids    []int32
	dict   []string
	counts []int
}

func encode(rows []models.Row, f Field) encoding {
	enc := encoding{ids: make([]int32, len(rows))}
	index := make(map[string]int32)
	for j := range rows {
		key := groupValue(&rows[j], f)
		id, ok := index[key]
		if !ok {
			id = int32(len(enc.dict))
			enc.dict = append(enc.dict, key)
			enc.counts = append(enc.counts, 0)
			index[key] = id
		}
		enc.ids[j] = id
		enc.counts[id]++
	}
	return enc
}

// TopK groups rows by req.GroupBy and, for each requested column
// independently, returns the K groups with the largest summed sales. Ties
// keep the order in which groups were first encountered.
func TopK(t *Table, req TopKRequest) (models.TopResult, error) {
	if err := req.validate(); err != nil {
		return nil, err
	}
	if t.Len() == 0 {
		return nil, emptyTable("top-k")
	}

	rows := t.rows
	enc := encode(rows, req.GroupBy)
	numGroups := len(enc.dict)

	result := make(models.TopResult, len(req.Columns))
	for _, col := range req.Columns {
		sums := make([]float64, numGroups)
		for j := range rows {
			sums[enc.ids[j]] += salesValue(&rows[j], col)
		}

		items := make([]models.TopItem, numGroups)
		for id, key := range enc.dict {
			items[id] = models.TopItem{Key: key, Value: sums[id]}
			if req.WithCount {
				items[id].Count = enc.counts[id]
			}
		}
		sort.SliceStable(items, func(a, b int) bool { return items[a].Value > items[b].Value })
		if len(items) > req.K {
			items = items[:req.K]
		}
		result[string(col)] = items
	}
	return result, nil
}
