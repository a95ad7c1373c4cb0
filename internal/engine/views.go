package engine

import (
	"sort"

	"vgsales/internal/models"
)

// YearlySales sums each column per release year, years ascending.
func YearlySales(t *Table, columns []Field) (map[string][]models.YearlyItem, error) {
	if len(columns) == 0 {
		return nil, invalidParameter("at least one sales column is required")
	}
	for _, c := range columns {
		if _, err := ParseSalesColumn(string(c)); err != nil {
			return nil, err
		}
	}
	if t.Len() == 0 {
		return nil, emptyTable("yearly sales")
	}

	years := make([]int, 0)
	index := make(map[int]int)
	for i := range t.rows {
		y := t.rows[i].Year
		if _, ok := index[y]; !ok {
			index[y] = len(years)
			years = append(years, y)
		}
	}

	out := make(map[string][]models.YearlyItem, len(columns))
	for _, col := range columns {
		sums := make([]float64, len(years))
		for i := range t.rows {
			sums[index[t.rows[i].Year]] += salesValue(&t.rows[i], col)
		}
		items := make([]models.YearlyItem, len(years))
		for k, y := range years {
			items[k] = models.YearlyItem{Year: y, Sales: sums[k]}
		}
		sort.Slice(items, func(a, b int) bool { return items[a].Year < items[b].Year })
		out[string(col)] = items
	}
	return out, nil
}

// Trend sums one sales column per (year, group) pair. Points are ordered by
// year, then by the order in which the group was first seen.
func Trend(t *Table, column, groupBy Field) ([]models.TrendPoint, error) {
	if _, err := ParseSalesColumn(string(column)); err != nil {
		return nil, err
	}
	if _, err := ParseGroupField(string(groupBy)); err != nil {
		return nil, err
	}
	if t.Len() == 0 {
		return nil, emptyTable("trend")
	}

	type cell struct {
		year  int
		group int32
	}
	enc := encode(t.rows, groupBy)
	index := make(map[cell]int)
	points := make([]models.TrendPoint, 0)
	order := make([]int32, 0)
	for i := range t.rows {
		k := cell{year: t.rows[i].Year, group: enc.ids[i]}
		p, ok := index[k]
		if !ok {
			p = len(points)
			index[k] = p
			points = append(points, models.TrendPoint{Year: k.year, Group: enc.dict[k.group]})
			order = append(order, k.group)
		}
		points[p].Sales += salesValue(&t.rows[i], column)
	}

	idx := make([]int, len(points))
	for i := range idx {
		idx[i] = i
	}
	sort.SliceStable(idx, func(a, b int) bool {
		pa, pb := points[idx[a]], points[idx[b]]
		if pa.Year != pb.Year {
			return pa.Year < pb.Year
		}
		return order[idx[a]] < order[idx[b]]
	})
	sorted := make([]models.TrendPoint, len(points))
	for i, j := range idx {
		sorted[i] = points[j]
	}
	return sorted, nil
}
