package engine

import (
	"vgsales/internal/models"

	"github.com/montanaflynn/stats"
)

// YearBounds returns the smallest and largest release year in t.
func YearBounds(t *Table) (models.YearRange, error) {
	if t.Len() == 0 {
		return models.YearRange{}, emptyTable("year bounds")
	}
	years := make(stats.Float64Data, t.Len())
	for i := range t.rows {
		years[i] = float64(t.rows[i].Year)
	}
	lo, err := years.Min()
	if err != nil {
		return models.YearRange{}, emptyTable("year bounds")
	}
	hi, err := years.Max()
	if err != nil {
		return models.YearRange{}, emptyTable("year bounds")
	}
	return models.YearRange{Min: int(lo), Max: int(hi)}, nil
}
