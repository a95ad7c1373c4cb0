package engine

import (
	"vgsales/internal/models"

	"github.com/montanaflynn/stats"
)

// Describe reports the shape of t and summary statistics for every sales
// column.
func Describe(t *Table) (models.DatasetSummary, error) {
	if t.Len() == 0 {
		return models.DatasetSummary{}, emptyTable("describe")
	}
	years, err := YearBounds(t)
	if err != nil {
		return models.DatasetSummary{}, err
	}

	summary := models.DatasetSummary{
		Rows:    t.Len(),
		Columns: len(Header),
		Years:   years,
		Sales:   make([]models.ColumnSummary, 0, len(SalesColumns)),
	}
	for _, col := range SalesColumns {
		data := make(stats.Float64Data, t.Len())
		for i := range t.rows {
			data[i] = salesValue(&t.rows[i], col)
		}
		cs, err := summarize(string(col), data)
		if err != nil {
			return models.DatasetSummary{}, err
		}
		summary.Sales = append(summary.Sales, cs)
	}
	return summary, nil
}

func summarize(column string, data stats.Float64Data) (models.ColumnSummary, error) {
	cs := models.ColumnSummary{Column: column, Count: data.Len()}
	var err error
	if cs.Sum, err = data.Sum(); err != nil {
		return cs, emptyTable("describe " + column)
	}
	if cs.Mean, err = data.Mean(); err != nil {
		return cs, emptyTable("describe " + column)
	}
	// sample deviation, matching what dataframe summaries report
	if data.Len() > 1 {
		if cs.Std, err = data.StandardDeviationSample(); err != nil {
			return cs, emptyTable("describe " + column)
		}
	}
	if cs.Min, err = data.Min(); err != nil {
		return cs, emptyTable("describe " + column)
	}
	if cs.Median, err = data.Median(); err != nil {
		return cs, emptyTable("describe " + column)
	}
	if cs.Max, err = data.Max(); err != nil {
		return cs, emptyTable("describe " + column)
	}
	return cs, nil
}
