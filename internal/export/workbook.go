// Package export writes the dashboard's derived tables to an xlsx workbook.
package export

import (
	"fmt"
	"io"

	"vgsales/internal/engine"
	"vgsales/internal/models"

	"github.com/xuri/excelize/v2"
)

const (
	SheetSummary    = "Summary"
	SheetGames      = "Top Games"
	SheetPublishers = "Top Publishers"
	SheetGenres     = "Genres"
	SheetSeries     = "Series"
)

// Workbook renders every derived view for the years [from, to] with result
// size k.
func Workbook(svc *engine.Service, from, to, k int) (*excelize.File, error) {
	summary, err := svc.Summary()
	if err != nil {
		return nil, err
	}
	games, err := svc.TopGames(from, to, k)
	if err != nil {
		return nil, err
	}
	publishers, err := svc.TopPublishers(from, to, k)
	if err != nil {
		return nil, err
	}
	genres, err := svc.TopGenres(from, to)
	if err != nil {
		return nil, err
	}
	series, err := svc.Series()
	if err != nil {
		return nil, err
	}

	f := excelize.NewFile()
	w := &sheetWriter{f: f}
	w.summary(summary)
	w.top(SheetGames, "Name", games, false)
	w.top(SheetPublishers, "Publisher", publishers, true)
	w.top(SheetGenres, "Genre", genres, false)
	w.series(series.PopularItems(true))
	if w.err == nil {
		w.err = f.DeleteSheet("Sheet1")
	}
	if w.err != nil {
		_ = f.Close()
		return nil, fmt.Errorf("build workbook: %w", w.err)
	}
	return f, nil
}

// Write renders the workbook straight to out.
func Write(out io.Writer, svc *engine.Service, from, to, k int) error {
	f, err := Workbook(svc, from, to, k)
	if err != nil {
		return err
	}
	defer f.Close()
	return f.Write(out)
}

// Save renders the workbook to path.
func Save(path string, svc *engine.Service, from, to, k int) error {
	f, err := Workbook(svc, from, to, k)
	if err != nil {
		return err
	}
	defer f.Close()
	return f.SaveAs(path)
}

// sheetWriter keeps the first error so the rendering code stays linear.
type sheetWriter struct {
	f   *excelize.File
	err error
}

func (w *sheetWriter) sheet(name string) {
	if w.err != nil {
		return
	}
	_, w.err = w.f.NewSheet(name)
}

func (w *sheetWriter) row(sheet string, r int, values ...interface{}) {
	if w.err != nil {
		return
	}
	cell, err := excelize.CoordinatesToCellName(1, r)
	if err != nil {
		w.err = err
		return
	}
	w.err = w.f.SetSheetRow(sheet, cell, &values)
}

func (w *sheetWriter) summary(s models.DatasetSummary) {
	w.sheet(SheetSummary)
	w.row(SheetSummary, 1, "Rows", s.Rows)
	w.row(SheetSummary, 2, "Columns", s.Columns)
	w.row(SheetSummary, 3, "First year", s.Years.Min)
	w.row(SheetSummary, 4, "Last year", s.Years.Max)
	w.row(SheetSummary, 6, "Column", "Count", "Sum", "Mean", "Std", "Min", "Median", "Max")
	for i, c := range s.Sales {
		w.row(SheetSummary, 7+i, c.Column, c.Count, c.Sum, c.Mean, c.Std, c.Min, c.Median, c.Max)
	}
}

// top stacks one block per sales column, separated by a blank row.
func (w *sheetWriter) top(sheet, keyTitle string, res models.TopResult, withCount bool) {
	w.sheet(sheet)
	r := 1
	for _, col := range engine.SalesColumns {
		items := res[string(col)]
		header := []interface{}{keyTitle, string(col)}
		if withCount {
			header = append(header, "Games")
		}
		w.row(sheet, r, header...)
		for i, it := range items {
			values := []interface{}{it.Key, it.Value}
			if withCount {
				values = append(values, it.Count)
			}
			w.row(sheet, r+1+i, values...)
		}
		r += len(items) + 2
	}
}

func (w *sheetWriter) series(items []models.SeriesItem) {
	w.sheet(SheetSeries)
	w.row(SheetSeries, 1, "Series", "Occurrences", "Members")
	for i, it := range items {
		values := []interface{}{it.Name, it.Occurrences}
		for _, m := range it.Members {
			values = append(values, m)
		}
		w.row(SheetSeries, 2+i, values...)
	}
}
