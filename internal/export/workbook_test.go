package export

import (
	"bytes"
	"path/filepath"
	"testing"

	"vgsales/internal/engine"
	"vgsales/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func testService() *engine.Service {
	rows := []models.Row{
		{Rank: 1, Name: "Halo 2", Platform: "XB", Year: 2004, Genre: "Shooter", Publisher: "Microsoft", NASales: 6.8, GlobalSales: 8.5},
		{Rank: 2, Name: "Halo 3", Platform: "X360", Year: 2007, Genre: "Shooter", Publisher: "Microsoft", NASales: 7.9, GlobalSales: 12.25},
		{Rank: 3, Name: "Tetris", Platform: "GB", Year: 1989, Genre: "Puzzle", Publisher: "Nintendo", NASales: 23.2, GlobalSales: 30.3},
	}
	cleaned := engine.NewTable(rows)
	trimmed, _ := engine.Trim(cleaned, engine.DefaultTrimOptions())
	return engine.NewService(&engine.Dataset{Cleaned: cleaned, Trimmed: trimmed}, nil,
		engine.Options{Series: engine.DefaultSeriesOptions(), TopK: 5})
}

func TestSave(t *testing.T) {
	path := filepath.Join(t.TempDir(), "report.xlsx")
	require.NoError(t, Save(path, testService(), 1980, 2010, 5))

	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer f.Close()

	assert.Equal(t, []string{SheetSummary, SheetGames, SheetPublishers, SheetGenres, SheetSeries}, f.GetSheetList())

	games, err := f.GetRows(SheetGames)
	require.NoError(t, err)
	require.GreaterOrEqual(t, len(games), 4)
	assert.Equal(t, []string{"Name", "Global_Sales"}, games[0])
	assert.Equal(t, "Tetris", games[1][0])

	pubs, err := f.GetRows(SheetPublishers)
	require.NoError(t, err)
	assert.Equal(t, []string{"Publisher", "Global_Sales", "Games"}, pubs[0])
	assert.Equal(t, []string{"Microsoft", "20.75", "2"}, pubs[1])

	series, err := f.GetRows(SheetSeries)
	require.NoError(t, err)
	require.Len(t, series, 2)
	assert.Equal(t, "Halo", series[1][0])
	assert.Equal(t, "2", series[1][1])
}

func TestWriteEmptyWindow(t *testing.T) {
	var buf bytes.Buffer
	err := Write(&buf, testService(), 1950, 1960, 5)
	assert.ErrorIs(t, err, engine.ErrEmptyTable)
	assert.Zero(t, buf.Len())
}
