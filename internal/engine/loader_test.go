package engine

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeCSV(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "vgsales.csv")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoad(t *testing.T) {
	ds, err := Load(writeCSV(t, sampleCSV), DefaultTrimOptions())
	require.NoError(t, err)

	// Rows 4, 5, 6 and 9 have a missing or unparseable cell.
	assert.Equal(t, 4, ds.Dropped)
	require.Equal(t, 5, ds.Cleaned.Len())
	require.Equal(t, 5, ds.Trimmed.Len())

	rows := ds.Cleaned.Rows()
	assert.Equal(t, "Wii Sports", rows[0].Name)
	assert.Equal(t, 2006, rows[0].Year)
	assert.InDelta(t, 82.74, rows[0].GlobalSales, 1e-9)
	assert.Equal(t, "Pokemon Red/Pokemon Blue", rows[2].Name)

	remake := rows[3]
	assert.Equal(t, 7, remake.Rank)
	assert.Equal(t, "Final Fantasy VII: Remake", remake.Name)
	assert.Equal(t, 2020, remake.Year)
	assert.Equal(t, "Square Enix, Inc.", remake.Publisher)

	for _, r := range rows {
		assert.NotEmpty(t, r.Name)
		assert.NotEmpty(t, r.Platform)
		assert.NotEmpty(t, r.Genre)
		assert.NotEmpty(t, r.Publisher)
	}

	// Every publisher and platform is below the default thresholds here.
	for _, r := range ds.Trimmed.Rows() {
		assert.Equal(t, OtherPublisher, r.Publisher)
		assert.Equal(t, OtherPlatform, r.Platform)
	}
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.csv"), DefaultTrimOptions())
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrDataUnavailable)
	assert.Equal(t, CodeDataUnavailable, CodeOf(err))
}

func TestParseHeader(t *testing.T) {
	tests := []struct {
		name    string
		content string
		wantErr bool
	}{
		{"empty file", "", true},
		{"renamed column", "Rank,Title,Platform,Year,Genre,Publisher,NA_Sales,EU_Sales,JP_Sales,Other_Sales,Global_Sales\n", true},
		{"missing column", "Rank,Name,Platform,Year,Genre,Publisher,NA_Sales,EU_Sales,JP_Sales,Other_Sales\n", true},
		{"header only", "Rank,Name,Platform,Year,Genre,Publisher,NA_Sales,EU_Sales,JP_Sales,Other_Sales,Global_Sales\n", false},
		{"crlf and bom", "\xef\xbb\xbfRank,Name,Platform,Year,Genre,Publisher,NA_Sales,EU_Sales,JP_Sales,Other_Sales,Global_Sales\r\n", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rows, _, err := Parse([]byte(tt.content))
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrDataUnavailable)
				return
			}
			require.NoError(t, err)
			assert.Empty(t, rows)
		})
	}
}

func TestParseMalformedRecords(t *testing.T) {
	const header = "Rank,Name,Platform,Year,Genre,Publisher,NA_Sales,EU_Sales,JP_Sales,Other_Sales,Global_Sales\n"
	const good = "1,Wii Sports,Wii,2006,Sports,Nintendo,41.49,29.02,3.77,8.46,82.74\n"

	tests := []struct {
		name        string
		record      string
		wantRows    int
		wantDropped int
		wantName    string
	}{
		{"short record", "2,Broken,Wii,2006,Sports\n", 2, 1, ""},
		{"long record", "2,Broken,Wii,2006,Sports,Nintendo,1,1,1,1,4,extra\n", 2, 1, ""},
		{"bare quote", `2,Say "Hi" Party,Wii,2006,Party,Nintendo,1,1,1,1,4` + "\n", 3, 0, `Say "Hi" Party`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rows, dropped, err := Parse([]byte(header + good + tt.record + good))
			require.NoError(t, err)
			require.Len(t, rows, tt.wantRows)
			assert.Equal(t, tt.wantDropped, dropped)
			assert.Equal(t, "Wii Sports", rows[0].Name)
			if tt.wantName != "" {
				assert.Equal(t, tt.wantName, rows[1].Name)
			}
		})
	}
}

func TestParseNumbers(t *testing.T) {
	n, ok := parseInt("2006")
	assert.True(t, ok)
	assert.Equal(t, 2006, n)

	n, ok = parseInt("1998.0")
	assert.True(t, ok)
	assert.Equal(t, 1998, n)

	_, ok = parseInt("1998.5")
	assert.False(t, ok)
	_, ok = parseInt("1e300")
	assert.False(t, ok)
	_, ok = parseInt("99999999999")
	assert.False(t, ok)

	f, ok := parseSales("123.45")
	assert.True(t, ok)
	assert.InDelta(t, 123.45, f, 1e-9)

	_, ok = parseSales("-1")
	assert.False(t, ok)
	_, ok = parseSales("Inf")
	assert.False(t, ok)
}
