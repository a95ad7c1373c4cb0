package engine

import (
	"bytes"
	stdcsv "encoding/csv"
	"errors"
	"io"
	"math"
	"os"
	"strconv"
	"strings"
	"time"

	"vgsales/internal/models"

	"github.com/apache/arrow/go/v17/arrow"
	"github.com/apache/arrow/go/v17/arrow/array"
	"github.com/apache/arrow/go/v17/arrow/csv"
	"github.com/apache/arrow/go/v17/arrow/memory"
	"github.com/labstack/gommon/log"
)

// chunkRows is the number of CSV records decoded per arrow record batch.
const chunkRows = 4096

// nullTokens are the cell spellings treated as missing values.
var nullTokens = []string{"", "N/A", "NA", "n/a", "NaN", "nan", "null", "NULL", "None", "#N/A", "<NA>"}

// Dataset is the pair of tables every view is derived from.
type Dataset struct {
	Cleaned *Table
	Trimmed *Table
	// Dropped counts records discarded for missing or unparseable cells.
	Dropped int
}

// Load reads the CSV at path, drops incomplete records and builds the
// trimmed variant.
func Load(path string, opts TrimOptions) (*Dataset, error) {
	start := time.Now()
	log.Infof("Loading data from %s", path)

	content, err := os.ReadFile(path)
	if err != nil {
		return nil, dataUnavailable(err, "read %s", path)
	}

	rows, dropped, err := Parse(content)
	if err != nil {
		return nil, err
	}

	cleaned := NewTable(rows)
	trimmed, err := Trim(cleaned, opts)
	if err != nil {
		return nil, err
	}

	log.Infof("Load complete. Rows: %d. Dropped: %d. Time: %v", len(rows), dropped, time.Since(start))
	return &Dataset{Cleaned: cleaned, Trimmed: trimmed, Dropped: dropped}, nil
}

// Parse decodes CSV content into cleaned rows. It returns the number of
// records dropped because a cell was missing or could not be parsed.
func Parse(content []byte) ([]models.Row, int, error) {
	content = bytes.TrimPrefix(content, []byte("\xef\xbb\xbf"))

	// --- header check ---
	line := content
	if idx := bytes.IndexByte(content, '\n'); idx != -1 {
		line = content[:idx]
	}
	if err := checkHeader(string(line)); err != nil {
		return nil, 0, err
	}

	content, dropped, err := wellFormed(content)
	if err != nil {
		return nil, 0, err
	}

	fields := make([]arrow.Field, len(Header))
	for i, name := range Header {
		fields[i] = arrow.Field{Name: string(name), Type: arrow.BinaryTypes.String, Nullable: true}
	}
	schema := arrow.NewSchema(fields, nil)

	r := csv.NewReader(bytes.NewReader(content), schema,
		csv.WithHeader(true),
		csv.WithChunk(chunkRows),
		csv.WithLazyQuotes(true),
		csv.WithNullReader(true, nullTokens...),
		csv.WithAllocator(memory.NewGoAllocator()),
	)
	defer r.Release()

	rows := make([]models.Row, 0, bytes.Count(content, []byte{'\n'}))
	cols := make([]*array.String, len(Header))

	for r.Next() {
		rec := r.Record()
		for i := range cols {
			col, ok := rec.Column(i).(*array.String)
			if !ok {
				return nil, 0, dataUnavailable(nil, "column %s is not text", Header[i])
			}
			cols[i] = col
		}
		n := int(rec.NumRows())
		for j := 0; j < n; j++ {
			row, ok := parseRow(cols, j)
			if !ok {
				dropped++
				continue
			}
			rows = append(rows, row)
		}
	}
	if err := r.Err(); err != nil {
		return nil, 0, dataUnavailable(err, "parse csv")
	}

	if dropped > 0 {
		log.Debugf("Dropped %d incomplete records", dropped)
	}
	return rows, dropped, nil
}

// wellFormed re-encodes content keeping only records with exactly one cell
// per header column. Short or long records count as dropped rather than
// failing the batch they would land in.
func wellFormed(content []byte) ([]byte, int, error) {
	r := stdcsv.NewReader(bytes.NewReader(content))
	r.FieldsPerRecord = -1
	r.LazyQuotes = true
	r.ReuseRecord = true

	var buf bytes.Buffer
	buf.Grow(len(content))
	w := stdcsv.NewWriter(&buf)

	dropped := 0
	for {
		rec, err := r.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, 0, dataUnavailable(err, "parse csv")
		}
		if len(rec) != len(Header) {
			dropped++
			continue
		}
		if err := w.Write(rec); err != nil {
			return nil, 0, dataUnavailable(err, "parse csv")
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, 0, dataUnavailable(err, "parse csv")
	}
	return buf.Bytes(), dropped, nil
}

func checkHeader(line string) error {
	line = strings.TrimRight(line, "\r")
	got := strings.Split(line, ",")
	if len(got) != len(Header) {
		return dataUnavailable(nil, "header has %d columns, want %d", len(got), len(Header))
	}
	for i, name := range got {
		name = strings.Trim(strings.TrimSpace(name), `"`)
		if name != string(Header[i]) {
			return dataUnavailable(nil, "header column %d is %q, want %q", i, name, Header[i])
		}
	}
	return nil
}

func parseRow(cols []*array.String, j int) (models.Row, bool) {
	var cell [11]string
	for i, col := range cols {
		if col.IsNull(j) {
			return models.Row{}, false
		}
		// arrow strings alias the record buffer, which is reused per batch
		cell[i] = strings.Clone(col.Value(j))
	}

	var (
		row models.Row
		ok  bool
	)
	if row.Rank, ok = parseInt(cell[0]); !ok {
		return row, false
	}
	row.Name = cell[1]
	row.Platform = cell[2]
	if row.Year, ok = parseInt(cell[3]); !ok {
		return row, false
	}
	row.Genre = cell[4]
	row.Publisher = cell[5]

	sales := []*float64{&row.NASales, &row.EUSales, &row.JPSales, &row.OtherSales, &row.GlobalSales}
	for k, dst := range sales {
		v, ok := parseSales(cell[6+k])
		if !ok {
			return row, false
		}
		*dst = v
	}
	return row, true
}

// parseInt accepts integral values within int32 range, including the
// "2006.0" spelling that float-typed exports produce.
func parseInt(s string) (int, bool) {
	s = strings.TrimSpace(s)
	if n, err := strconv.ParseInt(s, 10, 32); err == nil {
		return int(n), true
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(f) || f != math.Trunc(f) || math.Abs(f) > math.MaxInt32 {
		return 0, false
	}
	return int(f), true
}

func parseSales(s string) (float64, bool) {
	f, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) || f < 0 {
		return 0, false
	}
	return f, true
}
