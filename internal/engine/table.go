package engine

import (
	"math"
	"strconv"
	"sync"

	"vgsales/internal/models"

	"github.com/zeebo/xxh3"
)

// Field names a column of the sales table, spelled as in the CSV header.
type Field string

const (
	FieldRank        Field = "Rank"
	FieldName        Field = "Name"
	FieldPlatform    Field = "Platform"
	FieldYear        Field = "Year"
	FieldGenre       Field = "Genre"
	FieldPublisher   Field = "Publisher"
	FieldNASales     Field = "NA_Sales"
	FieldEUSales     Field = "EU_Sales"
	FieldJPSales     Field = "JP_Sales"
	FieldOtherSales  Field = "Other_Sales"
	FieldGlobalSales Field = "Global_Sales"
)

// Header is the exact column order expected in the input file.
var Header = []Field{
	FieldRank, FieldName, FieldPlatform, FieldYear, FieldGenre, FieldPublisher,
	FieldNASales, FieldEUSales, FieldJPSales, FieldOtherSales, FieldGlobalSales,
}

// SalesColumns lists the numeric region columns, global first.
var SalesColumns = []Field{FieldGlobalSales, FieldNASales, FieldEUSales, FieldJPSales, FieldOtherSales}

// GroupFields lists the fields rows can be grouped by.
var GroupFields = []Field{FieldName, FieldPlatform, FieldYear, FieldGenre, FieldPublisher}

func ParseSalesColumn(s string) (Field, error) {
	for _, f := range SalesColumns {
		if string(f) == s {
			return f, nil
		}
	}
	return "", invalidParameter("unknown sales column %q", s)
}

func ParseGroupField(s string) (Field, error) {
	for _, f := range GroupFields {
		if string(f) == s {
			return f, nil
		}
	}
	return "", invalidParameter("unknown group key %q", s)
}

func groupValue(r *models.Row, f Field) string {
	switch f {
	case FieldName:
		return r.Name
	case FieldPlatform:
		return r.Platform
	case FieldYear:
		return strconv.Itoa(r.Year)
	case FieldGenre:
		return r.Genre
	case FieldPublisher:
		return r.Publisher
	}
	return ""
}

func salesValue(r *models.Row, f Field) float64 {
	switch f {
	case FieldNASales:
		return r.NASales
	case FieldEUSales:
		return r.EUSales
	case FieldJPSales:
		return r.JPSales
	case FieldOtherSales:
		return r.OtherSales
	case FieldGlobalSales:
		return r.GlobalSales
	}
	return 0
}

// Table is an immutable, ordered set of cleaned rows.
type Table struct {
	rows []models.Row

	fpOnce sync.Once
	fp     uint64
}

// NewTable takes ownership of rows; callers must not modify them afterwards.
func NewTable(rows []models.Row) *Table {
	return &Table{rows: rows}
}

func (t *Table) Len() int { return len(t.rows) }

// Rows returns the backing slice. It is shared and must be treated as read-only.
func (t *Table) Rows() []models.Row { return t.rows }

// Fingerprint is an xxh3 hash of the table contents, used as a cache key.
func (t *Table) Fingerprint() uint64 {
	t.fpOnce.Do(func() {
		h := xxh3.New()
		buf := make([]byte, 0, 256)
		buf = strconv.AppendInt(buf, int64(len(t.rows)), 10)
		_, _ = h.Write(buf)
		for i := range t.rows {
			r := &t.rows[i]
			buf = buf[:0]
			buf = strconv.AppendInt(buf, int64(r.Rank), 10)
			for _, s := range []string{r.Name, r.Platform, r.Genre, r.Publisher} {
				buf = append(buf, 0x1f)
				buf = append(buf, s...)
			}
			buf = append(buf, 0x1f)
			buf = strconv.AppendInt(buf, int64(r.Year), 10)
			for _, v := range []float64{r.NASales, r.EUSales, r.JPSales, r.OtherSales, r.GlobalSales} {
				buf = append(buf, 0x1f)
				buf = strconv.AppendUint(buf, math.Float64bits(v), 16)
			}
			buf = append(buf, 0x1e)
			_, _ = h.Write(buf)
		}
		t.fp = h.Sum64()
	})
	return t.fp
}

// FilterYears returns the rows whose year lies in [from, to].
func FilterYears(t *Table, from, to int) (*Table, error) {
	if from > to {
		return nil, invalidParameter("year range %d-%d: min is greater than max", from, to)
	}
	rows := make([]models.Row, 0, len(t.rows))
	for _, r := range t.rows {
		if r.Year >= from && r.Year <= to {
			rows = append(rows, r)
		}
	}
	return NewTable(rows), nil
}

// Page returns up to limit rows starting at offset. A non-positive limit
// means "everything after offset".
func Page(t *Table, limit, offset int) []models.Row {
	total := len(t.rows)
	if offset < 0 {
		offset = 0
	}
	if offset >= total {
		return []models.Row{}
	}
	end := total
	if limit > 0 && offset+limit < total {
		end = offset + limit
	}
	return t.rows[offset:end]
}
