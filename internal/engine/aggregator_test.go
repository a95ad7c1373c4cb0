package engine

import (
	"testing"

	"vgsales/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Scenario:
// Row 0: G1, P1, Sports, NA 1, Global 5
// Row 1: G2, P2, Action, NA 3, Global 2
// Row 2: G1, P1, Sports, NA 2, Global 1
// Row 3: G3, P1, Action, NA 0, Global 3
func aggFixture() *Table {
	return NewTable([]models.Row{
		game("G1", "PS2", 2001, "Sports", "P1", 1, 0, 0, 0, 5),
		game("G2", "PS2", 2002, "Action", "P2", 3, 0, 0, 0, 2),
		game("G1", "Wii", 2003, "Sports", "P1", 2, 0, 0, 0, 1),
		game("G3", "Wii", 2004, "Action", "P1", 0, 0, 0, 0, 3),
	})
}

func TestTopK(t *testing.T) {
	res, err := TopK(aggFixture(), TopKRequest{
		GroupBy: FieldName,
		Columns: []Field{FieldGlobalSales, FieldNASales},
		K:       2,
	})
	require.NoError(t, err)
	require.Len(t, res, 2)

	assert.Equal(t, []models.TopItem{{Key: "G1", Value: 6}, {Key: "G3", Value: 3}}, res["Global_Sales"])

	// G1 and G2 tie on NA sales; G1 was seen first.
	assert.Equal(t, []models.TopItem{{Key: "G1", Value: 3}, {Key: "G2", Value: 3}}, res["NA_Sales"])
}

func TestTopKLargerThanGroups(t *testing.T) {
	res, err := TopK(aggFixture(), TopKRequest{GroupBy: FieldName, Columns: []Field{FieldGlobalSales}, K: 10})
	require.NoError(t, err)

	items := res["Global_Sales"]
	require.Len(t, items, 3)
	for i := 1; i < len(items); i++ {
		assert.GreaterOrEqual(t, items[i-1].Value, items[i].Value)
	}
	assert.Equal(t, []string{"G1", "G3", "G2"}, []string{items[0].Key, items[1].Key, items[2].Key})
}

func TestTopKWithCount(t *testing.T) {
	res, err := TopK(aggFixture(), TopKRequest{
		GroupBy:   FieldPublisher,
		Columns:   []Field{FieldGlobalSales},
		K:         5,
		WithCount: true,
	})
	require.NoError(t, err)
	assert.Equal(t, []models.TopItem{
		{Key: "P1", Value: 9, Count: 3},
		{Key: "P2", Value: 2, Count: 1},
	}, res["Global_Sales"])
}

func TestTopKByYear(t *testing.T) {
	res, err := TopK(aggFixture(), TopKRequest{GroupBy: FieldYear, Columns: []Field{FieldGlobalSales}, K: 1})
	require.NoError(t, err)
	assert.Equal(t, []models.TopItem{{Key: "2001", Value: 5}}, res["Global_Sales"])
}

func TestTopKDeterministic(t *testing.T) {
	req := TopKRequest{GroupBy: FieldGenre, Columns: SalesColumns, K: 3}
	a, err := TopK(aggFixture(), req)
	require.NoError(t, err)
	b, err := TopK(aggFixture(), req)
	require.NoError(t, err)
	assert.Equal(t, a, b)
}

func TestTopKErrors(t *testing.T) {
	tests := []struct {
		name  string
		table *Table
		req   TopKRequest
		want  error
	}{
		{"zero k", aggFixture(), TopKRequest{GroupBy: FieldName, Columns: []Field{FieldGlobalSales}, K: 0}, ErrInvalidParameter},
		{"unknown group key", aggFixture(), TopKRequest{GroupBy: "Rank", Columns: []Field{FieldGlobalSales}, K: 1}, ErrInvalidParameter},
		{"text value column", aggFixture(), TopKRequest{GroupBy: FieldName, Columns: []Field{FieldGenre}, K: 1}, ErrInvalidParameter},
		{"no columns", aggFixture(), TopKRequest{GroupBy: FieldName, K: 1}, ErrInvalidParameter},
		{"empty table", NewTable(nil), TopKRequest{GroupBy: FieldName, Columns: []Field{FieldGlobalSales}, K: 1}, ErrEmptyTable},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := TopK(tt.table, tt.req)
			assert.ErrorIs(t, err, tt.want)
		})
	}
}
