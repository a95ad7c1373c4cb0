package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDescribe(t *testing.T) {
	summary, err := Describe(viewsFixture())
	require.NoError(t, err)

	assert.Equal(t, 4, summary.Rows)
	assert.Equal(t, 11, summary.Columns)
	assert.Equal(t, 2001, summary.Years.Min)
	assert.Equal(t, 2002, summary.Years.Max)
	require.Len(t, summary.Sales, len(SalesColumns))

	global := summary.Sales[0]
	assert.Equal(t, "Global_Sales", global.Column)
	assert.Equal(t, 4, global.Count)
	assert.InDelta(t, 14, global.Sum, 1e-9)
	assert.InDelta(t, 3.5, global.Mean, 1e-9)
	assert.InDelta(t, 3.5, global.Median, 1e-9)
	assert.InDelta(t, 2, global.Min, 1e-9)
	assert.InDelta(t, 5, global.Max, 1e-9)
	// sample deviation of {3, 5, 4, 2}
	assert.InDelta(t, 1.2909944, global.Std, 1e-6)
}

func TestDescribeEmpty(t *testing.T) {
	_, err := Describe(NewTable(nil))
	assert.ErrorIs(t, err, ErrEmptyTable)
}
