package marketdata

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseCSV(t *testing.T) {
	payload := []byte(`Date,REE,FMC,DHC
2021-01-04,48.1,35.2,60.0
2021-01-05,48.9,35.8,61.2
2021-01-06,49.3,36.1,60.8
`)

	table, err := ParseCSV(payload)
	require.NoError(t, err)

	assert.Equal(t, []string{"REE", "FMC", "DHC"}, table.Assets)
	require.Equal(t, 3, table.NumRows())
	assert.Equal(t, []float64{48.1, 35.2, 60.0}, table.Prices[0])
	assert.Equal(t, "2021-01-04", table.Dates[0].Format("2006-01-02"))
}

func TestParseCSVDropsIncompleteRows(t *testing.T) {
	payload := []byte(`Date,REE,FMC
2021-01-04,48.1,35.2
2021-01-05,,35.8
2021-01-06,49.3,nan
2021-01-07,49.5,36.4
not-a-date,50.0,36.5
`)

	table, err := ParseCSV(payload)
	require.NoError(t, err)

	// Rows with empty cells, nan markers, or unparseable dates are dropped.
	require.Equal(t, 2, table.NumRows())
	assert.Equal(t, []float64{48.1, 35.2}, table.Prices[0])
	assert.Equal(t, []float64{49.5, 36.4}, table.Prices[1])
}

func TestParseCSVSortsByDate(t *testing.T) {
	payload := []byte(`Date,REE
2021-01-06,49.3
2021-01-04,48.1
2021-01-05,48.9
`)

	table, err := ParseCSV(payload)
	require.NoError(t, err)

	require.Equal(t, 3, table.NumRows())
	for i := 1; i < table.NumRows(); i++ {
		assert.True(t, table.Dates[i-1].Before(table.Dates[i]))
	}
	assert.Equal(t, []float64{48.1}, table.Prices[0])
	assert.Equal(t, []float64{49.3}, table.Prices[2])
}

func TestParseCSVAlternateDateFormats(t *testing.T) {
	payload := []byte(`Date,REE
1/4/2021,48.1
1/5/2021,48.9
`)

	table, err := ParseCSV(payload)
	require.NoError(t, err)
	assert.Equal(t, 2, table.NumRows())
}

func TestParseCSVErrors(t *testing.T) {
	tests := []struct {
		name    string
		payload string
	}{
		{"empty", ""},
		{"header only", "Date,REE\n"},
		{"no asset columns", "Date\n2021-01-04\n"},
		{"unnamed column", "Date,REE,\n2021-01-04,48.1,1.0\n"},
		{"nothing survives cleaning", "Date,REE\nbad,48.1\n2021-01-05,oops\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseCSV([]byte(tt.payload))
			assert.Error(t, err)
		})
	}
}
