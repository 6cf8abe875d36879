// Package marketdata loads and caches the asset price table the
// simulation engine runs against.
package marketdata

import "time"

// PriceTable is a cleaned, date-aligned price history: assets as columns,
// one row per trading day, dates strictly increasing, no missing values.
// Built once per fetch and immutable afterwards.
type PriceTable struct {
	Assets []string
	Dates  []time.Time
	Prices [][]float64 // Prices[i][j] = close of Assets[j] on Dates[i]
}

// NumRows returns the number of trading days in the table.
func (t *PriceTable) NumRows() int {
	return len(t.Dates)
}

// cachedDataset is one row of the datasets cache table.
type cachedDataset struct {
	URL       string
	Payload   []byte
	FetchedAt time.Time
}
