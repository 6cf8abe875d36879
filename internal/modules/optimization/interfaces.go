package optimization

import "context"

// DatasetProvider provides the cleaned, date-aligned price table the
// engine runs against. Kept as a narrow interface to avoid a hard
// dependency on the marketdata module.
type DatasetProvider interface {
	// Dataset returns asset names and a price table with one row per
	// trading day, assets as columns, no missing values.
	Dataset(ctx context.Context) (assets []string, prices [][]float64, err error)
}
