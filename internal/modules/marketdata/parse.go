package marketdata

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"
)

// dateLayouts are tried in order when parsing the index column.
var dateLayouts = []string{
	"2006-01-02",
	"2006/01/02",
	"1/2/2006",
	"01/02/2006",
	"2-Jan-06",
	time.RFC3339,
}

// ParseCSV turns a raw CSV payload into a cleaned PriceTable. The first
// column is the date index, the remaining columns are asset closes. Rows
// with any missing or unparseable cell are dropped (the upstream dataset
// occasionally has gaps), and the surviving rows are sorted by date so the
// calendar is strictly increasing.
func ParseCSV(payload []byte) (*PriceTable, error) {
	reader := csv.NewReader(bytes.NewReader(payload))
	reader.TrimLeadingSpace = true
	// Ragged rows are dropped below instead of failing the whole parse.
	reader.FieldsPerRecord = -1

	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to parse dataset CSV: %w", err)
	}
	if len(records) < 2 {
		return nil, fmt.Errorf("dataset CSV has no data rows")
	}

	header := records[0]
	if len(header) < 2 {
		return nil, fmt.Errorf("dataset CSV needs a date column and at least one asset column")
	}
	assets := make([]string, 0, len(header)-1)
	for _, name := range header[1:] {
		name = strings.TrimSpace(name)
		if name == "" {
			return nil, fmt.Errorf("dataset CSV has an unnamed asset column")
		}
		assets = append(assets, name)
	}

	type row struct {
		date   time.Time
		prices []float64
	}
	rows := make([]row, 0, len(records)-1)

	for _, rec := range records[1:] {
		if len(rec) != len(header) {
			continue
		}
		date, ok := parseDate(rec[0])
		if !ok {
			continue
		}
		prices := make([]float64, len(assets))
		valid := true
		for j, cell := range rec[1:] {
			cell = strings.TrimSpace(cell)
			if cell == "" || strings.EqualFold(cell, "nan") || strings.EqualFold(cell, "null") {
				valid = false
				break
			}
			v, err := strconv.ParseFloat(cell, 64)
			if err != nil {
				valid = false
				break
			}
			prices[j] = v
		}
		if !valid {
			continue
		}
		rows = append(rows, row{date: date, prices: prices})
	}

	if len(rows) == 0 {
		return nil, fmt.Errorf("dataset CSV has no usable rows after cleaning")
	}

	sort.SliceStable(rows, func(i, j int) bool { return rows[i].date.Before(rows[j].date) })

	table := &PriceTable{
		Assets: assets,
		Dates:  make([]time.Time, len(rows)),
		Prices: make([][]float64, len(rows)),
	}
	for i, r := range rows {
		table.Dates[i] = r.date
		table.Prices[i] = r.prices
	}
	return table, nil
}

func parseDate(cell string) (time.Time, bool) {
	cell = strings.TrimSpace(cell)
	if cell == "" {
		return time.Time{}, false
	}
	for _, layout := range dateLayouts {
		if d, err := time.Parse(layout, cell); err == nil {
			return d, true
		}
	}
	return time.Time{}, false
}
