package suggest

import (
	"github.com/goliatone/go-mockboard/components/dataset"
)

const maxPreviewRows = 20

// ConvertDataForChart reshapes raw rows into the minimal data a suggested
// chart renders. The column count drives the shape:
//
//	1 column  -> frequency counts per distinct value
//	2 columns -> grouped aggregate, {name, value} per group
//	>2 columns -> first rows verbatim as a multi-series shape
//
// Group order follows first occurrence in the rows.
func ConvertDataForChart(rows []dataset.Row, suggestion Suggestion) []map[string]any {
	switch len(suggestion.Columns) {
	case 0:
		return nil
	case 1:
		return frequencyData(rows, suggestion.Columns[0])
	case 2:
		agg := aggregationFor(suggestion, suggestion.Columns[1])
		return groupedData(rows, suggestion.Columns[0], suggestion.Columns[1], agg)
	default:
		return multiSeriesData(rows, suggestion.Columns)
	}
}

func frequencyData(rows []dataset.Row, column string) []map[string]any {
	counts := map[string]int{}
	var order []string
	for _, row := range rows {
		value := row[column]
		if _, seen := counts[value]; !seen {
			order = append(order, value)
		}
		counts[value]++
	}
	out := make([]map[string]any, 0, len(order))
	for _, key := range order {
		out = append(out, map[string]any{"name": key, "value": float64(counts[key])})
	}
	return out
}

func groupedData(rows []dataset.Row, groupCol, valueCol string, agg dataset.Aggregation) []map[string]any {
	groups := map[string][]float64{}
	var order []string
	for _, row := range rows {
		key := row[groupCol]
		if _, seen := groups[key]; !seen {
			order = append(order, key)
			groups[key] = nil
		}
		if n, ok := dataset.ParseNumber(row[valueCol]); ok {
			groups[key] = append(groups[key], n)
		}
	}
	out := make([]map[string]any, 0, len(order))
	for _, key := range order {
		out = append(out, map[string]any{
			"name":  key,
			"value": dataset.AggregateNumbers(groups[key], agg),
		})
	}
	return out
}

func multiSeriesData(rows []dataset.Row, columns []string) []map[string]any {
	limit := len(rows)
	if limit > maxPreviewRows {
		limit = maxPreviewRows
	}
	out := make([]map[string]any, 0, limit)
	for _, row := range rows[:limit] {
		entry := map[string]any{"name": row[columns[0]]}
		for _, col := range columns[1:] {
			entry[col] = dataset.NumberOr0(row[col])
		}
		out = append(out, entry)
	}
	return out
}

func aggregationFor(suggestion Suggestion, column string) dataset.Aggregation {
	for _, m := range suggestion.MappedColumns {
		if m.Name == column && m.Aggregation != "" {
			return m.Aggregation
		}
	}
	return dataset.AggAvg
}
