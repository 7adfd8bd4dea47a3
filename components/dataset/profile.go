package dataset

import (
	"math"
	"strconv"
	"strings"
	"time"
)

// ColumnType is the inferred semantic type of a column.
type ColumnType string

const (
	TypeNumeric     ColumnType = "numeric"
	TypeCategorical ColumnType = "categorical"
	TypeDatetime    ColumnType = "datetime"
	TypeText        ColumnType = "text"
)

const (
	typeMatchThreshold     = 0.8
	maxSampleValues        = 5
	categoricalMaxDistinct = 20
)

// NumericStats summarizes a numeric column. Only present when the
// column's inferred type is numeric.
type NumericStats struct {
	Min  float64 `json:"min"`
	Max  float64 `json:"max"`
	Mean float64 `json:"mean"`
}

// ColumnProfile describes one column of a dataset snapshot. Profiles are
// immutable once computed; re-profile when the source data changes.
type ColumnProfile struct {
	Name         string        `json:"name"`
	Type         ColumnType    `json:"type"`
	SampleValues []string      `json:"sampleValues"`
	UniqueCount  int           `json:"uniqueCount"`
	NullCount    int           `json:"nullCount"`
	Stats        *NumericStats `json:"stats,omitempty"`
}

// DatasetProfile bundles per-column profiles with dataset shape info.
type DatasetProfile struct {
	Columns  []ColumnProfile `json:"columns"`
	RowCount int             `json:"rowCount"`
	Headers  []string        `json:"headers"`
}

// Column returns the profile for a named column.
func (p DatasetProfile) Column(name string) (ColumnProfile, bool) {
	for _, col := range p.Columns {
		if col.Name == name {
			return col, true
		}
	}
	return ColumnProfile{}, false
}

// ColumnsOfType returns profiles matching the given type, in header order.
func (p DatasetProfile) ColumnsOfType(t ColumnType) []ColumnProfile {
	var out []ColumnProfile
	for _, col := range p.Columns {
		if col.Type == t {
			out = append(out, col)
		}
	}
	return out
}

// Profile inspects every column of a table and infers a semantic type
// plus summary statistics. Numeric and datetime checks run before the
// categorical cardinality check so a low-cardinality numeric column
// (a 1-5 rating, say) is not misclassified as categorical.
func Profile(table Table) DatasetProfile {
	profile := DatasetProfile{
		RowCount: len(table.Rows),
		Headers:  append([]string(nil), table.Headers...),
	}
	for _, header := range table.Headers {
		profile.Columns = append(profile.Columns, profileColumn(header, table.Rows))
	}
	return profile
}

func profileColumn(name string, rows []Row) ColumnProfile {
	col := ColumnProfile{Name: name, Type: TypeText}

	var nonNull []string
	unique := make(map[string]struct{})
	for _, row := range rows {
		value := row[name]
		if strings.TrimSpace(value) == "" {
			col.NullCount++
			continue
		}
		nonNull = append(nonNull, value)
		unique[value] = struct{}{}
		if len(col.SampleValues) < maxSampleValues {
			col.SampleValues = append(col.SampleValues, value)
		}
	}
	col.UniqueCount = len(unique)

	if len(nonNull) == 0 {
		return col
	}

	threshold := int(math.Ceil(typeMatchThreshold * float64(len(nonNull))))
	numericCount, dateCount := 0, 0
	for _, value := range nonNull {
		if _, ok := ParseNumber(value); ok {
			numericCount++
		}
		if isDatetime(value) {
			dateCount++
		}
	}

	switch {
	case numericCount >= threshold:
		col.Type = TypeNumeric
		col.Stats = numericStats(nonNull)
	case dateCount >= threshold:
		col.Type = TypeDatetime
	case col.UniqueCount*2 < len(nonNull) && col.UniqueCount < categoricalMaxDistinct:
		col.Type = TypeCategorical
	default:
		col.Type = TypeText
	}
	return col
}

func numericStats(values []string) *NumericStats {
	stats := &NumericStats{Min: math.Inf(1), Max: math.Inf(-1)}
	sum, count := 0.0, 0
	for _, value := range values {
		n, ok := ParseNumber(value)
		if !ok {
			continue
		}
		if n < stats.Min {
			stats.Min = n
		}
		if n > stats.Max {
			stats.Max = n
		}
		sum += n
		count++
	}
	if count == 0 {
		return nil
	}
	stats.Mean = sum / float64(count)
	return stats
}

// ParseNumber coerces a raw cell value into a finite float64.
func ParseNumber(value string) (float64, bool) {
	n, err := strconv.ParseFloat(strings.TrimSpace(value), 64)
	if err != nil || math.IsNaN(n) || math.IsInf(n, 0) {
		return 0, false
	}
	return n, true
}

// NumberOr0 coerces a raw cell value, treating anything non-numeric as 0.
func NumberOr0(value string) float64 {
	n, ok := ParseNumber(value)
	if !ok {
		return 0
	}
	return n
}

var datetimeLayouts = []string{
	"2006-01-02",
	"2006-01-02T15:04:05Z07:00",
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006/01/02",
	"01/02/2006",
	"1/2/2006",
	"Jan 2, 2006",
	"2 Jan 2006",
	"January 2, 2006",
	"Jan-2006",
	"2006-01",
}

func isDatetime(value string) bool {
	value = strings.TrimSpace(value)
	for _, layout := range datetimeLayouts {
		if _, err := time.Parse(layout, value); err == nil {
			return true
		}
	}
	return false
}
