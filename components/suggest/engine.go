package suggest

import (
	"crypto/sha1"
	"encoding/hex"
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/goliatone/go-mockboard/components/canvas"
	"github.com/goliatone/go-mockboard/components/dataset"
)

const (
	pieCardinalityLimit  = 8
	freqCardinalityLimit = 15
	maxMultiMetricSeries = 3
)

// ScoreDetails records the sub-scores that produced a confidence value.
type ScoreDetails struct {
	PriorityScore    float64 `json:"priorityScore"`
	MappingScore     float64 `json:"mappingScore"`
	CardinalityScore float64 `json:"cardinalityScore"`
}

// Suggestion is one candidate chart recommendation. Instances are created
// fresh on every generation pass and never mutated afterwards.
type Suggestion struct {
	ID            string                  `json:"id"`
	Type          canvas.ComponentType    `json:"type"`
	Title         string                  `json:"title"`
	Columns       []string                `json:"columns"`
	Reason        string                  `json:"reason"`
	Priority      int                     `json:"priority"`
	MappedColumns []dataset.ColumnMapping `json:"mappedColumns,omitempty"`
	Confidence    float64                 `json:"confidence"`
	PreviewData   []map[string]any        `json:"previewData,omitempty"`
	ScoreDetails  ScoreDetails            `json:"scoreDetails"`
}

// Generate produces a ranked, deduplicated list of chart recommendations
// from a column profile, the raw rows, and optional role mappings. Mapped
// suggestions run first; profile-only heuristics always run. The result is
// sorted by priority descending with confidence attached.
func Generate(profile dataset.DatasetProfile, rows []dataset.Row, mappings []dataset.ColumnMapping) []Suggestion {
	if len(rows) == 0 || len(profile.Columns) == 0 {
		return nil
	}

	var suggestions []Suggestion
	if dataset.HasAssignedRoles(mappings) {
		suggestions = append(suggestions, mappedSuggestions(profile, mappings)...)
	}
	suggestions = append(suggestions, profileSuggestions(profile)...)

	sort.SliceStable(suggestions, func(i, j int) bool {
		return suggestions[i].Priority > suggestions[j].Priority
	})
	suggestions = dedupe(suggestions)

	maxPriority := 0
	for _, s := range suggestions {
		if s.Priority > maxPriority {
			maxPriority = s.Priority
		}
	}
	for i := range suggestions {
		score(&suggestions[i], profile, maxPriority, len(rows))
		attachPreview(&suggestions[i], rows)
	}
	return suggestions
}

func mappedSuggestions(profile dataset.DatasetProfile, mappings []dataset.ColumnMapping) []Suggestion {
	var kpis, dims, times []dataset.ColumnMapping
	for _, m := range mappings {
		switch m.Role {
		case dataset.RoleKPI:
			kpis = append(kpis, m)
		case dataset.RoleDimension:
			dims = append(dims, m)
		case dataset.RoleTime:
			times = append(times, m)
		}
	}

	var out []Suggestion
	for _, kpi := range kpis {
		out = append(out, Suggestion{
			ID:            suggestionID(canvas.TypeKpiCard, kpi.Name),
			Type:          canvas.TypeKpiCard,
			Title:         kpiTitle(kpi),
			Columns:       []string{kpi.Name},
			Reason:        fmt.Sprintf("%s is mapped as a KPI metric", kpi.Name),
			Priority:      17,
			MappedColumns: []dataset.ColumnMapping{kpi},
		})
	}

	for _, kpi := range kpis {
		for _, dim := range dims {
			out = append(out, Suggestion{
				ID:            suggestionID(canvas.TypeBarChart, dim.Name, kpi.Name),
				Type:          canvas.TypeBarChart,
				Title:         fmt.Sprintf("%s by %s", kpi.Name, dim.Name),
				Columns:       []string{dim.Name, kpi.Name},
				Reason:        fmt.Sprintf("Compare %s across %s categories", kpi.Name, dim.Name),
				Priority:      15,
				MappedColumns: []dataset.ColumnMapping{dim, kpi},
			})
			if len(dims) == 1 && cardinality(profile, dim.Name) <= pieCardinalityLimit {
				out = append(out, Suggestion{
					ID:            suggestionID(canvas.TypePieChart, dim.Name, kpi.Name),
					Type:          canvas.TypePieChart,
					Title:         fmt.Sprintf("%s share by %s", kpi.Name, dim.Name),
					Columns:       []string{dim.Name, kpi.Name},
					Reason:        fmt.Sprintf("%s has few categories, good for proportions", dim.Name),
					Priority:      13,
					MappedColumns: []dataset.ColumnMapping{dim, kpi},
				})
			}
		}
	}

	for _, kpi := range kpis {
		for _, tm := range times {
			out = append(out, Suggestion{
				ID:            suggestionID(canvas.TypeLineChart, tm.Name, kpi.Name),
				Type:          canvas.TypeLineChart,
				Title:         fmt.Sprintf("%s over %s", kpi.Name, tm.Name),
				Columns:       []string{tm.Name, kpi.Name},
				Reason:        fmt.Sprintf("Track %s over time", kpi.Name),
				Priority:      16,
				MappedColumns: []dataset.ColumnMapping{tm, kpi},
			})
			out = append(out, Suggestion{
				ID:            suggestionID(canvas.TypeAreaChart, tm.Name, kpi.Name),
				Type:          canvas.TypeAreaChart,
				Title:         fmt.Sprintf("%s trend over %s", kpi.Name, tm.Name),
				Columns:       []string{tm.Name, kpi.Name},
				Reason:        fmt.Sprintf("Emphasize the volume of %s over time", kpi.Name),
				Priority:      14,
				MappedColumns: []dataset.ColumnMapping{tm, kpi},
			})
		}
	}

	if len(kpis) >= 2 {
		out = append(out, Suggestion{
			ID:            suggestionID(canvas.TypeScatterChart, kpis[0].Name, kpis[1].Name),
			Type:          canvas.TypeScatterChart,
			Title:         fmt.Sprintf("%s vs %s", kpis[0].Name, kpis[1].Name),
			Columns:       []string{kpis[0].Name, kpis[1].Name},
			Reason:        fmt.Sprintf("Correlate %s with %s", kpis[0].Name, kpis[1].Name),
			Priority:      12,
			MappedColumns: []dataset.ColumnMapping{kpis[0], kpis[1]},
		})
	}
	return out
}

func profileSuggestions(profile dataset.DatasetProfile) []Suggestion {
	numerics := profile.ColumnsOfType(dataset.TypeNumeric)
	categoricals := profile.ColumnsOfType(dataset.TypeCategorical)
	datetimes := profile.ColumnsOfType(dataset.TypeDatetime)

	var out []Suggestion
	if len(numerics) > 0 && len(categoricals) > 0 {
		num, cat := numerics[0], categoricals[0]
		out = append(out, Suggestion{
			ID:       suggestionID(canvas.TypeBarChart, cat.Name, num.Name),
			Type:     canvas.TypeBarChart,
			Title:    fmt.Sprintf("%s by %s", num.Name, cat.Name),
			Columns:  []string{cat.Name, num.Name},
			Reason:   fmt.Sprintf("%s groups %s into %d categories", cat.Name, num.Name, cat.UniqueCount),
			Priority: 10,
		})
		if cat.UniqueCount <= pieCardinalityLimit {
			out = append(out, Suggestion{
				ID:       suggestionID(canvas.TypePieChart, cat.Name, num.Name),
				Type:     canvas.TypePieChart,
				Title:    fmt.Sprintf("%s share by %s", num.Name, cat.Name),
				Columns:  []string{cat.Name, num.Name},
				Reason:   fmt.Sprintf("%s has only %d categories, good for proportions", cat.Name, cat.UniqueCount),
				Priority: 8,
			})
		}
	}

	if len(numerics) > 0 && len(datetimes) > 0 {
		num, dt := numerics[0], datetimes[0]
		out = append(out, Suggestion{
			ID:       suggestionID(canvas.TypeLineChart, dt.Name, num.Name),
			Type:     canvas.TypeLineChart,
			Title:    fmt.Sprintf("%s over %s", num.Name, dt.Name),
			Columns:  []string{dt.Name, num.Name},
			Reason:   fmt.Sprintf("%s looks like a time axis for %s", dt.Name, num.Name),
			Priority: 12,
		})
		out = append(out, Suggestion{
			ID:       suggestionID(canvas.TypeAreaChart, dt.Name, num.Name),
			Type:     canvas.TypeAreaChart,
			Title:    fmt.Sprintf("%s trend over %s", num.Name, dt.Name),
			Columns:  []string{dt.Name, num.Name},
			Reason:   fmt.Sprintf("Emphasize the volume of %s over time", num.Name),
			Priority: 9,
		})
	}

	if len(numerics) >= 2 {
		a, b := numerics[0], numerics[1]
		out = append(out, Suggestion{
			ID:       suggestionID(canvas.TypeScatterChart, a.Name, b.Name),
			Type:     canvas.TypeScatterChart,
			Title:    fmt.Sprintf("%s vs %s", a.Name, b.Name),
			Columns:  []string{a.Name, b.Name},
			Reason:   fmt.Sprintf("Check whether %s correlates with %s", a.Name, b.Name),
			Priority: 7,
		})
	}

	if len(categoricals) > 0 && categoricals[0].UniqueCount <= freqCardinalityLimit {
		cat := categoricals[0]
		out = append(out, Suggestion{
			ID:       suggestionID(canvas.TypeBarChart, cat.Name),
			Type:     canvas.TypeBarChart,
			Title:    fmt.Sprintf("Count by %s", cat.Name),
			Columns:  []string{cat.Name},
			Reason:   fmt.Sprintf("Show how rows distribute across %s values", cat.Name),
			Priority: 6,
		})
	}

	if len(numerics) > 0 {
		num := numerics[0]
		out = append(out, Suggestion{
			ID:       suggestionID(canvas.TypeBarChart, num.Name),
			Type:     canvas.TypeBarChart,
			Title:    fmt.Sprintf("Distribution of %s", num.Name),
			Columns:  []string{num.Name},
			Reason:   fmt.Sprintf("See the spread of %s values", num.Name),
			Priority: 5,
		})
	}

	if len(numerics) >= 2 && len(categoricals) > 0 {
		cat := categoricals[0]
		columns := []string{cat.Name}
		for i, num := range numerics {
			if i >= maxMultiMetricSeries {
				break
			}
			columns = append(columns, num.Name)
		}
		out = append(out, Suggestion{
			ID:       suggestionID(canvas.TypeBarChart, columns...),
			Type:     canvas.TypeBarChart,
			Title:    fmt.Sprintf("Metrics by %s", cat.Name),
			Columns:  columns,
			Reason:   fmt.Sprintf("Compare %d metrics side by side across %s", len(columns)-1, cat.Name),
			Priority: 8,
		})
	}
	return out
}

// score fills Confidence and ScoreDetails in place. Priority is normalized
// against the batch maximum; cardinality falls back to a row-count heuristic
// when no categorical column contributes.
func score(s *Suggestion, profile dataset.DatasetProfile, maxPriority, rowCount int) {
	priorityScore := 0.0
	if maxPriority > 0 {
		priorityScore = float64(s.Priority) / float64(maxPriority)
	}
	mappingScore := 0.0
	if len(s.MappedColumns) > 0 {
		mappingScore = 1
	}
	cardinalityScore := math.Min(1, float64(rowCount)/1000)
	for _, name := range s.Columns {
		col, ok := profile.Column(name)
		if !ok || col.Type != dataset.TypeCategorical {
			continue
		}
		switch {
		case col.UniqueCount <= 8:
			cardinalityScore = 1
		case col.UniqueCount <= 20:
			cardinalityScore = 0.75
		default:
			cardinalityScore = 0.4
		}
		break
	}

	s.ScoreDetails = ScoreDetails{
		PriorityScore:    round2(priorityScore),
		MappingScore:     round2(mappingScore),
		CardinalityScore: round2(cardinalityScore),
	}
	s.Confidence = round2(priorityScore*0.5 + mappingScore*0.3 + cardinalityScore*0.2)
}

func attachPreview(s *Suggestion, rows []dataset.Row) {
	if s.Type == canvas.TypeKpiCard && len(s.MappedColumns) > 0 {
		mapping := s.MappedColumns[0]
		values := make([]string, 0, len(rows))
		for _, row := range rows {
			values = append(values, row[mapping.Name])
		}
		result := dataset.Aggregate(values, mapping.Aggregation)
		s.PreviewData = []map[string]any{{"name": mapping.Name, "value": result.Value}}
		return
	}
	data := ConvertDataForChart(rows, *s)
	if len(data) > maxPreviewRows {
		data = data[:maxPreviewRows]
	}
	s.PreviewData = data
}

func dedupe(sorted []Suggestion) []Suggestion {
	seen := make(map[string]struct{}, len(sorted))
	out := sorted[:0]
	for _, s := range sorted {
		if _, dup := seen[s.ID]; dup {
			continue
		}
		seen[s.ID] = struct{}{}
		out = append(out, s)
	}
	return out
}

func kpiTitle(m dataset.ColumnMapping) string {
	switch m.Aggregation {
	case dataset.AggSum:
		return fmt.Sprintf("Total %s", m.Name)
	case dataset.AggAvg:
		return fmt.Sprintf("Average %s", m.Name)
	case dataset.AggCount:
		return fmt.Sprintf("Count of %s", m.Name)
	case dataset.AggMin:
		return fmt.Sprintf("Min %s", m.Name)
	case dataset.AggMax:
		return fmt.Sprintf("Max %s", m.Name)
	default:
		return m.Name
	}
}

func cardinality(profile dataset.DatasetProfile, column string) int {
	if col, ok := profile.Column(column); ok {
		return col.UniqueCount
	}
	return 0
}

// suggestionID derives a stable identifier from the chart kind and the
// contributing columns so regeneration never duplicates entries.
func suggestionID(kind canvas.ComponentType, columns ...string) string {
	sum := sha1.Sum([]byte(string(kind) + "|" + strings.Join(columns, "|")))
	return string(kind) + "-" + hex.EncodeToString(sum[:6])
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
