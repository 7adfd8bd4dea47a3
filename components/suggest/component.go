package suggest

import (
	"github.com/goliatone/go-mockboard/components/canvas"
	"github.com/goliatone/go-mockboard/components/dataset"
)

// ToComponent materializes an accepted suggestion into a compact canvas
// component, converting the full row set into the chart's data shape.
func ToComponent(suggestion Suggestion, rows []dataset.Row) canvas.CompactComponent {
	return canvas.CompactComponent{
		Type:       suggestion.Type,
		Properties: buildProperties(suggestion, rows),
	}
}

func buildProperties(suggestion Suggestion, rows []dataset.Row) canvas.Properties {
	if suggestion.Type == canvas.TypeKpiCard {
		return kpiProperties(suggestion, rows)
	}

	data := chartData(suggestion, rows)
	switch suggestion.Type {
	case canvas.TypeBarChart:
		return canvas.BarChartProperties{ChartData: data}
	case canvas.TypeLineChart:
		return canvas.LineChartProperties{ChartData: data, Smooth: true}
	case canvas.TypeAreaChart:
		return canvas.AreaChartProperties{ChartData: data}
	case canvas.TypePieChart:
		return canvas.PieChartProperties{ChartData: data}
	case canvas.TypeScatterChart:
		return canvas.ScatterChartProperties{ChartData: data}
	default:
		return canvas.BarChartProperties{ChartData: data}
	}
}

func kpiProperties(suggestion Suggestion, rows []dataset.Row) canvas.KpiProperties {
	props := canvas.KpiProperties{Title: suggestion.Title}
	if len(suggestion.Columns) == 0 {
		return props
	}
	agg := aggregationFor(suggestion, suggestion.Columns[0])
	values := make([]string, 0, len(rows))
	for _, row := range rows {
		values = append(values, row[suggestion.Columns[0]])
	}
	props.Value = dataset.Aggregate(values, agg).Value
	return props
}

func chartData(suggestion Suggestion, rows []dataset.Row) canvas.ChartData {
	converted := ConvertDataForChart(rows, suggestion)
	data := canvas.ChartData{Title: suggestion.Title}

	if len(suggestion.Columns) > 2 {
		data.Rows = converted
		for _, col := range suggestion.Columns[1:] {
			data.Series = append(data.Series, canvas.SeriesDef{Key: col, Label: col})
		}
		return data
	}

	for _, entry := range converted {
		name, _ := entry["name"].(string)
		value, _ := entry["value"].(float64)
		data.Data = append(data.Data, canvas.DataPoint{Name: name, Value: value})
	}
	return data
}
