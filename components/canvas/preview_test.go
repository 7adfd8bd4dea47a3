package canvas

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func chartComponent(id string, props Properties) Component {
	return Component{
		ID:         id,
		Type:       props.Kind(),
		Size:       Size{Width: 423, Height: 328},
		Properties: props,
	}
}

func TestPreviewRendersBarChart(t *testing.T) {
	t.Parallel()
	preview := NewEChartsPreview(WithPreviewCache(nil))
	markup, err := preview.Render(chartComponent("bar-1", BarChartProperties{ChartData: ChartData{
		Title: "Revenue by Region",
		Data: []DataPoint{
			{Name: "North", Value: 48200},
			{Name: "South", Value: 31250},
		},
	}}))
	require.NoError(t, err)
	lower := strings.ToLower(markup)
	assert.Contains(t, lower, "echarts")
	assert.Contains(t, markup, "Revenue by Region")
}

func TestPreviewRendersMultiSeriesScatter(t *testing.T) {
	t.Parallel()
	preview := NewEChartsPreview(WithPreviewCache(nil))
	markup, err := preview.Render(chartComponent("scatter-1", ScatterChartProperties{ChartData: ChartData{
		Title: "Latency vs Throughput",
		Rows: []map[string]any{
			{"name": "api", "latency": 112.0, "throughput": 840.0},
			{"name": "worker", "latency": 64.0, "throughput": 1210.0},
		},
		Series: []SeriesDef{{Key: "latency"}, {Key: "throughput"}},
	}}))
	require.NoError(t, err)
	assert.Contains(t, strings.ToLower(markup), "echarts")
	assert.Contains(t, markup, "latency")
}

func TestPreviewRendersKpiCard(t *testing.T) {
	t.Parallel()
	preview := NewEChartsPreview(WithPreviewCache(nil))
	markup, err := preview.Render(Component{
		ID:         "kpi-1",
		Type:       TypeKpiCard,
		Properties: KpiProperties{Title: "Revenue", Value: 128400, Unit: "$"},
	})
	require.NoError(t, err)
	assert.Contains(t, markup, "kpi-card")
	assert.Contains(t, markup, "Revenue")
	assert.Contains(t, markup, "128400$")
}

func TestPreviewFormatsFractionalKpiValues(t *testing.T) {
	t.Parallel()
	preview := NewEChartsPreview(WithPreviewCache(nil))
	markup, err := preview.Render(Component{
		ID:         "kpi-2",
		Type:       TypeKpiCard,
		Properties: KpiProperties{Title: "Refund Rate", Value: 1.8, Unit: "%"},
	})
	require.NoError(t, err)
	assert.Contains(t, markup, "1.8%")
}

func TestPreviewRendersStaticKinds(t *testing.T) {
	t.Parallel()
	preview := NewEChartsPreview(WithPreviewCache(nil))

	table, err := preview.Render(Component{
		ID:   "table-1",
		Type: TypeTable,
		Properties: TableProperties{
			Columns: []string{"Endpoint", "p95 ms"},
			Rows:    [][]string{{"/export", "912"}},
		},
	})
	require.NoError(t, err)
	assert.Contains(t, table, "<th>Endpoint</th>")
	assert.Contains(t, table, "<td>912</td>")

	text, err := preview.Render(Component{
		ID:         "text-1",
		Type:       TypeText,
		Properties: TextProperties{Text: "Q3 Highlights"},
	})
	require.NoError(t, err)
	assert.Contains(t, text, "Q3 Highlights")
	assert.Contains(t, text, "font-size:14px")

	shape, err := preview.Render(Component{
		ID:         "shape-1",
		Type:       TypeShape,
		Properties: ShapeProperties{Shape: "circle", Fill: "#fee2e2"},
	})
	require.NoError(t, err)
	assert.Contains(t, shape, "preview-shape-circle")
	assert.Contains(t, shape, "#fee2e2")
}

func TestPreviewEscapesUserStrings(t *testing.T) {
	t.Parallel()
	preview := NewEChartsPreview(WithPreviewCache(nil))
	markup, err := preview.Render(Component{
		ID:         "text-xss",
		Type:       TypeText,
		Properties: TextProperties{Text: `<script>alert("x")</script>`},
	})
	require.NoError(t, err)
	assert.NotContains(t, markup, "<script>")
	assert.Contains(t, markup, "&lt;script&gt;")
}

func TestPreviewMissingProperties(t *testing.T) {
	t.Parallel()
	preview := NewEChartsPreview(WithPreviewCache(nil))
	_, err := preview.Render(Component{ID: "ghost", Type: TypeBarChart})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "has no properties")
}

func TestPreviewUsesCache(t *testing.T) {
	t.Parallel()
	cache := NewPreviewCache(5 * time.Minute)
	preview := NewEChartsPreview(WithPreviewCache(cache))
	component := Component{
		ID:         "kpi-cache",
		Type:       TypeKpiCard,
		Properties: KpiProperties{Title: "Orders", Value: 1845},
	}
	first, err := preview.Render(component)
	require.NoError(t, err)
	second, err := preview.Render(component)
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func BenchmarkPreviewBarChart(b *testing.B) {
	preview := NewEChartsPreview(WithPreviewCache(nil))
	component := chartComponent("bench", BarChartProperties{ChartData: ChartData{
		Title: "Benchmark",
		Data: []DataPoint{
			{Name: "A", Value: 10}, {Name: "B", Value: 20}, {Name: "C", Value: 30},
		},
	}})
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := preview.Render(component); err != nil {
			b.Fatal(err)
		}
	}
}
