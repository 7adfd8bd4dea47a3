package canvas

import (
	"bytes"
	"fmt"
	"html"
	"io"
	"strings"
	"time"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"
	"github.com/go-echarts/go-echarts/v2/types"
)

const defaultPreviewHeight = "328px"

var sharedPreviewCache = NewPreviewCache(5 * time.Minute)

// EChartsPreview renders server-side HTML previews for placed components.
// Chart variants go through go-echarts; the remaining kinds get small
// static markup.
type EChartsPreview struct {
	cache      RenderCache
	theme      string
	assetsHost string
}

// PreviewOption customizes preview behavior.
type PreviewOption func(*EChartsPreview)

// WithPreviewCache injects a render cache.
func WithPreviewCache(cache RenderCache) PreviewOption {
	return func(p *EChartsPreview) {
		p.cache = cache
	}
}

// WithPreviewTheme sets a static theme (defaults to Westeros).
func WithPreviewTheme(theme string) PreviewOption {
	return func(p *EChartsPreview) {
		p.theme = theme
	}
}

// WithPreviewAssetsHost rewrites the assets host so ECharts JS loads from a CDN.
func WithPreviewAssetsHost(host string) PreviewOption {
	return func(p *EChartsPreview) {
		p.assetsHost = host
	}
}

// NewEChartsPreview builds a preview renderer.
func NewEChartsPreview(options ...PreviewOption) *EChartsPreview {
	p := &EChartsPreview{
		cache: sharedPreviewCache,
		theme: types.ThemeWesteros,
	}
	for _, opt := range options {
		opt(p)
	}
	return p
}

// Render returns HTML markup for a single component.
func (p *EChartsPreview) Render(component Component) (string, error) {
	renderFn := func() (string, error) {
		return p.render(component)
	}
	if p.cache != nil {
		key := fmt.Sprintf("%s:%s:%s", component.Type, component.ID, componentHash(component))
		return p.cache.GetOrRender(key, renderFn)
	}
	return renderFn()
}

func (p *EChartsPreview) render(component Component) (string, error) {
	switch props := component.Properties.(type) {
	case KpiProperties:
		return renderKpiCard(props), nil
	case BarChartProperties:
		return p.renderBarChart(props)
	case LineChartProperties:
		return p.renderLineChart(props)
	case AreaChartProperties:
		return p.renderAreaChart(props)
	case PieChartProperties:
		return p.renderPieChart(props)
	case ScatterChartProperties:
		return p.renderScatterChart(props)
	case TableProperties:
		return renderTable(props), nil
	case TextProperties:
		return renderText(props), nil
	case ShapeProperties:
		return renderShape(props), nil
	case nil:
		return "", fmt.Errorf("canvas: component %s has no properties", component.ID)
	default:
		return "", fmt.Errorf("canvas: unsupported component type: %s", component.Type)
	}
}

func (p *EChartsPreview) renderBarChart(props BarChartProperties) (string, error) {
	bar := charts.NewBar()
	bar.SetGlobalOptions(p.globalChartOptions(props.Title)...)
	labels, series := chartSeries(props.ChartData)
	bar.SetXAxis(labels)
	for _, s := range series {
		bar.AddSeries(s.name, toBarData(s.points))
	}
	if props.Stacked {
		bar.SetSeriesOptions(charts.WithBarChartOpts(opts.BarChart{Stack: "total"}))
	}
	return renderChart(bar)
}

func (p *EChartsPreview) renderLineChart(props LineChartProperties) (string, error) {
	line := charts.NewLine()
	line.SetGlobalOptions(p.globalChartOptions(props.Title)...)
	labels, series := chartSeries(props.ChartData)
	line.SetXAxis(labels)
	for _, s := range series {
		line.AddSeries(s.name, toLineData(s.points))
	}
	if props.Smooth {
		line.SetSeriesOptions(charts.WithLineChartOpts(opts.LineChart{Smooth: opts.Bool(true)}))
	}
	return renderChart(line)
}

func (p *EChartsPreview) renderAreaChart(props AreaChartProperties) (string, error) {
	line := charts.NewLine()
	line.SetGlobalOptions(p.globalChartOptions(props.Title)...)
	labels, series := chartSeries(props.ChartData)
	line.SetXAxis(labels)
	for _, s := range series {
		line.AddSeries(s.name, toLineData(s.points))
	}
	line.SetSeriesOptions(
		charts.WithLineChartOpts(opts.LineChart{Smooth: opts.Bool(true)}),
		charts.WithAreaStyleOpts(opts.AreaStyle{Opacity: 0.4}),
	)
	return renderChart(line)
}

func (p *EChartsPreview) renderPieChart(props PieChartProperties) (string, error) {
	pie := charts.NewPie()
	pie.SetGlobalOptions(p.globalChartOptions(props.Title)...)
	_, series := chartSeries(props.ChartData)
	for _, s := range series {
		data := toPieData(s.points)
		pie.AddSeries(s.name, data)
	}
	if props.Donut {
		pie.SetSeriesOptions(charts.WithPieChartOpts(opts.PieChart{
			Radius: []string{"40%", "70%"},
		}))
	}
	return renderChart(pie)
}

func (p *EChartsPreview) renderScatterChart(props ScatterChartProperties) (string, error) {
	scatter := charts.NewScatter()
	scatter.SetGlobalOptions(p.globalChartOptions(props.Title)...)
	_, series := chartSeries(props.ChartData)
	for _, s := range series {
		scatter.AddSeries(s.name, toScatterData(s.points))
	}
	return renderChart(scatter)
}

func renderChart(renderable interface{ Render(io.Writer) error }) (string, error) {
	var buf bytes.Buffer
	if err := renderable.Render(&buf); err != nil {
		return "", err
	}
	return buf.String(), nil
}

func (p *EChartsPreview) globalChartOptions(title string) []charts.GlobalOpts {
	initOpts := opts.Initialization{
		Theme:  p.theme,
		Width:  "100%",
		Height: defaultPreviewHeight,
	}
	if p.assetsHost != "" {
		initOpts.AssetsHost = p.assetsHost
	}
	return []charts.GlobalOpts{
		charts.WithTitleOpts(opts.Title{Title: title}),
		charts.WithInitializationOpts(initOpts),
		charts.WithLegendOpts(opts.Legend{Show: opts.Bool(true)}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true)}),
	}
}

type previewSeries struct {
	name   string
	points []DataPoint
}

// chartSeries normalizes either chart data shape into labeled series.
// Single-series data is one unnamed series; Rows plus Series become one
// series per key, with labels pulled from each row's name field.
func chartSeries(data ChartData) ([]string, []previewSeries) {
	if len(data.Series) > 0 && len(data.Rows) > 0 {
		labels := make([]string, len(data.Rows))
		for i, row := range data.Rows {
			label := stringValue(row["name"], "")
			if label == "" {
				label = fmt.Sprintf("Item %d", i+1)
			}
			labels[i] = label
		}
		out := make([]previewSeries, 0, len(data.Series))
		for _, def := range data.Series {
			name := def.Label
			if name == "" {
				name = def.Key
			}
			points := make([]DataPoint, len(data.Rows))
			for i, row := range data.Rows {
				points[i] = DataPoint{Name: labels[i], Value: float64Value(row[def.Key])}
			}
			out = append(out, previewSeries{name: name, points: points})
		}
		return labels, out
	}

	labels := make([]string, len(data.Data))
	for i, point := range data.Data {
		if point.Name != "" {
			labels[i] = point.Name
		} else {
			labels[i] = fmt.Sprintf("Item %d", i+1)
		}
	}
	series := []previewSeries{{name: "Series", points: data.Data}}
	if data.Title != "" {
		series[0].name = data.Title
	}
	return labels, series
}

func toBarData(points []DataPoint) []opts.BarData {
	data := make([]opts.BarData, len(points))
	for i, point := range points {
		data[i] = opts.BarData{
			Name:  point.Name,
			Value: point.Value,
		}
	}
	return data
}

func toLineData(points []DataPoint) []opts.LineData {
	data := make([]opts.LineData, len(points))
	for i, point := range points {
		data[i] = opts.LineData{
			Name:  point.Name,
			Value: point.Value,
		}
	}
	return data
}

func toPieData(points []DataPoint) []opts.PieData {
	data := make([]opts.PieData, len(points))
	for i, point := range points {
		name := point.Name
		if name == "" {
			name = fmt.Sprintf("Slice %d", i+1)
		}
		data[i] = opts.PieData{
			Name:  name,
			Value: point.Value,
		}
	}
	return data
}

func toScatterData(points []DataPoint) []opts.ScatterData {
	data := make([]opts.ScatterData, len(points))
	for i, point := range points {
		data[i] = opts.ScatterData{
			Name:  point.Name,
			Value: []float64{float64(i + 1), point.Value},
		}
	}
	return data
}

func renderKpiCard(props KpiProperties) string {
	color := props.Color
	if color == "" {
		color = "#3b82f6"
	}
	var b strings.Builder
	b.WriteString(`<div class="kpi-card">`)
	fmt.Fprintf(&b, `<span class="kpi-title">%s</span>`, html.EscapeString(props.Title))
	fmt.Fprintf(&b, `<span class="kpi-value" style="color:%s">%s%s</span>`,
		html.EscapeString(color), formatKpiValue(props.Value), html.EscapeString(props.Unit))
	b.WriteString(`</div>`)
	return b.String()
}

func formatKpiValue(v float64) string {
	if v == float64(int64(v)) {
		return fmt.Sprintf("%d", int64(v))
	}
	return strings.TrimRight(strings.TrimRight(fmt.Sprintf("%.2f", v), "0"), ".")
}

func renderTable(props TableProperties) string {
	var b strings.Builder
	b.WriteString(`<table class="preview-table">`)
	if len(props.Columns) > 0 {
		b.WriteString("<thead><tr>")
		for _, col := range props.Columns {
			fmt.Fprintf(&b, "<th>%s</th>", html.EscapeString(col))
		}
		b.WriteString("</tr></thead>")
	}
	b.WriteString("<tbody>")
	for _, row := range props.Rows {
		b.WriteString("<tr>")
		for _, cell := range row {
			fmt.Fprintf(&b, "<td>%s</td>", html.EscapeString(cell))
		}
		b.WriteString("</tr>")
	}
	b.WriteString("</tbody></table>")
	return b.String()
}

func renderText(props TextProperties) string {
	size := props.FontSize
	if size <= 0 {
		size = 14
	}
	color := props.Color
	if color == "" {
		color = "#111827"
	}
	return fmt.Sprintf(`<p class="preview-text" style="font-size:%.0fpx;color:%s">%s</p>`,
		size, html.EscapeString(color), html.EscapeString(props.Text))
}

func renderShape(props ShapeProperties) string {
	fill := props.Fill
	if fill == "" {
		fill = "#e5e7eb"
	}
	shape := props.Shape
	if shape == "" {
		shape = "rectangle"
	}
	return fmt.Sprintf(`<div class="preview-shape preview-shape-%s" style="background:%s"></div>`,
		html.EscapeString(shape), html.EscapeString(fill))
}
