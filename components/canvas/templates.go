package canvas

// Template is a fixed bundle of compact KPI/chart definitions that can
// be applied to a canvas in one shot.
type Template struct {
	Key         string             `json:"key" yaml:"key"`
	Name        string             `json:"name" yaml:"name"`
	Description string             `json:"description,omitempty" yaml:"description,omitempty"`
	Category    string             `json:"category,omitempty" yaml:"category,omitempty"`
	Components  []CompactComponent `json:"components" yaml:"components"`
}

// BuildDefaultTemplates constructs the built-in template set. It is a
// pure factory: callers invoke it once at startup (NewRegistry does) and
// memoize the result, so there are no load-order-dependent shared slices.
// The layout config is threaded through so the built-in set stays within
// the packer's chart budget: applying a default template never drops
// components, whatever MaxCharts the caller runs with.
func BuildDefaultTemplates(cfg LayoutConfig) []Template {
	cfg = cfg.normalized()
	templates := []Template{
		salesOverviewTemplate(),
		marketingFunnelTemplate(),
		opsHealthTemplate(),
	}
	for i := range templates {
		templates[i].Components = capCharts(templates[i].Components, cfg.MaxCharts)
	}
	return templates
}

// capCharts trims non-KPI components to the packer's chart budget,
// preserving order. KPI cards always survive; they occupy their own row.
func capCharts(components []CompactComponent, maxCharts int) []CompactComponent {
	out := make([]CompactComponent, 0, len(components))
	charts := 0
	for _, c := range components {
		if c.Type != TypeKpiCard {
			charts++
			if charts > maxCharts {
				continue
			}
		}
		out = append(out, c)
	}
	return out
}

func salesOverviewTemplate() Template {
	return Template{
		Key:         "sales-overview",
		Name:        "Sales Overview",
		Description: "Revenue KPIs with channel and trend breakdowns.",
		Category:    "sales",
		Components: []CompactComponent{
			{Type: TypeKpiCard, Properties: KpiProperties{Title: "Revenue", Value: 128400, Unit: "$"}},
			{Type: TypeKpiCard, Properties: KpiProperties{Title: "Orders", Value: 1845}},
			{Type: TypeKpiCard, Properties: KpiProperties{Title: "Avg Order", Value: 69.6, Unit: "$"}},
			{Type: TypeKpiCard, Properties: KpiProperties{Title: "Refund Rate", Value: 1.8, Unit: "%"}},
			{Type: TypeBarChart, Properties: BarChartProperties{ChartData: ChartData{
				Title: "Revenue by Region",
				Data: []DataPoint{
					{Name: "North", Value: 48200},
					{Name: "South", Value: 31250},
					{Name: "East", Value: 27900},
					{Name: "West", Value: 21050},
				},
			}}},
			{Type: TypeLineChart, Properties: LineChartProperties{ChartData: ChartData{
				Title: "Revenue Trend",
				Data: []DataPoint{
					{Name: "Mar", Value: 17300},
					{Name: "Apr", Value: 19050},
					{Name: "May", Value: 21480},
					{Name: "Jun", Value: 22760},
					{Name: "Jul", Value: 23400},
					{Name: "Aug", Value: 24410},
				},
			}, Smooth: true}},
			{Type: TypePieChart, Properties: PieChartProperties{ChartData: ChartData{
				Title: "Orders by Channel",
				Data: []DataPoint{
					{Name: "Web", Value: 1020},
					{Name: "Mobile", Value: 615},
					{Name: "Partner", Value: 210},
				},
			}}},
		},
	}
}

func marketingFunnelTemplate() Template {
	return Template{
		Key:         "marketing-funnel",
		Name:        "Marketing Funnel",
		Description: "Acquisition KPIs plus funnel stage drop-off.",
		Category:    "marketing",
		Components: []CompactComponent{
			{Type: TypeKpiCard, Properties: KpiProperties{Title: "Visitors", Value: 45200}},
			{Type: TypeKpiCard, Properties: KpiProperties{Title: "Signups", Value: 3620}},
			{Type: TypeKpiCard, Properties: KpiProperties{Title: "Conversion", Value: 8.0, Unit: "%"}},
			{Type: TypeBarChart, Properties: BarChartProperties{ChartData: ChartData{
				Title: "Funnel Stages",
				Data: []DataPoint{
					{Name: "Visited", Value: 45200},
					{Name: "Engaged", Value: 17800},
					{Name: "Trialed", Value: 5400},
					{Name: "Converted", Value: 3620},
				},
			}}},
			{Type: TypeAreaChart, Properties: AreaChartProperties{ChartData: ChartData{
				Title: "Signups per Week",
				Data: []DataPoint{
					{Name: "W1", Value: 740},
					{Name: "W2", Value: 905},
					{Name: "W3", Value: 980},
					{Name: "W4", Value: 995},
				},
			}}},
		},
	}
}

func opsHealthTemplate() Template {
	return Template{
		Key:         "ops-health",
		Name:        "Operations Health",
		Description: "Service KPIs, error trend, and latency scatter.",
		Category:    "operations",
		Components: []CompactComponent{
			{Type: TypeKpiCard, Properties: KpiProperties{Title: "Uptime", Value: 99.95, Unit: "%"}},
			{Type: TypeKpiCard, Properties: KpiProperties{Title: "Open Incidents", Value: 3}},
			{Type: TypeLineChart, Properties: LineChartProperties{ChartData: ChartData{
				Title: "Errors per Hour",
				Data: []DataPoint{
					{Name: "00h", Value: 12},
					{Name: "06h", Value: 8},
					{Name: "12h", Value: 31},
					{Name: "18h", Value: 17},
				},
			}}},
			{Type: TypeScatterChart, Properties: ScatterChartProperties{ChartData: ChartData{
				Title: "Latency vs Throughput",
				Rows: []map[string]any{
					{"name": "api", "latency": 112.0, "throughput": 840.0},
					{"name": "worker", "latency": 64.0, "throughput": 1210.0},
					{"name": "ingest", "latency": 201.0, "throughput": 430.0},
				},
				Series: []SeriesDef{{Key: "latency"}, {Key: "throughput"}},
			}}},
			{Type: TypeTable, Properties: TableProperties{
				Title:   "Slowest Endpoints",
				Columns: []string{"Endpoint", "p95 ms"},
				Rows:    [][]string{{"/export", "912"}, {"/search", "488"}, {"/login", "203"}},
			}},
		},
	}
}
