package canvas

// LayoutConfig centralizes every packing constant. The same struct is
// passed to the packer and to template builders so box sizes never
// drift between the two.
type LayoutConfig struct {
	CanvasWidth  float64
	Spacing      float64
	KpiSize      Size
	ChartSize    Size
	ChartColumns int
	MaxCharts    int
}

// DefaultLayoutConfig returns the stock canvas geometry.
func DefaultLayoutConfig() LayoutConfig {
	return LayoutConfig{
		CanvasWidth:  1300,
		Spacing:      2,
		KpiSize:      Size{Width: 211, Height: 107},
		ChartSize:    Size{Width: 423, Height: 328},
		ChartColumns: 3,
		MaxCharts:    6,
	}
}

func (cfg LayoutConfig) normalized() LayoutConfig {
	def := DefaultLayoutConfig()
	if cfg.CanvasWidth <= 0 {
		cfg.CanvasWidth = def.CanvasWidth
	}
	if cfg.Spacing <= 0 {
		cfg.Spacing = def.Spacing
	}
	if cfg.KpiSize.Width <= 0 || cfg.KpiSize.Height <= 0 {
		cfg.KpiSize = def.KpiSize
	}
	if cfg.ChartSize.Width <= 0 || cfg.ChartSize.Height <= 0 {
		cfg.ChartSize = def.ChartSize
	}
	if cfg.ChartColumns <= 0 {
		cfg.ChartColumns = def.ChartColumns
	}
	if cfg.MaxCharts <= 0 {
		cfg.MaxCharts = def.MaxCharts
	}
	return cfg
}

// LayoutResult is the packer output. Dropped holds chart components
// beyond the configured maximum, in insertion order, so callers can
// observe what was left off the canvas instead of inferring it.
type LayoutResult struct {
	Placed  []Component        `json:"placed"`
	Dropped []CompactComponent `json:"dropped,omitempty"`
}

// PlaceComponents deterministically assigns canvas coordinates to a
// batch of compact components. KPI cards form a single centered row at
// the top; every other component is treated as a chart and packed into
// a fixed-column grid directly below, capped at cfg.MaxCharts. Z-index
// follows insertion order, KPIs first. The function is total: a
// non-positive canvas width falls back to the default and an empty
// input yields an empty result.
func PlaceComponents(components []CompactComponent, cfg LayoutConfig) LayoutResult {
	cfg = cfg.normalized()

	var kpis, charts []CompactComponent
	for _, c := range components {
		if c.Type == TypeKpiCard {
			kpis = append(kpis, c)
		} else {
			charts = append(charts, c)
		}
	}

	var result LayoutResult
	if len(charts) > cfg.MaxCharts {
		result.Dropped = append(result.Dropped, charts[cfg.MaxCharts:]...)
		charts = charts[:cfg.MaxCharts]
	}

	z := 0
	kpiStartX := rowStartX(cfg, len(kpis), cfg.KpiSize.Width)
	for i, c := range kpis {
		z++
		result.Placed = append(result.Placed, Component{
			ID:   c.ID,
			Type: c.Type,
			Position: Position{
				X: kpiStartX + float64(i)*(cfg.KpiSize.Width+cfg.Spacing),
				Y: cfg.Spacing,
			},
			Size:       cfg.KpiSize,
			ZIndex:     z,
			Properties: c.Properties,
		})
	}

	chartStartY := cfg.Spacing
	if len(kpis) > 0 {
		chartStartY += cfg.KpiSize.Height + cfg.Spacing
	}
	// Chart rows are centered as if every row held a full column count,
	// so a partial last row lines up with the rows above it.
	chartStartX := rowStartX(cfg, cfg.ChartColumns, cfg.ChartSize.Width)
	for i, c := range charts {
		z++
		row := i / cfg.ChartColumns
		col := i % cfg.ChartColumns
		result.Placed = append(result.Placed, Component{
			ID:   c.ID,
			Type: c.Type,
			Position: Position{
				X: chartStartX + float64(col)*(cfg.ChartSize.Width+cfg.Spacing),
				Y: chartStartY + float64(row)*(cfg.ChartSize.Height+cfg.Spacing),
			},
			Size:       cfg.ChartSize,
			ZIndex:     z,
			Properties: c.Properties,
		})
	}
	return result
}

func rowStartX(cfg LayoutConfig, count int, itemWidth float64) float64 {
	if count <= 0 {
		return cfg.Spacing
	}
	total := float64(count)*itemWidth + float64(count-1)*cfg.Spacing
	start := (cfg.CanvasWidth - total) / 2
	if start < cfg.Spacing {
		return cfg.Spacing
	}
	return start
}
