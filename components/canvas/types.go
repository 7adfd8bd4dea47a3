package canvas

import "context"

// ComponentType discriminates the property variant a component carries.
type ComponentType string

const (
	TypeKpiCard      ComponentType = "kpi-card"
	TypeBarChart     ComponentType = "bar-chart"
	TypeLineChart    ComponentType = "line-chart"
	TypeAreaChart    ComponentType = "area-chart"
	TypePieChart     ComponentType = "pie-chart"
	TypeScatterChart ComponentType = "scatter-chart"
	TypeTable        ComponentType = "table"
	TypeText         ComponentType = "text"
	TypeShape        ComponentType = "shape"
)

// Position is a component's top-left corner on the canvas.
type Position struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Size is a component's box dimensions.
type Size struct {
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// DataPoint is the minimal name/value shape single-series charts render.
type DataPoint struct {
	Name  string  `json:"name"`
	Value float64 `json:"value"`
}

// SeriesDef names one series key of a multi-series chart.
type SeriesDef struct {
	Key   string `json:"key"`
	Label string `json:"label,omitempty"`
	Color string `json:"color,omitempty"`
}

// Properties is the tagged union of per-kind component payloads. Each
// variant's valid fields are statically enumerable instead of an open
// property bag; Kind reports the discriminant.
type Properties interface {
	Kind() ComponentType
}

// ChartData is the payload shared by every chart variant. Data holds the
// single-series shape; Rows plus Series hold the multi-series shape.
type ChartData struct {
	Title  string           `json:"title,omitempty"`
	Data   []DataPoint      `json:"data,omitempty"`
	Rows   []map[string]any `json:"rows,omitempty"`
	Series []SeriesDef      `json:"series,omitempty"`
	Color  string           `json:"color,omitempty"`
}

// KpiProperties renders a single aggregated metric.
type KpiProperties struct {
	Title string  `json:"title,omitempty"`
	Value float64 `json:"value"`
	Unit  string  `json:"unit,omitempty"`
	Color string  `json:"color,omitempty"`
}

func (KpiProperties) Kind() ComponentType { return TypeKpiCard }

type BarChartProperties struct {
	ChartData
	Stacked bool `json:"stacked,omitempty"`
}

func (BarChartProperties) Kind() ComponentType { return TypeBarChart }

type LineChartProperties struct {
	ChartData
	Smooth bool `json:"smooth,omitempty"`
}

func (LineChartProperties) Kind() ComponentType { return TypeLineChart }

type AreaChartProperties struct {
	ChartData
}

func (AreaChartProperties) Kind() ComponentType { return TypeAreaChart }

type PieChartProperties struct {
	ChartData
	Donut bool `json:"donut,omitempty"`
}

func (PieChartProperties) Kind() ComponentType { return TypePieChart }

type ScatterChartProperties struct {
	ChartData
}

func (ScatterChartProperties) Kind() ComponentType { return TypeScatterChart }

type TableProperties struct {
	Title   string     `json:"title,omitempty"`
	Columns []string   `json:"columns,omitempty"`
	Rows    [][]string `json:"rows,omitempty"`
}

func (TableProperties) Kind() ComponentType { return TypeTable }

type TextProperties struct {
	Text     string  `json:"text"`
	FontSize float64 `json:"fontSize,omitempty"`
	Color    string  `json:"color,omitempty"`
}

func (TextProperties) Kind() ComponentType { return TypeText }

type ShapeProperties struct {
	Shape string `json:"shape"`
	Fill  string `json:"fill,omitempty"`
}

func (ShapeProperties) Kind() ComponentType { return TypeShape }

// CompactComponent is a component description awaiting layout: no
// position or z-index yet. IDs may be empty; the service assigns them.
type CompactComponent struct {
	ID         string        `json:"id,omitempty"`
	Type       ComponentType `json:"type"`
	Properties Properties    `json:"properties,omitempty"`
}

// Component is a fully placed canvas component.
type Component struct {
	ID         string        `json:"id"`
	Type       ComponentType `json:"type"`
	Position   Position      `json:"position"`
	Size       Size          `json:"size"`
	ZIndex     int           `json:"zIndex"`
	Properties Properties    `json:"properties,omitempty"`
}

// Compact strips placement so a component can be re-laid-out.
func (c Component) Compact() CompactComponent {
	return CompactComponent{ID: c.ID, Type: c.Type, Properties: c.Properties}
}

// ComponentStore owns the live component list for one canvas. The packer
// and suggestion engine stay pure; all state lives behind this interface.
// Implementations ensure thread safety.
type ComponentStore interface {
	List(ctx context.Context) ([]Component, error)
	Append(ctx context.Context, components []Component) error
	ReplaceAll(ctx context.Context, components []Component) error
	Remove(ctx context.Context, id string) error
	Clear(ctx context.Context) error
}

// RefreshHook notifies transports (REST/WebSocket) about canvas changes.
type RefreshHook interface {
	CanvasUpdated(ctx context.Context, event CanvasEvent) error
}

// CanvasEvent describes a canvas change transports might care about.
type CanvasEvent struct {
	Reason       string   `json:"reason"`
	ComponentIDs []string `json:"componentIds,omitempty"`
	Template     string   `json:"template,omitempty"`
}

// TemplateRegistry stores canvas templates discoverable via hooks or manifests.
type TemplateRegistry interface {
	Register(t Template) error
	Template(key string) (Template, bool)
	Templates() []Template
}
