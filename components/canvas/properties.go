package canvas

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// DecodeProperties converts a loosely typed property map (manifest YAML,
// JSON payloads, AI responses) into the variant matching the component
// type. Unknown keys are ignored; values are coerced tolerantly.
func DecodeProperties(t ComponentType, raw map[string]any) (Properties, error) {
	switch t {
	case TypeKpiCard:
		return KpiProperties{
			Title: stringValue(raw["title"], ""),
			Value: float64Value(raw["value"]),
			Unit:  stringValue(raw["unit"], ""),
			Color: stringValue(raw["color"], ""),
		}, nil
	case TypeBarChart:
		return BarChartProperties{
			ChartData: decodeChartData(raw),
			Stacked:   boolValue(raw["stacked"]),
		}, nil
	case TypeLineChart:
		return LineChartProperties{
			ChartData: decodeChartData(raw),
			Smooth:    boolValue(raw["smooth"]),
		}, nil
	case TypeAreaChart:
		return AreaChartProperties{ChartData: decodeChartData(raw)}, nil
	case TypePieChart:
		return PieChartProperties{
			ChartData: decodeChartData(raw),
			Donut:     boolValue(raw["donut"]),
		}, nil
	case TypeScatterChart:
		return ScatterChartProperties{ChartData: decodeChartData(raw)}, nil
	case TypeTable:
		return TableProperties{
			Title:   stringValue(raw["title"], ""),
			Columns: stringSliceValue(raw["columns"]),
			Rows:    stringMatrixValue(raw["rows"]),
		}, nil
	case TypeText:
		return TextProperties{
			Text:     stringValue(raw["text"], ""),
			FontSize: float64Value(raw["fontSize"]),
			Color:    stringValue(raw["color"], ""),
		}, nil
	case TypeShape:
		return ShapeProperties{
			Shape: stringValue(raw["shape"], "rectangle"),
			Fill:  stringValue(raw["fill"], ""),
		}, nil
	default:
		return nil, fmt.Errorf("canvas: unsupported component type %q", t)
	}
}

func decodeChartData(raw map[string]any) ChartData {
	return ChartData{
		Title:  stringValue(raw["title"], ""),
		Data:   decodeDataPoints(raw["data"]),
		Rows:   anyMapSliceValue(raw["rows"]),
		Series: decodeSeriesDefs(raw["series"]),
		Color:  stringValue(raw["color"], ""),
	}
}

func decodeDataPoints(v any) []DataPoint {
	items, ok := v.([]any)
	if !ok {
		return nil
	}
	points := make([]DataPoint, 0, len(items))
	for _, item := range items {
		m, ok := anyMapValue(item)
		if !ok {
			continue
		}
		points = append(points, DataPoint{
			Name:  stringValue(m["name"], ""),
			Value: float64Value(m["value"]),
		})
	}
	return points
}

func decodeSeriesDefs(v any) []SeriesDef {
	items, ok := v.([]any)
	if !ok {
		return nil
	}
	defs := make([]SeriesDef, 0, len(items))
	for _, item := range items {
		m, ok := anyMapValue(item)
		if !ok {
			continue
		}
		defs = append(defs, SeriesDef{
			Key:   stringValue(m["key"], ""),
			Label: stringValue(m["label"], ""),
			Color: stringValue(m["color"], ""),
		})
	}
	return defs
}

type componentEnvelope struct {
	ID         string          `json:"id"`
	Type       ComponentType   `json:"type"`
	Position   Position        `json:"position"`
	Size       Size            `json:"size"`
	ZIndex     int             `json:"zIndex"`
	Properties json.RawMessage `json:"properties"`
}

// UnmarshalJSON decodes the properties payload into the variant named by
// the type discriminant.
func (c *CompactComponent) UnmarshalJSON(data []byte) error {
	var env componentEnvelope
	if err := json.Unmarshal(data, &env); err != nil {
		return err
	}
	props, err := decodeRawProperties(env.Type, env.Properties)
	if err != nil {
		return err
	}
	c.ID = env.ID
	c.Type = env.Type
	c.Properties = props
	return nil
}

// UnmarshalJSON decodes a placed component, including its property variant.
func (c *Component) UnmarshalJSON(data []byte) error {
	var env componentEnvelope
	if err := json.Unmarshal(data, &env); err != nil {
		return err
	}
	props, err := decodeRawProperties(env.Type, env.Properties)
	if err != nil {
		return err
	}
	c.ID = env.ID
	c.Type = env.Type
	c.Position = env.Position
	c.Size = env.Size
	c.ZIndex = env.ZIndex
	c.Properties = props
	return nil
}

func decodeRawProperties(t ComponentType, raw json.RawMessage) (Properties, error) {
	if len(raw) == 0 || string(raw) == "null" {
		if t == "" {
			return nil, fmt.Errorf("canvas: component type is required")
		}
		return DecodeProperties(t, map[string]any{})
	}
	var m map[string]any
	if err := json.Unmarshal(raw, &m); err != nil {
		return nil, fmt.Errorf("canvas: decode properties for %s: %w", t, err)
	}
	return DecodeProperties(t, m)
}

func anyMapValue(v any) (map[string]any, bool) {
	switch m := v.(type) {
	case map[string]any:
		return m, true
	case map[any]any:
		out := make(map[string]any, len(m))
		for k, val := range m {
			if key, ok := k.(string); ok {
				out[key] = val
			}
		}
		return out, true
	default:
		return nil, false
	}
}

func anyMapSliceValue(v any) []map[string]any {
	items, ok := v.([]any)
	if !ok {
		return nil
	}
	out := make([]map[string]any, 0, len(items))
	for _, item := range items {
		if m, ok := anyMapValue(item); ok {
			out = append(out, m)
		}
	}
	return out
}

func stringMatrixValue(v any) [][]string {
	items, ok := v.([]any)
	if !ok {
		return nil
	}
	out := make([][]string, 0, len(items))
	for _, item := range items {
		if row, ok := item.([]any); ok {
			cells := make([]string, 0, len(row))
			for _, cell := range row {
				cells = append(cells, stringValue(cell, fmt.Sprint(cell)))
			}
			out = append(out, cells)
		}
	}
	return out
}

func stringSliceValue(v any) []string {
	switch val := v.(type) {
	case []string:
		return append([]string(nil), val...)
	case []any:
		out := make([]string, 0, len(val))
		for _, item := range val {
			if s, ok := item.(string); ok {
				out = append(out, s)
			}
		}
		return out
	default:
		return nil
	}
}

func stringValue(v any, fallback string) string {
	if s, ok := v.(string); ok && s != "" {
		return s
	}
	return fallback
}

func float64Value(v any) float64 {
	switch val := v.(type) {
	case float64:
		return val
	case float32:
		return float64(val)
	case int:
		return float64(val)
	case int64:
		return float64(val)
	case json.Number:
		if f, err := val.Float64(); err == nil {
			return f
		}
	case string:
		if f, err := strconv.ParseFloat(val, 64); err == nil {
			return f
		}
	}
	return 0
}

func boolValue(v any) bool {
	switch val := v.(type) {
	case bool:
		return val
	case string:
		return strings.EqualFold(val, "true")
	case int:
		return val != 0
	case int64:
		return val != 0
	default:
		return false
	}
}
