package canvas

import (
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeManifest(t *testing.T) {
	const payload = `
version: "1"
name: community-pack
templates:
  - key: community.sales
    name: Community Sales
    description: Revenue snapshot shared by the community pack.
    category: sales
    tags: ["sales", "starter"]
    components:
      - type: kpi-card
        properties:
          title: Revenue
          value: 1200
          unit: $
      - type: bar-chart
        properties:
          title: Revenue by Region
          data:
            - name: North
              value: 800
            - name: South
              value: 400
`
	doc, err := DecodeManifest(strings.NewReader(payload))
	require.NoError(t, err)
	require.Len(t, doc.Templates, 1)

	tpl := doc.Templates[0]
	assert.Equal(t, "community.sales", tpl.Key)
	assert.Equal(t, "Community Sales", tpl.Name)
	assert.Equal(t, "sales", tpl.Category)
	require.Len(t, tpl.Components, 2)
	assert.Equal(t, "kpi-card", tpl.Components[0].Type)
	assert.Equal(t, "Revenue", tpl.Components[0].Properties["title"])
}

func TestDecodeManifestDefaultsVersion(t *testing.T) {
	const payload = `
templates:
  - key: minimal
    name: Minimal
    components:
      - type: text
        properties:
          text: hello
`
	doc, err := DecodeManifest(strings.NewReader(payload))
	require.NoError(t, err)
	assert.Equal(t, ManifestVersion, doc.Version)
}

func TestDecodeManifestRejectsDuplicateKeys(t *testing.T) {
	const payload = `
templates:
  - key: dup
    name: First
    components:
      - type: text
        properties: {text: a}
  - key: dup
    name: Second
    components:
      - type: text
        properties: {text: b}
`
	_, err := DecodeManifest(strings.NewReader(payload))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "more than once")
}

func TestDecodeManifestRejectsUnknownVersion(t *testing.T) {
	_, err := DecodeManifest(strings.NewReader("version: \"9\"\ntemplates: []\n"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported manifest version")
}

func TestDecodeManifestRejectsEmptyTemplate(t *testing.T) {
	const payload = `
templates:
  - key: hollow
    name: Hollow
    components: []
`
	_, err := DecodeManifest(strings.NewReader(payload))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "has no components")
}

func TestRegistryLoadManifestDocument(t *testing.T) {
	doc := &TemplateManifestDocument{
		Version: ManifestVersion,
		Templates: []ManifestTemplate{
			{
				Key:  "acme.inventory",
				Name: "Inventory",
				Components: []ManifestComponent{
					{Type: string(TypeKpiCard), Properties: map[string]any{
						"title": "Stock", "value": 310.0,
					}},
					{Type: string(TypePieChart), Properties: map[string]any{
						"title": "Stock by Warehouse",
						"data": []any{
							map[string]any{"name": "East", "value": 190.0},
							map[string]any{"name": "West", "value": 120.0},
						},
					}},
				},
			},
		},
	}
	reg := NewRegistry()

	err := reg.LoadManifestDocument(doc)
	require.NoError(t, err)

	tpl, ok := reg.Template("acme.inventory")
	require.True(t, ok)
	assert.Equal(t, "Inventory", tpl.Name)
	require.Len(t, tpl.Components, 2)

	kpi, ok := tpl.Components[0].Properties.(KpiProperties)
	require.True(t, ok)
	assert.Equal(t, "Stock", kpi.Title)
	assert.Equal(t, 310.0, kpi.Value)

	pie, ok := tpl.Components[1].Properties.(PieChartProperties)
	require.True(t, ok)
	require.Len(t, pie.Data, 2)
	assert.Equal(t, DataPoint{Name: "East", Value: 190}, pie.Data[0])
}

func TestRegistryLoadManifestRejectsInvalidProperties(t *testing.T) {
	doc := &TemplateManifestDocument{
		Version: ManifestVersion,
		Templates: []ManifestTemplate{
			{
				Key:  "bad.props",
				Name: "Bad",
				Components: []ManifestComponent{
					{Type: string(TypeKpiCard), Properties: map[string]any{
						"value":    "not-a-number",
						"mystery":  true,
						"sparkles": 3,
					}},
				},
			},
		},
	}
	reg := NewRegistry()
	err := reg.LoadManifestDocument(doc)
	require.Error(t, err)
}

func TestReadManifestRoundTrip(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "pack.yaml")
	doc := &TemplateManifestDocument{
		Templates: []ManifestTemplate{
			{
				Key:  "roundtrip",
				Name: "Round Trip",
				Components: []ManifestComponent{
					{Type: string(TypeText), Properties: map[string]any{"text": "hi"}},
				},
			},
		},
	}
	require.NoError(t, WriteManifest(path, doc))

	loaded, err := ReadManifest(path)
	require.NoError(t, err)
	assert.Equal(t, path, loaded.Source)
	require.Len(t, loaded.Templates, 1)
	assert.Equal(t, "roundtrip", loaded.Templates[0].Key)
}
