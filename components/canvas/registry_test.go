package canvas

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewRegistrySeedsDefaultTemplates(t *testing.T) {
	reg := NewRegistry()
	for _, key := range []string{"sales-overview", "marketing-funnel", "ops-health"} {
		tpl, ok := reg.Template(key)
		require.True(t, ok, "expected template %s", key)
		assert.NotEmpty(t, tpl.Components)
	}
}

func TestRegistryRegisterValidation(t *testing.T) {
	reg := NewRegistry()
	err := reg.Register(Template{Name: "anonymous"})
	require.Error(t, err)

	err = reg.Register(Template{Key: "hollow", Name: "Hollow"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "has no components")
}

func TestRegistryRegisterOverwritesByKey(t *testing.T) {
	reg := NewRegistry()
	tpl := Template{
		Key:        "custom",
		Name:       "First",
		Components: []CompactComponent{{Type: TypeText, Properties: TextProperties{Text: "a"}}},
	}
	require.NoError(t, reg.Register(tpl))
	tpl.Name = "Second"
	require.NoError(t, reg.Register(tpl))

	got, ok := reg.Template("custom")
	require.True(t, ok)
	assert.Equal(t, "Second", got.Name)
}

func TestRegistryTemplatesSortedByKey(t *testing.T) {
	reg := NewRegistry()
	templates := reg.Templates()
	require.NotEmpty(t, templates)
	for i := 1; i < len(templates); i++ {
		assert.Less(t, templates[i-1].Key, templates[i].Key)
	}
}

func TestRegistryTemplateHook(t *testing.T) {
	RegisterTemplateHook(func(reg *Registry) error {
		return reg.Register(Template{
			Key:        "hooked",
			Name:       "Hooked",
			Components: []CompactComponent{{Type: TypeText, Properties: TextProperties{Text: "hi"}}},
		})
	})
	reg := NewRegistry()
	_, ok := reg.Template("hooked")
	assert.True(t, ok)
}

func TestBuildDefaultTemplatesHonorsChartBudget(t *testing.T) {
	cfg := DefaultLayoutConfig()
	cfg.MaxCharts = 1
	for _, tpl := range BuildDefaultTemplates(cfg) {
		charts := 0
		for _, c := range tpl.Components {
			if c.Type != TypeKpiCard {
				charts++
			}
		}
		assert.LessOrEqual(t, charts, 1, "template %s exceeds chart budget", tpl.Key)

		result := PlaceComponents(tpl.Components, cfg)
		assert.Empty(t, result.Dropped, "template %s drops components when applied", tpl.Key)
	}
}

func TestBuildDefaultTemplatesIsPure(t *testing.T) {
	first := BuildDefaultTemplates(DefaultLayoutConfig())
	second := BuildDefaultTemplates(DefaultLayoutConfig())
	require.Equal(t, len(first), len(second))

	first[0].Components[0].Properties = TextProperties{Text: "mutated"}
	_, stillKpi := second[0].Components[0].Properties.(KpiProperties)
	assert.True(t, stillKpi, "each call must return independent slices")
}
