package canvas

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPreviewCacheStoresEntry(t *testing.T) {
	cache := NewPreviewCache(10 * time.Millisecond)
	calls := 0
	render := func() (string, error) {
		calls++
		return "html", nil
	}

	val1, err := cache.GetOrRender("key", render)
	require.NoError(t, err)
	val2, err := cache.GetOrRender("key", render)
	require.NoError(t, err)

	assert.Equal(t, "html", val1)
	assert.Equal(t, val1, val2)
	assert.Equal(t, 1, calls)
}

func TestPreviewCacheExpires(t *testing.T) {
	cache := NewPreviewCache(2 * time.Millisecond)
	calls := 0
	render := func() (string, error) {
		calls++
		return "fresh", nil
	}

	_, err := cache.GetOrRender("key", render)
	require.NoError(t, err)
	time.Sleep(5 * time.Millisecond)
	_, err = cache.GetOrRender("key", render)
	require.NoError(t, err)

	assert.Equal(t, 2, calls)
}

func TestPreviewCacheDoesNotStoreErrors(t *testing.T) {
	cache := NewPreviewCache(time.Minute)
	calls := 0
	_, err := cache.GetOrRender("key", func() (string, error) {
		calls++
		return "", errors.New("boom")
	})
	require.Error(t, err)

	val, err := cache.GetOrRender("key", func() (string, error) {
		calls++
		return "ok", nil
	})
	require.NoError(t, err)
	assert.Equal(t, "ok", val)
	assert.Equal(t, 2, calls)
}

func TestPreviewCacheZeroTTLDisabled(t *testing.T) {
	cache := NewPreviewCache(0)
	calls := 0
	render := func() (string, error) {
		calls++
		return "html", nil
	}
	_, _ = cache.GetOrRender("key", render)
	_, _ = cache.GetOrRender("key", render)
	assert.Equal(t, 2, calls)
}

func TestComponentHashStableAcrossCalls(t *testing.T) {
	component := Component{
		ID:   "c1",
		Type: TypeKpiCard,
		Size: Size{Width: 211, Height: 107},
		Properties: KpiProperties{
			Title: "Revenue",
			Value: 42,
		},
	}
	assert.Equal(t, componentHash(component), componentHash(component))

	component.Properties = KpiProperties{Title: "Revenue", Value: 43}
	assert.NotEqual(t, componentHash(Component{ID: "c1"}), componentHash(component))
}
