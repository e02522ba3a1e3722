package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleSources = `{
  "Domod": {
    "search_url": "https://domod.ba/pretraga?keywords={query}",
    "selectors": {
      "item": ".product-item, .product-card",
      "title": ".product-title, h3",
      "price": ".price, .product-price"
    }
  },
  "eKupi": {
    "search_url": "https://www.ekupi.ba/bs/search/?text={query}",
    "selectors": {
      "item": ".product-item",
      "title": "a.name",
      "price": ".price"
    }
  }
}`

func TestParseSources(t *testing.T) {
	catalog, err := ParseSources([]byte(sampleSources))
	require.NoError(t, err)
	require.Len(t, catalog, 2)

	// Sorted by name for a stable scan order.
	assert.Equal(t, []string{"Domod", "eKupi"}, catalog.Names())

	domod := catalog[0]
	assert.Equal(t, "https://domod.ba/pretraga?keywords={query}", domod.SearchURL)
	// Chain order is preserved exactly as configured.
	assert.Equal(t, []string{".product-item", ".product-card"}, domod.ItemSelectors)
	assert.Equal(t, []string{".product-title", "h3"}, domod.TitleSelectors)
	assert.Equal(t, []string{".price", ".product-price"}, domod.PriceSelectors)
}

func TestParseSourcesMissingPlaceholder(t *testing.T) {
	bad := `{"Domod": {"search_url": "https://domod.ba/pretraga",
		"selectors": {"item": ".a", "title": ".b", "price": ".c"}}}`

	_, err := ParseSources([]byte(bad))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "{query}")
}

func TestParseSourcesMissingSelectors(t *testing.T) {
	bad := `{"Domod": {"search_url": "https://domod.ba/p?q={query}",
		"selectors": {"item": "", "title": ".b", "price": ".c"}}}`

	_, err := ParseSources([]byte(bad))
	assert.Error(t, err)
}

func TestParseSourcesEmpty(t *testing.T) {
	_, err := ParseSources([]byte(`{}`))
	assert.Error(t, err)

	_, err = ParseSources([]byte(`not json`))
	assert.Error(t, err)
}

func TestLoadSources(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sources.json")
	require.NoError(t, os.WriteFile(path, []byte(sampleSources), 0644))

	catalog, err := LoadSources(path)
	require.NoError(t, err)
	assert.Len(t, catalog, 2)

	_, err = LoadSources(filepath.Join(t.TempDir(), "missing.json"))
	assert.Error(t, err)
}

func TestSplitSelectors(t *testing.T) {
	assert.Equal(t, []string{".a", ".b > .c", "h3"}, splitSelectors(".a, .b > .c,h3"))
	assert.Nil(t, splitSelectors(""))
	assert.Nil(t, splitSelectors(" , ,"))
}
