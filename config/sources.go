package config

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/namiksejdovic1-tech/price-master-bih/models"
)

// sourceEntry mirrors one entry of the JSON catalog file:
//
//	{ "Domod": { "search_url": "...{query}...",
//	             "selectors": { "item": "a, b", "title": "...", "price": "..." } } }
type sourceEntry struct {
	SearchURL string `json:"search_url"`
	Selectors struct {
		Item  string `json:"item"`
		Title string `json:"title"`
		Price string `json:"price"`
	} `json:"selectors"`
}

// LoadSources reads the source catalog from a JSON file and validates
// it. The returned catalog is sorted by source name so scans and tests
// see a stable order.
func LoadSources(path string) (models.SourceCatalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read sources file: %w", err)
	}
	return ParseSources(data)
}

// ParseSources decodes and validates a JSON-shaped source catalog.
func ParseSources(data []byte) (models.SourceCatalog, error) {
	var raw map[string]sourceEntry
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("decode sources: %w", err)
	}
	if len(raw) == 0 {
		return nil, fmt.Errorf("sources file defines no sources")
	}

	catalog := make(models.SourceCatalog, 0, len(raw))
	for name, entry := range raw {
		src := models.SourceConfig{
			Name:           name,
			SearchURL:      entry.SearchURL,
			ItemSelectors:  splitSelectors(entry.Selectors.Item),
			TitleSelectors: splitSelectors(entry.Selectors.Title),
			PriceSelectors: splitSelectors(entry.Selectors.Price),
		}
		if err := validateSource(src); err != nil {
			return nil, fmt.Errorf("source %q: %w", name, err)
		}
		catalog = append(catalog, src)
	}

	sort.Slice(catalog, func(i, j int) bool { return catalog[i].Name < catalog[j].Name })
	return catalog, nil
}

func validateSource(src models.SourceConfig) error {
	if !strings.Contains(src.SearchURL, "{query}") {
		return fmt.Errorf("search_url must contain a {query} placeholder")
	}
	if len(src.ItemSelectors) == 0 {
		return fmt.Errorf("at least one item selector is required")
	}
	if len(src.TitleSelectors) == 0 {
		return fmt.Errorf("at least one title selector is required")
	}
	if len(src.PriceSelectors) == 0 {
		return fmt.Errorf("at least one price selector is required")
	}
	return nil
}

// splitSelectors turns a comma-separated selector chain into an
// ordered list, preserving the configured order.
func splitSelectors(chain string) []string {
	var out []string
	for _, part := range strings.Split(chain, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
