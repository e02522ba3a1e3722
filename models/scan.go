package models

// MatchResult status values.
const (
	StatusMatch    = "match"
	StatusFallback = "fallback"
)

// SourceConfig describes one storefront: where to search for a product
// and how to locate listings on the rendered results page. Each
// selector list is an ordered fallback chain evaluated left to right;
// the order encodes a preference between page variants and must be
// preserved as configured.
type SourceConfig struct {
	Name           string
	SearchURL      string // contains a {query} placeholder
	ItemSelectors  []string
	TitleSelectors []string
	PriceSelectors []string
}

// SourceCatalog is the full set of configured storefronts. It is
// loaded once at startup and shared read-only by every scan.
type SourceCatalog []SourceConfig

// Names returns the source names in catalog order.
func (c SourceCatalog) Names() []string {
	names := make([]string, len(c))
	for i, src := range c {
		names[i] = src.Name
	}
	return names
}

// ScanRequest is one product to check against every configured source.
// ProductName must be non-empty and ReferencePrice positive; the
// caller validates before invoking a scan.
type ScanRequest struct {
	ProductName    string
	ReferencePrice float64
}

// MatchResult is the per-source outcome of a scan. Exactly one of the
// two shapes applies: a match carries Similarity (85.0-100.0, one
// decimal) and Title, a fallback carries Reason (at most 50 chars).
// Price is always present and positive.
type MatchResult struct {
	Source     string  `json:"source"`
	Price      float64 `json:"price"`
	Status     string  `json:"status"`
	Similarity float64 `json:"similarity,omitempty"`
	Title      string  `json:"title,omitempty"`
	Reason     string  `json:"reason,omitempty"`
}

// ScanResult maps source name to exactly one MatchResult. Its key set
// is always identical to the catalog's name set, regardless of how
// many sources failed.
type ScanResult map[string]MatchResult
