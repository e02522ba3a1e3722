package models

// Product is one catalog entry tracked on the dashboard. Competitors
// holds the scan result from product creation or the latest explicit
// refresh, persisted verbatim.
type Product struct {
	ID          int        `json:"id"`
	Name        string     `json:"name"`
	MyPrice     float64    `json:"my_price"`
	Link        string     `json:"link,omitempty"`
	Competitors ScanResult `json:"competitors"`
}

// Stats summarizes how the owned prices stack up against the scanned
// competition.
type Stats struct {
	Total         int `json:"total"`
	Wins          int `json:"wins"`
	Opportunities int `json:"opportunities"`
}
