package competitor

import (
	"errors"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/namiksejdovic1-tech/price-master-bih/models"
)

// maxCandidates bounds per-source work: only the first few listings on
// a results page are plausible matches for a concrete product query.
const maxCandidates = 3

// ErrNoListings means none of the configured item selectors matched
// anything on the rendered page.
var ErrNoListings = errors.New("no listings found")

// Candidate is one scraped search-result entry. The price text is
// looked up lazily, only for a candidate that has already cleared the
// similarity check.
type Candidate struct {
	Title          string
	item           *goquery.Selection
	priceSelectors []string
}

// PriceText walks the price selector chain and returns the first
// non-empty text, or "" when no selector yields anything.
func (c Candidate) PriceText() string {
	return firstText(c.item, c.priceSelectors)
}

// ExtractCandidates finds up to maxCandidates listing candidates on a
// rendered results page. The item selector chain is walked in
// configured order and the first selector matching any node wins;
// within the capped item nodes, ones without a usable title are
// skipped.
func ExtractCandidates(doc *goquery.Document, src models.SourceConfig) ([]Candidate, error) {
	var items *goquery.Selection
	for _, sel := range src.ItemSelectors {
		if found := doc.Find(sel); found.Length() > 0 {
			items = found
			break
		}
	}
	if items == nil {
		return nil, ErrNoListings
	}

	var cands []Candidate
	items.EachWithBreak(func(i int, item *goquery.Selection) bool {
		if i >= maxCandidates {
			return false
		}
		title := firstText(item, src.TitleSelectors)
		if title == "" {
			return true
		}
		cands = append(cands, Candidate{
			Title:          title,
			item:           item,
			priceSelectors: src.PriceSelectors,
		})
		return true
	})
	return cands, nil
}

// firstText evaluates a selector fallback chain against sel and
// returns the first non-empty trimmed text.
func firstText(sel *goquery.Selection, selectors []string) string {
	if sel == nil {
		return ""
	}
	for _, s := range selectors {
		if text := strings.TrimSpace(sel.Find(s).First().Text()); text != "" {
			return text
		}
	}
	return ""
}
