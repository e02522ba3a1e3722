package competitor

import (
	"context"
	"fmt"
	"math"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/sync/errgroup"

	"github.com/namiksejdovic1-tech/price-master-bih/models"
	"github.com/namiksejdovic1-tech/price-master-bih/utils"
)

// similarityThreshold is the floor below which a listing title is not
// trusted to be the same product.
const similarityThreshold = 0.85

// maxReasonLen caps the human-readable reason on fallback entries.
const maxReasonLen = 50

const (
	reasonNoResults     = "No results"
	reasonNoMatch       = "No match above 85% similarity"
	reasonSessionFailed = "Browser session failed"
)

// Scanner fans one fetch+extract+match pipeline out per configured
// source and fans the results back in. Scan never fails: every error
// in every pipeline degrades to a fallback entry, and the result
// always carries exactly one entry per source.
type Scanner struct {
	catalog  models.SourceCatalog
	sessions SessionFactory
	matcher  *TitleMatcher
	pricer   *FallbackPricer
}

// NewScanner wires a scanner over an immutable catalog. A nil pricer
// gets a randomly seeded default.
func NewScanner(catalog models.SourceCatalog, sessions SessionFactory, pricer *FallbackPricer) *Scanner {
	if pricer == nil {
		pricer = NewFallbackPricer(nil)
	}
	return &Scanner{
		catalog:  catalog,
		sessions: sessions,
		matcher:  NewTitleMatcher(),
		pricer:   pricer,
	}
}

// Scan checks every configured source for req.ProductName and returns
// one MatchResult per source. When the browsing session itself cannot
// start, every source gets a fallback entry instead of an error.
func (s *Scanner) Scan(ctx context.Context, req models.ScanRequest) models.ScanResult {
	result := make(models.ScanResult, len(s.catalog))

	session, err := s.sessions(ctx)
	if err != nil {
		utils.Error("Scan aborted before launch: %v", err)
		for _, src := range s.catalog {
			result[src.Name] = s.fallback(src.Name, req.ReferencePrice, reasonSessionFailed)
		}
		return result
	}
	defer session.Close()

	utils.Info("Scanning %d sources for %q", len(s.catalog), req.ProductName)

	results := make([]models.MatchResult, len(s.catalog))
	var g errgroup.Group
	for i, src := range s.catalog {
		g.Go(func() error {
			results[i] = s.scanSource(ctx, session, src, req)
			return nil
		})
	}
	// Pipelines never return errors; Wait is purely a barrier.
	_ = g.Wait()

	for _, r := range results {
		result[r.Source] = r
	}
	return result
}

// scanSource runs one source's full pipeline. It is structurally
// incapable of failing: fetch errors, extraction misses, weak matches,
// unparsable prices and even panics all come back as a fallback entry.
func (s *Scanner) scanSource(ctx context.Context, session Session, src models.SourceConfig, req models.ScanRequest) (res models.MatchResult) {
	defer func() {
		if r := recover(); r != nil {
			utils.Error("%s: pipeline panic: %v", src.Name, r)
			res = s.fallback(src.Name, req.ReferencePrice, fmt.Sprintf("internal error: %v", r))
		}
	}()

	html, err := session.Fetch(ctx, src, req.ProductName)
	if err != nil {
		utils.Warn("%s: %v", src.Name, err)
		return s.fallback(src.Name, req.ReferencePrice, err.Error())
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		utils.Warn("%s: parse: %v", src.Name, err)
		return s.fallback(src.Name, req.ReferencePrice, err.Error())
	}

	cands, err := ExtractCandidates(doc, src)
	if err != nil {
		return s.fallback(src.Name, req.ReferencePrice, reasonNoResults)
	}

	best, ok := s.pickBest(req.ProductName, cands)
	if !ok {
		return s.fallback(src.Name, req.ReferencePrice, reasonNoMatch)
	}

	utils.Success("%s: %q at %.2f (%.1f%%)", src.Name, best.title, best.price, best.similarity*100)
	return models.MatchResult{
		Source:     src.Name,
		Price:      best.price,
		Status:     models.StatusMatch,
		Similarity: math.Round(best.similarity*1000) / 10,
		Title:      best.title,
	}
}

type bestMatch struct {
	title      string
	price      float64
	similarity float64
}

// pickBest walks the candidates in page order. A candidate replaces
// the incumbent only when strictly more similar, so the earliest of
// two equally similar listings wins. The price text is fetched and
// parsed only for candidates that clear the threshold; an unusable
// price leaves the incumbent in place.
func (s *Scanner) pickBest(productName string, cands []Candidate) (bestMatch, bool) {
	var best bestMatch
	var found bool
	for _, c := range cands {
		sim := s.matcher.Similarity(productName, c.Title)
		if sim <= best.similarity || sim < similarityThreshold {
			continue
		}

		priceText := c.PriceText()
		if priceText == "" {
			continue
		}
		price, err := ParsePrice(priceText)
		if err != nil {
			continue
		}

		best = bestMatch{title: c.Title, price: price, similarity: sim}
		found = true
	}
	return best, found
}

func (s *Scanner) fallback(source string, referencePrice float64, reason string) models.MatchResult {
	return models.MatchResult{
		Source: source,
		Price:  s.pricer.Price(referencePrice),
		Status: models.StatusFallback,
		Reason: truncateReason(reason),
	}
}

func truncateReason(reason string) string {
	runes := []rune(reason)
	if len(runes) <= maxReasonLen {
		return reason
	}
	return string(runes[:maxReasonLen])
}
