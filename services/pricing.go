package services

import (
	"fmt"
	"math"

	"github.com/namiksejdovic1-tech/price-master-bih/models"
)

// Price-position signals for a product versus its competitor average.
const (
	SignalCompetitive = "green"  // at or below the competitor average
	SignalOptimize    = "yellow" // within +5% of the competitor average
	SignalExpensive   = "red"    // more than 5% above the competitor average
)

// ProductView is a product enriched with the derived fields the
// dashboard renders. Derived fields are never persisted.
type ProductView struct {
	models.Product
	MinCompetitorPrice float64 `json:"min_competitor_price"`
	IsBestPrice        bool    `json:"is_best_price"`
}

// Suggestion is a per-product pricing recommendation derived from the
// competitor average.
type Suggestion struct {
	Name              string  `json:"name"`
	MyPrice           float64 `json:"my_price"`
	CompetitorAverage float64 `json:"competitor_average"`
	Signal            string  `json:"signal"`
	SuggestedPrice    float64 `json:"suggested_price"`
}

// BuildViews computes the derived dashboard fields for each product.
// Fallback entries carry synthetic prices, so they participate in the
// minimum like real ones — the dashboard always has something to show.
func BuildViews(products []models.Product) []ProductView {
	views := make([]ProductView, len(products))
	for i, p := range products {
		v := ProductView{Product: p}
		if min, ok := minCompetitorPrice(p); ok {
			v.MinCompetitorPrice = min
			v.IsBestPrice = p.MyPrice <= min
		}
		views[i] = v
	}
	return views
}

// CalculateStats counts how many products win on price (owned price at
// or below the minimum competitor price) versus how many leave room.
// Products that have never been scanned count toward neither.
func CalculateStats(products []models.Product) models.Stats {
	stats := models.Stats{Total: len(products)}

	for _, p := range products {
		min, ok := minCompetitorPrice(p)
		if !ok {
			continue
		}
		if p.MyPrice <= min {
			stats.Wins++
		} else {
			stats.Opportunities++
		}
	}

	return stats
}

// Suggest derives a pricing recommendation for each scanned product:
// above average +5% suggests dropping to 5% below average, at or below
// average keeps the current price, and the band in between suggests
// moving to the average.
func Suggest(products []models.Product) []Suggestion {
	var suggestions []Suggestion

	for _, p := range products {
		avg, ok := averageCompetitorPrice(p)
		if !ok {
			suggestions = append(suggestions, Suggestion{
				Name:           p.Name,
				MyPrice:        p.MyPrice,
				Signal:         SignalOptimize,
				SuggestedPrice: p.MyPrice,
			})
			continue
		}

		s := Suggestion{
			Name:              p.Name,
			MyPrice:           p.MyPrice,
			CompetitorAverage: round2(avg),
		}

		switch {
		case p.MyPrice > avg*1.05:
			s.Signal = SignalExpensive
			s.SuggestedPrice = round2(avg * 0.95)
		case p.MyPrice <= avg:
			s.Signal = SignalCompetitive
			s.SuggestedPrice = p.MyPrice
		default:
			s.Signal = SignalOptimize
			s.SuggestedPrice = round2(avg)
		}

		suggestions = append(suggestions, s)
	}

	return suggestions
}

// FormatPrice renders a price for display in the local currency.
func FormatPrice(price float64) string {
	return fmt.Sprintf("%.2f KM", price)
}

func minCompetitorPrice(p models.Product) (float64, bool) {
	min := math.MaxFloat64
	found := false
	for _, entry := range p.Competitors {
		if entry.Price > 0 && entry.Price < min {
			min = entry.Price
			found = true
		}
	}
	return min, found
}

func averageCompetitorPrice(p models.Product) (float64, bool) {
	var sum float64
	var count int
	for _, entry := range p.Competitors {
		if entry.Price > 0 {
			sum += entry.Price
			count++
		}
	}
	if count == 0 {
		return 0, false
	}
	return sum / float64(count), true
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
