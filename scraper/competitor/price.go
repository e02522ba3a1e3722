package competitor

import (
	"errors"
	"regexp"
	"strconv"
	"strings"
)

// ErrNoPrice means the text contained no numerically interpretable,
// positive price.
var ErrNoPrice = errors.New("no price found")

var (
	// Filler tokens that storefronts prepend to prices ("od 199 KM",
	// "from 199", "na rate").
	priceFillerRe = regexp.MustCompile(`(?i)\b(od|from|na rate)\b`)
	numericRunRe  = regexp.MustCompile(`[\d.,]+`)
)

// ParsePrice extracts a numeric price from localized price text.
//
// The locale is disambiguated by punctuation shape: when both "." and
// "," occur, "." is a thousands separator and "," the decimal mark
// ("1.249,00 KM" -> 1249.00); a lone "," is the decimal mark
// ("12,50" -> 12.50); otherwise the run is parsed as-is.
func ParsePrice(text string) (float64, error) {
	cleaned := priceFillerRe.ReplaceAllString(text, " ")
	run := numericRunRe.FindString(cleaned)
	if run == "" {
		return 0, ErrNoPrice
	}

	hasComma := strings.Contains(run, ",")
	hasDot := strings.Contains(run, ".")
	switch {
	case hasComma && hasDot:
		run = strings.ReplaceAll(run, ".", "")
		run = strings.Replace(run, ",", ".", 1)
	case hasComma:
		run = strings.Replace(run, ",", ".", 1)
	}

	price, err := strconv.ParseFloat(run, 64)
	if err != nil || price <= 0 {
		return 0, ErrNoPrice
	}
	return price, nil
}
