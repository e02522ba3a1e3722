package competitor

import "strings"

// Marketing words that carry no product identity and only dilute the
// similarity score.
var marketingStopwords = map[string]struct{}{
	"sale":   {},
	"new":    {},
	"promo":  {},
	"novo":   {},
	"akcija": {},
	"popust": {},
}

var quoteStripper = strings.NewReplacer(
	`"`, "", "'", "",
	"“", "", "”", "", // curly double quotes
	"‘", "", "’", "", // curly single quotes
)

// TitleMatcher scores how likely a scraped listing title refers to the
// queried product.
type TitleMatcher struct{}

func NewTitleMatcher() *TitleMatcher {
	return &TitleMatcher{}
}

// Normalize lowercases the string, strips straight and curly quote
// characters and marketing stopwords, and collapses whitespace runs
// into single spaces. Normalizing twice yields the same string.
func (m *TitleMatcher) Normalize(s string) string {
	s = strings.ToLower(s)
	s = quoteStripper.Replace(s)

	fields := strings.Fields(s)
	kept := fields[:0]
	for _, f := range fields {
		if _, skip := marketingStopwords[f]; skip {
			continue
		}
		kept = append(kept, f)
	}
	return strings.Join(kept, " ")
}

// Similarity returns the Ratcliff/Obershelp sequence ratio between the
// normalized forms of query and title, in [0, 1].
func (m *TitleMatcher) Similarity(query, title string) float64 {
	a := []rune(m.Normalize(query))
	b := []rune(m.Normalize(title))
	total := len(a) + len(b)
	if total == 0 {
		return 1.0
	}
	return 2 * float64(matchingChars(a, b)) / float64(total)
}

// matchingChars counts characters the two sequences have in common:
// the longest common substring, plus recursively whatever matches in
// the pieces to its left and to its right.
func matchingChars(a, b []rune) int {
	if len(a) == 0 || len(b) == 0 {
		return 0
	}
	ai, bi, size := longestCommonRun(a, b)
	if size == 0 {
		return 0
	}
	return size +
		matchingChars(a[:ai], b[:bi]) +
		matchingChars(a[ai+size:], b[bi+size:])
}

// longestCommonRun finds the longest common substring of a and b,
// preferring the earliest occurrence in a, then in b.
func longestCommonRun(a, b []rune) (ai, bi, size int) {
	// row[j+1] holds the length of the common suffix ending at a[i], b[j].
	row := make([]int, len(b)+1)
	for i := range a {
		prev := 0
		for j := range b {
			cur := row[j+1]
			if a[i] == b[j] {
				row[j+1] = prev + 1
				if row[j+1] > size {
					size = row[j+1]
					ai = i - size + 1
					bi = j - size + 1
				}
			} else {
				row[j+1] = 0
			}
			prev = cur
		}
	}
	return ai, bi, size
}
