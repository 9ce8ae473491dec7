package canonical

import (
	"math"
	"strings"
	"unicode"

	"github.com/poiesic/scout/core"
)

// Phrase matches are strong evidence and score double; bare token hints
// score a single point each.
const (
	phraseWeight = 2.0
	hintWeight   = 1.0
)

// confidenceDivisor converts a raw evidence score into a 0..1 confidence.
const confidenceDivisor = 4.0

var intentPhrases = map[core.Intent][]string{
	core.IntentNews:      {"breaking", "headline", "latest", "today", "press release", "announcement"},
	core.IntentTechnical: {"api", "documentation", "error", "stack trace", "tutorial", "guide", "how to"},
	core.IntentShopping:  {"buy", "price", "deal", "discount", "coupon", "review"},
	core.IntentAcademic:  {"paper", "study", "journal", "doi", "research", "arxiv"},
	core.IntentLocal:     {"near me", "closest", "nearby", "in my area", "open now", "map"},
	core.IntentFinance:   {"stock", "earnings", "forecast", "investment", "market", "share price"},
}

var intentHints = map[core.Intent][]string{
	core.IntentNews:      {"cnn", "bbc", "reuters", "times"},
	core.IntentTechnical: {"github", "stackoverflow", "rfc", "spec"},
	core.IntentShopping:  {"amazon", "bestbuy", "walmart", "review"},
	core.IntentAcademic:  {"springer", "nature", "ieee", "acm"},
	core.IntentLocal:     {"city", "restaurant", "hotel"},
}

// intentPrecedence breaks score ties: earlier intents win.
var intentPrecedence = []core.Intent{
	core.IntentNews,
	core.IntentTechnical,
	core.IntentShopping,
	core.IntentAcademic,
	core.IntentFinance,
	core.IntentLocal,
}

// ClassifyIntent scores a query against per-intent keyword phrases and hint
// tokens and returns the best match with a confidence in 0..1. Queries with
// no matching evidence classify as general with zero confidence.
func ClassifyIntent(query string) (core.Intent, float64) {
	tokens := tokenize(query)
	if len(tokens) == 0 {
		return core.IntentGeneral, 0
	}

	joined := strings.Join(tokens, " ")
	scores := make(map[core.Intent]float64)

	for intent, phrases := range intentPhrases {
		for _, phrase := range phrases {
			if strings.Contains(joined, phrase) {
				scores[intent] += phraseWeight
			}
		}
	}

	tokenSet := make(map[string]bool, len(tokens))
	for _, tok := range tokens {
		tokenSet[tok] = true
	}
	for intent, hints := range intentHints {
		for _, hint := range hints {
			if tokenSet[hint] {
				scores[intent] += hintWeight
			}
		}
	}

	// Site-scoped GitHub queries are almost always technical. The operator
	// is checked against the raw query because tokenization strips colons.
	lowered := strings.ToLower(query)
	if strings.Contains(lowered, "site:") && strings.Contains(lowered, "github") {
		scores[core.IntentTechnical] += hintWeight
	}

	// A bare 4-digit token usually means a year, which leans news.
	for _, tok := range tokens {
		if len(tok) == 4 && isDigits(tok) {
			scores[core.IntentNews] += 0.5
			break
		}
	}

	if len(scores) == 0 {
		return core.IntentGeneral, 0
	}

	best := core.IntentGeneral
	bestScore := 0.0
	for _, intent := range intentPrecedence {
		if score, ok := scores[intent]; ok && score > bestScore {
			best, bestScore = intent, score
		}
	}

	confidence := math.Min(1, bestScore/confidenceDivisor)
	return best, math.Round(confidence*100) / 100
}

// tokenize lowercases the query and extracts runs of word characters and
// apostrophes, dropping all other punctuation.
func tokenize(query string) []string {
	lowered := strings.ToLower(query)
	tokens := make([]string, 0, 8)
	var b strings.Builder
	for _, r := range lowered {
		if isWordRune(r) {
			b.WriteRune(r)
			continue
		}
		if b.Len() > 0 {
			tokens = append(tokens, b.String())
			b.Reset()
		}
	}
	if b.Len() > 0 {
		tokens = append(tokens, b.String())
	}
	return tokens
}

func isWordRune(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsDigit(r) || r == '_' || r == '\''
}

func isDigits(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
