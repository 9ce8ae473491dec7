// Copyright 2025 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


// Package rerank orders search results by lexical relevance to the query,
// blending token overlap with cosine similarity and a small boost for
// domains that fit the query intent. It needs no model and no network.
package rerank

import (
	"math"
	"sort"
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"

	"github.com/poiesic/scout/core"
)

// Domain keywords that earn results a boost under each intent. A keyword
// matches as a substring of the lowercased domain.
var intentDomainBoosts = map[core.Intent][]string{
	core.IntentNews:      {"news", "cnn", "bbc", "reuters", "times", "guardian"},
	core.IntentTechnical: {"docs", "developer", "github", "stackoverflow", "spec"},
	core.IntentShopping:  {"amazon", "bestbuy", "shop", "store", "price"},
	core.IntentAcademic:  {"arxiv", "springer", "nature", "ieee", "acm", "journals"},
	core.IntentFinance:   {"invest", "markets", "finance", "stock", "bloomberg"},
	core.IntentLocal:     {"city", "restaurant", "hotel", "map", "tripadvisor"},
}

const (
	overlapWeight = 0.6
	cosineWeight  = 0.4
	domainBoost   = 0.15
)

type tokenCounts map[string]int

// Rerank returns the results ordered by descending relevance score, ties
// keeping their incoming order, with Rank reassigned 1..n. The input slice
// is not modified. An untokenizable query keeps the incoming order.
func Rerank(query string, results []core.SearchResult, intent core.Intent) []core.SearchResult {
	out := append([]core.SearchResult(nil), results...)

	queryTokens := tokenize(query)
	if len(queryTokens) == 0 {
		renumber(out)
		return out
	}

	scores := make([]float64, len(out))
	for i, r := range out {
		docTokens := tokenize(r.Title + " " + r.Snippet)
		scores[i] = score(queryTokens, docTokens, intent, r.Domain)
	}

	idx := make([]int, len(out))
	for i := range idx {
		idx[i] = i
	}
	sort.SliceStable(idx, func(i, j int) bool { return scores[idx[i]] > scores[idx[j]] })

	ordered := make([]core.SearchResult, len(out))
	for i, j := range idx {
		ordered[i] = out[j]
	}
	renumber(ordered)
	return ordered
}

// score blends token overlap, cosine similarity and the intent domain
// boost. Overlap counts shared tokens with multiplicity against the query
// token total.
func score(query, doc tokenCounts, intent core.Intent, domain string) float64 {
	intersection := 0
	queryTotal := 0
	for token, qCount := range query {
		queryTotal += qCount
		dCount := doc[token]
		if dCount < qCount {
			intersection += dCount
		} else {
			intersection += qCount
		}
	}

	overlap := 0.0
	if intersection > 0 {
		if queryTotal < 1 {
			queryTotal = 1
		}
		overlap = float64(intersection) / float64(queryTotal)
	}

	boost := 0.0
	if keywords := intentDomainBoosts[intent]; len(keywords) > 0 {
		lowered := strings.ToLower(domain)
		for _, kw := range keywords {
			if strings.Contains(lowered, kw) {
				boost = domainBoost
				break
			}
		}
	}

	dot := 0.0
	for token, qCount := range query {
		dot += float64(qCount * doc[token])
	}
	cosine := dot / (magnitude(query) * magnitude(doc))

	return overlap*overlapWeight + cosine*cosineWeight + boost
}

func magnitude(counts tokenCounts) float64 {
	sum := 0
	for _, v := range counts {
		sum += v * v
	}
	if sum == 0 {
		return 1.0
	}
	return math.Sqrt(float64(sum))
}

// tokenize lowercases NFKD-normalized text and splits on anything that is
// not a letter or number, counting token multiplicity.
func tokenize(text string) tokenCounts {
	cleaned := strings.ToLower(norm.NFKD.String(text))

	counts := make(tokenCounts)
	var current strings.Builder
	flush := func() {
		if current.Len() > 0 {
			counts[current.String()]++
			current.Reset()
		}
	}
	for _, r := range cleaned {
		if unicode.IsLetter(r) || unicode.IsNumber(r) {
			current.WriteRune(r)
			continue
		}
		flush()
	}
	flush()
	return counts
}

func renumber(results []core.SearchResult) {
	for i := range results {
		results[i].Rank = i + 1
	}
}
