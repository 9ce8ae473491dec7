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


package canonical

import (
	"net/url"
	"strings"

	"github.com/poiesic/scout/core"
)

// NormalizeQuery lowercases a query and collapses internal whitespace so
// spelling variants of the same request share one cache identity.
func NormalizeQuery(query string) string {
	return strings.Join(strings.Fields(strings.ToLower(query)), " ")
}

// Canonicalize reduces a search request to its cache key. The request is
// normalized first, so callers may pass requests with unset optional fields.
func Canonicalize(req core.SearchRequest) core.CacheKey {
	req.Normalize()

	key := core.CacheKey{
		NormalizedQuery: NormalizeQuery(req.Query),
		Page:            req.Page,
		Count:           req.Count,
		SiteFilter:      normalizeSite(req.SiteFilter),
		TimePeriod:      strings.ToLower(strings.TrimSpace(req.TimePeriod)),
		Related:         req.Related,
		RelatedCount:    req.RelatedCount,
	}
	key.Intent, _ = ClassifyIntent(req.Query)
	return key
}

// CanonicalizeDetail builds the cache key for a fetched page. Detail entries
// inherit the intent of the query that led to them, so their freshness
// follows the same volatility policy as the originating search.
func CanonicalizeDetail(rawURL string, intent core.Intent) core.CacheKey {
	if intent < core.IntentGeneral || intent > core.IntentLocal {
		intent = core.IntentGeneral
	}
	return core.CacheKey{
		NormalizedQuery: NormalizeURL(rawURL),
		Page:            1,
		Count:           1,
		Intent:          intent,
	}
}

// NormalizeURL produces a stable form of a URL: lowercased scheme and host,
// default ports and fragments stripped, trailing slash removed from the path.
// Inputs that do not parse as absolute URLs are lowercased and trimmed only.
func NormalizeURL(rawURL string) string {
	trimmed := strings.TrimSpace(rawURL)
	u, err := url.Parse(trimmed)
	if err != nil || u.Host == "" {
		return strings.ToLower(trimmed)
	}
	u.Scheme = strings.ToLower(u.Scheme)
	u.Host = strings.ToLower(u.Host)
	u.Fragment = ""
	switch {
	case u.Scheme == "http" && strings.HasSuffix(u.Host, ":80"):
		u.Host = strings.TrimSuffix(u.Host, ":80")
	case u.Scheme == "https" && strings.HasSuffix(u.Host, ":443"):
		u.Host = strings.TrimSuffix(u.Host, ":443")
	}
	u.Path = strings.TrimSuffix(u.Path, "/")
	return u.String()
}

// Domain extracts the lowercased host of a URL without any port. It returns
// the empty string when no host can be determined.
func Domain(rawURL string) string {
	u, err := url.Parse(strings.TrimSpace(rawURL))
	if err != nil {
		return ""
	}
	return strings.ToLower(u.Hostname())
}

func normalizeSite(site string) string {
	site = strings.ToLower(strings.TrimSpace(site))
	return strings.TrimPrefix(site, "site:")
}
