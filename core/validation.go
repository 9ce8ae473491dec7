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


package core

import (
	"fmt"
	"strings"
)

// Request limits. Queries beyond these bounds are rejected before any
// backend work happens.
const (
	MaxQueryLength       = 400
	MaxQueryWords        = 50
	MaxResultsPerRequest = 20
	DefaultResultsCount  = 10
	MaxRelatedSearches   = 10

	MaxResearchCount     = 15
	DefaultResearchCount = 6
	MaxDetailCount       = 6
	DefaultDetailCount   = 3
	MinSummaryLength     = 120
	MaxSummaryLength     = 600
	DefaultSummaryLength = 300
)

// ValidateSearchRequest validates a SearchRequest according to domain rules.
//
// Validation rules:
//   - Query must be non-empty after trimming, at most MaxQueryLength
//     characters and MaxQueryWords words
//   - Page must not be negative (0 means first page)
//   - Count must be within 0..MaxResultsPerRequest (0 means default)
//   - TimePeriod must be empty or one of "day", "week", "month", "year"
//   - RelatedCount must be within 0..MaxRelatedSearches
func ValidateSearchRequest(r *SearchRequest) error {
	if r == nil {
		return fmt.Errorf("%w: request is nil", ErrInvalidRequest)
	}

	if err := validateQuery(r.Query); err != nil {
		return err
	}

	if r.Page < 0 {
		return fmt.Errorf("%w: %w: %d", ErrInvalidRequest, ErrInvalidPage, r.Page)
	}

	if r.Count < 0 || r.Count > MaxResultsPerRequest {
		return fmt.Errorf("%w: %w: %d not in 0..%d", ErrInvalidRequest, ErrInvalidCount, r.Count, MaxResultsPerRequest)
	}

	if !IsValidTimePeriod(r.TimePeriod) {
		return fmt.Errorf("%w: %w: %q", ErrInvalidRequest, ErrInvalidTimePeriod, r.TimePeriod)
	}

	if r.RelatedCount < 0 || r.RelatedCount > MaxRelatedSearches {
		return fmt.Errorf("%w: %w: %d not in 0..%d", ErrInvalidRequest, ErrInvalidRelatedCount, r.RelatedCount, MaxRelatedSearches)
	}

	return nil
}

// ValidateResearchRequest validates a ResearchRequest according to domain rules.
//
// Validation rules:
//   - Query rules are the same as for search requests
//   - Count must be within 0..MaxResearchCount (0 means default)
//   - DetailCount must be within 0..MaxDetailCount (0 means default)
//   - SummaryLength must be 0 (default) or within MinSummaryLength..MaxSummaryLength
func ValidateResearchRequest(r *ResearchRequest) error {
	if r == nil {
		return fmt.Errorf("%w: request is nil", ErrInvalidRequest)
	}

	if err := validateQuery(r.Query); err != nil {
		return err
	}

	if r.Count < 0 || r.Count > MaxResearchCount {
		return fmt.Errorf("%w: %w: %d not in 0..%d", ErrInvalidRequest, ErrInvalidCount, r.Count, MaxResearchCount)
	}

	if r.DetailCount < 0 || r.DetailCount > MaxDetailCount {
		return fmt.Errorf("%w: %w: %d not in 0..%d", ErrInvalidRequest, ErrInvalidDetailCount, r.DetailCount, MaxDetailCount)
	}

	if r.SummaryLength != 0 && (r.SummaryLength < MinSummaryLength || r.SummaryLength > MaxSummaryLength) {
		return fmt.Errorf("%w: %w: %d not in %d..%d", ErrInvalidRequest, ErrInvalidSummaryLength, r.SummaryLength, MinSummaryLength, MaxSummaryLength)
	}

	return nil
}

// IsValidTimePeriod reports whether period is an accepted time filter.
// The empty string means no filter and is valid.
func IsValidTimePeriod(period string) bool {
	switch strings.ToLower(strings.TrimSpace(period)) {
	case "", "day", "week", "month", "year":
		return true
	}
	return false
}

func validateQuery(query string) error {
	trimmed := strings.TrimSpace(query)
	if trimmed == "" {
		return fmt.Errorf("%w: %w", ErrInvalidRequest, ErrEmptyQuery)
	}
	if len(trimmed) > MaxQueryLength {
		return fmt.Errorf("%w: %w: %d characters, maximum is %d", ErrInvalidRequest, ErrQueryTooLong, len(trimmed), MaxQueryLength)
	}
	if words := len(strings.Fields(trimmed)); words > MaxQueryWords {
		return fmt.Errorf("%w: %w: %d words, maximum is %d", ErrInvalidRequest, ErrQueryTooManyWords, words, MaxQueryWords)
	}
	return nil
}
