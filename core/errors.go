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

import "errors"

// Domain validation errors
var (
	// ErrInvalidRequest is the umbrella error for request validation failures.
	// The specific cause is wrapped alongside it.
	ErrInvalidRequest = errors.New("invalid request")

	// ErrEmptyQuery indicates a query with no searchable content.
	ErrEmptyQuery = errors.New("query cannot be empty")

	// ErrQueryTooLong indicates a query longer than MaxQueryLength characters.
	ErrQueryTooLong = errors.New("query too long")

	// ErrQueryTooManyWords indicates a query with more than MaxQueryWords words.
	ErrQueryTooManyWords = errors.New("query has too many words")

	// ErrInvalidPage indicates a negative page number.
	ErrInvalidPage = errors.New("invalid page")

	// ErrInvalidCount indicates a result count outside the allowed range.
	ErrInvalidCount = errors.New("invalid result count")

	// ErrInvalidTimePeriod indicates an unrecognized time period filter.
	ErrInvalidTimePeriod = errors.New("invalid time period")

	// ErrInvalidRelatedCount indicates a related-search count outside the allowed range.
	ErrInvalidRelatedCount = errors.New("invalid related count")

	// ErrInvalidDetailCount indicates a detail count outside the allowed range.
	ErrInvalidDetailCount = errors.New("invalid detail count")

	// ErrInvalidSummaryLength indicates a summary length outside the allowed range.
	ErrInvalidSummaryLength = errors.New("invalid summary length")

	// ErrInvalidIntent indicates an unrecognized intent label.
	ErrInvalidIntent = errors.New("invalid intent")

	// ErrInvalidURL indicates a URL that cannot be parsed or lacks a host.
	ErrInvalidURL = errors.New("invalid url")
)
