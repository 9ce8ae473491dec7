package core

import (
	"errors"
	"strings"
	"testing"
)

func TestValidateSearchRequest(t *testing.T) {
	tests := []struct {
		name    string
		request *SearchRequest
		wantErr error
	}{
		{
			name:    "minimal valid request",
			request: &SearchRequest{Query: "golang generics"},
			wantErr: nil,
		},
		{
			name: "fully specified request",
			request: &SearchRequest{
				Query:        "golang generics",
				Page:         2,
				Count:        20,
				SiteFilter:   "github.com",
				TimePeriod:   "week",
				Related:      true,
				RelatedCount: 5,
			},
			wantErr: nil,
		},
		{
			name:    "nil request",
			request: nil,
			wantErr: ErrInvalidRequest,
		},
		{
			name:    "empty query",
			request: &SearchRequest{Query: ""},
			wantErr: ErrEmptyQuery,
		},
		{
			name:    "whitespace query",
			request: &SearchRequest{Query: "   \t  "},
			wantErr: ErrEmptyQuery,
		},
		{
			name:    "query too long",
			request: &SearchRequest{Query: strings.Repeat("a", MaxQueryLength+1)},
			wantErr: ErrQueryTooLong,
		},
		{
			name:    "too many words",
			request: &SearchRequest{Query: strings.Repeat("word ", MaxQueryWords+1)},
			wantErr: ErrQueryTooManyWords,
		},
		{
			name:    "negative page",
			request: &SearchRequest{Query: "q", Page: -1},
			wantErr: ErrInvalidPage,
		},
		{
			name:    "count above maximum",
			request: &SearchRequest{Query: "q", Count: MaxResultsPerRequest + 1},
			wantErr: ErrInvalidCount,
		},
		{
			name:    "negative count",
			request: &SearchRequest{Query: "q", Count: -3},
			wantErr: ErrInvalidCount,
		},
		{
			name:    "unknown time period",
			request: &SearchRequest{Query: "q", TimePeriod: "fortnight"},
			wantErr: ErrInvalidTimePeriod,
		},
		{
			name:    "related count above maximum",
			request: &SearchRequest{Query: "q", Related: true, RelatedCount: MaxRelatedSearches + 1},
			wantErr: ErrInvalidRelatedCount,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateSearchRequest(tt.request)
			if tt.wantErr == nil {
				if err != nil {
					t.Fatalf("ValidateSearchRequest() unexpected error: %v", err)
				}
				return
			}
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("ValidateSearchRequest() error = %v, want %v", err, tt.wantErr)
			}
			if !errors.Is(err, ErrInvalidRequest) {
				t.Errorf("ValidateSearchRequest() error = %v, should wrap ErrInvalidRequest", err)
			}
		})
	}
}

func TestValidateSearchRequest_QueryAtLimits(t *testing.T) {
	atLength := &SearchRequest{Query: strings.Repeat("a", MaxQueryLength)}
	if err := ValidateSearchRequest(atLength); err != nil {
		t.Errorf("query at exact length limit should validate, got %v", err)
	}

	atWords := &SearchRequest{Query: strings.TrimSpace(strings.Repeat("w ", MaxQueryWords))}
	if err := ValidateSearchRequest(atWords); err != nil {
		t.Errorf("query at exact word limit should validate, got %v", err)
	}
}

func TestValidateResearchRequest(t *testing.T) {
	tests := []struct {
		name    string
		request *ResearchRequest
		wantErr error
	}{
		{
			name:    "minimal valid request",
			request: &ResearchRequest{Query: "quantum error correction"},
			wantErr: nil,
		},
		{
			name: "fully specified request",
			request: &ResearchRequest{
				Query:            "quantum error correction",
				Count:            15,
				DetailCount:      6,
				SummaryLength:    600,
				CaptureSnapshots: true,
			},
			wantErr: nil,
		},
		{
			name:    "nil request",
			request: nil,
			wantErr: ErrInvalidRequest,
		},
		{
			name:    "empty query",
			request: &ResearchRequest{Query: " "},
			wantErr: ErrEmptyQuery,
		},
		{
			name:    "count above maximum",
			request: &ResearchRequest{Query: "q", Count: MaxResearchCount + 1},
			wantErr: ErrInvalidCount,
		},
		{
			name:    "detail count above maximum",
			request: &ResearchRequest{Query: "q", DetailCount: MaxDetailCount + 1},
			wantErr: ErrInvalidDetailCount,
		},
		{
			name:    "summary length below minimum",
			request: &ResearchRequest{Query: "q", SummaryLength: MinSummaryLength - 1},
			wantErr: ErrInvalidSummaryLength,
		},
		{
			name:    "summary length above maximum",
			request: &ResearchRequest{Query: "q", SummaryLength: MaxSummaryLength + 1},
			wantErr: ErrInvalidSummaryLength,
		},
		{
			name:    "zero summary length takes default",
			request: &ResearchRequest{Query: "q", SummaryLength: 0},
			wantErr: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateResearchRequest(tt.request)
			if tt.wantErr == nil {
				if err != nil {
					t.Fatalf("ValidateResearchRequest() unexpected error: %v", err)
				}
				return
			}
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("ValidateResearchRequest() error = %v, want %v", err, tt.wantErr)
			}
			if !errors.Is(err, ErrInvalidRequest) {
				t.Errorf("ValidateResearchRequest() error = %v, should wrap ErrInvalidRequest", err)
			}
		})
	}
}

func TestIsValidTimePeriod(t *testing.T) {
	valid := []string{"", "day", "week", "month", "year", "Day", " WEEK "}
	for _, p := range valid {
		if !IsValidTimePeriod(p) {
			t.Errorf("IsValidTimePeriod(%q) = false, want true", p)
		}
	}

	invalid := []string{"hour", "decade", "d", "w"}
	for _, p := range invalid {
		if IsValidTimePeriod(p) {
			t.Errorf("IsValidTimePeriod(%q) = true, want false", p)
		}
	}
}
