package core

//go:generate go run ../cmd/musgen

import (
	"encoding/binary"
	"encoding/hex"
	"strconv"
	"strings"
	"time"

	"github.com/go-crypt/x/blake2b"
)

// ID is a unique identifier for domain entities.
// It is generated using content-based hashing so identical inputs
// collapse onto the same record.
type ID uint64

// IDFromContent generates a deterministic ID from text content using BLAKE2b hashing.
// This ensures that identical content produces identical IDs.
func IDFromContent(text string) ID {
	h, _ := blake2b.New(8, nil) // 8 bytes = 64 bits
	h.Write([]byte(text))
	sum := h.Sum(nil)
	return ID(binary.LittleEndian.Uint64(sum))
}

// ContentDigest computes a 256-bit BLAKE2b digest of content, hex encoded.
// Unlike IDFromContent it is wide enough to serve as an audit fingerprint
// for snapshot payloads.
func ContentDigest(text string) string {
	h, _ := blake2b.New(32, nil)
	h.Write([]byte(text))
	return hex.EncodeToString(h.Sum(nil))
}

// Intent classifies what a query is trying to accomplish. The intent selects
// the freshness policy for cached answers: volatile intents (news, finance)
// expire quickly while reference intents (technical, academic) live longer.
type Intent int

const (
	// IntentGeneral is the fallback when no other intent matches.
	IntentGeneral Intent = iota + 1
	// IntentNews covers current events and breaking coverage.
	IntentNews
	// IntentTechnical covers programming and engineering lookups.
	IntentTechnical
	// IntentShopping covers product and price queries.
	IntentShopping
	// IntentAcademic covers research and scholarly queries.
	IntentAcademic
	// IntentFinance covers market and investment queries.
	IntentFinance
	// IntentLocal covers near-me and place queries.
	IntentLocal
)

func (i Intent) String() string {
	switch i {
	case IntentGeneral:
		return "general"
	case IntentNews:
		return "news"
	case IntentTechnical:
		return "technical"
	case IntentShopping:
		return "shopping"
	case IntentAcademic:
		return "academic"
	case IntentFinance:
		return "finance"
	case IntentLocal:
		return "local"
	default:
		return "unknown"
	}
}

// ParseIntent maps a textual label back to its Intent value.
func ParseIntent(label string) (Intent, error) {
	switch strings.ToLower(strings.TrimSpace(label)) {
	case "general":
		return IntentGeneral, nil
	case "news":
		return IntentNews, nil
	case "technical":
		return IntentTechnical, nil
	case "shopping":
		return IntentShopping, nil
	case "academic":
		return IntentAcademic, nil
	case "finance":
		return IntentFinance, nil
	case "local":
		return IntentLocal, nil
	}
	return 0, ErrInvalidIntent
}

// SearchRequest describes a single search-engine query as received from a
// caller, before canonicalization.
type SearchRequest struct {
	Query        string
	Page         int    // 1-based result page, 0 means first
	Count        int    // requested results per page, 0 means default
	SiteFilter   string // restrict results to a site, e.g. "github.com"
	TimePeriod   string // "day", "week", "month" or "year"
	Related      bool   // also collect related search suggestions
	RelatedCount int    // suggestions to collect when Related is set, 0 means default
}

// Normalize fills defaults for unset optional fields. It does not validate;
// see ValidateSearchRequest.
func (r *SearchRequest) Normalize() {
	if r.Page <= 0 {
		r.Page = 1
	}
	if r.Count <= 0 {
		r.Count = DefaultResultsCount
	}
	if r.Count > MaxResultsPerRequest {
		r.Count = MaxResultsPerRequest
	}
	if !r.Related {
		r.RelatedCount = 0
	} else if r.RelatedCount <= 0 {
		r.RelatedCount = min(r.Count, MaxRelatedSearches)
	}
}

// ResearchRequest drives a multi-hop research run: one search hop followed by
// detail fetches and summaries for the top results.
type ResearchRequest struct {
	Query            string
	Count            int  // search results to collect, 0 means default
	DetailCount      int  // top results to fetch details for, 0 means default
	SummaryLength    int  // summary character budget, 0 means default
	CaptureSnapshots bool // record fetched content in the snapshot ledger
}

// Normalize fills defaults for unset optional fields. It does not validate;
// see ValidateResearchRequest.
func (r *ResearchRequest) Normalize() {
	if r.Count <= 0 {
		r.Count = DefaultResearchCount
	}
	if r.DetailCount <= 0 {
		r.DetailCount = DefaultDetailCount
	}
	if r.DetailCount > r.Count {
		r.DetailCount = r.Count
	}
	if r.SummaryLength <= 0 {
		r.SummaryLength = DefaultSummaryLength
	}
}

// CacheKey is the canonical identity of a cached request. Requests that
// canonicalize to the same key share one cache slot regardless of the raw
// query spelling.
type CacheKey struct {
	NormalizedQuery string
	Page            int
	Count           int
	SiteFilter      string
	TimePeriod      string
	Related         bool
	RelatedCount    int
	Intent          Intent
}

// String renders the key in its canonical pipe-joined form, used both for
// logging and for fingerprint derivation.
func (k CacheKey) String() string {
	site := k.SiteFilter
	if site == "" {
		site = "*"
	}
	period := k.TimePeriod
	if period == "" {
		period = "*"
	}
	related := "plain"
	if k.Related {
		related = "related:" + strconv.Itoa(k.RelatedCount)
	}
	return strings.Join([]string{
		k.Intent.String(),
		k.NormalizedQuery,
		strconv.Itoa(k.Page),
		strconv.Itoa(k.Count),
		site,
		period,
		related,
	}, "|")
}

// Fingerprint derives the storage identifier for this key.
func (k CacheKey) Fingerprint() ID {
	return IDFromContent(k.String())
}

// SearchResult is one ranked answer from the search backend. Rank is 1-based
// and identifies the result's slot within its result set.
type SearchResult struct {
	Rank          int
	Title         string
	URL           string
	Snippet       string
	Domain        string
	PublishedDate string
}

// PageDetail holds the enriched metadata extracted from one fetched page.
type PageDetail struct {
	URL            string
	Title          string
	Description    string
	Domain         string
	ContentSnippet string // retained portion of the page body
	Author         string
	PublishedDate  string
	IsOfficial     bool
	WordCount      int
	Headings       []string
	RelatedLinks   []string
	Entities       []string
}

// Summary is the condensed form of a fetched page.
type Summary struct {
	URL           string
	Title         string
	Text          string
	KeyPoints     []string
	Domain        string
	WordCount     int // words in Text
	ContentLength int // characters of source content summarized
	Limit         int // character budget the summary was produced under
}

// KGNode is one entity in a knowledge graph fragment.
type KGNode struct {
	Id       string
	Label    string
	Source   string // "wikidata", "synthetic" or "duckduckgo"
	Score    float64
	Metadata map[string]string
}

// KGEdge connects two knowledge graph nodes.
type KGEdge struct {
	Source   string
	Target   string
	Relation string
	Weight   float64
}

// KnowledgeGraph is the linked-entity fragment attached to a page detail.
type KnowledgeGraph struct {
	Nodes []KGNode
	Edges []KGEdge
}

// CacheEntry is a cached answer together with its freshness bookkeeping.
// Exactly one of Results or Detail carries the payload: search entries hold
// ranked results, detail entries hold a fetched page plus the summary and
// graph attached to it later.
type CacheEntry struct {
	Key          CacheKey
	Results      []SearchResult
	Related      []string // related search suggestions captured with the results
	Detail       *PageDetail
	Summary      *Summary
	Graph        *KnowledgeGraph
	Domains      []string // every domain this entry's content touches
	StaleDomains []string // subset of Domains marked stale by invalidation
	SnapshotRefs []ID     // ledger snapshots this entry keeps pinned
	CreatedAt    time.Time
	TTL          time.Duration
}

// SnapshotRecord is one content-addressed capture of fetched page content.
// The Id collapses identical content from the same source within the same
// time bucket onto a single record.
type SnapshotRecord struct {
	Id          ID
	SourceURL   string
	ContentHash string // hex BLAKE2b-256 digest of Content
	Preview     string
	Content     string // canonicalized content, line oriented for diffing
	Metadata    map[string]string
	TimeBucket  time.Time
	CapturedAt  time.Time
}

// ChangeOp describes how a span of lines differs between two snapshots.
type ChangeOp int

const (
	// ChangeAdded marks lines present only in the newer snapshot.
	ChangeAdded ChangeOp = iota + 1
	// ChangeRemoved marks lines present only in the older snapshot.
	ChangeRemoved
	// ChangeModified marks lines replaced between the snapshots.
	ChangeModified
)

func (o ChangeOp) String() string {
	switch o {
	case ChangeAdded:
		return "added"
	case ChangeRemoved:
		return "removed"
	case ChangeModified:
		return "modified"
	default:
		return "unknown"
	}
}

// ChangeRecord is one contiguous difference between two snapshots. Spans are
// zero-based half-open line ranges into the respective canonical contents.
type ChangeRecord struct {
	Op        ChangeOp
	FromStart int
	FromEnd   int
	ToStart   int
	ToEnd     int
	Lines     []string // affected lines, taken from the newer snapshot for additions and modifications
}
