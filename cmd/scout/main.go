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


package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/urfave/cli/v2"

	"github.com/poiesic/scout"
	"github.com/poiesic/scout/core"
	"github.com/poiesic/scout/research"
)

func main() {
	app := &cli.App{
		Name:  "scout",
		Usage: "Intent-aware web research with semantic result caching",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "log-level",
				Aliases: []string{"l"},
				Usage:   "Set logging level (debug, info, warn, error)",
				Value:   "info",
			},
		},
		Before: setupLogger,
		Commands: []*cli.Command{
			{
				Name:      "research",
				Usage:     "Run a multi-hop research pass over a query",
				ArgsUsage: "QUERY",
				Action:    researchCommand,
				Flags: []cli.Flag{
					dbFlag(false),
					&cli.IntFlag{
						Name:    "count",
						Aliases: []string{"n"},
						Usage:   "Search results to collect",
						Value:   core.DefaultResearchCount,
					},
					&cli.IntFlag{
						Name:  "detail-count",
						Usage: "Top results to fetch page details for",
						Value: core.DefaultDetailCount,
					},
					&cli.IntFlag{
						Name:  "summary-length",
						Usage: "Summary character budget",
						Value: core.DefaultSummaryLength,
					},
					&cli.BoolFlag{
						Name:  "capture",
						Usage: "Record fetched content in the snapshot ledger",
					},
					&cli.BoolFlag{
						Name:  "trace",
						Usage: "Include the task trace in the output",
					},
				},
			},
			{
				Name:      "search",
				Usage:     "Run a single cached search",
				ArgsUsage: "QUERY",
				Action:    searchCommand,
				Flags: []cli.Flag{
					dbFlag(false),
					&cli.IntFlag{
						Name:    "count",
						Aliases: []string{"n"},
						Usage:   "Results per page",
						Value:   core.DefaultResultsCount,
					},
					&cli.IntFlag{
						Name:  "page",
						Usage: "1-based result page",
						Value: 1,
					},
					&cli.StringFlag{
						Name:  "site",
						Usage: "Restrict results to a site, e.g. github.com",
					},
					&cli.StringFlag{
						Name:  "time-period",
						Usage: "Restrict results by age (day, week, month, year)",
					},
					&cli.BoolFlag{
						Name:  "related",
						Usage: "Also collect related search suggestions",
					},
				},
			},
			{
				Name:      "invalidate-domain",
				Usage:     "Mark cached entries touching a domain as stale",
				ArgsUsage: "DOMAIN",
				Action:    invalidateDomainCommand,
				Flags:     []cli.Flag{dbFlag(true)},
			},
			{
				Name:  "snapshots",
				Usage: "Inspect the content-addressed snapshot ledger",
				Subcommands: []*cli.Command{
					{
						Name:   "list",
						Usage:  "List resident snapshots in capture order",
						Action: snapshotsListCommand,
						Flags:  []cli.Flag{dbFlag(true)},
					},
					{
						Name:      "diff",
						Usage:     "Diff two snapshots by id",
						ArgsUsage: "ID_A ID_B",
						Action:    snapshotsDiffCommand,
						Flags: []cli.Flag{
							dbFlag(true),
							&cli.BoolFlag{
								Name:  "unified",
								Usage: "Print a unified text diff instead of JSON",
							},
						},
					},
				},
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

// dbFlag is shared by every command; admin commands require it.
func dbFlag(required bool) cli.Flag {
	return &cli.StringFlag{
		Name:     "db",
		Aliases:  []string{"d"},
		Usage:    "Path to the store directory; omit for an in-memory run",
		Required: required,
	}
}

// openEngine wires an engine over the store named by --db. A non-empty
// path also persists cache entries across invocations.
func openEngine(c *cli.Context) (*scout.Engine, error) {
	dbPath := c.String("db")
	var opts []scout.EngineOption
	if dbPath != "" {
		opts = append(opts, scout.WithCachePersistence())
	}

	engine, err := scout.New(dbPath, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to open store: %w", err)
	}
	return engine, nil
}

func queryArg(c *cli.Context) (string, error) {
	query := strings.TrimSpace(strings.Join(c.Args().Slice(), " "))
	if query == "" {
		return "", fmt.Errorf("query argument is required")
	}
	return query, nil
}

func researchCommand(c *cli.Context) error {
	query, err := queryArg(c)
	if err != nil {
		return err
	}

	engine, err := openEngine(c)
	if err != nil {
		return err
	}
	defer engine.Close()

	report, err := engine.Research(context.Background(), core.ResearchRequest{
		Query:            query,
		Count:            c.Int("count"),
		DetailCount:      c.Int("detail-count"),
		SummaryLength:    c.Int("summary-length"),
		CaptureSnapshots: c.Bool("capture"),
	})
	if err != nil {
		return fmt.Errorf("research failed: %w", err)
	}

	return writeJSON(os.Stdout, newReportOutput(report, c.Bool("trace")))
}

func searchCommand(c *cli.Context) error {
	query, err := queryArg(c)
	if err != nil {
		return err
	}

	engine, err := openEngine(c)
	if err != nil {
		return err
	}
	defer engine.Close()

	page, err := engine.Search(context.Background(), core.SearchRequest{
		Query:      query,
		Page:       c.Int("page"),
		Count:      c.Int("count"),
		SiteFilter: c.String("site"),
		TimePeriod: c.String("time-period"),
		Related:    c.Bool("related"),
	})
	if err != nil {
		return fmt.Errorf("search failed: %w", err)
	}

	out := searchOutput{Query: query, Related: page.Related}
	for _, r := range page.Results {
		out.Results = append(out.Results, newResultOutput(r))
	}
	return writeJSON(os.Stdout, out)
}

func invalidateDomainCommand(c *cli.Context) error {
	domain := strings.TrimSpace(c.Args().First())
	if domain == "" {
		return fmt.Errorf("domain argument is required")
	}

	engine, err := openEngine(c)
	if err != nil {
		return err
	}
	defer engine.Close()

	touched := engine.InvalidateDomain(domain)
	return writeJSON(os.Stdout, invalidateOutput{Domain: domain, EntriesTouched: touched})
}

func snapshotsListCommand(c *cli.Context) error {
	engine, err := openEngine(c)
	if err != nil {
		return err
	}
	defer engine.Close()

	records, err := engine.Snapshots(context.Background())
	if err != nil {
		return fmt.Errorf("listing snapshots failed: %w", err)
	}

	out := make([]snapshotOutput, 0, len(records))
	for _, record := range records {
		out = append(out, newSnapshotOutput(record))
	}
	return writeJSON(os.Stdout, out)
}

func snapshotsDiffCommand(c *cli.Context) error {
	if c.NArg() != 2 {
		return fmt.Errorf("exactly two snapshot ids are required")
	}
	idA, err := parseID(c.Args().Get(0))
	if err != nil {
		return fmt.Errorf("invalid snapshot id %q: %w", c.Args().Get(0), err)
	}
	idB, err := parseID(c.Args().Get(1))
	if err != nil {
		return fmt.Errorf("invalid snapshot id %q: %w", c.Args().Get(1), err)
	}

	engine, err := openEngine(c)
	if err != nil {
		return err
	}
	defer engine.Close()

	ctx := context.Background()
	if c.Bool("unified") {
		text, err := engine.Ledger().UnifiedDiff(ctx, idA, idB)
		if err != nil {
			return fmt.Errorf("diff failed: %w", err)
		}
		fmt.Fprint(os.Stdout, text)
		return nil
	}

	changes, err := engine.DiffSnapshots(ctx, idA, idB)
	if err != nil {
		return fmt.Errorf("diff failed: %w", err)
	}

	out := make([]changeOutput, 0, len(changes))
	for _, change := range changes {
		out = append(out, newChangeOutput(change))
	}
	return writeJSON(os.Stdout, out)
}

// Output shapes. Enums render through their string forms.

type resultOutput struct {
	Rank          int    `json:"rank"`
	Title         string `json:"title"`
	URL           string `json:"url"`
	Snippet       string `json:"snippet,omitempty"`
	Domain        string `json:"domain,omitempty"`
	PublishedDate string `json:"published_date,omitempty"`
}

func newResultOutput(r core.SearchResult) resultOutput {
	return resultOutput{
		Rank:          r.Rank,
		Title:         r.Title,
		URL:           r.URL,
		Snippet:       r.Snippet,
		Domain:        r.Domain,
		PublishedDate: r.PublishedDate,
	}
}

type searchOutput struct {
	Query   string         `json:"query"`
	Results []resultOutput `json:"results"`
	Related []string       `json:"related,omitempty"`
}

type detailOutput struct {
	URL           string   `json:"url"`
	Title         string   `json:"title,omitempty"`
	Description   string   `json:"description,omitempty"`
	Domain        string   `json:"domain,omitempty"`
	Author        string   `json:"author,omitempty"`
	PublishedDate string   `json:"published_date,omitempty"`
	IsOfficial    bool     `json:"is_official,omitempty"`
	WordCount     int      `json:"word_count,omitempty"`
	Headings      []string `json:"headings,omitempty"`
	RelatedLinks  []string `json:"related_links,omitempty"`
	Entities      []string `json:"entities,omitempty"`
}

func newDetailOutput(d *core.PageDetail) *detailOutput {
	if d == nil {
		return nil
	}
	return &detailOutput{
		URL:           d.URL,
		Title:         d.Title,
		Description:   d.Description,
		Domain:        d.Domain,
		Author:        d.Author,
		PublishedDate: d.PublishedDate,
		IsOfficial:    d.IsOfficial,
		WordCount:     d.WordCount,
		Headings:      d.Headings,
		RelatedLinks:  d.RelatedLinks,
		Entities:      d.Entities,
	}
}

type summaryOutput struct {
	Text      string   `json:"text"`
	KeyPoints []string `json:"key_points,omitempty"`
	WordCount int      `json:"word_count"`
	Limit     int      `json:"limit"`
}

func newSummaryOutput(s *core.Summary) *summaryOutput {
	if s == nil {
		return nil
	}
	return &summaryOutput{
		Text:      s.Text,
		KeyPoints: s.KeyPoints,
		WordCount: s.WordCount,
		Limit:     s.Limit,
	}
}

type nodeOutput struct {
	ID       string            `json:"id"`
	Label    string            `json:"label"`
	Source   string            `json:"source"`
	Score    float64           `json:"score"`
	Metadata map[string]string `json:"metadata,omitempty"`
}

type edgeOutput struct {
	Source   string  `json:"source"`
	Target   string  `json:"target"`
	Relation string  `json:"relation"`
	Weight   float64 `json:"weight"`
}

type graphOutput struct {
	Nodes []nodeOutput `json:"nodes"`
	Edges []edgeOutput `json:"edges"`
}

func newGraphOutput(g *core.KnowledgeGraph) *graphOutput {
	if g == nil {
		return nil
	}
	out := &graphOutput{}
	for _, node := range g.Nodes {
		out.Nodes = append(out.Nodes, nodeOutput{
			ID:       node.Id,
			Label:    node.Label,
			Source:   node.Source,
			Score:    node.Score,
			Metadata: node.Metadata,
		})
	}
	for _, edge := range g.Edges {
		out.Edges = append(out.Edges, edgeOutput{
			Source:   edge.Source,
			Target:   edge.Target,
			Relation: edge.Relation,
			Weight:   edge.Weight,
		})
	}
	return out
}

type slotOutput struct {
	Rank          int            `json:"rank"`
	Result        resultOutput   `json:"result"`
	DetailStatus  string         `json:"detail_status"`
	SummaryStatus string         `json:"summary_status"`
	Detail        *detailOutput  `json:"detail,omitempty"`
	Summary       *summaryOutput `json:"summary,omitempty"`
	Graph         *graphOutput   `json:"graph,omitempty"`
	SnapshotID    string         `json:"snapshot_id,omitempty"`
	FailureReason string         `json:"failure_reason,omitempty"`
}

type traceOutput struct {
	At     string `json:"at"`
	Task   string `json:"task"`
	Status string `json:"status"`
	Note   string `json:"note,omitempty"`
}

type reportOutput struct {
	Query      string         `json:"query"`
	State      string         `json:"state"`
	Intent     string         `json:"intent"`
	Confidence float64        `json:"confidence"`
	CacheState string         `json:"cache_state"`
	ElapsedMS  int64          `json:"elapsed_ms"`
	Results    []resultOutput `json:"results"`
	Related    []string       `json:"related,omitempty"`
	Slots      []slotOutput   `json:"slots"`
	Trace      []traceOutput  `json:"trace,omitempty"`
}

func newReportOutput(report *research.Report, withTrace bool) reportOutput {
	out := reportOutput{
		Query:      report.Query,
		State:      report.State.String(),
		Intent:     report.Intent.String(),
		Confidence: report.Confidence,
		CacheState: report.CacheState.String(),
		ElapsedMS:  report.Elapsed.Milliseconds(),
		Related:    report.Related,
	}
	for _, r := range report.Results {
		out.Results = append(out.Results, newResultOutput(r))
	}
	for _, slot := range report.Slots {
		s := slotOutput{
			Rank:          slot.Rank,
			Result:        newResultOutput(slot.Result),
			DetailStatus:  slot.DetailStatus.String(),
			SummaryStatus: slot.SummaryStatus.String(),
			Detail:        newDetailOutput(slot.Detail),
			Summary:       newSummaryOutput(slot.Summary),
			Graph:         newGraphOutput(slot.Graph),
			FailureReason: slot.FailureReason,
		}
		if slot.SnapshotID != 0 {
			s.SnapshotID = formatID(slot.SnapshotID)
		}
		out.Slots = append(out.Slots, s)
	}
	if withTrace {
		for _, ev := range report.Trace {
			out.Trace = append(out.Trace, traceOutput{
				At:     ev.At.Format(time.RFC3339Nano),
				Task:   ev.Task,
				Status: ev.Status.String(),
				Note:   ev.Note,
			})
		}
	}
	return out
}

type invalidateOutput struct {
	Domain         string `json:"domain"`
	EntriesTouched int    `json:"entries_touched"`
}

type snapshotOutput struct {
	ID          string            `json:"id"`
	SourceURL   string            `json:"source_url"`
	ContentHash string            `json:"content_hash"`
	Preview     string            `json:"preview"`
	CapturedAt  string            `json:"captured_at"`
	Metadata    map[string]string `json:"metadata,omitempty"`
}

func newSnapshotOutput(record *core.SnapshotRecord) snapshotOutput {
	return snapshotOutput{
		ID:          formatID(record.Id),
		SourceURL:   record.SourceURL,
		ContentHash: record.ContentHash,
		Preview:     record.Preview,
		CapturedAt:  record.CapturedAt.Format(time.RFC3339),
		Metadata:    record.Metadata,
	}
}

type changeOutput struct {
	Op        string   `json:"op"`
	FromStart int      `json:"from_start"`
	FromEnd   int      `json:"from_end"`
	ToStart   int      `json:"to_start"`
	ToEnd     int      `json:"to_end"`
	Lines     []string `json:"lines,omitempty"`
}

func newChangeOutput(change core.ChangeRecord) changeOutput {
	return changeOutput{
		Op:        change.Op.String(),
		FromStart: change.FromStart,
		FromEnd:   change.FromEnd,
		ToStart:   change.ToStart,
		ToEnd:     change.ToEnd,
		Lines:     change.Lines,
	}
}

// Snapshot ids print and parse as 16-digit hex.
func formatID(id core.ID) string {
	return fmt.Sprintf("%016x", uint64(id))
}

func parseID(s string) (core.ID, error) {
	v, err := strconv.ParseUint(strings.TrimSpace(s), 16, 64)
	if err != nil {
		return 0, err
	}
	return core.ID(v), nil
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func setupLogger(c *cli.Context) error {
	// Get log level from flag and normalize to lowercase
	levelStr := strings.ToLower(c.String("log-level"))

	// Map string to slog.Level
	var level slog.Level
	switch levelStr {
	case "debug":
		level = slog.LevelDebug
	case "info":
		level = slog.LevelInfo
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		return fmt.Errorf("invalid log level %q: must be one of debug, info, warn, error", levelStr)
	}

	// Configure slog with the specified level
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	}))
	slog.SetDefault(logger)

	return nil
}
