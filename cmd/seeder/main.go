package main

import (
	"bufio"
	"context"
	"flag"
	"iter"
	"log/slog"
	"os"
	"strings"

	"github.com/poiesic/scout"
)

type pageFixture struct {
	url     string
	title   string
	content string
}

var pages = []pageFixture{
	{
		url:   "https://example.com/releases",
		title: "Release Notes",
		content: "Version 1.2 ships incremental crawling and a reworked scheduler.\n" +
			"The scheduler now drains queues in priority order.\n" +
			"Deprecated: the legacy polling endpoint will be removed in 1.4.\n" +
			"Upgrade with the usual package manager commands.",
	},
	{
		url:   "https://example.com/releases",
		title: "Release Notes",
		content: "Version 1.3 ships incremental crawling and a reworked scheduler.\n" +
			"The scheduler now drains queues in priority order.\n" +
			"New: response caching honors upstream cache-control headers.\n" +
			"Deprecated: the legacy polling endpoint will be removed in 1.4.\n" +
			"Upgrade with the usual package manager commands.",
	},
	{
		url:   "https://en.wikipedia.org/wiki/Web_crawler",
		title: "Web crawler",
		content: "A web crawler is a program that systematically browses the web,\n" +
			"typically for the purpose of indexing. Crawlers copy pages for\n" +
			"processing by a search engine, which indexes the downloaded pages\n" +
			"so that users can search them more efficiently. Crawlers consume\n" +
			"resources on visited systems and often visit sites unprompted.",
	},
	{
		url:   "https://duckduckgo.com/about",
		title: "About DuckDuckGo",
		content: "DuckDuckGo is an independent search engine that does not track\n" +
			"its users. Searches are anonymous and results are not filtered\n" +
			"by a profile. The company also publishes browser extensions and\n" +
			"mobile apps built around the same privacy guarantees.",
	},
	{
		url:   "https://go.dev/doc/effective_go",
		title: "Effective Go",
		content: "Go is a new language. Although it borrows ideas from existing\n" +
			"languages, it has unusual properties that make effective Go\n" +
			"programs different in character from programs written in its\n" +
			"relatives. A straightforward translation of a C++ or Java\n" +
			"program into Go is unlikely to produce a satisfactory result.",
	},
	{
		url:   "https://github.com/dgraph-io/badger",
		title: "BadgerDB",
		content: "BadgerDB is an embeddable, persistent and fast key-value\n" +
			"database written in pure Go. It is the underlying database for\n" +
			"Dgraph. Badger separates keys from values, which reduces the\n" +
			"size of the LSM tree and serves reads from a memory-resident\n" +
			"index while values live in a value log.",
	},
	{
		url:   "https://pkg.go.dev/log/slog",
		title: "slog package",
		content: "Package slog provides structured logging, in which log records\n" +
			"include a message, a severity level, and various other\n" +
			"attributes expressed as key-value pairs. It defines a type,\n" +
			"Logger, which provides several methods for reporting events of\n" +
			"interest.",
	},
	{
		url:   "https://www.rfc-editor.org/rfc/rfc9110",
		title: "HTTP Semantics",
		content: "The Hypertext Transfer Protocol is a stateless application-\n" +
			"level protocol for distributed, collaborative, hypertext\n" +
			"information systems. This document describes the overall\n" +
			"architecture of HTTP, establishes common terminology, and\n" +
			"defines aspects of the protocol shared by all versions.",
	},
	{
		url:   "https://blog.example.org/caching",
		title: "Caching Strategies That Age Well",
		content: "Most cache bugs are lifetime bugs. A cache that never expires\n" +
			"serves lies; a cache that expires too eagerly is just overhead.\n" +
			"Pick lifetimes per content class, not per cache, and measure\n" +
			"the stale-read rate before tuning anything else.",
	},
	{
		url:   "https://www.postgresql.org/docs/current/mvcc-intro.html",
		title: "Multiversion Concurrency Control",
		content: "Unlike traditional database systems which use locks for\n" +
			"concurrency control, PostgreSQL maintains data consistency by\n" +
			"using a multiversion model. Each SQL statement sees a snapshot\n" +
			"of data as it was some time ago, regardless of the current\n" +
			"state of the underlying data.",
	},
	{
		url:   "https://example.net/weekly",
		title: "Infrastructure Weekly",
		content: "This week: a regional outage traced to an expired certificate,\n" +
			"a new major release of a popular message broker, and a survey\n" +
			"on how teams roll back bad configuration pushes. Replies and\n" +
			"corrections welcome as always.",
	},
	{
		url:   "https://example.org/guides/rate-limiting",
		title: "A Field Guide to Rate Limiting",
		content: "Token buckets are forgiving of bursts, leaky buckets are not.\n" +
			"Fixed windows are easy to reason about and easy to game at the\n" +
			"boundary. Whatever you choose, return the limit state in the\n" +
			"response so well-behaved clients can pace themselves.",
	},
}

var seedFileName = flag.String("src", "", "file of seed pages, one url<TAB>title<TAB>content per line")

func init() {
	handler := slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	})
	slog.SetDefault(slog.New(handler))
	flag.Parse()
}

// fixturesFromFile returns an iterator over tab-separated page fixtures in a
// file. Lines without at least a url and content field are skipped.
func fixturesFromFile(filename string) (iter.Seq[pageFixture], error) {
	f, err := os.Open(filename)
	if err != nil {
		return nil, err
	}

	return func(yield func(pageFixture) bool) {
		defer f.Close()
		scanner := bufio.NewScanner(f)
		for scanner.Scan() {
			fields := strings.SplitN(scanner.Text(), "\t", 3)
			var fixture pageFixture
			switch len(fields) {
			case 3:
				fixture = pageFixture{url: fields[0], title: fields[1], content: fields[2]}
			case 2:
				fixture = pageFixture{url: fields[0], content: fields[1]}
			default:
				continue
			}
			if !yield(fixture) {
				return
			}
		}
	}, nil
}

// fixturesFromSlice returns an iterator over a slice of page fixtures.
func fixturesFromSlice(fixtures []pageFixture) iter.Seq[pageFixture] {
	return func(yield func(pageFixture) bool) {
		for _, fixture := range fixtures {
			if !yield(fixture) {
				return
			}
		}
	}
}

// captureAll reads from a source iterator and records each page in the
// snapshot ledger.
func captureAll(ctx context.Context, engine *scout.Engine, source iter.Seq[pageFixture]) (int, error) {
	captured := 0
	for fixture := range source {
		metadata := map[string]string{"seed": "true"}
		if fixture.title != "" {
			metadata["title"] = fixture.title
		}
		if _, err := engine.Ledger().Capture(ctx, fixture.content, fixture.url, metadata); err != nil {
			return captured, err
		}
		captured++
	}
	return captured, nil
}

func main() {
	engine, err := scout.New("./scout_db")
	if err != nil {
		panic(err)
	}
	defer engine.Close()

	ctx := context.Background()

	// Determine source of seed pages
	var source iter.Seq[pageFixture]
	if seedFileName != nil && *seedFileName != "" {
		source, err = fixturesFromFile(*seedFileName)
		if err != nil {
			panic(err)
		}
	} else {
		source = fixturesFromSlice(pages)
	}

	captured, err := captureAll(ctx, engine, source)
	if err != nil {
		panic(err)
	}
	slog.Info("seeded snapshot ledger", "snapshots", captured)
}
