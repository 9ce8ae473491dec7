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
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/poiesic/scout"
	"github.com/poiesic/scout/core"
)

func init() {
	handler := slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	})
	slog.SetDefault(slog.New(handler))
}

func main() {
	engine, err := scout.New("./scout_db", scout.WithCachePersistence())
	if err != nil {
		panic(err)
	}
	defer engine.Close()

	query := "golang concurrency patterns"
	if len(os.Args) > 1 {
		query = strings.Join(os.Args[1:], " ")
	}

	ctx := context.Background()
	page, err := engine.Search(ctx, core.SearchRequest{
		Query:   query,
		Count:   5,
		Related: true,
	})
	if err != nil {
		panic(err)
	}

	fmt.Printf("Found %d hits\n", len(page.Results))
	for _, hit := range page.Results {
		fmt.Printf("%d: '%s' (%s)[%s]\n", hit.Rank, hit.Title, hit.Domain, hit.URL)
	}
	for _, suggestion := range page.Related {
		fmt.Printf("related: %s\n", suggestion)
	}
}
