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


// Package backend defines the boundary contracts for external collaborators:
// the search backend, the page detail fetcher, the summarizer, and the
// entity linker.
//
// Subpackages provide the implementations:
//   - duckduckgo: HTML-scraping search and detail fetching
//   - extract: offline extractive summarization
//   - llm: summarization through an OpenAI-compatible endpoint
//   - kg: offline entity linking into a small knowledge graph
//   - mock: configurable fakes for tests
//
// All implementations must be safe for concurrent use; the orchestrator
// calls them from pooled workers.
package backend
