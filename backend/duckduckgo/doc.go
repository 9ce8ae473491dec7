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


// Package duckduckgo implements the search backend and detail fetcher
// against DuckDuckGo's lite HTML endpoint.
//
// The endpoint needs no API key but serves markup meant for browsers, so
// this package is a scraper: it POSTs the query as a form, walks the table
// rows of the reply, and degrades to a generic link scan when the layout
// drifts. One Client carries a shared rate limiter so search and detail
// fetches together stay under the request interval (one request per second
// by default), and transient failures are retried with exponential backoff.
//
// A Client is safe for concurrent use.
package duckduckgo
