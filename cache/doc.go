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


// Package cache provides an intent-aware result cache for search and page
// detail lookups.
//
// Entries are keyed by canonical cache keys and carry a lifetime chosen by
// the query intent (a Policy maps intents to TTLs). Domain invalidation
// marks matching entries stale rather than deleting them, so a later lookup
// can serve the still-fresh slots of an entry as a partial hit while the
// caller re-fetches only the stale ones.
//
// The cache is safe for concurrent use. Operations never fail the caller:
// background persistence and eviction faults are logged and absorbed. An
// optional storage.CacheRepository makes entries survive restarts, and an
// optional Pinner keeps captured snapshots alive while a cache entry still
// references them.
package cache
