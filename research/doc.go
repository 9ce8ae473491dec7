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


// Package research runs multi-hop research requests: one search hop, then
// detail fetches for the top results, then summaries, all through the
// semantic cache.
//
// Each request becomes an immutable Plan, a small dependency DAG with one
// search root, one detail task per result slot and one summarize task behind
// each detail. The Orchestrator executes plans on a shared worker pool that
// caps concurrent outbound calls. A detail or summarize failure marks its
// dependents skipped and never aborts sibling slots; only a failed search
// hop fails the run.
//
// Task contexts derive from the orchestrator's lifetime, not from the
// caller: when a caller abandons a run, the fetches already in flight
// complete in the background and still warm the cache. An optional
// RunMonitor observes run state changes and task transitions.
package research
