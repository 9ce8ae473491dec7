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


// Package ledger provides a content-addressed snapshot store for captured
// page content.
//
// Content is canonicalized before hashing, so re-capturing an unchanged
// page yields the same snapshot ID and stores nothing new. IDs also fold in
// the source URL and a coarse time bucket: the same page captured in a
// later bucket becomes a new snapshot, which is what makes Diff useful for
// change auditing.
//
// Retention is bounded. Once the configured capacity is reached the oldest
// unpinned snapshot is evicted; snapshots referenced by live cache entries
// are pinned via refcounts and never evicted. Records persist in a
// storage.SnapshotRepository and the ledger rebuilds its age index from it
// on open.
package ledger
