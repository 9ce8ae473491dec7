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


package research

import "errors"

var (
	// ErrCacheRequired is returned when a cache is not provided.
	ErrCacheRequired = errors.New("cache required")

	// ErrLedgerRequired is returned when a snapshot ledger is not provided.
	ErrLedgerRequired = errors.New("snapshot ledger required")

	// ErrSearchBackendRequired is returned when a search backend is not provided.
	ErrSearchBackendRequired = errors.New("search backend required")

	// ErrDetailFetcherRequired is returned when a detail fetcher is not provided.
	ErrDetailFetcherRequired = errors.New("detail fetcher required")

	// ErrSummarizerRequired is returned when a summarizer is not provided.
	ErrSummarizerRequired = errors.New("summarizer required")

	// ErrEmptyPlan is returned when a plan is built without tasks.
	ErrEmptyPlan = errors.New("plan has no tasks")

	// ErrDuplicateTask is returned when two plan tasks share an id.
	ErrDuplicateTask = errors.New("duplicate task id")

	// ErrUnknownDependency is returned when a task depends on an id the
	// plan does not contain.
	ErrUnknownDependency = errors.New("unknown dependency")

	// ErrCycleDetected is returned when the plan's dependencies loop.
	ErrCycleDetected = errors.New("dependency cycle detected")

	// ErrSearchFailed wraps the error of a failed search hop. Detail and
	// summarize failures never surface it; they degrade the report instead.
	ErrSearchFailed = errors.New("search hop failed")
)
