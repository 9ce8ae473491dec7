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


package ledger

import "errors"

var (
	// ErrRepositoryRequired is returned when a snapshot repository is not provided.
	ErrRepositoryRequired = errors.New("snapshot repository required")

	// ErrLedgerFull is returned when capacity is reached and every resident
	// snapshot is pinned.
	ErrLedgerFull = errors.New("ledger full: all snapshots pinned")

	// ErrEmptyContent is returned when there is nothing left to capture
	// after canonicalization.
	ErrEmptyContent = errors.New("empty content")
)
