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


package duckduckgo

import "errors"

var (
	// ErrUnexpectedStatus is returned when the endpoint answers with a
	// non-success HTTP status. The wrapping error carries the code.
	ErrUnexpectedStatus = errors.New("unexpected response status")

	// ErrEmptyURL is returned when a detail fetch is asked for a blank URL.
	ErrEmptyURL = errors.New("url required")
)
