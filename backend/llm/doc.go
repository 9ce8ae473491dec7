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


// Package llm provides an abstractive summarizer backed by OpenAI-compatible
// chat APIs.
//
// This package implements the backend.Summarizer interface using the
// langchaingo library to communicate with OpenAI or OpenAI-compatible
// services (such as Ollama, LocalAI, or vLLM). It is an alternative to the
// offline extract.Summarizer for deployments that run a local model.
//
// # Usage
//
//	config := llm.DefaultConfig()
//	// Or customize:
//	config := llm.NewConfig(
//	    llm.WithHost("http://localhost:11434"), // /v1 added automatically
//	    llm.WithModel("qwen2.5:3b"),
//	)
//
//	summarizer, err := llm.NewSummarizer(config)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	summary, err := summarizer.Summarize(ctx, detail, 300)
package llm
