// Copyright 2026 Poiesic Systems
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


// Package ai provides abstractions for the embedding services used in
// Pagevault.
//
// The import pipeline and the searcher depend on the interfaces defined
// here rather than on concrete clients, so embedding backends can be
// swapped and business logic can be tested without external services.
//
//   - Embedder: generates vector embeddings from text
//   - Provider: aggregates embedding services for initialization and
//     lifecycle management
//
// Two implementation sub-packages exist:
//
//   - ai/openai: production implementation using OpenAI-compatible APIs
//   - ai/mock: test doubles for unit testing without external dependencies
//
// Production constructors (openai.NewProvider, openai.NewEmbedder) return
// interface types to enforce abstraction. Mock constructors return
// concrete types so tests can inject behavior and assert call counts.
package ai
