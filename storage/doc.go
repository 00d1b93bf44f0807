// Copyright 2025 DeepTech HQ
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


// Package storage defines the persistence abstractions for expert profiles.
//
// The ExpertRepository interface owns the embedding staleness contract:
// editing a profile's text-bearing fields clears the stored vector and its
// source-text snapshot in the same write, and the read paths partition
// profiles into "embedded" (searchable) and "needing embedding" (reembed
// queue) so stale vectors can never reach the ranking stage.
//
// The storage/badger sub-package provides the BadgerDB implementation.
// Serialization uses the hand-written mus-format serializers from core.
package storage
