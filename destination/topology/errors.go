// Copyright © 2023 Meroxa, Inc. & Yalantis
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

package topology

import "errors"

var (
	// ErrUnsupportedTopology occurs when the topology type is none of the known ones.
	ErrUnsupportedTopology = errors.New("unsupported topology")
	// ErrEmptyID occurs when trying to store or delete a document without an ID.
	ErrEmptyID = errors.New("empty document id")
)
