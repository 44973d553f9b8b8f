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

package neo4j

import sdk "github.com/conduitio/conduit-connector-sdk"

// version is set during the build process (i.e. the Makefile).
// It follows Go's convention for module version, where the version
// starts with the letter v, followed by a semantic version.
var version = "v0.0.0-dev"

// Specification returns specification of the connector.
func Specification() sdk.Specification {
	return sdk.Specification{
		Name:    "neo4j-committer",
		Summary: "A Neo4j destination plugin for Conduit that commits documents as graph nodes.",
		Description: "The connector stores every created, updated or snapshot record as a document " +
			"laid out by the configured node topology (ONE_NODE, NO_CONTENT or SPLITTED), " +
			"connects it to other documents by relationship rules, and removes it on delete records.",
		Version: version,
		Author:  "Meroxa, Inc. & Yalantis",
	}
}
