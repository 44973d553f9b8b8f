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

import (
	"fmt"
	"sort"
	"strings"

	"github.com/conduitio-labs/conduit-connector-neo4j-committer/schema"
)

const (
	// all Cypher queries used by the [Strategy] are listed below in the format of Go fmt.
	mergeNodeQueryTemplate  = "MERGE (n%s {%s: $id}) SET n = $properties"
	deleteNodeQueryTemplate = "MATCH (n%s {%s: $id}) DETACH DELETE n"
	adoptNodeQueryTemplate  = "OPTIONAL MATCH (n%s {%s: $id}) WITH n WHERE n IS NULL " +
		"UNWIND $values AS value MATCH (p%s {%s: value}) WHERE p.%s IS NULL WITH p LIMIT 1 SET p.%s = $id"
	mergeSplittedQueryTemplate = "MERGE (i%s {%s: $id}) SET i = {%s: $id} " +
		"MERGE (i)-[:%s]->(m%s) SET m = $properties%s " +
		"MERGE (i)-[:%s]->(c%s) SET c = $content"
	deleteSplittedQueryTemplate = "MATCH (i%s {%s: $id}) OPTIONAL MATCH (i)-[:%s|%s]->(part) DETACH DELETE part, i"
	adoptSplittedQueryTemplate  = "MERGE (i%s {%s: $id}) WITH i WHERE NOT EXISTS { (i)-[:%s]->() } " +
		"UNWIND $values AS value MATCH (p%s {%s: value}) WHERE NOT EXISTS { ()-[:%s]->(p) } " +
		"WITH i, p LIMIT 1 MERGE (i)-[:%s]->(p)"
	setLabelsClauseTemplate = " SET %s%s"

	// some helper symbols for Cypher queries.
	labelSeparator = ":"
	backtick       = "`"

	// parameter names shared by the statements.
	paramID         = "id"
	paramValues     = "values"
	paramProperties = "properties"
	paramContent    = "content"

	// matchedField is the name of a column returned by relationship statements.
	matchedField = "matched"
)

const (
	// MetadataLabel is a label of the metadata node of the SPLITTED topology.
	MetadataLabel = "Metadata"
	// ContentLabel is a label of the content node of the SPLITTED topology.
	ContentLabel = "Content"
	// HasMetadataType is a type of the relationship from an identity node to its metadata node.
	HasMetadataType = "HAS_METADATA"
	// HasContentType is a type of the relationship from an identity node to its content node.
	HasContentType = "HAS_CONTENT"
)

// anchor describes where relationships of a document are attached
// and which nodes other documents' relationships are matched against.
type anchor struct {
	// match binds the document node to "a", the ID is interpolated from $id.
	match string
	// endpointLabels are labels of nodes matched by a target property key.
	endpointLabels []string
}

// cypher builds the statements of the three topology shapes.
type cypher struct {
	primaryLabel   string
	referenceField string
	joiner         string
}

func (c cypher) nodeAnchor() anchor {
	return anchor{
		match:          fmt.Sprintf("MATCH (a%s {%s: $id})", labels(c.primaryLabel), quote(c.referenceField)),
		endpointLabels: []string{c.primaryLabel},
	}
}

func (c cypher) splittedAnchor() anchor {
	return anchor{
		match: fmt.Sprintf("MATCH (%s {%s: $id})-[:%s]->(a)",
			labels(c.primaryLabel), quote(c.referenceField), quote(HasMetadataType),
		),
		endpointLabels: []string{MetadataLabel},
	}
}

// storeNode builds the statements of the ONE_NODE and NO_CONTENT topologies.
func (c cypher) storeNode(entry *schema.Entry, targetKeys []string, withContent bool) []Statement {
	primary, ref := labels(c.primaryLabel), quote(c.referenceField)

	statements := make([]Statement, 0, len(targetKeys)+1)
	for _, key := range c.adoptableKeys(entry, targetKeys, false) {
		statements = append(statements, Statement{
			Query: fmt.Sprintf(adoptNodeQueryTemplate, primary, ref, primary, quote(key), ref, ref),
			Params: map[string]any{
				paramID:     entry.ID,
				paramValues: c.values(entry, key),
			},
		})
	}

	properties := entry.Flatten(c.joiner)
	if withContent && entry.Content != nil && entry.ContentField != "" {
		properties[entry.ContentField] = string(entry.Content)
	}
	properties[c.referenceField] = entry.ID

	query := fmt.Sprintf(mergeNodeQueryTemplate, primary, ref)
	if len(entry.Labels) > 0 {
		query += fmt.Sprintf(setLabelsClauseTemplate, "n", labels(entry.Labels...))
	}

	return append(statements, Statement{
		Query: query,
		Params: map[string]any{
			paramID:         entry.ID,
			paramProperties: properties,
		},
	})
}

// storeSplitted builds the statements of the SPLITTED topology.
func (c cypher) storeSplitted(entry *schema.Entry, targetKeys []string) []Statement {
	primary, ref := labels(c.primaryLabel), quote(c.referenceField)

	statements := make([]Statement, 0, len(targetKeys)+1)
	for _, key := range c.adoptableKeys(entry, targetKeys, true) {
		statements = append(statements, Statement{
			Query: fmt.Sprintf(adoptSplittedQueryTemplate,
				primary, ref, quote(HasMetadataType),
				labels(MetadataLabel), quote(key), quote(HasMetadataType), quote(HasMetadataType),
			),
			Params: map[string]any{
				paramID:     entry.ID,
				paramValues: c.values(entry, key),
			},
		})
	}

	setLabels := ""
	if len(entry.Labels) > 0 {
		setLabels = fmt.Sprintf(setLabelsClauseTemplate, "m", labels(entry.Labels...))
	}

	// the metadata node carries the ID as well
	properties := entry.Flatten(c.joiner)
	properties[c.referenceField] = entry.ID

	content := make(map[string]any, 1)
	if entry.Content != nil && entry.ContentField != "" {
		content[entry.ContentField] = string(entry.Content)
	}

	return append(statements, Statement{
		Query: fmt.Sprintf(mergeSplittedQueryTemplate,
			primary, ref, ref,
			quote(HasMetadataType), labels(MetadataLabel), setLabels,
			quote(HasContentType), labels(ContentLabel),
		),
		Params: map[string]any{
			paramID:         entry.ID,
			paramProperties: properties,
			paramContent:    content,
		},
	})
}

func (c cypher) deleteNode(id string) Statement {
	return Statement{
		Query:  fmt.Sprintf(deleteNodeQueryTemplate, labels(c.primaryLabel), quote(c.referenceField)),
		Params: map[string]any{paramID: id},
	}
}

func (c cypher) deleteSplitted(id string) Statement {
	return Statement{
		Query: fmt.Sprintf(deleteSplittedQueryTemplate,
			labels(c.primaryLabel), quote(c.referenceField), quote(HasMetadataType), quote(HasContentType),
		),
		Params: map[string]any{paramID: id},
	}
}

// adoptableKeys returns the target property keys the entry holds a value for, sorted.
// The reference field is only included if withReference is set,
// otherwise a placeholder keyed by the ID is merged by the node upsert itself.
func (c cypher) adoptableKeys(entry *schema.Entry, targetKeys []string, withReference bool) []string {
	var keys []string
	for _, key := range targetKeys {
		switch {
		case key == c.referenceField:
			if !withReference {
				continue
			}
		case len(entry.Values(key)) == 0:
			continue
		}

		keys = append(keys, key)
	}

	sort.Strings(keys)

	return keys
}

// value returns the stored value of the property key.
// values returns the distinct values a placeholder may have been created from.
func (c cypher) values(entry *schema.Entry, key string) []string {
	if key == c.referenceField {
		return []string{entry.ID}
	}

	return distinct(entry.Values(key))
}

func quote(name string) string {
	return backtick + strings.ReplaceAll(name, backtick, backtick+backtick) + backtick
}

// labels constructs a label string according to the Cypher syntax, e.g.: ":`A`:`B`".
func labels(names ...string) string {
	var sb strings.Builder
	for _, name := range names {
		sb.WriteString(labelSeparator + quote(name))
	}

	return sb.String()
}
