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
	resolveQueryTemplate  = "%s UNWIND $values AS value %s (t%s {%s: value}) %s RETURN count(DISTINCT value) AS matched"
	outgoingEdgeTemplate  = "MERGE (a)-[:%s]->(t)"
	incomingEdgeTemplate  = "MERGE (a)<-[:%s]-(t)"
	edgeClauseSeparator   = " "
	findSyntaxMatchClause = "MATCH"
	findSyntaxMergeClause = "MERGE"
)

// Resolver builds the statements connecting a document node to other nodes
// according to the relationship rules.
type Resolver struct {
	anchor anchor
	rules  []schema.Relationship
}

// Resolved is a relationship statement along with the rule and the values it was built from.
type Resolved struct {
	Rule     schema.Relationship
	Values   []string
	// Endpoint describes the nodes the document node is connected to.
	Endpoint schema.Node

	Statement Statement
}

// newResolver creates a new instance of the [Resolver].
// Disabled rules are dropped.
func newResolver(anchor anchor, rules []schema.Relationship) *Resolver {
	enabled := make([]schema.Relationship, 0, len(rules))
	for _, rule := range rules {
		if rule.Enabled() {
			enabled = append(enabled, rule)
		}
	}

	return &Resolver{
		anchor: anchor,
		rules:  enabled,
	}
}

// TargetKeys returns the distinct target property keys of the rules that may create nodes.
func (r *Resolver) TargetKeys() []string {
	seen := make(map[string]struct{}, len(r.rules))
	for _, rule := range r.rules {
		if rule.TargetFindSyntax == schema.FindSyntaxMerge {
			seen[rule.TargetPropertyKey] = struct{}{}
		}
	}

	keys := make([]string, 0, len(seen))
	for key := range seen {
		keys = append(keys, key)
	}

	sort.Strings(keys)

	return keys
}

// Resolve returns one statement per rule the entry holds a source value for.
// Blank source values and blank target keys skip the rule.
func (r *Resolver) Resolve(entry *schema.Entry) []Resolved {
	var resolved []Resolved
	for _, rule := range r.rules {
		if strings.TrimSpace(rule.TargetPropertyKey) == "" {
			continue
		}

		values := distinct(entry.Values(rule.SourcePropertyKey))
		if len(values) == 0 {
			continue
		}

		resolved = append(resolved, Resolved{
			Rule:   rule,
			Values: values,
			Endpoint: schema.Node{
				Labels: r.anchor.endpointLabels,
				Key:    map[string]any{rule.TargetPropertyKey: values},
			},
			Statement: Statement{
				Query: r.query(rule),
				Params: map[string]any{
					paramID:     entry.ID,
					paramValues: values,
				},
			},
		})
	}

	return resolved
}

func (r *Resolver) query(rule schema.Relationship) string {
	find := findSyntaxMergeClause
	if rule.TargetFindSyntax == schema.FindSyntaxMatch {
		find = findSyntaxMatchClause
	}

	relType := quote(rule.Type)

	var edges []string
	if rule.Direction == schema.DirectionOutgoing || rule.Direction == schema.DirectionBoth {
		edges = append(edges, fmt.Sprintf(outgoingEdgeTemplate, relType))
	}

	if rule.Direction == schema.DirectionIncoming || rule.Direction == schema.DirectionBoth {
		edges = append(edges, fmt.Sprintf(incomingEdgeTemplate, relType))
	}

	return fmt.Sprintf(resolveQueryTemplate,
		r.anchor.match, find, labels(r.anchor.endpointLabels...), quote(rule.TargetPropertyKey),
		strings.Join(edges, edgeClauseSeparator),
	)
}

// distinct returns the non-blank values in their first-seen order.
func distinct(values []string) []string {
	var (
		out  = make([]string, 0, len(values))
		seen = make(map[string]struct{}, len(values))
	)

	for _, value := range values {
		if strings.TrimSpace(value) == "" {
			continue
		}

		if _, ok := seen[value]; ok {
			continue
		}

		seen[value] = struct{}{}
		out = append(out, value)
	}

	return out
}
