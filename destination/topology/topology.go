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

//go:generate mockgen -package mock -destination mock/topology.go . Runner,Topology

// Package topology decides how a committed document is laid out as graph nodes
// and issues the idempotent mutations that store or delete it.
package topology

import (
	"context"
	"fmt"

	"github.com/conduitio-labs/conduit-connector-neo4j-committer/config"
	"github.com/conduitio-labs/conduit-connector-neo4j-committer/schema"
	sdk "github.com/conduitio/conduit-connector-sdk"
)

// Statement is a parameterized Cypher query.
type Statement struct {
	Query  string
	Params map[string]any
}

// Result holds the outcome of a single [Statement].
type Result struct {
	Records              []map[string]any
	NodesCreated         int
	NodesDeleted         int
	RelationshipsCreated int
	RelationshipsDeleted int
}

// Runner executes statements against a graph store.
type Runner interface {
	// Write runs the statements in order within a single write transaction
	// and returns one [Result] per statement.
	Write(ctx context.Context, statements []Statement) ([]Result, error)
}

// Topology stores and deletes documents. Both operations are keyed by the document ID
// and converge to the same graph state when repeated.
type Topology interface {
	StoreEntry(ctx context.Context, entry *schema.Entry) error
	DeleteEntry(ctx context.Context, id string) error
}

// Params holds incoming params for the [Strategy].
type Params struct {
	Runner Runner
	Type   config.TopologyType
	// PrimaryLabel is set on every document node.
	PrimaryLabel string
	// ReferenceField is the property that holds the document ID.
	ReferenceField string
	// Joiner joins multi-valued properties.
	Joiner        string
	Relationships []schema.Relationship
}

// Strategy implements the [Topology] for one of the [config.TopologyType] shapes.
type Strategy struct {
	runner   Runner
	kind     config.TopologyType
	cypher   cypher
	resolver *Resolver
}

// New creates a new [Strategy] of the given topology type.
func New(params Params) (*Strategy, error) {
	if _, err := config.ParseTopologyType(string(params.Type)); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrUnsupportedTopology, err)
	}

	c := cypher{
		primaryLabel:   params.PrimaryLabel,
		referenceField: params.ReferenceField,
		joiner:         params.Joiner,
	}

	anchor := c.nodeAnchor()
	if params.Type == config.TopologySplitted {
		anchor = c.splittedAnchor()
	}

	return &Strategy{
		runner:   params.Runner,
		kind:     params.Type,
		cypher:   c,
		resolver: newResolver(anchor, params.Relationships),
	}, nil
}

// Kind returns the topology type of the [Strategy].
func (s *Strategy) Kind() config.TopologyType {
	return s.kind
}

// StoreEntry upserts the document nodes and then the declared relationships,
// all within one transaction.
func (s *Strategy) StoreEntry(ctx context.Context, entry *schema.Entry) error {
	if entry == nil || entry.ID == "" {
		return ErrEmptyID
	}

	var statements []Statement
	switch s.kind {
	case config.TopologyOneNode:
		statements = s.cypher.storeNode(entry, s.resolver.TargetKeys(), true)
	case config.TopologyNoContent:
		statements = s.cypher.storeNode(entry, s.resolver.TargetKeys(), false)
	case config.TopologySplitted:
		statements = s.cypher.storeSplitted(entry, s.resolver.TargetKeys())
	default:
		return ErrUnsupportedTopology
	}

	offset := len(statements)
	resolved := s.resolver.Resolve(entry)
	for _, r := range resolved {
		statements = append(statements, r.Statement)
	}

	results, err := s.runner.Write(ctx, statements)
	if err != nil {
		return fmt.Errorf("store entry %q: %w", entry.ID, err)
	}

	for i, r := range resolved {
		if offset+i >= len(results) {
			break
		}

		if missing := int64(len(r.Values)) - matched(results[offset+i]); missing > 0 {
			sdk.Logger(ctx).Warn().
				Str("id", entry.ID).
				Str("type", r.Rule.Type).
				Strs("endpointLabels", r.Endpoint.Labels).
				Interface("endpointKey", r.Endpoint.Key).
				Int64("missing", missing).
				Msg("relationship endpoint not found, skipping")
		}
	}

	sdk.Logger(ctx).Debug().
		Str("id", entry.ID).
		Str("topology", string(s.kind)).
		Int("relationships", len(resolved)).
		Msg("stored entry")

	return nil
}

// DeleteEntry removes the document nodes along with their relationships.
func (s *Strategy) DeleteEntry(ctx context.Context, id string) error {
	if id == "" {
		return ErrEmptyID
	}

	var statement Statement
	switch s.kind {
	case config.TopologyOneNode, config.TopologyNoContent:
		statement = s.cypher.deleteNode(id)
	case config.TopologySplitted:
		statement = s.cypher.deleteSplitted(id)
	default:
		return ErrUnsupportedTopology
	}

	results, err := s.runner.Write(ctx, []Statement{statement})
	if err != nil {
		return fmt.Errorf("delete entry %q: %w", id, err)
	}

	deleted := 0
	for _, result := range results {
		deleted += result.NodesDeleted
	}

	sdk.Logger(ctx).Debug().
		Str("id", id).
		Str("topology", string(s.kind)).
		Int("nodesDeleted", deleted).
		Msg("deleted entry")

	return nil
}

// matched returns the matched endpoint count reported by a relationship statement.
func matched(result Result) int64 {
	if len(result.Records) == 0 {
		return 0
	}

	switch v := result.Records[0][matchedField].(type) {
	case int64:
		return v
	case int:
		return int64(v)
	default:
		return 0
	}
}
