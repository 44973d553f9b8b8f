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

package schema

import "fmt"

// Direction defines how a relationship is drawn between a document node and the other node.
type Direction string

// The available relationship directions are listed below.
const (
	// DirectionNone disables a relationship rule.
	DirectionNone     Direction = "NONE"
	DirectionIncoming Direction = "INCOMING"
	DirectionOutgoing Direction = "OUTGOING"
	DirectionBoth     Direction = "BOTH"
)

// FindSyntax defines whether the other node of a relationship must exist.
type FindSyntax string

// The available find syntaxes are listed below.
const (
	// FindSyntaxMatch only connects to already existing nodes.
	FindSyntaxMatch FindSyntax = "MATCH"
	// FindSyntaxMerge creates a minimal node when none matches.
	FindSyntaxMerge FindSyntax = "MERGE"
)

// Relationship is a rule connecting a document node to the nodes whose TargetPropertyKey
// property equals the value of the document's SourcePropertyKey field.
type Relationship struct {
	Type              string     `mapstructure:"type"`
	Direction         Direction  `mapstructure:"direction"`
	SourcePropertyKey string     `mapstructure:"sourcePropertyKey"`
	TargetPropertyKey string     `mapstructure:"targetPropertyKey"`
	TargetFindSyntax  FindSyntax `mapstructure:"targetFindSyntax"`
}

// Enabled reports whether the rule produces any relationship.
func (r Relationship) Enabled() bool {
	return r.Direction != DirectionNone
}

// Validate checks that the rule holds known enum values and non-blank keys.
func (r Relationship) Validate() error {
	switch r.Direction {
	case DirectionNone, DirectionIncoming, DirectionOutgoing, DirectionBoth:
	default:
		return fmt.Errorf("direction %q: %w", r.Direction, ErrInvalidRelationship)
	}

	switch r.TargetFindSyntax {
	case FindSyntaxMatch, FindSyntaxMerge:
	default:
		return fmt.Errorf("target find syntax %q: %w", r.TargetFindSyntax, ErrInvalidRelationship)
	}

	if r.Type == "" || r.SourcePropertyKey == "" || r.TargetPropertyKey == "" {
		return fmt.Errorf("type, source and target property keys are required: %w", ErrInvalidRelationship)
	}

	return nil
}
