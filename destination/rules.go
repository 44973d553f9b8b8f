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

package destination

import (
	"fmt"
	"sort"
	"strings"

	"github.com/conduitio-labs/conduit-connector-neo4j-committer/schema"
	"github.com/conduitio/conduit-commons/config"
	"github.com/mitchellh/mapstructure"
)

const (
	// ConfigKeyAdditionalLabels is a prefix of config keys holding additional label rules,
	// e.g.: "additionalLabels.type.sourceField".
	ConfigKeyAdditionalLabels = "additionalLabels"
	// ConfigKeyRelationships is a prefix of config keys holding relationship rules,
	// e.g.: "relationships.links.type".
	ConfigKeyRelationships = "relationships"

	groupKeySeparator = "."
)

// rule parameter names, the wildcard stands for the rule name.
const (
	ConfigAdditionalLabelsKeep           = "additionalLabels.*.keep"
	ConfigAdditionalLabelsSourceField    = "additionalLabels.*.sourceField"
	ConfigRelationshipsDirection         = "relationships.*.direction"
	ConfigRelationshipsSourcePropertyKey = "relationships.*.sourcePropertyKey"
	ConfigRelationshipsTargetFindSyntax  = "relationships.*.targetFindSyntax"
	ConfigRelationshipsTargetPropertyKey = "relationships.*.targetPropertyKey"
	ConfigRelationshipsType              = "relationships.*.type"
)

// defaults of a relationship rule.
const (
	defaultRelationshipType              = "PARENT_OF"
	defaultRelationshipSourcePropertyKey = "collector.referrer-reference"
	defaultRelationshipTargetPropertyKey = "document.reference"
)

// Rules holds the grouped additional label and relationship rules.
type Rules struct {
	AdditionalLabels []schema.AdditionalLabel
	Relationships    []schema.Relationship
}

// Parameters describes the rule parameters.
func (Rules) Parameters() config.Parameters {
	return config.Parameters{
		ConfigAdditionalLabelsKeep: {
			Default:     "true",
			Description: "Keeps the source field as a property after its value was used as a label.",
			Type:        config.ParameterTypeBool,
		},
		ConfigAdditionalLabelsSourceField: {
			Description: "Metadata field whose value becomes an additional label. Defaults to the rule name.",
			Type:        config.ParameterTypeString,
		},
		ConfigRelationshipsDirection: {
			Default:     string(schema.DirectionNone),
			Description: "Direction of the relationship from the document node. NONE disables the rule.",
			Type:        config.ParameterTypeString,
			Validations: []config.Validation{
				config.ValidationInclusion{List: []string{
					string(schema.DirectionNone), string(schema.DirectionIncoming),
					string(schema.DirectionOutgoing), string(schema.DirectionBoth),
				}},
			},
		},
		ConfigRelationshipsSourcePropertyKey: {
			Default:     defaultRelationshipSourcePropertyKey,
			Description: "Metadata field holding the value that identifies the other node.",
			Type:        config.ParameterTypeString,
		},
		ConfigRelationshipsTargetFindSyntax: {
			Default:     string(schema.FindSyntaxMerge),
			Description: "MATCH only connects existing nodes, MERGE creates a minimal node when none matches.",
			Type:        config.ParameterTypeString,
			Validations: []config.Validation{
				config.ValidationInclusion{List: []string{
					string(schema.FindSyntaxMatch), string(schema.FindSyntaxMerge),
				}},
			},
		},
		ConfigRelationshipsTargetPropertyKey: {
			Default:     defaultRelationshipTargetPropertyKey,
			Description: "Property of the other node that must equal the source value.",
			Type:        config.ParameterTypeString,
		},
		ConfigRelationshipsType: {
			Default:     defaultRelationshipType,
			Description: "Type of the relationship.",
			Type:        config.ParameterTypeString,
		},
	}
}

// Validate checks every relationship rule.
func (r Rules) Validate() error {
	for i, rel := range r.Relationships {
		if err := rel.Validate(); err != nil {
			return fmt.Errorf("validate relationship %d: %w", i, err)
		}
	}

	return nil
}

// parseRules decodes the rules grouped by [splitGroups].
func parseRules(groups map[string]map[string]map[string]any) (Rules, error) {
	additionalLabels, err := parseAdditionalLabels(groups[ConfigKeyAdditionalLabels])
	if err != nil {
		return Rules{}, fmt.Errorf("parse additional labels: %w", err)
	}

	relationships, err := parseRelationships(groups[ConfigKeyRelationships])
	if err != nil {
		return Rules{}, fmt.Errorf("parse relationships: %w", err)
	}

	return Rules{
		AdditionalLabels: additionalLabels,
		Relationships:    relationships,
	}, nil
}

// splitGroups moves the keys with the given prefixes out of the raw config and groups them
// by the name that follows the prefix, e.g.: "relationships.links.type" goes to groups["relationships"]["links"]["type"].
func splitGroups(raw config.Config, prefixes ...string) (config.Config, map[string]map[string]map[string]any) {
	var (
		rest   = make(config.Config, len(raw))
		groups = make(map[string]map[string]map[string]any, len(prefixes))
	)

rawKeys:
	for key, value := range raw {
		for _, prefix := range prefixes {
			name, ok := strings.CutPrefix(key, prefix+groupKeySeparator)
			if !ok {
				continue
			}

			idx := strings.LastIndex(name, groupKeySeparator)
			if idx <= 0 {
				continue
			}

			if groups[prefix] == nil {
				groups[prefix] = make(map[string]map[string]any)
			}

			group, field := name[:idx], name[idx+1:]
			if groups[prefix][group] == nil {
				groups[prefix][group] = make(map[string]any)
			}

			groups[prefix][group][field] = value

			continue rawKeys
		}

		rest[key] = value
	}

	return rest, groups
}

// parseAdditionalLabels decodes additional label rules in the order of their names.
func parseAdditionalLabels(groups map[string]map[string]any) ([]schema.AdditionalLabel, error) {
	labels := make([]schema.AdditionalLabel, 0, len(groups))
	for _, name := range sortedNames(groups) {
		// the source field defaults to the rule name, e.g.: "additionalLabels.TYPE.keep"
		label := schema.AdditionalLabel{SourceField: name, Keep: true}
		if err := decodeGroup(groups[name], &label); err != nil {
			return nil, fmt.Errorf("decode additional label %q: %w", name, err)
		}

		if strings.TrimSpace(label.SourceField) == "" {
			return nil, fmt.Errorf("additional label %q source field: %w", name, ErrEmptyConfigValue)
		}

		labels = append(labels, label)
	}

	return labels, nil
}

// parseRelationships decodes relationship rules in the order of their names.
func parseRelationships(groups map[string]map[string]any) ([]schema.Relationship, error) {
	relationships := make([]schema.Relationship, 0, len(groups))
	for _, name := range sortedNames(groups) {
		rel := schema.Relationship{
			Type:              defaultRelationshipType,
			Direction:         schema.DirectionNone,
			SourcePropertyKey: defaultRelationshipSourcePropertyKey,
			TargetPropertyKey: defaultRelationshipTargetPropertyKey,
			TargetFindSyntax:  schema.FindSyntaxMerge,
		}

		if err := decodeGroup(groups[name], &rel); err != nil {
			return nil, fmt.Errorf("decode relationship %q: %w", name, err)
		}

		rel.Direction = schema.Direction(strings.ToUpper(string(rel.Direction)))
		rel.TargetFindSyntax = schema.FindSyntax(strings.ToUpper(string(rel.TargetFindSyntax)))

		relationships = append(relationships, rel)
	}

	return relationships, nil
}

func decodeGroup(group map[string]any, target any) error {
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		WeaklyTypedInput: true,
		ErrorUnused:      true,
		Result:           target,
	})
	if err != nil {
		return fmt.Errorf("create decoder: %w", err)
	}

	if err := decoder.Decode(group); err != nil {
		return fmt.Errorf("decode: %w", err)
	}

	return nil
}

func sortedNames(groups map[string]map[string]any) []string {
	names := make([]string, 0, len(groups))
	for name := range groups {
		names = append(names, name)
	}

	sort.Strings(names)

	return names
}
