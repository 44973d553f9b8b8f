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

// Package mapper turns a document's metadata and content into a [schema.Entry].
package mapper

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/conduitio-labs/conduit-connector-neo4j-committer/schema"
)

// Mapper converts document metadata into normalized node properties and labels.
// It holds no state besides its configuration and is safe for concurrent use.
type Mapper struct {
	additionalLabels     []schema.AdditionalLabel
	sourceReferenceField string
	sourceReferenceKeep  bool
	sourceContentField   string
	sourceContentKeep    bool
	targetContentField   string
}

// Params holds incoming params for the [Mapper].
type Params struct {
	AdditionalLabels []schema.AdditionalLabel
	// SourceReferenceField names the metadata field that overrides the document reference.
	SourceReferenceField string
	SourceReferenceKeep  bool
	// SourceContentField names the metadata field that holds the document content.
	SourceContentField string
	SourceContentKeep  bool
	// TargetContentField is the property name the content is stored under.
	TargetContentField string
}

// New creates a new instance of the [Mapper].
func New(params Params) *Mapper {
	return &Mapper{
		additionalLabels:     params.AdditionalLabels,
		sourceReferenceField: params.SourceReferenceField,
		sourceReferenceKeep:  params.SourceReferenceKeep,
		sourceContentField:   params.SourceContentField,
		sourceContentKeep:    params.SourceContentKeep,
		targetContentField:   params.TargetContentField,
	}
}

// Map builds an entry for the referenced document.
//
// The content is taken from the source content field when the metadata holds it,
// otherwise it's read from the content stream, which may be nil.
func (m *Mapper) Map(reference string, metadata map[string]any, content io.Reader) (*schema.Entry, error) {
	properties := make(map[string][]string, len(metadata))
	for field, value := range metadata {
		values, err := normalize(value)
		if err != nil {
			return nil, fmt.Errorf("normalize field %q: %w", field, err)
		}

		if len(values) > 0 {
			properties[field] = values
		}
	}

	id := reference
	if values := properties[m.sourceReferenceField]; m.sourceReferenceField != "" && len(values) > 0 {
		id = values[0]
	}

	if strings.TrimSpace(id) == "" {
		return nil, ErrEmptyReference
	}

	// the reference field may be a label source as well
	labels := m.labels(properties)
	if m.sourceReferenceField != "" && !m.sourceReferenceKeep {
		delete(properties, m.sourceReferenceField)
	}

	body, err := m.content(metadata, properties, content)
	if err != nil {
		return nil, err
	}

	return &schema.Entry{
		ID:           id,
		Properties:   properties,
		Labels:       labels,
		ContentField: m.targetContentField,
		Content:      body,
	}, nil
}

func (m *Mapper) content(metadata map[string]any, properties map[string][]string, stream io.Reader) ([]byte, error) {
	if m.sourceContentField != "" {
		if raw, ok := metadata[m.sourceContentField]; ok && raw != nil {
			if !m.sourceContentKeep {
				delete(properties, m.sourceContentField)
			}

			switch v := raw.(type) {
			case []byte:
				return v, nil
			case string:
				return []byte(v), nil
			default:
				values, err := normalize(v)
				if err != nil {
					return nil, fmt.Errorf("normalize content field: %w", err)
				}

				return []byte(strings.Join(values, "\n")), nil
			}
		}
	}

	if stream == nil {
		return nil, nil
	}

	body, err := io.ReadAll(stream)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrReadContent, err)
	}

	return body, nil
}

// labels collects label values from the additional label fields,
// dropping fields that are not kept.
func (m *Mapper) labels(properties map[string][]string) []string {
	var (
		labels []string
		seen   = make(map[string]struct{})
	)

	for _, al := range m.additionalLabels {
		for _, value := range properties[al.SourceField] {
			if _, ok := seen[value]; ok {
				continue
			}

			seen[value] = struct{}{}
			labels = append(labels, value)
		}

		if !al.Keep {
			delete(properties, al.SourceField)
		}
	}

	return labels
}

// normalize flattens a metadata value into a list of non-blank strings.
func normalize(value any) ([]string, error) {
	switch v := value.(type) {
	case nil:
		return nil, nil
	case string:
		if strings.TrimSpace(v) == "" {
			return nil, nil
		}

		return []string{v}, nil
	case []byte:
		return normalize(string(v))
	case []string:
		values := make([]string, 0, len(v))
		for _, s := range v {
			if strings.TrimSpace(s) != "" {
				values = append(values, s)
			}
		}

		return values, nil
	case []any:
		var values []string
		for _, item := range v {
			itemValues, err := normalize(item)
			if err != nil {
				return nil, err
			}

			values = append(values, itemValues...)
		}

		return values, nil
	case map[string]any:
		raw, err := json.Marshal(v)
		if err != nil {
			return nil, fmt.Errorf("marshal nested value: %w", err)
		}

		return []string{string(raw)}, nil
	default:
		return normalize(fmt.Sprint(v))
	}
}
