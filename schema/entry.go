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

import "strings"

// Entry is a committed document ready to be stored as one or more graph nodes.
type Entry struct {
	// ID is the unique and stable document key.
	ID string
	// Properties holds the metadata values of the document, keyed by field name.
	// A field is never present with an empty value list.
	Properties map[string][]string
	// Labels holds additional labels extracted from the metadata.
	Labels []string
	// ContentField is the name of the property that holds Content.
	ContentField string
	// Content is the document body. It is nil when the document has none.
	Content []byte
}

// Values returns the values of the field, or nil when the field is absent.
func (e *Entry) Values(field string) []string {
	if e == nil {
		return nil
	}

	return e.Properties[field]
}

// Flatten returns the properties as a map of single values,
// joining multi-valued fields with the joiner.
func (e *Entry) Flatten(joiner string) map[string]any {
	flat := make(map[string]any, len(e.Properties))
	for field, values := range e.Properties {
		flat[field] = strings.Join(values, joiner)
	}

	return flat
}

// AdditionalLabel declares that the value of SourceField becomes an extra label of the document node.
type AdditionalLabel struct {
	SourceField string `mapstructure:"sourceField"`
	// Keep keeps the source field as a property after it was used as a label.
	Keep bool `mapstructure:"keep"`
}
