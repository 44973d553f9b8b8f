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

import (
	"errors"
	"testing"

	"github.com/matryer/is"
)

func TestRelationship_Validate(t *testing.T) {
	t.Parallel()

	valid := Relationship{
		Type:              "LINKED_TO",
		Direction:         DirectionOutgoing,
		SourcePropertyKey: "collector.referenced-urls",
		TargetPropertyKey: "document.reference",
		TargetFindSyntax:  FindSyntaxMerge,
	}

	tests := []struct {
		name    string
		modify  func(r *Relationship)
		wantErr bool
	}{
		{name: "success", modify: func(*Relationship) {}},
		{name: "success_disabled", modify: func(r *Relationship) { r.Direction = DirectionNone }},
		{name: "fail_direction", modify: func(r *Relationship) { r.Direction = "SIDEWAYS" }, wantErr: true},
		{name: "fail_find_syntax", modify: func(r *Relationship) { r.TargetFindSyntax = "CREATE" }, wantErr: true},
		{name: "fail_empty_type", modify: func(r *Relationship) { r.Type = "" }, wantErr: true},
		{name: "fail_empty_target_key", modify: func(r *Relationship) { r.TargetPropertyKey = "" }, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			is := is.New(t)

			rel := valid
			tt.modify(&rel)

			err := rel.Validate()
			if tt.wantErr {
				is.True(errors.Is(err, ErrInvalidRelationship))

				return
			}

			is.NoErr(err)
		})
	}
}

func TestEntry_Flatten(t *testing.T) {
	t.Parallel()

	is := is.New(t)

	entry := &Entry{
		ID: "doc",
		Properties: map[string][]string{
			"colors": {"red", "blue"},
			"title":  {"Wine"},
		},
	}

	is.Equal(entry.Flatten("|"), map[string]any{"colors": "red|blue", "title": "Wine"})
	is.Equal(entry.Values("colors"), []string{"red", "blue"})
	is.Equal(entry.Values("missing"), nil)
}
