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
	"strings"
	"time"

	"github.com/conduitio-labs/conduit-connector-neo4j-committer/config"
)

// Config holds configurable values specific to destination.
type Config struct {
	config.Config

	// The structure of the nodes of a committed document.
	// ONE_NODE creates a node with metadata and content,
	// NO_CONTENT creates a node without content,
	// SPLITTED creates an identity node linked to a metadata node and a content node.
	NodeTopology config.TopologyType `json:"nodeTopology" validate:"inclusion=ONE_NODE|NO_CONTENT|SPLITTED" default:"ONE_NODE"`
	// Primary label used for all created document nodes.
	PrimaryLabel string `json:"primaryLabel" default:"CommittedDocument"`
	// One or more characters to join multi-value fields.
	MultiValuesJoiner string `json:"multiValuesJoiner" default:"|"`
	// Name of the node property that stores the document unique identifier.
	TargetReferenceField string `json:"targetReferenceField" default:"identity"`
	// Name of a metadata field that holds the document reference
	// when the record key should not be used.
	SourceReferenceField string `json:"sourceReferenceField"`
	// Keeps the source reference field as a property once re-mapped.
	SourceReferenceKeep bool `json:"sourceReferenceKeep" default:"false"`
	// Name of a metadata field that holds the document content.
	SourceContentField string `json:"sourceContentField" default:"content"`
	// Keeps the source content field as a property once re-mapped.
	SourceContentKeep bool `json:"sourceContentKeep" default:"false"`
	// Name of the node property that stores the document content.
	TargetContentField string `json:"targetContentField" default:"content"`
	// Max retries upon mutation failures.
	MaxRetries int `json:"maxRetries" validate:"gt=-1" default:"3"`
	// Max delay between retries.
	MaxRetryWait time.Duration `json:"maxRetryWait" default:"5s"`
	// Timeout of a single mutation attempt.
	MutationTimeout time.Duration `json:"mutationTimeout" default:"30s"`
	// Creates a uniqueness constraint on the reference field of primary nodes on open.
	CreateConstraints bool `json:"createConstraints" default:"true"`
}

// Validate checks the values that cannot be expressed by parameter validations.
func (c Config) Validate() error {
	if _, err := config.ParseTopologyType(string(c.NodeTopology)); err != nil {
		return fmt.Errorf("validate node topology: %w", err)
	}

	switch {
	case strings.TrimSpace(c.PrimaryLabel) == "":
		return fmt.Errorf("%s: %w", ConfigPrimaryLabel, ErrEmptyConfigValue)
	case strings.TrimSpace(c.TargetReferenceField) == "":
		return fmt.Errorf("%s: %w", ConfigTargetReferenceField, ErrEmptyConfigValue)
	case c.MaxRetryWait <= 0:
		return fmt.Errorf("%s %q: %w", ConfigMaxRetryWait, c.MaxRetryWait, ErrInvalidDuration)
	case c.MutationTimeout < 0:
		return fmt.Errorf("%s %q: %w", ConfigMutationTimeout, c.MutationTimeout, ErrInvalidDuration)
	}

	return nil
}
