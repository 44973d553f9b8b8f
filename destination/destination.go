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

//go:generate paramgen -output=paramgen_dest.go Config
//go:generate mockgen -package mock -destination mock/destination.go . Writer

// Package destination implements the destination logic of the Neo4j committer connector.
package destination

import (
	"context"
	"fmt"
	"strings"

	"github.com/conduitio-labs/conduit-connector-neo4j-committer/destination/mapper"
	"github.com/conduitio-labs/conduit-connector-neo4j-committer/destination/topology"
	"github.com/conduitio-labs/conduit-connector-neo4j-committer/destination/writer"
	"github.com/conduitio/conduit-commons/config"
	"github.com/conduitio/conduit-commons/opencdc"
	sdk "github.com/conduitio/conduit-connector-sdk"
	"github.com/neo4j/neo4j-go-driver/v5/neo4j"
)

// groupParameterWildcard marks parameters of grouped rules, which are parsed apart from the rest.
const groupParameterWildcard = "*"

// Writer is a writer interface needed for the [Destination].
type Writer interface {
	Write(ctx context.Context, record opencdc.Record) error
}

// Destination Neo4j Connector commits document records to a Neo4j graph.
type Destination struct {
	sdk.UnimplementedDestination

	config Config
	rules  Rules
	writer Writer
	driver neo4j.DriverWithContext
}

// New creates a new instance of the [Destination].
func New() sdk.Destination {
	return sdk.DestinationWithMiddleware(&Destination{}, sdk.DefaultDestinationMiddleware()...)
}

// Parameters is a map of named [config.Parameter] that describe how to configure the [Destination].
func (d *Destination) Parameters() config.Parameters {
	params := d.config.Parameters()
	for name, param := range d.rules.Parameters() {
		params[name] = param
	}

	return params
}

// Configure parses and initializes the [Destination] config.
func (d *Destination) Configure(ctx context.Context, raw config.Config) error {
	rest, groups := splitGroups(raw, ConfigKeyAdditionalLabels, ConfigKeyRelationships)

	var cfg Config
	if err := sdk.Util.ParseConfig(ctx, rest, &cfg, scalarParameters(New().Parameters())); err != nil {
		return fmt.Errorf("parse config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("validate config: %w", err)
	}

	rules, err := parseRules(groups)
	if err != nil {
		return fmt.Errorf("parse rules: %w", err)
	}

	if err := rules.Validate(); err != nil {
		return fmt.Errorf("validate rules: %w", err)
	}

	d.config = cfg
	d.rules = rules

	return nil
}

// Open makes sure everything is prepared to receive records.
func (d *Destination) Open(ctx context.Context) error {
	driver, err := neo4j.NewDriverWithContext(d.config.URI, d.config.Auth.AuthToken(), func(c *neo4j.Config) {
		c.MaxTransactionRetryTime = d.config.MutationTimeout
	})
	if err != nil {
		return fmt.Errorf("create neo4j driver: %w", err)
	}

	// the driver is released by Teardown on every path from here on
	d.driver = driver

	if err := driver.VerifyConnectivity(ctx); err != nil {
		return fmt.Errorf("ping neo4j instance: %w", err)
	}

	runner := topology.NewDriverRunner(driver, d.config.Database)

	if d.config.CreateConstraints {
		err := topology.EnsureConstraint(ctx, runner, d.config.PrimaryLabel, d.config.TargetReferenceField)
		if err != nil {
			return fmt.Errorf("ensure constraint: %w", err)
		}
	}

	strategy, err := topology.New(topology.Params{
		Runner:         runner,
		Type:           d.config.NodeTopology,
		PrimaryLabel:   d.config.PrimaryLabel,
		ReferenceField: d.config.TargetReferenceField,
		Joiner:         d.config.MultiValuesJoiner,
		Relationships:  d.rules.Relationships,
	})
	if err != nil {
		return fmt.Errorf("init node topology: %w", err)
	}

	d.writer = writer.New(writer.Params{
		Topology: strategy,
		Mapper: mapper.New(mapper.Params{
			AdditionalLabels:     d.rules.AdditionalLabels,
			SourceReferenceField: d.config.SourceReferenceField,
			SourceReferenceKeep:  d.config.SourceReferenceKeep,
			SourceContentField:   d.config.SourceContentField,
			SourceContentKeep:    d.config.SourceContentKeep,
			TargetContentField:   d.config.TargetContentField,
		}),
		MaxRetries:      d.config.MaxRetries,
		MaxRetryWait:    d.config.MaxRetryWait,
		MutationTimeout: d.config.MutationTimeout,
	})

	sdk.Logger(ctx).Info().
		Str("topology", string(strategy.Kind())).
		Str("primaryLabel", d.config.PrimaryLabel).
		Int("relationships", len(d.rules.Relationships)).
		Int("additionalLabels", len(d.rules.AdditionalLabels)).
		Msg("neo4j committer opened")

	return nil
}

// Write writes records into a [Destination] in order.
// It stops at the first record that fails and returns the number of records written before it.
func (d *Destination) Write(ctx context.Context, records []opencdc.Record) (int, error) {
	for i, record := range records {
		if err := d.writer.Write(ctx, record); err != nil {
			return i, fmt.Errorf("write record: %w", err)
		}
	}

	return len(records), nil
}

// Teardown gracefully closes connections.
func (d *Destination) Teardown(ctx context.Context) error {
	if d.driver != nil {
		driver := d.driver
		d.driver = nil

		if err := driver.Close(ctx); err != nil {
			return fmt.Errorf("close neo4j driver: %w", err)
		}
	}

	return nil
}

// scalarParameters returns the parameters without the grouped rule parameters.
func scalarParameters(params config.Parameters) config.Parameters {
	scalar := make(config.Parameters, len(params))
	for name, param := range params {
		if !strings.Contains(name, groupParameterWildcard) {
			scalar[name] = param
		}
	}

	return scalar
}
