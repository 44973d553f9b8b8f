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
	"context"
	"fmt"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"
)

// DriverRunner is a [Runner] backed by a Neo4j driver.
// Each call acquires its own session and releases it before returning.
type DriverRunner struct {
	driver       neo4j.DriverWithContext
	databaseName string
}

// NewDriverRunner creates a new instance of the [DriverRunner].
func NewDriverRunner(driver neo4j.DriverWithContext, databaseName string) *DriverRunner {
	return &DriverRunner{
		driver:       driver,
		databaseName: databaseName,
	}
}

// Write runs the statements within one managed write transaction.
func (r *DriverRunner) Write(ctx context.Context, statements []Statement) ([]Result, error) {
	session := r.driver.NewSession(ctx, neo4j.SessionConfig{
		DatabaseName: r.databaseName,
		AccessMode:   neo4j.AccessModeWrite,
	})
	defer session.Close(ctx)

	results, err := neo4j.ExecuteWrite(ctx, session, func(tx neo4j.ManagedTransaction) ([]Result, error) {
		results := make([]Result, 0, len(statements))
		for _, statement := range statements {
			result, err := run(ctx, tx, statement)
			if err != nil {
				return nil, err
			}

			results = append(results, result)
		}

		return results, nil
	})
	if err != nil {
		return nil, fmt.Errorf("execute write: %w", err)
	}

	return results, nil
}

func run(ctx context.Context, tx neo4j.ManagedTransaction, statement Statement) (Result, error) {
	result, err := tx.Run(ctx, statement.Query, statement.Params)
	if err != nil {
		return Result{}, fmt.Errorf("run tx: %w", err)
	}

	records, err := result.Collect(ctx)
	if err != nil {
		return Result{}, fmt.Errorf("collect records: %w", err)
	}

	summary, err := result.Consume(ctx)
	if err != nil {
		return Result{}, fmt.Errorf("consume result: %w", err)
	}

	output := Result{Records: make([]map[string]any, 0, len(records))}
	for _, record := range records {
		row := make(map[string]any, len(record.Keys))
		for _, key := range record.Keys {
			// skip the check because we know that the key exists
			// as we iterate over all existing keys
			row[key], _ = record.Get(key)
		}

		output.Records = append(output.Records, row)
	}

	counters := summary.Counters()
	output.NodesCreated = counters.NodesCreated()
	output.NodesDeleted = counters.NodesDeleted()
	output.RelationshipsCreated = counters.RelationshipsCreated()
	output.RelationshipsDeleted = counters.RelationshipsDeleted()

	return output, nil
}
