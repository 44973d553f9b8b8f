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

// Package neo4jtest starts throwaway Neo4j instances for integration tests.
package neo4jtest

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

const (
	// Image is a Neo4j image the integration tests run against.
	Image = "neo4j:5"
	// boltPort is a port of the Bolt protocol inside the container.
	boltPort = "7687/tcp"
	// startupTimeout bounds waiting for Neo4j to accept connections.
	startupTimeout = 2 * time.Minute
)

// Start starts a Neo4j container with authentication disabled and returns its Bolt URI.
// The test is skipped when no container runtime is available.
// The container is terminated when the test and its subtests complete.
func Start(ctx context.Context, t testing.TB) string {
	t.Helper()

	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: testcontainers.ContainerRequest{
			Image:        Image,
			ExposedPorts: []string{boltPort},
			Env:          map[string]string{"NEO4J_AUTH": "none"},
			WaitingFor: wait.ForAll(
				wait.ForListeningPort(boltPort),
				wait.ForLog("Started."),
			).WithDeadline(startupTimeout),
		},
		Started: true,
	})
	if err != nil {
		t.Skipf("start neo4j container: %v", err)
	}

	t.Cleanup(func() {
		if err := container.Terminate(context.Background()); err != nil {
			t.Logf("terminate neo4j container: %v", err)
		}
	})

	host, err := container.Host(ctx)
	if err != nil {
		t.Fatalf("get container host: %v", err)
	}

	port, err := container.MappedPort(ctx, boltPort)
	if err != nil {
		t.Fatalf("get mapped port: %v", err)
	}

	return fmt.Sprintf("bolt://%s:%s", host, port.Port())
}

// NewDriver creates a driver for the URI returned by [Start] and closes it on cleanup.
func NewDriver(ctx context.Context, t testing.TB, uri string) neo4j.DriverWithContext {
	t.Helper()

	driver, err := neo4j.NewDriverWithContext(uri, neo4j.NoAuth())
	if err != nil {
		t.Fatalf("create neo4j driver: %v", err)
	}

	t.Cleanup(func() {
		if err := driver.Close(ctx); err != nil {
			t.Logf("close neo4j driver: %v", err)
		}
	})

	return driver
}

// Query runs a read query and returns the value of the first column of every row.
func Query(ctx context.Context, t testing.TB, driver neo4j.DriverWithContext, cypher string, params map[string]any) []any {
	t.Helper()

	result, err := neo4j.ExecuteQuery(ctx, driver, cypher, params, neo4j.EagerResultTransformer)
	if err != nil {
		t.Fatalf("execute query %q: %v", cypher, err)
	}

	values := make([]any, 0, len(result.Records))
	for _, record := range result.Records {
		values = append(values, record.Values[0])
	}

	return values
}
