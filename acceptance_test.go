//go:build integration

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

package neo4j

import (
	"context"
	"fmt"
	"sync/atomic"
	"testing"
	"time"

	"github.com/brianvoe/gofakeit"
	"github.com/conduitio-labs/conduit-connector-neo4j-committer/destination"
	"github.com/conduitio-labs/conduit-connector-neo4j-committer/internal/neo4jtest"
	"github.com/conduitio/conduit-commons/opencdc"
	sdk "github.com/conduitio/conduit-connector-sdk"
	"github.com/neo4j/neo4j-go-driver/v5/neo4j"
	"go.uber.org/goleak"
)

const (
	// testLabelPrefix is a prefix of the primary label each acceptance test writes under.
	testLabelPrefix = "test_label"
	testDatabase    = "neo4j"
)

type driver struct {
	sdk.ConfigurableAcceptanceTestDriver

	uri       string
	idCounter int64
}

// GenerateRecord overrides the [sdk.ConfigurableAcceptanceTestDriver] GenerateRecord method.
// The payload holds string fields only, so it reads back from the graph unchanged.
func (d *driver) GenerateRecord(t *testing.T, operation opencdc.Operation) opencdc.Record {
	t.Helper()

	id := atomic.AddInt64(&d.idCounter, 1)

	return opencdc.Record{
		Operation: operation,
		Key:       opencdc.RawData(fmt.Sprintf("doc-%d", id)),
		Payload: opencdc.Change{
			After: opencdc.StructuredData{
				"name":    gofakeit.Name(),
				"company": gofakeit.Company(),
				"city":    gofakeit.City(),
			},
		},
	}
}

// ReadFromDestination overrides the [sdk.ConfigurableAcceptanceTestDriver] ReadFromDestination method.
// It reads the document nodes back and returns them in the order of the records.
func (d *driver) ReadFromDestination(t *testing.T, records []opencdc.Record) []opencdc.Record {
	t.Helper()

	ctx := context.Background()

	// closed before returning, the goroutine leak check runs ahead of test cleanups
	client, err := neo4j.NewDriverWithContext(d.uri, neo4j.NoAuth())
	if err != nil {
		t.Fatalf("create neo4j driver: %v", err)
	}
	defer client.Close(ctx)

	ids := make([]string, 0, len(records))
	for _, record := range records {
		ids = append(ids, string(record.Key.Bytes()))
	}

	label := d.Config.DestinationConfig[destination.ConfigPrimaryLabel]
	referenceField := d.Config.DestinationConfig[destination.ConfigTargetReferenceField]

	result, err := neo4j.ExecuteQuery(ctx, client,
		fmt.Sprintf("MATCH (n:`%s`) WHERE n.`%s` IN $ids RETURN n", label, referenceField),
		map[string]any{"ids": ids},
		neo4j.EagerResultTransformer,
		neo4j.ExecuteQueryWithDatabase(testDatabase),
	)
	if err != nil {
		t.Fatalf("read nodes: %v", err)
	}

	nodes := make(map[string]neo4j.Node, len(result.Records))
	for _, record := range result.Records {
		node, ok := record.Values[0].(neo4j.Node)
		if !ok {
			t.Fatalf("unexpected value %T", record.Values[0])
		}

		id, _ := node.Props[referenceField].(string)
		nodes[id] = node
	}

	got := make([]opencdc.Record, 0, len(records))
	for _, id := range ids {
		node, ok := nodes[id]
		if !ok {
			continue
		}

		payload := make(opencdc.StructuredData, len(node.Props))
		for key, value := range node.Props {
			if key != referenceField {
				payload[key] = value
			}
		}

		got = append(got, opencdc.Record{
			Operation: opencdc.OperationCreate,
			Key:       opencdc.RawData(id),
			Payload:   opencdc.Change{After: payload},
		})
	}

	return got
}

func TestAcceptance(t *testing.T) {
	uri := neo4jtest.Start(context.Background(), t)

	destCfg := map[string]string{
		destination.ConfigUri:                  uri,
		destination.ConfigDatabase:             testDatabase,
		destination.ConfigTargetReferenceField: "identity",
	}

	sdk.AcceptanceTest(t, &driver{
		ConfigurableAcceptanceTestDriver: sdk.ConfigurableAcceptanceTestDriver{
			Config: sdk.ConfigurableAcceptanceTestDriverConfig{
				Connector:         Connector,
				DestinationConfig: destCfg,
				BeforeTest:        beforeTest(destCfg),
				// the container and its reaper outlive every single test
				GoleakOptions: []goleak.Option{goleak.IgnoreCurrent()},
			},
		},
		uri: uri,
	})
}

// beforeTest sets the primary label to a unique name prefixed with the testLabelPrefix.
func beforeTest(destCfg map[string]string) func(*testing.T) {
	return func(t *testing.T) {
		t.Helper()

		destCfg[destination.ConfigPrimaryLabel] = fmt.Sprintf("%s_%d", testLabelPrefix, time.Now().UnixNano())
	}
}
