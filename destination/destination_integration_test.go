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

package destination

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/brianvoe/gofakeit"
	"github.com/conduitio-labs/conduit-connector-neo4j-committer/config"
	"github.com/conduitio-labs/conduit-connector-neo4j-committer/destination/topology"
	"github.com/conduitio-labs/conduit-connector-neo4j-committer/internal/neo4jtest"
	commonsconfig "github.com/conduitio/conduit-commons/config"
	"github.com/conduitio/conduit-commons/opencdc"
	sdk "github.com/conduitio/conduit-connector-sdk"
	"github.com/matryer/is"
	"github.com/neo4j/neo4j-go-driver/v5/neo4j"
)

// openDestination configures and opens a destination that writes nodes under a unique primary label.
func openDestination(ctx context.Context, t *testing.T, uri string, extra commonsconfig.Config) (sdk.Destination, string) {
	t.Helper()

	is := is.New(t)

	primaryLabel := fmt.Sprintf("Doc_%d", time.Now().UnixNano())

	cfg := commonsconfig.Config{
		config.KeyURI:      uri,
		config.KeyDatabase: "neo4j",
		ConfigPrimaryLabel: primaryLabel,
		ConfigMaxRetries:   "1",
	}
	for key, value := range extra {
		cfg[key] = value
	}

	destination := New()
	is.NoErr(destination.Configure(ctx, cfg))
	is.NoErr(destination.Open(ctx))

	t.Cleanup(func() {
		is.NoErr(destination.Teardown(ctx))
	})

	return destination, primaryLabel
}

func addRecord(key string, payload opencdc.StructuredData) opencdc.Record {
	return opencdc.Record{
		Operation: opencdc.OperationCreate,
		Key:       opencdc.RawData(key),
		Payload:   opencdc.Change{After: payload},
	}
}

func deleteRecord(key string) opencdc.Record {
	return opencdc.Record{
		Operation: opencdc.OperationDelete,
		Key:       opencdc.RawData(key),
	}
}

// count returns the single count a query returns.
func count(ctx context.Context, t *testing.T, driver neo4j.DriverWithContext, cypher string, args ...any) int64 {
	t.Helper()

	values := neo4jtest.Query(ctx, t, driver, fmt.Sprintf(cypher, args...), nil)
	if len(values) != 1 {
		t.Fatalf("query %q returned %d rows", cypher, len(values))
	}

	n, ok := values[0].(int64)
	if !ok {
		t.Fatalf("query %q returned %T", cypher, values[0])
	}

	return n
}

func TestDestination_Write_oneNode(t *testing.T) {
	is := is.New(t)
	ctx := context.Background()

	uri := neo4jtest.Start(ctx, t)
	driver := neo4jtest.NewDriver(ctx, t, uri)

	destination, label := openDestination(ctx, t, uri, commonsconfig.Config{
		"additionalLabels.kind.keep":            "false",
		"relationships.links.type":              "REFERS_TO",
		"relationships.links.direction":         "OUTGOING",
		"relationships.links.sourcePropertyKey": "links",
		"relationships.links.targetPropertyKey": "identity",
	})

	title := gofakeit.Name()
	payload := opencdc.StructuredData{
		"title":   title,
		"kind":    []any{"Report", "Draft"},
		"tags":    []any{"red", "white"},
		"links":   []any{"doc-2"},
		"content": "body",
	}

	// the same document twice must leave a single node
	records := []opencdc.Record{addRecord("doc-1", payload), addRecord("doc-1", payload)}

	n, err := destination.Write(ctx, records)
	is.NoErr(err)
	is.Equal(n, len(records))

	nodes := neo4jtest.Query(ctx, t, driver, fmt.Sprintf("MATCH (n:`%s` {identity: 'doc-1'}) RETURN n", label), nil)
	is.Equal(len(nodes), 1)

	node := nodes[0].(neo4j.Node)
	is.Equal(node.Props["title"], title)
	is.Equal(node.Props["tags"], "red|white")
	is.Equal(node.Props["content"], "body")
	is.Equal(node.Props["kind"], nil)
	is.Equal(len(node.Labels), 3)

	// the referenced document was auto-created as a placeholder
	linked := neo4jtest.Query(ctx, t, driver, fmt.Sprintf(
		"MATCH (:`%s` {identity: 'doc-1'})-[:REFERS_TO]->(t:`%s`) RETURN t.identity", label, label,
	), nil)
	is.Equal(linked, []any{"doc-2"})

	// storing the placeholder's document reuses it
	n, err = destination.Write(ctx, []opencdc.Record{
		addRecord("doc-2", opencdc.StructuredData{"title": "second"}),
	})
	is.NoErr(err)
	is.Equal(n, 1)

	is.Equal(count(ctx, t, driver, "MATCH (n:`%s`) RETURN count(n)", label), int64(2))

	n, err = destination.Write(ctx, []opencdc.Record{deleteRecord("doc-1")})
	is.NoErr(err)
	is.Equal(n, 1)

	is.Equal(count(ctx, t, driver, "MATCH (n:`%s`) RETURN count(n)", label), int64(1))
}

func TestDestination_Write_oneNodeAdoptsMultiValuedPlaceholder(t *testing.T) {
	is := is.New(t)
	ctx := context.Background()

	uri := neo4jtest.Start(ctx, t)
	driver := neo4jtest.NewDriver(ctx, t, uri)

	destination, label := openDestination(ctx, t, uri, commonsconfig.Config{
		"relationships.links.type":              "REFERS_TO",
		"relationships.links.direction":         "OUTGOING",
		"relationships.links.sourcePropertyKey": "links",
		"relationships.links.targetPropertyKey": "url",
	})

	n, err := destination.Write(ctx, []opencdc.Record{
		addRecord("doc-1", opencdc.StructuredData{"links": "http://b"}),
		// the referenced document arrives later and is known under two URLs
		addRecord("doc-2", opencdc.StructuredData{"url": []any{"http://b/index.html", "http://b"}}),
	})
	is.NoErr(err)
	is.Equal(n, 2)

	is.Equal(count(ctx, t, driver, "MATCH (n:`%s`) RETURN count(n)", label), int64(2))

	linked := neo4jtest.Query(ctx, t, driver, fmt.Sprintf(
		"MATCH (:`%s` {identity: 'doc-1'})-[:REFERS_TO]->(t:`%s`) RETURN t.identity", label, label,
	), nil)
	is.Equal(linked, []any{"doc-2"})
}

func TestDestination_Write_splitted(t *testing.T) {
	is := is.New(t)
	ctx := context.Background()

	uri := neo4jtest.Start(ctx, t)
	driver := neo4jtest.NewDriver(ctx, t, uri)

	destination, label := openDestination(ctx, t, uri, commonsconfig.Config{
		ConfigNodeTopology: "SPLITTED",
	})

	payload := opencdc.StructuredData{"title": "first", "content": "body"}

	// the same document twice must leave a single identity, metadata and content triple
	n, err := destination.Write(ctx, []opencdc.Record{addRecord("doc-1", payload), addRecord("doc-1", payload)})
	is.NoErr(err)
	is.Equal(n, 2)

	is.Equal(count(ctx, t, driver, "MATCH (i:`%s`) RETURN count(i)", label), int64(1))
	is.Equal(count(ctx, t, driver, "MATCH (m:%s) RETURN count(m)", topology.MetadataLabel), int64(1))
	is.Equal(count(ctx, t, driver, "MATCH (c:%s) RETURN count(c)", topology.ContentLabel), int64(1))

	content := neo4jtest.Query(ctx, t, driver, fmt.Sprintf(
		"MATCH (:`%s` {identity: 'doc-1'})-[:%s]->(c:%s) RETURN c.content",
		label, topology.HasContentType, topology.ContentLabel,
	), nil)
	is.Equal(content, []any{"body"})

	title := neo4jtest.Query(ctx, t, driver, fmt.Sprintf(
		"MATCH (:`%s` {identity: 'doc-1'})-[:%s]->(m:%s) RETURN m.title",
		label, topology.HasMetadataType, topology.MetadataLabel,
	), nil)
	is.Equal(title, []any{"first"})

	n, err = destination.Write(ctx, []opencdc.Record{deleteRecord("doc-1")})
	is.NoErr(err)
	is.Equal(n, 1)

	// none of the three nodes survives the delete
	is.Equal(count(ctx, t, driver,
		"OPTIONAL MATCH (i:`%s`) OPTIONAL MATCH (m:%s) OPTIONAL MATCH (c:%s) "+
			"RETURN count(i) + count(m) + count(c)",
		label, topology.MetadataLabel, topology.ContentLabel,
	), int64(0))
}

func TestDestination_Write_splittedAdoptsPlaceholder(t *testing.T) {
	is := is.New(t)
	ctx := context.Background()

	uri := neo4jtest.Start(ctx, t)
	driver := neo4jtest.NewDriver(ctx, t, uri)

	destination, label := openDestination(ctx, t, uri, commonsconfig.Config{
		ConfigNodeTopology:                      "SPLITTED",
		"relationships.links.type":              "REFERS_TO",
		"relationships.links.direction":         "OUTGOING",
		"relationships.links.sourcePropertyKey": "links",
		"relationships.links.targetPropertyKey": "url",
	})

	n, err := destination.Write(ctx, []opencdc.Record{
		addRecord("doc-1", opencdc.StructuredData{"url": "http://a", "links": "http://b"}),
	})
	is.NoErr(err)
	is.Equal(n, 1)

	// doc-1's metadata node and the placeholder for http://b
	is.Equal(count(ctx, t, driver, "MATCH (m:%s) RETURN count(m)", topology.MetadataLabel), int64(2))

	n, err = destination.Write(ctx, []opencdc.Record{
		addRecord("doc-2", opencdc.StructuredData{"url": "http://b", "title": "second"}),
	})
	is.NoErr(err)
	is.Equal(n, 1)

	is.Equal(count(ctx, t, driver, "MATCH (m:%s) RETURN count(m)", topology.MetadataLabel), int64(2))
	is.Equal(count(ctx, t, driver, "MATCH (m:%s {url: 'http://b'}) RETURN count(m)", topology.MetadataLabel), int64(1))

	linked := neo4jtest.Query(ctx, t, driver, fmt.Sprintf(
		"MATCH (:`%s` {identity: 'doc-1'})-[:%s]->()-[:REFERS_TO]->(m)<-[:%s]-(i:`%s`) RETURN i.identity",
		label, topology.HasMetadataType, topology.HasMetadataType, label,
	), nil)
	is.Equal(linked, []any{"doc-2"})

	title := neo4jtest.Query(ctx, t, driver, fmt.Sprintf(
		"MATCH (:`%s` {identity: 'doc-2'})-[:%s]->(m:%s) RETURN m.title",
		label, topology.HasMetadataType, topology.MetadataLabel,
	), nil)
	is.Equal(title, []any{"second"})
}
