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

// Package writer implements a writer logic for the Neo4j Destination.
package writer

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/conduitio-labs/conduit-connector-neo4j-committer/destination/mapper"
	"github.com/conduitio-labs/conduit-connector-neo4j-committer/destination/topology"
	"github.com/conduitio-labs/conduit-connector-neo4j-committer/schema"
	"github.com/conduitio/conduit-commons/opencdc"
	sdk "github.com/conduitio/conduit-connector-sdk"
	"github.com/neo4j/neo4j-go-driver/v5/neo4j"
)

const (
	// initialRetryDelay is the delay before the first retry, it doubles on every next one.
	initialRetryDelay = 100 * time.Millisecond
	// defaultMaxRetryWait caps retry delays when no cap is configured.
	defaultMaxRetryWait = 5 * time.Second
	// maxBackoffShift bounds the doubling of initialRetryDelay.
	maxBackoffShift = 30
	// neo4jClientErrorClassification is a classification of errors caused by the request itself.
	neo4jClientErrorClassification = "ClientError"
)

// Kind is a kind of a document operation.
type Kind int

// The available operation kinds are listed below.
const (
	KindAdd Kind = iota + 1
	KindDelete
)

// Mapper maps document metadata and content into a [schema.Entry].
type Mapper interface {
	Map(reference string, metadata map[string]any, content io.Reader) (*schema.Entry, error)
}

// Writer implements a writer logic for the Neo4j Destination.
type Writer struct {
	topology        topology.Topology
	mapper          Mapper
	maxRetries      int
	maxRetryWait    time.Duration
	mutationTimeout time.Duration
}

// Params holds incoming params for the [Writer].
type Params struct {
	Topology topology.Topology
	Mapper   Mapper
	// MaxRetries is the number of retries of a failed mutation.
	MaxRetries int
	// MaxRetryWait caps the delay between two retries, 5s when not positive.
	MaxRetryWait time.Duration
	// MutationTimeout bounds a single mutation attempt, zero means no timeout.
	MutationTimeout time.Duration
}

// New creates a new instance of the [Writer].
func New(params Params) *Writer {
	if params.MaxRetryWait <= 0 {
		params.MaxRetryWait = defaultMaxRetryWait
	}

	return &Writer{
		topology:        params.Topology,
		mapper:          params.Mapper,
		maxRetries:      params.MaxRetries,
		maxRetryWait:    params.MaxRetryWait,
		mutationTimeout: params.MutationTimeout,
	}
}

// Classify returns the kind of the document operation a record carries.
func Classify(operation opencdc.Operation) (Kind, error) {
	switch operation {
	case opencdc.OperationCreate, opencdc.OperationUpdate, opencdc.OperationSnapshot:
		return KindAdd, nil
	case opencdc.OperationDelete:
		return KindDelete, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrUnsupportedOperation, operation)
	}
}

// Write writes a record to the destination.
func (w *Writer) Write(ctx context.Context, record opencdc.Record) error {
	kind, err := Classify(record.Operation)
	if err != nil {
		return err
	}

	switch kind {
	case KindAdd:
		return w.handleAdd(ctx, record)
	case KindDelete:
		return w.handleDelete(ctx, record)
	default:
		// this shouldn't happen as Classify returns known kinds only
		return ErrUnsupportedOperation
	}
}

func (w *Writer) handleAdd(ctx context.Context, record opencdc.Record) error {
	metadata, content, err := w.structurizePayload(record.Payload.After)
	if err != nil {
		return fmt.Errorf("structurize record payload: %w", err)
	}

	entry, err := w.mapper.Map(w.reference(record.Key), metadata, content)
	if err != nil {
		return fmt.Errorf("map document: %w", err)
	}

	return w.retry(ctx, "store entry", entry.ID, func(ctx context.Context) error {
		return w.topology.StoreEntry(ctx, entry)
	})
}

func (w *Writer) handleDelete(ctx context.Context, record opencdc.Record) error {
	id := w.reference(record.Key)
	if strings.TrimSpace(id) == "" {
		return fmt.Errorf("delete document: %w", mapper.ErrEmptyReference)
	}

	return w.retry(ctx, "delete entry", id, func(ctx context.Context) error {
		return w.topology.DeleteEntry(ctx, id)
	})
}

// retry runs the mutation until it succeeds, fails permanently or runs out of retries.
func (w *Writer) retry(ctx context.Context, action, id string, mutate func(context.Context) error) error {
	var err error
	for attempt := 0; attempt <= w.maxRetries; attempt++ {
		if attempt > 0 {
			delay := w.backoff(attempt)

			sdk.Logger(ctx).Warn().
				Err(err).
				Str("id", id).
				Int("attempt", attempt).
				Dur("delay", delay).
				Msgf("%s failed, retrying", action)

			select {
			case <-ctx.Done():
				return fmt.Errorf("%s %q: %w", action, id, ctx.Err())
			case <-time.After(delay):
			}
		}

		err = w.attempt(ctx, mutate)
		if err == nil {
			return nil
		}

		if ctx.Err() != nil || !retryable(err) {
			return fmt.Errorf("%s %q: %w", action, id, err)
		}
	}

	return fmt.Errorf("%s %q after %d attempts: %w: %w", action, id, w.maxRetries+1, ErrRetriesExhausted, err)
}

// attempt runs the mutation under its own timeout.
func (w *Writer) attempt(ctx context.Context, mutate func(context.Context) error) error {
	if w.mutationTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, w.mutationTimeout)
		defer cancel()
	}

	return mutate(ctx)
}

// backoff returns the exponential delay before the given retry, capped by maxRetryWait.
func (w *Writer) backoff(attempt int) time.Duration {
	if attempt < 1 {
		attempt = 1
	}

	if attempt > maxBackoffShift {
		return w.maxRetryWait
	}

	return min(initialRetryDelay<<(attempt-1), w.maxRetryWait)
}

// reference returns the document reference held by a record key.
func (w *Writer) reference(key opencdc.Data) string {
	switch k := key.(type) {
	case nil:
		return ""
	case opencdc.StructuredData:
		if len(k) == 1 {
			for _, v := range k {
				return fmt.Sprint(v)
			}
		}

		return string(k.Bytes())
	default:
		return string(k.Bytes())
	}
}

// structurizePayload returns the metadata of a payload and, if the payload is not a JSON object,
// its raw bytes as the content stream.
func (w *Writer) structurizePayload(data opencdc.Data) (map[string]any, io.Reader, error) {
	switch d := data.(type) {
	case nil:
		return nil, nil, ErrEmptyPayload
	case opencdc.StructuredData:
		return d, nil, nil
	default:
		raw := d.Bytes()
		if len(raw) == 0 {
			return nil, nil, ErrEmptyPayload
		}

		var structurizedData map[string]any
		if err := json.Unmarshal(raw, &structurizedData); err != nil {
			return map[string]any{}, bytes.NewReader(raw), nil
		}

		return structurizedData, nil, nil
	}
}

// retryable reports whether a failed mutation may succeed when tried again.
func retryable(err error) bool {
	switch {
	case errors.Is(err, context.Canceled),
		errors.Is(err, topology.ErrEmptyID),
		errors.Is(err, topology.ErrUnsupportedTopology):
		return false
	}

	var neo4jErr *neo4j.Neo4jError
	if errors.As(err, &neo4jErr) {
		return neo4j.IsRetryable(err) || neo4jErr.Classification() != neo4jClientErrorClassification
	}

	return true
}
