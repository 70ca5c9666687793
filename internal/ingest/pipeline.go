// Package ingest drives batch ingestion: per-record validation, store
// insertion, and aggregate application, with a per-item accept/reject
// summary.
package ingest

import (
	"context"
	"errors"
	"fmt"

	"github.com/valyala/fastjson"

	"github.com/loglumen/loglumen-server/internal/core"
	"github.com/loglumen/loglumen-server/internal/events"
	"github.com/loglumen/loglumen-server/pkg/logger"
)

// ErrMalformedBody signals that the request body was not parseable JSON, or
// was neither an object nor an array. Nothing is ingested in that case.
var ErrMalformedBody = errors.New("malformed JSON body")

// Applier folds one accepted event into the aggregates.
type Applier interface {
	Apply(event core.Event)
}

// Rejection identifies one rejected batch item and why it was refused.
type Rejection struct {
	Index  int    `json:"index"`
	Field  string `json:"field"`
	Reason string `json:"reason"`
}

// BatchSummary reports the outcome of one ingestion call. Agents use it to
// see exactly which items were accepted; rejected items are not worth
// retrying since the same record would fail again.
type BatchSummary struct {
	Received   int         `json:"received"`
	Accepted   int         `json:"accepted"`
	Rejected   int         `json:"rejected"`
	Rejections []Rejection `json:"rejections,omitempty"`
}

// Pipeline validates incoming records and hands accepted events to the store
// and the aggregation engine.
type Pipeline struct {
	store   core.EventSink
	applier Applier
	parsers fastjson.ParserPool
}

// NewPipeline creates an ingestion pipeline over the given store and
// aggregation engine.
func NewPipeline(store core.EventSink, applier Applier) *Pipeline {
	return &Pipeline{store: store, applier: applier}
}

// ProcessBody ingests one request body: a JSON array of event records, or a
// single object tolerated for compatibility. Records are handled
// independently; one malformed record never discards the rest of the batch.
// A body that is not parseable JSON returns ErrMalformedBody and has no side
// effects.
func (p *Pipeline) ProcessBody(ctx context.Context, body []byte) (BatchSummary, error) {
	parser := p.parsers.Get()
	defer p.parsers.Put(parser)

	parsed, err := parser.ParseBytes(body)
	if err != nil {
		return BatchSummary{}, fmt.Errorf("%w: %v", ErrMalformedBody, err)
	}

	var records []*fastjson.Value
	switch parsed.Type() {
	case fastjson.TypeArray:
		records, _ = parsed.Array()
	case fastjson.TypeObject:
		records = []*fastjson.Value{parsed}
	default:
		return BatchSummary{}, fmt.Errorf("%w: body must be an event object or array", ErrMalformedBody)
	}

	summary := BatchSummary{Received: len(records)}
	for i, record := range records {
		event, verr := events.Parse(record)
		if verr != nil {
			summary.Rejected++
			summary.Rejections = append(summary.Rejections, Rejection{
				Index:  i,
				Field:  verr.Field,
				Reason: verr.Reason,
			})
			logger.Debugf("rejected event %d: field=%s reason=%s", i, verr.Field, verr.Reason)
			continue
		}

		// Append cannot fail for a validated event; retention pressure is
		// absorbed by eviction inside the store.
		if err := p.store.Append(ctx, event); err != nil {
			logger.Errorf("failed to store event for host %s: %v", event.Host, err)
			summary.Rejected++
			summary.Rejections = append(summary.Rejections, Rejection{
				Index:  i,
				Field:  "event",
				Reason: "storage failure",
			})
			continue
		}
		p.applier.Apply(event)
		summary.Accepted++
	}

	logger.Infof("Ingested batch: received=%d accepted=%d rejected=%d",
		summary.Received, summary.Accepted, summary.Rejected)

	return summary, nil
}
