// Package generator turns knowledge items into vector-database points by
// batching embedding requests against the configured embedding service.
package generator

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/hyperengineering/packvec/internal/config"
	"github.com/hyperengineering/packvec/internal/embedding"
	"github.com/hyperengineering/packvec/internal/types"
)

// Generator drives the batch embedding pipeline. It is synchronous and
// single-threaded: one service call at a time, with fixed delays between
// retries and between batches.
type Generator struct {
	embedder embedding.Embedder
	cfg      config.EmbeddingConfig

	// Injected for deterministic tests.
	sleep func(time.Duration)
	newID func() string
}

// New creates a Generator with wall-clock sleeps and random UUID point ids.
func New(e embedding.Embedder, cfg config.EmbeddingConfig) *Generator {
	return &Generator{
		embedder: e,
		cfg:      cfg,
		sleep:    time.Sleep,
		newID:    uuid.NewString,
	}
}

// Run embeds all items and returns one point per item, in input order.
// Items are processed in contiguous batches of at most BatchSize. A batch
// that fails all retry attempts aborts the run; no partial result is
// returned. An empty input yields zero points and zero service calls.
func (g *Generator) Run(ctx context.Context, items []types.KnowledgeItem) ([]types.Point, error) {
	points := make([]types.Point, 0, len(items))

	for start := 0; start < len(items); start += g.cfg.BatchSize {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		end := min(start+g.cfg.BatchSize, len(items))
		batch := items[start:end]

		vectors, err := g.embedBatch(ctx, batch)
		if err != nil {
			return nil, err
		}

		for i, item := range batch {
			if len(vectors[i]) != g.cfg.Dimensions {
				return nil, fmt.Errorf("embedding for %q has %d dimensions, want %d",
					item.Item, len(vectors[i]), g.cfg.Dimensions)
			}
			points = append(points, types.Point{
				ID:      g.newID(),
				Vector:  vectors[i],
				Payload: item,
			})
		}

		slog.Info("batch embedded",
			"batch_start", start,
			"batch_size", len(batch),
			"component", "generator",
		)

		// Rate limiting delay between batches, not after the last.
		if end < len(items) {
			g.sleep(time.Duration(g.cfg.BatchDelay))
		}
	}

	return points, nil
}

// embedBatch calls the embedding service for one batch with bounded
// retries. Every failure is treated as retryable; distinguishing transient
// from permanent errors is left to the retry ceiling.
func (g *Generator) embedBatch(ctx context.Context, batch []types.KnowledgeItem) ([][]float32, error) {
	texts := make([]string, len(batch))
	for i, item := range batch {
		texts[i] = EmbeddingText(item)
	}

	var lastErr error
	for attempt := 1; attempt <= g.cfg.RetryAttempts; attempt++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		vectors, err := g.embedder.EmbedBatch(ctx, texts)
		if err == nil {
			return vectors, nil
		}
		lastErr = err

		if attempt < g.cfg.RetryAttempts {
			slog.Warn("embedding batch failed, will retry",
				"error", err,
				"attempt", attempt,
				"max_attempts", g.cfg.RetryAttempts,
				"component", "generator",
			)
			g.sleep(time.Duration(g.cfg.RetryDelay))
		}
	}

	return nil, fmt.Errorf("embedding batch failed after %d attempts: %w", g.cfg.RetryAttempts, lastErr)
}

// EmbeddingText builds the text representation the embedding service sees
// for one item. The field order and separators are fixed: changing them
// changes every vector and invalidates the existing collection.
func EmbeddingText(item types.KnowledgeItem) string {
	return fmt.Sprintf(`Item: %s
Category: %s
Travel Type: %s
Destination: %s
Season: %s
Reason: %s
Tags: %s
Climate: %s
Importance: %s`,
		item.Item,
		item.Category,
		item.TravelType,
		item.DestinationType,
		strings.Join(item.Season, ", "),
		item.Reason,
		strings.Join(item.Tags, ", "),
		strings.Join(item.Climate, ", "),
		item.Importance,
	)
}
