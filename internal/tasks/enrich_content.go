package tasks

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/mikestefanello/backlite"

	"github.com/suilan/musedeck/internal/enrichment"
)

// Enricher runs the classification pipeline for one content row.
type Enricher interface {
	Enrich(ctx context.Context, contentID uint) (*enrichment.Result, error)
}

// EnrichContentTask classifies a single collected content row.
type EnrichContentTask struct {
	ContentID uint `json:"content_id"`
}

func (t EnrichContentTask) Config() backlite.QueueConfig {
	return backlite.QueueConfig{
		Name:        "enrich_content",
		MaxAttempts: 3,
		Backoff:     30 * time.Second,
		Timeout:     2 * time.Minute,
		Retention: &backlite.Retention{
			Duration:   24 * time.Hour,
			OnlyFailed: false,
			Data:       &backlite.RetainData{OnlyFailed: true},
		},
	}
}

// EnrichContentProcessor creates a processor for content enrichment.
// Retrying a vanished or malformed row is pointless, so those failures are
// logged and swallowed; upstream and store failures propagate so backlite
// retries them.
func EnrichContentProcessor(pipeline Enricher) backlite.QueueProcessor[EnrichContentTask] {
	return func(ctx context.Context, task EnrichContentTask) error {
		result, err := pipeline.Enrich(ctx, task.ContentID)
		if err != nil {
			if errors.Is(err, enrichment.ErrNotFound) || errors.Is(err, enrichment.ErrInvalidInput) {
				log.Printf("[TASK] Skipping enrichment for content %d: %v", task.ContentID, err)
				return nil
			}
			return fmt.Errorf("enrich content %d: %w", task.ContentID, err)
		}

		log.Printf("[TASK] Enriched content %d", result.ContentID)
		return nil
	}
}

func NewEnrichContentQueue(pipeline Enricher) backlite.Queue {
	return backlite.NewQueue(EnrichContentProcessor(pipeline))
}
