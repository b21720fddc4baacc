// Package enrichment classifies freshly collected content via the external
// workflow call and persists the structured result. Unlike the display
// aggregator, every failure here surfaces to the caller: silently dropping a
// classification would leave content permanently unrecommendable.
package enrichment

import (
	"context"
	"fmt"
	"log"

	"github.com/suilan/musedeck/internal/classifier"
	"github.com/suilan/musedeck/internal/entities"
)

// ContentStore provides the content row access the pipeline needs.
type ContentStore interface {
	GetByID(id uint) (*entities.CollectedContent, error)
	SaveEnrichment(id uint, summary string, keywords entities.StringList, category string) error
}

// Result echoes the processed content id back to the caller.
type Result struct {
	ContentID uint `json:"content_id"`
}

// Pipeline runs classification for a single content row.
type Pipeline struct {
	store      ContentStore
	classifier classifier.Classifier
}

// NewPipeline creates a new enrichment pipeline.
func NewPipeline(store ContentStore, c classifier.Classifier) *Pipeline {
	return &Pipeline{
		store:      store,
		classifier: c,
	}
}

// Enrich loads the row, classifies it, and persists summary, keywords and
// category. Idempotent: re-running simply overwrites the AI fields with a
// fresh classification.
func (p *Pipeline) Enrich(ctx context.Context, contentID uint) (*Result, error) {
	if contentID == 0 {
		return nil, ErrInvalidInput
	}

	row, err := p.store.GetByID(contentID)
	if err != nil {
		return nil, fmt.Errorf("%w: id %d", ErrNotFound, contentID)
	}

	classification, err := p.classifier.Classify(ctx, row.ContentType, row.OriginalContent)
	if err != nil {
		return nil, fmt.Errorf("classify content %d: %w", contentID, err)
	}

	keywords := entities.StringList(classification.Keywords)
	if keywords == nil {
		keywords = entities.StringList{}
	}
	category := classification.Category
	if category == "" {
		category = entities.CategoryOther
	}

	if err := p.store.SaveEnrichment(contentID, classification.Summary, keywords, category); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStore, err)
	}

	log.Printf("Content %d enriched: category=%s keywords=%d", contentID, category, len(keywords))
	return &Result{ContentID: contentID}, nil
}
