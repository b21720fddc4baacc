// Package display assembles the payload a display client renders: the
// settings row decides which modules appear, AI-curated modules are sampled
// from the collected content pool, and every per-module failure degrades to
// fixed fallback content instead of failing the whole call.
package display

import (
	"context"
	"errors"
	"fmt"
	"log"
	"math/rand"

	"gorm.io/gorm"

	"github.com/suilan/musedeck/internal/entities"
	"github.com/suilan/musedeck/internal/quotes"
)

// SettingsStore provides read access to the singleton display settings.
type SettingsStore interface {
	Get() (*entities.DisplaySettings, error)
}

// ContentSampler picks one enriched content row per category using the
// pre-assigned sampling key.
type ContentSampler interface {
	SampleByCategory(category string, draw float64) (*entities.CollectedContent, error)
}

// Aggregator builds display payloads from settings, collected content and
// the quote provider.
type Aggregator struct {
	settings SettingsStore
	content  ContentSampler
	quotes   quotes.Provider

	// draw produces the per-call sampling value; injectable for tests.
	draw func() float64
}

// NewAggregator creates a new display aggregator.
func NewAggregator(settings SettingsStore, content ContentSampler, quoteProvider quotes.Provider) *Aggregator {
	return &Aggregator{
		settings: settings,
		content:  content,
		quotes:   quoteProvider,
		draw:     rand.Float64,
	}
}

// BuildPayload assembles the display payload for the current settings.
//
// A single sampling value is drawn per call and shared across all sampled
// categories so one request is internally consistent. A missing settings row
// means every module is off; any other settings-fetch error is fatal. All
// per-module failures are isolated into fallback content.
func (a *Aggregator) BuildPayload(ctx context.Context) (*Payload, error) {
	draw := a.draw()

	settings, err := a.settings.Get()
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("fetch display settings: %w", err)
		}
		// No settings saved yet: valid state, all modules disabled.
		settings = &entities.DisplaySettings{}
	}

	payload := &Payload{
		Location: settings.DeviceLocation,
	}

	if settings.CalendarEnabled {
		payload.Calendar = calendarCard()
	}

	if settings.RecipeEnabled {
		payload.Recipe = a.curatedCard(entities.CategoryKitchen, "Today's Recommended Recipe", recipeFallback, draw)
	}

	if settings.InspirationEnabled {
		payload.Inspiration = a.curatedCard(entities.CategoryStudyRoom, "Inspiration Card", inspirationFallback, draw)
	}

	if settings.TasksEnabled {
		payload.Tasks = tasksCard()
	}

	if settings.DailyQuoteEnabled {
		payload.DailyQuote = a.quoteCard(ctx)
	}

	return payload, nil
}

// curatedCard samples one enriched row for a category; on no match or any
// store error it substitutes the category's fixed fallback.
func (a *Aggregator) curatedCard(category, title string, fallback ContentCard, draw float64) *ContentCard {
	row, err := a.content.SampleByCategory(category, draw)
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			log.Printf("Error sampling %s content: %v", category, err)
		}
		card := fallback
		return &card
	}

	card := &ContentCard{
		Title:   title,
		Content: row.OriginalContent,
		Keyword: row.AIKeywords,
		Source:  SourceCurated,
	}
	if row.AISummary != nil && *row.AISummary != "" {
		card.Content = *row.AISummary
	}
	if card.Keyword == nil {
		card.Keyword = []string{}
	}
	return card
}

func (a *Aggregator) quoteCard(ctx context.Context) *QuoteCard {
	quote, err := a.quotes.Fetch(ctx)
	if err != nil {
		log.Printf("Error fetching daily quote: %v", err)
		return &QuoteCard{
			Quote:  "The best way to predict the future is to create it.",
			Author: "Unknown",
			Source: SourceQuoteFallback,
		}
	}
	return &QuoteCard{
		Quote:  quote.Text,
		Author: quote.Author,
		Source: quote.Source,
	}
}

// Simple modules emit locally synthesized content: a real deployment would
// source these from a scheduling collaborator.

func calendarCard() *CalendarCard {
	return &CalendarCard{
		Title: "Today's Schedule",
		Events: []CalendarEvent{
			{Time: "10:00 AM", Description: "Team Stand-up"},
			{Time: "02:00 PM", Description: "Client Call"},
		},
	}
}

func tasksCard() *TasksCard {
	return &TasksCard{
		Title:   "Upcoming Tasks",
		Content: "1. Design new scheduled API\n2. Write BP\n3. Prepare the demo",
		Keyword: []string{"design", "BP", "demo"},
	}
}

var recipeFallback = ContentCard{
	Title:   "Today's Recommended Recipe",
	Content: "No specific recipe found. Here is a default one: Stir-fried Tomatoes with Eggs\n1. Scramble eggs 2. Stir-fry tomatoes 3. Combine",
	Keyword: []string{"default", "recipe"},
	Source:  SourceDefaultFallback,
}

var inspirationFallback = ContentCard{
	Title:   "Inspiration Card",
	Content: "“Creativity is just connecting things.” - Steve Jobs",
	Keyword: []string{"default", "quote", "Jobs"},
	Source:  SourceDefaultFallback,
}
