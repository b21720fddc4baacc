package display

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/suilan/musedeck/internal/entities"
	"github.com/suilan/musedeck/internal/quotes"
)

type fakeSettingsStore struct {
	settings *entities.DisplaySettings
	err      error
}

func (f *fakeSettingsStore) Get() (*entities.DisplaySettings, error) {
	return f.settings, f.err
}

type fakeSampler struct {
	rows  map[string]*entities.CollectedContent
	err   error
	draws []float64
}

func (f *fakeSampler) SampleByCategory(category string, draw float64) (*entities.CollectedContent, error) {
	f.draws = append(f.draws, draw)
	if f.err != nil {
		return nil, f.err
	}
	row, ok := f.rows[category]
	if !ok || row.RandomFloat <= draw {
		return nil, gorm.ErrRecordNotFound
	}
	return row, nil
}

type fakeQuoteProvider struct {
	quote *quotes.Quote
	err   error
}

func (f *fakeQuoteProvider) Fetch(ctx context.Context) (*quotes.Quote, error) {
	return f.quote, f.err
}

func (f *fakeQuoteProvider) Name() string { return "fake" }

func strPtr(s string) *string { return &s }

func allEnabled() *entities.DisplaySettings {
	return &entities.DisplaySettings{
		DeviceLocation:     strPtr(entities.LocationStudyRoom),
		CalendarEnabled:    true,
		RecipeEnabled:      true,
		InspirationEnabled: true,
		TasksEnabled:       true,
		DailyQuoteEnabled:  true,
	}
}

func newTestAggregator(settings *fakeSettingsStore, sampler *fakeSampler, provider quotes.Provider, draw float64) *Aggregator {
	a := NewAggregator(settings, sampler, provider)
	a.draw = func() float64 { return draw }
	return a
}

func TestAggregator_BuildPayload_CuratedRecipe(t *testing.T) {
	sampler := &fakeSampler{rows: map[string]*entities.CollectedContent{
		entities.CategoryKitchen: {
			OriginalContent: "long original text",
			AISummary:       strPtr("Stir-fry"),
			AIKeywords:      entities.StringList{"recipe"},
			RandomFloat:     0.9,
		},
	}}
	settings := &fakeSettingsStore{settings: &entities.DisplaySettings{RecipeEnabled: true}}
	a := newTestAggregator(settings, sampler, &fakeQuoteProvider{}, 0.1)

	payload, err := a.BuildPayload(context.Background())
	require.NoError(t, err)

	require.NotNil(t, payload.Recipe)
	assert.Equal(t, "Stir-fry", payload.Recipe.Content)
	assert.Equal(t, SourceCurated, payload.Recipe.Source)
	assert.Nil(t, payload.Calendar)
	assert.Nil(t, payload.Tasks)
	assert.Nil(t, payload.DailyQuote)
}

func TestAggregator_BuildPayload_RecipeFallbackWhenDrawPastKey(t *testing.T) {
	sampler := &fakeSampler{rows: map[string]*entities.CollectedContent{
		entities.CategoryKitchen: {
			AISummary:   strPtr("Stir-fry"),
			RandomFloat: 0.9,
		},
	}}
	settings := &fakeSettingsStore{settings: &entities.DisplaySettings{RecipeEnabled: true}}
	a := newTestAggregator(settings, sampler, &fakeQuoteProvider{}, 0.95)

	payload, err := a.BuildPayload(context.Background())
	require.NoError(t, err)

	require.NotNil(t, payload.Recipe)
	assert.Equal(t, SourceDefaultFallback, payload.Recipe.Source)
	assert.Contains(t, payload.Recipe.Content, "Stir-fried Tomatoes with Eggs")
}

func TestAggregator_BuildPayload_SamplerErrorFallsBack(t *testing.T) {
	sampler := &fakeSampler{err: errors.New("disk on fire")}
	settings := &fakeSettingsStore{settings: &entities.DisplaySettings{
		RecipeEnabled:      true,
		InspirationEnabled: true,
	}}
	a := newTestAggregator(settings, sampler, &fakeQuoteProvider{}, 0.5)

	payload, err := a.BuildPayload(context.Background())
	require.NoError(t, err)

	require.NotNil(t, payload.Recipe)
	assert.Equal(t, SourceDefaultFallback, payload.Recipe.Source)
	require.NotNil(t, payload.Inspiration)
	assert.Equal(t, SourceDefaultFallback, payload.Inspiration.Source)
	assert.Contains(t, payload.Inspiration.Content, "Steve Jobs")
}

func TestAggregator_BuildPayload_SharedDrawAcrossCategories(t *testing.T) {
	sampler := &fakeSampler{rows: map[string]*entities.CollectedContent{}}
	settings := &fakeSettingsStore{settings: allEnabled()}
	a := newTestAggregator(settings, sampler, &fakeQuoteProvider{quote: &quotes.Quote{Text: "q"}}, 0.42)

	_, err := a.BuildPayload(context.Background())
	require.NoError(t, err)

	require.Len(t, sampler.draws, 2)
	assert.Equal(t, 0.42, sampler.draws[0])
	assert.Equal(t, 0.42, sampler.draws[1])
}

func TestAggregator_BuildPayload_QuoteProviderFailure(t *testing.T) {
	settings := &fakeSettingsStore{settings: &entities.DisplaySettings{DailyQuoteEnabled: true}}
	a := newTestAggregator(settings, &fakeSampler{}, &fakeQuoteProvider{err: errors.New("timeout")}, 0.5)

	payload, err := a.BuildPayload(context.Background())
	require.NoError(t, err)

	require.NotNil(t, payload.DailyQuote)
	assert.Equal(t, "The best way to predict the future is to create it.", payload.DailyQuote.Quote)
	assert.Equal(t, SourceQuoteFallback, payload.DailyQuote.Source)
}

func TestAggregator_BuildPayload_QuoteProviderSuccess(t *testing.T) {
	settings := &fakeSettingsStore{settings: &entities.DisplaySettings{DailyQuoteEnabled: true}}
	provider := &fakeQuoteProvider{quote: &quotes.Quote{Text: "q", Author: "a", Source: "s"}}
	a := newTestAggregator(settings, &fakeSampler{}, provider, 0.5)

	payload, err := a.BuildPayload(context.Background())
	require.NoError(t, err)

	require.NotNil(t, payload.DailyQuote)
	assert.Equal(t, "q", payload.DailyQuote.Quote)
	assert.Equal(t, "a", payload.DailyQuote.Author)
	assert.Equal(t, "s", payload.DailyQuote.Source)
}

func TestAggregator_BuildPayload_NoSettingsRowDisablesEverything(t *testing.T) {
	settings := &fakeSettingsStore{err: gorm.ErrRecordNotFound}
	a := newTestAggregator(settings, &fakeSampler{}, &fakeQuoteProvider{}, 0.5)

	payload, err := a.BuildPayload(context.Background())
	require.NoError(t, err)

	assert.Nil(t, payload.Location)
	assert.Nil(t, payload.Calendar)
	assert.Nil(t, payload.Recipe)
	assert.Nil(t, payload.Inspiration)
	assert.Nil(t, payload.Tasks)
	assert.Nil(t, payload.DailyQuote)
}

func TestAggregator_BuildPayload_SettingsStoreError(t *testing.T) {
	settings := &fakeSettingsStore{err: errors.New("db locked")}
	a := newTestAggregator(settings, &fakeSampler{}, &fakeQuoteProvider{}, 0.5)

	_, err := a.BuildPayload(context.Background())
	assert.Error(t, err)
}

func TestAggregator_BuildPayload_DisabledModulesOmittedFromJSON(t *testing.T) {
	settings := &fakeSettingsStore{settings: &entities.DisplaySettings{
		DeviceLocation:  strPtr(entities.LocationKitchen),
		CalendarEnabled: true,
	}}
	a := newTestAggregator(settings, &fakeSampler{}, &fakeQuoteProvider{}, 0.5)

	payload, err := a.BuildPayload(context.Background())
	require.NoError(t, err)

	data, err := json.Marshal(payload)
	require.NoError(t, err)

	var m map[string]any
	require.NoError(t, json.Unmarshal(data, &m))
	assert.Contains(t, m, "location")
	assert.Contains(t, m, "calendar")
	assert.NotContains(t, m, "recipe")
	assert.NotContains(t, m, "inspiration")
	assert.NotContains(t, m, "tasks")
	assert.NotContains(t, m, "daily_quote")
}
