package content

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/suilan/musedeck/internal/entities"
)

func setupTestDB(t *testing.T) (*Repository, func()) {
	dbPath := "./test_content_" + t.Name() + ".db"

	db, err := gorm.Open(sqlite.Open(dbPath), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	err = db.AutoMigrate(&entities.CollectedContent{})
	require.NoError(t, err)

	repo := NewRepository(db)

	cleanup := func() {
		sqlDB, _ := db.DB()
		sqlDB.Close()
		os.Remove(dbPath)
	}

	return repo, cleanup
}

// seedEnriched inserts a row with a fixed sampling key and enriched fields.
func seedEnriched(t *testing.T, repo *Repository, category, summary string, key float64) *entities.CollectedContent {
	t.Helper()

	row := &entities.CollectedContent{
		ContentType:     entities.ContentTypeText,
		OriginalContent: "raw " + summary,
	}
	require.NoError(t, repo.Create(row))
	require.NoError(t, repo.SaveEnrichment(row.ID, summary, entities.StringList{"k"}, category))

	// Pin the sampling key so tests control the draw outcome
	err := repo.db.Model(&entities.CollectedContent{}).
		Where("id = ?", row.ID).
		Update("random_float", key).Error
	require.NoError(t, err)

	saved, err := repo.GetByID(row.ID)
	require.NoError(t, err)
	return saved
}

func TestRepository_Create_AssignsSamplingKey(t *testing.T) {
	repo, cleanup := setupTestDB(t)
	defer cleanup()

	row := &entities.CollectedContent{
		ContentType:     entities.ContentTypeWebpage,
		OriginalContent: "https://example.com/article",
	}
	err := repo.Create(row)
	require.NoError(t, err)

	saved, err := repo.GetByID(row.ID)
	require.NoError(t, err)
	assert.GreaterOrEqual(t, saved.RandomFloat, 0.0)
	assert.Less(t, saved.RandomFloat, 1.0)
	assert.Nil(t, saved.AISummary)
	assert.Nil(t, saved.AICategory)
	assert.Empty(t, saved.AIKeywords)
}

func TestRepository_GetByID_NotFound(t *testing.T) {
	repo, cleanup := setupTestDB(t)
	defer cleanup()

	_, err := repo.GetByID(12345)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestRepository_SampleByCategory_PicksRowAboveDraw(t *testing.T) {
	repo, cleanup := setupTestDB(t)
	defer cleanup()

	seedEnriched(t, repo, entities.CategoryKitchen, "Stir-fry", 0.9)

	row, err := repo.SampleByCategory(entities.CategoryKitchen, 0.1)
	require.NoError(t, err)
	require.NotNil(t, row.AISummary)
	assert.Equal(t, "Stir-fry", *row.AISummary)
}

func TestRepository_SampleByCategory_DrawPastMaxKey(t *testing.T) {
	repo, cleanup := setupTestDB(t)
	defer cleanup()

	seedEnriched(t, repo, entities.CategoryKitchen, "Stir-fry", 0.9)

	_, err := repo.SampleByCategory(entities.CategoryKitchen, 0.95)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestRepository_SampleByCategory_OrdersAscending(t *testing.T) {
	repo, cleanup := setupTestDB(t)
	defer cleanup()

	seedEnriched(t, repo, entities.CategoryKitchen, "high", 0.8)
	seedEnriched(t, repo, entities.CategoryKitchen, "low", 0.4)

	// The first key above the draw wins, not the insertion order
	row, err := repo.SampleByCategory(entities.CategoryKitchen, 0.2)
	require.NoError(t, err)
	assert.Equal(t, "low", *row.AISummary)
}

func TestRepository_SampleByCategory_SkipsUnenriched(t *testing.T) {
	repo, cleanup := setupTestDB(t)
	defer cleanup()

	// Unenriched row: never eligible regardless of its key
	raw := &entities.CollectedContent{
		ContentType:     entities.ContentTypeText,
		OriginalContent: "pending note",
	}
	require.NoError(t, repo.Create(raw))

	_, err := repo.SampleByCategory(entities.CategoryKitchen, 0.0)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestRepository_SampleByCategory_FiltersCategory(t *testing.T) {
	repo, cleanup := setupTestDB(t)
	defer cleanup()

	seedEnriched(t, repo, entities.CategoryStudyRoom, "focus deeply", 0.9)

	_, err := repo.SampleByCategory(entities.CategoryKitchen, 0.1)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)

	row, err := repo.SampleByCategory(entities.CategoryStudyRoom, 0.1)
	require.NoError(t, err)
	assert.Equal(t, "focus deeply", *row.AISummary)
}

func TestRepository_SaveEnrichment(t *testing.T) {
	repo, cleanup := setupTestDB(t)
	defer cleanup()

	row := &entities.CollectedContent{
		ContentType:     entities.ContentTypeWebpage,
		OriginalContent: "https://example.com/recipe",
	}
	require.NoError(t, repo.Create(row))

	before, err := repo.GetByID(row.ID)
	require.NoError(t, err)

	time.Sleep(10 * time.Millisecond)

	err = repo.SaveEnrichment(row.ID, "S", entities.StringList{"a", "b"}, entities.CategoryKitchen)
	require.NoError(t, err)

	after, err := repo.GetByID(row.ID)
	require.NoError(t, err)
	require.NotNil(t, after.AISummary)
	assert.Equal(t, "S", *after.AISummary)
	assert.Equal(t, entities.StringList{"a", "b"}, after.AIKeywords)
	require.NotNil(t, after.AICategory)
	assert.Equal(t, entities.CategoryKitchen, *after.AICategory)
	assert.True(t, after.UpdatedAt.After(before.UpdatedAt))
}

func TestRepository_SaveEnrichment_Rerun(t *testing.T) {
	repo, cleanup := setupTestDB(t)
	defer cleanup()

	row := &entities.CollectedContent{
		ContentType:     entities.ContentTypeText,
		OriginalContent: "note",
	}
	require.NoError(t, repo.Create(row))

	require.NoError(t, repo.SaveEnrichment(row.ID, "first", entities.StringList{"x"}, entities.CategoryOther))
	require.NoError(t, repo.SaveEnrichment(row.ID, "second", entities.StringList{"y", "z"}, entities.CategoryStudyRoom))

	after, err := repo.GetByID(row.ID)
	require.NoError(t, err)
	assert.Equal(t, "second", *after.AISummary)
	assert.Equal(t, entities.StringList{"y", "z"}, after.AIKeywords)
	assert.Equal(t, entities.CategoryStudyRoom, *after.AICategory)
}

func TestRepository_SaveEnrichment_NilKeywordsBecomeEmptyList(t *testing.T) {
	repo, cleanup := setupTestDB(t)
	defer cleanup()

	row := &entities.CollectedContent{
		ContentType:     entities.ContentTypeText,
		OriginalContent: "note",
	}
	require.NoError(t, repo.Create(row))

	require.NoError(t, repo.SaveEnrichment(row.ID, "S", nil, entities.CategoryOther))

	after, err := repo.GetByID(row.ID)
	require.NoError(t, err)
	assert.NotNil(t, after.AIKeywords)
	assert.Empty(t, after.AIKeywords)
}

func TestRepository_CountPending(t *testing.T) {
	repo, cleanup := setupTestDB(t)
	defer cleanup()

	first := &entities.CollectedContent{ContentType: entities.ContentTypeText, OriginalContent: "one"}
	second := &entities.CollectedContent{ContentType: entities.ContentTypeText, OriginalContent: "two"}
	require.NoError(t, repo.Create(first))
	require.NoError(t, repo.Create(second))

	n, err := repo.CountPending()
	require.NoError(t, err)
	assert.Equal(t, int64(2), n)

	require.NoError(t, repo.SaveEnrichment(first.ID, "S", nil, entities.CategoryOther))

	n, err = repo.CountPending()
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)
}
