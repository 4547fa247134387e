package repository

import (
	"context"
	"testing"

	"github.com/Conceptual-Machines/magda-charts/internal/database"
	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	// One connection so every query sees the same in-memory database
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	require.NoError(t, database.Migrate(db))
	return db
}

func TestFirstOrCreateDeduplicates(t *testing.T) {
	repo := NewProgressionRepository(setupTestDB(t))
	ctx := context.Background()

	first, created, err := repo.FirstOrCreate(ctx, []string{"I", "V", "vi", "IV"})
	require.NoError(t, err)
	assert.True(t, created)
	assert.NotEmpty(t, first.ID)
	assert.Equal(t, 4, first.ChordCount)
	assert.Equal(t, []string{"I", "V", "vi", "IV"}, first.SymbolList())

	again, created, err := repo.FirstOrCreate(ctx, []string{"I", "V", "vi", "IV"})
	require.NoError(t, err)
	assert.False(t, created)
	assert.Equal(t, first.ID, again.ID)

	other, created, err := repo.FirstOrCreate(ctx, []string{"I", "V", "IV", "IV"})
	require.NoError(t, err)
	assert.True(t, created)
	assert.NotEqual(t, first.ID, other.ID)
}

func TestGetByID(t *testing.T) {
	repo := NewProgressionRepository(setupTestDB(t))
	ctx := context.Background()

	stored, _, err := repo.FirstOrCreate(ctx, []string{"ii", "V7", "I"})
	require.NoError(t, err)

	found, err := repo.GetByID(ctx, stored.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{"ii", "V7", "I"}, found.SymbolList())

	_, err = repo.GetByID(ctx, "00000000-0000-0000-0000-000000000000")
	assert.ErrorIs(t, err, ErrProgressionNotFound)
}

func TestList(t *testing.T) {
	repo := NewProgressionRepository(setupTestDB(t))
	ctx := context.Background()

	empty, err := repo.List(ctx, 0)
	require.NoError(t, err)
	assert.Empty(t, empty)
	assert.NotNil(t, empty)

	for _, symbols := range [][]string{{"I"}, {"IV"}, {"V"}} {
		_, _, err := repo.FirstOrCreate(ctx, symbols)
		require.NoError(t, err)
	}

	all, err := repo.List(ctx, 0)
	require.NoError(t, err)
	assert.Len(t, all, 3)

	limited, err := repo.List(ctx, 2)
	require.NoError(t, err)
	assert.Len(t, limited, 2)
}
