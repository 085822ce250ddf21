package repository

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/camden-git/inspectsysbackend/database"
	"github.com/camden-git/inspectsysbackend/models"
)

func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := database.InitGormDB(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	require.NoError(t, database.AutoMigrateModels(db))
	return db
}

func TestCounterRepositoryIncrement(t *testing.T) {
	repo := NewCounterRepository(openTestDB(t))

	value, err := repo.Increment("p1", models.CategoryDefect)
	require.NoError(t, err)
	assert.Equal(t, 1, value)

	value, err = repo.Increment("p1", models.CategoryDefect)
	require.NoError(t, err)
	assert.Equal(t, 2, value)

	// risk counter advances independently
	value, err = repo.Increment("p1", models.CategoryRisk)
	require.NoError(t, err)
	assert.Equal(t, 1, value)

	// projects do not share counters
	value, err = repo.Increment("p2", models.CategoryDefect)
	require.NoError(t, err)
	assert.Equal(t, 1, value)
}

func TestCounterRepositoryIncrement_UnknownCategory(t *testing.T) {
	repo := NewCounterRepository(openTestDB(t))
	_, err := repo.Increment("p1", models.CategoryOverview)
	assert.Error(t, err)
}

func TestCounterRepositoryGet(t *testing.T) {
	repo := NewCounterRepository(openTestDB(t))

	counter, err := repo.Get("p1")
	require.NoError(t, err)
	assert.Nil(t, counter, "no row until a reference ID is issued")

	_, err = repo.Increment("p1", models.CategoryDefect)
	require.NoError(t, err)
	_, err = repo.Increment("p1", models.CategoryRisk)
	require.NoError(t, err)

	counter, err = repo.Get("p1")
	require.NoError(t, err)
	require.NotNil(t, counter)
	assert.Equal(t, 1, counter.DefectCounter)
	assert.Equal(t, 1, counter.RiskCounter)
}
