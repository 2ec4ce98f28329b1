package database

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func TestAutoMigratePersistentModels(t *testing.T) {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(PersistentModels()...))

	migrator := db.Migrator()
	for _, table := range []string{
		"users", "films", "genres", "mpa_ratings", "film_genres",
		"likes", "friendships", "reviews", "review_votes",
		"events", "recommendations",
	} {
		assert.True(t, migrator.HasTable(table), "expected table %s", table)
	}
}

func TestMigrationsRegistered(t *testing.T) {
	ms := GetMigrations()
	require.NotEmpty(t, ms)

	assert.Equal(t, 1, ms[0].Version)
	for i := 1; i < len(ms); i++ {
		assert.Greater(t, ms[i].Version, ms[i-1].Version, "migrations must be ordered by version")
	}
	for _, m := range ms {
		assert.NotEmpty(t, m.UpScript)
		assert.NotEmpty(t, m.DownScript)
	}
}
