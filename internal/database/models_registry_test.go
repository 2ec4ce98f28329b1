package database

import (
	"testing"

	modelspkg "cinegraph/internal/models"

	"github.com/stretchr/testify/require"
)

func TestPersistentModels_IncludesRecommendation(t *testing.T) {
	found := false
	for _, model := range PersistentModels() {
		if _, ok := model.(*modelspkg.Recommendation); ok {
			found = true
			break
		}
	}
	require.True(t, found, "PersistentModels should include Recommendation")
}

func TestPersistentModels_IncludesEvent(t *testing.T) {
	found := false
	for _, model := range PersistentModels() {
		if _, ok := model.(*modelspkg.Event); ok {
			found = true
			break
		}
	}
	require.True(t, found, "PersistentModels should include Event")
}
