package seed

import (
	_ "embed"
	"fmt"

	"cinegraph/internal/models"

	"gopkg.in/yaml.v3"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

//go:embed catalogs.yml
var catalogsYAML []byte

type catalogFile struct {
	Genres []catalogEntry `yaml:"genres"`
	Mpa    []catalogEntry `yaml:"mpa_ratings"`
}

type catalogEntry struct {
	ID   uint   `yaml:"id"`
	Name string `yaml:"name"`
}

// BuiltInCatalogs parses the embedded genre and MPA rating catalog.
func BuiltInCatalogs() ([]models.Genre, []models.MpaRating, error) {
	var file catalogFile
	if err := yaml.Unmarshal(catalogsYAML, &file); err != nil {
		return nil, nil, fmt.Errorf("parse embedded catalogs: %w", err)
	}

	genres := make([]models.Genre, 0, len(file.Genres))
	for _, entry := range file.Genres {
		genres = append(genres, models.Genre{ID: entry.ID, Name: entry.Name})
	}
	ratings := make([]models.MpaRating, 0, len(file.Mpa))
	for _, entry := range file.Mpa {
		ratings = append(ratings, models.MpaRating{ID: entry.ID, Name: entry.Name})
	}
	return genres, ratings, nil
}

// Catalogs upserts the built-in genres and MPA ratings. The catalogs are
// keyed by fixed IDs so re-running the seeder never duplicates or renumbers
// them.
func Catalogs(db *gorm.DB) error {
	genres, ratings, err := BuiltInCatalogs()
	if err != nil {
		return err
	}

	return db.Transaction(func(tx *gorm.DB) error {
		for _, genre := range genres {
			if err := tx.Clauses(clause.OnConflict{
				Columns:   []clause.Column{{Name: "id"}},
				DoUpdates: clause.AssignmentColumns([]string{"name"}),
			}).Create(&genre).Error; err != nil {
				return fmt.Errorf("seed genre %q: %w", genre.Name, err)
			}
		}
		for _, rating := range ratings {
			if err := tx.Clauses(clause.OnConflict{
				Columns:   []clause.Column{{Name: "id"}},
				DoUpdates: clause.AssignmentColumns([]string{"name"}),
			}).Create(&rating).Error; err != nil {
				return fmt.Errorf("seed mpa rating %q: %w", rating.Name, err)
			}
		}

		// Keep the ID sequences ahead of the fixed-ID rows.
		if tx.Dialector.Name() == "postgres" {
			for _, table := range []string{"genres", "mpa_ratings"} {
				if err := tx.Exec(fmt.Sprintf(`
					SELECT setval(
						pg_get_serial_sequence('%s', 'id'),
						GREATEST((SELECT COALESCE(MAX(id), 1) FROM %s), 1),
						true
					)
				`, table, table)).Error; err != nil {
					return fmt.Errorf("reset %s sequence: %w", table, err)
				}
			}
		}
		return nil
	})
}
