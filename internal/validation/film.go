// Package validation contains input validation rules for domain entities.
package validation

import (
	"fmt"
	"time"

	"cinegraph/internal/models"
)

// earliestReleaseDate is the date of the first public film screening;
// no film in the catalog can predate it.
var earliestReleaseDate = time.Date(1895, time.December, 28, 0, 0, 0, 0, time.UTC)

const maxFilmDescriptionLen = 200

// ValidateFilm validates a film's fields before create or update.
func ValidateFilm(film *models.Film) error {
	if film.Name == "" {
		return fmt.Errorf("film name is required")
	}
	if len(film.Description) > maxFilmDescriptionLen {
		return fmt.Errorf("film description must be at most %d characters", maxFilmDescriptionLen)
	}
	if film.Duration <= 0 {
		return fmt.Errorf("film duration must be positive")
	}
	if !film.ReleaseDate.IsZero() && film.ReleaseDate.Before(earliestReleaseDate) {
		return fmt.Errorf("release date cannot be before %s", earliestReleaseDate.Format("2006-01-02"))
	}
	return nil
}
