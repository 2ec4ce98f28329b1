package service

import (
	"context"

	"cinegraph/internal/models"
	"cinegraph/internal/repository"
	"cinegraph/internal/validation"
)

// PopularCache caches ranked popular-film lists between like writes.
// Implementations must treat Get misses and backend failures identically
// (return ok=false); the ranking query is always a safe fallback.
type PopularCache interface {
	Get(ctx context.Context, limit int, filter repository.PopularFilter) ([]models.Film, bool)
	Set(ctx context.Context, limit int, filter repository.PopularFilter, films []models.Film)
	Invalidate(ctx context.Context)
}

// FilmService provides film catalog, like, and popularity-ranking logic.
type FilmService struct {
	filmRepo repository.FilmRepository
	userRepo repository.UserRepository
	likeRepo repository.LikeRepository
	events   *eventLogger
	popular  PopularCache
}

// NewFilmService returns a new FilmService. eventRepo and popularCache may
// be nil; event logging and caching are then disabled.
func NewFilmService(
	filmRepo repository.FilmRepository,
	userRepo repository.UserRepository,
	likeRepo repository.LikeRepository,
	eventRepo repository.EventRepository,
	popularCache PopularCache,
) *FilmService {
	return &FilmService{
		filmRepo: filmRepo,
		userRepo: userRepo,
		likeRepo: likeRepo,
		events:   newEventLogger(eventRepo),
		popular:  popularCache,
	}
}

// CreateFilm validates and stores a new film.
func (s *FilmService) CreateFilm(ctx context.Context, film *models.Film) (*models.Film, error) {
	if err := validation.ValidateFilm(film); err != nil {
		return nil, models.NewValidationError(err.Error())
	}
	if err := s.filmRepo.Create(ctx, film); err != nil {
		return nil, err
	}
	return s.filmRepo.GetByID(ctx, film.ID)
}

// UpdateFilm validates and updates an existing film.
func (s *FilmService) UpdateFilm(ctx context.Context, film *models.Film) (*models.Film, error) {
	if err := validation.ValidateFilm(film); err != nil {
		return nil, models.NewValidationError(err.Error())
	}
	if err := s.filmRepo.Update(ctx, film); err != nil {
		return nil, err
	}
	return s.filmRepo.GetByID(ctx, film.ID)
}

// GetFilm returns a film by ID.
func (s *FilmService) GetFilm(ctx context.Context, id uint) (*models.Film, error) {
	return s.filmRepo.GetByID(ctx, id)
}

// DeleteFilm removes a film from the catalog.
func (s *FilmService) DeleteFilm(ctx context.Context, id uint) error {
	return s.filmRepo.Delete(ctx, id)
}

// ListFilms returns a page of the catalog.
func (s *FilmService) ListFilms(ctx context.Context, limit, offset int) ([]models.Film, error) {
	return s.filmRepo.List(ctx, limit, offset)
}

// AddLike records that the user likes the film. Likes have set semantics:
// repeating the call changes nothing and emits no second event.
func (s *FilmService) AddLike(ctx context.Context, filmID, userID uint) error {
	if _, err := s.filmRepo.GetByID(ctx, filmID); err != nil {
		return err
	}
	if _, err := s.userRepo.GetByID(ctx, userID); err != nil {
		return err
	}

	created, err := s.likeRepo.Save(ctx, userID, filmID)
	if err != nil {
		return err
	}
	if created {
		s.events.record(ctx, userID, models.EventTypeLike, models.EventOperationAdd, filmID)
		s.invalidatePopular(ctx)
	}
	return nil
}

// RemoveLike removes the user's like. Removing a like that does not exist is
// a no-op, not an error.
func (s *FilmService) RemoveLike(ctx context.Context, filmID, userID uint) error {
	if _, err := s.filmRepo.GetByID(ctx, filmID); err != nil {
		return err
	}
	if _, err := s.userRepo.GetByID(ctx, userID); err != nil {
		return err
	}

	removed, err := s.likeRepo.Delete(ctx, userID, filmID)
	if err != nil {
		return err
	}
	if removed {
		s.events.record(ctx, userID, models.EventTypeLike, models.EventOperationRemove, filmID)
		s.invalidatePopular(ctx)
	}
	return nil
}

// GetPopular returns at most limit films ranked by like count descending.
// Genre and year filters are conjunctive; zero values mean no filter.
func (s *FilmService) GetPopular(ctx context.Context, limit int, filter repository.PopularFilter) ([]models.Film, error) {
	if limit <= 0 {
		return nil, models.NewValidationError("Popular limit must be positive")
	}

	if s.popular != nil {
		if films, ok := s.popular.Get(ctx, limit, filter); ok {
			return films, nil
		}
	}

	films, err := s.filmRepo.GetPopular(ctx, limit, filter)
	if err != nil {
		return nil, err
	}
	if s.popular != nil {
		s.popular.Set(ctx, limit, filter, films)
	}
	return films, nil
}

// GetCommonFilms returns the films both users like, most popular first.
// The two users do not have to be friends; the overlap is defined purely on
// the like sets.
func (s *FilmService) GetCommonFilms(ctx context.Context, userID, friendID uint) ([]models.Film, error) {
	if _, err := s.userRepo.GetByID(ctx, userID); err != nil {
		return nil, err
	}
	if _, err := s.userRepo.GetByID(ctx, friendID); err != nil {
		return nil, err
	}
	return s.filmRepo.GetCommonFilms(ctx, userID, friendID)
}

func (s *FilmService) invalidatePopular(ctx context.Context) {
	if s.popular != nil {
		s.popular.Invalidate(ctx)
	}
}
