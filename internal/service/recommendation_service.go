package service

import (
	"context"
	"log/slog"
	"sort"
	"time"

	"cinegraph/internal/models"
	"cinegraph/internal/observability"
	"cinegraph/internal/repository"
)

// RecommendationService computes per-user film recommendations from the like
// graph. The batch pass works on a single snapshot of all likes, so a run is
// internally consistent even while likes keep changing underneath it.
type RecommendationService struct {
	likeRepo repository.LikeRepository
	recRepo  repository.RecommendationRepository
	filmRepo repository.FilmRepository
	userRepo repository.UserRepository
}

// RunStats summarizes one batch computation pass.
type RunStats struct {
	UsersProcessed int
	UsersFailed    int
	Duration       time.Duration
}

// NewRecommendationService returns a new RecommendationService.
func NewRecommendationService(
	likeRepo repository.LikeRepository,
	recRepo repository.RecommendationRepository,
	filmRepo repository.FilmRepository,
	userRepo repository.UserRepository,
) *RecommendationService {
	return &RecommendationService{
		likeRepo: likeRepo,
		recRepo:  recRepo,
		filmRepo: filmRepo,
		userRepo: userRepo,
	}
}

// ComputeAll recomputes recommendations for every user that has at least one
// like, replacing each user's previous set. maxPerUser caps how many
// candidates are collected per user. A failure to store one user's set is
// logged and counted but does not abort the pass for the remaining users.
func (s *RecommendationService) ComputeAll(ctx context.Context, maxPerUser int) (RunStats, error) {
	if maxPerUser <= 0 {
		return RunStats{}, models.NewValidationError("Recommendation limit must be positive")
	}

	start := time.Now()
	likes, err := s.likeRepo.GetUsersLikesMap(ctx)
	if err != nil {
		return RunStats{}, err
	}

	userIDs := make([]uint, 0, len(likes))
	for id := range likes {
		userIDs = append(userIDs, id)
	}
	sort.Slice(userIDs, func(i, j int) bool { return userIDs[i] < userIDs[j] })

	var stats RunStats
	for _, userID := range userIDs {
		filmIDs := computeForUser(userID, userIDs, likes, maxPerUser)
		if err := s.recRepo.ReplaceForUser(ctx, userID, filmIDs); err != nil {
			stats.UsersFailed++
			observability.RecommendationUsersProcessed.WithLabelValues("error").Inc()
			observability.GlobalLogger.ErrorContext(ctx, "failed to store recommendations",
				slog.Uint64("user_id", uint64(userID)),
				slog.String("error", err.Error()),
			)
			continue
		}
		stats.UsersProcessed++
		observability.RecommendationUsersProcessed.WithLabelValues("success").Inc()
	}

	stats.Duration = time.Since(start)
	observability.RecommendationRunDuration.Observe(stats.Duration.Seconds())
	return stats, nil
}

// computeForUser collects candidate films for one user from its taste
// neighbors. A neighbor is any user sharing at least one like and holding
// strictly more likes overall. Neighbors are visited in ascending user-ID
// order and their unseen likes in ascending film-ID order; collection stops
// once the candidate set has grown past maxPerUser.
func computeForUser(userID uint, sortedUserIDs []uint, likes map[uint]map[uint]struct{}, maxPerUser int) []uint {
	own := likes[userID]
	if len(own) == 0 {
		return nil
	}

	candidates := make(map[uint]struct{})
	for _, otherID := range sortedUserIDs {
		if otherID == userID {
			continue
		}
		other := likes[otherID]
		if len(other) <= len(own) {
			continue
		}

		overlap := 0
		for filmID := range own {
			if _, ok := other[filmID]; ok {
				overlap++
			}
		}
		if overlap == 0 {
			continue
		}

		unseen := make([]uint, 0, len(other))
		for filmID := range other {
			if _, liked := own[filmID]; !liked {
				unseen = append(unseen, filmID)
			}
		}
		sort.Slice(unseen, func(i, j int) bool { return unseen[i] < unseen[j] })

		for _, filmID := range unseen {
			candidates[filmID] = struct{}{}
			if len(candidates) > maxPerUser {
				break
			}
		}
		if len(candidates) > maxPerUser {
			break
		}
	}

	filmIDs := make([]uint, 0, len(candidates))
	for filmID := range candidates {
		filmIDs = append(filmIDs, filmID)
	}
	sort.Slice(filmIDs, func(i, j int) bool { return filmIDs[i] < filmIDs[j] })
	return filmIDs
}

// GetForUser returns the user's stored recommendations as full film records,
// ordered by film ID ascending. A user with no stored set gets an empty
// slice, never an error.
func (s *RecommendationService) GetForUser(ctx context.Context, userID uint) ([]models.Film, error) {
	if _, err := s.userRepo.GetByID(ctx, userID); err != nil {
		return nil, err
	}

	filmIDs, err := s.recRepo.GetFilmIDsForUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	if len(filmIDs) == 0 {
		return []models.Film{}, nil
	}
	return s.filmRepo.GetByIDs(ctx, filmIDs)
}
