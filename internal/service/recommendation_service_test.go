package service

import (
	"context"
	"errors"
	"testing"

	"cinegraph/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func likesFixture() map[uint]map[uint]struct{} {
	set := func(ids ...uint) map[uint]struct{} {
		m := make(map[uint]struct{}, len(ids))
		for _, id := range ids {
			m[id] = struct{}{}
		}
		return m
	}
	return map[uint]map[uint]struct{}{
		1: set(1, 2, 3),
		2: set(1, 2, 3, 4, 5),
		3: set(1),
	}
}

func TestRecommendationServiceComputeAll(t *testing.T) {
	stored := make(map[uint][]uint)
	recRepo := &recRepoStub{
		replaceForUserFn: func(_ context.Context, userID uint, filmIDs []uint) error {
			stored[userID] = filmIDs
			return nil
		},
	}
	likeRepo := noopLikeRepo()
	likeRepo.getUsersLikesMapFn = func(context.Context) (map[uint]map[uint]struct{}, error) {
		return likesFixture(), nil
	}

	svc := NewRecommendationService(likeRepo, recRepo, noopFilmRepo(), noopUserRepo())
	stats, err := svc.ComputeAll(context.Background(), 5)
	require.NoError(t, err)
	assert.Equal(t, 3, stats.UsersProcessed)
	assert.Equal(t, 0, stats.UsersFailed)

	// User 1's only richer neighbor is user 2; users never get films they
	// already like.
	assert.Equal(t, []uint{4, 5}, stored[1])
	// User 2 has the largest like set, so no neighbor qualifies.
	assert.Empty(t, stored[2])
	// User 3 draws from both richer neighbors.
	assert.Equal(t, []uint{2, 3, 4, 5}, stored[3])
}

func TestRecommendationServiceComputeAllLimitSlack(t *testing.T) {
	// Collection stops only after the candidate set exceeds the limit, so a
	// single rich neighbor can push the set one past it.
	likes := map[uint]map[uint]struct{}{
		1: {1: {}},
		2: {1: {}, 2: {}, 3: {}, 4: {}, 5: {}, 6: {}},
	}
	stored := make(map[uint][]uint)
	recRepo := &recRepoStub{
		replaceForUserFn: func(_ context.Context, userID uint, filmIDs []uint) error {
			stored[userID] = filmIDs
			return nil
		},
	}
	likeRepo := noopLikeRepo()
	likeRepo.getUsersLikesMapFn = func(context.Context) (map[uint]map[uint]struct{}, error) {
		return likes, nil
	}

	svc := NewRecommendationService(likeRepo, recRepo, noopFilmRepo(), noopUserRepo())
	_, err := svc.ComputeAll(context.Background(), 2)
	require.NoError(t, err)
	assert.Equal(t, []uint{2, 3, 4}, stored[1])
}

func TestRecommendationServiceComputeAllNoOverlapNoNeighbor(t *testing.T) {
	likes := map[uint]map[uint]struct{}{
		1: {1: {}},
		2: {2: {}, 3: {}},
	}
	stored := make(map[uint][]uint)
	recRepo := &recRepoStub{
		replaceForUserFn: func(_ context.Context, userID uint, filmIDs []uint) error {
			stored[userID] = filmIDs
			return nil
		},
	}
	likeRepo := noopLikeRepo()
	likeRepo.getUsersLikesMapFn = func(context.Context) (map[uint]map[uint]struct{}, error) {
		return likes, nil
	}

	svc := NewRecommendationService(likeRepo, recRepo, noopFilmRepo(), noopUserRepo())
	_, err := svc.ComputeAll(context.Background(), 5)
	require.NoError(t, err)
	assert.Empty(t, stored[1], "no overlap means no neighbor and no recommendations")
}

func TestRecommendationServiceComputeAllIsolatesFailures(t *testing.T) {
	stored := make(map[uint][]uint)
	recRepo := &recRepoStub{
		replaceForUserFn: func(_ context.Context, userID uint, filmIDs []uint) error {
			if userID == 1 {
				return models.NewInternalError(errors.New("disk full"))
			}
			stored[userID] = filmIDs
			return nil
		},
	}
	likeRepo := noopLikeRepo()
	likeRepo.getUsersLikesMapFn = func(context.Context) (map[uint]map[uint]struct{}, error) {
		return likesFixture(), nil
	}

	svc := NewRecommendationService(likeRepo, recRepo, noopFilmRepo(), noopUserRepo())
	stats, err := svc.ComputeAll(context.Background(), 5)
	require.NoError(t, err)
	assert.Equal(t, 2, stats.UsersProcessed)
	assert.Equal(t, 1, stats.UsersFailed)
	assert.Contains(t, stored, uint(3), "user after the failing one must still be processed")
}

func TestRecommendationServiceComputeAllInvalidLimit(t *testing.T) {
	svc := NewRecommendationService(noopLikeRepo(), &recRepoStub{}, noopFilmRepo(), noopUserRepo())
	_, err := svc.ComputeAll(context.Background(), 0)

	var appErr *models.AppError
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, "VALIDATION_ERROR", appErr.Code)
}

func TestRecommendationServiceGetForUserEmpty(t *testing.T) {
	recRepo := &recRepoStub{
		getFilmIDsForUserFn: func(context.Context, uint) ([]uint, error) { return nil, nil },
	}
	svc := NewRecommendationService(noopLikeRepo(), recRepo, noopFilmRepo(), noopUserRepo())
	films, err := svc.GetForUser(context.Background(), 7)
	require.NoError(t, err)
	assert.NotNil(t, films)
	assert.Empty(t, films)
}

func TestRecommendationServiceGetForUserUnknownUser(t *testing.T) {
	userRepo := noopUserRepo()
	userRepo.getByIDFn = func(_ context.Context, id uint) (*models.User, error) {
		return nil, models.NewNotFoundError("User", id)
	}
	svc := NewRecommendationService(noopLikeRepo(), &recRepoStub{}, noopFilmRepo(), userRepo)
	_, err := svc.GetForUser(context.Background(), 7)

	var appErr *models.AppError
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, "NOT_FOUND", appErr.Code)
}
