package service

import (
	"context"

	"cinegraph/internal/models"
	"cinegraph/internal/repository"
)

type userRepoStub struct {
	createFn   func(context.Context, *models.User) error
	getByIDFn  func(context.Context, uint) (*models.User, error)
	getByIDsFn func(context.Context, []uint) ([]models.User, error)
	updateFn   func(context.Context, *models.User) error
	deleteFn   func(context.Context, uint) error
	listFn     func(context.Context, int, int) ([]models.User, error)
}

func (s *userRepoStub) Create(ctx context.Context, user *models.User) error {
	return s.createFn(ctx, user)
}
func (s *userRepoStub) GetByID(ctx context.Context, id uint) (*models.User, error) {
	return s.getByIDFn(ctx, id)
}
func (s *userRepoStub) GetByIDs(ctx context.Context, ids []uint) ([]models.User, error) {
	return s.getByIDsFn(ctx, ids)
}
func (s *userRepoStub) Update(ctx context.Context, user *models.User) error {
	return s.updateFn(ctx, user)
}
func (s *userRepoStub) Delete(ctx context.Context, id uint) error {
	return s.deleteFn(ctx, id)
}
func (s *userRepoStub) List(ctx context.Context, limit, offset int) ([]models.User, error) {
	return s.listFn(ctx, limit, offset)
}

func noopUserRepo() *userRepoStub {
	return &userRepoStub{
		createFn:  func(context.Context, *models.User) error { return nil },
		getByIDFn: func(_ context.Context, id uint) (*models.User, error) { return &models.User{ID: id}, nil },
		getByIDsFn: func(_ context.Context, ids []uint) ([]models.User, error) {
			users := make([]models.User, 0, len(ids))
			for _, id := range ids {
				users = append(users, models.User{ID: id})
			}
			return users, nil
		},
		updateFn: func(context.Context, *models.User) error { return nil },
		deleteFn: func(context.Context, uint) error { return nil },
		listFn:   func(context.Context, int, int) ([]models.User, error) { return nil, nil },
	}
}

type filmRepoStub struct {
	createFn         func(context.Context, *models.Film) error
	getByIDFn        func(context.Context, uint) (*models.Film, error)
	getByIDsFn       func(context.Context, []uint) ([]models.Film, error)
	updateFn         func(context.Context, *models.Film) error
	deleteFn         func(context.Context, uint) error
	listFn           func(context.Context, int, int) ([]models.Film, error)
	getPopularFn     func(context.Context, int, repository.PopularFilter) ([]models.Film, error)
	getCommonFilmsFn func(context.Context, uint, uint) ([]models.Film, error)
}

func (s *filmRepoStub) Create(ctx context.Context, film *models.Film) error {
	return s.createFn(ctx, film)
}
func (s *filmRepoStub) GetByID(ctx context.Context, id uint) (*models.Film, error) {
	return s.getByIDFn(ctx, id)
}
func (s *filmRepoStub) GetByIDs(ctx context.Context, ids []uint) ([]models.Film, error) {
	return s.getByIDsFn(ctx, ids)
}
func (s *filmRepoStub) Update(ctx context.Context, film *models.Film) error {
	return s.updateFn(ctx, film)
}
func (s *filmRepoStub) Delete(ctx context.Context, id uint) error {
	return s.deleteFn(ctx, id)
}
func (s *filmRepoStub) List(ctx context.Context, limit, offset int) ([]models.Film, error) {
	return s.listFn(ctx, limit, offset)
}
func (s *filmRepoStub) GetPopular(ctx context.Context, limit int, filter repository.PopularFilter) ([]models.Film, error) {
	return s.getPopularFn(ctx, limit, filter)
}
func (s *filmRepoStub) GetCommonFilms(ctx context.Context, userID, friendID uint) ([]models.Film, error) {
	return s.getCommonFilmsFn(ctx, userID, friendID)
}

func noopFilmRepo() *filmRepoStub {
	return &filmRepoStub{
		createFn:  func(context.Context, *models.Film) error { return nil },
		getByIDFn: func(_ context.Context, id uint) (*models.Film, error) { return &models.Film{ID: id}, nil },
		getByIDsFn: func(_ context.Context, ids []uint) ([]models.Film, error) {
			films := make([]models.Film, 0, len(ids))
			for _, id := range ids {
				films = append(films, models.Film{ID: id})
			}
			return films, nil
		},
		updateFn: func(context.Context, *models.Film) error { return nil },
		deleteFn: func(context.Context, uint) error { return nil },
		listFn:   func(context.Context, int, int) ([]models.Film, error) { return nil, nil },
		getPopularFn: func(context.Context, int, repository.PopularFilter) ([]models.Film, error) {
			return nil, nil
		},
		getCommonFilmsFn: func(context.Context, uint, uint) ([]models.Film, error) { return nil, nil },
	}
}

type likeRepoStub struct {
	saveFn             func(context.Context, uint, uint) (bool, error)
	deleteFn           func(context.Context, uint, uint) (bool, error)
	getUsersLikesMapFn func(context.Context) (map[uint]map[uint]struct{}, error)
}

func (s *likeRepoStub) Save(ctx context.Context, userID, filmID uint) (bool, error) {
	return s.saveFn(ctx, userID, filmID)
}
func (s *likeRepoStub) Delete(ctx context.Context, userID, filmID uint) (bool, error) {
	return s.deleteFn(ctx, userID, filmID)
}
func (s *likeRepoStub) GetUsersLikesMap(ctx context.Context) (map[uint]map[uint]struct{}, error) {
	return s.getUsersLikesMapFn(ctx)
}

func noopLikeRepo() *likeRepoStub {
	return &likeRepoStub{
		saveFn:             func(context.Context, uint, uint) (bool, error) { return true, nil },
		deleteFn:           func(context.Context, uint, uint) (bool, error) { return true, nil },
		getUsersLikesMapFn: func(context.Context) (map[uint]map[uint]struct{}, error) { return nil, nil },
	}
}

type friendRepoStub struct {
	addEdgesFn     func(context.Context, uint, uint) (bool, error)
	removeEdgesFn  func(context.Context, uint, uint) (bool, error)
	getFriendIDsFn func(context.Context, uint) ([]uint, error)
}

func (s *friendRepoStub) AddEdges(ctx context.Context, userID, friendID uint) (bool, error) {
	return s.addEdgesFn(ctx, userID, friendID)
}
func (s *friendRepoStub) RemoveEdges(ctx context.Context, userID, friendID uint) (bool, error) {
	return s.removeEdgesFn(ctx, userID, friendID)
}
func (s *friendRepoStub) GetFriendIDs(ctx context.Context, userID uint) ([]uint, error) {
	return s.getFriendIDsFn(ctx, userID)
}

func noopFriendRepo() *friendRepoStub {
	return &friendRepoStub{
		addEdgesFn:     func(context.Context, uint, uint) (bool, error) { return true, nil },
		removeEdgesFn:  func(context.Context, uint, uint) (bool, error) { return true, nil },
		getFriendIDsFn: func(context.Context, uint) ([]uint, error) { return nil, nil },
	}
}

type reviewRepoStub struct {
	createFn                func(context.Context, *models.Review) error
	getByIDFn               func(context.Context, uint) (*models.Review, error)
	updateFn                func(context.Context, *models.Review) error
	deleteFn                func(context.Context, uint) error
	listByFilmFn            func(context.Context, uint) ([]models.Review, error)
	saveVoteFn              func(context.Context, uint, uint, bool) (bool, error)
	deleteVoteFn            func(context.Context, uint, uint) (bool, error)
	usefulnessByReviewIDsFn func(context.Context, []uint) (map[uint]int, error)
}

func (s *reviewRepoStub) Create(ctx context.Context, review *models.Review) error {
	return s.createFn(ctx, review)
}
func (s *reviewRepoStub) GetByID(ctx context.Context, id uint) (*models.Review, error) {
	return s.getByIDFn(ctx, id)
}
func (s *reviewRepoStub) Update(ctx context.Context, review *models.Review) error {
	return s.updateFn(ctx, review)
}
func (s *reviewRepoStub) Delete(ctx context.Context, id uint) error {
	return s.deleteFn(ctx, id)
}
func (s *reviewRepoStub) ListByFilm(ctx context.Context, filmID uint) ([]models.Review, error) {
	return s.listByFilmFn(ctx, filmID)
}
func (s *reviewRepoStub) SaveVote(ctx context.Context, reviewID, userID uint, helpful bool) (bool, error) {
	return s.saveVoteFn(ctx, reviewID, userID, helpful)
}
func (s *reviewRepoStub) DeleteVote(ctx context.Context, reviewID, userID uint) (bool, error) {
	return s.deleteVoteFn(ctx, reviewID, userID)
}
func (s *reviewRepoStub) UsefulnessByReviewIDs(ctx context.Context, ids []uint) (map[uint]int, error) {
	return s.usefulnessByReviewIDsFn(ctx, ids)
}

func noopReviewRepo() *reviewRepoStub {
	return &reviewRepoStub{
		createFn:  func(context.Context, *models.Review) error { return nil },
		getByIDFn: func(_ context.Context, id uint) (*models.Review, error) { return &models.Review{ID: id}, nil },
		updateFn:  func(context.Context, *models.Review) error { return nil },
		deleteFn:  func(context.Context, uint) error { return nil },
		listByFilmFn: func(context.Context, uint) ([]models.Review, error) {
			return nil, nil
		},
		saveVoteFn:   func(context.Context, uint, uint, bool) (bool, error) { return true, nil },
		deleteVoteFn: func(context.Context, uint, uint) (bool, error) { return true, nil },
		usefulnessByReviewIDsFn: func(context.Context, []uint) (map[uint]int, error) {
			return map[uint]int{}, nil
		},
	}
}

type eventRepoStub struct {
	appendFn       func(context.Context, *models.Event) error
	listByActorsFn func(context.Context, []uint) ([]models.Event, error)
}

func (s *eventRepoStub) Append(ctx context.Context, event *models.Event) error {
	return s.appendFn(ctx, event)
}
func (s *eventRepoStub) ListByActors(ctx context.Context, actorIDs []uint) ([]models.Event, error) {
	return s.listByActorsFn(ctx, actorIDs)
}

// recordingEventRepo collects appended events for assertions.
type recordingEventRepo struct {
	events []models.Event
}

func (s *recordingEventRepo) Append(_ context.Context, event *models.Event) error {
	s.events = append(s.events, *event)
	return nil
}
func (s *recordingEventRepo) ListByActors(context.Context, []uint) ([]models.Event, error) {
	return nil, nil
}

type recRepoStub struct {
	replaceForUserFn    func(context.Context, uint, []uint) error
	getFilmIDsForUserFn func(context.Context, uint) ([]uint, error)
}

func (s *recRepoStub) ReplaceForUser(ctx context.Context, userID uint, filmIDs []uint) error {
	return s.replaceForUserFn(ctx, userID, filmIDs)
}
func (s *recRepoStub) GetFilmIDsForUser(ctx context.Context, userID uint) ([]uint, error) {
	return s.getFilmIDsForUserFn(ctx, userID)
}

type popularCacheStub struct {
	getFn         func(context.Context, int, repository.PopularFilter) ([]models.Film, bool)
	setFn         func(context.Context, int, repository.PopularFilter, []models.Film)
	invalidations int
}

func (s *popularCacheStub) Get(ctx context.Context, limit int, filter repository.PopularFilter) ([]models.Film, bool) {
	if s.getFn != nil {
		return s.getFn(ctx, limit, filter)
	}
	return nil, false
}
func (s *popularCacheStub) Set(ctx context.Context, limit int, filter repository.PopularFilter, films []models.Film) {
	if s.setFn != nil {
		s.setFn(ctx, limit, filter, films)
	}
}
func (s *popularCacheStub) Invalidate(context.Context) {
	s.invalidations++
}
