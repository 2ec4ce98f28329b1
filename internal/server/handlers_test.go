package server

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"cinegraph/internal/config"
	"cinegraph/internal/models"
	"cinegraph/internal/repository"
	"cinegraph/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// newTestServer builds a Server over an isolated in-memory database and
// registers the full route table, without Prometheus or Redis.
func newTestServer(t *testing.T) (*Server, *fiber.App, *gorm.DB) {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(
		&models.User{}, &models.Film{}, &models.Genre{}, &models.MpaRating{},
		&models.Like{}, &models.Friendship{}, &models.Review{},
		&models.ReviewVote{}, &models.Event{}, &models.Recommendation{},
	))

	userRepo := repository.NewUserRepository(db)
	filmRepo := repository.NewFilmRepository(db)
	likeRepo := repository.NewLikeRepository(db)
	friendRepo := repository.NewFriendRepository(db)
	reviewRepo := repository.NewReviewRepository(db)
	eventRepo := repository.NewEventRepository(db)
	recRepo := repository.NewRecommendationRepository(db)
	catalogRepo := repository.NewCatalogRepository(db)

	s := &Server{
		config:         &config.Config{RecommendMaxPerUser: 10},
		db:             db,
		userService:    service.NewUserService(userRepo),
		filmService:    service.NewFilmService(filmRepo, userRepo, likeRepo, eventRepo, nil),
		friendService:  service.NewFriendService(friendRepo, userRepo, eventRepo),
		reviewService:  service.NewReviewService(reviewRepo, filmRepo, userRepo, eventRepo),
		recService:     service.NewRecommendationService(likeRepo, recRepo, filmRepo, userRepo),
		feedService:    service.NewFeedService(eventRepo, friendRepo, userRepo),
		catalogService: service.NewCatalogService(catalogRepo),
	}

	app := fiber.New()

	api := app.Group("/api")
	films := api.Group("/films")
	films.Post("/", s.CreateFilm)
	films.Get("/popular", s.GetPopularFilms)
	films.Get("/common", s.GetCommonFilms)
	films.Put("/:id/like/:userId", s.AddLike)
	films.Delete("/:id/like/:userId", s.RemoveLike)
	films.Get("/:id", s.GetFilm)

	users := api.Group("/users")
	users.Post("/", s.CreateUser)
	users.Put("/:id/friends/:friendId", s.AddFriend)
	users.Delete("/:id/friends/:friendId", s.RemoveFriend)
	users.Get("/:id/friends/common/:otherId", s.GetCommonFriends)
	users.Get("/:id/friends", s.GetFriends)
	users.Get("/:id/feed", s.GetFeed)
	users.Get("/:id/recommendations", s.GetRecommendations)
	users.Get("/:id", s.GetUser)

	reviews := api.Group("/reviews")
	reviews.Post("/", s.CreateReview)
	reviews.Put("/", s.UpdateReview)
	reviews.Get("/", s.GetReviewsByFilm)
	reviews.Put("/:id/like/:userId", s.AddReviewLike)
	reviews.Put("/:id/dislike/:userId", s.AddReviewDislike)
	reviews.Delete("/:id/like/:userId", s.RemoveReviewVote)
	reviews.Get("/:id", s.GetReview)

	api.Post("/recommendations/compute", s.ComputeRecommendations)

	return s, app, db
}

func postJSON(t *testing.T, app *fiber.App, path string, body any) *http.Response {
	t.Helper()
	payload, err := json.Marshal(body)
	require.NoError(t, err)
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	require.NoError(t, err)
	return resp
}

func do(t *testing.T, app *fiber.App, method, path string) *http.Response {
	t.Helper()
	req := httptest.NewRequest(method, path, nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	return resp
}

func decodeJSON[T any](t *testing.T, resp *http.Response) T {
	t.Helper()
	defer func() { _ = resp.Body.Close() }()
	var v T
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&v))
	return v
}

func createTestUser(t *testing.T, app *fiber.App, login string) models.User {
	t.Helper()
	resp := postJSON(t, app, "/api/users", map[string]any{
		"email": login + "@example.com",
		"login": login,
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	return decodeJSON[models.User](t, resp)
}

func createTestFilm(t *testing.T, app *fiber.App, name string) models.Film {
	t.Helper()
	resp := postJSON(t, app, "/api/films", map[string]any{
		"name":     name,
		"duration": 120,
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	return decodeJSON[models.Film](t, resp)
}

func TestCreateUserValidation(t *testing.T) {
	_, app, _ := newTestServer(t)

	resp := postJSON(t, app, "/api/users", map[string]any{
		"email": "not-an-email",
		"login": "someone",
	})
	defer func() { _ = resp.Body.Close() }()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestCreateUserNameFallback(t *testing.T) {
	_, app, _ := newTestServer(t)

	user := createTestUser(t, app, "cinephile")
	assert.Equal(t, "cinephile", user.Name)
}

func TestLikeAndPopularFlow(t *testing.T) {
	_, app, _ := newTestServer(t)

	u1 := createTestUser(t, app, "alice")
	u2 := createTestUser(t, app, "bob")
	f1 := createTestFilm(t, app, "Solaris")
	f2 := createTestFilm(t, app, "Stalker")

	// f2 gets two likes, f1 one.
	for _, pair := range [][2]uint{{f2.ID, u1.ID}, {f2.ID, u2.ID}, {f1.ID, u1.ID}} {
		resp := do(t, app, http.MethodPut, fmt.Sprintf("/api/films/%d/like/%d", pair[0], pair[1]))
		require.Equal(t, http.StatusOK, resp.StatusCode)
		_ = resp.Body.Close()
	}

	// Repeating a like is a no-op, not an error.
	resp := do(t, app, http.MethodPut, fmt.Sprintf("/api/films/%d/like/%d", f2.ID, u1.ID))
	require.Equal(t, http.StatusOK, resp.StatusCode)
	_ = resp.Body.Close()

	films := decodeJSON[[]models.Film](t, do(t, app, http.MethodGet, "/api/films/popular?count=10"))
	require.Len(t, films, 2)
	assert.Equal(t, f2.ID, films[0].ID)
	assert.Equal(t, f1.ID, films[1].ID)
}

func TestLikeUnknownFilmIs404(t *testing.T) {
	_, app, _ := newTestServer(t)
	u := createTestUser(t, app, "alice")

	resp := do(t, app, http.MethodPut, fmt.Sprintf("/api/films/999/like/%d", u.ID))
	defer func() { _ = resp.Body.Close() }()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestCommonFilmsWithoutFriendship(t *testing.T) {
	_, app, _ := newTestServer(t)

	u1 := createTestUser(t, app, "alice")
	u2 := createTestUser(t, app, "bob")
	f1 := createTestFilm(t, app, "Solaris")
	f2 := createTestFilm(t, app, "Stalker")

	for _, pair := range [][2]uint{{f1.ID, u1.ID}, {f2.ID, u1.ID}, {f2.ID, u2.ID}} {
		resp := do(t, app, http.MethodPut, fmt.Sprintf("/api/films/%d/like/%d", pair[0], pair[1]))
		require.Equal(t, http.StatusOK, resp.StatusCode)
		_ = resp.Body.Close()
	}

	// No friendship was created; the overlap is defined on likes alone.
	films := decodeJSON[[]models.Film](t, do(t, app, http.MethodGet,
		fmt.Sprintf("/api/films/common?userId=%d&friendId=%d", u1.ID, u2.ID)))
	require.Len(t, films, 1)
	assert.Equal(t, f2.ID, films[0].ID)
}

func TestFriendshipSymmetry(t *testing.T) {
	_, app, _ := newTestServer(t)

	u1 := createTestUser(t, app, "alice")
	u2 := createTestUser(t, app, "bob")

	resp := do(t, app, http.MethodPut, fmt.Sprintf("/api/users/%d/friends/%d", u1.ID, u2.ID))
	require.Equal(t, http.StatusOK, resp.StatusCode)
	_ = resp.Body.Close()

	// Both directions must be visible immediately.
	friendsOfU1 := decodeJSON[[]models.User](t, do(t, app, http.MethodGet,
		fmt.Sprintf("/api/users/%d/friends", u1.ID)))
	friendsOfU2 := decodeJSON[[]models.User](t, do(t, app, http.MethodGet,
		fmt.Sprintf("/api/users/%d/friends", u2.ID)))
	require.Len(t, friendsOfU1, 1)
	require.Len(t, friendsOfU2, 1)
	assert.Equal(t, u2.ID, friendsOfU1[0].ID)
	assert.Equal(t, u1.ID, friendsOfU2[0].ID)

	// Removing from either side dissolves both edges.
	resp = do(t, app, http.MethodDelete, fmt.Sprintf("/api/users/%d/friends/%d", u2.ID, u1.ID))
	require.Equal(t, http.StatusOK, resp.StatusCode)
	_ = resp.Body.Close()

	friendsOfU1 = decodeJSON[[]models.User](t, do(t, app, http.MethodGet,
		fmt.Sprintf("/api/users/%d/friends", u1.ID)))
	assert.Empty(t, friendsOfU1)
}

func TestAddFriendSelfIs400(t *testing.T) {
	_, app, _ := newTestServer(t)
	u := createTestUser(t, app, "alice")

	resp := do(t, app, http.MethodPut, fmt.Sprintf("/api/users/%d/friends/%d", u.ID, u.ID))
	defer func() { _ = resp.Body.Close() }()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestFeedShowsFriendActivity(t *testing.T) {
	_, app, _ := newTestServer(t)

	u1 := createTestUser(t, app, "alice")
	u2 := createTestUser(t, app, "bob")
	film := createTestFilm(t, app, "Solaris")

	resp := do(t, app, http.MethodPut, fmt.Sprintf("/api/users/%d/friends/%d", u1.ID, u2.ID))
	require.Equal(t, http.StatusOK, resp.StatusCode)
	_ = resp.Body.Close()

	resp = do(t, app, http.MethodPut, fmt.Sprintf("/api/films/%d/like/%d", film.ID, u2.ID))
	require.Equal(t, http.StatusOK, resp.StatusCode)
	_ = resp.Body.Close()

	feed := decodeJSON[[]models.Event](t, do(t, app, http.MethodGet,
		fmt.Sprintf("/api/users/%d/feed", u1.ID)))
	require.NotEmpty(t, feed)

	sawLike := false
	for _, e := range feed {
		assert.NotEqual(t, u1.ID, e.ActorID, "own events must not appear in the feed")
		if e.Type == models.EventTypeLike && e.EntityID == film.ID {
			sawLike = true
		}
	}
	assert.True(t, sawLike, "friend's like should appear in the feed")
}

func TestReviewVotesFlow(t *testing.T) {
	_, app, _ := newTestServer(t)

	author := createTestUser(t, app, "author")
	v1 := createTestUser(t, app, "voter1")
	v2 := createTestUser(t, app, "voter2")
	film := createTestFilm(t, app, "Solaris")

	resp := postJSON(t, app, "/api/reviews", map[string]any{
		"film_id":     film.ID,
		"user_id":     author.ID,
		"content":     "Slow and hypnotic.",
		"is_positive": true,
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	review := decodeJSON[models.Review](t, resp)

	// Two helpful votes and one unhelpful net to one.
	for _, vote := range []struct {
		userID uint
		kind   string
	}{{v1.ID, "like"}, {v2.ID, "like"}, {author.ID, "dislike"}} {
		r := do(t, app, http.MethodPut,
			fmt.Sprintf("/api/reviews/%d/%s/%d", review.ID, vote.kind, vote.userID))
		require.Equal(t, http.StatusOK, r.StatusCode)
		_ = r.Body.Close()
	}

	fetched := decodeJSON[models.Review](t, do(t, app, http.MethodGet,
		fmt.Sprintf("/api/reviews/%d", review.ID)))
	assert.Equal(t, 1, fetched.Usefulness)

	// Withdrawing one helpful vote drops the net to zero.
	r := do(t, app, http.MethodDelete,
		fmt.Sprintf("/api/reviews/%d/like/%d", review.ID, v1.ID))
	require.Equal(t, http.StatusOK, r.StatusCode)
	_ = r.Body.Close()

	fetched = decodeJSON[models.Review](t, do(t, app, http.MethodGet,
		fmt.Sprintf("/api/reviews/%d", review.ID)))
	assert.Equal(t, 0, fetched.Usefulness)
}

func TestRepeatedReviewVoteDoesNotPolluteFeed(t *testing.T) {
	_, app, _ := newTestServer(t)

	reader := createTestUser(t, app, "reader")
	voter := createTestUser(t, app, "voter")
	author := createTestUser(t, app, "author")
	film := createTestFilm(t, app, "Stalker")

	resp := do(t, app, http.MethodPut,
		fmt.Sprintf("/api/users/%d/friends/%d", reader.ID, voter.ID))
	require.Equal(t, http.StatusOK, resp.StatusCode)
	_ = resp.Body.Close()

	resp = postJSON(t, app, "/api/reviews", map[string]any{
		"film_id":     film.ID,
		"user_id":     author.ID,
		"content":     "Bleak.",
		"is_positive": true,
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	review := decodeJSON[models.Review](t, resp)

	// The same helpful vote submitted twice must reach the feed once.
	for i := 0; i < 2; i++ {
		r := do(t, app, http.MethodPut,
			fmt.Sprintf("/api/reviews/%d/like/%d", review.ID, voter.ID))
		require.Equal(t, http.StatusOK, r.StatusCode)
		_ = r.Body.Close()
	}

	feed := decodeJSON[[]models.Event](t, do(t, app, http.MethodGet,
		fmt.Sprintf("/api/users/%d/feed", reader.ID)))
	require.Len(t, feed, 1)
	assert.Equal(t, models.EventTypeReview, feed[0].Type)
	assert.Equal(t, models.EventOperationAdd, feed[0].Operation)
	assert.Equal(t, voter.ID, feed[0].ActorID)
}

func TestRecommendationComputeAndRead(t *testing.T) {
	_, app, _ := newTestServer(t)

	u1 := createTestUser(t, app, "alice")
	u2 := createTestUser(t, app, "bob")
	f1 := createTestFilm(t, app, "Solaris")
	f2 := createTestFilm(t, app, "Stalker")
	f3 := createTestFilm(t, app, "Mirror")

	for _, pair := range [][2]uint{{f1.ID, u1.ID}, {f1.ID, u2.ID}, {f2.ID, u2.ID}, {f3.ID, u2.ID}} {
		resp := do(t, app, http.MethodPut, fmt.Sprintf("/api/films/%d/like/%d", pair[0], pair[1]))
		require.Equal(t, http.StatusOK, resp.StatusCode)
		_ = resp.Body.Close()
	}

	resp := do(t, app, http.MethodPost, "/api/recommendations/compute")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	_ = resp.Body.Close()

	// u2's unseen likes become u1's recommendations; u2 has no richer neighbor.
	recs := decodeJSON[[]models.Film](t, do(t, app, http.MethodGet,
		fmt.Sprintf("/api/users/%d/recommendations", u1.ID)))
	require.Len(t, recs, 2)
	assert.Equal(t, f2.ID, recs[0].ID)
	assert.Equal(t, f3.ID, recs[1].ID)

	empty := decodeJSON[[]models.Film](t, do(t, app, http.MethodGet,
		fmt.Sprintf("/api/users/%d/recommendations", u2.ID)))
	assert.Empty(t, empty)
}

func TestInvalidIDParamIs400(t *testing.T) {
	_, app, _ := newTestServer(t)

	resp := do(t, app, http.MethodGet, "/api/films/abc")
	defer func() { _ = resp.Body.Close() }()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}
