// Package seed provides database seeding utilities for development and testing.
package seed

import (
	"fmt"
	"log"

	"cinegraph/internal/models"

	"gorm.io/gorm"
)

// Options configuration for the seeder
type Options struct {
	NumUsers    int
	NumFilms    int
	ShouldClean bool
}

// Seeder populates the database with generated demo data.
type Seeder struct {
	db      *gorm.DB
	factory *Factory
}

// NewSeeder creates a Seeder bound to the provided Gorm DB.
func NewSeeder(db *gorm.DB) *Seeder {
	return &Seeder{db: db, factory: NewFactory(db)}
}

// ClearAll removes all generated data. The built-in genre and MPA catalogs
// survive; Catalogs re-asserts them afterwards anyway.
func (s *Seeder) ClearAll() error {
	log.Println("Clearing existing data...")
	if s.db.Dialector.Name() == "postgres" {
		sql := `TRUNCATE TABLE review_votes, reviews, recommendations, events, likes, friendships, film_genres, films, users RESTART IDENTITY CASCADE;`
		return s.db.Exec(sql).Error
	}
	for _, table := range []string{
		"review_votes", "reviews", "recommendations", "events",
		"likes", "friendships", "film_genres", "films", "users",
	} {
		if err := s.db.Exec("DELETE FROM " + table).Error; err != nil {
			return err
		}
	}
	return nil
}

// Seed populates the database with test data.
func Seed(db *gorm.DB, opts Options) error {
	log.Printf("Starting database seeding with %d users and %d films...", opts.NumUsers, opts.NumFilms)

	s := NewSeeder(db)

	if opts.ShouldClean {
		if err := s.ClearAll(); err != nil {
			log.Println("Warning: could not clear all existing data, continuing anyway...")
		}
	}

	if err := Catalogs(db); err != nil {
		return fmt.Errorf("failed to seed catalogs: %w", err)
	}

	users, err := s.SeedSocialMesh(opts.NumUsers)
	if err != nil {
		return fmt.Errorf("failed to create users: %w", err)
	}
	log.Printf("%d users created", len(users))

	films, err := s.SeedEngagement(users, opts.NumFilms)
	if err != nil {
		return fmt.Errorf("failed to create films: %w", err)
	}
	log.Printf("%d films created", len(films))

	log.Println("Database seeding completed successfully!")
	return nil
}

// SeedSocialMesh creates users and wires a sparse friendship graph between
// them. Roughly every user befriends a handful of earlier users.
func (s *Seeder) SeedSocialMesh(count int) ([]models.User, error) {
	users := make([]models.User, 0, count)

	for i := 0; i < count; i++ {
		n := i
		user, err := s.factory.CreateUser(func(u *models.User) {
			// Suffix with the ordinal so generated logins never collide.
			u.Login = fmt.Sprintf("%s_%d", u.Login, n)
			u.Email = fmt.Sprintf("%d_%s", n, u.Email)
		})
		if err != nil {
			log.Printf("Failed to create user %d: %v", i, err)
			continue
		}
		users = append(users, *user)

		if i > 0 && i%100 == 0 {
			log.Printf("Created %d users...", i)
		}
	}

	r := s.factory.rand
	for i := range users {
		if i == 0 {
			continue
		}
		friendCount := r.Intn(4)
		for j := 0; j < friendCount; j++ {
			other := &users[r.Intn(i)]
			if err := s.factory.CreateFriendship(&users[i], other); err != nil {
				return nil, err
			}
		}
	}

	return users, nil
}

// SeedEngagement creates films plus likes, reviews, and review votes from
// the given users. Like volume is skewed so popularity rankings have shape.
func (s *Seeder) SeedEngagement(users []models.User, count int) ([]models.Film, error) {
	if len(users) == 0 {
		return nil, fmt.Errorf("no users to attribute engagement to")
	}

	r := s.factory.rand
	films := make([]models.Film, 0, count)

	for i := 0; i < count; i++ {
		film, err := s.factory.CreateFilm()
		if err != nil {
			return nil, err
		}
		films = append(films, *film)

		// A long-tail like distribution: a few hits, many sleepers.
		likeBudget := r.Intn(len(users) + 1)
		if r.Float32() < 0.8 {
			likeBudget = r.Intn(len(users)/4 + 1)
		}
		for j := 0; j < likeBudget; j++ {
			user := &users[r.Intn(len(users))]
			if err := s.factory.CreateLike(user, film); err != nil {
				return nil, err
			}
		}

		if r.Float32() < 0.3 {
			reviewer := &users[r.Intn(len(users))]
			review, err := s.factory.CreateReview(reviewer, film)
			if err != nil {
				return nil, err
			}
			voteCount := r.Intn(5)
			for j := 0; j < voteCount; j++ {
				voter := &users[r.Intn(len(users))]
				if voter.ID == reviewer.ID {
					continue
				}
				if err := s.factory.CreateReviewVote(voter, review, r.Float32() < 0.7); err != nil {
					return nil, err
				}
			}
		}

		if i > 0 && i%100 == 0 {
			log.Printf("Created %d films...", i)
		}
	}

	return films, nil
}
