package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"strings"
	"time"

	"gorm.io/gorm"

	"campushub/internal/auth"
	"campushub/internal/config"
	"campushub/internal/db"
	apperrors "campushub/internal/errors"
	"campushub/internal/repository"
	"campushub/internal/service"
)

// Fixture is the seed document: users with the posts and listings they own.
type Fixture struct {
	Users []SeedUser `json:"users"`
}

// SeedUser is one account plus its content.
type SeedUser struct {
	Username string         `json:"username"`
	Email    string         `json:"email"`
	Password string         `json:"password"`
	FullName string         `json:"full_name"`
	Bio      string         `json:"bio"`
	Posts    []SeedPost     `json:"posts"`
	Items    []SeedExchange `json:"items"`
}

// SeedPost is a post in the fixture.
type SeedPost struct {
	Title     string   `json:"title"`
	Content   string   `json:"content"`
	ImageURLs []string `json:"image_urls"`
}

// SeedExchange is an exchange listing in the fixture.
type SeedExchange struct {
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Category    string   `json:"category"`
	Condition   string   `json:"condition"`
	ImageURLs   []string `json:"image_urls"`
}

// Stats summarizes a seed run.
type Stats struct {
	Users   int
	Skipped int
	Posts   int
	Items   int
}

func main() {
	source := flag.String("source", "cmd/seed/testdata/fixture.json", "fixture file path or http(s) URL")
	flag.Parse()

	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stdout, nil)))
	slog.Info("starting seed", "source", *source)

	cfg, err := config.Load()
	if err != nil {
		fatal("load config", err)
	}

	gormDB, err := db.Open(cfg.DBDriver, cfg.DatabaseDSN)
	if err != nil {
		fatal("connect to database", err)
	}
	if err := db.Migrate(gormDB); err != nil {
		fatal("run migrations", err)
	}

	fixture, err := loadFixture(*source)
	if err != nil {
		fatal("load fixture", err)
	}
	slog.Info("fixture loaded", "users", len(fixture.Users))

	stats, err := newSeeder(gormDB, auth.NewPasswordHasher(cfg.BcryptCost)).Seed(context.Background(), fixture)
	if err != nil {
		fatal("seed", err)
	}

	slog.Info("seed completed",
		"users_created", stats.Users,
		"users_skipped", stats.Skipped,
		"posts_created", stats.Posts,
		"items_created", stats.Items,
	)
}

// loadFixture reads the fixture from a local file or an http(s) URL.
func loadFixture(source string) (*Fixture, error) {
	var r io.ReadCloser
	if strings.HasPrefix(source, "http://") || strings.HasPrefix(source, "https://") {
		client := &http.Client{Timeout: 30 * time.Second}
		resp, err := client.Get(source)
		if err != nil {
			return nil, fmt.Errorf("fetch %s: %w", source, err)
		}
		if resp.StatusCode != http.StatusOK {
			resp.Body.Close()
			return nil, fmt.Errorf("fetch %s: status code %d", source, resp.StatusCode)
		}
		r = resp.Body
	} else {
		f, err := os.Open(source)
		if err != nil {
			return nil, fmt.Errorf("open %s: %w", source, err)
		}
		r = f
	}
	defer r.Close()

	var fixture Fixture
	if err := json.NewDecoder(r).Decode(&fixture); err != nil {
		return nil, fmt.Errorf("parse fixture: %w", err)
	}
	return &fixture, nil
}

type seeder struct {
	users     repository.UserRepository
	accounts  service.UserService
	posts     service.PostService
	exchanges service.ExchangeService
}

func newSeeder(gormDB *gorm.DB, hasher *auth.PasswordHasher) *seeder {
	userRepo := repository.NewUserRepository(gormDB)
	return &seeder{
		users:     userRepo,
		accounts:  service.NewUserService(userRepo, hasher),
		posts:     service.NewPostService(repository.NewPostRepository(gormDB), repository.NewCommentRepository(gormDB)),
		exchanges: service.NewExchangeService(repository.NewExchangeItemRepository(gormDB)),
	}
}

// Seed registers every fixture user that does not exist yet, then creates
// their posts and listings. Existing usernames, and new usernames whose
// email is already registered, are skipped.
func (s *seeder) Seed(ctx context.Context, fixture *Fixture) (Stats, error) {
	var stats Stats
	for _, u := range fixture.Users {
		if _, err := s.users.FindByUsername(ctx, u.Username); err == nil {
			slog.Info("skipping existing user", "username", u.Username)
			stats.Skipped++
			continue
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			return stats, fmt.Errorf("check user %s: %w", u.Username, err)
		}

		user, err := s.accounts.Register(ctx, service.Registration{
			Username: u.Username,
			Email:    u.Email,
			Password: u.Password,
			FullName: u.FullName,
			Bio:      u.Bio,
		})
		if errors.Is(err, apperrors.ErrConflict) {
			slog.Warn("skipping conflicting user", "username", u.Username, "error", err)
			stats.Skipped++
			continue
		}
		if err != nil {
			return stats, fmt.Errorf("register %s: %w", u.Username, err)
		}
		stats.Users++

		for _, p := range u.Posts {
			if _, err := s.posts.CreatePost(ctx, user, service.NewPost{
				Title:     p.Title,
				Content:   p.Content,
				ImageURLs: strings.Join(p.ImageURLs, ","),
			}); err != nil {
				return stats, fmt.Errorf("create post %q: %w", p.Title, err)
			}
			stats.Posts++
		}

		for _, it := range u.Items {
			if _, err := s.exchanges.CreateItem(ctx, user, service.NewExchangeItem{
				Title:       it.Title,
				Description: it.Description,
				Category:    it.Category,
				Condition:   it.Condition,
				ImageURLs:   strings.Join(it.ImageURLs, ","),
			}); err != nil {
				return stats, fmt.Errorf("create item %q: %w", it.Title, err)
			}
			stats.Items++
		}
	}
	return stats, nil
}

func fatal(msg string, err error) {
	slog.Error(msg, "error", err)
	os.Exit(1)
}
