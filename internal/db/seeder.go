package db

import (
	"context"
	_ "embed"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"golang.org/x/crypto/bcrypt"
	"gopkg.in/yaml.v3"

	"github.com/PauloHFS/blogicum/internal/logging"
)

//go:embed fixtures/seed.yaml
var DefaultFixtures []byte

type Fixtures struct {
	Locations []struct {
		Name string `yaml:"name"`
	} `yaml:"locations"`
	Categories []struct {
		Title       string `yaml:"title"`
		Slug        string `yaml:"slug"`
		Description string `yaml:"description"`
		IsPublished bool   `yaml:"is_published"`
	} `yaml:"categories"`
	Users []struct {
		Username  string `yaml:"username"`
		Email     string `yaml:"email"`
		FirstName string `yaml:"first_name"`
		LastName  string `yaml:"last_name"`
		Password  string `yaml:"password"`
	} `yaml:"users"`
	Posts []struct {
		Title       string    `yaml:"title"`
		Text        string    `yaml:"text"`
		Author      string    `yaml:"author"`
		Category    string    `yaml:"category"`
		Location    string    `yaml:"location"`
		PubDate     time.Time `yaml:"pub_date"`
		IsPublished bool      `yaml:"is_published"`
	} `yaml:"posts"`
}

func ParseFixtures(data []byte) (Fixtures, error) {
	var f Fixtures
	if err := yaml.Unmarshal(data, &f); err != nil {
		return Fixtures{}, fmt.Errorf("invalid fixtures: %w", err)
	}
	return f, nil
}

// Seed carrega locais, categorias, usuários e posts de exemplo. Pode rodar
// mais de uma vez: categorias são atualizadas pelo slug, locais e usuários
// existentes são reaproveitados e posts só entram para usuários recém-criados.
func Seed(ctx context.Context, q *Queries, data []byte) error {
	f, err := ParseFixtures(data)
	if err != nil {
		return err
	}

	locations := make(map[string]int64, len(f.Locations))
	for _, l := range f.Locations {
		loc, err := q.GetLocationByName(ctx, l.Name)
		if errors.Is(err, ErrNotFound) {
			loc, err = q.CreateLocation(ctx, l.Name)
		}
		if err != nil {
			return fmt.Errorf("failed to seed location: %w", err)
		}
		locations[l.Name] = loc.ID
	}

	categories := make(map[string]int64, len(f.Categories))
	for _, c := range f.Categories {
		cat, err := q.UpsertCategory(ctx, UpsertCategoryParams{
			Title:       c.Title,
			Description: c.Description,
			Slug:        c.Slug,
			IsPublished: c.IsPublished,
		})
		if err != nil {
			return fmt.Errorf("failed to seed category: %w", err)
		}
		categories[c.Slug] = cat.ID
	}

	created := make(map[string]int64, len(f.Users))
	for _, u := range f.Users {
		hash, err := bcrypt.GenerateFromPassword([]byte(u.Password), bcrypt.DefaultCost)
		if err != nil {
			return fmt.Errorf("failed to hash seed password: %w", err)
		}
		user, err := q.CreateUser(ctx, CreateUserParams{
			Username:     u.Username,
			Email:        u.Email,
			FirstName:    u.FirstName,
			LastName:     u.LastName,
			PasswordHash: string(hash),
		})
		if errors.Is(err, ErrConflict) {
			continue
		}
		if err != nil {
			return fmt.Errorf("failed to seed user: %w", err)
		}
		created[u.Username] = user.ID
	}

	var posts int
	for _, p := range f.Posts {
		authorID, ok := created[p.Author]
		if !ok {
			continue
		}
		if _, err := q.CreatePost(ctx, CreatePostParams{
			Title:       p.Title,
			Text:        p.Text,
			PubDate:     p.PubDate,
			AuthorID:    authorID,
			LocationID:  locations[p.Location],
			CategoryID:  categories[p.Category],
			IsPublished: p.IsPublished,
		}); err != nil {
			return fmt.Errorf("failed to seed post: %w", err)
		}
		posts++
	}

	logging.Get().Info("database seeded successfully",
		slog.Int("locations", len(locations)),
		slog.Int("categories", len(categories)),
		slog.Int("users", len(created)),
		slog.Int("posts", posts),
	)
	return nil
}
