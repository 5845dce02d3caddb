// Package store persists user profiles and saved jobs. Two backends exist, a
// per-user JSON file directory and postgres, selected at construction from
// configuration.
package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/akorchagin/career-matcher/internal/job"
)

// ErrNotFound is returned when a user or saved job does not exist.
var ErrNotFound = errors.New("not found")

// User is a candidate profile with a free-form skill list.
type User struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Skills    []string  `json:"skills"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// SavedJob is a job a user explicitly kept, with the match score it carried
// at save time.
type SavedJob struct {
	ID              string    `json:"saved_job_id"`
	Job             *job.Job  `json:"job"`
	MatchPercentage int       `json:"match_percentage"`
	Notes           string    `json:"notes"`
	SavedAt         time.Time `json:"saved_at"`
}

// Store is the persistence contract the rest of the program codes against.
// Saving the same job twice for a user updates the existing entry instead of
// duplicating it.
type Store interface {
	CreateUser(ctx context.Context, name, email string, skills []string) (string, error)
	UserByID(ctx context.Context, id string) (*User, error)
	UserByEmail(ctx context.Context, email string) (*User, error)
	UpdateSkills(ctx context.Context, userID string, skills []string) error

	SaveJob(ctx context.Context, userID string, j *job.Job, matchPct int) (string, error)
	SavedJobs(ctx context.Context, userID string) ([]*SavedJob, error)
	DeleteJob(ctx context.Context, userID, savedJobID string) (bool, error)

	Close() error
}

// Config selects and parameterizes a backend.
type Config struct {
	Backend     string `mapstructure:"backend"`
	Dir         string `mapstructure:"dir"`
	DatabaseURL string `mapstructure:"database-url"`
}

// New builds the store named by cfg.Backend. The default is the file backend.
func New(ctx context.Context, cfg Config, logger *zap.Logger) (Store, error) {
	switch cfg.Backend {
	case "", "file":
		dir := cfg.Dir
		if dir == "" {
			dir = "data/users"
		}
		return NewFileStore(dir)
	case "postgres":
		return NewPostgresStore(ctx, cfg.DatabaseURL, logger)
	default:
		return nil, fmt.Errorf("unknown store backend: %s", cfg.Backend)
	}
}
