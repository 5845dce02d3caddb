package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"github.com/akorchagin/career-matcher/internal/job"
)

// job_key makes the (user, job) upsert work without a job catalog of record:
// the identity of a job is its title and company.
const schema = `
CREATE TABLE IF NOT EXISTS users (
	id         TEXT PRIMARY KEY,
	name       TEXT NOT NULL,
	email      TEXT NOT NULL UNIQUE,
	skills     JSONB NOT NULL DEFAULT '[]',
	created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
	updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
);

CREATE TABLE IF NOT EXISTS saved_jobs (
	id               TEXT PRIMARY KEY,
	user_id          TEXT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
	job_key          TEXT NOT NULL,
	job_data         JSONB NOT NULL,
	match_percentage INT NOT NULL DEFAULT 0,
	notes            TEXT NOT NULL DEFAULT '',
	saved_at         TIMESTAMPTZ NOT NULL DEFAULT NOW(),
	UNIQUE (user_id, job_key)
);
`

// PostgresStore backs the Store contract with a pgx connection pool.
type PostgresStore struct {
	pool   *pgxpool.Pool
	logger *zap.Logger
}

// NewPostgresStore connects, pings and ensures the schema exists.
func NewPostgresStore(ctx context.Context, databaseURL string, logger *zap.Logger) (*PostgresStore, error) {
	pool, err := pgxpool.New(ctx, databaseURL)
	if err != nil {
		return nil, fmt.Errorf("pgxpool.New: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("postgres ping failed: %w", err)
	}

	if _, err := pool.Exec(ctx, schema); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ensuring schema: %w", err)
	}

	return &PostgresStore{pool: pool, logger: logger}, nil
}

func (s *PostgresStore) CreateUser(ctx context.Context, name, email string, skills []string) (string, error) {
	id := uuid.NewString()
	skillsJSON, _ := json.Marshal(skills)

	_, err := s.pool.Exec(ctx,
		`INSERT INTO users (id, name, email, skills) VALUES ($1, $2, $3, $4)`,
		id, name, email, skillsJSON,
	)
	if err != nil {
		return "", fmt.Errorf("createUser: %w", err)
	}
	return id, nil
}

func (s *PostgresStore) UserByID(ctx context.Context, id string) (*User, error) {
	return s.scanUser(s.pool.QueryRow(ctx,
		`SELECT id, name, email, skills, created_at, updated_at FROM users WHERE id = $1`, id))
}

func (s *PostgresStore) UserByEmail(ctx context.Context, email string) (*User, error) {
	return s.scanUser(s.pool.QueryRow(ctx,
		`SELECT id, name, email, skills, created_at, updated_at FROM users WHERE lower(email) = lower($1)`, email))
}

func (s *PostgresStore) scanUser(row pgx.Row) (*User, error) {
	var u User
	var skillsJSON []byte
	err := row.Scan(&u.ID, &u.Name, &u.Email, &skillsJSON, &u.CreatedAt, &u.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("scanning user: %w", err)
	}

	if err := json.Unmarshal(skillsJSON, &u.Skills); err != nil {
		return nil, fmt.Errorf("decoding user skills: %w", err)
	}
	return &u, nil
}

func (s *PostgresStore) UpdateSkills(ctx context.Context, userID string, skills []string) error {
	skillsJSON, _ := json.Marshal(skills)

	tag, err := s.pool.Exec(ctx,
		`UPDATE users SET skills = $2, updated_at = NOW() WHERE id = $1`,
		userID, skillsJSON,
	)
	if err != nil {
		return fmt.Errorf("updateSkills: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *PostgresStore) SaveJob(ctx context.Context, userID string, j *job.Job, matchPct int) (string, error) {
	jobJSON, err := json.Marshal(j)
	if err != nil {
		return "", fmt.Errorf("encoding job: %w", err)
	}

	var id string
	err = s.pool.QueryRow(ctx,
		`INSERT INTO saved_jobs (id, user_id, job_key, job_data, match_percentage)
		 VALUES ($1, $2, $3, $4, $5)
		 ON CONFLICT (user_id, job_key) DO UPDATE
		   SET job_data = EXCLUDED.job_data,
		       match_percentage = EXCLUDED.match_percentage,
		       saved_at = NOW()
		 RETURNING id`,
		uuid.NewString(), userID, j.Title+"|"+j.Company, jobJSON, matchPct,
	).Scan(&id)
	if err != nil {
		return "", fmt.Errorf("saveJob: %w", err)
	}
	return id, nil
}

func (s *PostgresStore) SavedJobs(ctx context.Context, userID string) ([]*SavedJob, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT id, job_data, match_percentage, notes, saved_at
		 FROM saved_jobs WHERE user_id = $1 ORDER BY saved_at DESC`, userID)
	if err != nil {
		return nil, fmt.Errorf("savedJobs query: %w", err)
	}
	defer rows.Close()

	saved := make([]*SavedJob, 0)
	for rows.Next() {
		var sj SavedJob
		var jobJSON []byte
		if err := rows.Scan(&sj.ID, &jobJSON, &sj.MatchPercentage, &sj.Notes, &sj.SavedAt); err != nil {
			return nil, fmt.Errorf("savedJobs scan: %w", err)
		}
		if err := json.Unmarshal(jobJSON, &sj.Job); err != nil {
			return nil, fmt.Errorf("decoding saved job %s: %w", sj.ID, err)
		}
		saved = append(saved, &sj)
	}
	return saved, rows.Err()
}

func (s *PostgresStore) DeleteJob(ctx context.Context, userID, savedJobID string) (bool, error) {
	tag, err := s.pool.Exec(ctx,
		`DELETE FROM saved_jobs WHERE id = $1 AND user_id = $2`, savedJobID, userID)
	if err != nil {
		return false, fmt.Errorf("deleteJob: %w", err)
	}
	return tag.RowsAffected() > 0, nil
}

func (s *PostgresStore) Close() error {
	s.pool.Close()
	return nil
}
