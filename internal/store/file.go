package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/akorchagin/career-matcher/internal/job"
)

// FileStore keeps one JSON document per user under a data directory. Every
// mutation rewrites the whole document for that user.
type FileStore struct {
	dir string
	now func() time.Time
}

type userDoc struct {
	User
	SavedJobs []*SavedJob `json:"saved_jobs"`
}

func NewFileStore(dir string) (*FileStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating user data dir: %w", err)
	}
	return &FileStore{dir: dir, now: time.Now}, nil
}

func (s *FileStore) userPath(userID string) string {
	return filepath.Join(s.dir, userID+".json")
}

func (s *FileStore) readUser(userID string) (*userDoc, error) {
	data, err := os.ReadFile(s.userPath(userID))
	if errors.Is(err, fs.ErrNotExist) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("reading user %s: %w", userID, err)
	}

	var doc userDoc
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("decoding user %s: %w", userID, err)
	}
	return &doc, nil
}

func (s *FileStore) writeUser(doc *userDoc) error {
	doc.UpdatedAt = s.now()

	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding user %s: %w", doc.ID, err)
	}
	if err := os.WriteFile(s.userPath(doc.ID), data, 0o644); err != nil {
		return fmt.Errorf("writing user %s: %w", doc.ID, err)
	}
	return nil
}

func (s *FileStore) CreateUser(_ context.Context, name, email string, skills []string) (string, error) {
	now := s.now()
	doc := &userDoc{
		User: User{
			ID:        uuid.NewString(),
			Name:      name,
			Email:     email,
			Skills:    skills,
			CreatedAt: now,
			UpdatedAt: now,
		},
		SavedJobs: []*SavedJob{},
	}

	if err := s.writeUser(doc); err != nil {
		return "", err
	}
	return doc.ID, nil
}

func (s *FileStore) UserByID(_ context.Context, id string) (*User, error) {
	doc, err := s.readUser(id)
	if err != nil {
		return nil, err
	}
	return &doc.User, nil
}

// UserByEmail scans the data directory. Fine at this scale; the postgres
// backend is the answer when it is not.
func (s *FileStore) UserByEmail(_ context.Context, email string) (*User, error) {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return nil, fmt.Errorf("listing user data dir: %w", err)
	}

	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".json") {
			continue
		}

		doc, err := s.readUser(strings.TrimSuffix(entry.Name(), ".json"))
		if err != nil {
			continue
		}
		if strings.EqualFold(doc.Email, email) {
			return &doc.User, nil
		}
	}
	return nil, ErrNotFound
}

func (s *FileStore) UpdateSkills(_ context.Context, userID string, skills []string) error {
	doc, err := s.readUser(userID)
	if err != nil {
		return err
	}

	doc.Skills = skills
	return s.writeUser(doc)
}

// SaveJob upserts by (title, company): saving a job the user already has
// refreshes its score and timestamp instead of adding a duplicate.
func (s *FileStore) SaveJob(_ context.Context, userID string, j *job.Job, matchPct int) (string, error) {
	doc, err := s.readUser(userID)
	if err != nil {
		return "", err
	}

	for _, saved := range doc.SavedJobs {
		if saved.Job != nil && saved.Job.Title == j.Title && saved.Job.Company == j.Company {
			saved.Job = j
			saved.MatchPercentage = matchPct
			saved.SavedAt = s.now()
			return saved.ID, s.writeUser(doc)
		}
	}

	saved := &SavedJob{
		ID:              uuid.NewString(),
		Job:             j,
		MatchPercentage: matchPct,
		SavedAt:         s.now(),
	}
	doc.SavedJobs = append(doc.SavedJobs, saved)

	return saved.ID, s.writeUser(doc)
}

func (s *FileStore) SavedJobs(_ context.Context, userID string) ([]*SavedJob, error) {
	doc, err := s.readUser(userID)
	if err != nil {
		return nil, err
	}
	return doc.SavedJobs, nil
}

func (s *FileStore) DeleteJob(_ context.Context, userID, savedJobID string) (bool, error) {
	doc, err := s.readUser(userID)
	if err != nil {
		return false, err
	}

	kept := doc.SavedJobs[:0]
	for _, saved := range doc.SavedJobs {
		if saved.ID != savedJobID {
			kept = append(kept, saved)
		}
	}

	if len(kept) == len(doc.SavedJobs) {
		return false, nil
	}

	doc.SavedJobs = kept
	return true, s.writeUser(doc)
}

func (s *FileStore) Close() error { return nil }
