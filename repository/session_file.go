package repository

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"

	"storefront-dashboard/models"
)

// FileSessionRepository stores the session as a JSON snapshot in the data
// directory, one profile per directory.
type FileSessionRepository struct {
	path string
}

func NewFileSessionRepository(dataDir string) *FileSessionRepository {
	return &FileSessionRepository{path: filepath.Join(dataDir, "session.json")}
}

func (r *FileSessionRepository) Save(_ context.Context, session *models.Session) error {
	if err := os.MkdirAll(filepath.Dir(r.path), 0o700); err != nil {
		return err
	}
	data, err := json.Marshal(session)
	if err != nil {
		return err
	}
	return os.WriteFile(r.path, data, 0o600)
}

func (r *FileSessionRepository) Load(_ context.Context) (*models.Session, error) {
	data, err := os.ReadFile(r.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}

	var session models.Session
	if err := json.Unmarshal(data, &session); err != nil {
		// Malformed snapshot reads as "no session".
		return nil, nil
	}
	if session.Token == "" {
		return nil, nil
	}
	return &session, nil
}

func (r *FileSessionRepository) Clear(_ context.Context) error {
	if err := os.Remove(r.path); err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}
