package storage

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/amescasi/studyloop/internal/models"
)

type Store struct {
	Version  int                   `json:"version"`
	Sessions []models.StudySession `json:"sessions"`
}

type JSONStore struct {
	path  string
	store *Store
}

func NewJSONStore(configPath string) *JSONStore {
	return &JSONStore{
		path: configPath,
	}
}

func (s *JSONStore) Init() error {
	// Create config directory if it doesn't exist
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0700); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	// Check if file already exists
	if _, err := os.Stat(s.path); err == nil {
		return fmt.Errorf("storage already initialized at %s", s.path)
	}

	s.store = &Store{
		Version:  1,
		Sessions: []models.StudySession{},
	}

	return s.save()
}

func (s *JSONStore) Load() error {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("storage not initialized, run 'studyloop init' first")
		}
		return fmt.Errorf("failed to read storage: %w", err)
	}

	s.store = &Store{}
	if err := json.Unmarshal(data, s.store); err != nil {
		return fmt.Errorf("failed to parse storage: %w", err)
	}

	if s.store.Sessions == nil {
		s.store.Sessions = []models.StudySession{}
	}

	return nil
}

func (s *JSONStore) Close() error {
	return nil
}

func (s *JSONStore) save() error {
	data, err := json.MarshalIndent(s.store, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to serialize storage: %w", err)
	}

	if err := os.WriteFile(s.path, data, 0600); err != nil {
		return fmt.Errorf("failed to write storage: %w", err)
	}

	return nil
}

func (s *JSONStore) AddSession(session models.StudySession) error {
	if s.store == nil {
		return fmt.Errorf("storage not loaded")
	}

	s.store.Sessions = append(s.store.Sessions, session)
	return s.save()
}

func (s *JSONStore) GetSession(id string) (models.StudySession, error) {
	if s.store == nil {
		return models.StudySession{}, fmt.Errorf("storage not loaded")
	}

	for _, session := range s.store.Sessions {
		if session.ID == id {
			return session, nil
		}
	}

	return models.StudySession{}, fmt.Errorf("session not found: %s", id)
}

// GetAllSessions returns sessions in insertion order, oldest first.
func (s *JSONStore) GetAllSessions() ([]models.StudySession, error) {
	if s.store == nil {
		return nil, fmt.Errorf("storage not loaded")
	}

	sessions := make([]models.StudySession, len(s.store.Sessions))
	copy(sessions, s.store.Sessions)
	return sessions, nil
}

// GetConfigPath returns the path to the underlying storage file.
//
// Concurrency note:
//   - JSONStore is not safe for concurrent use by multiple goroutines without
//     external synchronization.
//   - Running multiple studyloop processes that share the same storage path at
//     the same time is not supported and may lead to data loss or corruption.
func (s *JSONStore) GetConfigPath() string {
	return s.path
}
