package storage

import "github.com/amescasi/studyloop/internal/models"

type Provider interface {
	// Lifecycle
	Init() error
	Load() error
	Close() error

	// Sessions
	AddSession(models.StudySession) error
	GetSession(id string) (models.StudySession, error)
	GetAllSessions() ([]models.StudySession, error)

	// Utils
	GetConfigPath() string
}
