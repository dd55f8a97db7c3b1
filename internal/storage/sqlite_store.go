package storage

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/amescasi/studyloop/internal/models"
	_ "modernc.org/sqlite"
)

const schemaVersion = 1

const schemaSQL = `
CREATE TABLE IF NOT EXISTS schema_info (
	version INTEGER NOT NULL
);

CREATE TABLE IF NOT EXISTS sessions (
	id TEXT PRIMARY KEY,
	topic TEXT NOT NULL,
	planned_minutes INTEGER NOT NULL,
	actual_minutes REAL NOT NULL,
	start_time TEXT NOT NULL,
	end_time TEXT NOT NULL,
	breaks TEXT NOT NULL DEFAULT '[]',
	total_break_time INTEGER NOT NULL DEFAULT 0,
	notes TEXT NOT NULL DEFAULT '[]',
	ai_summary TEXT NOT NULL DEFAULT '',
	topic_relevance_score REAL NOT NULL DEFAULT 0,
	focus_feedback TEXT NOT NULL DEFAULT '',
	completed INTEGER NOT NULL DEFAULT 0,
	topic_drift_detected INTEGER NOT NULL DEFAULT 0,
	drift_details TEXT NOT NULL DEFAULT '',
	overconfidence_detected INTEGER NOT NULL DEFAULT 0,
	overconfidence_details TEXT NOT NULL DEFAULT '',
	revision_tasks TEXT NOT NULL DEFAULT '[]',
	next_session_plan TEXT NOT NULL DEFAULT '',
	seq INTEGER
);

CREATE INDEX IF NOT EXISTS idx_sessions_start_time ON sessions (start_time);
`

type SQLiteStore struct {
	path string
	db   *sql.DB
}

func NewSQLiteStore(path string) *SQLiteStore {
	return &SQLiteStore{
		path: path,
	}
}

func (s *SQLiteStore) Init() error {
	// Create config directory if it doesn't exist
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0700); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	db, err := sql.Open("sqlite", s.path)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	s.db = db

	if err := s.ensureSchema(); err != nil {
		return fmt.Errorf("failed to initialize schema: %w", err)
	}

	return nil
}

func (s *SQLiteStore) Load() error {
	if s.db != nil {
		return nil
	}

	if _, err := os.Stat(s.path); os.IsNotExist(err) {
		return fmt.Errorf("storage not initialized, run 'studyloop init' first")
	}

	db, err := sql.Open("sqlite", s.path)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	s.db = db

	return s.validateSchemaVersion()
}

func (s *SQLiteStore) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

func (s *SQLiteStore) ensureSchema() error {
	if _, err := s.db.Exec(schemaSQL); err != nil {
		return err
	}

	var count int
	if err := s.db.QueryRow("SELECT COUNT(*) FROM schema_info").Scan(&count); err != nil {
		return err
	}
	if count == 0 {
		if _, err := s.db.Exec("INSERT INTO schema_info (version) VALUES (?)", schemaVersion); err != nil {
			return err
		}
	}
	return nil
}

func (s *SQLiteStore) validateSchemaVersion() error {
	var version int
	err := s.db.QueryRow("SELECT version FROM schema_info").Scan(&version)
	if err != nil {
		return fmt.Errorf("failed to read schema version: %w", err)
	}
	if version > schemaVersion {
		return fmt.Errorf("database schema version %d is newer than supported version %d", version, schemaVersion)
	}
	return nil
}

func (s *SQLiteStore) AddSession(session models.StudySession) error {
	if s.db == nil {
		return fmt.Errorf("storage not loaded")
	}

	breaksJSON, err := json.Marshal(session.Breaks)
	if err != nil {
		return fmt.Errorf("failed to marshal breaks: %w", err)
	}
	notesJSON, err := json.Marshal(session.Notes)
	if err != nil {
		return fmt.Errorf("failed to marshal notes: %w", err)
	}
	tasksJSON, err := json.Marshal(session.RevisionTasks)
	if err != nil {
		return fmt.Errorf("failed to marshal revision tasks: %w", err)
	}

	_, err = s.db.Exec(`
		INSERT OR REPLACE INTO sessions (
			id, topic, planned_minutes, actual_minutes, start_time, end_time,
			breaks, total_break_time, notes, ai_summary, topic_relevance_score,
			focus_feedback, completed, topic_drift_detected, drift_details,
			overconfidence_detected, overconfidence_details, revision_tasks,
			next_session_plan, seq
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?,
			(SELECT COALESCE(MAX(seq), 0) + 1 FROM sessions))`,
		session.ID, session.Topic, session.PlannedMinutes, session.ActualMinutes,
		session.StartTime, session.EndTime, string(breaksJSON), session.TotalBreakTime,
		string(notesJSON), session.AISummary, session.TopicRelevanceScore,
		session.FocusFeedback, session.Completed, session.TopicDriftDetected,
		session.DriftDetails, session.OverconfidenceDetected, session.OverconfidenceDetails,
		string(tasksJSON), session.NextSessionPlan,
	)
	return err
}

func (s *SQLiteStore) GetSession(id string) (models.StudySession, error) {
	if s.db == nil {
		return models.StudySession{}, fmt.Errorf("storage not loaded")
	}

	row := s.db.QueryRow(sessionSelect+" WHERE id = ?", id)
	session, err := scanSession(row)
	if err != nil {
		if err == sql.ErrNoRows {
			return models.StudySession{}, fmt.Errorf("session not found: %s", id)
		}
		return models.StudySession{}, err
	}
	return session, nil
}

// GetAllSessions returns sessions in insertion order, oldest first.
func (s *SQLiteStore) GetAllSessions() ([]models.StudySession, error) {
	if s.db == nil {
		return nil, fmt.Errorf("storage not loaded")
	}

	rows, err := s.db.Query(sessionSelect + " ORDER BY seq")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var sessions []models.StudySession
	for rows.Next() {
		session, err := scanSession(rows)
		if err != nil {
			return nil, err
		}
		sessions = append(sessions, session)
	}
	return sessions, rows.Err()
}

func (s *SQLiteStore) GetConfigPath() string {
	return s.path
}

const sessionSelect = `
	SELECT id, topic, planned_minutes, actual_minutes, start_time, end_time,
	       breaks, total_break_time, notes, ai_summary, topic_relevance_score,
	       focus_feedback, completed, topic_drift_detected, drift_details,
	       overconfidence_detected, overconfidence_details, revision_tasks,
	       next_session_plan
	FROM sessions`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanSession(row rowScanner) (models.StudySession, error) {
	var session models.StudySession
	var breaksJSON, notesJSON, tasksJSON string

	err := row.Scan(
		&session.ID, &session.Topic, &session.PlannedMinutes, &session.ActualMinutes,
		&session.StartTime, &session.EndTime, &breaksJSON, &session.TotalBreakTime,
		&notesJSON, &session.AISummary, &session.TopicRelevanceScore,
		&session.FocusFeedback, &session.Completed, &session.TopicDriftDetected,
		&session.DriftDetails, &session.OverconfidenceDetected, &session.OverconfidenceDetails,
		&tasksJSON, &session.NextSessionPlan,
	)
	if err != nil {
		return models.StudySession{}, err
	}

	if err := json.Unmarshal([]byte(breaksJSON), &session.Breaks); err != nil {
		return models.StudySession{}, fmt.Errorf("failed to parse breaks: %w", err)
	}
	if err := json.Unmarshal([]byte(notesJSON), &session.Notes); err != nil {
		return models.StudySession{}, fmt.Errorf("failed to parse notes: %w", err)
	}
	if err := json.Unmarshal([]byte(tasksJSON), &session.RevisionTasks); err != nil {
		return models.StudySession{}, fmt.Errorf("failed to parse revision tasks: %w", err)
	}

	return session, nil
}
