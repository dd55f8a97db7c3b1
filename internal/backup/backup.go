package backup

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	_ "modernc.org/sqlite"
)

const (
	// MaxBackups is the number of backups kept after rotation.
	MaxBackups = 14
	// BackupDirName is the directory created next to the storage file.
	BackupDirName = "backups"
	// BackupFilePrefix is the prefix for backup files.
	BackupFilePrefix = "studyloop-"
)

// Info describes one backup file on disk.
type Info struct {
	Path      string
	Timestamp time.Time
	Size      int64
}

// Manager backs up the session store. It works with both storage
// backends: SQLite databases are copied with VACUUM INTO, JSON files
// with a plain file copy. The backup keeps the source file's
// extension.
type Manager struct {
	storePath string
	backupDir string
}

func NewManager(storePath string) *Manager {
	return &Manager{
		storePath: storePath,
		backupDir: filepath.Join(filepath.Dir(storePath), BackupDirName),
	}
}

func (m *Manager) GetBackupDir() string {
	return m.backupDir
}

func (m *Manager) isSQLite() bool {
	return filepath.Ext(m.storePath) != ".json"
}

func (m *Manager) suffix() string {
	if ext := filepath.Ext(m.storePath); ext != "" {
		return ext
	}
	return ".db"
}

// CreateBackup copies the current store into the backup directory and
// rotates old backups.
func (m *Manager) CreateBackup() (string, error) {
	return m.createBackup(false)
}

func (m *Manager) createBackup(skipRotation bool) (string, error) {
	if err := os.MkdirAll(m.backupDir, 0700); err != nil {
		return "", fmt.Errorf("failed to create backup directory: %w", err)
	}

	if _, err := os.Stat(m.storePath); os.IsNotExist(err) {
		return "", fmt.Errorf("storage does not exist: %s", m.storePath)
	}

	backupPath, err := m.uniqueBackupPath()
	if err != nil {
		return "", err
	}

	if m.isSQLite() {
		err = m.backupDatabase(backupPath)
	} else {
		err = copyFile(m.storePath, backupPath)
	}
	if err != nil {
		return "", fmt.Errorf("failed to back up storage: %w", err)
	}

	if !skipRotation {
		if err := m.rotateBackups(); err != nil {
			fmt.Fprintf(os.Stderr, "Warning: failed to rotate old backups: %v\n", err)
		}
	}

	return backupPath, nil
}

// uniqueBackupPath picks a timestamped filename, falling back to
// second precision and then a counter when a name is taken.
func (m *Manager) uniqueBackupPath() (string, error) {
	for _, timestamp := range []string{
		time.Now().Format("20060102-1504"),
		time.Now().Format("20060102-150405"),
	} {
		path := filepath.Join(m.backupDir, BackupFilePrefix+timestamp+m.suffix())
		if _, err := os.Stat(path); os.IsNotExist(err) {
			return path, nil
		}
	}

	timestamp := time.Now().Format("20060102-150405")
	for counter := 1; counter <= 100; counter++ {
		name := fmt.Sprintf("%s%s-%d%s", BackupFilePrefix, timestamp, counter, m.suffix())
		path := filepath.Join(m.backupDir, name)
		if _, err := os.Stat(path); os.IsNotExist(err) {
			return path, nil
		}
	}
	return "", fmt.Errorf("failed to generate unique backup filename")
}

// backupDatabase copies a SQLite database with VACUUM INTO, which is
// safe against concurrent writers. Falls back to a file copy when the
// SQLite build doesn't support it.
func (m *Manager) backupDatabase(destPath string) error {
	srcDB, err := sql.Open("sqlite", m.storePath+"?mode=ro")
	if err != nil {
		return fmt.Errorf("failed to open source database: %w", err)
	}
	defer srcDB.Close()

	var count int
	if err := srcDB.QueryRow("SELECT COUNT(*) FROM sqlite_master").Scan(&count); err != nil {
		return fmt.Errorf("source database appears to be corrupted: %w", err)
	}

	if _, err := srcDB.Exec("VACUUM INTO ?", destPath); err != nil {
		return copyFile(m.storePath, destPath)
	}
	return nil
}

// ListBackups returns the available backups, newest first.
func (m *Manager) ListBackups() ([]Info, error) {
	if _, err := os.Stat(m.backupDir); os.IsNotExist(err) {
		return []Info{}, nil
	}

	entries, err := os.ReadDir(m.backupDir)
	if err != nil {
		return nil, fmt.Errorf("failed to read backup directory: %w", err)
	}

	var backups []Info
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		name := entry.Name()
		if !strings.HasPrefix(name, BackupFilePrefix) || !strings.HasSuffix(name, m.suffix()) {
			continue
		}

		timestamp, ok := parseBackupTimestamp(strings.TrimSuffix(strings.TrimPrefix(name, BackupFilePrefix), m.suffix()))
		if !ok {
			continue
		}

		path := filepath.Join(m.backupDir, name)
		info, err := os.Stat(path)
		if err != nil {
			continue
		}
		backups = append(backups, Info{Path: path, Timestamp: timestamp, Size: info.Size()})
	}

	sort.Slice(backups, func(i, j int) bool {
		return backups[i].Timestamp.After(backups[j].Timestamp)
	})
	return backups, nil
}

// parseBackupTimestamp handles the three filename variants:
// YYYYMMDD-HHMM, YYYYMMDD-HHMMSS, and either with a -N counter.
func parseBackupTimestamp(s string) (time.Time, bool) {
	parts := strings.Split(s, "-")
	if len(parts) > 2 {
		last := parts[len(parts)-1]
		if len(last) != 4 && len(last) != 6 {
			s = strings.Join(parts[:len(parts)-1], "-")
		}
	}

	for _, layout := range []string{"20060102-1504", "20060102-150405"} {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

func (m *Manager) rotateBackups() error {
	backups, err := m.ListBackups()
	if err != nil {
		return err
	}
	for i := MaxBackups; i < len(backups); i++ {
		if err := os.Remove(backups[i].Path); err != nil {
			return fmt.Errorf("failed to remove old backup %s: %w", backups[i].Path, err)
		}
	}
	return nil
}

// RestoreBackup replaces the current store with a backup, after first
// backing up the current store.
func (m *Manager) RestoreBackup(backupPath string) error {
	if _, err := os.Stat(backupPath); os.IsNotExist(err) {
		return fmt.Errorf("backup file does not exist: %s", backupPath)
	}

	if err := m.verifyBackup(backupPath); err != nil {
		return fmt.Errorf("backup file is corrupted or invalid: %w", err)
	}

	if _, err := os.Stat(m.storePath); err == nil {
		currentBackup, err := m.createBackup(true)
		if err != nil {
			return fmt.Errorf("failed to back up current storage before restore: %w", err)
		}
		fmt.Printf("Created backup of current storage: %s\n", filepath.Base(currentBackup))
	}

	// Copy then rename so a failed restore never leaves a truncated
	// store behind.
	tempPath := m.storePath + ".restore.tmp"
	if err := copyFile(backupPath, tempPath); err != nil {
		return fmt.Errorf("failed to copy backup file: %w", err)
	}
	if err := os.Rename(tempPath, m.storePath); err != nil {
		if removeErr := os.Remove(tempPath); removeErr != nil {
			fmt.Fprintf(os.Stderr, "Warning: failed to remove temporary file %s: %v\n", tempPath, removeErr)
		}
		return fmt.Errorf("failed to restore storage: %w", err)
	}

	return nil
}

func (m *Manager) verifyBackup(path string) error {
	if !m.isSQLite() {
		info, err := os.Stat(path)
		if err != nil {
			return err
		}
		if info.Size() == 0 {
			return fmt.Errorf("backup file is empty")
		}
		return nil
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return err
	}
	defer db.Close()

	var count int
	return db.QueryRow("SELECT COUNT(*) FROM sqlite_master").Scan(&count)
}

func copyFile(src, dst string) error {
	sourceFile, err := os.Open(src)
	if err != nil {
		return err
	}
	defer sourceFile.Close()

	destFile, err := os.Create(dst)
	if err != nil {
		return err
	}
	defer destFile.Close()

	if _, err := destFile.ReadFrom(sourceFile); err != nil {
		return err
	}
	return destFile.Sync()
}
