package storage

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"time"
)

// BackupManager handles timestamped backup creation for library files.
type BackupManager struct {
	backupDir string
}

// NewBackupManager creates a backup manager using the default backup
// directory under the user's data dir.
func NewBackupManager() (*BackupManager, error) {
	return NewBackupManagerAt(defaultBackupDir())
}

// NewBackupManagerAt creates a backup manager rooted at dir.
func NewBackupManagerAt(dir string) (*BackupManager, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create backup directory: %w", err)
	}

	return &BackupManager{
		backupDir: dir,
	}, nil
}

// CreateBackup writes a timestamped copy of the library before a save. The
// original path is stored inside the backup so it can be matched later.
func (bm *BackupManager) CreateBackup(lib *Library, originalPath string, sessionID string) error {
	filename := bm.generateBackupFilename(sessionID)

	absPath, err := filepath.Abs(originalPath)
	if err != nil {
		absPath = originalPath
	}
	lib.OriginalFilename = absPath

	backupPath := filepath.Join(bm.backupDir, filename)

	data, err := json.MarshalIndent(lib, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal backup JSON: %w", err)
	}

	if err := os.WriteFile(backupPath, data, 0o644); err != nil {
		return fmt.Errorf("failed to write backup file: %w", err)
	}

	return nil
}

// generateBackupFilename creates a filename in the format:
// YYYYMMDD_HHMMSS_<sessionID>.skb
func (bm *BackupManager) generateBackupFilename(sessionID string) string {
	timestamp := time.Now().Format("20060102_150405")
	return fmt.Sprintf("%s_%s.skb", timestamp, sessionID)
}

func defaultBackupDir() string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join("/tmp", ".scriptkit", "backups")
	}
	return filepath.Join(homeDir, ".local", "share", "scriptkit", "backups")
}

// BackupMetadata holds parsed information about a backup file.
type BackupMetadata struct {
	FilePath     string    // Full path to backup file
	Timestamp    time.Time // Parsed timestamp from filename
	SessionID    string    // 8-character session id
	OriginalFile string    // Original library path stored in the backup
}

// FindBackupsForFile returns all backups of a given library file, sorted
// chronologically. An empty path returns every backup.
func (bm *BackupManager) FindBackupsForFile(originalFilePath string) ([]BackupMetadata, error) {
	entries, err := os.ReadDir(bm.backupDir)
	if err != nil {
		return nil, fmt.Errorf("failed to read backup directory: %w", err)
	}

	var searchPath string
	if originalFilePath != "" {
		absPath, err := filepath.Abs(originalFilePath)
		if err != nil {
			searchPath = originalFilePath
		} else {
			searchPath = filepath.Clean(absPath)
		}
	}

	var backups []BackupMetadata
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".skb") {
			continue
		}

		metadata, err := parseBackupFilename(entry.Name(), filepath.Join(bm.backupDir, entry.Name()))
		if err != nil {
			continue // Skip files that can't be parsed
		}

		if searchPath != "" && filepath.Clean(metadata.OriginalFile) != searchPath {
			continue
		}

		backups = append(backups, metadata)
	}

	slices.SortFunc(backups, func(a, b BackupMetadata) int {
		return a.Timestamp.Compare(b.Timestamp)
	})
	return backups, nil
}

// Prune removes the oldest backups of a library file until at most keep
// remain. keep < 1 leaves everything in place.
func (bm *BackupManager) Prune(originalFilePath string, keep int) error {
	if keep < 1 {
		return nil
	}

	backups, err := bm.FindBackupsForFile(originalFilePath)
	if err != nil {
		return err
	}
	if len(backups) <= keep {
		return nil
	}

	for _, old := range backups[:len(backups)-keep] {
		if err := os.Remove(old.FilePath); err != nil {
			return fmt.Errorf("failed to remove old backup: %w", err)
		}
	}
	return nil
}

// parseBackupFilename extracts metadata from a backup filename.
// Expected format: YYYYMMDD_HHMMSS_<sessionID>.skb
func parseBackupFilename(filename string, fullPath string) (BackupMetadata, error) {
	// 15-char timestamp + "_" + 8-char session id + ".skb"
	if len(filename) < 28 {
		return BackupMetadata{}, fmt.Errorf("filename too short")
	}

	timestampStr := filename[:15]
	sessionID := filename[16 : 16+8]

	timestamp, err := time.Parse("20060102_150405", timestampStr)
	if err != nil {
		return BackupMetadata{}, fmt.Errorf("invalid timestamp format: %w", err)
	}

	// Read the backup file to recover the original library path.
	var originalFile string
	data, err := os.ReadFile(fullPath)
	if err == nil {
		var lib Library
		if err := json.Unmarshal(data, &lib); err == nil {
			originalFile = lib.OriginalFilename
		}
	}

	return BackupMetadata{
		FilePath:     fullPath,
		Timestamp:    timestamp,
		SessionID:    sessionID,
		OriginalFile: originalFile,
	}, nil
}
