package storage

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/breeze-rmm/scriptkit/internal/script"
)

func TestBackupManagerCreateBackup(t *testing.T) {
	bm, err := NewBackupManagerAt(filepath.Join(t.TempDir(), "backups"))
	if err != nil {
		t.Fatalf("Failed to create backup manager: %v", err)
	}

	lib := NewLibrary()
	lib.Scripts = append(lib.Scripts, script.NewScript("restart-agent"))

	originalPath := filepath.Join(t.TempDir(), "library.json")
	sessionID := "test1234"
	if err := bm.CreateBackup(lib, originalPath, sessionID); err != nil {
		t.Fatalf("Failed to create backup: %v", err)
	}

	files, err := os.ReadDir(bm.backupDir)
	if err != nil {
		t.Fatalf("Failed to read backup directory: %v", err)
	}
	if len(files) != 1 {
		t.Fatalf("Expected 1 backup file, got %d", len(files))
	}

	data, err := os.ReadFile(filepath.Join(bm.backupDir, files[0].Name()))
	if err != nil {
		t.Fatalf("Failed to read backup file: %v", err)
	}

	var backupLib Library
	if err := json.Unmarshal(data, &backupLib); err != nil {
		t.Fatalf("Failed to unmarshal backup: %v", err)
	}

	if backupLib.OriginalFilename != originalPath {
		t.Errorf("Expected original filename %q, got %q", originalPath, backupLib.OriginalFilename)
	}
	if len(backupLib.Scripts) != 1 || backupLib.Scripts[0].Name != "restart-agent" {
		t.Errorf("Backup did not preserve scripts")
	}
}

func TestBackupFilenameFormat(t *testing.T) {
	bm, _ := NewBackupManagerAt(filepath.Join(t.TempDir(), "backups"))

	filename := bm.generateBackupFilename("abc12345")

	expectedLen := len("20251103_150405_abc12345.skb")
	if len(filename) != expectedLen {
		t.Fatalf("Filename format incorrect: expected length %d, got %d: %s", expectedLen, len(filename), filename)
	}
	if filepath.Ext(filename) != ".skb" {
		t.Errorf("Expected .skb extension, got %s", filename)
	}
}

func TestFindBackupsForFile(t *testing.T) {
	bm, err := NewBackupManagerAt(filepath.Join(t.TempDir(), "backups"))
	if err != nil {
		t.Fatal(err)
	}

	libPathA := filepath.Join(t.TempDir(), "a.json")
	libPathB := filepath.Join(t.TempDir(), "b.json")

	if err := bm.CreateBackup(NewLibrary(), libPathA, "aaaa1111"); err != nil {
		t.Fatal(err)
	}
	if err := bm.CreateBackup(NewLibrary(), libPathA, "aaaa2222"); err != nil {
		t.Fatal(err)
	}
	if err := bm.CreateBackup(NewLibrary(), libPathB, "bbbb1111"); err != nil {
		t.Fatal(err)
	}

	backups, err := bm.FindBackupsForFile(libPathA)
	if err != nil {
		t.Fatalf("FindBackupsForFile failed: %v", err)
	}
	if len(backups) != 2 {
		t.Fatalf("Expected 2 backups for a.json, got %d", len(backups))
	}
	for _, b := range backups {
		if b.OriginalFile != libPathA {
			t.Errorf("Expected original file %q, got %q", libPathA, b.OriginalFile)
		}
	}

	all, err := bm.FindBackupsForFile("")
	if err != nil {
		t.Fatal(err)
	}
	if len(all) != 3 {
		t.Errorf("Expected 3 backups in total, got %d", len(all))
	}
}

func TestParseBackupFilename(t *testing.T) {
	meta, err := parseBackupFilename("20250115_093000_abcd1234.skb", "/nonexistent/path")
	if err != nil {
		t.Fatalf("Failed to parse valid filename: %v", err)
	}
	if meta.SessionID != "abcd1234" {
		t.Errorf("Expected session id 'abcd1234', got %q", meta.SessionID)
	}
	if meta.Timestamp.Hour() != 9 || meta.Timestamp.Minute() != 30 {
		t.Errorf("Timestamp parsed incorrectly: %v", meta.Timestamp)
	}

	if _, err := parseBackupFilename("short.skb", ""); err == nil {
		t.Errorf("Expected error for malformed filename")
	}

	// Long enough for the old too-short check but not for the session id slice.
	if _, err := parseBackupFilename("20240101_120000_ab.skb", ""); err == nil {
		t.Errorf("Expected error for truncated session id")
	}
}

func TestFindBackupsSkipsMalformedNames(t *testing.T) {
	bm, err := NewBackupManagerAt(filepath.Join(t.TempDir(), "backups"))
	if err != nil {
		t.Fatal(err)
	}

	libPath := filepath.Join(t.TempDir(), "library.json")
	if err := bm.CreateBackup(NewLibrary(), libPath, "good1234"); err != nil {
		t.Fatal(err)
	}

	// A stray hand-renamed backup with a truncated name must be skipped,
	// not crash the listing.
	stray := filepath.Join(bm.backupDir, "20240101_120000_ab.skb")
	if err := os.WriteFile(stray, []byte("{}"), 0o644); err != nil {
		t.Fatal(err)
	}

	backups, err := bm.FindBackupsForFile("")
	if err != nil {
		t.Fatalf("FindBackupsForFile failed: %v", err)
	}
	if len(backups) != 1 {
		t.Errorf("Expected the malformed file to be skipped, got %d backups", len(backups))
	}
}

func TestPrune(t *testing.T) {
	bm, err := NewBackupManagerAt(filepath.Join(t.TempDir(), "backups"))
	if err != nil {
		t.Fatal(err)
	}

	libPath := filepath.Join(t.TempDir(), "library.json")
	for _, id := range []string{"sess0001", "sess0002", "sess0003"} {
		if err := bm.CreateBackup(NewLibrary(), libPath, id); err != nil {
			t.Fatal(err)
		}
	}

	if err := bm.Prune(libPath, 2); err != nil {
		t.Fatalf("Prune failed: %v", err)
	}

	backups, err := bm.FindBackupsForFile(libPath)
	if err != nil {
		t.Fatal(err)
	}
	if len(backups) != 2 {
		t.Errorf("Expected 2 backups after prune, got %d", len(backups))
	}
}
