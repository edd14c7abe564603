package export

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/breeze-rmm/scriptkit/internal/category"
	"github.com/breeze-rmm/scriptkit/internal/script"
	"github.com/breeze-rmm/scriptkit/internal/storage"
)

func TestToMarkdown(t *testing.T) {
	lib := storage.NewLibrary()
	lib.Categories = category.DeriveForest([]string{
		"Maintenance / Disk",
		"Security",
	})
	lib.Scripts = []*script.Script{
		{ID: "s1", Name: "cleanup-temp", CategoryID: "maintenance/disk", Status: script.StatusActive},
		{ID: "s2", Name: "rotate-logs", CategoryID: "maintenance", Status: script.StatusDraft},
		{ID: "s3", Name: "scan-ports", CategoryID: "security", Status: script.StatusActive},
	}

	outputFile := filepath.Join(t.TempDir(), "library.md")
	if err := ToMarkdown(lib, outputFile); err != nil {
		t.Fatalf("ToMarkdown failed: %v", err)
	}

	content, err := os.ReadFile(outputFile)
	if err != nil {
		t.Fatalf("Failed to read output file: %v", err)
	}

	expectedContent := `# Script Library

- Maintenance
  - ` + "`rotate-logs`" + ` (draft)
  - Disk
    - ` + "`cleanup-temp`" + ` (active)
- Security
  - ` + "`scan-ports`" + ` (active)
`

	if string(content) != expectedContent {
		t.Errorf("Output mismatch.\nExpected:\n%s\n\nGot:\n%s", expectedContent, string(content))
	}
}

func TestToMarkdownSkipsEmptyCategories(t *testing.T) {
	lib := storage.NewLibrary()
	lib.Categories = category.DeriveForest([]string{
		"Maintenance / Disk",
		"Maintenance / Network",
		"Diagnostics",
	})
	// Only the Disk leaf has a script: Network is empty and drops out, but
	// Maintenance stays because its subtree has one. Diagnostics is empty
	// all the way down and disappears entirely.
	lib.Scripts = []*script.Script{
		{ID: "s1", Name: "cleanup-temp", CategoryID: "maintenance/disk", Status: script.StatusActive},
	}

	outputFile := filepath.Join(t.TempDir(), "library.md")
	if err := ToMarkdown(lib, outputFile); err != nil {
		t.Fatalf("ToMarkdown failed: %v", err)
	}

	content, err := os.ReadFile(outputFile)
	if err != nil {
		t.Fatalf("Failed to read output file: %v", err)
	}

	expectedContent := `# Script Library

- Maintenance
  - Disk
    - ` + "`cleanup-temp`" + ` (active)
`

	if string(content) != expectedContent {
		t.Errorf("Output mismatch.\nExpected:\n%s\n\nGot:\n%s", expectedContent, string(content))
	}
}

func TestToMarkdownUncategorized(t *testing.T) {
	lib := storage.NewLibrary()
	lib.Scripts = []*script.Script{
		{ID: "s1", Name: "orphan", Status: script.StatusDraft},
	}

	outputFile := filepath.Join(t.TempDir(), "library.md")
	if err := ToMarkdown(lib, outputFile); err != nil {
		t.Fatalf("ToMarkdown failed: %v", err)
	}

	content, err := os.ReadFile(outputFile)
	if err != nil {
		t.Fatalf("Failed to read output file: %v", err)
	}

	expectedContent := `# Script Library


## Uncategorized

- ` + "`orphan`" + ` (draft)
`

	if string(content) != expectedContent {
		t.Errorf("Output mismatch.\nExpected:\n%s\n\nGot:\n%s", expectedContent, string(content))
	}
}

func TestToMarkdownEmptyLibrary(t *testing.T) {
	outputFile := filepath.Join(t.TempDir(), "library.md")
	if err := ToMarkdown(storage.NewLibrary(), outputFile); err != nil {
		t.Fatalf("ToMarkdown failed: %v", err)
	}

	content, _ := os.ReadFile(outputFile)
	if string(content) != "# Script Library\n\n" {
		t.Errorf("Expected bare header for empty library, got:\n%s", string(content))
	}
}
