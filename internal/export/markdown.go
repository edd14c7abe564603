// Package export writes human-readable views of the script library.
package export

import (
	"fmt"
	"os"
	"strings"

	"github.com/breeze-rmm/scriptkit/internal/category"
	"github.com/breeze-rmm/scriptkit/internal/script"
	"github.com/breeze-rmm/scriptkit/internal/storage"
)

// ToMarkdown writes a markdown index of the library: the category tree as
// nested bullets with each category's scripts listed beneath it, followed by
// the scripts that belong to no category.
func ToMarkdown(lib *storage.Library, filePath string) error {
	var sb strings.Builder

	sb.WriteString("# Script Library\n\n")

	byCategory := make(map[string][]*script.Script)
	for _, s := range lib.Scripts {
		byCategory[s.CategoryID] = append(byCategory[s.CategoryID], s)
	}

	for _, node := range lib.Categories {
		writeCategoryAsMarkdown(&sb, node, byCategory, 0)
	}

	if uncategorized := byCategory[""]; len(uncategorized) > 0 {
		sb.WriteString("\n## Uncategorized\n\n")
		for _, s := range uncategorized {
			writeScriptAsMarkdown(&sb, s, 0)
		}
	}

	if err := os.WriteFile(filePath, []byte(sb.String()), 0o644); err != nil {
		return fmt.Errorf("failed to write markdown file: %w", err)
	}

	return nil
}

// writeCategoryAsMarkdown recursively writes a category and its scripts as
// markdown bullets. depth determines the indentation level (2 spaces per
// level). Categories whose subtree holds no scripts are left out of the
// index entirely.
func writeCategoryAsMarkdown(sb *strings.Builder, node *category.Node, byCategory map[string][]*script.Script, depth int) {
	if node == nil || !subtreeHasScripts(node, byCategory) {
		return
	}

	indent := strings.Repeat("  ", depth)
	sb.WriteString(indent)
	sb.WriteString("- ")
	sb.WriteString(node.Name)
	sb.WriteString("\n")

	for _, s := range byCategory[node.ID] {
		writeScriptAsMarkdown(sb, s, depth+1)
	}

	for _, child := range node.Children {
		writeCategoryAsMarkdown(sb, child, byCategory, depth+1)
	}
}

func subtreeHasScripts(node *category.Node, byCategory map[string][]*script.Script) bool {
	if len(byCategory[node.ID]) > 0 {
		return true
	}
	for _, child := range node.Children {
		if subtreeHasScripts(child, byCategory) {
			return true
		}
	}
	return false
}

func writeScriptAsMarkdown(sb *strings.Builder, s *script.Script, depth int) {
	indent := strings.Repeat("  ", depth)
	fmt.Fprintf(sb, "%s- `%s` (%s)\n", indent, s.Name, s.Status)
}
