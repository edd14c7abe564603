package main

import (
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/davecgh/go-spew/spew"
	"github.com/google/uuid"

	"github.com/breeze-rmm/scriptkit/internal/category"
	"github.com/breeze-rmm/scriptkit/internal/config"
	"github.com/breeze-rmm/scriptkit/internal/export"
	"github.com/breeze-rmm/scriptkit/internal/search"
	"github.com/breeze-rmm/scriptkit/internal/storage"
)

func main() {
	libPath := flag.String("lib", "", "Path to the library file (default from config)")
	debug := flag.Bool("debug", false, "Dump the loaded library before running the command")
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, `Usage: scriptkit [options] <command> [args]

Maintains a script library file: the category tree and the scripts filed
under it.

Commands:
  tree                          Print the category tree with script counts
  add <parent-id> <name>        Add a category under parent-id ("root" for top level)
  rename <id> <new-name>        Rename a category
  rm <id>                       Remove a category and all its descendants
  move <dragged-id> <target-id> Move a category to a sibling's position
  search <query>                Search scripts (word, ~fuzzy, status:x, category:id, -not)
  export <file.md>              Write a markdown index of the library
  backups                       List backups of the library file

Options:
  -lib     Path to the library file (default from config)
  -debug   Dump the loaded library before running the command

Mutating commands back up the library before saving. Removing or renaming an
id that no longer exists is reported but is not an error.

Examples:
  scriptkit tree
  scriptkit add root "Security"
  scriptkit add security "Firewall"
  scriptkit search 'category:maintenance status:active -~defrag'
  scriptkit export library-index.md
`)
	}

	flag.Parse()

	args := flag.Args()
	if len(args) < 1 {
		flag.Usage()
		os.Exit(2)
	}

	cfg, err := config.Load()
	if err != nil {
		fatal(err)
	}

	path := *libPath
	if path == "" {
		path = cfg.LibraryPath
	}

	store := storage.NewJSONStore(path)
	lib, err := store.Load()
	if err != nil {
		fatal(err)
	}
	ensureCategories(lib)

	if *debug {
		spew.Dump(lib)
	}

	switch cmd, rest := args[0], args[1:]; cmd {
	case "tree":
		runTree(lib)
	case "add":
		runAdd(store, cfg, lib, rest)
	case "rename":
		runRename(store, cfg, lib, rest)
	case "rm":
		runRemove(store, cfg, lib, rest)
	case "move":
		runMove(store, cfg, lib, rest)
	case "search":
		runSearch(lib, rest)
	case "export":
		runExport(lib, rest)
	case "backups":
		runBackups(store)
	default:
		fmt.Fprintf(os.Stderr, "Unknown command %q\n\n", cmd)
		flag.Usage()
		os.Exit(2)
	}
}

// ensureCategories derives the category forest from the scripts' free-text
// category paths when the library carries none, and fills in derived ids.
// This is the categories-by-convention adapter: once the backend grows a
// first-class category API, this is the only place that changes.
func ensureCategories(lib *storage.Library) {
	if len(lib.Categories) == 0 {
		paths := make([]string, 0, len(lib.Scripts))
		for _, s := range lib.Scripts {
			paths = append(paths, s.Category)
		}
		lib.Categories = category.DeriveForest(paths)
	}
	for _, s := range lib.Scripts {
		if s.CategoryID == "" {
			s.CategoryID = category.PathID(s.Category)
		}
	}
}

func runTree(lib *storage.Library) {
	counts := make(map[string]int)
	for _, s := range lib.Scripts {
		counts[s.CategoryID]++
	}

	if len(lib.Categories) == 0 {
		fmt.Println("(no categories)")
		return
	}

	var walk func(nodes []*category.Node, depth int)
	walk = func(nodes []*category.Node, depth int) {
		for _, n := range nodes {
			fmt.Printf("%s%s [%s]", strings.Repeat("  ", depth), n.Name, n.ID)
			if c := counts[n.ID]; c > 0 {
				fmt.Printf(" (%d scripts)", c)
			}
			fmt.Println()
			walk(n.Children, depth+1)
		}
	}
	walk(lib.Categories, 0)

	if c := counts[""]; c > 0 {
		fmt.Printf("(uncategorized) (%d scripts)\n", c)
	}
}

func runAdd(store *storage.JSONStore, cfg *config.Config, lib *storage.Library, args []string) {
	if len(args) != 2 {
		fatalUsage("add <parent-id> <name>")
	}
	parentID, name := args[0], args[1]

	node := category.NewNode(name)
	updated := category.AddSubcategory(lib.Categories, parentID, node)
	if sameForest(updated, lib.Categories) {
		fmt.Printf("Parent %q not found, nothing added\n", parentID)
		return
	}

	lib.Categories = updated
	saveLibrary(store, cfg, lib)
	fmt.Printf("Added %q [%s] under %s\n", name, node.ID, parentID)
}

func runRename(store *storage.JSONStore, cfg *config.Config, lib *storage.Library, args []string) {
	if len(args) != 2 {
		fatalUsage("rename <id> <new-name>")
	}
	id, name := args[0], args[1]

	updated := category.Rename(lib.Categories, id, name)
	if sameForest(updated, lib.Categories) {
		fmt.Printf("Category %q not found, nothing renamed\n", id)
		return
	}

	lib.Categories = updated
	saveLibrary(store, cfg, lib)
	fmt.Printf("Renamed %s to %q\n", id, name)
}

func runRemove(store *storage.JSONStore, cfg *config.Config, lib *storage.Library, args []string) {
	if len(args) != 1 {
		fatalUsage("rm <id>")
	}
	id := args[0]

	gone := len(category.DescendantIDs(lib.Categories, id)) + 1
	updated := category.RemoveSubtree(lib.Categories, id)
	if sameForest(updated, lib.Categories) {
		fmt.Printf("Category %q not found, nothing removed\n", id)
		return
	}

	lib.Categories = updated
	saveLibrary(store, cfg, lib)
	fmt.Printf("Removed %s (%d categories)\n", id, gone)
}

func runMove(store *storage.JSONStore, cfg *config.Config, lib *storage.Library, args []string) {
	if len(args) != 2 {
		fatalUsage("move <dragged-id> <target-id>")
	}
	draggedID, targetID := args[0], args[1]

	updated := category.ReorderSiblings(lib.Categories, draggedID, targetID)
	if sameForest(updated, lib.Categories) {
		fmt.Printf("No move: %q and %q are not in the same sibling list\n", draggedID, targetID)
		return
	}

	lib.Categories = updated
	saveLibrary(store, cfg, lib)
	fmt.Printf("Moved %s to %s's position\n", draggedID, targetID)
}

func runSearch(lib *storage.Library, args []string) {
	query := strings.Join(args, " ")
	expr, err := search.ParseQuery(lib.Categories, query)
	if err != nil {
		fatal(err)
	}

	matches := search.Matching(lib.Scripts, expr)
	if len(matches) == 0 {
		fmt.Println("No scripts matched")
		return
	}

	for _, s := range matches {
		categoryName := s.Category
		if name, ok := category.FindName(lib.Categories, s.CategoryID); ok {
			categoryName = name
		}
		if categoryName == "" {
			categoryName = "-"
		}
		fmt.Printf("%-30s %-10s %s\n", s.Name, s.Status, categoryName)
	}
	fmt.Printf("%d of %d scripts\n", len(matches), len(lib.Scripts))
}

func runExport(lib *storage.Library, args []string) {
	if len(args) != 1 {
		fatalUsage("export <file.md>")
	}
	if err := export.ToMarkdown(lib, args[0]); err != nil {
		fatal(err)
	}
	fmt.Printf("Wrote %s\n", args[0])
}

func runBackups(store *storage.JSONStore) {
	bm, err := storage.NewBackupManager()
	if err != nil {
		fatal(err)
	}
	backups, err := bm.FindBackupsForFile(store.FilePath)
	if err != nil {
		fatal(err)
	}
	if len(backups) == 0 {
		fmt.Println("No backups found")
		return
	}
	for _, b := range backups {
		fmt.Printf("%s  %s  %s\n", b.Timestamp.Format("2006-01-02 15:04:05"), b.SessionID, b.FilePath)
	}
}

// saveLibrary backs the current file up, then writes the new state.
func saveLibrary(store *storage.JSONStore, cfg *config.Config, lib *storage.Library) {
	if store.FileExists() {
		bm, err := storage.NewBackupManager()
		if err == nil {
			sessionID := strings.ReplaceAll(uuid.NewString(), "-", "")[:8]
			if err := bm.CreateBackup(lib, store.FilePath, sessionID); err != nil {
				fmt.Fprintf(os.Stderr, "Warning: backup failed: %v\n", err)
			}
			if err := bm.Prune(store.FilePath, cfg.MaxBackups); err != nil {
				fmt.Fprintf(os.Stderr, "Warning: backup prune failed: %v\n", err)
			}
		}
	}

	if err := store.Save(lib); err != nil {
		fatal(err)
	}
}

// sameForest reports whether two forests are the same snapshot. The category
// operations return the input slice with identical node pointers when
// nothing changed, so pointer comparison is enough.
func sameForest(a, b []*category.Node) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func fatal(err error) {
	fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	os.Exit(1)
}

func fatalUsage(usage string) {
	fmt.Fprintf(os.Stderr, "Usage: scriptkit %s\n", usage)
	os.Exit(2)
}
