package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/breeze-rmm/scriptkit/internal/config"
	"github.com/breeze-rmm/scriptkit/internal/diff"
)

func main() {
	format := flag.String("format", "", "Output format: unified or side-by-side (default from config)")
	summary := flag.Bool("s", false, "Summary only (line counts, no diff body)")
	width := flag.Int("w", 60, "Column width for side-by-side output")
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, `Usage: script-diff [options] <base-file> <compare-file>

Compares two script files line by line and prints the tagged result.

The comparison is positional: lines are aligned strictly by index. A line
inserted mid-file therefore shows every following line as removed+added.
This matches the dashboard's version compare view.

Options:
  -format  unified or side-by-side (default from config, normally unified)
  -s       Summary only (counts, no diff body)
  -w       Column width for side-by-side output (default 60)

Exit status is 1 when the files differ, 0 when they are identical.

Examples:
  # Unified diff of two versions of a script
  script-diff v3/cleanup.sh v4/cleanup.sh

  # Two-column view
  script-diff -format side-by-side v3/cleanup.sh v4/cleanup.sh

  # Just the change counts
  script-diff -s v3/cleanup.sh v4/cleanup.sh
`)
	}

	flag.Parse()

	args := flag.Args()
	if len(args) != 2 {
		flag.Usage()
		os.Exit(2)
	}

	base, err := os.ReadFile(args[0])
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error reading %s: %v\n", args[0], err)
		os.Exit(2)
	}
	other, err := os.ReadFile(args[1])
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error reading %s: %v\n", args[1], err)
		os.Exit(2)
	}

	lines := diff.Lines(string(base), string(other))
	added, removed, unchanged := diff.Stats(lines)

	if *summary {
		fmt.Printf("%d added, %d removed, %d unchanged\n", added, removed, unchanged)
	} else {
		switch outputFormat := resolveFormat(*format); outputFormat {
		case "unified":
			fmt.Print(diff.FormatUnified(lines))
		case "side-by-side":
			fmt.Print(diff.FormatSideBySide(lines, *width))
		default:
			fmt.Fprintf(os.Stderr, "Unknown format %q (want unified or side-by-side)\n", outputFormat)
			os.Exit(2)
		}
	}

	if added > 0 || removed > 0 {
		os.Exit(1)
	}
}

// resolveFormat prefers the flag, then the config file, then the default.
func resolveFormat(flagValue string) string {
	if flagValue != "" {
		return flagValue
	}
	cfg, err := config.Load()
	if err != nil || cfg.DiffFormat == "" {
		return config.DefaultDiffFormat
	}
	return cfg.DiffFormat
}
