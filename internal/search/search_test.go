package search

import (
	"testing"

	"github.com/breeze-rmm/scriptkit/internal/category"
	"github.com/breeze-rmm/scriptkit/internal/script"
)

func testScripts() []*script.Script {
	return []*script.Script{
		{ID: "s1", Name: "Cleanup Temp Files", CategoryID: "maintenance/disk", Status: script.StatusActive},
		{ID: "s2", Name: "Restart Agent", CategoryID: "maintenance", Status: script.StatusActive},
		{ID: "s3", Name: "Collect Crash Dumps", CategoryID: "diagnostics", Status: script.StatusDraft},
		{ID: "s4", Name: "Old Defrag", CategoryID: "maintenance/disk", Status: script.StatusArchived},
	}
}

func testForest() []*category.Node {
	return category.DeriveForest([]string{
		"Maintenance / Disk",
		"Diagnostics",
	})
}

func ids(scripts []*script.Script) []string {
	out := make([]string, len(scripts))
	for i, s := range scripts {
		out[i] = s.ID
	}
	return out
}

func TestTextExpr(t *testing.T) {
	matches := Matching(testScripts(), NewTextExpr("agent"))
	if len(matches) != 1 || matches[0].ID != "s2" {
		t.Errorf("Expected [s2], got %v", ids(matches))
	}
}

func TestFuzzyExpr(t *testing.T) {
	// "ccd" fuzzy-matches "Collect Crash Dumps"
	matches := Matching(testScripts(), NewFuzzyExpr("ccd"))
	if len(matches) != 1 || matches[0].ID != "s3" {
		t.Errorf("Expected [s3], got %v", ids(matches))
	}
}

func TestStatusExpr(t *testing.T) {
	matches := Matching(testScripts(), NewStatusExpr(script.StatusArchived))
	if len(matches) != 1 || matches[0].ID != "s4" {
		t.Errorf("Expected [s4], got %v", ids(matches))
	}
}

func TestCategoryExprIncludesDescendants(t *testing.T) {
	expr := NewCategoryExpr(testForest(), "maintenance")

	matches := Matching(testScripts(), expr)
	if len(matches) != 3 {
		t.Fatalf("Expected 3 scripts under maintenance (descendants included), got %v", ids(matches))
	}
	for _, s := range matches {
		if s.ID == "s3" {
			t.Errorf("diagnostics script matched the maintenance filter")
		}
	}
}

func TestCategoryExprLeaf(t *testing.T) {
	expr := NewCategoryExpr(testForest(), "maintenance/disk")

	matches := Matching(testScripts(), expr)
	if len(matches) != 2 {
		t.Errorf("Expected 2 scripts in maintenance/disk, got %v", ids(matches))
	}
}

func TestCategoryExprUncategorized(t *testing.T) {
	scripts := []*script.Script{{ID: "s9", Name: "No Category"}}

	matches := Matching(scripts, NewCategoryExpr(testForest(), "maintenance"))
	if len(matches) != 0 {
		t.Errorf("Uncategorized scripts must not match any category filter")
	}
}

func TestAndOrNot(t *testing.T) {
	scripts := testScripts()

	and := NewAndExpr(NewStatusExpr(script.StatusActive), NewTextExpr("cleanup"))
	if got := Matching(scripts, and); len(got) != 1 || got[0].ID != "s1" {
		t.Errorf("and: expected [s1], got %v", ids(got))
	}

	or := NewOrExpr(NewTextExpr("defrag"), NewTextExpr("agent"))
	if got := Matching(scripts, or); len(got) != 2 {
		t.Errorf("or: expected 2 matches, got %v", ids(got))
	}

	not := NewNotExpr(NewStatusExpr(script.StatusActive))
	if got := Matching(scripts, not); len(got) != 2 {
		t.Errorf("not: expected 2 matches, got %v", ids(got))
	}
}

func TestFirstMatching(t *testing.T) {
	first := FirstMatching(testScripts(), NewStatusExpr(script.StatusActive))
	if first == nil || first.ID != "s1" {
		t.Errorf("Expected s1, got %+v", first)
	}

	if FirstMatching(testScripts(), NewTextExpr("nothing-here")) != nil {
		t.Errorf("Expected nil for no match")
	}
}

func TestParseQueryEmpty(t *testing.T) {
	expr, err := ParseQuery(testForest(), "   ")
	if err != nil {
		t.Fatalf("ParseQuery failed: %v", err)
	}
	if len(Matching(testScripts(), expr)) != len(testScripts()) {
		t.Errorf("Empty query should match everything")
	}
}

func TestParseQueryTokens(t *testing.T) {
	forest := testForest()
	scripts := testScripts()

	cases := []struct {
		query string
		want  []string
	}{
		{"cleanup", []string{"s1"}},
		{"status:active", []string{"s1", "s2"}},
		{"category:maintenance", []string{"s1", "s2", "s4"}},
		{"category:maintenance status:active", []string{"s1", "s2"}},
		{"~ccd", []string{"s3"}},
		{"-status:archived category:maintenance", []string{"s1", "s2"}},
	}

	for _, c := range cases {
		expr, err := ParseQuery(forest, c.query)
		if err != nil {
			t.Fatalf("ParseQuery(%q) failed: %v", c.query, err)
		}
		got := ids(Matching(scripts, expr))
		if len(got) != len(c.want) {
			t.Errorf("Query %q: expected %v, got %v", c.query, c.want, got)
			continue
		}
		for i := range got {
			if got[i] != c.want[i] {
				t.Errorf("Query %q: expected %v, got %v", c.query, c.want, got)
				break
			}
		}
	}
}

func TestParseQueryErrors(t *testing.T) {
	forest := testForest()

	for _, query := range []string{"status:retired", "category:", "~", "-"} {
		if _, err := ParseQuery(forest, query); err == nil {
			t.Errorf("Expected error for query %q", query)
		}
	}
}
