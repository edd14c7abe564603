// Package search filters the script list the way the library views do:
// free text over names, fuzzy matching, status, and category membership
// including descendants of the selected node.
package search

import (
	"fmt"
	"strings"

	"github.com/lithammer/fuzzysearch/fuzzy"

	"github.com/breeze-rmm/scriptkit/internal/category"
	"github.com/breeze-rmm/scriptkit/internal/script"
)

// FilterExpr represents a filter expression that can match scripts
type FilterExpr interface {
	Matches(s *script.Script) bool
	String() string // For debug output
}

// TextExpr matches scripts whose name contains the search term (case-insensitive)
type TextExpr struct {
	term string
}

func NewTextExpr(term string) *TextExpr {
	return &TextExpr{term: strings.ToLower(term)}
}

func (e *TextExpr) Matches(s *script.Script) bool {
	return strings.Contains(strings.ToLower(s.Name), e.term)
}

func (e *TextExpr) String() string {
	return fmt.Sprintf("text(%q)", e.term)
}

// FuzzyExpr matches scripts whose name fuzzy-matches the search term (case-insensitive)
type FuzzyExpr struct {
	term string
}

func NewFuzzyExpr(term string) *FuzzyExpr {
	return &FuzzyExpr{term: strings.ToLower(term)}
}

func (e *FuzzyExpr) Matches(s *script.Script) bool {
	return fuzzy.MatchFold(e.term, strings.ToLower(s.Name))
}

func (e *FuzzyExpr) String() string {
	return fmt.Sprintf("fuzzy(%q)", e.term)
}

// StatusExpr matches scripts with the given lifecycle status
type StatusExpr struct {
	status script.Status
}

func NewStatusExpr(status script.Status) *StatusExpr {
	return &StatusExpr{status: status}
}

func (e *StatusExpr) Matches(s *script.Script) bool {
	return s.Status == e.status
}

func (e *StatusExpr) String() string {
	return fmt.Sprintf("status(%s)", e.status)
}

// CategoryExpr matches scripts filed under a category or any of its
// descendants. This is the highlight-membership query: the allowed set is
// the selected id plus every descendant id.
type CategoryExpr struct {
	id      string
	allowed map[string]bool
}

func NewCategoryExpr(forest []*category.Node, id string) *CategoryExpr {
	allowed := map[string]bool{id: true}
	for _, descID := range category.DescendantIDs(forest, id) {
		allowed[descID] = true
	}
	return &CategoryExpr{id: id, allowed: allowed}
}

func (e *CategoryExpr) Matches(s *script.Script) bool {
	return s.CategoryID != "" && e.allowed[s.CategoryID]
}

func (e *CategoryExpr) String() string {
	return fmt.Sprintf("category(%s)", e.id)
}

// AlwaysMatchExpr matches all scripts (for empty queries)
type AlwaysMatchExpr struct{}

func NewAlwaysMatchExpr() *AlwaysMatchExpr {
	return &AlwaysMatchExpr{}
}

func (e *AlwaysMatchExpr) Matches(s *script.Script) bool {
	return true
}

func (e *AlwaysMatchExpr) String() string {
	return "always-match"
}

// AndExpr matches if both left and right match
type AndExpr struct {
	left  FilterExpr
	right FilterExpr
}

func NewAndExpr(left, right FilterExpr) *AndExpr {
	return &AndExpr{left: left, right: right}
}

func (e *AndExpr) Matches(s *script.Script) bool {
	return e.left.Matches(s) && e.right.Matches(s)
}

func (e *AndExpr) String() string {
	return fmt.Sprintf("(and %s %s)", e.left.String(), e.right.String())
}

// OrExpr matches if either left or right matches
type OrExpr struct {
	left  FilterExpr
	right FilterExpr
}

func NewOrExpr(left, right FilterExpr) *OrExpr {
	return &OrExpr{left: left, right: right}
}

func (e *OrExpr) Matches(s *script.Script) bool {
	return e.left.Matches(s) || e.right.Matches(s)
}

func (e *OrExpr) String() string {
	return fmt.Sprintf("(or %s %s)", e.left.String(), e.right.String())
}

// NotExpr matches if the wrapped expression does not match
type NotExpr struct {
	expr FilterExpr
}

func NewNotExpr(expr FilterExpr) *NotExpr {
	return &NotExpr{expr: expr}
}

func (e *NotExpr) Matches(s *script.Script) bool {
	return !e.expr.Matches(s)
}

func (e *NotExpr) String() string {
	return fmt.Sprintf("(not %s)", e.expr.String())
}

// Matching returns all scripts that match the given filter expression
func Matching(scripts []*script.Script, filterExpr FilterExpr) []*script.Script {
	var matches []*script.Script
	for _, s := range scripts {
		if filterExpr.Matches(s) {
			matches = append(matches, s)
		}
	}
	return matches
}

// FirstMatching returns the first script that matches the given filter
// expression, or nil if none match
func FirstMatching(scripts []*script.Script, filterExpr FilterExpr) *script.Script {
	for _, s := range scripts {
		if filterExpr.Matches(s) {
			return s
		}
	}
	return nil
}
