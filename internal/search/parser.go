package search

import (
	"fmt"
	"strings"

	"github.com/breeze-rmm/scriptkit/internal/category"
	"github.com/breeze-rmm/scriptkit/internal/script"
)

// ParseQuery turns a query string into a filter expression. Tokens are
// whitespace-separated and joined with AND:
//
//	status:active       lifecycle status
//	category:<id>       category id, descendants included
//	~term               fuzzy name match
//	-token              negation of any of the above
//	word                substring name match
//
// The empty query matches everything. The forest is needed to resolve
// category descendants.
func ParseQuery(forest []*category.Node, query string) (FilterExpr, error) {
	fields := strings.Fields(query)
	if len(fields) == 0 {
		return NewAlwaysMatchExpr(), nil
	}

	var expr FilterExpr
	for _, field := range fields {
		tokenExpr, err := parseToken(forest, field)
		if err != nil {
			return nil, err
		}
		if expr == nil {
			expr = tokenExpr
		} else {
			expr = NewAndExpr(expr, tokenExpr)
		}
	}
	return expr, nil
}

func parseToken(forest []*category.Node, token string) (FilterExpr, error) {
	if rest, ok := strings.CutPrefix(token, "-"); ok {
		if rest == "" {
			return nil, fmt.Errorf("dangling negation in query")
		}
		inner, err := parseToken(forest, rest)
		if err != nil {
			return nil, err
		}
		return NewNotExpr(inner), nil
	}

	if value, ok := strings.CutPrefix(token, "status:"); ok {
		status, err := script.ParseStatus(value)
		if err != nil {
			return nil, err
		}
		return NewStatusExpr(status), nil
	}

	if value, ok := strings.CutPrefix(token, "category:"); ok {
		if value == "" {
			return nil, fmt.Errorf("empty category filter")
		}
		return NewCategoryExpr(forest, value), nil
	}

	if term, ok := strings.CutPrefix(token, "~"); ok {
		if term == "" {
			return nil, fmt.Errorf("empty fuzzy term")
		}
		return NewFuzzyExpr(term), nil
	}

	return NewTextExpr(token), nil
}
