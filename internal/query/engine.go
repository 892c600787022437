// Package query holds the pure filter/sort pipeline applied to the directory
// before every render. Nothing in here touches the terminal or the store.
package query

import (
	"fmt"
	"slices"
	"sort"
	"strings"

	"roster-cli/internal/model"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// Engine filters and orders people. The zero value compares names with the
// CLDR root collation.
type Engine struct {
	Locale language.Tag
}

// New builds an engine for a BCP 47 locale tag ("" or "und" for root).
func New(locale string) (Engine, error) {
	locale = strings.TrimSpace(locale)
	if locale == "" {
		return Engine{Locale: language.Und}, nil
	}
	tag, err := language.Parse(locale)
	if err != nil {
		return Engine{}, fmt.Errorf("invalid locale %q: %w", locale, err)
	}
	return Engine{Locale: tag}, nil
}

// Matches reports whether p passes the search and role filters of st.
func Matches(p model.Person, st model.QueryState) bool {
	if st.Role != "" && p.Role != st.Role {
		return false
	}
	if st.Search == "" {
		return true
	}
	return strings.Contains(strings.ToLower(p.Name), strings.ToLower(st.Search))
}

// Apply returns a new slice holding the records that match st, ordered by
// name. Ties keep their input order. records is never modified.
func (e Engine) Apply(records []model.Person, st model.QueryState) []model.Person {
	out := make([]model.Person, 0, len(records))
	for _, p := range records {
		if Matches(p, st) {
			out = append(out, p)
		}
	}

	slices.SortStableFunc(out, e.byName(st.Sort))
	return out
}

// byName orders people by collated name. Anything other than name-asc
// sorts descending.
func (e Engine) byName(order model.SortOrder) func(a, b model.Person) int {
	// Collators carry scratch buffers; one per call keeps Apply free of shared state.
	c := collate.New(e.Locale)
	desc := order != model.SortNameAsc
	return func(a, b model.Person) int {
		n := c.CompareString(a.Name, b.Name)
		if desc {
			return -n
		}
		return n
	}
}

// Roles returns the distinct role values of records in ascending byte order.
func Roles(records []model.Person) []string {
	seen := make(map[string]bool, len(records))
	roles := make([]string, 0, 8)
	for _, p := range records {
		if seen[p.Role] {
			continue
		}
		seen[p.Role] = true
		roles = append(roles, p.Role)
	}
	sort.Strings(roles)
	return roles
}
