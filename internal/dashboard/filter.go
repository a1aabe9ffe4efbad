// Package dashboard computes what the dashboard displays for a set of
// filters. ComputeView is pure; the HTTP adapter only parses requests and
// renders the result.
package dashboard

import (
	"slices"
	"sort"

	"golang.org/x/text/cases"

	"github.com/aalokdhekne-creator/GBIF-Dashboard/internal/domain"
)

// AllCountries is the country selection that disables the country filter.
const AllCountries = "All"

// Filters selects the rows a view is computed from. Every predicate is
// independent and a row must satisfy all of them.
type Filters struct {
	// Country matches countryCode exactly; "" or AllCountries matches every row.
	Country string
	// Kingdoms is a set of accepted kingdoms; nil matches every row and an
	// empty non-nil set matches none.
	Kingdoms []string
	// Years is a set of accepted years, with the same nil semantics as Kingdoms.
	Years []int
	// Species matches species exactly after Unicode case folding, surrounding
	// spaces included; "" matches every row.
	Species string
}

// Mask returns the indexes of the rows of t matching f, in table order.
func Mask(t *domain.Table, f Filters) []int {
	fold := cases.Fold()
	query := fold.String(f.Species)

	var kingdoms map[string]bool
	if f.Kingdoms != nil {
		kingdoms = make(map[string]bool, len(f.Kingdoms))
		for _, k := range f.Kingdoms {
			kingdoms[k] = true
		}
	}
	var years map[int64]bool
	if f.Years != nil {
		years = make(map[int64]bool, len(f.Years))
		for _, y := range f.Years {
			years[int64(y)] = true
		}
	}
	country := f.Country != "" && f.Country != AllCountries

	rows := make([]int, 0, t.NumRows())
	for r := 0; r < t.NumRows(); r++ {
		if country {
			if c, ok := t.Cell(r, domain.ColCountryCode).Get(); !ok || c != f.Country {
				continue
			}
		}
		if kingdoms != nil {
			if k, ok := t.Cell(r, domain.ColKingdom).Get(); !ok || !kingdoms[k] {
				continue
			}
		}
		if years != nil {
			if y, ok := domain.ParseInt(t.Cell(r, domain.ColYear)).Get(); !ok || !years[y] {
				continue
			}
		}
		if query != "" {
			if s, ok := t.Cell(r, domain.ColSpecies).Get(); !ok || fold.String(s) != query {
				continue
			}
		}
		rows = append(rows, r)
	}
	return rows
}

// Apply returns the subset of t matching f.
func Apply(t *domain.Table, f Filters) *domain.Table {
	keep := make([]bool, t.NumRows())
	for _, r := range Mask(t, f) {
		keep[r] = true
	}
	return t.Filter(func(r int) bool { return keep[r] })
}

// Choices are the values the filter controls offer.
type Choices struct {
	Countries []string `json:"countries"`
	Kingdoms  []string `json:"kingdoms"`
	Years     []int    `json:"years"`
	Species   []string `json:"species"`
	Levels    []string `json:"levels"`
}

// FilterChoices lists the sorted distinct present values of the filterable
// columns.
func FilterChoices(t *domain.Table) Choices {
	c := Choices{
		Countries: distinct(t, domain.ColCountryCode),
		Kingdoms:  distinct(t, domain.ColKingdom),
		Species:   distinct(t, domain.ColSpecies),
		Years:     []int{},
		Levels:    LevelNames(),
	}
	seen := make(map[int64]bool)
	for r := 0; r < t.NumRows(); r++ {
		if y, ok := domain.ParseInt(t.Cell(r, domain.ColYear)).Get(); ok && !seen[y] {
			seen[y] = true
			c.Years = append(c.Years, int(y))
		}
	}
	slices.Sort(c.Years)
	return c
}

func distinct(t *domain.Table, column string) []string {
	cells, _ := t.Column(column)
	seen := make(map[string]bool)
	out := []string{}
	for _, cell := range cells {
		if s, ok := cell.Get(); ok && !seen[s] {
			seen[s] = true
			out = append(out, s)
		}
	}
	sort.Strings(out)
	return out
}
