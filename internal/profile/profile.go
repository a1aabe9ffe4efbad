// Package profile computes a read-only data-quality report over a raw
// occurrence table.
package profile

import (
	"math"
	"regexp"
	"sort"
	"time"

	"github.com/aalokdhekne-creator/GBIF-Dashboard/internal/domain"
)

var countryCodePattern = regexp.MustCompile(`^[A-Z]{2}$`)

// Options controls which free-text columns are scanned for blank-like values.
type Options struct {
	TextColumns []string
}

// DefaultOptions returns the blank-like scan over stateProvince, locality and
// habitat.
func DefaultOptions() Options {
	return Options{TextColumns: append([]string(nil), domain.ReportTextColumns...)}
}

// ColumnMissing is the absent-value tally of one column.
type ColumnMissing struct {
	Column  string  `yaml:"column"`
	Count   int     `yaml:"count"`
	Percent float64 `yaml:"percent"`
}

// Check is the result of one predicate tally. Skipped is set when the checked
// column is not present; Count is then zero.
type Check struct {
	Name    string `yaml:"name"`
	Column  string `yaml:"column"`
	Count   int    `yaml:"count"`
	Skipped bool   `yaml:"skipped,omitempty"`
}

// Report is the full data-quality report.
type Report struct {
	GeneratedAt  time.Time       `yaml:"generated_at"`
	Rows         int             `yaml:"rows"`
	Columns      int             `yaml:"columns"`
	Missing      []ColumnMissing `yaml:"missing"`
	EmptyColumns []string        `yaml:"empty_columns"`
	Checks       []Check         `yaml:"checks"`
	BlankLike    []Check         `yaml:"blank_like"`
}

// Validate runs every check independently over t. No check excludes a row
// because of a value in another column.
func Validate(t *domain.Table, opts Options) Report {
	missing := Missing(t)
	r := Report{
		GeneratedAt:  domain.Now().UTC().Truncate(time.Second),
		Rows:         t.NumRows(),
		Columns:      t.NumCols(),
		Missing:      missing,
		EmptyColumns: []string{},
	}
	for _, m := range missing {
		if m.Count == t.NumRows() {
			r.EmptyColumns = append(r.EmptyColumns, m.Column)
		}
	}

	r.Checks = []Check{
		countFloat(t, "invalid_latitude", domain.ColDecimalLatitude, outside(domain.MinLatitude, domain.MaxLatitude)),
		countFloat(t, "invalid_longitude", domain.ColDecimalLongitude, outside(domain.MinLongitude, domain.MaxLongitude)),
		countFloat(t, "invalid_year", domain.ColYear, outside(domain.ReportMinYear, domain.MaxYear)),
		countFloat(t, "negative_individual_count", domain.ColIndividualCount, negative),
		countFloat(t, "negative_coordinate_uncertainty", domain.ColCoordinateUncertainty, negative),
		count(t, "invalid_country_code", domain.ColCountryCode, func(c domain.Cell) bool {
			s, ok := c.Get()
			return ok && !countryCodePattern.MatchString(s)
		}),
	}

	for _, col := range opts.TextColumns {
		r.BlankLike = append(r.BlankLike, count(t, "blank_like", col, domain.IsBlankLike))
	}
	return r
}

// Missing returns the absent-value count and percentage (two decimals) of
// every column, in column order.
func Missing(t *domain.Table) []ColumnMissing {
	out := make([]ColumnMissing, 0, t.NumCols())
	for _, name := range t.Columns() {
		cells, _ := t.Column(name)
		n := 0
		for _, c := range cells {
			if !c.Present() {
				n++
			}
		}
		out = append(out, ColumnMissing{Column: name, Count: n, Percent: percent(n, t.NumRows())})
	}
	return out
}

// SortByPercent orders missing tallies by percentage descending, keeping
// column order among equal percentages.
func SortByPercent(m []ColumnMissing) []ColumnMissing {
	out := append([]ColumnMissing(nil), m...)
	sort.SliceStable(out, func(i, j int) bool { return out[i].Percent > out[j].Percent })
	return out
}

func percent(n, total int) float64 {
	if total == 0 {
		return 0
	}
	return math.Round(float64(n)*10000/float64(total)) / 100
}

func outside(lo, hi float64) func(float64) bool {
	return func(v float64) bool { return v < lo || v > hi }
}

func negative(v float64) bool { return v < 0 }

// countFloat tallies present, parseable values matching pred. Unparsable
// values are ignored.
func countFloat(t *domain.Table, name, col string, pred func(float64) bool) Check {
	return count(t, name, col, func(c domain.Cell) bool {
		v, ok := domain.ParseFloat(c).Get()
		return ok && pred(v)
	})
}

func count(t *domain.Table, name, col string, pred func(domain.Cell) bool) Check {
	cells, ok := t.Column(col)
	if !ok {
		return Check{Name: name, Column: col, Skipped: true}
	}
	n := 0
	for _, c := range cells {
		if pred(c) {
			n++
		}
	}
	return Check{Name: name, Column: col, Count: n}
}
