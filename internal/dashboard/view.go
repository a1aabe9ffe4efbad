package dashboard

import (
	"fmt"
	"slices"
	"strings"

	"github.com/aalokdhekne-creator/GBIF-Dashboard/internal/analysis"
	"github.com/aalokdhekne-creator/GBIF-Dashboard/internal/domain"
)

// DefaultLevel is the taxonomic level of the top-N breakdown when none is chosen.
const DefaultLevel = "Kingdom"

// TopLevelLimit is the number of values in the taxonomic breakdown.
const TopLevelLimit = 10

// unknownValue labels rows whose chosen taxonomic level is absent.
const unknownValue = "Unknown"

var levelColumns = map[string]string{
	"Kingdom": domain.ColKingdom,
	"Phylum":  domain.ColPhylum,
	"Class":   domain.ColClass,
	"Order":   domain.ColOrder,
	"Family":  domain.ColFamily,
	"Genus":   domain.ColGenus,
	"Species": domain.ColSpecies,
}

// LevelNames returns the selectable taxonomic levels from broadest to narrowest.
func LevelNames() []string {
	return []string{"Kingdom", "Phylum", "Class", "Order", "Family", "Genus", "Species"}
}

// ParseLevel matches a level name case-insensitively. Empty means DefaultLevel.
func ParseLevel(s string) (string, error) {
	if s == "" {
		return DefaultLevel, nil
	}
	for _, name := range LevelNames() {
		if strings.EqualFold(name, s) {
			return name, nil
		}
	}
	return "", fmt.Errorf("unknown taxonomic level %q", s)
}

// Options are the display settings of a view.
type Options struct {
	Level      string
	Clusters   bool
	Heatmap    bool
	PointLimit int
}

// DefaultOptions shows kingdoms, clusters the map and draws no heatmap.
func DefaultOptions() Options {
	return Options{Level: DefaultLevel, Clusters: true, PointLimit: 2000}
}

// Summary holds the headline counts of the filtered rows.
type Summary struct {
	TotalRecords   int `json:"total_records"`
	UniqueSpecies  int `json:"unique_species"`
	UniqueGenera   int `json:"unique_genera"`
	UniqueFamilies int `json:"unique_families"`
}

// Bucket is one group of a time series.
type Bucket struct {
	Key   int `json:"key"`
	Count int `json:"count"`
}

// LevelCount is one entry of the taxonomic breakdown.
type LevelCount struct {
	Value string `json:"value"`
	Count int    `json:"count"`
}

// ViewState is everything the dashboard renders for one filter selection.
type ViewState struct {
	Summary  Summary      `json:"summary"`
	Map      MapView      `json:"map"`
	Yearly   []Bucket     `json:"yearly"`
	Monthly  []Bucket     `json:"monthly"`
	Level    string       `json:"level"`
	TopLevel []LevelCount `json:"top_level"`
	Error    string       `json:"error,omitempty"`
}

// ComputeView recomputes every aggregate from the rows of t matching f.
// Unknown levels fall back to DefaultLevel.
func ComputeView(t *domain.Table, f Filters, opts Options) ViewState {
	rows := Mask(t, f)
	level, err := ParseLevel(opts.Level)
	if err != nil {
		level = DefaultLevel
	}

	return ViewState{
		Summary: Summary{
			TotalRecords:   len(rows),
			UniqueSpecies:  countDistinct(t, rows, domain.ColSpecies),
			UniqueGenera:   countDistinct(t, rows, domain.ColGenus),
			UniqueFamilies: countDistinct(t, rows, domain.ColFamily),
		},
		Map:      computeMap(t, rows, f, opts),
		Yearly:   groupInt(t, rows, domain.ColYear),
		Monthly:  groupInt(t, rows, domain.ColMonth),
		Level:    level,
		TopLevel: topLevel(t, rows, levelColumns[level]),
	}
}

// EmptyView is the view shown when no dataset is loaded.
func EmptyView(message string) ViewState {
	return ViewState{
		Map:      emptyMap(),
		Yearly:   []Bucket{},
		Monthly:  []Bucket{},
		Level:    DefaultLevel,
		TopLevel: []LevelCount{},
		Error:    message,
	}
}

func countDistinct(t *domain.Table, rows []int, column string) int {
	if !t.Has(column) {
		return 0
	}
	seen := make(map[string]bool)
	for _, r := range rows {
		if s, ok := t.Cell(r, column).Get(); ok {
			seen[s] = true
		}
	}
	return len(seen)
}

// groupInt counts rows per integer value of column, ascending. Absent or
// non-integer values are not grouped.
func groupInt(t *domain.Table, rows []int, column string) []Bucket {
	counts := make(map[int]int)
	for _, r := range rows {
		if v, ok := domain.ParseInt(t.Cell(r, column)).Get(); ok {
			counts[int(v)]++
		}
	}
	out := make([]Bucket, 0, len(counts))
	for k, n := range counts {
		out = append(out, Bucket{Key: k, Count: n})
	}
	slices.SortFunc(out, func(a, b Bucket) int { return a.Key - b.Key })
	return out
}

func topLevel(t *domain.Table, rows []int, column string) []LevelCount {
	counts := make(map[string]int)
	for _, r := range rows {
		counts[t.Cell(r, column).OrElse(unknownValue)]++
	}
	top := analysis.TopN(counts, TopLevelLimit)
	out := make([]LevelCount, len(top))
	for i, v := range top {
		out[i] = LevelCount{Value: v.Value, Count: v.Count}
	}
	return out
}
