// Package analysis computes the frequency distributions and coordinate extent
// of a cleaned occurrence table.
package analysis

import (
	"math"
	"sort"

	"github.com/aalokdhekne-creator/GBIF-Dashboard/internal/domain"
)

// ValueCount is one distinct value and how many rows hold it.
type ValueCount struct {
	Value   string
	Count   int
	Percent float64
}

// Distribution is the value counts of one column. Absent cells are excluded
// from both the counts and the percentage base. Missing is set when the
// column is not present.
type Distribution struct {
	Column   string
	Total    int
	Distinct int
	Values   []ValueCount
	Missing  bool
}

// ValueCounts counts the present values of a column, most frequent first with
// ties broken by value ascending. limit <= 0 keeps every value.
func ValueCounts(t *domain.Table, column string, limit int) Distribution {
	cells, ok := t.Column(column)
	if !ok {
		return Distribution{Column: column, Missing: true}
	}
	counts := make(map[string]int)
	total := 0
	for _, c := range cells {
		if s, ok := c.Get(); ok {
			counts[s]++
			total++
		}
	}
	return Distribution{
		Column:   column,
		Total:    total,
		Distinct: len(counts),
		Values:   topN(counts, total, limit),
	}
}

// TopN ranks counts the way ValueCounts does. Percentages are relative to
// total and rounded to two decimals.
func TopN(counts map[string]int, limit int) []ValueCount {
	total := 0
	for _, n := range counts {
		total += n
	}
	return topN(counts, total, limit)
}

func topN(counts map[string]int, total, limit int) []ValueCount {
	out := make([]ValueCount, 0, len(counts))
	for v, n := range counts {
		out = append(out, ValueCount{Value: v, Count: n, Percent: percent(n, total)})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].Value < out[j].Value
	})
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out
}

func percent(n, total int) float64 {
	if total == 0 {
		return 0
	}
	return math.Round(float64(n)*10000/float64(total)) / 100
}

// Extent is the bounding box of the rows with both coordinates present.
type Extent struct {
	Points       int
	MinLatitude  float64
	MaxLatitude  float64
	MinLongitude float64
	MaxLongitude float64
}

// CoordinateExtent scans latitude and longitude. Points is zero when no row
// has both.
func CoordinateExtent(t *domain.Table) Extent {
	var e Extent
	for r := 0; r < t.NumRows(); r++ {
		lat, okLat := domain.ParseFloat(t.Cell(r, domain.ColDecimalLatitude)).Get()
		lon, okLon := domain.ParseFloat(t.Cell(r, domain.ColDecimalLongitude)).Get()
		if !okLat || !okLon {
			continue
		}
		if e.Points == 0 {
			e.MinLatitude, e.MaxLatitude = lat, lat
			e.MinLongitude, e.MaxLongitude = lon, lon
		}
		e.Points++
		e.MinLatitude = math.Min(e.MinLatitude, lat)
		e.MaxLatitude = math.Max(e.MaxLatitude, lat)
		e.MinLongitude = math.Min(e.MinLongitude, lon)
		e.MaxLongitude = math.Max(e.MaxLongitude, lon)
	}
	return e
}

// Report is the full exploratory summary.
type Report struct {
	Rows     int
	Kingdom  Distribution
	Phylum   Distribution
	Order    Distribution
	Taxonomy []Distribution
	Country  Distribution
	State    Distribution
	Extent   Extent
}

// Analyze builds the report: every kingdom, the ten most frequent phyla and
// orders, full distributions per taxonomic rank, the twenty most frequent
// countries and states, and the coordinate extent.
func Analyze(t *domain.Table) Report {
	r := Report{
		Rows:    t.NumRows(),
		Kingdom: ValueCounts(t, domain.ColKingdom, 0),
		Phylum:  ValueCounts(t, domain.ColPhylum, 10),
		Order:   ValueCounts(t, domain.ColOrder, 10),
		Country: ValueCounts(t, domain.ColCountryCode, 20),
		State:   ValueCounts(t, domain.ColStateProvince, 20),
		Extent:  CoordinateExtent(t),
	}
	for _, col := range domain.TaxonomyColumns {
		r.Taxonomy = append(r.Taxonomy, ValueCounts(t, col, 0))
	}
	return r
}
