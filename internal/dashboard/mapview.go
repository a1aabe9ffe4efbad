package dashboard

import (
	"slices"
	"strings"

	"github.com/mmcloughlin/geohash"

	"github.com/aalokdhekne-creator/GBIF-Dashboard/internal/domain"
)

// Map centering when no filtered row has coordinates.
const (
	defaultCenterLat = 20.0
	defaultCenterLon = 0.0
	defaultZoom      = 2
)

// TooManyPointsWarning is set when individual points are requested but the
// filtered set is too large; the view falls back to a heatmap.
const TooManyPointsWarning = "Too many points to display without clustering. Showing heatmap instead."

// Point is one located occurrence.
type Point struct {
	Lat     float64 `json:"lat"`
	Lon     float64 `json:"lon"`
	Species string  `json:"species,omitempty"`
}

// Cluster is a group of points sharing a geohash cell, placed at their mean.
type Cluster struct {
	Geohash string  `json:"geohash"`
	Lat     float64 `json:"lat"`
	Lon     float64 `json:"lon"`
	Count   int     `json:"count"`
}

// HeatCell is the weight of one geohash cell, placed at the cell center.
type HeatCell struct {
	Geohash string  `json:"geohash"`
	Lat     float64 `json:"lat"`
	Lon     float64 `json:"lon"`
	Weight  int     `json:"weight"`
}

// MapView describes the map layers of a view.
type MapView struct {
	CenterLat float64    `json:"center_lat"`
	CenterLon float64    `json:"center_lon"`
	Zoom      int        `json:"zoom"`
	Located   int        `json:"located"`
	Clusters  []Cluster  `json:"clusters,omitempty"`
	Points    []Point    `json:"points,omitempty"`
	Heatmap   []HeatCell `json:"heatmap,omitempty"`
	Warning   string     `json:"warning,omitempty"`
}

func emptyMap() MapView {
	return MapView{CenterLat: defaultCenterLat, CenterLon: defaultCenterLon, Zoom: defaultZoom}
}

// clusterPrecision picks the geohash length for a zoom level; wider maps get
// coarser cells.
func clusterPrecision(zoom int) uint {
	switch {
	case zoom <= 2:
		return 2
	case zoom <= 4:
		return 3
	case zoom == 5:
		return 4
	default:
		return 5
	}
}

func computeMap(t *domain.Table, rows []int, f Filters, opts Options) MapView {
	points := make([]Point, 0, len(rows))
	var sumLat, sumLon float64
	for _, r := range rows {
		lat, okLat := domain.ParseFloat(t.Cell(r, domain.ColDecimalLatitude)).Get()
		lon, okLon := domain.ParseFloat(t.Cell(r, domain.ColDecimalLongitude)).Get()
		if !okLat || !okLon {
			continue
		}
		points = append(points, Point{Lat: lat, Lon: lon, Species: t.Cell(r, domain.ColSpecies).OrElse("")})
		sumLat += lat
		sumLon += lon
	}

	m := emptyMap()
	m.Located = len(points)
	if len(points) > 0 {
		m.CenterLat = sumLat / float64(len(points))
		m.CenterLon = sumLon / float64(len(points))
		m.Zoom = 3
		if f.Country != "" && f.Country != AllCountries {
			m.Zoom = 5
		}
	}
	if f.Species != "" {
		m.Zoom = 6
	}

	limit := opts.PointLimit
	if limit <= 0 {
		limit = DefaultOptions().PointLimit
	}
	heatmap := opts.Heatmap
	precision := clusterPrecision(m.Zoom)

	switch {
	case opts.Clusters && len(points) > 0:
		m.Clusters = clusters(points, precision)
	case !opts.Clusters && len(points) < limit:
		m.Points = points
	case !opts.Clusters:
		m.Warning = TooManyPointsWarning
		heatmap = true
	}
	if heatmap && len(points) > 0 {
		m.Heatmap = heatCells(points, precision+1)
	}
	return m
}

func clusters(points []Point, precision uint) []Cluster {
	type acc struct {
		lat, lon float64
		n        int
	}
	cells := make(map[string]*acc)
	for _, p := range points {
		h := geohash.EncodeWithPrecision(p.Lat, p.Lon, precision)
		a := cells[h]
		if a == nil {
			a = &acc{}
			cells[h] = a
		}
		a.lat += p.Lat
		a.lon += p.Lon
		a.n++
	}
	out := make([]Cluster, 0, len(cells))
	for h, a := range cells {
		out = append(out, Cluster{Geohash: h, Lat: a.lat / float64(a.n), Lon: a.lon / float64(a.n), Count: a.n})
	}
	slices.SortFunc(out, func(a, b Cluster) int {
		if a.Count != b.Count {
			return b.Count - a.Count
		}
		return strings.Compare(a.Geohash, b.Geohash)
	})
	return out
}

func heatCells(points []Point, precision uint) []HeatCell {
	weights := make(map[string]int)
	for _, p := range points {
		weights[geohash.EncodeWithPrecision(p.Lat, p.Lon, precision)]++
	}
	out := make([]HeatCell, 0, len(weights))
	for h, w := range weights {
		lat, lon := geohash.DecodeCenter(h)
		out = append(out, HeatCell{Geohash: h, Lat: lat, Lon: lon, Weight: w})
	}
	slices.SortFunc(out, func(a, b HeatCell) int { return strings.Compare(a.Geohash, b.Geohash) })
	return out
}
