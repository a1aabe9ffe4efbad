package analysis

import (
	"fmt"
	"io"
	"strings"
)

// WriteText renders the report for humans.
func WriteText(w io.Writer, r Report) error {
	var b strings.Builder
	fmt.Fprintf(&b, "Rows: %d\n", r.Rows)

	writeDistribution(&b, "KINGDOM DISTRIBUTION", r.Kingdom)
	writeDistribution(&b, "PHYLUM DISTRIBUTION (Top 10)", r.Phylum)
	writeDistribution(&b, "ORDER DISTRIBUTION (Top 10)", r.Order)
	for _, d := range r.Taxonomy {
		writeDistribution(&b, strings.ToUpper(d.Column)+" DISTRIBUTION", d)
	}
	writeDistribution(&b, "TOP 20 COUNTRIES BY RECORD COUNT", r.Country)
	writeDistribution(&b, "TOP 20 STATES/PROVINCES", r.State)

	b.WriteString("\n=== COORDINATE EXTENT ===\n")
	if r.Extent.Points == 0 {
		b.WriteString("  no rows with coordinates\n")
	} else {
		fmt.Fprintf(&b, "  points:    %d\n", r.Extent.Points)
		fmt.Fprintf(&b, "  latitude:  [%g, %g]\n", r.Extent.MinLatitude, r.Extent.MaxLatitude)
		fmt.Fprintf(&b, "  longitude: [%g, %g]\n", r.Extent.MinLongitude, r.Extent.MaxLongitude)
	}

	_, err := io.WriteString(w, b.String())
	return err
}

func writeDistribution(b *strings.Builder, title string, d Distribution) {
	fmt.Fprintf(b, "\n=== %s ===\n", title)
	if d.Missing {
		fmt.Fprintf(b, "  column %q not found in dataset\n", d.Column)
		return
	}
	width := 0
	for _, v := range d.Values {
		width = max(width, len(v.Value))
	}
	for _, v := range d.Values {
		fmt.Fprintf(b, "  %-*s %8d  (%.2f%%)\n", width, v.Value, v.Count, v.Percent)
	}
	if len(d.Values) < d.Distinct {
		fmt.Fprintf(b, "  ... %d more of %d distinct values\n", d.Distinct-len(d.Values), d.Distinct)
	}
}
