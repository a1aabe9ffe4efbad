package profile

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

var checkLabels = map[string]string{
	"invalid_latitude":                "Invalid latitudes",
	"invalid_longitude":               "Invalid longitudes",
	"invalid_year":                    "Invalid years",
	"negative_individual_count":       "Negative individualCount",
	"negative_coordinate_uncertainty": "Negative coordinateUncertaintyInMeters",
	"invalid_country_code":            "Invalid country codes",
}

// WriteText renders the report for humans.
func WriteText(w io.Writer, r Report) error {
	var b strings.Builder
	section := func(title string) {
		b.WriteString("\n=== " + title + " ===\n")
	}

	section("BASIC INFO")
	fmt.Fprintf(&b, "Generated at: %s\n", r.GeneratedAt.Format(time.RFC3339))
	fmt.Fprintf(&b, "Shape (rows, columns): (%d, %d)\n", r.Rows, r.Columns)

	section("MISSING VALUES")
	WriteMissing(&b, r.Missing)

	section("COMPLETELY EMPTY COLUMNS")
	if len(r.EmptyColumns) == 0 {
		b.WriteString("  (none)\n")
	}
	for _, c := range r.EmptyColumns {
		fmt.Fprintf(&b, "  %s\n", c)
	}

	section("INCONSISTENCY CHECKS")
	for _, c := range r.Checks {
		label := checkLabels[c.Name]
		if label == "" {
			label = c.Name
		}
		writeCheck(&b, label, c)
	}
	for _, c := range r.BlankLike {
		writeCheck(&b, "Blank-like values in "+c.Column, c)
	}

	_, err := io.WriteString(w, b.String())
	return err
}

// WriteMissing renders per-column missing counts and percentages, one line
// per column in the given order.
func WriteMissing(w io.Writer, m []ColumnMissing) {
	width := 0
	for _, c := range m {
		width = max(width, len(c.Column))
	}
	for _, c := range m {
		fmt.Fprintf(w, "  %-*s %8d  %6.2f%%\n", width, c.Column, c.Count, c.Percent)
	}
}

func writeCheck(b *strings.Builder, label string, c Check) {
	if c.Skipped {
		fmt.Fprintf(b, "  %-44s column not present\n", label+":")
		return
	}
	fmt.Fprintf(b, "  %-44s %d\n", label+":", c.Count)
}

// WriteYAML encodes the report as YAML.
func WriteYAML(w io.Writer, r Report) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(r); err != nil {
		return fmt.Errorf("encode profile report: %w", err)
	}
	return enc.Close()
}

// SaveYAML writes the YAML report to path.
func SaveYAML(path string, r Report) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create profile report: %w", err)
	}
	if err := WriteYAML(f, r); err != nil {
		_ = f.Close()
		return err
	}
	return f.Close()
}
