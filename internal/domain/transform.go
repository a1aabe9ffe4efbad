package domain

import "time"

// DropEmptyColumns removes the always-empty extract columns. Columns that are
// already absent are ignored.
func DropEmptyColumns(t *Table) *Table {
	return t.Drop(EmptyColumns...)
}

// NormalizeTextColumns trims the free-text columns and maps "", "nan" and
// "None" to absent. Columns missing from the table are skipped.
func NormalizeTextColumns(t *Table, columns []string) *Table {
	for _, name := range columns {
		if !t.Has(name) {
			continue
		}
		t = t.WithColumn(name, t.Map(name, NormalizeText))
	}
	return t
}

// DefaultCountryCode replaces absent country codes with UnknownCountry. A
// table without the column gains one filled with UnknownCountry, so the column
// is never absent afterwards.
func DefaultCountryCode(t *Table) *Table {
	return t.WithColumn(ColCountryCode, t.Map(ColCountryCode, func(c Cell) Cell {
		if c.Present() {
			return c
		}
		return Text(UnknownCountry)
	}))
}

// FlagMissingSpeciesKey adds speciesKey_missing, true where speciesKey is
// absent (every row when the column itself is missing).
func FlagMissingSpeciesKey(t *Table) *Table {
	return t.WithColumn(ColSpeciesKeyMissing, t.Map(ColSpeciesKey, func(c Cell) Cell {
		return Text(FormatBool(!c.Present()))
	}))
}

// ParseEventDates rewrites eventDate canonically and derives year, month and
// day from it. Unparsable dates, including impossible calendar dates such as
// "1999-13-40", become absent together with their derived parts.
func ParseEventDates(t *Table) *Table {
	dates := make([]Opt[time.Time], t.NumRows())
	canonical := t.Map(ColEventDate, func(c Cell) Cell { return c })
	for r := range dates {
		dates[r] = ParseDate(canonical[r])
		if d, ok := dates[r].Get(); ok {
			canonical[r] = Text(FormatDate(d))
		} else {
			canonical[r] = Absent()
		}
	}
	t = t.WithColumn(ColEventDate, canonical)
	return withDateParts(t, dates, true)
}

// DeriveYearMonth re-derives year and month from eventDate, overwriting any
// existing columns. Day is left as it is.
func DeriveYearMonth(t *Table) *Table {
	dates := make([]Opt[time.Time], t.NumRows())
	for r := range dates {
		dates[r] = ParseDate(t.Cell(r, ColEventDate))
	}
	return withDateParts(t, dates, false)
}

func withDateParts(t *Table, dates []Opt[time.Time], withDay bool) *Table {
	part := func(fn func(time.Time) int) []Cell {
		out := make([]Cell, len(dates))
		for r, d := range dates {
			if v, ok := d.Get(); ok {
				out[r] = Text(FormatInt(int64(fn(v))))
			}
		}
		return out
	}
	t = t.WithColumn(ColYear, part(time.Time.Year))
	t = t.WithColumn(ColMonth, part(func(v time.Time) int { return int(v.Month()) }))
	if withDay {
		t = t.WithColumn(ColDay, part(time.Time.Day))
	}
	return t
}

// FilterYearRange keeps rows whose year is present and within [lo, hi].
func FilterYearRange(t *Table, lo, hi int) *Table {
	return t.Filter(func(r int) bool {
		y, ok := ParseInt(t.Cell(r, ColYear)).Get()
		return ok && y >= int64(lo) && y <= int64(hi)
	})
}

// CleanCoordinates coerces latitude and longitude to numbers and keeps rows
// where both are present and in range.
func CleanCoordinates(t *Table) *Table {
	t = t.WithColumn(ColDecimalLatitude, t.Map(ColDecimalLatitude, floatCell))
	t = t.WithColumn(ColDecimalLongitude, t.Map(ColDecimalLongitude, floatCell))
	return t.Filter(func(r int) bool {
		lat, okLat := ParseFloat(t.Cell(r, ColDecimalLatitude)).Get()
		lon, okLon := ParseFloat(t.Cell(r, ColDecimalLongitude)).Get()
		return okLat && okLon &&
			lat >= MinLatitude && lat <= MaxLatitude &&
			lon >= MinLongitude && lon <= MaxLongitude
	})
}

// FilterUncertainty coerces coordinate uncertainty to a number and keeps rows
// where it is absent or at most maxMeters. The value itself is not clamped.
// A table without the column is returned unchanged.
func FilterUncertainty(t *Table, maxMeters float64) *Table {
	if !t.Has(ColCoordinateUncertainty) {
		return t
	}
	t = t.WithColumn(ColCoordinateUncertainty, t.Map(ColCoordinateUncertainty, floatCell))
	return t.Filter(func(r int) bool {
		u, ok := ParseFloat(t.Cell(r, ColCoordinateUncertainty)).Get()
		return !ok || u <= maxMeters
	})
}

// Rule is one named, pure step of the cleaning sequence.
type Rule struct {
	Name  string
	Apply func(*Table) *Table
}

// CleaningRules returns the cleaning sequence in the order it must run: drops
// before anything that could reference a dropped column, numeric coercion of
// uncertainty inside the same rule that filters on it.
func CleaningRules() []Rule {
	return []Rule{
		{Name: "drop_empty_columns", Apply: DropEmptyColumns},
		{Name: "normalize_text", Apply: func(t *Table) *Table { return NormalizeTextColumns(t, CleanTextColumns) }},
		{Name: "default_country_code", Apply: DefaultCountryCode},
		{Name: "flag_missing_species_key", Apply: FlagMissingSpeciesKey},
		{Name: "parse_event_date", Apply: ParseEventDates},
		{Name: "filter_year_range", Apply: func(t *Table) *Table { return FilterYearRange(t, CleanMinYear, MaxYear) }},
		{Name: "clean_coordinates", Apply: CleanCoordinates},
		{Name: "filter_uncertainty", Apply: func(t *Table) *Table { return FilterUncertainty(t, MaxUncertaintyMeters) }},
	}
}

// Clean applies every cleaning rule in order.
func Clean(t *Table) *Table {
	for _, rule := range CleaningRules() {
		t = rule.Apply(t)
	}
	return t
}
