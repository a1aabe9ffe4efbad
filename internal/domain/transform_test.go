package domain

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testUnknownDate = "1999-13-40"

// rawFixture builds a raw extract where each row exercises one cleaning rule.
func rawFixture(t *testing.T) *Table {
	t.Helper()
	names := []string{
		ColGBIFID, ColDecimalLatitude, ColDecimalLongitude, ColCoordinateUncertainty,
		ColCountryCode, ColStateProvince, ColLocality, ColMediaType, ColEventDate,
		ColYear, ColIndividualCount, ColSpeciesKey, ColKingdom, ColSpecies, "elevation",
	}
	row := func(vals ...string) []Cell {
		cells := make([]Cell, len(vals))
		for i, v := range vals {
			if v != "" {
				cells[i] = Text(v)
			}
		}
		return cells
	}
	tbl, err := NewTable(names, [][]Cell{
		row("1", "45.5", "-73.25", "30", "CA", " Quebec ", "Montreal", "StillImage", "2019-05-04", "2019", "1", "5219243", "Animalia", "Vulpes vulpes", "100"),
		row("2", "10", "10", "", "", " None ", "", "", "2001-07-15T10:30:00Z", "", "", "", "Plantae", "Quercus robur", ""),
		row("3", "10", "10", "", "FR", "", "", "", testUnknownDate, "1999", "", "1", "Plantae", "Quercus robur", ""),
		row("4", "91", "10", "", "FR", "", "", "", "2010-01-01", "2010", "", "1", "Fungi", "Amanita muscaria", ""),
		row("5", "abc", "10", "", "FR", "", "", "", "2010-01-01", "2010", "", "1", "Fungi", "Amanita muscaria", ""),
		row("6", "10", "10", "15000", "FR", "", "", "", "2010-01-01", "2010", "", "1", "Fungi", "Amanita muscaria", ""),
		row("7", "10", "10", "9999", "FR", "nan", "", "", "2010-01-01", "2010", "", "1", "Fungi", "Amanita muscaria", ""),
		row("8", "10", "10", "", "FR", "", "", "", "1750-06-01", "1750", "", "1", "Fungi", "Amanita muscaria", ""),
		row("9", "-90", "180", "not-a-number", "DE", "", "", "", "2025-12-31", "2025", "", "2", "Animalia", "Sus scrofa", ""),
	})
	require.NoError(t, err)
	return tbl
}

func gbifIDs(t *Table) []string {
	ids := make([]string, t.NumRows())
	for r := range ids {
		ids[r] = t.Cell(r, ColGBIFID).OrElse("")
	}
	return ids
}

func TestDropEmptyColumns(t *testing.T) {
	t.Run("present columns are removed", func(t *testing.T) {
		out := DropEmptyColumns(rawFixture(t))
		for _, name := range EmptyColumns {
			assert.False(t, out.Has(name), name)
		}
		assert.True(t, out.Has(ColDecimalLatitude))
	})

	t.Run("absent columns are a no-op", func(t *testing.T) {
		tbl, err := NewTable([]string{ColGBIFID}, [][]Cell{{Text("1")}})
		require.NoError(t, err)
		out := DropEmptyColumns(tbl)
		assert.Equal(t, []string{ColGBIFID}, out.Columns())
		assert.Equal(t, 1, out.NumRows())
	})
}

func TestNormalizeTextColumns(t *testing.T) {
	tbl, err := NewTable([]string{ColStateProvince, ColHabitat}, [][]Cell{
		{Text(" None "), Text(" forest ")},
		{Text("nan"), Text("")},
		{Text("  "), Absent()},
		{Text(" Ontario"), Text("None")},
	})
	require.NoError(t, err)

	out := NormalizeTextColumns(tbl, []string{ColStateProvince, ColHabitat, ColMediaType})

	state, _ := out.Column(ColStateProvince)
	assert.Equal(t, []Cell{Absent(), Absent(), Absent(), Text("Ontario")}, state)
	habitat, _ := out.Column(ColHabitat)
	assert.Equal(t, []Cell{Text("forest"), Absent(), Absent(), Absent()}, habitat)
	assert.False(t, out.Has(ColMediaType), "missing columns are not created")
}

func TestDefaultCountryCode(t *testing.T) {
	t.Run("absent becomes Unknown", func(t *testing.T) {
		tbl, err := NewTable([]string{ColCountryCode}, [][]Cell{{Text("US")}, {Absent()}})
		require.NoError(t, err)
		col, _ := DefaultCountryCode(tbl).Column(ColCountryCode)
		assert.Equal(t, []Cell{Text("US"), Text(UnknownCountry)}, col)
	})

	t.Run("missing column is created", func(t *testing.T) {
		tbl, err := NewTable([]string{ColGBIFID}, [][]Cell{{Text("1")}, {Text("2")}})
		require.NoError(t, err)
		col, ok := DefaultCountryCode(tbl).Column(ColCountryCode)
		require.True(t, ok)
		assert.Equal(t, []Cell{Text(UnknownCountry), Text(UnknownCountry)}, col)
	})
}

func TestFlagMissingSpeciesKey(t *testing.T) {
	tbl, err := NewTable([]string{ColSpeciesKey}, [][]Cell{{Text("12")}, {Absent()}})
	require.NoError(t, err)
	col, ok := FlagMissingSpeciesKey(tbl).Column(ColSpeciesKeyMissing)
	require.True(t, ok)
	assert.Equal(t, []Cell{Text("false"), Text("true")}, col)
}

func TestParseEventDates(t *testing.T) {
	tbl, err := NewTable([]string{ColEventDate, ColYear}, [][]Cell{
		{Text("2019-05-04"), Text("1900")},
		{Text("2001-07-15T10:30:00Z"), Absent()},
		{Text(testUnknownDate), Text("1999")},
		{Text("2019-05-01/2019-05-03"), Absent()},
		{Absent(), Absent()},
		{Text("2020-02"), Absent()},
	})
	require.NoError(t, err)

	out := ParseEventDates(tbl)

	dates, _ := out.Column(ColEventDate)
	assert.Equal(t, []Cell{
		Text("2019-05-04"), Text("2001-07-15T10:30:00Z"), Absent(), Absent(), Absent(), Text("2020-02-01"),
	}, dates)

	years, _ := out.Column(ColYear)
	assert.Equal(t, []Cell{Text("2019"), Text("2001"), Absent(), Absent(), Absent(), Text("2020")}, years)
	months, _ := out.Column(ColMonth)
	assert.Equal(t, []Cell{Text("5"), Text("7"), Absent(), Absent(), Absent(), Text("2")}, months)
	days, _ := out.Column(ColDay)
	assert.Equal(t, []Cell{Text("4"), Text("15"), Absent(), Absent(), Absent(), Text("1")}, days)
}

func TestDeriveYearMonth_ToleratesDerivedColumns(t *testing.T) {
	tbl, err := NewTable([]string{ColEventDate, ColYear, ColMonth, ColDay}, [][]Cell{
		{Text("2019-05-04"), Text("2019"), Text("5"), Text("4")},
		{Text("garbage"), Text("2000"), Text("1"), Text("9")},
	})
	require.NoError(t, err)

	out := DeriveYearMonth(tbl)

	assert.Equal(t, []string{ColEventDate, ColYear, ColMonth, ColDay}, out.Columns())
	assert.Equal(t, Text("2019"), out.Cell(0, ColYear))
	assert.Equal(t, Absent(), out.Cell(1, ColYear))
	assert.Equal(t, Absent(), out.Cell(1, ColMonth))
	assert.Equal(t, Text("9"), out.Cell(1, ColDay), "day is not re-derived")
}

func TestFilterUncertainty(t *testing.T) {
	tests := []struct {
		name  string
		value Cell
		keep  bool
	}{
		{"above threshold", Text("15000"), false},
		{"below threshold", Text("9999"), true},
		{"at threshold", Text("10000"), true},
		{"absent", Absent(), true},
		{"unparsable", Text("approx 5km"), true},
		{"negative", Text("-5"), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tbl, err := NewTable([]string{ColCoordinateUncertainty}, [][]Cell{{tt.value}})
			require.NoError(t, err)
			out := FilterUncertainty(tbl, MaxUncertaintyMeters)
			assert.Equal(t, tt.keep, out.NumRows() == 1)
		})
	}
}

func TestCleanCoordinates(t *testing.T) {
	tbl, err := NewTable([]string{ColDecimalLatitude, ColDecimalLongitude}, [][]Cell{
		{Text("45.500"), Text("-73.25")},
		{Text("90"), Text("-180")},
		{Text("90.0001"), Text("0")},
		{Text("0"), Text("180.5")},
		{Absent(), Text("0")},
		{Text("NaN"), Text("0")},
		{Text(" 12 "), Text("1e1")},
	})
	require.NoError(t, err)

	out := CleanCoordinates(tbl)

	lat, _ := out.Column(ColDecimalLatitude)
	lon, _ := out.Column(ColDecimalLongitude)
	assert.Equal(t, []Cell{Text("45.5"), Text("90"), Text("12")}, lat)
	assert.Equal(t, []Cell{Text("-73.25"), Text("-180"), Text("10")}, lon)
}

func TestClean_Examples(t *testing.T) {
	out := Clean(rawFixture(t))

	assert.Equal(t, []string{"1", "2", "7", "9"}, gbifIDs(out))

	t.Run("invalid calendar date is dropped", func(t *testing.T) {
		assert.NotContains(t, gbifIDs(out), "3")
	})

	t.Run("absent country code is defaulted and kept", func(t *testing.T) {
		assert.Equal(t, Text(UnknownCountry), out.Cell(1, ColCountryCode))
	})

	t.Run("uncertainty 15000 dropped, 9999 kept", func(t *testing.T) {
		assert.NotContains(t, gbifIDs(out), "6")
		assert.Equal(t, Text("9999"), out.Cell(2, ColCoordinateUncertainty))
	})

	t.Run("padded None state normalized", func(t *testing.T) {
		assert.Equal(t, Absent(), out.Cell(1, ColStateProvince))
		assert.Equal(t, Text("Quebec"), out.Cell(0, ColStateProvince))
	})

	t.Run("unparsable uncertainty becomes absent and is kept", func(t *testing.T) {
		assert.Equal(t, Absent(), out.Cell(3, ColCoordinateUncertainty))
	})

	t.Run("species key flag", func(t *testing.T) {
		assert.Equal(t, Text("false"), out.Cell(0, ColSpeciesKeyMissing))
		assert.Equal(t, Text("true"), out.Cell(1, ColSpeciesKeyMissing))
	})

	t.Run("empty columns removed", func(t *testing.T) {
		for _, name := range EmptyColumns {
			assert.False(t, out.Has(name), name)
		}
	})
}

func TestClean_Invariants(t *testing.T) {
	out := Clean(rawFixture(t))
	require.Positive(t, out.NumRows())

	for r := 0; r < out.NumRows(); r++ {
		lat, ok := ParseFloat(out.Cell(r, ColDecimalLatitude)).Get()
		require.True(t, ok)
		assert.GreaterOrEqual(t, lat, MinLatitude)
		assert.LessOrEqual(t, lat, MaxLatitude)

		lon, ok := ParseFloat(out.Cell(r, ColDecimalLongitude)).Get()
		require.True(t, ok)
		assert.GreaterOrEqual(t, lon, MinLongitude)
		assert.LessOrEqual(t, lon, MaxLongitude)

		year, ok := ParseInt(out.Cell(r, ColYear)).Get()
		require.True(t, ok)
		assert.GreaterOrEqual(t, year, int64(CleanMinYear))
		assert.LessOrEqual(t, year, int64(MaxYear))

		if u, ok := ParseFloat(out.Cell(r, ColCoordinateUncertainty)).Get(); ok {
			assert.LessOrEqual(t, u, MaxUncertaintyMeters)
		}

		assert.True(t, out.Cell(r, ColCountryCode).Present())
	}
}

func TestClean_Idempotent(t *testing.T) {
	once := Clean(rawFixture(t))

	// Re-supply the dropped columns as absent before cleaning again.
	again := once
	for _, name := range EmptyColumns {
		again = again.WithColumn(name, make([]Cell, once.NumRows()))
	}
	twice := Clean(again)

	require.Equal(t, once.NumRows(), twice.NumRows())
	for _, name := range once.Columns() {
		a, _ := once.Column(name)
		b, ok := twice.Column(name)
		require.True(t, ok, name)
		if diff := cmp.Diff(a, b, cmp.AllowUnexported(Cell{})); diff != "" {
			t.Errorf("column %s changed on second pass (-first +second):\n%s", name, diff)
		}
	}
}

func TestCleaningRules_Order(t *testing.T) {
	var names []string
	for _, r := range CleaningRules() {
		names = append(names, r.Name)
	}
	assert.Equal(t, []string{
		"drop_empty_columns",
		"normalize_text",
		"default_country_code",
		"flag_missing_species_key",
		"parse_event_date",
		"filter_year_range",
		"clean_coordinates",
		"filter_uncertainty",
	}, names)
}
