// Command genmock writes a deterministic synthetic raw GBIF extract for local
// runs of every stage. The first rows are fixed edge cases that the cleaner
// and validator must handle; the rest are seeded random occurrences.
//
// Usage:
//
//	go run ./cmd/genmock -out data/mock/dataset_2.csv -rows 5000 -seed 42
package main

import (
	"flag"
	"fmt"
	"log"
	"math/rand/v2"
	"strconv"
	"time"

	"github.com/aalokdhekne-creator/GBIF-Dashboard/internal/adapter/csvfile"
	"github.com/aalokdhekne-creator/GBIF-Dashboard/internal/domain"
)

var columns = []string{
	domain.ColGBIFID, domain.ColKingdom, domain.ColPhylum, domain.ColClass, domain.ColOrder,
	domain.ColFamily, domain.ColGenus, domain.ColSpecies, domain.ColCountryCode,
	domain.ColStateProvince, domain.ColLocality, domain.ColDecimalLatitude, domain.ColDecimalLongitude,
	domain.ColCoordinateUncertainty, "coordinatePrecision", "elevation", domain.ColEventDate,
	domain.ColDay, domain.ColMonth, domain.ColYear, domain.ColSpeciesKey, domain.ColIndividualCount,
	domain.ColMediaType, domain.ColHabitat,
}

// taxon is one species with its full classification.
type taxon struct {
	kingdom, phylum, class, order, family, genus, species, key string
}

var taxa = []taxon{
	{"Animalia", "Chordata", "Mammalia", "Carnivora", "Canidae", "Vulpes", "Vulpes vulpes", "5219243"},
	{"Animalia", "Chordata", "Aves", "Passeriformes", "Turdidae", "Turdus", "Turdus migratorius", "9685675"},
	{"Animalia", "Arthropoda", "Insecta", "Lepidoptera", "Nymphalidae", "Danaus", "Danaus plexippus", "5133088"},
	{"Plantae", "Tracheophyta", "Magnoliopsida", "Fagales", "Fagaceae", "Quercus", "Quercus robur", "2878688"},
	{"Plantae", "Tracheophyta", "Magnoliopsida", "Sapindales", "Sapindaceae", "Acer", "Acer saccharum", "3189863"},
	{"Fungi", "Basidiomycota", "Agaricomycetes", "Agaricales", "Amanitaceae", "Amanita", "Amanita muscaria", "5240375"},
}

// region is a country with a bounding box to scatter points in.
type region struct {
	country, province string
	minLat, maxLat    float64
	minLon, maxLon    float64
}

var regions = []region{
	{"CA", "Quebec", 45.0, 50.0, -79.0, -64.0},
	{"US", "Vermont", 42.7, 45.0, -73.4, -71.5},
	{"FR", "Bretagne", 47.3, 48.9, -5.1, -1.0},
	{"DE", "Bayern", 47.3, 50.5, 9.0, 13.8},
	{"BR", "Amazonas", -9.8, 2.2, -73.8, -56.1},
}

var (
	mediaTypes = []string{"StillImage", "Sound", "", "StillImage"}
	habitats   = []string{"forest", "wetland", "grassland", "", "urban"}
)

func main() {
	out := flag.String("out", "dataset_2.csv", "output path for the raw extract")
	rows := flag.Int("rows", 1000, "number of random rows after the edge cases")
	seed := flag.Uint64("seed", 42, "random seed")
	delimiter := flag.String("delimiter", "tab", `field delimiter ("tab" or one character)`)
	flag.Parse()

	if err := run(*out, *rows, *seed, *delimiter); err != nil {
		log.Fatal(err)
	}
}

func run(out string, n int, seed uint64, delimiter string) error {
	delim := '\t'
	if delimiter != "tab" {
		r := []rune(delimiter)
		if len(r) != 1 {
			return fmt.Errorf("invalid delimiter %q", delimiter)
		}
		delim = r[0]
	}

	rng := rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
	records := edgeCases()
	for i := range n {
		records = append(records, randomRecord(rng, 100000+i))
	}

	t, err := domain.NewTable(columns, toCells(records))
	if err != nil {
		return fmt.Errorf("build table: %w", err)
	}
	if err := csvfile.Save(out, t, delim); err != nil {
		return fmt.Errorf("write %s: %w", out, err)
	}
	log.Printf("wrote %d rows (%d edge cases) to %s", t.NumRows(), len(records)-n, out)
	return nil
}

// edgeCases returns rows each exercising one cleaning or validation rule.
func edgeCases() []map[string]string {
	fox := taxa[0]
	base := func(id string) map[string]string {
		return map[string]string{
			domain.ColGBIFID: id, domain.ColKingdom: fox.kingdom, domain.ColPhylum: fox.phylum,
			domain.ColClass: fox.class, domain.ColOrder: fox.order, domain.ColFamily: fox.family,
			domain.ColGenus: fox.genus, domain.ColSpecies: fox.species, domain.ColSpeciesKey: fox.key,
			domain.ColCountryCode: "CA", domain.ColStateProvince: "Quebec",
			domain.ColDecimalLatitude: "45.5017", domain.ColDecimalLongitude: "-73.5673",
			domain.ColCoordinateUncertainty: "30", domain.ColEventDate: "2019-05-04",
		}
	}
	with := func(id string, kv ...string) map[string]string {
		r := base(id)
		for i := 0; i+1 < len(kv); i += 2 {
			r[kv[i]] = kv[i+1]
		}
		return r
	}
	return []map[string]string{
		base("1"),
		with("2", domain.ColEventDate, "1999-13-40"),
		with("3", domain.ColCountryCode, ""),
		with("4", domain.ColCoordinateUncertainty, "15000"),
		with("5", domain.ColCoordinateUncertainty, "9999"),
		with("6", domain.ColStateProvince, " None "),
		with("7", domain.ColStateProvince, "nan"),
		with("8", domain.ColDecimalLatitude, "95.2"),
		with("9", domain.ColDecimalLongitude, "NaN"),
		with("10", domain.ColDecimalLatitude, "abc"),
		with("11", domain.ColEventDate, "1750-06-01"),
		with("12", domain.ColEventDate, ""),
		with("13", domain.ColSpeciesKey, ""),
		with("14", domain.ColIndividualCount, "-3"),
		with("15", domain.ColCountryCode, "ca"),
		with("16", domain.ColEventDate, "2001-07-15T10:30:00"),
		with("17", domain.ColEventDate, "2010-03"),
		with("18", domain.ColEventDate, "2030-01-01"),
		with("19", domain.ColHabitat, "  forest edge "),
		with("20", domain.ColSpecies, "", domain.ColSpeciesKey, ""),
	}
}

func randomRecord(rng *rand.Rand, id int) map[string]string {
	tx := taxa[rng.IntN(len(taxa))]
	rg := regions[rng.IntN(len(regions))]
	date := time.Date(1990+rng.IntN(35), time.Month(1+rng.IntN(12)), 1+rng.IntN(28), 0, 0, 0, 0, time.UTC)

	r := map[string]string{
		domain.ColGBIFID: strconv.Itoa(id), domain.ColKingdom: tx.kingdom, domain.ColPhylum: tx.phylum,
		domain.ColClass: tx.class, domain.ColOrder: tx.order, domain.ColFamily: tx.family,
		domain.ColGenus: tx.genus, domain.ColSpecies: tx.species, domain.ColSpeciesKey: tx.key,
		domain.ColCountryCode: rg.country, domain.ColStateProvince: rg.province,
		domain.ColDecimalLatitude:       strconv.FormatFloat(between(rng, rg.minLat, rg.maxLat), 'f', 5, 64),
		domain.ColDecimalLongitude:      strconv.FormatFloat(between(rng, rg.minLon, rg.maxLon), 'f', 5, 64),
		domain.ColCoordinateUncertainty: strconv.Itoa(1 + rng.IntN(12000)),
		domain.ColEventDate:             date.Format("2006-01-02"),
		domain.ColDay:                   strconv.Itoa(date.Day()),
		domain.ColMonth:                 strconv.Itoa(int(date.Month())),
		domain.ColYear:                  strconv.Itoa(date.Year()),
		domain.ColMediaType:             mediaTypes[rng.IntN(len(mediaTypes))],
		domain.ColHabitat:               habitats[rng.IntN(len(habitats))],
	}
	if rng.IntN(10) == 0 {
		r[domain.ColSpeciesKey] = ""
	}
	if rng.IntN(20) == 0 {
		r[domain.ColCountryCode] = ""
	}
	return r
}

func between(rng *rand.Rand, lo, hi float64) float64 {
	return lo + rng.Float64()*(hi-lo)
}

func toCells(records []map[string]string) [][]domain.Cell {
	rows := make([][]domain.Cell, len(records))
	for i, rec := range records {
		row := make([]domain.Cell, len(columns))
		for j, c := range columns {
			if v := rec[c]; v != "" {
				row[j] = domain.Text(v)
			}
		}
		rows[i] = row
	}
	return rows
}
