// Package domain models GBIF occurrence data and the pure rules used to
// validate and clean it.
//
// # Data Source
//
// Occurrence extracts are downloaded from the Global Biodiversity Information
// Facility (https://www.gbif.org) in the "simple" delimited format: one header
// row followed by one row per observed specimen or sighting. Column names follow
// Darwin Core terms (decimalLatitude, eventDate, countryCode, speciesKey, ...).
//
// # Absent values
//
// Every cell is an [Opt] of string. An empty field in the source file is
// absent; so is any value that fails to coerce to the type a rule expects.
// Nothing in this package returns an error for a malformed value.
//
// Free-text columns additionally treat these literals as absent once trimmed:
//
//	""      empty string
//	"nan"   stringified missing value from pandas-era exports
//	"None"  stringified missing value from Python-era exports
//
// # Canonical text
//
// Coerced values are written back as canonical text so that a cleaned file can
// be re-read without loss:
//
//	floats     strconv.FormatFloat(v, 'f', -1, 64)   e.g. "45.5", "-0.125"
//	integers   base 10, no sign for positives        e.g. "1999"
//	booleans   "true" / "false"
//	dates      "2006-01-02" at UTC midnight, RFC 3339 otherwise
//
// # Bounds
//
//	latitude     [-90, 90]
//	longitude    [-180, 180]
//	year         [1800, 2025] when cleaning, [1700, 2025] when profiling
//	uncertainty  rows above 10,000 m are dropped; the value is never clamped
//
// The two year bounds are intentionally different: profiling is informational
// and flags only values that are implausible for any record, cleaning keeps the
// range the downstream analysis is meaningful for.
//
// # Tables
//
// A [Table] is an immutable, column-major snapshot. Each cleaning rule takes a
// *Table and returns a new one; columns a rule does not touch are shared with
// its input, never copied or modified.
package domain
