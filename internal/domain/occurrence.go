package domain

// Darwin Core column names used by the pipeline.
const (
	ColGBIFID                  = "gbifID"
	ColDecimalLatitude         = "decimalLatitude"
	ColDecimalLongitude        = "decimalLongitude"
	ColCoordinateUncertainty   = "coordinateUncertaintyInMeters"
	ColCountryCode             = "countryCode"
	ColStateProvince           = "stateProvince"
	ColLocality                = "locality"
	ColHabitat                 = "habitat"
	ColMediaType               = "mediaType"
	ColEventDate               = "eventDate"
	ColYear                    = "year"
	ColMonth                   = "month"
	ColDay                     = "day"
	ColIndividualCount         = "individualCount"
	ColSpeciesKey              = "speciesKey"
	ColSpeciesKeyMissing       = "speciesKey_missing"
	ColKingdom                 = "kingdom"
	ColPhylum                  = "phylum"
	ColClass                   = "class"
	ColOrder                   = "order"
	ColFamily                  = "family"
	ColGenus                   = "genus"
	ColSpecies                 = "species"
	ColScientificNameAuthority = "verbatimScientificNameAuthorship"
)

// Validation and cleaning bounds.
const (
	MinLatitude  = -90.0
	MaxLatitude  = 90.0
	MinLongitude = -180.0
	MaxLongitude = 180.0

	// CleanMinYear is the oldest year kept by the cleaner.
	CleanMinYear = 1800
	// ReportMinYear is the oldest year the profiler accepts without flagging.
	ReportMinYear = 1700
	MaxYear       = 2025

	// MaxUncertaintyMeters is the largest coordinate uncertainty kept (10 km).
	MaxUncertaintyMeters = 10000.0

	// UnknownCountry replaces an absent countryCode.
	UnknownCountry = "Unknown"
)

// EmptyColumns are entirely empty in GBIF simple extracts and always dropped.
var EmptyColumns = []string{
	ColScientificNameAuthority,
	ColLocality,
	ColIndividualCount,
	"coordinatePrecision",
	"elevation",
	"elevationAccuracy",
	"depth",
	"depthAccuracy",
	"recordNumber",
	"typeStatus",
	"establishmentMeans",
}

// CleanTextColumns are the free-text columns the cleaner normalizes.
var CleanTextColumns = []string{ColStateProvince, ColLocality, ColHabitat, ColMediaType}

// ReportTextColumns are the free-text columns the profiler counts blank-like
// values in by default.
var ReportTextColumns = []string{ColStateProvince, ColLocality, ColHabitat}

// TaxonomyColumns are the taxonomic ranks from broadest to narrowest.
var TaxonomyColumns = []string{ColKingdom, ColPhylum, ColClass, ColOrder, ColFamily, ColGenus, ColSpecies}
