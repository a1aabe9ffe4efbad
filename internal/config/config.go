package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	sharedcfg "github.com/couchcryptid/storm-data-shared/config"
	"github.com/joho/godotenv"
)

// Dashboard data sources.
const (
	SourceParquet = "parquet"
	SourceCSV     = "csv"
)

// Config holds all settings, populated from environment variables.
type Config struct {
	RawPath     string
	CleanedPath string
	ParquetPath string
	Delimiter   rune

	ProfileReportPath  string
	ProfileTextColumns []string

	ParquetCompression string

	DashboardSource string
	MapPointLimit   int

	HTTPAddr        string
	LogLevel        string
	LogFormat       string
	ShutdownTimeout time.Duration
	MetricsTextfile string

	// Optional Kafka sink for cleaned records.
	KafkaEnabled bool
	KafkaBrokers []string
	KafkaTopic   string
	BatchSize    int
}

// Load reads configuration from environment variables, applying defaults
// where unset. A .env file in the working directory is loaded first when
// present; variables already set in the environment take precedence.
func Load() (*Config, error) {
	_ = godotenv.Load()

	shutdownTimeout, err := sharedcfg.ParseShutdownTimeout()
	if err != nil {
		return nil, err
	}

	batchSize, err := sharedcfg.ParseBatchSize()
	if err != nil {
		return nil, err
	}

	delimiter, err := parseDelimiter(sharedcfg.EnvOrDefault("GBIF_DELIMITER", ","))
	if err != nil {
		return nil, err
	}

	pointLimit, err := parsePositiveInt("MAP_POINT_LIMIT", 2000)
	if err != nil {
		return nil, err
	}

	brokers := os.Getenv("KAFKA_BROKERS")
	kafkaEnabled := brokers != ""
	if v := os.Getenv("KAFKA_ENABLED"); v != "" {
		kafkaEnabled = v == "true"
	}

	cfg := &Config{
		RawPath:            sharedcfg.EnvOrDefault("GBIF_RAW_PATH", "dataset_2.csv"),
		CleanedPath:        sharedcfg.EnvOrDefault("GBIF_CLEANED_PATH", "gbif_cleaned.csv"),
		ParquetPath:        sharedcfg.EnvOrDefault("GBIF_PARQUET_PATH", "gbif_cleaned.parquet"),
		Delimiter:          delimiter,
		ProfileReportPath:  os.Getenv("PROFILE_REPORT_PATH"),
		ProfileTextColumns: splitList(sharedcfg.EnvOrDefault("PROFILE_TEXT_COLUMNS", "stateProvince,locality,habitat")),
		ParquetCompression: strings.ToUpper(sharedcfg.EnvOrDefault("PARQUET_COMPRESSION", "SNAPPY")),
		DashboardSource:    strings.ToLower(sharedcfg.EnvOrDefault("DASHBOARD_SOURCE", SourceParquet)),
		MapPointLimit:      pointLimit,
		HTTPAddr:           sharedcfg.EnvOrDefault("HTTP_ADDR", ":8080"),
		LogLevel:           sharedcfg.EnvOrDefault("LOG_LEVEL", "info"),
		LogFormat:          sharedcfg.EnvOrDefault("LOG_FORMAT", "json"),
		ShutdownTimeout:    shutdownTimeout,
		MetricsTextfile:    os.Getenv("METRICS_TEXTFILE"),
		KafkaEnabled:       kafkaEnabled,
		KafkaBrokers:       sharedcfg.ParseBrokers(sharedcfg.EnvOrDefault("KAFKA_BROKERS", "localhost:9092")),
		KafkaTopic:         sharedcfg.EnvOrDefault("KAFKA_TOPIC", "gbif-cleaned-occurrences"),
		BatchSize:          batchSize,
	}

	switch cfg.ParquetCompression {
	case "SNAPPY", "GZIP", "NONE":
	default:
		return nil, fmt.Errorf("invalid PARQUET_COMPRESSION %q: want SNAPPY, GZIP or NONE", cfg.ParquetCompression)
	}
	if cfg.DashboardSource != SourceParquet && cfg.DashboardSource != SourceCSV {
		return nil, fmt.Errorf("invalid DASHBOARD_SOURCE %q: want parquet or csv", cfg.DashboardSource)
	}
	if cfg.KafkaEnabled && len(cfg.KafkaBrokers) == 0 {
		return nil, errors.New("KAFKA_ENABLED is true but KAFKA_BROKERS is empty")
	}
	if cfg.KafkaEnabled && cfg.KafkaTopic == "" {
		return nil, errors.New("KAFKA_TOPIC is required")
	}

	return cfg, nil
}

func parseDelimiter(s string) (rune, error) {
	switch s {
	case "tab", `\t`, "\t":
		return '\t', nil
	}
	r := []rune(s)
	if len(r) != 1 || r[0] == '"' || r[0] == '\r' || r[0] == '\n' {
		return 0, fmt.Errorf("invalid GBIF_DELIMITER %q", s)
	}
	return r[0], nil
}

func parsePositiveInt(key string, def int) (int, error) {
	s := os.Getenv(key)
	if s == "" {
		return def, nil
	}
	n, err := strconv.Atoi(s)
	if err != nil || n <= 0 {
		return 0, fmt.Errorf("invalid %s %q", key, s)
	}
	return n, nil
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
