package config

import (
	"errors"
	"math"
	"os"
	"strconv"
	"time"

	sharedcfg "github.com/couchcryptid/storm-data-shared/config"
)

// Config holds all service settings, populated from environment variables.
type Config struct {
	KafkaEnabled     bool
	KafkaBrokers     []string
	KafkaSourceTopic string
	KafkaSinkTopic   string
	KafkaGroupID     string
	HTTPAddr         string
	LogLevel         string
	LogFormat        string
	ShutdownTimeout  time.Duration

	BatchSize          int
	BatchFlushInterval time.Duration

	// Reference data. DataDir and DataURL are mutually exclusive; when both
	// are empty the embedded tables are used.
	Ayanamsa        float64
	DataDir         string
	DataURL         string
	DataLoadTimeout time.Duration

	// Rate limiting for the HTTP API.
	RateLimitRPS   float64
	RateLimitBurst int
}

// Load reads configuration from environment variables, applying defaults where unset.
func Load() (*Config, error) {
	shutdownTimeout, err := sharedcfg.ParseShutdownTimeout()
	if err != nil {
		return nil, err
	}

	batchSize, err := sharedcfg.ParseBatchSize()
	if err != nil {
		return nil, err
	}

	flushInterval, err := sharedcfg.ParseBatchFlushInterval()
	if err != nil {
		return nil, err
	}

	ayanamsa, err := strconv.ParseFloat(sharedcfg.EnvOrDefault("AYANAMSA", "24.1"), 64)
	if err != nil || math.IsNaN(ayanamsa) || ayanamsa < 0 || ayanamsa >= 30 {
		return nil, errors.New("invalid AYANAMSA: must be a number of degrees in [0,30)")
	}

	loadTimeout, err := time.ParseDuration(sharedcfg.EnvOrDefault("DATA_LOAD_TIMEOUT", "10s"))
	if err != nil || loadTimeout <= 0 {
		return nil, errors.New("invalid DATA_LOAD_TIMEOUT")
	}

	rps, err := strconv.ParseFloat(sharedcfg.EnvOrDefault("RATE_LIMIT_RPS", "20"), 64)
	if err != nil || rps <= 0 {
		return nil, errors.New("invalid RATE_LIMIT_RPS: must be a positive number")
	}

	burst, err := strconv.Atoi(sharedcfg.EnvOrDefault("RATE_LIMIT_BURST", "40"))
	if err != nil || burst <= 0 {
		return nil, errors.New("invalid RATE_LIMIT_BURST: must be a positive integer")
	}

	cfg := &Config{
		KafkaEnabled:       os.Getenv("KAFKA_ENABLED") == "true",
		KafkaBrokers:       sharedcfg.ParseBrokers(sharedcfg.EnvOrDefault("KAFKA_BROKERS", "localhost:9092")),
		KafkaSourceTopic:   sharedcfg.EnvOrDefault("KAFKA_SOURCE_TOPIC", "house-selections"),
		KafkaSinkTopic:     sharedcfg.EnvOrDefault("KAFKA_SINK_TOPIC", "house-results"),
		KafkaGroupID:       sharedcfg.EnvOrDefault("KAFKA_GROUP_ID", "moon-house"),
		HTTPAddr:           sharedcfg.EnvOrDefault("HTTP_ADDR", ":8080"),
		LogLevel:           sharedcfg.EnvOrDefault("LOG_LEVEL", "info"),
		LogFormat:          sharedcfg.EnvOrDefault("LOG_FORMAT", "json"),
		ShutdownTimeout:    shutdownTimeout,
		BatchSize:          batchSize,
		BatchFlushInterval: flushInterval,

		Ayanamsa:        ayanamsa,
		DataDir:         os.Getenv("DATA_DIR"),
		DataURL:         os.Getenv("DATA_URL"),
		DataLoadTimeout: loadTimeout,

		RateLimitRPS:   rps,
		RateLimitBurst: burst,
	}

	if cfg.DataDir != "" && cfg.DataURL != "" {
		return nil, errors.New("DATA_DIR and DATA_URL are mutually exclusive")
	}
	if !cfg.KafkaEnabled {
		return cfg, nil
	}
	if len(cfg.KafkaBrokers) == 0 {
		return nil, errors.New("KAFKA_BROKERS is required")
	}
	if cfg.KafkaSourceTopic == "" {
		return nil, errors.New("KAFKA_SOURCE_TOPIC is required")
	}
	if cfg.KafkaSinkTopic == "" {
		return nil, errors.New("KAFKA_SINK_TOPIC is required")
	}

	return cfg, nil
}
