package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"
)

const (
	BrokerBackendInproc = "inproc"
	BrokerBackendKafka  = "kafka"
)

type (
	Tasks struct {
		StaleDeliveryTimeout time.Duration
		StaleSweepInterval   time.Duration
	}

	HTTPServer struct {
		Port             string
		RequestTimeout   time.Duration // middleware timeout
		RateLimiterQPS   int           // middleware  rate limiter capacity
		RateLimiterBurst int           // middlewarerate limiter burst/refill
		PprofEnabled     bool
		PprofPort        string
	}

	Database struct {
		Host     string
		Port     string
		User     string
		Password string
		DBName   string
		SSLMode  string
	}

	Broker struct {
		// Backend выбирает шину событий: inproc или kafka.
		Backend string
		Kafka   Kafka
	}

	Kafka struct {
		PortHealthcheck string
		Brokers         string
		Topic           string
		ConsumerGroup   string
		Sarama          Sarama
	}

	Sarama struct {
		Version                   string
		ConsumerOffsetsAutocommit bool
	}

	Simulator struct {
		Waypoints     int
		Interval      time.Duration
		MinSpeedKmh   float64
		MaxSpeedKmh   float64
		BaseLat       float64
		BaseLng       float64
		JitterDegrees float64
	}

	Config struct {
		Tasks     Tasks
		Server    HTTPServer
		Database  Database
		Broker    Broker
		Simulator Simulator
	}
)

func Load() (*Config, error) {
	cfg, err := loadFromEnv()
	if err != nil {
		return nil, fmt.Errorf("environment loading: %w", err)
	}

	if err := validateConfig(cfg); err != nil {
		return nil, fmt.Errorf("validation: %w", err)
	}
	return cfg, nil
}

func loadFromEnv() (*Config, error) {
	staleTimeout, err := osGetEnvDuration("BACKGROUND_STALE_DELIVERY_TIMEOUT")
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}

	staleSweepInterval, err := osGetEnvDuration("BACKGROUND_STALE_SWEEP_INTERVAL")
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}

	saramaOffsetsAutocommit, err := osGetBool("KAFKA_SARAMA_OFFSETS_AUTOCOMMIT")
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}

	requestTimeout, err := osGetEnvDuration("MIDDLEWARE_REQUEST_TIMEOUT")
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}

	rateLimiterQPS, err := osGetInt("MIDDLEWARE_RATE_LIMIT_QPS")
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}

	rateLimiterBurst, err := osGetInt("MIDDLEWARE_RATE_LIMIT_BURST")
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}

	pprofEnabled, err := osGetBool("PPROF_ENABLED")
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}

	simulatorWaypoints, err := osGetInt("SIMULATOR_WAYPOINTS")
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}

	simulatorInterval, err := osGetEnvDuration("SIMULATOR_INTERVAL")
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}

	simulatorMinSpeed, err := osGetFloat("SIMULATOR_MIN_SPEED_KMH")
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}

	simulatorMaxSpeed, err := osGetFloat("SIMULATOR_MAX_SPEED_KMH")
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}

	simulatorBaseLat, err := osGetFloat("SIMULATOR_BASE_LAT")
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}

	simulatorBaseLng, err := osGetFloat("SIMULATOR_BASE_LNG")
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}

	simulatorJitter, err := osGetFloat("SIMULATOR_JITTER_DEGREES")
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}

	return &Config{
		Tasks: Tasks{
			StaleDeliveryTimeout: staleTimeout,
			StaleSweepInterval:   staleSweepInterval,
		},
		Server: HTTPServer{
			Port:             os.Getenv("PORT"),
			RequestTimeout:   requestTimeout,
			RateLimiterQPS:   rateLimiterQPS,
			RateLimiterBurst: rateLimiterBurst,
			PprofEnabled:     pprofEnabled,
			PprofPort:        os.Getenv("PPROF_PORT"),
		},
		Database: Database{
			Host:     os.Getenv("POSTGRES_HOST"),
			Port:     os.Getenv("POSTGRES_PORT"),
			User:     os.Getenv("POSTGRES_USER"),
			Password: os.Getenv("POSTGRES_PASSWORD"),
			DBName:   os.Getenv("POSTGRES_DB"),
			SSLMode:  os.Getenv("POSTGRES_SSLMODE"),
		},
		Broker: Broker{
			Backend: os.Getenv("BROKER_BACKEND"),
			Kafka: Kafka{
				Brokers:         os.Getenv("KAFKA_BROKERS"),
				Topic:           os.Getenv("KAFKA_TOPIC"),
				ConsumerGroup:   os.Getenv("KAFKA_CONSUMER_GROUP"),
				PortHealthcheck: os.Getenv("KAFKA_HTTP_HEALTHCHECK_PORT"),
				Sarama: Sarama{
					Version:                   os.Getenv("KAFKA_SARAMA_VERSION"),
					ConsumerOffsetsAutocommit: saramaOffsetsAutocommit,
				},
			},
		},
		Simulator: Simulator{
			Waypoints:     simulatorWaypoints,
			Interval:      simulatorInterval,
			MinSpeedKmh:   simulatorMinSpeed,
			MaxSpeedKmh:   simulatorMaxSpeed,
			BaseLat:       simulatorBaseLat,
			BaseLng:       simulatorBaseLng,
			JitterDegrees: simulatorJitter,
		},
	}, nil
}

func validateConfig(cfg *Config) error {
	if cfg.Server.Port == "" {
		return errors.New("server port is required (set via PORT env variable)")
	}
	if cfg.Server.RequestTimeout == time.Duration(0) {
		return errors.New("MIDDLEWARE_REQUEST_TIMEOUT is required")
	}
	if cfg.Server.RateLimiterQPS == 0 {
		return errors.New("MIDDLEWARE_RATE_LIMIT_QPS is required")
	}
	if cfg.Server.RateLimiterBurst == 0 {
		return errors.New("MIDDLEWARE_RATE_LIMIT_BURST is required")
	}
	if cfg.Server.PprofPort == "" && cfg.Server.PprofEnabled {
		return errors.New("PprofPort is required (set via PPROF_PORT env variable)")
	}

	if cfg.Database.Host == "" {
		return errors.New("POSTGRES_HOST is required")
	}
	if cfg.Database.Port == "" {
		return errors.New("POSTGRES_PORT is required")
	}
	if cfg.Database.User == "" {
		return errors.New("POSTGRES_USER is required")
	}
	if cfg.Database.Password == "" {
		return errors.New("POSTGRES_PASSWORD is required")
	}
	if cfg.Database.DBName == "" {
		return errors.New("POSTGRES_DB is required")
	}
	if cfg.Database.SSLMode == "" {
		return errors.New("POSTGRES_SSLMODE is required")
	}

	if cfg.Tasks.StaleDeliveryTimeout == time.Duration(0) {
		return errors.New("BACKGROUND_STALE_DELIVERY_TIMEOUT is required")
	}
	if cfg.Tasks.StaleSweepInterval == time.Duration(0) {
		return errors.New("BACKGROUND_STALE_SWEEP_INTERVAL is required")
	}

	switch cfg.Broker.Backend {
	case BrokerBackendInproc:
		// kafka-параметры не нужны
	case BrokerBackendKafka:
		if cfg.Broker.Kafka.Brokers == "" {
			return errors.New("KAFKA_BROKERS is required")
		}
		if cfg.Broker.Kafka.Topic == "" {
			return errors.New("KAFKA_TOPIC is required")
		}
		if cfg.Broker.Kafka.ConsumerGroup == "" {
			return errors.New("KAFKA_CONSUMER_GROUP is required")
		}
		if cfg.Broker.Kafka.PortHealthcheck == "" {
			return errors.New("KAFKA_HTTP_HEALTHCHECK_PORT is required")
		}
		if cfg.Broker.Kafka.Sarama.Version == "" {
			return errors.New("KAFKA_SARAMA_VERSION is required")
		}
	default:
		return fmt.Errorf("BROKER_BACKEND must be %q or %q, got %q",
			BrokerBackendInproc, BrokerBackendKafka, cfg.Broker.Backend)
	}

	if cfg.Simulator.Waypoints <= 0 {
		return errors.New("SIMULATOR_WAYPOINTS is required")
	}
	if cfg.Simulator.Interval == time.Duration(0) {
		return errors.New("SIMULATOR_INTERVAL is required")
	}
	if cfg.Simulator.MinSpeedKmh <= 0 || cfg.Simulator.MaxSpeedKmh < cfg.Simulator.MinSpeedKmh {
		return errors.New("SIMULATOR_MIN_SPEED_KMH/SIMULATOR_MAX_SPEED_KMH must form a positive range")
	}
	if cfg.Simulator.JitterDegrees < 0 {
		return errors.New("SIMULATOR_JITTER_DEGREES must not be negative")
	}

	return nil
}

func osGetInt(s string) (int, error) {
	val := os.Getenv(s)
	if val == "" {
		return 0, nil
	}

	res, err := strconv.Atoi(val)
	if err != nil {
		return 0, fmt.Errorf("invalid int format for %s=%q: %w", s, val, err)
	}
	return res, nil
}

func osGetFloat(s string) (float64, error) {
	val := os.Getenv(s)
	if val == "" {
		return 0, nil
	}

	res, err := strconv.ParseFloat(val, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid float format for %s=%q: %w", s, val, err)
	}
	return res, nil
}

func osGetEnvDuration(s string) (time.Duration, error) {
	val := os.Getenv(s)
	if val == "" {
		return time.Duration(0), nil
	}

	res, err := time.ParseDuration(val)
	if err != nil {
		return time.Duration(0), fmt.Errorf("invalid duration format for %s=%q: %w", s, val, err)
	}
	return res, nil
}

func osGetBool(s string) (bool, error) {
	val := os.Getenv(s)
	if val == "" {
		return false, nil
	}

	res, err := strconv.ParseBool(val)
	if err != nil {
		return false, fmt.Errorf("invalid bool format for %s=%q: %w", s, val, err)
	}
	return res, nil
}
