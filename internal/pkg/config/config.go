package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"
)

type (
	Tasks struct {
		BoardResyncInterval       time.Duration
		ResetTokenCleanupInterval time.Duration
	}

	HTTPServer struct {
		Port             string
		RequestTimeout   time.Duration // middleware timeout
		RateLimiterQPS   int           // middleware rate limiter capacity
		RateLimiterBurst int           // middleware rate limiter burst/refill
		PprofEnabled     bool
		PprofPort        string
	}

	Database struct {
		Host        string
		Port        string
		User        string
		Password    string
		DBName      string
		SSLMode     string
		AutoMigrate bool
	}

	Kafka struct {
		PortHealthcheck string
		Brokers         string
		PositionsTopic  string
		ResetsTopic     string
		ConsumerGroup   string
		Sarama          Sarama
		Handlers        KafkaHandlers
	}

	Sarama struct {
		Version                   string
		ConsumerOffsetsAutocommit bool
	}

	KafkaHandlers struct {
		CourierPositionReported CourierPositionReported
	}

	CourierPositionReported struct {
		ProcessTimeout time.Duration
	}

	Auth struct {
		JWTSecret     string
		TokenTTL      time.Duration
		ResetTokenTTL time.Duration
		BcryptCost    int

		// первый менеджер, заводится при старте если его нет
		ManagerEmail    string
		ManagerPassword string
		ManagerName     string
	}

	App struct {
		Timezone string
		LogLevel string
	}

	GRPC struct {
		HealthPort string
	}

	Config struct {
		Tasks    Tasks
		Server   HTTPServer
		Database Database
		Kafka    Kafka
		Auth     Auth
		App      App
		GRPC     GRPC
	}
)

const (
	defaultTokenTTL      = 12 * time.Hour
	defaultResetTokenTTL = time.Hour
	defaultCleanupPeriod = time.Hour
	defaultTimezone      = "America/Sao_Paulo"
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
	resyncInterval, err := osGetEnvDuration("BACKGROUND_BOARD_RESYNC_INTERVAL")
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}

	cleanupInterval, err := osGetEnvDuration("BACKGROUND_RESET_TOKEN_CLEANUP_INTERVAL")
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}
	if cleanupInterval == 0 {
		cleanupInterval = defaultCleanupPeriod
	}

	saramaOffsetsAutocommit, err := osGetBool("KAFKA_SARAMA_OFFSETS_AUTOCOMMIT")
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}

	positionTimeout, err := osGetEnvDuration("KAFKA_HANDLER_COURIER_POSITION_REPORTED_PROCESS_TIMEOUT")
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

	autoMigrate, err := osGetBool("AUTO_MIGRATE")
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}

	tokenTTL, err := osGetEnvDuration("AUTH_TOKEN_TTL")
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}
	if tokenTTL == 0 {
		tokenTTL = defaultTokenTTL
	}

	resetTokenTTL, err := osGetEnvDuration("AUTH_RESET_TOKEN_TTL")
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}
	if resetTokenTTL == 0 {
		resetTokenTTL = defaultResetTokenTTL
	}

	bcryptCost, err := osGetInt("AUTH_BCRYPT_COST")
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}

	timezone := os.Getenv("APP_TIMEZONE")
	if timezone == "" {
		timezone = defaultTimezone
	}

	return &Config{
		Tasks: Tasks{
			BoardResyncInterval:       resyncInterval,
			ResetTokenCleanupInterval: cleanupInterval,
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
			Host:        os.Getenv("POSTGRES_HOST"),
			Port:        os.Getenv("POSTGRES_PORT"),
			User:        os.Getenv("POSTGRES_USER"),
			Password:    os.Getenv("POSTGRES_PASSWORD"),
			DBName:      os.Getenv("POSTGRES_DB"),
			SSLMode:     os.Getenv("POSTGRES_SSLMODE"),
			AutoMigrate: autoMigrate,
		},
		Kafka: Kafka{
			Brokers:         os.Getenv("KAFKA_BROKERS"),
			PositionsTopic:  os.Getenv("KAFKA_POSITIONS_TOPIC"),
			ResetsTopic:     os.Getenv("KAFKA_PASSWORD_RESETS_TOPIC"),
			ConsumerGroup:   os.Getenv("KAFKA_CONSUMER_GROUP"),
			PortHealthcheck: os.Getenv("KAFKA_HTTP_HEALTHCHECK_PORT"),
			Sarama: Sarama{
				Version:                   os.Getenv("KAFKA_SARAMA_VERSION"),
				ConsumerOffsetsAutocommit: saramaOffsetsAutocommit,
			},
			Handlers: KafkaHandlers{
				CourierPositionReported: CourierPositionReported{
					ProcessTimeout: positionTimeout,
				},
			},
		},
		Auth: Auth{
			JWTSecret:       os.Getenv("AUTH_JWT_SECRET"),
			TokenTTL:        tokenTTL,
			ResetTokenTTL:   resetTokenTTL,
			BcryptCost:      bcryptCost,
			ManagerEmail:    os.Getenv("AUTH_MANAGER_EMAIL"),
			ManagerPassword: os.Getenv("AUTH_MANAGER_PASSWORD"),
			ManagerName:     os.Getenv("AUTH_MANAGER_NAME"),
		},
		App: App{
			Timezone: timezone,
			LogLevel: os.Getenv("LOG_LEVEL"),
		},
		GRPC: GRPC{
			HealthPort: os.Getenv("GRPC_HEALTH_PORT"),
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

	if cfg.Tasks.BoardResyncInterval == time.Duration(0) {
		return errors.New("BACKGROUND_BOARD_RESYNC_INTERVAL is required")
	}

	if cfg.Kafka.Brokers == "" {
		return errors.New("KAFKA_BROKERS is required")
	}
	if cfg.Kafka.PositionsTopic == "" {
		return errors.New("KAFKA_POSITIONS_TOPIC is required")
	}
	if cfg.Kafka.ResetsTopic == "" {
		return errors.New("KAFKA_PASSWORD_RESETS_TOPIC is required")
	}
	if cfg.Kafka.ConsumerGroup == "" {
		return errors.New("KAFKA_CONSUMER_GROUP is required")
	}
	if cfg.Kafka.PortHealthcheck == "" {
		return errors.New("KAFKA_HTTP_HEALTHCHECK_PORT is required")
	}
	if cfg.Kafka.Sarama.Version == "" {
		return errors.New("KAFKA_SARAMA_VERSION is required")
	}
	if cfg.Kafka.Handlers.CourierPositionReported.ProcessTimeout == time.Duration(0) {
		return errors.New("KAFKA_HANDLER_COURIER_POSITION_REPORTED_PROCESS_TIMEOUT is required")
	}

	if len(cfg.Auth.JWTSecret) < 32 {
		return errors.New("AUTH_JWT_SECRET is required (at least 32 bytes)")
	}
	if cfg.Auth.ManagerEmail != "" && cfg.Auth.ManagerPassword == "" {
		return errors.New("AUTH_MANAGER_PASSWORD is required when AUTH_MANAGER_EMAIL is set")
	}

	if _, err := time.LoadLocation(cfg.App.Timezone); err != nil {
		return fmt.Errorf("APP_TIMEZONE %q: %w", cfg.App.Timezone, err)
	}

	if cfg.GRPC.HealthPort == "" {
		return errors.New("GRPC_HEALTH_PORT is required")
	}

	return nil
}

// Location - часовой пояс пиццерии для "сегодня" в заработке курьера.
func (a App) Location() *time.Location {
	loc, err := time.LoadLocation(a.Timezone)
	if err != nil {
		return time.UTC
	}
	return loc
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
