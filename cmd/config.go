package cmd

import (
	stderrors "errors"
	"io/fs"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"trackmate/internal/core/application/usecases/commands"
	"trackmate/internal/pkg/errs"

	"github.com/joho/godotenv"
	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
)

type Config struct {
	HTTPPort                string
	DBHost                  string
	DBPort                  string
	DBUser                  string
	DBPassword              string
	DBName                  string
	DBSslMode               string
	RedisAddr               string
	ParcelCacheTTL          time.Duration
	KafkaBrokers            []string
	KafkaStatusChangedTopic string
	StripeWebhookSecret     string
	ZonesFile               string
	EarningSameZoneRate     decimal.Decimal
	EarningCrossZoneRate    decimal.Decimal
	AutoAssignEnabled       bool
	LogLevel                slog.Level
}

// LoadConfig reads the configuration from the environment. Variables from
// envFile are loaded first without overriding the environment; a missing
// file is not an error.
func LoadConfig(envFile string) (Config, error) {
	if err := godotenv.Load(envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Config{}, errors.Wrapf(err, "load %s", envFile)
	}

	config := Config{
		HTTPPort:                getEnv("HTTP_PORT", "8082"),
		DBHost:                  os.Getenv("DB_HOST"),
		DBPort:                  getEnv("DB_PORT", "5432"),
		DBUser:                  os.Getenv("DB_USER"),
		DBPassword:              os.Getenv("DB_PASSWORD"),
		DBName:                  os.Getenv("DB_NAME"),
		DBSslMode:               getEnv("DB_SSLMODE", "disable"),
		RedisAddr:               getEnv("REDIS_ADDR", "localhost:6379"),
		KafkaBrokers:            splitList(getEnv("KAFKA_HOST", "localhost:9092")),
		KafkaStatusChangedTopic: getEnv("KAFKA_STATUS_CHANGED_TOPIC", commands.DefaultStatusChangedTopic),
		StripeWebhookSecret:     os.Getenv("STRIPE_WEBHOOK_SECRET"),
		ZonesFile:               getEnv("ZONES_FILE", "configs/zones.yaml"),
	}

	var errList []error
	for key, value := range map[string]string{
		"DB_HOST": config.DBHost,
		"DB_USER": config.DBUser,
		"DB_NAME": config.DBName,
	} {
		if value == "" {
			errList = append(errList, errs.NewValueIsRequiredError(key))
		}
	}

	var err error
	if config.ParcelCacheTTL, err = time.ParseDuration(getEnv("PARCEL_CACHE_TTL", "5m")); err != nil {
		errList = append(errList, errs.NewValueIsInvalidErrorWithCause("PARCEL_CACHE_TTL", err))
	}
	if config.EarningSameZoneRate, err = decimal.NewFromString(getEnv("EARNING_SAME_ZONE_RATE", "0.8")); err != nil {
		errList = append(errList, errs.NewValueIsInvalidErrorWithCause("EARNING_SAME_ZONE_RATE", err))
	}
	if config.EarningCrossZoneRate, err = decimal.NewFromString(getEnv("EARNING_CROSS_ZONE_RATE", "0.3")); err != nil {
		errList = append(errList, errs.NewValueIsInvalidErrorWithCause("EARNING_CROSS_ZONE_RATE", err))
	}
	if config.AutoAssignEnabled, err = strconv.ParseBool(getEnv("AUTO_ASSIGN_ENABLED", "true")); err != nil {
		errList = append(errList, errs.NewValueIsInvalidErrorWithCause("AUTO_ASSIGN_ENABLED", err))
	}
	if err = config.LogLevel.UnmarshalText([]byte(getEnv("LOG_LEVEL", "info"))); err != nil {
		errList = append(errList, errs.NewValueIsInvalidErrorWithCause("LOG_LEVEL", err))
	}
	if len(config.KafkaBrokers) == 0 {
		errList = append(errList, errs.NewValueIsRequiredError("KAFKA_HOST"))
	}

	if len(errList) > 0 {
		return Config{}, errors.Wrap(stderrors.Join(errList...), "invalid configuration")
	}

	return config, nil
}

// DSN returns the Postgres connection string.
func (c Config) DSN() string {
	return "host=" + c.DBHost +
		" port=" + c.DBPort +
		" user=" + c.DBUser +
		" password=" + c.DBPassword +
		" dbname=" + c.DBName +
		" sslmode=" + c.DBSslMode
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok && strings.TrimSpace(value) != "" {
		return strings.TrimSpace(value)
	}
	return fallback
}

func splitList(s string) []string {
	parts := strings.Split(s, ",")
	list := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			list = append(list, p)
		}
	}
	return list
}
