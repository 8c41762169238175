package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/gautham-8087/Event-IQ/pkg/client"
	"github.com/gautham-8087/Event-IQ/pkg/logger"
)

type Config struct {
	MongoURI          string
	MongoDatabaseName string
	MongoConnTimeout  time.Duration

	Port string

	KafkaBrokers []string
	ArchiveTopic string
	ArchiveGroup string

	RateLimitRequests int
	RateLimitWindow   time.Duration

	RequestTimeout time.Duration
	IdempotencyTTL time.Duration
	MaxRequestSize int

	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	IdleTimeout     time.Duration
	ShutdownTimeout time.Duration

	AllocationLockTTL time.Duration
	AvailabilityLimit int

	Log    *logger.Logger
	Client *client.Client
}

func Load(serviceName string) *Config {
	cfg := &Config{
		MongoURI:          getEnvStr(EnvMongoURI, DefaultMongoURI),
		MongoDatabaseName: getEnvStr(EnvMongoDatabaseName, DefaultMongoDatabaseName),
		MongoConnTimeout:  getEnvDuration(EnvMongoConnTimeout, DefaultMongoConnTimeout),

		Port: getEnvStr(EnvPort, DefaultPort),

		KafkaBrokers: getEnvList(EnvKafkaBrokers, nil),
		ArchiveTopic: getEnvStr(EnvArchiveTopic, DefaultArchiveTopic),
		ArchiveGroup: getEnvStr(EnvArchiveGroup, DefaultArchiveGroup),

		RateLimitRequests: getEnvNum(EnvRateLimitRequests, DefaultRateLimitRequests),
		RateLimitWindow:   getEnvDuration(EnvRateLimitWindow, DefaultRateLimitWindow),

		RequestTimeout: getEnvDuration(EnvRequestTimeout, DefaultRequestTimeout),
		IdempotencyTTL: getEnvDuration(EnvIdempotencyTTL, DefaultIdempotencyTTL),
		MaxRequestSize: getEnvNum(EnvMaxRequestSize, DefaultMaxRequestSize),

		ReadTimeout:     getEnvDuration(EnvReadTimeout, DefaultReadTimeout),
		WriteTimeout:    getEnvDuration(EnvWriteTimeout, DefaultWriteTimeout),
		IdleTimeout:     getEnvDuration(EnvIdleTimeout, DefaultIdleTimeout),
		ShutdownTimeout: getEnvDuration(EnvShutdownTimeout, DefaultShutdownTimeout),

		AllocationLockTTL: getEnvDuration(EnvAllocationLockTTL, DefaultAllocationLockTTL),
		AvailabilityLimit: getEnvNum(EnvAvailabilityLimit, DefaultAvailabilityLimit),

		Log: logger.New(logger.Config{
			Level:     getEnvStr(EnvLogLevel, DefaultLogLevel),
			Format:    logger.JSON,
			AddSource: true,
			Service:   serviceName,
		}),
		Client: client.NewClient(),
	}

	if err := cfg.Validate(); err != nil {
		cfg.Log.Fatal(err.Error())
	}
	return cfg
}

func (c *Config) Validate() error {
	if c.MongoURI == "" {
		return fmt.Errorf("config: %s must not be empty", EnvMongoURI)
	}
	if c.MongoDatabaseName == "" {
		return fmt.Errorf("config: %s must not be empty", EnvMongoDatabaseName)
	}
	if c.ReadTimeout <= 0 || c.WriteTimeout <= 0 {
		return fmt.Errorf("config: read and write timeouts must be positive")
	}
	if c.AllocationLockTTL <= 0 {
		return fmt.Errorf("config: %s must be positive", EnvAllocationLockTTL)
	}
	if c.AvailabilityLimit <= 0 {
		return fmt.Errorf("config: %s must be positive", EnvAvailabilityLimit)
	}
	return nil
}

func (c *Config) LogConfiguration() {
	c.Log.Info("Configuration loaded",
		"mongo_database", c.MongoDatabaseName,
		"port", c.Port,
		"kafka_brokers", strings.Join(c.KafkaBrokers, ","),
		"archive_topic", c.ArchiveTopic,
		"request_timeout", c.RequestTimeout.String(),
		"read_timeout", c.ReadTimeout.String(),
		"write_timeout", c.WriteTimeout.String(),
		"allocation_lock_ttl", c.AllocationLockTTL.String(),
		"availability_limit", c.AvailabilityLimit,
	)
}

func getEnvStr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvNum(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return fallback
}

func getEnvList(key string, fallback []string) []string {
	if v := os.Getenv(key); v != "" {
		parts := strings.Split(v, ",")
		out := make([]string, 0, len(parts))
		for _, p := range parts {
			if p = strings.TrimSpace(p); p != "" {
				out = append(out, p)
			}
		}
		if len(out) > 0 {
			return out
		}
	}
	return fallback
}
