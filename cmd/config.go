package cmd

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	StorageMongo    = "mongo"
	StoragePostgres = "postgres"
)

type Config struct {
	HTTPPort         string
	HTTPReadTimeout  time.Duration
	HTTPWriteTimeout time.Duration
	HTTPBodyLimit    string
	CORSOrigins      []string

	StorageDriver string
	MongoURI      string
	MongoDB       string
	MongoUser     string
	MongoPassword string
	DBHost        string
	DBPort        string
	DBUser        string
	DBPassword    string
	DBName        string
	DBSslMode     string

	JWTKey        string
	JWTIssuer     string
	JWTExpiration time.Duration
	BcryptCost    int

	RedisAddr      string
	RedisPassword  string
	RedisDB        int
	IdempotencyTTL time.Duration

	KafkaBrokers           []string
	KafkaOrderChangedTopic string
	OutboxRelaySchedule    string
	OutboxBatchSize        int

	LogLevel         string
	LogFormat        string
	ErrorLogFile     string
	MetricsNamespace string
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("HTTP_PORT", "3000")
	v.SetDefault("HTTP_READ_TIMEOUT", "10s")
	v.SetDefault("HTTP_WRITE_TIMEOUT", "10s")
	v.SetDefault("HTTP_BODY_LIMIT", "1M")
	v.SetDefault("CORS_ORIGINS", "*")
	v.SetDefault("STORAGE_DRIVER", StorageMongo)
	v.SetDefault("MONGO_URI", "mongodb://localhost:27017/?replicaSet=rs0")
	v.SetDefault("MONGO_DB", "travelagency")
	v.SetDefault("DB_HOST", "localhost")
	v.SetDefault("DB_PORT", "5432")
	v.SetDefault("DB_USER", "postgres")
	v.SetDefault("DB_NAME", "travelagency")
	v.SetDefault("DB_SSLMODE", "disable")
	v.SetDefault("JWT_ISSUER", "travelagency")
	v.SetDefault("JWT_EXPIRATION", "24h")
	v.SetDefault("BCRYPT_COST", 10)
	v.SetDefault("REDIS_DB", 0)
	v.SetDefault("IDEMPOTENCY_TTL", "24h")
	v.SetDefault("KAFKA_ORDER_CHANGED_TOPIC", "order.changed")
	v.SetDefault("OUTBOX_RELAY_SCHEDULE", "*/5 * * * * *")
	v.SetDefault("OUTBOX_BATCH_SIZE", 100)
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_FORMAT", "json")
	v.SetDefault("ERROR_LOG_FILE", "logs/errors.log")
	v.SetDefault("METRICS_NAMESPACE", "travelagency")
}

// LoadConfig reads .env when present and then the process environment.
func LoadConfig() (Config, error) {
	_ = godotenv.Load(".env")

	v := viper.New()
	setDefaults(v)
	v.AutomaticEnv()

	return configFrom(v)
}

func configFrom(v *viper.Viper) (Config, error) {
	cfg := Config{
		HTTPPort:         v.GetString("HTTP_PORT"),
		HTTPReadTimeout:  v.GetDuration("HTTP_READ_TIMEOUT"),
		HTTPWriteTimeout: v.GetDuration("HTTP_WRITE_TIMEOUT"),
		HTTPBodyLimit:    v.GetString("HTTP_BODY_LIMIT"),
		CORSOrigins:      splitList(v.GetString("CORS_ORIGINS")),

		StorageDriver: strings.ToLower(v.GetString("STORAGE_DRIVER")),
		MongoURI:      v.GetString("MONGO_URI"),
		MongoDB:       v.GetString("MONGO_DB"),
		MongoUser:     v.GetString("MONGO_USER"),
		MongoPassword: v.GetString("MONGO_PASSWORD"),
		DBHost:        v.GetString("DB_HOST"),
		DBPort:        v.GetString("DB_PORT"),
		DBUser:        v.GetString("DB_USER"),
		DBPassword:    v.GetString("DB_PASSWORD"),
		DBName:        v.GetString("DB_NAME"),
		DBSslMode:     v.GetString("DB_SSLMODE"),

		JWTKey:        v.GetString("JWT_KEY"),
		JWTIssuer:     v.GetString("JWT_ISSUER"),
		JWTExpiration: v.GetDuration("JWT_EXPIRATION"),
		BcryptCost:    v.GetInt("BCRYPT_COST"),

		RedisAddr:      v.GetString("REDIS_ADDR"),
		RedisPassword:  v.GetString("REDIS_PASSWORD"),
		RedisDB:        v.GetInt("REDIS_DB"),
		IdempotencyTTL: v.GetDuration("IDEMPOTENCY_TTL"),

		KafkaBrokers:           splitList(v.GetString("KAFKA_BROKERS")),
		KafkaOrderChangedTopic: v.GetString("KAFKA_ORDER_CHANGED_TOPIC"),
		OutboxRelaySchedule:    v.GetString("OUTBOX_RELAY_SCHEDULE"),
		OutboxBatchSize:        v.GetInt("OUTBOX_BATCH_SIZE"),

		LogLevel:         v.GetString("LOG_LEVEL"),
		LogFormat:        v.GetString("LOG_FORMAT"),
		ErrorLogFile:     v.GetString("ERROR_LOG_FILE"),
		MetricsNamespace: v.GetString("METRICS_NAMESPACE"),
	}
	return cfg, cfg.Validate()
}

func (c Config) Validate() error {
	var err error
	if c.JWTKey == "" {
		err = errors.Join(err, errors.New("JWT_KEY is required"))
	}
	if c.JWTExpiration <= 0 {
		err = errors.Join(err, errors.New("JWT_EXPIRATION must be positive"))
	}
	if c.StorageDriver != StorageMongo && c.StorageDriver != StoragePostgres {
		err = errors.Join(err, fmt.Errorf("STORAGE_DRIVER must be %q or %q, got %q", StorageMongo, StoragePostgres, c.StorageDriver))
	}
	if c.OutboxBatchSize <= 0 {
		err = errors.Join(err, errors.New("OUTBOX_BATCH_SIZE must be positive"))
	}
	return err
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
