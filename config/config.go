package config

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	awspkg "github.com/Vinayyy19/Furnista/pkg/aws"
	"github.com/joho/godotenv"
)

const (
	InventoryMongo  = "mongo"
	InventoryDynamo = "dynamodb"

	MediaCloudinary = "cloudinary"
	MediaS3         = "s3"

	EventsNone  = "none"
	EventsSNS   = "sns"
	EventsSQS   = "sqs"
	EventsKafka = "kafka"
)

// Config holds all configuration for the storefront service.
type Config struct {
	Env  string
	Port string

	MongoURI string
	MongoDB  string
	RedisURL string
	CartTTL  time.Duration

	JWTSecret            string
	PaymentSigningSecret string
	StripeSecretKey      string
	Currency             string
	ShippingFee          int64
	IdempotencyTTL       time.Duration
	StatusForwardOnly    bool

	InventoryBackend string
	DDBTable         string

	MediaBackend  string
	CloudinaryURL string
	S3Bucket      string

	EventsBackend string
	SNSTopicArn   string
	SQSQueueURL   string
	KafkaBrokers  []string
	KafkaTopic    string

	AllowedOrigins     []string
	RateLimitPerMinute int

	CloudWatchEnabled   bool
	CloudWatchNamespace string
	CloudWatchLogGroup  string
}

// Load reads .env (if present) and the environment. With AWS_USE_SECRETS=true
// the signing secrets come from the Secrets Manager bundle named by
// SECRETS_NAME instead.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		Env:  getEnv("APP_ENV", "development"),
		Port: getEnv("PORT", "8080"),

		MongoURI: getEnv("MONGO_URI", "mongodb://localhost:27017"),
		MongoDB:  getEnv("MONGO_DB", "furnista"),
		RedisURL: getEnv("REDIS_URL", "redis://localhost:6379/0"),
		CartTTL:  getDuration("CART_TTL", 0),

		JWTSecret:            os.Getenv("JWT_SECRET"),
		PaymentSigningSecret: os.Getenv("PAYMENT_SIGNING_SECRET"),
		StripeSecretKey:      os.Getenv("STRIPE_SECRET_KEY"),
		Currency:             strings.ToLower(getEnv("CURRENCY", "inr")),
		ShippingFee:          int64(getInt("SHIPPING_FEE", 49)),
		IdempotencyTTL:       getDuration("IDEMPOTENCY_TTL", 24*time.Hour),
		StatusForwardOnly:    getBool("ORDER_STATUS_FORWARD_ONLY", false),

		InventoryBackend: getEnv("INVENTORY_BACKEND", InventoryMongo),
		DDBTable:         getEnv("DDB_TABLE_INVENTORY", "Inventory"),

		MediaBackend:  getEnv("MEDIA_BACKEND", MediaCloudinary),
		CloudinaryURL: os.Getenv("CLOUDINARY_URL"),
		S3Bucket:      os.Getenv("S3_BUCKET"),

		EventsBackend: getEnv("EVENTS_BACKEND", EventsNone),
		SNSTopicArn:   os.Getenv("SNS_TOPIC_ARN"),
		SQSQueueURL:   os.Getenv("SQS_QUEUE_URL"),
		KafkaBrokers:  splitList(getEnv("KAFKA_BROKERS", "localhost:9092")),
		KafkaTopic:    getEnv("KAFKA_TOPIC", "furnista.events"),

		AllowedOrigins:     splitList(getEnv("ALLOWED_ORIGINS", "http://localhost:3000,http://localhost:5173")),
		RateLimitPerMinute: getInt("RATE_LIMIT_PER_MINUTE", 100),

		CloudWatchEnabled:   getBool("CLOUDWATCH_ENABLED", false),
		CloudWatchNamespace: getEnv("CLOUDWATCH_NAMESPACE", "Furnista"),
		CloudWatchLogGroup:  getEnv("CLOUDWATCH_LOG_GROUP", "/furnista/services"),
	}

	if getBool("AWS_USE_SECRETS", false) {
		if err := cfg.loadSecrets(context.Background(), getEnv("SECRETS_NAME", "furnista/app")); err != nil {
			return nil, err
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) loadSecrets(ctx context.Context, name string) error {
	awsCfg, err := awspkg.LoadAWSConfig(ctx)
	if err != nil {
		return err
	}
	values, err := awspkg.NewSecretsClient(awsCfg).GetSecretMap(ctx, name)
	if err != nil {
		return fmt.Errorf("load secrets: %w", err)
	}
	c.applySecrets(values)
	return nil
}

// applySecrets overrides the signing keys with any non-empty value found in
// the secret bundle.
func (c *Config) applySecrets(values map[string]string) {
	targets := map[string]*string{
		"JWT_SECRET":             &c.JWTSecret,
		"PAYMENT_SIGNING_SECRET": &c.PaymentSigningSecret,
		"STRIPE_SECRET_KEY":      &c.StripeSecretKey,
		"CLOUDINARY_URL":         &c.CloudinaryURL,
	}
	for key, dst := range targets {
		if v := values[key]; v != "" {
			*dst = v
		}
	}
}

// Validate checks required values and backend names.
func (c *Config) Validate() error {
	if c.JWTSecret == "" {
		return fmt.Errorf("JWT_SECRET is required")
	}
	if c.PaymentSigningSecret == "" {
		return fmt.Errorf("PAYMENT_SIGNING_SECRET is required")
	}
	if c.ShippingFee < 0 {
		return fmt.Errorf("SHIPPING_FEE must be >= 0")
	}

	switch c.InventoryBackend {
	case InventoryMongo, InventoryDynamo:
	default:
		return fmt.Errorf("unknown INVENTORY_BACKEND %q", c.InventoryBackend)
	}
	switch c.MediaBackend {
	case MediaCloudinary:
	case MediaS3:
		if c.S3Bucket == "" {
			return fmt.Errorf("S3_BUCKET is required when MEDIA_BACKEND=s3")
		}
	default:
		return fmt.Errorf("unknown MEDIA_BACKEND %q", c.MediaBackend)
	}
	switch c.EventsBackend {
	case EventsNone, EventsKafka:
	case EventsSNS:
		if c.SNSTopicArn == "" {
			return fmt.Errorf("SNS_TOPIC_ARN is required when EVENTS_BACKEND=sns")
		}
	case EventsSQS:
		if c.SQSQueueURL == "" {
			return fmt.Errorf("SQS_QUEUE_URL is required when EVENTS_BACKEND=sqs")
		}
	default:
		return fmt.Errorf("unknown EVENTS_BACKEND %q", c.EventsBackend)
	}
	return nil
}

// NeedsAWS reports whether any configured backend talks to AWS.
func (c *Config) NeedsAWS() bool {
	return c.CloudWatchEnabled ||
		c.InventoryBackend == InventoryDynamo ||
		c.MediaBackend == MediaS3 ||
		c.EventsBackend == EventsSNS ||
		c.EventsBackend == EventsSQS
}

func getEnv(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}

func getInt(key string, defaultVal int) int {
	if v, err := strconv.Atoi(os.Getenv(key)); err == nil {
		return v
	}
	return defaultVal
}

func getBool(key string, defaultVal bool) bool {
	if v, err := strconv.ParseBool(os.Getenv(key)); err == nil {
		return v
	}
	return defaultVal
}

func getDuration(key string, defaultVal time.Duration) time.Duration {
	if v, err := time.ParseDuration(os.Getenv(key)); err == nil {
		return v
	}
	return defaultVal
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
