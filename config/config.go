package config

import (
	"time"

	"github.com/caarlos0/env/v11"
)

type Config struct {
	Port     int    `env:"PORT" envDefault:"3000"`
	LogLevel string `env:"LOG_LEVEL" envDefault:"info"`

	// Optional; the idempotency store falls back to in-memory when empty.
	PgURL     string `env:"PG_URL"`
	PgPoolMax int    `env:"PG_POOL_MAX" envDefault:"10"`

	StripeAPIKey            string        `env:"STRIPE_API_KEY" required:"true"`
	StripeBaseURL           string        `env:"STRIPE_BASE_URL" envDefault:"https://api.stripe.com"`
	HTTPStripeClientTimeout time.Duration `env:"HTTP_STRIPE_CLIENT_TIMEOUT" envDefault:"20s"`

	Currency    string `env:"CHECKOUT_CURRENCY" envDefault:"aud"`
	ProductName string `env:"CHECKOUT_PRODUCT_NAME" envDefault:"Frame Order"`
	SuccessURL  string `env:"CHECKOUT_SUCCESS_URL" required:"true"`
	CancelURL   string `env:"CHECKOUT_CANCEL_URL" required:"true"`

	// Countries the gateway may collect a shipping address for.
	AllowedShipCountries []string `env:"CHECKOUT_SHIP_COUNTRIES" envSeparator:"," envDefault:"AU"`

	// Required-field set of the create contract; items and customer
	// name/email are always enforced on top of this list.
	RequiredFields []string `env:"CHECKOUT_REQUIRED_FIELDS" envSeparator:"," envDefault:"shipMethod,region"`

	// Ceiling in bytes for the items JSON snapshot carried in session metadata.
	ItemsSnapshotMax int `env:"CHECKOUT_ITEMS_SNAPSHOT_MAX" envDefault:"5000"`

	IdempotencyTTL time.Duration `env:"CHECKOUT_IDEMPOTENCY_TTL" envDefault:"24h"`

	CORSAllowOrigin string `env:"CORS_ALLOW_ORIGIN" envDefault:"*"`

	// Kafka session-event publishing; disabled when no brokers configured.
	KafkaBrokers       []string `env:"KAFKA_BROKERS" envSeparator:","`
	KafkaSessionsTopic string   `env:"KAFKA_SESSIONS_TOPIC" envDefault:"checkout.sessions"`

	// OpenSearch session-event indexing; disabled when no urls configured.
	OpensearchUrls          []string `env:"OPENSEARCH_URLS" envSeparator:","`
	OpensearchIndexSessions string   `env:"OPENSEARCH_INDEX_SESSIONS" envDefault:"checkout-sessions"`
}

func New() (Config, error) {
	c, err := env.ParseAs[Config]()
	if err != nil {
		return Config{}, err
	}

	return c, nil
}
