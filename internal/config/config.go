package config

import (
	"os"

	"github.com/gordopods/storefront/pkg/config"
)

type ServiceConfig struct {
	ServiceName string
	Port        string
	LogLevel    string

	DatabaseURL    string
	LocalCachePath string

	JWTSecret     []byte
	AdminUsername string
	AdminPassword string
	CSRFSecure    bool

	KafkaBrokers     []string
	OrderEventsTopic string
	NotifyTopic      string

	ESURL      string
	ESUser     string
	ESPassword string
	ESIndex    string

	StoreLocale   string
	StoreWhatsApp string
}

// FromEnv reads the service configuration without enforcing required values.
func FromEnv() ServiceConfig {
	return ServiceConfig{
		ServiceName: config.EnvDefault("SERVICE_NAME", "storefront"),
		Port:        config.EnvDefault("SERVER_PORT", "8080"),
		LogLevel:    config.EnvDefault("LOG_LEVEL", "info"),

		DatabaseURL:    os.Getenv("DATABASE_URL"),
		LocalCachePath: config.EnvDefault("LOCAL_CACHE_PATH", "storefront-cache.db"),

		JWTSecret:     []byte(os.Getenv("JWT_SECRET")),
		AdminUsername: os.Getenv("ADMIN_USERNAME"),
		AdminPassword: os.Getenv("ADMIN_PASSWORD"),
		CSRFSecure:    config.EnvBoolDefault("CSRF_SECURE", false),

		KafkaBrokers:     config.CSV(os.Getenv("KAFKA_BROKERS")),
		OrderEventsTopic: config.EnvDefault("ORDER_EVENTS_TOPIC", "order_events"),
		NotifyTopic:      config.EnvDefault("NOTIFY_TOPIC", "whatsapp_outbox"),

		ESURL:      os.Getenv("ES_URL"),
		ESUser:     os.Getenv("ES_USER"),
		ESPassword: os.Getenv("ES_PASSWORD"),
		ESIndex:    config.EnvDefault("ES_INDEX", "products"),

		StoreLocale:   config.EnvDefault("STORE_LOCALE", "pt-BR"),
		StoreWhatsApp: os.Getenv("STORE_WHATSAPP"),
	}
}

func Load() ServiceConfig {
	cfg := FromEnv()

	config.MustNonEmpty(cfg.DatabaseURL, "DATABASE_URL")
	config.MustNonEmptyBytes(cfg.JWTSecret, "JWT_SECRET")

	return cfg
}
