package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

type Env string

const (
	Dev        Env = "development"
	Test       Env = "test"
	Preview    Env = "preview"
	Production Env = "production"
)

type AppConfig struct {
	Name string
	Env  Env
	Port int
}

type SiteConfig struct {
	// BaseURL of the comparison site, used for the product-page fallback
	// redirect (e.g. https://www.instrumatch.com).
	BaseURL string
}

type PricingConfig struct {
	BaseURL string
	Timeout time.Duration
}

// ThomannConfig carries the affiliate program identifiers injected into
// normalized Thomann URLs. These are account-level, not per-product.
type ThomannConfig struct {
	OfferID   string
	PartnerID string
}

// DBConfig: postgres catalog, enabled only when Host + Name are set.
type DBConfig struct {
	User     string
	Password string
	Host     string
	Port     int
	Name     string
}

// RedisConfig: resolved-URL cache, enabled only when Host is set.
type RedisConfig struct {
	User      string
	Password  string
	Host      string
	Port      int
	Scheme    string
	TopURLTTL time.Duration
}

// RabbitMQConfig: click-event publishing, enabled only when URL is set.
type RabbitMQConfig struct {
	URL        string
	Exchange   string
	RoutingKey string
}

type Config struct {
	App      AppConfig
	LogLevel string

	Site     SiteConfig
	Pricing  PricingConfig
	Thomann  ThomannConfig
	DB       DBConfig
	Redis    RedisConfig
	RabbitMQ RabbitMQConfig
}

func NewViper() *viper.Viper {
	v := viper.New()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetDefault("APP_NAME", "instrumatch-affiliate")
	v.SetDefault("APP_ENV", "development")
	v.SetDefault("APP_PORT", 8080)
	v.SetDefault("LOG_LEVEL", "info")

	v.SetDefault("SITE_BASE_URL", "https://www.instrumatch.com")

	v.SetDefault("PRICING_TIMEOUT_SECONDS", 5)

	v.SetDefault("THOMANN_OFFER_ID", "3")
	v.SetDefault("THOMANN_PARTNER_ID", "4419")

	v.SetDefault("DB_PORT", 5432)
	v.SetDefault("REDIS_PORT", 6379)
	v.SetDefault("REDIS_SCHEME", "redis")
	v.SetDefault("REDIS_TOP_URL_TTL_SECONDS", 600)

	v.SetDefault("RABBITMQ_ROUTING_KEY", "affiliate.click")

	return v
}

func NewConfig(v *viper.Viper) (*Config, error) {
	cfg := &Config{
		App: AppConfig{
			Name: v.GetString("APP_NAME"),
			Env:  Env(v.GetString("APP_ENV")),
			Port: v.GetInt("APP_PORT"),
		},
		LogLevel: v.GetString("LOG_LEVEL"),

		Site: SiteConfig{
			BaseURL: strings.TrimRight(v.GetString("SITE_BASE_URL"), "/"),
		},
		Pricing: PricingConfig{
			BaseURL: strings.TrimRight(v.GetString("PRICING_BASE_URL"), "/"),
			Timeout: time.Duration(v.GetInt("PRICING_TIMEOUT_SECONDS")) * time.Second,
		},
		Thomann: ThomannConfig{
			OfferID:   v.GetString("THOMANN_OFFER_ID"),
			PartnerID: v.GetString("THOMANN_PARTNER_ID"),
		},
		DB: DBConfig{
			User:     v.GetString("DB_USER"),
			Password: v.GetString("DB_PASSWORD"),
			Host:     v.GetString("DB_HOST"),
			Port:     v.GetInt("DB_PORT"),
			Name:     v.GetString("DB_NAME"),
		},
		Redis: RedisConfig{
			User:      v.GetString("REDIS_USER"),
			Password:  v.GetString("REDIS_PASSWORD"),
			Host:      v.GetString("REDIS_HOST"),
			Port:      v.GetInt("REDIS_PORT"),
			Scheme:    v.GetString("REDIS_SCHEME"),
			TopURLTTL: time.Duration(v.GetInt("REDIS_TOP_URL_TTL_SECONDS")) * time.Second,
		},
		RabbitMQ: RabbitMQConfig{
			URL:        v.GetString("RABBITMQ_URL"),
			Exchange:   v.GetString("RABBITMQ_EXCHANGE"),
			RoutingKey: v.GetString("RABBITMQ_ROUTING_KEY"),
		},
	}

	if cfg.App.Port <= 0 || cfg.App.Port > 65535 {
		return nil, fmt.Errorf("invalid APP_PORT %d", cfg.App.Port)
	}
	if cfg.DB.Port <= 0 || cfg.DB.Port > 65535 {
		return nil, fmt.Errorf("invalid DB_PORT %d", cfg.DB.Port)
	}
	if cfg.Redis.Port <= 0 || cfg.Redis.Port > 65535 {
		return nil, fmt.Errorf("invalid REDIS_PORT %d", cfg.Redis.Port)
	}
	if cfg.Pricing.Timeout <= 0 {
		return nil, fmt.Errorf("invalid PRICING_TIMEOUT_SECONDS %s", cfg.Pricing.Timeout)
	}
	if strings.TrimSpace(cfg.Thomann.OfferID) == "" || strings.TrimSpace(cfg.Thomann.PartnerID) == "" {
		return nil, fmt.Errorf("THOMANN_OFFER_ID and THOMANN_PARTNER_ID must be set")
	}

	return cfg, nil
}
