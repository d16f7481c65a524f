package configs

import (
	"fmt"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

type Config struct {
	App struct {
		Name     string `koanf:"name"`
		HTTPAddr string `koanf:"http_addr"`
		LogLevel string `koanf:"log_level"`
	} `koanf:"app"`

	HTTP struct {
		ReadTimeout  time.Duration `koanf:"read_timeout"`
		WriteTimeout time.Duration `koanf:"write_timeout"`
		IdleTimeout  time.Duration `koanf:"idle_timeout"`
	} `koanf:"http"`

	MySQL struct {
		DSN             string        `koanf:"dsn"`
		MaxOpenConns    int           `koanf:"max_open_conns"`
		MaxIdleConns    int           `koanf:"max_idle_conns"`
		ConnMaxLifetime time.Duration `koanf:"conn_max_lifetime"`
	} `koanf:"mysql"`

	Redis struct {
		Addr     string `koanf:"addr"`
		Password string `koanf:"password"`
	} `koanf:"redis"`

	Idempotency struct {
		TTL time.Duration `koanf:"ttl"`
	} `koanf:"idempotency"`

	StatusCache struct {
		TTL time.Duration `koanf:"ttl"`
	} `koanf:"status_cache"`

	Rabbit struct {
		URL        string `koanf:"url"`
		Exchange   string `koanf:"exchange"`
		RoutingKey string `koanf:"routing_key"`
		Queue      string `koanf:"queue"`
	} `koanf:"rabbitmq"`

	Kafka struct {
		Brokers     []string `koanf:"brokers"`
		GroupID     string   `koanf:"group_id"`
		TopicStatus string   `koanf:"topic_status"`
	} `koanf:"kafka"`

	Security struct {
		JWTSecret string        `koanf:"jwt_secret"`
		Issuer    string        `koanf:"issuer"`
		Audience  string        `koanf:"audience"`
		TTL       time.Duration `koanf:"ttl"`
		DevTokens bool          `koanf:"dev_tokens"`
	} `koanf:"security"`

	Stripe struct {
		SecretKey     string        `koanf:"secret_key"`
		WebhookSecret string        `koanf:"webhook_secret"`
		Currency      string        `koanf:"currency"`
		SuccessURL    string        `koanf:"success_url"`
		CancelURL     string        `koanf:"cancel_url"`
		// ShippingCountries gates the hosted page's address form
		// (ISO 3166-1 alpha-2).
		ShippingCountries []string      `koanf:"shipping_countries"`
		Timeout           time.Duration `koanf:"timeout"`
	} `koanf:"stripe"`
}

func Load(pathDir, envName string) (Config, error) {
	k := koanf.New(".")
	// 1) base
	if err := k.Load(file.Provider(fmt.Sprintf("%s/base.yaml", pathDir)), yaml.Parser()); err != nil {
		return Config{}, fmt.Errorf("load base: %w", err)
	}

	// 2) env override (dev/staging/prod). Optional: allow missing for local runs.
	_ = k.Load(file.Provider(fmt.Sprintf("%s/%s.yaml", pathDir, envName)), yaml.Parser())

	// 3) environment variables override (prefix SHOPAPI_, nested with __)
	// e.g. SHOPAPI_MYSQL__DSN, SHOPAPI_STRIPE__SECRET_KEY
	if err := k.Load(env.Provider("SHOPAPI_", ".", func(s string) string {
		s = strings.TrimPrefix(s, "SHOPAPI_")
		s = strings.ReplaceAll(s, "__", ".")
		return strings.ToLower(s)
	}), nil); err != nil {
		return Config{}, fmt.Errorf("env overlay: %w", err)
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return Config{}, fmt.Errorf("unmarshal: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) Validate() error {
	if c.App.HTTPAddr == "" {
		return fmt.Errorf("app.http_addr required")
	}
	if c.MySQL.DSN == "" {
		return fmt.Errorf("mysql.dsn required")
	}
	if c.Security.JWTSecret == "" {
		return fmt.Errorf("security.jwt_secret required")
	}
	if c.Stripe.SecretKey == "" {
		return fmt.Errorf("stripe.secret_key required")
	}
	if c.Stripe.SuccessURL == "" || c.Stripe.CancelURL == "" {
		return fmt.Errorf("stripe.success_url and stripe.cancel_url required")
	}
	if len(c.Stripe.ShippingCountries) == 0 {
		return fmt.Errorf("stripe.shipping_countries required")
	}
	return nil
}
