package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

const (
	EnvPrefix = "wellway"

	AppEnvDev  = "dev"
	AppEnvProd = "prod"
)

type Config struct {
	App          AppConfig
	DB           DBConfig
	Redis        RedisConfig
	Cart         CartConfig
	FeatureFlags FeatureFlagsConfig
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if err := cfg.DB.ensureDSN(); err != nil {
		return nil, err
	}
	if err := cfg.Cart.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

type AppConfig struct {
	Env          string `envconfig:"WELLWAY_APP_ENV" required:"true"`
	Port         string `envconfig:"WELLWAY_APP_PORT" default:"8080"`
	LogLevel     string `envconfig:"WELLWAY_LOG_LEVEL" default:"info"`
	LogWarnStack bool   `envconfig:"WELLWAY_LOG_WARN_STACK" default:"false"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

type DBConfig struct {
	DSN    string `envconfig:"WELLWAY_DB_DSN"`
	Driver string `envconfig:"WELLWAY_DB_DRIVER" default:"postgres"`

	Host     string `envconfig:"WELLWAY_DB_HOST"`
	Port     int    `envconfig:"WELLWAY_DB_PORT" default:"5432"`
	User     string `envconfig:"WELLWAY_DB_USER"`
	Password string `envconfig:"WELLWAY_DB_PASSWORD"`
	Name     string `envconfig:"WELLWAY_DB_NAME"`
	SSLMode  string `envconfig:"WELLWAY_DB_SSLMODE" default:"disable"`

	MaxOpenConns    int           `envconfig:"WELLWAY_DB_MAX_OPEN_CONNS" default:"20"`
	MaxIdleConns    int           `envconfig:"WELLWAY_DB_MAX_IDLE_CONNS" default:"10"`
	ConnMaxLifetime time.Duration `envconfig:"WELLWAY_DB_CONN_MAX_LIFETIME" default:"1h"`
	ConnMaxIdleTime time.Duration `envconfig:"WELLWAY_DB_CONN_MAX_IDLE_TIME" default:"10m"`

	ConnectAttempts int           `envconfig:"WELLWAY_DB_CONNECT_ATTEMPTS" default:"5"`
	ConnectBackoff  time.Duration `envconfig:"WELLWAY_DB_CONNECT_BACKOFF" default:"500ms"`
}

func (d *DBConfig) ensureDSN() error {
	if d.DSN != "" {
		return nil
	}
	if d.Host == "" || d.User == "" || d.Name == "" {
		return fmt.Errorf("either WELLWAY_DB_DSN or host/user/name parts are required")
	}
	userInfo := url.User(d.User)
	if d.Password != "" {
		userInfo = url.UserPassword(d.User, d.Password)
	}
	u := url.URL{
		Scheme:   "postgres",
		User:     userInfo,
		Host:     fmt.Sprintf("%s:%d", d.Host, d.Port),
		Path:     d.Name,
		RawQuery: "sslmode=" + d.SSLMode,
	}
	d.DSN = u.String()
	return nil
}

type RedisConfig struct {
	URL          string        `envconfig:"WELLWAY_REDIS_URL"`
	Address      string        `envconfig:"WELLWAY_REDIS_ADDR"`
	Password     string        `envconfig:"WELLWAY_REDIS_PASSWORD"`
	DB           int           `envconfig:"WELLWAY_REDIS_DB" default:"0"`
	PoolSize     int           `envconfig:"WELLWAY_REDIS_POOL_SIZE" default:"10"`
	MinIdleConns int           `envconfig:"WELLWAY_REDIS_MIN_IDLE_CONNS" default:"2"`
	DialTimeout  time.Duration `envconfig:"WELLWAY_REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"WELLWAY_REDIS_READ_TIMEOUT" default:"5s"`
	WriteTimeout time.Duration `envconfig:"WELLWAY_REDIS_WRITE_TIMEOUT" default:"5s"`
}

// CartConfig carries the fulfillment surcharge policy for both cart flavors.
// Amounts are integer cents; thresholds compare against the cart subtotal.
type CartConfig struct {
	DeliveryChargeCents       int64 `envconfig:"WELLWAY_CART_DELIVERY_CHARGE_CENTS" default:"5000"`
	FreeDeliveryAboveCents    int64 `envconfig:"WELLWAY_CART_FREE_DELIVERY_ABOVE_CENTS" default:"50000"`
	HomeCollectionChargeCents int64 `envconfig:"WELLWAY_CART_HOME_COLLECTION_CHARGE_CENTS" default:"10000"`
	FreeCollectionAboveCents  int64 `envconfig:"WELLWAY_CART_FREE_COLLECTION_ABOVE_CENTS" default:"50000"`
}

func (c CartConfig) validate() error {
	if c.DeliveryChargeCents < 0 || c.HomeCollectionChargeCents < 0 {
		return fmt.Errorf("cart surcharges must be non-negative")
	}
	if c.FreeDeliveryAboveCents < 0 || c.FreeCollectionAboveCents < 0 {
		return fmt.Errorf("cart free thresholds must be non-negative")
	}
	return nil
}

type FeatureFlagsConfig struct {
	AutoMigrate bool `envconfig:"WELLWAY_FEATURE_AUTO_MIGRATE" default:"false"`
}
