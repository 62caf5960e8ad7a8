package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
	"github.com/shopspring/decimal"
)

type Config struct {
	App          AppConfig
	DB           DBConfig
	Redis        RedisConfig
	Session      SessionConfig
	Cart         CartConfig
	Shipping     ShippingConfig
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
	return &cfg, nil
}

type AppConfig struct {
	Env          string `envconfig:"TEAGHOR_APP_ENV" required:"true"`
	Port         string `envconfig:"TEAGHOR_APP_PORT" required:"true"`
	LogLevel     string `envconfig:"TEAGHOR_LOG_LEVEL" default:"info"`
	LogWarnStack bool   `envconfig:"TEAGHOR_LOG_WARN_STACK" default:"false"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

type DBConfig struct {
	DSN    string `envconfig:"TEAGHOR_DB_DSN"`
	Driver string `envconfig:"TEAGHOR_DB_DRIVER" default:"postgres"`

	LegacyHost     string `envconfig:"TEAGHOR_DB_HOST"`
	LegacyPort     int    `envconfig:"TEAGHOR_DB_PORT" default:"5432"`
	LegacyUser     string `envconfig:"TEAGHOR_DB_USER"`
	LegacyPassword string `envconfig:"TEAGHOR_DB_PASSWORD"`
	LegacyName     string `envconfig:"TEAGHOR_DB_NAME"`
	LegacySSLMode  string `envconfig:"TEAGHOR_DB_SSLMODE" default:"disable"`

	MaxOpenConns    int           `envconfig:"TEAGHOR_DB_MAX_OPEN_CONNS" default:"20"`
	MaxIdleConns    int           `envconfig:"TEAGHOR_DB_MAX_IDLE_CONNS" default:"10"`
	ConnMaxLifetime time.Duration `envconfig:"TEAGHOR_DB_CONN_MAX_LIFETIME" default:"1h"`
	ConnMaxIdleTime time.Duration `envconfig:"TEAGHOR_DB_CONN_MAX_IDLE_TIME" default:"10m"`
}

type RedisConfig struct {
	URL          string        `envconfig:"TEAGHOR_REDIS_URL" required:"true"`
	Address      string        `envconfig:"TEAGHOR_REDIS_ADDR"`
	Password     string        `envconfig:"TEAGHOR_REDIS_PASSWORD"`
	DB           int           `envconfig:"TEAGHOR_REDIS_DB" default:"0"`
	PoolSize     int           `envconfig:"TEAGHOR_REDIS_POOL_SIZE" default:"10"`
	MinIdleConns int           `envconfig:"TEAGHOR_REDIS_MIN_IDLE_CONNS" default:"2"`
	DialTimeout  time.Duration `envconfig:"TEAGHOR_REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"TEAGHOR_REDIS_READ_TIMEOUT" default:"5s"`
	WriteTimeout time.Duration `envconfig:"TEAGHOR_REDIS_WRITE_TIMEOUT" default:"5s"`
}

// SessionConfig drives the signed guest token that keys carts and checkout
// flows to a browser session.
type SessionConfig struct {
	Secret     string `envconfig:"TEAGHOR_SESSION_SECRET" required:"true"`
	Issuer     string `envconfig:"TEAGHOR_SESSION_ISSUER" default:"teaghor"`
	TTLMinutes int    `envconfig:"TEAGHOR_SESSION_TTL_MINUTES" default:"43200"`
}

// TTL returns the session token lifetime.
func (s SessionConfig) TTL() time.Duration {
	if s.TTLMinutes <= 0 {
		return 0
	}
	return time.Duration(s.TTLMinutes) * time.Minute
}

type CartConfig struct {
	Namespace string        `envconfig:"TEAGHOR_CART_NAMESPACE" default:"cart"`
	TTL       time.Duration `envconfig:"TEAGHOR_CART_TTL" default:"720h"`
}

// ShippingConfig holds the flat delivery fee and the subtotal at which
// delivery becomes free. Amounts are in BDT.
type ShippingConfig struct {
	FlatFee       decimal.Decimal `envconfig:"TEAGHOR_SHIPPING_FLAT_FEE" default:"60"`
	FreeThreshold decimal.Decimal `envconfig:"TEAGHOR_SHIPPING_FREE_THRESHOLD" default:"1000"`
}

type FeatureFlagsConfig struct {
	UseSQLite   bool `envconfig:"TEAGHOR_USE_SQLITE" default:"false"`
	AutoMigrate bool `envconfig:"TEAGHOR_AUTO_MIGRATE" default:"false"`
}

func (db *DBConfig) ensureDSN() error {
	if db.DSN != "" {
		return nil
	}

	missing := []string{}
	legacyValues := map[string]string{
		EnvDBHost: db.LegacyHost,
		EnvDBUser: db.LegacyUser,
		EnvDBName: db.LegacyName,
	}
	for _, env := range legacyDBEnvVars {
		if legacyValues[env] == "" {
			missing = append(missing, env)
		}
	}

	if len(missing) > 0 {
		return fmt.Errorf("either %s or %s are required", EnvDBDSN, strings.Join(missing, ", "))
	}

	userInfo := url.User(db.LegacyUser)
	if db.LegacyPassword != "" {
		userInfo = url.UserPassword(db.LegacyUser, db.LegacyPassword)
	}

	u := &url.URL{
		Scheme: "postgres",
		User:   userInfo,
		Host:   fmt.Sprintf("%s:%d", db.LegacyHost, db.LegacyPort),
		Path:   db.LegacyName,
	}

	if db.LegacySSLMode != "" {
		q := u.Query()
		q.Set("sslmode", db.LegacySSLMode)
		u.RawQuery = q.Encode()
	}

	db.DSN = u.String()
	return nil
}
