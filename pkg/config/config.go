package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	App          AppConfig
	DB           DBConfig
	Redis        RedisConfig
	JWT          JWTConfig
	Password     PasswordConfig
	Admin        AdminConfig
	Checkout     CheckoutConfig
	FeatureFlags FeatureFlagsConfig
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if err := cfg.DB.ensureDSN(cfg.FeatureFlags.UseSQLite); err != nil {
		return nil, err
	}
	return &cfg, nil
}

type AppConfig struct {
	Env          string `envconfig:"BOOKHAVEN_APP_ENV" required:"true"`
	Port         string `envconfig:"BOOKHAVEN_APP_PORT" required:"true"`
	LogLevel     string `envconfig:"BOOKHAVEN_LOG_LEVEL" default:"info"`
	LogWarnStack bool   `envconfig:"BOOKHAVEN_LOG_WARN_STACK" default:"false"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

type DBConfig struct {
	DSN    string `envconfig:"BOOKHAVEN_DB_DSN"`
	Driver string `envconfig:"BOOKHAVEN_DB_DRIVER" default:"postgres"`

	LegacyHost     string `envconfig:"BOOKHAVEN_DB_HOST"`
	LegacyPort     int    `envconfig:"BOOKHAVEN_DB_PORT" default:"5432"`
	LegacyUser     string `envconfig:"BOOKHAVEN_DB_USER"`
	LegacyPassword string `envconfig:"BOOKHAVEN_DB_PASSWORD"`
	LegacyName     string `envconfig:"BOOKHAVEN_DB_NAME"`
	LegacySSLMode  string `envconfig:"BOOKHAVEN_DB_SSLMODE" default:"disable"`

	SQLitePath string `envconfig:"BOOKHAVEN_DB_SQLITE_PATH" default:"bookhaven.db"`

	MaxOpenConns    int           `envconfig:"BOOKHAVEN_DB_MAX_OPEN_CONNS" default:"20"`
	MaxIdleConns    int           `envconfig:"BOOKHAVEN_DB_MAX_IDLE_CONNS" default:"10"`
	ConnMaxLifetime time.Duration `envconfig:"BOOKHAVEN_DB_CONN_MAX_LIFETIME" default:"1h"`
	ConnMaxIdleTime time.Duration `envconfig:"BOOKHAVEN_DB_CONN_MAX_IDLE_TIME" default:"10m"`
}

type RedisConfig struct {
	URL          string        `envconfig:"BOOKHAVEN_REDIS_URL" required:"true"`
	Address      string        `envconfig:"BOOKHAVEN_REDIS_ADDR"`
	Password     string        `envconfig:"BOOKHAVEN_REDIS_PASSWORD"`
	DB           int           `envconfig:"BOOKHAVEN_REDIS_DB" default:"0"`
	PoolSize     int           `envconfig:"BOOKHAVEN_REDIS_POOL_SIZE" default:"10"`
	MinIdleConns int           `envconfig:"BOOKHAVEN_REDIS_MIN_IDLE_CONNS" default:"2"`
	DialTimeout  time.Duration `envconfig:"BOOKHAVEN_REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"BOOKHAVEN_REDIS_READ_TIMEOUT" default:"5s"`
	WriteTimeout time.Duration `envconfig:"BOOKHAVEN_REDIS_WRITE_TIMEOUT" default:"5s"`
}

type JWTConfig struct {
	Secret            string `envconfig:"BOOKHAVEN_JWT_SECRET" required:"true"`
	Issuer            string `envconfig:"BOOKHAVEN_JWT_ISSUER" required:"true"`
	ExpirationMinutes int    `envconfig:"BOOKHAVEN_JWT_EXPIRATION_MINUTES" default:"720"`
}

type PasswordConfig struct {
	ArgonMemoryKB    int `envconfig:"BOOKHAVEN_ARGON_MEMORY_KB" default:"65536"`
	ArgonTime        int `envconfig:"BOOKHAVEN_ARGON_TIME" default:"3"`
	ArgonParallelism int `envconfig:"BOOKHAVEN_ARGON_PARALLELISM" default:"2"`
	ArgonSaltLen     int `envconfig:"BOOKHAVEN_ARGON_SALT_LEN" default:"16"`
	ArgonKeyLen      int `envconfig:"BOOKHAVEN_ARGON_KEY_LEN" default:"32"`
}

// AdminConfig seeds the bootstrap admin account on first start.
type AdminConfig struct {
	Email    string `envconfig:"BOOKHAVEN_ADMIN_EMAIL"`
	Password string `envconfig:"BOOKHAVEN_ADMIN_PASSWORD"`
	Name     string `envconfig:"BOOKHAVEN_ADMIN_NAME" default:"Store Admin"`
}

type CheckoutConfig struct {
	ShippingFeeCents int `envconfig:"BOOKHAVEN_SHIPPING_FEE_CENTS" default:"450"`
}

type FeatureFlagsConfig struct {
	UseSQLite   bool `envconfig:"BOOKHAVEN_USE_SQLITE" default:"true"`
	AutoMigrate bool `envconfig:"BOOKHAVEN_AUTO_MIGRATE" default:"false"`
	SeedCatalog bool `envconfig:"BOOKHAVEN_SEED_CATALOG" default:"true"`
}

func (db *DBConfig) ensureDSN(useSQLite bool) error {
	if useSQLite {
		db.Driver = "sqlite"
		if db.DSN == "" {
			db.DSN = db.SQLitePath
		}
		return nil
	}

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
