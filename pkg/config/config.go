package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

// EnvPrefix is the namespace shared by every afflo environment variable.
const EnvPrefix = "afflo"

const (
	AppEnvDev  = "development"
	AppEnvProd = "production"
)

type Config struct {
	App           AppConfig
	DB            DBConfig
	Redis         RedisConfig
	JWT           JWTConfig
	Password      PasswordConfig
	AuthRateLimit AuthRateLimitConfig
	Federation    FederationConfig
	FeatureFlags  FeatureFlagsConfig
}

// Load parses the full configuration from the environment and validates it
// once at process start. Nothing else in the codebase reads env vars directly.
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
	Env          string `envconfig:"AFFLO_APP_ENV" required:"true"`
	Port         string `envconfig:"AFFLO_APP_PORT" default:"8080"`
	LogLevel     string `envconfig:"AFFLO_LOG_LEVEL" default:"info"`
	LogWarnStack bool   `envconfig:"AFFLO_LOG_WARN_STACK" default:"false"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

type DBConfig struct {
	DSN    string `envconfig:"AFFLO_DB_DSN"`
	Driver string `envconfig:"AFFLO_DB_DRIVER" default:"postgres"`

	Host     string `envconfig:"AFFLO_DB_HOST"`
	Port     int    `envconfig:"AFFLO_DB_PORT" default:"5432"`
	User     string `envconfig:"AFFLO_DB_USER"`
	Password string `envconfig:"AFFLO_DB_PASSWORD"`
	Name     string `envconfig:"AFFLO_DB_NAME"`
	SSLMode  string `envconfig:"AFFLO_DB_SSLMODE" default:"disable"`

	MaxOpenConns    int           `envconfig:"AFFLO_DB_MAX_OPEN_CONNS" default:"20"`
	MaxIdleConns    int           `envconfig:"AFFLO_DB_MAX_IDLE_CONNS" default:"10"`
	ConnMaxLifetime time.Duration `envconfig:"AFFLO_DB_CONN_MAX_LIFETIME" default:"1h"`
	ConnMaxIdleTime time.Duration `envconfig:"AFFLO_DB_CONN_MAX_IDLE_TIME" default:"10m"`
}

type RedisConfig struct {
	URL          string        `envconfig:"AFFLO_REDIS_URL" required:"true"`
	Password     string        `envconfig:"AFFLO_REDIS_PASSWORD"`
	DB           int           `envconfig:"AFFLO_REDIS_DB" default:"0"`
	PoolSize     int           `envconfig:"AFFLO_REDIS_POOL_SIZE" default:"10"`
	MinIdleConns int           `envconfig:"AFFLO_REDIS_MIN_IDLE_CONNS" default:"2"`
	DialTimeout  time.Duration `envconfig:"AFFLO_REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"AFFLO_REDIS_READ_TIMEOUT" default:"5s"`
	WriteTimeout time.Duration `envconfig:"AFFLO_REDIS_WRITE_TIMEOUT" default:"5s"`
}

type JWTConfig struct {
	Secret                 string `envconfig:"AFFLO_JWT_SECRET" required:"true"`
	Issuer                 string `envconfig:"AFFLO_JWT_ISSUER" default:"afflo"`
	ExpirationMinutes      int    `envconfig:"AFFLO_JWT_EXPIRATION_MINUTES" default:"60"`
	RefreshTokenTTLMinutes int    `envconfig:"AFFLO_REFRESH_TOKEN_TTL_MINUTES" default:"43200"`
}

// RefreshTokenTTL returns the refresh token TTL configured in minutes.
func (j JWTConfig) RefreshTokenTTL() time.Duration {
	if j.RefreshTokenTTLMinutes <= 0 {
		return 0
	}
	return time.Duration(j.RefreshTokenTTLMinutes) * time.Minute
}

type PasswordConfig struct {
	ArgonMemoryKB    int `envconfig:"AFFLO_ARGON_MEMORY_KB" default:"65536"`
	ArgonTime        int `envconfig:"AFFLO_ARGON_TIME" default:"3"`
	ArgonParallelism int `envconfig:"AFFLO_ARGON_PARALLELISM" default:"2"`
	ArgonSaltLen     int `envconfig:"AFFLO_ARGON_SALT_LEN" default:"16"`
	ArgonKeyLen      int `envconfig:"AFFLO_ARGON_KEY_LEN" default:"32"`
}

type AuthRateLimitConfig struct {
	LoginWindow      time.Duration `envconfig:"AFFLO_AUTH_RATE_LIMIT_LOGIN_WINDOW" default:"1m"`
	LoginEmailLimit  int           `envconfig:"AFFLO_AUTH_RATE_LIMIT_LOGIN_EMAIL_LIMIT" default:"5"`
	LoginIPLimit     int           `envconfig:"AFFLO_AUTH_RATE_LIMIT_LOGIN_IP_LIMIT" default:"20"`
	SignupWindow     time.Duration `envconfig:"AFFLO_AUTH_RATE_LIMIT_SIGNUP_WINDOW" default:"5m"`
	SignupEmailLimit int           `envconfig:"AFFLO_AUTH_RATE_LIMIT_SIGNUP_EMAIL_LIMIT" default:"3"`
	SignupIPLimit    int           `envconfig:"AFFLO_AUTH_RATE_LIMIT_SIGNUP_IP_LIMIT" default:"20"`
}

// FederationConfig holds OAuth provider credentials. A provider is offered on
// /auth/providers only when both its id and secret are configured.
type FederationConfig struct {
	GoogleClientID     string `envconfig:"AFFLO_AUTH_GOOGLE_ID"`
	GoogleClientSecret string `envconfig:"AFFLO_AUTH_GOOGLE_SECRET"`
}

func (f FederationConfig) GoogleEnabled() bool {
	return f.GoogleClientID != "" && f.GoogleClientSecret != ""
}

type FeatureFlagsConfig struct {
	UseSQLite   bool `envconfig:"AFFLO_USE_SQLITE" default:"false"`
	AutoMigrate bool `envconfig:"AFFLO_AUTO_MIGRATE" default:"false"`
}

func (db *DBConfig) ensureDSN() error {
	if db.DSN != "" {
		return nil
	}

	missing := []string{}
	for _, pair := range []struct{ env, value string }{
		{"AFFLO_DB_HOST", db.Host},
		{"AFFLO_DB_USER", db.User},
		{"AFFLO_DB_NAME", db.Name},
	} {
		if pair.value == "" {
			missing = append(missing, pair.env)
		}
	}

	if len(missing) > 0 {
		return fmt.Errorf("either AFFLO_DB_DSN or %s are required", strings.Join(missing, ", "))
	}

	userInfo := url.User(db.User)
	if db.Password != "" {
		userInfo = url.UserPassword(db.User, db.Password)
	}

	u := &url.URL{
		Scheme: "postgres",
		User:   userInfo,
		Host:   fmt.Sprintf("%s:%d", db.Host, db.Port),
		Path:   db.Name,
	}

	if db.SSLMode != "" {
		q := u.Query()
		q.Set("sslmode", db.SSLMode)
		u.RawQuery = q.Encode()
	}

	db.DSN = u.String()
	return nil
}
