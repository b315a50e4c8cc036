package config

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

const (
	StoreDriverMemory   = "memory"
	StoreDriverPostgres = "postgres"
	StoreDriverSQLite   = "sqlite"
)

// Configはアプリ全体の設定
type Config struct {
	Port  string // サーバーポート（8080）
	GoEnv string // dev/prod

	StoreDriver string // memory/postgres/sqlite

	DatabaseURL      string // あれば最優先
	PostgresUser     string
	PostgresPassword string
	PostgresDB       string
	PostgresHost     string
	PostgresPort     int
	PostgresSSLMode  string
	SQLitePath       string

	JWTSecret          string        // JWT署名シークレット
	JWTSecretGenerated bool          // 起動ごとに生成した（開発用）
	TokenTTL           time.Duration // 24h

	AdminPassword     string // 平文（開発用）
	AdminPasswordHash string // bcryptハッシュ（本番はこちら）

	UploadDir      string
	UploadMaxBytes int64 // 8MB
	UploadMaxWidth int   // 0なら縮小しない

	LoginRateLimit int // 1分あたり

	LogLevel string
	FEURL    string // フロントURL（CORS）
}

func (c Config) IsProduction() bool {
	return c.GoEnv == "prod" || c.GoEnv == "production"
}

// Loadは環境変数
func Load() (Config, error) {
	pgPort, err := atoiDefault("POSTGRES_PORT", 5432)
	if err != nil {
		return Config{}, err
	}
	maxBytes, err := atoi64Default("UPLOAD_MAX_BYTES", 8*1024*1024)
	if err != nil {
		return Config{}, err
	}
	maxWidth, err := atoiDefault("UPLOAD_MAX_WIDTH", 0)
	if err != nil {
		return Config{}, err
	}
	rateLimit, err := atoiDefault("LOGIN_RATE_LIMIT", 10)
	if err != nil {
		return Config{}, err
	}
	ttl, err := durationDefault("TOKEN_TTL", 24*time.Hour)
	if err != nil {
		return Config{}, err
	}

	cfg := Config{
		Port:  getenv("PORT", "8080"),
		GoEnv: getenv("GO_ENV", "dev"),

		StoreDriver: strings.ToLower(getenv("STORE_DRIVER", StoreDriverMemory)),

		DatabaseURL:      os.Getenv("DATABASE_URL"),
		PostgresUser:     getenv("POSTGRES_USER", "postgres"),
		PostgresPassword: getenv("POSTGRES_PASSWORD", "postgres"),
		PostgresDB:       getenv("POSTGRES_DB", "storefront"),
		PostgresHost:     getenv("POSTGRES_HOST", "localhost"),
		PostgresPort:     pgPort,
		PostgresSSLMode:  getenv("POSTGRES_SSLMODE", "disable"),
		SQLitePath:       getenv("SQLITE_PATH", "storefront.db"),

		JWTSecret: strings.TrimSpace(os.Getenv("JWT_SECRET")),
		TokenTTL:  ttl,

		AdminPassword:     os.Getenv("ADMIN_PASSWORD"),
		AdminPasswordHash: strings.TrimSpace(os.Getenv("ADMIN_PASSWORD_HASH")),

		UploadDir:      getenv("UPLOAD_DIR", "uploads"),
		UploadMaxBytes: maxBytes,
		UploadMaxWidth: maxWidth,

		LoginRateLimit: rateLimit,

		LogLevel: getenv("LOG_LEVEL", "info"),
		FEURL:    os.Getenv("FE_URL"),
	}

	if err := cfg.validate(); err != nil {
		return Config{}, err
	}

	//開発時だけシークレットを自動生成（再起動でトークンは無効になる）
	if cfg.JWTSecret == "" {
		secret, err := randomHex(32)
		if err != nil {
			return Config{}, fmt.Errorf("generate JWT_SECRET: %w", err)
		}
		cfg.JWTSecret = secret
		cfg.JWTSecretGenerated = true
	}

	return cfg, nil
}

//必須チェック
func (c Config) validate() error {
	switch c.StoreDriver {
	case StoreDriverMemory, StoreDriverPostgres, StoreDriverSQLite:
	default:
		return fmt.Errorf("STORE_DRIVER must be one of memory, postgres, sqlite: %q", c.StoreDriver)
	}
	if c.IsProduction() && c.JWTSecret == "" {
		return fmt.Errorf("JWT_SECRET is required")
	}
	if c.AdminPassword == "" && c.AdminPasswordHash == "" {
		return fmt.Errorf("ADMIN_PASSWORD or ADMIN_PASSWORD_HASH is required")
	}
	if c.TokenTTL <= 0 {
		return fmt.Errorf("TOKEN_TTL must be positive")
	}
	if c.UploadMaxBytes <= 0 {
		return fmt.Errorf("UPLOAD_MAX_BYTES must be positive")
	}
	if c.UploadMaxWidth < 0 {
		return fmt.Errorf("UPLOAD_MAX_WIDTH must be >= 0")
	}
	if c.LoginRateLimit <= 0 {
		return fmt.Errorf("LOGIN_RATE_LIMIT must be positive")
	}
	if _, err := strconv.Atoi(c.Port); err != nil {
		return fmt.Errorf("PORT must be number: %w", err)
	}
	return nil
}

// gorm/postgres用のDSN
func (c Config) PostgresDSN() string {
	if c.DatabaseURL != "" {
		return c.DatabaseURL
	}
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.PostgresHost, c.PostgresPort, c.PostgresUser, c.PostgresPassword, c.PostgresDB, c.PostgresSSLMode,
	)
}

func getenv(key string, def string) string {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	return v
}

func atoiDefault(key string, def int) (int, error) {
	v := os.Getenv(key)
	if v == "" {
		return def, nil
	}
	i, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("%s must be number: %w", key, err)
	}
	return i, nil
}

func atoi64Default(key string, def int64) (int64, error) {
	v := os.Getenv(key)
	if v == "" {
		return def, nil
	}
	i, err := strconv.ParseInt(v, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%s must be number: %w", key, err)
	}
	return i, nil
}

func durationDefault(key string, def time.Duration) (time.Duration, error) {
	v := os.Getenv(key)
	if v == "" {
		return def, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("%s must be duration: %w", key, err)
	}
	return d, nil
}

func randomHex(n int) (string, error) {
	b := make([]byte, n)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return hex.EncodeToString(b), nil
}
