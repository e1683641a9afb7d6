package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Store backends for the options/selection records and the post catalog.
const (
	StoreRedis  = "redis"
	StoreMemory = "memory"

	PostsCatalog  = "catalog"
	PostsPostgres = "postgres"
)

type Config struct {
	ListenPort      string        // ex: ":8080"
	ShutdownTimeout time.Duration // ex: 5s
	RequestTimeout  time.Duration // per-request timeout applied by chi

	LogLevel  string // "debug" | "info" | "warn" | "error"
	PrettyLog bool   // true => zap dev (color), false => zap prod (JSON)

	SiteTitle     string         // title of the demo front page
	Timezone      string         // IANA name, expiries are typed in this zone
	Location      *time.Location // resolved from Timezone
	PublicBaseURL string         // permalinks are built on this (ex: https://blog.domain.ext)
	AdminBaseURL  string         // edit links are built on this, defaults to PublicBaseURL

	StoreBackend string // "redis" | "memory"
	PostsBackend string // "catalog" | "postgres"

	CatalogFile    string        // posts.yaml imported into the catalog (posts backend "catalog")
	ReloadInterval time.Duration // interval to reload the catalog file (default: 1h)
	TrashInterval  time.Duration // interval to purge trashed posts (default: 24h)
	TrashRetention time.Duration // how long a trashed post is kept (default: 30 days)

	// Redis
	RedisAddr             string        // ex: "localhost:6379"
	RedisUser             string        // optional
	RedisPassword         string        // optional
	RedisPasswordRequired bool          // true => require password, false => allow empty password
	RedisDB               int           // Redis DB number
	RedisDT               time.Duration // Redis dial timeout (ex: 5s)
	RedisRT               time.Duration // Redis read timeout (ex: 3s)
	RedisWT               time.Duration // Redis write timeout (ex: 3s)
	RedisMaxWait          time.Duration // max wait between retries (ex: 10s)
	RedisPingTimeout      time.Duration // timeout for each ping attempt (ex: 5s)
	RedisPoolSize         int           // Redis connection pool size
	RedisConnectTimeout   time.Duration // Total time to retry connecting (ex: 30s)
	RedisRetryInterval    time.Duration // Initial wait between retries (ex: 2s, grows exponentially)
	RedisWarnThreshold    int           // warn after this many attempts

	// Postgres (posts backend "postgres")
	PostgresDSN          string
	PostgresTable        string
	PostgresMaxOpenConns int
	PostgresMaxIdleConns int
	PostgresPingTimeout  time.Duration

	AllowedHosts []string // optional, restrict admin/ops access to specific Host headers
	AllowedCIDRS []string // optional, restrict admin/ops access to specific IPs/CIDRs
	TrustProxy   bool     // true => trust X-Forwarded-For headers (e.g. cloudflared)

	CSRFKey            string   // optional 32+ byte key, random when empty
	CSRFTrustedOrigins []string // host:port values allowed to POST cross-origin

	RateLimitBurst   int // banner requests allowed in a burst per client IP
	RateLimitRefill  int // tokens refilled per client IP per minute
	RateLimitEntries int // max tracked client IPs before sweeping
}

// Load reads the configuration from the environment. A .env file in the
// working directory is loaded first when present; real environment variables
// win over it. Missing required values panic.
func Load() *Config {
	_ = godotenv.Load()

	cfg := &Config{
		// Server settings
		ListenPort:      getenv("STICKYBAR_LISTEN_PORT", ":8080"),
		ShutdownTimeout: mustDuration("STICKYBAR_SHUTDOWN_TIMEOUT", 5*time.Second),
		RequestTimeout:  mustDuration("STICKYBAR_REQUEST_TIMEOUT", 5*time.Second),

		// Logging
		LogLevel:  getenv("STICKYBAR_LOG_LEVEL", "info"),
		PrettyLog: mustBool("STICKYBAR_PRETTY_LOG", true),

		// Site
		SiteTitle:     getenv("STICKYBAR_SITE_TITLE", "My Site"),
		Timezone:      getenv("STICKYBAR_TIMEZONE", "UTC"),
		PublicBaseURL: requireEnv("STICKYBAR_PUBLIC_BASE_URL"),
		AdminBaseURL:  getenv("STICKYBAR_ADMIN_BASE_URL", ""),

		// Backends
		StoreBackend: strings.ToLower(getenv("STICKYBAR_STORE", StoreRedis)),
		PostsBackend: strings.ToLower(getenv("STICKYBAR_POSTS_BACKEND", PostsCatalog)),

		// Catalog
		CatalogFile:    getenv("STICKYBAR_CATALOG_FILE", "/app/posts.yaml"),
		ReloadInterval: mustDuration("STICKYBAR_RELOAD_INTERVAL", time.Hour),
		TrashInterval:  mustDuration("STICKYBAR_TRASH_INTERVAL", 24*time.Hour),
		TrashRetention: mustDuration("STICKYBAR_TRASH_RETENTION", 30*24*time.Hour),

		// Redis settings
		RedisAddr:             getenv("STICKYBAR_REDIS_ADDR", ""),
		RedisUser:             getenv("STICKYBAR_REDIS_USERNAME", "default"),
		RedisPasswordRequired: mustBool("STICKYBAR_REDIS_PASSWORD_REQUIRED", true),
		RedisPassword:         getenv("STICKYBAR_REDIS_PASSWORD", ""),
		RedisDB:               getenvInt("STICKYBAR_REDIS_DB", 0),
		RedisDT:               mustDuration("REDIS_DIAL_TIMEOUT", 5*time.Second),
		RedisRT:               mustDuration("REDIS_READ_TIMEOUT", 3*time.Second),
		RedisWT:               mustDuration("REDIS_WRITE_TIMEOUT", 3*time.Second),
		RedisMaxWait:          mustDuration("REDIS_MAX_WAIT", 10*time.Second),
		RedisPingTimeout:      mustDuration("REDIS_PING_TIMEOUT", 5*time.Second),
		RedisPoolSize:         getenvInt("REDIS_POOL_SIZE", 10),
		RedisConnectTimeout:   mustDuration("REDIS_CONNECT_TIMEOUT", 30*time.Second),
		RedisRetryInterval:    mustDuration("REDIS_RETRY_INTERVAL", 2*time.Second),
		RedisWarnThreshold:    getenvInt("REDIS_WARN_THRESHOLD", 3),

		// Postgres settings
		PostgresDSN:          getenv("STICKYBAR_POSTGRES_DSN", ""),
		PostgresTable:        getenv("STICKYBAR_POSTGRES_TABLE", "posts"),
		PostgresMaxOpenConns: getenvInt("STICKYBAR_POSTGRES_MAX_OPEN_CONNS", 10),
		PostgresMaxIdleConns: getenvInt("STICKYBAR_POSTGRES_MAX_IDLE_CONNS", 5),
		PostgresPingTimeout:  mustDuration("STICKYBAR_POSTGRES_PING_TIMEOUT", 5*time.Second),

		// Access restrictions
		AllowedHosts: splitAndTrim(getenv("STICKYBAR_ALLOWED_HOSTS", "")),
		AllowedCIDRS: parseAllowedIPs(getenv("STICKYBAR_ALLOWED_CIDRS", "")),
		TrustProxy:   mustBool("STICKYBAR_TRUST_PROXY", false),

		CSRFKey:            getenv("STICKYBAR_CSRF_KEY", ""),
		CSRFTrustedOrigins: splitAndTrim(getenv("STICKYBAR_CSRF_TRUSTED_ORIGINS", "")),

		RateLimitBurst:   getenvInt("STICKYBAR_RATE_LIMIT_BURST", 60),
		RateLimitRefill:  getenvInt("STICKYBAR_RATE_LIMIT_REFILL_PER_MIN", 120),
		RateLimitEntries: getenvInt("STICKYBAR_RATE_LIMIT_MAX_ENTRIES", 10000),
	}

	if cfg.AdminBaseURL == "" {
		cfg.AdminBaseURL = cfg.PublicBaseURL
	}

	loc, err := time.LoadLocation(cfg.Timezone)
	if err != nil {
		panic(fmt.Sprintf("❌ FATAL: Invalid STICKYBAR_TIMEZONE %q: %v", cfg.Timezone, err))
	}
	cfg.Location = loc

	if err := cfg.Validate(); err != nil {
		panic("❌ FATAL: " + err.Error())
	}

	// Log config only in debug mode with redacted sensitive fields
	if cfg.LogLevel == "debug" {
		log.Printf("[DEBUG] cfg: %+v\n", cfg.Redacted())
	}

	return cfg
}

// Validate checks the combinations Load cannot express with defaults alone.
func (c *Config) Validate() error {
	switch c.StoreBackend {
	case StoreRedis:
		if c.RedisAddr == "" {
			return fmt.Errorf("STICKYBAR_REDIS_ADDR is required when STICKYBAR_STORE=%s", StoreRedis)
		}
		if c.RedisPasswordRequired && c.RedisPassword == "" {
			return fmt.Errorf("STICKYBAR_REDIS_PASSWORD is required when STICKYBAR_REDIS_PASSWORD_REQUIRED=true")
		}
	case StoreMemory:
	default:
		return fmt.Errorf("unknown STICKYBAR_STORE %q (want %s or %s)", c.StoreBackend, StoreRedis, StoreMemory)
	}

	switch c.PostsBackend {
	case PostsCatalog:
		if c.CatalogFile == "" {
			return fmt.Errorf("STICKYBAR_CATALOG_FILE is required when STICKYBAR_POSTS_BACKEND=%s", PostsCatalog)
		}
		if c.ReloadInterval <= 0 {
			return fmt.Errorf("STICKYBAR_RELOAD_INTERVAL must be > 0")
		}
	case PostsPostgres:
		if c.PostgresDSN == "" {
			return fmt.Errorf("STICKYBAR_POSTGRES_DSN is required when STICKYBAR_POSTS_BACKEND=%s", PostsPostgres)
		}
	default:
		return fmt.Errorf("unknown STICKYBAR_POSTS_BACKEND %q (want %s or %s)", c.PostsBackend, PostsCatalog, PostsPostgres)
	}

	if c.CSRFKey != "" && len(c.CSRFKey) < 32 {
		return fmt.Errorf("STICKYBAR_CSRF_KEY must be at least 32 bytes")
	}
	return nil
}

// Redacted returns a copy safe to print.
func (c *Config) Redacted() Config {
	cp := *c
	if cp.RedisPassword != "" {
		cp.RedisPassword = "***REDACTED***"
	}
	if cp.RedisUser != "" {
		cp.RedisUser = "***REDACTED***"
	}
	if cp.PostgresDSN != "" {
		cp.PostgresDSN = "***REDACTED***"
	}
	if cp.CSRFKey != "" {
		cp.CSRFKey = "***REDACTED***"
	}
	return cp
}

// helpers
func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func requireEnv(key string) string {
	v := os.Getenv(key)
	if v == "" {
		panic(fmt.Sprintf("❌ FATAL: Required environment variable %s is not set", key))
	}
	return v
}

func getenvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return def
}

func mustBool(key string, def bool) bool {
	if v := os.Getenv(key); v != "" {
		b, err := strconv.ParseBool(v)
		if err == nil {
			return b
		}
	}
	return def
}

func mustDuration(key string, def time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return def
}

func parseAllowedIPs(allowed string) []string {
	if allowed == "" {
		return nil
	}
	ips := make([]string, 0, 4)
	for _, ip := range splitAndTrim(allowed) {
		if ip != "" {
			ips = append(ips, ip)
		}
	}
	return ips
}

func splitAndTrim(s string) []string {
	if s == "" {
		return nil
	}
	raw := strings.Split(s, ",")
	parts := make([]string, 0, len(raw))
	for _, part := range raw {
		trimmed := strings.TrimSpace(part)
		// Remove surrounding quotes if present
		trimmed = strings.Trim(trimmed, `"'`)
		if trimmed != "" {
			parts = append(parts, trimmed)
		}
	}
	return parts
}
