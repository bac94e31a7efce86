package config

import (
	"log"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"
)

type Config struct {
	ListenAddr string
	LogLevel   string

	APIURL     string
	APITimeout time.Duration

	SessionSecret []byte
	SessionStore  string
	SessionDir    string
	SessionMaxAge time.Duration
	SessionDBDSN  string
	CookieSecure  bool

	RedisAddr     string
	RedisPassword string

	ESURL      string
	ESUser     string
	ESPassword string
	ESIndex    string

	KafkaBrokers []string
	KafkaTopic   string

	LoginRate  float64
	LoginBurst int
}

// CLIConfig is what soundctl needs; flags may override both fields.
type CLIConfig struct {
	APIURL      string
	APITimeout  time.Duration
	SessionFile string
}

func getenv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}

func must(v string, name string) string {
	if v == "" {
		log.Fatalf("missing required env %s", name)
	}
	return v
}

func Load() *Config {
	return &Config{
		ListenAddr: getenv("STOREFRONT_ADDR", ":8080"),
		LogLevel:   getenv("LOG_LEVEL", "info"),

		APIURL:     getenv("API_URL", "http://localhost:5000"),
		APITimeout: Duration("API_TIMEOUT", 10*time.Second),

		SessionSecret: []byte(must(os.Getenv("SESSION_SECRET"), "SESSION_SECRET")),
		SessionStore:  strings.ToLower(getenv("SESSION_STORE", "cookie")),
		SessionDir:    getenv("SESSION_DIR", filepath.Join(os.TempDir(), "storefront-sessions")),
		SessionMaxAge: Duration("SESSION_MAX_AGE", 720*time.Hour),
		SessionDBDSN:  os.Getenv("SESSION_DB_DSN"),
		CookieSecure:  Bool("COOKIE_SECURE", false),

		RedisAddr:     getenv("REDIS_ADDR", "localhost:6379"),
		RedisPassword: os.Getenv("REDIS_PASSWORD"),

		ESURL:      os.Getenv("ES_URL"),
		ESUser:     os.Getenv("ES_USER"),
		ESPassword: os.Getenv("ES_PASSWORD"),
		ESIndex:    getenv("ES_INDEX", "products"),

		KafkaBrokers: CSV(os.Getenv("KAFKA_BROKERS")),
		KafkaTopic:   getenv("KAFKA_TOPIC", "storefront_events"),

		LoginRate:  Float("LOGIN_RATE", 0.2),
		LoginBurst: Int("LOGIN_BURST", 5),
	}
}

func LoadCLI() *CLIConfig {
	file := os.Getenv("SOUNDCTL_SESSION")
	if file == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			home = "."
		}
		file = filepath.Join(home, ".soundctl", "session.json")
	}
	return &CLIConfig{
		APIURL:      getenv("API_URL", "http://localhost:5000"),
		APITimeout:  Duration("API_TIMEOUT", 10*time.Second),
		SessionFile: file,
	}
}

func CSV(v string) []string {
	if v == "" {
		return nil
	}
	parts := strings.Split(v, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}

func Int(key string, def int) int {
	n, err := strconv.Atoi(os.Getenv(key))
	if err != nil {
		return def
	}
	return n
}

func Float(key string, def float64) float64 {
	f, err := strconv.ParseFloat(os.Getenv(key), 64)
	if err != nil {
		return def
	}
	return f
}

func Bool(key string, def bool) bool {
	b, err := strconv.ParseBool(os.Getenv(key))
	if err != nil {
		return def
	}
	return b
}

func Duration(key string, def time.Duration) time.Duration {
	d, err := time.ParseDuration(os.Getenv(key))
	if err != nil {
		return def
	}
	return d
}
