package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/github"
)

type Config struct {
	// EnvFile is the dotenv file that was loaded, or "" when there was none.
	EnvFile string

	AppURL     string
	ListenAddr string
	GinMode    string

	LogLevel  string
	LogFormat string

	DatabaseDriver  string
	DatabaseURL     string
	DBMaxOpenConns  int
	DBMaxIdleConns  int
	DBConnLifetime  time.Duration
	ContentDir      string
	FallbackToFiles bool

	MediaDir       string
	MediaURLPrefix string
	MediaMaxBytes  int64

	SessionSecret     string
	AdminPasswordHash string
	AdminGitHubLogin  string
	// AdminRedirectURL is the admin page a GitHub sign-in returns to.
	AdminRedirectURL string
	OAuth            *oauth2.Config

	LoginRatePerMinute int
	LoginBurst         int

	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

// RemoteConfigured reports whether a database should be opened.
func (c *Config) RemoteConfigured() bool {
	return c.DatabaseURL != ""
}

// GitHubEnabled reports whether the GitHub login routes should be mounted.
func (c *Config) GitHubEnabled() bool {
	return c.OAuth != nil && c.OAuth.ClientID != "" && c.OAuth.ClientSecret != "" && c.AdminGitHubLogin != ""
}

func (c *Config) ProjectsDir() string {
	return strings.TrimRight(c.ContentDir, "/") + "/projects"
}

func (c *Config) BlogDir() string {
	return strings.TrimRight(c.ContentDir, "/") + "/blog"
}

// Load reads the environment, after loading .env when one exists.
func Load() (*Config, error) {
	return LoadFrom(".env")
}

// LoadFrom is Load with an explicit dotenv path. A missing file is not an
// error; a malformed one is.
func LoadFrom(envFile string) (*Config, error) {
	loaded := envFile
	if err := godotenv.Load(envFile); err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("load %s: %w", envFile, err)
		}
		loaded = ""
	}

	getEnv := func(key, fallback string) string {
		if v := os.Getenv(key); v != "" {
			return v
		}
		return fallback
	}

	var errs []string
	getInt := func(key string, fallback int) int {
		v := os.Getenv(key)
		if v == "" {
			return fallback
		}
		n, err := strconv.Atoi(v)
		if err != nil {
			errs = append(errs, fmt.Sprintf("%s: %q is not an integer", key, v))
			return fallback
		}
		return n
	}
	getBool := func(key string, fallback bool) bool {
		v := os.Getenv(key)
		if v == "" {
			return fallback
		}
		b, err := strconv.ParseBool(v)
		if err != nil {
			errs = append(errs, fmt.Sprintf("%s: %q is not a boolean", key, v))
			return fallback
		}
		return b
	}
	getDuration := func(key string, fallback time.Duration) time.Duration {
		v := os.Getenv(key)
		if v == "" {
			return fallback
		}
		d, err := time.ParseDuration(v)
		if err != nil {
			errs = append(errs, fmt.Sprintf("%s: %q is not a duration", key, v))
			return fallback
		}
		return d
	}

	appURL := strings.TrimRight(getEnv("APP_URL", "http://localhost:8080"), "/")

	cfg := &Config{
		EnvFile:    loaded,
		AppURL:     appURL,
		ListenAddr: getEnv("LISTEN_ADDR", ":8080"),
		GinMode:    os.Getenv("GIN_MODE"),

		LogLevel:  getEnv("LOG_LEVEL", "info"),
		LogFormat: getEnv("LOG_FORMAT", "json"),

		DatabaseDriver:  getEnv("DATABASE_DRIVER", "postgres"),
		DatabaseURL:     os.Getenv("DATABASE_URL"),
		DBMaxOpenConns:  getInt("DB_MAX_OPEN_CONNS", 25),
		DBMaxIdleConns:  getInt("DB_MAX_IDLE_CONNS", 10),
		DBConnLifetime:  getDuration("DB_CONN_MAX_LIFETIME", 5*time.Minute),
		ContentDir:      getEnv("CONTENT_DIR", "./content"),
		FallbackToFiles: getBool("CONTENT_FALLBACK_TO_FILESYSTEM", false),

		MediaDir:       getEnv("MEDIA_DIR", "./public/images"),
		MediaURLPrefix: getEnv("MEDIA_URL_PREFIX", "/images"),
		MediaMaxBytes:  int64(getInt("MEDIA_MAX_BYTES", 5<<20)),

		SessionSecret:     os.Getenv("SESSION_SECRET"),
		AdminPasswordHash: os.Getenv("ADMIN_PASSWORD_HASH"),
		AdminGitHubLogin:  os.Getenv("ADMIN_GITHUB_LOGIN"),
		AdminRedirectURL:  getEnv("ADMIN_REDIRECT_URL", appURL+"/modify"),

		LoginRatePerMinute: getInt("LOGIN_RATE_PER_MINUTE", 10),
		LoginBurst:         getInt("LOGIN_BURST", 5),

		ReadTimeout:  getDuration("HTTP_READ_TIMEOUT", 15*time.Second),
		WriteTimeout: getDuration("HTTP_WRITE_TIMEOUT", 30*time.Second),
	}

	cfg.OAuth = &oauth2.Config{
		ClientID:     os.Getenv("GITHUB_CLIENT_ID"),
		ClientSecret: os.Getenv("GITHUB_CLIENT_SECRET"),
		Scopes:       []string{"read:user"},
		Endpoint:     github.Endpoint,
		RedirectURL:  getEnv("GITHUB_REDIRECT_URL", appURL+"/auth/callback"),
	}

	switch cfg.DatabaseDriver {
	case "postgres", "sqlite":
	default:
		errs = append(errs, fmt.Sprintf("DATABASE_DRIVER: unsupported driver %q (supported: postgres, sqlite)", cfg.DatabaseDriver))
	}
	switch cfg.LogFormat {
	case "json", "console":
	default:
		errs = append(errs, fmt.Sprintf("LOG_FORMAT: unsupported format %q (supported: json, console)", cfg.LogFormat))
	}

	if len(errs) > 0 {
		return nil, fmt.Errorf("invalid configuration: %s", strings.Join(errs, "; "))
	}
	return cfg, nil
}
