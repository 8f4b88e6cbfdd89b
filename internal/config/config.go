package config

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"bookview/internal/platform/openlibrary"
)

const EnvPrefix = "BOOKVIEW"

const (
	KeyAddr               = "addr"
	KeyOpenLibraryBaseURL = "openlibrary_base_url"
	KeyCoverBaseURL       = "cover_base_url"
	KeyHTTPTimeout        = "http_timeout"
	KeyUserAgent          = "user_agent"
	KeyDefaultISBN        = "default_isbn"
	KeyLogLevel           = "log_level"
	KeyLogFormat          = "log_format"
	KeyRateLimitRPS       = "rate_limit_rps"
	KeyRateLimitBurst     = "rate_limit_burst"
	KeyCORSOrigins        = "cors_origins"
	KeyEnableHSTS         = "enable_hsts"
)

type Config struct {
	Addr               string
	OpenLibraryBaseURL string
	CoverBaseURL       string
	HTTPTimeout        time.Duration
	UserAgent          string
	DefaultISBN        string
	LogLevel           string
	LogFormat          string
	RateLimitRPS       float64
	RateLimitBurst     int
	CORSOrigins        []string
	EnableHSTS         bool
}

// LoadEnvFiles reads .env and .env.local into the process environment.
// Variables already set are left alone.
func LoadEnvFiles() {
	_ = godotenv.Load(".env")
	_ = godotenv.Load(".env.local")
}

// New returns a viper instance with defaults and BOOKVIEW_* env binding.
func New() *viper.Viper {
	v := viper.New()
	v.SetDefault(KeyAddr, ":8080")
	v.SetDefault(KeyOpenLibraryBaseURL, openlibrary.DefaultBaseURL)
	v.SetDefault(KeyCoverBaseURL, openlibrary.DefaultCoverBaseURL)
	v.SetDefault(KeyHTTPTimeout, "15s")
	v.SetDefault(KeyUserAgent, "bookview/1.0 (+https://openlibrary.org/developers/api)")
	v.SetDefault(KeyDefaultISBN, "9783442236862")
	v.SetDefault(KeyLogLevel, "info")
	v.SetDefault(KeyLogFormat, "text")
	v.SetDefault(KeyRateLimitRPS, 20)
	v.SetDefault(KeyRateLimitBurst, 40)
	v.SetDefault(KeyCORSOrigins, "")
	v.SetDefault(KeyEnableHSTS, false)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()
	return v
}

// Load reads an optional config file into v and returns the resolved
// configuration. Env vars and bound flags take precedence over the file.
func Load(v *viper.Viper, configFile string) (Config, error) {
	if configFile != "" {
		v.SetConfigFile(configFile)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("read config %s: %w", configFile, err)
		}
	}

	cfg := Config{
		Addr:               v.GetString(KeyAddr),
		OpenLibraryBaseURL: strings.TrimSpace(v.GetString(KeyOpenLibraryBaseURL)),
		CoverBaseURL:       strings.TrimSpace(v.GetString(KeyCoverBaseURL)),
		HTTPTimeout:        v.GetDuration(KeyHTTPTimeout),
		UserAgent:          v.GetString(KeyUserAgent),
		DefaultISBN:        strings.TrimSpace(v.GetString(KeyDefaultISBN)),
		LogLevel:           v.GetString(KeyLogLevel),
		LogFormat:          v.GetString(KeyLogFormat),
		RateLimitRPS:       v.GetFloat64(KeyRateLimitRPS),
		RateLimitBurst:     v.GetInt(KeyRateLimitBurst),
		CORSOrigins:        splitList(v.Get(KeyCORSOrigins)),
		EnableHSTS:         v.GetBool(KeyEnableHSTS),
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) Validate() error {
	var errs []error
	if c.Addr == "" {
		errs = append(errs, errors.New("addr must not be empty"))
	}
	for key, raw := range map[string]string{
		KeyOpenLibraryBaseURL: c.OpenLibraryBaseURL,
		KeyCoverBaseURL:       c.CoverBaseURL,
	} {
		u, err := url.Parse(raw)
		if err != nil || u.Scheme == "" || u.Host == "" {
			errs = append(errs, fmt.Errorf("%s must be an absolute URL, got %q", key, raw))
		}
	}
	if c.HTTPTimeout <= 0 {
		errs = append(errs, fmt.Errorf("%s must be positive", KeyHTTPTimeout))
	}
	if c.RateLimitRPS < 0 || c.RateLimitBurst < 0 {
		errs = append(errs, errors.New("rate limit values must not be negative"))
	}
	return errors.Join(errs...)
}

// splitList accepts a comma separated string or a list from a config file.
func splitList(raw any) []string {
	var parts []string
	switch t := raw.(type) {
	case string:
		parts = strings.Split(t, ",")
	case []string:
		parts = t
	case []any:
		for _, p := range t {
			parts = append(parts, fmt.Sprint(p))
		}
	}

	var out []string
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
