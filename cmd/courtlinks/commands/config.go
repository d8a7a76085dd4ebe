package commands

import (
	"fmt"
	"net/url"
	"os"
	"strings"
	"time"

	"courtlinks/internal/harvest"
	"courtlinks/internal/scrapers/haestirettur"
	"courtlinks/lib/configutil"
	"courtlinks/lib/telemetry"

	"golang.org/x/net/publicsuffix"
)

type Config struct {
	BaseUrl       string `json:"base_url"`
	PartnerDomain string `json:"partner_domain"`
	UserAgent     string `json:"user_agent"`
	// Timeout, RetryWait and RetryMaxWait are go durations, ex. "30s".
	Timeout           string  `json:"timeout"`
	RetryCount        int     `json:"retry_count"`
	RetryWait         string  `json:"retry_wait"`
	RetryMaxWait      string  `json:"retry_max_wait"`
	RequestsPerSecond float64 `json:"requests_per_second"`

	DatasetPath     string `json:"dataset_path"`
	IndexPath       string `json:"index_path"`
	LastUpdatedPath string `json:"last_updated_path"`
	SqlitePath      string `json:"sqlite_path"`

	Telemetry telemetry.Config `json:"telemetry"`
}

func defaultConfig() Config {
	opts := haestirettur.DefaultOptions()
	return Config{
		BaseUrl:         opts.BaseUrl,
		PartnerDomain:   opts.PartnerDomain,
		UserAgent:       opts.UserAgent,
		Timeout:         opts.Timeout.String(),
		RetryCount:      opts.RetryCount,
		RetryWait:       opts.RetryWait.String(),
		RetryMaxWait:    opts.RetryMaxWait.String(),
		DatasetPath:     "allir_domar_og_akvardanir.csv",
		IndexPath:       "mapping.json",
		LastUpdatedPath: "last_updated.txt",
		SqlitePath:      "courtlinks.db",
	}
}

// envOverrides maps environment variables to the config fields they replace.
func envOverrides(cfg *Config) map[string]*string {
	return map[string]*string{
		"COURTLINKS_BASE_URL":          &cfg.BaseUrl,
		"COURTLINKS_DATASET_PATH":      &cfg.DatasetPath,
		"COURTLINKS_INDEX_PATH":        &cfg.IndexPath,
		"COURTLINKS_LAST_UPDATED_PATH": &cfg.LastUpdatedPath,
		"COURTLINKS_SQLITE_PATH":       &cfg.SqlitePath,
	}
}

// loadConfig reads the config file over the defaults, then applies
// COURTLINKS_* environment variables and validates the result.
func loadConfig(path string) (Config, error) {
	cfg, err := configutil.ReadConfigWithDefaults(path, defaultConfig())
	if err != nil {
		return Config{}, err
	}
	for name, field := range envOverrides(&cfg) {
		if value, ok := os.LookupEnv(name); ok && value != "" {
			*field = value
		}
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("invalid config %s: %w", path, err)
	}
	return cfg, nil
}

func (c Config) Validate() error {
	base, err := url.Parse(c.BaseUrl)
	if err != nil {
		return fmt.Errorf("base_url: %w", err)
	}
	if (base.Scheme != "http" && base.Scheme != "https") || base.Host == "" {
		return fmt.Errorf("base_url must be an absolute http(s) url, got %q", c.BaseUrl)
	}

	domain := strings.ToLower(strings.TrimSpace(c.PartnerDomain))
	if _, err := publicsuffix.EffectiveTLDPlusOne(domain); err != nil {
		return fmt.Errorf("partner_domain %q is not a registrable domain: %w", c.PartnerDomain, err)
	}

	for name, value := range map[string]string{
		"timeout":        c.Timeout,
		"retry_wait":     c.RetryWait,
		"retry_max_wait": c.RetryMaxWait,
	} {
		d, err := time.ParseDuration(value)
		if err != nil {
			return fmt.Errorf("%s: %w", name, err)
		}
		if d <= 0 {
			return fmt.Errorf("%s must be positive, got %s", name, value)
		}
	}
	if c.RetryCount < 0 {
		return fmt.Errorf("retry_count must not be negative")
	}
	if c.RequestsPerSecond < 0 {
		return fmt.Errorf("requests_per_second must not be negative")
	}
	return nil
}

// ClientOptions assumes the config has been validated.
func (c Config) ClientOptions() haestirettur.Options {
	timeout, _ := time.ParseDuration(c.Timeout)
	retryWait, _ := time.ParseDuration(c.RetryWait)
	retryMaxWait, _ := time.ParseDuration(c.RetryMaxWait)
	return haestirettur.Options{
		BaseUrl:           c.BaseUrl,
		PartnerDomain:     c.PartnerDomain,
		UserAgent:         c.UserAgent,
		Timeout:           timeout,
		RetryCount:        c.RetryCount,
		RetryWait:         retryWait,
		RetryMaxWait:      retryMaxWait,
		RequestsPerSecond: c.RequestsPerSecond,
	}
}

func (c Config) Paths() harvest.Paths {
	return harvest.Paths{
		Dataset:     c.DatasetPath,
		Index:       c.IndexPath,
		LastUpdated: c.LastUpdatedPath,
	}
}
