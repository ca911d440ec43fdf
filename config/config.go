// Package config loads the AEO audit engine's configuration via viper:
// YAML file, environment overrides, and sane defaults for every recognized
// option described in §6. YAML/viper was chosen over a plain TOML loader
// because it additionally gives environment-variable overrides for free.
package config

import (
	"strings"

	"github.com/rotisserie/eris"
	"github.com/spf13/viper"
)

// FetcherConfig configures the Adaptive Fetch Engine (§4.A).
type FetcherConfig struct {
	Mode                 string   `yaml:"mode" mapstructure:"mode"`
	UserAgent            string   `yaml:"user_agent" mapstructure:"user_agent"`
	HTTPTimeoutSeconds   int      `yaml:"http_timeout_seconds" mapstructure:"http_timeout_seconds"`
	RenderTimeoutSeconds int      `yaml:"render_timeout_seconds" mapstructure:"render_timeout_seconds"`
	ChromePath           string   `yaml:"chrome_path" mapstructure:"chrome_path"`
	RenderRequiredHosts  []string `yaml:"render_required_hosts" mapstructure:"render_required_hosts"`
	MaxRenderRetries     int      `yaml:"max_render_retries" mapstructure:"max_render_retries"`
}

// DomainConfig configures the Domain Orchestrator (§4.G, §6).
type DomainConfig struct {
	MaxPages            int  `yaml:"max_pages" mapstructure:"max_pages"`
	Concurrency         int  `yaml:"concurrency" mapstructure:"concurrency"`
	IncludeSubdomains   bool `yaml:"include_subdomains" mapstructure:"include_subdomains"`
	StallTimeoutSeconds int  `yaml:"stall_timeout_seconds" mapstructure:"stall_timeout_seconds"`
	PageTimeoutSeconds  int  `yaml:"page_timeout_seconds" mapstructure:"page_timeout_seconds"`
}

// ContentTypeConfig holds the content-type reweighting matrix (§4.E) as
// overridable data, keyed category -> content-type -> weight.
type ContentTypeConfig struct {
	Weights map[string]map[string]float64 `yaml:"weights" mapstructure:"weights"`
}

// JobConfig configures JobState retention (§4.H, §6).
type JobConfig struct {
	TTLSeconds int `yaml:"ttl_seconds" mapstructure:"ttl_seconds"`
}

// LLMProviderConfig describes one configured outbound AI-citation provider.
type LLMProviderConfig struct {
	Endpoint   string `yaml:"endpoint" mapstructure:"endpoint"`
	Credential string `yaml:"credential" mapstructure:"credential"`
}

// LLMConfig maps provider name to its endpoint/credential (§6); an empty
// map disables the AI-Citation category.
type LLMConfig struct {
	Clients map[string]LLMProviderConfig `yaml:"clients" mapstructure:"clients"`
}

// LogConfig configures the zap logger (§A).
type LogConfig struct {
	Level  string `yaml:"level" mapstructure:"level"`
	Format string `yaml:"format" mapstructure:"format"`
}

// AuthorityConfig carries the built-in authoritative-host list consulted by
// the Authority scorer (§4.E "host on a built-in authoritative list").
type AuthorityConfig struct {
	Hosts []string `yaml:"hosts" mapstructure:"hosts"`
}

// Config is the top-level AEO audit engine configuration.
type Config struct {
	Fetcher     FetcherConfig     `yaml:"fetcher" mapstructure:"fetcher"`
	Domain      DomainConfig      `yaml:"domain" mapstructure:"domain"`
	ContentType ContentTypeConfig `yaml:"content_type" mapstructure:"content_type"`
	Job         JobConfig         `yaml:"job" mapstructure:"job"`
	LLM         LLMConfig         `yaml:"llm_clients" mapstructure:"llm_clients"`
	Log         LogConfig         `yaml:"log" mapstructure:"log"`
	Authority   AuthorityConfig   `yaml:"authority" mapstructure:"authority"`
}

// domainHardCeiling is the hard ceiling on discovered/audited pages (§3, §6,
// §8): max_pages=0 means unlimited, capped here, never truly unbounded.
const domainHardCeiling = 1000

// concurrencyHardCap bounds domain.concurrency (§5: "hard cap 10").
const concurrencyHardCap = 10

// Load reads configuration from ./aeoaudit.yaml (if present) layered over
// spec-aligned defaults, with AEOAUDIT_-prefixed environment overrides.
// A missing config file is not an error; any other read failure is
// eris-wrapped (§7 error taxonomy: configuration failures surface to the
// caller, they do not silently fall back).
func Load() (*Config, error) {
	v := viper.New()

	v.SetConfigName("aeoaudit")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")

	v.SetEnvPrefix("AEOAUDIT")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, eris.Wrap(err, "config: read file")
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, eris.Wrap(err, "config: unmarshal")
	}

	cfg.normalize()
	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("fetcher.mode", "hybrid")
	v.SetDefault("fetcher.user_agent", "Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36")
	v.SetDefault("fetcher.http_timeout_seconds", 10)
	v.SetDefault("fetcher.render_timeout_seconds", 30)
	v.SetDefault("fetcher.max_render_retries", 3)
	v.SetDefault("fetcher.render_required_hosts", []string{"web.app", "firebaseapp.com", "vercel.app", "netlify.app"})

	v.SetDefault("domain.max_pages", 100)
	v.SetDefault("domain.concurrency", 3)
	v.SetDefault("domain.include_subdomains", false)
	v.SetDefault("domain.stall_timeout_seconds", 300)
	v.SetDefault("domain.page_timeout_seconds", 60)

	v.SetDefault("job.ttl_seconds", 3600)

	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")

	v.SetDefault("authority.hosts", []string{
		"wikipedia.org", "nytimes.com", "reuters.com", "bbc.com", "apnews.com",
	})

	for category, row := range defaultContentTypeWeights {
		for ct, weight := range row {
			v.SetDefault("content_type.weights."+category+"."+ct, weight)
		}
	}
}

// defaultContentTypeWeights mirrors the §4.E reweighting matrix; shipped as
// config-overridable data rather than compiled constants.
var defaultContentTypeWeights = map[string]map[string]float64{
	"answerability":   {"informational": 1.3, "experiential": 0.5, "transactional": 0.8, "navigational": 0.6},
	"structured_data": {"informational": 1.0, "experiential": 1.3, "transactional": 1.4, "navigational": 1.2},
	"authority":       {"informational": 1.2, "experiential": 0.9, "transactional": 1.1, "navigational": 0.8},
	"content_quality": {"informational": 1.2, "experiential": 1.1, "transactional": 0.9, "navigational": 0.7},
	"citationability": {"informational": 1.2, "experiential": 0.6, "transactional": 0.7, "navigational": 0.5},
	"technical":       {"informational": 1.0, "experiential": 1.0, "transactional": 1.2, "navigational": 1.3},
}

// normalize clamps operator-supplied values to the ranges §6/§5 declare,
// so a bad config value degrades to the nearest legal bound
// instead of propagating an out-of-range setting into the pipeline.
func (c *Config) normalize() {
	if c.Domain.MaxPages <= 0 || c.Domain.MaxPages > domainHardCeiling {
		c.Domain.MaxPages = domainHardCeiling
	}
	if c.Domain.Concurrency <= 0 {
		c.Domain.Concurrency = 3
	}
	if c.Domain.Concurrency > concurrencyHardCap {
		c.Domain.Concurrency = concurrencyHardCap
	}
	if c.Job.TTLSeconds <= 0 {
		c.Job.TTLSeconds = 3600
	}
}
