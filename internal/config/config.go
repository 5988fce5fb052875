package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

const (
	defaultExpressionURL = "https://api-inference.huggingface.co/models/trpakov/vit-face-expression"
	defaultAgeURL        = "https://api-inference.huggingface.co/models/nateraw/vit-age-classifier"
	defaultModel         = "gpt-4o-mini"
)

type Config struct {
	Server     ServerConfig     `mapstructure:"server"`
	Log        LogConfig        `mapstructure:"log"`
	RateLimit  RateLimitConfig  `mapstructure:"rate_limit"`
	Cache      CacheConfig      `mapstructure:"cache"`
	Cleanup    CleanupConfig    `mapstructure:"cleanup"`
	Classifier ClassifierConfig `mapstructure:"classifier"`
	AI         AIConfig         `mapstructure:"ai"`
}

type ServerConfig struct {
	Port         int      `mapstructure:"port"`
	MaxBodyBytes int64    `mapstructure:"max_body_bytes"`
	CORSOrigins  []string `mapstructure:"cors_origins"`
}

type LogConfig struct {
	File      string `mapstructure:"file"`
	Level     string `mapstructure:"level"`
	FileCount int    `mapstructure:"file_count"`
	FileSize  int    `mapstructure:"file_size"`
	KeepDays  int    `mapstructure:"keep_days"`
	Console   bool   `mapstructure:"console"`
}

type RateLimitConfig struct {
	Window time.Duration `mapstructure:"window"`
	Max    int           `mapstructure:"max"`
}

type CacheConfig struct {
	Type string        `mapstructure:"type"`
	TTL  time.Duration `mapstructure:"ttl"`
	Size int           `mapstructure:"size"`
}

// CleanupConfig schedules the sweep of expired cache entries and idle rate buckets.
// An empty spec disables it.
type CleanupConfig struct {
	Spec string `mapstructure:"spec"`
}

type ClassifierConfig struct {
	Token         string        `mapstructure:"token"`
	ExpressionURL string        `mapstructure:"expression_url"`
	AgeURL        string        `mapstructure:"age_url"`
	Timeout       time.Duration `mapstructure:"timeout"`
}

type AIConfig struct {
	Token       string           `mapstructure:"token"`
	Providers   []ProviderConfig `mapstructure:"providers"`
	Timeout     time.Duration    `mapstructure:"timeout"`
	MaxTokens   int              `mapstructure:"max_tokens"`
	Temperature float64          `mapstructure:"temperature"`
	TopP        float64          `mapstructure:"top_p"`
	Language    string           `mapstructure:"language"`
}

// ProviderConfig names a registered provider; Data is passed to its factory as-is.
type ProviderConfig struct {
	Name  string                 `mapstructure:"name"`
	Model string                 `mapstructure:"model"`
	Data  map[string]interface{} `mapstructure:"data"`
}

// Load reads an optional config file and applies environment overrides.
// Missing credentials are not an error here; see Config.Configured.
func Load(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	if err := v.BindEnv("classifier.token", "CLASSIFIER_TOKEN", "HF_API_TOKEN"); err != nil {
		return nil, err
	}
	if err := v.BindEnv("ai.token", "GENERATOR_TOKEN", "OPENAI_API_KEY"); err != nil {
		return nil, err
	}
	if err := v.BindEnv("server.port", "PORT"); err != nil {
		return nil, err
	}

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	if err := cfg.normalize(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.max_body_bytes", 8<<20)
	v.SetDefault("log.level", "info")
	v.SetDefault("log.console", true)
	v.SetDefault("rate_limit.window", time.Minute)
	v.SetDefault("rate_limit.max", 6)
	v.SetDefault("cache.type", "memory")
	v.SetDefault("cache.ttl", 10*time.Minute)
	v.SetDefault("cache.size", 1000)
	v.SetDefault("cleanup.spec", "")
	v.SetDefault("classifier.expression_url", defaultExpressionURL)
	v.SetDefault("classifier.age_url", defaultAgeURL)
	v.SetDefault("classifier.timeout", 15*time.Second)
	v.SetDefault("ai.timeout", 45*time.Second)
	v.SetDefault("ai.max_tokens", 1200)
	v.SetDefault("ai.temperature", 0.7)
	v.SetDefault("ai.top_p", 0.9)
	v.SetDefault("ai.language", "English")
}

func (c *Config) normalize() error {
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("server.port out of range: %d", c.Server.Port)
	}
	if c.RateLimit.Window <= 0 {
		return fmt.Errorf("rate_limit.window must be positive")
	}
	if c.RateLimit.Max <= 0 {
		return fmt.Errorf("rate_limit.max must be positive")
	}
	switch strings.ToLower(c.Cache.Type) {
	case "memory", "lru":
	default:
		return fmt.Errorf("cache.type must be memory or lru")
	}
	c.Classifier.Token = strings.TrimSpace(c.Classifier.Token)
	c.AI.Token = strings.TrimSpace(c.AI.Token)
	if len(c.AI.Providers) == 0 {
		c.AI.Providers = []ProviderConfig{{Name: "openai", Model: defaultModel}}
	}
	for i := range c.AI.Providers {
		p := &c.AI.Providers[i]
		p.Name = strings.ToLower(strings.TrimSpace(p.Name))
		if p.Name == "" {
			return fmt.Errorf("ai.providers[%d].name is required", i)
		}
		if strings.TrimSpace(p.Model) == "" {
			return fmt.Errorf("ai.providers[%d].model is required", i)
		}
		if p.Data == nil {
			p.Data = map[string]interface{}{}
		}
		if key, _ := p.Data["api_key"].(string); strings.TrimSpace(key) == "" && c.AI.Token != "" {
			p.Data["api_key"] = c.AI.Token
		}
		if _, ok := p.Data["json_mode"]; !ok {
			p.Data["json_mode"] = true
		}
	}
	return nil
}

// Configured reports whether both the classifier token and at least one generator key are present.
func (c *Config) Configured() bool {
	if c.Classifier.Token == "" {
		return false
	}
	for _, p := range c.AI.Providers {
		if key, _ := p.Data["api_key"].(string); strings.TrimSpace(key) != "" {
			return true
		}
	}
	return false
}
