package config

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/xxxsen/common/logger"
)

type Config struct {
	Port               int              `json:"port"`
	LogConfig          logger.LogConfig `json:"log_config"`
	Store              StoreConfig      `json:"store"`
	AI                 AIConfig         `json:"ai"`
	ContactsDir        string           `json:"contacts_dir"`
	CORSOrigins        []string         `json:"cors_origins"`
	RateLimitPerMinute int              `json:"rate_limit_per_minute"`
	RefreshSpec        string           `json:"refresh_spec"`
}

type StoreConfig struct {
	Type            string   `json:"type"`
	Addresses       []string `json:"addresses"`
	Username        string   `json:"username"`
	Password        string   `json:"password"`
	GlobalIndex     string   `json:"global_index"`
	UserIndexPrefix string   `json:"user_index_prefix"`
}

type AIConfig struct {
	Provider string                 `json:"provider"`
	Model    string                 `json:"model"`
	Timeout  int                    `json:"timeout"`
	Data     map[string]interface{} `json:"data"`
}

func Load(path string) (*Config, error) {
	// Secrets may come from a .env file next to the binary; absence is fine.
	_ = godotenv.Load()

	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open config: %w", err)
	}
	defer file.Close()

	var cfg Config
	if err := json.NewDecoder(file).Decode(&cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	if cfg.Port == 0 {
		cfg.Port = 8000
	}
	if cfg.LogConfig.Level == "" {
		cfg.LogConfig.Level = "info"
	}
	applyEnvOverrides(&cfg)
	if cfg.Store.Type == "" {
		cfg.Store.Type = "elasticsearch"
	}
	switch cfg.Store.Type {
	case "elasticsearch":
		if len(cfg.Store.Addresses) == 0 {
			cfg.Store.Addresses = []string{"http://localhost:9200"}
		}
	case "memory":
	default:
		return nil, fmt.Errorf("store.type must be elasticsearch or memory")
	}
	if cfg.Store.GlobalIndex == "" {
		cfg.Store.GlobalIndex = "global_intent_training"
	}
	if cfg.Store.UserIndexPrefix == "" {
		cfg.Store.UserIndexPrefix = "user_intent_training"
	}
	if cfg.AI.Provider == "" {
		cfg.AI.Provider = "gemini"
	}
	if cfg.AI.Model == "" {
		cfg.AI.Model = "gemini-2.5-flash"
	}
	if cfg.RateLimitPerMinute == 0 {
		cfg.RateLimitPerMinute = 60
	}
	return &cfg, nil
}

func applyEnvOverrides(cfg *Config) {
	if key := os.Getenv("GEMINI_API_KEY"); key != "" {
		if cfg.AI.Data == nil {
			cfg.AI.Data = map[string]interface{}{}
		}
		cfg.AI.Data["api_key"] = key
	}
	if addr := os.Getenv("ELASTICSEARCH_ADDR"); addr != "" {
		cfg.Store.Addresses = []string{addr}
	}
	if user := os.Getenv("ELASTICSEARCH_USER"); user != "" {
		cfg.Store.Username = user
	}
	if password := os.Getenv("ELASTICSEARCH_PASSWORD"); password != "" {
		cfg.Store.Password = password
	}
}
