package config

import (
	"os"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

type Config struct {
	AI struct {
		Provider string `yaml:"provider"`
		Model    string `yaml:"model"`
		APIKey   string `yaml:"api_key"`
		BaseURL  string `yaml:"base_url"` // OpenAI-compatible endpoints only
	} `yaml:"ai"`
	Server struct {
		Host          string `yaml:"host"`
		Port          int    `yaml:"port"`
		OutputDir     string `yaml:"output_dir"`
		MaxFileSizeMB int    `yaml:"max_file_size_mb"`
	} `yaml:"server"`
	Document struct {
		ChunkLimit int `yaml:"chunk_limit"`
	} `yaml:"document"`
}

// Default returns the configuration used when no config file is given.
func Default() *Config {
	var cfg Config
	cfg.fillDefaults()
	return &cfg
}

func LoadConfig(path string) (*Config, error) {
	// 1. Load .env if exists
	_ = godotenv.Load()

	var cfg Config
	if path != "" {
		// 2. Load YAML config
		file, err := os.ReadFile(path)
		if err != nil {
			return nil, err
		}
		if err := yaml.Unmarshal(file, &cfg); err != nil {
			return nil, err
		}
	}

	// 3. Override with Environment Variables if present
	if apiKey := os.Getenv("REPORTFORGE_API_KEY"); apiKey != "" {
		cfg.AI.APIKey = apiKey
	}
	if provider := os.Getenv("REPORTFORGE_AI_PROVIDER"); provider != "" {
		cfg.AI.Provider = provider
	}
	if model := os.Getenv("REPORTFORGE_AI_MODEL"); model != "" {
		cfg.AI.Model = model
	}

	cfg.fillDefaults()
	return &cfg, nil
}

func (c *Config) fillDefaults() {
	if c.AI.Provider == "" {
		c.AI.Provider = "gemini"
	}
	if c.Server.Host == "" {
		c.Server.Host = "0.0.0.0"
	}
	if c.Server.Port == 0 {
		c.Server.Port = 8734
	}
	if c.Server.OutputDir == "" {
		c.Server.OutputDir = os.TempDir()
	}
	if c.Server.MaxFileSizeMB == 0 {
		c.Server.MaxFileSizeMB = 50
	}
	if c.Document.ChunkLimit == 0 {
		c.Document.ChunkLimit = 1000
	}
}
