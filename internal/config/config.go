package config

import (
	"strings"
	"time"

	"github.com/spf13/viper"
)

// TLS verification modes for the BORICA connection
const (
	VerifySystem   = "system"
	VerifyInsecure = "insecure"
)

type Config struct {
	App      AppConfig      `mapstructure:"app"`
	Borica   BoricaConfig   `mapstructure:"borica"`
	Database DatabaseConfig `mapstructure:"database"`
	Redis    RedisConfig    `mapstructure:"redis"`
	Document DocumentConfig `mapstructure:"document"`
	Notifier NotifierConfig `mapstructure:"notifier"`
	Logging  LoggingConfig  `mapstructure:"logging"`
}

type AppConfig struct {
	Name    string `mapstructure:"name"`
	Port    int    `mapstructure:"port"`
	Env     string `mapstructure:"env"`
	BaseURL string `mapstructure:"base_url"`
}

// BoricaConfig holds the connection details for the BORICA CQES API.
// The base URL must include the versioned path, e.g.
// https://cqes-rpuat.b-trust.bg/signing-api/v2
type BoricaConfig struct {
	BaseURL        string        `mapstructure:"base_url"`
	RelyingPartyID string        `mapstructure:"relying_party_id"`
	ClientCert     string        `mapstructure:"client_cert"` // PEM client certificate for mutual TLS
	ClientKey      string        `mapstructure:"client_key"`  // PEM private key matching ClientCert
	Verify         string        `mapstructure:"verify"`      // "system", "insecure" or a CA bundle path
	Language       string        `mapstructure:"language"`    // "bg" or "en"
	Timeout        time.Duration `mapstructure:"timeout"`
	Poll           PollConfig    `mapstructure:"poll"`
}

// PollConfig controls the sign-status polling loop.
type PollConfig struct {
	Interval time.Duration `mapstructure:"interval"`
	Timeout  time.Duration `mapstructure:"timeout"`
}

// IsMutualTLS reports whether a client certificate pair is configured.
func (b *BoricaConfig) IsMutualTLS() bool {
	return b.ClientCert != "" && b.ClientKey != ""
}

type DatabaseConfig struct {
	Driver   string `mapstructure:"driver"`
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	User     string `mapstructure:"user"`
	Password string `mapstructure:"password"`
	DBName   string `mapstructure:"dbname"`
	SSLMode  string `mapstructure:"sslmode"`
}

type RedisConfig struct {
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

type DocumentConfig struct {
	BasePath     string `mapstructure:"base_path"`     // Base path for stored artifacts
	SignedFolder string `mapstructure:"signed_folder"` // Folder for downloaded signed documents
}

type NotifierConfig struct {
	Enabled  bool   `mapstructure:"enabled"`
	BaseURL  string `mapstructure:"base_url"`
	Username string `mapstructure:"username"`
	Password string `mapstructure:"password"`
	Timeout  int    `mapstructure:"timeout"`
}

type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

func NewConfig() (*Config, error) {
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	viper.AddConfigPath("./config")

	// Enable environment variable override
	viper.AutomaticEnv()
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	if err := viper.ReadInConfig(); err != nil {
		return nil, err
	}

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, err
	}

	cfg.applyDefaults()

	return &cfg, nil
}

// applyDefaults fills in what the config file may omit. Durations in the
// file are plain second counts.
func (c *Config) applyDefaults() {
	c.Borica.Timeout = c.Borica.Timeout * time.Second
	if c.Borica.Timeout == 0 {
		c.Borica.Timeout = 30 * time.Second
	}

	c.Borica.Poll.Interval = c.Borica.Poll.Interval * time.Second
	if c.Borica.Poll.Interval == 0 {
		c.Borica.Poll.Interval = 2 * time.Second
	}

	c.Borica.Poll.Timeout = c.Borica.Poll.Timeout * time.Second
	if c.Borica.Poll.Timeout == 0 {
		c.Borica.Poll.Timeout = 180 * time.Second
	}

	if c.Borica.Verify == "" {
		c.Borica.Verify = VerifySystem
	}
	if c.Borica.Language == "" {
		c.Borica.Language = "en"
	}
}

func (c *Config) IsDevelopment() bool {
	return c.App.Env == "development"
}

func (c *Config) IsProduction() bool {
	return c.App.Env == "production"
}
