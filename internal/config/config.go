package config

import (
	"os"
	"path"
	"time"

	"gopkg.in/yaml.v2"
)

const DefaultTripSalt = "bbs-secret-salt"

type Config struct {
	Public  Public
	Private Private
}

type Public struct {
	LogLevel string `yaml:"log_level"`
	LogJSON  bool   `yaml:"log_json"`

	ThreadsPerPage int `yaml:"threads_per_page"` // board page shows at most this many threads

	// Posting cooldowns, in seconds. One admitted event per window.
	ReplyCooldown  time.Duration `yaml:"reply_cooldown"`
	ThreadCooldown time.Duration `yaml:"thread_cooldown"`
	// Idle rate-limit buckets are dropped after this many seconds.
	LimiterIdleTTL time.Duration `yaml:"limiter_idle_ttl"`

	// Field clamps, in runes.
	MaxNameLen  int `yaml:"max_name_len"`
	MaxTripLen  int `yaml:"max_trip_len"`
	MaxEmailLen int `yaml:"max_email_len"`
	MaxTitleLen int `yaml:"max_title_len"`
	MaxBodyLen  int `yaml:"max_body_len"`
}

type Pg struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	Dbname   string `yaml:"dbname"`
}

type Private struct {
	Pg       Pg     `yaml:"pg"`
	TripSalt string `yaml:"trip_salt"`
	AdminKey string `yaml:"admin_key"`
}

// TripSaltIsDefault reports whether the forgeable fallback salt is in use,
// so startup can warn about it.
func (c *Config) TripSaltIsDefault() bool {
	return c.Private.TripSalt == DefaultTripSalt
}

func mustLoadPath(configPath string, output interface{}) {
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		panic("config file does not exist: " + configPath)
	}
	configFile, err := os.ReadFile(configPath)
	if err != nil {
		panic("can't read config file")
	}

	err = yaml.Unmarshal(configFile, output)
	if err != nil {
		panic("can't unmarshal config file")
	}
}

func MustLoad(configFolder string) *Config {
	var public Public
	mustLoadPath(path.Join(configFolder, "public.yaml"), &public)

	var private Private
	mustLoadPath(path.Join(configFolder, "private.yaml"), &private)

	cfg := &Config{public, private}
	cfg.applyEnvOverrides()
	cfg.ApplyDefaults()
	return cfg
}

// applyEnvOverrides lets deploy-time secrets come from the environment
// (or a .env file loaded by main) instead of private.yaml.
func (c *Config) applyEnvOverrides() {
	if v := os.Getenv("TRIP_SALT"); v != "" {
		c.Private.TripSalt = v
	}
	if v := os.Getenv("PG_PASSWORD"); v != "" {
		c.Private.Pg.Password = v
	}
	if v := os.Getenv("ADMIN_KEY"); v != "" {
		c.Private.AdminKey = v
	}
}

// ApplyDefaults fills zero-valued knobs with the documented defaults.
// Exported so tests can build a Config without a yaml folder.
func (c *Config) ApplyDefaults() {
	if c.Public.LogLevel == "" {
		c.Public.LogLevel = "info"
	}
	if c.Public.ThreadsPerPage == 0 {
		c.Public.ThreadsPerPage = 100
	}
	if c.Public.ReplyCooldown == 0 {
		c.Public.ReplyCooldown = 5
	}
	if c.Public.ThreadCooldown == 0 {
		c.Public.ThreadCooldown = 60
	}
	if c.Public.LimiterIdleTTL == 0 {
		c.Public.LimiterIdleTTL = 3600
	}
	if c.Public.MaxNameLen == 0 {
		c.Public.MaxNameLen = 32
	}
	if c.Public.MaxTripLen == 0 {
		c.Public.MaxTripLen = 12
	}
	if c.Public.MaxEmailLen == 0 {
		c.Public.MaxEmailLen = 128
	}
	if c.Public.MaxTitleLen == 0 {
		c.Public.MaxTitleLen = 120
	}
	if c.Public.MaxBodyLen == 0 {
		c.Public.MaxBodyLen = 4000
	}
	if c.Private.TripSalt == "" {
		c.Private.TripSalt = DefaultTripSalt
	}
}
