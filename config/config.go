package config

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all service configuration.
type Config struct {
	// Environment
	Environment EnvironmentConfig

	// Server
	HTTPServer HTTPServerConfig
	Logger     LoggerConfig

	// Backend
	Supabase SupabaseConfig
	Realtime RealtimeConfig
	Session  SessionConfig
}

type EnvironmentConfig struct {
	Name string
}

type HTTPServerConfig struct {
	Port            int
	Mode            string
	RateLimitPerMin int
	ShutdownTimeout time.Duration
}

type LoggerConfig struct {
	Level        string
	Mode         string
	Encoding     string
	ColorEnabled bool
	OutputPaths  []string
	MaxSizeMB    int
	MaxBackups   int
	MaxAgeDays   int
}

// SupabaseConfig locates the hosted project and its resources.
type SupabaseConfig struct {
	URL     string // Project URL, e.g. https://abc.supabase.co
	AnonKey string
	Schema  string
	Table   string
	Bucket  string
	Channel string
}

type RealtimeConfig struct {
	HeartbeatInterval time.Duration
	JoinTimeout       time.Duration
}

// SessionConfig is the externally acquired session. An empty AccessToken
// falls back to the anon key.
type SessionConfig struct {
	AccessToken string
	UserID      string
	Email       string
}

// Load loads configuration using Viper.
// Config file name: config.yaml, searched in ./config, ., /etc/app/
func Load() (*Config, error) {
	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath("./config")
	v.AddConfigPath(".")
	v.AddConfigPath("/etc/app/")

	return load(v)
}

// LoadFile loads configuration from an explicit file path.
func LoadFile(path string) (*Config, error) {
	v := viper.New()
	v.SetConfigFile(path)
	return load(v)
}

func load(v *viper.Viper) (*Config, error) {
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	cfg := &Config{}

	// Environment & Server
	cfg.Environment.Name = v.GetString("environment.name")
	cfg.HTTPServer.Port = v.GetInt("http_server.port")
	cfg.HTTPServer.Mode = v.GetString("http_server.mode")
	cfg.HTTPServer.RateLimitPerMin = v.GetInt("http_server.rate_limit_per_min")
	cfg.HTTPServer.ShutdownTimeout = v.GetDuration("http_server.shutdown_timeout")
	cfg.Logger.Level = v.GetString("logger.level")
	cfg.Logger.Mode = v.GetString("logger.mode")
	cfg.Logger.Encoding = v.GetString("logger.encoding")
	cfg.Logger.ColorEnabled = v.GetBool("logger.color_enabled")
	cfg.Logger.OutputPaths = splitList(v.GetStringSlice("logger.output_paths"))
	cfg.Logger.MaxSizeMB = v.GetInt("logger.max_size_mb")
	cfg.Logger.MaxBackups = v.GetInt("logger.max_backups")
	cfg.Logger.MaxAgeDays = v.GetInt("logger.max_age_days")

	// Backend
	cfg.Supabase.URL = strings.TrimRight(v.GetString("supabase.url"), "/")
	cfg.Supabase.AnonKey = v.GetString("supabase.anon_key")
	cfg.Supabase.Schema = v.GetString("supabase.schema")
	cfg.Supabase.Table = v.GetString("supabase.table")
	cfg.Supabase.Bucket = v.GetString("supabase.bucket")
	cfg.Supabase.Channel = v.GetString("supabase.channel")

	cfg.Realtime.HeartbeatInterval = v.GetDuration("realtime.heartbeat_interval")
	cfg.Realtime.JoinTimeout = v.GetDuration("realtime.join_timeout")

	cfg.Session.AccessToken = v.GetString("session.access_token")
	cfg.Session.UserID = v.GetString("session.user_id")
	cfg.Session.Email = v.GetString("session.email")

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("environment.name", "development")
	v.SetDefault("http_server.port", 8080)
	v.SetDefault("http_server.mode", "debug")
	v.SetDefault("http_server.rate_limit_per_min", 120)
	v.SetDefault("http_server.shutdown_timeout", "10s")
	v.SetDefault("logger.level", "debug")
	v.SetDefault("logger.mode", "debug")
	v.SetDefault("logger.encoding", "console")
	v.SetDefault("logger.color_enabled", true)
	v.SetDefault("logger.output_paths", []string{"stdout"})
	v.SetDefault("logger.max_size_mb", 10)
	v.SetDefault("logger.max_backups", 3)
	v.SetDefault("logger.max_age_days", 28)

	v.SetDefault("supabase.schema", "public")
	v.SetDefault("supabase.table", "tasks")
	v.SetDefault("supabase.bucket", "tasks-images")
	v.SetDefault("supabase.channel", "tasks-channel")

	v.SetDefault("realtime.heartbeat_interval", "25s")
	v.SetDefault("realtime.join_timeout", "10s")

	// Registered so AutomaticEnv can resolve them without a config file.
	v.SetDefault("supabase.url", "")
	v.SetDefault("supabase.anon_key", "")
	v.SetDefault("session.access_token", "")
	v.SetDefault("session.user_id", "")
	v.SetDefault("session.email", "")
}

func (c *Config) validate() error {
	if c.Supabase.URL == "" {
		return errors.New("supabase.url is required")
	}
	u, err := url.Parse(c.Supabase.URL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("supabase.url must be an http(s) URL, got %q", c.Supabase.URL)
	}
	if c.Supabase.AnonKey == "" {
		return errors.New("supabase.anon_key is required")
	}
	if c.Supabase.Table == "" || c.Supabase.Bucket == "" || c.Supabase.Channel == "" {
		return errors.New("supabase.table, supabase.bucket and supabase.channel must not be empty")
	}
	if c.Realtime.HeartbeatInterval <= 0 || c.Realtime.JoinTimeout <= 0 {
		return errors.New("realtime.heartbeat_interval and realtime.join_timeout must be positive")
	}
	return nil
}

// BearerToken is the token sent on REST, storage and realtime requests.
func (c SessionConfig) BearerToken(anonKey string) string {
	if c.AccessToken != "" {
		return c.AccessToken
	}
	return anonKey
}

// splitList accepts both YAML lists and comma separated env values.
func splitList(in []string) []string {
	var out []string
	for _, item := range in {
		for _, part := range strings.Split(item, ",") {
			if part = strings.TrimSpace(part); part != "" {
				out = append(out, part)
			}
		}
	}
	return out
}
