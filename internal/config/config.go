package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds runtime configuration values for the API service.
type Config struct {
	AppName                string
	AppEnv                 string
	AppPort                string
	CORSOrigins            string
	DatabaseURL            string
	RedisURL               string
	NATSAddr               string
	JWTSecret              string
	AdminAccessCode        string
	UpgradeDelay           time.Duration
	MentorTypingDelay      time.Duration
	DashboardCacheTTL      time.Duration
	CloudinaryCloudName    string
	CloudinaryAPIKey       string
	CloudinaryAPISecret    string
	CloudinaryUploadFolder string
	UploadMaxMB            int
	AIProvider             string
	OpenAIAPIKey           string
}

// HTTPAddress returns the address the HTTP server should listen on.
func (c Config) HTTPAddress() string {
	if strings.HasPrefix(c.AppPort, ":") {
		return c.AppPort
	}

	return fmt.Sprintf(":%s", c.AppPort)
}

// Load reads configuration values from environment variables and optional .env file.
func Load() (Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	v.SetEnvPrefix("MINDSTEP")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	v.SetDefault("app.name", "MindStep API")
	v.SetDefault("app.env", "development")
	v.SetDefault("app.port", "8080")
	v.SetDefault("cors.origins", "*")
	v.SetDefault("admin.access_code", "admin123")
	v.SetDefault("upgrade.delay", "900ms")
	v.SetDefault("mentor.typing_delay", "1500ms")
	v.SetDefault("dashboard.cache_ttl", "5m")
	v.SetDefault("cloudinary.folder", "mindstep/marksheets")
	v.SetDefault("upload.max_mb", 10)
	v.SetDefault("ai.provider", "canned")

	upgradeDelay, err := parseDuration(v.GetString("upgrade.delay"), "900ms")
	if err != nil {
		return Config{}, fmt.Errorf("invalid upgrade delay: %w", err)
	}

	typingDelay, err := parseDuration(v.GetString("mentor.typing_delay"), "1500ms")
	if err != nil {
		return Config{}, fmt.Errorf("invalid mentor typing delay: %w", err)
	}

	cacheTTL, err := parseDuration(v.GetString("dashboard.cache_ttl"), "5m")
	if err != nil {
		return Config{}, fmt.Errorf("invalid dashboard cache ttl: %w", err)
	}

	cfg := Config{
		AppName:                v.GetString("app.name"),
		AppEnv:                 v.GetString("app.env"),
		AppPort:                v.GetString("app.port"),
		CORSOrigins:            v.GetString("cors.origins"),
		DatabaseURL:            v.GetString("database.url"),
		RedisURL:               v.GetString("redis.url"),
		NATSAddr:               v.GetString("nats.addr"),
		JWTSecret:              v.GetString("jwt.secret"),
		AdminAccessCode:        v.GetString("admin.access_code"),
		UpgradeDelay:           upgradeDelay,
		MentorTypingDelay:      typingDelay,
		DashboardCacheTTL:      cacheTTL,
		CloudinaryCloudName:    v.GetString("cloudinary.cloud_name"),
		CloudinaryAPIKey:       v.GetString("cloudinary.api_key"),
		CloudinaryAPISecret:    v.GetString("cloudinary.api_secret"),
		CloudinaryUploadFolder: v.GetString("cloudinary.folder"),
		UploadMaxMB:            v.GetInt("upload.max_mb"),
		AIProvider:             strings.ToLower(v.GetString("ai.provider")),
		OpenAIAPIKey:           v.GetString("openai_api_key"),
	}

	if cfg.JWTSecret == "" {
		return Config{}, fmt.Errorf("jwt secret must be provided")
	}

	if cfg.UploadMaxMB <= 0 {
		cfg.UploadMaxMB = 10
	}

	return cfg, nil
}

func parseDuration(value, fallback string) (time.Duration, error) {
	if value == "" {
		value = fallback
	}

	return time.ParseDuration(value)
}
