package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	App      AppConfig
	Upstream UpstreamConfig
	JWT      JWTConfig
	Poll     PollConfig
	Camera   CameraConfig
	Session  SessionConfig
}

// AppConfig holds kiosk application configuration
type AppConfig struct {
	Port          int
	Env           string
	LogLevel      string
	DisplayOrigin string
}

// UpstreamConfig holds the TechStaffHub API base URLs, one per feature
// area, mirroring the per-area clients of the web front end.
type UpstreamConfig struct {
	TimelogBaseURL      string
	EditRequestBaseURL  string
	NotificationBaseURL string
}

// JWTConfig holds the shared secret used to verify operator bearer
// tokens on the kiosk's local surface.
type JWTConfig struct {
	Secret string
}

// PollConfig holds background polling configuration
type PollConfig struct {
	StatusInterval time.Duration
}

// CameraConfig holds the capture device configuration. An empty
// snapshot URL means the kiosk has no camera.
type CameraConfig struct {
	SnapshotURL string
}

// SessionConfig holds the session store configuration
type SessionConfig struct {
	FilePath string
}

func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, reading configuration from environment")
	}

	config := &Config{}

	// Application configuration
	appPort, err := strconv.Atoi(getEnv("APP_PORT", "8080"))
	if err != nil {
		return nil, fmt.Errorf("invalid APP_PORT: %w", err)
	}

	config.App = AppConfig{
		Port:          appPort,
		Env:           getEnv("APP_ENV", "development"),
		LogLevel:      getEnv("LOG_LEVEL", "info"),
		DisplayOrigin: getEnv("DISPLAY_ORIGIN", "http://localhost:3000"),
	}

	// Upstream configuration
	config.Upstream = UpstreamConfig{
		TimelogBaseURL:      getEnv("TIMELOG_API_BASE_URL", ""),
		EditRequestBaseURL:  getEnv("EDIT_REQUEST_API_BASE_URL", ""),
		NotificationBaseURL: getEnv("NOTIFICATION_API_BASE_URL", ""),
	}

	// JWT configuration
	config.JWT = JWTConfig{
		Secret: getEnv("JWT_SECRET_KEY", ""),
	}

	// Poll configuration
	pollInterval, err := time.ParseDuration(getEnv("STATUS_POLL_INTERVAL", "15s"))
	if err != nil {
		return nil, fmt.Errorf("invalid STATUS_POLL_INTERVAL: %w", err)
	}
	config.Poll = PollConfig{
		StatusInterval: pollInterval,
	}

	// Camera configuration
	config.Camera = CameraConfig{
		SnapshotURL: getEnv("CAMERA_SNAPSHOT_URL", ""),
	}

	// Session configuration
	config.Session = SessionConfig{
		FilePath: getEnv("SESSION_FILE", ".kiosk-session.json"),
	}

	// Validate required fields
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return config, nil
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if c.Upstream.TimelogBaseURL == "" {
		return fmt.Errorf("TIMELOG_API_BASE_URL is required")
	}
	if c.Upstream.EditRequestBaseURL == "" {
		return fmt.Errorf("EDIT_REQUEST_API_BASE_URL is required")
	}
	if c.Upstream.NotificationBaseURL == "" {
		return fmt.Errorf("NOTIFICATION_API_BASE_URL is required")
	}
	if c.JWT.Secret == "" {
		return fmt.Errorf("JWT_SECRET_KEY is required")
	}
	if c.Poll.StatusInterval <= 0 {
		return fmt.Errorf("STATUS_POLL_INTERVAL must be positive")
	}
	return nil
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
