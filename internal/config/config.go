package config

import (
	"os"
	"strconv"

	"github.com/wolfman30/prospecting-manager/internal/invite"
	"github.com/wolfman30/prospecting-manager/internal/mailmerge"
)

// Config holds application configuration
type Config struct {
	Port     string
	Env      string
	LogLevel string

	// Calendar defaults
	Timezone               string
	MeetingDurationMinutes int
	OrganizerName          string
	OrganizerEmail         string
	DefaultLocation        string
	InviteDescription      string

	// Email templates
	EmailSubjectTemplate string
	EmailBodyTemplate    string
}

// Load reads configuration from environment variables
func Load() *Config {
	return &Config{
		Port:     getEnv("PORT", "8080"),
		Env:      getEnv("ENV", "development"),
		LogLevel: getEnv("LOG_LEVEL", "info"),

		Timezone:               getEnv("TIMEZONE", "America/New_York"),
		MeetingDurationMinutes: getEnvAsInt("MEETING_DURATION_MINUTES", 30),
		OrganizerName:          getEnv("ORGANIZER_NAME", "Your Name"),
		OrganizerEmail:         getEnv("ORGANIZER_EMAIL", "you@example.com"),
		DefaultLocation:        getEnv("DEFAULT_LOCATION", "Phone"),
		InviteDescription:      getEnv("INVITE_DESCRIPTION_TEMPLATE", invite.DefaultDescriptionTemplate),

		EmailSubjectTemplate: getEnv("EMAIL_SUBJECT_TEMPLATE", mailmerge.DefaultSubjectTemplate),
		EmailBodyTemplate:    getEnv("EMAIL_BODY_TEMPLATE", mailmerge.DefaultBodyTemplate),
	}
}

// getEnv retrieves an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvAsInt retrieves an environment variable as an integer or returns a default value
func getEnvAsInt(key string, defaultValue int) int {
	valueStr := getEnv(key, "")
	if value, err := strconv.Atoi(valueStr); err == nil {
		return value
	}
	return defaultValue
}
