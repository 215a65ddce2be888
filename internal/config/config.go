// Package config loads service configuration from environment variables.
package config

import (
	"fmt"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"
)

type Config struct {
	// HTTP server
	Port string

	// Store backend selection: "mongo" or "memory"
	DataBackend string

	// Mongo (required when DataBackend is "mongo")
	MongoURI      string
	MongoDatabase string

	// Per-repository fetch timeout inside report builders
	FetchTimeout time.Duration

	// Report defaults
	DefaultLimit     int // recent transactions / activity list length
	AttendanceWindow int // attendance registers considered by the weekday report
}

func Load() *Config {
	return &Config{
		Port:        getEnv("PORT", "8080"),
		DataBackend: getEnv("DATA_BACKEND", "memory"),

		MongoURI:      getEnv("MONGO_URI", "mongodb://localhost:27017"),
		MongoDatabase: getEnv("MONGO_DATABASE", "ecole"),

		FetchTimeout: getEnvDuration("FETCH_TIMEOUT", 10*time.Second),

		DefaultLimit:     getEnvInt("DEFAULT_LIMIT", 10),
		AttendanceWindow: getEnvInt("ATTENDANCE_WINDOW", 50),
	}
}

// Validate returns an error describing every invalid field at once.
func (c *Config) Validate() error {
	var errs []string

	if port, err := strconv.Atoi(c.Port); err != nil {
		errs = append(errs, fmt.Sprintf("invalid port '%s': must be a number", c.Port))
	} else if port < 1 || port > 65535 {
		errs = append(errs, fmt.Sprintf("invalid port %d: must be between 1 and 65535", port))
	}

	switch c.DataBackend {
	case "mongo":
		if c.MongoURI == "" {
			errs = append(errs, "Mongo URI cannot be empty when using mongo backend")
		} else if u, err := url.Parse(c.MongoURI); err != nil {
			errs = append(errs, fmt.Sprintf("invalid Mongo URI '%s': %v", c.MongoURI, err))
		} else if u.Scheme != "mongodb" && u.Scheme != "mongodb+srv" {
			errs = append(errs, fmt.Sprintf("invalid Mongo URI scheme '%s': must be 'mongodb' or 'mongodb+srv'", u.Scheme))
		}
		if c.MongoDatabase == "" {
			errs = append(errs, "Mongo database name cannot be empty when using mongo backend")
		}
	case "memory":
		// nothing to check
	default:
		errs = append(errs, fmt.Sprintf("invalid data backend '%s': must be one of [memory mongo]", c.DataBackend))
	}

	if c.FetchTimeout < time.Second {
		errs = append(errs, fmt.Sprintf("invalid fetch timeout %v: must be at least 1 second", c.FetchTimeout))
	} else if c.FetchTimeout > time.Minute {
		errs = append(errs, fmt.Sprintf("invalid fetch timeout %v: must be at most 1 minute", c.FetchTimeout))
	}

	if c.DefaultLimit < 1 || c.DefaultLimit > 100 {
		errs = append(errs, fmt.Sprintf("invalid default limit %d: must be between 1 and 100", c.DefaultLimit))
	}

	if c.AttendanceWindow < 1 || c.AttendanceWindow > 500 {
		errs = append(errs, fmt.Sprintf("invalid attendance window %d: must be between 1 and 500", c.AttendanceWindow))
	}

	if len(errs) > 0 {
		return fmt.Errorf("configuration validation failed:\n- %s", strings.Join(errs, "\n- "))
	}
	return nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if i, err := strconv.Atoi(value); err == nil {
			return i
		}
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}
