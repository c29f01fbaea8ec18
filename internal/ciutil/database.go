package ciutil

import (
	"fmt"
	"log/slog"
	"net/url"
	"os"
)

const (
	// StandardCIUser is the username used for test databases in CI.
	StandardCIUser = "postgres"

	// StandardCIPassword is the password used for test databases in CI.
	StandardCIPassword = "postgres"
)

// GetTestDatabaseURL returns a database URL for testing. It checks
// DATABASE_URL, then COURSEFORGE_TEST_DB_URL, then
// COURSEFORGE_DATABASE_URL. In CI environments the URL is standardized
// to the postgres:postgres credentials the runners provision. Returns
// an empty string when no variable is set.
func GetTestDatabaseURL(logger *slog.Logger) string {
	envVars := []string{EnvDatabaseURL, EnvCourseForgeTestDBURL, EnvCourseForgeDatabaseURL}

	var dbURL string
	for _, envVar := range envVars {
		if val := os.Getenv(envVar); val != "" {
			dbURL = val
			break
		}
	}

	if dbURL == "" {
		return ""
	}

	if IsCI() {
		standardized, err := standardizeDatabaseURL(dbURL)
		if err != nil {
			if logger != nil {
				logger.Error("Failed to standardize database URL",
					"error", err,
					"original_url", MaskSensitiveValue(dbURL))
			}
			return dbURL
		}
		return standardized
	}

	return dbURL
}

// standardizeDatabaseURL rewrites the URL's credentials to the standard
// CI postgres user. Non-postgres URLs are returned unchanged.
func standardizeDatabaseURL(dbURL string) (string, error) {
	parsed, err := url.Parse(dbURL)
	if err != nil {
		return "", fmt.Errorf("failed to parse database URL: %w", err)
	}

	if parsed.Scheme != "postgres" && parsed.Scheme != "postgresql" {
		return dbURL, nil
	}

	username := ""
	password := ""
	if parsed.User != nil {
		username = parsed.User.Username()
		password, _ = parsed.User.Password()
	}

	if username == StandardCIUser && password == StandardCIPassword {
		return dbURL, nil
	}

	standardized := *parsed
	standardized.User = url.UserPassword(StandardCIUser, StandardCIPassword)
	return standardized.String(), nil
}
