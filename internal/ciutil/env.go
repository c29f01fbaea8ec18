package ciutil

import (
	"log/slog"
	"os"
	"strings"
)

// Environment variable names used across the codebase.
const (
	EnvCI            = "CI"
	EnvGitHubActions = "GITHUB_ACTIONS"
	EnvGitLabCI      = "GITLAB_CI"
	EnvJenkinsURL    = "JENKINS_URL"
	EnvCircleCI      = "CIRCLECI"

	EnvDatabaseURL            = "DATABASE_URL"
	EnvCourseForgeTestDBURL   = "COURSEFORGE_TEST_DB_URL" // Preferred standardized name
	EnvCourseForgeDatabaseURL = "COURSEFORGE_DATABASE_URL"
)

// IsCI returns true if the current environment is a CI environment.
// It checks for common CI environment variables across providers.
func IsCI() bool {
	return os.Getenv(EnvCI) != "" ||
		os.Getenv(EnvGitHubActions) != "" ||
		os.Getenv(EnvGitLabCI) != "" ||
		os.Getenv(EnvJenkinsURL) != "" ||
		os.Getenv(EnvCircleCI) != ""
}

// GetEnvWithFallbacks returns the value of the first non-empty environment
// variable from the provided list, or defaultValue if none are set. A
// warning is logged when a non-primary variable is used so callers can
// migrate to the standardized name.
func GetEnvWithFallbacks(envVars []string, defaultValue string, logger *slog.Logger) string {
	for i, envVar := range envVars {
		if val := os.Getenv(envVar); val != "" {
			if i > 0 && logger != nil {
				logger.Warn("Using legacy environment variable",
					"used_var", envVar,
					"preferred_var", envVars[0],
					"value", MaskSensitiveValue(val),
				)
			}
			return val
		}
	}
	return defaultValue
}

// MaskSensitiveValue hides credentials embedded in a value so it can be
// logged safely. Connection URLs keep their scheme and host; anything
// else is reduced to a short prefix.
func MaskSensitiveValue(value string) string {
	if value == "" {
		return ""
	}

	if idx := strings.Index(value, "://"); idx >= 0 {
		rest := value[idx+3:]
		if at := strings.Index(rest, "@"); at >= 0 {
			return value[:idx+3] + "****@" + rest[at+1:]
		}
		return value
	}

	if len(value) <= 4 {
		return "****"
	}
	return value[:4] + "****"
}
