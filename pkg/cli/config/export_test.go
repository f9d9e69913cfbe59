package config

import "time"

// NewAppConfigForTest creates an AppConfig for testing purposes
func NewAppConfigForTest(path string) *AppConfig {
	return &AppConfig{path: path}
}

// NewAuthForTest creates an Auth config for testing purposes
func NewAuthForTest(secret string, tokenTTL time.Duration, adminEmails, noAuthEmail string) *Auth {
	return &Auth{
		secret:      secret,
		tokenTTL:    tokenTTL,
		adminEmails: adminEmails,
		noAuthEmail: noAuthEmail,
	}
}

// NewRepositoryForTest creates a Repository config for testing purposes
func NewRepositoryForTest(backend, projectID string) *Repository {
	return &Repository{
		backend:   backend,
		projectID: projectID,
	}
}

// NewLoggerForTest creates a Logger config for testing purposes
func NewLoggerForTest(level, format, output string) *Logger {
	return &Logger{
		level:  level,
		format: format,
		output: output,
	}
}
