package config

import (
	"os"
	"strings"
)

// Environment decides where secrets are read from and which settings are
// mandatory.
type Environment string

const (
	Development Environment = "development"
	Test        Environment = "test"
	CI          Environment = "ci"
	Production  Environment = "production"
)

var environmentAliases = map[string]Environment{
	"development": Development,
	"dev":         Development,
	"test":        Test,
	"production":  Production,
	"prod":        Production,
}

// GetEnvironment reads ENV. CI=true wins over ENV so pipelines never pick up
// production secret handling; unknown or empty values mean development.
func GetEnvironment() Environment {
	if os.Getenv("CI") == "true" {
		return CI
	}
	if env, ok := environmentAliases[strings.ToLower(strings.TrimSpace(os.Getenv("ENV")))]; ok {
		return env
	}
	return Development
}

func IsDevelopment() bool {
	return GetEnvironment() == Development
}

func IsProduction() bool {
	return GetEnvironment() == Production
}
