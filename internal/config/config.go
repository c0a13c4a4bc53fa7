package config

import (
	"errors"
	"fmt"
	"net/url"
	"regexp"
	"strings"

	"github.com/spf13/afero"
	"github.com/spf13/viper"
)

// CredentialKey is the git configuration key holding the GitHub token.
const CredentialKey = "integrate.github-token"

// DefaultGraphQLURL is the public GitHub GraphQL endpoint.
const DefaultGraphQLURL = "https://api.github.com/graphql"

type Config struct {
	Remote     string `mapstructure:"remote"`
	BaseBranch string `mapstructure:"base_branch"`
	GraphQLURL string `mapstructure:"graphql_url"`
	LogLevel   string `mapstructure:"log_level"`
	GitBinary  string `mapstructure:"git_binary"`
}

// DefaultConfig returns a Config with default values
func DefaultConfig() *Config {
	return &Config{
		Remote:     "origin",
		GraphQLURL: DefaultGraphQLURL,
		LogLevel:   "warn",
		GitBinary:  "git",
	}
}

var (
	remoteNameRegex = regexp.MustCompile(`^[a-zA-Z0-9._-]+$`)
	logLevels       = []string{"debug", "info", "warn", "error"}
)

// Validate validates the configuration
func (c *Config) Validate() error {
	if c.Remote == "" {
		return fmt.Errorf("remote cannot be empty")
	}
	if !remoteNameRegex.MatchString(c.Remote) {
		return fmt.Errorf("invalid remote name: %s", c.Remote)
	}
	if c.BaseBranch != "" && strings.Contains(c.BaseBranch, "..") {
		return fmt.Errorf("base_branch contains invalid path traversal")
	}
	u, err := url.Parse(c.GraphQLURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("invalid graphql_url: %q", c.GraphQLURL)
	}
	if u.Scheme != "https" && u.Scheme != "http" {
		return fmt.Errorf("graphql_url must use http or https: %q", c.GraphQLURL)
	}
	if !isLogLevel(c.LogLevel) {
		return fmt.Errorf("invalid log_level %q (expected one of %s)", c.LogLevel, strings.Join(logLevels, ", "))
	}
	if strings.TrimSpace(c.GitBinary) == "" {
		return fmt.Errorf("git_binary cannot be empty")
	}
	return nil
}

// BaseRef returns the remote-tracking ref the destination branch is reset to,
// given the detected default branch.
func (c *Config) BaseRef(detected string) string {
	branch := detected
	if c.BaseBranch != "" {
		branch = c.BaseBranch
	}
	return c.Remote + "/" + branch
}

// ValidateToken validates that a credential looks like a usable bearer token.
func ValidateToken(token string) error {
	token = strings.TrimSpace(token)
	if token == "" {
		return fmt.Errorf("token cannot be empty")
	}
	if strings.ContainsAny(token, " \t\r\n") {
		return fmt.Errorf("token must not contain whitespace")
	}
	return nil
}

// LoadConfig reads .integrate.yaml from the working directory of fs and
// INTEGRATE_* environment variables on top of the defaults.
func LoadConfig(fs afero.Fs) (*Config, error) {
	v := viper.New()
	v.SetFs(fs)
	v.SetConfigName(".integrate")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.SetEnvPrefix("INTEGRATE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	defaults := DefaultConfig()
	v.SetDefault("remote", defaults.Remote)
	v.SetDefault("base_branch", defaults.BaseBranch)
	v.SetDefault("graphql_url", defaults.GraphQLURL)
	v.SetDefault("log_level", defaults.LogLevel)
	v.SetDefault("git_binary", defaults.GitBinary)
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}
	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}
	config.LogLevel = strings.ToLower(strings.TrimSpace(config.LogLevel))
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}
	return &config, nil
}

func isLogLevel(level string) bool {
	for _, l := range logLevels {
		if l == level {
			return true
		}
	}
	return false
}
