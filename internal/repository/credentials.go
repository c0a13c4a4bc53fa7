package repository

import (
	"context"
	"fmt"
	"strings"

	"github.com/compozy/integrate/internal/domain"
	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/config"
)

// CredentialProvider looks up secrets by key.
type CredentialProvider interface {
	FetchCredential(ctx context.Context, key string) (string, error)
}

// gitConfigCredentials reads credentials from the merged system, global and
// local git configuration.
type gitConfigCredentials struct {
	repo *git.Repository
}

// NewGitConfigCredentials creates a CredentialProvider backed by git configuration.
func NewGitConfigCredentials(repo *git.Repository) CredentialProvider {
	return &gitConfigCredentials{repo: repo}
}

// FetchCredential returns the value for a dotted key such as integrate.github-token.
func (c *gitConfigCredentials) FetchCredential(_ context.Context, key string) (string, error) {
	section, subsection, option, err := splitConfigKey(key)
	if err != nil {
		return "", err
	}
	cfg, err := c.repo.ConfigScoped(config.SystemScope)
	if err != nil {
		return "", fmt.Errorf("failed to read git configuration: %w", err)
	}
	s := cfg.Raw.Section(section)
	var value string
	if subsection != "" {
		value = s.Subsection(subsection).Option(option)
	} else {
		value = s.Option(option)
	}
	value = strings.TrimSpace(value)
	if value == "" {
		return "", fmt.Errorf("%w: %s", domain.ErrCredentialNotFound, key)
	}
	return value, nil
}

func splitConfigKey(key string) (string, string, string, error) {
	parts := strings.Split(key, ".")
	if len(parts) < 2 {
		return "", "", "", fmt.Errorf("invalid git configuration key %q", key)
	}
	for _, p := range parts {
		if p == "" {
			return "", "", "", fmt.Errorf("invalid git configuration key %q", key)
		}
	}
	section := parts[0]
	option := parts[len(parts)-1]
	subsection := strings.Join(parts[1:len(parts)-1], ".")
	return section, subsection, option, nil
}
