package domain

import (
	"fmt"
	"net/url"
	"path"
	"strings"
)

// RepositoryIdentity names a repository on the remote forge.
type RepositoryIdentity struct {
	Owner string
	Name  string
}

// String returns the owner/name slug.
func (r RepositoryIdentity) String() string {
	return r.Owner + "/" + r.Name
}

// ParseRepositoryIdentity derives the owner and name from a git remote URL.
// Supported forms are https://host/owner/name(.git), ssh://git@host/owner/name,
// git@host:owner/name(.git) and a plain filesystem path ending in owner/name.
func ParseRepositoryIdentity(remoteURL string) (RepositoryIdentity, error) {
	raw := strings.TrimSpace(remoteURL)
	if raw == "" {
		return RepositoryIdentity{}, fmt.Errorf("remote url cannot be empty")
	}
	repoPath := raw
	switch {
	case strings.Contains(raw, "://"):
		u, err := url.Parse(raw)
		if err != nil {
			return RepositoryIdentity{}, fmt.Errorf("invalid remote url %q: %w", raw, err)
		}
		repoPath = u.Path
	case isSCPLike(raw):
		repoPath = raw[strings.Index(raw, ":")+1:]
	}
	repoPath = strings.TrimSuffix(strings.TrimRight(filepathToSlash(repoPath), "/"), ".git")
	name := path.Base(repoPath)
	owner := path.Base(path.Dir(repoPath))
	if name == "" || name == "." || name == "/" || owner == "" || owner == "." || owner == "/" {
		return RepositoryIdentity{}, fmt.Errorf("could not derive owner and name from remote url %q", raw)
	}
	return RepositoryIdentity{Owner: owner, Name: name}, nil
}

// isSCPLike reports whether raw uses the user@host:path shorthand.
func isSCPLike(raw string) bool {
	colon := strings.Index(raw, ":")
	if colon <= 0 {
		return false
	}
	slash := strings.Index(raw, "/")
	// a Windows drive letter such as C:\ is not a host
	if colon == 1 {
		return false
	}
	return slash == -1 || colon < slash
}

func filepathToSlash(p string) string {
	return strings.ReplaceAll(p, "\\", "/")
}
