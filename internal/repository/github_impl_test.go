package repository

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/compozy/integrate/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type graphQLRequest struct {
	Query     string         `json:"query"`
	Variables map[string]any `json:"variables"`
}

func newGraphQLServer(t *testing.T, status int, body string, inspect func(*http.Request, graphQLRequest)) *httptest.Server {
	t.Helper()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req graphQLRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		if inspect != nil {
			inspect(r, req)
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(server.Close)
	return server
}

var testIdentity = domain.RepositoryIdentity{Owner: "octo", Name: "widget"}

func TestGithubRepository_LabelBranches(t *testing.T) {
	t.Run("Should send one authenticated query and keep response order", func(t *testing.T) {
		calls := 0
		server := newGraphQLServer(t, http.StatusOK, `{"data":{"repository":{"pullRequests":{"nodes":[
			{"headRefName":"feature-b"},
			{"headRefName":"feature-a"},
			{"headRefName":"feature-b"}
		]}}}}`, func(r *http.Request, req graphQLRequest) {
			calls++
			assert.Equal(t, "Bearer secret-token", r.Header.Get("Authorization"))
			assert.Contains(t, req.Query, "pullRequests(first: $first, states: $states, labels: $labels)")
			assert.Contains(t, req.Query, "headRefName")
			assert.Equal(t, "octo", req.Variables["owner"])
			assert.Equal(t, "widget", req.Variables["name"])
			assert.Equal(t, []any{"ready"}, req.Variables["labels"])
			assert.Equal(t, []any{"OPEN"}, req.Variables["states"])
		})
		repo := NewGithubRepository(server.URL, server.Client())
		branches, err := repo.LabelBranches(context.Background(), testIdentity, "ready", "secret-token")
		require.NoError(t, err)
		assert.Equal(t, []string{"feature-b", "feature-a", "feature-b"}, branches)
		assert.Equal(t, 1, calls)
	})
	t.Run("Should skip pull requests without a head branch name", func(t *testing.T) {
		server := newGraphQLServer(t, http.StatusOK, `{"data":{"repository":{"pullRequests":{"nodes":[
			null,
			{"headRefName":null},
			{"headRefName":""},
			{"headRefName":"feature-a"}
		]}}}}`, nil)
		repo := NewGithubRepository(server.URL, server.Client())
		branches, err := repo.LabelBranches(context.Background(), testIdentity, "ready", "tok")
		require.NoError(t, err)
		assert.Equal(t, []string{"feature-a"}, branches)
	})
	t.Run("Should return an empty sequence when no pull requests match", func(t *testing.T) {
		server := newGraphQLServer(t, http.StatusOK, `{"data":{"repository":{"pullRequests":{"nodes":[]}}}}`, nil)
		repo := NewGithubRepository(server.URL, server.Client())
		branches, err := repo.LabelBranches(context.Background(), testIdentity, "ready", "tok")
		require.NoError(t, err)
		assert.NotNil(t, branches)
		assert.Empty(t, branches)
	})
	t.Run("Should treat null results as an empty sequence", func(t *testing.T) {
		for _, body := range []string{
			`{"data":{"repository":null}}`,
			`{"data":{"repository":{"pullRequests":null}}}`,
			`{"data":{"repository":{"pullRequests":{"nodes":null}}}}`,
		} {
			server := newGraphQLServer(t, http.StatusOK, body, nil)
			repo := NewGithubRepository(server.URL, server.Client())
			branches, err := repo.LabelBranches(context.Background(), testIdentity, "ready", "tok")
			require.NoError(t, err, body)
			assert.Empty(t, branches, body)
		}
	})
	t.Run("Should treat an unknown repository as an empty sequence", func(t *testing.T) {
		server := newGraphQLServer(t, http.StatusOK, `{"data":{"repository":null},"errors":[{
			"type":"NOT_FOUND",
			"path":["repository"],
			"message":"Could not resolve to a Repository with the name 'octo/widget'."
		}]}`, nil)
		repo := NewGithubRepository(server.URL, server.Client())
		branches, err := repo.LabelBranches(context.Background(), testIdentity, "ready", "tok")
		require.NoError(t, err)
		assert.Empty(t, branches)
	})
	t.Run("Should return a transport error for other GraphQL errors", func(t *testing.T) {
		server := newGraphQLServer(t, http.StatusOK, `{"data":null,"errors":[{"message":"Something went wrong"}]}`, nil)
		repo := NewGithubRepository(server.URL, server.Client())
		_, err := repo.LabelBranches(context.Background(), testIdentity, "ready", "tok")
		var transportErr *domain.TransportError
		require.ErrorAs(t, err, &transportErr)
		assert.ErrorContains(t, err, "Something went wrong")
	})
	t.Run("Should return a transport error for a non-200 status", func(t *testing.T) {
		server := newGraphQLServer(t, http.StatusUnauthorized, `{"message":"Bad credentials"}`, nil)
		repo := NewGithubRepository(server.URL, server.Client())
		_, err := repo.LabelBranches(context.Background(), testIdentity, "ready", "tok")
		var transportErr *domain.TransportError
		assert.ErrorAs(t, err, &transportErr)
	})
	t.Run("Should return a transport error for an undecodable payload", func(t *testing.T) {
		server := newGraphQLServer(t, http.StatusOK, `<html>not json</html>`, nil)
		repo := NewGithubRepository(server.URL, server.Client())
		_, err := repo.LabelBranches(context.Background(), testIdentity, "ready", "tok")
		var transportErr *domain.TransportError
		assert.ErrorAs(t, err, &transportErr)
	})
	t.Run("Should return a transport error when the server is unreachable", func(t *testing.T) {
		server := httptest.NewServer(http.NotFoundHandler())
		url := server.URL
		server.Close()
		repo := NewGithubRepository(url, nil)
		_, err := repo.LabelBranches(context.Background(), testIdentity, "ready", "tok")
		var transportErr *domain.TransportError
		assert.ErrorAs(t, err, &transportErr)
	})
}
