package repository

import (
	"context"
	"net/http"
	"strings"

	"github.com/compozy/integrate/internal/config"
	"github.com/compozy/integrate/internal/domain"
	"github.com/shurcooL/githubv4"
	"golang.org/x/oauth2"
)

// PullRequestPageSize bounds the pull requests returned by the label query.
const PullRequestPageSize = 100

const repositoryNotFoundMessage = "Could not resolve to a Repository"

// labelBranchesQuery mirrors:
//
//	repository(owner: $owner, name: $name) {
//	  pullRequests(first: $first, states: $states, labels: $labels) {
//	    nodes { headRefName }
//	  }
//	}
type labelBranchesQuery struct {
	Repository *struct {
		PullRequests *struct {
			Nodes []*struct {
				HeadRefName *githubv4.String
			}
		} `graphql:"pullRequests(first: $first, states: $states, labels: $labels)"`
	} `graphql:"repository(owner: $owner, name: $name)"`
}

// githubRepository is the implementation of the GithubRepository interface.
type githubRepository struct {
	endpoint   string
	httpClient *http.Client
}

// NewGithubRepository creates a GithubRepository talking to endpoint. An empty
// endpoint selects the public GitHub API. httpClient may be nil.
func NewGithubRepository(endpoint string, httpClient *http.Client) GithubRepository {
	if endpoint == "" {
		endpoint = config.DefaultGraphQLURL
	}
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &githubRepository{endpoint: endpoint, httpClient: httpClient}
}

// LabelBranches runs a single GraphQL query and extracts head branch names.
func (r *githubRepository) LabelBranches(
	ctx context.Context,
	id domain.RepositoryIdentity,
	label, token string,
) ([]string, error) {
	client := r.newClient(ctx, token)
	var q labelBranchesQuery
	variables := map[string]any{
		"owner":  githubv4.String(id.Owner),
		"name":   githubv4.String(id.Name),
		"labels": []githubv4.String{githubv4.String(label)},
		"states": []githubv4.PullRequestState{githubv4.PullRequestStateOpen},
		"first":  githubv4.Int(PullRequestPageSize),
	}
	if err := client.Query(ctx, &q, variables); err != nil {
		if q.Repository == nil && strings.Contains(err.Error(), repositoryNotFoundMessage) {
			return []string{}, nil
		}
		return nil, &domain.TransportError{Err: err}
	}
	return headRefNames(q), nil
}

func (r *githubRepository) newClient(ctx context.Context, token string) *githubv4.Client {
	ts := oauth2.StaticTokenSource(
		&oauth2.Token{AccessToken: strings.TrimSpace(token)},
	)
	httpClient := oauth2.NewClient(context.WithValue(ctx, oauth2.HTTPClient, r.httpClient), ts)
	if r.endpoint == config.DefaultGraphQLURL {
		return githubv4.NewClient(httpClient)
	}
	return githubv4.NewEnterpriseClient(r.endpoint, httpClient)
}

// headRefNames flattens the response, skipping entries without a head branch.
func headRefNames(q labelBranchesQuery) []string {
	branches := []string{}
	if q.Repository == nil || q.Repository.PullRequests == nil {
		return branches
	}
	for _, node := range q.Repository.PullRequests.Nodes {
		if node == nil || node.HeadRefName == nil || *node.HeadRefName == "" {
			continue
		}
		branches = append(branches, string(*node.HeadRefName))
	}
	return branches
}
