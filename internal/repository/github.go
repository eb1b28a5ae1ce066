package repository

import (
	"context"

	"github.com/compozy/prscope/internal/domain"
)

// GithubRepository defines the GitHub REST calls the pull request accessor consumes.
type GithubRepository interface {
	ListPullRequests(ctx context.Context, owner, repo string, perPage, page int) (*PullRequestPage, error)
	SearchIssues(ctx context.Context, query string, perPage, page int) (*IssueSearchPage, error)
	GetPullRequest(ctx context.Context, owner, repo string, number int) (*domain.RawPullRequest, error)
	GetAuthenticatedUser(ctx context.Context) (*domain.Account, error)
	GetRepository(ctx context.Context, owner, repo string) (*RepositoryInfo, error)
}

// PullRequestPage is one page of the pull request listing endpoint.
type PullRequestPage struct {
	Items []*domain.RawPullRequest
	// Link is the raw Link response header, empty when absent.
	Link string
}

// IssueSummary is the lean record returned by the search endpoint.
type IssueSummary struct {
	Number int
	Title  string
}

// IssueSearchPage is one page of the issue search endpoint.
type IssueSearchPage struct {
	Items []IssueSummary
	Link  string
}

// RepositoryInfo holds repository metadata.
type RepositoryInfo struct {
	FullName string
}
