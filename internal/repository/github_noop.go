package repository

import (
	"context"
	"fmt"

	"github.com/compozy/prscope/internal/domain"
)

type githubNoopRepository struct{}

// NewGithubNoopRepository returns a transport that fails every call with ErrGithubTokenRequired.
func NewGithubNoopRepository() GithubRepository {
	return &githubNoopRepository{}
}

func (r *githubNoopRepository) ListPullRequests(
	_ context.Context,
	owner, repo string,
	_, _ int,
) (*PullRequestPage, error) {
	return nil, r.operationError(fmt.Sprintf("list pull requests for %s/%s", owner, repo))
}

func (r *githubNoopRepository) SearchIssues(_ context.Context, _ string, _, _ int) (*IssueSearchPage, error) {
	return nil, r.operationError("search issues")
}

func (r *githubNoopRepository) GetPullRequest(
	_ context.Context,
	owner, repo string,
	number int,
) (*domain.RawPullRequest, error) {
	return nil, r.operationError(fmt.Sprintf("get PR #%d for %s/%s", number, owner, repo))
}

func (r *githubNoopRepository) GetAuthenticatedUser(_ context.Context) (*domain.Account, error) {
	return nil, r.operationError("get authenticated user")
}

func (r *githubNoopRepository) GetRepository(_ context.Context, owner, repo string) (*RepositoryInfo, error) {
	return nil, r.operationError(fmt.Sprintf("get repository %s/%s", owner, repo))
}

func (r *githubNoopRepository) operationError(action string) error {
	return fmt.Errorf("%w: unable to %s", ErrGithubTokenRequired, action)
}
