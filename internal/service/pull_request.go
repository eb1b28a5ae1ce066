package service

import (
	"context"

	"github.com/compozy/prscope/internal/domain"
)

// PullRequestService is the repository-scoped pull request accessor.
type PullRequestService interface {
	Remote() domain.Remote
	// ListPullRequests returns one page for the category. A page <= 0 is treated as 1.
	ListPullRequests(ctx context.Context, category domain.Category, page int) (*domain.PageResult, error)
	// ResolvePullRequest never returns an error; a nil result carries its reason in the outcome.
	ResolvePullRequest(ctx context.Context, number int) (*domain.PullRequest, domain.ResolveOutcome)
}
