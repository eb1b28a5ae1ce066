package usecase

import (
	"context"
	"fmt"

	"github.com/compozy/prscope/internal/domain"
	"github.com/compozy/prscope/internal/service"
)

// CollectPullRequestsUseCase gathers several pages of a category.
type CollectPullRequestsUseCase struct {
	Service service.PullRequestService
	// MaxPages stops the walk early. Zero means no limit.
	MaxPages int
}

// Execute walks the pages of category from the first one. The returned flag
// is true when the walk stopped at MaxPages with pages left on the remote.
func (uc *CollectPullRequestsUseCase) Execute(
	ctx context.Context,
	category domain.Category,
) ([]*domain.PullRequest, bool, error) {
	if uc.MaxPages < 0 {
		return nil, false, fmt.Errorf("max pages cannot be negative")
	}
	pager := NewPullRequestPager(uc.Service)
	var all []*domain.PullRequest
	for pages := 0; pager.MayHaveMorePages(category); pages++ {
		if uc.MaxPages > 0 && pages == uc.MaxPages {
			return all, true, nil
		}
		result, err := pager.FetchNextPage(ctx, category)
		if err != nil {
			return nil, false, fmt.Errorf("failed to fetch page %d: %w", pager.NextPage(category), err)
		}
		all = append(all, result.PullRequests...)
	}
	return all, false, nil
}
