package usecase

import (
	"context"
	"errors"
	"fmt"

	"github.com/compozy/prscope/internal/domain"
	"github.com/compozy/prscope/internal/service"
)

// ErrPullRequestUnavailable is returned when a pull request cannot be used.
var ErrPullRequestUnavailable = errors.New("pull request unavailable")

// ResolvePullRequestUseCase turns a resolve outcome into an error for callers
// that need one, such as the CLI.
type ResolvePullRequestUseCase struct {
	Service service.PullRequestService
}

// Execute runs the use case.
func (uc *ResolvePullRequestUseCase) Execute(ctx context.Context, number int) (*domain.PullRequest, error) {
	if number <= 0 {
		return nil, fmt.Errorf("invalid pull request number: %d", number)
	}
	pr, outcome := uc.Service.ResolvePullRequest(ctx, number)
	if pr == nil {
		return nil, fmt.Errorf("%w: #%d in %s: %s", ErrPullRequestUnavailable, number, uc.Service.Remote(), outcome)
	}
	return pr, nil
}
