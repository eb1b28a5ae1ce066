package usecase

import (
	"context"

	"github.com/compozy/prscope/internal/domain"
	"github.com/stretchr/testify/mock"
)

// Mock for PullRequestService
type mockPullRequestService struct{ mock.Mock }

func (m *mockPullRequestService) Remote() domain.Remote {
	args := m.Called()
	return args.Get(0).(domain.Remote)
}
func (m *mockPullRequestService) ListPullRequests(
	ctx context.Context,
	category domain.Category,
	page int,
) (*domain.PageResult, error) {
	args := m.Called(ctx, category, page)
	if v := args.Get(0); v != nil {
		return v.(*domain.PageResult), args.Error(1)
	}
	return nil, args.Error(1)
}
func (m *mockPullRequestService) ResolvePullRequest(
	ctx context.Context,
	number int,
) (*domain.PullRequest, domain.ResolveOutcome) {
	args := m.Called(ctx, number)
	outcome := args.Get(1).(domain.ResolveOutcome)
	if v := args.Get(0); v != nil {
		return v.(*domain.PullRequest), outcome
	}
	return nil, outcome
}

func testRemote() domain.Remote {
	remote, err := domain.NewRemote("octo", "hello")
	if err != nil {
		panic(err)
	}
	return remote
}

func pullRequest(number int) *domain.PullRequest {
	raw := &domain.RawPullRequest{
		Number: number,
		Title:  "change",
		State:  "open",
		Head:   &domain.RawRef{Ref: "feature", Repository: &domain.RefRepository{FullName: "octo/hello"}},
	}
	pr, err := domain.NewPullRequest(nil, testRemote(), raw)
	if err != nil {
		panic(err)
	}
	return pr
}

func page(hasMore bool, numbers ...int) *domain.PageResult {
	result := &domain.PageResult{HasMorePages: hasMore}
	for _, n := range numbers {
		result.PullRequests = append(result.PullRequests, pullRequest(n))
	}
	return result
}

func numbersOf(prs []*domain.PullRequest) []int {
	out := make([]int, 0, len(prs))
	for _, pr := range prs {
		out = append(out, pr.Number())
	}
	return out
}
