package cmd

import (
	"context"

	"github.com/compozy/prscope/internal/domain"
	"github.com/stretchr/testify/mock"
	"go.uber.org/zap"
)

// Mock for PullRequestService
type mockPullRequestService struct{ mock.Mock }

func (m *mockPullRequestService) Remote() domain.Remote {
	remote, _ := domain.NewRemote("octo", "hello")
	return remote
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

func staticContainer(svc *mockPullRequestService) containerFactory {
	return func() (*container, error) {
		return &container{logger: zap.NewNop(), prSvc: svc}, nil
	}
}

func testPullRequest(number int, title string) *domain.PullRequest {
	remote, _ := domain.NewRemote("octo", "hello")
	raw := &domain.RawPullRequest{
		Number:  number,
		Title:   title,
		State:   "open",
		HTMLURL: "https://github.com/octo/hello/pull/1",
		User:    &domain.Account{Login: "alice", IsUser: true},
		Head:    &domain.RawRef{Ref: "feature", Repository: &domain.RefRepository{FullName: "alice/hello"}},
		Base:    &domain.RawRef{Ref: "main", Repository: &domain.RefRepository{FullName: "octo/hello"}},
	}
	pr, err := domain.NewPullRequest(nil, remote, raw)
	if err != nil {
		panic(err)
	}
	return pr
}
