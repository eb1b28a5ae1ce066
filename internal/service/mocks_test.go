package service

import (
	"context"

	"github.com/compozy/prscope/internal/domain"
	"github.com/compozy/prscope/internal/repository"
	"github.com/stretchr/testify/mock"
)

// Mock for GithubRepository
type mockGithubRepository struct{ mock.Mock }

func (m *mockGithubRepository) ListPullRequests(
	ctx context.Context,
	owner, repo string,
	perPage, page int,
) (*repository.PullRequestPage, error) {
	args := m.Called(ctx, owner, repo, perPage, page)
	if v := args.Get(0); v != nil {
		return v.(*repository.PullRequestPage), args.Error(1)
	}
	return nil, args.Error(1)
}
func (m *mockGithubRepository) SearchIssues(
	ctx context.Context,
	query string,
	perPage, page int,
) (*repository.IssueSearchPage, error) {
	args := m.Called(ctx, query, perPage, page)
	if v := args.Get(0); v != nil {
		return v.(*repository.IssueSearchPage), args.Error(1)
	}
	return nil, args.Error(1)
}
func (m *mockGithubRepository) GetPullRequest(
	ctx context.Context,
	owner, repo string,
	number int,
) (*domain.RawPullRequest, error) {
	args := m.Called(ctx, owner, repo, number)
	if v := args.Get(0); v != nil {
		return v.(*domain.RawPullRequest), args.Error(1)
	}
	return nil, args.Error(1)
}
func (m *mockGithubRepository) GetAuthenticatedUser(ctx context.Context) (*domain.Account, error) {
	args := m.Called(ctx)
	if v := args.Get(0); v != nil {
		return v.(*domain.Account), args.Error(1)
	}
	return nil, args.Error(1)
}
func (m *mockGithubRepository) GetRepository(
	ctx context.Context,
	owner, repo string,
) (*repository.RepositoryInfo, error) {
	args := m.Called(ctx, owner, repo)
	if v := args.Get(0); v != nil {
		return v.(*repository.RepositoryInfo), args.Error(1)
	}
	return nil, args.Error(1)
}

func rawPullRequest(number int) *domain.RawPullRequest {
	return &domain.RawPullRequest{
		Number:  number,
		Title:   "change",
		State:   "open",
		HTMLURL: "https://github.com/octo/hello/pull/1",
		Head: &domain.RawRef{
			Ref:        "feature",
			Repository: &domain.RefRepository{Owner: "octo", Name: "hello", FullName: "octo/hello"},
		},
		Base: &domain.RawRef{
			Ref:        "main",
			Repository: &domain.RefRepository{Owner: "octo", Name: "hello", FullName: "octo/hello"},
		},
	}
}

func deletedHeadPullRequest(number int) *domain.RawPullRequest {
	raw := rawPullRequest(number)
	raw.Head.Repository = nil
	return raw
}
