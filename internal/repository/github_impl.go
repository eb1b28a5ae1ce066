package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/compozy/prscope/internal/config"
	"github.com/compozy/prscope/internal/domain"
	"github.com/compozy/prscope/pkg/version"
	"github.com/google/go-github/v74/github"
	"github.com/sethvargo/go-retry"
	"golang.org/x/oauth2"
)

const (
	// DefaultRetryDelay is the initial backoff after a rate limited request.
	DefaultRetryDelay = 1 * time.Second
	// DefaultMaxRateLimitWait caps how long a call waits for a rate limit to reset.
	DefaultMaxRateLimitWait = 1 * time.Minute
	// rateLimitResetBuffer is added to the reset time GitHub reports.
	rateLimitResetBuffer = 500 * time.Millisecond
)

// GithubOptions configures the GitHub transport.
type GithubOptions struct {
	Token string
	// BaseURL points at a GitHub Enterprise API, e.g. https://ghe.example.com/api/v3/.
	BaseURL    string
	MaxRetries uint64
	RetryDelay time.Duration
	// MaxRateLimitWait caps the wait for a reported rate limit reset. Zero uses DefaultMaxRateLimitWait.
	MaxRateLimitWait time.Duration
}

// githubRepository is the implementation of the GithubRepository interface.
type githubRepository struct {
	client       *github.Client
	maxRetries   uint64
	retryDelay   time.Duration
	maxResetWait time.Duration
}

// NewGithubRepository creates a new GithubRepository with validation.
func NewGithubRepository(opts GithubOptions) (GithubRepository, error) {
	if err := config.ValidateGitHubToken(opts.Token); err != nil {
		return nil, fmt.Errorf("invalid GitHub token: %w", err)
	}
	ts := oauth2.StaticTokenSource(
		&oauth2.Token{AccessToken: strings.TrimSpace(opts.Token)},
	)
	tc := oauth2.NewClient(context.Background(), ts)
	client := github.NewClient(tc)
	if opts.BaseURL != "" {
		var err error
		client, err = client.WithEnterpriseURLs(opts.BaseURL, opts.BaseURL)
		if err != nil {
			return nil, fmt.Errorf("invalid GitHub base URL: %w", err)
		}
	}
	client.UserAgent = version.UserAgent()
	repo := newGithubRepository(client, opts.MaxRetries, opts.RetryDelay)
	if opts.MaxRateLimitWait > 0 {
		repo.maxResetWait = opts.MaxRateLimitWait
	}
	return repo, nil
}

func newGithubRepository(client *github.Client, maxRetries uint64, retryDelay time.Duration) *githubRepository {
	if retryDelay <= 0 {
		retryDelay = DefaultRetryDelay
	}
	return &githubRepository{
		client:       client,
		maxRetries:   maxRetries,
		retryDelay:   retryDelay,
		maxResetWait: DefaultMaxRateLimitWait,
	}
}

// ListPullRequests returns one page of pull requests for owner/repo.
func (r *githubRepository) ListPullRequests(
	ctx context.Context,
	owner, repo string,
	perPage, page int,
) (*PullRequestPage, error) {
	var result *PullRequestPage
	err := r.do(ctx, func(ctx context.Context) error {
		prs, resp, err := r.client.PullRequests.List(ctx, owner, repo, &github.PullRequestListOptions{
			ListOptions: github.ListOptions{PerPage: perPage, Page: page},
		})
		if err != nil {
			return err
		}
		result = &PullRequestPage{
			Items: make([]*domain.RawPullRequest, 0, len(prs)),
			Link:  linkHeader(resp),
		}
		for _, pr := range prs {
			result.Items = append(result.Items, toRawPullRequest(pr))
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list pull requests for %s/%s: %w", owner, repo, err)
	}
	return result, nil
}

// SearchIssues runs an issue search and returns the lean result items.
func (r *githubRepository) SearchIssues(ctx context.Context, query string, perPage, page int) (*IssueSearchPage, error) {
	var result *IssueSearchPage
	err := r.do(ctx, func(ctx context.Context) error {
		found, resp, err := r.client.Search.Issues(ctx, query, &github.SearchOptions{
			ListOptions: github.ListOptions{PerPage: perPage, Page: page},
		})
		if err != nil {
			return err
		}
		result = &IssueSearchPage{
			Items: make([]IssueSummary, 0, len(found.Issues)),
			Link:  linkHeader(resp),
		}
		for _, issue := range found.Issues {
			result.Items = append(result.Items, IssueSummary{
				Number: issue.GetNumber(),
				Title:  issue.GetTitle(),
			})
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to search issues: %w", err)
	}
	return result, nil
}

// GetPullRequest fetches the full record of a pull request.
func (r *githubRepository) GetPullRequest(
	ctx context.Context,
	owner, repo string,
	number int,
) (*domain.RawPullRequest, error) {
	var result *domain.RawPullRequest
	err := r.do(ctx, func(ctx context.Context) error {
		pr, _, err := r.client.PullRequests.Get(ctx, owner, repo, number)
		if err != nil {
			return err
		}
		result = toRawPullRequest(pr)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to get PR #%d: %w", number, err)
	}
	return result, nil
}

// GetAuthenticatedUser returns the account the token belongs to.
func (r *githubRepository) GetAuthenticatedUser(ctx context.Context) (*domain.Account, error) {
	var result *domain.Account
	err := r.do(ctx, func(ctx context.Context) error {
		user, _, err := r.client.Users.Get(ctx, "")
		if err != nil {
			return err
		}
		result = toAccount(user)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to get authenticated user: %w", err)
	}
	return result, nil
}

// GetRepository returns repository metadata, following renames.
func (r *githubRepository) GetRepository(ctx context.Context, owner, repo string) (*RepositoryInfo, error) {
	var result *RepositoryInfo
	err := r.do(ctx, func(ctx context.Context) error {
		info, _, err := r.client.Repositories.Get(ctx, owner, repo)
		if err != nil {
			return err
		}
		result = &RepositoryInfo{FullName: info.GetFullName()}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to get repository %s/%s: %w", owner, repo, err)
	}
	return result, nil
}

// do runs fn, retrying while GitHub reports a rate limit. Before each retry it
// waits for the reset GitHub announced, since the client refuses to send
// requests until then, and gives up when that wait exceeds maxResetWait.
func (r *githubRepository) do(ctx context.Context, fn func(ctx context.Context) error) error {
	backoff := retry.WithMaxRetries(r.maxRetries, retry.NewExponential(r.retryDelay))
	return retry.Do(ctx, backoff, func(ctx context.Context) error {
		raw := fn(ctx)
		err := mapError(raw)
		if !errors.Is(err, ErrRateLimited) {
			return err
		}
		wait := rateLimitWait(raw)
		if wait > r.maxResetWait {
			return fmt.Errorf("%w (reset in %s exceeds the %s wait limit)", err, wait.Round(time.Second), r.maxResetWait)
		}
		if err := sleepContext(ctx, wait); err != nil {
			return err
		}
		return retry.RetryableError(err)
	})
}

// rateLimitWait returns how long GitHub asked the client to hold off.
func rateLimitWait(err error) time.Duration {
	var wait time.Duration
	var rateErr *github.RateLimitError
	var abuseErr *github.AbuseRateLimitError
	switch {
	case errors.As(err, &rateErr):
		if reset := rateErr.Rate.Reset.Time; !reset.IsZero() {
			wait = time.Until(reset)
		}
	case errors.As(err, &abuseErr):
		wait = abuseErr.GetRetryAfter()
	}
	if wait <= 0 {
		return 0
	}
	return wait + rateLimitResetBuffer
}

func sleepContext(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return nil
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

func linkHeader(resp *github.Response) string {
	if resp == nil || resp.Response == nil {
		return ""
	}
	return resp.Header.Get("Link")
}

func toRawPullRequest(pr *github.PullRequest) *domain.RawPullRequest {
	raw := &domain.RawPullRequest{
		Number:    pr.GetNumber(),
		Title:     pr.GetTitle(),
		Body:      pr.GetBody(),
		State:     pr.GetState(),
		HTMLURL:   pr.GetHTMLURL(),
		Merged:    pr.GetMerged(),
		Comments:  pr.GetComments(),
		Commits:   pr.GetCommits(),
		User:      toAccount(pr.GetUser()),
		Assignee:  toAccount(pr.GetAssignee()),
		CreatedAt: pr.GetCreatedAt().Time,
		UpdatedAt: pr.GetUpdatedAt().Time,
		Head:      toRawRef(pr.GetHead()),
		Base:      toRawRef(pr.GetBase()),
	}
	if pr.MergedAt != nil {
		mergedAt := pr.GetMergedAt().Time
		raw.MergedAt = &mergedAt
	}
	return raw
}

func toRawRef(branch *github.PullRequestBranch) *domain.RawRef {
	if branch == nil {
		return nil
	}
	ref := &domain.RawRef{
		Label: branch.GetLabel(),
		Ref:   branch.GetRef(),
		SHA:   branch.GetSHA(),
	}
	if repo := branch.GetRepo(); repo != nil {
		ref.Repository = &domain.RefRepository{
			Owner:    repo.GetOwner().GetLogin(),
			Name:     repo.GetName(),
			FullName: repo.GetFullName(),
			CloneURL: repo.GetCloneURL(),
		}
	}
	return ref
}

func toAccount(user *github.User) *domain.Account {
	if user == nil {
		return nil
	}
	return &domain.Account{
		Login:     user.GetLogin(),
		AvatarURL: user.GetAvatarURL(),
		HTMLURL:   user.GetHTMLURL(),
		IsUser:    user.GetType() == "User",
	}
}
