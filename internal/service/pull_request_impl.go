package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/compozy/prscope/internal/domain"
	"github.com/compozy/prscope/internal/repository"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// PullRequestServiceOptions tunes the accessor.
type PullRequestServiceOptions struct {
	// MaxConcurrentFetches caps in-flight hydration requests. Zero means unbounded.
	MaxConcurrentFetches int
}

// pullRequestService is the implementation of the PullRequestService interface.
type pullRequestService struct {
	github         repository.GithubRepository
	remote         domain.Remote
	logger         *zap.Logger
	maxConcurrency int
}

// NewPullRequestService binds an accessor to one remote and one transport.
func NewPullRequestService(
	github repository.GithubRepository,
	owner, repo string,
	logger *zap.Logger,
	opts PullRequestServiceOptions,
) (PullRequestService, error) {
	if github == nil {
		return nil, fmt.Errorf("github repository is required")
	}
	remote, err := domain.NewRemote(owner, repo)
	if err != nil {
		return nil, fmt.Errorf("invalid remote: %w", err)
	}
	if opts.MaxConcurrentFetches < 0 {
		return nil, fmt.Errorf("max concurrent fetches cannot be negative")
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &pullRequestService{
		github:         github,
		remote:         remote,
		logger:         logger.Named(loggerName),
		maxConcurrency: opts.MaxConcurrentFetches,
	}, nil
}

func (s *pullRequestService) Remote() domain.Remote {
	return s.remote
}

func (s *pullRequestService) ListPullRequests(
	ctx context.Context,
	category domain.Category,
	page int,
) (*domain.PageResult, error) {
	if page <= 0 {
		page = 1
	}
	logger := s.logger.With(
		zap.String("request_id", uuid.NewString()),
		zap.String("remote", s.remote.String()),
	)
	var (
		result *domain.PageResult
		err    error
	)
	if category == domain.CategoryAll {
		result, err = s.listAll(ctx, logger, page)
	} else {
		result, err = s.listForCategory(ctx, logger, category, page)
	}
	if err != nil {
		logger.Error("failed to fetch pull requests",
			zap.String("operation", "ListPullRequests"),
			zap.Stringer("category", category),
			zap.Int("page", page),
			zap.Error(err),
		)
		return nil, fmt.Errorf("failed to list %s pull requests for %s: %w", category, s.remote, err)
	}
	return result, nil
}

// listAll uses the native listing endpoint.
func (s *pullRequestService) listAll(ctx context.Context, logger *zap.Logger, page int) (*domain.PageResult, error) {
	resp, err := s.github.ListPullRequests(ctx, s.remote.Owner(), s.remote.Name(), PullRequestPageSize, page)
	if err != nil {
		return nil, err
	}
	items, err := s.wrap(logger, "ListPullRequests", resp.Items)
	if err != nil {
		return nil, err
	}
	return &domain.PageResult{PullRequests: items, HasMorePages: hasNextPage(resp.Link)}, nil
}

// listForCategory searches for the category and hydrates each hit into a full record.
func (s *pullRequestService) listForCategory(
	ctx context.Context,
	logger *zap.Logger,
	category domain.Category,
	page int,
) (*domain.PageResult, error) {
	user, err := s.github.GetAuthenticatedUser(ctx)
	if err != nil {
		return nil, err
	}
	// The search endpoint does not follow renames, so use the canonical name.
	info, err := s.github.GetRepository(ctx, s.remote.Owner(), s.remote.Name())
	if err != nil {
		return nil, err
	}
	query := BuildSearchQuery(category, user.Login, info.FullName)
	logger.Debug("searching pull requests", zap.String("query", query), zap.Int("page", page))
	resp, err := s.github.SearchIssues(ctx, query, PullRequestPageSize, page)
	if err != nil {
		return nil, err
	}
	raws, err := s.hydrate(ctx, resp.Items)
	if err != nil {
		return nil, err
	}
	items, err := s.wrap(logger, "ListPullRequests", raws)
	if err != nil {
		return nil, err
	}
	return &domain.PageResult{PullRequests: items, HasMorePages: hasNextPage(resp.Link)}, nil
}

// hydrate fetches the full records for the search hits concurrently.
// Results keep the order of the hits regardless of completion order.
func (s *pullRequestService) hydrate(
	ctx context.Context,
	hits []repository.IssueSummary,
) ([]*domain.RawPullRequest, error) {
	raws := make([]*domain.RawPullRequest, len(hits))
	g, gctx := errgroup.WithContext(ctx)
	if s.maxConcurrency > 0 {
		g.SetLimit(s.maxConcurrency)
	}
	for i, hit := range hits {
		g.Go(func() error {
			raw, err := s.github.GetPullRequest(gctx, s.remote.Owner(), s.remote.Name(), hit.Number)
			if err != nil {
				return err
			}
			raws[i] = raw
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return raws, nil
}

// wrap drops records whose head repository is gone and builds projections for the rest.
func (s *pullRequestService) wrap(
	logger *zap.Logger,
	operation string,
	raws []*domain.RawPullRequest,
) ([]*domain.PullRequest, error) {
	items := make([]*domain.PullRequest, 0, len(raws))
	for i, raw := range raws {
		if raw == nil {
			logger.Info("pull request record is missing",
				zap.Int("index", i),
				zap.String("operation", operation),
			)
			continue
		}
		if !raw.HasResolvableHead() {
			logger.Info("remote branch for pull request was already deleted",
				zap.Int("number", raw.Number),
				zap.String("operation", operation),
			)
			continue
		}
		pr, err := domain.NewPullRequest(s, s.remote, raw)
		if err != nil {
			return nil, err
		}
		items = append(items, pr)
	}
	return items, nil
}

func (s *pullRequestService) ResolvePullRequest(
	ctx context.Context,
	number int,
) (*domain.PullRequest, domain.ResolveOutcome) {
	logger := s.logger.With(zap.String("remote", s.remote.String()))
	raw, err := s.github.GetPullRequest(ctx, s.remote.Owner(), s.remote.Name(), number)
	if err != nil {
		logger.Warn("failed to resolve pull request",
			zap.String("operation", "ResolvePullRequest"),
			zap.Int("number", number),
			zap.Error(err),
		)
		if errors.Is(err, repository.ErrNotFound) {
			return nil, domain.ResolveNotFound
		}
		return nil, domain.ResolveFailed
	}
	if !raw.HasResolvableHead() {
		logger.Info("remote branch for pull request was already deleted",
			zap.Int("number", number),
			zap.String("operation", "ResolvePullRequest"),
		)
		return nil, domain.ResolveBranchDeleted
	}
	pr, err := domain.NewPullRequest(s, s.remote, raw)
	if err != nil {
		logger.Warn("failed to build pull request", zap.Int("number", number), zap.Error(err))
		return nil, domain.ResolveFailed
	}
	return pr, domain.ResolveFound
}
