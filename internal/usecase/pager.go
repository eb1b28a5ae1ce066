package usecase

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/compozy/prscope/internal/domain"
	"github.com/compozy/prscope/internal/service"
)

// ErrNoMorePages is returned once the last page of a category has been fetched.
var ErrNoMorePages = errors.New("no more pages")

type pageCursor struct {
	next    int
	hasMore bool
}

// PullRequestPager walks the pages of each category. It remembers page
// numbers only, never the pull requests themselves. It is safe for
// concurrent use; fetches for one category run one at a time so each
// caller gets the next page.
type PullRequestPager struct {
	Service service.PullRequestService

	mu       sync.Mutex
	cursors  map[domain.Category]pageCursor
	fetching map[domain.Category]*sync.Mutex
}

// NewPullRequestPager creates a pager over svc.
func NewPullRequestPager(svc service.PullRequestService) *PullRequestPager {
	return &PullRequestPager{
		Service:  svc,
		cursors:  make(map[domain.Category]pageCursor),
		fetching: make(map[domain.Category]*sync.Mutex),
	}
}

// fetchLock returns the lock serializing fetches of category.
func (p *PullRequestPager) fetchLock(category domain.Category) *sync.Mutex {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.fetching == nil {
		p.fetching = make(map[domain.Category]*sync.Mutex)
	}
	lock, ok := p.fetching[category]
	if !ok {
		lock = &sync.Mutex{}
		p.fetching[category] = lock
	}
	return lock
}

func (p *PullRequestPager) cursor(category domain.Category) pageCursor {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.cursors == nil {
		p.cursors = make(map[domain.Category]pageCursor)
	}
	c, ok := p.cursors[category]
	if !ok {
		c = pageCursor{next: 1, hasMore: true}
	}
	return c
}

// FetchNextPage fetches the page after the last one returned for category.
// A failed fetch leaves the cursor where it was.
func (p *PullRequestPager) FetchNextPage(ctx context.Context, category domain.Category) (*domain.PageResult, error) {
	lock := p.fetchLock(category)
	lock.Lock()
	defer lock.Unlock()
	c := p.cursor(category)
	if !c.hasMore {
		return nil, fmt.Errorf("%s: %w", category, ErrNoMorePages)
	}
	result, err := p.Service.ListPullRequests(ctx, category, c.next)
	if err != nil {
		return nil, err
	}
	p.mu.Lock()
	p.cursors[category] = pageCursor{next: c.next + 1, hasMore: result.HasMorePages}
	p.mu.Unlock()
	return result, nil
}

// MayHaveMorePages reports whether another FetchNextPage can return results.
func (p *PullRequestPager) MayHaveMorePages(category domain.Category) bool {
	return p.cursor(category).hasMore
}

// NextPage returns the page number the next fetch will request.
func (p *PullRequestPager) NextPage(category domain.Category) int {
	return p.cursor(category).next
}

// Reset starts category over from the first page.
func (p *PullRequestPager) Reset(category domain.Category) {
	p.mu.Lock()
	defer p.mu.Unlock()
	delete(p.cursors, category)
}
