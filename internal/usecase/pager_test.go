package usecase

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/compozy/prscope/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestPullRequestPager(t *testing.T) {
	t.Run("Should advance page by page until the remote runs out", func(t *testing.T) {
		svc := new(mockPullRequestService)
		svc.On("ListPullRequests", mock.Anything, domain.CategoryMine, 1).Return(page(true, 1, 2), nil)
		svc.On("ListPullRequests", mock.Anything, domain.CategoryMine, 2).Return(page(false, 3), nil)
		pager := NewPullRequestPager(svc)
		assert.True(t, pager.MayHaveMorePages(domain.CategoryMine))
		first, err := pager.FetchNextPage(context.Background(), domain.CategoryMine)
		require.NoError(t, err)
		assert.Equal(t, []int{1, 2}, numbersOf(first.PullRequests))
		assert.True(t, pager.MayHaveMorePages(domain.CategoryMine))
		second, err := pager.FetchNextPage(context.Background(), domain.CategoryMine)
		require.NoError(t, err)
		assert.Equal(t, []int{3}, numbersOf(second.PullRequests))
		assert.False(t, pager.MayHaveMorePages(domain.CategoryMine))
		_, err = pager.FetchNextPage(context.Background(), domain.CategoryMine)
		assert.ErrorIs(t, err, ErrNoMorePages)
		svc.AssertExpectations(t)
	})
	t.Run("Should track categories independently", func(t *testing.T) {
		svc := new(mockPullRequestService)
		svc.On("ListPullRequests", mock.Anything, domain.CategoryAll, 1).Return(page(false, 1), nil)
		pager := NewPullRequestPager(svc)
		_, err := pager.FetchNextPage(context.Background(), domain.CategoryAll)
		require.NoError(t, err)
		assert.False(t, pager.MayHaveMorePages(domain.CategoryAll))
		assert.True(t, pager.MayHaveMorePages(domain.CategoryRequestReview))
		assert.Equal(t, 1, pager.NextPage(domain.CategoryRequestReview))
	})
	t.Run("Should keep the cursor when a fetch fails", func(t *testing.T) {
		svc := new(mockPullRequestService)
		svc.On("ListPullRequests", mock.Anything, domain.CategoryAll, 1).Return(nil, errors.New("boom")).Once()
		svc.On("ListPullRequests", mock.Anything, domain.CategoryAll, 1).Return(page(true, 1), nil).Once()
		pager := NewPullRequestPager(svc)
		_, err := pager.FetchNextPage(context.Background(), domain.CategoryAll)
		require.Error(t, err)
		assert.Equal(t, 1, pager.NextPage(domain.CategoryAll))
		_, err = pager.FetchNextPage(context.Background(), domain.CategoryAll)
		require.NoError(t, err)
		assert.Equal(t, 2, pager.NextPage(domain.CategoryAll))
		svc.AssertExpectations(t)
	})
	t.Run("Should start over after a reset", func(t *testing.T) {
		svc := new(mockPullRequestService)
		svc.On("ListPullRequests", mock.Anything, domain.CategoryAll, 1).Return(page(false, 1), nil).Twice()
		pager := NewPullRequestPager(svc)
		_, err := pager.FetchNextPage(context.Background(), domain.CategoryAll)
		require.NoError(t, err)
		pager.Reset(domain.CategoryAll)
		assert.True(t, pager.MayHaveMorePages(domain.CategoryAll))
		_, err = pager.FetchNextPage(context.Background(), domain.CategoryAll)
		require.NoError(t, err)
		svc.AssertExpectations(t)
	})
	t.Run("Should hand out each page once to concurrent callers", func(t *testing.T) {
		svc := new(mockPullRequestService)
		var inFlight, peak atomic.Int32
		track := func(mock.Arguments) {
			current := inFlight.Add(1)
			if current > peak.Load() {
				peak.Store(current)
			}
			time.Sleep(20 * time.Millisecond)
			inFlight.Add(-1)
		}
		svc.On("ListPullRequests", mock.Anything, domain.CategoryAll, 1).Run(track).Return(page(true, 1), nil).Once()
		svc.On("ListPullRequests", mock.Anything, domain.CategoryAll, 2).Run(track).Return(page(false, 2), nil).Once()
		pager := NewPullRequestPager(svc)
		var wg sync.WaitGroup
		results := make([]*domain.PageResult, 2)
		for i := range results {
			wg.Add(1)
			go func() {
				defer wg.Done()
				result, err := pager.FetchNextPage(context.Background(), domain.CategoryAll)
				assert.NoError(t, err)
				results[i] = result
			}()
		}
		wg.Wait()
		var got []int
		for _, result := range results {
			require.NotNil(t, result)
			got = append(got, numbersOf(result.PullRequests)...)
		}
		assert.ElementsMatch(t, []int{1, 2}, got)
		assert.Equal(t, int32(1), peak.Load())
		assert.False(t, pager.MayHaveMorePages(domain.CategoryAll))
		svc.AssertExpectations(t)
	})
}
