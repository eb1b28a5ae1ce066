package domain

import (
	"context"
	"fmt"
	"sync"
	"time"
)

// PullRequestState is the state of a pull request as shown to users.
type PullRequestState int

const (
	PullRequestStateOpen PullRequestState = iota
	PullRequestStateMerged
	PullRequestStateClosed
)

func (s PullRequestState) String() string {
	switch s {
	case PullRequestStateOpen:
		return "open"
	case PullRequestStateMerged:
		return "merged"
	default:
		return "closed"
	}
}

// ResolveOutcome explains the result of resolving a single pull request.
type ResolveOutcome int

const (
	ResolveFound ResolveOutcome = iota
	ResolveNotFound
	ResolveBranchDeleted
	ResolveFailed
)

func (o ResolveOutcome) String() string {
	switch o {
	case ResolveFound:
		return "found"
	case ResolveNotFound:
		return "not found"
	case ResolveBranchDeleted:
		return "branch deleted"
	default:
		return "failed"
	}
}

// Source is the accessor a projection was produced by.
type Source interface {
	ResolvePullRequest(ctx context.Context, number int) (*PullRequest, ResolveOutcome)
}

// PullRequest is a view over a raw record together with the accessor and
// remote that produced it. A new instance is built on every fetch.
type PullRequest struct {
	source Source
	remote Remote

	mu  sync.RWMutex
	raw *RawPullRequest
}

// NewPullRequest creates a projection. The raw record must have a resolvable head.
func NewPullRequest(source Source, remote Remote, raw *RawPullRequest) (*PullRequest, error) {
	if !raw.HasResolvableHead() {
		return nil, fmt.Errorf("pull request has no resolvable head repository")
	}
	return &PullRequest{source: source, remote: remote, raw: raw}, nil
}

func (p *PullRequest) record() *RawPullRequest {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.raw
}

// Source returns the accessor that produced the projection.
func (p *PullRequest) Source() Source { return p.source }

// Remote returns the repository the pull request belongs to.
func (p *PullRequest) Remote() Remote { return p.remote }

// Raw returns the underlying record. Callers must not mutate it.
func (p *PullRequest) Raw() *RawPullRequest { return p.record() }

func (p *PullRequest) Number() int       { return p.record().Number }
func (p *PullRequest) Title() string     { return p.record().Title }
func (p *PullRequest) Body() string      { return p.record().Body }
func (p *PullRequest) URL() string       { return p.record().HTMLURL }
func (p *PullRequest) CommentCount() int { return p.record().Comments }
func (p *PullRequest) CommitCount() int  { return p.record().Commits }

func (p *PullRequest) CreatedAt() time.Time { return p.record().CreatedAt }
func (p *PullRequest) UpdatedAt() time.Time { return p.record().UpdatedAt }

// Author returns the pull request author, or nil when unknown.
func (p *PullRequest) Author() *Account { return p.record().User }

// Assignee returns the assignee, or nil when nobody is assigned.
func (p *PullRequest) Assignee() *Account { return p.record().Assignee }

// Head returns the source branch reference.
func (p *PullRequest) Head() *RawRef { return p.record().Head }

// Base returns the target branch reference, or nil when absent.
func (p *PullRequest) Base() *RawRef { return p.record().Base }

// State derives the display state from the raw state and the merged signal.
func (p *PullRequest) State() PullRequestState {
	raw := p.record()
	switch {
	case raw.State == "open":
		return PullRequestStateOpen
	case raw.Merged || raw.MergedAt != nil:
		return PullRequestStateMerged
	default:
		return PullRequestStateClosed
	}
}

func (p *PullRequest) IsOpen() bool   { return p.State() == PullRequestStateOpen }
func (p *PullRequest) IsMerged() bool { return p.State() == PullRequestStateMerged }

// Equals reports whether both projections show the same pull request in the same revision.
func (p *PullRequest) Equals(other *PullRequest) bool {
	if p == nil || other == nil {
		return p == other
	}
	if p.remote != other.remote {
		return false
	}
	a, b := p.record(), other.record()
	return a.Number == b.Number &&
		a.Title == b.Title &&
		a.HTMLURL == b.HTMLURL &&
		p.State() == other.State() &&
		a.Comments == b.Comments &&
		a.Commits == b.Commits &&
		a.UpdatedAt.Equal(b.UpdatedAt)
}

// Update replaces the underlying record in place.
func (p *PullRequest) Update(raw *RawPullRequest) error {
	if !raw.HasResolvableHead() {
		return fmt.Errorf("pull request #%d has no resolvable head repository", p.Number())
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	if raw.Number != p.raw.Number {
		return fmt.Errorf("cannot update pull request #%d with record #%d", p.raw.Number, raw.Number)
	}
	p.raw = raw
	return nil
}

// Refresh fetches the pull request again through its source and updates it in place.
func (p *PullRequest) Refresh(ctx context.Context) error {
	if p.source == nil {
		return fmt.Errorf("pull request #%d has no source to refresh from", p.Number())
	}
	fresh, outcome := p.source.ResolvePullRequest(ctx, p.Number())
	if fresh == nil {
		return fmt.Errorf("failed to refresh pull request #%d: %s", p.Number(), outcome)
	}
	return p.Update(fresh.Raw())
}
