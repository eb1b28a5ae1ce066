package domain

import "time"

// Account is the subset of a user account that listing needs.
type Account struct {
	Login     string `json:"login"`
	AvatarURL string `json:"avatar_url,omitempty"`
	HTMLURL   string `json:"html_url,omitempty"`
	IsUser    bool   `json:"is_user"`
}

// RefRepository is the repository a branch reference lives in.
type RefRepository struct {
	Owner    string `json:"owner"`
	Name     string `json:"name"`
	FullName string `json:"full_name"`
	CloneURL string `json:"clone_url,omitempty"`
}

// RawRef is a head or base branch reference. Repository is nil when the
// repository behind the branch no longer exists.
type RawRef struct {
	Label      string         `json:"label"`
	Ref        string         `json:"ref"`
	SHA        string         `json:"sha"`
	Repository *RefRepository `json:"repo,omitempty"`
}

// RawPullRequest is the record returned by the transport for a full pull request.
type RawPullRequest struct {
	Number    int        `json:"number"`
	Title     string     `json:"title"`
	Body      string     `json:"body,omitempty"`
	State     string     `json:"state"`
	HTMLURL   string     `json:"html_url"`
	Merged    bool       `json:"merged"`
	MergedAt  *time.Time `json:"merged_at,omitempty"`
	Comments  int        `json:"comments"`
	Commits   int        `json:"commits"`
	User      *Account   `json:"user,omitempty"`
	Assignee  *Account   `json:"assignee,omitempty"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
	Head      *RawRef    `json:"head,omitempty"`
	Base      *RawRef    `json:"base,omitempty"`
}

// HasResolvableHead reports whether the head branch still has a source
// repository. Records without one belong to deleted branches or forks.
func (r *RawPullRequest) HasResolvableHead() bool {
	return r != nil && r.Head != nil && r.Head.Repository != nil
}
