package domain

// PageResult is one page of pull requests in the order the remote returned them.
type PageResult struct {
	PullRequests []*PullRequest
	HasMorePages bool
}
