package repository

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/google/go-github/v74/github"
)

var (
	ErrGithubTokenRequired = errors.New("github token is required for GitHub operations")
	ErrNotFound            = errors.New("resource not found")
	ErrUnauthorized        = errors.New("github authentication failed")
	ErrRateLimited         = errors.New("github rate limit exceeded")
)

// mapError tags go-github failures with a sentinel while keeping the original in the chain.
func mapError(err error) error {
	if err == nil {
		return nil
	}
	var rateErr *github.RateLimitError
	if errors.As(err, &rateErr) {
		return fmt.Errorf("%w: %w", ErrRateLimited, err)
	}
	var abuseErr *github.AbuseRateLimitError
	if errors.As(err, &abuseErr) {
		return fmt.Errorf("%w: %w", ErrRateLimited, err)
	}
	var respErr *github.ErrorResponse
	if errors.As(err, &respErr) && respErr.Response != nil {
		switch respErr.Response.StatusCode {
		case http.StatusNotFound:
			return fmt.Errorf("%w: %w", ErrNotFound, err)
		case http.StatusUnauthorized, http.StatusForbidden:
			return fmt.Errorf("%w: %w", ErrUnauthorized, err)
		}
	}
	return err
}
