package domain

import (
	"fmt"
	"strings"
)

// Remote identifies a hosted repository.
type Remote struct {
	owner string
	name  string
}

// NewRemote creates a Remote. Owner and name must be non-empty.
func NewRemote(owner, name string) (Remote, error) {
	owner = strings.TrimSpace(owner)
	name = strings.TrimSpace(name)
	if owner == "" {
		return Remote{}, fmt.Errorf("owner cannot be empty")
	}
	if name == "" {
		return Remote{}, fmt.Errorf("repository name cannot be empty")
	}
	return Remote{owner: owner, name: name}, nil
}

// Owner returns the repository owner.
func (r Remote) Owner() string {
	return r.owner
}

// Name returns the repository name.
func (r Remote) Name() string {
	return r.name
}

// String returns the owner/name slug.
func (r Remote) String() string {
	return r.owner + "/" + r.name
}
