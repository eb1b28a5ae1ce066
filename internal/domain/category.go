package domain

import (
	"fmt"
	"strings"
)

// Category selects which subset of pull requests to list.
type Category int

const (
	CategoryRequestReview Category = iota
	CategoryAssignedToMe
	CategoryMine
	CategoryMention
	CategoryAll
	CategoryLocalPullRequest
)

var categoryNames = map[Category]string{
	CategoryRequestReview:    "request-review",
	CategoryAssignedToMe:     "assigned-to-me",
	CategoryMine:             "mine",
	CategoryMention:          "mention",
	CategoryAll:              "all",
	CategoryLocalPullRequest: "local",
}

// Categories returns every known category in declaration order.
func Categories() []Category {
	return []Category{
		CategoryRequestReview,
		CategoryAssignedToMe,
		CategoryMine,
		CategoryMention,
		CategoryAll,
		CategoryLocalPullRequest,
	}
}

func (c Category) String() string {
	if name, ok := categoryNames[c]; ok {
		return name
	}
	return fmt.Sprintf("category(%d)", int(c))
}

// ParseCategory resolves a category from its name, case-insensitively.
func ParseCategory(s string) (Category, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	for c, name := range categoryNames {
		if name == s {
			return c, nil
		}
	}
	return 0, fmt.Errorf("unknown category %q", s)
}
