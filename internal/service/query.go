package service

import (
	"fmt"
	"strings"

	"github.com/compozy/prscope/internal/domain"
)

// BuildSearchQuery builds the issue search query for a filtered category.
// Categories without a filter clause keep an empty slot, so the query
// reduces to every open pull request in the repository.
func BuildSearchQuery(category domain.Category, login, fullName string) string {
	var filter string
	switch category {
	case domain.CategoryRequestReview:
		filter = "review-requested:" + login
	case domain.CategoryAssignedToMe:
		filter = "assignee:" + login
	case domain.CategoryMine:
		filter = "author:" + login
	default:
		// Mention, LocalPullRequest and unknown values have no filter yet.
		filter = ""
	}
	return fmt.Sprintf("is:open %s type:pr repo:%s", filter, fullName)
}

func hasNextPage(link string) bool {
	return strings.Contains(link, `rel="next"`)
}
