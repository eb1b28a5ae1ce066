package cmd

import (
	"fmt"

	"github.com/compozy/prscope/internal/domain"
	"github.com/compozy/prscope/internal/usecase"
	"github.com/spf13/cobra"
)

// newListCmd creates the list command
func newListCmd(deps containerFactory) *cobra.Command {
	var (
		listCategory string
		listPage     int
		listAllPages bool
		listMaxPages int
		listOutput   string
	)
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List pull requests of the repository",
		Long: `List one page of pull requests for a category.

Categories: request-review, assigned-to-me, mine, mention, all, local.
The all category uses the pull request listing endpoint; every other
category searches for open pull requests and fetches each hit in full.
Pull requests whose source branch was deleted are left out.`,
		Args: cobra.NoArgs,
		PreRunE: func(_ *cobra.Command, _ []string) error {
			if listAllPages && listPage != 0 {
				return fmt.Errorf("--page and --all-pages cannot be combined")
			}
			if listPage < 0 {
				return fmt.Errorf("--page must be positive")
			}
			return validateOutput(listOutput)
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			category, err := domain.ParseCategory(listCategory)
			if err != nil {
				return err
			}
			c, err := deps()
			if err != nil {
				return err
			}
			defer func() { _ = c.logger.Sync() }()
			view := pageView{Remote: c.prSvc.Remote().String(), Category: category.String()}
			if listAllPages {
				uc := &usecase.CollectPullRequestsUseCase{Service: c.prSvc, MaxPages: listMaxPages}
				prs, truncated, err := uc.Execute(cmd.Context(), category)
				if err != nil {
					return err
				}
				view.PullRequests = toViews(prs)
				view.HasMorePages = truncated
			} else {
				result, err := c.prSvc.ListPullRequests(cmd.Context(), category, listPage)
				if err != nil {
					return err
				}
				view.PullRequests = toViews(result.PullRequests)
				view.HasMorePages = result.HasMorePages
			}
			return writePullRequests(cmd.OutOrStdout(), listOutput, view)
		},
	}

	cmd.Flags().StringVarP(&listCategory, "category", "c", domain.CategoryAll.String(), "Category to list")
	cmd.Flags().IntVarP(&listPage, "page", "p", 0, "Page to fetch (defaults to the first page)")
	cmd.Flags().BoolVar(&listAllPages, "all-pages", false, "Walk every page of the category")
	cmd.Flags().IntVar(&listMaxPages, "max-pages", 0, "Stop --all-pages after this many pages (0 means no limit)")
	cmd.Flags().StringVarP(&listOutput, "output", "o", outputTable, "Output format: table or json")
	return cmd
}

func toViews(prs []*domain.PullRequest) []pullRequestView {
	views := make([]pullRequestView, 0, len(prs))
	for _, pr := range prs {
		views = append(views, newPullRequestView(pr))
	}
	return views
}
