package cmd

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/compozy/prscope/internal/usecase"
	"github.com/spf13/cobra"
)

// newGetCmd creates the get command
func newGetCmd(deps containerFactory) *cobra.Command {
	var getOutput string
	cmd := &cobra.Command{
		Use:   "get <number>",
		Short: "Show a single pull request",
		Args:  cobra.ExactArgs(1),
		PreRunE: func(_ *cobra.Command, _ []string) error {
			return validateOutput(getOutput)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			number, err := strconv.Atoi(strings.TrimPrefix(args[0], "#"))
			if err != nil {
				return fmt.Errorf("invalid pull request number %q", args[0])
			}
			c, err := deps()
			if err != nil {
				return err
			}
			defer func() { _ = c.logger.Sync() }()
			uc := &usecase.ResolvePullRequestUseCase{Service: c.prSvc}
			pr, err := uc.Execute(cmd.Context(), number)
			if err != nil {
				return err
			}
			return writePullRequest(cmd.OutOrStdout(), getOutput, newPullRequestView(pr))
		},
	}

	cmd.Flags().StringVarP(&getOutput, "output", "o", outputTable, "Output format: table or json")
	return cmd
}
