package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

func newMyCmd(o *options) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "my",
		Short: "Your quizzes and results",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "quizzes",
		Short: "List quizzes you created",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := o.newApp(cmd)
			if err != nil {
				return err
			}
			return runMyQuizzes(cmd.Context(), a)
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "results",
		Short: "List your past quiz attempts",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := o.newApp(cmd)
			if err != nil {
				return err
			}
			return runMyResults(cmd.Context(), a)
		},
	})

	return cmd
}

func runMyQuizzes(ctx context.Context, a *app) error {
	quizzes, err := a.client.ListMyQuizzes(ctx)
	if err != nil {
		return describeClientError(a, err)
	}

	if len(quizzes) == 0 {
		fmt.Fprintln(a.out, "You haven't created any quizzes yet.")
		return nil
	}

	fmt.Fprintln(a.out, "My quizzes:")
	for _, quiz := range quizzes {
		fmt.Fprintf(a.out, "\n#%d %s\n", quiz.ID, quiz.Title)
		if quiz.Description != "" {
			fmt.Fprintf(a.out, "   %s\n", quiz.Description)
		}
		fmt.Fprintf(a.out, "   Edit: quizhub edit %d   Delete: quizhub delete %d\n", quiz.ID, quiz.ID)
	}
	return nil
}

func runMyResults(ctx context.Context, a *app) error {
	results, err := a.client.MyResults(ctx)
	if err != nil {
		return describeClientError(a, err)
	}

	if len(results) == 0 {
		fmt.Fprintln(a.out, "No results yet.")
		return nil
	}

	fmt.Fprintln(a.out, "My quiz results:")
	for _, item := range results {
		fmt.Fprintf(a.out, "\n%s: score %d/%d\n", item.QuizTitle, item.Score, item.Total)
		if item.CreatedAt != "" {
			fmt.Fprintf(a.out, "   Taken on %s\n", item.CreatedAt)
		}
		fmt.Fprintf(a.out, "   Details: quizhub result %d\n", item.ID)
	}
	return nil
}
