package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"quizhub/internal/api"
)

func newQuizzesCmd(o *options) *cobra.Command {
	return &cobra.Command{
		Use:   "quizzes",
		Short: "List public quizzes",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := o.newApp(cmd)
			if err != nil {
				return err
			}
			return runQuizzes(cmd.Context(), a)
		},
	}
}

// quizEntry is one home-listing row: a public quiz plus the caller's
// latest attempt, when one exists.
type quizEntry struct {
	quiz    api.QuizSummary
	attempt api.AttemptSummary
}

func runQuizzes(ctx context.Context, a *app) error {
	quizzes, err := a.client.ListPublicQuizzes(ctx)
	if err != nil {
		return describeClientError(a, err)
	}

	entries := fetchEntries(ctx, a, quizzes)

	if len(entries) == 0 {
		fmt.Fprintln(a.out, "No quizzes available.")
		return nil
	}

	fmt.Fprintln(a.out, "Available quizzes:")
	for _, entry := range entries {
		fmt.Fprintf(a.out, "\n#%d %s\n", entry.quiz.ID, entry.quiz.Title)
		if entry.quiz.Description != "" {
			fmt.Fprintf(a.out, "   %s\n", entry.quiz.Description)
		}
		if entry.attempt.Attempted {
			fmt.Fprintf(a.out, "   Completed with score %d/%d. View results: quizhub result %d\n",
				entry.attempt.Score, entry.attempt.Total, entry.attempt.AttemptID)
		} else {
			fmt.Fprintf(a.out, "   Start: quizhub take %d\n", entry.quiz.ID)
		}
	}
	return nil
}

// fetchEntries fans out one latest-attempt lookup per quiz and joins on
// all of them. Each lookup fails independently: a 404, auth rejection or
// network error on one quiz marks only that entry as not attempted and
// never blanks the rest of the listing.
func fetchEntries(ctx context.Context, a *app, quizzes []api.QuizSummary) []quizEntry {
	entries := make([]quizEntry, len(quizzes))
	for idx, quiz := range quizzes {
		entries[idx].quiz = quiz
	}

	// Anonymous callers have no attempt history to probe.
	if !a.sess.Authenticated() {
		return entries
	}

	var group errgroup.Group
	for idx := range entries {
		idx := idx
		group.Go(func() error {
			summary, err := a.client.MyLatestAttempt(ctx, entries[idx].quiz.ID)
			if err != nil {
				a.log.Debug("latest attempt lookup failed", "quiz_id", entries[idx].quiz.ID, "error", err)
				return nil
			}
			entries[idx].attempt = summary
			return nil
		})
	}
	_ = group.Wait()

	return entries
}
