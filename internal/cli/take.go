package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"quizhub/internal/attempt"
)

func newTakeCmd(o *options) *cobra.Command {
	return &cobra.Command{
		Use:   "take <quiz-id>",
		Short: "Take a quiz and see your scored result",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			quizID, err := parseID(args[0], "quiz id")
			if err != nil {
				return err
			}
			a, err := o.newApp(cmd)
			if err != nil {
				return err
			}
			return runTake(cmd.Context(), a, quizID)
		},
	}
}

func runTake(ctx context.Context, a *app, quizID int64) error {
	fmt.Fprintln(a.out, "Loading quiz...")
	quiz, err := a.client.GetQuiz(ctx, quizID)
	if err != nil {
		return describeClientError(a, err)
	}

	fmt.Fprintf(a.out, "\n%s\n", quiz.Title)
	if quiz.Description != "" {
		fmt.Fprintln(a.out, quiz.Description)
	}

	draft := attempt.NewDraft(len(quiz.Questions))
	for idx, question := range quiz.Questions {
		fmt.Fprintf(a.out, "\n%d. %s\n", idx+1, question.Text)
		answer, err := promptLine(a.in, a.out, "Your answer: ")
		if err != nil {
			return err
		}
		draft.Set(idx, answer)
	}

	// Submission failures keep the draft intact so the same answers can be
	// resubmitted; nothing is cleared until the backend accepts them.
	for {
		answers := attempt.BuildSubmission(quiz.Questions, draft)
		raw, err := a.client.SubmitQuiz(ctx, quizID, answers)
		if err != nil {
			a.log.Error("submit failed", "quiz_id", quizID, "error", describeClientError(a, err))
			retry, promptErr := promptYesNo(a.in, a.out, "Submission failed. Try again? (yes/no): ")
			if promptErr != nil {
				return promptErr
			}
			if !retry {
				return nil
			}
			continue
		}

		result, err := attempt.Decode(raw, 0)
		if err != nil {
			return fmt.Errorf("decoding submission result: %w", err)
		}
		fmt.Fprintln(a.out)
		attempt.Render(a.out, result)
		return nil
	}
}
