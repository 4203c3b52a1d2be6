package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"quizhub/internal/api"
)

func newCreateCmd(o *options) *cobra.Command {
	return &cobra.Command{
		Use:   "create",
		Short: "Create a new quiz",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := o.newApp(cmd)
			if err != nil {
				return err
			}
			return runCreate(cmd.Context(), a)
		},
	}
}

func newEditCmd(o *options) *cobra.Command {
	return &cobra.Command{
		Use:   "edit <quiz-id>",
		Short: "Edit a quiz you created",
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
			return runEdit(cmd.Context(), a, quizID)
		},
	}
}

func newDeleteCmd(o *options) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <quiz-id>",
		Short: "Delete a quiz you created",
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
			return runDelete(cmd.Context(), a, quizID)
		},
	}
}

func runCreate(ctx context.Context, a *app) error {
	title, err := promptRequired(a.in, a.out, "Title: ")
	if err != nil {
		return err
	}
	description, err := promptLine(a.in, a.out, "Description (optional): ")
	if err != nil {
		return err
	}

	var questions []api.QuestionInput
	for {
		label := fmt.Sprintf("Question %d", len(questions)+1)
		if len(questions) > 0 {
			label += " (empty to finish)"
		}
		text, err := promptLine(a.in, a.out, label+": ")
		if err != nil {
			return err
		}
		if text == "" {
			if len(questions) == 0 {
				fmt.Fprintln(a.out, "At least one question is required.")
				continue
			}
			break
		}
		answer, err := promptRequired(a.in, a.out, "Correct answer: ")
		if err != nil {
			return err
		}
		questions = append(questions, api.QuestionInput{Text: text, CorrectAnswer: answer})
	}

	created, err := a.client.CreateQuiz(ctx, api.QuizInput{
		Title:       title,
		Description: description,
		Questions:   questions,
	})
	if err != nil {
		return describeClientError(a, err)
	}

	fmt.Fprintf(a.out, "Created quiz #%d: %s\n", created.ID, created.Title)
	return nil
}

func runEdit(ctx context.Context, a *app, quizID int64) error {
	quiz, err := a.client.GetQuiz(ctx, quizID)
	if err != nil {
		return describeClientError(a, err)
	}

	fmt.Fprintf(a.out, "Editing quiz #%d. Press enter to keep the current value.\n\n", quiz.ID)

	title, err := promptLine(a.in, a.out, fmt.Sprintf("Title [%s]: ", quiz.Title))
	if err != nil {
		return err
	}
	if title == "" {
		title = quiz.Title
	}
	description, err := promptLine(a.in, a.out, fmt.Sprintf("Description [%s]: ", quiz.Description))
	if err != nil {
		return err
	}
	if description == "" {
		description = quiz.Description
	}

	var questions []api.QuestionInput
	for idx, question := range quiz.Questions {
		fmt.Fprintf(a.out, "\nQuestion %d: %s\n", idx+1, question.Text)
		text, err := promptLine(a.in, a.out, "New text (enter keeps, '-' removes): ")
		if err != nil {
			return err
		}
		if text == "-" {
			continue
		}
		if text == "" {
			text = question.Text
		}

		// The detail payload only carries correct answers for the creator.
		current := ""
		if question.CorrectAnswer != nil {
			current = *question.CorrectAnswer
		}
		answer, err := promptLine(a.in, a.out, fmt.Sprintf("Correct answer [%s]: ", current))
		if err != nil {
			return err
		}
		if answer == "" {
			answer = current
		}
		questions = append(questions, api.QuestionInput{Text: text, CorrectAnswer: answer})
	}

	for {
		text, err := promptLine(a.in, a.out, "\nAdd question (empty to finish): ")
		if err != nil {
			return err
		}
		if text == "" {
			break
		}
		answer, err := promptRequired(a.in, a.out, "Correct answer: ")
		if err != nil {
			return err
		}
		questions = append(questions, api.QuestionInput{Text: text, CorrectAnswer: answer})
	}

	if len(questions) == 0 {
		return fmt.Errorf("a quiz needs at least one question")
	}

	updated, err := a.client.UpdateQuiz(ctx, quizID, api.QuizInput{
		Title:       title,
		Description: description,
		Questions:   questions,
	})
	if err != nil {
		return describeClientError(a, err)
	}

	fmt.Fprintf(a.out, "\nSaved quiz #%d: %s\n", updated.ID, updated.Title)
	return nil
}

// runDelete confirms, deletes, then reloads the authored listing rather
// than editing it in place.
func runDelete(ctx context.Context, a *app, quizID int64) error {
	confirmed, err := promptYesNo(a.in, a.out, "Are you sure you want to delete this quiz? (yes/no): ")
	if err != nil {
		return err
	}
	if !confirmed {
		return nil
	}

	if err := a.client.DeleteQuiz(ctx, quizID); err != nil {
		return describeClientError(a, err)
	}

	fmt.Fprintf(a.out, "Deleted quiz #%d.\n\n", quizID)
	return runMyQuizzes(ctx, a)
}
