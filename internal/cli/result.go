package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"quizhub/internal/attempt"
)

func newResultCmd(o *options) *cobra.Command {
	return &cobra.Command{
		Use:   "result <attempt-id>",
		Short: "Show a past attempt's scored result",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			attemptID, err := parseID(args[0], "attempt id")
			if err != nil {
				return err
			}
			a, err := o.newApp(cmd)
			if err != nil {
				return err
			}
			return runResult(cmd.Context(), a, attemptID)
		},
	}
}

// runResult is the historical path: fetch by attempt identifier, decode
// through the shape normalizer, render. A failed fetch ends in the
// terminal "no result" state rather than an error exit, matching how the
// submission path never leaves the user without a page.
func runResult(ctx context.Context, a *app, attemptID int64) error {
	fmt.Fprintln(a.out, "Loading...")
	raw, err := a.client.GetAttempt(ctx, attemptID)
	if err != nil {
		a.log.Error("fetching attempt", "attempt_id", attemptID, "error", describeClientError(a, err))
		fmt.Fprintln(a.out, "No result to display.")
		return nil
	}

	result, err := attempt.Decode(raw, attemptID)
	if err != nil {
		a.log.Error("decoding attempt", "attempt_id", attemptID, "error", err)
		fmt.Fprintln(a.out, "No result to display.")
		return nil
	}

	fmt.Fprintln(a.out)
	attempt.Render(a.out, result)
	return nil
}
