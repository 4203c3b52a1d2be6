// Package cli implements the quizhub command tree: browsing quizzes,
// taking them, reviewing results, and authoring.
package cli

import (
	"bufio"
	"io"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/spf13/cobra"

	"quizhub/internal/api"
	"quizhub/internal/session"
)

// Execute runs the CLI.
func Execute() error {
	return newRootCmd().Execute()
}

type options struct {
	serverURL  string
	configPath string
	timeout    time.Duration
	verbose    bool
}

func newRootCmd() *cobra.Command {
	opts := &options{}

	envServer := os.Getenv("QUIZHUB_SERVER")
	if envServer == "" {
		envServer = api.DefaultBaseURL
	}
	envConfig := os.Getenv("QUIZHUB_CONFIG")
	if envConfig == "" {
		envConfig = session.DefaultPath()
	}

	cmd := &cobra.Command{
		Use:           "quizhub",
		Short:         "Browse, take and author quizzes from the terminal",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.PersistentFlags().StringVar(&opts.serverURL, "server", envServer, "quiz backend base URL")
	cmd.PersistentFlags().StringVar(&opts.configPath, "config", envConfig, "path to the session file")
	cmd.PersistentFlags().DurationVar(&opts.timeout, "timeout", 10*time.Second, "HTTP timeout")
	cmd.PersistentFlags().BoolVar(&opts.verbose, "verbose", false, "enable debug logging")

	cmd.AddCommand(newQuizzesCmd(opts))
	cmd.AddCommand(newTakeCmd(opts))
	cmd.AddCommand(newResultCmd(opts))
	cmd.AddCommand(newMyCmd(opts))
	cmd.AddCommand(newCreateCmd(opts))
	cmd.AddCommand(newEditCmd(opts))
	cmd.AddCommand(newDeleteCmd(opts))
	cmd.AddCommand(newLoginCmd(opts))
	cmd.AddCommand(newLogoutCmd(opts))

	return cmd
}

// app bundles the per-invocation state every command needs: the API
// client bound to the loaded session, the terminal streams, and a logger.
type app struct {
	client    *api.Client
	sess      session.Session
	cfgPath   string
	serverURL string
	in        *bufio.Reader
	out       io.Writer
	log       *slog.Logger
}

func (o *options) newApp(cmd *cobra.Command) (*app, error) {
	sess, err := session.Load(o.configPath)
	if err != nil {
		return nil, err
	}

	// An explicit --server wins; otherwise prefer the URL remembered at
	// login so tokens are used against the backend that issued them.
	serverURL := o.serverURL
	if !cmd.Root().PersistentFlags().Changed("server") && sess.ServerURL != "" {
		serverURL = sess.ServerURL
	}

	a := &app{
		sess:      sess,
		cfgPath:   o.configPath,
		serverURL: serverURL,
		in:        bufio.NewReader(cmd.InOrStdin()),
		out:       cmd.OutOrStdout(),
		log:       newLogger(cmd.ErrOrStderr(), o.verbose),
	}
	a.client = api.New(serverURL, &http.Client{Timeout: o.timeout}, api.TokenFunc(func() string {
		return a.sess.Token
	}))
	return a, nil
}

func newLogger(w io.Writer, verbose bool) *slog.Logger {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}
