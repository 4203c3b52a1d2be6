package cli

import (
	"bufio"
	"bytes"
	"io"
	"log/slog"
	"strings"

	"quizhub/internal/api"
	"quizhub/internal/session"
)

func newTestApp(serverURL, token, input string) (*app, *bytes.Buffer) {
	var out bytes.Buffer
	a := &app{
		sess:      session.Session{ServerURL: serverURL, Token: token},
		serverURL: serverURL,
		in:        bufio.NewReader(strings.NewReader(input)),
		out:       &out,
		log:       slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	a.client = api.New(serverURL, nil, api.TokenFunc(func() string {
		return a.sess.Token
	}))
	return a, &out
}
