// Package session persists the client's server URL and bearer token
// between command invocations. The stored token is handed to the API
// client at construction time; nothing else reads it.
package session

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Session is the client's durable state between command invocations.
// Token issuance and refresh belong to the external identity provider;
// this package only stores what it was given.
type Session struct {
	ServerURL string `yaml:"server_url,omitempty"`
	Token     string `yaml:"token,omitempty"`
}

// Authenticated reports whether a bearer token is stored.
func (s Session) Authenticated() bool {
	return s.Token != ""
}

// DefaultPath returns the per-user session file location.
func DefaultPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "quizhub.yaml"
	}
	return filepath.Join(dir, "quizhub", "session.yaml")
}

// Load reads the session file. A missing file is not an error: it yields
// the zero session, which is anonymous.
func Load(path string) (Session, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return Session{}, nil
		}
		return Session{}, err
	}

	var sess Session
	if err := yaml.Unmarshal(data, &sess); err != nil {
		return Session{}, err
	}
	return sess, nil
}

// Save writes the session file, creating parent directories as needed.
// The file holds a credential, hence 0600.
func Save(path string, sess Session) error {
	data, err := yaml.Marshal(sess)
	if err != nil {
		return err
	}

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o700); err != nil {
			return err
		}
	}
	return os.WriteFile(path, data, 0o600)
}
