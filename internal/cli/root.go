// Package cli implements the peers command-line client.
package cli

import (
	"errors"
	"os"

	"github.com/findyourpeers/peers/internal/client"
	"github.com/spf13/cobra"
)

var errNotLoggedIn = errors.New("not logged in; run `peers login` first")

// app carries the state shared by every command.
type app struct {
	host        string
	sessionPath string
	session     *Session
}

// NewRootCmd builds the peers command tree.
func NewRootCmd() *cobra.Command {
	a := &app{}

	root := &cobra.Command{
		Use:           "peers [command] [flags]",
		Short:         "findYourPeers: find and follow study groups, clubs and events",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.load()
		},
	}

	root.PersistentFlags().StringVar(&a.host, "host", os.Getenv("PEERS_HOST"), "API host, e.g. "+DefaultHost)
	sessionPath := os.Getenv("PEERS_SESSION")
	if sessionPath == "" {
		sessionPath = DefaultSessionPath()
	}
	root.PersistentFlags().StringVar(&a.sessionPath, "session", sessionPath, "path to the session file")

	root.AddCommand(
		newRegisterCmd(a),
		newLoginCmd(a),
		newLogoutCmd(a),
		newWhoamiCmd(a),
		newGroupsCmd(a),
		newPostsCmd(a),
	)
	return root
}

// Execute runs the CLI and exits non-zero on failure.
func Execute() {
	root := NewRootCmd()
	if err := root.Execute(); err != nil {
		outputError(root.ErrOrStderr(), err)
		os.Exit(1)
	}
}

func (a *app) load() error {
	s, err := LoadSession(a.sessionPath)
	if err != nil {
		return err
	}
	a.session = s
	return nil
}

// resolvedHost prefers the flag, then the host saved at login.
func (a *app) resolvedHost() string {
	if a.host != "" {
		return a.host
	}
	if a.session != nil && a.session.Host != "" {
		return a.session.Host
	}
	return DefaultHost
}

// anonymous returns a client without credentials.
func (a *app) anonymous() *client.Client {
	return client.New(a.resolvedHost())
}

// authenticated returns a client carrying the saved token.
func (a *app) authenticated() (*client.Client, error) {
	if a.session == nil || a.session.Token == "" {
		return nil, errNotLoggedIn
	}
	return client.New(a.resolvedHost(), client.WithToken(a.session.Token)), nil
}
