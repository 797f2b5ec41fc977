package cli

import (
	"github.com/findyourpeers/peers/internal/app/models/dto"
	"github.com/spf13/cobra"
)

func newRegisterCmd(a *app) *cobra.Command {
	var req dto.RegisterRequest

	cmd := &cobra.Command{
		Use:   "register",
		Short: "Create an account and log in",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			resp, err := a.anonymous().Register(cmd.Context(), req)
			if err != nil {
				return err
			}
			if err := a.remember(resp); err != nil {
				return err
			}
			outputSuccess(cmd.OutOrStdout(), "Registered and signed in as %s <%s>", resp.User.FullName, resp.User.Email)
			return nil
		},
	}

	cmd.Flags().StringVar(&req.Email, "email", "", "email address")
	cmd.Flags().StringVar(&req.Password, "password", "", "password, at least 8 characters")
	cmd.Flags().StringVar(&req.FullName, "name", "", "full name shown on groups and posts")
	cmd.Flags().StringVar(&req.CollegeName, "college", "", "college name")
	for _, f := range []string{"email", "password", "name", "college"} {
		_ = cmd.MarkFlagRequired(f)
	}
	return cmd
}

func newLoginCmd(a *app) *cobra.Command {
	var email, password string

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Sign in and save the session",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			resp, err := a.anonymous().Login(cmd.Context(), email, password)
			if err != nil {
				return err
			}
			if err := a.remember(resp); err != nil {
				return err
			}
			outputSuccess(cmd.OutOrStdout(), "Signed in as %s <%s>", resp.User.FullName, resp.User.Email)
			return nil
		},
	}

	cmd.Flags().StringVar(&email, "email", "", "email address")
	cmd.Flags().StringVar(&password, "password", "", "password")
	_ = cmd.MarkFlagRequired("email")
	_ = cmd.MarkFlagRequired("password")
	return cmd
}

func newLogoutCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Forget the saved session",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := ClearSession(a.sessionPath); err != nil {
				return err
			}
			outputSuccess(cmd.OutOrStdout(), "Signed out")
			return nil
		},
	}
}

func newWhoamiCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Show the signed-in user",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := a.authenticated()
			if err != nil {
				return err
			}
			me, err := c.Me(cmd.Context())
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			renderField(out, "Name", me.FullName)
			renderField(out, "Email", me.Email)
			renderField(out, "College", me.CollegeName)
			renderField(out, "Host", a.resolvedHost())
			return nil
		},
	}
}

// remember saves the token and profile returned by register or login.
func (a *app) remember(resp *dto.AuthResponse) error {
	a.session = &Session{
		Host:        a.resolvedHost(),
		Token:       resp.Token.AccessToken,
		Email:       resp.User.Email,
		FullName:    resp.User.FullName,
		CollegeName: resp.User.CollegeName,
	}
	return a.session.Save(a.sessionPath)
}
