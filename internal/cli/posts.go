package cli

import (
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/findyourpeers/peers/internal/app/models/dto"
	"github.com/findyourpeers/peers/internal/pkg/apperrors"
	"github.com/findyourpeers/peers/internal/pkg/validation"
	"github.com/spf13/cobra"
)

func newPostsCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "posts",
		Aliases: []string{"p"},
		Short:   "Read and write a group's posts",
	}
	cmd.AddCommand(
		newPostsListCmd(a),
		newPostsAddCmd(a),
		newPostsWatchCmd(a),
	)
	return cmd
}

func newPostsListCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "list <group-id>",
		Short: "List a group's posts, oldest first",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := a.authenticated()
			if err != nil {
				return err
			}
			resp, err := c.ListPosts(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			renderPosts(cmd.OutOrStdout(), resp.Posts)
			return nil
		},
	}
}

func newPostsAddCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "add <group-id> <text...>",
		Short: "Post to a group",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			text := strings.TrimSpace(strings.Join(args[1:], " "))
			if validation.IsBlank(text) {
				return apperrors.NewCustomError(apperrors.ErrEmptyPost, "Post text cannot be empty")
			}
			c, err := a.authenticated()
			if err != nil {
				return err
			}
			post, err := c.CreatePost(cmd.Context(), args[0], text)
			if err != nil {
				return err
			}
			renderPost(cmd.OutOrStdout(), *post)
			return nil
		},
	}
}

func newPostsWatchCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "watch <group-id>",
		Short: "Print new posts as they arrive until interrupted",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := a.authenticated()
			if err != nil {
				return err
			}
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			out := cmd.OutOrStdout()
			fmt.Fprintln(out, labelColor.Sprint("Watching for new posts, Ctrl-C to stop"))
			return c.WatchPosts(ctx, args[0], func(p dto.PostResponse) {
				renderPost(out, p)
			})
		},
	}
}
