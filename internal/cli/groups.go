package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/findyourpeers/peers/internal/app/models"
	"github.com/findyourpeers/peers/internal/app/models/dto"
	"github.com/findyourpeers/peers/internal/pkg/apperrors"
	"github.com/findyourpeers/peers/internal/pkg/validation"
	"github.com/spf13/cobra"
)

func newGroupsCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "groups",
		Aliases: []string{"g"},
		Short:   "Browse, create and follow groups",
	}
	cmd.AddCommand(
		newGroupsListCmd(a),
		newGroupsShowCmd(a),
		newGroupsCreateCmd(a),
		newGroupsFollowedCmd(a),
		newGroupsFavoriteCmd(a),
	)
	return cmd
}

func newGroupsListCmd(a *app) *cobra.Command {
	var category string
	var page, size int

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List all groups, newest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := a.authenticated()
			if err != nil {
				return err
			}
			resp, err := c.ListGroups(cmd.Context(), category, page, size)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			renderGroups(out, resp.Groups)
			fmt.Fprintf(out, "Page %d of %d, %d groups\n", resp.CurrentPage, resp.TotalPages, resp.TotalItems)
			return nil
		},
	}

	cmd.Flags().StringVarP(&category, "category", "c", "", "study, club or event")
	cmd.Flags().IntVar(&page, "page", 0, "page number")
	cmd.Flags().IntVar(&size, "size", 0, "page size")
	return cmd
}

func newGroupsShowCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "show <group-id>",
		Short: "Show a group, whether you follow it, and its posts",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := a.authenticated()
			if err != nil {
				return err
			}
			ctx := cmd.Context()
			group, err := c.GetGroup(ctx, args[0])
			if err != nil {
				return err
			}
			status, err := c.FavoriteStatus(ctx, args[0])
			if err != nil {
				return err
			}
			posts, err := c.ListPosts(ctx, args[0])
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			renderGroup(out, group, status.Favorited)
			fmt.Fprintln(out)
			renderPosts(out, posts.Posts)
			return nil
		},
	}
}

func newGroupsCreateCmd(a *app) *cobra.Command {
	var req dto.CreateGroupRequest
	var photoPath string

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a group with a photo",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := a.authenticated()
			if err != nil {
				return err
			}

			// Same rule the server applies, checked before reading the photo.
			if validation.IsBlank(req.GroupName) || validation.IsBlank(req.Topic) ||
				validation.IsBlank(req.Description) || photoPath == "" {
				return apperrors.NewCustomError(apperrors.ErrMissingFields, "All fields are required along with a photo.")
			}

			photo, err := os.Open(photoPath)
			if err != nil {
				return fmt.Errorf("error opening photo: %w", err)
			}
			defer photo.Close()

			group, err := c.CreateGroup(cmd.Context(), req, filepath.Base(photoPath), photo)
			if err != nil {
				return err
			}
			outputSuccess(cmd.OutOrStdout(), "Created group %s (%s)", group.GroupName, group.ID)
			return nil
		},
	}

	cmd.Flags().StringVar(&req.GroupName, "name", "", "group name")
	cmd.Flags().StringVar(&req.Topic, "topic", "", "topic")
	cmd.Flags().StringVar(&req.Description, "description", "", "description")
	cmd.Flags().StringVarP(&req.Category, "category", "c", string(models.DefaultCategory), "study, club or event")
	cmd.Flags().StringVar(&photoPath, "photo", "", "path to a JPEG, PNG or GIF photo")
	return cmd
}

func newGroupsFollowedCmd(a *app) *cobra.Command {
	var category string

	cmd := &cobra.Command{
		Use:   "followed",
		Short: "List the groups you follow",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			selected, err := validation.OptionalCategory(category)
			if err != nil {
				return err
			}
			c, err := a.authenticated()
			if err != nil {
				return err
			}

			// The full set is fetched once and narrowed locally so switching
			// categories never loses groups.
			resp, err := c.ListFollowedGroups(cmd.Context(), "")
			if err != nil {
				return err
			}
			followed := models.FilterByCategory(toModels(resp.Groups), selected)
			renderGroups(cmd.OutOrStdout(), dto.FromGroups(followed))
			return nil
		},
	}

	cmd.Flags().StringVarP(&category, "category", "c", "", "study, club or event")
	return cmd
}

func newGroupsFavoriteCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "favorite <group-id>",
		Short: "Follow a group, or unfollow it if you already do",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := a.authenticated()
			if err != nil {
				return err
			}
			ctx := cmd.Context()

			status, err := c.FavoriteStatus(ctx, args[0])
			if err != nil {
				return err
			}
			if status.Favorited {
				status, err = c.RemoveFavorite(ctx, args[0])
			} else {
				status, err = c.AddFavorite(ctx, args[0])
			}
			if err != nil {
				return err
			}

			if status.Favorited {
				outputSuccess(cmd.OutOrStdout(), "Following %s", args[0])
			} else {
				outputSuccess(cmd.OutOrStdout(), "No longer following %s", args[0])
			}
			return nil
		},
	}
}

func toModels(groups []dto.GroupResponse) []models.Group {
	out := make([]models.Group, 0, len(groups))
	for _, g := range groups {
		out = append(out, models.Group{
			ID:            g.ID,
			GroupName:     g.GroupName,
			Topic:         g.Topic,
			Description:   g.Description,
			Category:      models.Category(g.Category),
			CollegeName:   g.CollegeName,
			CreatedBy:     g.CreatedBy,
			CreatorID:     g.CreatorID,
			DateCreated:   g.DateCreated,
			GroupPhotoURL: g.GroupPhotoURL,
		})
	}
	return out
}
