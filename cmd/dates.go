package cmd

import (
	"context"
	"fmt"
	"strings"

	"github.com/ramanasai/daytodo/internal/view"
	"github.com/spf13/cobra"
)

var (
	clearAlias    bool
	confirmDelete bool
)

var datesCmd = &cobra.Command{
	Use:   "dates",
	Short: "List dates that have todos, pinned first",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		r, err := renderer()
		if err != nil {
			return err
		}
		return withSession(cmd.Context(), func(ctx context.Context, s *session) error {
			p := view.Build(s.svc.Today(), view.Data{Listing: s.svc.Dir.Build(ctx)}, s.svc.Formatter())
			out, err := r.RenderDates(p.Sidebar, p.Warning)
			if err != nil {
				return err
			}
			fmt.Print(out)
			return nil
		})
	},
}

var renameCmd = &cobra.Command{
	Use:   "rename <date> [name...]",
	Short: "Give a date a display name",
	Long: `Examples:
	daytodo rename today "Launch day"
	daytodo rename 2024-03-01 --clear`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		r, err := renderer()
		if err != nil {
			return err
		}
		key := resolveDate(args[0])
		return withSession(cmd.Context(), func(ctx context.Context, s *session) error {
			if clearAlias {
				if _, err := s.svc.API.DeleteAlias(ctx, key); err != nil {
					return fmt.Errorf("clear name of %s: %w", key, err)
				}
				fmt.Println(r.Success("Cleared name of " + key))
				return nil
			}
			out, err := s.svc.Menu.Rename(ctx, key, strings.Join(args[1:], " "))
			if err != nil {
				return err
			}
			fmt.Println(r.Success(out.Notice))
			return nil
		})
	},
}

var pinCmd = &cobra.Command{
	Use:   "pin <date>",
	Short: "Pin or unpin a date at the top of the list",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		r, err := renderer()
		if err != nil {
			return err
		}
		key := resolveDate(args[0])
		return withSession(cmd.Context(), func(ctx context.Context, s *session) error {
			out, err := s.svc.Menu.TogglePin(key, s.svc.Dir.DisplayName(ctx, key))
			if err != nil {
				return err
			}
			fmt.Println(r.Success(out.Notice))
			return nil
		})
	},
}

var copyDateCmd = &cobra.Command{
	Use:   "copy-date <date>",
	Short: "Copy every todo of a date into a new named list",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		r, err := renderer()
		if err != nil {
			return err
		}
		key := resolveDate(args[0])
		return withSession(cmd.Context(), func(ctx context.Context, s *session) error {
			out, err := s.svc.Menu.Copy(ctx, key, s.svc.Dir.DisplayName(ctx, key))
			if err != nil {
				return err
			}
			fmt.Println(r.Success(out.Notice))
			if out.Select != "" {
				fmt.Println(out.Select)
			}
			return nil
		})
	},
}

var deleteDateCmd = &cobra.Command{
	Use:   "delete-date <date>",
	Short: "Delete every todo of a date",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		key := resolveDate(args[0])
		if !confirmDelete {
			return fmt.Errorf("refusing to delete all todos of %s without --yes", key)
		}
		r, err := renderer()
		if err != nil {
			return err
		}
		return withSession(cmd.Context(), func(ctx context.Context, s *session) error {
			out, err := s.svc.Menu.Delete(ctx, key, s.svc.Dir.DisplayName(ctx, key), true, "", s.svc.Today())
			if err != nil {
				return err
			}
			fmt.Println(r.Success(out.Notice))
			return nil
		})
	},
}

func init() {
	renameCmd.Flags().BoolVar(&clearAlias, "clear", false, "Remove the name instead of setting one")
	deleteDateCmd.Flags().BoolVarP(&confirmDelete, "yes", "y", false, "Confirm the deletion")
}
