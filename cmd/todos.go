package cmd

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/ramanasai/daytodo/internal/app"
	"github.com/ramanasai/daytodo/internal/output"
	"github.com/spf13/cobra"
)

var (
	dateFlag string
	page     int
	limit    int
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "Show the todos of one date",
	Long: `Examples:
	daytodo list                       # today
	daytodo list --date yesterday
	daytodo list --date 2024-03-01 --format table
	daytodo list --date copy-20240301-1709251200000 --format json`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		r, err := renderer()
		if err != nil {
			return err
		}
		return withSession(cmd.Context(), func(ctx context.Context, s *session) error {
			p, err := s.svc.Page(ctx, app.NewState(resolveDate(dateFlag)))
			if err != nil {
				return err
			}
			out, err := r.RenderPage(p, output.NewPagination(len(p.Rows), limit, page))
			if err != nil {
				return err
			}
			fmt.Print(out)
			return nil
		})
	},
}

var addCmd = &cobra.Command{
	Use:   "add <text...>",
	Short: "Add a todo",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		r, err := renderer()
		if err != nil {
			return err
		}
		return withSession(cmd.Context(), func(ctx context.Context, s *session) error {
			date := resolveDate(dateFlag)
			t, err := s.svc.Add(ctx, date, strings.Join(args, " "))
			if err != nil {
				return err
			}
			fmt.Println(r.Success(fmt.Sprintf("Added #%d to %s", t.ID, s.svc.Dir.DisplayName(ctx, date))))
			return nil
		})
	},
}

var editCmd = &cobra.Command{
	Use:   "edit <id> <text...>",
	Short: "Replace the text of a todo",
	Args:  cobra.MinimumNArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseID(args[0])
		if err != nil {
			return err
		}
		r, err := renderer()
		if err != nil {
			return err
		}
		return withSession(cmd.Context(), func(ctx context.Context, s *session) error {
			if _, err := s.svc.Edit(ctx, id, resolveDate(dateFlag), strings.Join(args[1:], " ")); err != nil {
				return err
			}
			fmt.Println(r.Success(fmt.Sprintf("Updated #%d", id)))
			return nil
		})
	},
}

var toggleCmd = &cobra.Command{
	Use:     "toggle <id>",
	Aliases: []string{"done"},
	Short:   "Flip a todo between open and done",
	Args:    cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseID(args[0])
		if err != nil {
			return err
		}
		r, err := renderer()
		if err != nil {
			return err
		}
		return withSession(cmd.Context(), func(ctx context.Context, s *session) error {
			t, err := s.svc.ToggleComplete(ctx, id, resolveDate(dateFlag))
			if err != nil {
				return err
			}
			msg := fmt.Sprintf("Reopened #%d", id)
			if t.Completed {
				msg = fmt.Sprintf("Completed #%d", id)
			}
			fmt.Println(r.Success(msg))
			return nil
		})
	},
}

var rmCmd = &cobra.Command{
	Use:   "rm <id>",
	Short: "Delete a todo",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseID(args[0])
		if err != nil {
			return err
		}
		r, err := renderer()
		if err != nil {
			return err
		}
		return withSession(cmd.Context(), func(ctx context.Context, s *session) error {
			if err := s.svc.Delete(ctx, id, resolveDate(dateFlag)); err != nil {
				return err
			}
			fmt.Println(r.Success(fmt.Sprintf("Deleted #%d", id)))
			return nil
		})
	},
}

var dupCmd = &cobra.Command{
	Use:   "dup <id>",
	Short: "Duplicate a todo within its date",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseID(args[0])
		if err != nil {
			return err
		}
		r, err := renderer()
		if err != nil {
			return err
		}
		return withSession(cmd.Context(), func(ctx context.Context, s *session) error {
			t, err := s.svc.Duplicate(ctx, id, resolveDate(dateFlag))
			if err != nil {
				return err
			}
			fmt.Println(r.Success(fmt.Sprintf("Duplicated #%d as #%d", id, t.ID)))
			return nil
		})
	},
}

var moveCmd = &cobra.Command{
	Use:   "move <id> <position>",
	Short: "Move a todo to a position (1 is the first created)",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseID(args[0])
		if err != nil {
			return err
		}
		pos, err := strconv.Atoi(args[1])
		if err != nil {
			return fmt.Errorf("invalid position %q", args[1])
		}
		r, err := renderer()
		if err != nil {
			return err
		}
		return withSession(cmd.Context(), func(ctx context.Context, s *session) error {
			moved, err := s.svc.Move(ctx, id, resolveDate(dateFlag), pos-1)
			if err != nil {
				return err
			}
			if !moved {
				fmt.Println(r.Warning(fmt.Sprintf("Position %d is out of range, nothing moved", pos)))
				return nil
			}
			fmt.Println(r.Success(fmt.Sprintf("Moved #%d to position %d", id, pos)))
			return nil
		})
	},
}

func init() {
	for _, c := range []*cobra.Command{listCmd, addCmd, editCmd, toggleCmd, rmCmd, dupCmd, moveCmd, exportCmd} {
		c.Flags().StringVarP(&dateFlag, "date", "d", "", "Date: today, yesterday, tomorrow, '3 days ago', 2024-03-01 or a copy key")
	}
	for _, c := range []*cobra.Command{listCmd, searchCmd} {
		c.Flags().IntVar(&limit, "limit", 0, "Rows per page (0 shows everything)")
		c.Flags().IntVar(&page, "page", 1, "Page number to show")
	}
}
