package cmd

import (
	"context"
	"fmt"
	"strings"

	"github.com/ramanasai/daytodo/internal/app"
	"github.com/ramanasai/daytodo/internal/output"
	"github.com/spf13/cobra"
)

var searchCmd = &cobra.Command{
	Use:   "search <query...>",
	Short: "Find todos containing text across every date",
	Long: `The query is matched literally and ignores case.

Examples:
	daytodo search invoice
	daytodo search "call mom" --format table`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		r, err := renderer()
		if err != nil {
			return err
		}
		return withSession(cmd.Context(), func(ctx context.Context, s *session) error {
			st, err := app.NewState(s.svc.Today()).EnterSearch(strings.Join(args, " "))
			if err != nil {
				return err
			}
			p, err := s.svc.Page(ctx, st)
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
