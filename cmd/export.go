package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/charmbracelet/glamour"
	"github.com/ramanasai/daytodo/internal/output"
	"github.com/spf13/cobra"
)

var (
	exportOutput  string
	exportOpen    bool
	exportPreview bool
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export the todos of a date as markdown",
	Long: `Without flags the export is written to stdout.

Examples:
	daytodo export --date yesterday --output notes.md
	daytodo export --preview
	daytodo export --open              # open the server's download in a browser`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		r, err := renderer()
		if err != nil {
			return err
		}
		date := resolveDate(dateFlag)
		return withSession(cmd.Context(), func(ctx context.Context, s *session) error {
			if exportOpen {
				if err := s.svc.Export(date); err != nil {
					return err
				}
				fmt.Println(r.Success("Opened " + s.svc.API.ExportURL(date)))
				return nil
			}

			dl, err := s.svc.API.Export(ctx, date)
			if err != nil {
				return fmt.Errorf("export %s: %w", date, err)
			}
			switch {
			case exportOutput != "":
				if err := os.WriteFile(exportOutput, dl.Body, 0o644); err != nil {
					return fmt.Errorf("write %s: %w", exportOutput, err)
				}
				fmt.Println(r.Success(fmt.Sprintf("Wrote %s (%s)", exportOutput, dl.Filename)))
			case exportPreview:
				out, err := renderMarkdown(string(dl.Body))
				if err != nil {
					return err
				}
				fmt.Print(out)
			default:
				if _, err := os.Stdout.Write(dl.Body); err != nil {
					return err
				}
			}
			return nil
		})
	},
}

func renderMarkdown(md string) (string, error) {
	tr, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(output.DefaultConfig().Width),
	)
	if err != nil {
		return "", fmt.Errorf("markdown renderer: %w", err)
	}
	return tr.Render(md)
}

func init() {
	exportCmd.Flags().StringVarP(&exportOutput, "output", "o", "", "Write the export to a file")
	exportCmd.Flags().BoolVar(&exportOpen, "open", false, "Open the export in the browser")
	exportCmd.Flags().BoolVar(&exportPreview, "preview", false, "Render the export in the terminal")
	exportCmd.MarkFlagsMutuallyExclusive("output", "open", "preview")
}
