package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	application "github.com/rocketscienceinc/playground-backend/internal"
	"github.com/rocketscienceinc/playground-backend/internal/service"
)

func newRenderCommand(a *app) *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "render [file]",
		Short: "Render markdown from a file or stdin",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			source, err := readSource(cmd.InOrStdin(), args)
			if err != nil {
				return err
			}

			markdownService, err := application.NewMarkdownService(a.logger, a.conf.Markdown)
			if err != nil {
				return err
			}

			output, err := markdownService.Render(cmd.Context(), source, format)
			if err != nil {
				return err
			}

			_, err = fmt.Fprintln(cmd.OutOrStdout(), output)
			return err
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", service.FormatHTML, "output format: html or ansi")

	return cmd
}

func readSource(stdin io.Reader, args []string) (string, error) {
	if len(args) == 0 || args[0] == "-" {
		data, err := io.ReadAll(stdin)
		if err != nil {
			return "", fmt.Errorf("failed to read stdin: %w", err)
		}
		return string(data), nil
	}

	data, err := os.ReadFile(args[0])
	if err != nil {
		return "", fmt.Errorf("failed to read markdown file: %w", err)
	}

	return string(data), nil
}
