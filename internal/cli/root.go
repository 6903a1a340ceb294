// Package cli wires the playground commands: the servers, markdown rendering
// and a terminal tic-tac-toe client.
package cli

import (
	"io"
	"log/slog"
	"strings"

	"github.com/spf13/cobra"

	"github.com/rocketscienceinc/playground-backend/internal/config"
)

const defaultConfigPath = "config.yml"

// app holds what every command needs once flags are parsed.
type app struct {
	configPath string

	conf   *config.Config
	logger *slog.Logger
}

func NewRootCommand() *cobra.Command {
	a := &app{}

	cmd := &cobra.Command{
		Use:           "playground",
		Short:         "Markdown preview and tic-tac-toe backend",
		SilenceUsage:  true,
		SilenceErrors: false,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			conf, err := config.Load(a.configPath)
			if err != nil {
				return err
			}

			a.conf = conf
			a.logger = NewLogger(conf.LogLevel, cmd.ErrOrStderr())

			return nil
		},
	}

	cmd.PersistentFlags().StringVarP(&a.configPath, "config", "c", defaultConfigPath, "path to the yaml config file")

	cmd.AddCommand(
		newServeCommand(a),
		newRenderCommand(a),
		newPlayCommand(a),
		newMoveCommand(a),
	)

	return cmd
}

// Execute runs the root command with os.Args.
func Execute() error {
	return NewRootCommand().Execute()
}

// NewLogger - JSON logger at the given level; unknown levels mean info.
func NewLogger(level string, w io.Writer) *slog.Logger {
	var slogLevel slog.Level

	switch strings.ToLower(level) {
	case "debug":
		slogLevel = slog.LevelDebug
	case "warn":
		slogLevel = slog.LevelWarn
	case "error":
		slogLevel = slog.LevelError
	default:
		slogLevel = slog.LevelInfo
	}

	return slog.New(slog.NewJSONHandler(w, &slog.HandlerOptions{Level: slogLevel}))
}
