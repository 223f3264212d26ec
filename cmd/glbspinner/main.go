package main

import (
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"glbspinner/internal/config"
	"glbspinner/internal/logger"
	"glbspinner/internal/viewer"

	"github.com/spf13/cobra"
)

func main() {
	if err := newRootCommand().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCommand() *cobra.Command {
	var (
		configPath string
		logLevel   string
		logFormat  string
	)

	cmd := &cobra.Command{
		Use:           "glbspinner [model.glb|model.gltf]",
		Short:         "Interactive viewer for GLB and glTF models",
		Long:          "Opens a window showing a GLB or glTF model. Drop a file onto the window to load another one.\nKeys: Left/Right step 45 degrees, Space toggles auto-rotation, R resets the view, H re-frames the camera.",
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := config.Default()
			if configPath != "" {
				loaded, err := config.Load(configPath)
				if err != nil {
					fmt.Fprintln(os.Stderr, "config:", err)
					return err
				}
				cfg = loaded
			}
			if cmd.Flags().Changed("log-level") {
				cfg.Logging.Level = logLevel
			}
			if cmd.Flags().Changed("log-format") {
				cfg.Logging.Format = logFormat
			}

			log := logger.New(logger.Config{Level: cfg.Logging.Level, Format: cfg.Logging.Format})
			slog.SetDefault(log)

			var initial string
			if len(args) == 1 {
				abs, err := filepath.Abs(args[0])
				if err != nil {
					log.Error("resolve model path", "path", args[0], "error", err)
					return err
				}
				initial = abs
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			if err := viewer.New(cfg, log).Run(ctx, initial); err != nil {
				log.Error("viewer exited", "error", err)
				return err
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "", "path to a YAML config file")
	cmd.Flags().StringVar(&logLevel, "log-level", "info", "log level: debug, info, warn, error")
	cmd.Flags().StringVar(&logFormat, "log-format", "console", "log format: console, text, json")
	return cmd
}
