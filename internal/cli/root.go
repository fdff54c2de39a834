// Package cli wires the image-fx command tree: the MCP server, one-shot
// transformations and the algorithm listing.
package cli

import (
	"fmt"
	"io"
	"log/slog"
	"runtime"

	"github.com/spf13/cobra"

	"github.com/ironsheep/image-fx-mcp/internal/config"
)

// BuildInfo carries the values stamped into the binary by ldflags.
type BuildInfo struct {
	Version   string
	BuildTime string
	GitCommit string
}

// app holds the flag values and the configuration resolved before a
// subcommand runs.
type app struct {
	info BuildInfo
	cfg  config.Config

	logLevel    string
	jpegQuality int
}

// Execute runs the command tree against os.Args.
func Execute(info BuildInfo) error {
	return NewRootCommand(info).Execute()
}

// NewRootCommand builds the image-fx command tree.
func NewRootCommand(info BuildInfo) *cobra.Command {
	if info.Version == "" {
		info.Version = "dev"
	}
	a := &app{info: info}

	root := &cobra.Command{
		Use:   "image-fx",
		Short: "Parametrized image transformations over MCP or the command line",
		Long: `image-fx applies named, parametrized transformations (color filters,
histogram equalization, blur, edge detection, geometric distortions and
halftoning) to PNG, JPEG, GIF, BMP, TIFF and WebP images. Animated GIFs are
processed frame by frame.

Run "image-fx serve" to expose the transformations to an MCP client over
stdio, or "image-fx apply" to transform a single file.`,
		Version:           info.Version,
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: a.configure,
	}
	root.SetVersionTemplate(fmt.Sprintf(
		"image-fx %s (built %s, commit %s, %s/%s)\n",
		info.Version, info.BuildTime, info.GitCommit, runtime.GOOS, runtime.GOARCH,
	))

	root.PersistentFlags().StringVar(&a.logLevel, "log-level", "", "log level: debug, info, warn or error (overrides "+config.EnvLogLevel+")")
	root.PersistentFlags().IntVar(&a.jpegQuality, "jpeg-quality", 0, "JPEG output quality 1-100 (overrides "+config.EnvJPEGQuality+")")

	root.AddCommand(
		a.newServeCommand(),
		a.newApplyCommand(),
		a.newAlgorithmsCommand(),
	)
	return root
}

// configure loads the environment configuration, applies flag overrides and
// installs the default logger on the command's stderr.
func (a *app) configure(cmd *cobra.Command, _ []string) error {
	cfg, err := config.FromEnv()
	if err != nil {
		return err
	}

	if cmd.Flags().Changed("log-level") {
		level, err := config.ParseLevel(a.logLevel)
		if err != nil {
			return fmt.Errorf("--log-level: %w", err)
		}
		cfg.LogLevel = level
	}
	if cmd.Flags().Changed("jpeg-quality") {
		if a.jpegQuality < 1 || a.jpegQuality > 100 {
			return fmt.Errorf("--jpeg-quality: expected an integer between 1 and 100, got %d", a.jpegQuality)
		}
		cfg.JPEGQuality = a.jpegQuality
	}

	a.cfg = cfg
	slog.SetDefault(newLogger(cmd.ErrOrStderr(), cfg.LogLevel))
	return nil
}

// newLogger returns a text logger writing to w. Stdout is never used: it
// carries the MCP protocol.
func newLogger(w io.Writer, level slog.Level) *slog.Logger {
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}
