package cli

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/vvka-141/dirsnap/internal/config"
	"github.com/vvka-141/dirsnap/internal/logging"
	"github.com/vvka-141/dirsnap/internal/tui"
	"github.com/vvka-141/dirsnap/pkg/dirsnap"
)

// isInteractive reports whether prompts and pickers may be shown. Tests replace it.
var isInteractive = tui.IsInteractive

// modeFlags holds the snapshot mode flag values shared by list, tree and rm.
type modeFlags struct {
	absolute  bool
	relative  bool
	recursive bool
	filesOnly bool
}

// addModeFlags registers the snapshot mode flags on cmd.
func addModeFlags(cmd *cobra.Command, flags *modeFlags) {
	cmd.Flags().BoolVarP(&flags.absolute, "absolute", "a", false, "Render entries as resolved absolute paths")
	cmd.Flags().BoolVarP(&flags.relative, "relative", "r", false, "Render entries relative to the snapshot root")
	cmd.Flags().BoolVarP(&flags.recursive, "recursive", "R", false, "Walk the whole subtree (pre-order)")
	cmd.Flags().BoolVarP(&flags.filesOnly, "files-only", "f", false, "Leave directories out of the entries")
}

// resetCommandFlags restores every local flag of cmd to its default and clears
// its changed marker.
func resetCommandFlags(cmd *cobra.Command) {
	cmd.Flags().VisitAll(func(f *pflag.Flag) {
		_ = f.Value.Set(f.DefValue)
		f.Changed = false
	})
}

// loadSettings merges dirsnap.yaml and the --env-file overrides.
// A missing default config file is not an error; a missing --config is.
func loadSettings(cmd *cobra.Command) (*config.ProjectConfig, error) {
	explicit, _ := cmd.Flags().GetString("config")

	var (
		cfg *config.ProjectConfig
		err error
	)
	if explicit != "" {
		cfg, err = config.LoadFile(explicit)
	} else {
		cfg, err = config.Load(".")
		if errors.Is(err, config.ErrConfigNotFound) {
			cfg, err = &config.ProjectConfig{}, nil
		}
	}
	if err != nil {
		if errors.Is(err, config.ErrConfigNotFound) {
			return nil, fmt.Errorf("%w: %w", dirsnap.ErrInvalidConfig, err)
		}
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	envFile, _ := cmd.Flags().GetString("env-file")
	if envFile != "" {
		env, err := config.LoadEnvFile(envFile)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", dirsnap.ErrInvalidConfig, err)
		}
		if err := cfg.ApplyEnv(env); err != nil {
			return nil, fmt.Errorf("%s: %w", envFile, err)
		}
	}
	return cfg, nil
}

// resolveOptions layers explicitly set mode flags over the loaded settings.
func resolveOptions(cmd *cobra.Command, cfg *config.ProjectConfig, flags modeFlags) (dirsnap.Options, error) {
	changed := cmd.Flags().Changed
	if changed("absolute") && changed("relative") && flags.absolute && flags.relative {
		return dirsnap.Options{}, fmt.Errorf("%w: --absolute and --relative are mutually exclusive", dirsnap.ErrInvalidConfig)
	}

	opts := cfg.Options()
	if changed("absolute") {
		opts = opts.WithAbsolute(flags.absolute)
	}
	if changed("relative") {
		opts = opts.WithRelative(flags.relative)
	}
	if changed("recursive") {
		opts = opts.WithRecursive(flags.recursive)
	}
	if changed("files-only") {
		opts = opts.WithFilesOnly(flags.filesOnly)
	}
	return opts, nil
}

// resolveFormat prefers the --format flag, then the settings, then text.
func resolveFormat(cmd *cobra.Command, cfg *config.ProjectConfig, flag string) (string, error) {
	format := cfg.Format
	if cmd.Flags().Changed("format") || format == "" {
		format = flag
	}
	switch format {
	case config.FormatText, config.FormatJSON, config.FormatYAML:
		return format, nil
	case "":
		return config.FormatText, nil
	default:
		return "", fmt.Errorf("%w: unsupported format %q (want text, json or yaml)", dirsnap.ErrInvalidConfig, format)
	}
}

// newLogger builds the console logger for cmd, writing to its error stream.
func newLogger(cmd *cobra.Command) dirsnap.Logger {
	return logging.NewConsoleLoggerTo(cmd.ErrOrStderr(), getVerboseFlag(cmd))
}

// paletteFor returns styled output only for a color-capable terminal.
func paletteFor(w io.Writer) tui.Palette {
	if f, ok := w.(*os.File); ok && tui.ColorEnabled(f) {
		return tui.StyledPalette()
	}
	return tui.PlainPalette()
}
