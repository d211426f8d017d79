package cli

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/vvka-141/dirsnap/internal/config"
	"github.com/vvka-141/dirsnap/pkg/dirsnap"
)

var configFlags struct {
	init bool
}

var configCmd = &cobra.Command{
	Use:   "config [directory]",
	Short: "Show the effective settings or create dirsnap.yaml",
	Long: `Print the settings that commands would use after merging dirsnap.yaml,
--env-file overrides and defaults.

With --init, write a dirsnap.yaml holding the current effective settings into
directory (default: the current directory). An existing file is never
overwritten.

Examples:
  # Inspect the merged settings
  dirsnap config --env-file .env

  # Create a starter config in ./project
  dirsnap config ./project --init`,
	Args: cobra.MaximumNArgs(1),
	RunE: runConfig,
}

func init() {
	configCmd.Flags().BoolVar(&configFlags.init, "init", false, "Write dirsnap.yaml instead of printing")
	configCmd.ValidArgsFunction = completeDirectories
	rootCmd.AddCommand(configCmd)
}

func runConfig(cmd *cobra.Command, args []string) error {
	cfg, err := loadSettings(cmd)
	if err != nil {
		return err
	}
	if cfg.Format == "" {
		cfg.Format = config.FormatText
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to serialize config: %w", err)
	}

	if !configFlags.init {
		_, err = cmd.OutOrStdout().Write(data)
		return err
	}

	targetDir := "."
	if len(args) > 0 {
		targetDir = args[0]
	}
	info, err := os.Stat(targetDir)
	if err != nil || !info.IsDir() {
		return fmt.Errorf("%w: %s is not a directory", dirsnap.ErrNotFound, targetDir)
	}

	configPath := filepath.Join(targetDir, dirsnap.ConfigFileName)
	if _, err := os.Stat(configPath); err == nil {
		return fmt.Errorf("%w: %s already exists", dirsnap.ErrInvalidConfig, configPath)
	} else if !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("failed to check %s: %w", configPath, err)
	}

	if err := os.WriteFile(configPath, data, 0644); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "✓ Configuration saved to %s\n", configPath)
	return nil
}
