package cmd

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/ajxudir/versioncheck/pkg/config"
	"github.com/ajxudir/versioncheck/pkg/constants"
	"github.com/ajxudir/versioncheck/pkg/errors"
	"github.com/ajxudir/versioncheck/pkg/verbose"
)

var (
	configShowDefaultsFlag  bool
	configShowEffectiveFlag bool
	configInitFlag          bool
	configValidateFlag      bool
	configPathFlag          string
)

var writeFileFunc = os.WriteFile

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show or create configuration",
	Long:  `Show, validate, or create the .versioncheck.yml configuration file.`,
	RunE:  runConfig,
}

func init() {
	configCmd.Flags().BoolVar(&configShowDefaultsFlag, "show-defaults", false, "Show default configuration")
	configCmd.Flags().BoolVar(&configShowEffectiveFlag, "show-effective", false, "Show effective configuration")
	configCmd.Flags().BoolVar(&configInitFlag, "init", false, "Create .versioncheck.yml template")
	configCmd.Flags().BoolVar(&configValidateFlag, "validate", false, "Validate configuration file (rejects unknown fields)")
	configCmd.Flags().StringVarP(&configPathFlag, "config", "c", "", "Config file path")
}

// runConfig executes the config command with the specified flags.
//
// Behavior depends on flags:
//   - --init: Creates a .versioncheck.yml template file
//   - --validate: Validates the configuration file
//   - --show-defaults: Displays the default configuration
//   - --show-effective: Displays the effective merged configuration
//
// Returns:
//   - error: Returns error on validation or file operation failure
func runConfig(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()

	if configInitFlag {
		return createConfigTemplate(out)
	}

	if configValidateFlag {
		return validateConfigFile(out)
	}

	if configShowDefaultsFlag {
		fmt.Fprintln(out, "Default configuration:")
		fmt.Fprintln(out)
		fmt.Fprintln(out, config.GetDefaultConfig())
		return nil
	}

	if configShowEffectiveFlag {
		workDir, _ := os.Getwd()
		cfg, err := loadConfigFunc(configPathFlag, workDir)
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}
		return printEffectiveConfig(out, cfg)
	}

	return cmd.Help()
}

// printEffectiveConfig writes the merged configuration as YAML.
func printEffectiveConfig(w io.Writer, cfg *config.Config) error {
	effective := struct {
		WorkingDir     string `yaml:"working_dir"`
		Inventory      string `yaml:"inventory,omitempty"`
		Pins           string `yaml:"pins,omitempty"`
		Tracking       string `yaml:"tracking,omitempty"`
		Output         string `yaml:"output"`
		Color          string `yaml:"color"`
		NewerOnly      bool   `yaml:"newer_only"`
		Limit          int    `yaml:"limit"`
		ShowRequiredBy bool   `yaml:"show_required_by"`
	}{
		WorkingDir:     cfg.WorkingDir,
		Inventory:      cfg.Inventory,
		Pins:           cfg.Pins,
		Tracking:       cfg.Tracking,
		Output:         cfg.GetOutput(),
		Color:          cfg.GetColor(),
		NewerOnly:      cfg.IsNewerOnly(),
		Limit:          cfg.GetLimit(),
		ShowRequiredBy: cfg.IsShowRequiredBy(),
	}

	data, err := yaml.Marshal(effective)
	if err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}
	fmt.Fprintln(w, "Effective configuration:")
	fmt.Fprintln(w)
	_, err = w.Write(data)
	return err
}

// validateConfigFile validates the configuration file given by --config, or
// .versioncheck.yml in the current working directory.
//
// Returns:
//   - error: ExitError with ExitConfigError on validation failure
func validateConfigFile(w io.Writer) error {
	configPath := configPathFlag
	if configPath == "" {
		workDir, _ := os.Getwd()
		configPath = filepath.Join(workDir, config.LocalConfigName)
	}

	if err := config.ValidateFile(configPath); err != nil {
		fmt.Fprintf(w, "%s Configuration validation failed for: %s\n\n", constants.IconError, configPath)
		fmt.Fprintf(w, "  ERROR: %s\n\n", err)
		fmt.Fprintf(w, "%s Run 'versioncheck config --show-defaults' for valid options\n", constants.IconLightbulb)
		verbose.Infof("Exit code %d (config error): configuration validation failed for %s", errors.ExitConfigError, configPath)
		return errors.NewExitError(errors.ExitConfigError, fmt.Errorf("configuration validation failed"))
	}

	fmt.Fprintf(w, "%s Configuration valid: %s\n", constants.IconCheckmarkBox, configPath)
	return nil
}

// createConfigTemplate creates a new .versioncheck.yml template file in the
// current directory. Fails if a config file already exists there.
func createConfigTemplate(w io.Writer) error {
	configPath := config.LocalConfigName
	if _, err := os.Stat(configPath); err == nil {
		return fmt.Errorf("config file already exists: %s", configPath)
	}

	// Use 0600 permissions for config files (owner read/write only)
	if err := writeFileFunc(configPath, []byte(config.GetTemplateConfig()), 0600); err != nil {
		return fmt.Errorf("failed to create config file: %w", err)
	}

	fmt.Fprintf(w, "Created configuration template: %s\n", configPath)
	return nil
}
