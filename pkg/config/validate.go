package config

import (
	"fmt"
	"strings"

	"github.com/ajxudir/versioncheck/pkg/errors"
	"github.com/ajxudir/versioncheck/pkg/output"
)

// Validate checks the values of a loaded configuration.
//
// It performs the following operations:
//   - Rejects unknown output formats
//   - Rejects unknown color modes
//   - Rejects negative limits
//
// Parameters:
//   - cfg: the configuration to check
//
// Returns:
//   - error: *errors.ExitError with ExitConfigError listing every problem; nil when valid
func Validate(cfg *Config) error {
	var problems []string

	if !output.IsValidFormat(cfg.Output) {
		problems = append(problems, fmt.Sprintf("output: unknown format %q (expected human or json)", cfg.Output))
	}
	if _, err := output.ParseColorMode(cfg.Color); err != nil {
		problems = append(problems, "color: "+err.Error())
	}
	if cfg.Limit != nil && *cfg.Limit < 0 {
		problems = append(problems, fmt.Sprintf("limit: must not be negative, got %d", *cfg.Limit))
	}

	if len(problems) == 0 {
		return nil
	}

	var b strings.Builder
	b.WriteString("configuration validation failed:\n")
	for _, p := range problems {
		b.WriteString("  - ")
		b.WriteString(p)
		b.WriteString("\n")
	}
	return errors.NewExitError(errors.ExitConfigError, fmt.Errorf("%s", strings.TrimRight(b.String(), "\n")))
}

// ValidateFile loads path strictly and validates it, ignoring extends.
//
// Returns:
//   - error: read, YAML, unknown field or value errors, all with ExitConfigError
func ValidateFile(path string) error {
	cfg, err := loadConfigFile(path)
	if err != nil {
		return errors.NewExitError(errors.ExitConfigError, fmt.Errorf("failed to read config file '%s': %w", path, err))
	}
	return Validate(cfg)
}
