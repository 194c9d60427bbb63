// Package config handles configuration loading, validation, and merging for versioncheck.
// It supports a YAML configuration file (.versioncheck.yml) with inheritance (extends)
// layered over built-in defaults.
package config

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/ajxudir/versioncheck/pkg/verbose"
)

// LoadConfig loads configuration from the specified path or defaults.
//
// If configPath is provided, it loads that specific config file.
// Otherwise, it looks for .versioncheck.yml in the working directory.
// The loaded file, with its extends chain applied, is merged over the
// built-in defaults.
//
// Parameters:
//   - configPath: path to the config file, or empty to use the local file or defaults
//   - workDir: working directory for the configuration
//
// Returns:
//   - *Config: the loaded and merged configuration
//   - error: any error encountered during loading or validation
func LoadConfig(configPath, workDir string) (*Config, error) {
	cfg := loadDefaultConfig()

	path := configPath
	if path == "" {
		localConfig := filepath.Join(workDir, LocalConfigName)
		if _, err := os.Stat(localConfig); err == nil {
			verbose.Infof("Found local config: %s", localConfig)
			path = localConfig
		}
	}

	if path != "" {
		verbose.Infof("Loading config from: %s", path)
		loaded, err := loadConfigFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
		loaded.SetRootConfig(true)
		extended := loaded.Extends

		loaded, err = processExtendsSecure(loaded, filepath.Dir(path), loaded)
		if err != nil {
			return nil, fmt.Errorf("failed to process extends: %w", err)
		}
		cfg = mergeConfigs(cfg, loaded)
		verbose.ConfigLoaded(path, extended)
	} else {
		verbose.Info("Using built-in default configuration")
	}
	cfg.SetRootConfig(true)

	if workDir != "" {
		cfg.WorkingDir = workDir
	} else {
		cfg.WorkingDir = "."
	}

	if err := Validate(cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

// loadConfigFileWithLimit loads a config file with a configurable size limit.
//
// Relative inventory, pins and tracking paths are resolved against the
// directory of the file that sets them.
//
// Parameters:
//   - path: path to the config file
//   - maxSize: maximum allowed file size in bytes
//
// Returns:
//   - *Config: the loaded configuration
//   - error: error if file is too large, not found, or has invalid YAML
func loadConfigFileWithLimit(path string, maxSize int64) (*Config, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, err
	}
	if info.Size() > maxSize {
		return nil, fmt.Errorf("config file too large: %d bytes (max %d bytes)\n\n"+
			"💡 To increase this limit, add to your root config:\n"+
			"   security:\n"+
			"     max_config_file_size: %d  # or larger value in bytes",
			info.Size(), maxSize, info.Size()*2)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	cfg, err := loadConfigData(data)
	if err != nil {
		return nil, err
	}
	cfg.resolvePaths(filepath.Dir(path))
	return cfg, nil
}

// loadConfigFile loads a config file with the default size limit.
func loadConfigFile(path string) (*Config, error) {
	return loadConfigFileWithLimit(path, DefaultMaxConfigFileSize)
}

// loadConfigData parses YAML configuration data, rejecting unknown fields.
//
// Parameters:
//   - data: YAML configuration data as bytes
//
// Returns:
//   - *Config: the parsed configuration; empty data yields an empty config
//   - error: error if YAML is invalid or has unknown fields
func loadConfigData(data []byte) (*Config, error) {
	var cfg Config
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && err != io.EOF {
		return nil, fmt.Errorf("invalid YAML: %w", err)
	}
	return &cfg, nil
}

// resolvePaths makes relative file paths absolute against baseDir.
func (c *Config) resolvePaths(baseDir string) {
	for _, p := range []*string{&c.Inventory, &c.Pins, &c.Tracking} {
		if *p != "" && !filepath.IsAbs(*p) {
			*p = filepath.Join(baseDir, *p)
		}
	}
}

// processExtendsSecure processes extends with security policy enforcement from root config.
//
// Parameters:
//   - cfg: the configuration to process
//   - baseDir: base directory for resolving relative paths
//   - rootCfg: the root configuration containing security settings
//
// Returns:
//   - *Config: the merged configuration after processing extends
//   - error: error if security policies are violated or extends chain is invalid
func processExtendsSecure(cfg *Config, baseDir string, rootCfg *Config) (*Config, error) {
	return processExtendsWithStackSecure(cfg, baseDir, make(map[string]bool), rootCfg)
}

// validateExtendPath checks if an extend path is allowed based on security settings.
//
// Path traversal (..) and absolute paths are blocked unless the root config
// enables them.
//
// Parameters:
//   - extend: the extend path to validate
//   - rootCfg: the root configuration containing security settings
//
// Returns:
//   - error: error if path violates security policy, nil if allowed
func validateExtendPath(extend string, rootCfg *Config) error {
	if strings.Contains(extend, "..") {
		if !rootCfg.AllowsPathTraversal() {
			return fmt.Errorf("path traversal not allowed in extends: '%s' - "+
				"to allow, add security.allow_path_traversal: true to your root config",
				extend)
		}
	}

	if filepath.IsAbs(extend) {
		if !rootCfg.AllowsAbsolutePaths() {
			return fmt.Errorf("absolute paths not allowed in extends: '%s' - "+
				"to allow, add security.allow_absolute_paths: true to your root config",
				extend)
		}
	}

	return nil
}

// processExtendsWithStackSecure processes extends with cycle detection and security enforcement.
//
// Extends are merged in order, so later files override earlier ones, and the
// config itself is merged last. The stack holds the files currently being
// processed to detect cycles.
//
// Parameters:
//   - cfg: the configuration to process
//   - baseDir: base directory for resolving relative paths
//   - stack: map tracking visited configs to detect cycles
//   - rootCfg: the root configuration containing security settings
//
// Returns:
//   - *Config: the merged configuration after processing all extends
//   - error: error if cycle detected, security policy violated, or file cannot be loaded
func processExtendsWithStackSecure(cfg *Config, baseDir string, stack map[string]bool, rootCfg *Config) (*Config, error) {
	if len(cfg.Extends) == 0 {
		return cfg, nil
	}

	base := &Config{}
	maxFileSize := rootCfg.GetMaxConfigFileSize()

	for _, extend := range cfg.Extends {
		if err := validateExtendPath(extend, rootCfg); err != nil {
			return nil, err
		}

		extendPath := extend
		if !filepath.IsAbs(extendPath) {
			extendPath = filepath.Join(baseDir, extend)
		}

		absPath, absErr := filepath.Abs(extendPath)
		if absErr != nil {
			return nil, fmt.Errorf("failed to resolve extend path '%s': %w", extend, absErr)
		}

		if _, statErr := os.Stat(absPath); statErr != nil {
			return nil, fmt.Errorf("failed to resolve extend '%s': %w", extend, statErr)
		}

		if stack[absPath] {
			return nil, fmt.Errorf("cyclic extends detected at %s", extendPath)
		}
		stack[absPath] = true

		loaded, err := loadConfigFileWithLimit(extendPath, maxFileSize)
		if err != nil {
			return nil, fmt.Errorf("failed to load extend '%s': %w", extend, err)
		}

		loaded, err = processExtendsWithStackSecure(loaded, filepath.Dir(extendPath), stack, rootCfg)
		if err != nil {
			return nil, err
		}

		base = mergeConfigs(base, loaded)
		verbose.Printf("Extended from %q\n", extend)

		delete(stack, absPath)
	}

	result := mergeConfigs(base, cfg)
	result.Extends = nil

	return result, nil
}
