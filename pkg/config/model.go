package config

// Config is the root configuration structure of a .versioncheck.yml file.
//
// Pointer fields distinguish "not set" from the zero value so that files
// earlier in an extends chain can be overridden with false or 0.
type Config struct {
	Extends        []string     `yaml:"extends,omitempty"`
	Inventory      string       `yaml:"inventory,omitempty"`
	Pins           string       `yaml:"pins,omitempty"`
	Tracking       string       `yaml:"tracking,omitempty"`
	Output         string       `yaml:"output,omitempty"`
	Color          string       `yaml:"color,omitempty"`
	NewerOnly      *bool        `yaml:"newer_only,omitempty"`
	Limit          *int         `yaml:"limit,omitempty"`
	ShowRequiredBy *bool        `yaml:"show_required_by,omitempty"`
	Security       *SecurityCfg `yaml:"security,omitempty"`

	// WorkingDir is the directory the config was resolved in. Not persisted.
	WorkingDir string `yaml:"-"`

	// isRootConfig is set only for the file the user pointed at. Security
	// settings are honored from the root config only.
	isRootConfig bool `yaml:"-"`
}

// SecurityCfg holds the extends policy.
// These settings can ONLY be enabled from the root config file, not from extended configs.
type SecurityCfg struct {
	// AllowPathTraversal permits ".." in extends paths.
	AllowPathTraversal bool `yaml:"allow_path_traversal,omitempty"`

	// AllowAbsolutePaths permits absolute extends paths.
	AllowAbsolutePaths bool `yaml:"allow_absolute_paths,omitempty"`

	// MaxConfigFileSize overrides the default 10MB limit (in bytes). 0 uses the default.
	MaxConfigFileSize int64 `yaml:"max_config_file_size,omitempty"`
}

// DefaultMaxConfigFileSize is the default maximum config file size (10MB).
const DefaultMaxConfigFileSize = 10 * 1024 * 1024

// LocalConfigName is the config file looked up in the working directory.
const LocalConfigName = ".versioncheck.yml"

// IsRootConfig returns true if this is the root configuration (not an extended config).
func (c *Config) IsRootConfig() bool {
	return c.isRootConfig
}

// SetRootConfig marks the configuration as the root config.
func (c *Config) SetRootConfig(isRoot bool) {
	c.isRootConfig = isRoot
}

// GetMaxConfigFileSize returns the configured max file size or the default.
func (c *Config) GetMaxConfigFileSize() int64 {
	if c.Security != nil && c.Security.MaxConfigFileSize > 0 {
		return c.Security.MaxConfigFileSize
	}
	return DefaultMaxConfigFileSize
}

// AllowsPathTraversal returns true if path traversal is allowed in extends.
func (c *Config) AllowsPathTraversal() bool {
	return c.Security != nil && c.Security.AllowPathTraversal
}

// AllowsAbsolutePaths returns true if absolute paths are allowed in extends.
func (c *Config) AllowsAbsolutePaths() bool {
	return c.Security != nil && c.Security.AllowAbsolutePaths
}

// IsNewerOnly reports whether up-to-date packages are hidden. Defaults to false.
func (c *Config) IsNewerOnly() bool {
	return c.NewerOnly != nil && *c.NewerOnly
}

// GetLimit returns the package limit, 0 (unlimited) when not set.
func (c *Config) GetLimit() int {
	if c.Limit == nil {
		return 0
	}
	return *c.Limit
}

// IsShowRequiredBy reports whether dependents are printed. Defaults to false.
func (c *Config) IsShowRequiredBy() bool {
	return c.ShowRequiredBy != nil && *c.ShowRequiredBy
}

// GetOutput returns the output format name, "human" when not set.
func (c *Config) GetOutput() string {
	if c.Output == "" {
		return "human"
	}
	return c.Output
}

// GetColor returns the color mode name, "auto" when not set.
func (c *Config) GetColor() string {
	if c.Color == "" {
		return "auto"
	}
	return c.Color
}
