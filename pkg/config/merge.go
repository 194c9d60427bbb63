package config

import "github.com/ajxudir/versioncheck/pkg/verbose"

// mergeConfigs merges two configurations with custom taking precedence.
//
// Every field custom sets replaces the base value; unset fields keep the base
// value. Security is carried over from custom only when custom is the root
// config, so extended files cannot loosen the policy.
//
// Parameters:
//   - base: the base configuration
//   - custom: the custom configuration that overrides base
//
// Returns:
//   - *Config: the merged configuration
func mergeConfigs(base, custom *Config) *Config {
	if custom == nil {
		return base
	}

	merged := *base
	merged.Extends = nil

	merged.Inventory = mergeString(base.Inventory, custom.Inventory)
	merged.Pins = mergeString(base.Pins, custom.Pins)
	merged.Tracking = mergeString(base.Tracking, custom.Tracking)
	merged.Output = mergeString(base.Output, custom.Output)
	merged.Color = mergeString(base.Color, custom.Color)

	if custom.NewerOnly != nil {
		merged.NewerOnly = custom.NewerOnly
	}
	if custom.Limit != nil {
		merged.Limit = custom.Limit
	}
	if custom.ShowRequiredBy != nil {
		merged.ShowRequiredBy = custom.ShowRequiredBy
	}

	if custom.isRootConfig {
		merged.isRootConfig = true
		if custom.Security != nil {
			merged.Security = custom.Security
		}
	}
	if custom.WorkingDir != "" {
		merged.WorkingDir = custom.WorkingDir
	}

	verbose.Printf("Config merged: output=%s color=%s\n", merged.Output, merged.Color)
	return &merged
}

// mergeString returns override when set, base otherwise.
func mergeString(base, override string) string {
	if override != "" {
		return override
	}
	return base
}
