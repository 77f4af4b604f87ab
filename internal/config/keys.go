package config

import "github.com/zoro11031/safefs/internal/common"

// Configuration key constants to prevent typos and enable autocomplete
const (
	// Operation defaults
	KeyOverwrite = "OVERWRITE" // replace existing destinations without asking
	KeyConfirm   = "CONFIRM"   // ask before replacing when overwrite is off

	// Logging
	KeyLogLevel = "LOG_LEVEL"
)

// EnvPrefix is prepended to keys when reading them from the environment,
// e.g. SAFEFS_LOG_LEVEL.
const EnvPrefix = "SAFEFS"

// Default values for configuration keys
var Defaults = map[string]string{
	KeyOverwrite: "false",
	KeyConfirm:   "true",
	KeyLogLevel:  "warning",
}

// Validators checks values before they are stored. Only keys listed here
// may be set.
var Validators = map[string]func(string) error{
	KeyOverwrite: common.ValidateBool,
	KeyConfirm:   common.ValidateBool,
	KeyLogLevel:  common.ValidateLogLevel,
}

// FlagNames maps configuration keys to the command-line flags that override
// them.
var FlagNames = map[string]string{
	KeyOverwrite: "overwrite",
	KeyLogLevel:  "log-level",
}
