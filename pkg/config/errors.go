package config

import "errors"

// Error definitions for config package.
var (
	// Configuration file errors.
	ErrConfigFileParse = errors.New("failed to parse config file")
	// Configuration initialization errors.
	ErrConfigNotInitialized = errors.New("vsweep configuration not found. Run 'vsweep init' to initialize")
	// Configuration validation errors.
	ErrBasePathEmpty          = errors.New("base_path cannot be empty")
	ErrEditorsEmpty           = errors.New("editors cannot be empty")
	ErrInvalidPreservePattern = errors.New("invalid preserve pattern")
	ErrStoreKeyPatternEmpty   = errors.New("store key pattern cannot be empty")
)
