package types

import "fmt"

// Default configuration values
const (
	DefaultMaxChunkSize      = 10000
	DefaultMinChunkSize      = 100
	DefaultOverlapPercentage = 10
	DefaultMetadataOverhead  = 200
	DefaultSearchWindow      = 200
)

// ChunkingConfig controls how documents are split into chunks.
// Construct with NewConfig so that defaults are merged and validation
// happens exactly once; a ChunkingConfig is immutable after that.
type ChunkingConfig struct {
	// MaxChunkSize is the upper bound on chunk length including the
	// reserved metadata overhead.
	MaxChunkSize int

	// MinChunkSize is a soft lower bound. The final chunk of a document
	// may fall below it; it only affects health reporting, never emission.
	MinChunkSize int

	// OverlapPercentage is the fraction (0-100) of a chunk's length
	// shared with its successor.
	OverlapPercentage int

	// UseSmartBoundaries enables semantic enrichment during metadata
	// generation when an enrichment capability is configured.
	UseSmartBoundaries bool

	// PreserveStructure enables protected-region detection (code fences,
	// tables) overriding naive splits.
	PreserveStructure bool

	// MetadataOverhead is the character count reserved per chunk for
	// metadata. EffectiveBudget() must remain positive.
	MetadataOverhead int
}

// ConfigOverrides carries optional caller-supplied values merged over the
// defaults by NewConfig. Nil fields keep the default.
type ConfigOverrides struct {
	MaxChunkSize       *int
	MinChunkSize       *int
	OverlapPercentage  *int
	UseSmartBoundaries *bool
	PreserveStructure  *bool
	MetadataOverhead   *int
}

// DefaultConfig returns the default chunking configuration.
func DefaultConfig() ChunkingConfig {
	return ChunkingConfig{
		MaxChunkSize:       DefaultMaxChunkSize,
		MinChunkSize:       DefaultMinChunkSize,
		OverlapPercentage:  DefaultOverlapPercentage,
		UseSmartBoundaries: false,
		PreserveStructure:  true,
		MetadataOverhead:   DefaultMetadataOverhead,
	}
}

// NewConfig merges overrides onto the defaults and validates the result.
// Hot-path code receives a fully-resolved config.
func NewConfig(overrides *ConfigOverrides) (ChunkingConfig, error) {
	return DefaultConfig().With(overrides)
}

// With layers overrides on top of c and validates the result. c is left
// unchanged.
func (c ChunkingConfig) With(overrides *ConfigOverrides) (ChunkingConfig, error) {
	cfg := c
	if overrides != nil {
		if overrides.MaxChunkSize != nil {
			cfg.MaxChunkSize = *overrides.MaxChunkSize
		}
		if overrides.MinChunkSize != nil {
			cfg.MinChunkSize = *overrides.MinChunkSize
		}
		if overrides.OverlapPercentage != nil {
			cfg.OverlapPercentage = *overrides.OverlapPercentage
		}
		if overrides.UseSmartBoundaries != nil {
			cfg.UseSmartBoundaries = *overrides.UseSmartBoundaries
		}
		if overrides.PreserveStructure != nil {
			cfg.PreserveStructure = *overrides.PreserveStructure
		}
		if overrides.MetadataOverhead != nil {
			cfg.MetadataOverhead = *overrides.MetadataOverhead
		}
	}

	if err := cfg.Validate(); err != nil {
		return ChunkingConfig{}, err
	}
	return cfg, nil
}

// EffectiveBudget is the real content-length ceiling per chunk.
func (c ChunkingConfig) EffectiveBudget() int {
	return c.MaxChunkSize - c.MetadataOverhead
}

// Validate checks the numeric constraints. Invalid values are a fatal
// construction-time error, never silently clamped.
func (c ChunkingConfig) Validate() error {
	if c.MaxChunkSize <= 0 {
		return fmt.Errorf("%w: max chunk size must be positive, got %d", ErrInvalidConfig, c.MaxChunkSize)
	}
	if c.MinChunkSize < 0 {
		return fmt.Errorf("%w: min chunk size must not be negative, got %d", ErrInvalidConfig, c.MinChunkSize)
	}
	if c.MetadataOverhead < 0 {
		return fmt.Errorf("%w: metadata overhead must not be negative, got %d", ErrInvalidConfig, c.MetadataOverhead)
	}
	if c.EffectiveBudget() <= 0 {
		return fmt.Errorf("%w: effective budget must be positive, got %d (max %d - overhead %d)",
			ErrInvalidConfig, c.EffectiveBudget(), c.MaxChunkSize, c.MetadataOverhead)
	}
	if c.OverlapPercentage < 0 || c.OverlapPercentage > 100 {
		return fmt.Errorf("%w: overlap percentage must be in [0, 100], got %d", ErrInvalidConfig, c.OverlapPercentage)
	}
	return nil
}
