package metadata

import (
	"fmt"

	"github.com/spaghettifunk/naiad/engine/math"
)

/** @brief Recognized water debug visualization modes. */
type WaterDebugMode int

const (
	/** @brief No debug visualization. */
	WATER_DEBUG_DISABLED WaterDebugMode = 0x0
	/** @brief Substitute the interaction buffers for the final colour output. */
	WATER_DEBUG_SHOW_INTERACTION_BUFFERS WaterDebugMode = 0x1
	/** @brief Substitute the caustics projection for the final colour output. */
	WATER_DEBUG_SHOW_CAUSTICS WaterDebugMode = 0x2
)

func ParseWaterDebugMode(s string) (WaterDebugMode, error) {
	switch s {
	case "", "Disabled":
		return WATER_DEBUG_DISABLED, nil
	case "ShowInteractionBuffers":
		return WATER_DEBUG_SHOW_INTERACTION_BUFFERS, nil
	case "ShowCaustics":
		return WATER_DEBUG_SHOW_CAUSTICS, nil
	}
	return WATER_DEBUG_DISABLED, fmt.Errorf("unrecognized water debug mode '%s'", s)
}

/**
 * @brief The water configuration structure, consumed by the surrounding
 * system. Used as a TOML serialization target.
 */
type WaterConfig struct {
	/** @brief The world-space scale of the caustics projection. Clamped to [0.1, 1.0]. */
	CausticScale float32 `toml:"caustic_scale"`
	/** @brief The depth distance over which caustics blend out. */
	CausticBlendDistance float32 `toml:"caustic_blend_distance"`
	/** @brief The name of the horizon-water geometry resource. */
	Mesh string `toml:"mesh"`
	/** @brief The debug visualization mode. */
	Debug string `toml:"debug"`
	/** @brief The interaction buffer resolution scale, (0, 1]. */
	ResolutionScale float32 `toml:"resolution_scale"`
}

func DefaultWaterConfig() *WaterConfig {
	return &WaterConfig{
		CausticScale:         0.25,
		CausticBlendDistance: 3.0,
		Mesh:                 "Mesh.Water.Horizon",
		Debug:                "Disabled",
		ResolutionScale:      1.0,
	}
}

/**
 * @brief Validates the configuration, clamping numeric values into their
 * documented ranges. Returns an error for unrecognized debug modes.
 */
func (c *WaterConfig) Validate() error {
	c.CausticScale = math.Clamp(c.CausticScale, 0.1, 1.0)
	if c.CausticBlendDistance <= 0 {
		c.CausticBlendDistance = 3.0
	}
	if c.ResolutionScale <= 0 || c.ResolutionScale > 1.0 {
		c.ResolutionScale = 1.0
	}
	if _, err := ParseWaterDebugMode(c.Debug); err != nil {
		return err
	}
	return nil
}

// DebugMode returns the parsed debug mode, falling back to disabled for
// values Validate would have rejected.
func (c *WaterConfig) DebugMode() WaterDebugMode {
	mode, err := ParseWaterDebugMode(c.Debug)
	if err != nil {
		return WATER_DEBUG_DISABLED
	}
	return mode
}
