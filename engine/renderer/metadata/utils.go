package metadata

import "github.com/spaghettifunk/naiad/engine/math"

/**
 * @brief Translates a legacy render-target descriptor into a
 * frame-resource-graph texture descriptor. Both lifetime models must
 * allocate identical textures from the same source descriptor.
 */
func FrameTextureDescriptorFromTarget(target *RenderTargetDescriptor) *FrameTextureDescriptor {
	samples := target.MSAASamples
	if samples == 0 {
		samples = 1
	}
	return &FrameTextureDescriptor{
		Width:         target.Width,
		Height:        target.Height,
		ColourFormat:  target.Format,
		DepthBitDepth: target.DepthBits,
		SampleCount:   samples,
		Dimension:     target.Dimension,
		AutoMips:      target.MipMaps,
	}
}

/**
 * @brief Builds the descriptor for a full-resolution colour buffer with
 * no mipmaps in the default colour format.
 */
func NewColourTargetDescriptor(width, height uint32) *RenderTargetDescriptor {
	return &RenderTargetDescriptor{
		Width:       width,
		Height:      height,
		Format:      TextureFormatRGBA8,
		DepthBits:   0,
		MSAASamples: 1,
		Dimension:   TextureDimension2D,
		MipMaps:     false,
	}
}

/**
 * @brief Builds the descriptor for a placeholder depth buffer. The host
 * pipeline's real depth target is not yet available when the interaction
 * pass runs, hence a private one.
 */
func NewDepthTargetDescriptor(width, height uint32) *RenderTargetDescriptor {
	return &RenderTargetDescriptor{
		Width:       width,
		Height:      height,
		Format:      TextureFormatDepth32F,
		DepthBits:   32,
		MSAASamples: 1,
		Dimension:   TextureDimension2D,
		MipMaps:     false,
	}
}

/**
 * @brief The neutral clear value for the interaction buffers: no foam,
 * zero XZ normal perturbation, zero displacement. Consumers treat this
 * exact value as "no interaction" rather than zero.
 */
func InteractionBufferClearColour() math.Vec4 {
	return math.NewVec4(0.0, 0.5, 0.5, 0.5)
}
