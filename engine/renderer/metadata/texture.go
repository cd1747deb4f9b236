package metadata

const (
	/** @brief The published binding name for interaction buffer A (foam/normal/displacement). */
	WATER_INTERACTION_A_TEXTURE_NAME string = "water_interaction_a"
	/** @brief The published binding name for interaction buffer B (reserved packed data). */
	WATER_INTERACTION_B_TEXTURE_NAME string = "water_interaction_b"
	/** @brief The name of the placeholder depth target used by the interaction pass. */
	WATER_INTERACTION_DEPTH_TEXTURE_NAME string = "water_interaction_depth"
)

type TextureFlag int

const (
	/** @brief Indicates if the texture can be written (rendered) to. */
	TextureFlagIsWriteable TextureFlag = 0x1
	/** @brief Indicates if the texture is a frame-scoped transient allocation. */
	TextureFlagIsTransient TextureFlag = 0x2
	/** @brief Indicates if the texture is a depth target. */
	TextureFlagIsDepth TextureFlag = 0x4
)

/** @brief Holds bit flags for textures. */
type TextureFlagBits uint8

/** @brief Supported texture colour/depth formats. */
type TextureFormat int

const (
	/** @brief The default 8-bit RGBA colour format. */
	TextureFormatRGBA8 TextureFormat = iota
	/** @brief A 16-bit floating point RGBA colour format. */
	TextureFormatRGBA16F
	/** @brief A 32-bit floating point depth format. */
	TextureFormatDepth32F
)

type TextureDimension int

const (
	/** @brief A standard two-dimensional texture. */
	TextureDimension2D TextureDimension = iota
	/** @brief A cube texture, used for cubemaps. */
	TextureDimensionCube
)

/**
 * @brief Represents a texture.
 */
type Texture struct {
	/** @brief The unique texture identifier. */
	ID uint32
	/** @brief The texture Name. */
	Name string
	/** @brief The texture Width. */
	Width uint32
	/** @brief The texture Height. */
	Height uint32
	/** @brief The colour or depth Format of the texture. */
	Format TextureFormat
	/** @brief The depth bit depth. Zero for colour-only textures. */
	DepthBitDepth uint8
	/** @brief Holds various Flags for this texture. */
	Flags TextureFlagBits
	/** @brief The texture Generation. Incremented every time the data is reloaded. */
	Generation uint32
	/** @brief Renderer-backend internal data. */
	InternalData interface{}
}

/**
 * @brief Describes a frame-resource-graph texture. Produced once per frame
 * per buffer; consumed to allocate either a transient render target
 * (immediate path) or a graph texture (deferred path).
 * Invariant: DepthBitDepth is zero for colour-only buffers and non-zero
 * only for depth targets.
 */
type FrameTextureDescriptor struct {
	/** @brief The Width in pixels. */
	Width uint32
	/** @brief The Height in pixels. */
	Height uint32
	/** @brief The colour Format. */
	ColourFormat TextureFormat
	/** @brief The depth bit depth. Zero for colour-only buffers. */
	DepthBitDepth uint8
	/** @brief The multisample count. */
	SampleCount uint8
	/** @brief The Dimension of the texture. */
	Dimension TextureDimension
	/** @brief Whether mip levels are generated automatically. */
	AutoMips bool
}

/**
 * @brief The legacy render-target descriptor used by the immediate
 * command-stream path. Kept so existing callers can be translated to
 * graph textures via FrameTextureDescriptorFromTarget.
 */
type RenderTargetDescriptor struct {
	Width       uint32
	Height      uint32
	Format      TextureFormat
	DepthBits   uint8
	MSAASamples uint8
	Dimension   TextureDimension
	MipMaps     bool
}
