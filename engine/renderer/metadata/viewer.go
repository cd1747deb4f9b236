package metadata

import (
	"strings"

	"github.com/spaghettifunk/naiad/engine/math"
)

/** @brief The kind of viewer (camera/eye) being rendered for a frame. */
type ViewerKind int

const (
	/** @brief The primary in-game view. */
	VIEWER_KIND_GAME ViewerKind = 0x1
	/** @brief An editor scene view. */
	VIEWER_KIND_SCENE ViewerKind = 0x2
	/** @brief An asset-preview view (thumbnails, inspectors). */
	VIEWER_KIND_PREVIEW ViewerKind = 0x3
	/** @brief A reflection-probe capture view. */
	VIEWER_KIND_REFLECTION_PROBE ViewerKind = 0x4
)

/**
 * @brief Viewers whose name contains this marker are planar-reflection
 * captures. The horizon water pass must never draw into them, otherwise
 * the infinite water would be reflected into itself.
 */
const REFLECTION_VIEW_MARKER string = "Reflection"

/**
 * @brief The per-frame record describing the camera/eye being rendered.
 * Read-only to the water passes; determines execution eligibility.
 */
type Viewer struct {
	/** @brief The viewer kind. */
	Kind ViewerKind
	/** @brief The identifying label of the viewer. */
	Name string
	/** @brief The world position of the viewer. */
	Position math.Vec3
	/** @brief The orientation of the viewer. */
	Rotation math.Quaternion
	/** @brief The target resolution Width in pixels. */
	Width uint32
	/** @brief The target resolution Height in pixels. */
	Height uint32
}

// IsReflectionCapture reports whether the viewer label carries the
// reflection-capture marker.
func (v *Viewer) IsReflectionCapture() bool {
	return strings.Contains(v.Name, REFLECTION_VIEW_MARKER)
}
