package passes

import (
	"github.com/spaghettifunk/naiad/engine/renderer/framegraph"
	"github.com/spaghettifunk/naiad/engine/renderer/metadata"
)

/**
 * @brief A water render pass. A pass declares its transient resources,
 * reads/writes and a deferred execute callback against the frame graph
 * builder; the immediate execution strategy runs the same declaration as
 * a trivial single-node graph.
 *
 * DeclareResources must snapshot every per-draw value it captures; the
 * execute callback may run well after frame state has moved on.
 */
type WaterPass interface {
	Name() string
	InsertionPoint() metadata.InsertionPoint
	DeclareResources(builder *framegraph.Builder, frame *metadata.FrameContext) error
}

// viewerEligible reports whether the water passes run at all for the
// given viewer. Only the primary game view and the editor scene view
// qualify; everything else is an expected, silent skip.
func viewerEligible(viewer *metadata.Viewer) bool {
	if viewer == nil {
		return false
	}
	return viewer.Kind == metadata.VIEWER_KIND_GAME || viewer.Kind == metadata.VIEWER_KIND_SCENE
}
