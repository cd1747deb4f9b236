package systems

import (
	"fmt"
	"sync"

	"github.com/spaghettifunk/naiad/engine/core"
	"github.com/spaghettifunk/naiad/engine/renderer"
	"github.com/spaghettifunk/naiad/engine/renderer/framegraph"
	"github.com/spaghettifunk/naiad/engine/renderer/metadata"
	"github.com/spaghettifunk/naiad/engine/renderer/passes"
)

/** @brief How the water passes are scheduled within a viewer frame. */
type ExecutionMode int

const (
	/** @brief Each pass allocates, draws and releases in place at its insertion point. */
	EXECUTION_MODE_IMMEDIATE ExecutionMode = 0x1
	/** @brief All passes declare into one frame graph, compiled and executed together. */
	EXECUTION_MODE_GRAPH ExecutionMode = 0x2
)

/** @brief The water pipeline system configuration. */
type WaterPipelineConfig struct {
	Mode  ExecutionMode
	Water *metadata.WaterConfig
}

/**
 * @brief Owns the water render passes and drives them through a viewer
 * frame. The system registers every pass at an insertion point and, per
 * frame, either runs each pass as its own trivial graph (immediate) or
 * declares all of them into a single compiled frame graph.
 *
 * Interaction buffers are sampled by the host's shading programs after
 * the passes have run, so the system holds them live for the whole
 * camera and returns them to the backend at end of frame.
 */
type WaterPipelineSystem struct {
	mode    ExecutionMode
	backend renderer.CommandSink
	water   *metadata.WaterConfig
	cache   *passes.ResourceCache

	interaction *passes.InteractionBufferPass
	horizon     *passes.HorizonWaterPass
	caustics    *passes.CausticsPass

	// Insertion points in host pipeline order.
	phases     []metadata.InsertionPoint
	registered map[metadata.InsertionPoint][]passes.WaterPass

	// Reloads arrive on the watcher goroutine; they are staged here and
	// swapped into the passes between frames, never mid-frame.
	configMu sync.Mutex
	pending  *metadata.WaterConfig

	// Textures with external consumers, released once the camera is done.
	pendingReleases []*metadata.Texture
}

func NewWaterPipelineSystem(config *WaterPipelineConfig, backend renderer.CommandSink) (*WaterPipelineSystem, error) {
	if backend == nil {
		return nil, fmt.Errorf("water pipeline requires a command sink")
	}
	if config == nil {
		config = &WaterPipelineConfig{}
	}
	mode := config.Mode
	if mode != EXECUTION_MODE_IMMEDIATE && mode != EXECUTION_MODE_GRAPH {
		mode = EXECUTION_MODE_GRAPH
	}
	water := config.Water
	if water == nil {
		water = metadata.DefaultWaterConfig()
	}
	if err := water.Validate(); err != nil {
		return nil, err
	}

	s := &WaterPipelineSystem{
		mode:    mode,
		backend: backend,
		water:   water,
		cache:   passes.NewResourceCache(backend),
		phases: []metadata.InsertionPoint{
			metadata.INSERTION_POINT_BEFORE_OPAQUE_PREPASS,
			metadata.INSERTION_POINT_BEFORE_TRANSPARENTS,
		},
		registered: make(map[metadata.InsertionPoint][]passes.WaterPass),
	}

	s.interaction = passes.NewInteractionBufferPass(water)
	s.horizon = passes.NewHorizonWaterPass(s.cache)
	s.caustics = passes.NewCausticsPass(s.cache, water)

	s.RegisterPass(s.interaction)
	s.RegisterPass(s.horizon)
	s.RegisterPass(s.caustics)

	core.EventRegister(core.EVENT_CODE_WATER_CONFIG_CHANGED, s, s.onWaterConfigChanged)

	return s, nil
}

// RegisterPass adds a pass at its declared insertion point. Registration
// order within a point is submission order.
func (s *WaterPipelineSystem) RegisterPass(pass passes.WaterPass) {
	point := pass.InsertionPoint()
	s.registered[point] = append(s.registered[point], pass)
	core.LogInfo("water pipeline registered pass '%s'", pass.Name())
}

// SetHorizonMesh assigns the externally authored horizon water geometry.
func (s *WaterPipelineSystem) SetHorizonMesh(mesh *metadata.Geometry) {
	s.horizon.SetMesh(mesh)
}

// Cache exposes the shared resource cache, mainly for teardown ordering
// and tests.
func (s *WaterPipelineSystem) Cache() *passes.ResourceCache {
	return s.cache
}

func (s *WaterPipelineSystem) Config() *metadata.WaterConfig {
	return s.water
}

/**
 * @brief Runs every registered pass for one viewer frame. Pass failures
 * never fail the frame; each pass degrades to a skip on its own.
 */
func (s *WaterPipelineSystem) RunViewerFrame(frame *metadata.FrameContext) error {
	if frame == nil || frame.Viewer == nil {
		return fmt.Errorf("water pipeline frame requires a viewer")
	}
	s.applyPendingConfig()

	if err := s.backend.BeginFrame(frame); err != nil {
		return err
	}

	switch s.mode {
	case EXECUTION_MODE_IMMEDIATE:
		s.runImmediate(frame)
	default:
		s.runGraph(frame)
	}

	if err := s.backend.EndFrame(frame); err != nil {
		return err
	}

	// The camera is done; interaction buffers may now go back to the pool.
	s.releasePending()
	return nil
}

// runImmediate compiles and executes a trivial one-node graph per pass,
// in insertion-point order. Resource lifetimes match the old in-place
// behaviour except for the externally observed buffers, which are still
// held until end of camera.
func (s *WaterPipelineSystem) runImmediate(frame *metadata.FrameContext) {
	for _, point := range s.phases {
		for _, pass := range s.registered[point] {
			builder := framegraph.NewBuilder()
			if err := pass.DeclareResources(builder, frame); err != nil {
				core.LogError("water pass '%s' declaration failed: %s", pass.Name(), err.Error())
				continue
			}
			s.compileAndRun(builder, pass.Name())
		}
	}
}

// runGraph declares every pass into one builder and executes the
// compiled graph once. Declaration order follows insertion points, which
// keeps the submitted command stream equivalent to the immediate path.
func (s *WaterPipelineSystem) runGraph(frame *metadata.FrameContext) {
	builder := framegraph.NewBuilder()
	for _, point := range s.phases {
		for _, pass := range s.registered[point] {
			if err := pass.DeclareResources(builder, frame); err != nil {
				core.LogError("water pass '%s' declaration failed: %s", pass.Name(), err.Error())
			}
		}
	}
	s.compileAndRun(builder, "frame")
}

func (s *WaterPipelineSystem) compileAndRun(builder *framegraph.Builder, scope string) {
	graph, err := builder.Compile()
	if err != nil {
		core.LogError("water pipeline could not compile graph for '%s': %s", scope, err.Error())
		return
	}
	if err := graph.Run(s.backend); err != nil {
		core.LogError("water pipeline graph run failed for '%s': %s", scope, err.Error())
		return
	}
	s.pendingReleases = append(s.pendingReleases, graph.ExternalTextures()...)
}

func (s *WaterPipelineSystem) releasePending() {
	for _, texture := range s.pendingReleases {
		s.backend.ReleaseTransientTexture(texture)
	}
	s.pendingReleases = s.pendingReleases[:0]
}

// onWaterConfigChanged stages the reloaded configuration. May run on the
// watcher goroutine, so the passes are not touched here; the swap happens
// at the top of the next RunViewerFrame. Always returns false so other
// listeners still observe the change.
func (s *WaterPipelineSystem) onWaterConfigChanged(code core.SystemEventCode, sender interface{}, listenerInst interface{}, data core.EventContext) bool {
	cfg, ok := data.Data.(*metadata.WaterConfig)
	if !ok || cfg == nil {
		core.LogWarn("water pipeline received a config-changed event without a configuration")
		return false
	}
	if err := cfg.Validate(); err != nil {
		core.LogError("water pipeline rejected reloaded configuration: %s", err.Error())
		return false
	}
	s.configMu.Lock()
	s.pending = cfg
	s.configMu.Unlock()
	core.LogInfo("water pipeline staged reloaded configuration (caustic scale %.2f, debug '%s')", cfg.CausticScale, cfg.Debug)
	return false
}

// applyPendingConfig swaps a staged reload into the passes. Called only
// from the frame loop, so the passes see a stable config for the whole
// frame.
func (s *WaterPipelineSystem) applyPendingConfig() {
	s.configMu.Lock()
	cfg := s.pending
	s.pending = nil
	s.configMu.Unlock()
	if cfg == nil {
		return
	}
	s.water = cfg
	s.interaction.SetConfig(cfg)
	s.caustics.SetConfig(cfg)
}

func (s *WaterPipelineSystem) Shutdown() error {
	core.EventUnregister(core.EVENT_CODE_WATER_CONFIG_CHANGED, s, s.onWaterConfigChanged)
	s.releasePending()
	s.cache.Destroy()
	return nil
}
