package framegraph

import (
	"fmt"

	"github.com/spaghettifunk/naiad/engine/core"
	"github.com/spaghettifunk/naiad/engine/renderer"
	"github.com/spaghettifunk/naiad/engine/renderer/metadata"
)

/** @brief A handle to a declared frame graph texture. */
type TextureHandle int

/** @brief An invalid texture handle. */
const InvalidTextureHandle TextureHandle = -1

type textureResource struct {
	name       string
	descriptor *metadata.FrameTextureDescriptor
	// Host-owned texture. Imported textures are never allocated, aliased
	// or released by the graph, and writes to them are always observable.
	imported *metadata.Texture
	// Declared as externally observed: sampled later through a global
	// binding rather than a graph-visible read. Never culled away, and
	// released by the integration layer once the camera is done, not by
	// the graph itself.
	external bool
	firstUse int
	lastUse  int
	slot     int
}

func (t *textureResource) used() bool {
	return t.firstUse >= 0
}

/**
 * @brief One pass node of the frame graph. Declares the textures the pass
 * reads and writes; the execute callback is deferred until Graph.Run.
 * All values the callback needs must be snapshotted at declaration time.
 */
type PassNode struct {
	name            string
	index           int
	reads           []TextureHandle
	writes          []TextureHandle
	cullingDisabled bool
	culled          bool
	execute         func(sink renderer.CommandSink, resources *Resources) error
}

func (p *PassNode) Reads(handles ...TextureHandle) *PassNode {
	p.reads = append(p.reads, handles...)
	return p
}

func (p *PassNode) Writes(handles ...TextureHandle) *PassNode {
	p.writes = append(p.writes, handles...)
	return p
}

/**
 * @brief Opts this pass out of dead-pass culling regardless of declared
 * consumers. Prefer Builder.MarkExternallyObserved on the written
 * textures; this remains for passes whose side effects are not tied to
 * any one resource.
 */
func (p *PassNode) DisableCulling() *PassNode {
	p.cullingDisabled = true
	return p
}

func (p *PassNode) SetExecute(fn func(sink renderer.CommandSink, resources *Resources) error) *PassNode {
	p.execute = fn
	return p
}

/**
 * @brief Collects per-frame texture declarations and pass nodes, then
 * compiles them into an executable Graph. One builder is used either for
 * a whole frame (deferred path) or for a single pass (immediate path,
 * a trivial graph with one node).
 */
type Builder struct {
	textures []*textureResource
	passes   []*PassNode
}

func NewBuilder() *Builder {
	return &Builder{}
}

// CreateTexture declares a new transient graph texture.
func (b *Builder) CreateTexture(name string, descriptor *metadata.FrameTextureDescriptor) TextureHandle {
	b.textures = append(b.textures, &textureResource{
		name:       name,
		descriptor: descriptor,
		firstUse:   -1,
		lastUse:    -1,
		slot:       -1,
	})
	return TextureHandle(len(b.textures) - 1)
}

// ImportTexture wraps a host-owned texture (i.e. the scene colour or
// depth buffer) so passes can declare reads/writes against it.
func (b *Builder) ImportTexture(name string, texture *metadata.Texture) TextureHandle {
	b.textures = append(b.textures, &textureResource{
		name:     name,
		imported: texture,
		firstUse: -1,
		lastUse:  -1,
		slot:     -1,
	})
	return TextureHandle(len(b.textures) - 1)
}

/**
 * @brief Declares that the texture has a consumer outside the graph (a
 * global shading binding). The scheduler never culls its writer and the
 * graph does not release it; the integration layer does, at end of camera.
 */
func (b *Builder) MarkExternallyObserved(handle TextureHandle) {
	if int(handle) < 0 || int(handle) >= len(b.textures) {
		return
	}
	b.textures[handle].external = true
}

func (b *Builder) AddPass(name string) *PassNode {
	node := &PassNode{
		name:  name,
		index: len(b.passes),
	}
	b.passes = append(b.passes, node)
	return node
}

/**
 * @brief Compiles the declarations into an executable graph: culls passes
 * with no observable outputs, computes transient lifetimes and aliases
 * physical allocations between textures with compatible descriptors and
 * disjoint lifetimes.
 */
func (b *Builder) Compile() (*Graph, error) {
	for _, p := range b.passes {
		for _, h := range append(append([]TextureHandle{}, p.reads...), p.writes...) {
			if int(h) < 0 || int(h) >= len(b.textures) {
				return nil, fmt.Errorf("pass '%s' references invalid texture handle %d", p.name, h)
			}
		}
	}

	b.cullPasses()
	b.computeLifetimes()
	physicalCount := b.assignSlots()

	return &Graph{
		textures: b.textures,
		passes:   b.passes,
		physical: make([]*metadata.Texture, physicalCount),
	}, nil
}

// A pass survives when culling is disabled for it, or when at least one of
// its writes is observable: read by a surviving later pass, host-owned, or
// declared externally observed.
func (b *Builder) cullPasses() {
	needed := make(map[TextureHandle]bool)
	for i := len(b.passes) - 1; i >= 0; i-- {
		p := b.passes[i]
		survives := p.cullingDisabled
		for _, w := range p.writes {
			t := b.textures[w]
			if t.imported != nil || t.external || needed[w] {
				survives = true
				break
			}
		}
		if !survives {
			p.culled = true
			core.LogDebug("framegraph: culled pass '%s' (no declared consumers)", p.name)
			continue
		}
		for _, r := range p.reads {
			needed[r] = true
		}
	}
}

func (b *Builder) computeLifetimes() {
	for _, p := range b.passes {
		if p.culled {
			continue
		}
		for _, h := range append(append([]TextureHandle{}, p.reads...), p.writes...) {
			t := b.textures[h]
			if t.firstUse < 0 {
				t.firstUse = p.index
			}
			t.lastUse = p.index
		}
	}
}

// Greedy allocation slot assignment. Two created textures share a slot
// when their descriptors match and their pass lifetimes do not overlap.
// Externally observed textures outlive the graph and are never aliased.
func (b *Builder) assignSlots() int {
	type slotState struct {
		descriptor *metadata.FrameTextureDescriptor
		lastUse    int
	}
	var slots []*slotState
	for _, t := range b.textures {
		if t.imported != nil || !t.used() {
			continue
		}
		if !t.external {
			assigned := false
			for si, s := range slots {
				if s.descriptor != nil && *s.descriptor == *t.descriptor && s.lastUse < t.firstUse {
					t.slot = si
					s.lastUse = t.lastUse
					assigned = true
					break
				}
			}
			if assigned {
				continue
			}
		}
		slot := &slotState{descriptor: t.descriptor, lastUse: t.lastUse}
		if t.external {
			// Poison the descriptor match so nothing aliases this slot.
			slot.descriptor = nil
		}
		slots = append(slots, slot)
		t.slot = len(slots) - 1
	}
	return len(slots)
}

/**
 * @brief An executable, compiled frame graph. Run allocates transient
 * textures at first use, executes surviving passes in declaration order
 * and releases transients after their last use.
 */
type Graph struct {
	textures []*textureResource
	passes   []*PassNode
	physical []*metadata.Texture
}

/**
 * @brief Resolves texture handles to physical textures during execution.
 */
type Resources struct {
	graph *Graph
}

func (r *Resources) Get(handle TextureHandle) *metadata.Texture {
	if int(handle) < 0 || int(handle) >= len(r.graph.textures) {
		return nil
	}
	t := r.graph.textures[handle]
	if t.imported != nil {
		return t.imported
	}
	if t.slot < 0 {
		return nil
	}
	return r.graph.physical[t.slot]
}

func (g *Graph) Run(sink renderer.CommandSink) error {
	resources := &Resources{graph: g}
	for i, p := range g.passes {
		if p.culled {
			continue
		}
		if err := g.allocateFor(i, sink); err != nil {
			core.LogError("framegraph: pass '%s' resource allocation failed: %s", p.name, err.Error())
			continue
		}
		if p.execute != nil {
			if err := p.execute(sink, resources); err != nil {
				// Failures stay local to the pass; siblings still run.
				core.LogError("framegraph: pass '%s' failed: %s", p.name, err.Error())
			}
		}
		g.releaseAfter(i, sink)
	}
	return nil
}

func (g *Graph) allocateFor(passIndex int, sink renderer.CommandSink) error {
	for _, t := range g.textures {
		if t.imported != nil || t.slot < 0 || t.firstUse != passIndex {
			continue
		}
		if g.physical[t.slot] != nil {
			// Aliased onto an earlier allocation.
			continue
		}
		texture, err := sink.AllocateTransientTexture(t.name, t.descriptor)
		if err != nil {
			return err
		}
		g.physical[t.slot] = texture
	}
	return nil
}

func (g *Graph) releaseAfter(passIndex int, sink renderer.CommandSink) {
	for _, t := range g.textures {
		if t.imported != nil || t.slot < 0 || t.external || t.lastUse != passIndex {
			continue
		}
		if g.slotExpired(t.slot, passIndex) && g.physical[t.slot] != nil {
			sink.ReleaseTransientTexture(g.physical[t.slot])
			g.physical[t.slot] = nil
		}
	}
}

// slotExpired reports whether no texture assigned to the slot is used
// after the given pass index.
func (g *Graph) slotExpired(slot, passIndex int) bool {
	for _, t := range g.textures {
		if t.slot == slot && t.lastUse > passIndex {
			return false
		}
	}
	return true
}

/**
 * @brief Returns the physical textures of externally observed graph
 * textures. The integration layer must release these once the host camera
 * is done sampling them.
 */
func (g *Graph) ExternalTextures() []*metadata.Texture {
	var out []*metadata.Texture
	for _, t := range g.textures {
		if t.external && t.slot >= 0 && g.physical[t.slot] != nil {
			out = append(out, g.physical[t.slot])
		}
	}
	return out
}
