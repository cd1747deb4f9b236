package headless

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/spaghettifunk/naiad/engine/core"
	"github.com/spaghettifunk/naiad/engine/math"
	"github.com/spaghettifunk/naiad/engine/renderer/metadata"
)

/** @brief The kinds of commands the headless backend records. */
type CommandKind int

const (
	COMMAND_BEGIN_FRAME CommandKind = iota
	COMMAND_END_FRAME
	COMMAND_ALLOCATE_TEXTURE
	COMMAND_RELEASE_TEXTURE
	COMMAND_BIND_TARGETS
	COMMAND_CLEAR
	COMMAND_SUBMIT_BATCH
	COMMAND_PUBLISH_TEXTURE
)

/**
 * @brief One recorded command. The headless backend performs no GPU work;
 * it records the submitted stream so tests and offline runs can inspect it.
 */
type Command struct {
	Kind        CommandKind
	TextureName string
	ColourNames []string
	DepthName   string
	ClearColour math.Vec4
	Batch       *metadata.DrawBatch
	BindingName string
}

// Signature returns a stable textual form of the command, used to compare
// streams from different execution strategies.
func (c Command) Signature() string {
	switch c.Kind {
	case COMMAND_BEGIN_FRAME:
		return "begin_frame"
	case COMMAND_END_FRAME:
		return "end_frame"
	case COMMAND_ALLOCATE_TEXTURE:
		return "allocate " + c.TextureName
	case COMMAND_RELEASE_TEXTURE:
		return "release " + c.TextureName
	case COMMAND_BIND_TARGETS:
		return fmt.Sprintf("bind [%s] depth=%s", strings.Join(c.ColourNames, ","), c.DepthName)
	case COMMAND_CLEAR:
		return fmt.Sprintf("clear (%.3f,%.3f,%.3f,%.3f)", c.ClearColour.X, c.ClearColour.Y, c.ClearColour.Z, c.ClearColour.W)
	case COMMAND_SUBMIT_BATCH:
		shader := "<none>"
		if c.Batch.Shader != nil {
			shader = c.Batch.Shader.Name
		}
		ids := make([]string, 0, len(c.Batch.Geometries))
		for _, g := range c.Batch.Geometries {
			ids = append(ids, fmt.Sprintf("%d", g.UniqueID))
		}
		// The third column is the sun matrix's forward axis; raw
		// components keep zero-value uniforms printable.
		u := c.Batch.Uniforms
		return fmt.Sprintf("draw shader=%s depth_test=%t %s=(%.3f,%.3f,%.3f) %s=%.3f %s=%.2f geometries=[%s]",
			shader, c.Batch.DepthTest,
			metadata.UNIFORM_SUN_DIRECTION, u.SunDirection.Data[8], u.SunDirection.Data[9], u.SunDirection.Data[10],
			metadata.UNIFORM_WATER_HEIGHT, u.WaterHeight,
			metadata.UNIFORM_BUMP_SCALE, u.BumpScale,
			strings.Join(ids, ","))
	case COMMAND_PUBLISH_TEXTURE:
		return fmt.Sprintf("publish %s=%s", c.BindingName, c.TextureName)
	}
	return "unknown"
}

/**
 * @brief A recording command sink. Allocations hand out real texture
 * objects with backend-unique internal identifiers; draws, clears and
 * publications are appended to the command log in submission order.
 */
type Backend struct {
	Commands []Command

	nextTextureID  uint32
	nextGeometryID uint32
	nextShaderID   uint32

	liveTransients map[string]*metadata.Texture
	bindings       map[string]*metadata.Texture
	shaders        map[string]*metadata.Shader

	// When positive, CreateShader fails and decrements. Drives the
	// shader-creation-failure paths in tests and demos.
	FailShaderCreates int
	// When true, CreateGeometry fails.
	FailGeometryCreates bool
}

func NewBackend() *Backend {
	return &Backend{
		liveTransients: make(map[string]*metadata.Texture),
		bindings:       make(map[string]*metadata.Texture),
		shaders:        make(map[string]*metadata.Shader),
	}
}

func (b *Backend) BeginFrame(frame *metadata.FrameContext) error {
	b.Commands = append(b.Commands, Command{Kind: COMMAND_BEGIN_FRAME})
	return nil
}

func (b *Backend) EndFrame(frame *metadata.FrameContext) error {
	b.Commands = append(b.Commands, Command{Kind: COMMAND_END_FRAME})
	return nil
}

func (b *Backend) AllocateTransientTexture(name string, descriptor *metadata.FrameTextureDescriptor) (*metadata.Texture, error) {
	if descriptor.Width == 0 || descriptor.Height == 0 {
		return nil, fmt.Errorf("transient texture '%s' has a zero dimension", name)
	}
	b.nextTextureID++
	flags := metadata.TextureFlagBits(metadata.TextureFlagIsWriteable | metadata.TextureFlagIsTransient)
	if descriptor.DepthBitDepth > 0 {
		flags |= metadata.TextureFlagBits(metadata.TextureFlagIsDepth)
	}
	texture := &metadata.Texture{
		ID:            b.nextTextureID,
		Name:          name,
		Width:         descriptor.Width,
		Height:        descriptor.Height,
		Format:        descriptor.ColourFormat,
		DepthBitDepth: descriptor.DepthBitDepth,
		Flags:         flags,
		InternalData:  uuid.New().String(),
	}
	b.liveTransients[texture.InternalData.(string)] = texture
	b.Commands = append(b.Commands, Command{Kind: COMMAND_ALLOCATE_TEXTURE, TextureName: name})
	return texture, nil
}

func (b *Backend) ReleaseTransientTexture(texture *metadata.Texture) {
	if texture == nil {
		return
	}
	key, ok := texture.InternalData.(string)
	if !ok {
		core.LogWarn("headless: release of a texture not allocated by this backend: '%s'", texture.Name)
		return
	}
	if _, live := b.liveTransients[key]; !live {
		core.LogWarn("headless: double release of transient texture '%s'", texture.Name)
		return
	}
	delete(b.liveTransients, key)
	b.Commands = append(b.Commands, Command{Kind: COMMAND_RELEASE_TEXTURE, TextureName: texture.Name})
}

func (b *Backend) BindTargets(colours []*metadata.Texture, depth *metadata.Texture) {
	cmd := Command{Kind: COMMAND_BIND_TARGETS}
	for _, c := range colours {
		if c != nil {
			cmd.ColourNames = append(cmd.ColourNames, c.Name)
		}
	}
	if depth != nil {
		cmd.DepthName = depth.Name
	}
	b.Commands = append(b.Commands, cmd)
}

func (b *Backend) Clear(colour math.Vec4) {
	b.Commands = append(b.Commands, Command{Kind: COMMAND_CLEAR, ClearColour: colour})
}

func (b *Backend) SubmitBatch(batch *metadata.DrawBatch) error {
	if batch == nil {
		return fmt.Errorf("nil draw batch submitted")
	}
	b.Commands = append(b.Commands, Command{Kind: COMMAND_SUBMIT_BATCH, Batch: batch})
	return nil
}

func (b *Backend) PublishGlobalTexture(name string, texture *metadata.Texture) {
	b.bindings[name] = texture
	cmd := Command{Kind: COMMAND_PUBLISH_TEXTURE, BindingName: name}
	if texture != nil {
		cmd.TextureName = texture.Name
	}
	b.Commands = append(b.Commands, cmd)
}

func (b *Backend) CreateGeometry(config *metadata.GeometryConfig) (*metadata.Geometry, error) {
	if b.FailGeometryCreates {
		return nil, fmt.Errorf("geometry creation failed for '%s'", config.Name)
	}
	if config.VertexCount == 0 {
		return nil, fmt.Errorf("geometry '%s' has no vertices", config.Name)
	}
	b.nextGeometryID++
	return &metadata.Geometry{
		ID:         b.nextGeometryID,
		InternalID: b.nextGeometryID,
		Name:       config.Name,
		Center:     config.Center,
		Extents: math.Extents3D{
			Min: config.MinExtents,
			Max: config.MaxExtents,
		},
	}, nil
}

func (b *Backend) DestroyGeometry(geometry *metadata.Geometry) {}

func (b *Backend) CreateShader(name string) (*metadata.Shader, error) {
	if b.FailShaderCreates > 0 {
		b.FailShaderCreates--
		return nil, fmt.Errorf("shader module compilation failed for '%s'", name)
	}
	if shader, ok := b.shaders[name]; ok {
		return shader, nil
	}
	b.nextShaderID++
	shader := &metadata.Shader{ID: b.nextShaderID, Name: name}
	b.shaders[name] = shader
	return shader, nil
}

func (b *Backend) DestroyShader(shader *metadata.Shader) {
	if shader != nil {
		delete(b.shaders, shader.Name)
	}
}

// GlobalBinding returns the texture published under the given name, or nil.
func (b *Backend) GlobalBinding(name string) *metadata.Texture {
	return b.bindings[name]
}

// LiveTransientCount returns how many transient textures are still allocated.
func (b *Backend) LiveTransientCount() int {
	return len(b.liveTransients)
}

// CommandsOfKind filters the recorded log by kind.
func (b *Backend) CommandsOfKind(kind CommandKind) []Command {
	var out []Command
	for _, c := range b.Commands {
		if c.Kind == kind {
			out = append(out, c)
		}
	}
	return out
}

// Signatures returns the stable textual form of the full command log.
func (b *Backend) Signatures() []string {
	out := make([]string, 0, len(b.Commands))
	for _, c := range b.Commands {
		out = append(out, c.Signature())
	}
	return out
}

// ResetCommands clears the recorded log while keeping live resources.
func (b *Backend) ResetCommands() {
	b.Commands = nil
}
