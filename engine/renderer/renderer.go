package renderer

import (
	"sync"

	"github.com/glimmer-vis/glimmer/engine/quality"
	"github.com/glimmer-vis/glimmer/engine/window"
)

// Uniforms is the per-frame uniform block uploaded to the visualizer shader.
// The field order and padding mirror the WGSL Uniforms struct exactly.
type Uniforms struct {
	Time           float32
	QualityFactor  float32
	IterationCount float32
	DetailLevel    float32
	ResolutionX    float32
	ResolutionY    float32
	_              [2]float32
}

// renderer is the implementation of the Renderer interface.
type renderer struct {
	mu *sync.Mutex

	backendType RendererBackendType
	backend     wgpuRendererBackend

	width  int
	height int

	// Pre-creation config collected from builder options
	forceFallbackAdapter bool
	pendingPresentMode   *PresentMode
	shaderSource         string
}

// Renderer defines the interface for the visualizer rendering system.
//
// This is a high-level API that owns the GPU surface, the fullscreen visualizer pipeline,
// and the per-frame uniform upload. Quality scaling happens entirely through the uniforms:
// the pipeline is built once and every frame is shaded at whatever iteration count and
// detail level the quality controller currently prescribes.
type Renderer interface {
	// RenderFrame draws a single visualizer frame using the given elapsed time and
	// quality parameters, then presents it to the surface.
	//
	// Parameters:
	//   - elapsed: seconds since the visualizer started, used to animate the shader
	//   - params: the current quality parameters to upload as shader uniforms
	//
	// Returns:
	//   - error: an error if the frame could not be acquired or encoded
	RenderFrame(elapsed float64, params quality.Params) error

	// Resize configures the underlying backend to handle a new surface size.
	// This should be called when re-sizing the window or when the surface size should change.
	//
	// Parameters:
	//   - width: the new width of the surface in pixels
	//   - height: the new height of the surface in pixels
	Resize(width, height int)

	// SetPresentMode sets the surface present mode which controls how frames are delivered to the display.
	// The new mode takes effect on the next Resize.
	//
	// Parameters:
	//   - mode: the PresentMode to use (VSync or Uncapped)
	SetPresentMode(mode PresentMode)

	// Release frees all GPU resources held by the renderer.
	Release()
}

var _ Renderer = &renderer{}

// NewRenderer creates a new Renderer instance with the specified backend type, drawing to
// the given window's surface. The visualizer pipeline is created immediately, so the window
// must already be open.
//
// Parameters:
//   - backendType: the type of rendering backend to use (e.g., WGPU)
//   - win: the window whose surface the renderer draws to
//   - options: variadic list of RendererBuilderOption functions to configure the Renderer
//
// Returns:
//   - Renderer: a new instance of Renderer configured with the specified backend and options
//   - error: an error if the visualizer pipeline could not be created
func NewRenderer(backendType RendererBackendType, win window.Window, options ...RendererBuilderOption) (Renderer, error) {
	r := &renderer{
		mu:           &sync.Mutex{},
		backendType:  backendType,
		shaderSource: visualizerShaderSource,
		width:        win.Width(),
		height:       win.Height(),
	}

	// Apply options first so config flags (e.g. forceFallbackAdapter) are
	// available before the backend requests a GPU adapter.
	for _, opt := range options {
		opt(r)
	}

	switch backendType {
	case BackendTypeWGPU:
		fallthrough
	default:
		r.backend = newWGPURendererBackend(win.SurfaceDescriptor(), r.forceFallbackAdapter)
	}

	if r.pendingPresentMode != nil {
		r.backend.SetPresentMode(*r.pendingPresentMode)
	}

	r.backend.ConfigureSurface(r.width, r.height)
	if err := r.backend.InitVisualizerPipeline(r.shaderSource); err != nil {
		r.backend.Release()
		return nil, err
	}
	return r, nil
}

func (r *renderer) RenderFrame(elapsed float64, params quality.Params) error {
	r.mu.Lock()
	u := Uniforms{
		Time:           float32(elapsed),
		QualityFactor:  float32(params.QualityFactor),
		IterationCount: float32(params.IterationCount),
		DetailLevel:    float32(params.DetailLevel),
		ResolutionX:    float32(r.width),
		ResolutionY:    float32(r.height),
	}
	r.mu.Unlock()

	return r.backend.RenderFrame(u)
}

func (r *renderer) Resize(width, height int) {
	r.mu.Lock()
	r.width = width
	r.height = height
	r.mu.Unlock()

	r.backend.ConfigureSurface(width, height)
}

func (r *renderer) SetPresentMode(mode PresentMode) {
	r.backend.SetPresentMode(mode)
}

func (r *renderer) Release() {
	r.backend.Release()
}
