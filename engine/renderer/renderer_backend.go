package renderer

// RendererBackendType determines which graphics API implementation backs the renderer.
type RendererBackendType int

const (
	// BackendTypeWGPU uses the WebGPU implementation of the renderer backend.
	BackendTypeWGPU RendererBackendType = iota
)

// PresentMode controls how rendered frames are delivered to the display.
type PresentMode int

const (
	// PresentModeVSync waits for the next vertical blank before presenting, capping frame rate
	// to the display refresh rate. Frame pacing above that is handled by the control loop.
	PresentModeVSync PresentMode = iota

	// PresentModeUncapped presents frames immediately without waiting for vertical blank.
	PresentModeUncapped
)
