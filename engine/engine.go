package engine

import (
	"sync"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/glimmer-vis/glimmer/common"
	"github.com/glimmer-vis/glimmer/engine/control"
	"github.com/glimmer-vis/glimmer/engine/gesture"
	"github.com/glimmer-vis/glimmer/engine/profiler"
	"github.com/glimmer-vis/glimmer/engine/quality"
	"github.com/glimmer-vis/glimmer/engine/renderer"
	"github.com/glimmer-vis/glimmer/engine/window"
)

// engine implements the Engine interface.
// Coordinates the window thread and the frame loop goroutine.
type engine struct {
	running bool
	wg      sync.WaitGroup

	quitChannel chan struct{}
	quitOnce    sync.Once // Ensures quitChannel is only closed once

	// Input events are forwarded to the frame goroutine through buffered
	// channels so all session mutation happens on a single logical thread.
	commandChannel chan gesture.Command
	resizeChannel  chan [2]int
	focusChannel   chan bool

	window   window.Window
	renderer renderer.Renderer
	session  control.Session
	gestures *gesture.Adapter

	profiler         *profiler.Profiler
	profilingEnabled bool

	// Title changes are requested from the frame goroutine but GLFW only
	// allows glfwSetWindowTitle on the message loop thread, so the pending
	// title is stashed here and applied from the window's update callback.
	titleMutex   sync.Mutex
	pendingTitle string

	startTime time.Time
}

// Engine is the main entry point for the visualizer.
// It orchestrates the frame loop, input handling, and window management,
// and reports per-frame state to the adaptive quality session.
type Engine interface {
	// Window returns the underlying window.
	//
	// Returns:
	//   - window.Window: the window instance
	Window() window.Window

	// Session returns the adaptive quality session driving the frame loop.
	//
	// Returns:
	//   - control.Session: the session instance
	Session() control.Session

	// EnableProfiler enables performance profiling output to the log.
	EnableProfiler()

	// DisableProfiler disables performance profiling output.
	DisableProfiler()

	// Run starts the frame loop and blocks processing window messages until the window closes.
	Run()

	// Quit signals all engine goroutines to stop and shuts down the engine.
	// Safe to call multiple times; subsequent calls are no-ops.
	Quit()
}

var _ Engine = &engine{}

// NewEngine creates a new Engine instance with the provided options.
// A window, renderer, and session must be supplied via builder options; the gesture
// adapter and profiler are created internally.
//
// Parameters:
//   - options: functional options for engine configuration (window, renderer, session, profiling)
//
// Returns:
//   - Engine: the newly created engine
func NewEngine(options ...EngineBuilderOption) Engine {
	e := &engine{
		quitChannel:    make(chan struct{}),
		commandChannel: make(chan gesture.Command, 16),
		resizeChannel:  make(chan [2]int, 4),
		focusChannel:   make(chan bool, 4),
		gestures:       gesture.NewAdapter(),
		profiler:       profiler.NewProfiler(),
		running:        false,
		wg:             sync.WaitGroup{},
	}

	for _, opt := range options {
		opt(e)
	}

	if e.session == nil {
		e.session = control.NewSession()
	}

	if e.window != nil {
		e.window.SetKeyDownCallback(e.onKeyDown)
		e.window.SetMouseDownCallback(e.onMouseDown)
		e.window.SetResizeCallback(func(width, height int) {
			e.enqueueResize(width, height)
		})
		e.window.SetFocusCallback(func(focused bool) {
			select {
			case e.focusChannel <- focused:
			default:
			}
		})
		e.window.SetUpdateCallback(e.applyPendingTitle)
	}

	e.session.Controller().SetObserver(quality.ObserverFunc(e.onQualityChanged))

	return e
}

func (e *engine) Window() window.Window {
	return e.window
}

func (e *engine) Session() control.Session {
	return e.session
}

func (e *engine) Run() {
	e.running = true
	e.startTime = time.Now()
	e.wg.Add(2)
	go e.handleFrames()
	go e.handleQuit()

	e.window.ProcessMessages()

	e.signalQuit()
	e.wg.Wait()

	// Teardown happens here so GPU and GLFW resources are released on the
	// thread that ran the message loop.
	if e.renderer != nil {
		e.renderer.Release()
	}
	if err := e.window.Close(); err != nil {
		log.Warn().Err(err).Msg("window close failed")
	}
}

// Quit signals all engine goroutines to stop and shuts down the engine.
// Safe to call multiple times; subsequent calls are no-ops due to sync.Once.
func (e *engine) Quit() {
	e.signalQuit()
}

// signalQuit closes the quit channel to signal all goroutines to exit.
// Uses sync.Once to ensure the channel is only closed once.
func (e *engine) signalQuit() {
	e.quitOnce.Do(func() {
		e.running = false
		close(e.quitChannel)
	})
}

// onKeyDown runs on the window thread. Quality keys go through the gesture
// adapter; the remaining shortcuts are engine-level toggles.
func (e *engine) onKeyDown(keyCode uint32) {
	if cmd, ok := e.gestures.KeyDown(keyCode); ok {
		e.enqueueCommand(cmd)
		return
	}

	switch keyCode {
	case common.KeyB:
		e.enqueueCommand(gesture.Command{Action: actionToggleBattery})
	case common.KeyP:
		e.enqueueCommand(gesture.Command{Action: actionToggleProfiler})
	}
}

// onMouseDown runs on the window thread and feeds the double-tap recognizer.
func (e *engine) onMouseDown(x, y float64) {
	if cmd, ok := e.gestures.PointerDown(x, y, time.Now()); ok {
		e.enqueueCommand(cmd)
	}
}

// Engine-level pseudo-actions routed through the command channel so they are
// applied on the frame goroutine alongside gesture commands. Values sit well
// above the gesture package's action range.
const (
	actionToggleBattery gesture.Action = iota + 100
	actionToggleProfiler
)

func (e *engine) enqueueCommand(cmd gesture.Command) {
	select {
	case e.commandChannel <- cmd:
	default:
		log.Warn().Msg("input command dropped, frame loop is behind")
	}
}

func (e *engine) enqueueResize(width, height int) {
	// Only the latest size matters; drop the stale pending one.
	select {
	case e.resizeChannel <- [2]int{width, height}:
	default:
		select {
		case <-e.resizeChannel:
		default:
		}
		e.resizeChannel <- [2]int{width, height}
	}
}

// handleFrames runs the frame loop in its own goroutine.
// Each iteration drains pending input, asks the session for a frame decision,
// and renders when the pacer allows it.
// Recovers from panics to avoid crashing the process and signals quit on recovery.
func (e *engine) handleFrames() {
	defer e.wg.Done()
	// Recover from panics inside the frame goroutine to avoid crashing the whole process.
	defer func() {
		if r := recover(); r != nil {
			log.Error().Any("panic", r).Msg("frame goroutine recovered from panic")
			e.signalQuit()
		}
	}()

	batterySaving := false

	// Pace the loop at the display refresh interval so the session's FPS
	// estimator measures display-rate frame callbacks rather than how fast
	// this goroutine can spin.
	frameLimit := refreshInterval(e.session.Controller().Device())

	for {
		select {
		case <-e.quitChannel:
			return
		case cmd := <-e.commandChannel:
			switch cmd.Action {
			case gesture.ActionCycle:
				e.session.CycleQuality()
			case gesture.ActionSetLevel:
				e.session.Controller().SetLevel(cmd.Level)
			case actionToggleBattery:
				batterySaving = !batterySaving
				e.session.SetBatterySaving(batterySaving)
				log.Info().Bool("battery_saving", batterySaving).Msg("battery saving toggled")
			case actionToggleProfiler:
				e.profilingEnabled = !e.profilingEnabled
			}
		case size := <-e.resizeChannel:
			e.session.OnResize(size[0], size[1])
			if e.renderer != nil {
				e.renderer.Resize(size[0], size[1])
			}
		case focused := <-e.focusChannel:
			if focused {
				e.session.Resume(time.Now())
			} else {
				e.session.Suspend()
			}
		default:
			now := time.Now()
			decision, err := e.session.OnFrame(now)
			if err != nil {
				log.Debug().Err(err).Msg("frame callback rejected")
				continue
			}

			if decision.Render && e.renderer != nil {
				elapsed := now.Sub(e.startTime).Seconds()
				if renderErr := e.renderer.RenderFrame(elapsed, decision.Params); renderErr != nil {
					log.Warn().Err(renderErr).Msg("frame dropped")
				}
			}

			if e.profilingEnabled && e.profiler != nil {
				e.profiler.SetLevel(decision.Level)
				e.profiler.Tick()
			}

			if remaining := frameLimit - time.Since(now); remaining > 0 {
				time.Sleep(remaining)
			}
		}
	}
}

// refreshInterval converts a device profile's refresh rate into the frame
// interval the loop paces itself to. Falls back to 60Hz when the profile
// carries no usable rate.
//
// Parameters:
//   - device: the device profile whose refresh rate to use
//
// Returns:
//   - time.Duration: the interval between frame callbacks
func refreshInterval(device quality.DeviceProfile) time.Duration {
	refresh := device.RefreshRate
	if refresh <= 0 {
		refresh = 60
	}
	return time.Second / time.Duration(refresh)
}

// handleQuit blocks until the quit channel is closed, then asks the window's
// message loop to exit so Run can finish teardown on its own thread.
func (e *engine) handleQuit() {
	defer e.wg.Done()
	<-e.quitChannel
	if e.window != nil {
		e.window.RequestClose()
	}
}

// onQualityChanged is the session's quality observer. It reflects the new
// level in the log and requests a window title update. The title is not set
// directly because the observer fires on the frame goroutine and GLFW
// requires title changes on the message loop thread.
func (e *engine) onQualityChanged(level quality.Level, params quality.Params) {
	log.Info().
		Str("level", level.String()).
		Float64("quality_factor", params.QualityFactor).
		Float64("iterations", params.IterationCount).
		Float64("detail", params.DetailLevel).
		Msg("quality level changed")

	e.titleMutex.Lock()
	e.pendingTitle = "glimmer [" + level.String() + "]"
	e.titleMutex.Unlock()
}

// applyPendingTitle runs on the message loop thread via the window's update
// callback and flushes any title requested since the last iteration.
func (e *engine) applyPendingTitle() {
	e.titleMutex.Lock()
	title := e.pendingTitle
	e.pendingTitle = ""
	e.titleMutex.Unlock()

	if title != "" && e.window != nil {
		e.window.SetTitle(title)
	}
}

// EnableProfiler enables performance profiling output to the log.
func (e *engine) EnableProfiler() {
	e.profilingEnabled = true
}

// DisableProfiler disables performance profiling output.
func (e *engine) DisableProfiler() {
	e.profilingEnabled = false
}
