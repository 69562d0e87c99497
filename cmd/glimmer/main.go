package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/glimmer-vis/glimmer/config"
	"github.com/glimmer-vis/glimmer/engine"
	"github.com/glimmer-vis/glimmer/engine/control"
	"github.com/glimmer-vis/glimmer/engine/dialog"
	"github.com/glimmer-vis/glimmer/engine/facts"
	"github.com/glimmer-vis/glimmer/engine/quality"
	"github.com/glimmer-vis/glimmer/engine/renderer"
	"github.com/glimmer-vis/glimmer/engine/window"
	"github.com/glimmer-vis/glimmer/tui"
)

// Version is set at build time via ldflags.
var Version = "dev"

var (
	cfgFile string
	debug   bool

	fullscreen   bool
	batterySave  bool
	mobileDevice bool
	qualityName  string
	uncapped     bool
	software     bool
	profile      bool

	scriptPath string
	factsSeed  int64
)

var rootCmd = &cobra.Command{
	Use:   "glimmer",
	Short: "Adaptive shader visualizer",
	Long:  `Glimmer - a GPU shader visualizer with adaptive quality control, plus a scripted chat replay`,
}

var visualizeCmd = &cobra.Command{
	Use:   "visualize",
	Short: "Open the visualizer window",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runVisualize()
	},
}

var chatCmd = &cobra.Command{
	Use:   "chat",
	Short: "Play the scripted chat conversation in the terminal",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runChat()
	},
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("glimmer v%s\n", Version)
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "glimmer.toml", "config file path")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "enable debug logging")

	visualizeCmd.Flags().BoolVar(&fullscreen, "fullscreen", false, "open the window fullscreen")
	visualizeCmd.Flags().BoolVar(&batterySave, "battery", false, "start in battery-saving mode")
	visualizeCmd.Flags().BoolVar(&mobileDevice, "mobile", false, "treat the device as mobile-class")
	visualizeCmd.Flags().StringVar(&qualityName, "quality", "", "initial quality level (low, medium, high, ultra)")
	visualizeCmd.Flags().BoolVar(&uncapped, "uncapped", false, "present frames without vsync")
	visualizeCmd.Flags().BoolVar(&software, "software", false, "force the software fallback adapter")
	visualizeCmd.Flags().BoolVar(&profile, "profile", false, "log frame and memory stats every second")

	chatCmd.Flags().StringVar(&scriptPath, "script", "", "dialog script path (defaults to the built-in script)")
	chatCmd.Flags().Int64Var(&factsSeed, "seed", 0, "seed for the background fact generator")

	rootCmd.AddCommand(visualizeCmd)
	rootCmd.AddCommand(chatCmd)
	rootCmd.AddCommand(versionCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func runVisualize() error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	win := window.NewWindow(
		window.WithTitle(cfg.Window.Title),
		window.WithWidth(cfg.Window.Width),
		window.WithHeight(cfg.Window.Height),
		window.WithFullscreen(fullscreen || cfg.Window.Fullscreen),
	)

	device := detectDevice(win, cfg)

	level := cfg.Quality.InitialLevel()
	if qualityName != "" {
		parsed, parseErr := quality.ParseLevel(qualityName)
		if parseErr != nil {
			return parseErr
		}
		level = parsed
	}

	session := control.NewSession(
		control.WithController(quality.NewController(
			quality.WithLevel(level),
			quality.WithDevice(device),
			quality.WithThresholds(cfg.Quality.ToThresholds()),
		)),
	)

	rendererOptions := []renderer.RendererBuilderOption{
		renderer.WithForceSoftwareRenderer(software || cfg.Renderer.ForceSoftware),
	}
	if uncapped || cfg.Renderer.PresentMode == "uncapped" {
		rendererOptions = append(rendererOptions, renderer.WithPresentMode(renderer.PresentModeUncapped))
	}
	if cfg.Renderer.ShaderPath != "" {
		source, readErr := os.ReadFile(cfg.Renderer.ShaderPath)
		if readErr != nil {
			return fmt.Errorf("failed to read shader: %w", readErr)
		}
		rendererOptions = append(rendererOptions, renderer.WithShaderSource(string(source)))
	}

	rend, err := renderer.NewRenderer(renderer.BackendTypeWGPU, win, rendererOptions...)
	if err != nil {
		return fmt.Errorf("failed to create renderer: %w", err)
	}

	e := engine.NewEngine(
		engine.WithWindow(win),
		engine.WithRenderer(rend),
		engine.WithSession(session),
		engine.WithProfiling(profile),
	)

	log.Info().
		Str("version", Version).
		Str("session", session.ID().String()).
		Str("quality", level.String()).
		Bool("mobile", device.Mobile).
		Bool("battery_saving", device.BatterySaving).
		Msg("starting visualizer")

	// Ctrl+C closes the window cleanly.
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigChan
		e.Quit()
	}()

	e.Run()
	return nil
}

func runChat() error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	path := scriptPath
	if path == "" {
		path = cfg.Chat.ScriptPath
	}

	var script *dialog.Script
	if path != "" {
		script, err = dialog.Load(path)
		if err != nil {
			return fmt.Errorf("failed to load script: %w", err)
		}
	} else {
		script, err = dialog.Parse(dialog.DefaultScript)
		if err != nil {
			return fmt.Errorf("failed to parse built-in script: %w", err)
		}
	}

	seed := factsSeed
	if seed == 0 {
		seed = cfg.Chat.FactsSeed
	}
	var factsOptions []facts.ProviderBuilderOption
	if seed != 0 {
		factsOptions = append(factsOptions, facts.WithSeed(seed))
	}
	provider := facts.NewProvider(factsOptions...)
	defer provider.Close()

	log.Info().
		Str("version", Version).
		Str("script", script.Title).
		Msg("starting chat replay")

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	return tui.Start(ctx, script, provider)
}

// loadConfig sets up logging and loads the TOML config.
func loadConfig() (config.Config, error) {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return cfg, fmt.Errorf("failed to load config: %w", err)
	}
	setupLogging(cfg)
	return cfg, nil
}

func setupLogging(cfg config.Config) {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})

	level, err := zerolog.ParseLevel(cfg.Log.Level)
	if err != nil {
		level = zerolog.InfoLevel
	}
	if debug {
		level = zerolog.DebugLevel
	}
	zerolog.SetGlobalLevel(level)
}

// detectDevice assembles the device profile from the window's display. When
// the display cannot be queried the desktop defaults are used instead.
func detectDevice(win window.Window, cfg config.Config) quality.DeviceProfile {
	device := quality.DeviceProfile{
		Mobile:        mobileDevice || cfg.Device.Mobile,
		BatterySaving: batterySave || cfg.Device.BatterySaving,
	}

	width, height := win.DisplaySize()
	refresh := win.DisplayRefreshRate()
	if width == 0 || height == 0 || refresh == 0 {
		log.Warn().
			Err(fmt.Errorf("%w: display reported %dx%d @ %dHz", quality.ErrDeviceDetection, width, height, refresh)).
			Msg("falling back to window size and 60Hz")
		device.ScreenWidth = win.Width()
		device.ScreenHeight = win.Height()
		device.RefreshRate = 60
		return device
	}

	device.ScreenWidth = width
	device.ScreenHeight = height
	device.RefreshRate = refresh
	return device
}
