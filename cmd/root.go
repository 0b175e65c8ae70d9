package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/philipparndt/meshview/assets"
	"github.com/philipparndt/meshview/internal/app"
	"github.com/philipparndt/meshview/internal/config"
	"github.com/philipparndt/meshview/internal/logging"
	"github.com/philipparndt/meshview/version"
	"github.com/spf13/cobra"
)

var (
	configPath string
	themeName  string
	modelsDir  string
	fps        int
	logLevel   string
	noWatch    bool
)

var rootCmd = &cobra.Command{
	Use:   "meshview [files...]",
	Short: "Interactive STL and OBJ model viewer",
	Long: `meshview shows 3D models in a window. Without arguments it cycles through the
bundled models; given files (an .stl, or an .obj with its .mtl and textures) it opens them.
Files can also be dropped onto the window or picked with the open button.`,
	Version:           version.GetFullVersion(),
	SilenceUsage:      true,
	PersistentPreRunE: setupLogging,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		return app.Run(cmd.Context(), app.Options{
			Config: cfg,
			Bundle: assets.Models(),
			Files:  args,
		})
	},
}

func init() {
	flags := rootCmd.PersistentFlags()
	flags.StringVar(&configPath, "config", "", "YAML config file")
	flags.StringVar(&logLevel, "log-level", "warn", "log level: debug, info, warn, error")
	flags.StringVar(&themeName, "theme", "", "initial theme: light or dark")

	rootCmd.Flags().StringVar(&modelsDir, "models-dir", "", "serve bundled models from this directory instead of the embedded set")
	rootCmd.Flags().IntVar(&fps, "fps", 0, "target frame rate")
	rootCmd.Flags().BoolVar(&noWatch, "no-watch", false, "do not reload models when their files change")
}

func setupLogging(cmd *cobra.Command, _ []string) error {
	logger, err := logging.New(logLevel, cmd.ErrOrStderr())
	if err != nil {
		return err
	}
	logging.SetLogger(logger)
	return nil
}

// loadConfig reads --config and applies the flags that were set on top of it
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, err
	}

	changed := cmd.Flags().Changed
	if changed("theme") {
		cfg.Theme = themeName
	}
	if changed("models-dir") {
		cfg.ModelsDir = modelsDir
	}
	if changed("fps") {
		cfg.FPS = fps
	}
	if changed("no-watch") {
		cfg.Watch.Enabled = !noWatch
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Execute runs the root command
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
