// Package commands implements the bindgen command line.
package commands

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/ardanlabs/bindgen/apiutil"
	"github.com/ardanlabs/bindgen/config"
)

var (
	// Global flags
	verbose bool
	cfgFile string
)

var rootCmd = &cobra.Command{
	Use:   "bindgen",
	Short: "Generate Go bindings for native APIs",
	Long: `bindgen generates Go bindings for native libraries from class templates.

Each binding produces a Go package holding one file per class, a library
loader and a capabilities type that records which extensions are usable.

Built-in bindings:
  ALC  OpenAL context API (ALC10, ALC11 and extensions)
  CL   OpenCL (CL10 subset, apple_gl_sharing)

The project is described by bindgen.yaml in the working directory. Without
it both built-in bindings are generated under ./gen.

Examples:
  # Generate every target
  bindgen generate

  # Turn a C header into a template
  bindgen import cl_vendor.h --binding CL --template vendor_query --prefix CL

  # Evaluate the capabilities of a platform
  bindgen caps --binding CL --version "OpenCL 1.2" --ext cl_apple_gl_sharing`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		setupLogger(cmd)
	},
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "project file (default is ./"+config.DefaultFile+")")
}

// setupLogger installs a text logger on stderr for the commands and for the
// runtime checks they evaluate.
func setupLogger(cmd *cobra.Command) {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}

	l := slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level}))
	slog.SetDefault(l)
	apiutil.SetLogger(l)
}

// loadConfig reads the project file. A missing default project file yields
// the default configuration; a missing --config file is an error.
func loadConfig() (*config.Config, error) {
	if cfgFile != "" {
		return config.Load(cfgFile)
	}

	cfg, err := config.LoadOrDefault(config.DefaultFile)
	if err != nil {
		return nil, err
	}
	if cfg.Path() == "" {
		slog.Debug("no project file, using defaults", "file", config.DefaultFile)
	}
	return cfg, nil
}

// IsVerbose returns whether verbose mode is enabled.
func IsVerbose() bool {
	return verbose
}

var errMissingFlag = errors.New("required flag not set")

func requireFlag(name, value string) error {
	if value == "" {
		return fmt.Errorf("%w: --%s", errMissingFlag, name)
	}
	return nil
}
