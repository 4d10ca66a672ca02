package commands

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"runtime"
	"sort"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/ardanlabs/bindgen/config"
	"github.com/ardanlabs/bindgen/generator"
)

var (
	generateOutput   string
	generateBindings []string
	generateDryRun   bool
)

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate the Go packages of every target",
	Long: `Generate the Go packages of the targets in the project file.

Targets are generated concurrently. Nothing is written unless every target
generates successfully.`,
	Args: cobra.NoArgs,
	RunE: runGenerate,
}

func init() {
	generateCmd.Flags().StringVarP(&generateOutput, "output", "o", "", "output directory (overrides the project file)")
	generateCmd.Flags().StringSliceVarP(&generateBindings, "binding", "b", nil, "generate only these bindings")
	generateCmd.Flags().BoolVar(&generateDryRun, "dry-run", false, "list the files without writing them")

	rootCmd.AddCommand(generateCmd)
}

// targetFiles is the generated source of one target.
type targetFiles struct {
	dir   string
	files map[string]string
}

func runGenerate(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if generateOutput != "" {
		cfg.Output = generateOutput
	}

	targets, err := selectTargets(cfg, generateBindings)
	if err != nil {
		return err
	}

	results := make([]targetFiles, len(targets))

	g, ctx := errgroup.WithContext(cmd.Context())
	g.SetLimit(runtime.GOMAXPROCS(0))
	for i, t := range targets {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			files, err := generateTarget(cfg, t)
			if err != nil {
				return fmt.Errorf("%s: %w", t.Binding, err)
			}
			results[i] = files
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	for _, r := range results {
		if err := writeFiles(cmd, r); err != nil {
			return err
		}
	}
	return nil
}

func generateTarget(cfg *config.Config, t *config.Target) (targetFiles, error) {
	target, err := buildTarget(cfg, t)
	if err != nil {
		return targetFiles{}, err
	}

	log := slog.Default().With("binding", target.Binding.Name())
	gen := generator.New(target.Binding, target.Classes,
		generator.WithRuntime(cfg.Runtime),
		generator.WithLogger(log),
	)

	files, err := gen.Generate()
	if err != nil {
		return targetFiles{}, err
	}
	log.Debug("generated", "classes", len(target.Classes), "files", len(files))

	return targetFiles{dir: cfg.Dir(t, target.Binding), files: files}, nil
}

func writeFiles(cmd *cobra.Command, r targetFiles) error {
	names := make([]string, 0, len(r.files))
	for name := range r.files {
		names = append(names, name)
	}
	sort.Strings(names)

	if !generateDryRun {
		if err := os.MkdirAll(r.dir, 0755); err != nil {
			return fmt.Errorf("creating output directory: %w", err)
		}
	}

	for _, name := range names {
		path := filepath.Join(r.dir, name)
		if !generateDryRun {
			if err := os.WriteFile(path, []byte(r.files[name]), 0644); err != nil {
				return fmt.Errorf("writing %s: %w", name, err)
			}
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Generated: %s\n", path)
	}
	return nil
}
