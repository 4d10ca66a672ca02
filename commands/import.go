package commands

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/ardanlabs/bindgen/binding"
	"github.com/ardanlabs/bindgen/importer"
	"github.com/ardanlabs/bindgen/parser"
	"github.com/ardanlabs/bindgen/templates"
)

type importFlags struct {
	binding        string
	template       string
	class          string
	prefix         string
	prefixTemplate string
	postfix        string
	doc            string
	output         string
}

var importOpts importFlags

var importCmd = &cobra.Command{
	Use:   "import <header>",
	Short: "Create a YAML template from a C header",
	Long: `Create a YAML template from the declarations of a C header.

Constants named <prefix>_* and functions named <prefix-template>* are
imported. Declarations whose types cannot be mapped are skipped with a
warning. The template is written to stdout unless --output is set.`,
	Args: cobra.ExactArgs(1),
	RunE: runImport,
}

func init() {
	f := importCmd.Flags()
	f.StringVarP(&importOpts.binding, "binding", "b", "", "binding the template belongs to")
	f.StringVarP(&importOpts.template, "template", "t", "", "template name, e.g. apple_gl_sharing")
	f.StringVar(&importOpts.class, "class", "", "Go class name (derived from the template name by default)")
	f.StringVarP(&importOpts.prefix, "prefix", "p", "", "constant prefix, e.g. CL")
	f.StringVar(&importOpts.prefixTemplate, "prefix-template", "", "function prefix (lower case prefix by default)")
	f.StringVar(&importOpts.postfix, "postfix", "", "vendor postfix, e.g. APPLE")
	f.StringVar(&importOpts.doc, "doc", "", "class documentation")
	f.StringVarP(&importOpts.output, "output", "o", "", "output file")

	rootCmd.AddCommand(importCmd)
}

func runImport(cmd *cobra.Command, args []string) error {
	if err := requireFlag("binding", importOpts.binding); err != nil {
		return err
	}
	if err := requireFlag("template", importOpts.template); err != nil {
		return err
	}
	if err := requireFlag("prefix", importOpts.prefix); err != nil {
		return err
	}

	if importOpts.prefixTemplate == "" {
		importOpts.prefixTemplate = strings.ToLower(importOpts.prefix)
	}

	b, err := binding.Lookup(importOpts.binding)
	if err != nil {
		return err
	}

	data, err := os.ReadFile(args[0])
	if err != nil {
		return fmt.Errorf("reading header: %w", err)
	}

	h, err := parser.Parse(string(data))
	if err != nil {
		return fmt.Errorf("parsing header: %w", err)
	}

	opts := importer.Options{
		Binding:        b,
		ClassName:      importOpts.class,
		TemplateName:   importOpts.template,
		Prefix:         importOpts.prefix,
		PrefixTemplate: importOpts.prefixTemplate,
		Postfix:        importOpts.postfix,
		Doc:            importOpts.doc,
		Logger:         slog.Default(),
	}
	if target, ok := templates.Builtin()[b.Name()]; ok {
		opts.Types = target.Types
	}

	c, err := importer.Import(h, opts)
	if err != nil {
		return err
	}

	if importOpts.output == "" {
		return templates.Encode(cmd.OutOrStdout(), c)
	}

	f, err := os.Create(importOpts.output)
	if err != nil {
		return fmt.Errorf("creating template: %w", err)
	}
	if err := templates.Encode(f, c); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}

	slog.Info("template written", "file", importOpts.output, "constants", len(c.Constants()), "functions", len(c.Functions))
	return nil
}
