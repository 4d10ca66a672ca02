package commands

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	mapset "github.com/deckarep/golang-set/v2"
	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"github.com/ardanlabs/bindgen/api"
	"github.com/ardanlabs/bindgen/apiutil"
	"github.com/ardanlabs/bindgen/binding"
	"github.com/ardanlabs/bindgen/binding/cl"
)

type capsFlags struct {
	binding string
	ext     []string
	version string
	missing []string
}

var capsOpts capsFlags

var capsCmd = &cobra.Command{
	Use:   "caps",
	Short: "Evaluate the capabilities of a binding",
	Long: `Evaluate the flags the generated capabilities type would set for a
set of reported extensions.

Every entry point resolves unless it is named by --missing. A class that is
reported but misses an entry point is disabled with a warning, as the
generated code does at run time.`,
	Example: `  bindgen caps -b ALC --ext OpenALC10,OpenALC11,ALC_EXT_disconnect
  bindgen caps -b CL --version "OpenCL 1.1 Apple" --ext cl_apple_gl_sharing --missing clGetGLContextInfoAPPLE`,
	Args: cobra.NoArgs,
	RunE: runCaps,
}

func init() {
	f := capsCmd.Flags()
	f.StringVarP(&capsOpts.binding, "binding", "b", "", "binding to evaluate")
	f.StringSliceVar(&capsOpts.ext, "ext", nil, "reported extensions, comma or space separated")
	f.StringVar(&capsOpts.version, "version", "", "OpenCL platform version string, e.g. \"OpenCL 1.2 vendor\"")
	f.StringSliceVar(&capsOpts.missing, "missing", nil, "native functions that fail to resolve")

	rootCmd.AddCommand(capsCmd)
}

func runCaps(cmd *cobra.Command, args []string) error {
	if err := requireFlag("binding", capsOpts.binding); err != nil {
		return err
	}

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	targets, err := selectTargets(cfg, []string{capsOpts.binding})
	if err != nil {
		return err
	}
	target, err := buildTarget(cfg, targets[0])
	if err != nil {
		return err
	}

	ext := mapset.NewSet[string]()
	for _, e := range capsOpts.ext {
		apiutil.AddExtensions(e, ext)
	}
	if capsOpts.version != "" {
		if target.Binding != cl.Binding {
			return fmt.Errorf("--version is only supported by %s", cl.Binding.Name())
		}
		major, minor, err := apiutil.ParseCLVersion(capsOpts.version)
		if err != nil {
			return err
		}
		apiutil.AddCLVersions(major, minor, ext)
	}

	missing := mapset.NewSet(capsOpts.missing...)

	caps, err := binding.NewCapabilities(target.Binding, target.Classes)
	if err != nil {
		return err
	}
	flags := caps.Evaluate(ext, func(fn *api.Function) uintptr {
		if missing.Contains(fn.NativeName()) {
			return 0
		}
		return 1
	})

	var data [][]string
	for _, flag := range caps.Flags {
		data = append(data, []string{flag.CapName, flag.Field, strconv.Itoa(len(flag.Functions)), strconv.FormatBool(flags[flag.CapName])})
	}

	table := tablewriter.NewWriter(cmd.OutOrStdout())
	table.SetHeader([]string{"CAPABILITY", "FIELD", "FUNCTIONS", "SUPPORTED"})
	table.SetHeaderAlignment(tablewriter.ALIGN_LEFT)
	table.SetAlignment(tablewriter.ALIGN_LEFT)
	table.SetHeaderLine(false)
	table.SetBorder(false)
	table.SetNoWhiteSpace(true)
	table.SetTablePadding("    ")
	table.AppendBulk(data)
	table.Render()

	if IsVerbose() {
		names := ext.ToSlice()
		sort.Strings(names)
		fmt.Fprintf(cmd.OutOrStdout(), "\nextensions: %s\n", strings.Join(names, " "))
	}
	return nil
}
