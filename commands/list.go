package commands

import (
	"strconv"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"github.com/ardanlabs/bindgen/binding"
)

var listCmd = &cobra.Command{
	Use:     "list [binding...]",
	Aliases: []string{"ls"},
	Short:   "List the classes of every target",
	RunE:    listHandler,
}

func init() {
	rootCmd.AddCommand(listCmd)
}

func listHandler(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	targets, err := selectTargets(cfg, args)
	if err != nil {
		return err
	}

	var data [][]string

	for _, t := range targets {
		target, err := buildTarget(cfg, t)
		if err != nil {
			return err
		}
		b := target.Binding
		for _, c := range binding.SortClasses(target.Classes, b.IsCore) {
			core := ""
			if b.IsCore(c) {
				core = "core"
			}
			data = append(data, []string{b.Name(), c.TemplateName, c.ClassName, b.CapName(c), core, strconv.Itoa(len(c.Functions))})
		}
	}

	table := tablewriter.NewWriter(cmd.OutOrStdout())
	table.SetHeader([]string{"BINDING", "TEMPLATE", "CLASS", "CAPABILITY", "KIND", "FUNCTIONS"})
	table.SetHeaderAlignment(tablewriter.ALIGN_LEFT)
	table.SetAlignment(tablewriter.ALIGN_LEFT)
	table.SetHeaderLine(false)
	table.SetBorder(false)
	table.SetNoWhiteSpace(true)
	table.SetTablePadding("    ")
	table.AppendBulk(data)
	table.Render()

	return nil
}
