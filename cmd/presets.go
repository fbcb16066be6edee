package cmd

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

var presetsFile string

var presetsCmd = &cobra.Command{
	Use:   "presets",
	Short: "List available soil parameter presets",
	Long: `List the soil presets usable with --preset on 'analyze' and 'fast'.

Without --file the built-in table is shown. A project table is a JSON
array of objects with name, description, gamma, cohesion, phi and
optional u / sigma_v fields.

Examples:
  gotfs presets
  gotfs presets --file project-soils.json`,
	RunE: runPresets,
}

func init() {
	rootCmd.AddCommand(presetsCmd)
	presetsCmd.Flags().StringVar(&presetsFile, "file", "", "JSON preset table to list instead of the built-in one")
}

func runPresets(cmd *cobra.Command, args []string) error {
	presets, err := loadPresetTable(presetsFile)
	if err != nil {
		return err
	}

	fmt.Println()
	fmt.Println("SOIL PRESETS:")
	fmt.Println("───────────────────────────────────────────────────────────────")
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "  NAME\tDESCRIPTION\tγ (kN/m³)\tc (kPa)\tφ (°)\n")
	for _, p := range presets {
		fmt.Fprintf(w, "  %s\t%s\t%.1f\t%.1f\t%.1f\n", p.Name, p.Description, p.Gamma, p.Cohesion, p.Phi)
	}
	w.Flush()
	fmt.Println()
	return nil
}
