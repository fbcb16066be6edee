package cmd

import (
	"fmt"
	"os"

	"github.com/kohta/gotfs/internal/version"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "gotfs",
	Short: "Tunnel Face Stability Analysis Tool",
	Long: `gotfs - Go Tunnel Face Stability

A CLI tool for tunnel excavation face stability analysis using
Murayama's limit-equilibrium method on a logarithmic-spiral slip
surface.

This tool helps geotechnical and tunnel engineers perform:
  - Critical slip-surface search over a range of entry offsets
  - Required support pressure from moment equilibrium
  - Terzaghi-arching or simple overburden surcharge models
  - A fast approximate width-sweep mode
  - Response-curve charts, PDF/markdown reports, CSV/xlsx export`,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println()
		fmt.Println("  ╔═══════════════════════════════════════════════════════════╗")
		fmt.Println("  ║                                                           ║")
		fmt.Printf("  ║   gotfs v%-49s║\n", version.Version)
		fmt.Println("  ║   Go Tunnel Face Stability                                ║")
		fmt.Println("  ║                                                           ║")
		fmt.Println("  ╚═══════════════════════════════════════════════════════════╝")
		fmt.Println()
		fmt.Println("  Murayama limit-equilibrium analysis of tunnel excavation faces.")
		fmt.Println()
		fmt.Println("  Commands:")
		fmt.Println("    • analyze  - rigorous slip-surface search (offset sweep)")
		fmt.Println("    • fast     - approximate width-sweep mode")
		fmt.Println("    • presets  - list built-in or project soil presets")
		fmt.Println()
		fmt.Println("  Use 'gotfs --help' to see available commands.")
		fmt.Println()
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.CompletionOptions.DisableDefaultCmd = true
}
