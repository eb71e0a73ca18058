package main

import (
	"log"

	"github.com/spf13/cobra"
)

var (
	rootCmd = &cobra.Command{
		Use:   "gallium",
		Short: "Gallium tray apps",
		Long:  "Runs native menu and status bar apps described in YAML.",
	}

	devMode bool
)

func init() {
	rootCmd.PersistentFlags().BoolVarP(&devMode, "dev", "d", false, "run in debug mode")
	rootCmd.AddCommand(runCmd())
	rootCmd.AddCommand(imageCmd())
}

func main() {
	rootCmd.Execute()
}

func fatal(err error) {
	if err != nil {
		log.Fatal(err)
	}
}
