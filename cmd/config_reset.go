package cmd

import (
	"fmt"
	"os"

	"github.com/brogergvhs/mangawatch/internal/config"
	"github.com/brogergvhs/mangawatch/internal/ui"

	"github.com/spf13/cobra"
)

var configResetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Overwrite the active config with default values",
	RunE: func(cmd *cobra.Command, args []string) error {
		activePath, err := config.ActiveConfigPath()
		if err != nil {
			return fmt.Errorf("%w: run `mangawatch config init` first", err)
		}

		if !ui.Confirm(fmt.Sprintf("Reset %s to defaults", activePath)) {
			fmt.Println("Aborted.")
			return nil
		}

		def := config.DefaultConfig()
		if err := config.SaveYAML(def, activePath); err != nil {
			return err
		}

		fmt.Printf("Reset active config: %s\n", activePath)
		def.Print(os.Stdout)
		return nil
	},
}

func init() {
	configCmd.AddCommand(configResetCmd)
}
