package cmd

import (
	"fmt"
	"strings"

	"github.com/brogergvhs/mangawatch/internal/config"

	"github.com/manifoldco/promptui"
	"github.com/spf13/cobra"
)

var configAddCmd = &cobra.Command{
	Use:   "add [label]",
	Short: "Create a new config profile with default values",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		var label string

		if len(args) == 1 {
			label = args[0]
		} else {
			prompt := promptui.Prompt{
				Label: "Label for the new config",
				Validate: func(s string) error {
					if strings.TrimSpace(s) == "" {
						return fmt.Errorf("label cannot be empty")
					}
					return nil
				},
			}

			var err error
			label, err = prompt.Run()
			if err != nil {
				return fmt.Errorf("aborted")
			}
		}

		path, err := config.CreateConfig(strings.TrimSpace(label))
		if err != nil {
			return err
		}

		fmt.Printf("Created new config: %s\n", path)
		return nil
	},
}

func init() {
	configCmd.AddCommand(configAddCmd)
}
