package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/pingdeck/migrate/internal/migrator"
)

func init() {
	rootCmd.AddCommand(stepsCmd)
}

var stepsCmd = &cobra.Command{
	Use:   "steps",
	Short: "List the migration steps in execution order",
	Run: func(cmd *cobra.Command, args []string) {
		for i, step := range migrator.Steps() {
			fmt.Printf("%2d. %-24s table %s\n", i+1, step.Name, step.Table)
		}
	},
}
