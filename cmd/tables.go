package cmd

import (
	"fmt"
	"strconv"

	"github.com/jsphweid/adaptune/tuning"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(tablesCmd)
}

var tablesCmd = &cobra.Command{
	Use:   "tables [limit]",
	Short: "Prints the tuning table presets",
	Long:  `Prints the tuning table presets`,
	Args:  cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		if len(args) == 1 {
			limit, err := strconv.Atoi(args[0])
			cobra.CheckErr(err)
			cobra.CheckErr(printTable(limit))
			return
		}
		for _, limit := range tuning.Limits {
			cobra.CheckErr(printTable(limit))
		}
	},
}

func printTable(limit int) error {
	table, err := tuning.Select(limit)
	if err != nil {
		return err
	}
	fmt.Printf("%v-limit:\n", limit)
	for _, entry := range table {
		fmt.Printf("  class %2d  just %8.4f  rank %2d\n", entry.Class, entry.Just, entry.Rank)
	}
	return nil
}
