package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/thand-io/cloudcontrol-mcp/internal/common"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Show version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("%s %s\n", common.ServerName, common.GetVersion())
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
