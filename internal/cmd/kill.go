package cmd

import (
	"fmt"
	"strings"

	"github.com/hoppxi/wigo-calc/internal/manager"
	"github.com/spf13/cobra"
)

var killCmd = &cobra.Command{
	Use:   "kill",
	Short: "Stop the running search provider",
	Run: func(cmd *cobra.Command, args []string) {
		response, err := manager.Manage.SendIPCCommand("STOP")
		if err != nil {
			fmt.Fprintln(cmd.OutOrStdout(), "Not running, nothing to stop.")
			return
		}
		if !strings.HasPrefix(response, "OK") {
			fmt.Fprintln(cmd.OutOrStdout(), response)
			return
		}
		fmt.Fprintln(cmd.OutOrStdout(), "Search provider stopped.")
	},
}

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show whether the search provider is running",
	Run: func(cmd *cobra.Command, args []string) {
		response, err := manager.Manage.SendIPCCommand("STATUS")
		if err != nil {
			fmt.Fprintln(cmd.OutOrStdout(), "Not running. Hint: run `wigo-calc serve` first")
			return
		}
		fmt.Fprintln(cmd.OutOrStdout(), response)
	},
}
