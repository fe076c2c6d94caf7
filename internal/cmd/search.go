package cmd

import (
	"os"

	"github.com/hoppxi/wigo-calc/pkg/search"
	"github.com/spf13/cobra"
)

var searchCmd = &cobra.Command{
	Use:   "search ':calc expression'",
	Short: "Evaluate a query and print launcher results as JSON",
	Args:  cobra.ArbitraryArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := newCalculator()
		if err != nil {
			return err
		}

		exe, err := os.Executable()
		if err != nil {
			exe = rootCmd.Name()
		}

		s := &search.Searcher{
			Calc:        c,
			CopyCommand: exe + " copy",
			Icon:        settings.Provider.Icon,
			Out:         cmd.OutOrStdout(),
		}
		return s.Search(cmd.Context(), args)
	},
}
