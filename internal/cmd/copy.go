package cmd

import (
	"strings"

	"github.com/hoppxi/wigo-calc/internal/clip"
	"github.com/spf13/cobra"
)

var copyCmd = &cobra.Command{
	Use:   "copy <text>",
	Short: "Copy a result to the clipboard without its newlines",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return clip.New(settings.Clipboard.Notify).Copy(strings.Join(args, " "))
	},
}
