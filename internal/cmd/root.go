package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/hoppxi/wigo-calc/internal/logging"
	"github.com/hoppxi/wigo-calc/internal/manager"
	"github.com/hoppxi/wigo-calc/pkg/calc"
	"github.com/spf13/cobra"
)

var Version = "0.2.0"

var (
	configPath string
	debugFlag  bool

	settings *manager.Settings
	logger   *slog.Logger
)

var rootCmd = &cobra.Command{
	Use:     "wigo-calc",
	Version: Version,
	Short:   "Calculator search provider for the desktop shell",
	Long: `wigo-calc answers launcher and GNOME Shell search queries that look like
arithmetic. Literals such as 0x1A, 017 and 0b101 are understood, "in hex",
"in octal" and "in binary" pick the output radix, and the evaluation itself is
done by an external calculator (gnome-calculator -s by default).`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		s, err := manager.Config.Load(configPath)
		if err != nil {
			if cmd.Name() != "generate-config" {
				return err
			}
			s = manager.DefaultSettings()
		}
		settings = s
		logger = logging.New(os.Stderr, debugFlag || s.Log.Debug)
		slog.SetDefault(logger)
		return nil
	},
}

func Execute() {
	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

// newCalculator builds the pipeline with the configured engine.
func newCalculator() (*calc.Calculator, error) {
	eval, err := settings.NewEvaluator()
	if err != nil {
		return nil, err
	}
	return calc.New(eval, logger), nil
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "config file (default "+manager.DefaultConfigPath()+")")
	rootCmd.PersistentFlags().BoolVar(&debugFlag, "debug", false, "log every query")

	rootCmd.AddCommand(searchCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(statusCmd)
	rootCmd.AddCommand(killCmd)
	rootCmd.AddCommand(reloadCmd)
	rootCmd.AddCommand(copyCmd)
	rootCmd.AddCommand(generateConfigCmd)
	rootCmd.AddCommand(providerINICmd)
}
