package cmd

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/godbus/dbus/v5"
	"github.com/hoppxi/wigo-calc/internal/manager"
	"github.com/hoppxi/wigo-calc/internal/shell"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

var generateConfigCmd = &cobra.Command{
	Use:   "generate-config",
	Short: "Write a config file with the current settings",
	RunE: func(cmd *cobra.Command, args []string) error {
		reader := bufio.NewReader(os.Stdin)
		path := configPath
		if path == "" {
			path = manager.DefaultConfigPath()
		}

		if _, err := os.Stat(path); !os.IsNotExist(err) {
			if !confirm(reader, cmd.OutOrStdout(), fmt.Sprintf("%s already exists. Overwrite?", path)) {
				return nil
			}
		}

		conf := *settings
		conf.Evaluator.Engine = prompt(reader, cmd.OutOrStdout(), "Evaluator engine (process or builtin)", conf.Evaluator.Engine)
		if conf.Evaluator.Engine != manager.EngineBuiltin {
			conf.Evaluator.Command = prompt(reader, cmd.OutOrStdout(), "Calculator command", conf.Evaluator.Command)
		}

		if err := writeSettings(path, &conf); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Config written to %s\n", path)
		return nil
	},
}

var providerINICmd = &cobra.Command{
	Use:   "provider-ini",
	Short: "Print the GNOME Shell search provider registration file",
	Run: func(cmd *cobra.Command, args []string) {
		p := settings.Provider
		fmt.Fprint(cmd.OutOrStdout(), shell.ProviderINI(p.DesktopID, p.BusName, dbus.ObjectPath(p.ObjectPath)))
	},
}

func writeSettings(path string, s *manager.Settings) error {
	d, err := yaml.Marshal(s)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	return os.WriteFile(path, d, 0o644)
}

func prompt(r *bufio.Reader, w io.Writer, label, defaultValue string) string {
	fmt.Fprintf(w, "%s [%s]: ", label, defaultValue)
	input, _ := r.ReadString('\n')
	input = strings.TrimSpace(input)
	if input == "" {
		return defaultValue
	}
	return input
}

func confirm(r *bufio.Reader, w io.Writer, message string) bool {
	fmt.Fprintf(w, "%s (y/N): ", message)
	input, _ := r.ReadString('\n')
	input = strings.ToLower(strings.TrimSpace(input))
	return input == "y" || input == "yes"
}
