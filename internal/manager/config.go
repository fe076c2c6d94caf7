package manager

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/hoppxi/wigo-calc/pkg/calc"
	"github.com/spf13/viper"
)

const (
	EngineProcess = "process"
	EngineBuiltin = "builtin"
)

type Settings struct {
	Evaluator struct {
		Engine  string `mapstructure:"engine" yaml:"engine"`
		Command string `mapstructure:"command" yaml:"command"`
		Timeout string `mapstructure:"timeout" yaml:"timeout"`
	} `mapstructure:"evaluator" yaml:"evaluator"`
	Provider struct {
		BusName    string `mapstructure:"bus_name" yaml:"bus_name"`
		ObjectPath string `mapstructure:"object_path" yaml:"object_path"`
		DesktopID  string `mapstructure:"desktop_id" yaml:"desktop_id"`
		Icon       string `mapstructure:"icon" yaml:"icon"`
	} `mapstructure:"provider" yaml:"provider"`
	Clipboard struct {
		Notify bool `mapstructure:"notify" yaml:"notify"`
	} `mapstructure:"clipboard" yaml:"clipboard"`
	Log struct {
		Debug bool `mapstructure:"debug" yaml:"debug"`
	} `mapstructure:"log" yaml:"log"`
}

var defaults = map[string]any{
	"evaluator.engine":     EngineProcess,
	"evaluator.command":    calc.DefaultCommand,
	"evaluator.timeout":    "0s",
	"provider.bus_name":    "org.hoppxi.WigoCalc.SearchProvider",
	"provider.object_path": "/org/hoppxi/WigoCalc/SearchProvider",
	"provider.desktop_id":  "wigo-calc.desktop",
	"provider.icon":        "accessories-calculator",
	"clipboard.notify":     false,
	"log.debug":            false,
}

// DefaultSettings is what Load returns when no config file exists.
func DefaultSettings() *Settings {
	s, err := decode(newViper())
	if err != nil {
		panic(err)
	}
	return s
}

// EvaluatorTimeout parses evaluator.timeout. Empty and "0" mean no timeout.
func (s *Settings) EvaluatorTimeout() (time.Duration, error) {
	t := strings.TrimSpace(s.Evaluator.Timeout)
	if t == "" || t == "0" {
		return 0, nil
	}
	d, err := time.ParseDuration(t)
	if err != nil {
		return 0, fmt.Errorf("evaluator.timeout: %w", err)
	}
	if d < 0 {
		return 0, fmt.Errorf("evaluator.timeout: negative duration %s", d)
	}
	return d, nil
}

// NewEvaluator builds the engine the settings select.
func (s *Settings) NewEvaluator() (calc.Evaluator, error) {
	switch strings.ToLower(s.Evaluator.Engine) {
	case EngineBuiltin:
		return calc.NewBuiltinEvaluator(), nil
	case EngineProcess, "":
		timeout, err := s.EvaluatorTimeout()
		if err != nil {
			return nil, err
		}
		return calc.NewProcessEvaluator(s.Evaluator.Command, timeout)
	default:
		return nil, fmt.Errorf("unknown evaluator.engine %q (want %s or %s)", s.Evaluator.Engine, EngineProcess, EngineBuiltin)
	}
}

type ConfigManager struct {
	mu   sync.Mutex
	v    *viper.Viper
	path string
}

var Config = &ConfigManager{}

// DefaultConfigPath is $XDG_CONFIG_HOME/wigo-calc/config.yaml.
func DefaultConfigPath() string {
	configDir, err := os.UserConfigDir()
	if err != nil {
		return filepath.Join(os.TempDir(), "wigo-calc", "config.yaml")
	}
	return filepath.Join(configDir, "wigo-calc", "config.yaml")
}

func newViper() *viper.Viper {
	v := viper.New()
	for key, value := range defaults {
		v.SetDefault(key, value)
	}
	v.SetEnvPrefix("WIGO_CALC")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	return v
}

func decode(v *viper.Viper) (*Settings, error) {
	var s Settings
	if err := v.Unmarshal(&s); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	return &s, nil
}

// Load reads the YAML file at path, or DefaultConfigPath when path is empty.
// A missing file leaves the defaults in place.
func (c *ConfigManager) Load(path string) (*Settings, error) {
	if path == "" {
		path = DefaultConfigPath()
	}

	v := newViper()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")

	if err := v.ReadInConfig(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	s, err := decode(v)
	if err != nil {
		return nil, err
	}

	c.mu.Lock()
	c.v = v
	c.path = path
	c.mu.Unlock()
	return s, nil
}

// Reload reads the file given to the last Load again.
func (c *ConfigManager) Reload() (*Settings, error) {
	c.mu.Lock()
	path := c.path
	c.mu.Unlock()
	return c.Load(path)
}

// Path is the file the last Load read from.
func (c *ConfigManager) Path() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.path
}

// Watch calls onChange with fresh settings whenever the config file is
// written. It does nothing when the file does not exist yet.
func (c *ConfigManager) Watch(onChange func(*Settings, error)) {
	c.mu.Lock()
	v, path := c.v, c.path
	c.mu.Unlock()

	if v == nil {
		return
	}
	if _, err := os.Stat(path); err != nil {
		return
	}

	v.OnConfigChange(func(e fsnotify.Event) {
		if !e.Has(fsnotify.Write) && !e.Has(fsnotify.Create) {
			return
		}
		onChange(decode(v))
	})
	v.WatchConfig()
}
