package manager

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/hoppxi/wigo-calc/pkg/calc"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestLoad_DefaultWhenMissing(t *testing.T) {
	c := &ConfigManager{}
	s, err := c.Load(filepath.Join(t.TempDir(), "config.yaml"))
	require.NoError(t, err)

	assert.Equal(t, EngineProcess, s.Evaluator.Engine)
	assert.Equal(t, calc.DefaultCommand, s.Evaluator.Command)
	assert.Equal(t, "org.hoppxi.WigoCalc.SearchProvider", s.Provider.BusName)
	assert.Equal(t, "/org/hoppxi/WigoCalc/SearchProvider", s.Provider.ObjectPath)
	assert.Equal(t, "accessories-calculator", s.Provider.Icon)
	assert.False(t, s.Clipboard.Notify)
	assert.Equal(t, DefaultSettings(), s)
}

func TestLoad_OverridesFromFile(t *testing.T) {
	path := writeConfig(t, `
evaluator:
  engine: builtin
  timeout: 2s
clipboard:
  notify: true
`)

	c := &ConfigManager{}
	s, err := c.Load(path)
	require.NoError(t, err)
	assert.Equal(t, EngineBuiltin, s.Evaluator.Engine)
	assert.Equal(t, calc.DefaultCommand, s.Evaluator.Command)
	assert.True(t, s.Clipboard.Notify)
	assert.Equal(t, path, c.Path())

	timeout, err := s.EvaluatorTimeout()
	require.NoError(t, err)
	assert.Equal(t, 2*time.Second, timeout)
}

func TestLoad_EnvOverride(t *testing.T) {
	t.Setenv("WIGO_CALC_EVALUATOR_COMMAND", "gcalctool -s")

	s, err := (&ConfigManager{}).Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.NoError(t, err)
	assert.Equal(t, "gcalctool -s", s.Evaluator.Command)
}

func TestLoad_InvalidYAML(t *testing.T) {
	path := writeConfig(t, "evaluator: [unclosed")

	_, err := (&ConfigManager{}).Load(path)
	assert.Error(t, err)
}

func TestReload(t *testing.T) {
	path := writeConfig(t, "evaluator:\n  engine: process\n")
	c := &ConfigManager{}
	_, err := c.Load(path)
	require.NoError(t, err)

	require.NoError(t, os.WriteFile(path, []byte("evaluator:\n  engine: builtin\n"), 0o644))
	s, err := c.Reload()
	require.NoError(t, err)
	assert.Equal(t, EngineBuiltin, s.Evaluator.Engine)
}

func TestEvaluatorTimeout(t *testing.T) {
	tests := []struct {
		in      string
		want    time.Duration
		wantErr bool
	}{
		{"", 0, false},
		{"0", 0, false},
		{"0s", 0, false},
		{"1500ms", 1500 * time.Millisecond, false},
		{"soon", 0, true},
		{"-1s", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			s := &Settings{}
			s.Evaluator.Timeout = tt.in
			got, err := s.EvaluatorTimeout()
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestNewEvaluator(t *testing.T) {
	s := DefaultSettings()

	eval, err := s.NewEvaluator()
	require.NoError(t, err)
	proc, ok := eval.(*calc.ProcessEvaluator)
	require.True(t, ok)
	assert.Equal(t, "gnome-calculator", proc.Path)

	s.Evaluator.Engine = "BUILTIN"
	eval, err = s.NewEvaluator()
	require.NoError(t, err)
	assert.IsType(t, &calc.BuiltinEvaluator{}, eval)

	s.Evaluator.Engine = "python"
	_, err = s.NewEvaluator()
	assert.Error(t, err)

	s.Evaluator.Engine = EngineProcess
	s.Evaluator.Command = ""
	_, err = s.NewEvaluator()
	assert.Error(t, err)
}
