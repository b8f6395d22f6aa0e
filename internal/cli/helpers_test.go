package cli_test

import (
	"bytes"
	"testing"

	"github.com/qaim-b/the-green-pulse/internal/cli"
	"github.com/qaim-b/the-green-pulse/internal/config"
)

// isolate points every greenpulse path at temp dirs and registers cleanup
// for global state.
func isolate(t *testing.T) string {
	t.Helper()
	home := t.TempDir()
	t.Setenv(config.EnvHome, home)
	t.Setenv(config.EnvLogLevel, "error")
	t.Setenv(config.EnvOutput, "")
	t.Setenv(config.EnvModel, "")
	t.Setenv(config.EnvProjectDir, t.TempDir())
	t.Setenv("NO_COLOR", "1")
	t.Cleanup(func() {
		config.ResetGlobalConfigForTest()
		config.SetResolvedProjectDir("")
	})
	return home
}

// run executes the root command with args and returns combined output.
func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var buf bytes.Buffer
	cmd := cli.NewRootCmd("test")
	cmd.SetOut(&buf)
	cmd.SetErr(&buf)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return buf.String(), err
}

// officeFlags describes the reference office building.
func officeFlags() []string {
	return []string{
		"--name", "HQ Tower",
		"--area", "15000",
		"--type", "Office",
		"--hvac", "Gas Furnace",
		"--insulation", "Good",
		"--climate", "Mixed-Humid",
		"--renewable", "20",
		"--led", "50",
	}
}
