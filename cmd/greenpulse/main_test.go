package main

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/qaim-b/the-green-pulse/internal/cli"
	"github.com/qaim-b/the-green-pulse/internal/config"
)

func TestExitCode(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{name: "nil error", err: nil, want: 0},
		{name: "generic error", err: errors.New("boom"), want: 1},
		{
			name: "partial portfolio failure",
			err:  &cli.ExitError{ExitCode: cli.ExitCodePartialFailure, Reason: "1 of 3 buildings failed"},
			want: 2,
		},
		{
			name: "wrapped exit error",
			err:  fmt.Errorf("outer: %w", &cli.ExitError{ExitCode: 42, Reason: "custom"}),
			want: 42,
		},
		{
			name: "joined exit error",
			err:  errors.Join(errors.New("first"), &cli.ExitError{ExitCode: 3, Reason: "joined"}),
			want: 3,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, exitCode(tt.err))
		})
	}
}

func TestRun(t *testing.T) {
	t.Setenv(config.EnvHome, t.TempDir())
	t.Setenv(config.EnvLogLevel, "error")
	t.Setenv(config.EnvProjectDir, t.TempDir())
	t.Cleanup(config.ResetGlobalConfigForTest)

	assert.Equal(t, 0, run([]string{"--version"}))
	assert.Equal(t, 0, run([]string{"roi", "--area", "15000", "--tons", "87.2", "-o", "json"}))
	assert.Equal(t, 1, run([]string{"roi", "--area", "15000"}))
	assert.Equal(t, 1, run([]string{"no-such-command"}))
}
