package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	sampleClimate  = "../../examples/climate/sample.csv"
	coastalClimate = "../../examples/climate/coastal.yaml"
)

func TestRun_ExitCodes(t *testing.T) {
	tests := []struct {
		name string
		args []string
		code int
	}{
		{"no command", nil, 2},
		{"unknown command", []string{"backtest"}, 2},
		{"size", []string{"size", "--climate", sampleClimate}, 0},
		// flat-plate collects nothing at 75/20 degC, so no point is feasible
		{"size without solution", []string{"size", "--climate", coastalClimate}, 1},
		{"rank without solution", []string{"rank", "--climate", coastalClimate}, 1},
		{"rank", []string{"rank", "--climate", coastalClimate, "--collector", "evacuated-tube", "--limit", "3"}, 0},
		{"missing climate", []string{"size"}, 1},
		{"bad collector", []string{"sweep", "--climate", sampleClimate, "--collector", "parabolic"}, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.code, run(tt.args))
		})
	}
}

func TestCmdSize_NoSolutionIsSentinel(t *testing.T) {
	err := cmdSize([]string{"--climate", coastalClimate})
	assert.True(t, errors.Is(err, errNoSolution))

	err = cmdRank([]string{"--climate", coastalClimate})
	assert.True(t, errors.Is(err, errNoSolution))
}

func TestCmdSize_WritesCSV(t *testing.T) {
	out := t.TempDir()
	require.NoError(t, cmdSize([]string{"--climate", sampleClimate, "--out", out}))

	for _, name := range []string{"profile.csv", "sweep.csv"} {
		info, err := os.Stat(filepath.Join(out, name))
		require.NoError(t, err, name)
		assert.Positive(t, info.Size(), name)
	}
}
