package main

import (
	"path/filepath"
	"testing"

	"github.com/san-kum/spheredrop/internal/config"
	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sceneCommand(t *testing.T, args ...string) *cobra.Command {
	t.Helper()
	t.Cleanup(func() {
		preset, configFile = "", ""
	})
	cmd := &cobra.Command{Use: "test"}
	addSceneFlags(cmd)
	require.NoError(t, cmd.ParseFlags(args))
	return cmd
}

func TestFrameLimit(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "scene.yaml")
	cfg := config.DefaultConfig()
	cfg.Loop.Frames = 42
	require.NoError(t, config.Save(path, cfg))

	tests := []struct {
		name string
		args []string
		want int
	}{
		{"bare demo runs until interrupted", nil, 0},
		{"frames flag", []string{"--frames", "7"}, 7},
		{"preset frame count", []string{"--preset", "moon"}, 900},
		{"config file frame count", []string{"--config", path}, 42},
		{"flag beats config", []string{"--config", path, "--frames", "5"}, 5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cmd := sceneCommand(t, tt.args...)
			resolved, err := resolveConfig(cmd)
			require.NoError(t, err)
			assert.Equal(t, tt.want, frameLimit(cmd, resolved))
		})
	}
}

func TestResolveConfigPrecedence(t *testing.T) {
	cmd := sceneCommand(t, "--preset", "bouncy", "--mass", "2")
	cfg, err := resolveConfig(cmd)
	require.NoError(t, err)

	assert.Equal(t, "bouncy", cfg.Preset)
	assert.Equal(t, 0.9, cfg.Sphere.Restitution)
	assert.Equal(t, 2.0, cfg.Sphere.Mass)
	assert.Equal(t, config.DefaultRadius, cfg.Sphere.Radius)
}

func TestResolveConfigUnknownPreset(t *testing.T) {
	cmd := sceneCommand(t, "--preset", "nope")
	_, err := resolveConfig(cmd)
	assert.Error(t, err)
}

func TestSetupLogging(t *testing.T) {
	assert.NoError(t, setupLogging("debug", ""))
	assert.Error(t, setupLogging("loud", ""))

	path := filepath.Join(t.TempDir(), "spheredrop.log")
	require.NoError(t, setupLogging("info", path))
	t.Cleanup(func() { setupLogging("info", "") })
}
