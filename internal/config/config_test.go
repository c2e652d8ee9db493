package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultIsValid(t *testing.T) {
	params := Default()
	require.NoError(t, params.Validate())

	assert.False(t, params.UseGPU)
	assert.Positive(t, params.CPU.EvaluationCount)
	assert.Positive(t, params.GPU.EvaluationCount)
	assert.Positive(t, params.ObjectTransition.DeltaTime)
	assert.Positive(t, params.Observation.MaxDepth)
}

func TestSaveLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tracker.yaml")

	params := Default()
	params.UseGPU = true
	params.GPU.EvaluationCount = 4321
	params.Object.Directory = "/srv/meshes"
	params.Object.Meshes = []string{"mug.obj", "plate.obj"}
	params.ObjectTransition.LinearSigma = 0.123

	require.NoError(t, Save(path, params))

	loaded, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, params, loaded)
}

func TestLoadOverlaysDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "partial.yaml")
	partial := "use_gpu: false\ncpu:\n  evaluation_count: 55\n  max_sample_count: 500\n  update_rate: 0.25\n  max_kl_divergence: 1.5\n"
	require.NoError(t, os.WriteFile(path, []byte(partial), 0644))

	loaded, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 55, loaded.CPU.EvaluationCount)
	// Untouched sections keep the defaults.
	assert.Equal(t, Default().GPU, loaded.GPU)
	assert.Equal(t, Default().Observation, loaded.Observation)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	require.Error(t, err)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestLoadRejectsInvalidProfile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yaml")
	bad := "cpu:\n  evaluation_count: -5\n  max_sample_count: 500\n  update_rate: 0.25\n  max_kl_divergence: 1.5\n"
	require.NoError(t, os.WriteFile(path, []byte(bad), 0644))

	_, err := Load(path)
	require.Error(t, err)
}
