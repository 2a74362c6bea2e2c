package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/christophergentle/perfgraph/internal/axis"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCmd(&options{})
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestProfilesCommand(t *testing.T) {
	out, err := execute(t, "profiles")
	require.NoError(t, err)
	assert.Equal(t, "dark\nlight\n", out)
}

func TestRenderBuiltInSamples(t *testing.T) {
	output := filepath.Join(t.TempDir(), "graph.png")

	_, err := execute(t, "--output", output, "--log-level", "warn")
	require.NoError(t, err)

	info, err := os.Stat(output)
	require.NoError(t, err)
	assert.Greater(t, info.Size(), int64(1000))
}

func TestRenderCSVTemporal(t *testing.T) {
	dir := t.TempDir()
	csvPath := filepath.Join(dir, "samples.csv")
	require.NoError(t, os.WriteFile(csvPath, []byte("date,value,label\n2026-01-04,294.24,A\n2026-01-19,55.89,B\n"), 0644))
	output := filepath.Join(dir, "graph.png")

	_, err := execute(t, "--csv", csvPath, "--axis", "temporal", "--profile", "light", "-o", output)
	require.NoError(t, err)

	_, err = os.Stat(output)
	assert.NoError(t, err)
}

func TestRenderRejectsBadInput(t *testing.T) {
	dir := t.TempDir()
	csvPath := filepath.Join(dir, "samples.csv")
	require.NoError(t, os.WriteFile(csvPath, []byte("2026-13-40,1,A\n"), 0644))
	output := filepath.Join(dir, "graph.png")

	_, err := execute(t, "--csv", csvPath, "--axis", "temporal", "-o", output)
	assert.Error(t, err)
	_, statErr := os.Stat(output)
	assert.True(t, os.IsNotExist(statErr))

	_, err = execute(t, "--axis", "polar", "-o", output)
	assert.ErrorContains(t, err, "unknown axis strategy")

	_, err = execute(t, "--log-level", "chatty")
	assert.ErrorContains(t, err, "invalid log level")
}

func TestRenderErrorIsReturnedNotPrinted(t *testing.T) {
	output := filepath.Join(t.TempDir(), "missing", "graph.png")

	out, err := execute(t, "-o", output, "--log-level", "warn")
	require.Error(t, err)
	assert.ErrorContains(t, err, "failed to write")
	assert.NotContains(t, out, "Error:")
	assert.NotContains(t, out, "failed to write")
}

func TestResolveFlagsOverrideConfig(t *testing.T) {
	dir := t.TempDir()
	configPath := filepath.Join(dir, "chart.yaml")
	doc := `
output: from-config.png
axis: temporal
profile: light
samples:
  - {date: "2026-01-04", value: 3, label: A}
`
	require.NoError(t, os.WriteFile(configPath, []byte(doc), 0644))

	opts := &options{}
	cmd := newRootCmd(opts)
	require.NoError(t, cmd.ParseFlags([]string{"--config", configPath, "--axis", "ordinal", "--s3-bucket", "charts"}))

	j, err := resolve(cmd, opts)
	require.NoError(t, err)

	assert.Equal(t, "from-config.png", j.output)
	assert.Equal(t, axis.Ordinal, j.strategy)
	assert.Equal(t, "light", j.profile.Name)
	assert.Len(t, j.samples, 1)
	assert.Equal(t, "charts", j.upload.Bucket)
}
