package cmd

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tradecalc/core/calculator"
	"tradecalc/internal/config"
	"tradecalc/internal/errors"
)

func run(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	t.Setenv("HOME", t.TempDir())
	t.Cleanup(func() { config.Set(config.Default()) })

	root := NewRootCmd()
	var stdout, stderr bytes.Buffer
	root.SetOut(&stdout)
	root.SetErr(&stderr)
	root.SetArgs(append([]string{"--config", filepath.Join(t.TempDir(), "none.json")}, args...))
	err := root.Execute()
	return stdout.String(), stderr.String(), err
}

func TestToolCommandsExist(t *testing.T) {
	root := NewRootCmd()
	for _, name := range calculator.Default().Names() {
		cmd, _, err := root.Find([]string{string(name)})
		require.NoError(t, err)
		assert.Equal(t, string(name), cmd.Name())
	}
}

func TestSheathingCommand(t *testing.T) {
	out, _, err := run(t, "sheathing", "--length", "20", "--width", "30", "--pitch", "6:12")
	require.NoError(t, err)
	assert.Contains(t, out, "672.00 ft²")
	assert.Contains(t, out, "21 panels")
}

func TestAirflowCommandWithUnitsAsJSON(t *testing.T) {
	out, _, err := run(t, "--format", "json", "airflow",
		"--floor-area", "46.4515", "--floor-area-unit", "m2",
		"--ceiling-height", "8", "--ach", "6", "--label", "bedroom")
	require.NoError(t, err)

	var doc struct {
		Results []struct {
			Label   string `json:"label"`
			Outputs []struct {
				Name  string  `json:"name"`
				Value float64 `json:"value"`
			} `json:"outputs"`
		} `json:"results"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &doc))
	require.Len(t, doc.Results, 1)
	assert.Equal(t, "bedroom", doc.Results[0].Label)
	assert.Equal(t, "cfm", doc.Results[0].Outputs[1].Name)
	assert.InDelta(t, 400.0, doc.Results[0].Outputs[1].Value, 0.01)
}

func TestNotesCanBeHidden(t *testing.T) {
	out, _, err := run(t, "airflow", "--floor-area", "lots")
	require.NoError(t, err)
	assert.Contains(t, out, "note:")

	out, _, err = run(t, "--no-notes", "airflow", "--floor-area", "lots")
	require.NoError(t, err)
	assert.NotContains(t, out, "note:")
}

func TestBinaryFormatNeedsOut(t *testing.T) {
	_, _, err := run(t, "--format", "pdf", "load")
	assert.Error(t, err)
}

func TestOutFileInfersFormat(t *testing.T) {
	path := filepath.Join(t.TempDir(), "pipe.md")
	_, stderr, err := run(t, "pipe", "--diameter", "2", "--length", "10", "--out", path)
	require.NoError(t, err)
	assert.Contains(t, stderr, "Wrote")

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "## pipe")
}

func TestToolsCommand(t *testing.T) {
	out, _, err := run(t, "tools")
	require.NoError(t, err)
	assert.Contains(t, out, "shingle - ")
	assert.Contains(t, out, "--floor-area-unit")

	out, _, err = run(t, "--format", "json", "tools")
	require.NoError(t, err)
	var descs []calculator.Descriptor
	require.NoError(t, json.Unmarshal([]byte(out), &descs))
	assert.Len(t, descs, 5)
}

func TestBatchCommand(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "job.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
title: Smith
estimates:
  - tool: sheathing
    label: garage
    fields: {length: 20, width: 30}
  - tool: gutter
`), 0644))

	out, stderr, err := run(t, "--format", "markdown", "batch", path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "1 of 2 estimates failed")
	assert.Contains(t, out, "# Smith")
	assert.Contains(t, out, "## sheathing: garage")
	assert.Contains(t, stderr, "gutter")
}

func TestConfigInitAndShow(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cfg.json")

	root := NewRootCmd()
	var stdout bytes.Buffer
	root.SetOut(&stdout)
	root.SetErr(&bytes.Buffer{})
	root.SetArgs([]string{"--config", path, "config", "init"})
	require.NoError(t, root.Execute())
	assert.FileExists(t, path)

	root = NewRootCmd()
	root.SetOut(&stdout)
	root.SetErr(&bytes.Buffer{})
	root.SetArgs([]string{"--config", path, "config", "init"})
	assert.Error(t, root.Execute())

	stdout.Reset()
	t.Setenv("TRADECALC_ADDR", ":7070")
	root = NewRootCmd()
	root.SetOut(&stdout)
	root.SetArgs([]string{"--config", path, "config", "show"})
	require.NoError(t, root.Execute())

	var cfg config.Config
	require.NoError(t, json.Unmarshal(stdout.Bytes(), &cfg))
	assert.Equal(t, ":7070", cfg.Server.Address)
	config.Set(config.Default())
}

func TestConfigInitRepairsCorruptFile(t *testing.T) {
	t.Cleanup(func() { config.Set(config.Default()) })
	path := filepath.Join(t.TempDir(), "cfg.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0644))

	exec := func(args ...string) error {
		root := NewRootCmd()
		root.SetOut(&bytes.Buffer{})
		root.SetErr(&bytes.Buffer{})
		root.SetArgs(append([]string{"--config", path}, args...))
		return root.Execute()
	}

	err := exec("config", "show")
	require.Error(t, err)
	assert.True(t, errors.IsType(err, errors.TypeConfig))

	require.NoError(t, exec("config", "init", "--force"))
	require.NoError(t, exec("config", "show"))
}

func TestVersion(t *testing.T) {
	out, _, err := run(t, "version")
	require.NoError(t, err)
	assert.Equal(t, "tradecalc version "+Version+"\n", out)
}
