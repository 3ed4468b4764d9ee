package main

import (
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/benz9527/ordtree/bench"
)

func TestResolveFlags(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bench.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
variants: [bst]
count: 300
seed: 5
`), 0o644))

	cmd := newRootCmd()
	require.NoError(t, cmd.ParseFlags([]string{"-c", path, "--count", "500", "--variants", "avl,rb"}))
	flags := &cliFlags{}
	flags.configPath, _ = cmd.Flags().GetString("config")
	flags.cfg.Count, _ = cmd.Flags().GetInt("count")
	flags.cfg.Variants, _ = cmd.Flags().GetStringSlice("variants")

	cfg, err := flags.resolve(cmd)
	require.NoError(t, err)
	require.Equal(t, 500, cfg.Count)
	require.Equal(t, []string{"avl", "rb"}, cfg.Variants)
	// From the file.
	require.Equal(t, uint64(5), cfg.Seed)
	// From the defaults.
	require.Equal(t, bench.RandomKeys, cfg.KeySource)
}

func TestRootCmd_Run(t *testing.T) {
	out := filepath.Join(t.TempDir(), "report.yaml")
	cmd := newRootCmd()
	cmd.SetArgs([]string{
		"--count", "300",
		"--variants", "bst,avl,rb",
		"--check-every-op",
		"--parallel",
		"--log-level", "ERROR",
		"-o", out,
	})
	require.NoError(t, cmd.Execute())

	data, err := os.ReadFile(out)
	require.NoError(t, err)
	var report bench.Report
	require.NoError(t, yaml.Unmarshal(data, &report))
	require.Equal(t, 300, report.Count)
	require.Equal(t, 150, report.Removed)
	require.Len(t, report.Variants, 3)
}

func TestRootCmd_Profiles(t *testing.T) {
	dir := t.TempDir()
	cpu, mem := filepath.Join(dir, "cpu.pprof"), filepath.Join(dir, "mem.pprof")
	cmd := newRootCmd()
	cmd.SetArgs([]string{
		"--count", "200",
		"--variants", "rb",
		"--log-level", "ERROR",
		"--cpuprofile", cpu,
		"--memprofile", mem,
	})
	require.NoError(t, cmd.Execute())

	for _, path := range []string{cpu, mem} {
		info, err := os.Stat(path)
		require.NoError(t, err)
		require.NotZero(t, info.Size())
	}
}

func TestRootCmd_InvalidConfig(t *testing.T) {
	cmd := newRootCmd()
	cmd.SetArgs([]string{"--key-source", "zipf"})
	cmd.SetErr(io.Discard)
	cmd.SetOut(io.Discard)
	require.Error(t, cmd.Execute())
}
