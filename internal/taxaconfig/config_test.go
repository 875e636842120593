package taxaconfig

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDefault_CompiledInValues(t *testing.T) {
	cfg := Default()
	require.Equal(t, 50000, cfg.WindowThreshold)
	require.Equal(t, 120, cfg.SubjectWindow)
	require.Equal(t, 200, cfg.ActionWindow)
	require.Equal(t, 300, cfg.MaxClauseLen)
	require.InDelta(t, 0.173, cfg.MakingBaseRate, 1e-9)
	require.InDelta(t, 0.30, cfg.MakingLowThreshold, 1e-9)
	require.InDelta(t, 0.70, cfg.MakingHighThreshold, 1e-9)
}

func TestLoad_NoFileNoFlags(t *testing.T) {
	cfg, err := Load("", nil)
	require.NoError(t, err)
	require.Equal(t, Default(), cfg)
}

func TestLoad_FileOverridesDefaults(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "taxaconfig.yaml")
	require.NoError(t, os.WriteFile(path, []byte("window_threshold: 1000\nmax_clause_len: 400\n"), 0600))

	cfg, err := Load(path, nil)
	require.NoError(t, err)
	require.Equal(t, 1000, cfg.WindowThreshold)
	require.Equal(t, 400, cfg.MaxClauseLen)
	// Untouched keys keep their compiled-in default.
	require.Equal(t, 120, cfg.SubjectWindow)
}

func TestLoad_MissingFileErrors(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"), nil)
	require.Error(t, err)
}
