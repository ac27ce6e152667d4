package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tsinghua-fib-lab/movingblock-sim/utils/config"
	"gopkg.in/yaml.v2"
)

func readBack(t *testing.T, path string) config.Spacing {
	file, err := os.ReadFile(path)
	require.NoError(t, err)
	var s config.Spacing
	require.NoError(t, yaml.Unmarshal(file, &s))
	return s
}

func TestLoadSpacingCreatesMissingFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sub", "spacing.yaml")
	s := config.LoadSpacing(path, config.DefaultSpacing())
	assert.Equal(t, config.DefaultSpacing(), s)
	assert.Equal(t, config.DefaultSpacing(), readBack(t, path))
}

func TestLoadSpacingPartialFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "spacing.yaml")
	require.NoError(t, os.WriteFile(path, []byte("finalStopDistance: 8\ndebugLogging: true\n"), 0o644))

	s := config.LoadSpacing(path, config.DefaultSpacing())
	assert.Equal(t, 8., s.FinalStopDistance)
	assert.True(t, s.DebugLogging)
	assert.Equal(t, 128., s.MaxScanDistance)
	// 缺失的字段被补全
	assert.Equal(t, s, readBack(t, path))
}

func TestLoadSpacingJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "spacing.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"enabled": false, "slowdownDistance": 80}`), 0o644))

	s := config.LoadSpacing(path, config.DefaultSpacing())
	assert.False(t, s.Enabled)
	assert.Equal(t, 80., s.SlowdownDistance)
}

func TestLoadSpacingCorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "spacing.yaml")
	require.NoError(t, os.WriteFile(path, []byte("finalStopDistance: [oops"), 0o644))

	s := config.LoadSpacing(path, config.DefaultSpacing())
	assert.Equal(t, config.DefaultSpacing(), s)
	// 损坏的文件被修复
	assert.Equal(t, config.DefaultSpacing(), readBack(t, path))

	require.NoError(t, os.WriteFile(path, []byte("finalStopDistance: -1\n"), 0o644))
	assert.Equal(t, config.DefaultSpacing(), config.LoadSpacing(path, config.DefaultSpacing()))
}

func TestLoadSpacingRejectsNonFinite(t *testing.T) {
	path := filepath.Join(t.TempDir(), "spacing.yaml")
	for _, doc := range []string{
		"finalStopDistance: .nan\n",
		"maxScanDistance: .inf\n",
		"slowdownDistance: -.inf\n",
	} {
		require.NoError(t, os.WriteFile(path, []byte(doc), 0o644))
		assert.Equal(t, config.DefaultSpacing(), config.LoadSpacing(path, config.DefaultSpacing()), doc)
		assert.Equal(t, config.DefaultSpacing(), readBack(t, path), doc)
	}
}

func TestSpacingStoreReload(t *testing.T) {
	path := filepath.Join(t.TempDir(), "spacing.yaml")
	st := config.NewSpacingStore(path)
	assert.Equal(t, config.DefaultSpacing(), st.Get())

	require.NoError(t, os.WriteFile(path, []byte("finalStopDistance: 12\n"), 0o644))
	// 重载之前快照不变
	assert.Equal(t, 5., st.Get().FinalStopDistance)
	assert.Equal(t, 12., st.Reload().FinalStopDistance)
	assert.Equal(t, 12., st.Get().FinalStopDistance)

	// 重载失败时保留当前值
	require.NoError(t, os.WriteFile(path, []byte("{{{"), 0o644))
	assert.Equal(t, 12., st.Reload().FinalStopDistance)
	assert.Equal(t, 12., readBack(t, path).FinalStopDistance)
}

func TestStaticSpacingStore(t *testing.T) {
	s := config.DefaultSpacing()
	s.Enabled = false
	st := config.NewStaticSpacingStore(s)
	assert.Equal(t, s, st.Reload())
	assert.Equal(t, config.DefaultSpacing(), config.NewSpacingStore("").Reload())
}
