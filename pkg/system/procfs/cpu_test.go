//go:build linux

package procfs

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReadCPUStats(t *testing.T) {
	root := writeTree(t, map[string]string{
		"stat": "cpu  100 0 50 800 25 0 0 0 0 0\ncpu0 50 0 25 400 12 0 0 0 0 0\nintr 12345\n",
	})
	s, err := ReadCPUStats(root)
	require.NoError(t, err)
	assert.Equal(t, CPUStats{Idle: 800, Total: 975}, s)
}

func TestReadCPUStats_Errors(t *testing.T) {
	root := writeTree(t, map[string]string{"stat": "intr 1 2 3\n"})
	_, err := ReadCPUStats(root)
	assert.ErrorIs(t, err, ErrNoCPU)

	root = writeTree(t, map[string]string{"stat": "cpu 1 2\n"})
	_, err = ReadCPUStats(root)
	assert.ErrorIs(t, err, ErrParse)

	root = writeTree(t, map[string]string{"stat": "cpu 1 2 three 4 5\n"})
	_, err = ReadCPUStats(root)
	assert.ErrorIs(t, err, ErrParse)

	_, err = ReadCPUStats(t.TempDir())
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestCPUUsage(t *testing.T) {
	cases := []struct {
		name       string
		prev, curr CPUStats
		want       float64
	}{
		{"quarter_idle", CPUStats{Idle: 800, Total: 1000}, CPUStats{Idle: 900, Total: 1400}, 0.75},
		{"fully_idle", CPUStats{Idle: 0, Total: 0}, CPUStats{Idle: 100, Total: 100}, 0},
		{"fully_busy", CPUStats{Idle: 10, Total: 10}, CPUStats{Idle: 10, Total: 110}, 1},
		{"idle_went_back", CPUStats{Idle: 900, Total: 1000}, CPUStats{Idle: 800, Total: 1400}, 0},
		{"total_went_back", CPUStats{Idle: 800, Total: 1400}, CPUStats{Idle: 900, Total: 1000}, 0},
		{"no_ticks", CPUStats{Idle: 800, Total: 1000}, CPUStats{Idle: 800, Total: 1000}, 0},
		{"from_zero_snapshot", CPUStats{}, CPUStats{Idle: 800, Total: 975}, 1 - 800.0/975.0},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.InDelta(t, tc.want, CPUUsage(tc.prev, tc.curr), 1e-12)
		})
	}
}

func TestUsage_ReturnsNextSnapshot(t *testing.T) {
	root := writeTree(t, map[string]string{"stat": "cpu 100 0 100 800 0 0 0 0 0 0\n"})

	u, first, err := Usage(root, CPUStats{})
	require.NoError(t, err)
	assert.Equal(t, CPUStats{Idle: 800, Total: 1000}, first)
	assert.InDelta(t, 0.2, u, 1e-12)

	require.NoError(t, os.WriteFile(filepath.Join(root, "stat"), []byte("cpu 200 0 200 900 0 0 0 0 0 0\n"), 0o644))

	u, second, err := Usage(root, first)
	require.NoError(t, err)
	assert.Equal(t, CPUStats{Idle: 900, Total: 1300}, second)
	assert.InDelta(t, 1-100.0/300.0, u, 1e-12)
}

func TestUsage_ErrorKeepsPrev(t *testing.T) {
	prev := CPUStats{Idle: 1, Total: 2}
	u, next, err := Usage(t.TempDir(), prev)
	require.Error(t, err)
	assert.Equal(t, 0.0, u)
	assert.Equal(t, prev, next)
}
