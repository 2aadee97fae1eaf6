package policy

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/turtacn/cadetops/internal/domain/service"
	"github.com/turtacn/cadetops/pkg/logger"
)

func TestWatcher_ReloadsOnWrite(t *testing.T) {
	path := writePolicy(t, t.TempDir(), "workload:\n  hours_per_shift: 3\n")

	w, err := NewWatcher(path, service.DefaultPolicy(), logger.NewNoopLogger())
	require.NoError(t, err)
	defer w.Close()
	assert.Equal(t, 3.0, w.Current().Workload.HoursPerShift)

	require.NoError(t, os.WriteFile(path, []byte("workload:\n  hours_per_shift: 5\n"), 0o600))

	assert.Eventually(t, func() bool {
		return w.Current().Workload.HoursPerShift == 5.0
	}, 5*time.Second, 20*time.Millisecond)
}

func TestWatcher_KeepsPreviousOnInvalidReload(t *testing.T) {
	path := writePolicy(t, t.TempDir(), "workload:\n  hours_per_shift: 3\n")

	w, err := NewWatcher(path, service.DefaultPolicy(), logger.NewNoopLogger())
	require.NoError(t, err)
	defer w.Close()

	require.NoError(t, os.WriteFile(path, []byte("workload:\n  hours_per_shift: -1\n"), 0o600))
	select {
	case <-w.Reloaded():
	case <-time.After(5 * time.Second):
		t.Fatal("no reload attempt observed")
	}
	assert.Equal(t, 3.0, w.Current().Workload.HoursPerShift)

	require.NoError(t, os.WriteFile(path, []byte("workload:\n  hours_per_shift: 6\n"), 0o600))
	assert.Eventually(t, func() bool {
		return w.Current().Workload.HoursPerShift == 6.0
	}, 5*time.Second, 20*time.Millisecond)
}

func TestNewWatcher_InvalidInitialFile(t *testing.T) {
	path := writePolicy(t, t.TempDir(), "risk:\n  high_level_min: 10\n  elevated_level_min: 50\n")

	_, err := NewWatcher(path, service.DefaultPolicy(), logger.NewNoopLogger())
	assert.Error(t, err)
}

func TestWatcher_CloseIsIdempotent(t *testing.T) {
	path := writePolicy(t, t.TempDir(), "")

	w, err := NewWatcher(path, service.DefaultPolicy(), logger.NewNoopLogger())
	require.NoError(t, err)
	assert.NoError(t, w.Close())
	assert.NoError(t, w.Close())
}
