package policy

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/turtacn/cadetops/internal/domain/service"
	"github.com/turtacn/cadetops/pkg/errors"
)

func writePolicy(t *testing.T, dir, body string) string {
	t.Helper()
	path := filepath.Join(dir, "policy.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestLoadPolicyFile_OverlaysDefaults(t *testing.T) {
	path := writePolicy(t, t.TempDir(), `
workload:
  hours_per_shift: 4
  current_week_only: true
inventory:
  soon_horizon_days: 21
`)

	policy, err := LoadPolicyFile(path, service.DefaultPolicy())
	require.NoError(t, err)

	assert.Equal(t, 4.0, policy.Workload.HoursPerShift)
	assert.True(t, policy.Workload.CurrentWeekOnly)
	assert.Equal(t, 21.0, policy.Inventory.SoonHorizonDays)
	// Untouched keys keep their defaults.
	assert.Equal(t, 40.0, policy.Workload.ReferenceWorkweekHours)
	assert.Equal(t, service.DefaultPolicy().Risk, policy.Risk)
}

func TestLoadPolicyFile_KeepsBaseOverrides(t *testing.T) {
	base := service.DefaultPolicy()
	base.Workload.CurrentWeekOnly = true
	path := writePolicy(t, t.TempDir(), "coverage:\n  experienced_staff_years: 3\n")

	policy, err := LoadPolicyFile(path, base)
	require.NoError(t, err)
	assert.True(t, policy.Workload.CurrentWeekOnly)
	assert.Equal(t, 3.0, policy.Coverage.ExperiencedStaffYears)
}

func TestLoadPolicyFile_EmptyFile(t *testing.T) {
	path := writePolicy(t, t.TempDir(), "")

	policy, err := LoadPolicyFile(path, service.DefaultPolicy())
	require.NoError(t, err)
	assert.Equal(t, service.DefaultPolicy(), policy)
}

func TestLoadPolicyFile_Errors(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"unknown key", "workload:\n  hours_per_shfit: 3\n"},
		{"malformed yaml", "workload: [\n"},
		{"invalid value", "workload:\n  hours_per_shift: 0\n"},
		{"inverted bounds", "workload:\n  reduce_load_above: 20\n  can_take_more_below: 50\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writePolicy(t, t.TempDir(), tt.body)

			_, err := LoadPolicyFile(path, service.DefaultPolicy())
			require.Error(t, err)
			domainErr, ok := errors.AsDomainError(err)
			require.True(t, ok)
			assert.Equal(t, "invalid_policy", string(domainErr.Code()))
		})
	}
}

func TestLoadPolicyFile_Missing(t *testing.T) {
	_, err := LoadPolicyFile(filepath.Join(t.TempDir(), "absent.yaml"), service.DefaultPolicy())
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestMarshalPolicy_RoundTrips(t *testing.T) {
	data, err := MarshalPolicy(service.DefaultPolicy())
	require.NoError(t, err)

	policy, err := ParsePolicy(data, service.AnalyticsPolicy{})
	require.NoError(t, err)
	assert.Equal(t, service.DefaultPolicy(), policy)
}
