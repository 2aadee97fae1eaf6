package constants

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseAcademicStatus(t *testing.T) {
	tests := []struct {
		raw     string
		want    AcademicStatus
		wantErr bool
	}{
		{raw: "", want: AcademicNotStarted},
		{raw: "NotStarted", want: AcademicNotStarted},
		{raw: "inprogress", want: AcademicInProgress},
		{raw: "completed", want: AcademicCompleted},
		{raw: "COMPLETED", want: AcademicCompleted},
		{raw: "Dropped", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			got, err := ParseAcademicStatus(tt.raw)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseCadetStatus(t *testing.T) {
	tests := []struct {
		raw     string
		want    CadetStatus
		wantErr bool
	}{
		{raw: "", want: CadetActive},
		{raw: "active", want: CadetActive},
		{raw: "Graduated", want: CadetGraduated},
		{raw: "WITHDRAWN", want: CadetWithdrawn},
		{raw: "Suspended", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			got, err := ParseCadetStatus(tt.raw)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestColorsCoverClosedSets(t *testing.T) {
	assert.Equal(t, "red", RiskLevelHigh.Color())
	assert.Equal(t, "yellow", ForecastSoon.Color())
	assert.Equal(t, "blue", BalanceCanTakeMore.Color())
	assert.Panics(t, func() { _ = RiskLevel("Severe").Color() })
}
