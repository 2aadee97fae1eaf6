package models

import (
	"encoding/json"
	"testing"
	"time"

	gojson "github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const mixedSnapshot = `{
  "id": "snap-9",
  "capturedAt": "2024-03-13T09:30:00Z",
  "cadets": [
    {"id": "good", "behaviorScore": 2},
    {"id": "bad-date", "behaviorScore": 2, "enrollmentDate": "2024-02-30"},
    {"id": "fractional", "behaviorScore": 2.5},
    {"id": 17, "behaviorScore": "two"}
  ],
  "staff": [{"id": "s1", "experienceYears": "lots"}, {"id": "s2"}],
  "schedule": [{"id": "e1", "staffId": "s2", "date": "yesterday"}],
  "inventory": [{"id": "i1", "quantity": "7"}, {"id": "i2", "quantity": 7}]
}`

func TestSnapshot_UnmarshalKeepsGoodRecords(t *testing.T) {
	decoders := map[string]func([]byte, interface{}) error{
		"encoding/json": json.Unmarshal,
		"go-json":       gojson.Unmarshal,
	}
	for name, unmarshal := range decoders {
		t.Run(name, func(t *testing.T) {
			var snap Snapshot
			require.NoError(t, unmarshal([]byte(mixedSnapshot), &snap))

			assert.Equal(t, "snap-9", snap.ID)
			require.Len(t, snap.Cadets, 4)
			assert.NoError(t, snap.Cadets[0].DecodeError())
			require.NotNil(t, snap.Cadets[0].BehaviorScore)
			assert.Equal(t, 2, *snap.Cadets[0].BehaviorScore)

			for _, i := range []int{1, 2, 3} {
				assert.Error(t, snap.Cadets[i].DecodeError(), "cadet %d", i)
				assert.Nil(t, snap.Cadets[i].BehaviorScore)
			}
			assert.Equal(t, "bad-date", snap.Cadets[1].ID)
			assert.Equal(t, "fractional", snap.Cadets[2].ID)
			assert.Empty(t, snap.Cadets[3].ID)

			require.Len(t, snap.Staff, 2)
			assert.Error(t, snap.Staff[0].DecodeError())
			assert.NoError(t, snap.Staff[1].DecodeError())

			require.Len(t, snap.Schedule, 1)
			assert.Error(t, snap.Schedule[0].DecodeError())
			assert.Equal(t, "e1", snap.Schedule[0].ID)

			require.Len(t, snap.Inventory, 2)
			assert.Error(t, snap.Inventory[0].DecodeError())
			assert.NoError(t, snap.Inventory[1].DecodeError())
		})
	}
}

func TestSnapshot_UnmarshalRejectsMalformedEnvelope(t *testing.T) {
	var snap Snapshot
	assert.Error(t, json.Unmarshal([]byte(`{"cadets": "none"}`), &snap))
	assert.Error(t, json.Unmarshal([]byte(`{"capturedAt": "soon"}`), &snap))
}

func TestSnapshot_UnmarshalRoundTripsCleanSnapshot(t *testing.T) {
	score := 3
	day := NewDate(mustTime(t, "2024-03-10T00:00:00Z"))
	in := Snapshot{
		ID:         "snap-1",
		CapturedAt: mustTime(t, "2024-03-13T09:30:00Z"),
		Cadets:     []CadetRecord{{ID: "c1", BehaviorScore: &score, EnrollmentDate: &day}},
		Staff:      []StaffRecord{},
	}
	data, err := json.Marshal(in)
	require.NoError(t, err)

	var out Snapshot
	require.NoError(t, json.Unmarshal(data, &out))
	assert.True(t, in.CapturedAt.Equal(out.CapturedAt))
	out.CapturedAt = in.CapturedAt
	assert.Equal(t, in, out)
}

func mustTime(t *testing.T, s string) time.Time {
	t.Helper()
	ts, err := time.Parse(time.RFC3339, s)
	require.NoError(t, err)
	return ts
}
