package models

import (
	"encoding/json"
	"time"
)

// DecodeError reports why the record could not be read from its JSON form, or nil.
func (r CadetRecord) DecodeError() error { return r.decodeErr }

// DecodeError reports why the record could not be read from its JSON form, or nil.
func (r StaffRecord) DecodeError() error { return r.decodeErr }

// DecodeError reports why the record could not be read from its JSON form, or nil.
func (r ScheduleEntryRecord) DecodeError() error { return r.decodeErr }

// DecodeError reports why the record could not be read from its JSON form, or nil.
func (r InventoryItemRecord) DecodeError() error { return r.decodeErr }

func (r *CadetRecord) markUndecodable(id string, err error) {
	*r = CadetRecord{ID: id, decodeErr: err}
}

func (r *StaffRecord) markUndecodable(id string, err error) {
	*r = StaffRecord{ID: id, decodeErr: err}
}

func (r *ScheduleEntryRecord) markUndecodable(id string, err error) {
	*r = ScheduleEntryRecord{ID: id, decodeErr: err}
}

func (r *InventoryItemRecord) markUndecodable(id string, err error) {
	*r = InventoryItemRecord{ID: id, decodeErr: err}
}

type undecodable[T any] interface {
	*T
	markUndecodable(id string, err error)
}

// UnmarshalJSON decodes each record on its own. A record with a malformed field stays in its
// position carrying only its ID and the decode error, so one bad record never rejects the batch.
func (s *Snapshot) UnmarshalJSON(data []byte) error {
	var raw struct {
		ID         string            `json:"id"`
		CapturedAt time.Time         `json:"capturedAt"`
		Cadets     []json.RawMessage `json:"cadets"`
		Staff      []json.RawMessage `json:"staff"`
		Schedule   []json.RawMessage `json:"schedule"`
		Inventory  []json.RawMessage `json:"inventory"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	*s = Snapshot{
		ID:         raw.ID,
		CapturedAt: raw.CapturedAt,
		Cadets:     decodeRecords[CadetRecord](raw.Cadets),
		Staff:      decodeRecords[StaffRecord](raw.Staff),
		Schedule:   decodeRecords[ScheduleEntryRecord](raw.Schedule),
		Inventory:  decodeRecords[InventoryItemRecord](raw.Inventory),
	}
	return nil
}

func decodeRecords[T any, P undecodable[T]](raws []json.RawMessage) []T {
	if raws == nil {
		return nil
	}
	out := make([]T, len(raws))
	for i, msg := range raws {
		if err := json.Unmarshal(msg, &out[i]); err != nil {
			P(&out[i]).markUndecodable(rawRecordID(msg), err)
		}
	}
	return out
}

// rawRecordID salvages a string "id" from a record that failed to decode.
func rawRecordID(msg json.RawMessage) string {
	var head struct {
		ID interface{} `json:"id"`
	}
	if err := json.Unmarshal(msg, &head); err != nil {
		return ""
	}
	id, _ := head.ID.(string)
	return id
}
