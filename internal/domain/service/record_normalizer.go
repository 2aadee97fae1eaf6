package service

import (
	"fmt"
	"strings"
	"time"

	"github.com/turtacn/cadetops/internal/domain/models"
	"github.com/turtacn/cadetops/pkg/constants"
	"github.com/turtacn/cadetops/pkg/errors"
	"github.com/turtacn/cadetops/pkg/utils"
)

// RecordNormalizer validates raw records and applies defaults before any scoring.
// RecordNormalizer 在评分之前验证原始记录并应用默认值。
type RecordNormalizer struct{}

// NewRecordNormalizer creates a new RecordNormalizer.
// NewRecordNormalizer 创建一个新的 RecordNormalizer。
func NewRecordNormalizer() *RecordNormalizer {
	return &RecordNormalizer{}
}

// NormalizeCadet validates a cadet record. Academic status defaults to NotStarted and status to Active.
// NormalizeCadet 验证学员记录。学业状态默认为 NotStarted，状态默认为 Active。
func (n *RecordNormalizer) NormalizeCadet(rec models.CadetRecord, today models.Date) (models.Cadet, errors.DomainError) {
	if err := rec.DecodeError(); err != nil {
		return models.Cadet{}, malformed(err)
	}
	if err := utils.ValidateStruct(rec); err != nil {
		return models.Cadet{}, err
	}
	academic, err := constants.ParseAcademicStatus(strings.TrimSpace(rec.AcademicStatus))
	if err != nil {
		return models.Cadet{}, errors.ErrInvalidInput("academicStatus", err.Error())
	}
	status, err := constants.ParseCadetStatus(strings.TrimSpace(rec.Status))
	if err != nil {
		return models.Cadet{}, errors.ErrInvalidInput("status", err.Error())
	}

	c := models.Cadet{
		ID:             rec.ID,
		Name:           models.DisplayName(rec.ID, rec.FirstName, rec.LastName),
		BehaviorScore:  *rec.BehaviorScore,
		AcademicStatus: academic,
		Status:         status,
	}
	if rec.Age != nil {
		age := *rec.Age
		c.Age = &age
	}
	if rec.EnrollmentDate != nil {
		// enrollment recorded after the snapshot date is treated as enrolling today
		d := models.NewDate(rec.EnrollmentDate.Time)
		if d.After(today.Time) {
			d = today
		}
		c.EnrollmentDate = &d
	}
	return c, nil
}

// NormalizeStaff validates a staff record. Missing experience counts as zero years.
// NormalizeStaff 验证员工记录。缺失的工作年限按零年计算。
func (n *RecordNormalizer) NormalizeStaff(rec models.StaffRecord) (models.StaffMember, errors.DomainError) {
	if err := rec.DecodeError(); err != nil {
		return models.StaffMember{}, malformed(err)
	}
	if err := utils.ValidateStruct(rec); err != nil {
		return models.StaffMember{}, err
	}
	s := models.StaffMember{
		ID:               rec.ID,
		Name:             models.DisplayName(rec.ID, rec.FirstName, rec.LastName),
		Role:             rec.Role,
		ScheduleEntryIDs: append([]string(nil), rec.ScheduleEntryIDs...),
	}
	if rec.ExperienceYears != nil {
		s.ExperienceYears = *rec.ExperienceYears
	}
	return s, nil
}

// NormalizeScheduleEntry validates a schedule entry. Start and end times are optional but must come as a pair.
// NormalizeScheduleEntry 验证排班条目。开始和结束时间可选，但必须成对出现。
func (n *RecordNormalizer) NormalizeScheduleEntry(rec models.ScheduleEntryRecord) (models.ScheduleEntry, errors.DomainError) {
	if err := rec.DecodeError(); err != nil {
		return models.ScheduleEntry{}, malformed(err)
	}
	if err := utils.ValidateStruct(rec); err != nil {
		return models.ScheduleEntry{}, err
	}
	e := models.ScheduleEntry{
		ID:       rec.ID,
		StaffID:  rec.StaffID,
		Date:     models.NewDate(rec.Date.Time),
		TaskType: rec.TaskType,
	}

	start, end := strings.TrimSpace(rec.StartTime), strings.TrimSpace(rec.EndTime)
	if start == "" && end == "" {
		return e, nil
	}
	if start == "" || end == "" {
		return models.ScheduleEntry{}, errors.ErrInvalidInput("startTime", "startTime and endTime must both be set or both be empty")
	}
	var perr errors.DomainError
	if e.Start, perr = parseClock("startTime", start); perr != nil {
		return models.ScheduleEntry{}, perr
	}
	if e.End, perr = parseClock("endTime", end); perr != nil {
		return models.ScheduleEntry{}, perr
	}
	if e.End <= e.Start {
		return models.ScheduleEntry{}, errors.ErrInvalidInput("endTime", fmt.Sprintf("%s is not after %s", end, start))
	}
	return e, nil
}

// NormalizeInventoryItem validates a stock item. An item without a usage rate has no usage signal.
// NormalizeInventoryItem 验证库存物品。没有使用率的物品没有使用信号。
func (n *RecordNormalizer) NormalizeInventoryItem(rec models.InventoryItemRecord) (models.InventoryItem, errors.DomainError) {
	if err := rec.DecodeError(); err != nil {
		return models.InventoryItem{}, malformed(err)
	}
	if err := utils.ValidateStruct(rec); err != nil {
		return models.InventoryItem{}, err
	}
	item := models.InventoryItem{
		ID:       rec.ID,
		Name:     rec.Name,
		Category: rec.Category,
		Quantity: *rec.Quantity,
	}
	if item.Name == "" {
		item.Name = rec.ID
	}
	if rec.Threshold != nil {
		item.Threshold = *rec.Threshold
	}
	if rec.UsageRate == nil {
		return item, nil
	}

	usage := &models.UsageSignal{Rate: *rec.UsageRate}
	if rec.UsageHistoryDays != nil {
		usage.HistoryDays = *rec.UsageHistoryDays
	}
	if rec.UsageVariation != nil {
		usage.Variation = *rec.UsageVariation
	}
	if rec.ConfidenceScore != nil {
		conf := utils.ClampFloat(*rec.ConfidenceScore, 0, 100)
		usage.Confidence = &conf
	}
	item.Usage = usage
	return item, nil
}

// NormalizeSnapshot normalizes every collection of a snapshot. Records that fail validation are
// skipped and reported as issues; the rest of the batch is kept.
// NormalizeSnapshot 规范化快照中的每个集合。验证失败的记录被跳过并作为问题报告，其余记录保留。
func (n *RecordNormalizer) NormalizeSnapshot(snap *models.Snapshot) (*models.NormalizedSnapshot, []models.RecordIssue) {
	today := models.NewDate(snap.CapturedAt)
	out := &models.NormalizedSnapshot{
		SnapshotID: snap.ID,
		CapturedAt: snap.CapturedAt,
		Cadets:     make([]models.Cadet, 0, len(snap.Cadets)),
		Staff:      make([]models.StaffMember, 0, len(snap.Staff)),
		Schedule:   make([]models.ScheduleEntry, 0, len(snap.Schedule)),
		Inventory:  make([]models.InventoryItem, 0, len(snap.Inventory)),
	}
	var issues []models.RecordIssue
	report := func(rt constants.RecordType, id string, err errors.DomainError) {
		issues = append(issues, models.RecordIssue{RecordType: rt, RecordID: id, Code: err.Code(), Message: err.Error()})
	}

	seen := make(map[string]bool, len(snap.Cadets))
	for i, rec := range snap.Cadets {
		id := recordID(rec.ID, i)
		if seen[rec.ID] && rec.ID != "" {
			report(constants.RecordTypeCadet, id, duplicateID(rec.ID))
			continue
		}
		c, err := n.NormalizeCadet(rec, today)
		if err != nil {
			report(constants.RecordTypeCadet, id, err)
			continue
		}
		seen[rec.ID] = true
		out.Cadets = append(out.Cadets, c)
	}

	staffIDs := make(map[string]bool, len(snap.Staff))
	for i, rec := range snap.Staff {
		id := recordID(rec.ID, i)
		if staffIDs[rec.ID] && rec.ID != "" {
			report(constants.RecordTypeStaff, id, duplicateID(rec.ID))
			continue
		}
		s, err := n.NormalizeStaff(rec)
		if err != nil {
			report(constants.RecordTypeStaff, id, err)
			continue
		}
		staffIDs[rec.ID] = true
		out.Staff = append(out.Staff, s)
	}

	entryIDs := make(map[string]bool, len(snap.Schedule))
	for i, rec := range snap.Schedule {
		id := recordID(rec.ID, i)
		if rec.ID != "" && entryIDs[rec.ID] {
			report(constants.RecordTypeSchedule, id, duplicateID(rec.ID))
			continue
		}
		e, err := n.NormalizeScheduleEntry(rec)
		if err != nil {
			report(constants.RecordTypeSchedule, id, err)
			continue
		}
		if !staffIDs[e.StaffID] {
			report(constants.RecordTypeSchedule, id, errors.ErrInvalidInput("staffId", fmt.Sprintf("unknown staff member %q", e.StaffID)))
			continue
		}
		entryIDs[rec.ID] = true
		out.Schedule = append(out.Schedule, e)
	}

	itemIDs := make(map[string]bool, len(snap.Inventory))
	for i, rec := range snap.Inventory {
		id := recordID(rec.ID, i)
		if itemIDs[rec.ID] && rec.ID != "" {
			report(constants.RecordTypeInventory, id, duplicateID(rec.ID))
			continue
		}
		item, err := n.NormalizeInventoryItem(rec)
		if err != nil {
			report(constants.RecordTypeInventory, id, err)
			continue
		}
		itemIDs[rec.ID] = true
		out.Inventory = append(out.Inventory, item)
	}

	return out, issues
}

func parseClock(field, raw string) (time.Duration, errors.DomainError) {
	t, err := time.Parse(constants.ClockLayout, raw)
	if err != nil {
		return 0, errors.ErrInvalidInput(field, fmt.Sprintf("%q is not a %s time", raw, constants.ClockLayout))
	}
	return time.Duration(t.Hour())*time.Hour + time.Duration(t.Minute())*time.Minute, nil
}

// recordID falls back to the position in the batch for records without an ID.
func recordID(id string, index int) string {
	if id != "" {
		return id
	}
	return fmt.Sprintf("#%d", index)
}

// malformed reports a record whose JSON form could not be decoded.
func malformed(err error) errors.DomainError {
	return errors.ErrInvalidInput("record", err.Error()).WithCause(err)
}

func duplicateID(id string) errors.DomainError {
	return errors.ErrInvalidInput("id", fmt.Sprintf("duplicate id %q", id))
}
