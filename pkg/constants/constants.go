// Package constants defines system-wide constants for the cadetops analytics service.
// This package provides type-safe, closed enumerations used across all modules.
package constants

import (
	"fmt"
	"strings"
	"time"
)

// ================================================================================
// Academic Status
// ================================================================================

// AcademicStatus represents where an individual stands in the academic program
type AcademicStatus string

const (
	// AcademicNotStarted indicates the individual has not begun academic work
	AcademicNotStarted AcademicStatus = "NotStarted"

	// AcademicInProgress indicates academic work is underway
	AcademicInProgress AcademicStatus = "InProgress"

	// AcademicCompleted indicates the academic program is finished
	AcademicCompleted AcademicStatus = "Completed"
)

// Valid reports whether the status is one of the known values
func (s AcademicStatus) Valid() bool {
	switch s {
	case AcademicNotStarted, AcademicInProgress, AcademicCompleted:
		return true
	}
	return false
}

// ParseAcademicStatus converts a raw value into an AcademicStatus.
// Matching ignores case. An empty value defaults to AcademicNotStarted; unknown values are rejected.
func ParseAcademicStatus(raw string) (AcademicStatus, error) {
	if raw == "" {
		return AcademicNotStarted, nil
	}
	for _, s := range []AcademicStatus{AcademicNotStarted, AcademicInProgress, AcademicCompleted} {
		if strings.EqualFold(raw, string(s)) {
			return s, nil
		}
	}
	return "", fmt.Errorf("unknown academic status %q", raw)
}

// ================================================================================
// Cadet Status
// ================================================================================

// CadetStatus represents the enrollment lifecycle of an individual
type CadetStatus string

const (
	// CadetActive indicates the individual is currently enrolled
	CadetActive CadetStatus = "Active"

	// CadetGraduated indicates the individual completed the program
	CadetGraduated CadetStatus = "Graduated"

	// CadetWithdrawn indicates the individual left the program
	CadetWithdrawn CadetStatus = "Withdrawn"
)

// Valid reports whether the status is one of the known values
func (s CadetStatus) Valid() bool {
	switch s {
	case CadetActive, CadetGraduated, CadetWithdrawn:
		return true
	}
	return false
}

// ParseCadetStatus converts a raw value into a CadetStatus.
// Matching ignores case. An empty value defaults to CadetActive; unknown values are rejected.
func ParseCadetStatus(raw string) (CadetStatus, error) {
	if raw == "" {
		return CadetActive, nil
	}
	for _, s := range []CadetStatus{CadetActive, CadetGraduated, CadetWithdrawn} {
		if strings.EqualFold(raw, string(s)) {
			return s, nil
		}
	}
	return "", fmt.Errorf("unknown cadet status %q", raw)
}

// ================================================================================
// Insight Types
// ================================================================================

// InsightType represents the category of a qualitative intervention insight
type InsightType string

const (
	// InsightPeerPairing suggests pairing low and high behavior performers
	InsightPeerPairing InsightType = "PeerPairing"

	// InsightAcademicIntervention flags individuals who need academic support
	InsightAcademicIntervention InsightType = "AcademicIntervention"

	// InsightHighRiskAlert lists individuals with the most concerning behavior
	InsightHighRiskAlert InsightType = "HighRiskAlert"
)

// ================================================================================
// Risk Levels
// ================================================================================

// RiskLevel is the display band of a numeric risk score
type RiskLevel string

const (
	RiskLevelLow      RiskLevel = "Low"
	RiskLevelElevated RiskLevel = "Elevated"
	RiskLevelHigh     RiskLevel = "High"
)

// Color returns the display color for the risk level
func (l RiskLevel) Color() string {
	switch l {
	case RiskLevelHigh:
		return "red"
	case RiskLevelElevated:
		return "orange"
	case RiskLevelLow:
		return "green"
	}
	panic(fmt.Sprintf("constants: unknown risk level %q", string(l)))
}

// ================================================================================
// Forecast Buckets
// ================================================================================

// ForecastBucket is the restocking urgency of an inventory item
type ForecastBucket string

const (
	// ForecastImmediate indicates stock is at or below its threshold
	ForecastImmediate ForecastBucket = "Immediate"

	// ForecastSoon indicates stock will run out within the soon horizon
	ForecastSoon ForecastBucket = "Soon"

	// ForecastStable indicates no restocking action is needed
	ForecastStable ForecastBucket = "Stable"
)

// Color returns the display color for the bucket
func (b ForecastBucket) Color() string {
	switch b {
	case ForecastImmediate:
		return "red"
	case ForecastSoon:
		return "yellow"
	case ForecastStable:
		return "green"
	}
	panic(fmt.Sprintf("constants: unknown forecast bucket %q", string(b)))
}

// ================================================================================
// Workload Balance Labels
// ================================================================================

// BalanceLabel classifies a staff member's utilization
type BalanceLabel string

const (
	// BalanceReduceLoad indicates the staff member is over-scheduled
	BalanceReduceLoad BalanceLabel = "ReduceLoad"

	// BalanceWellBalanced indicates utilization is within the target band
	BalanceWellBalanced BalanceLabel = "WellBalanced"

	// BalanceCanTakeMore indicates the staff member has spare capacity
	BalanceCanTakeMore BalanceLabel = "CanTakeMore"
)

// Color returns the display color for the label
func (b BalanceLabel) Color() string {
	switch b {
	case BalanceReduceLoad:
		return "red"
	case BalanceWellBalanced:
		return "green"
	case BalanceCanTakeMore:
		return "blue"
	}
	panic(fmt.Sprintf("constants: unknown balance label %q", string(b)))
}

// ================================================================================
// Record Types
// ================================================================================

// RecordType names the kind of source record an issue refers to
type RecordType string

const (
	RecordTypeCadet     RecordType = "cadet"
	RecordTypeStaff     RecordType = "staff"
	RecordTypeSchedule  RecordType = "schedule"
	RecordTypeInventory RecordType = "inventory"
)

// ================================================================================
// Error Codes
// ================================================================================

// ErrorCode represents a machine-readable error category
type ErrorCode string

const (
	// ErrCodeInvalidInput indicates a required field is missing or out of range
	ErrCodeInvalidInput ErrorCode = "invalid_input"

	// ErrCodeInsufficientData indicates there is not enough data to compute a result
	ErrCodeInsufficientData ErrorCode = "insufficient_data"

	// ErrCodeEmptyPopulation indicates an aggregate was requested over zero records
	ErrCodeEmptyPopulation ErrorCode = "empty_population"

	// ErrCodeInvalidPolicy indicates the analytics policy failed validation
	ErrCodeInvalidPolicy ErrorCode = "invalid_policy"

	// ErrCodeSnapshotUnavailable indicates the data snapshot could not be acquired
	ErrCodeSnapshotUnavailable ErrorCode = "snapshot_unavailable"

	// ErrCodeNotFound indicates a requested resource does not exist
	ErrCodeNotFound ErrorCode = "not_found"

	// ErrCodeServerError indicates an unexpected internal failure
	ErrCodeServerError ErrorCode = "server_error"
)

// ================================================================================
// Analytics Policy Defaults
// ================================================================================

const (
	// MinBehaviorScore and MaxBehaviorScore bound the behavior rating scale
	MinBehaviorScore = 1
	MaxBehaviorScore = 5

	// DefaultScoringMaxBehavior is the highest behavior score that is still risk scored
	DefaultScoringMaxBehavior = 3

	// DefaultHighRiskMaxBehavior is the highest behavior score counted as high risk
	DefaultHighRiskMaxBehavior = 2

	// DefaultPeerMentorMinBehavior is the lowest behavior score counted as a potential peer mentor
	DefaultPeerMentorMinBehavior = 4

	// DefaultHighRiskDisplayLimit caps the individuals listed in a high-risk alert
	DefaultHighRiskDisplayLimit = 3

	// DefaultSoonHorizonDays is the depletion horizon for the Soon forecast bucket
	DefaultSoonHorizonDays = 14

	// DefaultFullConfidenceDays is the usage history length that earns full coverage confidence
	DefaultFullConfidenceDays = 30

	// DefaultReorderCoverDays is the number of days a suggested reorder should cover
	DefaultReorderCoverDays = 30

	// DefaultHoursPerShift is the number of hours credited per scheduled shift
	DefaultHoursPerShift = 2.0

	// DefaultReferenceWorkweekHours is the full-time reference workweek
	DefaultReferenceWorkweekHours = 40.0

	// DefaultReduceLoadAbovePercent labels utilization above this value as ReduceLoad
	DefaultReduceLoadAbovePercent = 90.0

	// DefaultCanTakeMoreBelowPercent labels utilization below this value as CanTakeMore
	DefaultCanTakeMoreBelowPercent = 30.0

	// DefaultExperiencedStaffYears is the minimum experience for a staff member to count as experienced
	DefaultExperiencedStaffYears = 2.0

	// DefaultAverageUtilizationAdvisoryPercent raises an advisory when average utilization exceeds it
	DefaultAverageUtilizationAdvisoryPercent = 80.0

	// DefaultNewEnrollmentDays is the tenure below which an individual counts as newly enrolled
	DefaultNewEnrollmentDays = 30
)

// ================================================================================
// Cache and Runtime Constants
// ================================================================================

const (
	// SnapshotCacheKey is the cache key for the repository-backed snapshot
	SnapshotCacheKey = "cadetops:snapshot:current"

	// DefaultSnapshotCacheTTL disables snapshot caching unless configured
	DefaultSnapshotCacheTTL = 0 * time.Second

	// DefaultAnalyticsWorkers bounds per-record parallelism
	DefaultAnalyticsWorkers = 8

	// DefaultShutdownTimeout is the graceful shutdown timeout (30 seconds)
	DefaultShutdownTimeout = 30 * time.Second

	// DateLayout is the calendar date format used by schedule and enrollment fields
	DateLayout = "2006-01-02"

	// ClockLayout is the time-of-day format used by schedule entries
	ClockLayout = "15:04"
)

// ================================================================================
// Logging Constants
// ================================================================================

// LogLevel represents the severity level of log messages
type LogLevel string

const (
	LogLevelDebug LogLevel = "debug"
	LogLevelInfo  LogLevel = "info"
	LogLevelWarn  LogLevel = "warn"
	LogLevelError LogLevel = "error"
	LogLevelFatal LogLevel = "fatal"
)

// ================================================================================
// Context Keys
// ================================================================================

// ContextKey represents keys used in context.Context
type ContextKey string

const (
	// ContextKeyRequestID is the key for request ID in context
	ContextKeyRequestID ContextKey = "request_id"

	// ContextKeyTraceID is the key for distributed trace ID in context
	ContextKeyTraceID ContextKey = "trace_id"

	// ContextKeyLogger is the key for a request-scoped logger in context
	ContextKeyLogger ContextKey = "logger"
)

//Personal.AI order the ending
