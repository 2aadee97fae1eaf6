package models

import (
	"strings"

	"github.com/turtacn/cadetops/pkg/constants"
)

// CadetRecord is an individual as delivered by the data-access layer, before normalization.
// Optional fields are pointers so that "absent" stays distinguishable from zero.
type CadetRecord struct {
	ID             string `json:"id" validate:"required"`
	FirstName      string `json:"firstName,omitempty"`
	LastName       string `json:"lastName,omitempty"`
	BehaviorScore  *int   `json:"behaviorScore" validate:"required,min=1,max=5"`
	AcademicStatus string `json:"academicStatus,omitempty"`
	Age            *int   `json:"age,omitempty" validate:"omitempty,min=0"`
	EnrollmentDate *Date  `json:"enrollmentDate,omitempty" validate:"-"`
	Status         string `json:"status,omitempty"`

	decodeErr error
}

// Cadet is a validated individual with defaults applied.
type Cadet struct {
	ID             string
	Name           string
	BehaviorScore  int
	AcademicStatus constants.AcademicStatus
	// Age is nil when unknown; unknown age earns no age adjustment.
	Age *int
	// EnrollmentDate is nil when unknown; unknown tenure earns no tenure adjustment.
	EnrollmentDate *Date
	Status         constants.CadetStatus
}

// IsActive reports whether the cadet is currently enrolled.
func (c Cadet) IsActive() bool {
	return c.Status == constants.CadetActive
}

// DisplayName joins first and last name, falling back to the ID.
func DisplayName(id, first, last string) string {
	name := strings.TrimSpace(strings.TrimSpace(first) + " " + strings.TrimSpace(last))
	if name == "" {
		return id
	}
	return name
}
