package models

import "gorm.io/gorm"

// StatusUpdate records one admin-driven status change. Transitions are
// unordered; any status may follow any other.
type StatusUpdate struct {
	gorm.Model
	ProjectID      string        `json:"project_id" gorm:"type:uuid;index;not null"`
	PreviousStatus ProjectStatus `json:"previous_status" gorm:"size:32"`
	NewStatus      ProjectStatus `json:"new_status" gorm:"size:32"`
	Notes          string        `json:"notes,omitempty" gorm:"type:text"`
}
