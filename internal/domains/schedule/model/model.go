package model

import (
	"github.com/lib/pq"
	"pomade/shared/model"
)

const (
	TemplateTableName  = "schedule_templates"
	TemplateEntityName = "schedule_template"

	OverrideTableName  = "schedule_overrides"
	OverrideEntityName = "schedule_override"

	FieldID           = "id"
	FieldStaffID      = "staff_id"
	FieldDay          = "day"
	FieldSlots        = "slots"
	FieldDefaultSlots = "default_slots"
)

// Template holds a staff member's default working slots, applied to every
// day that has no override.
type Template struct {
	ID           string         `db:"id"`
	StaffID      string         `db:"staff_id"`
	DefaultSlots pq.StringArray `db:"default_slots"`
	model.Metadata
}

// Override replaces the default slots for one staff member on one calendar
// day. An override with an empty slot list is meaningful: it marks the day
// off. Absence of a row means the default applies.
type Override struct {
	ID      string         `db:"id"`
	StaffID string         `db:"staff_id"`
	Day     string         `db:"day"`
	Slots   pq.StringArray `db:"slots"`
	model.Metadata
}
