package model

import (
	"time"

	"pomade/shared/model"
)

const (
	TableName  = "appointments"
	EntityName = "appointment"

	FieldID            = "id"
	FieldStaffID       = "staff_id"
	FieldCustomerID    = "customer_id"
	FieldCustomerName  = "customer_name"
	FieldCustomerPhone = "customer_phone"
	FieldService       = "service"
	FieldDay           = "day"
	FieldStartTime     = "start_time"
	FieldStatus        = "status"
	FieldNotes         = "notes"

	FieldCancellationReason = "cancellation_reason"
	FieldCancelledAt        = "cancelled_at"
)

const (
	StatusPending   = "pending"
	StatusConfirmed = "confirmed"
	StatusCompleted = "completed"
	StatusCancelled = "cancelled"
)

// Appointment books one staff member's slot for one customer. Day and
// StartTime are plain zero-padded strings, which keeps slot comparison
// lexicographic.
type Appointment struct {
	ID            string `db:"id"`
	StaffID       string `db:"staff_id"`
	CustomerID    string `db:"customer_id"`
	CustomerName  string `db:"customer_name"`
	CustomerPhone string `db:"customer_phone"`
	Service       string `db:"service"`
	Day           string `db:"day"`
	StartTime     string `db:"start_time"`
	Status        string `db:"status"`
	Notes         string `db:"notes"`

	CancellationReason *string    `db:"cancellation_reason"`
	CancelledAt        *time.Time `db:"cancelled_at"`

	model.Metadata
}

// ActiveStatuses are the statuses that hold a slot. Completed and cancelled
// appointments free it up again.
func ActiveStatuses() []string {
	return []string{StatusPending, StatusConfirmed}
}

// IsActive reports whether the appointment still holds its slot.
func (a *Appointment) IsActive() bool {
	return a.Status == StatusPending || a.Status == StatusConfirmed
}

var transitions = map[string][]string{
	StatusPending:   {StatusConfirmed, StatusCancelled},
	StatusConfirmed: {StatusCompleted, StatusCancelled},
	StatusCancelled: {StatusConfirmed},
	StatusCompleted: {},
}

// CanTransition reports whether a status change is allowed. Reactivating a
// cancelled appointment back to confirmed is an admin operation, the caller
// still has to recheck that the slot is free.
func CanTransition(from, to string) bool {
	for _, allowed := range transitions[from] {
		if allowed == to {
			return true
		}
	}

	return false
}

// ValidStatus reports whether value is a known appointment status.
func ValidStatus(value string) bool {
	switch value {
	case StatusPending, StatusConfirmed, StatusCompleted, StatusCancelled:
		return true
	default:
		return false
	}
}
