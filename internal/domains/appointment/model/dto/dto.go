package dto

import (
	"time"

	"github.com/google/uuid"

	"pomade/internal/domains/appointment/model"
	"pomade/shared"
	gDto "pomade/shared/dto"
	gModel "pomade/shared/model"
	"pomade/shared/timezone"
)

type CreateAppointmentRequest struct {
	StaffID       string `json:"staff_id"       validate:"required,uuid"`
	CustomerName  string `json:"customer_name"  validate:"required,max=100"`
	CustomerPhone string `json:"customer_phone" validate:"omitempty,max=20"`
	Service       string `json:"service"        validate:"omitempty,max=100"`
	Day           string `json:"day"            validate:"required,day"`
	StartTime     string `json:"start_time"     validate:"required,slot"`
	Notes         string `json:"notes"          validate:"omitempty,max=500"`
	WalkIn        bool   `json:"walk_in"`
}

// ToModel builds the appointment. Walk-ins are taken at the counter, so
// they skip the pending stage.
func (c *CreateAppointmentRequest) ToModel(user string) model.Appointment {
	status := model.StatusPending
	if c.WalkIn {
		status = model.StatusConfirmed
	}

	return model.Appointment{
		ID:            uuid.NewString(),
		StaffID:       c.StaffID,
		CustomerID:    user,
		CustomerName:  c.CustomerName,
		CustomerPhone: c.CustomerPhone,
		Service:       c.Service,
		Day:           c.Day,
		StartTime:     c.StartTime,
		Status:        status,
		Notes:         c.Notes,
		Metadata: gModel.Metadata{
			CreatedAt:  timezone.Now(),
			ModifiedAt: timezone.Now(),
			CreatedBy:  user,
			ModifiedBy: user,
		},
	}
}

type UpdateAppointmentRequest struct {
	CustomerName  string `db:"customer_name"  json:"customer_name"  validate:"omitempty,max=100"`
	CustomerPhone string `db:"customer_phone" json:"customer_phone" validate:"omitempty,max=20"`
	Service       string `db:"service"        json:"service"        validate:"omitempty,max=100"`
	Notes         string `db:"notes"          json:"notes"          validate:"omitempty,max=500"`
}

type UpdateStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=pending confirmed completed cancelled"`
	Reason string `json:"reason" validate:"omitempty,max=500"`
}

type AppointmentResponse struct {
	ID            string `json:"id"`
	StaffID       string `json:"staff_id"`
	CustomerID    string `json:"customer_id"`
	CustomerName  string `json:"customer_name"`
	CustomerPhone string `json:"customer_phone"`
	Service       string `json:"service"`
	Day           string `json:"day"`
	StartTime     string `json:"start_time"`
	Status        string `json:"status"`
	Notes         string `json:"notes"`

	CancellationReason *string    `json:"cancellation_reason,omitempty"`
	CancelledAt        *time.Time `json:"cancelled_at,omitempty"`

	gDto.Metadata
}

func (r *AppointmentResponse) FromModel(model model.Appointment) {
	r.ID = model.ID
	r.StaffID = model.StaffID
	r.CustomerID = model.CustomerID
	r.CustomerName = model.CustomerName
	r.CustomerPhone = model.CustomerPhone
	r.Service = model.Service
	r.Day = model.Day
	r.StartTime = model.StartTime
	r.Status = model.Status
	r.Notes = model.Notes
	r.CancellationReason = model.CancellationReason
	r.CancelledAt = model.CancelledAt
	r.Metadata.FromModel(model.Metadata)
}

type GetAppointmentsResponse struct {
	Appointments []AppointmentResponse `json:"appointments"`
	TotalPage    int                   `json:"total_page"`
	TotalData    int                   `json:"total_data"`
}

func (r *GetAppointmentsResponse) FromModels(models []model.Appointment, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)

	r.Appointments = make([]AppointmentResponse, len(models))
	for i, mod := range models {
		r.Appointments[i].FromModel(mod)
	}
}

const (
	EventAppointmentCreated        = "appointment.created"
	EventAppointmentStatusChanged  = "appointment.status_changed"
	EventAppointmentDetailsUpdated = "appointment.details_updated"
	EventAppointmentDeleted        = "appointment.deleted"
)

// AppointmentEvent is published to Kafka on every lifecycle change so
// downstream consumers (reminders, reporting) can follow along.
type AppointmentEvent struct {
	Type          string    `json:"type"`
	AppointmentID string    `json:"appointment_id"`
	StaffID       string    `json:"staff_id"`
	Day           string    `json:"day"`
	StartTime     string    `json:"start_time"`
	Status        string    `json:"status"`
	OccurredAt    time.Time `json:"occurred_at"`
}
