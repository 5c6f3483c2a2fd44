package dto_test

import (
	"testing"

	"pomade/internal/domains/appointment/model"
	"pomade/internal/domains/appointment/model/dto"
	gModel "pomade/shared/model"
	"pomade/shared/timezone"

	"github.com/stretchr/testify/assert"
)

func TestCreateAppointmentRequest_ToModel(t *testing.T) {
	req := dto.CreateAppointmentRequest{
		StaffID:      "staff-1",
		CustomerName: "Raka",
		Service:      "fade",
		Day:          "2026-03-10",
		StartTime:    "14:00",
	}

	userID := "test-user-id"
	appointment := req.ToModel(userID)

	assert.NotEmpty(t, appointment.ID, "expected ID to be generated")
	assert.Equal(t, req.StaffID, appointment.StaffID)
	assert.Equal(t, userID, appointment.CustomerID)
	assert.Equal(t, req.CustomerName, appointment.CustomerName)
	assert.Equal(t, req.Day, appointment.Day)
	assert.Equal(t, req.StartTime, appointment.StartTime)
	assert.Equal(t, model.StatusPending, appointment.Status)
	assert.Equal(t, userID, appointment.CreatedBy)
	assert.False(t, appointment.CreatedAt.IsZero(), "expected CreatedAt to be set")
}

func TestCreateAppointmentRequest_ToModel_WalkIn(t *testing.T) {
	req := dto.CreateAppointmentRequest{
		StaffID:      "staff-1",
		CustomerName: "Bima",
		Day:          "2026-03-10",
		StartTime:    "15:00",
		WalkIn:       true,
	}

	appointment := req.ToModel("counter-user")

	assert.Equal(t, model.StatusConfirmed, appointment.Status)
}

func TestAppointmentResponse_FromModel(t *testing.T) {
	now := timezone.Now()
	appointment := model.Appointment{
		ID:            "appt-1",
		StaffID:       "staff-1",
		CustomerID:    "customer-1",
		CustomerName:  "Raka",
		CustomerPhone: "0812",
		Service:       "fade",
		Day:           "2026-03-10",
		StartTime:     "14:00",
		Status:        model.StatusConfirmed,
		Notes:         "short on sides",
		Metadata: gModel.Metadata{
			CreatedAt:  now,
			ModifiedAt: now,
			CreatedBy:  "customer-1",
			ModifiedBy: "customer-1",
		},
	}

	var response dto.AppointmentResponse
	response.FromModel(appointment)

	assert.Equal(t, appointment.ID, response.ID)
	assert.Equal(t, appointment.StaffID, response.StaffID)
	assert.Equal(t, appointment.Day, response.Day)
	assert.Equal(t, appointment.StartTime, response.StartTime)
	assert.Equal(t, appointment.Status, response.Status)
	assert.Equal(t, appointment.CreatedBy, response.CreatedBy)
}

func TestGetAppointmentsResponse_FromModels(t *testing.T) {
	models := []model.Appointment{
		{ID: "appt-1", StaffID: "staff-1", Day: "2026-03-10", StartTime: "14:00"},
		{ID: "appt-2", StaffID: "staff-1", Day: "2026-03-10", StartTime: "15:00"},
	}

	var response dto.GetAppointmentsResponse
	response.FromModels(models, 12, 5)

	assert.Len(t, response.Appointments, 2)
	assert.Equal(t, 12, response.TotalData)
	assert.Equal(t, 3, response.TotalPage)
	assert.Equal(t, "appt-1", response.Appointments[0].ID)
}
