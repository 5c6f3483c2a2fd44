package dto

import (
	"github.com/google/uuid"
	"pomade/internal/domains/schedule/model"
	gDto "pomade/shared/dto"
	gModel "pomade/shared/model"
	"pomade/shared/timezone"
)

const (
	ResolutionCancelConflicting = "cancel-conflicting"
	ResolutionKeepAsException   = "keep-as-exception"
)

type UpdateTemplateRequest struct {
	DefaultSlots []string `json:"default_slots" validate:"required,dive,slot"`
}

func (r *UpdateTemplateRequest) ToModel(staffID, user string) model.Template {
	return model.Template{
		ID:           uuid.NewString(),
		StaffID:      staffID,
		DefaultSlots: r.DefaultSlots,
		Metadata: gModel.Metadata{
			CreatedAt:  timezone.Now(),
			ModifiedAt: timezone.Now(),
			CreatedBy:  user,
			ModifiedBy: user,
		},
	}
}

// ApplyScheduleRequest edits the slots of one day or one whole month. An
// empty slot list is a valid edit, it marks the day off. Resolution decides
// what happens to bookings that no longer fit, when it is empty and
// conflicts exist the edit is rejected.
type ApplyScheduleRequest struct {
	Slots      []string `json:"slots"      validate:"dive,slot"`
	Resolution string   `json:"resolution" validate:"omitempty,oneof=cancel-conflicting keep-as-exception"`
}

func (r *ApplyScheduleRequest) ToOverride(staffID, day, user string) model.Override {
	slots := r.Slots
	if slots == nil {
		slots = []string{}
	}

	return model.Override{
		ID:      uuid.NewString(),
		StaffID: staffID,
		Day:     day,
		Slots:   slots,
		Metadata: gModel.Metadata{
			CreatedAt:  timezone.Now(),
			ModifiedAt: timezone.Now(),
			CreatedBy:  user,
			ModifiedBy: user,
		},
	}
}

type TemplateResponse struct {
	StaffID      string   `json:"staff_id"`
	DefaultSlots []string `json:"default_slots"`
	gDto.Metadata
}

func (r *TemplateResponse) FromModel(template model.Template) {
	r.StaffID = template.StaffID
	r.DefaultSlots = template.DefaultSlots
	r.Metadata.FromModel(template.Metadata)
}

type DayScheduleResponse struct {
	StaffID string   `json:"staff_id"`
	Day     string   `json:"day"`
	Slots   []string `json:"slots"`
}

type MonthDayResponse struct {
	Day        string   `json:"day"`
	Slots      []string `json:"slots"`
	Overridden bool     `json:"overridden"`
}

type MonthScheduleResponse struct {
	StaffID string             `json:"staff_id"`
	Month   string             `json:"month"`
	Days    []MonthDayResponse `json:"days"`
}

// ConflictsResponse is the payload of a rejected schedule edit, listing the
// active bookings the edit would strand.
type ConflictsResponse struct {
	Conflicts []model.BookingRef `json:"conflicts"`
}
