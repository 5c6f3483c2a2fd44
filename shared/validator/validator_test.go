package validator_test

import (
	"strings"
	"testing"

	"pomade/shared/validator"
)

type bookingRequest struct {
	StaffID string `validate:"required"           json:"staff_id"`
	Email   string `validate:"required,email"     json:"email"`
	Day     string `validate:"required,day"       json:"day"`
	Time    string `validate:"required,slot"      json:"time"`
	Role    string `validate:"oneof=staff customer" json:"role"`
}

func TestValidateStruct(t *testing.T) {
	tests := []struct {
		name        string
		data        *bookingRequest
		expectError bool
	}{
		{
			name: "valid struct",
			data: &bookingRequest{
				StaffID: "b2",
				Email:   "customer@example.com",
				Day:     "2026-03-10",
				Time:    "14:00",
				Role:    "customer",
			},
			expectError: false,
		},
		{
			name: "missing required field",
			data: &bookingRequest{
				Email: "customer@example.com",
				Day:   "2026-03-10",
				Time:  "14:00",
				Role:  "customer",
			},
			expectError: true,
		},
		{
			name: "invalid email",
			data: &bookingRequest{
				StaffID: "b2",
				Email:   "invalid-email",
				Day:     "2026-03-10",
				Time:    "14:00",
				Role:    "customer",
			},
			expectError: true,
		},
		{
			name: "day without zero padding",
			data: &bookingRequest{
				StaffID: "b2",
				Email:   "customer@example.com",
				Day:     "2026-3-10",
				Time:    "14:00",
				Role:    "customer",
			},
			expectError: true,
		},
		{
			name: "time without zero padding",
			data: &bookingRequest{
				StaffID: "b2",
				Email:   "customer@example.com",
				Day:     "2026-03-10",
				Time:    "9:00",
				Role:    "customer",
			},
			expectError: true,
		},
		{
			name: "invalid role",
			data: &bookingRequest{
				StaffID: "b2",
				Email:   "customer@example.com",
				Day:     "2026-03-10",
				Time:    "14:00",
				Role:    "invalid",
			},
			expectError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validator.ValidateStruct(tt.data)

			if tt.expectError && err == nil {
				t.Error("expected validation error, got nil")
			}

			if !tt.expectError && err != nil {
				t.Errorf("expected no validation error, got: %v", err)
			}
		})
	}
}

func TestValidateVar(t *testing.T) {
	tests := []struct {
		name        string
		field       interface{}
		tag         string
		expectError bool
	}{
		{
			name:        "valid required string",
			field:       "test",
			tag:         "required",
			expectError: false,
		},
		{
			name:        "empty required string",
			field:       "",
			tag:         "required",
			expectError: true,
		},
		{
			name:        "valid day",
			field:       "2026-03-10",
			tag:         "day",
			expectError: false,
		},
		{
			name:        "day with wrong separator",
			field:       "2026/03/10",
			tag:         "day",
			expectError: true,
		},
		{
			name:        "valid slot",
			field:       "09:30",
			tag:         "slot",
			expectError: false,
		},
		{
			name:        "slot with seconds",
			field:       "09:30:00",
			tag:         "slot",
			expectError: true,
		},
		{
			name:        "valid oneof",
			field:       "admin",
			tag:         "oneof=superadmin admin staff customer",
			expectError: false,
		},
		{
			name:        "invalid oneof",
			field:       "invalid",
			tag:         "oneof=superadmin admin staff customer",
			expectError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validator.ValidateVar(tt.field, tt.tag)

			if tt.expectError && err == nil {
				t.Error("expected validation error, got nil")
			}

			if !tt.expectError && err != nil {
				t.Errorf("expected no validation error, got: %v", err)
			}
		})
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name        string
		jsonBody    string
		expectError bool
	}{
		{
			name:        "valid JSON",
			jsonBody:    `{"staff_id":"b2","email":"customer@example.com","day":"2026-03-10","time":"14:00","role":"customer"}`,
			expectError: false,
		},
		{
			name:        "invalid JSON value",
			jsonBody:    `{"staff_id":"b2","email":"invalid-email","day":"2026-03-10","time":"14:00","role":"customer"}`,
			expectError: true,
		},
		{
			name:        "malformed JSON",
			jsonBody:    `{"staff_id":"b2","email":}`,
			expectError: true,
		},
		{
			name:        "empty JSON",
			jsonBody:    `{}`,
			expectError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			reader := strings.NewReader(tt.jsonBody)
			var data bookingRequest
			err := validator.Validate(reader, &data)

			if tt.expectError && err == nil {
				t.Error("expected validation error, got nil")
			}

			if !tt.expectError && err != nil {
				t.Errorf("expected no validation error, got: %v", err)
			}
		})
	}
}

func TestValidateDay(t *testing.T) {
	tests := []struct {
		value    string
		expected bool
	}{
		{"2026-03-10", true},
		{"2026-12-31", true},
		{"2026-02-30", false},
		{"2026-13-01", false},
		{"2026-3-10", false},
		{"26-03-10", false},
		{"", false},
	}

	for _, tt := range tests {
		t.Run(tt.value, func(t *testing.T) {
			if got := validator.ValidateDay(tt.value); got != tt.expected {
				t.Errorf("ValidateDay(%q) = %v, want %v", tt.value, got, tt.expected)
			}
		})
	}
}

func TestValidateSlot(t *testing.T) {
	tests := []struct {
		value    string
		expected bool
	}{
		{"00:00", true},
		{"09:30", true},
		{"23:59", true},
		{"24:00", false},
		{"9:30", false},
		{"09:60", false},
		{"", false},
	}

	for _, tt := range tests {
		t.Run(tt.value, func(t *testing.T) {
			if got := validator.ValidateSlot(tt.value); got != tt.expected {
				t.Errorf("ValidateSlot(%q) = %v, want %v", tt.value, got, tt.expected)
			}
		})
	}
}

func TestValidationMessages(t *testing.T) {
	data := &bookingRequest{}
	err := validator.ValidateStruct(data)

	if err == nil {
		t.Fatal("expected validation error for empty struct")
	}

	errorMsg := err.Error()

	if !strings.Contains(errorMsg, "required") || errorMsg == "" {
		t.Errorf("expected descriptive error message containing 'required', got: %s", errorMsg)
	}
}
