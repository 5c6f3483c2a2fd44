package model_test

import (
	"testing"

	"pomade/internal/domains/appointment/model"
)

func TestCanTransition(t *testing.T) {
	tests := []struct {
		name     string
		from     string
		to       string
		expected bool
	}{
		{
			name:     "pending to confirmed",
			from:     model.StatusPending,
			to:       model.StatusConfirmed,
			expected: true,
		},
		{
			name:     "pending to cancelled",
			from:     model.StatusPending,
			to:       model.StatusCancelled,
			expected: true,
		},
		{
			name:     "pending to completed skips confirmation",
			from:     model.StatusPending,
			to:       model.StatusCompleted,
			expected: false,
		},
		{
			name:     "confirmed to completed",
			from:     model.StatusConfirmed,
			to:       model.StatusCompleted,
			expected: true,
		},
		{
			name:     "confirmed to cancelled",
			from:     model.StatusConfirmed,
			to:       model.StatusCancelled,
			expected: true,
		},
		{
			name:     "cancelled can be reactivated to confirmed",
			from:     model.StatusCancelled,
			to:       model.StatusConfirmed,
			expected: true,
		},
		{
			name:     "cancelled cannot go back to pending",
			from:     model.StatusCancelled,
			to:       model.StatusPending,
			expected: false,
		},
		{
			name:     "completed is terminal",
			from:     model.StatusCompleted,
			to:       model.StatusCancelled,
			expected: false,
		},
		{
			name:     "unknown status",
			from:     "unknown",
			to:       model.StatusConfirmed,
			expected: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := model.CanTransition(tt.from, tt.to); got != tt.expected {
				t.Errorf("CanTransition(%q, %q) = %v, want %v", tt.from, tt.to, got, tt.expected)
			}
		})
	}
}

func TestIsActive(t *testing.T) {
	tests := []struct {
		status   string
		expected bool
	}{
		{model.StatusPending, true},
		{model.StatusConfirmed, true},
		{model.StatusCompleted, false},
		{model.StatusCancelled, false},
	}

	for _, tt := range tests {
		t.Run(tt.status, func(t *testing.T) {
			appointment := model.Appointment{Status: tt.status}
			if got := appointment.IsActive(); got != tt.expected {
				t.Errorf("IsActive() with status %q = %v, want %v", tt.status, got, tt.expected)
			}
		})
	}
}

func TestActiveStatuses(t *testing.T) {
	statuses := model.ActiveStatuses()

	if len(statuses) != 2 {
		t.Fatalf("expected 2 active statuses, got %d", len(statuses))
	}

	if statuses[0] != model.StatusPending || statuses[1] != model.StatusConfirmed {
		t.Errorf("unexpected active statuses: %v", statuses)
	}
}

func TestValidStatus(t *testing.T) {
	for _, status := range []string{model.StatusPending, model.StatusConfirmed, model.StatusCompleted, model.StatusCancelled} {
		if !model.ValidStatus(status) {
			t.Errorf("expected %q to be a valid status", status)
		}
	}

	if model.ValidStatus("archived") {
		t.Error("expected 'archived' to be invalid")
	}
}
