package model_test

import (
	"reflect"
	"testing"
	"time"

	"github.com/lib/pq"
	"pomade/internal/domains/schedule/model"
)

func TestEffectiveSlots(t *testing.T) {
	tests := []struct {
		name         string
		defaultSlots []string
		override     *model.Override
		expected     []string
	}{
		{
			name:         "no override uses defaults sorted",
			defaultSlots: []string{"11:00", "09:00", "10:00"},
			override:     nil,
			expected:     []string{"09:00", "10:00", "11:00"},
		},
		{
			name:         "override wins over defaults",
			defaultSlots: []string{"10:00", "11:00"},
			override:     &model.Override{Slots: pq.StringArray{"14:00", "13:00"}},
			expected:     []string{"13:00", "14:00"},
		},
		{
			name:         "empty override marks a day off",
			defaultSlots: []string{"10:00", "11:00"},
			override:     &model.Override{Slots: pq.StringArray{}},
			expected:     []string{},
		},
		{
			name:         "no template falls back to house slots",
			defaultSlots: nil,
			override:     nil,
			expected:     model.FallbackSlots,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := model.EffectiveSlots(tt.defaultSlots, tt.override)

			if !reflect.DeepEqual(got, tt.expected) {
				t.Errorf("expected %v, got %v", tt.expected, got)
			}
		})
	}
}

func TestEffectiveSlotsDoesNotMutateInput(t *testing.T) {
	defaults := []string{"11:00", "09:00"}

	model.EffectiveSlots(defaults, nil)

	if defaults[0] != "11:00" {
		t.Error("expected input slice to stay unsorted")
	}
}

func TestResolveBookableSlots(t *testing.T) {
	tests := []struct {
		name      string
		effective []string
		booked    []string
		expected  []string
	}{
		{
			name:      "booked slots removed",
			effective: []string{"10:00", "11:00", "14:00"},
			booked:    []string{"10:00"},
			expected:  []string{"11:00", "14:00"},
		},
		{
			name:      "nothing booked",
			effective: []string{"10:00", "11:00"},
			booked:    []string{},
			expected:  []string{"10:00", "11:00"},
		},
		{
			name:      "fully booked",
			effective: []string{"10:00"},
			booked:    []string{"10:00"},
			expected:  []string{},
		},
		{
			name:      "booking outside effective slots is ignored",
			effective: []string{"10:00", "11:00"},
			booked:    []string{"15:00"},
			expected:  []string{"10:00", "11:00"},
		},
		{
			name:      "result sorted",
			effective: []string{"14:00", "10:00", "11:00"},
			booked:    []string{"11:00"},
			expected:  []string{"10:00", "14:00"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := model.ResolveBookableSlots(tt.effective, tt.booked)

			if !reflect.DeepEqual(got, tt.expected) {
				t.Errorf("expected %v, got %v", tt.expected, got)
			}
		})
	}
}

func TestFilterElapsedSlots(t *testing.T) {
	now := time.Date(2026, 3, 10, 13, 50, 0, 0, time.UTC)

	tests := []struct {
		name     string
		slots    []string
		day      string
		expected []string
	}{
		{
			name:     "other days pass through",
			slots:    []string{"09:00", "10:00"},
			day:      "2026-03-11",
			expected: []string{"09:00", "10:00"},
		},
		{
			name:     "past and buffered slots dropped today",
			slots:    []string{"09:00", "14:00", "14:30", "15:00"},
			day:      "2026-03-10",
			expected: []string{"14:30", "15:00"},
		},
		{
			name:     "slot exactly at the buffer edge is dropped",
			slots:    []string{"14:05"},
			day:      "2026-03-10",
			expected: []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := model.FilterElapsedSlots(tt.slots, tt.day, now, model.ElapsedBuffer)

			if !reflect.DeepEqual(got, tt.expected) {
				t.Errorf("expected %v, got %v", tt.expected, got)
			}
		})
	}
}

func TestDetectConflicts(t *testing.T) {
	active := []model.BookingRef{
		{ID: "a1", Day: "2026-04-01", Time: "10:00", CustomerName: "Alice", Status: "confirmed"},
		{ID: "a2", Day: "2026-04-01", Time: "11:00", CustomerName: "Bob", Status: "pending"},
	}

	tests := []struct {
		name     string
		proposed []string
		expected []string
	}{
		{
			name:     "removing a booked slot conflicts",
			proposed: []string{"11:00"},
			expected: []string{"a1"},
		},
		{
			name:     "keeping all booked slots is clean",
			proposed: []string{"10:00", "11:00"},
			expected: []string{},
		},
		{
			name:     "clearing the day conflicts with everything",
			proposed: []string{},
			expected: []string{"a1", "a2"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			conflicts := model.DetectConflicts(active, tt.proposed)

			ids := make([]string, len(conflicts))
			for i, c := range conflicts {
				ids[i] = c.ID
			}

			if !reflect.DeepEqual(ids, tt.expected) {
				t.Errorf("expected conflicting ids %v, got %v", tt.expected, ids)
			}
		})
	}
}

func TestMonthDays(t *testing.T) {
	days := model.MonthDays("2026-02-14")

	if len(days) != 28 {
		t.Fatalf("expected 28 days in 2026-02, got %d", len(days))
	}

	if days[0] != "2026-02-01" {
		t.Errorf("expected first day 2026-02-01, got %s", days[0])
	}

	if days[27] != "2026-02-28" {
		t.Errorf("expected last day 2026-02-28, got %s", days[27])
	}

	if model.MonthDays("not-a-day") != nil {
		t.Error("expected nil for an unparseable day")
	}
}
