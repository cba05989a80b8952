package tradelens

import (
	"encoding/json"
	"testing"
	"time"
)

// TestTime asserts that time() is canonical and gives comparable times.
func TestTime(t *testing.T) {
	d1 := NewDate(2025, 7, 31)
	d2 := NewDate(2025, 7, 31)

	if d1.time() != d2.time() {
		// time.Time values carry a timezone pointer and are not comparable in
		// general; the canonical construction keeps this property true.
		t.Errorf("invalid time() function same day gives two different time")
	}
}

func TestParseDate(t *testing.T) {
	tests := []struct {
		input    string
		expected Date
		err      bool
	}{
		{"2025-01-15", NewDate(2025, time.January, 15), false},
		{"2025-7-1", NewDate(2025, time.July, 1), false},
		{"2025-01-15T10:30:00Z", NewDate(2025, time.January, 15), false},
		{"2025-01-15 10:30:00", NewDate(2025, time.January, 15), false},
		{"2025-01-15T10:30:00", NewDate(2025, time.January, 15), false},
		{"  2025-01-15 ", NewDate(2025, time.January, 15), false},
		{"invalid-date", Date{}, true},
		{"", Date{}, true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseDate(tt.input)
			if tt.err {
				if err == nil {
					t.Fatalf("ParseDate(%q) expected an error, got none", tt.input)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseDate(%q) unexpected error: %v", tt.input, err)
			}
			if got != tt.expected {
				t.Errorf("ParseDate(%q) = %s, want %s", tt.input, got, tt.expected)
			}
		})
	}
}

func TestDateNormalization(t *testing.T) {
	// day 0 of a month is the last day of the previous month
	if got, want := NewDate(2024, time.March, 0), NewDate(2024, time.February, 29); got != want {
		t.Errorf("NewDate(2024, 3, 0) = %s, want %s", got, want)
	}
	// month 13 rolls into the next year
	if got, want := NewDate(2024, 13, 1), NewDate(2025, time.January, 1); got != want {
		t.Errorf("NewDate(2024, 13, 1) = %s, want %s", got, want)
	}
}

func TestMonthKey(t *testing.T) {
	tests := []struct {
		date Date
		want string
	}{
		{NewDate(2025, time.January, 15), "2025-01"},
		{NewDate(2024, time.December, 31), "2024-12"},
		{NewDate(2025, time.November, 1), "2025-11"},
	}
	for _, tt := range tests {
		if got := tt.date.MonthKey(); got != tt.want {
			t.Errorf("MonthKey(%s) = %q, want %q", tt.date, got, tt.want)
		}
	}
	// zero-padded keys sort chronologically across the year boundary
	if !(NewDate(2024, time.December, 1).MonthKey() < NewDate(2025, time.January, 1).MonthKey()) {
		t.Errorf("month keys do not sort chronologically across years")
	}
}

func TestStartEndOfMonth(t *testing.T) {
	d := NewDate(2024, time.February, 15)
	if got, want := d.StartOf(Monthly), NewDate(2024, time.February, 1); got != want {
		t.Errorf("StartOf(Monthly) = %s, want %s", got, want)
	}
	if got, want := d.EndOf(Monthly), NewDate(2024, time.February, 29); got != want {
		t.Errorf("EndOf(Monthly) = %s, want %s", got, want)
	}
}

func TestDateJSON(t *testing.T) {
	d := NewDate(2025, time.March, 7)
	data, err := json.Marshal(d)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if want := `"2025-03-07"`; string(data) != want {
		t.Errorf("got %s, want %s", data, want)
	}

	var back Date
	if err := json.Unmarshal(data, &back); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if back != d {
		t.Errorf("round trip: got %s, want %s", back, d)
	}
}
