package util

import (
	"math"
	"testing"
)

func TestRound(t *testing.T) {
	tests := []struct {
		in     float64
		places int32
		want   float64
	}{
		{in: 133.33333, places: 2, want: 133.33},
		{in: 66.666666, places: 2, want: 66.67},
		{in: 1.005, places: 2, want: 1.01},
		{in: 7.6666, places: 1, want: 7.7},
		{in: 0, places: 2, want: 0},
		{in: math.NaN(), places: 2, want: 0},
		{in: math.Inf(-1), places: 2, want: 0},
	}
	for _, tt := range tests {
		if got := Round(tt.in, tt.places); got != tt.want {
			t.Errorf("Round(%v, %d) = %v, want %v", tt.in, tt.places, got, tt.want)
		}
	}
}

func TestFormatters(t *testing.T) {
	if got := Money(133.333333); got != "133.33" {
		t.Errorf("Money = %q", got)
	}
	if got := Money(150); got != "150.00" {
		t.Errorf("Money = %q", got)
	}
	if got := Percent(70); got != "70.0" {
		t.Errorf("Percent = %q", got)
	}
	if got := Rating(69.0 / 9.0); got != "7.7" {
		t.Errorf("Rating = %q", got)
	}
	if got := Percent(math.NaN()); got != "0.0" {
		t.Errorf("Percent(NaN) = %q", got)
	}
}
