package model

import (
	"encoding/json"
	"math"
	"testing"
)

func TestNewRating(t *testing.T) {
	tests := []struct {
		name  string
		in    float64
		valid bool
	}{
		{name: "mid scale", in: 7, valid: true},
		{name: "top of scale", in: 10, valid: true},
		{name: "fractional", in: 0.5, valid: true},
		{name: "zero means unset", in: 0, valid: false},
		{name: "negative", in: -3, valid: false},
		{name: "above scale", in: 10.5, valid: false},
		{name: "nan", in: math.NaN(), valid: false},
		{name: "inf", in: math.Inf(1), valid: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := NewRating(tt.in)
			if r.Valid() != tt.valid {
				t.Fatalf("NewRating(%v).Valid() = %v, want %v", tt.in, r.Valid(), tt.valid)
			}
			v, ok := r.Value()
			if ok && v != tt.in {
				t.Errorf("value = %v, want %v", v, tt.in)
			}
			if !ok && v != 0 {
				t.Errorf("empty rating carries value %v", v)
			}
		})
	}
}

func TestRatingFromPtr(t *testing.T) {
	if RatingFromPtr(nil).Valid() {
		t.Errorf("nil pointer should give empty rating")
	}
	eight := 8.0
	if v, ok := RatingFromPtr(&eight).Value(); !ok || v != 8 {
		t.Errorf("RatingFromPtr(8) = %v, %v", v, ok)
	}
}

func TestRatingJSON(t *testing.T) {
	var rec AttendanceRecord
	if err := json.Unmarshal([]byte(`{"playerId":"p1","present":true,"rating":"great"}`), &rec); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if rec.Rating.Valid() {
		t.Errorf("string rating should be treated as unset")
	}

	if err := json.Unmarshal([]byte(`{"playerId":"p1","rating":9}`), &rec); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if v, ok := rec.Rating.Value(); !ok || v != 9 {
		t.Errorf("rating = %v, %v; want 9", v, ok)
	}

	out, err := json.Marshal(AttendanceRecord{PlayerID: "p2"})
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	var generic map[string]any
	if err := json.Unmarshal(out, &generic); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if generic["rating"] != nil {
		t.Errorf("empty rating should encode as null, got %v", generic["rating"])
	}
}

func TestParseInvoiceStatus(t *testing.T) {
	cases := map[string]InvoiceStatus{
		"paid":        InvoicePaid,
		" PAID ":      InvoicePaid,
		"outstanding": InvoiceOutstanding,
		"":            InvoiceOutstanding,
		"overdue":     InvoiceOutstanding,
	}
	for in, want := range cases {
		if got := ParseInvoiceStatus(in); got != want {
			t.Errorf("ParseInvoiceStatus(%q) = %q, want %q", in, got, want)
		}
	}
}
