package utils

import (
	"math"
	"testing"
	"time"
)

func TestFormatINR(t *testing.T) {
	tests := []struct {
		name   string
		amount float64
		want   string
	}{
		{"small", 950, "₹950.00"},
		{"thousands", 7300, "₹7,300.00"},
		{"lakh", 150000, "₹1,50,000.00"},
		{"crore", 10000000, "₹1,00,00,000.00"},
		{"paise", 6686.8, "₹6,686.80"},
		{"negative", -7300, "-₹7,300.00"},
		{"zero", 0, "₹0.00"},
		{"nan renders as zero", math.NaN(), "₹0.00"},
		{"infinity renders as zero", math.Inf(1), "₹0.00"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := FormatINR(tt.amount); got != tt.want {
				t.Errorf("FormatINR(%v) = %q, want %q", tt.amount, got, tt.want)
			}
		})
	}
}

func TestFormatRs(t *testing.T) {
	if got := FormatRs(150000); got != "Rs 1,50,000.00" {
		t.Errorf("FormatRs = %q", got)
	}
	if got := FormatRs(-50); got != "-Rs 50.00" {
		t.Errorf("FormatRs(negative) = %q", got)
	}
}

func TestDisplayDate(t *testing.T) {
	if got := DisplayDate("2026-08-27"); got != "27 Aug 2026" {
		t.Errorf("DisplayDate = %q", got)
	}
	// Unparsable input passes through untouched.
	if got := DisplayDate("yesterday"); got != "yesterday" {
		t.Errorf("DisplayDate(garbage) = %q", got)
	}
}

func TestCompactDate(t *testing.T) {
	d := time.Date(2026, 8, 27, 23, 59, 0, 0, time.UTC)
	if got := CompactDate(d); got != "20260827" {
		t.Errorf("CompactDate = %q", got)
	}
}

func TestMaskEmail(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"john@example.com", "jo***@example.com"},
		{"ab@example.com", "ab***@example.com"},
		{"a@example.com", "a***@example.com"},
		{"not-an-email", "not-an-email"},
		{"@example.com", "@example.com"},
	}
	for _, tt := range tests {
		if got := MaskEmail(tt.in); got != tt.want {
			t.Errorf("MaskEmail(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
