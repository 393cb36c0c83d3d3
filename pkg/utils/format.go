// Package utils provides shared formatting helpers.
package utils

import (
	"fmt"
	"math"
	"strings"
	"time"
)

// FormatINR formats a rupee amount with Indian digit grouping. Absent data
// (NaN or infinite) renders as zero.
func FormatINR(amount float64) string {
	if math.IsNaN(amount) || math.IsInf(amount, 0) {
		amount = 0
	}
	negative := amount < 0
	if negative {
		amount = -amount
	}

	str := fmt.Sprintf("%.2f", amount)
	parts := strings.Split(str, ".")
	intPart := parts[0]
	decPart := parts[1]

	result := "₹" + groupIndian(intPart) + "." + decPart
	if negative {
		result = "-" + result
	}
	return result
}

// groupIndian groups an integer string in the Indian numbering system:
// 1,00,00,000 rather than 10,000,000.
func groupIndian(s string) string {
	n := len(s)
	if n <= 3 {
		return s
	}

	result := s[n-3:]
	s = s[:n-3]

	for len(s) > 0 {
		if len(s) >= 2 {
			result = s[len(s)-2:] + "," + result
			s = s[:len(s)-2]
		} else {
			result = s + "," + result
			s = ""
		}
	}

	return result
}

// FormatRs formats a rupee amount with Indian digit grouping using an
// ASCII currency marker, for outputs restricted to core PDF fonts.
func FormatRs(amount float64) string {
	return strings.Replace(FormatINR(amount), "₹", "Rs ", 1)
}

// DisplayDate renders an ISO date (YYYY-MM-DD) as DD MMM YYYY. Unparsable
// input is passed through unchanged.
func DisplayDate(iso string) string {
	t, err := time.Parse("2006-01-02", iso)
	if err != nil {
		return iso
	}
	return t.Format("02 Jan 2006")
}

// CompactDate renders a time as YYYYMMDD, as used in export filenames.
func CompactDate(t time.Time) string {
	return t.Format("20060102")
}

// MaskEmail masks the local part of an address for display: "jo***@x.com".
func MaskEmail(addr string) string {
	at := strings.Index(addr, "@")
	if at <= 0 {
		return addr
	}
	visible := at
	if visible > 2 {
		visible = 2
	}
	return addr[:visible] + "***" + addr[at:]
}
