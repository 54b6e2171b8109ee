package view

import (
	"fmt"
	"strings"
	"time"
)

// Money formats an amount in rupees with Indian digit grouping,
// e.g. 1234567.5 -> "₹12,34,567.50".
func Money(amount float64) string {
	if amount < 0 {
		return "-" + Money(-amount)
	}

	whole := int64(amount)
	frac := int64((amount-float64(whole))*100 + 0.5)
	if frac >= 100 {
		whole++
		frac -= 100
	}

	return fmt.Sprintf("₹%s.%02d", groupIndian(whole), frac)
}

// groupIndian applies the 3-then-2 grouping: 1234567 -> "12,34,567".
func groupIndian(n int64) string {
	s := fmt.Sprintf("%d", n)
	if len(s) <= 3 {
		return s
	}

	head := s[:len(s)-3]
	tail := s[len(s)-3:]

	var parts []string
	for len(head) > 2 {
		parts = append([]string{head[len(head)-2:]}, parts...)
		head = head[:len(head)-2]
	}
	if head != "" {
		parts = append([]string{head}, parts...)
	}
	return strings.Join(parts, ",") + "," + tail
}

// Date renders a timestamp for display; the zero time renders as a dash.
func Date(t time.Time) string {
	if t.IsZero() {
		return "-"
	}
	return t.Format("Jan 2, 2006")
}
