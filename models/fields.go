// Package models defines the portfolio resources as the API serializes
// them, together with the form types the admin tool submits. Identity is
// server-assigned; the client never invents IDs.
package models

import (
	"fmt"
	"strings"
)

// SplitList turns comma-separated input text into a clean list: split on
// commas, entries trimmed, empties dropped. Used for technologies and tags.
func SplitList(input string) []string {
	parts := strings.Split(input, ",")
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		trimmed := strings.TrimSpace(part)
		if trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

// JoinList is the inverse of SplitList, used to prefill edit forms.
func JoinList(values []string) string {
	return strings.Join(values, ", ")
}

// ClampProficiency forces a proficiency value into [0, 100], matching what
// the input control enforces.
func ClampProficiency(value int) int {
	if value < 0 {
		return 0
	}
	if value > 100 {
		return 100
	}
	return value
}

// FormatFileSize renders a byte count the way the API's resume serializer
// does.
func FormatFileSize(size int64) string {
	value := float64(size)
	for _, unit := range []string{"B", "KB", "MB", "GB"} {
		if value < 1024.0 {
			return fmt.Sprintf("%.1f %s", value, unit)
		}
		value /= 1024.0
	}
	return fmt.Sprintf("%.1f TB", value)
}
