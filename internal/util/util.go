package util

import (
	"encoding/base64"
	"fmt"
	"strings"
)

// Base64URL encodes b with the URL-safe alphabet and no padding, as used by
// JWT compact serialization.
func Base64URL(b []byte) string {
	return base64.RawURLEncoding.EncodeToString(b)
}

func NormalizeBool(s string) bool {
	s = strings.TrimSpace(strings.ToLower(s))
	switch s {
	case "yes", "true", "1", "y", "on":
		return true
	default:
		return false
	}
}

// Cell returns the string form of row[idx], or "" when the cell is missing.
func Cell(row []interface{}, idx int) string {
	if idx < 0 || idx >= len(row) || row[idx] == nil {
		return ""
	}
	return fmt.Sprint(row[idx])
}
