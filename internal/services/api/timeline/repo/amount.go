package repo

import (
	"strconv"
	"strings"
)

// parseAmount reads a listing estimate written as a bare number or with a
// currency sign and thousands separators. Anything else gives nil
func parseAmount(s string) *float64 {
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(s, "$")
	s = strings.ReplaceAll(s, ",", "")
	if s == "" {
		return nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || v <= 0 {
		return nil
	}
	return &v
}
