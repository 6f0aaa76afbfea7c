package common

import "strings"

// StringOrNil returns nil for empty strings so optional request fields
// are left unset rather than sent as "".
func StringOrNil(s string) *string {
	if len(strings.TrimSpace(s)) == 0 {
		return nil
	}
	return &s
}

// EnumOrNil turns an SDK string enum into a nullable string, treating the
// zero value as absent.
func EnumOrNil[T ~string](v T) *string {
	if len(v) == 0 {
		return nil
	}
	s := string(v)
	return &s
}

// IsBlank reports whether s is empty after trimming whitespace.
func IsBlank(s string) bool {
	return len(strings.TrimSpace(s)) == 0
}
