// Package util holds small character-class and padding helpers shared by
// the parser, builder and validator.
package util

import "strings"

// IsDigits reports whether s is non-empty and contains only decimal digits.
func IsDigits(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}

	return true
}

// IsHex reports whether s is non-empty and contains only hex digits,
// either case.
func IsHex(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case c >= '0' && c <= '9':
		case c >= 'A' && c <= 'F':
		case c >= 'a' && c <= 'f':
		default:
			return false
		}
	}

	return true
}

// IsAlpha reports whether s contains only letters and spaces. Space counts
// because fixed-width alpha fields are space-padded on the wire.
func IsAlpha(s string) bool {
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c == ' ' {
			continue
		}
		if (c < 'A' || c > 'Z') && (c < 'a' || c > 'z') {
			return false
		}
	}

	return true
}

// IsAlphanumeric reports whether s contains only letters, digits and
// spaces.
func IsAlphanumeric(s string) bool {
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c == ' ' {
			continue
		}
		if (c < '0' || c > '9') && (c < 'A' || c > 'Z') && (c < 'a' || c > 'z') {
			return false
		}
	}

	return true
}

// IsTrack2 reports whether s looks like track 2 data: up to 19 PAN digits,
// a '=' separator, then a 4-digit expiry followed by discretionary digits.
func IsTrack2(s string) bool {
	sep := strings.IndexByte(s, '=')
	if sep < 1 || sep > 19 {
		return false
	}
	if !IsDigits(s[:sep]) {
		return false
	}
	rest := s[sep+1:]
	if len(rest) < 4 {
		return false
	}

	return IsDigits(rest)
}

// PadLeft left-pads s with c to width. s is returned unchanged when it is
// already at least width long.
func PadLeft(s string, width int, c byte) string {
	if len(s) >= width {
		return s
	}

	return strings.Repeat(string(c), width-len(s)) + s
}

// PadRight right-pads s with c to width.
func PadRight(s string, width int, c byte) string {
	if len(s) >= width {
		return s
	}

	return s + strings.Repeat(string(c), width-len(s))
}

// TrimPad strips the padding character from the padded side of s.
func TrimPad(s string, c byte, left bool) string {
	if left {
		return strings.TrimLeft(s, string(c))
	}

	return strings.TrimRight(s, string(c))
}
