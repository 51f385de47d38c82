// Package bitmap encodes and decodes the ISO 8583 field presence vector.
//
// The vector is one 64-bit primary bitmap, optionally followed by a 64-bit
// secondary bitmap, serialized as 16 or 32 uppercase hex characters. Bit 1
// of the primary vector flags the presence of the secondary vector and
// never marks a data field.
package bitmap

import (
	"errors"
	"fmt"
	"strconv"
)

// PrimaryHexLen is the serialized length of one 64-bit vector.
const PrimaryHexLen = 16

// ErrMalformed indicates a bitmap string whose length is not 16 or 32
// characters or which contains non-hex characters.
var ErrMalformed = errors.New("malformed bitmap")

// ErrFieldRange indicates a field number outside 2..128.
var ErrFieldRange = errors.New("field number out of range")

// Encode builds the hex presence vector for a set of field numbers in
// 2..128. When any field above 64 is present, bit 1 is set and the
// secondary vector is appended, yielding 32 characters; otherwise the
// result is the 16-character primary vector alone.
func Encode(fields []int) (string, error) {
	var primary, secondary uint64

	for _, f := range fields {
		if f < 2 || f > 128 {
			return "", fmt.Errorf("%w: %d", ErrFieldRange, f)
		}
		if f <= 64 {
			primary |= 1 << (64 - f)
		} else {
			secondary |= 1 << (128 - f)
		}
	}

	if secondary != 0 {
		primary |= 1 << 63 // secondary presence flag
		return fmt.Sprintf("%016X%016X", primary, secondary), nil
	}

	return fmt.Sprintf("%016X", primary), nil
}

// Decode returns the field numbers marked present in a 16- or 32-character
// hex bitmap, in ascending order. Bit 1 of the primary vector is the
// secondary presence flag and is never reported; a set bit 1 with only 16
// characters supplied, or a clear bit 1 with 32 supplied, is malformed.
func Decode(s string) ([]int, error) {
	if len(s) != PrimaryHexLen && len(s) != 2*PrimaryHexLen {
		return nil, fmt.Errorf("%w: length %d, want 16 or 32", ErrMalformed, len(s))
	}

	primary, err := strconv.ParseUint(s[:PrimaryHexLen], 16, 64)
	if err != nil {
		return nil, fmt.Errorf("%w: primary vector is not hex", ErrMalformed)
	}

	hasSecondary := primary&(1<<63) != 0
	if hasSecondary != (len(s) == 2*PrimaryHexLen) {
		if hasSecondary {
			return nil, fmt.Errorf("%w: secondary flag set but vector missing", ErrMalformed)
		}
		return nil, fmt.Errorf("%w: secondary vector present but flag clear", ErrMalformed)
	}

	var secondary uint64
	if hasSecondary {
		secondary, err = strconv.ParseUint(s[PrimaryHexLen:], 16, 64)
		if err != nil {
			return nil, fmt.Errorf("%w: secondary vector is not hex", ErrMalformed)
		}
	}

	fields := make([]int, 0, 16)
	for f := 2; f <= 64; f++ {
		if primary&(1<<(64-f)) != 0 {
			fields = append(fields, f)
		}
	}
	for f := 65; f <= 128; f++ {
		if secondary&(1<<(128-f)) != 0 {
			fields = append(fields, f)
		}
	}

	return fields, nil
}
