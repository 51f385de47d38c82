// Package field defines ISO 8583 data element definitions and the
// three-tier catalog (base, protocol version, card network) that resolves
// them.
//
// A Definition describes how a single field is encoded on the wire: its
// encoding family (fixed numeric/alpha/alphanumeric/binary, track 2, or one
// of the two variable-length forms), its length bounds, and its padding
// rule. The Catalog holds the standard 1987 table for all 128 fields plus
// per-version and per-network override tables; Resolve consults them in
// network > version > base order.
package field

// Type identifies the wire-encoding family of a field.
type Type string

const (
	// Numeric is a fixed-width field of decimal digits, zero-padded on the left.
	Numeric Type = "n"
	// Alpha is a fixed-width field of letters, space-padded.
	Alpha Type = "a"
	// Alphanumeric is a fixed-width field of letters and digits, space-padded.
	Alphanumeric Type = "an"
	// Binary is a fixed-width field carried as uppercase hex, two characters per byte.
	Binary Type = "b"
	// Track2 is magnetic stripe track 2 data (digits and a '=' separator),
	// carried with a 2-digit length prefix like LLVar.
	Track2 Type = "z"
	// LLVar is a variable-length field with a 2-digit decimal length prefix.
	LLVar Type = "ll"
	// LLLVar is a variable-length field with a 3-digit decimal length prefix.
	LLLVar Type = "lll"
)

// PadSide indicates which side of a value padding is applied to.
type PadSide int8

const (
	PadLeft PadSide = iota
	PadRight
)

// Definition describes the wire encoding of one ISO 8583 data element.
type Definition struct {
	Type        Type
	MaxLength   int    // characters for text fields, bytes for binary fields
	MinLength   int    // zero means no minimum (variable-length fields only)
	PadChar     byte   // zero means no padding
	PadSide     PadSide
	Description string
}

// Variable reports whether the field carries a decimal length prefix on the
// wire instead of having a fixed width.
func (d Definition) Variable() bool {
	return d.Type == LLVar || d.Type == LLLVar || d.Type == Track2
}

// PrefixDigits returns the width of the decimal length prefix for
// variable-length fields, or 0 for fixed-width fields.
func (d Definition) PrefixDigits() int {
	switch d.Type {
	case LLVar, Track2:
		return 2
	case LLLVar:
		return 3
	default:
		return 0
	}
}

// WireLength returns the number of characters the field occupies on the
// wire for fixed-width fields. Binary fields occupy two hex characters per
// byte. For variable-length fields it returns 0.
func (d Definition) WireLength() int {
	if d.Variable() {
		return 0
	}
	if d.Type == Binary {
		return d.MaxLength * 2
	}
	return d.MaxLength
}

// MTIField is the synthetic field number carrying the Message Type Indicator.
const MTIField = 0

// MaxField is the highest data element number addressable by the two-tier bitmap.
const MaxField = 128
