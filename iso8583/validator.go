package iso8583

import (
	"fmt"
	"strings"

	"github.com/paysim/go-iso8583/bitmap"
	"github.com/paysim/go-iso8583/emv"
	"github.com/paysim/go-iso8583/field"
	"github.com/paysim/go-iso8583/internal/util"
)

// ChipDataField is the data element carrying the EMV TLV payload.
const ChipDataField = 55

// Violation is one business-rule or structural failure found by message
// validation. Field is -1 for violations not scoped to a data element.
type Violation struct {
	Field  int
	Reason string
}

func (v Violation) String() string {
	if v.Field < 0 {
		return v.Reason
	}

	return fmt.Sprintf("field %d: %s", v.Field, v.Reason)
}

func violationf(fieldNum int, format string, args ...any) Violation {
	return Violation{Field: fieldNum, Reason: fmt.Sprintf(format, args...)}
}

// Validator checks messages and individual fields against the catalog and
// scheme compliance rules. It holds no mutable state and is safe for
// concurrent use.
type Validator struct {
	catalog *field.Catalog
}

// NewValidator creates a validator over a catalog. A nil catalog means the
// default one.
func NewValidator(catalog *field.Catalog) *Validator {
	if catalog == nil {
		catalog = DefaultCatalog()
	}

	return &Validator{catalog: catalog}
}

// ValidateField checks one value against its definition: exact width for
// fixed families, bounded width for variable families, the family's
// character class, and any scheme-specific format rule. It returns nil on
// pass.
func (v *Validator) ValidateField(num int, value string, def field.Definition, network field.Network) error {
	if def.Variable() {
		if len(value) > def.MaxLength {
			return fmt.Errorf("%w: length %d, maximum %d", ErrLengthExceedsMax, len(value), def.MaxLength)
		}
		if def.MinLength > 0 && len(value) < def.MinLength {
			return fmt.Errorf("%w: length %d, minimum %d", ErrInvalidValue, len(value), def.MinLength)
		}
	} else if len(value) != def.WireLength() {
		return fmt.Errorf("%w: length %d, want exactly %d", ErrInvalidValue, len(value), def.WireLength())
	}

	switch def.Type {
	case field.Numeric:
		if !util.IsDigits(value) {
			return fmt.Errorf("%w: %q is not all digits", ErrInvalidValue, value)
		}
	case field.Alpha:
		if !util.IsAlpha(value) {
			return fmt.Errorf("%w: %q is not all letters", ErrInvalidValue, value)
		}
	case field.Alphanumeric:
		if !util.IsAlphanumeric(value) {
			return fmt.Errorf("%w: %q is not alphanumeric", ErrInvalidValue, value)
		}
	case field.Binary:
		if !util.IsHex(value) {
			return fmt.Errorf("%w: %q", ErrInvalidHex, value)
		}
	case field.Track2:
		if !util.IsTrack2(value) {
			return fmt.Errorf("%w: %q is not track 2 data", ErrInvalidValue, value)
		}
	}

	if network != "" {
		if chk, ok := v.catalog.FormatCheck(network, num); ok {
			if chk.Prefix != "" && !strings.HasPrefix(value, chk.Prefix) {
				return fmt.Errorf("%w: %s requires %s, got %q", ErrInvalidValue, network, chk.Describe, value)
			}
			if chk.HexOnly && !util.IsHex(value) {
				return fmt.Errorf("%w: %s requires %s, got %q", ErrInvalidValue, network, chk.Describe, value)
			}
			if chk.Digits && !util.IsDigits(value) {
				return fmt.Errorf("%w: %s requires %s, got %q", ErrInvalidValue, network, chk.Describe, value)
			}
			if chk.EvenLength && len(value)%2 != 0 {
				return fmt.Errorf("%w: %s requires %s, got length %d", ErrInvalidValue, network, chk.Describe, len(value))
			}
		}
	}

	return nil
}

// ValidateMessage checks the whole message and returns every violation
// found: MTI structure, bitmap well-formedness, each present field against
// its definition, required-field completeness for the declared network on
// authorization and financial requests, and EMV structure when the
// chip-data field is present.
func (v *Validator) ValidateMessage(m *Message) []Violation {
	var out []Violation

	if err := ValidateMTI(m.MTI()); err != nil {
		out = append(out, Violation{Field: field.MTIField, Reason: err.Error()})
	}

	if bmp := m.Bitmap(); bmp != "" {
		if err := ValidateBitmap(bmp); err != nil {
			out = append(out, Violation{Field: -1, Reason: err.Error()})
		}
	}

	network := m.Network()
	for _, num := range m.FieldNumbers() {
		value, _ := m.Field(num)

		def, err := v.catalog.Resolve(num, network, m.Version())
		if err != nil {
			out = append(out, violationf(num, "no definition for field"))
			continue
		}

		if err := v.ValidateField(num, value, def, network); err != nil {
			out = append(out, Violation{Field: num, Reason: err.Error()})
		}
	}

	// completeness is a request-side rule: responses legitimately omit
	// card data the scheme demands on the request
	request := m.Function() == FunctionRequest || m.Function() == FunctionAdvice
	if network != "" && request && (m.Class() == ClassAuthorization || m.Class() == ClassFinancial) {
		for _, num := range v.catalog.RequiredFields(network) {
			if _, ok := m.Field(num); !ok {
				out = append(out, violationf(num, "required by %s but missing", network))
			}
		}
	}

	if payload, ok := m.Field(ChipDataField); ok {
		for _, reason := range emv.Validate(payload) {
			out = append(out, Violation{Field: ChipDataField, Reason: reason})
		}
	}

	return out
}

// ValidateMTI checks that an MTI is 4 decimal digits with each position in
// its defined set.
func ValidateMTI(mti string) error {
	if len(mti) != 4 || !util.IsDigits(mti) {
		return fmt.Errorf("%w: %q is not 4 decimal digits", ErrInvalidMTI, mti)
	}
	if !inDigitSet(mtiVersionDigits, mti[0]) {
		return fmt.Errorf("%w: version digit %q", ErrInvalidMTI, mti[0])
	}
	if !inDigitSet(mtiClassDigits, mti[1]) {
		return fmt.Errorf("%w: class digit %q", ErrInvalidMTI, mti[1])
	}
	if !inDigitSet(mtiFunctionDigits, mti[2]) {
		return fmt.Errorf("%w: function digit %q", ErrInvalidMTI, mti[2])
	}
	if !inDigitSet(mtiOriginDigits, mti[3]) {
		return fmt.Errorf("%w: origin digit %q", ErrInvalidMTI, mti[3])
	}

	return nil
}

// ValidateBitmap checks a presence vector for well-formedness.
func ValidateBitmap(bmp string) error {
	_, err := bitmap.Decode(bmp)
	return err
}

// ValidatePAN reports whether a card number passes the Luhn checksum.
func ValidatePAN(pan string) bool {
	if len(pan) < 8 || len(pan) > 19 || !util.IsDigits(pan) {
		return false
	}

	sum := 0
	double := false
	for i := len(pan) - 1; i >= 0; i-- {
		d := int(pan[i] - '0')
		if double {
			d *= 2
			if d > 9 {
				d -= 9
			}
		}
		sum += d
		double = !double
	}

	return sum%10 == 0
}

// ValidateProcessingCode checks the TT/AA/SS structure of a processing
// code: six digits split into transaction type and two account types.
func ValidateProcessingCode(code string) bool {
	return len(code) == 6 && util.IsDigits(code)
}
