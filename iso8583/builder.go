package iso8583

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/paysim/go-iso8583/bitmap"
	"github.com/paysim/go-iso8583/field"
	"github.com/paysim/go-iso8583/internal/util"
)

// Fields carried forward from a request into its response.
var responseCarryFields = []int{2, 3, 4, 11, 37, 41, 42}

// Builder encodes Messages into wire strings and derives response,
// reversal and network-management messages. Every build re-runs full
// validation before emitting; a non-compliant message is never emitted.
type Builder struct {
	version   field.Version
	catalog   *field.Catalog
	validator *Validator

	now func() time.Time
}

// NewBuilder creates a builder with the standard catalog and the 1987
// revision unless options say otherwise.
func NewBuilder(opts ...Option) *Builder {
	cfg := newConfig(opts)

	return &Builder{
		version:   cfg.version,
		catalog:   cfg.catalog,
		validator: NewValidator(cfg.catalog),
		now:       time.Now,
	}
}

// Build encodes the message into its wire string: MTI, bitmap, then every
// data element in ascending field-number order. Field values are first
// canonicalized in place (padded to their catalog widths), then the whole
// message is validated; any violation aborts the build with no partial
// output. On success the wire string and bitmap are cached on the message.
func (b *Builder) Build(m *Message) (string, error) {
	// a message whose version was never declared builds under the
	// builder's configured revision
	if !m.versionSet {
		m.SetVersion(b.version)
	}

	nums := m.FieldNumbers()

	defs := make(map[int]field.Definition, len(nums))
	for _, num := range nums {
		def, err := b.catalog.Resolve(num, m.Network(), m.Version())
		if err != nil {
			if errors.Is(err, field.ErrNotFound) {
				return "", newBuildError(num, ErrUnknownField)
			}
			return "", newBuildError(num, err)
		}
		defs[num] = def

		value, _ := m.Field(num)
		formatted, err := formatValue(num, value, def)
		if err != nil {
			return "", err
		}
		m.fields[num] = formatted
	}

	if violations := b.validator.ValidateMessage(m); len(violations) > 0 {
		reasons := make([]string, len(violations))
		for i, v := range violations {
			reasons[i] = v.String()
		}
		return "", buildErrorf(-1, "validation failed: %s", strings.Join(reasons, "; "))
	}

	bmp, err := bitmap.Encode(nums)
	if err != nil {
		return "", newBuildError(-1, err)
	}

	var sb strings.Builder
	sb.WriteString(m.MTI())
	sb.WriteString(bmp)
	for _, num := range nums {
		value := m.fields[num]
		if def := defs[num]; def.Variable() {
			fmt.Fprintf(&sb, "%0*d", def.PrefixDigits(), len(value))
		}
		sb.WriteString(value)
	}

	raw := sb.String()
	m.raw = raw
	m.bitmap = bmp

	return raw, nil
}

// formatValue pads a value to its catalog width, or fails when the value
// cannot fit or sits outside its character class.
func formatValue(num int, value string, def field.Definition) (string, error) {
	switch def.Type {
	case field.Numeric:
		if !util.IsDigits(value) {
			return "", buildErrorf(num, "%w: %q is not all digits", ErrInvalidValue, value)
		}
		if len(value) > def.MaxLength {
			return "", buildErrorf(num, "%w: %d digits, maximum %d", ErrLengthExceedsMax, len(value), def.MaxLength)
		}
		return util.PadLeft(value, def.MaxLength, '0'), nil

	case field.Binary:
		if !util.IsHex(value) {
			return "", buildErrorf(num, "%w: %q", ErrInvalidHex, value)
		}
		width := def.MaxLength * 2
		if len(value) > width {
			return "", buildErrorf(num, "%w: %d hex characters, maximum %d", ErrLengthExceedsMax, len(value), width)
		}
		return util.PadLeft(strings.ToUpper(value), width, '0'), nil

	case field.Alpha, field.Alphanumeric:
		if def.Type == field.Alpha && !util.IsAlpha(value) {
			return "", buildErrorf(num, "%w: %q is not all letters", ErrInvalidValue, value)
		}
		if def.Type == field.Alphanumeric && !util.IsAlphanumeric(value) {
			return "", buildErrorf(num, "%w: %q is not alphanumeric", ErrInvalidValue, value)
		}
		if len(value) > def.MaxLength {
			return "", buildErrorf(num, "%w: %d characters, maximum %d", ErrLengthExceedsMax, len(value), def.MaxLength)
		}
		pad := def.PadChar
		if pad == 0 {
			pad = ' '
		}
		if def.PadSide == field.PadLeft {
			return util.PadLeft(value, def.MaxLength, pad), nil
		}
		return util.PadRight(value, def.MaxLength, pad), nil

	default: // variable-length families carry the value as given
		if len(value) > def.MaxLength {
			return "", buildErrorf(num, "%w: %d characters, maximum %d", ErrLengthExceedsMax, len(value), def.MaxLength)
		}
		return value, nil
	}
}

// Response derives the response to a request: the MTI function digit is
// set to response, PAN, processing code, amount, STAN, RRN, terminal and
// merchant fields carry forward from the request (overriding any
// caller-supplied values for those numbers), responseFields are merged in,
// and the result is built.
func (b *Builder) Response(request *Message, responseFields map[int]string) (*Message, error) {
	if len(request.MTI()) != 4 {
		return nil, buildErrorf(-1, "%w: request MTI %q", ErrInvalidMTI, request.MTI())
	}

	mti := []byte(request.MTI())
	mti[2] = FunctionResponse

	fields := make(map[int]string, len(responseFields)+len(responseCarryFields))
	for num, value := range responseFields {
		fields[num] = value
	}
	for _, num := range responseCarryFields {
		if value, ok := request.Field(num); ok {
			fields[num] = value
		}
	}

	m := NewMessage(string(mti), fields)
	m.SetVersion(b.version)
	m.SetNetwork(request.Network())

	if _, err := b.Build(m); err != nil {
		return nil, err
	}

	return m, nil
}

// Reversal derives the reversal of an original message: the MTI class is
// forced to reversal, all original fields are copied, the transmission
// timestamp is stamped from the clock, the response code defaults to
// approved, and the original-data-elements field is set to the original
// MTI plus its STAN zero-padded to 6 digits, right-padded with zeros to 42
// characters. extra fields are merged last and win.
func (b *Builder) Reversal(original *Message, extra map[int]string) (*Message, error) {
	if len(original.MTI()) != 4 {
		return nil, buildErrorf(-1, "%w: original MTI %q", ErrInvalidMTI, original.MTI())
	}

	mti := "0" + string(ClassReversal) + original.MTI()[2:]

	fields := make(map[int]string, len(original.fields)+3)
	for _, num := range original.FieldNumbers() {
		fields[num], _ = original.Field(num)
	}

	stan, _ := original.Field(11)
	fields[7] = b.now().Format("0102150405")
	fields[39] = "00"
	fields[90] = util.PadRight(original.MTI()+util.PadLeft(stan, 6, '0'), 42, '0')

	for num, value := range extra {
		fields[num] = value
	}

	m := NewMessage(mti, fields)
	m.SetVersion(b.version)
	m.SetNetwork(original.Network())

	if _, err := b.Build(m); err != nil {
		return nil, err
	}

	return m, nil
}

// NetworkManagement builds an 0800 message carrying the 3-digit management
// information code, plus the scheme's customary security and echo fields
// when a network is declared.
func (b *Builder) NetworkManagement(infoCode string, network field.Network) (*Message, error) {
	fields := map[int]string{
		70: util.PadLeft(infoCode, 3, '0'),
	}

	switch network {
	case field.Visa:
		fields[53] = "0000000000000000"
		fields[96] = "0123456789ABCDEF"
	case field.Mastercard:
		fields[48] = "MC00"
		fields[53] = "0000000000000000"
	}

	m := NewMessage("0800", fields)
	m.SetVersion(b.version)
	m.SetNetwork(network)

	if _, err := b.Build(m); err != nil {
		return nil, err
	}

	return m, nil
}
