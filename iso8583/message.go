// Package iso8583 parses, builds and validates ISO 8583 financial
// transaction messages.
//
// The wire format is [4-digit MTI][16 hex primary bitmap][16 hex secondary
// bitmap if primary bit 1 is set][data elements in ascending field-number
// order]. Parsing and building are synchronous, in-memory operations with
// no I/O; the field catalog, bitmap codec and EMV sub-codec live in their
// own packages and are composed here.
package iso8583

import (
	"sort"

	"github.com/paysim/go-iso8583/field"
	"github.com/paysim/go-iso8583/internal/util"
)

// Message is a structured ISO 8583 message: an MTI plus an ordered mapping
// from field number (2..128, with the synthetic field 0 mirroring the MTI)
// to its raw wire value.
//
// Field values preserve exact wire width; leading zeros on numeric fields
// and trailing spaces on alphanumeric fields are information-bearing. Use
// LogicalValue for a padding-stripped view of display fields.
type Message struct {
	mti        string
	fields     map[int]string
	version    field.Version
	versionSet bool          // distinguishes an explicit SetVersion from the 1987 default
	network    field.Network // declared by the caller
	hint       field.Network // auto-detected from the PAN, advisory only
	raw        string        // cached wire string, set by parser and builder
	bitmap     string        // cached bitmap hex, set by parser and builder
}

// NewMessage creates a message with the given MTI and field values. The
// fields map is copied; field 0 is set to the MTI.
func NewMessage(mti string, fields map[int]string) *Message {
	m := &Message{
		mti:     mti,
		fields:  make(map[int]string, len(fields)+1),
		version: field.V1987,
	}
	for num, value := range fields {
		if num == field.MTIField {
			continue
		}
		m.fields[num] = value
	}
	if mti != "" {
		m.fields[field.MTIField] = mti
	}

	return m
}

// MTI returns the message type indicator.
func (m *Message) MTI() string {
	return m.mti
}

// SetMTI replaces the MTI, keeping field 0 in sync.
func (m *Message) SetMTI(mti string) {
	m.mti = mti
	m.fields[field.MTIField] = mti
	m.raw = ""
	m.bitmap = ""
}

// Class returns the MTI class digit, or 0 when the MTI is malformed.
func (m *Message) Class() byte {
	if len(m.mti) != 4 {
		return 0
	}

	return m.mti[1]
}

// Function returns the MTI function digit, or 0 when the MTI is malformed.
func (m *Message) Function() byte {
	if len(m.mti) != 4 {
		return 0
	}

	return m.mti[2]
}

// Origin returns the MTI origin digit, or 0 when the MTI is malformed.
func (m *Message) Origin() byte {
	if len(m.mti) != 4 {
		return 0
	}

	return m.mti[3]
}

// Field returns the raw wire value of a data element.
func (m *Message) Field(num int) (string, bool) {
	v, ok := m.fields[num]
	return v, ok
}

// SetField sets the raw value of a data element. Setting field 0 updates
// the MTI instead.
func (m *Message) SetField(num int, value string) {
	if num == field.MTIField {
		m.SetMTI(value)
		return
	}
	m.fields[num] = value
	m.raw = ""
	m.bitmap = ""
}

// RemoveField deletes a data element. Field 0 cannot be removed.
func (m *Message) RemoveField(num int) {
	if num == field.MTIField {
		return
	}
	delete(m.fields, num)
	m.raw = ""
	m.bitmap = ""
}

// FieldNumbers returns the present data element numbers in ascending
// order, excluding the synthetic field 0.
func (m *Message) FieldNumbers() []int {
	nums := make([]int, 0, len(m.fields))
	for num := range m.fields {
		if num != field.MTIField {
			nums = append(nums, num)
		}
	}
	sort.Ints(nums)

	return nums
}

// Fields returns a copy of the field map, including field 0.
func (m *Message) Fields() map[int]string {
	cp := make(map[int]string, len(m.fields))
	for num, value := range m.fields {
		cp[num] = value
	}

	return cp
}

// Version returns the protocol revision the message was parsed or built
// under.
func (m *Message) Version() field.Version {
	return m.version
}

// SetVersion sets the protocol revision. A message that never had its
// version set explicitly inherits the builder's configured version on
// Build.
func (m *Message) SetVersion(v field.Version) {
	m.version = v
	m.versionSet = true
}

// Network returns the network declared for this message. It is empty when
// the caller declared none, even if a network was auto-detected; see
// DetectedNetwork.
func (m *Message) Network() field.Network {
	return m.network
}

// SetNetwork declares the card network for this message.
func (m *Message) SetNetwork(n field.Network) {
	m.network = n
}

// DetectedNetwork returns the network hint guessed from the PAN prefix
// during parsing. It is advisory only and never influences building or
// validation.
func (m *Message) DetectedNetwork() (field.Network, bool) {
	return m.hint, m.hint != ""
}

// Raw returns the cached wire string, if the message came from a parse or
// has been built.
func (m *Message) Raw() string {
	return m.raw
}

// Bitmap returns the cached bitmap hex string, if available.
func (m *Message) Bitmap() string {
	return m.bitmap
}

// reset clears all message state so a pooled instance carries nothing over
// to its next borrower.
func (m *Message) reset() {
	m.mti = ""
	m.version = field.V1987
	m.versionSet = false
	m.network = ""
	m.hint = ""
	m.raw = ""
	m.bitmap = ""
	for num := range m.fields {
		delete(m.fields, num)
	}
}

// LogicalValue strips a field's padding from its raw wire value per its
// definition: leading zeros for left-zero-padded numeric fields, trailing
// spaces for right-space-padded text fields. Variable-length and binary
// values are returned unchanged.
func LogicalValue(def field.Definition, value string) string {
	if def.Variable() || def.Type == field.Binary || def.PadChar == 0 {
		return value
	}

	return util.TrimPad(value, def.PadChar, def.PadSide == field.PadLeft)
}
