// Package emv encodes and decodes the BER-TLV chip-card payload carried in
// ISO 8583 field 55.
//
// Tags are one byte, extended to two when the low five bits of the first
// byte are all set. Lengths use the short form for values up to 0x7F bytes
// and the 0x81/0x82 long forms beyond that. Tag order is significant to
// issuers, so Data preserves insertion order and Build never reorders;
// BuildSorted is the deterministic opt-in.
package emv

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// TLV is a single tag-length-value entry, with tag and value as uppercase
// hex strings.
type TLV struct {
	Tag   string
	Value string
}

// Data is an ordered sequence of TLV entries. Order matters: it is
// preserved from parse and respected by Build.
type Data []TLV

// Get returns the value for a tag and whether it is present.
func (d Data) Get(tag string) (string, bool) {
	tag = strings.ToUpper(tag)
	for _, e := range d {
		if e.Tag == tag {
			return e.Value, true
		}
	}

	return "", false
}

// Set appends a tag or replaces its value in place, keeping order stable.
func (d Data) Set(tag, value string) Data {
	tag = strings.ToUpper(tag)
	value = strings.ToUpper(value)
	for i, e := range d {
		if e.Tag == tag {
			d[i].Value = value
			return d
		}
	}

	return append(d, TLV{Tag: tag, Value: value})
}

// Tags returns the tags in order.
func (d Data) Tags() []string {
	tags := make([]string, len(d))
	for i, e := range d {
		tags[i] = e.Tag
	}

	return tags
}

// Parse decodes a hex TLV stream into ordered tag/value entries.
//
// Parsing is deliberately lenient at the tail: a truncated trailing value
// is accepted up to the end of the buffer, and an incomplete tag or length
// or an unsupported leading length byte stops the scan, returning
// everything decoded so far. Non-hex input is an error.
func Parse(s string) (Data, error) {
	s = strings.ToUpper(s)
	if len(s)%2 != 0 {
		return nil, fmt.Errorf("tlv stream has odd length %d", len(s))
	}

	data := make(Data, 0, 8)
	pos := 0

	for pos < len(s) {
		tag, next, ok, err := readTag(s, pos)
		if err != nil {
			return nil, err
		}
		if !ok {
			break
		}
		pos = next

		length, next, ok, err := readLength(s, pos)
		if err != nil {
			return nil, err
		}
		if !ok {
			break
		}
		pos = next

		end := pos + length*2
		if end > len(s) {
			end = len(s) // truncated trailing value, take what is there
		}
		data = append(data, TLV{Tag: tag, Value: s[pos:end]})
		pos = end
	}

	return data, nil
}

// readTag reads a 1- or 2-byte tag at pos. ok is false when the buffer
// ends mid-tag.
func readTag(s string, pos int) (tag string, next int, ok bool, err error) {
	if pos+2 > len(s) {
		return "", pos, false, nil
	}
	first, err := hexByte(s[pos : pos+2])
	if err != nil {
		return "", pos, false, err
	}
	pos += 2

	if first&0x1F != 0x1F {
		return fmt.Sprintf("%02X", first), pos, true, nil
	}

	// low five bits all set: tag continues into a second byte
	if pos+2 > len(s) {
		return "", pos, false, nil
	}
	if _, err := hexByte(s[pos : pos+2]); err != nil {
		return "", pos, false, err
	}

	return fmt.Sprintf("%02X%s", first, s[pos:pos+2]), pos + 2, true, nil
}

// readLength reads a short- or long-form length at pos, in bytes. ok is
// false when the buffer ends mid-length or the leading byte is not a
// supported form.
func readLength(s string, pos int) (length, next int, ok bool, err error) {
	if pos+2 > len(s) {
		return 0, pos, false, nil
	}
	lead, err := hexByte(s[pos : pos+2])
	if err != nil {
		return 0, pos, false, err
	}
	pos += 2

	switch {
	case lead <= 0x7F:
		return int(lead), pos, true, nil
	case lead == 0x81:
		if pos+2 > len(s) {
			return 0, pos, false, nil
		}
		v, err := strconv.ParseUint(s[pos:pos+2], 16, 16)
		if err != nil {
			return 0, pos, false, fmt.Errorf("invalid hex in length: %q", s[pos:pos+2])
		}
		return int(v), pos + 2, true, nil
	case lead == 0x82:
		if pos+4 > len(s) {
			return 0, pos, false, nil
		}
		v, err := strconv.ParseUint(s[pos:pos+4], 16, 32)
		if err != nil {
			return 0, pos, false, fmt.Errorf("invalid hex in length: %q", s[pos:pos+4])
		}
		return int(v), pos + 4, true, nil
	default:
		// 0x80 (indefinite) and 0x83+ are not used in EMV payloads
		return 0, pos, false, nil
	}
}

func hexByte(s string) (byte, error) {
	v, err := strconv.ParseUint(s, 16, 8)
	if err != nil {
		return 0, fmt.Errorf("invalid hex in tlv stream: %q", s)
	}

	return byte(v), nil
}

// Build encodes the entries into a hex TLV stream in their given order,
// choosing the shortest length form for each value.
func Build(data Data) (string, error) {
	var sb strings.Builder

	for _, e := range data {
		tag := strings.ToUpper(e.Tag)
		value := strings.ToUpper(e.Value)

		if len(tag) != 2 && len(tag) != 4 {
			return "", fmt.Errorf("tag %q: length must be 1 or 2 bytes", e.Tag)
		}
		if !isHex(tag) {
			return "", fmt.Errorf("tag %q: not hex", e.Tag)
		}
		if len(value)%2 != 0 || !isHex(value) {
			return "", fmt.Errorf("tag %s: value %q is not an even-length hex string", tag, e.Value)
		}

		sb.WriteString(tag)

		length := len(value) / 2
		switch {
		case length <= 0x7F:
			fmt.Fprintf(&sb, "%02X", length)
		case length <= 0xFF:
			fmt.Fprintf(&sb, "81%02X", length)
		case length <= 0xFFFF:
			fmt.Fprintf(&sb, "82%04X", length)
		default:
			return "", fmt.Errorf("tag %s: value of %d bytes exceeds the 0x82 length form", tag, length)
		}

		sb.WriteString(value)
	}

	return sb.String(), nil
}

// BuildSorted encodes the entries in ascending tag order. Use it when a
// deterministic stream matters more than the caller's sequence.
func BuildSorted(data Data) (string, error) {
	sorted := make(Data, len(data))
	copy(sorted, data)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Tag < sorted[j].Tag })

	return Build(sorted)
}

func isHex(s string) bool {
	for i := 0; i < len(s); i++ {
		c := s[i]
		if (c < '0' || c > '9') && (c < 'A' || c > 'F') {
			return false
		}
	}

	return true
}
