package emv

import (
	"fmt"
	"strings"
)

// Validate strictly checks the structure of a TLV stream, unlike the
// lenient Parse: every reason the stream is not a complete, well-formed
// sequence of tag-length-value entries is reported.
func Validate(s string) []string {
	if s == "" {
		return []string{"tlv stream is empty"}
	}
	s = strings.ToUpper(s)
	if !isHex(s) {
		return []string{"tlv stream contains non-hex characters"}
	}
	if len(s)%2 != 0 {
		return []string{fmt.Sprintf("tlv stream has odd length %d", len(s))}
	}

	var out []string
	pos := 0
	for pos < len(s) {
		tag, next, ok, _ := readTag(s, pos)
		if !ok {
			out = append(out, "incomplete tag at end of stream")
			break
		}
		pos = next

		length, next, ok, _ := readLength(s, pos)
		if !ok {
			out = append(out, fmt.Sprintf("incomplete or unsupported length for tag %s", tag))
			break
		}
		pos = next

		if pos+length*2 > len(s) {
			out = append(out, fmt.Sprintf("truncated value for tag %s: declared %d bytes, %d hex characters left",
				tag, length, len(s)-pos))
			break
		}
		pos += length * 2
	}

	return out
}
