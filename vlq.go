package wizardstring

import (
	"fmt"
	"strings"
)

const base64Digits = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789+/"

// A base 64 VLQ digit carries six bits: a continuation bit, four (first
// digit) or five (later digits) value bits, and in the first digit the sign
// as the lowest bit.
func encodeVLQ(encoded []byte, value int) []byte {
	var vlq int
	if value < 0 {
		vlq = ((-value) << 1) | 1
	} else {
		vlq = value << 1
	}

	if (vlq >> 5) == 0 {
		return append(encoded, base64Digits[vlq&31])
	}

	for {
		digit := vlq & 31
		vlq >>= 5
		if vlq != 0 {
			digit |= 32
		}
		encoded = append(encoded, base64Digits[digit])
		if vlq == 0 {
			break
		}
	}
	return encoded
}

// decodeVLQ reads one value starting at encoded[start] and returns it with
// the index just past it.
func decodeVLQ(encoded string, start int) (int, int, error) {
	shift := 0
	vlq := 0
	for {
		if start >= len(encoded) {
			return 0, start, fmt.Errorf("%w: truncated VLQ value", ErrInvalidArgument)
		}
		index := strings.IndexByte(base64Digits, encoded[start])
		if index < 0 {
			return 0, start, fmt.Errorf("%w: invalid VLQ digit %q", ErrInvalidArgument, encoded[start])
		}
		vlq |= (index & 31) << shift
		start++
		shift += 5
		if (index & 32) == 0 {
			break
		}
	}

	value := vlq >> 1
	if (vlq & 1) != 0 {
		value = -value
	}
	return value, start, nil
}

// EncodeMappings encodes decoded mappings into the VLQ mappings string.
// Generated columns restart on every line; the other fields are relative to
// the previous segment that carried them, across lines.
func EncodeMappings(lines [][]Segment) string {
	var out []byte
	var source, origLine, origColumn, name int

	for i, line := range lines {
		if i > 0 {
			out = append(out, ';')
		}
		genColumn := 0
		first := true
		for _, seg := range line {
			if len(seg) == 0 {
				continue
			}
			if !first {
				out = append(out, ',')
			}
			first = false
			out = encodeVLQ(out, seg[0]-genColumn)
			genColumn = seg[0]
			if len(seg) < 4 {
				continue
			}
			out = encodeVLQ(out, seg[1]-source)
			out = encodeVLQ(out, seg[2]-origLine)
			out = encodeVLQ(out, seg[3]-origColumn)
			source, origLine, origColumn = seg[1], seg[2], seg[3]
			if len(seg) >= 5 {
				out = encodeVLQ(out, seg[4]-name)
				name = seg[4]
			}
		}
	}
	return string(out)
}

// DecodeMappings parses a VLQ mappings string into absolute segments.
func DecodeMappings(mappings string) ([][]Segment, error) {
	var lines [][]Segment
	var source, origLine, origColumn, name int

	for line := range strings.SplitSeq(mappings, ";") {
		var segments []Segment
		genColumn := 0
		for _, field := range strings.Split(line, ",") {
			if field == "" {
				continue
			}
			var values []int
			for pos := 0; pos < len(field); {
				v, next, err := decodeVLQ(field, pos)
				if err != nil {
					return nil, err
				}
				values = append(values, v)
				pos = next
			}

			switch len(values) {
			case 1, 4, 5:
			default:
				return nil, fmt.Errorf("%w: segment %q has %d fields", ErrInvalidArgument, field, len(values))
			}

			genColumn += values[0]
			seg := Segment{genColumn}
			if len(values) >= 4 {
				source += values[1]
				origLine += values[2]
				origColumn += values[3]
				seg = append(seg, source, origLine, origColumn)
			}
			if len(values) == 5 {
				name += values[4]
				seg = append(seg, name)
			}
			segments = append(segments, seg)
		}
		lines = append(lines, segments)
	}
	return lines, nil
}
