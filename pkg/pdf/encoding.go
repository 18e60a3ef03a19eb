package pdf

import (
	"unicode/utf16"

	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/types"
)

// DecodeText decodes a PDF text string object into a Go string. Strings
// starting with the FE FF byte order mark are decoded as UTF-16BE, with
// broken surrogates mapped to the replacement character; everything else is
// read as Latin-1.
func DecodeText(obj types.Object) (string, bool) {
	switch v := obj.(type) {
	case types.StringLiteral:
		b, err := types.Unescape(v.Value())
		if err != nil {
			return "", false
		}
		return decodeTextBytes(b), true
	case types.HexLiteral:
		b, err := v.Bytes()
		if err != nil {
			return "", false
		}
		return decodeTextBytes(b), true
	}
	return "", false
}

func decodeTextBytes(b []byte) string {
	if len(b) >= 2 && b[0] == 0xFE && b[1] == 0xFF {
		return decodeUTF16BE(b[2:])
	}

	// Latin-1: every byte maps to the code point of the same value
	runes := make([]rune, len(b))
	for i, c := range b {
		runes[i] = rune(c)
	}
	return string(runes)
}

// decodeUTF16BE decodes big-endian UTF-16 bytes. A trailing odd byte is
// dropped.
func decodeUTF16BE(b []byte) string {
	u := make([]uint16, 0, len(b)/2)
	for i := 0; i+1 < len(b); i += 2 {
		u = append(u, uint16(b[i])<<8|uint16(b[i+1]))
	}
	return string(utf16.Decode(u))
}

// FormatDate renders a PDF date string like "D:20240115093000+09'00" in the
// form "2024-01-15 09:30:00". Strings that do not carry the expected prefix
// or enough digits come back unchanged.
func FormatDate(date string) string {
	if len(date) < 10 || date[:2] != "D:" {
		return date
	}
	d := date[2:]
	if len(d) < 8 {
		return date
	}

	out := d[0:4] + "-" + d[4:6] + "-" + d[6:8]
	if len(d) >= 14 {
		out += " " + d[8:10] + ":" + d[10:12] + ":" + d[12:14]
	}
	return out
}
