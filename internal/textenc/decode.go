// Package textenc turns raw page bytes into text, honouring the legacy
// charset a page declares in its own markup.
package textenc

import (
	"bytes"
	"strings"

	"golang.org/x/text/encoding/japanese"
	"golang.org/x/text/transform"
)

// ShiftJISMarker is the content-type declaration wikiru pages carry in
// their <meta> tag when served as Shift_JIS.
const ShiftJISMarker = "text/html; charset=shift_jis"

// Decode reads raw as UTF-8. When the decoded text declares Shift_JIS the
// original bytes are decoded again with that encoding.
func Decode(raw []byte) (string, error) {
	text := strings.ToValidUTF8(string(raw), "�")
	if !declaresShiftJIS(text) {
		return text, nil
	}

	out, _, err := transform.Bytes(japanese.ShiftJIS.NewDecoder(), raw)
	if err != nil {
		return "", err
	}

	return string(bytes.ToValidUTF8(out, []byte("�"))), nil
}

func declaresShiftJIS(text string) bool {
	return strings.Contains(strings.ToLower(text), ShiftJISMarker)
}
