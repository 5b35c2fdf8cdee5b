package controllers

import (
	"encoding/xml"
	"io"
	"strings"
)

// FixBareAmpersands escapes '&' characters that do not already start an
// entity reference. DART document payloads occasionally contain bare
// ampersands that break XML parsers downstream; existing references must be
// left alone so the fix-up can run over already-valid documents.
func FixBareAmpersands(s string) string {
	var b strings.Builder
	b.Grow(len(s))

	for i := 0; i < len(s); i++ {
		ch := s[i]
		if ch != '&' {
			b.WriteByte(ch)
			continue
		}

		if startsEntityRef(s[i:]) {
			b.WriteByte(ch)
			continue
		}

		b.WriteString("&amp;")
	}

	return b.String()
}

// startsEntityRef reports whether s begins with a reference like &amp;,
// &#38; or &#x26;.
func startsEntityRef(s string) bool {
	end := strings.IndexByte(s, ';')
	if end <= 1 {
		return false
	}

	body := s[1:end]
	if body[0] == '#' {
		digits := body[1:]
		valid := isDecimal
		if len(digits) > 0 && (digits[0] == 'x' || digits[0] == 'X') {
			digits = digits[1:]
			valid = isHex
		}
		if digits == "" {
			return false
		}
		for i := 0; i < len(digits); i++ {
			if !valid(digits[i]) {
				return false
			}
		}
		return true
	}

	for i := 0; i < len(body); i++ {
		if !isNameByte(body[i]) {
			return false
		}
	}
	return true
}

// CheckWellFormedXML runs the document through the XML tokenizer and returns
// the first syntax error, if any.
func CheckWellFormedXML(s string) error {
	dec := xml.NewDecoder(strings.NewReader(s))
	for {
		_, err := dec.Token()
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return err
		}
	}
}

func isDecimal(b byte) bool {
	return b >= '0' && b <= '9'
}

func isHex(b byte) bool {
	return isDecimal(b) || (b >= 'a' && b <= 'f') || (b >= 'A' && b <= 'F')
}

func isNameByte(b byte) bool {
	return b >= 'a' && b <= 'z' || b >= 'A' && b <= 'Z' || isDecimal(b) ||
		b == '.' || b == '-' || b == '_' || b == ':' || b >= 0x80
}
