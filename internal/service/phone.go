package service

import (
	"regexp"
	"strings"
	"unicode"
)

// Optional +256, 256 or 0 prefix followed by the 9-digit subscriber number.
var phonePattern = regexp.MustCompile(`^(\+256|256|0)?([0-9]{9})$`)

// NormalizePhoneNumber validates a Ugandan mobile number and returns it in
// +256XXXXXXXXX form. Whitespace anywhere in the input is ignored.
func NormalizePhoneNumber(raw string) (string, error) {
	compact := strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}
		return r
	}, raw)

	m := phonePattern.FindStringSubmatch(compact)
	if m == nil {
		return "", ErrInvalidPhoneNumber
	}
	return "+256" + m[2], nil
}
