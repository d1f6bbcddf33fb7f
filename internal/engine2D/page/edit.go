package page

import (
	"unicode"
	"unicode/utf8"

	"ambient-portfolio/internal/contact"
)

// MaxFieldLength bounds what can be typed into one input.
const MaxFieldLength = 5000

// InsertRune appends a typed character. Control characters other than a
// newline are dropped, as is anything past MaxFieldLength.
func InsertRune(value string, r rune) string {
	if r != '\n' && unicode.IsControl(r) {
		return value
	}
	if utf8.RuneCountInString(value) >= MaxFieldLength {
		return value
	}
	return value + string(r)
}

// DeleteLast removes the final character.
func DeleteLast(value string) string {
	if value == "" {
		return value
	}
	_, size := utf8.DecodeLastRuneInString(value)
	return value[:len(value)-size]
}

// NextField moves focus through the form, wrapping at either end. From no
// focus it starts at the first or last field.
func NextField(f contact.Field, back bool) contact.Field {
	const n = int(contact.FieldMessage) + 1
	if f == NoFocus {
		if back {
			return contact.FieldMessage
		}
		return contact.FieldName
	}
	step := 1
	if back {
		step = n - 1
	}
	return contact.Field((int(f) + step) % n)
}

// Multiline reports whether Enter inserts a newline rather than advancing.
func Multiline(f contact.Field) bool {
	return f == contact.FieldMessage
}
