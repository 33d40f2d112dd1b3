// Package numbering renders canonical reference numbers for auto-numbered documents.
package numbering

import (
	"fmt"

	"docregistry/internal/model"
)

// DefaultPrefix is the institutional code placed in front of every reference number.
const DefaultPrefix = "CNDES"

// TypeCode returns the short code used in reference numbers, or "" for types that are not
// auto-numbered.
func TypeCode(t model.DocumentType) string {
	switch t {
	case model.TypeSalida:
		return "SAL"
	case model.TypeInterno:
		return "INT"
	}
	return ""
}

// Format renders PREFIX/TYPECODE/YEAR/SEQ with SEQ zero-padded to three digits.
// It returns "" for types without a type code.
func Format(prefix string, t model.DocumentType, seq, year int) string {
	code := TypeCode(t)
	if code == "" {
		return ""
	}
	return fmt.Sprintf("%s/%s/%d/%03d", prefix, code, year, seq)
}

// FormatOrder renders a document id (order number) zero-padded to three digits.
func FormatOrder(n int) string {
	return fmt.Sprintf("%03d", n)
}
