package models

import "strings"

// Label is the sentiment class attached to a record.
type Label int

const (
	// LabelDiscard marks a record whose trailing field is not a known label.
	LabelDiscard Label = iota
	// LabelPositive is the literal "1".
	LabelPositive
	// LabelNegative is the literal "-1".
	LabelNegative
)

// Labels lists the labels that survive the record filter, in output order.
var Labels = []Label{LabelPositive, LabelNegative}

// IsTrimmable reports whether r is stripped from the ends of records, labels
// and stopwords: every rune up to and including the ASCII space, control
// characters included. Other Unicode whitespace is kept.
func IsTrimmable(r rune) bool {
	return r <= ' '
}

// Trim removes leading and trailing runes matched by IsTrimmable.
func Trim(s string) string {
	return strings.TrimFunc(s, IsTrimmable)
}

// ParseLabel maps the trailing field of a record to a Label.
// Only the exact literals "1" and "-1" (after trimming) are recognised.
func ParseLabel(s string) Label {
	switch Trim(s) {
	case "1":
		return LabelPositive
	case "-1":
		return LabelNegative
	default:
		return LabelDiscard
	}
}

// String returns the literal form of the label as it appears in the input.
func (l Label) String() string {
	switch l {
	case LabelPositive:
		return "1"
	case LabelNegative:
		return "-1"
	default:
		return "discard"
	}
}

// Valid reports whether l is Positive or Negative.
func (l Label) Valid() bool {
	return l == LabelPositive || l == LabelNegative
}
