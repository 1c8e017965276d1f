package shared

import "bytes"

// Money is a fixed-point amount kept in its decimal text form. It is written
// as a JSON string and accepts either a string or a number on input.
type Money string

var errMoneyFormat = &FormatError{Detail: "A valid number is required."}

// UnmarshalJSON accepts "12.50" and 12.5 alike.
func (m *Money) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) == 0 {
		return errMoneyFormat
	}
	if b[0] == '"' {
		if len(b) < 2 || b[len(b)-1] != '"' {
			return errMoneyFormat
		}
		*m = Money(b[1 : len(b)-1])
		return nil
	}
	for _, c := range b {
		if (c < '0' || c > '9') && c != '.' && c != '-' {
			return errMoneyFormat
		}
	}
	*m = Money(b)
	return nil
}

// MoneyPtr converts a nullable text column into a *Money.
func MoneyPtr(s *string) *Money {
	if s == nil {
		return nil
	}
	m := Money(*s)
	return &m
}
