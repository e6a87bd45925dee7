package domain

import "unique"

// InternedString is a path or tag stored once per process.
// Every import of a shared module yields the same identity, so equal strings share one handle
// and compare by pointer. The zero value is the empty string.
type InternedString struct {
	h unique.Handle[string]
}

// NewInternedString interns s.
func NewInternedString(s string) InternedString {
	return InternedString{h: unique.Make(s)}
}

// IsZero reports whether the value was never set.
func (is InternedString) IsZero() bool {
	return is.h == unique.Handle[string]{}
}

// String returns the interned text, or "" for the zero value.
func (is InternedString) String() string {
	if is.IsZero() {
		return ""
	}
	return is.h.Value()
}

// MarshalText implements encoding.TextMarshaler.
func (is InternedString) MarshalText() ([]byte, error) {
	return []byte(is.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (is *InternedString) UnmarshalText(text []byte) error {
	*is = NewInternedString(string(text))
	return nil
}
