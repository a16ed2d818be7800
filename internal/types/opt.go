package types

import "log/slog"

// Opt is an optional string value.
// The zero value is an absent value, which is distinct from a present empty string.
type Opt struct {
	val string
	ok  bool
}

// Some returns a present value.
func Some(v string) Opt { return Opt{v, true} }

// None returns an absent value.
func None() Opt { return Opt{} }

// OptOf returns a present value when ok is true, otherwise an absent value.
func OptOf(v string, ok bool) Opt {
	if !ok {
		return Opt{}
	}
	return Opt{v, true}
}

// Get returns the value and whether it is present.
func (o Opt) Get() (string, bool) { return o.val, o.ok }

// IsSet reports whether the value is present.
func (o Opt) IsSet() bool { return o.ok }

// Or returns the value if present, otherwise def.
func (o Opt) Or(def string) string {
	if !o.ok {
		return def
	}
	return o.val
}

// String returns the value, or an empty string for an absent value.
func (o Opt) String() string { return o.val }

// GoString marks absent values explicitly.
func (o Opt) GoString() string {
	if !o.ok {
		return "<none>"
	}
	return "Some(" + o.val + ")"
}

// LogValue implements [slog.LogValuer].
func (o Opt) LogValue() slog.Value {
	if !o.ok {
		return slog.AnyValue(nil)
	}
	return slog.StringValue(o.val)
}
