package object

// String is a length-prefixed mutable byte sequence. Writing a
// non-character value into a String slot upgrades it in place to a
// general Array; Upgraded holds that array once the upgrade has
// happened, and String becomes a thin shell so existing references to
// the original Value keep seeing the upgraded contents.
type String struct {
	bytes    []byte
	upgraded *Array
}

func (*String) Type() string { return "STRING" }
func (*String) isValue()     {}

// NewString allocates a mutable string from s.
func NewString(s string) *String {
	return &String{bytes: []byte(s)}
}

// NewStringFromBytes takes ownership of b.
func NewStringFromBytes(b []byte) *String {
	return &String{bytes: b}
}

// IsUpgraded reports whether a non-character write has promoted this
// string to array storage.
func (s *String) IsUpgraded() bool { return s.upgraded != nil }

// AsArray returns the backing array, upgrading from byte storage on
// first call. Once upgraded, Len/Ref/Set/Bytes all delegate to the
// array so every accessor sees a single consistent view.
func (s *String) AsArray() *Array {
	if s.upgraded == nil {
		s.upgraded = &Array{Slots: arrayFromCharacters(s.bytes)}
	}
	return s.upgraded
}

// Len returns the element count.
func (s *String) Len() int {
	if s.upgraded != nil {
		return s.upgraded.Len()
	}
	return len(s.bytes)
}

// Ref returns the element at i: a Character while still byte-backed,
// or whatever Value was stored there after an upgrade.
func (s *String) Ref(i int) (Value, bool) {
	if s.upgraded != nil {
		return s.upgraded.Ref(i)
	}
	if i < 0 || i >= len(s.bytes) {
		return nil, false
	}
	return Character(s.bytes[i]), true
}

// Set stores v at i. If v is not a Character and the string is still
// byte-backed, this upgrades to array storage first so the new value
// can be stored without truncation.
func (s *String) Set(i int, v Value) bool {
	if s.upgraded == nil {
		if ch, ok := v.(Character); ok {
			if i < 0 || i >= len(s.bytes) {
				return false
			}
			s.bytes[i] = byte(ch)
			return true
		}
		s.AsArray()
	}
	return s.upgraded.Set(i, v)
}

// Bytes returns the raw byte contents. Valid only while not upgraded;
// callers (e.g. the printer, string built-ins) must check IsUpgraded
// first.
func (s *String) Bytes() []byte { return s.bytes }

// GoString renders the current byte-backed contents as a Go string.
// Must not be called after an upgrade.
func (s *String) GoString() string { return string(s.bytes) }
