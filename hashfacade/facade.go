// Package hashfacade adapts the generic tokenstore core to string hashes
// and nullable-string values — the default configuration described by
// §4.5. Parsing is strict base-10 signed 64-bit; an empty string is an
// absent hash, while a non-empty unparseable string is rejected and the
// Store façade reports InvalidInput for it.
package hashfacade

import (
	"strconv"

	"github.com/ledgerwatch/tokenstore/tokenstore"
)

// ParseHash parses s into an optional 64-bit hash. An empty string yields
// (nil, true) — "absent hash" is not an error. A non-empty string that
// fails strict base-10 parsing yields (nil, false), letting the caller
// report InvalidInput.
func ParseHash(s string) (*tokenstore.Hash, bool) {
	if s == "" {
		return nil, true
	}
	v, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return nil, false
	}
	h := tokenstore.Hash(v)
	return &h, true
}

// FormatHash stringifies an optional hash, rendering nil as "".
func FormatHash(h *tokenstore.Hash) string {
	if h == nil {
		return ""
	}
	return strconv.FormatInt(*h, 10)
}

// Value is the nullable string value type the default façade
// instantiates the core with. A nil Value is the façade's null.
type Value = *string

// StringEqual implements byte-exact equality over nullable strings: both
// nil, or both non-nil and identical, are equal.
func StringEqual(a, b Value) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}

// Str wraps a plain string as a non-null Value.
func Str(s string) Value {
	v := s
	return &v
}

// StrOrEmpty dereferences v, returning "" for a null Value — used when the
// demo CLI needs a display string rather than the raw optional.
func StrOrEmpty(v Value) string {
	if v == nil {
		return ""
	}
	return *v
}
