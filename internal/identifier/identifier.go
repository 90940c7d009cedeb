// Package identifier validates user identifiers before they are used as
// document store lookup keys.
package identifier

import "errors"

// Length is the number of hexadecimal characters in a user identifier.
const Length = 24

// ErrInvalid is returned by Validate for malformed identifiers.
var ErrInvalid = errors.New("user id must be 24 hexadecimal characters")

// Valid reports whether id is exactly 24 hexadecimal characters (any case).
func Valid(id string) bool {
	if len(id) != Length {
		return false
	}

	for i := 0; i < len(id); i++ {
		if !isHex(id[i]) {
			return false
		}
	}

	return true
}

// Validate is Valid in the shape expected by interactive prompts.
func Validate(id string) error {
	if !Valid(id) {
		return ErrInvalid
	}
	return nil
}

func isHex(c byte) bool {
	switch {
	case c >= '0' && c <= '9':
		return true
	case c >= 'a' && c <= 'f':
		return true
	case c >= 'A' && c <= 'F':
		return true
	default:
		return false
	}
}
