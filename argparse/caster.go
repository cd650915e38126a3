package argparse

import (
	"encoding"
	"fmt"
	"strconv"
)

// Cast converts a raw command-line token into a T using the built-in
// casting rules. It is exported so custom casters installed with CastUsing
// can delegate to the default behavior for part of their input.
//
// Built-in rules: bool accepts the literals "true" and "false" only;
// integer and float types parse the full token in base 10 (trailing
// garbage fails); string is the identity. Any other T is tried through
// encoding.TextUnmarshaler (on *T) and fails otherwise.
func Cast[T any](token string) (T, error) {
	var out T
	switch p := any(&out).(type) {
	case *string:
		*p = token
	case *bool:
		switch token {
		case "true":
			*p = true
		case "false":
			*p = false
		default:
			return out, fmt.Errorf("invalid boolean literal %q (accepts true or false)", token)
		}
	case *int:
		v, err := strconv.ParseInt(token, 10, 0)
		if err != nil {
			return out, err
		}
		*p = int(v)
	case *int8:
		v, err := strconv.ParseInt(token, 10, 8)
		if err != nil {
			return out, err
		}
		*p = int8(v)
	case *int16:
		v, err := strconv.ParseInt(token, 10, 16)
		if err != nil {
			return out, err
		}
		*p = int16(v)
	case *int32:
		v, err := strconv.ParseInt(token, 10, 32)
		if err != nil {
			return out, err
		}
		*p = int32(v)
	case *int64:
		v, err := strconv.ParseInt(token, 10, 64)
		if err != nil {
			return out, err
		}
		*p = v
	case *uint:
		v, err := strconv.ParseUint(token, 10, 0)
		if err != nil {
			return out, err
		}
		*p = uint(v)
	case *uint8:
		v, err := strconv.ParseUint(token, 10, 8)
		if err != nil {
			return out, err
		}
		*p = uint8(v)
	case *uint16:
		v, err := strconv.ParseUint(token, 10, 16)
		if err != nil {
			return out, err
		}
		*p = uint16(v)
	case *uint32:
		v, err := strconv.ParseUint(token, 10, 32)
		if err != nil {
			return out, err
		}
		*p = uint32(v)
	case *uint64:
		v, err := strconv.ParseUint(token, 10, 64)
		if err != nil {
			return out, err
		}
		*p = v
	case *float32:
		v, err := strconv.ParseFloat(token, 32)
		if err != nil {
			return out, err
		}
		*p = float32(v)
	case *float64:
		v, err := strconv.ParseFloat(token, 64)
		if err != nil {
			return out, err
		}
		*p = v
	default:
		if u, ok := any(&out).(encoding.TextUnmarshaler); ok {
			if err := u.UnmarshalText([]byte(token)); err != nil {
				return out, err
			}
			return out, nil
		}
		return out, fmt.Errorf("type %T has no built-in caster", out)
	}
	return out, nil
}
