package handler

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"strings"

	"github.com/spf13/cast"
)

// Int is an integer accepted as json number or numeric string.
// null and "" decode to 0. Strings are read in base 10, fractions and values
// outside the int64 range are rejected.
type Int int

// UnmarshalJSON implements json.Unmarshaler.
func (i *Int) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	var v any
	if err := dec.Decode(&v); err != nil {
		return err
	}

	var num json.Number

	switch t := v.(type) {
	case nil:
		*i = 0
		return nil
	case json.Number:
		num = t
	case string:
		s := strings.TrimSpace(t)
		if s == "" {
			*i = 0
			return nil
		}

		num = json.Number(s)
	default:
		return fmt.Errorf("%w: %s", ErrInvalidNumber, data)
	}

	n, err := toInt(num)
	if err != nil {
		return fmt.Errorf("%w: %s", ErrInvalidNumber, data)
	}

	*i = Int(n)

	return nil
}

// toInt converts num without truncating or wrapping around.
func toInt(num json.Number) (int, error) {
	if n, err := num.Int64(); err == nil {
		return cast.ToIntE(n)
	}

	f, err := num.Float64()
	if err != nil {
		return 0, err
	}

	if math.IsNaN(f) || math.IsInf(f, 0) || f != math.Trunc(f) ||
		f < math.MinInt64 || f >= math.MaxInt64 {
		return 0, ErrInvalidNumber
	}

	return cast.ToIntE(f)
}

// Truthy is a flag decoded with javascript truthiness:
// false, 0, "" and null are false, every other value is true.
type Truthy bool

// UnmarshalJSON implements json.Unmarshaler.
func (b *Truthy) UnmarshalJSON(data []byte) error {
	var v any
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}

	switch t := v.(type) {
	case nil:
		*b = false
	case bool:
		*b = Truthy(t)
	case float64:
		*b = t != 0
	case string:
		*b = t != ""
	default:
		*b = true
	}

	return nil
}

// ScalarString converts a decoded json scalar to its string form.
// Objects and arrays are rejected.
func ScalarString(v any) (string, bool) {
	switch t := v.(type) {
	case nil:
		return "", true
	case map[string]any, []any:
		return "", false
	case json.Number:
		return t.String(), true
	default:
		s, err := cast.ToStringE(t)
		if err != nil {
			return "", false
		}

		return s, true
	}
}
