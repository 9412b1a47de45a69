package handlers

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// looseString accepts a JSON string or number. Request bodies from the
// original clients send case numbers both quoted and bare.
type looseString string

func (s *looseString) UnmarshalJSON(b []byte) error {
	if string(b) == "null" {
		return nil
	}
	var str string
	if err := json.Unmarshal(b, &str); err == nil {
		*s = looseString(str)
		return nil
	}
	var num json.Number
	if err := json.Unmarshal(b, &num); err == nil {
		*s = looseString(num.String())
		return nil
	}
	return fmt.Errorf("expected string or number, got %s", string(b))
}

// looseInt accepts a JSON number or a numeral-as-text.
type looseInt int64

func (n *looseInt) UnmarshalJSON(b []byte) error {
	if string(b) == "null" {
		return nil
	}
	var num json.Number
	if err := json.Unmarshal(b, &num); err == nil {
		v, err := num.Int64()
		if err != nil {
			return fmt.Errorf("expected integer, got %s", num.String())
		}
		*n = looseInt(v)
		return nil
	}
	var str string
	if err := json.Unmarshal(b, &str); err == nil {
		v, err := strconv.ParseInt(strings.TrimSpace(str), 10, 64)
		if err != nil {
			return fmt.Errorf("expected integer, got %q", str)
		}
		*n = looseInt(v)
		return nil
	}
	return fmt.Errorf("expected integer, got %s", string(b))
}

// value returns the carried int64, or nil when the field was absent.
func (n *looseInt) value() *int64 {
	if n == nil {
		return nil
	}
	v := int64(*n)
	return &v
}
