package signal

import (
	"encoding/json"
	"strconv"
	"strings"
)

// looseNumber accepts 3, 2.5 and "3" alike. Anything else reads as absent
// instead of failing the whole payload.
type looseNumber struct{ v *float64 }

func (n *looseNumber) UnmarshalJSON(b []byte) error {
	if string(b) == "null" {
		return nil
	}
	var f float64
	if err := json.Unmarshal(b, &f); err == nil {
		n.v = &f
		return nil
	}
	var s string
	if err := json.Unmarshal(b, &s); err == nil {
		if f, err := strconv.ParseFloat(strings.TrimSpace(s), 64); err == nil {
			n.v = &f
		}
	}
	return nil
}

// looseBool only takes the literals true and false.
type looseBool struct{ v *bool }

func (p *looseBool) UnmarshalJSON(b []byte) error {
	if string(b) == "null" {
		return nil
	}
	var v bool
	if err := json.Unmarshal(b, &v); err == nil {
		p.v = &v
	}
	return nil
}
