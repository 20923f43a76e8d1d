package models

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// GuestCount is an optional non-negative head count. Form clients send it as
// either a JSON number or a numeric string; empty strings and null mean absent.
// Set records that the key was sent at all, so an explicit null can clear a
// stored count.
type GuestCount struct {
	N     int
	Valid bool
	Set   bool
}

// Guests builds a present GuestCount.
func Guests(n int) GuestCount {
	return GuestCount{N: n, Valid: true, Set: true}
}

func (g *GuestCount) UnmarshalJSON(data []byte) error {
	raw, absent, err := unquoteNumber(data)
	if err != nil {
		return fmt.Errorf("guest count: %w", err)
	}
	if absent {
		*g = GuestCount{Set: true}
		return nil
	}
	f, err := strconv.ParseFloat(raw, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return fmt.Errorf("guest count must be a whole number, got %q", raw)
	}
	if f != math.Trunc(f) {
		return fmt.Errorf("guest count must be a whole number, got %q", raw)
	}
	if f < 0 {
		return fmt.Errorf("guest count must not be negative, got %q", raw)
	}
	if f > math.MaxInt32 {
		return fmt.Errorf("guest count too large: %q", raw)
	}
	*g = GuestCount{N: int(f), Valid: true, Set: true}
	return nil
}

func (g GuestCount) MarshalJSON() ([]byte, error) {
	if !g.Valid {
		return []byte("null"), nil
	}
	return []byte(strconv.Itoa(g.N)), nil
}

// Ptr returns nil for an absent count.
func (g GuestCount) Ptr() *int {
	if !g.Valid {
		return nil
	}
	n := g.N
	return &n
}

// Amount is an optional monetary amount in major currency units, accepted as a
// JSON number or numeric string.
type Amount struct {
	Value float64
	Valid bool
}

func (a *Amount) UnmarshalJSON(data []byte) error {
	raw, absent, err := unquoteNumber(data)
	if err != nil {
		return fmt.Errorf("amount: %w", err)
	}
	if absent {
		*a = Amount{}
		return nil
	}
	f, err := strconv.ParseFloat(raw, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return fmt.Errorf("amount must be numeric, got %q", raw)
	}
	*a = Amount{Value: f, Valid: true}
	return nil
}

func (a Amount) MarshalJSON() ([]byte, error) {
	if !a.Valid {
		return []byte("null"), nil
	}
	return json.Marshal(a.Value)
}

// unquoteNumber returns the textual number in data, or absent for null / "".
func unquoteNumber(data []byte) (string, bool, error) {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		return "", true, nil
	}
	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return "", false, err
		}
		s = strings.TrimSpace(s)
		if s == "" {
			return "", true, nil
		}
		return s, false, nil
	}
	if data[0] == '{' || data[0] == '[' || data[0] == 't' || data[0] == 'f' {
		return "", false, fmt.Errorf("expected a number, got %s", string(data))
	}
	return string(data), false, nil
}
