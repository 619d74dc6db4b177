package models

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// FlexInt is an integer that can be unmarshaled from a JSON number or from the
// leaderboard strings the scores feed uses ("T3", "+2", "-7", "E").
type FlexInt int

// UnmarshalJSON implements json.Unmarshaler for FlexInt
func (f *FlexInt) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		return fmt.Errorf("FlexInt: value is null")
	}

	var n json.Number
	if err := json.Unmarshal(data, &n); err == nil {
		i, err := strconv.Atoi(n.String())
		if err != nil {
			return fmt.Errorf("FlexInt: %s is not an integer", n)
		}
		*f = FlexInt(i)
		return nil
	}

	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("FlexInt: cannot unmarshal %s", string(data))
	}
	i, err := ParseLeaderboardInt(s)
	if err != nil {
		return err
	}
	*f = FlexInt(i)
	return nil
}

// Int returns the value as a plain int
func (f FlexInt) Int() int {
	return int(f)
}

// ParseLeaderboardInt parses positions and to-par strings: a leading tie marker
// "T" and an explicit "+" are dropped, and "E" (even par) is zero.
func ParseLeaderboardInt(s string) (int, error) {
	v := strings.TrimSpace(s)
	if strings.EqualFold(v, "E") {
		return 0, nil
	}
	v = strings.TrimPrefix(v, "T")
	v = strings.TrimPrefix(v, "+")
	i, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("FlexInt: cannot parse %q", s)
	}
	return i, nil
}

// FlexString is a string type that can be unmarshaled from either a string or a number.
// Tiers come through as numbers from some feeds and as labels from others.
type FlexString string

// UnmarshalJSON implements json.Unmarshaler for FlexString
func (f *FlexString) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*f = ""
		return nil
	}

	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		*f = FlexString(s)
		return nil
	}

	var n json.Number
	if err := json.Unmarshal(data, &n); err == nil {
		*f = FlexString(n.String())
		return nil
	}

	return fmt.Errorf("FlexString: cannot unmarshal %s", string(data))
}

// String returns the string value
func (f FlexString) String() string {
	return string(f)
}
