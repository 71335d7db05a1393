package models

import (
	"fmt"
	"strconv"
	"strings"

	"p9e.in/netzero/pkg/carbon"
)

// Amount accepts either a JSON number or a numeric string, since spreadsheet
// imports deliver every cell as text.
type Amount string

func (a *Amount) UnmarshalJSON(b []byte) error {
	s := strings.Trim(string(b), `"`)
	*a = Amount(strings.TrimSpace(s))
	return nil
}

func (a Amount) String() string {
	return string(a)
}

// NonNegative parses the amount, rejecting non-numeric and negative values.
// Negative amounts are never coerced with abs(): a sign inversion is a
// data-entry error the caller has to see.
func (a Amount) NonNegative() (float64, error) {
	s := string(a)
	if s == "" {
		return 0, fmt.Errorf("%w: amount is required", carbon.ErrInvalidInput)
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: amount %q is not numeric", carbon.ErrInvalidInput, s)
	}
	if v < 0 {
		return 0, fmt.Errorf("%w: amount %q is negative", carbon.ErrInvalidInput, s)
	}
	return v, nil
}
