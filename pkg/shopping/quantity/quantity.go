// Package quantity holds the amount attached to a shopping item: either a number
// ("2") or free text ("a pinch").
package quantity

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"
)

var plainNumber = regexp.MustCompile(`^\d+(\.\d+)?$`)

// sumScale is the precision numeric merges are rounded to (six decimal places).
const sumScale = 1e6

// Quantity is a tagged number-or-text value. The zero value is an empty text quantity.
type Quantity struct {
	number  float64
	text    string
	numeric bool
}

// Default is the quantity used when the caller does not give one.
var Default = Number(1)

func Number(v float64) Quantity {
	return Quantity{number: v, numeric: true}
}

// Text builds a free-text quantity. Text that is a plain decimal number becomes
// numeric, so "2" and 2 are the same quantity after a storage round-trip.
func Text(s string) Quantity {
	s = strings.TrimSpace(s)
	if plainNumber.MatchString(s) {
		if v, err := strconv.ParseFloat(s, 64); err == nil {
			return Number(v)
		}
	}
	return Quantity{text: s}
}

func (q Quantity) IsNumeric() bool {
	return q.numeric
}

// Float returns the numeric value and whether the quantity is numeric.
func (q Quantity) Float() (float64, bool) {
	return q.number, q.numeric
}

func (q Quantity) IsEmpty() bool {
	return !q.numeric && q.text == ""
}

func (q Quantity) String() string {
	if q.numeric {
		return strconv.FormatFloat(q.number, 'f', -1, 64)
	}
	return q.text
}

func (q Quantity) Equal(other Quantity) bool {
	if q.numeric != other.numeric {
		return false
	}
	if q.numeric {
		return q.number == other.number
	}
	return q.text == other.text
}

// Merge combines an incoming quantity into an existing one. A quantity of 1 is the
// "nothing specified" default and is transparent on either side: an empty or 1
// incoming value keeps the existing one, and an empty or 1 existing value adopts the
// incoming one. Past that, two numbers are summed (rounded to six decimals), identical text stays as it is,
// and anything else is joined as "<existing> + <incoming>".
func Merge(existing, incoming Quantity) Quantity {
	ex, in := existing.String(), incoming.String()
	switch {
	case in == "" || in == "1":
		return existing
	case ex == "" || ex == "1":
		return incoming
	case existing.numeric && incoming.numeric:
		return Number(roundSum(existing.number + incoming.number))
	case ex == in:
		return existing
	default:
		return Quantity{text: ex + " + " + in}
	}
}

// roundSum drops float artifacts such as 0.1+0.2 = 0.30000000000000004.
func roundSum(v float64) float64 {
	return math.Round(v*sumScale) / sumScale
}

func (q Quantity) MarshalJSON() ([]byte, error) {
	if q.numeric {
		return []byte(q.String()), nil
	}
	return json.Marshal(q.text)
}

func (q *Quantity) UnmarshalJSON(data []byte) error {
	var raw interface{}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	switch v := raw.(type) {
	case float64:
		*q = Number(v)
	case string:
		*q = Text(v)
	case nil:
		*q = Quantity{}
	default:
		return fmt.Errorf("quantity must be a number or a string, got %s", string(data))
	}
	return nil
}

func (q Quantity) Value() (driver.Value, error) {
	return q.String(), nil
}

func (q *Quantity) Scan(src interface{}) error {
	switch v := src.(type) {
	case nil:
		*q = Quantity{}
	case string:
		*q = Text(v)
	case []byte:
		*q = Text(string(v))
	case int64:
		*q = Number(float64(v))
	case float64:
		*q = Number(v)
	default:
		return fmt.Errorf("cannot scan %T into quantity", src)
	}
	return nil
}
