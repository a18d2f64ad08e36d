package jsonutil

import (
	"fmt"
	"math"
	"strconv"
)

// StringValue coerces a decoded JSON value (string, number, bool, nil) to a
// string. Both upstream sources are duck-typed, so numeric fields routinely
// arrive as strings and vice versa.
func StringValue(v any) string {
	switch val := v.(type) {
	case nil:
		return ""
	case string:
		return val
	case float64:
		if val == math.Trunc(val) {
			return strconv.FormatInt(int64(val), 10)
		}
		return strconv.FormatFloat(val, 'g', -1, 64)
	case bool:
		return strconv.FormatBool(val)
	default:
		return fmt.Sprintf("%v", val)
	}
}

// IntValue coerces a decoded JSON value to an int. Unparsable values become 0.
func IntValue(v any) int {
	switch val := v.(type) {
	case float64:
		return int(val)
	case string:
		n, err := strconv.Atoi(val)
		if err != nil {
			return 0
		}
		return n
	case bool:
		if val {
			return 1
		}
		return 0
	default:
		return 0
	}
}

// FloatValue coerces a decoded JSON value to a float64. Unparsable values
// become 0.
func FloatValue(v any) float64 {
	switch val := v.(type) {
	case float64:
		return val
	case string:
		f, err := strconv.ParseFloat(val, 64)
		if err != nil {
			return 0
		}
		return f
	default:
		return 0
	}
}
