// Copyright (C) 2025 Michael J. Fromberger. All Rights Reserved.

package jedit

import (
	"fmt"
	"math"
	"strconv"
)

// AppendNumber appends the JSON representation of a numeric Go value to buf.
// Integer types render in decimal; floating-point values use the shortest
// representation that round-trips, with exponent notation outside a readable
// magnitude range. Non-finite values and non-numeric types are an error.
func AppendNumber(buf []byte, v any) ([]byte, error) {
	switch t := v.(type) {
	case int:
		return strconv.AppendInt(buf, int64(t), 10), nil
	case int32:
		return strconv.AppendInt(buf, int64(t), 10), nil
	case int64:
		return strconv.AppendInt(buf, t, 10), nil
	case uint:
		return strconv.AppendUint(buf, uint64(t), 10), nil
	case uint32:
		return strconv.AppendUint(buf, uint64(t), 10), nil
	case uint64:
		return strconv.AppendUint(buf, t, 10), nil
	case float32:
		return appendFloat(buf, float64(t))
	case float64:
		return appendFloat(buf, t)
	default:
		return nil, fmt.Errorf("non-numeric type %T", v)
	}
}

func appendFloat(buf []byte, f float64) ([]byte, error) {
	if math.IsInf(f, 0) || math.IsNaN(f) {
		return nil, fmt.Errorf("unsupported value %v", f)
	}
	abs := math.Abs(f)
	format := byte('f')
	if abs != 0 && (abs < 1e-6 || abs >= 1e21) {
		format = 'e'
	}
	buf = strconv.AppendFloat(buf, f, format, -1, 64)
	if format == 'e' {
		// Clean up e-09 to e-9.
		if n := len(buf); n >= 4 && buf[n-4] == 'e' && buf[n-3] == '-' && buf[n-2] == '0' {
			buf[n-2] = buf[n-1]
			buf = buf[:n-1]
		}
	}
	return buf, nil
}
