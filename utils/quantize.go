// SPDX-License-Identifier: EPL-2.0

package utils

import (
	"errors"
	"fmt"
	"math"
	"strings"
)

// Rounding selects how a scaled sample is turned into an integer.
type Rounding int

const (
	// Truncate drops the fractional part (toward zero). The WAV encoder uses
	// it unless told otherwise.
	Truncate Rounding = iota
	// RoundNearest rounds half away from zero.
	RoundNearest
)

func (r Rounding) String() string {
	switch r {
	case Truncate:
		return "truncate"
	case RoundNearest:
		return "nearest"
	default:
		return "unknown"
	}
}

// ErrUnknownRounding is returned by ParseRounding.
var ErrUnknownRounding = errors.New("unknown rounding mode")

// ParseRounding accepts the names produced by Rounding.String. An empty name
// selects Truncate.
func ParseRounding(name string) (Rounding, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "truncate":
		return Truncate, nil
	case "nearest":
		return RoundNearest, nil
	default:
		return Truncate, fmt.Errorf("%w: %q", ErrUnknownRounding, name)
	}
}

const (
	negScale = 32768.0
	posScale = 32767.0
)

// QuantizeInt16 clamps x to [-1, 1] and scales it to a signed 16-bit sample.
//
// Negative values are scaled by 32768 and non-negative values by 32767, so
// -1.0 maps to math.MinInt16 and 1.0 maps to math.MaxInt16. NaN maps to 0.
func QuantizeInt16(x float32, r Rounding) int16 {
	if math.IsNaN(float64(x)) {
		return 0
	}

	if x > 1 {
		x = 1
	} else if x < -1 {
		x = -1
	}

	var scaled float64
	if x < 0 {
		scaled = float64(x) * negScale
	} else {
		scaled = float64(x) * posScale
	}

	if r == RoundNearest {
		return int16(math.Round(scaled))
	}

	// Truncation sees the product in single precision, so products just
	// below an integer that round up to it in float32 yield that integer.
	return int16(float32(scaled))
}

// Float32ToInt16 quantizes with truncation.
func Float32ToInt16(x float32) int16 {
	return QuantizeInt16(x, Truncate)
}
