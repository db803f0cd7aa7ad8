// SPDX-License-Identifier: GPL-3.0-or-later

package hydro

import (
	"fmt"
	"math"
)

// integerValue converts a raw command value into an integer.
//
// Command values (valve positions, pump speeds) arrive from the
// control layer as untyped numbers, so the integer contract is checked
// at runtime: a value carrying a fractional part, a NaN, or an
// infinity fails with [ErrTypeMismatch]. The value is never truncated
// or rounded.
func integerValue(value float64) (int, error) {
	if math.IsNaN(value) || math.IsInf(value, 0) || math.Trunc(value) != value {
		return 0, fmt.Errorf("%w: got %v", ErrTypeMismatch, value)
	}
	return int(value), nil
}
