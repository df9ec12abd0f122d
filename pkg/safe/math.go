package safe

import "math"

// Overflow-checked int64 arithmetic. The book math never works with
// values anywhere near the int64 range, so an overflow here is a bug;
// panicking surfaces it instead of silently corrupting a displayed value.

// Add returns a+b, panicking on overflow.
func Add(a, b int64) int64 {
	if (b > 0 && a > math.MaxInt64-b) || (b < 0 && a < math.MinInt64-b) {
		panic("safe: add overflow")
	}
	return a + b
}

// Sub returns a-b, panicking on overflow.
func Sub(a, b int64) int64 {
	if (b > 0 && a < math.MinInt64+b) || (b < 0 && a > math.MaxInt64+b) {
		panic("safe: sub overflow")
	}
	return a - b
}

// Mul returns a*b, panicking on overflow.
func Mul(a, b int64) int64 {
	if a == 0 || b == 0 {
		return 0
	}
	if a > 0 {
		if b > 0 {
			if a > math.MaxInt64/b {
				panic("safe: mul overflow")
			}
		} else if b < math.MinInt64/a {
			panic("safe: mul overflow")
		}
	} else {
		if b > 0 {
			if a < math.MinInt64/b {
				panic("safe: mul overflow")
			}
		} else if a < math.MaxInt64/b {
			panic("safe: mul overflow")
		}
	}
	return a * b
}

// Div returns a/b, panicking on division by zero and on the lone
// overflowing case MinInt64 / -1.
func Div(a, b int64) int64 {
	if b == 0 {
		panic("safe: div by zero")
	}
	if a == math.MinInt64 && b == -1 {
		panic("safe: div overflow")
	}
	return a / b
}
