package safe

import (
	"math"
	"testing"
)

func expectPanic(t *testing.T, name string, fn func()) {
	t.Helper()
	defer func() {
		if recover() == nil {
			t.Errorf("%s: expected panic", name)
		}
	}()
	fn()
}

func TestAdd(t *testing.T) {
	if got := Add(2, 3); got != 5 {
		t.Errorf("Add(2,3) = %d", got)
	}
	expectPanic(t, "add overflow", func() { Add(math.MaxInt64, 1) })
	expectPanic(t, "add underflow", func() { Add(math.MinInt64, -1) })
}

func TestSub(t *testing.T) {
	if got := Sub(2, 3); got != -1 {
		t.Errorf("Sub(2,3) = %d", got)
	}
	expectPanic(t, "sub underflow", func() { Sub(math.MinInt64, 1) })
}

func TestMul(t *testing.T) {
	if got := Mul(6, 7); got != 42 {
		t.Errorf("Mul(6,7) = %d", got)
	}
	if got := Mul(0, math.MaxInt64); got != 0 {
		t.Errorf("Mul(0,max) = %d", got)
	}
	expectPanic(t, "mul overflow", func() { Mul(math.MaxInt64, 2) })
	expectPanic(t, "mul negative overflow", func() { Mul(math.MinInt64, 2) })
}

func TestDiv(t *testing.T) {
	if got := Div(10, 3); got != 3 {
		t.Errorf("Div(10,3) = %d", got)
	}
	expectPanic(t, "div by zero", func() { Div(1, 0) })
	expectPanic(t, "div overflow", func() { Div(math.MinInt64, -1) })
}
