package symbolic_test

import (
	"strings"
	"testing"

	"github.com/Dolyphin/continuum-mechanics/symbolic"
)

// ============================================================
// Num tests
// ============================================================

func TestNum_Integer(t *testing.T) {
	n := symbolic.N(42)
	if n.String() != "42" {
		t.Errorf("want 42, got %s", n.String())
	}
}

func TestNum_Rational(t *testing.T) {
	n := symbolic.F(1, 3)
	if n.String() != "1/3" {
		t.Errorf("want 1/3, got %s", n.String())
	}
}

func TestNum_LaTeX_Rational(t *testing.T) {
	n := symbolic.F(2, 5)
	if n.LaTeX() != `\frac{2}{5}` {
		t.Errorf("want \\frac{2}{5}, got %s", n.LaTeX())
	}
}

func TestNum_Diff_IsZero(t *testing.T) {
	result := symbolic.N(5).Diff("x")
	if symbolic.String(result) != "0" {
		t.Errorf("d/dx(5) should be 0, got %s", symbolic.String(result))
	}
}

// ============================================================
// Sym tests
// ============================================================

func TestSym_Sub_Match(t *testing.T) {
	x := symbolic.S("x")
	result := x.Sub("x", symbolic.N(3))
	if symbolic.String(result) != "3" {
		t.Errorf("want 3, got %s", symbolic.String(result))
	}
}

func TestSym_Diff(t *testing.T) {
	if got := symbolic.String(symbolic.S("x").Diff("x")); got != "1" {
		t.Errorf("d/dx(x) should be 1, got %s", got)
	}
	if got := symbolic.String(symbolic.S("y").Diff("x")); got != "0" {
		t.Errorf("d/dx(y) should be 0, got %s", got)
	}
}

func TestSymbols_Positive(t *testing.T) {
	syms := symbolic.Symbols("r theta", symbolic.Positive())
	if len(syms) != 2 || syms[0].Name() != "r" || syms[1].Name() != "theta" {
		t.Fatalf("unexpected symbols %v", syms)
	}
	if !syms[0].IsPositive() {
		t.Error("r should carry the positive assumption")
	}
	if symbolic.S("x").IsPositive() {
		t.Error("plain symbols are not positive")
	}
}

func TestSym_LaTeX_Greek(t *testing.T) {
	if got := symbolic.S("theta").LaTeX(); got != `\theta` {
		t.Errorf("want \\theta, got %s", got)
	}
}

// ============================================================
// Add / Mul tests
// ============================================================

func TestAdd_Simple(t *testing.T) {
	expr := symbolic.AddOf(symbolic.S("x"), symbolic.N(3))
	if symbolic.String(expr) != "x + 3" {
		t.Errorf("want 'x + 3', got %s", symbolic.String(expr))
	}
}

func TestAdd_CollapseToZero(t *testing.T) {
	x := symbolic.S("x")
	expr := symbolic.Minus(symbolic.MulOf(symbolic.N(2), x), symbolic.AddOf(x, x))
	if symbolic.String(expr) != "0" {
		t.Errorf("want 0, got %s", symbolic.String(expr))
	}
}

func TestAdd_LikeTerms(t *testing.T) {
	expr := symbolic.AddOf(symbolic.S("x"), symbolic.S("x"))
	if symbolic.String(expr) != "2*x" {
		t.Errorf("want '2*x', got %s", symbolic.String(expr))
	}
}

func TestMul_Simple(t *testing.T) {
	expr := symbolic.MulOf(symbolic.N(3), symbolic.S("x"))
	if symbolic.String(expr) != "3*x" {
		t.Errorf("want '3*x', got %s", symbolic.String(expr))
	}
}

func TestMul_ZeroCollapse(t *testing.T) {
	expr := symbolic.MulOf(symbolic.N(0), symbolic.S("x"))
	if symbolic.String(expr) != "0" {
		t.Errorf("0*x should be 0, got %s", symbolic.String(expr))
	}
}

func TestMul_MergesPowers(t *testing.T) {
	x := symbolic.S("x")
	if got := symbolic.String(symbolic.MulOf(x, x)); got != "x^2" {
		t.Errorf("x*x should be x^2, got %s", got)
	}
	if got := symbolic.String(symbolic.Quo(x, x)); got != "1" {
		t.Errorf("x/x should be 1, got %s", got)
	}
}

func TestMul_ProductRule(t *testing.T) {
	// d/dx(x * sin(x)) = sin(x) + x*cos(x)
	x := symbolic.S("x")
	d := symbolic.Diff(symbolic.MulOf(x, symbolic.SinOf(x)), "x")
	want := symbolic.AddOf(symbolic.SinOf(x), symbolic.MulOf(x, symbolic.CosOf(x)))
	if !symbolic.Equivalent(d, want) {
		t.Errorf("want %s, got %s", want, d)
	}
}

// ============================================================
// Pow tests
// ============================================================

func TestPow_Simple(t *testing.T) {
	expr := symbolic.PowOf(symbolic.S("x"), symbolic.N(2))
	if symbolic.String(expr) != "x^2" {
		t.Errorf("want x^2, got %s", symbolic.String(expr))
	}
}

func TestPow_ZeroAndOneExp(t *testing.T) {
	x := symbolic.S("x")
	if got := symbolic.String(symbolic.PowOf(x, symbolic.N(0))); got != "1" {
		t.Errorf("x^0 should be 1, got %s", got)
	}
	if got := symbolic.String(symbolic.PowOf(x, symbolic.N(1))); got != "x" {
		t.Errorf("x^1 should be x, got %s", got)
	}
}

func TestPow_NumericEval(t *testing.T) {
	if got := symbolic.String(symbolic.PowOf(symbolic.N(2), symbolic.N(3))); got != "8" {
		t.Errorf("2^3 should be 8, got %s", got)
	}
	if got := symbolic.String(symbolic.SqrtOf(symbolic.F(9, 4))); got != "3/2" {
		t.Errorf("sqrt(9/4) should be 3/2, got %s", got)
	}
	if got := symbolic.String(symbolic.PowOf(symbolic.N(2), symbolic.N(-2))); got != "1/4" {
		t.Errorf("2^-2 should be 1/4, got %s", got)
	}
}

func TestPow_SqrtOfSquareIsAbs(t *testing.T) {
	x := symbolic.S("x")
	r := symbolic.NewSymbol("r", symbolic.Positive())
	two := symbolic.N(2)
	if got := symbolic.String(symbolic.SqrtOf(symbolic.PowOf(x, two))); got != "abs(x)" {
		t.Errorf("sqrt(x^2) should be abs(x), got %s", got)
	}
	if got := symbolic.String(symbolic.SqrtOf(symbolic.PowOf(r, two))); got != "r" {
		t.Errorf("sqrt(r^2) should be r for positive r, got %s", got)
	}
	if got := symbolic.String(symbolic.PowOf(symbolic.SqrtOf(x), two)); got != "x" {
		t.Errorf("sqrt(x)^2 should be x, got %s", got)
	}
}

func TestPow_Diff_PowerRule(t *testing.T) {
	x := symbolic.S("x")
	d := symbolic.Diff(symbolic.PowOf(x, symbolic.N(3)), "x")
	if got := symbolic.String(d); got != "3*x^2" {
		t.Errorf("d/dx(x^3) should be 3*x^2, got %s", got)
	}
}

func TestPow_String_Parenthesizes(t *testing.T) {
	x := symbolic.S("x")
	if got := symbolic.String(symbolic.PowOf(x, symbolic.F(1, 2))); got != "x^(1/2)" {
		t.Errorf("want x^(1/2), got %s", got)
	}
	if got := symbolic.String(symbolic.PowOf(x, symbolic.N(-1))); got != "x^(-1)" {
		t.Errorf("want x^(-1), got %s", got)
	}
}

func TestPow_LaTeX(t *testing.T) {
	x := symbolic.S("x")
	if got := symbolic.PowOf(x, symbolic.N(2)).LaTeX(); got != "x^{2}" {
		t.Errorf("want x^{2}, got %s", got)
	}
	if got := symbolic.SqrtOf(x).LaTeX(); got != `\sqrt{x}` {
		t.Errorf("want \\sqrt{x}, got %s", got)
	}
}

// ============================================================
// Func tests
// ============================================================

func TestFunc_Sin_Diff(t *testing.T) {
	d := symbolic.Diff(symbolic.SinOf(symbolic.S("x")), "x")
	if symbolic.String(d) != "cos(x)" {
		t.Errorf("d/dx(sin(x)) should be cos(x), got %s", symbolic.String(d))
	}
}

func TestFunc_Cos_Diff(t *testing.T) {
	d := symbolic.Diff(symbolic.CosOf(symbolic.S("x")), "x")
	if got := symbolic.String(d); got != "-1*sin(x)" {
		t.Errorf("d/dx(cos(x)) should be -1*sin(x), got %s", got)
	}
}

func TestFunc_Exp_Diff(t *testing.T) {
	d := symbolic.Diff(symbolic.ExpOf(symbolic.S("x")), "x")
	if symbolic.String(d) != "exp(x)" {
		t.Errorf("d/dx(exp(x)) should be exp(x), got %s", symbolic.String(d))
	}
}

func TestFunc_Abs_Diff(t *testing.T) {
	theta := symbolic.S("theta")
	d := symbolic.Diff(symbolic.AbsOf(symbolic.SinOf(theta)), "theta")
	want := symbolic.MulOf(symbolic.SignOf(symbolic.SinOf(theta)), symbolic.CosOf(theta))
	if !d.Equal(want) {
		t.Errorf("want %s, got %s", want, d)
	}
	if got := symbolic.Diff(symbolic.SignOf(theta), "theta"); symbolic.String(got) != "0" {
		t.Errorf("d sign should be 0, got %s", got)
	}
}

func TestFunc_Abs_Simplify(t *testing.T) {
	r := symbolic.NewSymbol("r", symbolic.Positive())
	x := symbolic.S("x")
	if got := symbolic.String(symbolic.AbsOf(r)); got != "r" {
		t.Errorf("abs(r) should be r for positive r, got %s", got)
	}
	if got := symbolic.String(symbolic.AbsOf(symbolic.F(-3, 4))); got != "3/4" {
		t.Errorf("abs(-3/4) should be 3/4, got %s", got)
	}
	if got := symbolic.String(symbolic.AbsOf(symbolic.MulOf(symbolic.N(-2), x))); got != "abs(2*x)" {
		t.Errorf("want abs(2*x), got %s", got)
	}
}

func TestFunc_Numeric_Eval(t *testing.T) {
	if got := symbolic.String(symbolic.SinOf(symbolic.N(0))); got != "0" {
		t.Errorf("sin(0) should evaluate to 0, got %s", got)
	}
	if got := symbolic.String(symbolic.CosOf(symbolic.N(0))); got != "1" {
		t.Errorf("cos(0) should evaluate to 1, got %s", got)
	}
}

// ============================================================
// FreeSymbols / Eval tests
// ============================================================

func TestFunc_Numeric_Overflow(t *testing.T) {
	got, err := symbolic.Parse("exp(1000)")
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if s := symbolic.String(got); s != "exp(1000)" {
		t.Errorf("overflowing exp should stay symbolic, got %s", s)
	}
	if s := symbolic.String(symbolic.CoshOf(symbolic.N(800))); s != "cosh(800)" {
		t.Errorf("overflowing cosh should stay symbolic, got %s", s)
	}
	if _, ok := symbolic.CoshOf(symbolic.N(800)).Eval(); ok {
		t.Error("Eval of an overflowing value should report false")
	}
}

func TestPow_HugeExponent(t *testing.T) {
	got, err := symbolic.Parse("2^18446744073709551618")
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if s := symbolic.String(got); s != "2^18446744073709551618" {
		t.Errorf("want 2^18446744073709551618, got %s", s)
	}
}

func TestMul_LaTeX_Negation(t *testing.T) {
	x, y := symbolic.S("x"), symbolic.S("y")
	if got := symbolic.MulOf(symbolic.N(-1), x, y).LaTeX(); got != "-x y" {
		t.Errorf("want -x y, got %s", got)
	}
	if got := symbolic.MulOf(symbolic.N(-2), x).LaTeX(); got != "-2 x" {
		t.Errorf("want -2 x, got %s", got)
	}
}

func TestFreeSymbols(t *testing.T) {
	expr := symbolic.AddOf(symbolic.S("x"), symbolic.MulOf(symbolic.S("y"), symbolic.N(2)))
	syms := symbolic.SortedSymbols(expr)
	if strings.Join(syms, ",") != "x,y" {
		t.Errorf("expected x,y got %v", syms)
	}
	if len(symbolic.FreeSymbols(symbolic.N(5))) != 0 {
		t.Error("constant should have no free symbols")
	}
}

func TestEvalAt(t *testing.T) {
	x, y := symbolic.S("x"), symbolic.S("y")
	expr := symbolic.AddOf(symbolic.PowOf(x, symbolic.N(2)), y)
	got, err := symbolic.EvalAt(expr, map[string]float64{"x": 3, "y": 1})
	if err != nil {
		t.Fatalf("EvalAt: %v", err)
	}
	if got != 10 {
		t.Errorf("want 10, got %v", got)
	}
	if _, err := symbolic.EvalAt(expr, map[string]float64{"x": 3}); err == nil {
		t.Error("expected error with y unbound")
	}
}

// ============================================================
// Higher-order derivative tests
// ============================================================

func TestDiffN(t *testing.T) {
	// d^4/dx^4(x^4) = 24
	expr := symbolic.PowOf(symbolic.S("x"), symbolic.N(4))
	d4 := symbolic.DiffN(expr, "x", 4)
	if str := symbolic.String(d4); str != "24" {
		t.Errorf("d^4/dx^4(x^4) should be 24, got %s", str)
	}
}

func TestJacobian(t *testing.T) {
	x, y := symbolic.S("x"), symbolic.S("y")
	j := symbolic.Jacobian([]symbolic.Expr{symbolic.MulOf(x, y), x}, []string{"x", "y"})
	if j.Rows() != 2 || j.Cols() != 2 {
		t.Fatalf("want 2x2, got %dx%d", j.Rows(), j.Cols())
	}
	if got := j.String(); got != "[[y, x], [1, 0]]" {
		t.Errorf("unexpected jacobian %s", got)
	}
}

// ============================================================
// Equal tests
// ============================================================

func TestEqual(t *testing.T) {
	if !symbolic.N(3).Equal(symbolic.N(3)) {
		t.Error("N(3) should equal N(3)")
	}
	if symbolic.N(3).Equal(symbolic.N(4)) {
		t.Error("N(3) should not equal N(4)")
	}
	if symbolic.N(1).Equal(symbolic.S("x")) {
		t.Error("N(1) should not equal S(x)")
	}
}

// ============================================================
// Determinism test
// ============================================================

func TestDeterminism(t *testing.T) {
	build := func() symbolic.Expr {
		z, a, m := symbolic.S("z"), symbolic.S("a"), symbolic.S("m")
		return symbolic.DeepSimplify(symbolic.PowOf(symbolic.AddOf(z, a, m, symbolic.N(1)), symbolic.N(3)))
	}
	expected := symbolic.String(build())
	for i := 0; i < 10; i++ {
		if result := symbolic.String(build()); result != expected {
			t.Errorf("non-deterministic output on iteration %d: %s != %s", i, result, expected)
		}
	}
}
