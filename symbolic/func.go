package symbolic

import (
	"math"
)

// ============================================================
// Func: named function applications
// ============================================================

type Func struct {
	name string
	arg  Expr
}

func funcOf(name string, arg Expr) *Func { return &Func{name: name, arg: arg} }

func SinOf(arg Expr) Expr  { return funcOf("sin", arg).Simplify() }
func CosOf(arg Expr) Expr  { return funcOf("cos", arg).Simplify() }
func TanOf(arg Expr) Expr  { return funcOf("tan", arg).Simplify() }
func ExpOf(arg Expr) Expr  { return funcOf("exp", arg).Simplify() }
func LnOf(arg Expr) Expr   { return funcOf("ln", arg).Simplify() }
func SqrtOf(arg Expr) Expr { return PowOf(arg, F(1, 2)) }
func AbsOf(arg Expr) Expr  { return funcOf("abs", arg).Simplify() }
func AsinOf(arg Expr) Expr { return funcOf("asin", arg).Simplify() }
func AcosOf(arg Expr) Expr { return funcOf("acos", arg).Simplify() }
func AtanOf(arg Expr) Expr { return funcOf("atan", arg).Simplify() }
func SinhOf(arg Expr) Expr { return funcOf("sinh", arg).Simplify() }
func CoshOf(arg Expr) Expr { return funcOf("cosh", arg).Simplify() }
func TanhOf(arg Expr) Expr { return funcOf("tanh", arg).Simplify() }
func SignOf(arg Expr) Expr { return funcOf("sign", arg).Simplify() }

// knownFuncs maps names accepted by the parser and by FromJSON to their
// constructors.
var knownFuncs = map[string]func(Expr) Expr{
	"sin":  SinOf,
	"cos":  CosOf,
	"tan":  TanOf,
	"exp":  ExpOf,
	"ln":   LnOf,
	"log":  LnOf,
	"sqrt": SqrtOf,
	"abs":  AbsOf,
	"asin": AsinOf,
	"acos": AcosOf,
	"atan": AtanOf,
	"sinh": SinhOf,
	"cosh": CoshOf,
	"tanh": TanhOf,
	"sign": SignOf,
}

func (f *Func) Simplify() Expr { return simplifyFunc(f.name, f.arg.Simplify()) }

// simplifyFunc applies function identities to an already simplified argument.
func simplifyFunc(name string, arg Expr) Expr {
	f := &Func{name: name, arg: arg}
	if n, ok := arg.(*Num); ok {
		// Exact cases first, then float evaluation.
		switch f.name {
		case "abs":
			return numAbs(n)
		case "sign":
			return N(int64(n.val.Sign()))
		case "sin", "tan", "asin", "atan", "sinh", "tanh":
			if n.IsZero() {
				return N(0)
			}
		case "cos", "cosh", "exp":
			if n.IsZero() {
				return N(1)
			}
		case "ln":
			if n.IsOne() {
				return N(0)
			}
		}
		if v, ok := floatFunc(f.name, n.Float64()); ok {
			return NFloat(v)
		}
	}
	switch f.name {
	case "ln":
		if inner, ok := arg.(*Func); ok && inner.name == "exp" {
			return inner.arg
		}
	case "exp":
		if inner, ok := arg.(*Func); ok && inner.name == "ln" {
			return inner.arg
		}
	case "abs":
		if isPositive(arg) {
			return arg
		}
		if inner, ok := arg.(*Func); ok && inner.name == "abs" {
			return inner
		}
		if m, ok := arg.(*Mul); ok && len(m.factors) >= 2 {
			if coeff, ok2 := m.factors[0].(*Num); ok2 && coeff.IsNegative() {
				rest := append([]Expr{numAbs(coeff)}, m.factors[1:]...)
				return AbsOf(MulOf(rest...))
			}
		}
	case "sign":
		if isPositive(arg) {
			return N(1)
		}
	}
	return f
}

func (f *Func) String() string { return f.name + "(" + f.arg.String() + ")" }

func (f *Func) LaTeX() string {
	switch f.name {
	case "sin", "cos", "tan", "exp", "ln", "sinh", "cosh", "tanh":
		return "\\" + f.name + "\\left(" + f.arg.LaTeX() + "\\right)"
	case "asin":
		return "\\arcsin\\left(" + f.arg.LaTeX() + "\\right)"
	case "acos":
		return "\\arccos\\left(" + f.arg.LaTeX() + "\\right)"
	case "atan":
		return "\\arctan\\left(" + f.arg.LaTeX() + "\\right)"
	case "abs":
		return "\\left|" + f.arg.LaTeX() + "\\right|"
	case "sign":
		return "\\operatorname{sign}\\left(" + f.arg.LaTeX() + "\\right)"
	}
	return "\\operatorname{" + f.name + "}\\left(" + f.arg.LaTeX() + "\\right)"
}

func (f *Func) Sub(varName string, value Expr) Expr {
	return funcOf(f.name, f.arg.Sub(varName, value)).Simplify()
}

func (f *Func) Diff(varName string) Expr {
	du := f.arg.Diff(varName)
	var outer Expr
	switch f.name {
	case "sin":
		outer = CosOf(f.arg)
	case "cos":
		outer = MulOf(N(-1), SinOf(f.arg))
	case "tan":
		outer = AddOf(N(1), PowOf(TanOf(f.arg), N(2)))
	case "exp":
		outer = ExpOf(f.arg)
	case "ln":
		outer = PowOf(f.arg, N(-1))
	case "asin":
		outer = PowOf(AddOf(N(1), MulOf(N(-1), PowOf(f.arg, N(2)))), F(-1, 2))
	case "acos":
		outer = MulOf(N(-1), PowOf(AddOf(N(1), MulOf(N(-1), PowOf(f.arg, N(2)))), F(-1, 2)))
	case "atan":
		outer = PowOf(AddOf(N(1), PowOf(f.arg, N(2))), N(-1))
	case "sinh":
		outer = CoshOf(f.arg)
	case "cosh":
		outer = SinhOf(f.arg)
	case "tanh":
		outer = AddOf(N(1), MulOf(N(-1), PowOf(TanhOf(f.arg), N(2))))
	case "abs":
		// d|u| = sign(u) du, away from u = 0.
		outer = SignOf(f.arg)
	case "sign":
		return N(0)
	default:
		return MulOf(funcOf("D["+f.name+"]", f.arg), du)
	}
	return MulOf(outer, du).Simplify()
}

func (f *Func) Eval() (*Num, bool) {
	n, ok := f.arg.Eval()
	if !ok {
		return nil, false
	}
	switch f.name {
	case "abs":
		return numAbs(n), true
	case "sign":
		return N(int64(n.val.Sign())), true
	}
	v, ok := floatFunc(f.name, n.Float64())
	if !ok {
		return nil, false
	}
	return NFloat(v), true
}

// floatFunc evaluates a named function in float64. Results that are NaN or
// infinite are reported as not ok.
func floatFunc(name string, v float64) (float64, bool) {
	var out float64
	switch name {
	case "sin":
		out = math.Sin(v)
	case "cos":
		out = math.Cos(v)
	case "tan":
		out = math.Tan(v)
	case "exp":
		out = math.Exp(v)
	case "ln":
		out = math.Log(v)
	case "asin":
		out = math.Asin(v)
	case "acos":
		out = math.Acos(v)
	case "atan":
		out = math.Atan(v)
	case "sinh":
		out = math.Sinh(v)
	case "cosh":
		out = math.Cosh(v)
	case "tanh":
		out = math.Tanh(v)
	default:
		return 0, false
	}
	if math.IsNaN(out) || math.IsInf(out, 0) {
		return 0, false
	}
	return out, true
}

func (f *Func) Equal(other Expr) bool {
	o, ok := other.(*Func)
	return ok && f.name == o.name && f.arg.Equal(o.arg)
}

func (f *Func) exprType() string { return "func" }
func (f *Func) toJSON() map[string]interface{} {
	return map[string]interface{}{"type": "func", "name": f.name, "arg": f.arg.toJSON()}
}
func (f *Func) FuncName() string { return f.name }
func (f *Func) Arg() Expr        { return f.arg }

// ============================================================
// Sign assumptions
// ============================================================

// isPositive reports whether e is known to be strictly positive for all
// real values of its free symbols.
func isPositive(e Expr) bool {
	switch v := e.(type) {
	case *Num:
		return v.IsPositive()
	case *Sym:
		return v.positive
	case *Pow:
		return isPositive(v.base)
	case *Mul:
		for _, f := range v.factors {
			if !isPositive(f) {
				return false
			}
		}
		return true
	case *Add:
		for _, t := range v.terms {
			if !isPositive(t) {
				return false
			}
		}
		return true
	case *Func:
		return v.name == "exp" || v.name == "cosh"
	}
	return false
}

// isNonNegative reports whether e is known to be >= 0.
func isNonNegative(e Expr) bool {
	if isPositive(e) {
		return true
	}
	switch v := e.(type) {
	case *Num:
		return v.IsZero()
	case *Func:
		return v.name == "abs"
	case *Pow:
		if en, ok := v.exp.(*Num); ok && isEvenInteger(en.val) {
			return true
		}
		return isNonNegative(v.base)
	case *Mul:
		for _, f := range v.factors {
			if !isNonNegative(f) {
				return false
			}
		}
		return true
	case *Add:
		for _, t := range v.terms {
			if !isNonNegative(t) {
				return false
			}
		}
		return true
	}
	return false
}
