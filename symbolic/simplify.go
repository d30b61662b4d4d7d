package symbolic

import (
	"math/big"
	"sort"
)

// ============================================================
// Deep simplification
// ============================================================

// maxTrigArgs bounds the search over sin²/cos² elimination choices.
const maxTrigArgs = 8

// DeepSimplify expands e, collects like terms, brings powers of u, |u| and
// sign(u) into a normal form over the reals and applies the Pythagorean
// identity in whichever direction yields the fewest terms.
func DeepSimplify(e Expr) Expr {
	return fromPoly(bestTrigForm(realReduce(toPoly(e))))
}

// TrigSimplify applies only the Pythagorean reduction on top of expansion.
func TrigSimplify(e Expr) Expr {
	return fromPoly(bestTrigForm(toPoly(e)))
}

// Equivalent reports whether a and b are equal as real expressions, up to
// expansion, the Pythagorean identity and the relations between u, |u| and
// sign(u) away from u = 0. A false result is not a proof of inequality.
func Equivalent(a, b Expr) bool {
	return len(bestTrigForm(realReduce(toPoly(Minus(a, b))))) == 0
}

// realReduce rewrites every term so that, for each atom u, the factors
// u^m, |u|^n and sign(u)^k collapse into one normal form determined by
// e = m + n and the parity of m + k. The rewrite uses sign(u)^2 = 1 and
// sign(u)*|u| = u, which hold for u != 0.
func realReduce(p poly) poly {
	out := poly{}
	for _, t := range p {
		out.addPoly(realTerm(t))
	}
	return out
}

// realGroup collects the factors of one term that share the atom u.
type realGroup struct {
	base Expr
	key  string
	exp  *big.Rat
	odd  bool // parity of sign(u) in u^m*|u|^n*sign(u)^k, counting m and k
}

func realTerm(t *term) poly {
	groups := map[string]*realGroup{}
	var order []string
	group := func(base Expr, key string) *realGroup {
		g, ok := groups[key]
		if !ok {
			g = &realGroup{base: base, key: key, exp: new(big.Rat)}
			groups[key] = g
			order = append(order, key)
		}
		return g
	}
	var rest []factor
	for _, f := range t.mono {
		fn, isFunc := f.base.(*Func)
		switch {
		case isFunc && fn.name == "abs":
			g := group(fn.arg, fn.arg.String())
			g.exp.Add(g.exp, f.exp)
		case isFunc && fn.name == "sign" && f.exp.IsInt():
			g := group(fn.arg, fn.arg.String())
			g.odd = g.odd != isOddInteger(f.exp)
		case f.exp.IsInt():
			g := group(f.base, f.key)
			g.exp.Add(g.exp, f.exp)
			g.odd = g.odd != isOddInteger(f.exp)
		default:
			rest = append(rest, f)
		}
	}
	out := constPoly(t.coeff)
	for _, f := range rest {
		out = polyMul(out, atomPoly(f.base, f.exp))
	}
	for _, k := range order {
		out = polyMul(out, groups[k].emit())
	}
	return out
}

// emit returns the normal form of a group: u^e when the parities agree,
// otherwise |u|^e for even parity and u*|u|^(e-1) or sign(u) for odd.
func (g *realGroup) emit() poly {
	if g.exp.IsInt() && isOddInteger(g.exp) == g.odd {
		return atomPoly(g.base, g.exp)
	}
	abs := absAtom(g.base)
	if !g.odd {
		return atomPoly(abs, g.exp)
	}
	if g.exp.Sign() == 0 {
		return atomPoly(&Func{name: "sign", arg: g.base}, ratOne())
	}
	return polyMul(atomPoly(g.base, ratOne()), atomPoly(abs, new(big.Rat).Sub(g.exp, ratOne())))
}

// trigArgs lists, in sorted order, the arguments of sin and cos factors that
// appear squared or higher.
func trigArgs(p poly) []string {
	seen := map[string]bool{}
	for _, t := range p {
		for _, f := range t.mono {
			fn, ok := f.base.(*Func)
			if !ok || (fn.name != "sin" && fn.name != "cos") {
				continue
			}
			if f.exp.IsInt() && f.exp.Cmp(big.NewRat(2, 1)) >= 0 {
				seen[fn.arg.String()] = true
			}
		}
	}
	out := make([]string, 0, len(seen))
	for k := range seen {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

// reduceTrig replaces sin(u)^n by sin(u)^(n mod 2)*(1-cos(u)^2)^(n/2) for
// every argument u, except arguments in keepSin where cos is eliminated
// instead.
func reduceTrig(p poly, keepSin map[string]bool) poly {
	return mapFactors(p, func(f factor) (poly, bool) {
		fn, ok := f.base.(*Func)
		if !ok || !f.exp.IsInt() {
			return nil, false
		}
		n, ok := smallInt(f.exp, 2*maxExpandPower+1)
		if !ok || n < 2 {
			return nil, false
		}
		key := fn.arg.String()
		var other string
		switch {
		case fn.name == "sin" && !keepSin[key]:
			other = "cos"
		case fn.name == "cos" && keepSin[key]:
			other = "sin"
		default:
			return nil, false
		}
		sq := atomPoly(&Func{name: other, arg: fn.arg}, big.NewRat(2, 1))
		res := polyPow(polyAdd(constPoly(ratOne()), polyScale(sq, big.NewRat(-1, 1))), n/2)
		if n%2 == 1 {
			res = polyMul(res, atomPoly(fn, ratOne()))
		}
		return res, true
	})
}

// bestTrigForm picks the shortest of p and its Pythagorean reductions.
func bestTrigForm(p poly) poly {
	args := trigArgs(p)
	if len(args) == 0 {
		return p
	}
	if len(args) > maxTrigArgs {
		if r := reduceTrig(p, nil); len(r) < len(p) {
			return r
		}
		return p
	}
	best, bestLen := p, len(fromPoly(p).String())
	for mask := 0; mask < 1<<len(args); mask++ {
		keepSin := map[string]bool{}
		for i, a := range args {
			if mask&(1<<i) != 0 {
				keepSin[a] = true
			}
		}
		r := reduceTrig(p, keepSin)
		rLen := len(fromPoly(r).String())
		if len(r) < len(best) || (len(r) == len(best) && rLen < bestLen) {
			best, bestLen = r, rLen
		}
	}
	return best
}
