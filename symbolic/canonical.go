package symbolic

import (
	"math/big"
	"sort"
	"strings"
)

// ============================================================
// Canonical polynomial form
// ============================================================
//
// An expression is flattened into a sum of terms. Each term is a rational
// coefficient times a product of atoms raised to rational powers. Atoms are
// symbols, function applications, and sums that could not be expanded
// (negative or fractional powers of sums). Two expressions with the same
// canonical form print identically.

// maxExpandPower bounds multinomial expansion of (a+b+...)^n.
const maxExpandPower = 32

// maxFoldPower bounds integer powers that are evaluated or distributed.
// Larger exponents stay on an atom.
const maxFoldPower = 1 << 12

// factor is one atom of a term raised to a rational power.
type factor struct {
	base Expr
	key  string
	exp  *big.Rat
}

// term is coeff * Π factor. Factors are sorted by key with unique keys.
type term struct {
	coeff *big.Rat
	mono  []factor
}

func monoKey(fs []factor) string {
	var sb strings.Builder
	for i, f := range fs {
		if i > 0 {
			sb.WriteByte('*')
		}
		sb.WriteString(f.key)
		sb.WriteByte('^')
		sb.WriteString(f.exp.RatString())
	}
	return sb.String()
}

// poly is a sum of terms keyed by their monomial. The constant term has
// the empty key.
type poly map[string]*term

func constPoly(r *big.Rat) poly {
	p := poly{}
	if r.Sign() != 0 {
		p[""] = &term{coeff: new(big.Rat).Set(r)}
	}
	return p
}

func (p poly) addTerm(t *term) {
	if t.coeff.Sign() == 0 {
		return
	}
	k := monoKey(t.mono)
	if ex, ok := p[k]; ok {
		sum := new(big.Rat).Add(ex.coeff, t.coeff)
		if sum.Sign() == 0 {
			delete(p, k)
			return
		}
		p[k] = &term{coeff: sum, mono: ex.mono}
		return
	}
	p[k] = &term{coeff: new(big.Rat).Set(t.coeff), mono: t.mono}
}

func (p poly) addPoly(q poly) {
	for _, t := range q {
		p.addTerm(t)
	}
}

// single returns the only term of a one-term poly.
func (p poly) single() (*term, bool) {
	if len(p) != 1 {
		return nil, false
	}
	for _, t := range p {
		return t, true
	}
	return nil, false
}

// sortedKeys orders terms by monomial key with the constant last.
func (p poly) sortedKeys() []string {
	keys := make([]string, 0, len(p))
	for k := range p {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		if keys[i] == "" || keys[j] == "" {
			return keys[j] == "" && keys[i] != ""
		}
		return keys[i] < keys[j]
	})
	return keys
}

// primitive splits p into its leading coefficient and the poly scaled so
// that the leading coefficient is one.
func (p poly) primitive() (*big.Rat, poly) {
	lead := new(big.Rat).Set(p[p.sortedKeys()[0]].coeff)
	return lead, polyScale(p, new(big.Rat).Inv(lead))
}

func polyScale(p poly, c *big.Rat) poly {
	out := poly{}
	if c.Sign() == 0 {
		return out
	}
	for k, t := range p {
		out[k] = &term{coeff: new(big.Rat).Mul(t.coeff, c), mono: t.mono}
	}
	return out
}

func polyAdd(a, b poly) poly {
	out := poly{}
	out.addPoly(a)
	out.addPoly(b)
	return out
}

func polyMul(a, b poly) poly {
	out := poly{}
	for _, ta := range a {
		for _, tb := range b {
			out.addPoly(termMul(ta, tb))
		}
	}
	return out
}

func polyPow(p poly, n int64) poly {
	out := constPoly(ratOne())
	for i := int64(0); i < n; i++ {
		out = polyMul(out, p)
	}
	return out
}

func termMul(a, b *term) poly {
	c := new(big.Rat).Mul(a.coeff, b.coeff)
	if c.Sign() == 0 {
		return poly{}
	}
	fs := make([]factor, 0, len(a.mono)+len(b.mono))
	i, j := 0, 0
	for i < len(a.mono) && j < len(b.mono) {
		fa, fb := a.mono[i], b.mono[j]
		switch {
		case fa.key < fb.key:
			fs = append(fs, fa)
			i++
		case fa.key > fb.key:
			fs = append(fs, fb)
			j++
		default:
			fs = append(fs, factor{base: fa.base, key: fa.key, exp: new(big.Rat).Add(fa.exp, fb.exp)})
			i++
			j++
		}
	}
	fs = append(fs, a.mono[i:]...)
	fs = append(fs, b.mono[j:]...)
	return normTerm(c, fs)
}

// normTerm builds coeff * Π fs, folding numeric bases into the coefficient,
// dropping zero exponents and re-expanding integer powers of sums and
// products.
func normTerm(coeff *big.Rat, fs []factor) poly {
	c := new(big.Rat).Set(coeff)
	keep := make([]factor, 0, len(fs))
	var expand []poly
	for _, f := range fs {
		if f.exp.Sign() == 0 {
			continue
		}
		if n, ok := f.base.(*Num); ok {
			if n.IsZero() && f.exp.IsInt() {
				if f.exp.Sign() > 0 {
					return poly{}
				}
				keep = append(keep, f)
				continue
			}
			if e, ok := smallInt(f.exp, maxFoldPower); ok {
				c.Mul(c, ratPowInt(n.val, e))
				continue
			}
		}
		if n, ok := smallInt(f.exp, maxFoldPower); ok {
			switch f.base.(type) {
			case *Add:
				if n > 0 && n <= maxExpandPower {
					expand = append(expand, polyPow(toPoly(f.base), n))
					continue
				}
			case *Mul:
				expand = append(expand, powPoly(f.base, f.exp))
				continue
			}
		}
		keep = append(keep, f)
	}
	sort.Slice(keep, func(i, j int) bool { return keep[i].key < keep[j].key })
	out := poly{}
	out.addTerm(&term{coeff: c, mono: keep})
	for _, e := range expand {
		out = polyMul(out, e)
	}
	return out
}

func atomPoly(base Expr, exp *big.Rat) poly {
	return normTerm(ratOne(), []factor{{base: base, key: base.String(), exp: new(big.Rat).Set(exp)}})
}

// toPoly converts e into canonical polynomial form.
func toPoly(e Expr) poly {
	switch v := e.(type) {
	case *Num:
		return constPoly(v.val)
	case *Sym:
		return atomPoly(v, ratOne())
	case *Add:
		out := poly{}
		for _, t := range v.terms {
			out.addPoly(toPoly(t))
		}
		return out
	case *Mul:
		out := constPoly(ratOne())
		for _, f := range v.factors {
			out = polyMul(out, toPoly(f))
			if len(out) == 0 {
				return out
			}
		}
		return out
	case *Pow:
		if en, ok := v.exp.Simplify().(*Num); ok {
			return powPoly(v.base, en.val)
		}
		return atomPoly(&Pow{base: Canonical(v.base), exp: Canonical(v.exp)}, ratOne())
	case *Func:
		return funcPoly(v)
	}
	return atomPoly(e, ratOne())
}

// powPoly computes the canonical form of base^q.
func powPoly(base Expr, q *big.Rat) poly {
	pb := toPoly(base)
	if q.Sign() == 0 {
		return constPoly(ratOne())
	}
	if len(pb) == 0 {
		if q.Sign() > 0 {
			return poly{}
		}
		return atomPoly(&Pow{base: N(0), exp: &Num{val: new(big.Rat).Set(q)}}, ratOne())
	}
	if q.IsInt() {
		n, ok := smallInt(q, maxFoldPower)
		if !ok {
			return atomPoly(fromPoly(pb), q)
		}
		if t, ok := pb.single(); ok {
			return termPowInt(t, n)
		}
		if n > 0 && n <= maxExpandPower {
			return polyPow(pb, n)
		}
		if n < 0 {
			c, prim := pb.primitive()
			return polyScale(atomPoly(fromPoly(prim), q), ratPowInt(c, n))
		}
		return atomPoly(fromPoly(pb), q)
	}
	if _, ok := pb.single(); !ok {
		// A sum under a root may collapse to one term after reduction,
		// e.g. sqrt(r^2*sin(t)^2 + r^2*cos(t)^2).
		if reduced := bestTrigForm(realReduce(pb)); len(reduced) == 1 {
			pb = reduced
		}
	}
	if t, ok := pb.single(); ok {
		return termRoot(t, q)
	}
	return atomPoly(fromPoly(pb), q)
}

func termPowInt(t *term, n int64) poly {
	if t.coeff.Sign() == 0 {
		return poly{}
	}
	fs := make([]factor, len(t.mono))
	m := new(big.Rat).SetInt64(n)
	for i, f := range t.mono {
		fs[i] = factor{base: f.base, key: f.key, exp: new(big.Rat).Mul(f.exp, m)}
	}
	return normTerm(ratPowInt(t.coeff, n), fs)
}

// termRoot computes (coeff * Π b^e)^q for non-integer q over the reals.
// Non-negative bases and even powers distribute; everything else stays
// under a residual root.
func termRoot(t *term, q *big.Rat) poly {
	coeff := ratOne()
	residual := ratOne()
	if r, ok := ratPowExact(t.coeff, q); ok {
		coeff = r
	} else {
		residual = t.coeff
	}
	var fs, rest []factor
	for _, f := range t.mono {
		e := new(big.Rat).Mul(f.exp, q)
		switch {
		case isNonNegative(f.base):
			fs = append(fs, factor{base: f.base, key: f.key, exp: e})
		case isEvenInteger(f.exp):
			abs := absAtom(f.base)
			fs = append(fs, factor{base: abs, key: abs.String(), exp: e})
		default:
			rest = append(rest, f)
		}
	}
	out := normTerm(coeff, fs)
	if residual.Cmp(ratOne()) != 0 || len(rest) > 0 {
		under := fromTerm(&term{coeff: residual, mono: rest})
		out = polyMul(out, atomPoly(under, q))
	}
	return out
}

func funcPoly(f *Func) poly {
	arg := Canonical(f.arg)
	if f.name == "abs" {
		return absPoly(arg)
	}
	s := simplifyFunc(f.name, arg)
	if g, ok := s.(*Func); ok {
		return atomPoly(g, ratOne())
	}
	return toPoly(s)
}

// absPoly computes |arg| for a canonical argument.
func absPoly(arg Expr) poly {
	p := toPoly(arg)
	if len(p) == 0 {
		return p
	}
	if isNonNegative(arg) {
		return p
	}
	t, ok := p.single()
	if !ok {
		return atomPoly(absAtom(arg), ratOne())
	}
	fs := make([]factor, 0, len(t.mono))
	for _, f := range t.mono {
		if isNonNegative(f.base) || isEvenInteger(f.exp) {
			fs = append(fs, f)
			continue
		}
		abs := absAtom(f.base)
		fs = append(fs, factor{base: abs, key: abs.String(), exp: f.exp})
	}
	return normTerm(new(big.Rat).Abs(t.coeff), fs)
}

// absAtom wraps a canonical atom in abs without re-simplifying it.
func absAtom(base Expr) Expr {
	if isNonNegative(base) {
		return base
	}
	return &Func{name: "abs", arg: base}
}

// fromPoly rebuilds an expression in deterministic order.
func fromPoly(p poly) Expr {
	if len(p) == 0 {
		return N(0)
	}
	keys := p.sortedKeys()
	terms := make([]Expr, len(keys))
	for i, k := range keys {
		terms[i] = fromTerm(p[k])
	}
	if len(terms) == 1 {
		return terms[0]
	}
	return &Add{terms: terms}
}

func fromTerm(t *term) Expr {
	factors := make([]Expr, 0, len(t.mono)+1)
	for _, f := range t.mono {
		if f.exp.Cmp(ratOne()) == 0 {
			factors = append(factors, f.base)
		} else {
			factors = append(factors, &Pow{base: f.base, exp: &Num{val: f.exp}})
		}
	}
	c := &Num{val: t.coeff}
	if len(factors) == 0 {
		return c
	}
	if c.IsOne() {
		if len(factors) == 1 {
			return factors[0]
		}
		return &Mul{factors: factors}
	}
	return &Mul{factors: append([]Expr{c}, factors...)}
}

// mapFactors rebuilds p, replacing every factor for which fn reports a
// substitute.
func mapFactors(p poly, fn func(f factor) (poly, bool)) poly {
	out := poly{}
	for _, t := range p {
		acc := constPoly(t.coeff)
		var kept []factor
		for _, f := range t.mono {
			if r, ok := fn(f); ok {
				acc = polyMul(acc, r)
			} else {
				kept = append(kept, f)
			}
		}
		if len(kept) > 0 {
			acc = polyMul(acc, normTerm(ratOne(), kept))
		}
		out.addPoly(acc)
	}
	return out
}

// Canonical expands e into a sum of products with like terms collected.
func Canonical(e Expr) Expr { return fromPoly(toPoly(e)) }

// Expand is an alias for Canonical.
func Expand(e Expr) Expr { return Canonical(e) }
