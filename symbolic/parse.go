package symbolic

import (
	"fmt"
	"math/big"
	"strings"
	"text/scanner"
)

// ============================================================
// Infix parser
// ============================================================
//
// Grammar:
//
//	expr    = term { ("+" | "-") term }
//	term    = unary { ("*" | "/") unary }
//	unary   = ("-" | "+") unary | power
//	power   = primary [ ("^" | "**") unary ]
//	primary = number | ident [ "(" expr ")" ] | "(" expr ")"

// Parse reads an infix expression. Identifiers that match a known symbol
// resolve to it, so its assumptions carry over; other identifiers become
// plain real symbols.
func Parse(src string, known ...*Sym) (Expr, error) {
	p := &parser{src: src, known: map[string]*Sym{}}
	for _, s := range known {
		p.known[s.name] = s
	}
	p.s.Init(strings.NewReader(src))
	p.s.Mode = scanner.ScanIdents | scanner.ScanInts | scanner.ScanFloats
	p.s.Error = func(_ *scanner.Scanner, msg string) {
		if p.err == nil {
			p.err = p.errorf("%s", msg)
		}
	}
	p.next()
	if p.tok == scanner.EOF {
		return nil, p.errorf("empty expression")
	}
	e := p.expr()
	if p.err == nil && p.tok != scanner.EOF {
		p.err = p.errorf("unexpected %q", p.s.TokenText())
	}
	if p.err != nil {
		return nil, p.err
	}
	return e, nil
}

// MustParse is like Parse but panics on error.
func MustParse(src string, known ...*Sym) Expr {
	e, err := Parse(src, known...)
	if err != nil {
		panic(err)
	}
	return e
}

type parser struct {
	src   string
	s     scanner.Scanner
	tok   rune
	known map[string]*Sym
	err   error
}

func (p *parser) next() { p.tok = p.s.Scan() }

func (p *parser) errorf(format string, args ...interface{}) error {
	return fmt.Errorf("symbolic: parse %q at %d: %s", p.src, p.s.Position.Offset, fmt.Sprintf(format, args...))
}

// fail records the first error and returns a placeholder so callers can
// unwind without checking at every step.
func (p *parser) fail(format string, args ...interface{}) Expr {
	if p.err == nil {
		p.err = p.errorf(format, args...)
	}
	return N(0)
}

func (p *parser) expr() Expr {
	left := p.term()
	for p.err == nil && (p.tok == '+' || p.tok == '-') {
		op := p.tok
		p.next()
		right := p.term()
		if op == '+' {
			left = AddOf(left, right)
		} else {
			left = Minus(left, right)
		}
	}
	return left
}

func (p *parser) term() Expr {
	left := p.unary()
	for p.err == nil && (p.tok == '*' || p.tok == '/') {
		op := p.tok
		p.next()
		right := p.unary()
		if op == '*' {
			left = MulOf(left, right)
		} else {
			left = Quo(left, right)
		}
	}
	return left
}

func (p *parser) unary() Expr {
	switch p.tok {
	case '-':
		p.next()
		return Neg(p.unary())
	case '+':
		p.next()
		return p.unary()
	}
	return p.power()
}

func (p *parser) power() Expr {
	base := p.primary()
	if p.err != nil {
		return base
	}
	switch {
	case p.tok == '^':
		p.next()
	case p.tok == '*' && p.s.Peek() == '*':
		p.next()
		p.next()
	default:
		return base
	}
	return PowOf(base, p.unary())
}

func (p *parser) primary() Expr {
	switch p.tok {
	case scanner.Int, scanner.Float:
		text := p.s.TokenText()
		r, ok := new(big.Rat).SetString(text)
		if !ok {
			return p.fail("invalid number %q", text)
		}
		p.next()
		return &Num{val: r}
	case scanner.Ident:
		name := p.s.TokenText()
		p.next()
		if p.tok != '(' {
			if s, ok := p.known[name]; ok {
				return s
			}
			return S(name)
		}
		fn, ok := knownFuncs[name]
		if !ok {
			return p.fail("unknown function %q", name)
		}
		p.next()
		arg := p.expr()
		if p.err != nil {
			return arg
		}
		if p.tok != ')' {
			return p.fail("expected ')' after argument of %s", name)
		}
		p.next()
		return fn(arg)
	case '(':
		p.next()
		e := p.expr()
		if p.err != nil {
			return e
		}
		if p.tok != ')' {
			return p.fail("expected ')'")
		}
		p.next()
		return e
	case scanner.EOF:
		return p.fail("unexpected end of input")
	}
	return p.fail("unexpected %q", p.s.TokenText())
}
