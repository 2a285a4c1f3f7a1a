// Copyright 2020 Aleksandr Demakin. All rights reserved.

// Package expr evaluates bitwise expressions over named integer variables.
//
// An expression consists of decimal and 0x-prefixed hex literals, variable names,
// the keywords AND, OR, XOR, NOT, SHL, SHR (in any case), the symbols & | ^ ~ << >>
// and parentheses, for example "(A AND 0xF0) SHR 4".
//
// Evaluation is done in three stages: variables are replaced with their parenthesized
// values, keywords are replaced with symbols, and then the result must consist of
// allowed characters only: digits, whitespace, ()&|^~<>, x, X and hex letters.
// Only then the expression is parsed and evaluated over arbitrary-precision integers.
// Operator precedence from the highest: ~, then << and >>, then &, then ^, then |.
package expr

import (
	"fmt"
	"math/big"
	"regexp"
	"sort"
	"strings"
	"unicode"

	"github.com/avdva/bitforge"
)

// DefaultMaxShift is the largest left shift count allowed by default.
const DefaultMaxShift = 1 << 16

var keywords = []struct {
	re     *regexp.Regexp
	symbol string
}{
	{regexp.MustCompile(`(?i)\bAND\b`), "&"},
	{regexp.MustCompile(`(?i)\bOR\b`), "|"},
	{regexp.MustCompile(`(?i)\bXOR\b`), "^"},
	{regexp.MustCompile(`(?i)\bNOT\b`), "~"},
	{regexp.MustCompile(`(?i)\bSHL\b`), "<<"},
	{regexp.MustCompile(`(?i)\bSHR\b`), ">>"},
}

// Evaluator evaluates expressions with a fixed set of variables.
// The zero value has no variables and uses DefaultMaxShift.
type Evaluator struct {
	// Vars maps variable names to values. Names are case-sensitive.
	Vars map[string]*big.Int
	// MaxShift limits left shift counts, 0 means DefaultMaxShift.
	MaxShift int
}

// Evaluate evaluates s with the given variables. See Evaluator.Evaluate.
func Evaluate(s string, vars map[string]*big.Int) (*big.Int, error) {
	return Evaluator{Vars: vars}.Evaluate(s)
}

// Evaluate evaluates s.
// Returns an error wrapping bitforge.ErrInvalidExpression for disallowed characters and syntax errors,
// and an error wrapping bitforge.ErrInvalidResult, if the expression has no value,
// or if a shift count is negative or too large.
func (e Evaluator) Evaluate(s string) (*big.Int, error) {
	sanitized, err := e.Sanitize(s)
	if err != nil {
		return nil, err
	}
	tokens, err := tokenize(sanitized)
	if err != nil {
		return nil, err
	}
	if tokens[0].kind == tokEOF {
		return nil, fmt.Errorf("%w: expression has no value", bitforge.ErrInvalidResult)
	}
	maxShift := e.MaxShift
	if maxShift <= 0 {
		maxShift = DefaultMaxShift
	}
	p := parser{tokens: tokens, maxShift: maxShift}
	v, err := p.parseOr()
	if err != nil {
		return nil, err
	}
	if t := p.peek(); t.kind != tokEOF {
		return nil, newSyntaxError(fmt.Sprintf("unexpected %v", t.kind), t.pos)
	}
	return v, nil
}

// Sanitize replaces variables and keywords in s and checks, that only allowed characters remain.
func (e Evaluator) Sanitize(s string) (string, error) {
	s = RewriteKeywords(Substitute(s, e.Vars))
	if len(s) == 0 {
		return "", fmt.Errorf("%w: empty expression", bitforge.ErrInvalidExpression)
	}
	for i, r := range s {
		if !allowed(r) {
			return "", newSyntaxError(fmt.Sprintf("disallowed symbol %q", r), i+1)
		}
	}
	return s, nil
}

// Substitute replaces every whole-word occurrence of a variable name with its value in parentheses.
// Longer names are replaced first, so that a name never clobbers a part of a longer one.
func Substitute(s string, vars map[string]*big.Int) string {
	names := make([]string, 0, len(vars))
	for name := range vars {
		if len(name) > 0 {
			names = append(names, name)
		}
	}
	sort.Slice(names, func(i, j int) bool {
		if len(names[i]) != len(names[j]) {
			return len(names[i]) > len(names[j])
		}
		return names[i] < names[j]
	})
	for _, name := range names {
		v := vars[name]
		if v == nil {
			v = new(big.Int)
		}
		re := regexp.MustCompile(`\b` + regexp.QuoteMeta(name) + `\b`)
		s = re.ReplaceAllLiteralString(s, "("+v.String()+")")
	}
	return s
}

// RewriteKeywords replaces AND, OR, XOR, NOT, SHL and SHR in any case with & | ^ ~ << >>.
func RewriteKeywords(s string) string {
	for _, kw := range keywords {
		s = kw.re.ReplaceAllLiteralString(s, kw.symbol)
	}
	return s
}

func allowed(r rune) bool {
	switch {
	case '0' <= r && r <= '9', 'a' <= r && r <= 'f', 'A' <= r && r <= 'F':
		return true
	case unicode.IsSpace(r):
		return true
	default:
		return strings.ContainsRune("()&|^~<>xX", r)
	}
}

type parser struct {
	tokens   []token
	pos      int
	maxShift int
}

func (p *parser) peek() token {
	return p.tokens[p.pos]
}

func (p *parser) next() token {
	t := p.tokens[p.pos]
	if t.kind != tokEOF {
		p.pos++
	}
	return t
}

// parseOr: xor ('|' xor)*
func (p *parser) parseOr() (*big.Int, error) {
	v, err := p.parseXor()
	if err != nil {
		return nil, err
	}
	for p.peek().kind == tokOr {
		p.next()
		rhs, err := p.parseXor()
		if err != nil {
			return nil, err
		}
		v.Or(v, rhs)
	}
	return v, nil
}

// parseXor: and ('^' and)*
func (p *parser) parseXor() (*big.Int, error) {
	v, err := p.parseAnd()
	if err != nil {
		return nil, err
	}
	for p.peek().kind == tokXor {
		p.next()
		rhs, err := p.parseAnd()
		if err != nil {
			return nil, err
		}
		v.Xor(v, rhs)
	}
	return v, nil
}

// parseAnd: shift ('&' shift)*
func (p *parser) parseAnd() (*big.Int, error) {
	v, err := p.parseShift()
	if err != nil {
		return nil, err
	}
	for p.peek().kind == tokAnd {
		p.next()
		rhs, err := p.parseShift()
		if err != nil {
			return nil, err
		}
		v.And(v, rhs)
	}
	return v, nil
}

// parseShift: unary (('<<' | '>>') unary)*
func (p *parser) parseShift() (*big.Int, error) {
	v, err := p.parseUnary()
	if err != nil {
		return nil, err
	}
	for k := p.peek().kind; k == tokShl || k == tokShr; k = p.peek().kind {
		op := p.next()
		count, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		if v, err = p.shift(v, count, op); err != nil {
			return nil, err
		}
	}
	return v, nil
}

func (p *parser) shift(v, count *big.Int, op token) (*big.Int, error) {
	if count.Sign() < 0 {
		return nil, fmt.Errorf("%w: negative shift count %s at pos %d", bitforge.ErrInvalidResult, count, op.pos)
	}
	if op.kind == tokShr {
		if count.Cmp(big.NewInt(int64(v.BitLen()))) >= 0 {
			if v.Sign() < 0 {
				return v.SetInt64(-1), nil
			}
			return v.SetInt64(0), nil
		}
		return v.Rsh(v, uint(count.Int64())), nil
	}
	if count.Cmp(big.NewInt(int64(p.maxShift))) > 0 {
		return nil, fmt.Errorf("%w: shift count %s exceeds %d at pos %d", bitforge.ErrInvalidResult, count, p.maxShift, op.pos)
	}
	return v.Lsh(v, uint(count.Int64())), nil
}

// parseUnary: '~' unary | primary
func (p *parser) parseUnary() (*big.Int, error) {
	if p.peek().kind == tokNot {
		p.next()
		v, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		return v.Not(v), nil
	}
	return p.parsePrimary()
}

// parsePrimary: number | '(' or ')'
func (p *parser) parsePrimary() (*big.Int, error) {
	t := p.next()
	switch t.kind {
	case tokNumber:
		return new(big.Int).Set(t.value), nil
	case tokLParen:
		v, err := p.parseOr()
		if err != nil {
			return nil, err
		}
		if closing := p.next(); closing.kind != tokRParen {
			return nil, newSyntaxError(fmt.Sprintf("expected ')', got %v", closing.kind), closing.pos)
		}
		return v, nil
	default:
		return nil, newSyntaxError(fmt.Sprintf("unexpected %v", t.kind), t.pos)
	}
}
