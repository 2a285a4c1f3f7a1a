// Copyright 2020 Aleksandr Demakin. All rights reserved.

package worksheet

import (
	"fmt"
	"io"
	"log/slog"
	"math/big"
	"sort"
	"strconv"
	"strings"

	"github.com/avdva/bitforge"
	"github.com/avdva/bitforge/ascii"
	"github.com/avdva/bitforge/bitops"
	"github.com/avdva/bitforge/colorcode"
	"github.com/avdva/bitforge/compare"
	"github.com/avdva/bitforge/expr"
	"github.com/avdva/bitforge/ieee754"
	"github.com/avdva/bitforge/twos"
)

// Session is the state steps run against: the default bit width, variables and the code page.
// It is not safe for concurrent use.
type Session struct {
	Width    int
	Vars     map[string]*big.Int
	Table    ascii.Table
	MaxShift int
	Logger   *slog.Logger
}

// NewSession returns a session initialized from the worksheet header.
// A nil logger discards all records.
func NewSession(sheet *Sheet, logger *slog.Logger) (*Session, error) {
	cp, err := ascii.ParseCodePage(sheet.CodePage)
	if err != nil {
		return nil, err
	}
	s := &Session{
		Width:    sheet.Width,
		Vars:     make(map[string]*big.Int, len(sheet.Variables)),
		Table:    ascii.Table{CodePage: cp},
		MaxShift: sheet.MaxShift,
		Logger:   logger,
	}
	names := make([]string, 0, len(sheet.Variables))
	for name := range sheet.Variables {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		v, err := bitforge.ParseLiteral(sheet.Variables[name])
		if err != nil {
			return nil, fmt.Errorf("variable %s: %w", name, err)
		}
		s.Vars[name] = v
	}
	return s, nil
}

func (s *Session) logger() *slog.Logger {
	if s.Logger == nil {
		return slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return s.Logger
}

func (s *Session) width(override int) int {
	switch {
	case override != 0:
		return override
	case s.Width != 0:
		return s.Width
	default:
		return DefaultWidth
	}
}

// Value resolves a variable name or parses an integer literal.
func (s *Session) Value(ref string) (*big.Int, error) {
	ref = strings.TrimSpace(ref)
	if v, found := s.Vars[ref]; found {
		return new(big.Int).Set(v), nil
	}
	if identRe.MatchString(ref) {
		return nil, fmt.Errorf("%w: unknown variable %q", bitforge.ErrParse, ref)
	}
	return bitforge.ParseLiteral(ref)
}

// Set assigns a variable.
func (s *Session) Set(name string, v *big.Int) {
	if s.Vars == nil {
		s.Vars = make(map[string]*big.Int)
	}
	s.Vars[name] = new(big.Int).Set(v)
}

// Run executes all steps of the sheet in order.
// A failing step does not stop the run: its error is reported in its result.
func (s *Session) Run(sheet *Sheet) []StepResult {
	results := make([]StepResult, 0, len(sheet.Steps))
	for i, step := range sheet.Steps {
		r := StepResult{Index: i + 1, Name: step.Name, Kind: step.Kind()}
		log := s.logger().With("step", r.Index, "kind", r.Kind)
		log.Debug("running step")
		out, err := s.Exec(step)
		if err != nil {
			r.Error = err.Error()
			log.Warn("step failed", "err", err)
		} else {
			r.Output = out
		}
		results = append(results, r)
	}
	return results
}

// Exec executes a single step and returns its output.
func (s *Session) Exec(step Step) (interface{}, error) {
	if step.Kind() == "" {
		return nil, fmt.Errorf("%w: expected exactly one step kind", bitforge.ErrParse)
	}
	switch {
	case step.Convert != nil:
		return s.convert(step.Convert)
	case step.Operate != nil:
		return s.operate(step.Operate)
	case step.Twos != nil:
		return s.twos(step.Twos)
	case step.Float != nil:
		return s.float(step.Float)
	case step.Expr != nil:
		return s.expr(step.Expr)
	case step.Compare != nil:
		return s.compare(step.Compare)
	case step.Color != nil:
		return s.color(*step.Color)
	default:
		return s.char(step.Char)
	}
}

func (s *Session) convert(c *ConvertStep) (*ConvertOutput, error) {
	var v *big.Int
	var err error
	if len(c.From) > 0 {
		var base bitforge.Base
		if base, err = bitforge.ParseBase(c.From); err != nil {
			return nil, err
		}
		v, err = bitforge.Parse(c.Value, base)
	} else {
		v, err = s.Value(c.Value)
	}
	if err != nil {
		return nil, err
	}
	targets := bitforge.Bases[:]
	if len(c.To) > 0 {
		targets = make([]bitforge.Base, 0, len(c.To))
		for _, name := range c.To {
			base, err := bitforge.ParseBase(name)
			if err != nil {
				return nil, err
			}
			targets = append(targets, base)
		}
	}
	out := &ConvertOutput{Decimal: v.String(), Results: make(map[string]string, len(targets))}
	for _, base := range targets {
		digits := bitforge.Format(v, base)
		if base == bitforge.Binary && c.Group > 0 {
			digits = bitforge.GroupDigits(digits, c.Group)
		}
		out.Results[base.String()] = digits
	}
	return out, nil
}

func (s *Session) operate(o *OperateStep) (*OperateOutput, error) {
	op, err := bitops.ParseOp(o.Op)
	if err != nil {
		return nil, err
	}
	a, err := s.Value(o.A)
	if err != nil {
		return nil, err
	}
	b := new(big.Int)
	if op.Binary() {
		if len(strings.TrimSpace(o.B)) == 0 {
			return nil, fmt.Errorf("%w: %v needs two operands", bitforge.ErrUnsupportedOperation, op)
		}
		if b, err = s.Value(o.B); err != nil {
			return nil, err
		}
	}
	width := s.width(o.Width)
	shift := 1
	if o.Shift != nil {
		shift = *o.Shift
	}
	res, err := bitops.Operator{MaxShift: s.MaxShift}.Operate(op, a, b, width, shift)
	if err != nil {
		return nil, err
	}
	out := &OperateOutput{
		Op:     op.String(),
		Symbol: op.Symbol(),
		A:      a.String(),
		Width:  width,
		Result: res.String(),
		Binary: bitops.ToBitArray(res, width).String(),
		Hex:    bitforge.Format(res, bitforge.Hex),
	}
	if op.Binary() {
		out.B = b.String()
	}
	if o.Visualize {
		if op.IsShift() && shift != 1 {
			return nil, fmt.Errorf("%w: %v can be visualized with the shift amount of 1 only", bitforge.ErrUnsupportedOperation, op)
		}
		vis, err := bitops.Visualize(op, a, b, width)
		if err != nil {
			return nil, err
		}
		out.Steps = make([]BitStepOutput, len(vis.Steps))
		for i, st := range vis.Steps {
			out.Steps[i] = BitStepOutput{
				Position: st.Position,
				A:        st.BitA,
				B:        st.BitB,
				Result:   st.Result,
				Partial:  st.Partial.String(),
			}
		}
	}
	if len(o.Assign) > 0 {
		s.Set(o.Assign, res)
	}
	return out, nil
}

func (s *Session) twos(t *TwosStep) (*TwosOutput, error) {
	bits := strings.TrimSpace(t.Decode)
	switch {
	case len(bits) > 0 && len(strings.TrimSpace(t.Value)) > 0:
		return nil, fmt.Errorf("%w: twos: value and decode are mutually exclusive", bitforge.ErrParse)
	case len(bits) > 0:
		v, err := twos.Decode(bits)
		if err != nil {
			return nil, err
		}
		min, max := twos.Range(len(bits))
		return &TwosOutput{
			Value:   v.String(),
			Width:   len(bits),
			Bits:    bits,
			Min:     min.String(),
			Max:     max.String(),
			InRange: true,
		}, nil
	}
	v, err := s.Value(t.Value)
	if err != nil {
		return nil, err
	}
	r, err := twos.Encode(v, s.width(t.Width))
	if err != nil {
		return nil, err
	}
	return &TwosOutput{
		Value:    r.Value.String(),
		Width:    r.Width,
		Original: r.Original,
		Inverted: r.Inverted,
		Bits:     r.Bits,
		Hex:      r.Hex,
		Min:      r.Min.String(),
		Max:      r.Max.String(),
		InRange:  r.InRange,
	}, nil
}

func (s *Session) float(f *FloatStep) (*FloatOutput, error) {
	p := ieee754.Precision(f.Precision)
	if p == 0 {
		p = ieee754.Single
	}
	if !p.Valid() {
		return nil, fmt.Errorf("%w: precision must be 32 or 64, got %d", bitforge.ErrBitWidth, f.Precision)
	}
	var fields ieee754.Fields
	switch {
	case len(f.Bits) > 0 && len(f.Value) > 0:
		return nil, fmt.Errorf("%w: float: value and bits are mutually exclusive", bitforge.ErrParse)
	case len(f.Bits) > 0:
		bits, err := bitforge.ParseLiteral(f.Bits)
		if err != nil {
			return nil, err
		}
		if bits.Sign() < 0 || bits.BitLen() > int(p) {
			return nil, fmt.Errorf("%w: %s does not fit %d bits", bitforge.ErrOutOfRange, f.Bits, int(p))
		}
		fields = ieee754.FromBits(bits.Uint64(), p)
	default:
		x, err := ieee754.ParseFloat(f.Value)
		if err != nil {
			return nil, err
		}
		fields = ieee754.Encode(x, p)
	}
	out := &FloatOutput{
		Value:          strconv.FormatFloat(fields.Float64(), 'g', -1, int(p)),
		Precision:      int(p),
		Class:          fields.Class().String(),
		Sign:           fields.Sign,
		Exponent:       fields.Exponent,
		ActualExponent: fields.ActualExponent(),
		Mantissa:       fields.Mantissa,
		Bits:           fields.SignBits() + " " + fields.ExponentBits() + " " + fields.MantissaBits(),
		Hex:            fmt.Sprintf("0x%0*X", fields.TotalBits/4, fields.Bits()),
		Significand:    fields.Significand().String(),
		Formula:        fields.Formula(),
	}
	if exact, err := fields.Exact(); err == nil {
		out.Exact = exact.String()
	}
	return out, nil
}

func (s *Session) expr(e *ExprStep) (*ExprOutput, error) {
	ev := expr.Evaluator{Vars: s.Vars, MaxShift: s.MaxShift}
	v, err := ev.Evaluate(e.Value)
	if err != nil {
		return nil, err
	}
	if len(e.Assign) > 0 {
		s.Set(e.Assign, v)
	}
	return &ExprOutput{
		Expr:    e.Value,
		Decimal: v.String(),
		Hex:     bitforge.Format(v, bitforge.Hex),
		Binary:  bitforge.Format(v, bitforge.Binary),
	}, nil
}

func (s *Session) compare(c *CompareStep) (*CompareOutput, error) {
	a, err := s.Value(c.A)
	if err != nil {
		return nil, err
	}
	b, err := s.Value(c.B)
	if err != nil {
		return nil, err
	}
	r := compare.Compare(a, b)
	return &CompareOutput{
		Width:      r.Width,
		A:          r.A.Binary,
		B:          r.B.Binary,
		Diff:       r.Diff.String(),
		Xor:        r.Xor.String(),
		XorHex:     r.XorHex,
		Hamming:    r.Hamming,
		Similarity: r.SimilarityString(),
	}, nil
}

func (s *Session) color(hex string) (*ColorOutput, error) {
	rgb, err := colorcode.ParseHex(hex)
	if err != nil {
		return nil, err
	}
	hsl := rgb.HSL()
	return &ColorOutput{
		Hex:    rgb.Hex(),
		RGB:    rgb,
		HSL:    hsl,
		CSS:    []string{rgb.String(), hsl.String()},
		Binary: rgb.Binary(),
	}, nil
}

func (s *Session) char(c *CharStep) (*CharOutput, error) {
	switch {
	case c.Code != nil:
		info, err := s.Table.Info(*c.Code)
		if err != nil {
			return nil, err
		}
		return &CharOutput{Chars: []ascii.CharInfo{info}}, nil
	case len(c.Char) > 0:
		info, err := s.Table.Lookup(c.Char)
		if err != nil {
			return nil, err
		}
		return &CharOutput{Chars: []ascii.CharInfo{info}}, nil
	}
	f, err := ascii.ParseFilter(c.Filter)
	if err != nil {
		return nil, err
	}
	codes := s.Table.Codes(f, c.Search)
	out := &CharOutput{Chars: make([]ascii.CharInfo, 0, len(codes))}
	for _, code := range codes {
		info, err := s.Table.Info(code)
		if err != nil {
			return nil, err
		}
		out.Chars = append(out.Chars, info)
	}
	return out, nil
}
