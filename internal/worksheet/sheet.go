// Copyright 2020 Aleksandr Demakin. All rights reserved.

// Package worksheet runs a YAML document of calculator steps against a session.
//
// A worksheet looks like this:
//
//	width: 8
//	variables:
//	  A: "0xAA"
//	  B: "85"
//	steps:
//	  - convert: {value: "0xFF", to: [bin, dec]}
//	  - operate: {op: and, a: A, b: B, visualize: true}
//	  - expr: {value: "(A AND 0xF0) SHR 4", assign: C}
//	  - twos: {value: "-5"}
//	  - float: {value: "3.14159", precision: 32}
//	  - compare: {a: A, b: C}
//	  - color: "#3B82F6"
//	  - char: {search: "esc", filter: control}
//
// Values are integer literals ("170", "-5", "0xAA", "0b1010", "0o17") or variable names.
package worksheet

import (
	"errors"
	"fmt"
	"io"
	"regexp"

	"github.com/avdva/bitforge"
	"gopkg.in/yaml.v3"
)

// DefaultWidth is the bit width used when a worksheet does not set one.
const DefaultWidth = 8

var identRe = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

// Sheet is a parsed worksheet.
type Sheet struct {
	Width     int               `yaml:"width,omitempty"`
	CodePage  string            `yaml:"code_page,omitempty"`
	MaxShift  int               `yaml:"max_shift,omitempty"`
	Variables map[string]string `yaml:"variables,omitempty"`
	Steps     []Step            `yaml:"steps"`
}

// Step is a single calculation. Exactly one of the kinds must be set.
type Step struct {
	Name    string       `yaml:"name,omitempty"`
	Convert *ConvertStep `yaml:"convert,omitempty"`
	Operate *OperateStep `yaml:"operate,omitempty"`
	Twos    *TwosStep    `yaml:"twos,omitempty"`
	Float   *FloatStep   `yaml:"float,omitempty"`
	Expr    *ExprStep    `yaml:"expr,omitempty"`
	Compare *CompareStep `yaml:"compare,omitempty"`
	Color   *string      `yaml:"color,omitempty"`
	Char    *CharStep    `yaml:"char,omitempty"`
}

// ConvertStep converts a value to other bases.
type ConvertStep struct {
	Value string `yaml:"value"`
	// From is the base of Value. If empty, the base is taken from the literal prefix.
	From string `yaml:"from,omitempty"`
	// To lists target bases. If empty, all bases are used.
	To []string `yaml:"to,omitempty"`
	// Group splits binary results into groups of Group digits.
	Group int `yaml:"group,omitempty"`
}

// OperateStep applies a bitwise operation.
type OperateStep struct {
	Op string `yaml:"op"`
	A  string `yaml:"a"`
	B  string `yaml:"b,omitempty"`
	// Width overrides the session width.
	Width int `yaml:"width,omitempty"`
	// Shift is the shift amount, 1 if not set.
	Shift     *int   `yaml:"shift,omitempty"`
	Visualize bool   `yaml:"visualize,omitempty"`
	Assign    string `yaml:"assign,omitempty"`
}

// TwosStep encodes Value or decodes the Decode bit string.
type TwosStep struct {
	Value  string `yaml:"value,omitempty"`
	Decode string `yaml:"decode,omitempty"`
	Width  int    `yaml:"width,omitempty"`
}

// FloatStep decomposes a floating-point number given as Value, or as a raw Bits pattern.
type FloatStep struct {
	Value     string `yaml:"value,omitempty"`
	Bits      string `yaml:"bits,omitempty"`
	Precision int    `yaml:"precision,omitempty"`
}

// ExprStep evaluates an expression and optionally stores the result in a variable.
type ExprStep struct {
	Value  string `yaml:"value"`
	Assign string `yaml:"assign,omitempty"`
}

// CompareStep compares two values.
type CompareStep struct {
	A string `yaml:"a"`
	B string `yaml:"b"`
}

// CharStep describes a single character by Code or Char,
// or lists the codes matching Filter and Search.
type CharStep struct {
	Code   *int   `yaml:"code,omitempty"`
	Char   string `yaml:"char,omitempty"`
	Filter string `yaml:"filter,omitempty"`
	Search string `yaml:"search,omitempty"`
}

// Kind returns the name of the step kind, or an empty string, if the number of set kinds is not 1.
func (s Step) Kind() string {
	var kind string
	var n int
	set := func(ok bool, name string) {
		if ok {
			kind = name
			n++
		}
	}
	set(s.Convert != nil, "convert")
	set(s.Operate != nil, "operate")
	set(s.Twos != nil, "twos")
	set(s.Float != nil, "float")
	set(s.Expr != nil, "expr")
	set(s.Compare != nil, "compare")
	set(s.Color != nil, "color")
	set(s.Char != nil, "char")
	if n != 1 {
		return ""
	}
	return kind
}

// Load reads a worksheet and validates its structure.
// Unknown keys are errors. Values are validated only when the steps run.
func Load(r io.Reader) (*Sheet, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	var sheet Sheet
	if err := dec.Decode(&sheet); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("%w: empty worksheet", bitforge.ErrParse)
		}
		return nil, fmt.Errorf("%w: %v", bitforge.ErrParse, err)
	}
	if err := sheet.validate(); err != nil {
		return nil, err
	}
	return &sheet, nil
}

func (sh *Sheet) validate() error {
	if sh.Width < 0 {
		return fmt.Errorf("%w: %d", bitforge.ErrBitWidth, sh.Width)
	}
	if sh.Width == 0 {
		sh.Width = DefaultWidth
	}
	for name := range sh.Variables {
		if !identRe.MatchString(name) {
			return fmt.Errorf("%w: invalid variable name %q", bitforge.ErrParse, name)
		}
	}
	for i, step := range sh.Steps {
		if step.Kind() == "" {
			return fmt.Errorf("%w: step %d: expected exactly one of convert, operate, twos, float, expr, compare, color, char",
				bitforge.ErrParse, i+1)
		}
		if assign := step.assign(); len(assign) > 0 && !identRe.MatchString(assign) {
			return fmt.Errorf("%w: step %d: invalid variable name %q", bitforge.ErrParse, i+1, assign)
		}
	}
	return nil
}

func (s Step) assign() string {
	switch {
	case s.Operate != nil:
		return s.Operate.Assign
	case s.Expr != nil:
		return s.Expr.Assign
	default:
		return ""
	}
}
