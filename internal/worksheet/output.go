// Copyright 2020 Aleksandr Demakin. All rights reserved.

package worksheet

import (
	"github.com/avdva/bitforge/ascii"
	"github.com/avdva/bitforge/colorcode"
)

// StepResult is the outcome of a single step.
// Output is one of the *Output types of this package, or nil, if the step failed.
// Integers in outputs are decimal strings, so JSON consumers do not lose precision.
type StepResult struct {
	Index  int         `json:"index" yaml:"index"`
	Name   string      `json:"name,omitempty" yaml:"name,omitempty"`
	Kind   string      `json:"kind" yaml:"kind"`
	Output interface{} `json:"output,omitempty" yaml:"output,omitempty"`
	Error  string      `json:"error,omitempty" yaml:"error,omitempty"`
}

// Failed returns true, if the step returned an error.
func (r StepResult) Failed() bool {
	return len(r.Error) > 0
}

// ConvertOutput maps base names to digit strings.
type ConvertOutput struct {
	Decimal string            `json:"decimal" yaml:"decimal"`
	Results map[string]string `json:"results" yaml:"results"`
}

// OperateOutput is the result of a bitwise operation.
type OperateOutput struct {
	Op     string          `json:"op" yaml:"op"`
	Symbol string          `json:"symbol" yaml:"symbol"`
	A      string          `json:"a" yaml:"a"`
	B      string          `json:"b,omitempty" yaml:"b,omitempty"`
	Width  int             `json:"width" yaml:"width"`
	Result string          `json:"result" yaml:"result"`
	Binary string          `json:"binary" yaml:"binary"`
	Hex    string          `json:"hex" yaml:"hex"`
	Steps  []BitStepOutput `json:"steps,omitempty" yaml:"steps,omitempty"`
}

// BitStepOutput is a single bit of a visualized operation.
type BitStepOutput struct {
	Position int    `json:"position" yaml:"position"`
	A        uint8  `json:"a" yaml:"a"`
	B        uint8  `json:"b" yaml:"b"`
	Result   uint8  `json:"result" yaml:"result"`
	Partial  string `json:"partial" yaml:"partial"`
}

// TwosOutput is a two's complement encoding or decoding.
type TwosOutput struct {
	Value    string `json:"value" yaml:"value"`
	Width    int    `json:"width" yaml:"width"`
	Original string `json:"original,omitempty" yaml:"original,omitempty"`
	Inverted string `json:"inverted,omitempty" yaml:"inverted,omitempty"`
	Bits     string `json:"bits" yaml:"bits"`
	Hex      string `json:"hex,omitempty" yaml:"hex,omitempty"`
	Min      string `json:"min" yaml:"min"`
	Max      string `json:"max" yaml:"max"`
	InRange  bool   `json:"in_range" yaml:"in_range"`
}

// FloatOutput is the decomposition of a floating-point number.
type FloatOutput struct {
	Value          string `json:"value" yaml:"value"`
	Precision      int    `json:"precision" yaml:"precision"`
	Class          string `json:"class" yaml:"class"`
	Sign           uint8  `json:"sign" yaml:"sign"`
	Exponent       uint64 `json:"exponent" yaml:"exponent"`
	ActualExponent int    `json:"actual_exponent" yaml:"actual_exponent"`
	Mantissa       uint64 `json:"mantissa" yaml:"mantissa"`
	Bits           string `json:"bits" yaml:"bits"`
	Hex            string `json:"hex" yaml:"hex"`
	Significand    string `json:"significand" yaml:"significand"`
	Exact          string `json:"exact,omitempty" yaml:"exact,omitempty"`
	Formula        string `json:"formula" yaml:"formula"`
}

// ExprOutput is the value of an expression.
type ExprOutput struct {
	Expr    string `json:"expr" yaml:"expr"`
	Decimal string `json:"decimal" yaml:"decimal"`
	Hex     string `json:"hex" yaml:"hex"`
	Binary  string `json:"binary" yaml:"binary"`
}

// CompareOutput is a side-by-side comparison.
type CompareOutput struct {
	Width      int    `json:"width" yaml:"width"`
	A          string `json:"a" yaml:"a"`
	B          string `json:"b" yaml:"b"`
	Diff       string `json:"diff" yaml:"diff"`
	Xor        string `json:"xor" yaml:"xor"`
	XorHex     string `json:"xor_hex" yaml:"xor_hex"`
	Hamming    int    `json:"hamming" yaml:"hamming"`
	Similarity string `json:"similarity" yaml:"similarity"`
}

// ColorOutput describes a color.
type ColorOutput struct {
	Hex    string        `json:"hex" yaml:"hex"`
	RGB    colorcode.RGB `json:"rgb" yaml:"rgb"`
	HSL    colorcode.HSL `json:"hsl" yaml:"hsl"`
	CSS    []string      `json:"css" yaml:"css"`
	Binary string        `json:"binary" yaml:"binary"`
}

// CharOutput describes characters: a single one for a code lookup, any number for a search.
type CharOutput struct {
	Chars []ascii.CharInfo `json:"chars" yaml:"chars"`
}
