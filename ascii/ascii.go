// Copyright 2020 Aleksandr Demakin. All rights reserved.

// Package ascii provides a table of the 256 single-byte character codes.
// Codes 0-127 are ASCII, codes 128-255 are decoded with a code page.
package ascii

import (
	"fmt"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/avdva/bitforge"
	"golang.org/x/text/encoding/charmap"
)

// Size is the number of codes in the table.
const Size = 256

const del = 127

var controlNames = [...]string{
	"NUL", "SOH", "STX", "ETX", "EOT", "ENQ", "ACK", "BEL",
	"BS", "TAB", "LF", "VT", "FF", "CR", "SO", "SI",
	"DLE", "DC1", "DC2", "DC3", "DC4", "NAK", "SYN", "ETB",
	"CAN", "EM", "SUB", "ESC", "FS", "GS", "RS", "US",
}

var codePages = map[string]*charmap.Charmap{
	"iso-8859-1":   charmap.ISO8859_1,
	"latin1":       charmap.ISO8859_1,
	"iso-8859-15":  charmap.ISO8859_15,
	"windows-1252": charmap.Windows1252,
	"cp1252":       charmap.Windows1252,
	"cp437":        charmap.CodePage437,
	"ibm437":       charmap.CodePage437,
	"koi8-r":       charmap.KOI8R,
}

// Filter selects a range of codes.
type Filter int

const (
	// All is 0-255.
	All Filter = iota
	// Control is 0-31 and 127.
	Control
	// Printable is 32-126.
	Printable
	// Extended is 128-255.
	Extended
)

var filterNames = [...]string{"all", "control", "printable", "extended"}

func (f Filter) String() string {
	if f < 0 || int(f) >= len(filterNames) {
		return fmt.Sprintf("filter(%d)", int(f))
	}
	return filterNames[f]
}

// ParseFilter returns a filter by its name. An empty name means All.
func ParseFilter(name string) (Filter, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	if len(name) == 0 {
		return All, nil
	}
	for i, n := range filterNames {
		if n == name {
			return Filter(i), nil
		}
	}
	return All, fmt.Errorf("%w: unknown filter %q", bitforge.ErrParse, name)
}

func (f Filter) codes() []int {
	var res []int
	switch f {
	case Control:
		res = make([]int, 0, len(controlNames)+1)
		for i := range controlNames {
			res = append(res, i)
		}
		res = append(res, del)
	case Printable:
		res = rangeOf(32, 126)
	case Extended:
		res = rangeOf(128, Size-1)
	default:
		res = rangeOf(0, Size-1)
	}
	return res
}

func rangeOf(from, to int) []int {
	res := make([]int, 0, to-from+1)
	for i := from; i <= to; i++ {
		res = append(res, i)
	}
	return res
}

// ParseCodePage returns a code page by name, like "iso-8859-1", "windows-1252" or "cp437".
// An empty name means ISO-8859-1.
func ParseCodePage(name string) (*charmap.Charmap, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	if len(name) == 0 {
		return charmap.ISO8859_1, nil
	}
	if cp, found := codePages[name]; found {
		return cp, nil
	}
	return nil, fmt.Errorf("%w: unknown code page %q", bitforge.ErrParse, name)
}

// IsControl returns true for the codes 0-31 and 127.
func IsControl(code int) bool {
	return code >= 0 && code < len(controlNames) || code == del
}

// ControlName returns the mnemonic of a control code, like "NUL" or "DEL",
// or an empty string, if the code is not a control one.
func ControlName(code int) string {
	switch {
	case code == del:
		return "DEL"
	case code >= 0 && code < len(controlNames):
		return controlNames[code]
	default:
		return ""
	}
}

// CharInfo describes a single code.
type CharInfo struct {
	// Char is the character itself, or the mnemonic of a control code.
	Char      string `json:"char" yaml:"char"`
	Code      int    `json:"code" yaml:"code"`
	Hex       string `json:"hex" yaml:"hex"`
	Binary    string `json:"binary" yaml:"binary"`
	Octal     string `json:"octal" yaml:"octal"`
	IsControl bool   `json:"is_control" yaml:"is_control"`
	// Name is the control code mnemonic, empty for other codes.
	Name string `json:"name,omitempty" yaml:"name,omitempty"`
}

// Table renders codes with a code page.
// The zero value uses ISO-8859-1, where every code maps to the same Unicode code point.
type Table struct {
	CodePage *charmap.Charmap
}

func (t Table) codePage() *charmap.Charmap {
	if t.CodePage == nil {
		return charmap.ISO8859_1
	}
	return t.CodePage
}

// Char returns the display form of a code: the mnemonic for control codes, the character otherwise.
// Codes out of 0-255 give "?".
func (t Table) Char(code int) string {
	switch {
	case IsControl(code):
		return ControlName(code)
	case code < 0 || code >= Size:
		return "?"
	default:
		return string(t.codePage().DecodeByte(byte(code)))
	}
}

// Info returns the description of a code.
// Returns an error wrapping bitforge.ErrOutOfRange, if the code is not in 0-255.
func (t Table) Info(code int) (CharInfo, error) {
	if code < 0 || code >= Size {
		return CharInfo{}, fmt.Errorf("%w: character code %d is not in [0, %d]", bitforge.ErrOutOfRange, code, Size-1)
	}
	return CharInfo{
		Char:      t.Char(code),
		Code:      code,
		Hex:       fmt.Sprintf("%02X", code),
		Binary:    fmt.Sprintf("%08b", code),
		Octal:     strconv.FormatInt(int64(code), 8),
		IsControl: IsControl(code),
		Name:      ControlName(code),
	}, nil
}

// Lookup returns the description of the first character of s.
// The character must be representable in the code page.
func (t Table) Lookup(s string) (CharInfo, error) {
	r, size := utf8.DecodeRuneInString(s)
	if size == 0 {
		return CharInfo{}, fmt.Errorf("%w: empty string", bitforge.ErrParse)
	}
	if r < 0x80 {
		return t.Info(int(r))
	}
	b, ok := t.codePage().EncodeRune(r)
	if !ok {
		return CharInfo{}, fmt.Errorf("%w: %q is not in the %v code page", bitforge.ErrOutOfRange, r, t.codePage())
	}
	return t.Info(int(b))
}

// Codes returns the codes selected by the filter, which match the search term.
// A code matches, if its character, decimal code, lowercase hex code or control name
// contains the term. The comparison is case-insensitive, an empty term matches everything.
func (t Table) Codes(f Filter, search string) []int {
	codes := f.codes()
	term := strings.ToLower(search)
	if len(term) == 0 {
		return codes
	}
	res := codes[:0]
	for _, code := range codes {
		if t.matches(code, term) {
			res = append(res, code)
		}
	}
	return res
}

func (t Table) matches(code int, term string) bool {
	return strings.Contains(strings.ToLower(t.Char(code)), term) ||
		strings.Contains(strconv.Itoa(code), term) ||
		strings.Contains(strconv.FormatInt(int64(code), 16), term) ||
		strings.Contains(strings.ToLower(ControlName(code)), term)
}
