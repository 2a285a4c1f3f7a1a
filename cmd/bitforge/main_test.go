// Copyright 2020 Aleksandr Demakin. All rights reserved.

package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

const sheet = `
variables: {A: "0xAA", B: "85"}
steps:
  - name: and
    operate: {op: and, a: A, b: B}
  - convert: {value: "0b1111", to: [hex]}
`

func TestRunYAML(t *testing.T) {
	a := assert.New(t)
	var stdout, stderr bytes.Buffer
	code := run(nil, strings.NewReader(sheet), &stdout, &stderr)
	a.Equal(exitOK, code, stderr.String())

	var results []map[string]interface{}
	require.NoError(t, yaml.Unmarshal(stdout.Bytes(), &results))
	require.Len(t, results, 2)
	a.Equal("and", results[0]["name"])
	a.Equal("operate", results[0]["kind"])
	out := results[0]["output"].(map[string]interface{})
	a.Equal("0", out["result"])
	a.Equal("00000000", out["binary"])
	out = results[1]["output"].(map[string]interface{})
	a.Equal(map[string]interface{}{"hex": "F"}, out["results"])
}

func TestRunJSONFromFile(t *testing.T) {
	a := assert.New(t)
	path := filepath.Join(t.TempDir(), "sheet.yaml")
	require.NoError(t, os.WriteFile(path, []byte(sheet), 0o600))
	var stdout, stderr bytes.Buffer
	code := run([]string{"-format", "json", "-v", path}, nil, &stdout, &stderr)
	a.Equal(exitOK, code, stderr.String())

	var results []struct {
		Index  int                    `json:"index"`
		Kind   string                 `json:"kind"`
		Output map[string]interface{} `json:"output"`
	}
	require.NoError(t, json.Unmarshal(stdout.Bytes(), &results))
	require.Len(t, results, 2)
	a.Equal(2, results[1].Index)
	a.Equal("convert", results[1].Kind)
	a.Equal("15", results[1].Output["decimal"])
	a.Contains(stderr.String(), "running step")
}

func TestRunText(t *testing.T) {
	a := assert.New(t)
	var stdout, stderr bytes.Buffer
	doc := "steps:\n  - color: \"#abc\"\n  - char: {code: 999}\n"
	code := run([]string{"-format", "text"}, strings.NewReader(doc), &stdout, &stderr)
	a.Equal(exitStepFailed, code)
	text := stdout.String()
	a.True(strings.HasPrefix(text, "#1 color:\n  hex: "), text)
	a.Contains(text, "#AABBCC")
	a.Contains(text, "  css:\n")
	a.Contains(text, "#2 char: error: value out of range")
	a.Contains(stderr.String(), "step failed")
	a.NotContains(stderr.String(), "running step")
}

func TestRunErrors(t *testing.T) {
	a := assert.New(t)
	tests := []struct {
		args []string
		doc  string
	}{
		{nil, "steps: [{bogus: 1}]"},
		{nil, ""},
		{[]string{"-format", "xml"}, sheet},
		{[]string{"a.yaml", "b.yaml"}, sheet},
		{[]string{filepath.Join(os.TempDir(), "no", "such", "sheet.yaml")}, ""},
		{[]string{"-nosuchflag"}, sheet},
		{nil, "code_page: ebcdic\nsteps: []"},
	}
	for _, test := range tests {
		var stdout, stderr bytes.Buffer
		a.Equal(exitLoad, run(test.args, strings.NewReader(test.doc), &stdout, &stderr), "%v %q", test.args, test.doc)
		a.Empty(stdout.String())
	}
}
