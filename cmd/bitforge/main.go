// Copyright 2020 Aleksandr Demakin. All rights reserved.

// Command bitforge runs a YAML worksheet of number conversions, bitwise operations
// and encodings, and prints the results.
//
// Usage:
//
//	bitforge [-format yaml|json|text] [-v] [worksheet.yaml]
//
// The worksheet is read from stdin, if no file is given.
// The exit code is 1, if the worksheet can not be loaded, and 2, if any step failed.
package main

import (
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/avdva/bitforge/internal/worksheet"
	"gopkg.in/yaml.v3"
)

const (
	exitOK = iota
	exitLoad
	exitStepFailed
)

var writers = map[string]func(io.Writer, []worksheet.StepResult) error{
	"yaml": writeYAML,
	"json": writeJSON,
	"text": writeText,
}

func main() {
	os.Exit(run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}

func run(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("bitforge", flag.ContinueOnError)
	fs.SetOutput(stderr)
	format := fs.String("format", "yaml", "output format: yaml, json or text")
	verbose := fs.Bool("v", false, "log every step")
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return exitOK
		}
		return exitLoad
	}
	level := slog.LevelInfo
	if *verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level}))

	write, found := writers[strings.ToLower(*format)]
	if !found {
		logger.Error("unknown output format", "format", *format)
		return exitLoad
	}
	if fs.NArg() > 1 {
		logger.Error("expected at most one worksheet", "args", fs.Args())
		return exitLoad
	}
	in, source := stdin, "stdin"
	if fs.NArg() == 1 {
		source = fs.Arg(0)
		f, err := os.Open(source)
		if err != nil {
			logger.Error("opening worksheet failed", "err", err)
			return exitLoad
		}
		defer f.Close()
		in = f
	}

	sheet, err := worksheet.Load(in)
	if err != nil {
		logger.Error("loading worksheet failed", "source", source, "err", err)
		return exitLoad
	}
	session, err := worksheet.NewSession(sheet, logger)
	if err != nil {
		logger.Error("initializing session failed", "source", source, "err", err)
		return exitLoad
	}
	logger.Debug("worksheet loaded", "source", source, "steps", len(sheet.Steps), "width", sheet.Width)

	results := session.Run(sheet)
	if err := write(stdout, results); err != nil {
		logger.Error("writing results failed", "err", err)
		return exitLoad
	}
	var failed int
	for _, r := range results {
		if r.Failed() {
			failed++
		}
	}
	if failed > 0 {
		logger.Info("some steps failed", "failed", failed, "total", len(results))
		return exitStepFailed
	}
	return exitOK
}

func writeYAML(w io.Writer, results []worksheet.StepResult) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(results); err != nil {
		return err
	}
	return enc.Close()
}

func writeJSON(w io.Writer, results []worksheet.StepResult) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(results)
}

// writeText prints a header per step, followed by the indented YAML of its output.
func writeText(w io.Writer, results []worksheet.StepResult) error {
	for _, r := range results {
		title := fmt.Sprintf("#%d %s", r.Index, r.Kind)
		if len(r.Name) > 0 {
			title += " (" + r.Name + ")"
		}
		if r.Failed() {
			if _, err := fmt.Fprintf(w, "%s: error: %s\n", title, r.Error); err != nil {
				return err
			}
			continue
		}
		out, err := yaml.Marshal(r.Output)
		if err != nil {
			return err
		}
		if _, err := fmt.Fprintf(w, "%s:\n", title); err != nil {
			return err
		}
		for _, line := range strings.Split(strings.TrimRight(string(out), "\n"), "\n") {
			if _, err := fmt.Fprintf(w, "  %s\n", line); err != nil {
				return err
			}
		}
	}
	return nil
}
