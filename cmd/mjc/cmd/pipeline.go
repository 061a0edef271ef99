package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/mjcompiler/mjc/internal/ast"
	"github.com/mjcompiler/mjc/internal/errors"
	"github.com/mjcompiler/mjc/internal/intern"
	"github.com/mjcompiler/mjc/internal/lexer"
	"github.com/mjcompiler/mjc/internal/parser"
	"github.com/mjcompiler/mjc/internal/semantic"
)

// readInput reads MJ source from args[0], or from stdin if no file was
// given.
func readInput(args []string) (string, error) {
	if len(args) > 0 {
		data, err := os.ReadFile(args[0])
		if err != nil {
			return "", fmt.Errorf("reading %s: %w", args[0], err)
		}
		return string(data), nil
	}
	data, err := io.ReadAll(os.Stdin)
	if err != nil {
		return "", fmt.Errorf("reading stdin: %w", err)
	}
	return string(data), nil
}

// parseSource runs the lexer and parser over src, reporting parse
// errors as a single combined error.
func parseSource(src string, names *intern.Table) (*ast.Node, error) {
	l := lexer.New(src, names)
	p := parser.New(l, names)
	root := p.ParseProgram()
	if errs := p.Errors(); len(errs) > 0 {
		msg := "parsing failed:"
		for _, e := range errs {
			msg += "\n  " + e
		}
		return nil, fmt.Errorf("%s", msg)
	}
	return root, nil
}

// analyzeSource parses and semantically analyzes src, returning the
// populated analyzer (whose Reporter holds the diagnostics) and the
// name table regardless of whether any diagnostics fired; callers
// decide how to act on Reporter.Errors / Reporter.Aborted.
func analyzeSource(src string, cfg semantic.Config) (*semantic.Analyzer, *intern.Table, error) {
	names := intern.New()
	root, err := parseSource(src, names)
	if err != nil {
		return nil, nil, err
	}

	reporter := errors.NewReporter(names, nil)
	a := semantic.NewAnalyzer(names, reporter, cfg)
	a.Analyze(root)
	return a, names, nil
}
