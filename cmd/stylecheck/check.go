// If you are AI: This file implements the individual style checks used by stylecheck.

package main

import (
	"fmt"
	"go/ast"
	"go/parser"
	"go/token"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// maxLines is the per-file line limit.
const maxLines = 300

// aiHeader must appear in every non-test source file.
const aiHeader = "If you are AI:"

// Check walks root and returns one message per violation.
// Directories the go tool ignores (vendor, testdata, names starting with _ or .) are skipped.
func Check(root string) ([]string, error) {
	var failures []string
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if path != root && skipDir(d.Name()) {
				return filepath.SkipDir
			}
			return nil
		}
		if !strings.HasSuffix(path, ".go") {
			return nil
		}

		data, err := os.ReadFile(path)
		if err != nil {
			return err
		}
		failures = append(failures, checkFile(path, data)...)
		return nil
	})
	return failures, err
}

// skipDir reports whether a directory is outside the build.
func skipDir(name string) bool {
	return name == "vendor" || name == "testdata" || strings.HasPrefix(name, "_") || strings.HasPrefix(name, ".")
}

// checkFile applies all rules to one file.
func checkFile(path string, data []byte) []string {
	var failures []string
	if lines := strings.Count(string(data), "\n"); lines > maxLines {
		failures = append(failures, fmt.Sprintf("%s: %d lines (max %d)", path, lines, maxLines))
	}

	// Test files may omit headers and comments.
	if strings.HasSuffix(path, "_test.go") {
		return failures
	}
	if !strings.Contains(string(data), aiHeader) {
		failures = append(failures, fmt.Sprintf("%s: missing '%s' header", path, aiHeader))
	}
	return append(failures, checkComments(path, data)...)
}

// checkComments reports functions without a doc comment.
// Files that do not parse are skipped; the compiler reports those.
func checkComments(path string, data []byte) []string {
	fset := token.NewFileSet()
	f, err := parser.ParseFile(fset, path, data, parser.ParseComments)
	if err != nil {
		return nil
	}

	var failures []string
	for _, decl := range f.Decls {
		fn, ok := decl.(*ast.FuncDecl)
		if !ok {
			continue
		}
		if strings.HasPrefix(fn.Name.Name, "Test") || strings.HasPrefix(fn.Name.Name, "Benchmark") {
			continue
		}
		if fn.Doc == nil || len(fn.Doc.List) == 0 {
			pos := fset.Position(fn.Pos())
			failures = append(failures, fmt.Sprintf("%s:%d: function %s missing comment", path, pos.Line, fn.Name.Name))
		}
	}
	return failures
}
