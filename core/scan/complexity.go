package scan

import (
	"bytes"
	"context"
	"path/filepath"
	"strings"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/golang"
)

// measureComplexity returns the structural complexity for one file. Go files
// get a real syntax-tree count; everything else falls back to a keyword
// heuristic that deliberately trades precision for zero parser dependencies.
// The result is always at least 1.
func measureComplexity(ctx context.Context, path string, content []byte) int {
	if strings.ToLower(filepath.Ext(path)) == ".go" {
		return goComplexity(ctx, content)
	}
	return keywordComplexity(content)
}

// goComplexity counts decision points and declarations in a Go syntax tree.
// Each branching statement, each declaration and each short-circuit operator
// adds one on top of the baseline of 1. Files that fail to parse get the
// markup fallback instead, mirroring how mislabeled template files behave.
func goComplexity(ctx context.Context, content []byte) int {
	// A parser instance is not safe for concurrent use, so each call gets
	// its own.
	parser := sitter.NewParser()
	parser.SetLanguage(golang.GetLanguage())

	tree, err := parser.ParseCtx(ctx, nil, content)
	if err != nil {
		return markupComplexity(content)
	}
	defer tree.Close()

	root := tree.RootNode()
	if root == nil || root.HasError() {
		return markupComplexity(content)
	}

	complexity := 1
	stack := []*sitter.Node{root}
	for len(stack) > 0 {
		node := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		switch node.Type() {
		case "if_statement", "for_statement", "expression_switch_statement",
			"type_switch_statement", "select_statement", "defer_statement":
			complexity++
		case "function_declaration", "method_declaration", "func_literal",
			"type_declaration":
			complexity++
		case "binary_expression":
			// Only short-circuit operators add a decision point. A chain
			// of n operands nests n-1 binary expressions, so each one
			// counts exactly once.
			if op := node.ChildByFieldName("operator"); op != nil {
				switch string(content[op.StartByte():op.EndByte()]) {
				case "&&", "||":
					complexity++
				}
			}
		}

		for i := 0; i < int(node.ChildCount()); i++ {
			stack = append(stack, node.Child(i))
		}
	}
	return complexity
}

// markupComplexity is the fallback for Go files that do not parse. Broken
// parses in practice come from templated or generated markup carrying a .go
// extension, so structural density is approximated by container tags.
func markupComplexity(content []byte) int {
	return 1 +
		bytes.Count(content, []byte("<div")) +
		bytes.Count(content, []byte("<section"))
}

// keywordComplexity approximates complexity for languages the pipeline does
// not parse. Counting definition and branch keywords overshoots on comments
// and strings, which is acceptable: scores are normalized against the
// repository maximum, not read as absolute values.
func keywordComplexity(content []byte) int {
	return 1 +
		bytes.Count(content, []byte("function ")) +
		bytes.Count(content, []byte("class ")) +
		bytes.Count(content, []byte("if ("))
}
