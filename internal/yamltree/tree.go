// Package yamltree parses YAML documents into generic trees and provides
// safe dotted-path access into them.
package yamltree

import (
	"fmt"
	"regexp"
	"strings"

	"gopkg.in/yaml.v3"
)

// Tree is a parsed YAML mapping. A nil Tree means the document decoded
// to nothing (empty file or only comments).
type Tree map[string]any

// SyntaxError describes a document that could not be parsed. Line is
// 1-based; 0 means the parser did not report a position.
type SyntaxError struct {
	Line    int
	Message string
}

// Error returns the formatted syntax error with position when known.
func (e *SyntaxError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("YAML syntax error at line %d: %s", e.Line, e.Message)
	}
	return fmt.Sprintf("YAML syntax error: %s", e.Message)
}

// yamlLineRe matches the position prefix yaml.v3 embeds in parse errors.
var yamlLineRe = regexp.MustCompile(`yaml: line (\d+): (.*)`)

// Parse decodes content into a Tree. Parse failures are returned as
// *SyntaxError with the line number extracted from the parser's message
// when it reports one.
func Parse(content string) (Tree, error) {
	var tree Tree
	if err := yaml.Unmarshal([]byte(content), &tree); err != nil {
		if m := yamlLineRe.FindStringSubmatch(err.Error()); m != nil {
			line := 0
			fmt.Sscanf(m[1], "%d", &line)
			return nil, &SyntaxError{Line: line, Message: m[2]}
		}
		return nil, &SyntaxError{Message: strings.TrimPrefix(err.Error(), "yaml: ")}
	}
	return tree, nil
}

// Get resolves a dotted path like "a.b.c" against the tree. It returns
// the value and true when every segment resolves, or nil and false when
// any intermediate or leaf is absent. Absence is never an error: the
// comma-ok result is the caller's required-vs-optional decision point.
func Get(tree Tree, path string) (any, bool) {
	var current any = map[string]any(tree)
	for _, segment := range strings.Split(path, ".") {
		mapping, ok := current.(map[string]any)
		if !ok {
			return nil, false
		}
		current, ok = mapping[segment]
		if !ok {
			return nil, false
		}
	}
	return current, true
}

// FirstOf resolves the first path that is present in the tree, returning
// its value and path. Used for fields with old and new spellings where
// the first match wins.
func FirstOf(tree Tree, paths ...string) (any, string, bool) {
	for _, path := range paths {
		if value, ok := Get(tree, path); ok {
			return value, path, true
		}
	}
	return nil, "", false
}

// IsEmpty reports whether the document decoded to nothing.
func IsEmpty(tree Tree) bool {
	return tree == nil
}

// AsString returns v as a string when it is one.
func AsString(v any) (string, bool) {
	s, ok := v.(string)
	return s, ok
}

// AsInt returns v as an int when the YAML scalar was an integer.
func AsInt(v any) (int, bool) {
	switch n := v.(type) {
	case int:
		return n, true
	case int64:
		return int(n), true
	default:
		return 0, false
	}
}

// AsNumber returns v as a float64 when the YAML scalar was an integer
// or a float.
func AsNumber(v any) (float64, bool) {
	switch n := v.(type) {
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	case float64:
		return n, true
	default:
		return 0, false
	}
}

// AsBool returns v as a bool when it is one.
func AsBool(v any) (bool, bool) {
	b, ok := v.(bool)
	return b, ok
}

// AsMapping returns v as a string-keyed mapping when it is one.
func AsMapping(v any) (map[string]any, bool) {
	m, ok := v.(map[string]any)
	return m, ok
}

// AsSequence returns v as a sequence when it is one.
func AsSequence(v any) ([]any, bool) {
	s, ok := v.([]any)
	return s, ok
}
