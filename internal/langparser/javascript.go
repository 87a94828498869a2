package langparser

import (
	"fmt"
	"strings"

	sitter "github.com/tree-sitter/go-tree-sitter"
	tsjavascript "github.com/tree-sitter/tree-sitter-javascript/bindings/go"
	tstypescript "github.com/tree-sitter/tree-sitter-typescript/bindings/go"

	"github.com/similarity-go/similarity/domain"
)

// JSAdapter implements domain.Parser for JavaScript and TypeScript,
// grounded in XTheocharis-crush's go.mod (tree-sitter-javascript,
// tree-sitter-typescript) and the same GetParser-by-extension dispatch
// shown in other_examples' duynguyendang-gca extractor. A single adapter
// value picks its grammar per-call from the filename extension, since .ts,
// .tsx and .js/.jsx each need a distinct tree-sitter language.
type JSAdapter struct {
	jsParser  *sitter.Parser
	tsParser  *sitter.Parser
	tsxParser *sitter.Parser
	tag       domain.LanguageTag
}

func NewJSAdapter() (*JSAdapter, error) {
	jsParser := sitter.NewParser()
	if err := jsParser.SetLanguage(sitter.NewLanguage(tsjavascript.Language())); err != nil {
		return nil, fmt.Errorf("set javascript language: %w", err)
	}

	tsParser := sitter.NewParser()
	if err := tsParser.SetLanguage(sitter.NewLanguage(tstypescript.LanguageTypescript())); err != nil {
		return nil, fmt.Errorf("set typescript language: %w", err)
	}

	tsxParser := sitter.NewParser()
	if err := tsxParser.SetLanguage(sitter.NewLanguage(tstypescript.LanguageTSX())); err != nil {
		return nil, fmt.Errorf("set tsx language: %w", err)
	}

	return &JSAdapter{jsParser: jsParser, tsParser: tsParser, tsxParser: tsxParser, tag: domain.LanguageJavaScript}, nil
}

func (j *JSAdapter) Language() domain.LanguageTag {
	return j.tag
}

func (j *JSAdapter) parserFor(filename string) *sitter.Parser {
	switch {
	case strings.HasSuffix(filename, ".tsx"):
		return j.tsxParser
	case strings.HasSuffix(filename, ".ts"):
		return j.tsParser
	default:
		return j.jsParser
	}
}

func (j *JSAdapter) Parse(source []byte, filename string) (*domain.TreeNode, error) {
	tree := j.parserFor(filename).Parse(source, nil)
	if tree == nil {
		return nil, fmt.Errorf("tree-sitter: parse returned nil for %s", filename)
	}
	defer tree.Close()
	id := 0
	return convertTSNode(tree.RootNode(), source, &id), nil
}

func (j *JSAdapter) ExtractFunctions(source []byte, filename string) ([]*domain.FunctionDef, error) {
	tree := j.parserFor(filename).Parse(source, nil)
	if tree == nil {
		return nil, fmt.Errorf("tree-sitter: parse returned nil for %s", filename)
	}
	defer tree.Close()

	var functions []*domain.FunctionDef
	collectJSFunctions(tree.RootNode(), source, "", false, &functions)
	return functions, nil
}

var jsFunctionKinds = map[string]bool{
	"function_declaration":           true,
	"function_expression":            true,
	"arrow_function":                 true,
	"generator_function":             true,
	"generator_function_declaration": true,
	"method_definition":               true,
}

func collectJSFunctions(n *sitter.Node, source []byte, className string, inClass bool, out *[]*domain.FunctionDef) {
	if n == nil {
		return
	}

	if n.Kind() == "class_declaration" || n.Kind() == "class" {
		name := ""
		if id := n.ChildByFieldName("name"); id != nil {
			name = id.Utf8Text(source)
		}
		count := n.ChildCount()
		for i := uint(0); i < count; i++ {
			collectJSFunctions(n.Child(i), source, name, true, out)
		}
		return
	}

	if jsFunctionKinds[n.Kind()] {
		if fn := buildJSFunctionDef(n, source, inClass, className); fn != nil {
			*out = append(*out, fn)
		}
	}

	count := n.ChildCount()
	for i := uint(0); i < count; i++ {
		collectJSFunctions(n.Child(i), source, className, inClass, out)
	}
}

func buildJSFunctionDef(n *sitter.Node, source []byte, isMethod bool, className string) *domain.FunctionDef {
	name := ""
	if id := n.ChildByFieldName("name"); id != nil {
		name = id.Utf8Text(source)
	}
	if name == "" {
		name = fmt.Sprintf("anon@%d:%d", n.StartPosition().Row+1, n.StartPosition().Column+1)
	}

	var params []string
	if paramList := n.ChildByFieldName("parameters"); paramList != nil {
		count := paramList.ChildCount()
		for i := uint(0); i < count; i++ {
			p := paramList.Child(i)
			if p.Kind() == "identifier" || p.Kind() == "required_parameter" || p.Kind() == "optional_parameter" {
				params = append(params, p.Utf8Text(source))
			}
		}
	}

	body := n.ChildByFieldName("body")
	bodyStart, bodyEnd := int(n.StartPosition().Row)+1, int(n.EndPosition().Row)+1
	if body != nil {
		bodyStart = int(body.StartPosition().Row) + 1
		bodyEnd = int(body.EndPosition().Row) + 1
	}

	fn := &domain.FunctionDef{
		Name:          name,
		StartLine:     int(n.StartPosition().Row) + 1,
		EndLine:       int(n.EndPosition().Row) + 1,
		BodyStartLine: bodyStart,
		BodyEndLine:   bodyEnd,
		Parameters:    params,
		IsMethod:      isMethod,
		ClassName:     className,
		IsTest:        strings.HasPrefix(name, "test") || strings.HasPrefix(name, "it") && strings.Contains(name, "should"),
	}
	if !fn.Valid() {
		return nil
	}
	return fn
}
