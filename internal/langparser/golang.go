package langparser

import (
	"fmt"

	sitter "github.com/tree-sitter/go-tree-sitter"
	tsgo "github.com/tree-sitter/tree-sitter-go/bindings/go"

	"github.com/similarity-go/similarity/domain"
)

// GoAdapter implements domain.Parser for Go, using the newer
// tree-sitter/go-tree-sitter binding the way ingo-eichhorst-agent-readyness's
// internal/parser/treesitter.go wires up Python/TypeScript, and the
// query-walking style of cyber-nic-grep-ast-go/grepast.go.
type GoAdapter struct {
	parser *sitter.Parser
	lang   *sitter.Language
}

func NewGoAdapter() (*GoAdapter, error) {
	parser := sitter.NewParser()
	lang := sitter.NewLanguage(tsgo.Language())
	if err := parser.SetLanguage(lang); err != nil {
		return nil, fmt.Errorf("set go language: %w", err)
	}
	return &GoAdapter{parser: parser, lang: lang}, nil
}

func (g *GoAdapter) Language() domain.LanguageTag {
	return domain.LanguageGo
}

func (g *GoAdapter) Parse(source []byte, filename string) (*domain.TreeNode, error) {
	tree := g.parser.Parse(source, nil)
	if tree == nil {
		return nil, fmt.Errorf("go-tree-sitter: parse returned nil for %s", filename)
	}
	defer tree.Close()
	id := 0
	return convertTSNode(tree.RootNode(), source, &id), nil
}

func (g *GoAdapter) ExtractFunctions(source []byte, filename string) ([]*domain.FunctionDef, error) {
	tree := g.parser.Parse(source, nil)
	if tree == nil {
		return nil, fmt.Errorf("go-tree-sitter: parse returned nil for %s", filename)
	}
	defer tree.Close()

	var functions []*domain.FunctionDef
	collectGoFunctions(tree.RootNode(), source, &functions)
	return functions, nil
}

// convertTSNode mirrors convertSitterNode for the newer tree-sitter API,
// which renames Type()/Content() to Kind()/Utf8Text() and uses uint child
// indices.
func convertTSNode(n *sitter.Node, source []byte, id *int) *domain.TreeNode {
	if n == nil {
		return nil
	}
	value := ""
	count := n.ChildCount()
	if count == 0 {
		value = n.Utf8Text(source)
	}
	node := domain.NewTreeNode(*id, n.Kind(), value)
	*id++
	for i := uint(0); i < count; i++ {
		child := convertTSNode(n.Child(i), source, id)
		node.AddChild(child)
	}
	return node
}

func collectGoFunctions(n *sitter.Node, source []byte, out *[]*domain.FunctionDef) {
	if n == nil {
		return
	}

	switch n.Kind() {
	case "function_declaration":
		if fn := buildGoFunctionDef(n, source, false, ""); fn != nil {
			*out = append(*out, fn)
		}
	case "method_declaration":
		receiver := n.ChildByFieldName("receiver")
		className := goReceiverType(receiver, source)
		if fn := buildGoFunctionDef(n, source, true, className); fn != nil {
			*out = append(*out, fn)
		}
	}

	count := n.ChildCount()
	for i := uint(0); i < count; i++ {
		collectGoFunctions(n.Child(i), source, out)
	}
}

func buildGoFunctionDef(n *sitter.Node, source []byte, isMethod bool, className string) *domain.FunctionDef {
	nameNode := n.ChildByFieldName("name")
	name := ""
	if nameNode != nil {
		name = nameNode.Utf8Text(source)
	}
	if name == "" {
		name = fmt.Sprintf("anon@%d:%d", n.StartPosition().Row+1, n.StartPosition().Column+1)
	}

	var params []string
	if paramList := n.ChildByFieldName("parameters"); paramList != nil {
		count := paramList.ChildCount()
		for i := uint(0); i < count; i++ {
			p := paramList.Child(i)
			if p.Kind() == "parameter_declaration" {
				if id := p.ChildByFieldName("name"); id != nil {
					params = append(params, id.Utf8Text(source))
				}
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
		IsTest:        isGoTestName(name),
	}
	if !fn.Valid() {
		return nil
	}
	return fn
}

func goReceiverType(receiver *sitter.Node, source []byte) string {
	if receiver == nil {
		return ""
	}
	count := receiver.ChildCount()
	for i := uint(0); i < count; i++ {
		p := receiver.Child(i)
		if p.Kind() == "parameter_declaration" {
			if t := p.ChildByFieldName("type"); t != nil {
				return stripPointerStar(t.Utf8Text(source))
			}
		}
	}
	return ""
}

func stripPointerStar(s string) string {
	if len(s) > 0 && s[0] == '*' {
		return s[1:]
	}
	return s
}

// isGoTestName matches the go test naming convention: Test*, Benchmark*,
// Example* and Fuzz*.
func isGoTestName(name string) bool {
	return hasAnyPrefix(name, "Test", "Benchmark", "Example", "Fuzz")
}

func hasAnyPrefix(s string, prefixes ...string) bool {
	for _, p := range prefixes {
		if len(s) >= len(p) && s[:len(p)] == p {
			return true
		}
	}
	return false
}
