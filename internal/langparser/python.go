package langparser

import (
	"context"
	"fmt"
	"strings"

	sitter "github.com/smacker/go-tree-sitter"

	"github.com/similarity-go/similarity/domain"
	pyparser "github.com/similarity-go/similarity/internal/parser"
)

// PythonAdapter implements domain.Parser for Python, wrapping the
// tree-sitter-python binding in internal/parser with a generic label/value
// tree and function spans rather than a CFG-oriented AST.
type PythonAdapter struct {
	parser *pyparser.Parser
}

func NewPythonAdapter() *PythonAdapter {
	return &PythonAdapter{parser: pyparser.New()}
}

func (p *PythonAdapter) Language() domain.LanguageTag {
	return domain.LanguagePython
}

func (p *PythonAdapter) Parse(source []byte, filename string) (*domain.TreeNode, error) {
	result, err := p.parser.Parse(context.Background(), source)
	if err != nil {
		return nil, err
	}
	id := 0
	return convertSitterNode(result.RootNode, source, &id), nil
}

func (p *PythonAdapter) ExtractFunctions(source []byte, filename string) ([]*domain.FunctionDef, error) {
	result, err := p.parser.Parse(context.Background(), source)
	if err != nil {
		return nil, err
	}
	var functions []*domain.FunctionDef
	collectPythonFunctions(result.RootNode, source, "", false, &functions)
	return functions, nil
}

func convertSitterNode(n *sitter.Node, source []byte, id *int) *domain.TreeNode {
	if n == nil {
		return nil
	}
	value := ""
	if n.ChildCount() == 0 {
		value = n.Content(source)
	}
	node := domain.NewTreeNode(*id, n.Type(), value)
	*id++
	count := int(n.ChildCount())
	for i := 0; i < count; i++ {
		child := convertSitterNode(n.Child(i), source, id)
		node.AddChild(child)
	}
	return node
}

// collectPythonFunctions walks the tree-sitter-python CST looking for
// function_definition nodes, tracking the enclosing class name so methods
// are reported with is_method/class_name set (spec §3).
func collectPythonFunctions(n *sitter.Node, source []byte, className string, inClass bool, out *[]*domain.FunctionDef) {
	if n == nil {
		return
	}

	switch n.Type() {
	case "class_definition":
		name := childByFieldContent(n, "name", source)
		count := int(n.ChildCount())
		for i := 0; i < count; i++ {
			collectPythonFunctions(n.Child(i), source, name, true, out)
		}
		return

	case "function_definition":
		fn := buildPythonFunctionDef(n, source, className, inClass)
		if fn != nil {
			*out = append(*out, fn)
		}
		// descend to catch nested functions
		body := n.ChildByFieldName("body")
		collectPythonFunctions(body, source, className, inClass, out)
		return

	case "decorated_definition":
		def := n.ChildByFieldName("definition")
		hasTestDecorator := false
		count := int(n.ChildCount())
		for i := 0; i < count; i++ {
			c := n.Child(i)
			if c.Type() == "decorator" && strings.Contains(c.Content(source), "pytest") {
				hasTestDecorator = true
			}
		}
		collectPythonFunctions(def, source, className, inClass, out)
		if hasTestDecorator && len(*out) > 0 {
			(*out)[len(*out)-1].IsTest = true
		}
		return
	}

	count := int(n.ChildCount())
	for i := 0; i < count; i++ {
		collectPythonFunctions(n.Child(i), source, className, inClass, out)
	}
}

func buildPythonFunctionDef(n *sitter.Node, source []byte, className string, inClass bool) *domain.FunctionDef {
	name := childByFieldContent(n, "name", source)
	if name == "" {
		name = fmt.Sprintf("anon@%d:%d", n.StartPoint().Row+1, n.StartPoint().Column+1)
	}

	params := childByFieldNode(n, "parameters")
	var paramNames []string
	if params != nil {
		pc := int(params.ChildCount())
		for i := 0; i < pc; i++ {
			p := params.Child(i)
			if p.IsNamed() && (p.Type() == "identifier" || p.Type() == "typed_parameter" || p.Type() == "default_parameter") {
				paramNames = append(paramNames, p.Content(source))
			}
		}
	}

	body := n.ChildByFieldName("body")
	bodyStart, bodyEnd := int(n.StartPoint().Row)+1, int(n.EndPoint().Row)+1
	if body != nil {
		bodyStart = int(body.StartPoint().Row) + 1
		bodyEnd = int(body.EndPoint().Row) + 1
	}

	fn := &domain.FunctionDef{
		Name:          name,
		StartLine:     int(n.StartPoint().Row) + 1,
		EndLine:       int(n.EndPoint().Row) + 1,
		BodyStartLine: bodyStart,
		BodyEndLine:   bodyEnd,
		Parameters:    paramNames,
		IsMethod:      inClass,
		ClassName:     className,
		IsTest:        strings.HasPrefix(name, "test_"),
	}
	if !fn.Valid() {
		return nil
	}
	return fn
}

func childByFieldContent(n *sitter.Node, field string, source []byte) string {
	c := n.ChildByFieldName(field)
	if c == nil {
		return ""
	}
	return c.Content(source)
}

func childByFieldNode(n *sitter.Node, field string) *sitter.Node {
	return n.ChildByFieldName(field)
}
