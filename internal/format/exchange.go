// Package format implements the optional AST exchange serialization of
// spec §6: a round-trippable JSON shape for a parsed tree and its function
// spans (SerializableTreeNode, ASTExchange).
package format

import (
	"encoding/json"

	"github.com/similarity-go/similarity/domain"
)

// SerializableTreeNode is the JSON-facing mirror of domain.TreeNode: one
// node carries {label, value, children, id}, round-trippable.
type SerializableTreeNode struct {
	Label    string                  `json:"label"`
	Value    string                  `json:"value,omitempty"`
	Children []*SerializableTreeNode `json:"children,omitempty"`
	ID       int                     `json:"id"`
}

// FromTree converts a domain.TreeNode into its serializable form.
func FromTree(n *domain.TreeNode) *SerializableTreeNode {
	if n == nil {
		return nil
	}
	out := &SerializableTreeNode{Label: n.Label, Value: n.Value, ID: n.ID}
	for _, c := range n.Children {
		out.Children = append(out.Children, FromTree(c))
	}
	return out
}

// ToTree converts a SerializableTreeNode back into a domain.TreeNode.
func (s *SerializableTreeNode) ToTree() *domain.TreeNode {
	if s == nil {
		return nil
	}
	n := domain.NewTreeNode(s.ID, s.Label, s.Value)
	for _, c := range s.Children {
		n.AddChild(c.ToTree())
	}
	return n
}

// ExchangeFunctionDef mirrors domain.FunctionDef for JSON exchange.
type ExchangeFunctionDef struct {
	Name          string   `json:"name"`
	StartLine     int      `json:"start_line"`
	EndLine       int      `json:"end_line"`
	BodyStartLine int      `json:"body_start_line"`
	BodyEndLine   int      `json:"body_end_line"`
	Parameters    []string `json:"parameters,omitempty"`
	IsMethod      bool     `json:"is_method"`
	ClassName     string   `json:"class_name,omitempty"`
}

func FromFunctionDef(f *domain.FunctionDef) ExchangeFunctionDef {
	return ExchangeFunctionDef{
		Name:          f.Name,
		StartLine:     f.StartLine,
		EndLine:       f.EndLine,
		BodyStartLine: f.BodyStartLine,
		BodyEndLine:   f.BodyEndLine,
		Parameters:    f.Parameters,
		IsMethod:      f.IsMethod,
		ClassName:     f.ClassName,
	}
}

func (e ExchangeFunctionDef) ToFunctionDef() *domain.FunctionDef {
	return &domain.FunctionDef{
		Name:          e.Name,
		StartLine:     e.StartLine,
		EndLine:       e.EndLine,
		BodyStartLine: e.BodyStartLine,
		BodyEndLine:   e.BodyEndLine,
		Parameters:    e.Parameters,
		IsMethod:      e.IsMethod,
		ClassName:     e.ClassName,
	}
}

// ASTExchange is the top-level round-trippable document: (language,
// filename, functions[], full_ast?).
type ASTExchange struct {
	Language  string                `json:"language"`
	Filename  string                `json:"filename"`
	Functions []ExchangeFunctionDef `json:"functions"`
	FullAST   *SerializableTreeNode `json:"full_ast,omitempty"`
}

// Marshal serializes an ASTExchange document.
func Marshal(e *ASTExchange) ([]byte, error) {
	return json.MarshalIndent(e, "", "  ")
}

// Unmarshal parses an ASTExchange document.
func Unmarshal(data []byte) (*ASTExchange, error) {
	var e ASTExchange
	if err := json.Unmarshal(data, &e); err != nil {
		return nil, err
	}
	return &e, nil
}
