package domain

import "fmt"

// FunctionDef describes one function/method definition extracted by a parser
// adapter, per spec §3. Spans are inclusive and 1-based.
type FunctionDef struct {
	Name           string
	StartLine      int
	EndLine        int
	BodyStartLine  int
	BodyEndLine    int
	Parameters     []string
	IsMethod       bool
	ClassName      string
	IsTest         bool // matches the language's test-annotation convention
}

// Valid reports whether the span invariants from spec §3 hold:
// start_line <= body_start_line <= body_end_line <= end_line.
func (f *FunctionDef) Valid() bool {
	return f.StartLine <= f.BodyStartLine &&
		f.BodyStartLine <= f.BodyEndLine &&
		f.BodyEndLine <= f.EndLine
}

func (f *FunctionDef) String() string {
	if f.IsMethod {
		return fmt.Sprintf("%s.%s:%d-%d", f.ClassName, f.Name, f.StartLine, f.EndLine)
	}
	return fmt.Sprintf("%s:%d-%d", f.Name, f.StartLine, f.EndLine)
}

// LineCount returns the number of source lines spanned by the whole definition.
func (f *FunctionDef) LineCount() int {
	return f.EndLine - f.StartLine + 1
}

// BodyLineCount returns the number of source lines spanned by the body alone.
func (f *FunctionDef) BodyLineCount() int {
	return f.BodyEndLine - f.BodyStartLine + 1
}
