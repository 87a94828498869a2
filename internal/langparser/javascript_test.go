package langparser

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/similarity-go/similarity/domain"
)

const sampleJS = `function add(a, b) {
  return a + b;
}

class Greeter {
  greet(name) {
    return "hello " + name;
  }
}
`

const sampleTS = `function sum(a: number, b: number): number {
  return a + b;
}
`

func TestJSAdapter_ExtractFunctions(t *testing.T) {
	adapter, err := NewJSAdapter()
	require.NoError(t, err)

	functions, err := adapter.ExtractFunctions([]byte(sampleJS), "sample.js")
	require.NoError(t, err)
	require.Len(t, functions, 2)

	assert.Equal(t, "add", functions[0].Name)
	assert.False(t, functions[0].IsMethod)

	assert.Equal(t, "greet", functions[1].Name)
	assert.True(t, functions[1].IsMethod)
	assert.Equal(t, "Greeter", functions[1].ClassName)
}

func TestJSAdapter_ExtractFunctions_TypeScript(t *testing.T) {
	adapter, err := NewJSAdapter()
	require.NoError(t, err)

	functions, err := adapter.ExtractFunctions([]byte(sampleTS), "sample.ts")
	require.NoError(t, err)
	require.Len(t, functions, 1)
	assert.Equal(t, "sum", functions[0].Name)
}

func TestJSAdapter_Parse_ProducesNonEmptyTree(t *testing.T) {
	adapter, err := NewJSAdapter()
	require.NoError(t, err)

	tree, err := adapter.Parse([]byte(sampleJS), "sample.js")
	require.NoError(t, err)
	require.NotNil(t, tree)
	assert.Greater(t, tree.SubtreeSize(), 1)
}

func TestJSAdapter_Language(t *testing.T) {
	adapter, err := NewJSAdapter()
	require.NoError(t, err)
	assert.Equal(t, domain.LanguageJavaScript, adapter.Language())
}
