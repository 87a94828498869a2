package langparser

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const samplePython = `def add(a, b):
    return a + b


class Greeter:
    def greet(self, name):
        return "hello " + name
`

func TestPythonAdapter_ExtractFunctions(t *testing.T) {
	adapter := NewPythonAdapter()
	functions, err := adapter.ExtractFunctions([]byte(samplePython), "sample.py")
	require.NoError(t, err)
	require.Len(t, functions, 2)

	assert.Equal(t, "add", functions[0].Name)
	assert.False(t, functions[0].IsMethod)

	assert.Equal(t, "greet", functions[1].Name)
	assert.True(t, functions[1].IsMethod)
	assert.Equal(t, "Greeter", functions[1].ClassName)
}

func TestPythonAdapter_Parse_ProducesNonEmptyTree(t *testing.T) {
	adapter := NewPythonAdapter()
	tree, err := adapter.Parse([]byte(samplePython), "sample.py")
	require.NoError(t, err)
	require.NotNil(t, tree)
	assert.Greater(t, tree.SubtreeSize(), 1)
}

func TestPythonAdapter_Language(t *testing.T) {
	adapter := NewPythonAdapter()
	assert.Equal(t, "python", string(adapter.Language()))
}
