package langparser

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/similarity-go/similarity/domain"
)

const sampleGo = `package sample

func Add(a, b int) int {
	return a + b
}

type Greeter struct{}

func (g Greeter) Greet(name string) string {
	return "hello " + name
}

func TestAdd(t *testing.T) {
	Add(1, 2)
}
`

func TestGoAdapter_ExtractFunctions(t *testing.T) {
	adapter, err := NewGoAdapter()
	require.NoError(t, err)

	functions, err := adapter.ExtractFunctions([]byte(sampleGo), "sample.go")
	require.NoError(t, err)
	require.Len(t, functions, 3)

	assert.Equal(t, "Add", functions[0].Name)
	assert.False(t, functions[0].IsMethod)

	assert.Equal(t, "Greet", functions[1].Name)
	assert.True(t, functions[1].IsMethod)
	assert.Equal(t, "Greeter", functions[1].ClassName)

	assert.Equal(t, "TestAdd", functions[2].Name)
	assert.True(t, functions[2].IsTest)
}

func TestGoAdapter_Parse_ProducesNonEmptyTree(t *testing.T) {
	adapter, err := NewGoAdapter()
	require.NoError(t, err)

	tree, err := adapter.Parse([]byte(sampleGo), "sample.go")
	require.NoError(t, err)
	require.NotNil(t, tree)
	assert.Greater(t, tree.SubtreeSize(), 1)
}

func TestGoAdapter_Language(t *testing.T) {
	adapter, err := NewGoAdapter()
	require.NoError(t, err)
	assert.Equal(t, domain.LanguageGo, adapter.Language())
}
