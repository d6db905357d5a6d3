package matching

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTokenize(t *testing.T) {
	assert.Equal(t, []string{"node.js", "c++", "c#", "and", "go"}, tokenize("Node.js, C++/C# and Go."))
	assert.Empty(t, tokenize(" ... !!"))
}

func TestNewTerms(t *testing.T) {
	terms := newTerms([]string{" Go ", "go", "", "Machine  Learning"})
	assert.Equal(t, []term{{key: "go", label: "Go"}, {key: "machine learning", label: "Machine  Learning"}}, terms)
}

func TestTextIndex_Contains(t *testing.T) {
	idx := newTextIndex("Distributed Systems", "We use Go and gRPC")

	assert.True(t, idx.contains("distributed systems"))
	assert.True(t, idx.contains("go"))
	assert.True(t, idx.contains("grpc"))
	assert.False(t, idx.contains("systems we"))
	assert.False(t, idx.contains("rust"))
	assert.False(t, idx.contains(""))
	assert.False(t, idx.empty)
	assert.True(t, newTextIndex("", "  ").empty)
}
