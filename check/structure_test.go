package check

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStructureUnion(t *testing.T) {
	a := Structure{Declared: []int{1}, Called: []int{5}, Returns: 1, Ends: []string{"M30"}}
	b := Structure{Declared: []int{5, 1}, Called: []int{5, 7}, Returns: 2, Resolved: []int{7}}

	var m Structure
	m = m.union(a)
	m = m.union(b)

	assert.Equal(t, []int{1, 5}, m.Declared)
	assert.Equal(t, []int{5, 7}, m.Called)
	assert.Equal(t, []int{7}, m.Resolved)
	assert.Equal(t, 3, m.Returns)
	assert.Equal(t, []string{"M30"}, m.Ends)

	// Folding must not touch the inputs.
	assert.Equal(t, []int{1}, a.Declared)
}

func TestStructureDeclaresLocally(t *testing.T) {
	s := Structure{Declared: []int{100}}
	assert.True(t, s.DeclaresLocally(100))
	assert.False(t, s.DeclaresLocally(200))
}
