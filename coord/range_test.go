package coord

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRange_Observe(t *testing.T) {
	var r Range
	assert.False(t, r.Defined)

	r = r.Observe(150)
	assert.Equal(t, Range{Min: 150, Max: 150, Defined: true}, r)

	r = r.Observe(-50)
	r = r.Observe(20)
	assert.Equal(t, Range{Min: -50, Max: 150, Defined: true}, r)
}

func TestRange_Union(t *testing.T) {
	a := Range{Min: 0, Max: 10, Defined: true}
	b := Range{Min: -5, Max: 3, Defined: true}

	assert.Equal(t, Range{Min: -5, Max: 10, Defined: true}, a.Union(b))

	// undefined operands contribute nothing
	assert.Equal(t, a, a.Union(Range{}))
	assert.Equal(t, a, Range{}.Union(a))
}

func TestRange_Span(t *testing.T) {
	assert.Equal(t, 0.0, Range{}.Span())
	assert.Equal(t, 200.0, Range{Min: -50, Max: 150, Defined: true}.Span())
}
