package coord

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPoint_Sub(t *testing.T) {
	a := Point{X: 5, Y: 7, Z: 9}
	b := Point{X: 4, Y: 5, Z: 6}

	assert.Equal(t, Point{X: 1, Y: 2, Z: 3}, a.Sub(b))
}

func TestPoint_Distance(t *testing.T) {
	dist := Point{X: 1, Y: 2, Z: 3}.Distance(Point{X: 4, Y: 5, Z: 3})
	assert.InEpsilon(t, 4.24264, dist, .01)

	dist = Point{}.Distance(Point{Z: -10})
	assert.Equal(t, 10.0, dist)
}

func TestPathLength(t *testing.T) {
	pts := []Point{
		{},
		{X: 3},
		{X: 3, Y: 4},
	}
	assert.Equal(t, 7.0, PathLength(pts))

	assert.Equal(t, 0.0, PathLength(nil))
	assert.Equal(t, 0.0, PathLength(pts[:1]))
}
