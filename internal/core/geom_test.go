package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRectScaled(t *testing.T) {
	tests := []struct {
		name   string
		r      Rect
		factor float64
		want   Rect
	}{
		{"identity", NewRect(10, 4, 20, 10), 1.0, NewRect(10, 4, 20, 10)},
		{"half", NewRect(10, 4, 20, 10), 0.5, NewRect(15, 7, 10, 5)},
		{"pulse low", NewRect(0, 0, 40, 20), 0.25, NewRect(15, 8, 10, 5)},
		{"pulse high", NewRect(0, 0, 40, 20), 0.75, NewRect(5, 3, 30, 15)},
		{"never below one cell", NewRect(0, 0, 4, 2), 0.01, NewRect(2, 1, 1, 1)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.r.Scaled(tt.factor)
			assert.Equal(t, tt.want, got)
			assert.False(t, got.Empty())
		})
	}
}

func TestRectScaledKeepsCenter(t *testing.T) {
	r := NewRect(3, 2, 31, 17)
	cx, cy := r.Center()
	for _, f := range []float64{0.25, 0.5, 0.75} {
		sx, sy := r.Scaled(f).Center()
		assert.InDelta(t, cx, sx, 1, "x center at factor %v", f)
		assert.InDelta(t, cy, sy, 1, "y center at factor %v", f)
	}
}

func TestRectBounds(t *testing.T) {
	r := NewRect(5, 10, 20, 15)
	assert.Equal(t, 25, r.Right())
	assert.Equal(t, 25, r.Bottom())

	cx, cy := r.Center()
	assert.Equal(t, 15, cx)
	assert.Equal(t, 17, cy)

	assert.True(t, NewRect(0, 0, 0, 5).Empty())
	assert.True(t, NewRect(0, 0, 5, -1).Empty())
	assert.False(t, NewRect(0, 0, 1, 1).Empty())
}

func TestMinMax(t *testing.T) {
	assert.Equal(t, 3, Min(3, 7))
	assert.Equal(t, -2, Min(4, -2))
	assert.Equal(t, 7, Max(3, 7))
	assert.Equal(t, 4, Max(4, -2))
}

func TestLaneColor(t *testing.T) {
	assert.Equal(t, ColorDefault, LaneColor(-1))
	assert.Equal(t, LaneColors[0], LaneColor(0))
	assert.Equal(t, LaneColors[1], LaneColor(len(LaneColors)+1))
	assert.NotEqual(t, LaneColor(0), LaneColor(1))
}
