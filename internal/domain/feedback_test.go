package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCarousel(t *testing.T) {
	t.Run("wraps forward past the last entry", func(t *testing.T) {
		c := Carousel{Total: 3}
		assert.Equal(t, 1, c.Next(0))
		assert.Equal(t, 2, c.Next(1))
		assert.Equal(t, 0, c.Next(2))
	})

	t.Run("wraps backward past the first entry", func(t *testing.T) {
		c := Carousel{Total: 3}
		assert.Equal(t, 2, c.Prev(0))
		assert.Equal(t, 0, c.Prev(1))
		assert.Equal(t, 1, c.Prev(2))
	})

	t.Run("single entry always lands on itself", func(t *testing.T) {
		c := Carousel{Total: 1}
		assert.Equal(t, 0, c.Next(0))
		assert.Equal(t, 0, c.Prev(0))
		assert.False(t, c.ShowNavigation())
	})

	t.Run("empty carousel stays at zero", func(t *testing.T) {
		c := Carousel{Total: 0}
		assert.Equal(t, 0, c.Next(0))
		assert.Equal(t, 0, c.Prev(0))
		assert.Equal(t, 0, c.Clamp(5))
		assert.False(t, c.ShowNavigation())
	})

	t.Run("clamp rejects out of range indexes", func(t *testing.T) {
		c := Carousel{Total: 4}
		assert.Equal(t, 0, c.Clamp(-1))
		assert.Equal(t, 0, c.Clamp(4))
		assert.Equal(t, 3, c.Clamp(3))
	})

	t.Run("navigation shown from two entries", func(t *testing.T) {
		assert.True(t, Carousel{Total: 2}.ShowNavigation())
	})
}
