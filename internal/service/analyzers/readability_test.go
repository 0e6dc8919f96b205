package analyzers

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFleschReadingEase(t *testing.T) {
	t.Run("empty text scores neutral", func(t *testing.T) {
		assert.Equal(t, 60.0, fleschReadingEase(""))
		assert.Equal(t, 60.0, fleschReadingEase("   "))
	})

	t.Run("simple text scores high", func(t *testing.T) {
		score := fleschReadingEase("The cat sat. The dog ran. It was fun.")
		assert.Greater(t, score, 80.0)
	})

	t.Run("dense text scores lower than simple text", func(t *testing.T) {
		simple := fleschReadingEase("The cat sat on the mat. The dog ran far.")
		dense := fleschReadingEase("Institutional heterogeneity necessitates comprehensive organizational restructuring initiatives alongside multidimensional stakeholder considerations.")
		assert.Less(t, dense, simple)
	})

	t.Run("score is clamped to the scale", func(t *testing.T) {
		// A single endless sentence of long words pushes the raw formula
		// below zero.
		long := strings.Repeat("incomprehensibility considerations ", 50)
		assert.Equal(t, 0.0, fleschReadingEase(long))
	})
}

func TestEstimateSyllables(t *testing.T) {
	cases := []struct {
		word string
		want int
	}{
		{"cat", 1},
		{"table", 1},
		{"banana", 3},
		{"rhythm", 1},
		{"readability", 5},
	}

	for _, tc := range cases {
		t.Run(tc.word, func(t *testing.T) {
			assert.Equal(t, tc.want, estimateSyllables(tc.word))
		})
	}
}
