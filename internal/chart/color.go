package chart

import (
	"fmt"
	"hash/fnv"
	"math/rand"
)

// Palette assigns a "#RRGGBB" color to a series.
type Palette interface {
	Color(name string) string
}

// RandomPalette picks a new random color on each call, two series may end up
// with similar colors.
type RandomPalette struct{}

func (RandomPalette) Color(string) string {
	return fmt.Sprintf("#%06X", rand.Intn(1<<24)) // nolint:gosec
}

// StablePalette derives the color from the series name so a class keeps its
// color across renders.
type StablePalette struct{}

func (StablePalette) Color(name string) string {
	h := fnv.New32a()
	_, _ = h.Write([]byte(name))

	return fmt.Sprintf("#%06X", h.Sum32()&0xFFFFFF)
}
