// Package avatar builds placeholder image URLs for new friends.
//
// URLs are opaque strings: nothing here fetches or validates them.
package avatar

import (
	"math/rand/v2"
	"strconv"
	"strings"
)

// DefaultTemplate is the placeholder image service.
const DefaultTemplate = "https://i.pravatar.cc/{size}"

// DefaultMaxSize is the largest size drawn for a placeholder.
const DefaultMaxSize = 100

// Rand draws a random integer in [0, n).
type Rand interface {
	IntN(n int) int
}

type globalRand struct{}

func (globalRand) IntN(n int) int { return rand.IntN(n) }

// Generator expands the URL template with a random size.
type Generator struct {
	Template string
	MaxSize  int
	Rand     Rand
}

// New returns a Generator for template. An empty template or a
// non-positive maxSize falls back to the defaults.
func New(template string, maxSize int) *Generator {
	if template == "" {
		template = DefaultTemplate
	}
	if maxSize <= 0 {
		maxSize = DefaultMaxSize
	}
	return &Generator{Template: template, MaxSize: maxSize, Rand: globalRand{}}
}

// Size draws a size in [0, MaxSize].
func (g *Generator) Size() int {
	r := g.Rand
	if r == nil {
		r = globalRand{}
	}
	return r.IntN(g.MaxSize + 1)
}

// Placeholder returns the template expanded with a freshly drawn size.
func (g *Generator) Placeholder() string {
	return Expand(g.Template, g.Size())
}

// Expand substitutes {size} in template.
func Expand(template string, size int) string {
	return strings.ReplaceAll(template, "{size}", strconv.Itoa(size))
}

// WithID appends id to an image URL as a query-style suffix, so the same
// placeholder yields a distinct image per friend.
func WithID(image, id string) string {
	return image + "?=" + id
}
