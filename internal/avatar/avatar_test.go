package avatar

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

type fixedRand struct {
	n    int
	seen []int
}

func (f *fixedRand) IntN(n int) int {
	f.seen = append(f.seen, n)
	return f.n
}

func TestExpand(t *testing.T) {
	tests := []struct {
		template string
		size     int
		want     string
	}{
		{DefaultTemplate, 48, "https://i.pravatar.cc/48"},
		{"https://example.com/{size}/{size}.png", 7, "https://example.com/7/7.png"},
		{"https://example.com/static.png", 7, "https://example.com/static.png"},
	}

	for _, tt := range tests {
		t.Run(tt.template, func(t *testing.T) {
			assert.Equal(t, tt.want, Expand(tt.template, tt.size))
		})
	}
}

func TestPlaceholderDrawsInclusiveRange(t *testing.T) {
	r := &fixedRand{n: 100}
	g := New("", 0)
	g.Rand = r

	assert.Equal(t, "https://i.pravatar.cc/100", g.Placeholder())
	assert.Equal(t, []int{101}, r.seen, "sizes are drawn from [0,100]")
}

func TestSizeWithDefaultRand(t *testing.T) {
	g := New(DefaultTemplate, 3)
	for range 50 {
		s := g.Size()
		assert.GreaterOrEqual(t, s, 0)
		assert.LessOrEqual(t, s, 3)
	}
}

func TestWithID(t *testing.T) {
	assert.Equal(t, "https://i.pravatar.cc/33?=abc-123", WithID("https://i.pravatar.cc/33", "abc-123"))
}
