package handoff

import (
	"image"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
)

// --- Render texture pool ---

// renderTexturePool manages reusable offscreen ebiten.Images keyed by
// power-of-two dimensions. After warmup, Acquire/Release are zero-alloc.
type renderTexturePool struct {
	buckets map[uint64][]*ebiten.Image
}

// poolKey packs power-of-two width and height into a single uint64.
func poolKey(w, h int) uint64 {
	return uint64(w)<<32 | uint64(h)
}

// Acquire returns a cleared offscreen image with at least (w, h) pixels.
// Dimensions are rounded up to the next power of two.
func (p *renderTexturePool) Acquire(w, h int) *ebiten.Image {
	pw := nextPowerOfTwo(w)
	ph := nextPowerOfTwo(h)
	key := poolKey(pw, ph)

	if p.buckets != nil {
		if stack := p.buckets[key]; len(stack) > 0 {
			img := stack[len(stack)-1]
			p.buckets[key] = stack[:len(stack)-1]
			img.Clear()
			return img
		}
	}

	return ebiten.NewImageWithOptions(
		image.Rect(0, 0, pw, ph),
		&ebiten.NewImageOptions{Unmanaged: true},
	)
}

// Release returns an image to the pool for reuse. The image is cleared on
// next Acquire, not here.
func (p *renderTexturePool) Release(img *ebiten.Image) {
	if img == nil {
		return
	}
	b := img.Bounds()
	key := poolKey(b.Dx(), b.Dy())

	if p.buckets == nil {
		p.buckets = make(map[uint64][]*ebiten.Image)
	}
	p.buckets[key] = append(p.buckets[key], img)
}

// nextPowerOfTwo returns the smallest power of two >= n (minimum 1).
func nextPowerOfTwo(n int) int {
	if n <= 1 {
		return 1
	}
	return 1 << int(math.Ceil(math.Log2(float64(n))))
}

// --- Bounds ---

// commandBounds returns the destination-space bounding box of a command
// list, rounded out to whole pixels.
func commandBounds(cmds []RenderCommand) image.Rectangle {
	var r image.Rectangle
	grow := func(x, y float64) {
		p := image.Rect(int(math.Floor(x)), int(math.Floor(y)), int(math.Ceil(x))+1, int(math.Ceil(y))+1)
		r = r.Union(p)
	}
	for i := range cmds {
		c := &cmds[i]
		switch c.Type {
		case CommandTriangles:
			for _, v := range c.Vertices {
				grow(float64(v.DstX), float64(v.DstY))
			}
		case CommandMasked:
			r = r.Union(commandBounds(c.Group))
		default:
			for _, p := range [4]Point{{c.Rect.X, c.Rect.Y}, {c.Rect.MaxX(), c.Rect.Y}, {c.Rect.X, c.Rect.MaxY()}, {c.Rect.MaxX(), c.Rect.MaxY()}} {
				x, y := transformPoint(c.Transform, p.X, p.Y)
				grow(x, y)
			}
		}
	}
	return r
}
