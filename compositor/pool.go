package compositor

import "github.com/hearthframe/wisp/canvas"

// SurfacePool reuses GPU-backed surfaces across frames instead of
// reallocating one per layer per frame, adapted from willow's
// render-texture pool (rendertexture.go/rendertarget.go), keyed here by
// exact pixel size since compositor layers usually keep a stable size
// frame to frame.
type SurfacePool struct {
	free map[[2]int][]*canvas.Surface
}

// NewSurfacePool returns an empty pool.
func NewSurfacePool() *SurfacePool {
	return &SurfacePool{free: map[[2]int][]*canvas.Surface{}}
}

// Acquire returns a cleared surface of the given size, reusing a pooled
// one of the exact same size if available.
func (p *SurfacePool) Acquire(width, height int) *canvas.Surface {
	key := [2]int{width, height}
	if bucket := p.free[key]; len(bucket) > 0 {
		s := bucket[len(bucket)-1]
		p.free[key] = bucket[:len(bucket)-1]
		s.Clear()
		return s
	}
	return canvas.NewSurface(width, height)
}

// Release returns s to the pool for reuse by a future Acquire of the same
// size.
func (p *SurfacePool) Release(s *canvas.Surface) {
	if s == nil {
		return
	}
	b := s.Image.Bounds()
	key := [2]int{b.Dx(), b.Dy()}
	p.free[key] = append(p.free[key], s)
}
