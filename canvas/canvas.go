// Package canvas is the graphics backend: an immediate-mode drawing
// surface paint commands execute against. Grounded on willow's batch.go
// (DrawImageOptions/blend mapping), filter.go (render-texture-backed
// effect application as the saveLayer analogue), rendertexture.go/
// rendertarget.go (surface pooling), and willow.go's BlendMode table.
package canvas

import (
	"github.com/hajimehoshi/ebiten/v2"
	etext "github.com/hajimehoshi/ebiten/v2/text/v2"
)

// Color is an unpremultiplied RGBA color, matching willow's willow.go
// Color type.
type Color struct {
	R, G, B, A float64
}

// Rect is an axis-aligned box in canvas coordinates.
type Rect struct {
	X, Y, Width, Height float64
}

// BlendMode names the small set of compositing modes spec.md's painter
// needs: normal (source-over), multiply, difference, and destination-in
// (used for the clip-by-rounded-rect overflow:clip case in blend.py's
// paint_visual_effects).
type BlendMode int

const (
	BlendSourceOver BlendMode = iota
	BlendMultiply
	BlendDifference
	BlendDestinationIn
)

// ebitenBlend mirrors willow.go's BlendMode.EbitenBlend() table, narrowed
// to the four modes the painter actually emits.
func (b BlendMode) ebitenBlend() ebiten.Blend {
	switch b {
	case BlendMultiply:
		return ebiten.Blend{
			BlendFactorSourceRGB:        ebiten.BlendFactorDestinationColor,
			BlendFactorSourceAlpha:      ebiten.BlendFactorOne,
			BlendFactorDestinationRGB:   ebiten.BlendFactorZero,
			BlendFactorDestinationAlpha: ebiten.BlendFactorOneMinusSourceAlpha,
			BlendOperationRGB:           ebiten.BlendOperationAdd,
			BlendOperationAlpha:         ebiten.BlendOperationAdd,
		}
	case BlendDifference:
		return ebiten.Blend{
			BlendFactorSourceRGB:        ebiten.BlendFactorOne,
			BlendFactorSourceAlpha:      ebiten.BlendFactorOne,
			BlendFactorDestinationRGB:   ebiten.BlendFactorOne,
			BlendFactorDestinationAlpha: ebiten.BlendFactorOneMinusSourceAlpha,
			BlendOperationRGB:           ebiten.BlendOperationReverseSubtract,
			BlendOperationAlpha:         ebiten.BlendOperationAdd,
		}
	case BlendDestinationIn:
		return ebiten.Blend{
			BlendFactorSourceRGB:        ebiten.BlendFactorZero,
			BlendFactorSourceAlpha:      ebiten.BlendFactorDestinationAlpha,
			BlendFactorDestinationRGB:   ebiten.BlendFactorZero,
			BlendFactorDestinationAlpha: ebiten.BlendFactorSourceAlpha,
			BlendOperationRGB:           ebiten.BlendOperationAdd,
			BlendOperationAlpha:         ebiten.BlendOperationAdd,
		}
	default:
		return ebiten.BlendSourceOver
	}
}

// Surface is a drawable GPU-backed raster target, backed by *ebiten.Image.
type Surface struct {
	Image *ebiten.Image
}

// NewSurface allocates a transparent surface of the given pixel size.
func NewSurface(width, height int) *Surface {
	if width < 1 {
		width = 1
	}
	if height < 1 {
		height = 1
	}
	return &Surface{Image: ebiten.NewImage(width, height)}
}

// Clear fills the surface fully transparent, for reuse across frames.
func (s *Surface) Clear() { s.Image.Clear() }

// Canvas is a stateful drawing surface: a stack of saved translations plus
// draw primitives, the single external collaborator the painter and
// compositor submit commands to (spec §6 Graphics backend). It keeps no
// clip state; drawing is never clipped to a rect.
type Canvas struct {
	surface *Surface
	tx, ty  float64
	stack   []state
}

type state struct {
	tx, ty float64
}

// NewCanvas wraps a Surface for drawing.
func NewCanvas(s *Surface) *Canvas {
	return &Canvas{surface: s}
}

// Save pushes the current transform.
func (c *Canvas) Save() {
	c.stack = append(c.stack, state{tx: c.tx, ty: c.ty})
}

// Restore pops the most recently pushed transform.
func (c *Canvas) Restore() {
	if len(c.stack) == 0 {
		return
	}
	top := c.stack[len(c.stack)-1]
	c.stack = c.stack[:len(c.stack)-1]
	c.tx, c.ty = top.tx, top.ty
}

// Translate offsets subsequent drawing by (dx, dy).
func (c *Canvas) Translate(dx, dy float64) {
	c.tx += dx
	c.ty += dy
}

// DrawRect fills rect with color.
func (c *Canvas) DrawRect(rect Rect, color Color) {
	drawFilledRect(c.surface.Image, rect.X+c.tx, rect.Y+c.ty, rect.Width, rect.Height, color, 0)
}

// DrawRRect fills a rounded rect with the given corner radius.
func (c *Canvas) DrawRRect(rect Rect, radius float64, color Color) {
	drawFilledRect(c.surface.Image, rect.X+c.tx, rect.Y+c.ty, rect.Width, rect.Height, color, radius)
}

// DrawLine strokes a line from (x1,y1) to (x2,y2).
func (c *Canvas) DrawLine(x1, y1, x2, y2 float64, color Color, width float64) {
	drawLine(c.surface.Image, x1+c.tx, y1+c.ty, x2+c.tx, y2+c.ty, color, width)
}

// DrawString draws text at (x, baselineY) using face.
func (c *Canvas) DrawString(s string, x, baselineY float64, face *etext.GoTextFace, color Color) {
	drawString(c.surface.Image, s, x+c.tx, baselineY+c.ty, face, color)
}

// DrawImage blits src at (x, y) with opacity applied via color scale.
func (c *Canvas) DrawImage(src *Surface, x, y, opacity float64) {
	opts := &ebiten.DrawImageOptions{}
	opts.GeoM.Translate(x+c.tx, y+c.ty)
	opts.ColorScale.ScaleAlpha(float32(opacity))
	c.surface.Image.DrawImage(src.Image, opts)
}

// DrawImageBlended blits src at (x, y) with the given blend mode applied,
// the direct analogue of blend.py's Blend.execute saveLayer/restore pair:
// the caller rasters effect children into an offscreen Surface first, then
// composites that surface onto the parent with this call.
func (c *Canvas) DrawImageBlended(src *Surface, x, y, opacity float64, mode BlendMode) {
	opts := &ebiten.DrawImageOptions{}
	opts.GeoM.Translate(x+c.tx, y+c.ty)
	opts.ColorScale.ScaleAlpha(float32(opacity))
	opts.Blend = mode.ebitenBlend()
	c.surface.Image.DrawImage(src.Image, opts)
}

// Surface returns the canvas's backing surface, for code that needs to
// hand the raw GPU image to another canvas (e.g. compositing a layer's
// raster result into the frame canvas).
func (c *Canvas) Surface() *Surface { return c.surface }
