package canvas

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

func toNRGBA(c Color) color.NRGBA {
	clamp := func(v float64) uint8 {
		if v < 0 {
			return 0
		}
		if v > 1 {
			return 255
		}
		return uint8(v * 255)
	}
	return color.NRGBA{R: clamp(c.R), G: clamp(c.G), B: clamp(c.B), A: clamp(c.A)}
}

func drawFilledRect(dst *ebiten.Image, x, y, w, h float64, c Color, radius float64) {
	var path vector.Path
	if radius <= 0 {
		path.MoveTo(float32(x), float32(y))
		path.LineTo(float32(x+w), float32(y))
		path.LineTo(float32(x+w), float32(y+h))
		path.LineTo(float32(x), float32(y+h))
		path.Close()
	} else {
		r := float32(radius)
		fx, fy, fw, fh := float32(x), float32(y), float32(w), float32(h)
		path.MoveTo(fx+r, fy)
		path.LineTo(fx+fw-r, fy)
		path.QuadTo(fx+fw, fy, fx+fw, fy+r)
		path.LineTo(fx+fw, fy+fh-r)
		path.QuadTo(fx+fw, fy+fh, fx+fw-r, fy+fh)
		path.LineTo(fx+r, fy+fh)
		path.QuadTo(fx, fy+fh, fx, fy+fh-r)
		path.LineTo(fx, fy+r)
		path.QuadTo(fx, fy, fx+r, fy)
		path.Close()
	}
	vs, is := path.AppendVerticesAndIndicesForFilling(nil, nil)
	col := toNRGBA(c)
	for i := range vs {
		vs[i].ColorR = float32(col.R) / 255
		vs[i].ColorG = float32(col.G) / 255
		vs[i].ColorB = float32(col.B) / 255
		vs[i].ColorA = float32(col.A) / 255
	}
	dst.DrawTriangles(vs, is, whitePixel, &ebiten.DrawTrianglesOptions{})
}

func drawLine(dst *ebiten.Image, x1, y1, x2, y2 float64, c Color, width float64) {
	var path vector.Path
	path.MoveTo(float32(x1), float32(y1))
	path.LineTo(float32(x2), float32(y2))
	op := &vector.StrokeOptions{Width: float32(width)}
	vs, is := path.AppendVerticesAndIndicesForStroke(nil, nil, op)
	col := toNRGBA(c)
	for i := range vs {
		vs[i].ColorR = float32(col.R) / 255
		vs[i].ColorG = float32(col.G) / 255
		vs[i].ColorB = float32(col.B) / 255
		vs[i].ColorA = float32(col.A) / 255
	}
	dst.DrawTriangles(vs, is, whitePixel, &ebiten.DrawTrianglesOptions{})
}

func drawString(dst *ebiten.Image, s string, x, baselineY float64, face *text.GoTextFace, c Color) {
	if face == nil {
		return
	}
	opts := &text.DrawOptions{}
	opts.GeoM.Translate(x, baselineY)
	opts.ColorScale.ScaleWithColor(toNRGBA(c))
	text.Draw(dst, s, face, opts)
}

var whitePixel = func() *ebiten.Image {
	img := ebiten.NewImage(1, 1)
	img.Fill(color.White)
	return img
}()
