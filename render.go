package springball

import (
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

// contentMaxRatio caps image content at this fraction of the widget size.
const contentMaxRatio = 0.8

// grabShadowOffset drops the grab shadow below the ball, in pixels.
const grabShadowOffset = 6.0

// Renderer is the Ebitengine RenderSink. It keeps the latest ball anchor and
// spring path and draws them, with the base and content, in widget-local
// coordinates shifted by the container origin.
//
// The anchor is the ball's layout point. It is drawn as the bottom-center of
// a circle whose diameter is twice the spring length.
type Renderer struct {
	res    Resolved
	ball   Vec2
	path   []Vec2
	stroke strokeMesh
	dirty  bool // path changed since the stroke was built

	image *ebiten.Image
	label string
}

func newRenderer(res Resolved) *Renderer {
	return &Renderer{
		res:   res,
		ball:  res.Rest.Rest,
		label: res.Options.Label,
	}
}

// SetBallPosition implements RenderSink.
func (r *Renderer) SetBallPosition(p Vec2) {
	r.ball = p
}

// SetSpringPath implements RenderSink. The path is copied; the mesh is
// rebuilt on the next Draw.
func (r *Renderer) SetSpringPath(path []Vec2) {
	r.path = append(r.path[:0], path...)
	r.dirty = true
}

// Ball returns the last anchor received.
func (r *Renderer) Ball() Vec2 {
	return r.ball
}

// SpringPath returns the last path received. MUST NOT be mutated.
func (r *Renderer) SpringPath() []Vec2 {
	return r.path
}

// BallHit returns the ball's hit circle in widget-local coordinates.
func (r *Renderer) BallHit() HitCircle {
	l := r.res.Params.SpringLength
	return HitCircle{CenterX: r.ball.X, CenterY: r.ball.Y - l, Radius: l}
}

// BaseHit returns the base's hit rectangle in widget-local coordinates.
func (r *Renderer) BaseHit() HitRect {
	return baseRect(r.res.Options)
}

// baseRect centers the base bar along the bottom edge of the container.
func baseRect(o Options) HitRect {
	return HitRect{
		X:      (o.Width - o.BaseWidth) / 2,
		Y:      o.Height - o.BaseHeight,
		Width:  o.BaseWidth,
		Height: o.BaseHeight,
	}
}

// Draw renders spring, base and ball in that order. grab in [0, 1] fades the
// grab shadow in.
func (r *Renderer) Draw(dst *ebiten.Image, origin Vec2, style *Style, grab float64) {
	if style == nil {
		return
	}
	if r.dirty || r.stroke.Width != style.SpringWidth || r.stroke.Join != style.SpringJoin {
		r.stroke.Width = style.SpringWidth
		r.stroke.Join = style.SpringJoin
		r.stroke.SetPoints(r.path)
		r.dirty = false
	}
	r.stroke.Draw(dst, origin, style.Spring)

	r.drawBase(dst, origin, style)

	hit := r.BallHit()
	cx := float32(origin.X + hit.CenterX)
	cy := float32(origin.Y + hit.CenterY)
	if grab > 0 && style.GrabShadow.A > 0 {
		c := style.GrabShadow.WithAlpha(style.GrabShadow.A * clamp01(grab))
		vector.FillCircle(dst, cx, cy+grabShadowOffset, float32(hit.Radius), c.toRGBA(), true)
	}
	if style.Ball.A > 0 {
		vector.FillCircle(dst, cx, cy, float32(hit.Radius), style.Ball.toRGBA(), true)
	}

	if r.image != nil {
		r.drawImage(dst, origin)
		return
	}
	r.drawLabel(dst, float64(cx), float64(cy), style)
}

// drawBase draws a rounded bar with a soft shadow under it.
func (r *Renderer) drawBase(dst *ebiten.Image, origin Vec2, style *Style) {
	b := r.BaseHit()
	x := origin.X + b.X
	y := origin.Y + b.Y
	if style.BaseShadow.A > 0 {
		fillRoundedRect(dst, x, y+2, b.Width, b.Height, style.BaseRadius, style.BaseShadow)
	}
	fillRoundedRect(dst, x, y, b.Width, b.Height, style.BaseRadius, style.Base)
}

// fillRoundedRect approximates a CSS border-radius bar: a center rect plus
// two end caps. Radius is capped at half the height.
func fillRoundedRect(dst *ebiten.Image, x, y, w, h, radius float64, c Color) {
	if w <= 0 || h <= 0 {
		return
	}
	rad := math.Min(radius, math.Min(h/2, w/2))
	clr := c.toRGBA()
	if rad <= 0 {
		vector.FillRect(dst, float32(x), float32(y), float32(w), float32(h), clr, false)
		return
	}
	vector.FillRect(dst, float32(x+rad), float32(y), float32(w-2*rad), float32(h), clr, true)
	vector.FillRect(dst, float32(x), float32(y+rad), float32(rad), float32(h-2*rad), clr, true)
	vector.FillRect(dst, float32(x+w-rad), float32(y+rad), float32(rad), float32(h-2*rad), clr, true)
	r32 := float32(rad)
	vector.FillCircle(dst, float32(x+rad), float32(y+rad), r32, clr, true)
	vector.FillCircle(dst, float32(x+w-rad), float32(y+rad), r32, clr, true)
	vector.FillCircle(dst, float32(x+rad), float32(y+h-rad), r32, clr, true)
	vector.FillCircle(dst, float32(x+w-rad), float32(y+h-rad), r32, clr, true)
}

// drawImage places the image's bottom-center on the ball anchor, scaled down
// to fit within 80% of the widget.
func (r *Renderer) drawImage(dst *ebiten.Image, origin Vec2) {
	b := r.image.Bounds()
	iw, ih := float64(b.Dx()), float64(b.Dy())
	if iw == 0 || ih == 0 {
		return
	}
	o := r.res.Options
	scale := math.Min(1, math.Min(o.Width*contentMaxRatio/iw, o.Height*contentMaxRatio/ih))

	op := &ebiten.DrawImageOptions{}
	op.GeoM.Translate(-iw/2, -ih)
	op.GeoM.Scale(scale, scale)
	op.GeoM.Translate(origin.X+r.ball.X, origin.Y+r.ball.Y)
	op.Filter = ebiten.FilterLinear
	dst.DrawImage(r.image, op)
}

// drawLabel centers the label on the ball.
func (r *Renderer) drawLabel(dst *ebiten.Image, cx, cy float64, style *Style) {
	if r.label == "" || style.LabelFace == nil {
		return
	}
	op := &text.DrawOptions{}
	op.GeoM.Translate(cx, cy)
	op.PrimaryAlign = text.AlignCenter
	op.SecondaryAlign = text.AlignCenter
	op.ColorScale.ScaleWithColor(style.Label.toRGBA())
	text.Draw(dst, r.label, style.LabelFace, op)
}
