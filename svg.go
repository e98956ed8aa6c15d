package springball

import (
	"bufio"
	"encoding/xml"
	"fmt"
	"io"
	"strings"
)

// SVGSink is a RenderSink that keeps the spring as a raw SVG path string.
type SVGSink struct {
	Ball Vec2
	Path string
}

// SetBallPosition implements RenderSink.
func (s *SVGSink) SetBallPosition(p Vec2) { s.Ball = p }

// SetSpringPath implements RenderSink.
func (s *SVGSink) SetSpringPath(path []Vec2) { s.Path = PathData(path) }

// WriteSVG renders one pose of the widget described by opts as a standalone
// SVG document. pull displaces the pointer from the rest anchor as if the
// ball had been dragged; the radial clamp applies. A zero pull draws the rest
// pose.
func WriteSVG(w io.Writer, opts Options, pull Vec2) error {
	res, err := opts.Resolve()
	if err != nil {
		return err
	}
	sink := &SVGSink{}
	e, err := NewEngine(res.Params, res.Geometry, res.Rest, sink, nil)
	if err != nil {
		return err
	}
	if pull != (Vec2{}) {
		grab := res.Rest.Rest
		e.BeginDrag(0, grab, 1)
		e.DragTo(0, grab.Add(pull), 1)
	}

	o := res.Options
	l := res.Params.SpringLength
	base := baseRect(o)
	bw := bufio.NewWriter(w)
	fmt.Fprintf(bw, `<svg xmlns="http://www.w3.org/2000/svg" width="%g" height="%g" overflow="visible">`+"\n", o.Width, o.Height)
	fmt.Fprintf(bw, `  <path d="%s" stroke="#888" stroke-width="1" fill="none"/>`+"\n", sink.Path)
	fmt.Fprintf(bw, `  <rect x="%g" y="%g" width="%g" height="%g" rx="9" fill="#bbb"/>`+"\n",
		base.X, base.Y, base.Width, base.Height)
	fmt.Fprintf(bw, `  <circle cx="%g" cy="%g" r="%g" fill="none"/>`+"\n", sink.Ball.X, sink.Ball.Y-l, l)
	var label strings.Builder
	if err := xml.EscapeText(&label, []byte(o.Label)); err != nil {
		return err
	}
	fmt.Fprintf(bw, `  <text x="%g" y="%g" text-anchor="middle" dominant-baseline="central" font-weight="bold" fill="#04709b">%s</text>`+"\n",
		sink.Ball.X, sink.Ball.Y-l, label.String())
	fmt.Fprintln(bw, `</svg>`)
	return bw.Flush()
}
