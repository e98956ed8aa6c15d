package springball

import (
	"math"
	"strconv"
	"strings"
)

// GeneratePath returns the 2*turns+1 zig-zag vertices between tip and base.
// Even samples sit -amplitude off the tip→base line, odd samples +amplitude.
// turns below 1 yields nil.
func GeneratePath(tip, base Vec2, turns int, amplitude float64) []Vec2 {
	if turns < 1 {
		return nil
	}
	return appendZigZag(make([]Vec2, 0, 2*turns+1), tip, base, turns, amplitude)
}

// SpringPath returns the drawn polyline: tip, the zig-zag vertices, then base.
func SpringPath(tip, base Vec2, geom SpringGeometry) []Vec2 {
	return AppendSpringPath(nil, tip, base, geom)
}

// AppendSpringPath appends the drawn polyline to dst and returns the extended
// slice. Pass a reused buffer resliced to zero to avoid per-frame allocation.
func AppendSpringPath(dst []Vec2, tip, base Vec2, geom SpringGeometry) []Vec2 {
	dst = append(dst, tip)
	dst = appendZigZag(dst, tip, base, geom.Turns, geom.Amplitude)
	return append(dst, base)
}

func appendZigZag(dst []Vec2, tip, base Vec2, turns int, amplitude float64) []Vec2 {
	if turns < 1 {
		return dst
	}
	delta := base.Sub(tip)
	perp := math.Atan2(delta.Y, delta.X) + math.Pi/2
	px, py := math.Cos(perp), math.Sin(perp)
	samples := 2 * turns
	for i := 0; i <= samples; i++ {
		t := float64(i) / float64(samples)
		off := -amplitude
		if i%2 == 1 {
			off = amplitude
		}
		dst = append(dst, Vec2{
			X: tip.X + delta.X*t + px*off,
			Y: tip.Y + delta.Y*t + py*off,
		})
	}
	return dst
}

// PathData formats points as an SVG path description ("M x,y L x,y ...").
// Returns "" for an empty path.
func PathData(points []Vec2) string {
	if len(points) == 0 {
		return ""
	}
	var b strings.Builder
	b.Grow(len(points) * 16)
	for i, p := range points {
		if i == 0 {
			b.WriteByte('M')
		} else {
			b.WriteString(" L")
		}
		b.WriteString(strconv.FormatFloat(p.X, 'f', -1, 64))
		b.WriteByte(',')
		b.WriteString(strconv.FormatFloat(p.Y, 'f', -1, 64))
	}
	return b.String()
}
