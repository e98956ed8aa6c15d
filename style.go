package springball

import (
	"bytes"
	"fmt"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"golang.org/x/image/colornames"
	"golang.org/x/image/font/gofont/gobold"
)

// StyleID keys the shared style in the registry.
const StyleID = "springball-style"

const defaultLabelSize = 17.6

// Style holds the shared visual resources every widget draws with.
type Style struct {
	Label       Color
	LabelFace   *text.GoTextFace
	Spring      Color
	SpringWidth float64
	SpringJoin  JoinMode
	Base        Color
	BaseShadow  Color
	BaseRadius  float64
	// Ball fills the hit circle. Transparent by default: only the label or
	// image is visible.
	Ball       Color
	GrabShadow Color
}

// styles is the registry. Not locked: the package is single-threaded.
var styles = map[string]*Style{}

// RegisterStyle builds the shared style on first call and returns the same
// instance afterwards. Hosts call it once before the first frame; Widget.Attach
// calls it too, so direct users of Widget need not.
func RegisterStyle() (*Style, error) {
	if s, ok := styles[StyleID]; ok {
		return s, nil
	}
	source, err := text.NewGoTextFaceSource(bytes.NewReader(gobold.TTF))
	if err != nil {
		return nil, fmt.Errorf("springball: failed to parse label font: %w", err)
	}
	s := &Style{
		Label:       ColorFrom(color.RGBA{R: 0x04, G: 0x70, B: 0x9b, A: 0xff}),
		LabelFace:   &text.GoTextFace{Source: source, Size: defaultLabelSize},
		Spring:      ColorFrom(colornames.Gray),
		SpringWidth: 1,
		SpringJoin:  JoinMiter,
		Base:        ColorFrom(colornames.Silver),
		BaseShadow:  Color{A: 0.08},
		BaseRadius:  9,
		GrabShadow:  Color{A: 0.36},
	}
	ensureWhitePixel()
	styles[StyleID] = s
	debugf("style %q registered", StyleID)
	return s, nil
}

// RegisteredStyle returns the shared style, or nil before RegisterStyle.
func RegisteredStyle() *Style {
	return styles[StyleID]
}

// --- White pixel singleton (no sync.Once: single-threaded) ---

var whitePixelImage *ebiten.Image

// ensureWhitePixel returns a lazily-initialized 1x1 white pixel image used as
// the source for untextured triangles.
func ensureWhitePixel() *ebiten.Image {
	if whitePixelImage == nil {
		whitePixelImage = ebiten.NewImage(1, 1)
		whitePixelImage.Fill(color.White)
	}
	return whitePixelImage
}
