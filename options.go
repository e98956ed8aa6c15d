package springball

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"math"
	"os"

	"gopkg.in/yaml.v3"
)

// Placement selects how a widget's container is positioned on screen.
type Placement string

const (
	// PlacementFixedBottomRight pins the container 7% from the right and 3%
	// from the bottom of the screen. The container can be dragged by its base.
	PlacementFixedBottomRight Placement = "fixed-br"
	// PlacementInline centers the container horizontally in the host's flow.
	PlacementInline Placement = "inline"
)

// Layout defaults.
const (
	DefaultWidth        = 100.0
	DefaultHeight       = 180.0
	DefaultSpringLength = 50.0
	DefaultBaseWidth    = 80.0
	DefaultBaseHeight   = 18.0
	DefaultLabel        = "Ball"

	// defaultSpringWidthRatio sizes the zig-zag amplitude from the width.
	defaultSpringWidthRatio = 0.06
	// springLengthMargin caps the spring length at height/2 minus this.
	springLengthMargin = 30.0
)

// Options is the widget's configuration surface. Zero fields take defaults.
type Options struct {
	Width        float64   `yaml:"width"`
	Height       float64   `yaml:"height"`
	SpringLength float64   `yaml:"spring_length"`
	BaseWidth    float64   `yaml:"base_width"`
	BaseHeight   float64   `yaml:"base_height"`
	Label        string    `yaml:"label"`
	Image        string    `yaml:"img"`
	SpringWidth  float64   `yaml:"spring_width"`
	Turns        int       `yaml:"turns"`
	Stiffness    float64   `yaml:"stiffness"`
	Damping      float64   `yaml:"damping"`
	Radius       float64   `yaml:"radius"`
	Placement    Placement `yaml:"position"`
	// Draggable overrides whether the container can be dragged by its base.
	// Unset means draggable only for fixed placement.
	Draggable *bool `yaml:"draggable"`
}

// DefaultOptions returns the shipped configuration.
func DefaultOptions() Options {
	return Options{}.withDefaults()
}

func (o Options) withDefaults() Options {
	if o.Width == 0 {
		o.Width = DefaultWidth
	}
	if o.Height == 0 {
		o.Height = DefaultHeight
	}
	if o.SpringLength == 0 {
		o.SpringLength = DefaultSpringLength
	}
	if o.BaseWidth == 0 {
		o.BaseWidth = DefaultBaseWidth
	}
	if o.BaseHeight == 0 {
		o.BaseHeight = DefaultBaseHeight
	}
	if o.Label == "" {
		o.Label = DefaultLabel
	}
	if o.SpringWidth == 0 {
		o.SpringWidth = o.Width * defaultSpringWidthRatio
	}
	if o.Turns == 0 {
		o.Turns = DefaultTurns
	}
	if o.Stiffness == 0 {
		o.Stiffness = DefaultStiffness
	}
	if o.Damping == 0 {
		o.Damping = DefaultDamping
	}
	if o.Radius == 0 {
		o.Radius = DefaultRadius
	}
	if o.Placement == "" {
		o.Placement = PlacementFixedBottomRight
	}
	return o
}

// ContainerDraggable reports whether the base drags the container.
func (o Options) ContainerDraggable() bool {
	if o.Draggable != nil {
		return *o.Draggable
	}
	return o.withDefaults().Placement == PlacementFixedBottomRight
}

// Resolved is the validated core configuration derived from Options.
type Resolved struct {
	Options  Options // with defaults applied
	Params   PhysicsParams
	Geometry SpringGeometry
	Rest     RestState
	// SpringHeight is the distance from the top of the container to the
	// rest anchor.
	SpringHeight float64
}

// Resolve applies defaults, derives the anchors and validates everything.
func (o Options) Resolve() (Resolved, error) {
	o = o.withDefaults()
	if !(o.Width > 0) || !(o.Height > 0) {
		return Resolved{}, fmt.Errorf("springball: size %vx%v: %w", o.Width, o.Height, ErrInvalidSize)
	}
	if o.BaseWidth < 0 || o.BaseHeight < 0 || o.BaseHeight > o.Height {
		return Resolved{}, fmt.Errorf("springball: base %vx%v: %w", o.BaseWidth, o.BaseHeight, ErrInvalidSize)
	}
	switch o.Placement {
	case PlacementFixedBottomRight, PlacementInline:
	default:
		return Resolved{}, fmt.Errorf("springball: position %q: %w", o.Placement, ErrInvalidPlacement)
	}

	o.SpringLength = math.Min(o.SpringLength, o.Height/2-springLengthMargin)
	springHeight := math.Abs(o.Height - o.SpringLength)

	params := DefaultPhysicsParams(o.SpringLength)
	params.Stiffness = o.Stiffness
	params.Damping = o.Damping
	params.Radius = o.Radius
	if err := params.Validate(); err != nil {
		return Resolved{}, err
	}
	geom := SpringGeometry{Turns: o.Turns, Amplitude: o.SpringWidth}
	if err := geom.Validate(); err != nil {
		return Resolved{}, err
	}
	rest := RestState{
		Rest: Vec2{X: o.Width / 2, Y: springHeight},
		Base: Vec2{X: o.Width / 2, Y: o.Height - o.BaseHeight},
	}
	return Resolved{
		Options:      o,
		Params:       params,
		Geometry:     geom,
		Rest:         rest,
		SpringHeight: springHeight,
	}, nil
}

// ParseOptions decodes YAML options. Unknown keys are rejected; an empty
// document yields the zero Options.
func ParseOptions(data []byte) (Options, error) {
	var o Options
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&o); err != nil && !errors.Is(err, io.EOF) {
		return Options{}, fmt.Errorf("springball: parse options: %w", err)
	}
	return o, nil
}

// LoadOptions reads and decodes a YAML options file.
func LoadOptions(path string) (Options, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Options{}, fmt.Errorf("springball: load options %s: %w", path, err)
	}
	o, err := ParseOptions(data)
	if err != nil {
		return Options{}, fmt.Errorf("%s: %w", path, err)
	}
	return o, nil
}
