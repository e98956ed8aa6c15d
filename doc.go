// Package springball is a draggable "ball on a spring" widget for
// [Ebitengine].
//
// The user grabs the ball and pulls it; on release it oscillates back to rest
// under a damped-spring approximation while a zig-zag spring is redrawn
// between ball and base every frame.
//
// # Quick start
//
//	w, err := springball.NewWidget("ball", springball.Options{Label: "Pull me"})
//	if err != nil {
//		log.Fatal(err)
//	}
//	if err := springball.Run(springball.RunConfig{
//		Title: "springball", Width: 640, Height: 480,
//	}, w); err != nil {
//		log.Fatal(err)
//	}
//
// # Core
//
// The physics never touches Ebitengine. [Engine] owns a [SimulationState]
// and coordinates three pieces:
//
//   - [DragController] converts pointer input into clamped ball positions and
//     turns the final displacement into a launch velocity.
//   - [SpringSimulator] advances position and velocity one frame at a time
//     until both fall below fixed thresholds, then snaps to rest.
//   - [GeneratePath] builds the zig-zag polyline from ball to base.
//
// Frames are driven by a [FrameScheduler]: each step queues exactly one
// callback for the next Tick, and a new drag cancels it. Output goes to a
// [RenderSink]; [Renderer] draws with Ebitengine and [SVGSink] keeps an SVG
// path string.
//
// # Presentation
//
// [Widget] adds the container, hit testing, a grab highlight (via [gween])
// and listener lifecycle ([Widget.Attach] and [Widget.Dispose]). [Game] hosts
// widgets and lays them out. [Options] can be loaded from YAML and watched
// for changes with [WatchOptions].
//
// [Ebitengine]: https://ebitengine.org
// [gween]: https://github.com/tanema/gween
package springball
