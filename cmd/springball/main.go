// Command springball opens a window with one spring ball widget.
//
//	springball -config ball.yaml -watch    # hot-reload options on save
//	springball -svg rest.svg -pull 40,-20  # write a pose as SVG and exit
//	springball -script demo.yaml           # replay scripted input
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/phanxgames/springball"
)

func main() {
	configPath := flag.String("config", "", "YAML options file")
	watch := flag.Bool("watch", false, "reload -config when it changes")
	debug := flag.Bool("debug", false, "enable debug logging")
	width := flag.Int("width", 640, "window width")
	height := flag.Int("height", 480, "window height")
	label := flag.String("label", "", "ball label (overrides config)")
	image := flag.String("img", "", "ball image file (overrides config)")
	svgPath := flag.String("svg", "", "write the widget as SVG to this file and exit")
	pull := flag.String("pull", "0,0", "pointer displacement for -svg, as x,y")
	scriptPath := flag.String("script", "", "YAML input script to replay")
	flag.Parse()

	opts, err := loadOptions(*configPath, *label, *image)
	if err != nil {
		log.Fatal(err)
	}

	if *svgPath != "" {
		if err := writeSVG(*svgPath, opts, *pull); err != nil {
			log.Fatal(err)
		}
		return
	}

	game, err := springball.NewGame(springball.RunConfig{
		Title:      "springball",
		Width:      *width,
		Height:     *height,
		Background: springball.Color{R: 0.96, G: 0.96, B: 0.97, A: 1},
		Debug:      *debug,
	})
	if err != nil {
		log.Fatal(err)
	}
	w, err := springball.NewWidget("ball", opts)
	if err != nil {
		log.Fatal(err)
	}
	if err := game.Add(w); err != nil {
		log.Fatal(err)
	}

	if *scriptPath != "" {
		data, err := os.ReadFile(*scriptPath)
		if err != nil {
			log.Fatal(err)
		}
		runner, err := springball.LoadTestScript(data)
		if err != nil {
			log.Fatal(err)
		}
		game.SetTestRunner(runner)
	}

	if *watch {
		if *configPath == "" {
			log.Fatal("-watch requires -config")
		}
		watcher, err := springball.WatchOptions(*configPath)
		if err != nil {
			log.Fatal(err)
		}
		defer watcher.Close()
		game.OnUpdate(reloader(game, watcher, *label, *image))
	}

	if err := springball.RunGame(springball.RunConfig{
		Title:  "springball",
		Width:  *width,
		Height: *height,
	}, game); err != nil {
		log.Fatal(err)
	}
}

// reloader swaps the widget whenever the watched options file changes. A bad
// edit keeps the current widget and logs the error.
func reloader(game *springball.Game, watcher *springball.OptionsWatcher, label, image string) func() error {
	return func() error {
		select {
		case err := <-watcher.Errors:
			log.Printf("watch: %v", err)
		default:
		}
		path, ok := watcher.Poll()
		if !ok {
			return nil
		}
		opts, err := loadOptions(path, label, image)
		if err != nil {
			log.Printf("reload: %v", err)
			return nil
		}
		next, err := springball.NewWidget("ball", opts)
		if err != nil {
			log.Printf("reload: %v", err)
			return nil
		}
		widgets := game.Widgets()
		if len(widgets) == 0 {
			return game.Add(next)
		}
		if err := game.Replace(widgets[0], next); err != nil {
			return err
		}
		log.Printf("reloaded %s", path)
		return nil
	}
}

func loadOptions(path, label, image string) (springball.Options, error) {
	var opts springball.Options
	if path != "" {
		var err error
		opts, err = springball.LoadOptions(path)
		if err != nil {
			return opts, err
		}
	}
	if label != "" {
		opts.Label = label
	}
	if image != "" {
		opts.Image = image
	}
	return opts, nil
}

func writeSVG(path string, opts springball.Options, pull string) error {
	p, err := parsePoint(pull)
	if err != nil {
		return fmt.Errorf("-pull: %w", err)
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := springball.WriteSVG(f, opts, p); err != nil {
		_ = f.Close()
		return err
	}
	return f.Close()
}

func parsePoint(s string) (springball.Vec2, error) {
	xs, ys, ok := strings.Cut(s, ",")
	if !ok {
		return springball.Vec2{}, fmt.Errorf("want x,y, got %q", s)
	}
	x, err := strconv.ParseFloat(strings.TrimSpace(xs), 64)
	if err != nil {
		return springball.Vec2{}, err
	}
	y, err := strconv.ParseFloat(strings.TrimSpace(ys), 64)
	if err != nil {
		return springball.Vec2{}, err
	}
	return springball.Vec2{X: x, Y: y}, nil
}
