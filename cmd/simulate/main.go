// Command simulate runs the motion controller headless over a scripted
// input timeline and prints the per-tick state as YAML, for tuning curves
// and dash timings without opening a window.
package main

import (
	"bytes"
	"embed"
	"flag"
	"io"
	"log"
	"os"

	"github.com/milk9111/dashmotion/prefabs"
	"gopkg.in/yaml.v3"
)

//go:embed timelines/*.yaml
var timelinesFS embed.FS

func main() {
	timelinePath := flag.String("timeline", "", "timeline YAML file (default: built-in dash sample)")
	prefab := flag.String("prefab", "", "override the timeline's prefab")
	every := flag.Int("every", 1, "print every Nth tick")
	flag.Parse()

	var src io.Reader
	if *timelinePath == "" {
		data, err := timelinesFS.ReadFile("timelines/dash.yaml")
		if err != nil {
			log.Fatal(err)
		}
		src = bytes.NewReader(data)
	} else {
		f, err := os.Open(*timelinePath)
		if err != nil {
			log.Fatal(err)
		}
		defer f.Close()
		src = f
	}

	tl, err := LoadTimeline(src)
	if err != nil {
		log.Fatal(err)
	}
	if *prefab != "" {
		tl.Prefab = *prefab
	}
	if tl.Prefab == "" {
		tl.Prefab = prefabs.PlayerFile
	}

	cfg, err := prefabs.LoadMotionConfig(tl.Prefab)
	if err != nil {
		log.Fatal(err)
	}

	enc := yaml.NewEncoder(os.Stdout)
	defer enc.Close()
	n := max(*every, 1)
	err = Run(tl, cfg, func(t Tick) error {
		if t.Tick%n != 0 && !t.DashFired {
			return nil
		}
		return enc.Encode(t)
	})
	if err != nil {
		log.Fatal(err)
	}
}
