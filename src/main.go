package main

import (
	"fmt"
	"log"
	"os"
	"slices"
	"sort"
	"strings"
	"time"

	"github.com/integrii/flaggy"

	"lifegrid/src/config"
	"lifegrid/src/universe"
	"lifegrid/src/view"
)

var templates = []universe.Template{
	{
		Name:  "testSample1",
		Descr: "the test sample with 3 stable patterns",
		Coordinates: [][]int{
			{1, 1}, {1, 2},
			{2, 1}, {2, 2},
			{3, 3},
			{4, 2},
			{4, 3},
			{5, 3},
		},
	},
	{
		Name:        "blinker",
		Descr:       "period 2 oscillator",
		Coordinates: [][]int{{1, 2}, {2, 2}, {3, 2}},
	},
	{
		Name:        "glider",
		Descr:       "travels one cell diagonally every 4 steps and wraps around the edges",
		Coordinates: [][]int{{1, 0}, {2, 1}, {0, 2}, {1, 2}, {2, 2}},
	},
}

func main() {
	cfg, uo := initOptions()

	//progress is reported by the registered viewer, no status channel is needed
	u, err := universe.NewBaseUniverse(uo, nil)
	if err != nil {
		log.Fatalln(err)
	}
	for _, tmpl := range templates {
		u.AddTemplate(tmpl)
	}

	//viewers are registered before settling so the first refresh already reaches them
	if cfg.Interactive {
		v, err := view.NewViewTerminal(cfg.Template)
		if err != nil {
			log.Fatalln(err)
		}
		u.RegisterViewer(v)
		settle(u, cfg)
		v.Start()
		u.Close()
		return
	}

	c := view.NewConsoleOut()
	u.RegisterViewer(c)
	settle(u, cfg)
	c.Start()
	u.Run()
	<-c.Done()
	u.Close()
}

func settle(u universe.Universe, cfg config.Env) {
	if cfg.Random {
		u.SettleWithRandomData()
		return
	}
	if err := u.SettleTemplate(cfg.Template); err != nil {
		log.Fatalln(err)
	}
}

//initOptions merges the defaults, the SIMLIFE_* environment and the command line, in that order
func initOptions() (cfg config.Env, uo *universe.Options) {
	d := universe.DefaultUniverseOptions
	cfg, err := config.Load(config.Env{
		Width:           d.Width,
		Height:          d.Height,
		Interval:        d.Interval,
		MaxSteps:        d.MaxSteps,
		MaxSkippedTicks: d.MaxSkippedTicks,
		Seed:            uint64(time.Now().UnixNano()),
		Template:        templates[0].Name,
	})
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}

	names := make([]string, 0, len(templates))
	for _, t := range templates {
		names = append(names, t.Name)
	}
	sort.Strings(names)

	flaggy.SetName("simlife")
	flaggy.SetDescription("Conway's Game of Life on a toroidal field")
	flaggy.DefaultParser.ShowHelpOnUnexpected = true
	flaggy.Int(&cfg.Width, "x", "width", "Width of a simulation field")
	flaggy.Int(&cfg.Height, "y", "height", "Height of a simulation field")
	flaggy.Duration(&cfg.Interval, "i", "interval", "Simulation speed (interval between the steps) in format the number with 'ms' suffix, for example 150ms")
	flaggy.Int(&cfg.MaxSteps, "s", "maxSteps", "Limit the simulation to maxSteps, 0 means no limit")
	flaggy.Bool(&cfg.Interactive, "n", "interactive", "Start interactive mode")
	flaggy.Bool(&cfg.Random, "r", "random", "Settle with random data")
	flaggy.UInt64(&cfg.Seed, "", "seed", "Seed of the random data")
	flaggy.String(&cfg.Template, "t", "template", "Template to settle ["+strings.Join(names, "|")+"]")
	flaggy.Parse()

	if !slices.Contains(names, cfg.Template) {
		flaggy.ShowHelpAndExit("unknown template " + cfg.Template)
	}
	if cfg.Width <= 0 || cfg.Height <= 0 {
		flaggy.ShowHelpAndExit("width and height must be positive")
	}

	uo = &universe.Options{
		Width:           cfg.Width,
		Height:          cfg.Height,
		Interval:        cfg.Interval,
		MaxSteps:        cfg.MaxSteps,
		MaxSkippedTicks: cfg.MaxSkippedTicks,
		Seed:            cfg.Seed,
	}
	return cfg, uo
}
