package view

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"lifegrid/src/grid"
	"lifegrid/src/universe"
)

func testArea(rows ...string) universe.Area {
	a := universe.Area{Height: len(rows), Entities: make([][]grid.CellState, len(rows))}
	for y, r := range rows {
		a.Width = len(r)
		a.Entities[y] = make([]grid.CellState, len(r))
		for x, ch := range r {
			if ch == '#' {
				a.Entities[y][x] = grid.Alive
			}
		}
	}
	return a
}

func TestRenderArea(t *testing.T) {
	a := testArea(
		".#.",
		".#.",
		".#.",
	)
	got := RenderArea(a, "#", ".", 10, 10)
	want := ".#.\n.#.\n.#."
	if got != want {
		t.Fatalf("RenderArea() = %q, want %q", got, want)
	}
}

func TestRenderAreaCrops(t *testing.T) {
	a := testArea(
		"#...#",
		".#.#.",
		"..#..",
		".#.#.",
	)
	got := RenderArea(a, "#", ".", 3, 3)
	lines := strings.Split(got, "\n")
	if len(lines) != 3 {
		t.Fatalf("got %d lines: %q", len(lines), got)
	}
	if lines[0] != "#.." || lines[1] != ".#." {
		t.Fatalf("unexpected cropped rows %q", lines[:2])
	}
	if !strings.Contains(lines[2], CropWarning) {
		t.Fatalf("last line %q misses the crop warning", lines[2])
	}
}

func TestConsoleOut(t *testing.T) {
	o := universe.DefaultUniverseOptions
	o.Width, o.Height, o.Interval, o.MaxSteps = 5, 5, 0, 4
	u, err := universe.NewBaseUniverse(&o, nil)
	if err != nil {
		t.Fatal(err)
	}
	defer u.Close()

	var buf bytes.Buffer
	c := NewConsoleOutTo(&buf)
	u.RegisterViewer(c)
	u.Settle([][]int{{1, 2}, {2, 2}, {3, 2}})
	c.Start()
	u.Run()
	select {
	case <-c.Done():
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for the finish report")
	}

	out := buf.String()
	for _, want := range []string{"Dimension: 5 x 5", "Max iterations: 4 steps", "topology: torus", "Simulation started", "Last iteration: 4"} {
		if !strings.Contains(out, want) {
			t.Errorf("output misses %q:\n%s", want, out)
		}
	}
}
