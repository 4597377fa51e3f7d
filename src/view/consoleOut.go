package view

import (
	"fmt"
	"io"
	"os"
	"sort"
	"sync"
	"time"

	"lifegrid/src/universe"
)

//ConsoleOut prints the simulation progress as plain text
type ConsoleOut struct {
	u         universe.Universe
	w         io.Writer
	startTime time.Time
	done      chan struct{}
	doneOnce  sync.Once
}

//NewConsoleOut creates the ConsoleOut writing to stdout
func NewConsoleOut() *ConsoleOut {
	return NewConsoleOutTo(os.Stdout)
}

//NewConsoleOutTo creates the ConsoleOut writing to w
func NewConsoleOutTo(w io.Writer) *ConsoleOut {
	return &ConsoleOut{w: w, done: make(chan struct{})}
}

func (c *ConsoleOut) Refresh() {
	st := c.u.Status()
	if st.RunningMode == universe.RunningStateFinished {
		totalTime := time.Since(c.startTime).Round(time.Millisecond)
		resultData := map[string]interface{}{
			"Last iteration": st.IterationNum,
			"Total time":     totalTime,
			"Live cells":     st.LiveCells,
		}
		_, _ = fmt.Fprintln(c.w, "\nFinished:")
		c.printHashData(resultData)
		c.doneOnce.Do(func() { close(c.done) })
	} else if st.RunningMode == universe.RunningStateRun {
		if st.IterationNum%10 == 0 {
			_, _ = fmt.Fprintf(c.w, "  Iterations done: %v\n", st.IterationNum)
		}
	}
}

//Done is closed once the finish report has been printed
func (c *ConsoleOut) Done() <-chan struct{} {
	return c.done
}

func (c *ConsoleOut) Register(u universe.Universe) {
	c.u = u
	o := c.u.Options()
	_, _ = fmt.Fprintln(c.w, "Running configuration:")
	_, _ = fmt.Fprintf(c.w, "  Dimension: %v x %v\n", o.Width, o.Height)
	_, _ = fmt.Fprintf(c.w, "  Interval: %v\n", o.Interval)
	_, _ = fmt.Fprintf(c.w, "  Max iterations: %v steps\n", o.MaxSteps)
	c.printHashData(o.Advanced)
}

func (c *ConsoleOut) Start() {
	c.startTime = time.Now()
	_, _ = fmt.Fprintln(c.w, "\nSimulation started...")
}

func (c *ConsoleOut) printHashData(d map[string]interface{}) {
	propNames := make([]string, 0, len(d))
	for k := range d {
		propNames = append(propNames, k)
	}
	sort.Strings(propNames)
	for _, propName := range propNames {
		_, _ = fmt.Fprintf(c.w, "  %s: %v\n", propName, d[propName])
	}
}
