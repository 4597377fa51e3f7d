package universe

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"lifegrid/src/grid"
)

//ErrUnknownTemplate is returned by SettleTemplate for a name never added
var ErrUnknownTemplate = errors.New("universe: unknown template")

//Area is a snapshot of the grid, Entities[y][x] is the state of row y column x
type Area struct {
	Width    int
	Height   int
	Entities [][]grid.CellState
}

//Options represents the Universe's configurable options
type Options struct {
	Width           int //columns
	Height          int //rows
	Interval        time.Duration
	MaxSteps        int
	MaxSkippedTicks int
	Seed            uint64                 //seed of the random source used by SettleWithRandomData
	Advanced        map[string]interface{} //advanced options (engine specific)
}

//Status represents the status of the Universe at concrete moment
type Status struct {
	IterationNum  int
	RunningMode   RunningState
	LiveCells     int
	IterationTime time.Duration
	Details       map[string]interface{} //advanced details (engine specific)
}

//Viewer is the interface to any Viewer - the object who can display simulation data or control the engine
type Viewer interface {
	Refresh()
	Register(u Universe)
	Start()
}

//Template represent the seeding template which can used to settle the universe with predefined data
type Template struct {
	Name        string  //template name
	Descr       string  //template descr
	Coordinates [][]int //array of [x,y] coordinates
}

//The universe running status at the concrete moment
type RunningState int

//default options
const (
	DefSimulationInterval = time.Millisecond * 100
	DefMaxSteps           = 1000
	DefWidth              = 40
	DefHeight             = 15
	DefMaxSkippedTicks    = 5
)

//DetailLastError is the Status.Details key holding the error of the last failed command
const DetailLastError = "lastError"

const (
	RunningStateManual   RunningState = 0x0
	RunningStateStep     RunningState = 0x1
	RunningStateRun      RunningState = 0x2
	RunningStateFinished RunningState = 0x3
)

var DefaultUniverseOptions = Options{
	Width:           DefWidth,
	Height:          DefHeight,
	Interval:        DefSimulationInterval,
	MaxSteps:        DefMaxSteps,
	MaxSkippedTicks: DefMaxSkippedTicks,
}

//BaseUniverse is the universe's engine
//the grid itself is not synchronized: every mutation goes through the control loop
//and holds the area lock, readers take the same lock
type BaseUniverse struct {
	options Options
	state   struct {
		Status
		sync.Mutex
	}
	area struct {
		*grid.Grid
		sync.Mutex
	}
	source  grid.BitSource
	stateCh chan Status
	views   struct {
		list []Viewer
		sync.Mutex
	}
	templates map[string]Template
	controlCh chan func()
	closeCh   chan bool
	stopped   chan struct{} //closed when mainLoop exits
	closeOnce sync.Once
}

//NewBaseUniverse creates the BaseUniverse instance and starts its control loop
//the returned error wraps grid.ErrInvalidDimension for a non-positive width or height
func NewBaseUniverse(o *Options, stateCh chan Status) (*BaseUniverse, error) {
	if o == nil {
		o = &DefaultUniverseOptions
	}
	g, err := grid.New(o.Height, o.Width)
	if err != nil {
		return nil, fmt.Errorf("create universe: %w", err)
	}

	u := BaseUniverse{
		options:   *o,
		source:    grid.NewRandSource(o.Seed),
		controlCh: make(chan func(), 1),
		closeCh:   make(chan bool, 1),
		stopped:   make(chan struct{}),
		stateCh:   stateCh,
		templates: map[string]Template{},
	}
	u.options.Advanced = map[string]interface{}{
		"engine":   "double-buffered",
		"topology": "torus",
		"seed":     o.Seed,
	}
	u.state.Details = make(map[string]interface{})
	u.area.Grid = g

	go u.mainLoop()
	return &u, nil
}

//AddTemplate adds the seeding template to the internal storage
//the universe can be populated with this template by call SettleTemplate
func (u *BaseUniverse) AddTemplate(tmpl Template) {
	u.templates[tmpl.Name] = tmpl
}

//Settle settles the universe with data
//vc - array of x,y coordinates, wrapped around the field edges
func (u *BaseUniverse) Settle(vc [][]int) {
	u.area.Lock()
	u.settle(vc, grid.Alive)
	u.area.Unlock()
	u.updateLiveCells()
	u.refreshView()
}

//SettleTemplate populates the universe with the seeding template
func (u *BaseUniverse) SettleTemplate(name string) error {
	tmpl, ok := u.templates[name]
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownTemplate, name)
	}
	u.Settle(tmpl.Coordinates)
	return nil
}

//SettleWithRandomData populates the universe with random data
//ignored while the simulation is running
func (u *BaseUniverse) SettleWithRandomData() {
	mode := u.Status().RunningMode
	if mode != RunningStateManual && mode != RunningStateFinished {
		return
	}
	u.enqueue(u.clear)
	u.enqueue(func() {
		u.area.Lock()
		err := u.area.Randomize(u.source)
		u.area.Unlock()
		u.state.Lock()
		if err != nil {
			u.state.Details[DetailLastError] = fmt.Errorf("settle with random data: %w", err)
		} else {
			delete(u.state.Details, DetailLastError)
		}
		u.state.Unlock()
		u.updateLiveCells()
		u.refreshView()
	})
}

//InverseCell inverses the cell state at point x, y
//points outside the field are ignored
func (u *BaseUniverse) InverseCell(x int, y int) {
	if x < 0 || y < 0 || x >= u.options.Width || y >= u.options.Height {
		return
	}
	u.area.Lock()
	c := u.area.Cell(y, x)
	if c.State().IsAlive() {
		c.SetState(grid.Dead)
	} else {
		c.SetState(grid.Alive)
	}
	u.area.Unlock()
	u.updateLiveCells()
	u.refreshView()
}

//RegisterViewer registers the viewer - the universe will call the viewer when the state is changed
//the viewer is wired to the universe before it can receive the first Refresh
func (u *BaseUniverse) RegisterViewer(v Viewer) {
	v.Register(u)
	u.views.Lock()
	u.views.list = append(u.views.list, v)
	u.views.Unlock()
}

//StateCh returns the channel with the universe's status updates
func (u *BaseUniverse) StateCh() chan Status {
	return u.stateCh
}

//Status returns current universe status represented by Status struct
func (u *BaseUniverse) Status() Status {
	u.state.Lock()
	defer u.state.Unlock()
	st := u.state.Status
	st.Details = make(map[string]interface{}, len(u.state.Details))
	for k, v := range u.state.Details {
		st.Details[k] = v
	}
	return st
}

//Options returns current universe configuration represented by Options struct
func (u *BaseUniverse) Options() Options {
	return u.options
}

//Area returns a copy of the current universe area (field where cells is living)
func (u *BaseUniverse) Area() Area {
	u.area.Lock()
	defer u.area.Unlock()
	a := createArea(u.area.NumberOfColumns(), u.area.NumberOfRows())
	i := 0
	for c := range u.area.All() {
		a.Entities[i/a.Width][i%a.Width] = c.State()
		i++
	}
	return a
}

//Run starts the universe simulation, returns immediately
func (u *BaseUniverse) Run() {
	u.enqueue(u.run)
}

//Stop stops the universe simulation, returns immediately
//the Status struct will be written the stateCh on finish
func (u *BaseUniverse) Stop() {
	u.enqueue(u.stop)
}

//Step do one simulation step, returns immediately
//the Status struct will be written to the stateCh on start and on finish
func (u *BaseUniverse) Step() {
	u.enqueue(u.step)
}

//Clear clears the universe (kill all cells and reset all counters), returns immediately
//the Status struct will be written to the stateCh on finish
func (u *BaseUniverse) Clear() {
	u.enqueue(u.clear)
}

//Close stops the main loop, returns immediately
//commands issued after Close are dropped
func (u *BaseUniverse) Close() {
	u.closeOnce.Do(func() {
		u.closeCh <- true
	})
}

//enqueue passes the command to the main loop
//returns false if the main loop has already exited
func (u *BaseUniverse) enqueue(cmd func()) bool {
	select {
	case u.controlCh <- cmd:
		return true
	case <-u.stopped:
		return false
	}
}

//mainLoop - the main cycle, should start as a goroutine
//waits for command and executes
func (u *BaseUniverse) mainLoop() {
	defer close(u.stopped)
	var c = false
	for !c {
		select {
		case cmd := <-u.controlCh:
			cmd()
		case c = <-u.closeCh:
		}
	}
}

//settle places the entity at every x,y position
func (u *BaseUniverse) settle(vc [][]int, entity grid.CellState) {
	for _, v := range vc {
		if len(v) < 2 {
			continue
		}
		u.area.Cell(v[1], v[0]).SetState(entity)
	}
}

//updateLiveCells recounts the live cells into the status
func (u *BaseUniverse) updateLiveCells() {
	u.area.Lock()
	n := u.area.Population()
	u.area.Unlock()
	u.state.Lock()
	u.state.LiveCells = n
	u.state.Unlock()
}

func (u *BaseUniverse) runningMode() RunningState {
	u.state.Lock()
	defer u.state.Unlock()
	return u.state.RunningMode
}

//switchRunningState switch the state of the universe to RunningState
//also writes the new state to the stateCh to signal upper control software
func (u *BaseUniverse) switchRunningState(to RunningState) {
	u.state.Lock()
	u.state.RunningMode = to
	st := u.state.Status
	u.state.Unlock()
	if u.stateCh != nil {
		u.stateCh <- st
	}
}

//run starts the universe simulation
//simulation will stop on Stop() calling or when the boundary conditions are reached
func (u *BaseUniverse) run() {
	if u.runningMode() == RunningStateRun {
		return
	}
	u.switchRunningState(RunningStateRun)
	go func() {
		skipped := 0
		done := make(chan bool)
		for {
			mode := u.runningMode()
			if mode != RunningStateRun && mode != RunningStateStep {
				break
			}
			if skipped > u.options.MaxSkippedTicks {
				u.enqueue(func() {
					u.switchRunningState(RunningStateFinished)
					u.refreshView()
				})
				break
			}
			//skip the tick if the universe is still in the calculation mode
			if mode != RunningStateStep {
				skipped = 0
				ok := u.enqueue(func() {
					if u.runningMode() == RunningStateRun {
						u.step()
					}
					done <- true
				})
				if !ok {
					return
				}
				//the command is dropped if the loop is closed before running it
				select {
				case <-done:
				case <-u.stopped:
					return
				}
			} else {
				skipped++
			}
			if u.options.Interval > 0 {
				time.Sleep(u.options.Interval)
			}
		}
	}()
}

//stop stops the universe running cycle
func (u *BaseUniverse) stop() {
	if u.runningMode() == RunningStateRun {
		u.switchRunningState(RunningStateManual)
	}
}

//step does the new one state calculation for entire universe
//the universe is finished when MaxSteps is reached, all cells died or nothing changed
func (u *BaseUniverse) step() {
	rm := u.runningMode()
	maxIter := u.options.MaxSteps
	u.state.Lock()
	finished := maxIter != 0 && u.state.IterationNum >= maxIter
	if !finished {
		u.state.IterationNum++
	}
	iterationNum := u.state.IterationNum
	u.state.Unlock()
	defer func() {
		if finished {
			u.switchRunningState(RunningStateFinished)
		} else {
			u.switchRunningState(rm)
		}
		u.refreshView()
	}()

	if finished {
		return
	}
	u.switchRunningState(RunningStateStep)
	isAlive, changed := u.nextIteration()
	if !isAlive || !changed || (maxIter != 0 && iterationNum >= maxIter) {
		finished = true
	}
}

//nextIteration advances the grid by one generation and updates the metrics
func (u *BaseUniverse) nextIteration() (hasLiveEntities bool, changed bool) {
	u.area.Lock()
	start := time.Now()
	liveCells, changed := u.area.Advance()
	elapsed := time.Since(start)
	u.area.Unlock()

	u.state.Lock()
	u.state.LiveCells = liveCells
	u.state.IterationTime = elapsed
	u.state.Unlock()
	return liveCells > 0, changed
}

//clear clears the universe data, reset all counters
func (u *BaseUniverse) clear() {
	u.state.Lock()
	u.area.Lock()
	u.state.IterationNum = 0
	u.state.LiveCells = 0
	u.area.Clear()
	u.area.Unlock()
	u.state.Unlock()
	u.switchRunningState(RunningStateManual)
	u.refreshView()
}

//refreshView calls Refresh event for all registered views
func (u *BaseUniverse) refreshView() {
	u.views.Lock()
	views := append([]Viewer(nil), u.views.list...)
	u.views.Unlock()
	for _, v := range views {
		v.Refresh()
	}
}

//createArea allocates the snapshot area in one backing buffer
func createArea(width int, height int) Area {
	area := Area{Width: width, Height: height, Entities: make([][]grid.CellState, height)}
	b := make([]grid.CellState, width*height)
	for i := range area.Entities {
		start := width * i
		area.Entities[i] = b[start : start+width : start+width]
	}
	return area
}
