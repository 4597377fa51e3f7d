package grid

import "testing"

func TestCellZeroValueIsDead(t *testing.T) {
	var c Cell
	if c.State() != Dead {
		t.Fatalf("zero cell state = %v, want %v", c.State(), Dead)
	}
}

func TestCellSetState(t *testing.T) {
	var c Cell
	c.SetState(Alive)
	if !c.State().IsAlive() {
		t.Fatalf("state = %v after SetState(Alive)", c.State())
	}
	c.SetState(Dead)
	if c.State().IsAlive() {
		t.Fatalf("state = %v after SetState(Dead)", c.State())
	}
}

func TestCellStateString(t *testing.T) {
	if Alive.String() != "ALIVE" || Dead.String() != "DEAD" {
		t.Fatalf("unexpected names %q %q", Alive, Dead)
	}
}
