package grid

import "math/rand/v2"

//BitSource produces one boolean decision on demand
//it is consumed by Randomize, one draw per cell
type BitSource interface {
	Bool() bool
}

//RandSource is a deterministic BitSource backed by a PCG generator
type RandSource struct {
	r *rand.Rand
}

//NewRandSource creates a RandSource, the same seed yields the same sequence
func NewRandSource(seed uint64) *RandSource {
	return &RandSource{r: rand.New(rand.NewPCG(seed, 0))}
}

//Bool returns a random boolean value
func (s *RandSource) Bool() bool {
	return s.r.IntN(2) == 1
}
