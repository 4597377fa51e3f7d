package universe

import (
	"fmt"
	"testing"
)

var (
	testTemplate = Template{"ts1", "", [][]int{{1, 1}, {1, 2}, {2, 1}, {2, 2}, {3, 3}, {4, 2}, {4, 3}, {5, 3}}}

	sizes = []int{40, 200, 500}
)

func universeStep(u Universe, b *testing.B) {
	u.AddTemplate(testTemplate)
	stateCh := u.StateCh()
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		b.StopTimer()
		u.Clear()
		<-stateCh //wait for finish
		if err := u.SettleTemplate("ts1"); err != nil {
			b.Fatal(err)
		}
		b.StartTimer()
		u.Step()
		for {
			st := <-stateCh
			if st.RunningMode == RunningStateManual || st.RunningMode == RunningStateFinished {
				break
			}
		}
	}
	u.Close()
}

func universeRun(u Universe, b *testing.B) {
	u.AddTemplate(testTemplate)
	stateCh := u.StateCh()
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		b.StopTimer()
		u.Clear()
		<-stateCh //wait for finish
		if err := u.SettleTemplate("ts1"); err != nil {
			b.Fatal(err)
		}
		b.StartTimer()
		u.Run()
		for {
			st := <-stateCh
			if st.RunningMode == RunningStateFinished {
				break
			}
		}
	}
	u.Close()
}

func newStateCh() chan Status {
	return make(chan Status, 10)
}

func newUniverseOptions(size int) *Options {
	o := DefaultUniverseOptions
	o.Interval = 0
	o.Width = size
	o.Height = size
	return &o
}

func newBenchUniverse(b *testing.B, size int) Universe {
	u, err := NewBaseUniverse(newUniverseOptions(size), newStateCh())
	if err != nil {
		b.Fatal(err)
	}
	return u
}

func Benchmark_Step(b *testing.B) {
	for _, size := range sizes {
		b.Run(fmt.Sprintf("%dx%d", size, size), func(b *testing.B) {
			universeStep(newBenchUniverse(b, size), b)
		})
	}
}

func Benchmark_Universe(b *testing.B) {
	for _, size := range sizes {
		b.Run(fmt.Sprintf("%dx%d", size, size), func(b *testing.B) {
			universeRun(newBenchUniverse(b, size), b)
		})
	}
}
