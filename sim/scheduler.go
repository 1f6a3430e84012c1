package sim

import "time"

type System interface {
	Update(s *Simulation, dt float64)
}

// SystemFunc adapts a function to System.
type SystemFunc func(s *Simulation, dt float64)

func (f SystemFunc) Update(s *Simulation, dt float64) { f(s, dt) }

type namedSystem struct {
	name   string
	system System
}

// Scheduler runs systems in insertion order and times each of them.
type Scheduler struct {
	systems []namedSystem
}

func NewScheduler() *Scheduler {
	return &Scheduler{}
}

func (sc *Scheduler) Add(name string, system System) {
	if system == nil {
		return
	}
	sc.systems = append(sc.systems, namedSystem{name: name, system: system})
}

func (sc *Scheduler) Update(s *Simulation, dt float64) {
	for _, ns := range sc.systems {
		start := time.Now()
		ns.system.Update(s, dt)
		s.stats.Record(ns.name, time.Since(start))
	}
}

func (sc *Scheduler) Names() []string {
	names := make([]string, 0, len(sc.systems))
	for _, ns := range sc.systems {
		names = append(names, ns.name)
	}
	return names
}
