package sim

import (
	"time"

	"go.uber.org/zap"
)

const DefaultStatsInterval = 3 * time.Second

type phaseStat struct {
	total time.Duration
	count int
	worst time.Duration
}

// PhaseReport summarises one phase over a reporting interval.
type PhaseReport struct {
	Name    string
	Count   int
	Average time.Duration
	Worst   time.Duration
}

// Stats accumulates per-phase durations and logs a summary every interval.
type Stats struct {
	interval time.Duration
	started  time.Time
	frames   int
	phases   map[string]*phaseStat
	order    []string

	logger *zap.Logger
}

func NewStats(interval time.Duration, logger *zap.Logger) *Stats {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Stats{
		interval: interval,
		phases:   make(map[string]*phaseStat),
		logger:   logger,
	}
}

func (st *Stats) Record(phase string, d time.Duration) {
	p, ok := st.phases[phase]
	if !ok {
		p = &phaseStat{}
		st.phases[phase] = p
		st.order = append(st.order, phase)
	}
	p.total += d
	p.count++
	p.worst = max(p.worst, d)
}

// Frame marks the end of a frame. Once the interval has elapsed the summary is
// logged and the counters restart. A non-positive interval disables reports.
func (st *Stats) Frame(now time.Time) bool {
	if st.started.IsZero() {
		st.started = now
	}
	st.frames++
	if st.interval <= 0 || now.Sub(st.started) < st.interval {
		return false
	}

	elapsed := now.Sub(st.started)
	fields := []zap.Field{
		zap.Int("frames", st.frames),
		zap.Float64("fps", float64(st.frames)/elapsed.Seconds()),
	}
	for _, r := range st.Report() {
		fields = append(fields, zap.Duration(r.Name+"_avg", r.Average), zap.Duration(r.Name+"_worst", r.Worst))
	}
	st.logger.Info("frame stats", fields...)

	st.reset(now)
	return true
}

// Report returns the phases in the order they were first recorded.
func (st *Stats) Report() []PhaseReport {
	out := make([]PhaseReport, 0, len(st.order))
	for _, name := range st.order {
		p := st.phases[name]
		r := PhaseReport{Name: name, Count: p.count, Worst: p.worst}
		if p.count > 0 {
			r.Average = p.total / time.Duration(p.count)
		}
		out = append(out, r)
	}
	return out
}

func (st *Stats) SetInterval(interval time.Duration) {
	st.interval = interval
}

func (st *Stats) reset(now time.Time) {
	st.started = now
	st.frames = 0
	for _, p := range st.phases {
		*p = phaseStat{}
	}
}
