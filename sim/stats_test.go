package sim

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestStatsReportsEveryInterval(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	st := NewStats(3*time.Second, zap.New(core))

	start := time.Unix(100, 0)
	st.Record("characters", 2*time.Millisecond)
	st.Record("characters", 4*time.Millisecond)
	st.Record("windows", time.Millisecond)

	assert.False(t, st.Frame(start))
	assert.False(t, st.Frame(start.Add(time.Second)))

	report := st.Report()
	require.Len(t, report, 2)
	assert.Equal(t, PhaseReport{Name: "characters", Count: 2, Average: 3 * time.Millisecond, Worst: 4 * time.Millisecond}, report[0])
	assert.Equal(t, "windows", report[1].Name)

	assert.True(t, st.Frame(start.Add(3*time.Second)))
	entries := logs.FilterMessage("frame stats").All()
	require.Len(t, entries, 1)
	fields := entries[0].ContextMap()
	assert.Equal(t, int64(3), fields["frames"])
	assert.Equal(t, 3*time.Millisecond, fields["characters_avg"])

	for _, r := range st.Report() {
		assert.Zero(t, r.Count)
	}
}

func TestStatsDisabled(t *testing.T) {
	st := NewStats(0, nil)
	now := time.Unix(0, 0)
	for i := range 10 {
		assert.False(t, st.Frame(now.Add(time.Duration(i)*time.Hour)))
	}
}

func TestSchedulerRecordsEverySystem(t *testing.T) {
	s := New(nil, testConfig(), nil)
	assert.Equal(t, []string{"windows", "input", "follow", "characters"}, s.scheduler.Names())

	s.Step(1.0 / 60)
	names := make([]string, 0, 4)
	for _, r := range s.Stats().Report() {
		names = append(names, r.Name)
		assert.Equal(t, 1, r.Count)
	}
	assert.Equal(t, s.scheduler.Names(), names)
}

func TestQueue(t *testing.T) {
	q := NewQueue[int](3)
	assert.Nil(t, q.Drain())
	for i := range 5 {
		q.Push(i)
	}
	assert.Equal(t, 3, q.Len())
	assert.Equal(t, []int{2, 3, 4}, q.Drain())
	assert.Equal(t, 0, q.Len())

	var nilQueue *Queue[int]
	nilQueue.Push(1)
	assert.Nil(t, nilQueue.Drain())
}
