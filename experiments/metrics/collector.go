package metrics

import (
	"sync/atomic"
	"time"
)

type SearchMetric struct {
	Iterations   int
	Threshold    int
	Duration     time.Duration
	Completed    int // Iterations run to the end
	FullPlayouts int // Playouts that reached a win, loss or draw by simulation
	Expansions   int
}

type MoveMetric struct {
	Step   int
	Player int // Side that moved
	Column int
	Tactic string
	SearchMetric
}

type GameMetric struct {
	StartingPlayer int // Side that moved first
	Winner         int // 0 for a draw
	StartTime      time.Time
	EndTime        time.Time
	Duration       time.Duration
	TotalMoves     int
}

type Collector interface {
	Start(iterations, threshold int)
	AddIteration()
	AddFullPlayout()
	AddExpansion()
	Complete() SearchMetric
}

type collector struct {
	iterations   int
	threshold    int
	startTime    time.Time
	completed    atomic.Int32
	fullPlayouts atomic.Int32
	expansions   atomic.Int32
}

func NewCollector() Collector {
	return &collector{}
}

func (m *collector) Start(iterations, threshold int) {
	m.startTime = time.Now()
	m.iterations = iterations
	m.threshold = threshold
	m.completed.Store(0)
	m.fullPlayouts.Store(0)
	m.expansions.Store(0)
}

func (m *collector) AddIteration() {
	m.completed.Add(1)
}

func (m *collector) AddFullPlayout() {
	m.fullPlayouts.Add(1)
}

func (m *collector) AddExpansion() {
	m.expansions.Add(1)
}

func (m *collector) Complete() SearchMetric {
	return SearchMetric{
		Iterations:   m.iterations,
		Threshold:    m.threshold,
		Duration:     time.Since(m.startTime),
		Completed:    int(m.completed.Load()),
		FullPlayouts: int(m.fullPlayouts.Load()),
		Expansions:   int(m.expansions.Load()),
	}
}

type dummyCollector struct{}

func NewDummyCollector() Collector {
	return &dummyCollector{}
}

func (m *dummyCollector) Start(iterations, threshold int) {}
func (m *dummyCollector) AddIteration()                   {}
func (m *dummyCollector) AddFullPlayout()                 {}
func (m *dummyCollector) AddExpansion()                   {}
func (m *dummyCollector) Complete() SearchMetric          { return SearchMetric{} }
