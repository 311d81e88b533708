package searcher

import (
	"connectline/experiments/metrics"
	"connectline/game"
	"connectline/tactics"
	"fmt"
	"math"
	"time"

	"github.com/rs/zerolog/log"
	"golang.org/x/exp/rand"
)

type Option func(mcts *MCTS)

// Progress reports a completed iteration.
type Progress struct {
	Iteration int
	Total     int
}

// Result is the outcome of a search.
type Result struct {
	Column     int
	Policy     []int // Root child visits by column
	RootVisits int
	Metric     metrics.SearchMetric
}

// Event is sent by Start: one per completed iteration, then a single event
// carrying the Result.
type Event struct {
	Progress Progress
	Result   *Result
}

type MCTS struct {
	iterations  int
	threshold   int
	seed        uint64
	seeded      bool
	withMetrics bool
}

func WithIterations(iterations int) Option {
	return func(m *MCTS) {
		if iterations > 0 {
			m.iterations = iterations
		}
	}
}

func WithThreshold(threshold int) Option {
	return func(m *MCTS) {
		if threshold >= 0 {
			m.threshold = threshold
		}
	}
}

// WithSeed makes searches reproducible.
func WithSeed(seed uint64) Option {
	return func(m *MCTS) {
		m.seed = seed
		m.seeded = true
	}
}

func WithMetrics() Option {
	return func(m *MCTS) {
		m.withMetrics = true
	}
}

// FromRules configures iterations and threshold from game rules.
func FromRules(rules game.Rules) Option {
	return func(m *MCTS) {
		WithIterations(rules.Playouts)(m)
		WithThreshold(rules.Threshold)(m)
	}
}

func NewMCTS(options ...Option) *MCTS {
	m := &MCTS{ // Default values
		iterations: 1000,
		threshold:  game.DefaultThreshold(1000),
	}
	for _, option := range options {
		option(m)
	}
	return m
}

// Search runs the configured number of iterations for side on a private copy
// of pos and returns the most visited column.
func (m *MCTS) Search(pos *game.Position, side game.Side) (Result, error) {
	s, err := m.prepare(pos, side)
	if err != nil {
		return Result{}, err
	}
	return s.run(m.iterations, nil), nil
}

// Start runs Search on a background goroutine. The returned channel receives
// a Progress event after every iteration, then the Result, and is closed.
// A started search cannot be cancelled.
func (m *MCTS) Start(pos *game.Position, side game.Side) (<-chan Event, error) {
	s, err := m.prepare(pos, side)
	if err != nil {
		return nil, err
	}
	events := make(chan Event, 64)
	go func() {
		defer close(events)
		result := s.run(m.iterations, events)
		events <- Event{Progress: Progress{Iteration: m.iterations, Total: m.iterations}, Result: &result}
	}()
	return events, nil
}

func (m *MCTS) prepare(pos *game.Position, side game.Side) (*search, error) {
	if err := side.Check(); err != nil {
		return nil, fmt.Errorf("cannot search: %w", err)
	}
	if pos.IsFull() {
		panic("cannot search a full board")
	}

	seed := m.seed
	if !m.seeded {
		seed = uint64(time.Now().UnixNano())
	}
	collector := metrics.NewDummyCollector()
	if m.withMetrics {
		collector = metrics.NewCollector()
	}
	return newSearch(pos.Copy(), side, m.threshold, rand.New(rand.NewSource(seed)), collector), nil
}

// search holds the state of one decision: the tree, the position it mutates
// and the side it searches for.
type search struct {
	pos       *game.Position
	tree      *tree
	side      game.Side
	threshold int
	rng       *rand.Rand
	metrics   metrics.Collector
}

func newSearch(pos *game.Position, side game.Side, threshold int, rng *rand.Rand, collector metrics.Collector) *search {
	s := &search{
		pos:       pos,
		tree:      newTree(pos.Columns()),
		side:      side,
		threshold: threshold,
		rng:       rng,
		metrics:   collector,
	}
	s.tree.expand(rootIndex, pos.Columns())
	s.tree.prune(rootIndex, pos, side)
	return s
}

func (s *search) run(iterations int, events chan<- Event) Result {
	log.Debug().Msgf("search started for side %s: %d iterations, threshold %d", s.side, iterations, s.threshold)
	s.metrics.Start(iterations, s.threshold)

	for i := 1; i <= iterations; i++ {
		s.iterate()
		s.metrics.AddIteration()
		if events != nil {
			events <- Event{Progress: Progress{Iteration: i, Total: iterations}}
		}
	}

	policy := s.tree.visits(rootIndex)
	result := Result{
		Column:     BestColumn(policy),
		Policy:     policy,
		RootVisits: s.tree.nodes[rootIndex].visits,
		Metric:     s.metrics.Complete(),
	}
	log.Debug().Msgf("search finished: column %d, policy %v", result.Column, result.Policy)
	return result
}

// iterate runs one selection, expansion, simulation and backup pass and rolls
// the position back to where it started.
func (s *search) iterate() {
	base := s.pos.NumMoves()
	defer s.rollback(base)

	leaf, turn := s.descend(rootIndex, s.side)
	s.settle(leaf, turn)

	if s.tree.nodes[leaf].visits > s.threshold && s.tree.nodes[leaf].expandable && !s.pos.IsFull() {
		s.tree.nodes[leaf].visits-- // descend counts the leaf again
		s.tree.expand(leaf, s.pos.Columns())
		s.tree.prune(leaf, s.pos, turn)
		s.metrics.AddExpansion()
		leaf, turn = s.descend(leaf, turn)
		s.settle(leaf, turn)
	}

	var outcome float64
	if n := s.tree.nodes[leaf]; n.terminal {
		outcome = s.reward(n.winner)
	} else {
		outcome = s.playout(turn)
		s.metrics.AddFullPlayout()
	}
	s.backup(leaf, turn, outcome)
}

func (s *search) rollback(base int) {
	for s.pos.NumMoves() > base {
		s.pos.Undo()
	}
}

// descend walks from n to a leaf, playing the selected moves. turn is the side
// to move at n; the side to move at the leaf is returned.
func (s *search) descend(n int, turn game.Side) (int, game.Side) {
	s.tree.nodes[n].visits++
	for {
		col := s.selectColumn(n, turn)
		child := s.tree.nodes[n].children[col]
		s.pos.Play(col, turn)
		s.tree.nodes[child].visits++
		turn = turn.Opponent()
		n = child
		if s.tree.isLeaf(n) {
			return n, turn
		}
	}
}

// selectColumn picks the child of n with the highest UCT score among the
// columns turn can safely drop into. When no child scores above zero, a random
// open column is played instead.
func (s *search) selectColumn(n int, turn game.Side) int {
	lnN := math.Log(float64(s.tree.nodes[n].visits))
	best := -1
	maxScore := 0.0
	for col, child := range s.tree.nodes[n].children {
		c := &s.tree.nodes[child]
		score := uct(c.q, c.visits, lnN)
		if score > maxScore && tactics.IsSafeDrop(s.pos, col, turn) {
			maxScore = score
			best = col
		}
	}
	if best == -1 {
		best = s.openColumn()
	}
	return best
}

// settle marks a leaf terminal when the move that reached it made a line.
func (s *search) settle(n int, turn game.Side) {
	leaf := &s.tree.nodes[n]
	if leaf.terminal || leaf.column < 0 {
		return
	}
	mover := turn.Opponent()
	if s.pos.HasLine(leaf.column, s.pos.TopRow(leaf.column), mover) {
		leaf.terminal = true
		leaf.winner = mover
		leaf.expandable = false
	}
}

// backup adds the outcome to every node from n to the root. Nodes store value
// from the perspective of the side that moved into them; draws count half for
// both sides.
func (s *search) backup(n int, turn game.Side, outcome float64) {
	for n != -1 {
		node := &s.tree.nodes[n]
		if turn != s.side {
			node.win += outcome
		} else if outcome == DRAW {
			node.win += DRAW
		} else {
			node.win += 1 - outcome
		}
		node.q = node.win / float64(node.visits)
		n = node.parent
		turn = turn.Opponent()
	}
}

func (s *search) reward(winner game.Side) float64 {
	if winner == s.side {
		return WIN
	}
	return LOSS
}

// openColumn returns a uniformly random column that is not full.
func (s *search) openColumn() int {
	legal := s.pos.Legal()
	if len(legal) == 0 {
		panic("no open column")
	}
	return legal[s.rng.Intn(len(legal))]
}
