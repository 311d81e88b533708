package searcher

import (
	"connectline/game"
	"connectline/tactics"
)

const rootIndex = 0

// node is one move of the search tree. Parent and children are indices into
// the tree's arena; children holds one slot per column once expanded.
type node struct {
	parent     int
	column     int
	children   []int
	visits     int
	win        float64
	q          float64
	expandable bool
	terminal   bool
	winner     game.Side
}

type tree struct {
	nodes []node
}

func newTree(columns int) *tree {
	t := &tree{nodes: make([]node, 0, 1+columns*columns)}
	t.nodes = append(t.nodes, node{parent: -1, column: -1, expandable: true})
	return t
}

func (t *tree) isLeaf(n int) bool {
	return len(t.nodes[n].children) == 0
}

// expand adds one child per column under n.
func (t *tree) expand(n int, columns int) {
	children := make([]int, columns)
	for col := range children {
		children[col] = len(t.nodes)
		t.nodes = append(t.nodes, node{parent: n, column: col, expandable: true})
	}
	t.nodes[n].children = children
}

// prune marks the children of n that side should never grow further: drops
// into nearly full columns and drops the opponent can answer with a line.
func (t *tree) prune(n int, p *game.Position, side game.Side) {
	for col, child := range t.nodes[n].children {
		if !tactics.IsPlayoutSafeDrop(p, col, side) {
			t.nodes[child].expandable = false
		}
	}
}

// visits returns the visit counts of the children of n by column.
func (t *tree) visits(n int) []int {
	children := t.nodes[n].children
	visits := make([]int, len(children))
	for col, child := range children {
		visits[col] = t.nodes[child].visits
	}
	return visits
}

// BestColumn applies the robust-child rule: the most visited column wins,
// ties going to the lowest column.
func BestColumn(visits []int) int {
	best := 0
	maxVisits := 0
	for col, v := range visits {
		if v > maxVisits {
			maxVisits = v
			best = col
		}
	}
	return best
}
