package manifest

import (
	"fmt"
	"slices"

	"fortio.org/safecast"
)

// declID indexes a [[class]] entry by file position.
type declID uint32

// classGraph is the parent→children edge set over declaration entries.
// Present marks entries that survived name validation; absent entries
// never enter a batch and never decrement a child's indegree, so their
// whole subtree stays out of the order.
type classGraph struct {
	Edges   [][]declID // Edges[parent] = children
	Indeg   []int
	Present []bool
}

type topo struct {
	Order   []declID   // parent-first linear order
	Batches [][]declID // waves of classes whose parents are all ordered
	Cyclic  bool
	Cycles  []declID // entries left with an unsatisfied parent
}

// toposortKahn orders the class declarations parent-first. Each wave
// holds entries whose parents were all placed in earlier waves; waves
// are sorted by declaration position so the order is deterministic.
// Entries left over after the walk either sit on a base cycle or hang
// below an absent parent; the caller tells the two apart.
func toposortKahn(g classGraph) *topo {
	nodeCount := len(g.Edges)
	indeg := make([]int, len(g.Indeg))
	copy(indeg, g.Indeg)

	t := &topo{
		Order:   make([]declID, 0, nodeCount),
		Batches: make([][]declID, 0),
	}

	active := 0
	for i := range nodeCount {
		if g.Present[i] {
			active++
		}
	}

	current := make([]declID, 0, nodeCount)
	for i := range nodeCount {
		if !g.Present[i] {
			continue
		}
		if indeg[i] == 0 {
			id, err := safecast.Conv[declID](i)
			if err != nil {
				panic(fmt.Errorf("class entry overflow: %w", err))
			}
			current = append(current, id)
		}
	}
	slices.Sort(current)

	visited := 0
	for len(current) > 0 {
		batch := make([]declID, len(current))
		copy(batch, current)
		t.Batches = append(t.Batches, batch)

		next := make([]declID, 0)
		for _, id := range batch {
			t.Order = append(t.Order, id)
			visited++
			for _, to := range g.Edges[int(id)] {
				if !g.Present[int(to)] {
					continue
				}
				indeg[int(to)]--
				if indeg[int(to)] == 0 {
					next = append(next, to)
				}
			}
		}
		slices.Sort(next)
		current = next
	}

	if visited != active {
		t.Cyclic = true
		for i := range nodeCount {
			if !g.Present[i] {
				continue
			}
			if indeg[i] > 0 {
				id, err := safecast.Conv[declID](i)
				if err != nil {
					panic(fmt.Errorf("class entry overflow: %w", err))
				}
				t.Cycles = append(t.Cycles, id)
			}
		}
		slices.Sort(t.Cycles)
	}

	return t
}
