package puzzle

import (
	"fmt"

	"github.com/danielpatrickdp/cipher-nback/internal/random"
)

// #region hierarchy

type treeNode struct {
	name   string
	level  int
	parent int // index into nodes, -1 for the root
}

// generateHierarchy builds a containment tree and asks how the levels of two
// nodes compare. HIGHER means the first node sits closer to the root.
func generateHierarchy(src random.Source, prev string, force bool, tier int) Output {
	vocab := Vocabulary(Hierarchy, tier)
	result := pickResult(src, vocab, prev, force)

	alloc := random.NewAllocator(src)
	cb := newCipher(src, alloc, tier)
	cb.define(labelContains, labelBelongs)

	nodes := buildTree(alloc, tier)

	premises := make([]Premise, 0, len(nodes)-1)
	for _, n := range nodes[1:] {
		p := nodes[n.parent]
		if random.Bool(src, 0.5) {
			premises = append(premises, Premise{Left: n.name, Symbol: cb.use(labelBelongs), Right: p.name})
			continue
		}
		premises = append(premises, Premise{Left: p.name, Symbol: cb.use(labelContains), Right: n.name})
	}

	u, v := hierarchyPair(src, nodes, result)

	slots := make([]string, len(nodes))
	for i, n := range nodes {
		slots[i] = n.name
	}
	if tier >= 2 {
		random.Shuffle(src, slots)
		random.Shuffle(src, premises)
	}

	return Output{
		Stimulus: Stimulus{
			Family:    Hierarchy,
			Tier:      tier,
			Cipher:    cb.entries(),
			Placement: placement(src),
			Visual: HierarchyVisual{
				Slots: slots,
				ChainView: ChainView{
					Premises:   premises,
					QueryLeft:  u.name,
					QueryRight: v.name,
				},
			},
			Query: fmt.Sprintf("Is %s higher, lower or level with %s?", u.name, v.name),
			Proof: fmt.Sprintf("level(%s)=%d, level(%s)=%d => %s", u.name, u.level, v.name, v.level, result),
		},
		Result: result,
	}
}

// buildTree returns root, two children and, from tier 2, one grandchild per
// child (tier 3 adds a second grandchild under the first child).
func buildTree(alloc *random.Allocator, tier int) []treeNode {
	nodes := []treeNode{
		{name: alloc.Code(), level: 0, parent: -1},
		{name: alloc.Code(), level: 1, parent: 0},
		{name: alloc.Code(), level: 1, parent: 0},
	}
	if tier >= 2 {
		nodes = append(nodes,
			treeNode{name: alloc.Code(), level: 2, parent: 1},
			treeNode{name: alloc.Code(), level: 2, parent: 2},
		)
	}
	if tier >= 3 {
		nodes = append(nodes, treeNode{name: alloc.Code(), level: 2, parent: 1})
	}
	return nodes
}

// hierarchyPair picks two distinct nodes whose level comparison equals result.
func hierarchyPair(src random.Source, nodes []treeNode, result string) (treeNode, treeNode) {
	type pair struct{ u, v treeNode }
	var candidates []pair
	for i, a := range nodes {
		for j, b := range nodes {
			if i == j {
				continue
			}
			if compareLevels(a, b) == result {
				candidates = append(candidates, pair{a, b})
			}
		}
	}
	p := random.Choice(src, candidates)
	return p.u, p.v
}

func compareLevels(a, b treeNode) string {
	switch {
	case a.level < b.level:
		return Higher
	case a.level > b.level:
		return Lower
	default:
		return Same
	}
}

// #endregion hierarchy
