package domain

import (
	"slices"
	"sync"
)

// NodeID indexes a node inside an EvolutionChain.
type NodeID int

// RootNode is the id of the first stage of every chain.
const RootNode NodeID = 0

// NoParent is the parent id of the root node.
const NoParent NodeID = -1

// EvolutionNode is one stage of an evolution chain. Children are its direct
// evolutions in encounter order.
type EvolutionNode struct {
	ID       NodeID
	Parent   NodeID
	Pokemon  *Pokemon
	Children []NodeID
}

// EvolutionChain is a rooted tree of evolution stages stored as an arena of
// nodes. Node pokemon may be replaced after construction when a richer copy
// of the same pokemon is resolved; the shape of the tree never changes once
// built.
type EvolutionChain struct {
	id int

	mu    sync.RWMutex
	nodes []EvolutionNode
}

// NewEvolutionChain creates a chain whose root stage holds root.
func NewEvolutionChain(id int, root *Pokemon) *EvolutionChain {
	return &EvolutionChain{
		id: id,
		nodes: []EvolutionNode{{
			ID:      RootNode,
			Parent:  NoParent,
			Pokemon: root,
		}},
	}
}

// AddEvolution links a new stage holding p as the last child of parent and
// returns its id.
func (c *EvolutionChain) AddEvolution(parent NodeID, p *Pokemon) (NodeID, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.valid(parent) {
		return 0, NewValidationError("parent", "unknown evolution node")
	}
	id := NodeID(len(c.nodes))
	c.nodes = append(c.nodes, EvolutionNode{ID: id, Parent: parent, Pokemon: p})
	c.nodes[parent].Children = append(c.nodes[parent].Children, id)
	return id, nil
}

// ID is the upstream evolution chain id.
func (c *EvolutionChain) ID() int { return c.id }

// IsSingle reports whether the species family has no evolutions at all.
func (c *EvolutionChain) IsSingle() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.nodes[RootNode].Children) == 0
}

// Len returns the number of stages in the chain.
func (c *EvolutionChain) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.nodes)
}

// Node returns a copy of the node with the given id.
func (c *EvolutionChain) Node(id NodeID) (EvolutionNode, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if !c.valid(id) {
		return EvolutionNode{}, false
	}
	n := c.nodes[id]
	n.Children = slices.Clone(n.Children)
	return n, true
}

// Pokemon returns the pokemon held by the node, nil for an unknown id.
func (c *EvolutionChain) Pokemon(id NodeID) *Pokemon {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if !c.valid(id) {
		return nil
	}
	return c.nodes[id].Pokemon
}

// SetPokemon replaces the pokemon held by the node.
func (c *EvolutionChain) SetPokemon(id NodeID, p *Pokemon) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.valid(id) {
		return NewValidationError("node", "unknown evolution node")
	}
	c.nodes[id].Pokemon = p
	return nil
}

// Link describes where a node sits when the chain is walked by LinkMap.
type Link struct {
	Node NodeID
	// Phase is the depth from the root (root = 0).
	Phase int
	// PhaseIndex is the position among the siblings sharing the parent.
	PhaseIndex int
	// SiblingCount is the number of children of the parent (1 for the root).
	SiblingCount int
}

// Links returns every node in pre-order with its position.
func (c *EvolutionChain) Links() []Link {
	c.mu.RLock()
	defer c.mu.RUnlock()

	links := make([]Link, 0, len(c.nodes))
	var walk func(id NodeID, phase, index, count int)
	walk = func(id NodeID, phase, index, count int) {
		links = append(links, Link{Node: id, Phase: phase, PhaseIndex: index, SiblingCount: count})
		children := c.nodes[id].Children
		for i, child := range children {
			walk(child, phase+1, i, len(children))
		}
	}
	walk(RootNode, 0, 0, 1)
	return links
}

// LinkMap calls fn for every node in pre-order. The traversal order is
// computed before fn runs, so fn may call SetPokemon.
func (c *EvolutionChain) LinkMap(fn func(link Link, p *Pokemon)) {
	for _, l := range c.Links() {
		fn(l, c.Pokemon(l.Node))
	}
}

func (c *EvolutionChain) valid(id NodeID) bool {
	return id >= 0 && int(id) < len(c.nodes)
}
