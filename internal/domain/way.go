package domain

import (
	"errors"
	"iter"
	"slices"
)

// Way is an ordered list of nodes. The order defines the traversal
// whose length is measured; nodes need not be distinct.
type Way struct {
	WayID int64
	Name  string
	Nodes []Node
}

func NewWay(id int64, name string) *Way {
	return &Way{
		WayID: id,
		Name:  name,
	}
}

// Append a single node to the end of the way.
func (w *Way) AddNode(n Node) error {
	if w == nil {
		return errors.New("add node: way is nil")
	}
	w.Nodes = append(w.Nodes, n)
	return nil
}

// Append multiple nodes, preserving their order.
func (w *Way) AddNodes(nodes []Node) error {
	for _, n := range nodes {
		if err := w.AddNode(n); err != nil {
			return err
		}
	}

	return nil
}

// Remove all nodes from the way.
func (w *Way) Clear() {
	w.Nodes = nil
}

// Closed reports whether the way ends where it starts.
// Ways with fewer than two nodes are never closed.
func (w *Way) Closed() bool {
	if len(w.Nodes) < 2 {
		return false
	}
	return w.Nodes[0].Coords == w.Nodes[len(w.Nodes)-1].Coords
}

// Points yields the nodes in traversal order.
func (w *Way) Points() iter.Seq[Node] {
	return slices.Values(w.Nodes)
}
