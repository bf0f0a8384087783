package domain

// Represents a single point of a way.
// A Node has a stable identifier and a fixed location; several ways
// may reference the same node.
type Node struct {
	NodeID int64
	Coords Coordinates
}

func (n Node) Location() Coordinates { return n.Coords }
