package depot

import (
	"github.com/TheBitDrifter/mask"
)

type Operation int

const (
	OpAnd Operation = iota
	OpOr
	OpNot
)

type compositeNode struct {
	op         Operation
	children   []QueryNode
	components []ComponentType
}

type query struct {
	root QueryNode
}

func newQuery() Query {
	return &query{}
}

func newCompositeNode(op Operation, components []ComponentType) *compositeNode {
	return &compositeNode{
		op:         op,
		children:   make([]QueryNode, 0),
		components: components,
	}
}

// nodeMask builds the node's mask at evaluation time. known is false when any component
// type is not registered with the world.
func (n *compositeNode) nodeMask(world World) (nodeMask mask.Mask, known bool) {
	known = true
	for _, comp := range n.components {
		bit, err := world.ComponentBits(comp)
		if err != nil {
			known = false
			continue
		}
		nodeMask.Mark(uint32(bit.Index()))
	}
	return nodeMask, known
}

func (n *compositeNode) Evaluate(record mask.Maskable, world World) bool {
	nodeMask, known := n.nodeMask(world)
	recordMask := record.Mask()

	switch n.op {
	case OpAnd:
		// No entity can hold a type the world never registered
		if !known || !recordMask.ContainsAll(nodeMask) {
			return false
		}
		for _, child := range n.children {
			if !child.Evaluate(record, world) {
				return false
			}
		}
		return true

	case OpOr:
		if recordMask.ContainsAny(nodeMask) {
			return true
		}
		for _, child := range n.children {
			if child.Evaluate(record, world) {
				return true
			}
		}
		return false

	case OpNot:
		if len(n.children) == 0 {
			return recordMask.ContainsNone(nodeMask)
		}
		for _, child := range n.children {
			if child.Evaluate(record, world) {
				return false
			}
		}
		return !recordMask.ContainsAny(nodeMask)
	}
	return false
}

func (q *query) And(items ...interface{}) QueryNode {
	return q.node(OpAnd, items)
}

func (q *query) Or(items ...interface{}) QueryNode {
	return q.node(OpOr, items)
}

func (q *query) Not(items ...interface{}) QueryNode {
	return q.node(OpNot, items)
}

func (q *query) node(op Operation, items []interface{}) QueryNode {
	components, children := q.processItems(items...)
	node := newCompositeNode(op, components)
	node.children = children
	if q.root == nil {
		q.root = node
	}
	return node
}

func (q *query) processItems(items ...interface{}) ([]ComponentType, []QueryNode) {
	components := make([]ComponentType, 0)
	children := make([]QueryNode, 0)

	for _, item := range items {
		switch v := item.(type) {
		case ComponentType:
			components = append(components, v)
		case []ComponentType:
			components = append(components, v...)
		case QueryNode:
			children = append(children, v)
		}
	}

	return components, children
}

func (q *query) Evaluate(record mask.Maskable, world World) bool {
	if q.root == nil {
		return false
	}
	return q.root.Evaluate(record, world)
}
