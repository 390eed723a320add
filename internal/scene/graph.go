package scene

import (
	"fmt"
	"iter"
	"slices"

	"github.com/inkframe/inkframe/backend-go/internal/geom"
)

// NodeKind distinguishes containers from drawable leaves.
type NodeKind string

const (
	KindGroup NodeKind = "group"
	KindLeaf  NodeKind = "leaf"
)

// Style is the paint of a leaf. An empty Fill or Stroke means no paint.
type Style struct {
	Fill        string
	Stroke      string
	StrokeWidth float64
}

// DefaultStyle is applied to every newly added leaf.
func DefaultStyle() Style {
	return Style{
		Fill:        "#3b82f6",
		Stroke:      "#1e40af",
		StrokeWidth: 2,
	}
}

// Node is either a group (Children set) or a leaf (Shape and Style set).
// A node is owned by exactly one parent slice.
type Node struct {
	ID        string
	Kind      NodeKind
	Transform geom.Matrix2D

	// Group
	Children []*Node

	// Leaf
	Shape Shape
	Style Style
}

// NewLeaf builds a leaf node with the default style.
func NewLeaf(id string, shape Shape, transform geom.Matrix2D) *Node {
	return &Node{
		ID:        id,
		Kind:      KindLeaf,
		Transform: transform,
		Shape:     shape,
		Style:     DefaultStyle(),
	}
}

// NewGroup builds a group node that takes ownership of children.
func NewGroup(id string, children []*Node, transform geom.Matrix2D) *Node {
	return &Node{
		ID:        id,
		Kind:      KindGroup,
		Transform: transform,
		Children:  children,
	}
}

// IsGroup reports whether the node is a container.
func (n *Node) IsGroup() bool { return n.Kind == KindGroup }

// Clone deep-copies the node and its subtree.
func (n *Node) Clone() *Node {
	if n == nil {
		return nil
	}
	out := &Node{
		ID:        n.ID,
		Kind:      n.Kind,
		Transform: n.Transform,
		Shape:     CloneShape(n.Shape),
		Style:     n.Style,
	}
	if n.Children != nil {
		out.Children = make([]*Node, len(n.Children))
		for i, c := range n.Children {
			out.Children[i] = c.Clone()
		}
	}
	return out
}

// Leaf is a drawable node resolved to world space. Shape is shared with the
// graph and must not be modified.
type Leaf struct {
	ID    string
	Shape Shape
	World geom.Matrix2D
	Style Style
}

// Graph is the document tree. Roots are painted in order, so the last root
// is on top.
type Graph struct {
	roots     []*Node
	idCounter uint64

	// version is bumped by every mutation so derived state such as spatial
	// indexes can tell when they are stale.
	version uint64
}

// New creates an empty scene graph.
func New() *Graph {
	return &Graph{}
}

// GenerateID returns a fresh id of the form obj_<n>. Ids are never reused.
func (g *Graph) GenerateID() string {
	g.idCounter++
	return fmt.Sprintf("obj_%d", g.idCounter)
}

// IDCounter returns the last number handed out by GenerateID.
func (g *Graph) IDCounter() uint64 {
	return g.idCounter
}

// Version changes whenever the graph may have been modified.
func (g *Graph) Version() uint64 {
	return g.version
}

func (g *Graph) touch() {
	g.version++
}

// Restore replaces the whole tree and id counter.
func (g *Graph) Restore(roots []*Node, idCounter uint64) {
	g.roots = roots
	g.idCounter = idCounter
	g.touch()
}

// Add appends a leaf with the default style on top of the scene.
func (g *Graph) Add(id string, shape Shape, transform geom.Matrix2D) *Node {
	n := NewLeaf(id, shape, transform)
	g.AddNode(n)
	return n
}

// AddGroup appends a group owning children on top of the scene.
func (g *Graph) AddGroup(id string, children []*Node, transform geom.Matrix2D) *Node {
	n := NewGroup(id, children, transform)
	g.AddNode(n)
	return n
}

// AddNode appends an already built node at root level.
func (g *Graph) AddNode(n *Node) {
	g.roots = append(g.roots, n)
	g.touch()
}

// Roots returns the root-level nodes, bottom first.
func (g *Graph) Roots() []*Node {
	return g.roots
}

// ObjectCount counts every node; a group counts itself plus its subtree.
func (g *Graph) ObjectCount() int {
	return countNodes(g.roots)
}

func countNodes(nodes []*Node) int {
	n := 0
	for _, node := range nodes {
		n++
		if node.IsGroup() {
			n += countNodes(node.Children)
		}
	}
	return n
}

// Leaves yields every leaf in paint order with its accumulated world
// transform. The sequence may be ranged over any number of times.
func (g *Graph) Leaves() iter.Seq[Leaf] {
	return func(yield func(Leaf) bool) {
		walkLeaves(g.roots, geom.Identity(), yield)
	}
}

func walkLeaves(nodes []*Node, parent geom.Matrix2D, yield func(Leaf) bool) bool {
	for _, n := range nodes {
		world := parent.Compose(n.Transform)
		if n.IsGroup() {
			if !walkLeaves(n.Children, world, yield) {
				return false
			}
			continue
		}
		if !yield(Leaf{ID: n.ID, Shape: n.Shape, World: world, Style: n.Style}) {
			return false
		}
	}
	return true
}

// Find returns the node with id at any depth, or nil.
func (g *Graph) Find(id string) *Node {
	n, _ := findWithParent(g.roots, id, geom.Identity())
	return n
}

// FindMut is Find for callers that intend to modify the node. It marks the
// graph as changed.
func (g *Graph) FindMut(id string) *Node {
	n := g.Find(id)
	if n != nil {
		g.touch()
	}
	return n
}

// ParentWorld returns the world transform of the node's parent, which is
// the identity for root-level nodes.
func (g *Graph) ParentWorld(id string) (geom.Matrix2D, bool) {
	n, parent := findWithParent(g.roots, id, geom.Identity())
	return parent, n != nil
}

// WorldTransform returns the accumulated transform of the node.
func (g *Graph) WorldTransform(id string) (geom.Matrix2D, bool) {
	n, parent := findWithParent(g.roots, id, geom.Identity())
	if n == nil {
		return geom.Matrix2D{}, false
	}
	return parent.Compose(n.Transform), true
}

func findWithParent(nodes []*Node, id string, parent geom.Matrix2D) (*Node, geom.Matrix2D) {
	for _, n := range nodes {
		if n.ID == id {
			return n, parent
		}
		if n.IsGroup() {
			if found, p := findWithParent(n.Children, id, parent.Compose(n.Transform)); found != nil {
				return found, p
			}
		}
	}
	return nil, geom.Matrix2D{}
}

// Remove deletes the node with id and its subtree from any depth.
func (g *Graph) Remove(id string) bool {
	var ok bool
	g.roots, ok = removeNode(g.roots, id)
	if ok {
		g.touch()
	}
	return ok
}

func removeNode(nodes []*Node, id string) ([]*Node, bool) {
	for i, n := range nodes {
		if n.ID == id {
			return slices.Delete(nodes, i, i+1), true
		}
		if n.IsGroup() {
			var ok bool
			if n.Children, ok = removeNode(n.Children, id); ok {
				return nodes, true
			}
		}
	}
	return nodes, false
}

// BringToFront moves a root-level node to the top of the z-order. It returns
// false when the node is not at root or is already on top.
func (g *Graph) BringToFront(id string) bool {
	i := g.rootIndex(id)
	if i < 0 || i == len(g.roots)-1 {
		return false
	}
	n := g.roots[i]
	g.roots = append(slices.Delete(g.roots, i, i+1), n)
	g.touch()
	return true
}

// SendToBack moves a root-level node to the bottom of the z-order. It
// returns false when the node is not at root or is already at the bottom.
func (g *Graph) SendToBack(id string) bool {
	i := g.rootIndex(id)
	if i <= 0 {
		return false
	}
	n := g.roots[i]
	g.roots = slices.Insert(slices.Delete(g.roots, i, i+1), 0, n)
	g.touch()
	return true
}

func (g *Graph) rootIndex(id string) int {
	return slices.IndexFunc(g.roots, func(n *Node) bool { return n.ID == id })
}

// Clone returns a deep copy that shares no nodes with g.
func (g *Graph) Clone() *Graph {
	out := &Graph{
		idCounter: g.idCounter,
		version:   g.version,
	}
	if g.roots != nil {
		out.roots = make([]*Node, len(g.roots))
		for i, n := range g.roots {
			out.roots[i] = n.Clone()
		}
	}
	return out
}
