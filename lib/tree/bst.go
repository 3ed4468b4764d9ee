package tree

import (
	"github.com/benz9527/ordtree/lib/infra"
)

var _ Tree[int] = (*normalBST[int])(nil)

// normalBST is the unbalanced baseline. Its height depends on the
// insertion order only.
type normalBST[T any] struct {
	baseTree[T, struct{}]
}

func (tree *normalBST[T]) Kind() TreeKind {
	return NormalBST
}

func (tree *normalBST[T]) Insert(elem T) bool {
	var ok bool
	if tree.root, ok = tree.insert(tree.root, elem); ok {
		tree.inserted()
	}
	return ok
}

func (tree *normalBST[T]) insert(n *node[T, struct{}], elem T) (*node[T, struct{}], bool) {
	if n == nil {
		return &node[T, struct{}]{elem: elem}, true
	}
	res := tree.cmp(elem, n.elem)
	if res == 0 {
		return n, false
	}
	dir := directionOf(res)
	c, ok := tree.insert(n.get(dir), elem)
	n.set(dir, c)
	return n, ok
}

func (tree *normalBST[T]) Remove(elem T) bool {
	var ok bool
	if tree.root, ok = tree.remove(tree.root, elem); ok {
		tree.removed()
	}
	return ok
}

// The in-order predecessor replaces a node with a left subtree,
// otherwise the right child is promoted.
func (tree *normalBST[T]) remove(n *node[T, struct{}], elem T) (*node[T, struct{}], bool) {
	if n == nil {
		return nil, false
	}
	res := tree.cmp(elem, n.elem)
	if res == 0 {
		var replace *node[T, struct{}]
		if l := n.left(); l != nil {
			l, replace = tree.removeMax(l)
			replace.child = [2]*node[T, struct{}]{l, n.right()}
		} else {
			replace = n.right()
		}
		n.unlink()
		return replace, true
	}
	dir := directionOf(res)
	c, ok := tree.remove(n.get(dir), elem)
	n.set(dir, c)
	return n, ok
}

// removeMax detaches the maximum node of the subtree n.
// It returns the remaining subtree and the detached node.
func (tree *normalBST[T]) removeMax(n *node[T, struct{}]) (*node[T, struct{}], *node[T, struct{}]) {
	if n.right() == nil {
		return n.left(), n
	}
	r, _max := tree.removeMax(n.right())
	n.set(Right, r)
	return n, _max
}

func (tree *normalBST[T]) Clone() Tree[T] {
	return &normalBST[T]{baseTree: tree.clone()}
}

func NewNormalBST[T any](cmp infra.Comparator[T], opts ...TreeOption) Tree[T] {
	return &normalBST[T]{
		baseTree: newBaseTree[T, struct{}](NormalBST, cmp, opts...),
	}
}
