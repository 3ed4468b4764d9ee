package tree

import (
	"github.com/benz9527/ordtree/lib/infra"
)

var _ SelfBalancedTree[int] = (*avlTree[int])(nil)

// avlTree keeps the balance factor, height(left) - height(right),
// in the node metadata. A valid tree holds -1 <= bf <= 1 for every node.
type avlTree[T any] struct {
	baseTree[T, int8]
}

func (tree *avlTree[T]) Kind() TreeKind {
	return AVL
}

// balanceDelta is the balance factor change when the dir subtree grows.
func balanceDelta(dir Direction) int8 {
	if dir == Left {
		return 1
	}
	return -1
}

/*
The balance factors are updated in closed form, rb and cb are the
factors of R and C before the rotation.

	rotate(R, Right):  R' = rb - 1 - max(cb, 0)
	                   C' = cb - 1 + min(R', 0)

	rotate(R, Left):   R' = rb + 1 - min(cb, 0)
	                   C' = cb + 1 + max(R', 0)
*/
func (tree *avlTree[T]) rotate(r *node[T, int8], dir Direction) *node[T, int8] {
	c := tree.baseTree.rotate(r, dir)
	rb, cb := r.meta, c.meta
	if dir == Right {
		r.meta = rb - 1 - max(cb, 0)
		c.meta = cb - 1 + min(r.meta, 0)
	} else {
		r.meta = rb + 1 - min(cb, 0)
		c.meta = cb + 1 + max(r.meta, 0)
	}
	return c
}

/*
rebalance fixes a node whose balance factor reached +2 or -2.

am1: The heavy child leans to the same side (or is even). Single rotation.

	      N                  C
	     /                  / \
	    C     rotate(N)    X   N
	   /     ==========>
	  X

am2: The heavy child leans to the opposite side (zig-zag).
Rotate the child first, then enter am1.

	    N                    N                  X
	   /    rotate(C)       /    rotate(N)     / \
	  C     ========>      X     ========>    C   N
	   \                  /
	    X                C
*/
func (tree *avlTree[T]) rebalance(n *node[T, int8]) *node[T, int8] {
	if n.meta > 1 {
		if /* am2 */ n.left().meta < 0 {
			n.set(Left, tree.rotate(n.left(), Left))
		}
		return tree.rotate(n, Right)
	}
	if /* am2 */ n.right().meta > 0 {
		n.set(Right, tree.rotate(n.right(), Right))
	}
	return tree.rotate(n, Left)
}

func (tree *avlTree[T]) Insert(elem T) bool {
	var ok bool
	if tree.root, ok, _ = tree.insert(tree.root, elem); ok {
		tree.inserted()
	}
	return ok
}

// insert returns the new subtree root, whether elem was inserted and
// whether the subtree height grew.
// The growth stops at the first node whose factor becomes 0, or at a
// rotation, which restores the height before the insertion.
func (tree *avlTree[T]) insert(n *node[T, int8], elem T) (*node[T, int8], bool, signal) {
	if n == nil {
		return &node[T, int8]{elem: elem}, true, propagate
	}
	res := tree.cmp(elem, n.elem)
	if res == 0 {
		return n, false, absorbed
	}

	dir := directionOf(res)
	c, ok, sig := tree.insert(n.get(dir), elem)
	n.set(dir, c)
	if !ok || sig == absorbed {
		return n, ok, absorbed
	}

	n.meta += balanceDelta(dir)
	switch n.meta {
	case 0:
		return n, true, absorbed
	case 1, -1:
		return n, true, propagate
	default:
	}
	return tree.rebalance(n), true, absorbed
}

func (tree *avlTree[T]) Remove(elem T) bool {
	var ok bool
	if tree.root, ok, _ = tree.remove(tree.root, elem); ok {
		tree.removed()
	}
	return ok
}

/*
ar1: The target has a left subtree. Its in-order predecessor is detached
and takes over the target position and balance factor.

ar2: The target has no left subtree. The right child (a leaf, or nil)
is promoted and the height shrinks.
*/
func (tree *avlTree[T]) remove(n *node[T, int8], elem T) (*node[T, int8], bool, signal) {
	if n == nil {
		return nil, false, absorbed
	}
	res := tree.cmp(elem, n.elem)
	if res == 0 {
		if /* ar1 */ l := n.left(); l != nil {
			l, pred, sig := tree.removeMax(l)
			pred.child = [2]*node[T, int8]{l, n.right()}
			pred.meta = n.meta
			n.unlink()
			pred, sig = tree.shrink(pred, Left, sig)
			return pred, true, sig
		}
		/* ar2 */
		r := n.right()
		n.unlink()
		return r, true, propagate
	}

	dir := directionOf(res)
	c, ok, sig := tree.remove(n.get(dir), elem)
	if !ok {
		return n, false, absorbed
	}
	n.set(dir, c)
	n, sig = tree.shrink(n, dir, sig)
	return n, true, sig
}

func (tree *avlTree[T]) removeMax(n *node[T, int8]) (*node[T, int8], *node[T, int8], signal) {
	if n.right() == nil {
		return n.left(), n, propagate
	}
	r, _max, sig := tree.removeMax(n.right())
	n.set(Right, r)
	n, sig = tree.shrink(n, Right, sig)
	return n, _max, sig
}

// shrink handles the dir subtree height decrease of n.
// The decrease goes on only if the factor of the (rotated) subtree root
// becomes 0, a factor of +1 or -1 means the height is kept.
func (tree *avlTree[T]) shrink(n *node[T, int8], dir Direction, sig signal) (*node[T, int8], signal) {
	if sig == absorbed {
		return n, absorbed
	}
	n.meta -= balanceDelta(dir)
	switch n.meta {
	case 0:
		return n, propagate
	case 1, -1:
		return n, absorbed
	default:
	}
	if n = tree.rebalance(n); n.meta == 0 {
		return n, propagate
	}
	return n, absorbed
}

func (tree *avlTree[T]) CheckBalance() bool {
	return avlHeight(tree.root) >= 0
}

// avlHeight recomputes the height bottom-up, -1 is returned if a
// stored factor disagrees with the actual heights or is out of range.
func avlHeight[T any](n *node[T, int8]) int {
	if n == nil {
		return 0
	}
	lh := avlHeight(n.left())
	if lh < 0 {
		return -1
	}
	rh := avlHeight(n.right())
	if rh < 0 {
		return -1
	}
	if n.meta < -1 || n.meta > 1 || int(n.meta) != lh-rh {
		return -1
	}
	return max(lh, rh) + 1
}

func (tree *avlTree[T]) Clone() Tree[T] {
	return &avlTree[T]{baseTree: tree.clone()}
}

func NewAVLTree[T any](cmp infra.Comparator[T], opts ...TreeOption) SelfBalancedTree[T] {
	return &avlTree[T]{
		baseTree: newBaseTree[T, int8](AVL, cmp, opts...),
	}
}
