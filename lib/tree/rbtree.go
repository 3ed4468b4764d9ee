package tree

import (
	"github.com/benz9527/ordtree/lib/infra"
)

var _ SelfBalancedTree[int] = (*rbTree[int])(nil)

// rbTree is the red-black variant, the color is kept in the node metadata.
//
// Properties:
//  1. Every node is either red or black.
//  2. The root is black.
//  3. The nil leaves are black.
//  4. A red node has no red child.
//  5. Every path from a node to its nil leaves passes the same number of
//     black nodes (the black height).
type rbTree[T any] struct {
	baseTree[T, RBColor]
}

func isRed[T any](n *node[T, RBColor]) bool {
	return n != nil && n.meta == Red
}

func (tree *rbTree[T]) Kind() TreeKind {
	return RedBlack
}

// rbSignal is returned by the insert steps.
type rbSignal uint8

const (
	rbAbsorbed rbSignal = iota
	// rbRedRoot reports the subtree root became (or stayed newly) red.
	rbRedRoot
	// rbConflictLeft and rbConflictRight report a red subtree root
	// with a red child at that side.
	rbConflictLeft
	rbConflictRight
)

func conflictOf(dir Direction) rbSignal {
	if dir == Left {
		return rbConflictLeft
	}
	return rbConflictRight
}

func (tree *rbTree[T]) Insert(elem T) bool {
	var ok bool
	if tree.root, ok, _ = tree.insert(tree.root, elem); ok {
		tree.inserted()
	}
	tree.root.meta = Black
	return ok
}

func (tree *rbTree[T]) insert(n *node[T, RBColor], elem T) (*node[T, RBColor], bool, rbSignal) {
	if n == nil {
		return &node[T, RBColor]{elem: elem, meta: Red}, true, rbRedRoot
	}
	res := tree.cmp(elem, n.elem)
	if res == 0 {
		return n, false, rbAbsorbed
	}

	dir := directionOf(res)
	c, ok, sig := tree.insert(n.get(dir), elem)
	n.set(dir, c)
	switch sig {
	case rbRedRoot:
		if n.meta == Red {
			return n, ok, conflictOf(dir)
		}
	case rbConflictLeft:
		n, sig = tree.insertFixup(n, dir, Left)
		return n, ok, sig
	case rbConflictRight:
		n, sig = tree.insertFixup(n, dir, Right)
		return n, ok, sig
	default:
	}
	return n, ok, rbAbsorbed
}

/*
insertFixup resolves a red P (at dir of the black G) with a red X
(at cdir of P). U is the uncle.

ri1: U is red. Recolor, G becomes a red subtree root.

	     [G]                 <G>
	    /   \               /   \
	  <P>   <U>   ====>   [P]   [U]
	  /                   /
	<X>                 <X>

ri2: U is black and X is an inner grandchild (cdir != dir).
Rotate P to turn it into ri3.

	    [G]                [G]
	   /   \              /   \
	 <P>   [U]  ====>   <X>   [U]
	   \                /
	   <X>            <P>

ri3: U is black and X is an outer grandchild. Rotate G and swap the
colors of P and G.

	      [G]              [P]
	     /   \            /   \
	   <P>   [U] ====>  <X>   <G>
	   /                         \
	 <X>                         [U]
*/
func (tree *rbTree[T]) insertFixup(g *node[T, RBColor], dir, cdir Direction) (*node[T, RBColor], rbSignal) {
	if /* ri1 */ u := g.get(dir.Opposite()); isRed(u) {
		g.get(dir).meta = Black
		u.meta = Black
		g.meta = Red
		return g, rbRedRoot
	}
	if /* ri2 */ cdir != dir {
		g.set(dir, tree.rotate(g.get(dir), dir))
	}
	/* ri3 */
	p := tree.rotate(g, dir.Opposite())
	p.meta, g.meta = Black, Red
	return p, rbAbsorbed
}

func (tree *rbTree[T]) Remove(elem T) bool {
	var ok bool
	if tree.root, ok, _ = tree.remove(tree.root, elem); ok {
		tree.removed()
	}
	if tree.root != nil {
		tree.root.meta = Black
	}
	return ok
}

/*
rr1: The target has a left subtree. The in-order predecessor is
detached and takes over the target position and color.

rr2: The target has a single red right child. The child is recolored
black and replaces it.

rr3: The target is a leaf. Removing a black leaf shortens the black
height, the deficit goes up.
*/
func (tree *rbTree[T]) remove(n *node[T, RBColor], elem T) (*node[T, RBColor], bool, signal) {
	if n == nil {
		return nil, false, absorbed
	}
	res := tree.cmp(elem, n.elem)
	if res == 0 {
		if /* rr1 */ l := n.left(); l != nil {
			l, pred, sig := tree.removeMax(l)
			pred.child = [2]*node[T, RBColor]{l, n.right()}
			pred.meta = n.meta
			n.unlink()
			pred, sig = tree.removeFixup(pred, Left, sig)
			return pred, true, sig
		}
		r, sig := n.right(), absorbed
		if /* rr2 */ r != nil {
			r.meta = Black
		} else if /* rr3 */ n.meta == Black {
			sig = propagate
		}
		n.unlink()
		return r, true, sig
	}

	dir := directionOf(res)
	c, ok, sig := tree.remove(n.get(dir), elem)
	if !ok {
		return n, false, absorbed
	}
	n.set(dir, c)
	n, sig = tree.removeFixup(n, dir, sig)
	return n, true, sig
}

func (tree *rbTree[T]) removeMax(n *node[T, RBColor]) (*node[T, RBColor], *node[T, RBColor], signal) {
	if n.right() == nil {
		l, sig := n.left(), absorbed
		if l != nil {
			l.meta = Black
		} else if n.meta == Black {
			sig = propagate
		}
		return l, n, sig
	}
	r, _max, sig := tree.removeMax(n.right())
	n.set(Right, r)
	n, sig = tree.removeFixup(n, Right, sig)
	return n, _max, sig
}

/*
removeFixup resolves a black height deficit at the dir side X of N.
S is the sibling, C the near nephew and D the far nephew.

rd1: X is red. Recolor X black.

rd2: S is red. Rotate N and swap the colors of N and S. The new
sibling is black, N is red, retry once.

	    [N]                  [S]
	   /   \                /   \
	 [X]   <S>    ====>   <N>   [D]
	       / \            / \
	     [C] [D]        [X] [C]

rd3: S, C and D are black. Recolor S red. A red N absorbs the deficit
by becoming black, a black N passes it up.

	    (N)                [N]
	   /   \              /   \
	 [X]   [S]   ====>  [X]   <S>
	       / \                / \
	     [C] [D]            [C] [D]

rd4: C is red, D is black. Rotate S and swap the colors of S and C,
then enter rd5.

	    (N)                (N)
	   /   \              /   \
	 [X]   [S]   ====>  [X]   [C]
	       / \                  \
	     <C> [D]                <S>
	                              \
	                              [D]

rd5: D is red. Rotate N, S takes over the color of N, both N and D
become black.

	    (N)                 (S)
	   /   \               /   \
	 [X]   [S]    ====>  [N]   [D]
	       / \           / \
	     (C) <D>       [X] (C)
*/
func (tree *rbTree[T]) removeFixup(n *node[T, RBColor], dir Direction, sig signal) (*node[T, RBColor], signal) {
	if sig == absorbed {
		return n, absorbed
	}
	if /* rd1 */ x := n.get(dir); isRed(x) {
		x.meta = Black
		return n, absorbed
	}

	opp := dir.Opposite()
	s := n.get(opp)
	if s == nil {
		// impossible run to here
		panic( /* debug assertion */ "[tree] rbtree black height deficit without sibling")
	}
	if /* rd2 */ isRed(s) {
		p := tree.rotate(n, dir)
		p.meta, n.meta = Black, Red
		n, _ = tree.removeFixup(n, dir, propagate)
		p.set(dir, n)
		return p, absorbed
	}

	near, far := s.get(dir), s.get(opp)
	if /* rd3 */ !isRed(near) && !isRed(far) {
		s.meta = Red
		if n.meta == Red {
			n.meta = Black
			return n, absorbed
		}
		return n, propagate
	}
	if /* rd4 */ !isRed(far) {
		s = tree.rotate(s, opp)
		n.set(opp, s)
		s.meta = Black
		far = s.get(opp)
		far.meta = Red
	}
	/* rd5 */
	p := tree.rotate(n, dir)
	p.meta, n.meta, far.meta = n.meta, Black, Black
	return p, absorbed
}

func (tree *rbTree[T]) CheckBalance() bool {
	return !isRed(tree.root) && !redViolated(tree.root) && blackHeight(tree.root) >= 0
}

func redViolated[T any](n *node[T, RBColor]) bool {
	if n == nil {
		return false
	}
	if isRed(n) && (isRed(n.left()) || isRed(n.right())) {
		return true
	}
	return redViolated(n.left()) || redViolated(n.right())
}

// blackHeight counts the black nodes down to the nil leaves, -1 is
// returned if two paths disagree.
func blackHeight[T any](n *node[T, RBColor]) int {
	if n == nil {
		return 0
	}
	lh := blackHeight(n.left())
	if lh < 0 {
		return -1
	}
	rh := blackHeight(n.right())
	if rh < 0 || lh != rh {
		return -1
	}
	if n.meta == Black {
		return lh + 1
	}
	return lh
}

func (tree *rbTree[T]) Clone() Tree[T] {
	return &rbTree[T]{baseTree: tree.clone()}
}

func NewRBTree[T any](cmp infra.Comparator[T], opts ...TreeOption) SelfBalancedTree[T] {
	return &rbTree[T]{
		baseTree: newBaseTree[T, RBColor](RedBlack, cmp, opts...),
	}
}
