package tree

import (
	"go.uber.org/zap"

	"github.com/benz9527/ordtree/lib/infra"
	"github.com/benz9527/ordtree/lib/xlog"
)

// node owns its two children exclusively, there is no parent link.
// M is the variant metadata:
// struct{} (normal BST), int8 balance factor (AVL) or RBColor (red-black).
type node[T any, M any] struct {
	child [2]*node[T, M]
	elem  T
	meta  M
}

func (dir Direction) index() int {
	if dir == Right {
		return 1
	}
	return 0
}

func directionOf(res int64) Direction {
	if res < 0 {
		return Left
	}
	return Right
}

func (n *node[T, M]) get(dir Direction) *node[T, M] {
	return n.child[dir.index()]
}

func (n *node[T, M]) set(dir Direction, c *node[T, M]) {
	n.child[dir.index()] = c
}

func (n *node[T, M]) left() *node[T, M] {
	return n.child[0]
}

func (n *node[T, M]) right() *node[T, M] {
	return n.child[1]
}

func (n *node[T, M]) unlink() {
	n.child[0], n.child[1] = nil, nil
}

/*
rotate(R, Right), C is the opposite (left) child of R:

	     |                       |
	     R                       C
	    / \    rotate(R, Right)  / \
	   C   Rd  ==============>  Cc  R
	  / \                          / \
	Cc   Cd                      Cd   Rd

rotate(R, Left) is the mirror. Metadata is left to the caller.
*/
func rotate[T any, M any](r *node[T, M], dir Direction) *node[T, M] {
	opp := dir.Opposite()
	c := r.get(opp)
	if c == nil {
		// impossible run to here
		panic( /* debug assertion */ "[tree] rotate without the opposite child")
	}
	r.set(opp, c.get(dir))
	c.set(dir, r)
	return c
}

func cloneNode[T any, M any](n *node[T, M]) *node[T, M] {
	if n == nil {
		return nil
	}
	return &node[T, M]{
		child: [2]*node[T, M]{cloneNode(n.left()), cloneNode(n.right())},
		elem:  n.elem,
		meta:  n.meta,
	}
}

func releaseNode[T any, M any](n *node[T, M]) {
	if n == nil {
		return
	}
	releaseNode(n.left())
	releaseNode(n.right())
	n.unlink()
}

func nodeHeight[T any, M any](n *node[T, M]) int {
	if n == nil {
		return 0
	}
	return max(nodeHeight(n.left()), nodeHeight(n.right())) + 1
}

// checkOrder bounds every descendant by all its ancestors, not only by its parent.
func checkOrder[T any, M any](n *node[T, M], lower, upper *T, cmp infra.Comparator[T]) bool {
	if n == nil {
		return true
	}
	if lower != nil && cmp(*lower, n.elem) >= 0 {
		return false
	}
	if upper != nil && cmp(n.elem, *upper) >= 0 {
		return false
	}
	return checkOrder(n.left(), lower, &n.elem, cmp) && checkOrder(n.right(), &n.elem, upper, cmp)
}

func traverseNode[T any, M any](n *node[T, M], order Traversal, idx *int64, fn func(int64, T) bool) bool {
	if n == nil {
		return true
	}
	visit := func() bool {
		ok := fn(*idx, n.elem)
		*idx++
		return ok
	}
	if order == PreOrder && !visit() {
		return false
	}
	if !traverseNode(n.left(), order, idx, fn) {
		return false
	}
	if order == InOrder && !visit() {
		return false
	}
	if !traverseNode(n.right(), order, idx, fn) {
		return false
	}
	if order == PostOrder && !visit() {
		return false
	}
	return true
}

// baseTree carries the variant independent parts of the contract.
type baseTree[T any, M any] struct {
	root   *node[T, M]
	count  int64
	cmp    infra.Comparator[T]
	stats  *treeStats
	logger xlog.XLogger
}

func newBaseTree[T any, M any](kind TreeKind, cmp infra.Comparator[T], opts ...TreeOption) baseTree[T, M] {
	if cmp == nil {
		panic( /* debug assertion */ "[tree] nil comparator")
	}
	cfg := &treeCfg{}
	for _, o := range opts {
		o(cfg)
	}
	if cfg.isDesc {
		cmp = infra.Desc(cmp)
	}
	base := baseTree[T, M]{
		cmp:    cmp,
		logger: cfg.logger,
	}
	if cfg.isStatsEnabled {
		base.stats = newTreeStats(cfg.statsName, kind)
	}
	return base
}

func (tree *baseTree[T, M]) Len() int64 {
	return tree.count
}

func (tree *baseTree[T, M]) Height() int {
	return nodeHeight(tree.root)
}

func (tree *baseTree[T, M]) Find(elem T) (*T, bool) {
	for aux := tree.root; aux != nil; {
		res := tree.cmp(elem, aux.elem)
		if res == 0 {
			return &aux.elem, true
		}
		aux = aux.get(directionOf(res))
	}
	return nil, false
}

func (tree *baseTree[T, M]) CheckValid() bool {
	return checkOrder(tree.root, nil, nil, tree.cmp)
}

func (tree *baseTree[T, M]) Traverse(order Traversal, fn func(idx int64, elem T) bool) {
	if fn == nil || tree.root == nil {
		return
	}
	idx := int64(0)
	traverseNode(tree.root, order, &idx, fn)
}

func (tree *baseTree[T, M]) Release() {
	releaseNode(tree.root)
	tree.root = nil
	if tree.logger != nil {
		tree.logger.Debug("[tree] released", zap.Int64("count", tree.count))
	}
	tree.stats.RecordSize(-tree.count)
	tree.count = 0
}

func (tree *baseTree[T, M]) clone() baseTree[T, M] {
	base := baseTree[T, M]{
		root:   cloneNode(tree.root),
		count:  tree.count,
		cmp:    tree.cmp,
		stats:  tree.stats,
		logger: tree.logger,
	}
	base.stats.RecordSize(base.count)
	return base
}

func (tree *baseTree[T, M]) rotate(r *node[T, M], dir Direction) *node[T, M] {
	tree.stats.RecordRotate()
	return rotate(r, dir)
}

func (tree *baseTree[T, M]) inserted() {
	tree.count++
	tree.stats.RecordInsert()
}

func (tree *baseTree[T, M]) removed() {
	tree.count--
	tree.stats.RecordRemove()
}

// signal is passed from a subtree to its parent during the fix-up.
type signal uint8

const (
	// absorbed means nothing left to fix above.
	absorbed signal = iota
	// propagate means the subtree height (or black height) changed.
	propagate
)
