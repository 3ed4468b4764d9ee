package tree

import (
	"sync"
)

var (
	_ Tree[int]             = (*syncTree[int])(nil)
	_ SelfBalancedTree[int] = (*syncSelfBalancedTree[int])(nil)
)

// syncTree serializes the writers and lets the readers share the tree.
type syncTree[T any] struct {
	lock sync.RWMutex
	tree Tree[T]
}

func (t *syncTree[T]) Kind() TreeKind {
	return t.tree.Kind()
}

func (t *syncTree[T]) Len() int64 {
	t.lock.RLock()
	defer t.lock.RUnlock()
	return t.tree.Len()
}

func (t *syncTree[T]) Height() int {
	t.lock.RLock()
	defer t.lock.RUnlock()
	return t.tree.Height()
}

func (t *syncTree[T]) Insert(elem T) bool {
	t.lock.Lock()
	defer t.lock.Unlock()
	return t.tree.Insert(elem)
}

func (t *syncTree[T]) Remove(elem T) bool {
	t.lock.Lock()
	defer t.lock.Unlock()
	return t.tree.Remove(elem)
}

// Find returns a copy of the stored element, the node itself may be
// relocated by a concurrent writer.
func (t *syncTree[T]) Find(elem T) (*T, bool) {
	t.lock.RLock()
	defer t.lock.RUnlock()
	found, ok := t.tree.Find(elem)
	if !ok {
		return nil, false
	}
	copied := *found
	return &copied, true
}

func (t *syncTree[T]) CheckValid() bool {
	t.lock.RLock()
	defer t.lock.RUnlock()
	return t.tree.CheckValid()
}

// Traverse holds the read lock during the whole visit. fn must not call
// the writers of the same tree.
func (t *syncTree[T]) Traverse(order Traversal, fn func(idx int64, elem T) bool) {
	t.lock.RLock()
	defer t.lock.RUnlock()
	t.tree.Traverse(order, fn)
}

func (t *syncTree[T]) Clone() Tree[T] {
	t.lock.RLock()
	defer t.lock.RUnlock()
	return NewSyncTree[T](t.tree.Clone())
}

func (t *syncTree[T]) Release() {
	t.lock.Lock()
	defer t.lock.Unlock()
	t.tree.Release()
}

func (t *syncTree[T]) readLocked(fn func(Tree[T]) error) error {
	t.lock.RLock()
	defer t.lock.RUnlock()
	return fn(t.tree)
}

type syncSelfBalancedTree[T any] struct {
	*syncTree[T]
}

func (t *syncSelfBalancedTree[T]) CheckBalance() bool {
	t.lock.RLock()
	defer t.lock.RUnlock()
	return t.tree.(SelfBalancedTree[T]).CheckBalance()
}

// NewSyncTree wraps the tree for the concurrent access. The wrapper keeps
// CheckBalance if the wrapped tree has it.
func NewSyncTree[T any](tree Tree[T]) Tree[T] {
	if tree == nil {
		return nil
	}
	if _, ok := tree.(interface{ readLocked(func(Tree[T]) error) error }); ok {
		// Wrapped already.
		return tree
	}
	st := &syncTree[T]{tree: tree}
	if _, ok := tree.(SelfBalancedTree[T]); ok {
		return &syncSelfBalancedTree[T]{syncTree: st}
	}
	return st
}

// readTree runs fn with the unwrapped tree, under the read lock if the
// tree is wrapped by NewSyncTree.
func readTree[T any](tree Tree[T], fn func(Tree[T]) error) error {
	if st, ok := tree.(interface{ readLocked(func(Tree[T]) error) error }); ok {
		return st.readLocked(fn)
	}
	return fn(tree)
}
