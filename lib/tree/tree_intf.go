package tree

import (
	"strings"

	"github.com/benz9527/ordtree/lib/infra"
)

// go install golang.org/x/tools/cmd/stringer@latest

//go:generate stringer -type=RBColor
type RBColor uint8

const (
	Black RBColor = iota
	Red
)

// Direction selects one of the two child slots. It is two-valued by
// construction, so there is no out of range child to select.
type Direction bool

const (
	Left  Direction = false
	Right Direction = true
)

func (dir Direction) Opposite() Direction {
	return !dir
}

func (dir Direction) String() string {
	if dir == Right {
		return "Right"
	}
	return "Left"
}

//go:generate stringer -type=Traversal
type Traversal uint8

const (
	PreOrder Traversal = iota
	InOrder
	PostOrder
)

//go:generate stringer -type=TreeKind
type TreeKind uint8

const (
	NormalBST TreeKind = iota
	AVL
	RedBlack
)

func ParseTreeKind(kind string) (TreeKind, error) {
	switch strings.ToLower(strings.TrimSpace(kind)) {
	case "bst", "normal", "normalbst":
		return NormalBST, nil
	case "avl":
		return AVL, nil
	case "rb", "rbtree", "redblack", "red-black":
		return RedBlack, nil
	default:
	}
	return NormalBST, infra.NewErrorStack("[tree] unknown tree kind " + kind)
}

// Tree is the ordered container contract shared by all variants.
// It is not thread safe, see NewSyncTree.
type Tree[T any] interface {
	Kind() TreeKind
	Len() int64
	// Height counts the nodes on the longest root to leaf path.
	Height() int
	// Insert returns false if a compare-equal element is present already.
	Insert(elem T) bool
	// Remove returns false if no compare-equal element is present.
	Remove(elem T) bool
	// Find returns the stored compare-equal element. Modifying the
	// ordering part of it corrupts the tree.
	Find(elem T) (*T, bool)
	// CheckValid verifies the strict ordering of all the elements.
	CheckValid() bool
	// Traverse visits the elements in the given order until fn returns false.
	// fn must not mutate the tree.
	Traverse(order Traversal, fn func(idx int64, elem T) bool)
	// Clone returns a deep copy of the same variant.
	Clone() Tree[T]
	Release()
}

type SelfBalancedTree[T any] interface {
	Tree[T]
	// CheckBalance verifies the variant balance invariant.
	CheckBalance() bool
}
