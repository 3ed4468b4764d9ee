package tree

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/benz9527/ordtree/lib/infra"
	"github.com/benz9527/ordtree/lib/xlog"
)

// Inorder traversal to validate no red node has a red child.
// Trees of the other variants have no colors to validate.
func RedViolationValidate[T any](tree Tree[T]) error {
	return readTree(tree, redViolationValidate[T])
}

func redViolationValidate[T any](tree Tree[T]) error {
	rb, ok := tree.(*rbTree[T])
	if !ok || rb.root == nil {
		return nil
	}
	if isRed(rb.root) {
		return infra.NewErrorStack("[rbtree] red root violation")
	}

	stack := make([]*node[T, RBColor], 0, nodeHeight(rb.root))
	defer func() {
		clear(stack)
	}()

	aux := rb.root
	for ; aux != nil; aux = aux.left() {
		stack = append(stack, aux)
	}
	for size := len(stack); size > 0; size = len(stack) {
		if aux = stack[size-1]; isRed(aux) && (isRed(aux.left()) || isRed(aux.right())) {
			return infra.NewErrorStack(fmt.Sprintf("[rbtree] red violation at %v", aux.elem))
		}
		stack = stack[:size-1]
		for aux = aux.right(); aux != nil; aux = aux.left() {
			stack = append(stack, aux)
		}
	}
	return nil
}

type blackDepthFrame[T any] struct {
	n     *node[T, RBColor]
	depth int
}

/*
<X> is a RED node.
[X] is a BLACK node (or NIL).

	        [13]
	       /    \
	     <8>    [15]
	     / \    /  \
	   [6] [11] [14] [17]
	   /              /
	 <1>            <16>

Every path from the root down to a nil leaf passes the same number of
black nodes.
*/
func BlackViolationValidate[T any](tree Tree[T]) error {
	return readTree(tree, blackViolationValidate[T])
}

func blackViolationValidate[T any](tree Tree[T]) error {
	rb, ok := tree.(*rbTree[T])
	if !ok || rb.root == nil {
		return nil
	}

	expected := -1
	stack := []blackDepthFrame[T]{{n: rb.root}}
	for len(stack) > 0 {
		f := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if f.n.meta == Black {
			f.depth++
		}
		for _, c := range f.n.child {
			if c != nil {
				stack = append(stack, blackDepthFrame[T]{n: c, depth: f.depth})
				continue
			}
			if /* first nil leaf */ expected < 0 {
				expected = f.depth
			} else if expected != f.depth {
				return infra.NewErrorStack(fmt.Sprintf("[rbtree] black violation, depth %d and %d", expected, f.depth))
			}
		}
	}
	return nil
}

func AVLViolationValidate[T any](tree Tree[T]) error {
	return readTree(tree, avlViolationValidate[T])
}

func avlViolationValidate[T any](tree Tree[T]) error {
	avl, ok := tree.(*avlTree[T])
	if !ok || avl.root == nil {
		return nil
	}
	if avlHeight(avl.root) < 0 {
		return infra.NewErrorStack("[avl] balance factor violation")
	}
	return nil
}

// Validate runs every oracle of the tree variant. The failures are
// combined into a single error.
func Validate[T any](tree Tree[T]) error {
	return readTree(tree, validate[T])
}

func validate[T any](tree Tree[T]) error {
	var es error
	if !tree.CheckValid() {
		es = infra.AppendErrorStack(es, infra.NewErrorStack("[tree] order violation"))
	}
	count := int64(0)
	tree.Traverse(InOrder, func(int64, T) bool {
		count++
		return true
	})
	if count != tree.Len() {
		es = infra.AppendErrorStack(es, infra.NewErrorStack(
			fmt.Sprintf("[tree] size violation, len %d, traversed %d", tree.Len(), count),
		))
	}
	switch tree.Kind() {
	case AVL:
		if err := avlViolationValidate(tree); err != nil {
			es = infra.AppendErrorStack(es, err)
		}
	case RedBlack:
		if err := redViolationValidate(tree); err != nil {
			es = infra.AppendErrorStack(es, err)
		}
		if err := blackViolationValidate(tree); err != nil {
			es = infra.AppendErrorStack(es, err)
		}
	default:
	}
	if es != nil {
		if logger := treeLogger(tree); logger != nil {
			logger.ErrorStack(es, "[tree] validation failed", zap.String("kind", tree.Kind().String()))
		}
	}
	return es
}

func treeLogger[T any](tree Tree[T]) xlog.XLogger {
	switch t := tree.(type) {
	case *normalBST[T]:
		return t.logger
	case *avlTree[T]:
		return t.logger
	case *rbTree[T]:
		return t.logger
	default:
	}
	return nil
}
