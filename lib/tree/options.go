package tree

import (
	"github.com/benz9527/ordtree/lib/infra"
	"github.com/benz9527/ordtree/lib/xlog"
)

type treeCfg struct {
	logger         xlog.XLogger
	statsName      string
	isDesc         bool
	isStatsEnabled bool
}

type TreeOption func(*treeCfg)

// WithTreeDesc reverses the comparator, the in-order traversal becomes descending.
func WithTreeDesc() TreeOption {
	return func(cfg *treeCfg) {
		cfg.isDesc = true
	}
}

// WithTreeStats records the tree operations as otel metrics under the meter name.
func WithTreeStats(name string) TreeOption {
	return func(cfg *treeCfg) {
		cfg.isStatsEnabled = true
		cfg.statsName = name
	}
}

func WithTreeLogger(logger xlog.XLogger) TreeOption {
	return func(cfg *treeCfg) {
		cfg.logger = logger
	}
}

// NewTree builds an empty tree of the given variant.
func NewTree[T any](kind TreeKind, cmp infra.Comparator[T], opts ...TreeOption) Tree[T] {
	switch kind {
	case AVL:
		return NewAVLTree[T](cmp, opts...)
	case RedBlack:
		return NewRBTree[T](cmp, opts...)
	case NormalBST:
		return NewNormalBST[T](cmp, opts...)
	default:
	}
	// impossible run to here
	panic( /* debug assertion */ "[tree] unknown tree kind " + kind.String())
}
