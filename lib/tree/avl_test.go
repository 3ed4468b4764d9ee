package tree

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/benz9527/ordtree/lib/id"
	"github.com/benz9527/ordtree/lib/infra"
)

func TestAVLTree_InsertScenario(t *testing.T) {
	tree := NewAVLTree[int](infra.OrderedKeyCompare[int])
	for _, k := range []int{5, 3, 8, 1, 4, 7, 9} {
		require.True(t, tree.Insert(k))
		require.True(t, tree.CheckValid())
		require.True(t, tree.CheckBalance())
	}
	require.Equal(t, []int{1, 3, 4, 5, 7, 8, 9}, inOrder[int](tree))
	require.Equal(t, 3, tree.Height())
}

func TestAVLTree_Rotations(t *testing.T) {
	type checkData = nodeMeta[int, int8]
	testcases := []struct {
		name     string
		keys     []int
		expected []checkData
	}{
		{
			name:     "left left",
			keys:     []int{3, 2, 1},
			expected: []checkData{{2, 0}, {1, 0}, {3, 0}},
		},
		{
			name:     "right right",
			keys:     []int{1, 2, 3},
			expected: []checkData{{2, 0}, {1, 0}, {3, 0}},
		},
		{
			name:     "left right",
			keys:     []int{3, 1, 2},
			expected: []checkData{{2, 0}, {1, 0}, {3, 0}},
		},
		{
			name:     "right left",
			keys:     []int{1, 3, 2},
			expected: []checkData{{2, 0}, {1, 0}, {3, 0}},
		},
		{
			name: "right left with subtrees",
			keys: []int{50, 30, 70, 20, 40, 80, 35, 45, 33},
			//           50
			//         /    \
			//       35      70
			//      /  \       \
			//    30    40      80
			//   /  \     \
			//  20  33    45
			expected: []checkData{
				{50, 1}, {35, 0}, {30, 0}, {20, 0}, {33, 0},
				{40, -1}, {45, 0}, {70, -1}, {80, 0},
			},
		},
	}
	for _, tc := range testcases {
		t.Run(tc.name, func(tt *testing.T) {
			tree := NewAVLTree[int](infra.OrderedKeyCompare[int]).(*avlTree[int])
			for _, k := range tc.keys {
				require.True(tt, tree.Insert(k))
				require.True(tt, tree.CheckBalance())
			}
			require.Equal(tt, tc.expected, preOrderMeta(tree.root))
			require.NoError(tt, Validate[int](tree))
		})
	}
}

func TestAVLTree_RemoveCases(t *testing.T) {
	testcases := []struct {
		name   string
		keys   []int
		remove []int
		left   []int
	}{
		{
			name:   "leaf",
			keys:   []int{2, 1, 3},
			remove: []int{3},
			left:   []int{1, 2},
		},
		{
			name:   "root with two children",
			keys:   []int{2, 1, 3},
			remove: []int{2},
			left:   []int{1, 3},
		},
		{
			name:   "only right child",
			keys:   []int{2, 1, 3, 4},
			remove: []int{3},
			left:   []int{1, 2, 4},
		},
		{
			name:   "rebalance after removal",
			keys:   []int{2, 1, 3, 4},
			remove: []int{1},
			left:   []int{2, 3, 4},
		},
		{
			name:   "zig-zag after removal",
			keys:   []int{5, 2, 8, 1, 4, 7, 9, 3},
			remove: []int{7, 9, 8},
			left:   []int{1, 2, 3, 4, 5},
		},
		{
			name:   "missing key",
			keys:   []int{1, 2, 3},
			remove: []int{4},
			left:   []int{1, 2, 3},
		},
	}
	for _, tc := range testcases {
		t.Run(tc.name, func(tt *testing.T) {
			tree := NewAVLTree[int](infra.OrderedKeyCompare[int])
			for _, k := range tc.keys {
				tree.Insert(k)
			}
			for _, k := range tc.remove {
				_, exists := tree.Find(k)
				require.Equal(tt, exists, tree.Remove(k))
				require.True(tt, tree.CheckValid())
				require.True(tt, tree.CheckBalance())
			}
			require.Equal(tt, tc.left, inOrder[int](tree))
			require.Equal(tt, int64(len(tc.left)), tree.Len())
		})
	}
}

func TestAVLTree_RemoveAllInDifferentOrder(t *testing.T) {
	const total = 1000
	gen := id.RandomID(1000, 0)
	keys := make([]uint64, 0, total)
	seen := make(map[uint64]struct{}, total)
	for len(keys) < total {
		k := gen.Number()
		if _, ok := seen[k]; ok {
			continue
		}
		seen[k] = struct{}{}
		keys = append(keys, k)
	}

	tree := NewAVLTree[uint64](infra.OrderedKeyCompare[uint64])
	for _, k := range keys {
		require.True(t, tree.Insert(k))
	}
	require.Equal(t, int64(total), tree.Len())

	id.Shuffle(1001, keys)
	for i, k := range keys {
		require.True(t, tree.Remove(k))
		require.Truef(t, tree.CheckValid(), "removal %d", i)
		require.Truef(t, tree.CheckBalance(), "removal %d", i)
		_, ok := tree.Find(k)
		require.False(t, ok)
	}
	require.Equal(t, int64(0), tree.Len())
	require.Equal(t, 0, tree.Height())
	for _, k := range keys {
		_, ok := tree.Find(k)
		require.False(t, ok)
	}
}

func TestAVLTree_CheckBalanceDetectsCorruption(t *testing.T) {
	tree := NewAVLTree[int](infra.OrderedKeyCompare[int]).(*avlTree[int])
	for _, k := range []int{2, 1, 3} {
		tree.Insert(k)
	}
	require.True(t, tree.CheckBalance())

	tree.root.meta = 1
	require.False(t, tree.CheckBalance())
	require.Error(t, AVLViolationValidate[int](tree))

	tree.root.meta = 0
	// Consistent with the heights, but out of range.
	tree.root.left().set(Left, &node[int, int8]{elem: 0, child: [2]*node[int, int8]{{elem: -1}}, meta: 1})
	tree.root.left().meta = 2
	tree.root.meta = 2
	require.False(t, tree.CheckBalance())
	require.True(t, tree.CheckValid())
}
