package tree

import (
	"sort"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/benz9527/ordtree/lib/id"
	"github.com/benz9527/ordtree/lib/infra"
)

func TestRbtree_InsertScenario(t *testing.T) {
	type checkData = nodeMeta[int, RBColor]

	tree := NewRBTree[int](infra.OrderedKeyCompare[int]).(*rbTree[int])
	for _, k := range []int{10, 20, 30, 40, 50, 25} {
		require.True(t, tree.Insert(k))
		require.True(t, tree.CheckBalance())
		require.NoError(t, RedViolationValidate[int](tree))
		require.NoError(t, BlackViolationValidate[int](tree))
	}
	require.Equal(t, Black, tree.root.meta)
	//       [20]
	//      /    \
	//   [10]    <40>
	//           /  \
	//        [30]  [50]
	//        /
	//      <25>
	require.Equal(t, []checkData{
		{20, Black}, {10, Black}, {40, Red}, {30, Black}, {25, Red}, {50, Black},
	}, preOrderMeta(tree.root))
}

func TestRbtreeLeftAndRightRotate_Pred(t *testing.T) {
	type checkData = nodeMeta[uint64, RBColor]

	tree := NewRBTree[uint64](infra.OrderedKeyCompare[uint64]).(*rbTree[uint64])
	steps := []struct {
		key      uint64
		expected []checkData
	}{
		{key: 52, expected: []checkData{{52, Black}}},
		{key: 47, expected: []checkData{{52, Black}, {47, Red}}},
		// ri3
		{key: 3, expected: []checkData{{47, Black}, {3, Red}, {52, Red}}},
		// ri1
		{key: 35, expected: []checkData{{47, Black}, {3, Black}, {35, Red}, {52, Black}}},
		// ri2 + ri3
		{key: 24, expected: []checkData{{47, Black}, {24, Black}, {3, Red}, {35, Red}, {52, Black}}},
	}
	for _, step := range steps {
		tree.Insert(step.key)
		require.Equal(t, step.expected, preOrderMeta(tree.root))
		require.NoError(t, Validate[uint64](tree))
	}

	removes := []struct {
		key      uint64
		expected []checkData
	}{
		// rr1, the red predecessor 3 takes over the black 24
		{key: 24, expected: []checkData{{47, Black}, {3, Black}, {35, Red}, {52, Black}}},
		// rr3 black leaf, rd4 + rd5
		{key: 52, expected: []checkData{{35, Black}, {3, Black}, {47, Black}}},
		// rr3 black leaf, rd3 propagates to the root
		{key: 47, expected: []checkData{{35, Black}, {3, Red}}},
		{key: 35, expected: []checkData{{3, Black}}},
		{key: 3, expected: nil},
	}
	for _, step := range removes {
		require.True(t, tree.Remove(step.key))
		require.Equal(t, step.expected, preOrderMeta(tree.root))
		require.NoError(t, Validate[uint64](tree))
	}
}

func TestRbtree_RemoveFixupCases(t *testing.T) {
	testcases := []struct {
		name   string
		keys   []int
		remove []int
	}{
		// 20B(10B, 40R(30B, 50B(60R)))
		{name: "rd2 red sibling", keys: []int{10, 20, 30, 40, 50, 60}, remove: []int{10}},
		// 20B(10B, 40R(30B, 50B))
		{name: "rd3 red parent", keys: []int{10, 20, 30, 40, 50, 60}, remove: []int{60, 30}},
		{name: "rd3 black parent", keys: []int{20, 10, 30, 40}, remove: []int{40, 10}},
		// 20B(10B, 30B(40R))
		{name: "rd5 far red nephew", keys: []int{20, 10, 30, 40}, remove: []int{10}},
		// 20B(10B, 40B(30R))
		{name: "rd4 near red nephew", keys: []int{20, 10, 40, 30}, remove: []int{10}},
		{name: "rr2 red right child", keys: []int{20, 10, 30, 40}, remove: []int{30}},
		{name: "rr1 root", keys: []int{20, 10, 30, 5, 15, 25, 35}, remove: []int{20}},
	}
	for _, tc := range testcases {
		t.Run(tc.name, func(tt *testing.T) {
			tree := NewRBTree[int](infra.OrderedKeyCompare[int])
			for _, k := range tc.keys {
				require.True(tt, tree.Insert(k))
			}
			require.NoError(tt, Validate[int](tree))

			removed := make(map[int]struct{}, len(tc.remove))
			for _, k := range tc.remove {
				require.True(tt, tree.Remove(k))
				require.True(tt, tree.CheckBalance())
				require.NoError(tt, Validate[int](tree))
				require.False(tt, tree.Remove(k))
				removed[k] = struct{}{}
			}

			expected := make([]int, 0, len(tc.keys))
			for _, k := range tc.keys {
				if _, ok := removed[k]; !ok {
					expected = append(expected, k)
				}
			}
			sort.Ints(expected)
			require.Equal(tt, expected, inOrder[int](tree))
		})
	}
}

func TestRbtree_ViolationValidate(t *testing.T) {
	tree := NewRBTree[int](infra.OrderedKeyCompare[int]).(*rbTree[int])
	for _, k := range []int{20, 10, 30} {
		tree.Insert(k)
	}
	require.NoError(t, RedViolationValidate[int](tree))
	require.NoError(t, BlackViolationValidate[int](tree))

	// 20B(10R, 30R(25R))
	tree.root.right().set(Left, &node[int, RBColor]{elem: 25, meta: Red})
	require.Error(t, RedViolationValidate[int](tree))
	require.NoError(t, BlackViolationValidate[int](tree))
	require.False(t, tree.CheckBalance())

	// 20B(10R, 30R(25B))
	tree.root.right().left().meta = Black
	require.NoError(t, RedViolationValidate[int](tree))
	require.Error(t, BlackViolationValidate[int](tree))
	require.False(t, tree.CheckBalance())

	tree.root.right().set(Left, nil)
	tree.root.meta = Red
	require.Error(t, RedViolationValidate[int](tree))
	require.False(t, tree.CheckBalance())
	require.Error(t, Validate[int](tree))

	// The other variants have no colors.
	avl := NewAVLTree[int](infra.OrderedKeyCompare[int])
	avl.Insert(1)
	require.NoError(t, RedViolationValidate[int](avl))
	require.NoError(t, BlackViolationValidate[int](avl))
}

func rbtreeRandomInsertAndRemove_RandomMonoNumberRunCore(t *testing.T, total uint64, violationCheck bool) {
	insertTotal := uint64(float64(total) * 0.8)
	removeTotal := uint64(float64(total) * 0.2)

	idGen := id.MonotonicNonZeroID(0)
	rng := id.RandomID(total, 100)
	insertElements := make([]uint64, 0, insertTotal)
	removeElements := make([]uint64, 0, removeTotal)

	ignore := uint64(0)
	for {
		num := idGen.Number()
		if ignore > 0 {
			ignore--
			continue
		}
		ignore = rng.Number()
		if ignore&0x1 == 0 && uint64(len(insertElements)) < insertTotal {
			insertElements = append(insertElements, num)
		} else if ignore&0x1 == 1 && uint64(len(removeElements)) < removeTotal {
			removeElements = append(removeElements, num)
		}
		if uint64(len(insertElements)) == insertTotal && uint64(len(removeElements)) == removeTotal {
			break
		}
	}

	id.Shuffle(total+1, insertElements)
	id.Shuffle(total+2, removeElements)

	tree := NewRBTree[uint64](infra.OrderedKeyCompare[uint64])
	for i := uint64(0); i < insertTotal; i++ {
		require.True(t, tree.Insert(insertElements[i]))
		if violationCheck {
			require.NoError(t, RedViolationValidate[uint64](tree))
			require.NoError(t, BlackViolationValidate[uint64](tree))
		}
	}
	sort.Slice(insertElements, func(i, j int) bool {
		return insertElements[i] < insertElements[j]
	})
	tree.Traverse(InOrder, func(idx int64, key uint64) bool {
		require.Equal(t, insertElements[idx], key)
		return true
	})

	for i := uint64(0); i < removeTotal; i++ {
		require.True(t, tree.Insert(removeElements[i]))
		if violationCheck {
			require.NoError(t, RedViolationValidate[uint64](tree))
			require.NoError(t, BlackViolationValidate[uint64](tree))
		}
	}
	require.NoError(t, Validate[uint64](tree))

	for i := uint64(0); i < removeTotal; i++ {
		require.Truef(t, tree.Remove(removeElements[i]), "value exp: %d\n", removeElements[i])
		if violationCheck {
			require.NoError(t, RedViolationValidate[uint64](tree))
			require.NoError(t, BlackViolationValidate[uint64](tree))
		}
	}
	require.Equal(t, int64(insertTotal), tree.Len())
	tree.Traverse(InOrder, func(idx int64, key uint64) bool {
		require.Equal(t, insertElements[idx], key)
		return true
	})
}

func TestRbtreeRandomInsertAndRemove_RandomMonotonicNumber(t *testing.T) {
	type testcase struct {
		name           string
		total          uint64
		violationCheck bool
	}
	testcases := []testcase{
		{
			name:  "1000000",
			total: 1000000,
		},
		{
			name:           "violation check 10000",
			total:          10000,
			violationCheck: true,
		},
		{
			name:           "violation check 20000",
			total:          20000,
			violationCheck: true,
		},
	}
	for _, tc := range testcases {
		t.Run(tc.name, func(tt *testing.T) {
			rbtreeRandomInsertAndRemove_RandomMonoNumberRunCore(tt, tc.total, tc.violationCheck)
		})
	}
}

func TestRbtreeRandomInsertAndRemove_ReverseSequentialNumber(t *testing.T) {
	const total = 100_000
	tree := NewRBTree[int64](infra.OrderedKeyCompare[int64])
	for i := int64(total - 1); i >= 0; i-- {
		require.True(t, tree.Insert(i))
		if i%1000 == 0 {
			require.NoError(t, Validate[int64](tree))
		}
	}
	tree.Traverse(InOrder, func(idx int64, key int64) bool {
		require.Equal(t, idx, key)
		return true
	})
	for i := int64(0); i < total; i += 2 {
		require.True(t, tree.Remove(i))
		if i%1000 == 0 {
			require.NoError(t, Validate[int64](tree))
		}
	}
	require.Equal(t, int64(total/2), tree.Len())
	tree.Traverse(InOrder, func(idx int64, key int64) bool {
		require.Equal(t, idx*2+1, key)
		return true
	})
}
