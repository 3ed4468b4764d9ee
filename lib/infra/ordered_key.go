package infra

type Signed interface {
	~int | ~int8 | ~int16 | ~int32 | ~int64
}

// Unsigned is a constraint that permits any unsigned integer type.
type Unsigned interface {
	~uint | ~uint8 | ~uint16 | ~uint32 | ~uint64 | ~uintptr
}

type Integer interface {
	Signed | Unsigned
}

type Float interface {
	~float32 | ~float64
}

// OrderedKey
// byte => ~uint8
type OrderedKey interface {
	Integer | Float | ~string
}

// Comparator is a total order over T.
// Assume i is the new element.
//  1. i == j (return 0), hit.
//  2. i > j (return 1), turn to right part.
//  3. i < j (return -1), turn to left part.
type Comparator[T any] func(i, j T) int64

// OrderedKeyComparator is the comparator of the builtin ordered keys.
type OrderedKeyComparator[K OrderedKey] Comparator[K]

// OrderedKeyCompare orders NaN before every other float and equal to itself.
func OrderedKeyCompare[K OrderedKey](i, j K) int64 {
	iNaN, jNaN := isNaN(i), isNaN(j)
	if iNaN || jNaN {
		if iNaN && jNaN {
			return 0
		} else if iNaN {
			return -1
		}
		return 1
	}
	if i == j {
		return 0
	} else if i < j {
		return -1
	}
	return 1
}

func isNaN[K OrderedKey](x K) bool {
	return x != x
}

// Desc reverses the order of cmp.
func Desc[T any](cmp Comparator[T]) Comparator[T] {
	return func(i, j T) int64 {
		return cmp(j, i)
	}
}
