package id

// Gen generates the next number.
type Gen func() uint64

// Generator is a key source for the trees and the benchmark driver.
type Generator interface {
	Number() uint64
	Str() string
}

var (
	_ Generator = (*defaultID)(nil)
)

type defaultID struct {
	number Gen
	str    func() string
}

func (id *defaultID) Number() uint64 { return id.number() }
func (id *defaultID) Str() string    { return id.str() }

func newGenerator(number Gen) *defaultID {
	id := &defaultID{number: number}
	id.str = func() string {
		return formatNumber(id.number())
	}
	return id
}
