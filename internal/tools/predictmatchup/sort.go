package predictmatchup

import "golang.org/x/exp/constraints"

// ByOther sorts Slice by the parallel SortBy keys.
type ByOther[X interface{}, T constraints.Ordered] struct {
	Slice  []X
	SortBy []T
}

func (sbo ByOther[X, T]) Len() int { return len(sbo.Slice) }
func (sbo ByOther[X, T]) Swap(i, j int) {
	sbo.Slice[i], sbo.Slice[j] = sbo.Slice[j], sbo.Slice[i]
	sbo.SortBy[i], sbo.SortBy[j] = sbo.SortBy[j], sbo.SortBy[i]
}
func (sbo ByOther[X, T]) Less(i, j int) bool { return sbo.SortBy[i] < sbo.SortBy[j] }
